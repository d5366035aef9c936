package protocol

import (
	"bytes"
	"encoding/binary"
	"io"

	"github.com/cooldogedev/prism/internal"
)

// Writer writes length-prefixed frames, the counterpart of Reader.
type Writer struct {
	w      io.Writer
	varint bool
}

// NewWriter creates a Writer for frames with a four byte length prefix.
func NewWriter(w io.Writer) *Writer {
	return &Writer{w: w}
}

// NewVarIntWriter creates a Writer for frames with a VarInt length prefix.
func NewVarIntWriter(w io.Writer) *Writer {
	return &Writer{w: w, varint: true}
}

// Write writes data as a single frame.
func (w *Writer) Write(data []byte) (err error) {
	buf := internal.BufferPool.Get().(*bytes.Buffer)
	defer func() {
		buf.Reset()
		internal.BufferPool.Put(buf)
	}()

	if w.varint {
		buf.Write(AppendVarInt(buf.AvailableBuffer(), int32(len(data))))
	} else if err = binary.Write(buf, binary.BigEndian, uint32(len(data))); err != nil {
		return err
	}

	buf.Write(data)
	if _, err := w.w.Write(buf.Bytes()); err != nil {
		return err
	}
	return
}
