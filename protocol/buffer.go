package protocol

import (
	"encoding/binary"
	"fmt"
	"io"
)

// Buffer is a byte cursor over a single packet. Writes append at the writer index, reads consume
// from the reader index and never go past the bytes the buffer holds, so a reader can never cross
// the boundary of the packet it was created for.
type Buffer struct {
	b    []byte
	off  int
	mark int
}

// NewBuffer creates a Buffer reading from (and appending to) b.
func NewBuffer(b []byte) *Buffer {
	return &Buffer{b: b}
}

// Bytes returns all bytes written to the buffer, including those already read.
func (b *Buffer) Bytes() []byte {
	return b.b
}

// Remaining returns the unread bytes without consuming them.
func (b *Buffer) Remaining() []byte {
	return b.b[b.off:]
}

// Len returns the number of unread bytes.
func (b *Buffer) Len() int {
	return len(b.b) - b.off
}

// WriterIndex returns the offset the next write appends at.
func (b *Buffer) WriterIndex() int {
	return len(b.b)
}

// Reset clears the buffer while keeping its capacity.
func (b *Buffer) Reset() {
	b.b = b.b[:0]
	b.off = 0
	b.mark = 0
}

// ReaderIndex returns the offset of the next byte read.
func (b *Buffer) ReaderIndex() int {
	return b.off
}

// SetReaderIndex moves the reader index to i, which must not exceed the bytes written.
func (b *Buffer) SetReaderIndex(i int) {
	b.off = min(max(i, 0), len(b.b))
}

// Truncate discards all bytes written after index n.
func (b *Buffer) Truncate(n int) {
	if n < len(b.b) {
		b.b = b.b[:n]
		b.off = min(b.off, n)
	}
}

// MarkReaderIndex remembers the current reader index.
func (b *Buffer) MarkReaderIndex() {
	b.mark = b.off
}

// ResetReaderIndex rewinds the reader index to the last mark.
func (b *Buffer) ResetReaderIndex() {
	b.off = b.mark
}

// Write implements io.Writer.
func (b *Buffer) Write(p []byte) (int, error) {
	b.b = append(b.b, p...)
	return len(p), nil
}

// WriteByte implements io.ByteWriter.
func (b *Buffer) WriteByte(c byte) error {
	b.b = append(b.b, c)
	return nil
}

// WriteInt16 appends a big endian int16.
func (b *Buffer) WriteInt16(v int16) {
	b.b = binary.BigEndian.AppendUint16(b.b, uint16(v))
}

// WriteInt32 appends a big endian int32.
func (b *Buffer) WriteInt32(v int32) {
	b.b = binary.BigEndian.AppendUint32(b.b, uint32(v))
}

// WriteInt64 appends a big endian int64.
func (b *Buffer) WriteInt64(v int64) {
	b.b = binary.BigEndian.AppendUint64(b.b, uint64(v))
}

// WriteVarInt appends a VarInt. Negative values always take five bytes.
func (b *Buffer) WriteVarInt(v int32) {
	b.b = AppendVarInt(b.b, v)
}

// SetInt16 overwrites two already written bytes at index with a big endian int16.
func (b *Buffer) SetInt16(index int, v int16) {
	binary.BigEndian.PutUint16(b.b[index:index+2], uint16(v))
}

// Read implements io.Reader. It returns io.EOF once all bytes are consumed.
func (b *Buffer) Read(p []byte) (int, error) {
	if len(p) == 0 {
		return 0, nil
	}
	if b.off >= len(b.b) {
		return 0, io.EOF
	}
	n := copy(p, b.b[b.off:])
	b.off += n
	return n, nil
}

// ReadByte implements io.ByteReader.
func (b *Buffer) ReadByte() (byte, error) {
	if b.off >= len(b.b) {
		return 0, io.EOF
	}
	c := b.b[b.off]
	b.off++
	return c, nil
}

// ReadSlice consumes n bytes and returns them without copying.
func (b *Buffer) ReadSlice(n int) ([]byte, error) {
	if n < 0 || b.Len() < n {
		return nil, fmt.Errorf("read %d bytes with %d left: %w", n, b.Len(), ErrShortBuffer)
	}
	s := b.b[b.off : b.off+n : b.off+n]
	b.off += n
	return s, nil
}

// ReadUint8 ...
func (b *Buffer) ReadUint8() (uint8, error) {
	c, err := b.ReadByte()
	if err != nil {
		return 0, fmt.Errorf("read byte: %w", ErrShortBuffer)
	}
	return c, nil
}

// ReadInt16 reads a big endian int16.
func (b *Buffer) ReadInt16() (int16, error) {
	s, err := b.ReadSlice(2)
	if err != nil {
		return 0, err
	}
	return int16(binary.BigEndian.Uint16(s)), nil
}

// ReadUint16 reads a big endian uint16.
func (b *Buffer) ReadUint16() (uint16, error) {
	s, err := b.ReadSlice(2)
	if err != nil {
		return 0, err
	}
	return binary.BigEndian.Uint16(s), nil
}

// ReadInt32 reads a big endian int32.
func (b *Buffer) ReadInt32() (int32, error) {
	s, err := b.ReadSlice(4)
	if err != nil {
		return 0, err
	}
	return int32(binary.BigEndian.Uint32(s)), nil
}

// ReadInt64 reads a big endian int64.
func (b *Buffer) ReadInt64() (int64, error) {
	s, err := b.ReadSlice(8)
	if err != nil {
		return 0, err
	}
	return int64(binary.BigEndian.Uint64(s)), nil
}

// ReadVarInt reads a VarInt of at most five bytes.
func (b *Buffer) ReadVarInt() (int32, error) {
	return ReadVarInt(b)
}
