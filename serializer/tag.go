package serializer

import (
	"bytes"
	"fmt"
	"math"
	"sync"

	"github.com/cooldogedev/prism/item"
	proto "github.com/cooldogedev/prism/protocol"
	"github.com/klauspost/compress/gzip"
	"github.com/sandertv/gophertunnel/minecraft/nbt"
)

var (
	gzipWriters = sync.Pool{
		New: func() any {
			return gzip.NewWriter(nil)
		},
	}
	gzipReaders = sync.Pool{
		New: func() any {
			return new(gzip.Reader)
		},
	}
)

// WriteTag writes tag with the framing of the strategy passed. A nil tag is written as the absent
// sentinel of the framing. Versions without a Java tag framing fail with an UnsupportedVersionError
// before anything is written.
func WriteTag(buf *proto.Buffer, s Strategy, tag item.Tag) error {
	switch s.Framing {
	case FramingShortLength:
		if tag == nil {
			buf.WriteInt16(-1)
			return nil
		}

		start := buf.WriterIndex()
		buf.WriteInt16(0)
		if err := writeCompressed(buf, tag); err != nil {
			buf.Truncate(start)
			return &proto.EncodeError{Op: "write tag", Err: err}
		}

		n := buf.WriterIndex() - start - 2
		if n > math.MaxInt16 {
			buf.Truncate(start)
			return &proto.EncodeError{Op: "write tag", Err: fmt.Errorf("compressed tag of %d bytes exceeds length prefix", n)}
		}
		buf.SetInt16(start, int16(n))
		return nil
	case FramingDirect:
		if tag == nil {
			_ = buf.WriteByte(0)
			return nil
		}

		start := buf.WriterIndex()
		if err := nbt.NewEncoderWithEncoding(buf, nbt.BigEndian).Encode(map[string]any(tag)); err != nil {
			buf.Truncate(start)
			return &proto.EncodeError{Op: "write tag", Err: err}
		}
		return nil
	default:
		return &proto.UnsupportedVersionError{Op: "write tag", Version: s.Version}
	}
}

func writeCompressed(buf *proto.Buffer, tag item.Tag) error {
	w := gzipWriters.Get().(*gzip.Writer)
	defer gzipWriters.Put(w)

	w.Reset(buf)
	if err := nbt.NewEncoderWithEncoding(w, nbt.BigEndian).Encode(map[string]any(tag)); err != nil {
		_ = w.Close()
		return err
	}
	return w.Close()
}

// ReadTag reads a tag with the framing of the strategy passed, returning nil for the absent tag. On
// failure the reader index is left where it was.
func ReadTag(buf *proto.Buffer, s Strategy) (tag item.Tag, err error) {
	start := buf.ReaderIndex()
	defer func() {
		if r := recover(); r != nil {
			tag, err = nil, &proto.DecodeError{Op: "read tag", Err: fmt.Errorf("%v", r)}
		}
		if err != nil {
			buf.SetReaderIndex(start)
		}
	}()

	switch s.Framing {
	case FramingShortLength:
		n, err := buf.ReadInt16()
		if err != nil {
			return nil, proto.Decode("read tag length", err)
		}
		if n < 0 {
			return nil, nil
		}
		b, err := buf.ReadSlice(int(n))
		if err != nil {
			return nil, proto.Decode("read tag", err)
		}
		m, err := readCompressed(b)
		if err != nil {
			return nil, &proto.DecodeError{Op: "read tag", Err: err}
		}
		return item.Tag(m), nil
	case FramingDirect:
		buf.MarkReaderIndex()
		marker, err := buf.ReadUint8()
		if err != nil {
			return nil, proto.Decode("read tag marker", err)
		}
		if marker == 0 {
			return nil, nil
		}
		buf.ResetReaderIndex()

		m := make(map[string]any)
		if err := nbt.NewDecoderWithEncoding(buf, nbt.BigEndian).Decode(&m); err != nil {
			return nil, &proto.DecodeError{Op: "read tag", Err: err}
		}
		return item.Tag(m), nil
	default:
		return nil, &proto.UnsupportedVersionError{Op: "read tag", Version: s.Version}
	}
}

func readCompressed(b []byte) (map[string]any, error) {
	r := gzipReaders.Get().(*gzip.Reader)
	defer gzipReaders.Put(r)

	if err := r.Reset(bytes.NewReader(b)); err != nil {
		return nil, err
	}
	defer r.Close()

	m := make(map[string]any)
	if err := nbt.NewDecoderWithEncoding(r, nbt.BigEndian).Decode(&m); err != nil {
		return nil, err
	}
	return m, nil
}
