package protocol

import (
	"bytes"
	"errors"
	"testing"
)

func TestVarInt(t *testing.T) {
	for _, v := range []int32{0, 1, 127, 128, 255, 25565, 2097151, 2147483647, -1, -2147483648} {
		b := AppendVarInt(nil, v)
		if len(b) != VarIntSize(v) {
			t.Fatalf("%d: size %d, encoded %d bytes", v, VarIntSize(v), len(b))
		}
		got, err := ReadVarInt(bytes.NewReader(b))
		if err != nil || got != v {
			t.Fatalf("%d: read %d (%v)", v, got, err)
		}
	}
	if b := AppendVarInt(nil, -1); len(b) != MaxVarIntLen {
		t.Fatalf("negative varint should take five bytes, got %d", len(b))
	}
	if _, err := ReadVarInt(bytes.NewReader([]byte{0x80, 0x80, 0x80, 0x80, 0x80, 0x01})); !errors.Is(err, ErrVarIntTooLong) {
		t.Fatalf("expected ErrVarIntTooLong, got %v", err)
	}
	if _, err := ReadVarInt(bytes.NewReader([]byte{0x80})); !errors.Is(err, ErrShortBuffer) {
		t.Fatalf("expected ErrShortBuffer, got %v", err)
	}
}

func TestBufferBounds(t *testing.T) {
	buf := NewBuffer(nil)
	buf.WriteInt16(-2)
	buf.WriteInt32(70000)
	buf.WriteInt64(1 << 40)
	buf.WriteVarInt(300)

	if v, err := buf.ReadInt16(); err != nil || v != -2 {
		t.Fatalf("read int16 %d (%v)", v, err)
	}
	buf.MarkReaderIndex()
	if v, err := buf.ReadInt32(); err != nil || v != 70000 {
		t.Fatalf("read int32 %d (%v)", v, err)
	}
	buf.ResetReaderIndex()
	if _, err := buf.ReadInt32(); err != nil {
		t.Fatalf("reread int32: %v", err)
	}
	if v, err := buf.ReadInt64(); err != nil || v != 1<<40 {
		t.Fatalf("read int64 %d (%v)", v, err)
	}
	if v, err := buf.ReadVarInt(); err != nil || v != 300 {
		t.Fatalf("read varint %d (%v)", v, err)
	}
	if buf.Len() != 0 {
		t.Fatalf("expected buffer to be drained, %d left", buf.Len())
	}
	if _, err := buf.ReadSlice(1); !errors.Is(err, ErrShortBuffer) {
		t.Fatalf("expected ErrShortBuffer, got %v", err)
	}

	n := buf.WriterIndex()
	buf.WriteInt32(1)
	buf.Truncate(n)
	if buf.WriterIndex() != n {
		t.Fatalf("truncate left %d bytes, want %d", buf.WriterIndex(), n)
	}
}

func TestFrames(t *testing.T) {
	for _, varint := range []bool{false, true} {
		var stream bytes.Buffer
		w, r := NewWriter(&stream), NewReader(&stream)
		if varint {
			w, r = NewVarIntWriter(&stream), NewVarIntReader(&stream)
		}

		payloads := [][]byte{{0x01}, bytes.Repeat([]byte{0xAB}, 300), {}}
		for _, p := range payloads {
			if err := w.Write(p); err != nil {
				t.Fatalf("write: %v", err)
			}
		}
		for _, p := range payloads {
			got, err := r.ReadPacket()
			if err != nil {
				t.Fatalf("read: %v", err)
			}
			if !bytes.Equal(got, p) {
				t.Fatalf("varint=%v: read % x, want % x", varint, got, p)
			}
		}
	}
}

func TestFrameTooLarge(t *testing.T) {
	r := NewReader(bytes.NewReader([]byte{0xFF, 0xFF, 0xFF, 0xFF}))
	if _, err := r.ReadPacket(); err == nil {
		t.Fatalf("expected oversized frame to be rejected")
	}
}

func TestErrorWrapping(t *testing.T) {
	err := Decode("read", ErrShortBuffer)
	var decodeErr *DecodeError
	if !errors.As(err, &decodeErr) || !errors.Is(err, ErrShortBuffer) {
		t.Fatalf("expected wrapped DecodeError, got %v", err)
	}
	if Decode("outer", err) != err {
		t.Fatalf("DecodeError should not be wrapped twice")
	}
	if Decode("read", nil) != nil || Encode("write", nil) != nil {
		t.Fatalf("nil errors must stay nil")
	}
	var encodeErr *EncodeError
	if !errors.As(Encode("write", ErrStringTooLong), &encodeErr) {
		t.Fatalf("expected EncodeError")
	}
}
