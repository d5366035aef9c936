package protocol

import (
	"errors"
	"fmt"
	"io"
)

// MaxVarIntLen is the maximum number of bytes a 32-bit VarInt occupies.
const MaxVarIntLen = 5

// AppendVarInt appends v to dst as a VarInt.
func AppendVarInt(dst []byte, v int32) []byte {
	ux := uint32(v)
	for ux >= 0x80 {
		dst = append(dst, byte(ux)|0x80)
		ux >>= 7
	}
	return append(dst, byte(ux))
}

// VarIntSize returns the number of bytes v occupies as a VarInt.
func VarIntSize(v int32) int {
	ux := uint32(v)
	n := 1
	for ux >= 0x80 {
		ux >>= 7
		n++
	}
	return n
}

// ReadVarInt reads a VarInt from r.
func ReadVarInt(r io.ByteReader) (int32, error) {
	var ux uint32
	for i := 0; i < MaxVarIntLen; i++ {
		c, err := r.ReadByte()
		if err != nil {
			if errors.Is(err, io.EOF) {
				return 0, fmt.Errorf("read varint: %w", ErrShortBuffer)
			}
			return 0, err
		}
		ux |= uint32(c&0x7f) << (7 * i)
		if c&0x80 == 0 {
			return int32(ux), nil
		}
	}
	return 0, ErrVarIntTooLong
}
