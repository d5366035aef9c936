package protocol

import (
	"bufio"
	"encoding/binary"
	"fmt"
	"io"
)

const (
	packetLengthSize = 4
	// MaxFrameSize is the largest frame either side accepts.
	MaxFrameSize = 1024 * 1024 * 2
)

// Reader reads length-prefixed frames. Frames on the downstream link carry a four byte big endian
// length, frames of game clients a VarInt length.
type Reader struct {
	r      *bufio.Reader
	varint bool
}

// NewReader creates a Reader for frames with a four byte length prefix.
func NewReader(r io.Reader) *Reader {
	return &Reader{r: bufio.NewReaderSize(r, 1024*64)}
}

// NewVarIntReader creates a Reader for frames with a VarInt length prefix.
func NewVarIntReader(r io.Reader) *Reader {
	return &Reader{r: bufio.NewReaderSize(r, 1024*64), varint: true}
}

// ReadPacket reads the next frame and returns its payload.
func (r *Reader) ReadPacket() ([]byte, error) {
	length, err := r.readLength()
	if err != nil {
		return nil, err
	}

	if length > MaxFrameSize {
		return nil, fmt.Errorf("frame of %d bytes exceeds limit of %d bytes", length, MaxFrameSize)
	}

	payload := make([]byte, length)
	if _, err := io.ReadFull(r.r, payload); err != nil {
		return nil, err
	}
	return payload, nil
}

func (r *Reader) readLength() (uint32, error) {
	if r.varint {
		length, err := ReadVarInt(r.r)
		if err != nil {
			return 0, err
		}
		if length < 0 {
			return 0, fmt.Errorf("negative frame length %d", length)
		}
		return uint32(length), nil
	}

	var lengthBytes [packetLengthSize]byte
	if _, err := io.ReadFull(r.r, lengthBytes[:]); err != nil {
		return 0, err
	}
	return binary.BigEndian.Uint32(lengthBytes[:]), nil
}
