package packet

import (
	"bytes"
	"encoding/binary"
	"fmt"
)

// ReadString reads a string prefixed with its length as a little endian uint32.
func ReadString(buf *bytes.Buffer) string {
	length := binary.LittleEndian.Uint32(next(buf, 4))
	return string(next(buf, int(length)))
}

// WriteString writes s prefixed with its length as a little endian uint32.
func WriteString(buf *bytes.Buffer, s string) {
	buf.Write(binary.LittleEndian.AppendUint32(nil, uint32(len(s))))
	buf.WriteString(s)
}

// ReadUint8 ...
func ReadUint8(buf *bytes.Buffer) uint8 {
	return next(buf, 1)[0]
}

// WriteUint8 ...
func WriteUint8(buf *bytes.Buffer, v uint8) {
	buf.WriteByte(v)
}

func next(buf *bytes.Buffer, n int) []byte {
	if n < 0 || buf.Len() < n {
		panic(fmt.Sprintf("need %d bytes, %d left", n, buf.Len()))
	}
	return buf.Next(n)
}
