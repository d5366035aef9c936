package packet

import "bytes"

const (
	ResponseSuccess = iota
	ResponseUnauthorized
	ResponseFail
)

// ConnectionResponse answers a ConnectionRequest.
type ConnectionResponse struct {
	Response uint8
}

// ID ...
func (pk *ConnectionResponse) ID() uint32 {
	return IDConnectionResponse
}

// Encode ...
func (pk *ConnectionResponse) Encode(buf *bytes.Buffer) {
	WriteUint8(buf, pk.Response)
}

// Decode ...
func (pk *ConnectionResponse) Decode(buf *bytes.Buffer) {
	pk.Response = ReadUint8(buf)
}
