package packet

import "bytes"

// Broadcast sends a chat message to every player. Each player receives the message translated for
// their version and locale.
type Broadcast struct {
	// Message is a chat component in its JSON form.
	Message  string
	Position uint8
}

// ID ...
func (pk *Broadcast) ID() uint32 {
	return IDBroadcast
}

// Encode ...
func (pk *Broadcast) Encode(buf *bytes.Buffer) {
	WriteString(buf, pk.Message)
	WriteUint8(buf, pk.Position)
}

// Decode ...
func (pk *Broadcast) Decode(buf *bytes.Buffer) {
	pk.Message = ReadString(buf)
	pk.Position = ReadUint8(buf)
}
