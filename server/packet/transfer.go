package packet

import "github.com/sandertv/gophertunnel/minecraft/protocol"

// Transfer asks the proxy to move the player to the server at Addr.
type Transfer struct {
	Addr string
}

// ID ...
func (pk *Transfer) ID() uint32 {
	return IDTransfer
}

// Marshal ...
func (pk *Transfer) Marshal(io protocol.IO) {
	io.String(&pk.Addr)
}
