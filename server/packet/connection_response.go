package packet

import "github.com/sandertv/gophertunnel/minecraft/protocol"

// ConnectionResponse answers a ConnectionRequest. A server that refuses the player sets Accepted to
// false and gives a Reason, which is shown to the player.
type ConnectionResponse struct {
	Accepted bool
	Reason   string
}

// ID ...
func (pk *ConnectionResponse) ID() uint32 {
	return IDConnectionResponse
}

// Marshal ...
func (pk *ConnectionResponse) Marshal(io protocol.IO) {
	io.Bool(&pk.Accepted)
	io.String(&pk.Reason)
}
