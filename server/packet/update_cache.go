package packet

import "github.com/sandertv/gophertunnel/minecraft/protocol"

// UpdateCache replaces the data the proxy keeps for the player. The proxy hands the cache to the next
// server the player is transferred to, in ConnectionRequest.
type UpdateCache struct {
	Cache []byte
}

// ID ...
func (pk *UpdateCache) ID() uint32 {
	return IDUpdateCache
}

// Marshal ...
func (pk *UpdateCache) Marshal(io protocol.IO) {
	io.ByteSlice(&pk.Cache)
}
