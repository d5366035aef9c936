package packet

import (
	"github.com/google/uuid"
	"github.com/sandertv/gophertunnel/minecraft/protocol"
)

// ConnectionRequest is the first packet the proxy sends to a server after dialing it.
type ConnectionRequest struct {
	// Addr is the address the player connected from.
	Addr  string
	Token string

	Username string
	UUID     uuid.UUID
	// Protocol is the protocol id of the client. The server always speaks its native version to the
	// proxy, the id is informational.
	Protocol int32
	Locale   string

	// Cache is the last cache the previous server of the session sent with UpdateCache.
	Cache []byte
}

// ID ...
func (pk *ConnectionRequest) ID() uint32 {
	return IDConnectionRequest
}

// Marshal ...
func (pk *ConnectionRequest) Marshal(io protocol.IO) {
	io.String(&pk.Addr)
	io.String(&pk.Token)

	io.String(&pk.Username)
	io.UUID(&pk.UUID)
	io.Varint32(&pk.Protocol)
	io.String(&pk.Locale)

	io.ByteSlice(&pk.Cache)
}
