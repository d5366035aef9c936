package packet

import "github.com/sandertv/gophertunnel/minecraft/protocol"

const (
	IDConnectionRequest uint32 = iota
	IDConnectionResponse
	IDLatency
	IDTransfer
	IDUpdateCache
)

// Packet is a control packet of the link between the proxy and a server. Control packets are never
// translated.
type Packet interface {
	ID() uint32
	Marshal(io protocol.IO)
}

// Pool maps the ids of control packets to their factories.
type Pool map[uint32]func() Packet

// NewPool returns a Pool holding every control packet.
func NewPool() Pool {
	return Pool{
		IDConnectionRequest:  func() Packet { return &ConnectionRequest{} },
		IDConnectionResponse: func() Packet { return &ConnectionResponse{} },
		IDLatency:            func() Packet { return &Latency{} },
		IDTransfer:           func() Packet { return &Transfer{} },
		IDUpdateCache:        func() Packet { return &UpdateCache{} },
	}
}
