package packet

import "github.com/sandertv/gophertunnel/minecraft/protocol"

// Latency is exchanged periodically to measure the latency of the link. The proxy sends the current
// time in Timestamp, and the server echoes the packet back with Latency set to the latency it measured
// for the player.
type Latency struct {
	// Latency is the measured latency in milliseconds.
	Latency int64
	// Timestamp is the unix time in milliseconds at which the proxy sent the packet.
	Timestamp int64
}

// ID ...
func (pk *Latency) ID() uint32 {
	return IDLatency
}

// Marshal ...
func (pk *Latency) Marshal(io protocol.IO) {
	io.Int64(&pk.Latency)
	io.Int64(&pk.Timestamp)
}
