package packet

import (
	"fmt"

	"github.com/cooldogedev/prism/chat"
	"github.com/cooldogedev/prism/protocol"
	"github.com/cooldogedev/prism/serializer"
	"github.com/cooldogedev/prism/storage"
	"github.com/cooldogedev/prism/version"
)

// State is the life cycle state of a server bound packet.
type State uint8

const (
	StateUnpopulated State = iota
	StatePopulated
	StateHandled
)

// String ...
func (s State) String() string {
	switch s {
	case StateUnpopulated:
		return "unpopulated"
	case StatePopulated:
		return "populated"
	case StateHandled:
		return "handled"
	}
	return "unknown"
}

// Base is embedded by every packet. It holds the storages injected before a packet is encoded or
// decoded, and the state of server bound packets.
type Base struct {
	local  *storage.Local
	shared *storage.Shared
	state  State
}

// SetLocalStorage injects the storage of the connection the packet belongs to.
func (b *Base) SetLocalStorage(local *storage.Local) {
	b.local = local
}

// SetSharedStorage injects the process wide storage.
func (b *Base) SetSharedStorage(shared *storage.Shared) {
	b.shared = shared
}

// LocalStorage ...
func (b *Base) LocalStorage() *storage.Local {
	return b.local
}

// SharedStorage ...
func (b *Base) SharedStorage() *storage.Shared {
	return b.shared
}

// State ...
func (b *Base) State() State {
	return b.state
}

// Handle is a no-op. Packets override it to act on their contents once read.
func (b *Base) Handle() {}

func (b *Base) base() *Base {
	return b
}

// locale returns the locale of the connection the packet belongs to.
func (b *Base) locale() string {
	if b.local == nil {
		return chat.DefaultLocale
	}
	return b.local.Locale()
}

// legacyText renders c as legacy formatted text in the locale of the connection.
func (b *Base) legacyText(c chat.Component) string {
	var tr *chat.Translations
	if b.shared != nil {
		tr = b.shared.Translations()
	}
	return chat.ToLegacyText(c, b.locale(), tr)
}

// single builds the only packet a kind is written as for v. It returns no packets if the kind does
// not exist in v.
func (b *Base) single(kind Kind, v version.Version, marshal func(io serializer.IO)) ([]*serializer.PacketData, error) {
	return b.build(kind, v, serializer.DirectionClient, marshal)
}

// native builds the only packet a server-bound kind is written as for the native version v.
func (b *Base) native(kind Kind, v version.Version, marshal func(io serializer.IO)) ([]*serializer.PacketData, error) {
	return b.build(kind, v, serializer.DirectionServer, marshal)
}

func (b *Base) build(kind Kind, v version.Version, dir serializer.Direction, marshal func(io serializer.IO)) ([]*serializer.PacketData, error) {
	d, err := b.newData(kind, v)
	if d == nil || err != nil {
		return nil, err
	}
	d.SetDirection(dir)
	marshal(d)
	if err := d.Err(); err != nil {
		d.Release()
		return nil, err
	}
	return []*serializer.PacketData{d}, nil
}

// newData takes a PacketData for the kind from the pool, or returns nil if the kind does not exist
// in v.
func (b *Base) newData(kind Kind, v version.Version) (*serializer.PacketData, error) {
	s, err := serializer.StrategyFor(v)
	if err != nil {
		return nil, err
	}
	id, ok := ID(kind, v)
	if !ok {
		return nil, nil
	}
	return serializer.NewPacketData(id, s, b.local, b.shared), nil
}

// Packet is implemented by all packets.
type Packet interface {
	// Kind returns the logical kind of the packet.
	Kind() Kind
	SetLocalStorage(local *storage.Local)
	SetSharedStorage(shared *storage.Shared)
	// ReadFromServerData reads the packet from r, using the layout of the version of r.
	ReadFromServerData(r *serializer.Reader) error
	// Handle runs after the packet was read.
	Handle()

	base() *Base
}

// ClientBound is a packet sent by the server to the client.
type ClientBound interface {
	Packet
	// ToData encodes the packet for v. A single packet may be written as zero or more wire packets.
	// ToData never modifies the packet and may be called any number of times.
	ToData(v version.Version) ([]*serializer.PacketData, error)
}

// ServerBound is a packet sent by the client to the server.
type ServerBound interface {
	Packet
	// ToNative encodes the packet for the version of the server.
	ToNative(v version.Version) ([]*serializer.PacketData, error)
}

// Populate reads pk from r. Every byte of r must be consumed, otherwise a DecodeError is returned.
// On success pk moves from StateUnpopulated to StatePopulated.
func Populate(pk Packet, r *serializer.Reader) error {
	b := pk.base()
	if b.state != StateUnpopulated {
		return fmt.Errorf("populate %v: packet is %v", pk.Kind(), b.state)
	}
	if err := Read(pk, r); err != nil {
		return err
	}
	b.state = StatePopulated
	return nil
}

// Read reads pk from r without touching its state. Every byte of r must be consumed.
func Read(pk Packet, r *serializer.Reader) error {
	op := "read " + pk.Kind().String()
	if err := pk.ReadFromServerData(r); err != nil {
		return protocol.Decode(op, err)
	}
	if n := r.Len(); n != 0 {
		return &protocol.DecodeError{Op: op, Err: fmt.Errorf("%d bytes left: %w", n, protocol.ErrTrailingBytes)}
	}
	return nil
}

// Dispatch runs the Handle hook of a populated packet and moves it to StateHandled.
func Dispatch(pk Packet) error {
	b := pk.base()
	if b.state != StatePopulated {
		return fmt.Errorf("dispatch %v: packet is %v", pk.Kind(), b.state)
	}
	pk.Handle()
	b.state = StateHandled
	return nil
}

// isReader reports whether io reads a packet rather than writing one.
func isReader(io serializer.IO) bool {
	_, ok := io.(*serializer.Reader)
	return ok
}
