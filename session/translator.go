package session

import (
	"fmt"

	"github.com/cooldogedev/prism/packet"
	"github.com/cooldogedev/prism/protocol"
	"github.com/cooldogedev/prism/serializer"
	"github.com/cooldogedev/prism/storage"
	"github.com/cooldogedev/prism/version"
)

// Translator converts the packets of one connection between the version of its client and the native
// version of the server. A Translator does no I/O and is not safe for concurrent use.
type Translator struct {
	client version.Version
	native version.Version

	clientStrategy serializer.Strategy
	nativeStrategy serializer.Strategy

	clientPool packet.ServerBoundPool
	serverPool packet.ClientBoundPool

	local  *storage.Local
	shared *storage.Shared
}

// NewTranslator creates a Translator for a client of version client. It returns an
// UnsupportedVersionError if either the client or the native version has no serializer strategy.
func NewTranslator(client version.Version, local *storage.Local, shared *storage.Shared) (*Translator, error) {
	clientStrategy, err := serializer.StrategyFor(client)
	if err != nil {
		return nil, err
	}

	native := shared.NativeVersion()
	nativeStrategy, err := serializer.StrategyFor(native)
	if err != nil {
		return nil, err
	}
	return &Translator{
		client: client,
		native: native,

		clientStrategy: clientStrategy,
		nativeStrategy: nativeStrategy,

		clientPool: packet.ServerBoundPoolFor(client),
		serverPool: packet.ClientBoundPoolFor(native),

		local:  local,
		shared: shared,
	}, nil
}

// ClientVersion ...
func (t *Translator) ClientVersion() version.Version {
	return t.client
}

// NativeVersion ...
func (t *Translator) NativeVersion() version.Version {
	return t.native
}

// Local returns the storage of the connection.
func (t *Translator) Local() *storage.Local {
	return t.local
}

// Passthrough reports whether packets the Translator does not know may be forwarded untouched, which
// is only the case when the client speaks the native version.
func (t *Translator) Passthrough() bool {
	return t.client == t.native
}

// DecodeClient decodes a packet sent by the client, then populates and dispatches it. It returns nil
// and no error if the packet id is unknown, in which case the payload is forwarded when Passthrough
// allows it and dropped otherwise.
func (t *Translator) DecodeClient(payload []byte) (packet.ServerBound, error) {
	buf := protocol.NewBuffer(payload)
	id, err := serializer.ReadPacketID(buf, t.clientStrategy)
	if err != nil {
		return nil, err
	}

	factory, ok := t.clientPool[id]
	if !ok {
		return nil, nil
	}

	pk := factory()
	pk.SetLocalStorage(t.local)
	pk.SetSharedStorage(t.shared)
	if err := packet.Populate(pk, serializer.NewReader(buf, t.clientStrategy, t.local, t.shared)); err != nil {
		return nil, err
	}
	if err := packet.Dispatch(pk); err != nil {
		return nil, err
	}
	return pk, nil
}

// DecodeServer decodes a packet sent by the server in the native version and runs its Handle hook.
// Like DecodeClient, it returns nil and no error for unknown packet ids.
func (t *Translator) DecodeServer(payload []byte) (packet.ClientBound, error) {
	buf := protocol.NewBuffer(payload)
	id, err := serializer.ReadPacketID(buf, t.nativeStrategy)
	if err != nil {
		return nil, err
	}

	factory, ok := t.serverPool[id]
	if !ok {
		return nil, nil
	}

	pk := factory()
	pk.SetLocalStorage(t.local)
	pk.SetSharedStorage(t.shared)
	if err := packet.Read(pk, serializer.NewReader(buf, t.nativeStrategy, t.local, t.shared)); err != nil {
		return nil, err
	}
	pk.Handle()
	return pk, nil
}

// EncodeClient encodes pk for the client. The result may hold any number of frames, including none
// when the client has no way of displaying the packet.
func (t *Translator) EncodeClient(pk packet.ClientBound) ([][]byte, error) {
	pk.SetLocalStorage(t.local)
	pk.SetSharedStorage(t.shared)
	data, err := pk.ToData(t.client)
	if err != nil {
		return nil, fmt.Errorf("encode %v for %v: %w", pk.Kind(), t.client, err)
	}
	return collect(data), nil
}

// EncodeServer encodes pk for the server.
func (t *Translator) EncodeServer(pk packet.ServerBound) ([][]byte, error) {
	pk.SetLocalStorage(t.local)
	pk.SetSharedStorage(t.shared)
	data, err := pk.ToNative(t.native)
	if err != nil {
		return nil, fmt.Errorf("encode %v for %v: %w", pk.Kind(), t.native, err)
	}
	return collect(data), nil
}

// collect copies the frames out of data and releases it.
func collect(data []*serializer.PacketData) [][]byte {
	defer serializer.ReleaseAll(data)
	frames := make([][]byte, 0, len(data))
	for _, d := range data {
		frames = append(frames, append([]byte(nil), d.Bytes()...))
	}
	return frames
}
