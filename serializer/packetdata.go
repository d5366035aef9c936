package serializer

import (
	"sync"

	proto "github.com/cooldogedev/prism/protocol"
	"github.com/cooldogedev/prism/storage"
)

var dataPool = sync.Pool{
	New: func() any {
		return &PacketData{Writer: &Writer{state: state{buf: proto.NewBuffer(make([]byte, 0, 256))}}}
	},
}

// PacketData is a single client bound packet under construction: a Writer whose buffer starts with the
// identifier of the packet.
type PacketData struct {
	*Writer
	id int32
}

// NewPacketData takes a PacketData from the pool and writes id into it. It must be released with
// Release once its bytes are no longer used.
func NewPacketData(id int32, s Strategy, local *storage.Local, shared *storage.Shared) *PacketData {
	d := dataPool.Get().(*PacketData)
	d.id = id
	d.buf.Reset()
	d.state = state{buf: d.buf, strategy: s, local: local, shared: shared}
	d.direction = DirectionClient
	d.Fail(WritePacketID(d.buf, s, id))
	return d
}

// ID returns the identifier of the packet.
func (d *PacketData) ID() int32 {
	return d.id
}

// Bytes returns the framed payload: the packet identifier followed by the body. The slice is only valid
// until Release is called.
func (d *PacketData) Bytes() []byte {
	return d.buf.Bytes()
}

// Release returns the PacketData to the pool.
func (d *PacketData) Release() {
	d.state = state{buf: d.buf}
	dataPool.Put(d)
}

// ReleaseAll releases every PacketData of data.
func ReleaseAll(data []*PacketData) {
	for _, d := range data {
		d.Release()
	}
}
