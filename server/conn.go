package server

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"sync"

	"github.com/cooldogedev/prism/internal"
	proto "github.com/cooldogedev/prism/protocol"
	"github.com/cooldogedev/prism/server/packet"
	"github.com/golang/snappy"
	"github.com/sandertv/gophertunnel/minecraft/protocol"
)

const (
	// flagCompressed marks a frame body compressed with snappy.
	flagCompressed = 1 << 0
	// flagControl marks a frame holding a control packet rather than a game packet.
	flagControl = 1 << 1
)

// ErrClosed is returned when reading from or writing to a closed Conn.
var ErrClosed = errors.New("connection closed")

// Conn is a link to a server. Every frame carries a flags byte followed by the body, which is either a
// control packet of the link or a game packet in the native version of the server.
type Conn struct {
	conn io.ReadWriteCloser

	reader *proto.Reader

	writer  *proto.Writer
	writeMu sync.Mutex

	threshold int
	pool      packet.Pool
	deferred  []any

	closed chan struct{}
	once   sync.Once
}

// NewConn creates a Conn over conn. Bodies of at least threshold bytes are compressed, a threshold of
// zero or less disables compression.
func NewConn(conn io.ReadWriteCloser, threshold int) *Conn {
	return &Conn{
		conn: conn,

		reader: proto.NewReader(conn),
		writer: proto.NewWriter(conn),

		threshold: threshold,
		pool:      packet.NewPool(),

		closed: make(chan struct{}),
	}
}

// ReadPacket reads the next frame. It returns a packet.Packet for control packets and the raw payload
// for game packets. ReadPacket must not be called from more than one goroutine at a time.
func (c *Conn) ReadPacket() (any, error) {
	if len(c.deferred) > 0 {
		pk := c.deferred[0]
		c.deferred = c.deferred[1:]
		return pk, nil
	}
	return c.read()
}

// read reads the next frame from the connection, ignoring deferred frames.
func (c *Conn) read() (any, error) {
	select {
	case <-c.closed:
		return nil, ErrClosed
	default:
	}

	frame, err := c.reader.ReadPacket()
	if err != nil {
		return nil, err
	}
	if len(frame) == 0 {
		return nil, proto.Decode("read link frame", proto.ErrShortBuffer)
	}

	flags, body := frame[0], frame[1:]
	if flags&flagCompressed != 0 {
		if body, err = decompress(body); err != nil {
			return nil, err
		}
	}
	if flags&flagControl != 0 {
		return c.decode(body)
	}
	return body, nil
}

// WritePacket writes a control packet.
func (c *Conn) WritePacket(pk packet.Packet) error {
	buf := internal.BufferPool.Get().(*bytes.Buffer)
	defer func() {
		buf.Reset()
		internal.BufferPool.Put(buf)
	}()

	id := pk.ID()
	w := protocol.NewWriter(buf, 0)
	w.Varuint32(&id)
	pk.Marshal(w)
	return c.write(flagControl, buf.Bytes())
}

// WriteGame writes the payload of a game packet in the native version of the server.
func (c *Conn) WriteGame(payload []byte) error {
	return c.write(0, payload)
}

func (c *Conn) write(flags byte, body []byte) error {
	select {
	case <-c.closed:
		return ErrClosed
	default:
	}

	frame := internal.BufferPool.Get().(*bytes.Buffer)
	defer func() {
		frame.Reset()
		internal.BufferPool.Put(frame)
	}()

	if c.threshold > 0 && len(body) >= c.threshold {
		flags |= flagCompressed
		body = snappy.Encode(nil, body)
	}
	frame.WriteByte(flags)
	frame.Write(body)

	c.writeMu.Lock()
	defer c.writeMu.Unlock()
	return c.writer.Write(frame.Bytes())
}

// Close closes the connection. It is safe to call Close more than once.
func (c *Conn) Close() (err error) {
	c.once.Do(func() {
		close(c.closed)
		err = c.conn.Close()
	})
	return
}

// Closed returns a channel that is closed once the connection is.
func (c *Conn) Closed() <-chan struct{} {
	return c.closed
}

// expect reads frames from the connection until a control packet with the id passed arrives. Frames
// read before it are deferred and returned by later calls to ReadPacket.
func (c *Conn) expect(id uint32) (packet.Packet, error) {
	for {
		pk, err := c.read()
		if err != nil {
			return nil, err
		}
		if pk, ok := pk.(packet.Packet); ok && pk.ID() == id {
			return pk, nil
		}
		c.deferred = append(c.deferred, pk)
	}
}

// decode decodes the body of a control packet.
func (c *Conn) decode(body []byte) (pk packet.Packet, err error) {
	buf := bytes.NewBuffer(body)
	defer func() {
		if r := recover(); r != nil {
			err = proto.Decode("read control packet", fmt.Errorf("%v: %w", r, proto.ErrShortBuffer))
		}
	}()

	var id uint32
	r := protocol.NewReader(buf, 0, false)
	r.Varuint32(&id)
	factory, ok := c.pool[id]
	if !ok {
		return nil, proto.Decode("read control packet", fmt.Errorf("unknown control packet id %d", id))
	}

	pk = factory()
	pk.Marshal(r)
	if buf.Len() != 0 {
		return nil, proto.Decode("read control packet", fmt.Errorf("%d bytes left: %w", buf.Len(), proto.ErrTrailingBytes))
	}
	return pk, nil
}

func decompress(body []byte) ([]byte, error) {
	n, err := snappy.DecodedLen(body)
	if err != nil {
		return nil, proto.Decode("decompress link frame", err)
	}
	if n > proto.MaxFrameSize {
		return nil, proto.Decode("decompress link frame", fmt.Errorf("decompressed size %d exceeds limit of %d bytes", n, proto.MaxFrameSize))
	}
	decoded, err := snappy.Decode(nil, body)
	if err != nil {
		return nil, proto.Decode("decompress link frame", err)
	}
	return decoded, nil
}
