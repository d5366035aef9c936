package api

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"net"

	"github.com/cooldogedev/prism/api/packet"
	"github.com/cooldogedev/prism/chat"
	"github.com/cooldogedev/prism/internal"
	gamepacket "github.com/cooldogedev/prism/packet"
	"github.com/cooldogedev/prism/protocol"
)

// Client is one end of an API connection.
type Client struct {
	conn net.Conn
	pool packet.Pool

	writer *protocol.Writer
	reader *protocol.Reader
}

// NewClient ...
func NewClient(conn net.Conn, pool packet.Pool) *Client {
	return &Client{
		conn: conn,
		pool: pool,

		reader: protocol.NewReader(conn),
		writer: protocol.NewWriter(conn),
	}
}

// ReadPacket reads the next packet from the connection.
func (c *Client) ReadPacket() (pk packet.Packet, err error) {
	payload, err := c.reader.ReadPacket()
	if err != nil {
		return nil, err
	}

	buf := bytes.NewBuffer(payload)
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("panic while decoding packet: %v", r)
		}
	}()

	if buf.Len() < 4 {
		return nil, fmt.Errorf("packet of %d bytes has no id", buf.Len())
	}
	packetID := binary.LittleEndian.Uint32(buf.Next(4))
	factory, ok := c.pool[packetID]
	if !ok {
		return nil, fmt.Errorf("unknown packet ID: %v", packetID)
	}

	pk = factory()
	pk.Decode(buf)
	return
}

// WritePacket ...
func (c *Client) WritePacket(pk packet.Packet) error {
	buf := internal.BufferPool.Get().(*bytes.Buffer)
	defer func() {
		buf.Reset()
		internal.BufferPool.Put(buf)
	}()

	buf.Write(binary.LittleEndian.AppendUint32(nil, pk.ID()))
	pk.Encode(buf)
	return c.writer.Write(buf.Bytes())
}

// Kick disconnects the player with the username passed.
func (c *Client) Kick(username, reason string) error {
	return c.WritePacket(&packet.Kick{Reason: reason, Username: username})
}

// Transfer moves the player with the username passed to the server at addr.
func (c *Client) Transfer(username, addr string) error {
	return c.WritePacket(&packet.Transfer{Addr: addr, Username: username})
}

// Broadcast sends message to every player.
func (c *Client) Broadcast(message chat.Component, position gamepacket.Position) error {
	return c.WritePacket(&packet.Broadcast{Message: chat.ToJSON(message), Position: uint8(position)})
}

// Close ...
func (c *Client) Close() error {
	return c.conn.Close()
}
