package session

import (
	"crypto/md5"
	"net"
	"sync"

	"github.com/cooldogedev/prism/protocol"
	"github.com/cooldogedev/prism/version"
	"github.com/google/uuid"
)

// Client is the connection of a game client that finished the login start. Frames carry a VarInt
// length prefix.
type Client struct {
	conn net.Conn

	reader *protocol.Reader

	writer  *protocol.Writer
	writeMu sync.Mutex

	username string
	id       uuid.UUID
	version  version.Version
}

// NewClient wraps conn. The reader passed must be the one the handshake was read with, so that no
// buffered bytes are lost.
func NewClient(conn net.Conn, reader *protocol.Reader, v version.Version, username string) *Client {
	return &Client{
		conn: conn,

		reader: reader,
		writer: protocol.NewVarIntWriter(conn),

		username: username,
		id:       offlineUUID(username),
		version:  v,
	}
}

// offlineUUID derives the id Java edition servers in offline mode assign to a username.
func offlineUUID(username string) uuid.UUID {
	id := uuid.UUID(md5.Sum([]byte("OfflinePlayer:" + username)))
	id[6] = id[6]&0x0f | 0x30
	id[8] = id[8]&0x3f | 0x80
	return id
}

// ReadPacket reads the payload of the next frame.
func (c *Client) ReadPacket() ([]byte, error) {
	return c.reader.ReadPacket()
}

// WritePacket writes payload as a single frame. It is safe for concurrent use.
func (c *Client) WritePacket(payload []byte) error {
	c.writeMu.Lock()
	defer c.writeMu.Unlock()
	return c.writer.Write(payload)
}

// Username ...
func (c *Client) Username() string {
	return c.username
}

// UUID ...
func (c *Client) UUID() uuid.UUID {
	return c.id
}

// Version ...
func (c *Client) Version() version.Version {
	return c.version
}

// RemoteAddr ...
func (c *Client) RemoteAddr() net.Addr {
	return c.conn.RemoteAddr()
}

// Close ...
func (c *Client) Close() error {
	return c.conn.Close()
}
