package transport

import (
	"context"
	"io"
	"net"
)

// TCP implements the Transport interface to establish connections to servers using the TCP protocol.
type TCP struct {
	dialer net.Dialer
}

// NewTCP creates a new TCP transport instance.
func NewTCP() *TCP {
	return &TCP{}
}

// Dial ...
func (t *TCP) Dial(ctx context.Context, addr string) (io.ReadWriteCloser, error) {
	conn, err := t.dialer.DialContext(ctx, "tcp", addr)
	if err != nil {
		return nil, err
	}

	if tcpConn, ok := conn.(*net.TCPConn); ok {
		_ = tcpConn.SetNoDelay(true)
		_ = tcpConn.SetReadBuffer(1024 * 1024 * 4)
		_ = tcpConn.SetWriteBuffer(1024 * 1024 * 4)
	}
	return conn, nil
}
