package server

import (
	"context"
	"fmt"

	"github.com/cooldogedev/prism/server/packet"
	"github.com/cooldogedev/prism/transport"
)

// Dialer dials servers on behalf of a player.
type Dialer struct {
	Identity Identity
	Token    string
	Locale   string
	// Cache is passed on to the server in the connection request.
	Cache []byte
	// CompressionThreshold is the smallest frame body that is compressed. Zero disables compression.
	CompressionThreshold int
}

// Dial connects to the server at addr using t and performs the connection request. The context
// bounds both the dial and the exchange.
func (d Dialer) Dial(ctx context.Context, t transport.Transport, addr string) (*Conn, error) {
	rwc, err := t.Dial(ctx, addr)
	if err != nil {
		return nil, err
	}

	c := NewConn(rwc, d.CompressionThreshold)
	errs := make(chan error, 1)
	go func() {
		errs <- d.connect(c)
	}()

	select {
	case <-ctx.Done():
		_ = c.Close()
		<-errs
		return nil, ctx.Err()
	case err := <-errs:
		if err != nil {
			_ = c.Close()
			return nil, err
		}
		return c, nil
	}
}

// connect sends the connection request and waits for the server to accept it.
func (d Dialer) connect(c *Conn) error {
	err := c.WritePacket(&packet.ConnectionRequest{
		Addr:     d.Identity.Addr,
		Token:    d.Token,
		Username: d.Identity.Username,
		UUID:     d.Identity.UUID,
		Protocol: d.Identity.Version.ID(),
		Locale:   d.Locale,
		Cache:    d.Cache,
	})
	if err != nil {
		return fmt.Errorf("failed to write connection request packet: %w", err)
	}

	pk, err := c.expect(packet.IDConnectionResponse)
	if err != nil {
		return fmt.Errorf("failed to read connection response packet: %w", err)
	}
	if res := pk.(*packet.ConnectionResponse); !res.Accepted {
		return &RefusedError{Reason: res.Reason}
	}
	return nil
}

// RefusedError is returned by Dial when the server refused the player.
type RefusedError struct {
	Reason string
}

// Error ...
func (e *RefusedError) Error() string {
	return "connection refused by server: " + e.Reason
}
