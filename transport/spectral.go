package transport

import (
	"context"
	"io"
	"log/slog"

	"github.com/cooldogedev/spectral"
)

// Spectral implements the Transport interface using Spectral. Like QUIC, it multiplexes the
// sessions to a server over one connection.
type Spectral struct {
	*multiplexer[spectral.Connection]
}

// NewSpectral creates a new Spectral transport instance.
func NewSpectral(logger *slog.Logger) *Spectral {
	m := newMultiplexer[spectral.Connection](logger)
	m.connect = func(ctx context.Context, addr string) (spectral.Connection, error) {
		return spectral.Dial(ctx, addr)
	}
	m.open = func(ctx context.Context, conn spectral.Connection) (io.ReadWriteCloser, error) {
		return conn.OpenStream(ctx)
	}
	m.abort = func(conn spectral.Connection, reason string) {
		_ = conn.CloseWithError(0, reason)
	}
	return &Spectral{multiplexer: m}
}
