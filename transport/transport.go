package transport

import (
	"context"
	"fmt"
	"io"
	"log/slog"
)

// Transport defines an interface for establishing server connections.
type Transport interface {
	// Dial connects to the specified address and returns an io.ReadWriteCloser.
	// It returns an error if the connection cannot be established.
	Dial(ctx context.Context, addr string) (io.ReadWriteCloser, error)
}

// New returns the transport registered under name: tcp, quic, kcp or spectral.
func New(name string, logger *slog.Logger) (Transport, error) {
	switch name {
	case "", "tcp":
		return NewTCP(), nil
	case "quic":
		return NewQUIC(logger), nil
	case "kcp":
		return NewKCP(logger), nil
	case "spectral":
		return NewSpectral(logger), nil
	}
	return nil, fmt.Errorf("unknown transport %q", name)
}
