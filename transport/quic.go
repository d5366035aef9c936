package transport

import (
	"context"
	"crypto/tls"
	"io"
	"log/slog"
	"time"

	"github.com/quic-go/quic-go"
	"github.com/quic-go/quic-go/qlog"
)

// QUIC implements the Transport interface using the QUIC protocol. It keeps a single connection per
// server and opens a stream on it for every session.
type QUIC struct {
	*multiplexer[quic.Connection]
}

// NewQUIC creates a new QUIC transport instance.
func NewQUIC(logger *slog.Logger) *QUIC {
	m := newMultiplexer[quic.Connection](logger)
	m.connect = dialQUIC
	m.open = func(ctx context.Context, conn quic.Connection) (io.ReadWriteCloser, error) {
		return conn.OpenStreamSync(ctx)
	}
	m.abort = func(conn quic.Connection, reason string) {
		_ = conn.CloseWithError(0, reason)
	}
	return &QUIC{multiplexer: m}
}

func dialQUIC(ctx context.Context, addr string) (quic.Connection, error) {
	return quic.DialAddr(
		ctx,
		addr,
		&tls.Config{
			InsecureSkipVerify: true,
			NextProtos:         []string{"prism"},
		},
		&quic.Config{
			MaxIdleTimeout:                 time.Second * 10,
			InitialStreamReceiveWindow:     1024 * 1024 * 10,
			InitialConnectionReceiveWindow: 1024 * 1024 * 10,
			KeepAlivePeriod:                time.Second * 5,
			InitialPacketSize:              1350,
			Tracer:                         qlog.DefaultConnectionTracer,
		},
	)
}
