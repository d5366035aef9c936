package transport

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"sync"
)

// session is a multiplexed connection to a server that stays open until its context is done.
type session interface {
	Context() context.Context
}

// multiplexer keeps one connection per server address and opens a stream on it for every dial.
type multiplexer[S session] struct {
	connect func(ctx context.Context, addr string) (S, error)
	open    func(ctx context.Context, conn S) (io.ReadWriteCloser, error)
	abort   func(conn S, reason string)

	connections map[string]S
	logger      *slog.Logger
	mu          sync.Mutex
}

func newMultiplexer[S session](logger *slog.Logger) *multiplexer[S] {
	return &multiplexer[S]{
		connections: make(map[string]S),
		logger:      logger,
	}
}

// Dial opens a stream to addr, connecting first if there is no connection to addr yet.
func (m *multiplexer[S]) Dial(ctx context.Context, addr string) (io.ReadWriteCloser, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	conn, ok := m.connections[addr]
	if !ok {
		c, err := m.connect(ctx, addr)
		if err != nil {
			return nil, err
		}
		conn = c
		m.connections[addr] = conn
		m.logger.Debug("established connection", "addr", addr)
		go m.watch(addr, conn)
	}

	stream, err := m.open(ctx, conn)
	if err != nil {
		m.abort(conn, "failed to open stream")
		return nil, err
	}
	return stream, nil
}

// watch forgets conn once it is closed.
func (m *multiplexer[S]) watch(addr string, conn S) {
	<-conn.Context().Done()
	m.mu.Lock()
	delete(m.connections, addr)
	m.mu.Unlock()
	if err := context.Cause(conn.Context()); err != nil && !errors.Is(err, context.Canceled) {
		m.logger.Error("closed connection", "addr", addr, "err", err)
	} else {
		m.logger.Debug("closed connection", "addr", addr)
	}
}
