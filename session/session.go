package session

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"sync/atomic"
	"time"

	"github.com/cooldogedev/prism/chat"
	"github.com/cooldogedev/prism/packet"
	"github.com/cooldogedev/prism/server"
	"github.com/cooldogedev/prism/storage"
	"github.com/cooldogedev/prism/transport"
)

// Config holds the settings every session is created with.
type Config struct {
	// Token is sent to servers in the connection request.
	Token string
	// LatencyInterval is the interval at which the latency of the link is measured.
	LatencyInterval time.Duration
	// CompressionThreshold is the smallest link frame that is compressed. Zero disables compression.
	CompressionThreshold int
	// DialTimeout bounds dialing a server, including the connection request.
	DialTimeout time.Duration
	// DefaultLocale is the locale assumed until the client reports its own.
	DefaultLocale string
}

// Session connects a client to a server and translates the packets between them.
type Session struct {
	client *Client
	conf   Config

	serverAddr string
	serverConn *server.Conn
	serverMu   sync.RWMutex
	cache      []byte

	translator   *Translator
	translatorMu sync.Mutex

	logger    *slog.Logger
	registry  *Registry
	discovery server.Discovery
	transport transport.Transport

	processor Processor
	tracker   *Tracker

	serverLatency atomic.Int64
	linkLatency   atomic.Int64

	ch           chan struct{}
	closed       atomic.Bool
	loggedIn     atomic.Bool
	once         sync.Once
	transferring atomic.Bool
}

// NewSession creates a session for client. It returns an UnsupportedVersionError if the version of the
// client cannot be translated. The session does not talk to a server until Login is called.
func NewSession(client *Client, shared *storage.Shared, conf Config, logger *slog.Logger, registry *Registry, discovery server.Discovery, t transport.Transport) (*Session, error) {
	local := storage.NewLocal()
	local.SetLocale(conf.DefaultLocale)
	translator, err := NewTranslator(client.Version(), local, shared)
	if err != nil {
		return nil, err
	}
	return &Session{
		client: client,
		conf:   conf,

		translator: translator,

		logger:    logger.With("username", client.Username(), "version", client.Version().String()),
		registry:  registry,
		discovery: discovery,
		transport: t,

		processor: NopProcessor{},
		tracker:   NewTracker(),

		ch: make(chan struct{}),
	}, nil
}

// Login discovers a server, connects the session to it and starts forwarding packets. The session is
// closed if Login fails.
func (s *Session) Login() (err error) {
	defer func() {
		if err != nil {
			s.Close()
		}
	}()

	addr, err := s.discovery.Discover(s.identity())
	if err != nil {
		s.disconnectLogin(chat.Text("No server is available."))
		return fmt.Errorf("failed to discover a server: %w", err)
	}

	conn, err := s.dial(addr)
	if err != nil {
		var refused *server.RefusedError
		if errors.As(err, &refused) {
			s.disconnectLogin(chat.Text(refused.Reason))
		} else {
			s.disconnectLogin(chat.Text("Failed to connect to the server."))
		}
		return fmt.Errorf("failed to dial server: %w", err)
	}

	s.serverMu.Lock()
	s.serverAddr = addr
	s.serverConn = conn
	s.serverMu.Unlock()

	s.translatorMu.Lock()
	success, err := s.translator.EncodeLoginSuccess(s.client.UUID(), s.client.Username())
	s.translatorMu.Unlock()
	if err != nil {
		return fmt.Errorf("failed to encode login success packet: %w", err)
	}
	if err := s.client.WritePacket(success); err != nil {
		return fmt.Errorf("failed to write login success packet: %w", err)
	}
	s.loggedIn.Store(true)

	s.registry.AddSession(s.client.UUID(), s)
	go handleIncoming(s)
	go handleOutgoing(s)
	go handleLatency(s, s.conf.LatencyInterval)
	s.logger.Info("started session", "addr", addr)
	return nil
}

// Transfer moves the session to the server at addr. Windows the previous server left open are closed
// and titles are reset.
func (s *Session) Transfer(addr string) error {
	if !s.transferring.CompareAndSwap(false, true) {
		return errors.New("already transferring")
	}

	s.serverMu.Lock()
	defer func() {
		s.serverMu.Unlock()
		s.transferring.Store(false)
	}()

	origin := s.serverAddr
	ctx := NewContext()
	s.processor.ProcessPreTransfer(ctx, &origin, &addr)
	if ctx.Cancelled() {
		return errors.New("transfer cancelled")
	}

	if origin == addr {
		return errors.New("already connected to this server")
	}

	conn, err := s.dial(addr)
	if err != nil {
		s.processor.ProcessTransferFailure(origin, addr, err)
		return fmt.Errorf("failed to dial server: %w", err)
	}

	s.translatorMu.Lock()
	packets := s.tracker.clear(s)
	s.translatorMu.Unlock()
	for _, pk := range packets {
		if err := s.WritePacket(pk); err != nil {
			s.logger.Error("failed to clear client state", "err", err)
		}
	}

	if s.serverConn != nil {
		_ = s.serverConn.Close()
	}
	s.serverAddr = addr
	s.serverConn = conn
	s.processor.ProcessPostTransfer(origin, addr)
	s.logger.Debug("transferred session", "addr", addr)
	return nil
}

// WritePacket translates pk for the client and writes it.
func (s *Session) WritePacket(pk packet.ClientBound) error {
	s.translatorMu.Lock()
	frames, err := s.translator.EncodeClient(pk)
	s.translatorMu.Unlock()
	if err != nil {
		return err
	}
	for _, frame := range frames {
		if err := s.client.WritePacket(frame); err != nil {
			return err
		}
	}
	return nil
}

// SendMessage sends a chat message to the client.
func (s *Session) SendMessage(message chat.Component, position packet.Position) error {
	return s.WritePacket(&packet.Chat{Message: message, Position: position})
}

// Disconnect disconnects the client with reason and closes the session.
func (s *Session) Disconnect(reason string) {
	if !s.loggedIn.Load() {
		s.disconnectLogin(chat.Text(reason))
	} else if err := s.WritePacket(&packet.Disconnect{Message: chat.Text(reason)}); err != nil {
		s.logger.Debug("failed to write disconnect packet", "err", err)
	}
	s.Close()
}

func (s *Session) disconnectLogin(reason chat.Component) {
	s.translatorMu.Lock()
	payload, err := s.translator.EncodeLoginDisconnect(reason)
	s.translatorMu.Unlock()
	if err == nil {
		err = s.client.WritePacket(payload)
	}
	if err != nil {
		s.logger.Debug("failed to write login disconnect packet", "err", err)
	}
}

// Processor ...
func (s *Session) Processor() Processor {
	return s.processor
}

// SetProcessor sets the processor that observes the packets of the session. It must be set before
// Login is called.
func (s *Session) SetProcessor(processor Processor) {
	s.processor = processor
}

// Latency returns the latency of the client in milliseconds as last reported by the server, plus the
// latency of the link.
func (s *Session) Latency() int64 {
	return s.serverLatency.Load() + s.linkLatency.Load()
}

// Client ...
func (s *Session) Client() *Client {
	return s.client
}

// Server ...
func (s *Session) Server() *server.Conn {
	s.serverMu.RLock()
	defer s.serverMu.RUnlock()
	return s.serverConn
}

// ServerAddr returns the address of the server the session is connected to.
func (s *Session) ServerAddr() string {
	s.serverMu.RLock()
	defer s.serverMu.RUnlock()
	return s.serverAddr
}

// Locale returns the locale the client last reported.
func (s *Session) Locale() string {
	s.translatorMu.Lock()
	defer s.translatorMu.Unlock()
	return s.translator.Local().Locale()
}

// Close closes the connections of the session. It is safe to call Close more than once.
func (s *Session) Close() {
	s.once.Do(func() {
		s.closed.Store(true)
		close(s.ch)
		_ = s.client.Close()

		if conn := s.Server(); conn != nil {
			_ = conn.Close()
		}

		s.registry.RemoveSession(s.client.UUID())
		s.processor.ProcessDisconnection()
		s.logger.Info("closed session")
	})
}

func (s *Session) identity() server.Identity {
	return server.Identity{
		Username: s.client.Username(),
		UUID:     s.client.UUID(),
		Addr:     s.client.RemoteAddr().String(),
		Version:  s.client.Version(),
	}
}

func (s *Session) dial(addr string) (*server.Conn, error) {
	ctx := context.Background()
	if s.conf.DialTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.conf.DialTimeout)
		defer cancel()
	}

	d := server.Dialer{
		Identity:             s.identity(),
		Token:                s.conf.Token,
		Locale:               s.Locale(),
		Cache:                s.cache,
		CompressionThreshold: s.conf.CompressionThreshold,
	}
	return d.Dial(ctx, s.transport, addr)
}
