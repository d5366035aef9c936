package prism

import (
	"errors"
	"fmt"
	"log/slog"
	"net"
	"sync"
	"time"

	"github.com/cooldogedev/prism/protocol"
	"github.com/cooldogedev/prism/serializer"
	"github.com/cooldogedev/prism/server"
	"github.com/cooldogedev/prism/session"
	"github.com/cooldogedev/prism/storage"
	tr "github.com/cooldogedev/prism/transport"
	"github.com/cooldogedev/prism/util"
	"github.com/cooldogedev/prism/version"
)

const (
	stateStatus = 1
	stateLogin  = 2

	idHandshake  = 0x00
	idStatus     = 0x00
	idPing       = 0x01
	idLoginStart = 0x00

	handshakeTimeout = time.Second * 10
)

// ErrClosed is returned by Accept once the proxy is closed.
var ErrClosed = errors.New("prism closed")

// Prism accepts game clients and connects them to servers speaking the native version.
type Prism struct {
	discovery server.Discovery
	transport tr.Transport

	listener net.Listener
	registry *session.Registry
	shared   *storage.Shared
	status   *util.StatusProvider

	incoming chan *session.Session
	closed   chan struct{}
	once     sync.Once

	logger *slog.Logger
	opts   util.Opts
}

// NewPrism creates a proxy. Nil opts and transport are replaced by the defaults. It returns an error
// if the native version of the options is unknown.
func NewPrism(discovery server.Discovery, logger *slog.Logger, opts *util.Opts, transport tr.Transport) (*Prism, error) {
	if opts == nil {
		opts = util.DefaultOpts()
	}

	native, err := opts.Version()
	if err != nil {
		return nil, err
	}

	if transport == nil {
		transport = tr.NewTCP()
	}

	shared := storage.NewShared(storage.SharedConfig{NativeVersion: native})
	return &Prism{
		discovery: discovery,
		transport: transport,

		registry: session.NewRegistry(),
		shared:   shared,
		status:   util.NewStatusProvider(opts.MOTD, opts.MaxPlayers, shared.Translations()),

		incoming: make(chan *session.Session),
		closed:   make(chan struct{}),

		logger: logger,
		opts:   *opts,
	}, nil
}

// Listen starts listening for clients. Handshakes are performed in the background, clients that log
// in are returned by Accept.
func (p *Prism) Listen() error {
	listener, err := net.Listen("tcp", p.opts.Addr)
	if err != nil {
		p.logger.Error("failed to listen", "err", err)
		return err
	}

	p.listener = listener
	p.logger.Info("started listening", "addr", listener.Addr().String(), "native", p.shared.NativeVersion().String())
	go p.serve()
	return nil
}

// Addr returns the address the proxy listens on.
func (p *Prism) Addr() net.Addr {
	return p.listener.Addr()
}

func (p *Prism) serve() {
	for {
		conn, err := p.listener.Accept()
		if err != nil {
			select {
			case <-p.closed:
			default:
				p.logger.Error("failed to accept connection", "err", err)
				_ = p.Close()
			}
			return
		}
		go p.handle(conn)
	}
}

// Accept returns the session of the next client that sent its login start. If AutoLogin is enabled,
// the session connects to a server as soon as it was returned.
func (p *Prism) Accept() (*session.Session, error) {
	select {
	case s := <-p.incoming:
		return s, nil
	case <-p.closed:
		return nil, ErrClosed
	}
}

func (p *Prism) handle(conn net.Conn) {
	logger := p.logger.With("addr", conn.RemoteAddr().String())
	_ = conn.SetReadDeadline(time.Now().Add(handshakeTimeout))
	reader := protocol.NewVarIntReader(conn)
	writer := protocol.NewVarIntWriter(conn)

	h, err := readHandshake(reader)
	if err != nil {
		_ = conn.Close()
		logger.Debug("failed to read handshake", "err", err)
		return
	}

	switch h.nextState {
	case stateStatus:
		if err := p.handleStatus(reader, writer, h.protocol); err != nil {
			logger.Debug("failed to answer status request", "err", err)
		}
		_ = conn.Close()
	case stateLogin:
		s, err := p.handleLogin(conn, reader, writer, h.protocol)
		if err != nil {
			_ = conn.Close()
			logger.Debug("failed to log in", "protocol", h.protocol, "err", err)
			return
		}
		_ = conn.SetReadDeadline(time.Time{})
		select {
		case p.incoming <- s:
			logger.Debug("accepted session", "username", s.Client().Username())
			if p.opts.AutoLogin {
				if err := s.Login(); err != nil {
					logger.Error("failed to login session", "username", s.Client().Username(), "err", err)
				}
			}
		case <-p.closed:
			s.Close()
		}
	default:
		_ = conn.Close()
		logger.Debug("unknown handshake state", "state", h.nextState)
	}
}

type handshake struct {
	protocol  int32
	host      string
	port      uint16
	nextState int32
}

// readHandshake reads the handshake every client since 1.7 starts with.
func readHandshake(r *protocol.Reader) (h handshake, err error) {
	payload, err := r.ReadPacket()
	if err != nil {
		return h, err
	}

	buf := protocol.NewBuffer(payload)
	s := serializer.MustStrategy(version.Latest)
	id, err := serializer.ReadPacketID(buf, s)
	if err != nil {
		return h, err
	}
	if id != idHandshake {
		return h, protocol.Decode("read handshake", fmt.Errorf("unexpected packet id %#x", id))
	}

	if h.protocol, err = buf.ReadVarInt(); err != nil {
		return h, protocol.Decode("read handshake", err)
	}
	if h.host, err = serializer.ReadString(buf, s, 255); err != nil {
		return h, err
	}
	if h.port, err = buf.ReadUint16(); err != nil {
		return h, protocol.Decode("read handshake", err)
	}
	if h.nextState, err = buf.ReadVarInt(); err != nil {
		return h, protocol.Decode("read handshake", err)
	}
	return h, nil
}

// handleStatus answers the status request and the ping of a server list ping.
func (p *Prism) handleStatus(r *protocol.Reader, w *protocol.Writer, protocolID int32) error {
	s := serializer.MustStrategy(version.Latest)
	for {
		payload, err := r.ReadPacket()
		if err != nil {
			return err
		}

		buf := protocol.NewBuffer(payload)
		id, err := serializer.ReadPacketID(buf, s)
		if err != nil {
			return err
		}

		d := serializer.NewPacketData(id, s, nil, nil)
		switch id {
		case idStatus:
			status, err := p.status.ServerStatus(protocolID, len(p.registry.GetSessions()))
			if err != nil {
				d.Release()
				return err
			}
			str := string(status)
			d.String(&str)
		case idPing:
			payload, err := buf.ReadInt64()
			if err != nil {
				d.Release()
				return protocol.Decode("read ping", err)
			}
			d.Buffer().WriteInt64(payload)
		default:
			d.Release()
			return protocol.Decode("read status", fmt.Errorf("unexpected packet id %#x", id))
		}

		err = d.Err()
		if err == nil {
			err = w.Write(d.Bytes())
		}
		d.Release()
		if err != nil || id == idPing {
			return err
		}
	}
}

// handleLogin reads the login start and creates the session of the client.
func (p *Prism) handleLogin(conn net.Conn, r *protocol.Reader, w *protocol.Writer, protocolID int32) (*session.Session, error) {
	v, ok := version.ByID(version.TypePC, protocolID)
	if !ok || v.Before(version.Minecraft_1_7_5) {
		_ = w.Write(session.LoginDisconnect(fmt.Sprintf("Unsupported version, use %s to %s.", version.Minecraft_1_7_5.Name(), version.Latest.Name())))
		return nil, &protocol.UnsupportedVersionError{Op: "login", Version: v}
	}

	payload, err := r.ReadPacket()
	if err != nil {
		return nil, err
	}
	buf := protocol.NewBuffer(payload)
	s := serializer.MustStrategy(v)
	id, err := serializer.ReadPacketID(buf, s)
	if err != nil {
		return nil, err
	}
	if id != idLoginStart {
		return nil, protocol.Decode("read login start", fmt.Errorf("unexpected packet id %#x", id))
	}
	username, err := serializer.ReadString(buf, s, 16)
	if err != nil {
		return nil, err
	}
	if p.registry.GetSessionByUsername(username) != nil {
		_ = w.Write(session.LoginDisconnect("You are already connected."))
		return nil, fmt.Errorf("%s is already connected", username)
	}

	client := session.NewClient(conn, r, v, username)
	conf := session.Config{
		Token:                p.opts.Token,
		LatencyInterval:      time.Duration(p.opts.LatencyInterval) * time.Millisecond,
		CompressionThreshold: p.opts.CompressionThreshold,
		DialTimeout:          time.Duration(p.opts.DialTimeout) * time.Millisecond,
		DefaultLocale:        p.opts.DefaultLocale,
	}
	sess, err := session.NewSession(client, p.shared, conf, p.logger, p.registry, p.discovery, p.transport)
	if err != nil {
		_ = w.Write(session.LoginDisconnect(err.Error()))
		return nil, err
	}
	return sess, nil
}

// Discovery ...
func (p *Prism) Discovery() server.Discovery {
	return p.discovery
}

// Opts ...
func (p *Prism) Opts() util.Opts {
	return p.opts
}

// Registry ...
func (p *Prism) Registry() *session.Registry {
	return p.registry
}

// Shared returns the storage shared by all sessions.
func (p *Prism) Shared() *storage.Shared {
	return p.shared
}

// Transport ...
func (p *Prism) Transport() tr.Transport {
	return p.transport
}

// Close stops listening. Sessions already accepted stay open.
func (p *Prism) Close() (err error) {
	p.once.Do(func() {
		close(p.closed)
		if p.listener != nil {
			err = p.listener.Close()
		}
	})
	return
}
