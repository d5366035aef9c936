package api

import (
	"errors"
	"io"
	"log/slog"
	"net"

	"github.com/cooldogedev/prism/api/packet"
	"github.com/cooldogedev/prism/chat"
	gamepacket "github.com/cooldogedev/prism/packet"
	"github.com/cooldogedev/prism/session"
)

// API lets other processes control the sessions of a proxy.
type API struct {
	authentication Authentication
	sessions       *session.Registry
	listener       net.Listener
	logger         *slog.Logger
}

// NewAPI ...
func NewAPI(sessions *session.Registry, logger *slog.Logger, authentication Authentication) *API {
	return &API{
		authentication: authentication,
		sessions:       sessions,
		logger:         logger,
	}
}

// Listen ...
func (a *API) Listen(addr string) error {
	listener, err := net.Listen("tcp", addr)
	if err != nil {
		return err
	}
	a.listener = listener
	a.logger.Info("api started listening", "addr", listener.Addr().String())
	return nil
}

// Addr returns the address the API listens on.
func (a *API) Addr() net.Addr {
	return a.listener.Addr()
}

// Accept accepts the next connection and handles it in a new goroutine.
func (a *API) Accept() error {
	conn, err := a.listener.Accept()
	if err != nil {
		return err
	}

	if conn, ok := conn.(*net.TCPConn); ok {
		_ = conn.SetNoDelay(true)
	}

	go a.handle(conn)
	a.logger.Info("accepted api connection", "addr", conn.RemoteAddr().String())
	return nil
}

// Close ...
func (a *API) Close() error {
	if a.listener == nil {
		return nil
	}
	return a.listener.Close()
}

func (a *API) handle(conn net.Conn) {
	c := NewClient(conn, packet.NewPool())
	logger := a.logger.With("addr", conn.RemoteAddr().String())
	defer func() {
		_ = c.Close()
		logger.Info("closed api connection")
	}()

	connectionRequestPacket, err := c.ReadPacket()
	if err != nil {
		_ = c.WritePacket(&packet.ConnectionResponse{Response: packet.ResponseFail})
		logger.Error("failed to read connection request", "err", err)
		return
	}

	connectionRequest, ok := connectionRequestPacket.(*packet.ConnectionRequest)
	if !ok {
		_ = c.WritePacket(&packet.ConnectionResponse{Response: packet.ResponseFail})
		logger.Error("expected connection request", "id", connectionRequestPacket.ID())
		return
	}

	if a.authentication != nil && !a.authentication.Authenticate(connectionRequest.Token) {
		_ = c.WritePacket(&packet.ConnectionResponse{Response: packet.ResponseUnauthorized})
		logger.Debug("closed unauthenticated connection")
		return
	}

	if err := c.WritePacket(&packet.ConnectionResponse{Response: packet.ResponseSuccess}); err != nil {
		logger.Error("failed to write connection response", "err", err)
		return
	}
	logger.Info("authorized api connection")
	for {
		pk, err := c.ReadPacket()
		if err != nil {
			if !errors.Is(err, io.EOF) && !errors.Is(err, net.ErrClosed) {
				logger.Error("failed to read packet", "err", err)
			}
			return
		}
		a.handlePacket(logger, pk)
	}
}

func (a *API) handlePacket(logger *slog.Logger, pk packet.Packet) {
	switch pk := pk.(type) {
	case *packet.Kick:
		s := a.sessions.GetSessionByUsername(pk.Username)
		if s == nil {
			logger.Debug("tried to disconnect an unknown player", "username", pk.Username)
			return
		}
		s.Disconnect(pk.Reason)
	case *packet.Transfer:
		s := a.sessions.GetSessionByUsername(pk.Username)
		if s == nil {
			logger.Debug("tried to transfer an unknown player", "username", pk.Username)
			return
		}

		if err := s.Transfer(pk.Addr); err != nil {
			logger.Error("failed to transfer player", "username", pk.Username, "addr", pk.Addr, "err", err)
		}
	case *packet.Broadcast:
		message, err := chat.FromJSON(pk.Message)
		if err != nil {
			logger.Error("failed to parse broadcast message", "err", err)
			return
		}
		for _, s := range a.sessions.GetSessions() {
			if err := s.SendMessage(message, gamepacket.Position(pk.Position)); err != nil {
				logger.Debug("failed to broadcast message", "username", s.Client().Username(), "err", err)
			}
		}
	}
}
