package session

import (
	"errors"
	"io"
	"net"
	"time"

	"github.com/cooldogedev/prism/protocol"
	"github.com/cooldogedev/prism/server/packet"
)

// handleIncoming forwards the packets of the server to the client.
func handleIncoming(s *Session) {
	defer s.Close()
	for {
		select {
		case <-s.ch:
			return
		default:
		}

		server := s.Server()
		pk, err := server.ReadPacket()
		if err != nil {
			if server != s.Server() {
				continue
			}

			if s.closed.Load() {
				return
			}
			s.logger.Error("failed to read packet from server", "err", err)

			fallbackServer, err := s.discovery.DiscoverFallback(s.identity())
			if err != nil || fallbackServer == "" {
				s.logger.Debug("failed to discover a fallback server", "err", err)
				return
			}

			if err := s.Transfer(fallbackServer); err != nil {
				s.logger.Error("failed to transfer to the fallback server", "addr", fallbackServer, "err", err)
				return
			}
			continue
		}

		switch pk := pk.(type) {
		case *packet.Latency:
			s.serverLatency.Store(pk.Latency)
			s.linkLatency.Store(max(time.Now().UnixMilli()-pk.Timestamp, 0) / 2)
		case *packet.Transfer:
			if err := s.Transfer(pk.Addr); err != nil {
				s.logger.Error("failed to transfer", "addr", pk.Addr, "err", err)
			}
		case *packet.UpdateCache:
			s.serverMu.Lock()
			s.cache = pk.Cache
			s.serverMu.Unlock()
		case packet.Packet:
			s.logger.Debug("dropped unexpected control packet", "id", pk.ID())
		case []byte:
			if !forwardToClient(s, pk) {
				return
			}
		}
	}
}

// forwardToClient translates a game packet of the server and writes it to the client. It returns false
// if the session must be closed.
func forwardToClient(s *Session, payload []byte) bool {
	s.translatorMu.Lock()
	pk, err := s.translator.DecodeServer(payload)
	s.translatorMu.Unlock()
	if err != nil {
		var decodeErr *protocol.DecodeError
		if errors.As(err, &decodeErr) {
			s.logger.Error("failed to decode packet from server", "err", err)
			return false
		}
		s.logger.Debug("dropped packet from server", "err", err)
		return true
	}

	if pk == nil {
		if !s.translator.Passthrough() {
			s.logger.Debug("dropped untranslatable packet from server")
			return true
		}
		if err := s.client.WritePacket(payload); err != nil {
			logWriteError(s, "failed to write raw packet to client", err)
			return false
		}
		return true
	}

	ctx := NewContext()
	s.processor.ProcessServer(ctx, pk)
	if ctx.Cancelled() {
		return true
	}

	s.translatorMu.Lock()
	s.tracker.handlePacket(pk)
	frames, err := s.translator.EncodeClient(pk)
	s.translatorMu.Unlock()
	if err != nil {
		s.logger.Error("failed to encode packet for client", "kind", pk.Kind().String(), "err", err)
		return true
	}
	for _, frame := range frames {
		if err := s.client.WritePacket(frame); err != nil {
			logWriteError(s, "failed to write packet to client", err)
			return false
		}
	}
	return true
}

// handleOutgoing forwards the packets of the client to the server.
func handleOutgoing(s *Session) {
	defer s.Close()
	for {
		select {
		case <-s.ch:
			return
		default:
		}

		payload, err := s.client.ReadPacket()
		if err != nil {
			logWriteError(s, "failed to read packet from client", err)
			return
		}

		s.translatorMu.Lock()
		pk, err := s.translator.DecodeClient(payload)
		s.translatorMu.Unlock()
		if err != nil {
			var decodeErr *protocol.DecodeError
			if errors.As(err, &decodeErr) {
				s.logger.Error("failed to decode packet from client", "err", err)
				return
			}
			s.logger.Debug("dropped packet from client", "err", err)
			continue
		}

		if pk == nil {
			if !s.translator.Passthrough() {
				s.logger.Debug("dropped untranslatable packet from client")
				continue
			}
			if err := s.Server().WriteGame(payload); err != nil {
				s.logger.Error("failed to write raw packet to server", "err", err)
				return
			}
			continue
		}

		ctx := NewContext()
		s.processor.ProcessClient(ctx, pk)
		if ctx.Cancelled() {
			continue
		}

		s.translatorMu.Lock()
		frames, err := s.translator.EncodeServer(pk)
		s.translatorMu.Unlock()
		if err != nil {
			s.logger.Error("failed to encode packet for server", "kind", pk.Kind().String(), "err", err)
			continue
		}
		for _, frame := range frames {
			if err := s.Server().WriteGame(frame); err != nil {
				s.logger.Error("failed to write packet to server", "err", err)
				return
			}
		}
	}
}

// handleLatency periodically measures the latency of the link to the server.
func handleLatency(s *Session, interval time.Duration) {
	if interval <= 0 {
		return
	}

	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-s.ch:
			return
		case <-ticker.C:
			if s.transferring.Load() {
				continue
			}

			if err := s.Server().WritePacket(&packet.Latency{Latency: s.linkLatency.Load(), Timestamp: time.Now().UnixMilli()}); err != nil {
				if !s.closed.Load() {
					s.logger.Error("failed to send latency packet", "err", err)
				}
				return
			}
		}
	}
}

// logWriteError logs err unless it was caused by the session closing.
func logWriteError(s *Session, msg string, err error) {
	if s.closed.Load() || errors.Is(err, net.ErrClosed) || errors.Is(err, io.EOF) {
		return
	}
	s.logger.Error(msg, "err", err)
}
