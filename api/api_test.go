package api

import (
	"context"
	"io"
	"log/slog"
	"net"
	"testing"

	"github.com/cooldogedev/prism/api/packet"
	"github.com/cooldogedev/prism/chat"
	gamepacket "github.com/cooldogedev/prism/packet"
	"github.com/cooldogedev/prism/session"
)

func newAPI(t *testing.T) *API {
	t.Helper()
	a := NewAPI(session.NewRegistry(), slog.New(slog.NewTextHandler(io.Discard, nil)), NewSecretBasedAuthentication("secret"))
	if err := a.Listen("127.0.0.1:0"); err != nil {
		t.Fatalf("listen: %v", err)
	}
	t.Cleanup(func() { _ = a.Close() })
	go func() {
		for a.Accept() == nil {
		}
	}()
	return a
}

func TestDialAuthorized(t *testing.T) {
	a := newAPI(t)
	c, err := Dial(context.Background(), a.Addr().String(), "secret")
	if err != nil {
		t.Fatalf("dial: %v", err)
	}
	defer c.Close()

	if err := c.Kick("Nobody", "bye"); err != nil {
		t.Fatalf("kick: %v", err)
	}
	if err := c.Broadcast(chat.Text("hello"), gamepacket.PositionSystem); err != nil {
		t.Fatalf("broadcast: %v", err)
	}
}

func TestDialUnauthorized(t *testing.T) {
	a := newAPI(t)
	if _, err := Dial(context.Background(), a.Addr().String(), "SECRET"); err == nil {
		t.Fatalf("expected unauthorized error")
	}
}

func TestDialClosesOnFailedResponse(t *testing.T) {
	l, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Fatalf("listen: %v", err)
	}
	defer l.Close()

	closed := make(chan error, 1)
	go func() {
		conn, err := l.Accept()
		if err != nil {
			closed <- err
			return
		}
		c := NewClient(conn, packet.NewPool())
		defer c.Close()
		if _, err := c.ReadPacket(); err != nil {
			closed <- err
			return
		}
		if err := c.WritePacket(&packet.ConnectionResponse{Response: packet.ResponseFail}); err != nil {
			closed <- err
			return
		}
		_, err = c.ReadPacket()
		closed <- err
	}()

	if _, err := Dial(context.Background(), l.Addr().String(), "secret"); err == nil {
		t.Fatalf("expected failed connection error")
	}
	if err := <-closed; err == nil {
		t.Fatalf("expected the connection to be closed after a failed response")
	}
}

func TestClientPackets(t *testing.T) {
	a, b := net.Pipe()
	sender, receiver := NewClient(a, packet.NewPool()), NewClient(b, packet.NewPool())
	defer sender.Close()
	defer receiver.Close()

	go func() {
		_ = sender.Broadcast(chat.Text("hi"), gamepacket.PositionHotbar)
		_ = sender.Transfer("Steve", "127.0.0.1:25566")
	}()

	pk, err := receiver.ReadPacket()
	if err != nil {
		t.Fatalf("read broadcast: %v", err)
	}
	broadcast, ok := pk.(*packet.Broadcast)
	if !ok || broadcast.Position != uint8(gamepacket.PositionHotbar) {
		t.Fatalf("unexpected packet %#v", pk)
	}
	message, err := chat.FromJSON(broadcast.Message)
	if err != nil || message.PlainText() != "hi" {
		t.Fatalf("unexpected message %q (%v)", broadcast.Message, err)
	}

	pk, err = receiver.ReadPacket()
	if err != nil {
		t.Fatalf("read transfer: %v", err)
	}
	if transfer, ok := pk.(*packet.Transfer); !ok || transfer.Username != "Steve" || transfer.Addr != "127.0.0.1:25566" {
		t.Fatalf("unexpected packet %#v", pk)
	}
}

func TestClientRejectsTruncatedPacket(t *testing.T) {
	a, b := net.Pipe()
	defer a.Close()
	defer b.Close()
	go func() {
		// A kick whose reason claims 100 bytes.
		_, _ = a.Write([]byte{0, 0, 0, 8, byte(packet.IDKick), 0, 0, 0, 100, 0, 0, 0})
	}()
	if _, err := NewClient(b, packet.NewPool()).ReadPacket(); err == nil {
		t.Fatalf("expected error for truncated packet")
	}
}
