package server

import (
	"bytes"
	"context"
	"errors"
	"io"
	"net"
	"testing"

	proto "github.com/cooldogedev/prism/protocol"
	"github.com/cooldogedev/prism/server/packet"
	"github.com/cooldogedev/prism/version"
	"github.com/google/uuid"
)

type pipeTransport struct {
	conn net.Conn
}

func (p pipeTransport) Dial(context.Context, string) (io.ReadWriteCloser, error) {
	return p.conn, nil
}

func TestConnGameAndControlFrames(t *testing.T) {
	a, b := net.Pipe()
	client, server := NewConn(a, 16), NewConn(b, 16)
	defer client.Close()
	defer server.Close()

	large := bytes.Repeat([]byte{0x2a}, 512)
	go func() {
		_ = client.WriteGame([]byte{0x02, 0x01})
		_ = client.WriteGame(large)
		_ = client.WritePacket(&packet.Transfer{Addr: "127.0.0.1:25566"})
	}()

	pk, err := server.ReadPacket()
	if err != nil {
		t.Fatalf("read small game frame: %v", err)
	}
	if payload, ok := pk.([]byte); !ok || !bytes.Equal(payload, []byte{0x02, 0x01}) {
		t.Fatalf("small game frame = %v", pk)
	}

	pk, err = server.ReadPacket()
	if err != nil {
		t.Fatalf("read compressed game frame: %v", err)
	}
	if payload, ok := pk.([]byte); !ok || !bytes.Equal(payload, large) {
		t.Fatalf("compressed game frame mismatch")
	}

	pk, err = server.ReadPacket()
	if err != nil {
		t.Fatalf("read control frame: %v", err)
	}
	transfer, ok := pk.(*packet.Transfer)
	if !ok || transfer.Addr != "127.0.0.1:25566" {
		t.Fatalf("control frame = %#v", pk)
	}
}

func TestConnCompressesAboveThreshold(t *testing.T) {
	var out bytes.Buffer
	c := NewConn(nopCloser{&out}, 8)
	if err := c.WriteGame(bytes.Repeat([]byte{1}, 64)); err != nil {
		t.Fatalf("write: %v", err)
	}
	frame := out.Bytes()
	if frame[4]&flagCompressed == 0 {
		t.Fatalf("expected compressed flag, got %08b", frame[4])
	}

	out.Reset()
	if err := c.WriteGame([]byte{1, 2}); err != nil {
		t.Fatalf("write: %v", err)
	}
	if got := out.Bytes(); !bytes.Equal(got, []byte{0, 0, 0, 3, 0, 1, 2}) {
		t.Fatalf("uncompressed frame = % x", got)
	}
}

func TestConnRejectsUnknownControlPacket(t *testing.T) {
	in := bytes.NewBuffer([]byte{0, 0, 0, 2, flagControl, 0x7f})
	c := NewConn(nopCloser{in}, 0)
	_, err := c.ReadPacket()
	var decodeErr *proto.DecodeError
	if !errors.As(err, &decodeErr) {
		t.Fatalf("expected DecodeError, got %v", err)
	}
}

func TestConnClosed(t *testing.T) {
	a, b := net.Pipe()
	defer b.Close()
	c := NewConn(a, 0)
	if err := c.Close(); err != nil {
		t.Fatalf("close: %v", err)
	}
	if err := c.Close(); err != nil {
		t.Fatalf("second close: %v", err)
	}
	if err := c.WriteGame([]byte{1}); !errors.Is(err, ErrClosed) {
		t.Fatalf("expected ErrClosed, got %v", err)
	}
	if _, err := c.ReadPacket(); !errors.Is(err, ErrClosed) {
		t.Fatalf("expected ErrClosed, got %v", err)
	}
}

func TestDialerDial(t *testing.T) {
	a, b := net.Pipe()
	id := uuid.New()
	requests := make(chan *packet.ConnectionRequest, 1)
	go func() {
		server := NewConn(b, 0)
		pk, err := server.ReadPacket()
		if err != nil {
			return
		}
		requests <- pk.(*packet.ConnectionRequest)
		_ = server.WriteGame([]byte{0x03})
		_ = server.WritePacket(&packet.ConnectionResponse{Accepted: true})
	}()

	d := Dialer{
		Identity: Identity{Username: "Steve", UUID: id, Addr: "10.0.0.1:5000", Version: version.Minecraft_1_8},
		Token:    "secret",
		Locale:   "de_de",
		Cache:    []byte{9},
	}
	c, err := d.Dial(context.Background(), pipeTransport{a}, "server")
	if err != nil {
		t.Fatalf("dial: %v", err)
	}
	defer c.Close()

	req := <-requests
	if req.Username != "Steve" || req.UUID != id || req.Token != "secret" || req.Protocol != 47 || req.Locale != "de_de" {
		t.Fatalf("unexpected request %#v", req)
	}
	if !bytes.Equal(req.Cache, []byte{9}) {
		t.Fatalf("cache = %v", req.Cache)
	}

	pk, err := c.ReadPacket()
	if err != nil {
		t.Fatalf("read deferred: %v", err)
	}
	if payload, ok := pk.([]byte); !ok || !bytes.Equal(payload, []byte{0x03}) {
		t.Fatalf("deferred frame = %v", pk)
	}
}

func TestDialerDefersFramesBeforeResponse(t *testing.T) {
	a, b := net.Pipe()
	go func() {
		server := NewConn(b, 0)
		if _, err := server.ReadPacket(); err != nil {
			return
		}
		_ = server.WriteGame([]byte{0x01})
		_ = server.WritePacket(&packet.Latency{Latency: 20, Timestamp: 1000})
		_ = server.WriteGame([]byte{0x02})
		_ = server.WritePacket(&packet.ConnectionResponse{Accepted: true})
	}()

	c, err := Dialer{}.Dial(context.Background(), pipeTransport{a}, "server")
	if err != nil {
		t.Fatalf("dial: %v", err)
	}
	defer c.Close()

	pk, err := c.ReadPacket()
	if payload, ok := pk.([]byte); err != nil || !ok || !bytes.Equal(payload, []byte{0x01}) {
		t.Fatalf("first deferred frame = %v (%v)", pk, err)
	}
	pk, err = c.ReadPacket()
	if latency, ok := pk.(*packet.Latency); err != nil || !ok || latency.Latency != 20 || latency.Timestamp != 1000 {
		t.Fatalf("second deferred frame = %#v (%v)", pk, err)
	}
	pk, err = c.ReadPacket()
	if payload, ok := pk.([]byte); err != nil || !ok || !bytes.Equal(payload, []byte{0x02}) {
		t.Fatalf("third deferred frame = %v (%v)", pk, err)
	}
}

func TestDialerRefused(t *testing.T) {
	a, b := net.Pipe()
	go func() {
		server := NewConn(b, 0)
		if _, err := server.ReadPacket(); err != nil {
			return
		}
		_ = server.WritePacket(&packet.ConnectionResponse{Reason: "whitelisted"})
	}()

	_, err := Dialer{}.Dial(context.Background(), pipeTransport{a}, "server")
	var refused *RefusedError
	if !errors.As(err, &refused) || refused.Reason != "whitelisted" {
		t.Fatalf("expected RefusedError, got %v", err)
	}
}

type nopCloser struct {
	io.ReadWriter
}

func (nopCloser) Close() error {
	return nil
}
