package api

import (
	"context"
	"errors"
	"fmt"
	"net"

	"github.com/cooldogedev/prism/api/packet"
)

// Dial establishes a TCP connection to the specified API service address using the provided token.
// It returns a new Client instance if the connection and authentication are successful.
// Otherwise, it returns an error indicating the failure reason.
func Dial(ctx context.Context, addr, token string) (_ *Client, err error) {
	var d net.Dialer
	conn, err := d.DialContext(ctx, "tcp", addr)
	if err != nil {
		return nil, err
	}

	client := NewClient(conn, packet.NewPool())
	defer func() {
		if err != nil {
			_ = client.Close()
		}
	}()

	if err := client.WritePacket(&packet.ConnectionRequest{Token: token}); err != nil {
		return nil, err
	}

	connectionResponsePacket, err := client.ReadPacket()
	if err != nil {
		return nil, err
	}

	connectionResponse, ok := connectionResponsePacket.(*packet.ConnectionResponse)
	if !ok {
		return nil, fmt.Errorf("expected connection response, got %d", connectionResponsePacket.ID())
	}

	switch connectionResponse.Response {
	case packet.ResponseSuccess:
		return client, nil
	case packet.ResponseFail:
		return nil, errors.New("connection failed")
	case packet.ResponseUnauthorized:
		return nil, errors.New("connection unauthorized")
	}
	return nil, fmt.Errorf("received an unknown response code %d", connectionResponse.Response)
}
