package session

import (
	"strings"

	"github.com/cooldogedev/prism/chat"
	"github.com/cooldogedev/prism/serializer"
	"github.com/cooldogedev/prism/version"
	"github.com/google/uuid"
)

// Packet ids of the login state, which are the same for every version since 1.7.
const (
	idLoginDisconnect = 0x00
	idLoginSuccess    = 0x02
)

// EncodeLoginSuccess encodes the packet that moves the client from the login to the play state.
func (t *Translator) EncodeLoginSuccess(id uuid.UUID, username string) ([]byte, error) {
	d := serializer.NewPacketData(idLoginSuccess, t.clientStrategy, t.local, t.shared)
	defer d.Release()

	s := id.String()
	if t.client.Before(version.Minecraft_1_7_10) {
		s = strings.ReplaceAll(s, "-", "")
	}
	d.StringLimit(&s, 36)
	d.StringLimit(&username, 16)
	if err := d.Err(); err != nil {
		return nil, err
	}
	return append([]byte(nil), d.Bytes()...), nil
}

// EncodeLoginDisconnect encodes the packet that disconnects a client still in the login state.
func (t *Translator) EncodeLoginDisconnect(reason chat.Component) ([]byte, error) {
	return encodeLoginDisconnect(serializer.NewPacketData(idLoginDisconnect, t.clientStrategy, t.local, t.shared), reason)
}

// LoginDisconnect encodes a login disconnect for clients whose version is not supported. The layout
// is the same for every version since 1.7.
func LoginDisconnect(reason string) []byte {
	b, _ := encodeLoginDisconnect(serializer.NewPacketData(idLoginDisconnect, serializer.MustStrategy(version.Latest), nil, nil), chat.Text(reason))
	return b
}

func encodeLoginDisconnect(d *serializer.PacketData, reason chat.Component) ([]byte, error) {
	defer d.Release()

	d.Chat(&reason)
	if err := d.Err(); err != nil {
		return nil, err
	}
	return append([]byte(nil), d.Bytes()...), nil
}
