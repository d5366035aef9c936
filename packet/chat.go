package packet

import (
	"strings"

	"github.com/cooldogedev/prism/chat"
	"github.com/cooldogedev/prism/serializer"
	"github.com/cooldogedev/prism/version"
)

// Position is where a chat message is displayed.
type Position uint8

const (
	PositionChat Position = iota
	PositionSystem
	PositionHotbar
)

// Pocket edition text packet types.
const (
	textTypeRaw    = 0
	textTypeChat   = 1
	textTypeTip    = 5
	textTypeSystem = 6
)

// legacyChatLength is the longest message a client before 1.7 accepts in one chat packet.
const legacyChatLength = 119

// Chat sends a message to the client.
type Chat struct {
	Base
	Message  chat.Component
	Position Position
}

// Kind ...
func (*Chat) Kind() Kind {
	return KindChat
}

// ReadFromServerData ...
func (pk *Chat) ReadFromServerData(r *serializer.Reader) error {
	v := r.Version()
	switch {
	case v.Type() == version.TypePE:
		var typ uint8
		r.Uint8(&typ)
		if v.AfterOrEq(version.MinecraftPE_1_2) {
			var translate bool
			r.Bool(&translate)
		}
		if typ == textTypeChat {
			var source string
			r.String(&source)
		}
		r.Chat(&pk.Message)
		if v.AfterOrEq(version.MinecraftPE_1_2) {
			var xuid string
			r.String(&xuid)
		}
		pk.Position = positionFromTextType(typ)
	case v.AfterOrEq(version.Minecraft_1_8):
		r.Chat(&pk.Message)
		position := uint8(pk.Position)
		r.Uint8(&position)
		pk.Position = Position(position)
	default:
		r.Chat(&pk.Message)
		pk.Position = PositionChat
	}
	return r.Err()
}

// ToData writes the message as JSON with a position from 1.8 on and as JSON without one in 1.7. Older
// clients receive legacy text, split over as many packets as needed. Clients before 1.8 cannot
// display messages above the hotbar, which are dropped for them.
func (pk *Chat) ToData(v version.Version) ([]*serializer.PacketData, error) {
	switch {
	case v.Type() == version.TypePE:
		return pk.single(KindChat, v, func(io serializer.IO) {
			typ := textTypeFromPosition(pk.Position)
			io.Uint8(&typ)
			if v.AfterOrEq(version.MinecraftPE_1_2) {
				translate := false
				io.Bool(&translate)
			}
			msg := pk.legacyText(pk.Message)
			io.String(&msg)
			if v.AfterOrEq(version.MinecraftPE_1_2) {
				xuid := ""
				io.String(&xuid)
			}
		})
	case v.AfterOrEq(version.Minecraft_1_8):
		return pk.single(KindChat, v, func(io serializer.IO) {
			msg := pk.Message
			io.Chat(&msg)
			position := uint8(pk.Position)
			io.Uint8(&position)
		})
	case pk.Position == PositionHotbar:
		return nil, nil
	case v.AfterOrEq(version.Minecraft_1_7_5):
		return pk.single(KindChat, v, func(io serializer.IO) {
			msg := pk.Message
			io.Chat(&msg)
		})
	}

	if _, ok := ID(KindChat, v); !ok {
		return nil, nil
	}
	var data []*serializer.PacketData
	for _, part := range splitLegacy(pk.legacyText(pk.Message), legacyChatLength) {
		part := part
		res, err := pk.single(KindChat, v, func(io serializer.IO) {
			io.String(&part)
		})
		if err != nil {
			serializer.ReleaseAll(data)
			return nil, err
		}
		data = append(data, res...)
	}
	return data, nil
}

func textTypeFromPosition(p Position) uint8 {
	switch p {
	case PositionSystem:
		return textTypeSystem
	case PositionHotbar:
		return textTypeTip
	}
	return textTypeRaw
}

func positionFromTextType(typ uint8) Position {
	switch typ {
	case textTypeSystem:
		return PositionSystem
	case textTypeTip:
		return PositionHotbar
	}
	return PositionChat
}

// splitLegacy splits legacy text into parts of at most limit runes. A formatting code is never split
// from its code character, and every part after the first starts with the formatting active at the
// end of the previous part.
func splitLegacy(text string, limit int) []string {
	runes := []rune(text)
	if len(runes) <= limit {
		return []string{text}
	}

	var (
		parts  []string
		prefix string
	)
	for len(runes) > 0 {
		n := min(limit-len([]rune(prefix)), len(runes))
		if n <= 0 {
			prefix, n = "", min(limit, len(runes))
		}
		if n < len(runes) && n > 0 && runes[n-1] == chat.FormattingCode {
			n--
		}
		part := prefix + string(runes[:n])
		parts = append(parts, part)
		prefix = activeCodes(part)
		runes = runes[n:]
	}
	return parts
}

// activeCodes returns the formatting codes in effect at the end of text.
func activeCodes(text string) string {
	var (
		colour      rune
		decorations [5]bool
	)
	runes := []rune(text)
	for i := 0; i < len(runes)-1; i++ {
		if runes[i] != chat.FormattingCode {
			continue
		}
		i++
		switch code := runes[i]; {
		case code == 'r':
			colour, decorations = 0, [5]bool{}
		case (code >= '0' && code <= '9') || (code >= 'a' && code <= 'f'):
			colour, decorations = code, [5]bool{}
		case code >= 'k' && code <= 'o':
			decorations[code-'k'] = true
		}
	}

	var sb strings.Builder
	if colour != 0 {
		sb.WriteRune(chat.FormattingCode)
		sb.WriteRune(colour)
	}
	for i, set := range decorations {
		if set {
			sb.WriteRune(chat.FormattingCode)
			sb.WriteRune('k' + rune(i))
		}
	}
	return sb.String()
}

// Disconnect closes the connection of the client with a reason.
type Disconnect struct {
	Base
	Message chat.Component
}

// Kind ...
func (*Disconnect) Kind() Kind {
	return KindDisconnect
}

// ReadFromServerData ...
func (pk *Disconnect) ReadFromServerData(r *serializer.Reader) error {
	pk.marshal(r)
	return r.Err()
}

// ToData ...
func (pk *Disconnect) ToData(v version.Version) ([]*serializer.PacketData, error) {
	return pk.single(KindDisconnect, v, pk.marshal)
}

func (pk *Disconnect) marshal(io serializer.IO) {
	if io.Version().Type() == version.TypePE {
		hide := false
		io.Bool(&hide)
	}
	io.Chat(&pk.Message)
}
