package packet

import (
	"github.com/cooldogedev/prism/item"
	"github.com/cooldogedev/prism/serializer"
	"github.com/cooldogedev/prism/version"
	"github.com/sandertv/gophertunnel/minecraft/text"
)

// ClientChat is a chat message or command sent by the client.
type ClientChat struct {
	Base
	Message string
}

// Kind ...
func (*ClientChat) Kind() Kind {
	return KindClientChat
}

// chatLimit returns the longest message a client of v may send.
func chatLimit(v version.Version) int {
	if v.Type() == version.TypePC && v.Before(version.Minecraft_1_11) {
		return 100
	}
	return 256
}

// ReadFromServerData ...
func (pk *ClientChat) ReadFromServerData(r *serializer.Reader) error {
	pk.marshal(r)
	return r.Err()
}

// ToNative ...
func (pk *ClientChat) ToNative(v version.Version) ([]*serializer.PacketData, error) {
	return pk.native(KindClientChat, v, pk.marshal)
}

func (pk *ClientChat) marshal(io serializer.IO) {
	v := io.Version()
	if v.Type() != version.TypePE {
		io.StringLimit(&pk.Message, chatLimit(v))
		return
	}

	typ := uint8(textTypeChat)
	io.Uint8(&typ)
	if v.AfterOrEq(version.MinecraftPE_1_2) {
		translate := false
		io.Bool(&translate)
	}
	var source string
	if typ == textTypeChat {
		io.String(&source)
	}
	io.String(&pk.Message)
	if v.AfterOrEq(version.MinecraftPE_1_2) {
		var xuid string
		io.String(&xuid)
	}
}

// Handle strips formatting codes, which clients are not allowed to send.
func (pk *ClientChat) Handle() {
	pk.Message = text.Clean(pk.Message)
}

// Chat modes of ClientSettings.
const (
	ChatModeEnabled = iota
	ChatModeCommandsOnly
	ChatModeHidden
)

const (
	// SkinPartCape is the skin part flag of the cape.
	SkinPartCape = 0x01
	// skinPartsAll has every skin part but the cape set. Clients before 1.8 always show all parts.
	skinPartsAll = 0x7E

	// MainHandRight is the main hand of clients that cannot choose it.
	MainHandRight = 1
	// difficultyNormal is reported for clients that no longer send a difficulty.
	difficultyNormal = 2

	legacyChatColours = 0x08
)

// ClientSettings holds the settings of the client, sent on join and whenever they change.
type ClientSettings struct {
	Base
	Locale       string
	ViewDistance int8
	ChatMode     int32
	ChatColours  bool
	SkinParts    uint8
	MainHand     int32
	// Difficulty is only sent by clients before 1.8.
	Difficulty uint8
}

// Kind ...
func (*ClientSettings) Kind() Kind {
	return KindClientSettings
}

// ReadFromServerData ...
func (pk *ClientSettings) ReadFromServerData(r *serializer.Reader) error {
	pk.marshal(r)
	return r.Err()
}

// ToNative ...
func (pk *ClientSettings) ToNative(v version.Version) ([]*serializer.PacketData, error) {
	return pk.native(KindClientSettings, v, pk.marshal)
}

func (pk *ClientSettings) marshal(io serializer.IO) {
	v := io.Version()
	reading := isReader(io)
	io.StringLimit(&pk.Locale, 16)
	io.Int8(&pk.ViewDistance)
	switch {
	case v.AfterOrEq(version.Minecraft_1_9):
		io.Varint32(&pk.ChatMode)
		io.Bool(&pk.ChatColours)
		io.Uint8(&pk.SkinParts)
		io.Varint32(&pk.MainHand)
		if reading {
			pk.Difficulty = difficultyNormal
		}
	case v.AfterOrEq(version.Minecraft_1_8):
		mode := uint8(pk.ChatMode)
		io.Uint8(&mode)
		io.Bool(&pk.ChatColours)
		io.Uint8(&pk.SkinParts)
		if reading {
			pk.ChatMode, pk.MainHand, pk.Difficulty = int32(mode), MainHandRight, difficultyNormal
		}
	case v.AfterOrEq(version.Minecraft_1_7_5):
		mode := uint8(pk.ChatMode)
		io.Uint8(&mode)
		io.Bool(&pk.ChatColours)
		io.Uint8(&pk.Difficulty)
		cape := pk.SkinParts&SkinPartCape != 0
		io.Bool(&cape)
		if reading {
			pk.ChatMode, pk.MainHand, pk.SkinParts = int32(mode), MainHandRight, legacySkinParts(cape)
		}
	default:
		flags := uint8(pk.ChatMode & 0x03)
		if pk.ChatColours {
			flags |= legacyChatColours
		}
		io.Uint8(&flags)
		io.Uint8(&pk.Difficulty)
		cape := pk.SkinParts&SkinPartCape != 0
		io.Bool(&cape)
		if reading {
			pk.ChatMode, pk.ChatColours = int32(flags&0x03), flags&legacyChatColours != 0
			pk.MainHand, pk.SkinParts = MainHandRight, legacySkinParts(cape)
		}
	}
}

func legacySkinParts(cape bool) uint8 {
	if cape {
		return skinPartsAll | SkinPartCape
	}
	return skinPartsAll
}

// Handle stores the locale of the client.
func (pk *ClientSettings) Handle() {
	if pk.local != nil {
		pk.local.SetLocale(pk.Locale)
	}
}

// ClickWindow is sent when the client clicks a slot of a window.
type ClickWindow struct {
	Base
	WindowID     uint8
	Slot         int16
	Button       int8
	ActionNumber int16
	Mode         int32
	Item         item.Stack
}

// Kind ...
func (*ClickWindow) Kind() Kind {
	return KindClickWindow
}

// ReadFromServerData ...
func (pk *ClickWindow) ReadFromServerData(r *serializer.Reader) error {
	pk.marshal(r)
	return r.Err()
}

// ToNative ...
func (pk *ClickWindow) ToNative(v version.Version) ([]*serializer.PacketData, error) {
	return pk.native(KindClickWindow, v, pk.marshal)
}

func (pk *ClickWindow) marshal(io serializer.IO) {
	v := io.Version()
	io.Uint8(&pk.WindowID)
	io.Int16(&pk.Slot)
	io.Int8(&pk.Button)
	io.Int16(&pk.ActionNumber)
	switch {
	case v.AfterOrEq(version.Minecraft_1_9):
		io.Varint32(&pk.Mode)
	case v.AfterOrEq(version.Minecraft_1_5_2):
		mode := uint8(pk.Mode)
		io.Uint8(&mode)
		if isReader(io) {
			pk.Mode = int32(mode)
		}
	default:
		// Before 1.5 only shift clicks are distinguished, which are mode 1.
		shift := pk.Mode == 1
		io.Bool(&shift)
		if isReader(io) && shift {
			pk.Mode = 1
		}
	}
	io.ItemStack(&pk.Item)
}

// CreativeInventoryAction sets a slot of the inventory of a client in creative mode.
type CreativeInventoryAction struct {
	Base
	Slot int16
	Item item.Stack
}

// Kind ...
func (*CreativeInventoryAction) Kind() Kind {
	return KindCreativeInventoryAction
}

// ReadFromServerData ...
func (pk *CreativeInventoryAction) ReadFromServerData(r *serializer.Reader) error {
	pk.marshal(r)
	return r.Err()
}

// ToNative ...
func (pk *CreativeInventoryAction) ToNative(v version.Version) ([]*serializer.PacketData, error) {
	return pk.native(KindCreativeInventoryAction, v, pk.marshal)
}

func (pk *CreativeInventoryAction) marshal(io serializer.IO) {
	io.Int16(&pk.Slot)
	io.ItemStack(&pk.Item)
}

// ServerCloseWindow is sent when the client closes a window.
type ServerCloseWindow struct {
	Base
	WindowID uint8
}

// Kind ...
func (*ServerCloseWindow) Kind() Kind {
	return KindServerCloseWindow
}

// ReadFromServerData ...
func (pk *ServerCloseWindow) ReadFromServerData(r *serializer.Reader) error {
	r.Uint8(&pk.WindowID)
	return r.Err()
}

// ToNative ...
func (pk *ServerCloseWindow) ToNative(v version.Version) ([]*serializer.PacketData, error) {
	return pk.native(KindServerCloseWindow, v, func(io serializer.IO) {
		io.Uint8(&pk.WindowID)
	})
}

// Handle forgets the window.
func (pk *ServerCloseWindow) Handle() {
	if pk.local != nil {
		pk.local.CloseWindow(int32(pk.WindowID))
	}
}
