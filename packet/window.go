package packet

import (
	"github.com/cooldogedev/prism/chat"
	"github.com/cooldogedev/prism/item"
	"github.com/cooldogedev/prism/serializer"
	"github.com/cooldogedev/prism/version"
)

// WindowTypeHorse is the type of the inventory window of a horse, which is tied to an entity.
const WindowTypeHorse = "EntityHorse"

// legacyWindowTypes holds the window types in the order of their numeric ids before 1.8.
var legacyWindowTypes = []string{
	"minecraft:chest",
	"minecraft:crafting_table",
	"minecraft:furnace",
	"minecraft:dispenser",
	"minecraft:enchanting_table",
	"minecraft:brewing_stand",
	"minecraft:villager",
	"minecraft:beacon",
	"minecraft:anvil",
	"minecraft:hopper",
	"minecraft:dropper",
	WindowTypeHorse,
}

// legacyTitleLength is the longest window title a client before 1.8 accepts.
const legacyTitleLength = 32

func legacyWindowType(typ string) uint8 {
	for i, t := range legacyWindowTypes {
		if t == typ {
			return uint8(i)
		}
	}
	// Windows introduced later, such as shulker boxes, are shown as chests.
	return 0
}

func windowTypeFromLegacy(id uint8) string {
	if int(id) < len(legacyWindowTypes) {
		return legacyWindowTypes[id]
	}
	return legacyWindowTypes[0]
}

// OpenWindow opens an inventory window on the client.
type OpenWindow struct {
	Base
	WindowID uint8
	// Type is the namespaced type of the window, such as minecraft:chest.
	Type  string
	Title chat.Component
	Slots uint8
	// EntityID is the entity the window belongs to. It is only written for horse windows.
	EntityID int32
}

// Kind ...
func (*OpenWindow) Kind() Kind {
	return KindOpenWindow
}

// ReadFromServerData ...
func (pk *OpenWindow) ReadFromServerData(r *serializer.Reader) error {
	v := r.Version()
	r.Uint8(&pk.WindowID)
	if v.AfterOrEq(version.Minecraft_1_8) {
		r.StringLimit(&pk.Type, 32)
		r.Chat(&pk.Title)
		r.Uint8(&pk.Slots)
		if pk.Type == WindowTypeHorse {
			r.Int32(&pk.EntityID)
		}
		return r.Err()
	}

	var typ uint8
	r.Uint8(&typ)
	pk.Type = windowTypeFromLegacy(typ)
	var title string
	r.StringLimit(&title, legacyTitleLength)
	pk.Title = chat.FromLegacyText(title)
	r.Uint8(&pk.Slots)
	if v.AfterOrEq(version.Minecraft_1_6_4) {
		var useTitle bool
		r.Bool(&useTitle)
		if pk.Type == WindowTypeHorse {
			r.Int32(&pk.EntityID)
		}
	}
	return r.Err()
}

// ToData ...
func (pk *OpenWindow) ToData(v version.Version) ([]*serializer.PacketData, error) {
	return pk.single(KindOpenWindow, v, func(io serializer.IO) {
		io.Uint8(&pk.WindowID)
		if v.AfterOrEq(version.Minecraft_1_8) {
			io.StringLimit(&pk.Type, 32)
			io.Chat(&pk.Title)
			io.Uint8(&pk.Slots)
			if pk.Type == WindowTypeHorse {
				io.Int32(&pk.EntityID)
			}
			return
		}

		typ := legacyWindowType(pk.Type)
		io.Uint8(&typ)
		title := []rune(pk.legacyText(pk.Title))
		if len(title) > legacyTitleLength {
			title = title[:legacyTitleLength]
		}
		s := string(title)
		io.StringLimit(&s, legacyTitleLength)
		io.Uint8(&pk.Slots)
		if v.AfterOrEq(version.Minecraft_1_6_4) {
			useTitle := true
			io.Bool(&useTitle)
			if typ == legacyWindowType(WindowTypeHorse) {
				io.Int32(&pk.EntityID)
			}
		}
	})
}

// Handle records the window as open.
func (pk *OpenWindow) Handle() {
	if pk.local != nil {
		pk.local.OpenWindow(int32(pk.WindowID), pk.Type)
	}
}

// CloseWindow closes an inventory window on the client.
type CloseWindow struct {
	Base
	WindowID uint8
}

// Kind ...
func (*CloseWindow) Kind() Kind {
	return KindCloseWindow
}

// ReadFromServerData ...
func (pk *CloseWindow) ReadFromServerData(r *serializer.Reader) error {
	r.Uint8(&pk.WindowID)
	return r.Err()
}

// ToData ...
func (pk *CloseWindow) ToData(v version.Version) ([]*serializer.PacketData, error) {
	return pk.single(KindCloseWindow, v, func(io serializer.IO) {
		io.Uint8(&pk.WindowID)
	})
}

// Handle forgets the window.
func (pk *CloseWindow) Handle() {
	if pk.local != nil {
		pk.local.CloseWindow(int32(pk.WindowID))
	}
}

// SetSlot sets the item in a single slot of a window.
type SetSlot struct {
	Base
	// WindowID is the window of the slot. -1 refers to the item held by the cursor.
	WindowID int8
	Slot     int16
	Item     item.Stack
}

// Kind ...
func (*SetSlot) Kind() Kind {
	return KindSetSlot
}

// ReadFromServerData ...
func (pk *SetSlot) ReadFromServerData(r *serializer.Reader) error {
	pk.marshal(r)
	return r.Err()
}

// ToData ...
func (pk *SetSlot) ToData(v version.Version) ([]*serializer.PacketData, error) {
	return pk.single(KindSetSlot, v, pk.marshal)
}

func (pk *SetSlot) marshal(io serializer.IO) {
	io.Int8(&pk.WindowID)
	io.Int16(&pk.Slot)
	io.ItemStack(&pk.Item)
}

// WindowItems sets the items of all slots of a window.
type WindowItems struct {
	Base
	WindowID uint8
	Items    []item.Stack
}

// Kind ...
func (*WindowItems) Kind() Kind {
	return KindWindowItems
}

// ReadFromServerData ...
func (pk *WindowItems) ReadFromServerData(r *serializer.Reader) error {
	pk.marshal(r)
	return r.Err()
}

// ToData ...
func (pk *WindowItems) ToData(v version.Version) ([]*serializer.PacketData, error) {
	return pk.single(KindWindowItems, v, pk.marshal)
}

func (pk *WindowItems) marshal(io serializer.IO) {
	io.Uint8(&pk.WindowID)
	serializer.ItemStacks(io, &pk.Items)
}
