package packet

import (
	"errors"
	"strings"
	"testing"

	"github.com/cooldogedev/prism/chat"
	"github.com/cooldogedev/prism/item"
	"github.com/cooldogedev/prism/protocol"
	"github.com/cooldogedev/prism/serializer"
	"github.com/cooldogedev/prism/storage"
	"github.com/cooldogedev/prism/version"
)

var shared = storage.NewShared(storage.SharedConfig{})

// body returns a Reader over the body of d, after checking the packet id.
func body(t *testing.T, d *serializer.PacketData, v version.Version, local *storage.Local) *serializer.Reader {
	t.Helper()
	s := serializer.MustStrategy(v)
	buf := protocol.NewBuffer(append([]byte(nil), d.Bytes()...))
	id, err := serializer.ReadPacketID(buf, s)
	if err != nil {
		t.Fatalf("read packet id: %v", err)
	}
	if id != d.ID() {
		t.Fatalf("expected packet id %#x, got %#x", d.ID(), id)
	}
	return serializer.NewReader(buf, s, local, shared)
}

func TestIDs(t *testing.T) {
	cases := []struct {
		kind Kind
		v    version.Version
		id   int32
	}{
		{KindChat, version.Minecraft_1_5_2, 0x03},
		{KindChat, version.Minecraft_1_8, 0x02},
		{KindChat, version.Minecraft_1_12_2, 0x0F},
		{KindTitle, version.Minecraft_1_12, 0x47},
		{KindTitle, version.Minecraft_1_12_2, 0x48},
		{KindClientChat, version.Minecraft_1_12, 0x03},
		{KindClientChat, version.Minecraft_1_12_1, 0x02},
		{KindClickWindow, version.Minecraft_1_7_10, 0x0E},
	}
	for _, c := range cases {
		id, ok := ID(c.kind, c.v)
		if !ok || id != c.id {
			t.Fatalf("expected id %#x for %v in %v, got %#x (%v)", c.id, c.kind, c.v, id, ok)
		}
	}
	if _, ok := ID(KindTitle, version.Minecraft_1_7_10); ok {
		t.Fatalf("title should not exist before 1.8")
	}
}

func TestPools(t *testing.T) {
	factory, ok := ClientBoundPoolFor(version.Minecraft_1_8)[0x02]
	if !ok {
		t.Fatalf("chat missing from 1.8 pool")
	}
	if _, ok := factory().(*Chat); !ok {
		t.Fatalf("0x02 should create a chat packet in 1.8")
	}

	sb, ok := ServerBoundPoolFor(version.Minecraft_1_12)[0x03]
	if !ok {
		t.Fatalf("client chat missing from 1.12 pool")
	}
	if _, ok := sb().(*ClientChat); !ok {
		t.Fatalf("0x03 should create a client chat packet in 1.12")
	}
	if ServerBoundPoolFor(version.Version{}) != nil {
		t.Fatalf("unknown versions should have no pool")
	}
}

func TestSystemChatResolvesUnknownTranslation(t *testing.T) {
	local := storage.NewLocal()
	local.SetLocale("de_de")

	pk := &Chat{
		Message:  chat.Translate("chat.type.advancement.task", chat.Text("Steve"), chat.Text("Root")),
		Position: PositionSystem,
	}
	pk.SetLocalStorage(local)
	pk.SetSharedStorage(shared)

	data, err := pk.ToData(version.Minecraft_1_8)
	if err != nil {
		t.Fatalf("to data: %v", err)
	}
	defer serializer.ReleaseAll(data)
	if len(data) != 1 {
		t.Fatalf("expected one packet, got %d", len(data))
	}

	r := body(t, data[0], version.Minecraft_1_8, local)
	var raw string
	r.String(&raw)
	var position uint8
	r.Uint8(&position)
	if r.Err() != nil || r.Len() != 0 {
		t.Fatalf("unexpected layout: %v, %d bytes left", r.Err(), r.Len())
	}
	if position != uint8(PositionSystem) {
		t.Fatalf("expected position %d, got %d", PositionSystem, position)
	}
	c, err := chat.FromJSON(raw)
	if err != nil {
		t.Fatalf("parse %q: %v", raw, err)
	}
	if c.Translate != "" || c.PlainText() != "Steve hat den Fortschritt Root erzielt" {
		t.Fatalf("translation was not resolved: %s", raw)
	}

	// 1.12 knows the key, so it is left to the client.
	data, err = pk.ToData(version.Minecraft_1_12)
	if err != nil {
		t.Fatalf("to data: %v", err)
	}
	defer serializer.ReleaseAll(data)
	r = body(t, data[0], version.Minecraft_1_12, local)
	r.String(&raw)
	if !strings.Contains(raw, "chat.type.advancement.task") {
		t.Fatalf("translation key should be kept for 1.12: %s", raw)
	}
}

func TestLegacyChat(t *testing.T) {
	pk := &Chat{Message: chat.Text(strings.Repeat("a", 200)), Position: PositionChat}
	pk.SetSharedStorage(shared)

	data, err := pk.ToData(version.Minecraft_1_6_4)
	if err != nil {
		t.Fatalf("to data: %v", err)
	}
	defer serializer.ReleaseAll(data)
	if len(data) != 2 {
		t.Fatalf("expected the message to be split into two packets, got %d", len(data))
	}
	var joined string
	for _, d := range data {
		r := body(t, d, version.Minecraft_1_6_4, nil)
		var part string
		r.String(&part)
		if len([]rune(part)) > legacyChatLength {
			t.Fatalf("part of %d runes exceeds limit", len([]rune(part)))
		}
		joined += part
	}
	if joined != strings.Repeat("a", 200) {
		t.Fatalf("parts do not add up to the message")
	}

	hotbar := &Chat{Message: chat.Text("hi"), Position: PositionHotbar}
	for _, v := range []version.Version{version.Minecraft_1_5_2, version.Minecraft_1_7_10} {
		data, err := hotbar.ToData(v)
		if err != nil || len(data) != 0 {
			t.Fatalf("hotbar messages should be dropped for %v, got %d packets (%v)", v, len(data), err)
		}
	}
}

func TestSplitLegacyCarriesFormatting(t *testing.T) {
	text := "§c§l" + strings.Repeat("x", 20)
	parts := splitLegacy(text, 10)
	if len(parts) < 2 {
		t.Fatalf("expected several parts, got %d", len(parts))
	}
	for _, part := range parts[1:] {
		if !strings.HasPrefix(part, "§c§l") {
			t.Fatalf("part %q does not carry the formatting", part)
		}
		if len([]rune(part)) > 10 {
			t.Fatalf("part %q exceeds limit", part)
		}
	}
}

func TestTitleExpansion(t *testing.T) {
	title, subtitle := chat.Text("Welcome"), chat.Text("to prism")
	pk := &Title{Title: &title, Subtitle: &subtitle, Times: &TitleTimes{FadeIn: 10, Stay: 70, FadeOut: 20}}
	pk.SetSharedStorage(shared)

	data, err := pk.ToData(version.Minecraft_1_8)
	if err != nil {
		t.Fatalf("to data: %v", err)
	}
	defer serializer.ReleaseAll(data)
	if len(data) != 3 {
		t.Fatalf("expected three packets on 1.8, got %d", len(data))
	}
	expectedActions := []int32{2, 1, 0}
	for i, d := range data {
		var action int32
		body(t, d, version.Minecraft_1_8, nil).Varint32(&action)
		if action != expectedActions[i] {
			t.Fatalf("expected action %d for packet %d, got %d", expectedActions[i], i, action)
		}
	}

	data, err = pk.ToData(version.Minecraft_1_12_2)
	if err != nil {
		t.Fatalf("to data: %v", err)
	}
	defer serializer.ReleaseAll(data)
	var action int32
	body(t, data[0], version.Minecraft_1_12_2, nil).Varint32(&action)
	if action != titleActionTimes {
		t.Fatalf("expected times action %d on 1.12.2, got %d", titleActionTimes, action)
	}

	legacy, err := pk.ToData(version.Minecraft_1_7_10)
	if err != nil {
		t.Fatalf("to data: %v", err)
	}
	defer serializer.ReleaseAll(legacy)
	if len(legacy) != 2 {
		t.Fatalf("expected two chat packets before 1.8, got %d", len(legacy))
	}
	for _, d := range legacy {
		if d.ID() != 0x02 {
			t.Fatalf("expected chat packet id, got %#x", d.ID())
		}
	}
}

func TestTitleRead(t *testing.T) {
	local := storage.NewLocal()
	times := &Title{Times: &TitleTimes{FadeIn: 1, Stay: 2, FadeOut: 3}}
	data, err := times.ToData(version.Minecraft_1_9)
	if err != nil {
		t.Fatalf("to data: %v", err)
	}
	defer serializer.ReleaseAll(data)

	read := &Title{}
	if err := Read(read, body(t, data[0], version.Minecraft_1_9, local)); err != nil {
		t.Fatalf("read: %v", err)
	}
	if read.Times == nil || *read.Times != *times.Times {
		t.Fatalf("expected times %v, got %v", times.Times, read.Times)
	}
}

func TestWindowItemsRoundTrip(t *testing.T) {
	local := storage.NewLocal()
	pk := &WindowItems{WindowID: 1, Items: []item.Stack{item.NewStack(1, 0, 64), item.Null(), item.NewStack(276, 0, 1)}}
	pk.SetLocalStorage(local)
	pk.SetSharedStorage(shared)

	for _, v := range []version.Version{version.Minecraft_1_5_2, version.Minecraft_1_7_10, version.Minecraft_1_12_2} {
		data, err := pk.ToData(v)
		if err != nil {
			t.Fatalf("to data %v: %v", v, err)
		}
		read := &WindowItems{}
		if err := Read(read, body(t, data[0], v, local)); err != nil {
			t.Fatalf("read %v: %v", v, err)
		}
		serializer.ReleaseAll(data)
		if len(read.Items) != len(pk.Items) {
			t.Fatalf("expected %d items, got %d", len(pk.Items), len(read.Items))
		}
		for i := range pk.Items {
			if !read.Items[i].Equal(pk.Items[i]) {
				t.Fatalf("item %d: expected %v, got %v", i, pk.Items[i], read.Items[i])
			}
		}
	}
}

func TestWindowCache(t *testing.T) {
	local := storage.NewLocal()
	open := &OpenWindow{WindowID: 2, Type: "minecraft:shulker_box", Title: chat.Text("Box"), Slots: 27}
	open.SetLocalStorage(local)
	open.Handle()
	if !local.WindowOpen(2) {
		t.Fatalf("window should be recorded as open")
	}

	data, err := open.ToData(version.Minecraft_1_7_10)
	if err != nil {
		t.Fatalf("to data: %v", err)
	}
	defer serializer.ReleaseAll(data)
	read := &OpenWindow{}
	if err := Read(read, body(t, data[0], version.Minecraft_1_7_10, local)); err != nil {
		t.Fatalf("read: %v", err)
	}
	if read.Type != "minecraft:chest" || read.Title.PlainText() != "Box" {
		t.Fatalf("unexpected legacy window %q %q", read.Type, read.Title.PlainText())
	}

	closeWindow := &CloseWindow{WindowID: 2}
	closeWindow.SetLocalStorage(local)
	closeWindow.Handle()
	if local.WindowOpen(2) {
		t.Fatalf("window should be forgotten")
	}
}

func TestServerBoundStateMachine(t *testing.T) {
	v := version.Minecraft_1_12_2
	local := storage.NewLocal()

	source := &ClientSettings{Locale: "de_DE", ViewDistance: 8, ChatColours: true, SkinParts: 0x7F, MainHand: MainHandRight}
	data, err := source.ToNative(v)
	if err != nil {
		t.Fatalf("to native: %v", err)
	}
	defer serializer.ReleaseAll(data)

	pk := &ClientSettings{}
	pk.SetLocalStorage(local)
	if pk.State() != StateUnpopulated {
		t.Fatalf("new packets should be unpopulated")
	}
	if err := Dispatch(pk); err == nil {
		t.Fatalf("dispatching an unpopulated packet should fail")
	}
	if err := Populate(pk, body(t, data[0], v, local)); err != nil {
		t.Fatalf("populate: %v", err)
	}
	if pk.State() != StatePopulated {
		t.Fatalf("expected populated, got %v", pk.State())
	}
	if err := Populate(pk, body(t, data[0], v, local)); err == nil {
		t.Fatalf("populating twice should fail")
	}
	if err := Dispatch(pk); err != nil {
		t.Fatalf("dispatch: %v", err)
	}
	if pk.State() != StateHandled || local.Locale() != "de_de" {
		t.Fatalf("expected handled packet and stored locale, got %v %q", pk.State(), local.Locale())
	}
}

func TestServerBoundTrailingBytes(t *testing.T) {
	v := version.Minecraft_1_8
	s := serializer.MustStrategy(v)
	buf := protocol.NewBuffer(nil)
	buf.WriteInt16(5)
	buf.WriteInt16(-1)
	_ = buf.WriteByte(0x00)

	pk := &CreativeInventoryAction{}
	err := Populate(pk, serializer.NewReader(buf, s, nil, shared))
	var decodeErr *protocol.DecodeError
	if !errors.As(err, &decodeErr) || !errors.Is(err, protocol.ErrTrailingBytes) {
		t.Fatalf("expected DecodeError wrapping ErrTrailingBytes, got %v", err)
	}
	if pk.State() != StateUnpopulated {
		t.Fatalf("failed packets must stay unpopulated")
	}
}

func TestClientChatStripsFormatting(t *testing.T) {
	v := version.Minecraft_1_7_10
	s := serializer.MustStrategy(v)
	buf := protocol.NewBuffer(nil)
	if err := serializer.WriteString(buf, s, "§chello", 0); err != nil {
		t.Fatalf("write: %v", err)
	}

	pk := &ClientChat{}
	if err := Populate(pk, serializer.NewReader(buf, s, nil, shared)); err != nil {
		t.Fatalf("populate: %v", err)
	}
	if err := Dispatch(pk); err != nil {
		t.Fatalf("dispatch: %v", err)
	}
	if pk.Message != "hello" {
		t.Fatalf("expected formatting to be stripped, got %q", pk.Message)
	}
}

func TestLegacyClientSettings(t *testing.T) {
	v := version.Minecraft_1_6_4
	source := &ClientSettings{Locale: "en_US", ViewDistance: 2, ChatMode: ChatModeCommandsOnly, ChatColours: true, Difficulty: 1, SkinParts: SkinPartCape}
	data, err := source.ToNative(v)
	if err != nil {
		t.Fatalf("to native: %v", err)
	}
	defer serializer.ReleaseAll(data)

	pk := &ClientSettings{}
	if err := Read(pk, body(t, data[0], v, nil)); err != nil {
		t.Fatalf("read: %v", err)
	}
	if pk.ChatMode != ChatModeCommandsOnly || !pk.ChatColours || pk.Difficulty != 1 || pk.SkinParts&SkinPartCape == 0 {
		t.Fatalf("unexpected settings %+v", pk)
	}
	if pk.MainHand != MainHandRight {
		t.Fatalf("legacy clients should use the right hand")
	}
}
