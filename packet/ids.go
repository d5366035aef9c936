package packet

import "github.com/cooldogedev/prism/version"

// Kind identifies a logical packet independently of any protocol version.
type Kind uint8

const (
	KindChat Kind = iota
	KindDisconnect
	KindTitle
	KindOpenWindow
	KindCloseWindow
	KindSetSlot
	KindWindowItems

	KindClientChat
	KindClientSettings
	KindClickWindow
	KindCreativeInventoryAction
	KindServerCloseWindow

	kindCount
)

var kindNames = [kindCount]string{
	"Chat", "Disconnect", "Title", "OpenWindow", "CloseWindow", "SetSlot", "WindowItems",
	"ClientChat", "ClientSettings", "ClickWindow", "CreativeInventoryAction", "ServerCloseWindow",
}

// String ...
func (k Kind) String() string {
	if k < kindCount {
		return kindNames[k]
	}
	return "Unknown"
}

// ClientBound reports whether packets of the kind travel from the server to the client.
func (k Kind) ClientBound() bool {
	return k <= KindWindowItems
}

// idRange assigns id to a kind for all versions between from and to inclusive.
type idRange struct {
	from, to version.Version
	id       int32
}

var (
	pcLegacyFrom = version.Minecraft_1_4_7
	pcLegacyTo   = version.Minecraft_1_6_4
	pc17From     = version.Minecraft_1_7_5
	pc18         = version.Minecraft_1_8
	pc19         = version.Minecraft_1_9
	pcLatest     = version.Latest
)

var idRanges = [kindCount][]idRange{
	KindChat: {
		{pcLegacyFrom, pcLegacyTo, 0x03},
		{pc17From, pc18, 0x02},
		{pc19, pcLatest, 0x0F},
		{version.MinecraftPE_1_1, version.MinecraftPE_1_2, 0x09},
	},
	KindDisconnect: {
		{pcLegacyFrom, pcLegacyTo, 0xFF},
		{pc17From, pc18, 0x40},
		{pc19, pcLatest, 0x1A},
		{version.MinecraftPE_1_1, version.MinecraftPE_1_2, 0x05},
	},
	KindTitle: {
		{pc18, version.Minecraft_1_11_2, 0x45},
		{version.Minecraft_1_12, version.Minecraft_1_12, 0x47},
		{version.Minecraft_1_12_1, pcLatest, 0x48},
	},
	KindOpenWindow: {
		{pcLegacyFrom, pcLegacyTo, 0x64},
		{pc17From, pc18, 0x2D},
		{pc19, pcLatest, 0x13},
	},
	KindCloseWindow: {
		{pcLegacyFrom, pcLegacyTo, 0x65},
		{pc17From, pc18, 0x2E},
		{pc19, pcLatest, 0x12},
	},
	KindSetSlot: {
		{pcLegacyFrom, pcLegacyTo, 0x67},
		{pc17From, pc18, 0x2F},
		{pc19, pcLatest, 0x16},
	},
	KindWindowItems: {
		{pcLegacyFrom, pcLegacyTo, 0x68},
		{pc17From, pc18, 0x30},
		{pc19, pcLatest, 0x14},
	},
	KindClientChat: {
		{pcLegacyFrom, pcLegacyTo, 0x03},
		{pc17From, pc18, 0x01},
		{pc19, version.Minecraft_1_11_2, 0x02},
		{version.Minecraft_1_12, version.Minecraft_1_12, 0x03},
		{version.Minecraft_1_12_1, pcLatest, 0x02},
		{version.MinecraftPE_1_1, version.MinecraftPE_1_2, 0x09},
	},
	KindClientSettings: {
		{pcLegacyFrom, pcLegacyTo, 0xCC},
		{pc17From, pc18, 0x15},
		{pc19, version.Minecraft_1_11_2, 0x04},
		{version.Minecraft_1_12, version.Minecraft_1_12, 0x05},
		{version.Minecraft_1_12_1, pcLatest, 0x04},
	},
	KindClickWindow: {
		{pcLegacyFrom, pcLegacyTo, 0x66},
		{pc17From, pc18, 0x0E},
		{pc19, version.Minecraft_1_11_2, 0x07},
		{version.Minecraft_1_12, version.Minecraft_1_12, 0x08},
		{version.Minecraft_1_12_1, pcLatest, 0x07},
	},
	KindCreativeInventoryAction: {
		{pcLegacyFrom, pcLegacyTo, 0x6B},
		{pc17From, pc18, 0x10},
		{pc19, version.Minecraft_1_11_2, 0x18},
		{version.Minecraft_1_12, pcLatest, 0x1B},
	},
	KindServerCloseWindow: {
		{pcLegacyFrom, pcLegacyTo, 0x65},
		{pc17From, pc18, 0x0D},
		{pc19, version.Minecraft_1_11_2, 0x08},
		{version.Minecraft_1_12, version.Minecraft_1_12, 0x09},
		{version.Minecraft_1_12_1, pcLatest, 0x08},
	},
}

// noID marks a kind that does not exist in a version.
const noID = -1

// ids holds the identifier of every kind per version ordinal. It is built once at init.
var ids = func() [kindCount][]int32 {
	var table [kindCount][]int32
	for kind, ranges := range idRanges {
		table[kind] = make([]int32, version.Count())
		for i := range table[kind] {
			table[kind][i] = noID
		}
		for _, r := range ranges {
			for _, v := range version.Range(r.from, r.to) {
				table[kind][v.Ordinal()] = r.id
			}
		}
	}
	return table
}()

// ID returns the identifier of kind in v. It returns false if the packet does not exist in v.
func ID(kind Kind, v version.Version) (int32, bool) {
	i := v.Ordinal()
	if kind >= kindCount || i < 0 || i >= len(ids[kind]) {
		return 0, false
	}
	id := ids[kind][i]
	return id, id != noID
}
