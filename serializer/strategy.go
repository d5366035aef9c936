package serializer

import (
	"github.com/cooldogedev/prism/protocol"
	"github.com/cooldogedev/prism/version"
)

// Framing is the way a structured tag is framed on the wire.
type Framing uint8

const (
	FramingUnknown Framing = iota
	// FramingShortLength is a signed 16-bit length followed by a gzip stream. A negative length means
	// there is no tag.
	FramingShortLength
	// FramingDirect is the uncompressed tag itself. A single zero byte means there is no tag.
	FramingDirect
	// FramingNone is used by versions that have no Java structured tag layout at all.
	FramingNone
)

// Text is the way strings are written on the wire.
type Text uint8

const (
	TextUnknown Text = iota
	// TextUTF16 is a signed 16-bit count of UTF-16 code units followed by the UTF-16BE units.
	TextUTF16
	// TextVarInt is a VarInt byte length followed by UTF-8.
	TextVarInt
	// TextPE is an unsigned VarInt byte length followed by UTF-8.
	TextPE
)

// IDs is the way packet identifiers are written on the wire.
type IDs uint8

const (
	IDsUnknown IDs = iota
	IDsByte
	IDsVarInt
	IDsVaruint32
)

// Strategy is the set of layout rules of one protocol version. It is resolved once per packet and then
// consulted by every field codec.
type Strategy struct {
	Version version.Version
	Framing Framing
	Text    Text
	IDs     IDs
}

// strategyRange assigns a strategy to all versions between from and to inclusive.
type strategyRange struct {
	from, to version.Version
	framing  Framing
	text     Text
	ids      IDs
}

var ranges = []strategyRange{
	{from: version.Minecraft_1_4_7, to: version.Minecraft_1_6_4, framing: FramingShortLength, text: TextUTF16, ids: IDsByte},
	{from: version.Minecraft_1_7_5, to: version.Minecraft_1_7_10, framing: FramingShortLength, text: TextVarInt, ids: IDsVarInt},
	{from: version.Minecraft_1_8, to: version.Latest, framing: FramingDirect, text: TextVarInt, ids: IDsVarInt},
	{from: version.MinecraftPE_1_1, to: version.MinecraftPE_1_2, framing: FramingNone, text: TextPE, ids: IDsVaruint32},
}

// strategies is indexed by version ordinal and built once at init.
var strategies = func() []Strategy {
	s := make([]Strategy, version.Count())
	for _, r := range ranges {
		for _, v := range version.Range(r.from, r.to) {
			s[v.Ordinal()] = Strategy{Version: v, Framing: r.framing, Text: r.text, IDs: r.ids}
		}
	}
	return s
}()

// StrategyFor returns the layout rules of v. Versions without rules yield an UnsupportedVersionError.
func StrategyFor(v version.Version) (Strategy, error) {
	i := v.Ordinal()
	if i < 0 || i >= len(strategies) || strategies[i].Framing == FramingUnknown {
		return Strategy{}, &protocol.UnsupportedVersionError{Op: "resolve strategy", Version: v}
	}
	return strategies[i], nil
}

// MustStrategy is like StrategyFor but panics for unsupported versions. It is meant for versions taken
// from the catalog.
func MustStrategy(v version.Version) Strategy {
	s, err := StrategyFor(v)
	if err != nil {
		panic(err)
	}
	return s
}
