package version

import "fmt"

// Type is the protocol family a Version belongs to. Versions of different families share no
// field layouts and cannot be ordered against each other.
type Type uint8

const (
	TypeUnknown Type = iota
	// TypePC is the Java edition protocol family.
	TypePC
	// TypePE is the Pocket/Bedrock edition protocol family.
	TypePE
)

// String ...
func (t Type) String() string {
	switch t {
	case TypePC:
		return "PC"
	case TypePE:
		return "PE"
	default:
		return "UNKNOWN"
	}
}

// Version identifies a concrete wire protocol release. Versions are comparable values and may be
// used as map keys. The zero Version is the unknown version.
type Version struct {
	id      int32
	name    string
	typ     Type
	ordinal int
}

var catalog []Version

func register(typ Type, id int32, name string) Version {
	v := Version{id: id, name: name, typ: typ, ordinal: len(catalog) + 1}
	catalog = append(catalog, v)
	return v
}

var (
	Minecraft_1_4_7  = register(TypePC, 51, "1.4.7")
	Minecraft_1_5_2  = register(TypePC, 61, "1.5.2")
	Minecraft_1_6_4  = register(TypePC, 78, "1.6.4")
	Minecraft_1_7_5  = register(TypePC, 4, "1.7.5")
	Minecraft_1_7_10 = register(TypePC, 5, "1.7.10")
	Minecraft_1_8    = register(TypePC, 47, "1.8")
	Minecraft_1_9    = register(TypePC, 107, "1.9")
	Minecraft_1_9_4  = register(TypePC, 110, "1.9.4")
	Minecraft_1_10   = register(TypePC, 210, "1.10")
	Minecraft_1_11   = register(TypePC, 315, "1.11")
	Minecraft_1_11_2 = register(TypePC, 316, "1.11.2")
	Minecraft_1_12   = register(TypePC, 335, "1.12")
	Minecraft_1_12_1 = register(TypePC, 338, "1.12.1")
	Minecraft_1_12_2 = register(TypePC, 340, "1.12.2")

	MinecraftPE_1_1 = register(TypePE, 113, "PE-1.1")
	MinecraftPE_1_2 = register(TypePE, 160, "PE-1.2")
)

// Latest is the newest Java edition version known to the catalog.
var Latest = Minecraft_1_12_2

// ID returns the protocol id the version sends in its handshake. Ids are only unique within a
// family and, for the Java edition, restart at 1.7.
func (v Version) ID() int32 {
	return v.id
}

// Name ...
func (v Version) Name() string {
	return v.name
}

// Type ...
func (v Version) Type() Type {
	return v.typ
}

// Known reports whether v is part of the catalog.
func (v Version) Known() bool {
	return v.ordinal != 0
}

// Ordinal returns the position of v in the catalog, starting at 0. It returns -1 for the unknown
// version.
func (v Version) Ordinal() int {
	return v.ordinal - 1
}

// Before reports whether v was released before o. Versions of different families are never
// ordered.
func (v Version) Before(o Version) bool {
	return v.comparable(o) && v.ordinal < o.ordinal
}

// BeforeOrEq ...
func (v Version) BeforeOrEq(o Version) bool {
	return v.comparable(o) && v.ordinal <= o.ordinal
}

// After ...
func (v Version) After(o Version) bool {
	return v.comparable(o) && v.ordinal > o.ordinal
}

// AfterOrEq ...
func (v Version) AfterOrEq(o Version) bool {
	return v.comparable(o) && v.ordinal >= o.ordinal
}

// Between reports whether v lies in the inclusive range [from, to].
func (v Version) Between(from, to Version) bool {
	return v.AfterOrEq(from) && v.BeforeOrEq(to)
}

// String ...
func (v Version) String() string {
	if !v.Known() {
		return "unknown"
	}
	return fmt.Sprintf("%s(%d)", v.name, v.id)
}

func (v Version) comparable(o Version) bool {
	return v.Known() && o.Known() && v.typ == o.typ
}

// All returns every version of the catalog in release order. The slice returned is a copy.
func All() []Version {
	return append([]Version(nil), catalog...)
}

// Count returns the number of versions in the catalog.
func Count() int {
	return len(catalog)
}

// Range returns all versions between from and to, inclusive, in release order.
func Range(from, to Version) []Version {
	var versions []Version
	for _, v := range catalog {
		if v.Between(from, to) {
			versions = append(versions, v)
		}
	}
	return versions
}

// Family returns all versions of a family in release order.
func Family(typ Type) []Version {
	var versions []Version
	for _, v := range catalog {
		if v.typ == typ {
			versions = append(versions, v)
		}
	}
	return versions
}

// ByID looks up the version of a family with the protocol id passed.
func ByID(typ Type, id int32) (Version, bool) {
	for _, v := range catalog {
		if v.typ == typ && v.id == id {
			return v, true
		}
	}
	return Version{}, false
}

// ByName looks up a version by its display name, such as "1.12.2" or "PE-1.1".
func ByName(name string) (Version, bool) {
	for _, v := range catalog {
		if v.name == name {
			return v, true
		}
	}
	return Version{}, false
}
