package remap

import (
	"github.com/brentp/intintmap"
	"github.com/cooldogedev/prism/version"
)

// KeepData is the data value of a Pair that keeps the canonical sub-identifier of the item remapped.
const KeepData = -1

// Pair is an item type identifier and sub-identifier.
type Pair struct {
	ID   int32
	Data int32
}

func (p Pair) key() int64 {
	return int64(p.ID)<<32 | int64(uint32(p.Data))
}

func pairFromKey(k int64) Pair {
	return Pair{ID: int32(k >> 32), Data: int32(uint32(k))}
}

// Table maps canonical pairs to the pairs of one protocol version. Tables are immutable once built
// and safe for concurrent reads.
type Table struct {
	entries *intintmap.Map
}

// Remap returns the replacement of (id, data). A miss means the canonical identifiers are written
// verbatim. A replacement with a Data of KeepData only replaces the type.
func (t *Table) Remap(id, data int32) (Pair, bool) {
	if t == nil || t.entries == nil {
		return Pair{}, false
	}
	v, ok := t.entries.Get(Pair{ID: id, Data: data}.key())
	if !ok {
		return Pair{}, false
	}
	return pairFromKey(v), true
}

// Apply remaps (id, data), returning the identifiers to write.
func (t *Table) Apply(id, data int32) (int32, int32) {
	p, ok := t.Remap(id, data)
	if !ok {
		return id, data
	}
	if p.Data == KeepData {
		return p.ID, data
	}
	return p.ID, p.Data
}

// Len returns the number of entries of the table.
func (t *Table) Len() int {
	if t == nil || t.entries == nil {
		return 0
	}
	return t.entries.Size()
}

// Registry holds one Table per protocol version.
type Registry struct {
	tables []*Table
	empty  *Table
}

// Table returns the table of v. It never returns nil: versions without entries get an empty table.
func (r *Registry) Table(v version.Version) *Table {
	if r == nil {
		return emptyTable
	}
	if i := v.Ordinal(); i >= 0 && i < len(r.tables) && r.tables[i] != nil {
		return r.tables[i]
	}
	return r.empty
}

var emptyTable = &Table{}

// Builder collects remap entries. Entries registered later for the same pair and version replace
// earlier ones.
type Builder struct {
	entries []map[Pair]Pair
}

// NewBuilder ...
func NewBuilder() *Builder {
	return &Builder{entries: make([]map[Pair]Pair, version.Count())}
}

// Register remaps from to to for every version passed.
func (b *Builder) Register(from, to Pair, versions ...version.Version) *Builder {
	for _, v := range versions {
		i := v.Ordinal()
		if i < 0 {
			continue
		}
		if b.entries[i] == nil {
			b.entries[i] = make(map[Pair]Pair)
		}
		b.entries[i][from] = to
	}
	return b
}

// RegisterType remaps every data value of type from to type to, keeping the data value.
func (b *Builder) RegisterType(from, to int32, versions ...version.Version) *Builder {
	for data := int32(0); data < 16; data++ {
		b.Register(Pair{ID: from, Data: data}, Pair{ID: to, Data: KeepData}, versions...)
	}
	return b
}

// RegisterTypeData remaps every data value of type from to the fixed pair to.
func (b *Builder) RegisterTypeData(from int32, to Pair, versions ...version.Version) *Builder {
	for data := int32(0); data < 16; data++ {
		b.Register(Pair{ID: from, Data: data}, to, versions...)
	}
	return b
}

// Build freezes the entries into a Registry. The builder may be discarded afterwards.
func (b *Builder) Build() *Registry {
	r := &Registry{tables: make([]*Table, len(b.entries)), empty: emptyTable}
	for i, entries := range b.entries {
		if len(entries) == 0 {
			continue
		}
		m := intintmap.New(len(entries), 0.6)
		for from, to := range entries {
			m.Put(from.key(), to.key())
		}
		r.tables[i] = &Table{entries: m}
	}
	return r
}
