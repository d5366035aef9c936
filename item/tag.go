package item

import (
	"maps"
	"reflect"
)

// Tag is a structured tag (an NBT compound) attached to an item. A nil Tag is the absent tag; an
// empty, non-nil Tag is a present compound without entries.
type Tag map[string]any

// IsNull reports whether the tag is absent.
func (t Tag) IsNull() bool {
	return t == nil
}

// Clone returns a deep copy of the tag, so that the copy may be mutated without affecting t.
func (t Tag) Clone() Tag {
	if t == nil {
		return nil
	}
	return cloneMap(t)
}

// Equal reports whether two tags hold the same entries.
func (t Tag) Equal(o Tag) bool {
	if t.IsNull() || o.IsNull() {
		return t.IsNull() == o.IsNull()
	}
	return reflect.DeepEqual(map[string]any(t), map[string]any(o))
}

// String returns the string stored under key, or an empty string.
func (t Tag) String(key string) string {
	s, _ := t[key].(string)
	return s
}

// Compound returns the compound stored under key, or nil.
func (t Tag) Compound(key string) Tag {
	switch v := t[key].(type) {
	case map[string]any:
		return v
	case Tag:
		return v
	}
	return nil
}

func cloneMap(m map[string]any) map[string]any {
	c := maps.Clone(m)
	for k, v := range c {
		c[k] = cloneValue(v)
	}
	return c
}

func cloneValue(v any) any {
	switch v := v.(type) {
	case map[string]any:
		return cloneMap(v)
	case Tag:
		return Tag(cloneMap(v))
	case []any:
		s := make([]any, len(v))
		for i, e := range v {
			s[i] = cloneValue(e)
		}
		return s
	case []map[string]any:
		s := make([]map[string]any, len(v))
		for i, e := range v {
			s[i] = cloneMap(e)
		}
		return s
	case []byte:
		return append([]byte(nil), v...)
	case []int32:
		return append([]int32(nil), v...)
	case []int64:
		return append([]int64(nil), v...)
	case []string:
		return append([]string(nil), v...)
	}
	return v
}
