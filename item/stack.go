package item

import "fmt"

// Stack is the canonical, version independent item payload. The zero Stack is a present stack of
// type 0; use Null for the absent item.
type Stack struct {
	// ID is the type identifier of the item.
	ID int32
	// Data is the sub-identifier, written as an unsigned 16-bit value.
	Data int32
	// Amount is the quantity, written as a single byte.
	Amount int32
	// Tag is the optional structured tag. A nil Tag is absent.
	Tag Tag

	null bool
}

// NewStack creates a present stack without a tag.
func NewStack(id, data, amount int32) Stack {
	return Stack{ID: id, Data: data, Amount: amount}
}

// Null returns the absent item. It is written as the -1 type sentinel.
func Null() Stack {
	return Stack{ID: -1, null: true}
}

// IsNull reports whether the stack is the absent item.
func (s Stack) IsNull() bool {
	return s.null
}

// Clone returns a copy of the stack with a deep copy of its tag.
func (s Stack) Clone() Stack {
	s.Tag = s.Tag.Clone()
	return s
}

// Equal reports whether two stacks describe the same item.
func (s Stack) Equal(o Stack) bool {
	if s.null || o.null {
		return s.null == o.null
	}
	return s.ID == o.ID && s.Data == o.Data && s.Amount == o.Amount && s.Tag.Equal(o.Tag)
}

// String ...
func (s Stack) String() string {
	if s.null {
		return "Stack(null)"
	}
	return fmt.Sprintf("Stack(id=%d, data=%d, amount=%d, tag=%v)", s.ID, s.Data, s.Amount, s.Tag)
}
