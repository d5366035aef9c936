package serializer

import (
	"fmt"
	"math"

	"github.com/cooldogedev/prism/chat"
	"github.com/cooldogedev/prism/item"
	proto "github.com/cooldogedev/prism/protocol"
	"github.com/cooldogedev/prism/storage"
)

// nullItemID is the type identifier written for the absent item.
const nullItemID = -1

// Direction is the side items are written to.
type Direction uint8

const (
	// DirectionClient writes items to a client: they pass the item write observer and the clientbound
	// item transformers.
	DirectionClient Direction = iota
	// DirectionServer writes items to the server, which only remaps them through the registry.
	DirectionServer
)

// WriteItemStack writes stack to a client for the version of the strategy passed. The stack passed is
// never modified: a copy of it is remapped through the registry of shared, offered to the item write
// observer and the item transformers, and then written as type, amount, data and tag. Identifiers
// or amounts the layout cannot hold fail with an EncodeError.
func WriteItemStack(buf *proto.Buffer, s Strategy, local *storage.Local, shared *storage.Shared, stack item.Stack) error {
	return writeItemStack(buf, s, local, shared, stack, DirectionClient)
}

func writeItemStack(buf *proto.Buffer, s Strategy, local *storage.Local, shared *storage.Shared, stack item.Stack, dir Direction) error {
	if s.Framing != FramingShortLength && s.Framing != FramingDirect {
		return &proto.UnsupportedVersionError{Op: "write item", Version: s.Version}
	}
	if stack.IsNull() {
		buf.WriteInt16(nullItemID)
		return nil
	}

	result := stack.Clone()
	locale := localeOf(local)
	if shared != nil {
		result.ID, result.Data = shared.Registry().Table(s.Version).Apply(result.ID, result.Data)
		if dir == DirectionClient {
			if observer := shared.Observer(); observer != nil {
				event := &item.WriteEvent{Version: s.Version, Locale: locale, Original: stack.Clone(), Result: result}
				observer.HandleItemWrite(event)
				result = event.Result
			}
			if !result.IsNull() {
				result = shared.Transformers().Clientbound(s.Version, locale, stack.ID, result)
			}
		}
	}
	if result.IsNull() {
		buf.WriteInt16(nullItemID)
		return nil
	}
	if err := checkItemStack(result); err != nil {
		return err
	}

	start := buf.WriterIndex()
	buf.WriteInt16(int16(result.ID))
	_ = buf.WriteByte(byte(result.Amount))
	buf.WriteInt16(int16(uint16(result.Data)))
	if err := WriteTag(buf, s, result.Tag); err != nil {
		buf.Truncate(start)
		return err
	}
	return nil
}

// ReadItemStack reads an item for the version of the strategy passed. A negative type identifier is the
// absent item, in which case nothing after it is read. Present items are passed through the incoming
// item transformers of shared. On failure the reader index is left where it was.
func ReadItemStack(buf *proto.Buffer, s Strategy, local *storage.Local, shared *storage.Shared) (item.Stack, error) {
	if s.Framing != FramingShortLength && s.Framing != FramingDirect {
		return item.Stack{}, &proto.UnsupportedVersionError{Op: "read item", Version: s.Version}
	}

	start := buf.ReaderIndex()
	id, err := buf.ReadInt16()
	if err != nil {
		return item.Stack{}, proto.Decode("read item id", err)
	}
	if id < 0 {
		return item.Null(), nil
	}

	amount, err := buf.ReadUint8()
	if err != nil {
		buf.SetReaderIndex(start)
		return item.Stack{}, proto.Decode("read item amount", err)
	}
	data, err := buf.ReadUint16()
	if err != nil {
		buf.SetReaderIndex(start)
		return item.Stack{}, proto.Decode("read item data", err)
	}
	tag, err := ReadTag(buf, s)
	if err != nil {
		buf.SetReaderIndex(start)
		return item.Stack{}, err
	}

	stack := item.NewStack(int32(id), int32(data), int32(int8(amount)))
	stack.Tag = tag
	if shared != nil {
		stack = shared.Transformers().Serverbound(s.Version, localeOf(local), stack)
	}
	return stack, nil
}

// checkItemStack fails with an EncodeError if a field of stack does not fit its wire type. A type of
// 0xFFFF would otherwise be read back as the absent item.
func checkItemStack(stack item.Stack) error {
	switch {
	case stack.ID < 0 || stack.ID > math.MaxInt16:
		return &proto.EncodeError{Op: "write item id", Err: fmt.Errorf("type %d out of range [0, %d]", stack.ID, math.MaxInt16)}
	case stack.Amount < math.MinInt8 || stack.Amount > math.MaxInt8:
		return &proto.EncodeError{Op: "write item amount", Err: fmt.Errorf("amount %d out of range [%d, %d]", stack.Amount, math.MinInt8, math.MaxInt8)}
	case stack.Data < 0 || stack.Data > math.MaxUint16:
		return &proto.EncodeError{Op: "write item data", Err: fmt.Errorf("data %d out of range [0, %d]", stack.Data, math.MaxUint16)}
	}
	return nil
}

func localeOf(local *storage.Local) string {
	if local == nil {
		return chat.DefaultLocale
	}
	return local.Locale()
}
