package serializer

import (
	"fmt"
	"math"

	"github.com/cooldogedev/prism/chat"
	"github.com/cooldogedev/prism/item"
	proto "github.com/cooldogedev/prism/protocol"
	"github.com/cooldogedev/prism/storage"
	"github.com/cooldogedev/prism/version"
	"github.com/sandertv/gophertunnel/minecraft/protocol"
)

// IO is implemented by Reader and Writer, so that a packet layout may be described once and used for
// both directions.
type IO interface {
	Uint8(x *uint8)
	Int8(x *int8)
	Bool(x *bool)
	Int16(x *int16)
	Uint16(x *uint16)
	Int32(x *int32)
	Varint32(x *int32)
	String(x *string)
	StringLimit(x *string, limit int)
	Chat(x *chat.Component)
	ItemStack(x *item.Stack)
	Tag(x *item.Tag)

	// Version returns the protocol version of the layout.
	Version() version.Version
	// Err returns the first error the IO ran into.
	Err() error
	// Fail records err unless an error was already recorded.
	Fail(err error)
}

// state is shared by Reader and Writer.
type state struct {
	buf      *proto.Buffer
	strategy Strategy
	local    *storage.Local
	shared   *storage.Shared
	err      error
}

// Version ...
func (c *state) Version() version.Version {
	return c.strategy.Version
}

// Strategy ...
func (c *state) Strategy() Strategy {
	return c.strategy
}

// Local returns the storage of the connection, which may be nil.
func (c *state) Local() *storage.Local {
	return c.local
}

// Shared returns the process wide storage, which may be nil.
func (c *state) Shared() *storage.Shared {
	return c.shared
}

// Locale returns the locale of the connection.
func (c *state) Locale() string {
	return localeOf(c.local)
}

// Err ...
func (c *state) Err() error {
	return c.err
}

// Fail records err unless an error was already recorded.
func (c *state) Fail(err error) {
	if c.err == nil {
		c.err = err
	}
}

func (c *state) translations() *chat.Translations {
	if c.shared == nil {
		return nil
	}
	return c.shared.Translations()
}

// Writer writes fields into a buffer with the layout of one protocol version. The first error is kept
// and turns all following writes into no-ops.
type Writer struct {
	state
	direction Direction
}

// NewWriter creates a Writer appending to buf. Items are written as going to a client until
// SetDirection is called.
func NewWriter(buf *proto.Buffer, s Strategy, local *storage.Local, shared *storage.Shared) *Writer {
	return &Writer{state: state{buf: buf, strategy: s, local: local, shared: shared}}
}

// SetDirection sets the side the written packet is sent to.
func (w *Writer) SetDirection(d Direction) {
	w.direction = d
}

// Direction ...
func (w *Writer) Direction() Direction {
	return w.direction
}

// Buffer returns the buffer written to.
func (w *Writer) Buffer() *proto.Buffer {
	return w.buf
}

// Uint8 ...
func (w *Writer) Uint8(x *uint8) {
	if w.err == nil {
		_ = w.buf.WriteByte(*x)
	}
}

// Int8 ...
func (w *Writer) Int8(x *int8) {
	if w.err == nil {
		_ = w.buf.WriteByte(byte(*x))
	}
}

// Bool ...
func (w *Writer) Bool(x *bool) {
	if w.err != nil {
		return
	}
	if *x {
		_ = w.buf.WriteByte(1)
	} else {
		_ = w.buf.WriteByte(0)
	}
}

// Int16 ...
func (w *Writer) Int16(x *int16) {
	if w.err == nil {
		w.buf.WriteInt16(*x)
	}
}

// Uint16 ...
func (w *Writer) Uint16(x *uint16) {
	if w.err == nil {
		w.buf.WriteInt16(int16(*x))
	}
}

// Int32 ...
func (w *Writer) Int32(x *int32) {
	if w.err == nil {
		w.buf.WriteInt32(*x)
	}
}

// Varint32 ...
func (w *Writer) Varint32(x *int32) {
	if w.err == nil {
		w.buf.WriteVarInt(*x)
	}
}

// String writes a string of at most MaxStringLength code units.
func (w *Writer) String(x *string) {
	w.StringLimit(x, MaxStringLength)
}

// StringLimit writes a string of at most limit code units.
func (w *Writer) StringLimit(x *string, limit int) {
	if w.err == nil {
		w.Fail(WriteString(w.buf, w.strategy, *x, limit))
	}
}

// Chat writes a chat component in the richest form the version understands: JSON downgraded to the
// features of the version from 1.7 on, legacy formatted text before.
func (w *Writer) Chat(x *chat.Component) {
	if w.err != nil {
		return
	}
	s := w.ChatText(x)
	w.String(&s)
}

// ChatText returns the text a chat component is written as for the version of the writer.
func (w *Writer) ChatText(x *chat.Component) string {
	tr := w.translations()
	if w.strategy.Text == TextVarInt {
		return chat.ToJSON(chat.ConvertLegacyJSON(*x, w.strategy.Version, w.Locale(), tr))
	}
	return chat.ToLegacyText(*x, w.Locale(), tr)
}

// LegacyText returns the component as legacy formatted text, regardless of the version of the writer.
func (w *Writer) LegacyText(x *chat.Component) string {
	return chat.ToLegacyText(*x, w.Locale(), w.translations())
}

// ItemStack ...
func (w *Writer) ItemStack(x *item.Stack) {
	if w.err == nil {
		w.Fail(writeItemStack(w.buf, w.strategy, w.local, w.shared, *x, w.direction))
	}
}

// Tag ...
func (w *Writer) Tag(x *item.Tag) {
	if w.err == nil {
		w.Fail(WriteTag(w.buf, w.strategy, *x))
	}
}

// Reader reads fields from the payload of one packet with the layout of one protocol version. The
// first error is kept and turns all following reads into no-ops.
type Reader struct {
	state
}

// NewReader creates a Reader consuming buf.
func NewReader(buf *proto.Buffer, s Strategy, local *storage.Local, shared *storage.Shared) *Reader {
	return &Reader{state{buf: buf, strategy: s, local: local, shared: shared}}
}

// Len returns the number of unread bytes.
func (r *Reader) Len() int {
	return r.buf.Len()
}

// Remaining consumes and returns all unread bytes.
func (r *Reader) Remaining() []byte {
	b, _ := r.buf.ReadSlice(r.buf.Len())
	return b
}

// Uint8 ...
func (r *Reader) Uint8(x *uint8) {
	if r.err != nil {
		return
	}
	v, err := r.buf.ReadUint8()
	r.set(err, "uint8")
	*x = v
}

// Int8 ...
func (r *Reader) Int8(x *int8) {
	var v uint8
	r.Uint8(&v)
	*x = int8(v)
}

// Bool ...
func (r *Reader) Bool(x *bool) {
	var v uint8
	r.Uint8(&v)
	*x = v != 0
}

// Int16 ...
func (r *Reader) Int16(x *int16) {
	if r.err != nil {
		return
	}
	v, err := r.buf.ReadInt16()
	r.set(err, "int16")
	*x = v
}

// Uint16 ...
func (r *Reader) Uint16(x *uint16) {
	if r.err != nil {
		return
	}
	v, err := r.buf.ReadUint16()
	r.set(err, "uint16")
	*x = v
}

// Int32 ...
func (r *Reader) Int32(x *int32) {
	if r.err != nil {
		return
	}
	v, err := r.buf.ReadInt32()
	r.set(err, "int32")
	*x = v
}

// Varint32 ...
func (r *Reader) Varint32(x *int32) {
	if r.err != nil {
		return
	}
	v, err := r.buf.ReadVarInt()
	r.set(err, "varint32")
	*x = v
}

// String reads a string of at most MaxStringLength code units.
func (r *Reader) String(x *string) {
	r.StringLimit(x, MaxStringLength)
}

// StringLimit reads a string of at most limit code units.
func (r *Reader) StringLimit(x *string, limit int) {
	if r.err != nil {
		return
	}
	v, err := ReadString(r.buf, r.strategy, limit)
	r.Fail(err)
	*x = v
}

// Chat reads a chat component: JSON from 1.7 on, legacy formatted text before.
func (r *Reader) Chat(x *chat.Component) {
	var s string
	r.String(&s)
	if r.err != nil {
		return
	}
	if r.strategy.Text != TextVarInt {
		*x = chat.FromLegacyText(s)
		return
	}
	c, err := chat.FromJSON(s)
	if err != nil {
		r.Fail(&proto.DecodeError{Op: "read chat", Err: err})
		return
	}
	*x = c
}

// ItemStack ...
func (r *Reader) ItemStack(x *item.Stack) {
	if r.err != nil {
		return
	}
	v, err := ReadItemStack(r.buf, r.strategy, r.local, r.shared)
	r.Fail(err)
	*x = v
}

// Tag ...
func (r *Reader) Tag(x *item.Tag) {
	if r.err != nil {
		return
	}
	v, err := ReadTag(r.buf, r.strategy)
	r.Fail(err)
	*x = v
}

func (r *Reader) set(err error, op string) {
	if err != nil {
		r.Fail(proto.Decode("read "+op, err))
	}
}

// ItemStacks reads or writes a slice of items prefixed with a signed 16-bit count.
func ItemStacks(io IO, x *[]item.Stack) {
	if r, ok := io.(*Reader); ok {
		var count int16
		r.Int16(&count)
		if r.Err() != nil {
			return
		}
		// Every item takes at least two bytes.
		if count < 0 || int(count) > r.Len()/2 {
			r.Fail(&proto.DecodeError{Op: "read items", Err: fmt.Errorf("item count %d out of bounds", count)})
			return
		}
		*x = make([]item.Stack, count)
	} else {
		if len(*x) > math.MaxInt16 {
			io.Fail(&proto.EncodeError{Op: "write items", Err: fmt.Errorf("%d items exceed limit", len(*x))})
			return
		}
		count := int16(len(*x))
		io.Int16(&count)
	}
	for i := range *x {
		io.ItemStack(&(*x)[i])
	}
}

// WritePacketID writes a packet identifier with the layout of the strategy passed.
func WritePacketID(buf *proto.Buffer, s Strategy, id int32) error {
	switch s.IDs {
	case IDsByte:
		_ = buf.WriteByte(byte(id))
	case IDsVarInt:
		buf.WriteVarInt(id)
	case IDsVaruint32:
		v := uint32(id)
		protocol.NewWriter(buf, 0).Varuint32(&v)
	default:
		return &proto.UnsupportedVersionError{Op: "write packet id", Version: s.Version}
	}
	return nil
}

// ReadPacketID reads a packet identifier with the layout of the strategy passed.
func ReadPacketID(buf *proto.Buffer, s Strategy) (id int32, err error) {
	switch s.IDs {
	case IDsByte:
		b, err := buf.ReadUint8()
		if err != nil {
			return 0, proto.Decode("read packet id", err)
		}
		return int32(b), nil
	case IDsVarInt:
		v, err := buf.ReadVarInt()
		if err != nil {
			return 0, proto.Decode("read packet id", err)
		}
		return v, nil
	case IDsVaruint32:
		defer func() {
			if r := recover(); r != nil {
				id, err = 0, &proto.DecodeError{Op: "read packet id", Err: fmt.Errorf("%v", r)}
			}
		}()
		var v uint32
		protocol.NewReader(buf, 0, false).Varuint32(&v)
		return int32(v), nil
	default:
		return 0, &proto.UnsupportedVersionError{Op: "read packet id", Version: s.Version}
	}
}
