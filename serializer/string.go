package serializer

import (
	"fmt"
	"unicode/utf8"

	proto "github.com/cooldogedev/prism/protocol"
	"github.com/sandertv/gophertunnel/minecraft/protocol"
	"golang.org/x/text/encoding/unicode"
)

// MaxStringLength is the default maximum length of a string in UTF-16 code units.
const MaxStringLength = 32767

var utf16BE = unicode.UTF16(unicode.BigEndian, unicode.IgnoreBOM)

// utf16Len returns the number of UTF-16 code units s encodes to.
func utf16Len(s string) int {
	n := 0
	for _, r := range s {
		if r >= 0x10000 {
			n += 2
		} else {
			n++
		}
	}
	return n
}

// WriteString writes s with the text layout of the strategy passed. Strings longer than limit UTF-16
// code units fail with an EncodeError.
func WriteString(buf *proto.Buffer, s Strategy, str string, limit int) error {
	if limit <= 0 {
		limit = MaxStringLength
	}
	if n := utf16Len(str); n > limit {
		return &proto.EncodeError{Op: "write string", Err: fmt.Errorf("%d code units exceed limit of %d: %w", n, limit, proto.ErrStringTooLong)}
	}

	switch s.Text {
	case TextUTF16:
		encoded, err := utf16BE.NewEncoder().Bytes([]byte(str))
		if err != nil {
			return &proto.EncodeError{Op: "write string", Err: err}
		}
		buf.WriteInt16(int16(len(encoded) / 2))
		_, _ = buf.Write(encoded)
	case TextVarInt:
		buf.WriteVarInt(int32(len(str)))
		_, _ = buf.Write([]byte(str))
	case TextPE:
		protocol.NewWriter(buf, 0).String(&str)
	default:
		return &proto.UnsupportedVersionError{Op: "write string", Version: s.Version}
	}
	return nil
}

// ReadString reads a string with the text layout of the strategy passed. Strings longer than limit
// UTF-16 code units, or cut short by the end of the packet, fail with a DecodeError.
func ReadString(buf *proto.Buffer, s Strategy, limit int) (str string, err error) {
	if limit <= 0 {
		limit = MaxStringLength
	}

	switch s.Text {
	case TextUTF16:
		n, err := buf.ReadInt16()
		if err != nil {
			return "", proto.Decode("read string length", err)
		}
		if n < 0 || int(n) > limit {
			return "", &proto.DecodeError{Op: "read string", Err: fmt.Errorf("length %d out of bounds: %w", n, proto.ErrStringTooLong)}
		}
		b, err := buf.ReadSlice(int(n) * 2)
		if err != nil {
			return "", proto.Decode("read string", err)
		}
		decoded, err := utf16BE.NewDecoder().Bytes(b)
		if err != nil {
			return "", proto.Decode("read string", err)
		}
		return string(decoded), nil
	case TextVarInt:
		n, err := buf.ReadVarInt()
		if err != nil {
			return "", proto.Decode("read string length", err)
		}
		// A single UTF-16 code unit takes at most four bytes of UTF-8.
		if n < 0 || int(n) > limit*utf8.UTFMax {
			return "", &proto.DecodeError{Op: "read string", Err: fmt.Errorf("length %d out of bounds: %w", n, proto.ErrStringTooLong)}
		}
		b, err := buf.ReadSlice(int(n))
		if err != nil {
			return "", proto.Decode("read string", err)
		}
		str = string(b)
	case TextPE:
		defer func() {
			if r := recover(); r != nil {
				str, err = "", &proto.DecodeError{Op: "read string", Err: fmt.Errorf("%v", r)}
			}
		}()
		protocol.NewReader(buf, 0, false).String(&str)
	default:
		return "", &proto.UnsupportedVersionError{Op: "read string", Version: s.Version}
	}

	if n := utf16Len(str); n > limit {
		return "", &proto.DecodeError{Op: "read string", Err: fmt.Errorf("%d code units exceed limit of %d: %w", n, limit, proto.ErrStringTooLong)}
	}
	return str, nil
}
