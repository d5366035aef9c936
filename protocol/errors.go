package protocol

import (
	"errors"
	"fmt"

	"github.com/cooldogedev/prism/version"
)

var (
	// ErrShortBuffer is returned when a read needs more bytes than the packet has left.
	ErrShortBuffer = errors.New("short buffer")
	// ErrTrailingBytes is returned when a packet layout has been read but bytes remain.
	ErrTrailingBytes = errors.New("trailing bytes after packet")
	// ErrStringTooLong is returned when a string exceeds the maximum length of a layout.
	ErrStringTooLong = errors.New("string too long")
	// ErrVarIntTooLong is returned when a VarInt spans more than five bytes.
	ErrVarIntTooLong = errors.New("varint too long")
)

// DecodeError is returned when wire bytes cannot be reconstructed into a packet. The connection that
// produced them should be terminated.
type DecodeError struct {
	Op  string
	Err error
}

// Error ...
func (e *DecodeError) Error() string {
	return fmt.Sprintf("decode %s: %v", e.Op, e.Err)
}

// Unwrap ...
func (e *DecodeError) Unwrap() error {
	return e.Err
}

// EncodeError is returned when a canonical value cannot be represented in the layout of the target
// version. Only the emission of the packet in question is abandoned.
type EncodeError struct {
	Op  string
	Err error
}

// Error ...
func (e *EncodeError) Error() string {
	return fmt.Sprintf("encode %s: %v", e.Op, e.Err)
}

// Unwrap ...
func (e *EncodeError) Unwrap() error {
	return e.Err
}

// UnsupportedVersionError is returned when no layout rule is registered for a version. It signals a
// configuration gap and is never downgraded to a guessed format.
type UnsupportedVersionError struct {
	Op      string
	Version version.Version
}

// Error ...
func (e *UnsupportedVersionError) Error() string {
	return fmt.Sprintf("%s: unsupported protocol version %v", e.Op, e.Version)
}

// Decode wraps err into a DecodeError unless it already is one.
func Decode(op string, err error) error {
	if err == nil {
		return nil
	}
	var decodeErr *DecodeError
	var unsupportedErr *UnsupportedVersionError
	if errors.As(err, &decodeErr) || errors.As(err, &unsupportedErr) {
		return err
	}
	return &DecodeError{Op: op, Err: err}
}

// Encode wraps err into an EncodeError unless it already is one.
func Encode(op string, err error) error {
	if err == nil {
		return nil
	}
	var encodeErr *EncodeError
	var unsupportedErr *UnsupportedVersionError
	if errors.As(err, &encodeErr) || errors.As(err, &unsupportedErr) {
		return err
	}
	return &EncodeError{Op: op, Err: err}
}
