package pac194x

import (
	"errors"

	"pac194x-go/errcode"
)

var (
	ErrChannel        = errors.New("pac194x: channel out of range")
	ErrInvalidCode    = errors.New("pac194x: invalid enumerated code")
	ErrOverflow       = errors.New("pac194x: value does not fit field")
	ErrUnknownProduct = errors.New("pac194x: unknown product id")
	ErrManufacturer   = errors.New("pac194x: unexpected manufacturer id")
	ErrAddrSelect     = errors.New("pac194x: invalid address select")
)

// Kind classifies an Error.
type Kind uint8

const (
	KindTransport Kind = iota + 1 // the bus transaction failed
	KindDecoding                  // register contents did not decode
	KindRange                     // argument rejected before any bus activity
)

func (k Kind) String() string {
	switch k {
	case KindTransport:
		return "transport"
	case KindDecoding:
		return "decoding"
	case KindRange:
		return "range"
	}
	return "unknown"
}

// Error is returned by every Device operation that fails.
type Error struct {
	Kind  Kind
	Op    string
	Reg   Register
	Field string // set for codec failures
	Err   error
}

func (e *Error) Error() string {
	name := e.Reg.String()
	if e.Err == ErrChannel {
		if i, ok := Lookup(e.Reg); ok {
			name = i.Name
		}
	}
	s := "pac194x: " + e.Op + " " + name
	if e.Field != "" {
		s += "." + e.Field
	}
	if e.Err != nil {
		s += ": " + e.Err.Error()
	}
	return s
}

func (e *Error) Unwrap() error { return e.Err }

// Code maps the kind onto the shared error codes.
func (e *Error) Code() errcode.Code {
	switch e.Kind {
	case KindTransport:
		return errcode.IOError
	case KindDecoding:
		return errcode.Decode
	case KindRange:
		return errcode.OutOfRange
	}
	return errcode.Error
}

func isKind(err error, k Kind) bool {
	var e *Error
	return errors.As(err, &e) && e.Kind == k
}

// IsTransport reports whether err came from the bus.
func IsTransport(err error) bool { return isKind(err, KindTransport) }

// IsDecoding reports whether a register held a pattern with no defined meaning.
func IsDecoding(err error) bool { return isKind(err, KindDecoding) }

// IsRange reports whether an argument was rejected locally.
func IsRange(err error) bool { return isKind(err, KindRange) }
