package errcode

import "errors"

// Code is a stable, bus-facing error identifier.
// It is a string newtype, comparable, allocation-free, and implements error.
type Code string

func (c Code) Error() string { return string(c) }

// Canonical codes (short, stable).
const (
	OK            Code = "ok"
	Busy          Code = "busy"
	Timeout       Code = "timeout"
	Closed        Code = "closed"
	Unsupported   Code = "unsupported"
	InvalidParams Code = "invalid_params"

	// Register access
	IOError    Code = "io_error"     // bus transaction failed
	Decode     Code = "decode_error" // register bits match no valid code
	OutOfRange Code = "out_of_range" // channel, address select or field width

	Error Code = "error" // generic fallback
)

// Of extracts a Code from an error chain, defaulting to Error.
// An error may carry its code by being a Code or by implementing Code() Code.
func Of(err error) Code {
	if err == nil {
		return OK
	}
	var c Code
	if errors.As(err, &c) {
		return c
	}
	type coder interface{ Code() Code }
	var x coder
	if errors.As(err, &x) {
		return x.Code()
	}
	return Error
}
