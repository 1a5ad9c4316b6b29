// Package exitcode maps errors to process exit codes.
//
// Configuration-time failures (bad arguments, unreadable variable files)
// get distinct codes so scripts can tell them apart from per-template
// failures (strict-mode violations, output conflicts).
package exitcode

import (
	"errors"
	"strings"
)

const (
	OK      = 0
	Generic = 1
	Usage   = 2 // malformed arguments, missing inputs
	Decode  = 3 // variable input file could not be decoded
	Resolve = 4 // strict mode: unresolved placeholders
	Output  = 5 // output conflict or unwritable destination
)

// Error attaches an exit code to a cause.
type Error struct {
	Code  int
	Cause error
}

func (e *Error) Error() string {
	return e.Cause.Error()
}

func (e *Error) Unwrap() error {
	return e.Cause
}

// Wrap attaches code to err. Wrapping nil returns nil.
func Wrap(code int, err error) error {
	if err == nil {
		return nil
	}
	return &Error{Code: code, Cause: err}
}

// Of returns the exit code for err.
func Of(err error) int {
	if err == nil {
		return OK
	}

	var coded *Error
	if errors.As(err, &coded) {
		return coded.Code
	}

	// Fallback: string-based classification for errors not yet wrapped
	// with typed codes. Each case here is a candidate for future
	// replacement with a typed error.
	msg := strings.ToLower(err.Error())
	switch {
	case strings.Contains(msg, "unresolved"):
		return Resolve
	case strings.Contains(msg, "already exists"):
		return Output
	case strings.Contains(msg, "decoding") || strings.Contains(msg, "parsing"):
		return Decode
	case strings.Contains(msg, "not found") || strings.Contains(msg, "invalid"):
		return Usage
	default:
		return Generic
	}
}
