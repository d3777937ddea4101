// Package code defines the registered error codes used across the link layer.
package code

import (
	"fmt"
	"strings"
)

// Code is a registered error with a numeric code, a fixed message and
// optional per-occurrence details.
type Code struct {
	code    int
	msg     string
	details []string
}

var codes = map[int]string{}

// NewError registers a new error code. Codes must be unique across the
// whole program; registration happens in package-level vars.
func NewError(code int, msg string) *Code {
	if _, ok := codes[code]; ok {
		panic(fmt.Sprintf("error code %d already exists, pick another one", code))
	}
	codes[code] = msg
	return &Code{code: code, msg: msg}
}

// Error implements the error interface. Details are appended so the full
// reason survives error wrapping and log output.
func (e *Code) Error() string {
	if len(e.details) == 0 {
		return e.msg
	}
	return e.msg + ": " + strings.Join(e.details, "; ")
}

func (e *Code) Code() int {
	return e.code
}

func (e *Code) Msg() string {
	return e.msg
}

func (e *Code) Details() []string {
	return e.details
}

func (e *Code) HaveDetails() bool {
	return len(e.details) > 0
}

// Clone returns a copy without details, leaving the registered value intact.
func (e *Code) Clone() *Code {
	return &Code{code: e.code, msg: e.msg}
}

// WithDetails returns a copy carrying the given details. The registered
// value is never mutated, so concurrent callers cannot see each other's
// details.
func (e *Code) WithDetails(details ...string) *Code {
	c := e.Clone()
	c.details = append(c.details, details...)
	return c
}

// Is reports whether target carries the same registered code. It makes
// errors.Is work across WithDetails copies.
func (e *Code) Is(target error) bool {
	t, ok := target.(*Code)
	return ok && t.code == e.code
}
