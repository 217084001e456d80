package utils

import (
	"errors"
	"fmt"
)

// FatalError marks a condition after which no further core code may run:
// allocation failure, constant pool overflow, unreadable source files.
// Core packages return it; only the top-level driver exits on it.
type FatalError struct {
	Msg string
}

func (e *FatalError) Error() string { return e.Msg }

// Is makes errors.Is match on the message so wrapped sentinels compare equal.
func (e *FatalError) Is(target error) bool {
	t, ok := target.(*FatalError)
	return ok && t.Msg == e.Msg
}

var (
	ErrOutOfMemory      = &FatalError{Msg: "Not enough memory"}
	ErrTooManyConstants = &FatalError{Msg: "Too many constants in one chunk"}
)

// Fatalf builds a FatalError with a formatted message.
func Fatalf(format string, args ...any) error {
	return &FatalError{Msg: fmt.Sprintf(format, args...)}
}

// IsFatal reports whether err (or anything it wraps) is a FatalError.
func IsFatal(err error) bool {
	var fe *FatalError
	return errors.As(err, &fe)
}
