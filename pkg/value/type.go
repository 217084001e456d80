// Package value holds the vocabulary shared by the compiler front end and
// the bytecode machine: the compile-time type tag and the tagged runtime
// value.
package value

import "fmt"

// Type is a compile-time type descriptor. The zero value is TypeUnknown,
// meaning "not inferred yet".
type Type int

const (
	TypeUnknown Type = iota
	TypeInvalid
	TypeReal
	TypeInt
)

var typeNames = [...]string{
	TypeUnknown: "Unknown",
	TypeInvalid: "Invalid",
	TypeReal:    "Real",
	TypeInt:     "Int",
}

func (t Type) String() string {
	if int(t) >= 0 && int(t) < len(typeNames) {
		return typeNames[t]
	}
	return fmt.Sprintf("Type(%d)", int(t))
}

// IsNumeric reports whether t is one of the arithmetic types.
func (t Type) IsNumeric() bool {
	return t == TypeReal || t == TypeInt
}
