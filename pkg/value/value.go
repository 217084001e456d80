package value

import (
	"math"
	"strconv"
	"strings"
)

// Value is a runtime value tagged with the same kinds the type checker uses.
// Only the payload matching Type is meaningful.
type Value struct {
	Type Type
	real float64
	int  int64
}

func Real(f float64) Value { return Value{Type: TypeReal, real: f} }
func Int(i int64) Value    { return Value{Type: TypeInt, int: i} }

// AsReal returns the float payload, converting Int values.
func (v Value) AsReal() float64 {
	if v.Type == TypeInt {
		return float64(v.int)
	}
	return v.real
}

// AsInt returns the integer payload, truncating Real values.
func (v Value) AsInt() int64 {
	if v.Type == TypeReal {
		return int64(v.real)
	}
	return v.int
}

// Equal compares tag and payload. Reals compare by bit pattern so NaN
// constants are equal to themselves.
func (v Value) Equal(o Value) bool {
	if v.Type != o.Type {
		return false
	}
	switch v.Type {
	case TypeReal:
		return math.Float64bits(v.real) == math.Float64bits(o.real)
	case TypeInt:
		return v.int == o.int
	}
	return true
}

// String prints reals in their shortest round-tripping decimal form, always
// with a fractional part or exponent so they never read as integers.
func (v Value) String() string {
	switch v.Type {
	case TypeReal:
		s := strconv.FormatFloat(v.real, 'g', -1, 64)
		if math.IsInf(v.real, 0) || math.IsNaN(v.real) || strings.ContainsAny(s, ".e") {
			return s
		}
		return s + ".0"
	case TypeInt:
		return strconv.FormatInt(v.int, 10)
	}
	return "<" + v.Type.String() + ">"
}
