package calc

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// ValueKind reports which representation a Value holds.
type ValueKind int

const (
	KindInt ValueKind = iota
	KindFloat
)

func (k ValueKind) String() string {
	switch k {
	case KindInt:
		return "int"
	case KindFloat:
		return "float"
	default:
		return fmt.Sprintf("kind(%d)", int(k))
	}
}

// Value is the result of evaluating an expression: an int64 for the
// integer operators, a float64 once division is involved.
type Value struct {
	kind ValueKind
	i    int64
	f    float64
}

// NewInt returns an integer Value.
func NewInt(i int64) Value { return Value{kind: KindInt, i: i} }

// NewFloat returns a float Value.
func NewFloat(f float64) Value { return Value{kind: KindFloat, f: f} }

// Kind reports whether v holds an int or a float.
func (v Value) Kind() ValueKind { return v.kind }

// Int returns v as an int64. Float values are truncated toward zero, so
// NewFloat(-3.5).Int() is -3.
func (v Value) Int() int64 {
	if v.kind == KindFloat {
		return int64(v.f)
	}
	return v.i
}

// Float returns v as a float64, converting integers.
func (v Value) Float() float64 {
	if v.kind == KindFloat {
		return v.f
	}
	return float64(v.i)
}

// Equal compares numerically, so 3 equals 3.0.
func (v Value) Equal(other Value) bool {
	if v.kind == KindInt && other.kind == KindInt {
		return v.i == other.i
	}
	return v.Float() == other.Float()
}

// String formats integers in base 10 and floats with at least one decimal
// digit, as in 3.0 or 3.5.
func (v Value) String() string {
	if v.kind == KindFloat {
		return formatFloat(v.f)
	}
	return strconv.FormatInt(v.i, 10)
}

// formatFloat keeps a decimal point on whole values (3.0) and switches to
// exponent form outside [1e-4, 1e16).
func formatFloat(f float64) string {
	if math.IsInf(f, 0) || math.IsNaN(f) {
		return strconv.FormatFloat(f, 'g', -1, 64)
	}
	abs := math.Abs(f)
	if abs != 0 && (abs < 1e-4 || abs >= 1e16) {
		return strconv.FormatFloat(f, 'g', -1, 64)
	}
	s := strconv.FormatFloat(f, 'f', -1, 64)
	if !strings.Contains(s, ".") {
		s += ".0"
	}
	return s
}
