// Package fold implements the constant-folding core: literal
// normalization, pure operator reduction, confidence evaluation of
// expression subtrees, and the rewrite pass that replaces foldable
// nodes with literals.
package fold

import (
	"math"
	"strconv"
	"strings"
)

// Kind discriminates the constant value variants the folder produces.
type Kind int

const (
	KindUndefined Kind = iota
	KindNull
	KindNumber
	KindString
	KindBool
)

// Value is a resolved constant: a number, string, boolean, null, or the
// undefined non-value. Only the field matching Kind is meaningful.
type Value struct {
	Kind Kind
	Num  float64
	Str  string
	Bool bool
}

func Number(v float64) Value { return Value{Kind: KindNumber, Num: v} }
func String(s string) Value  { return Value{Kind: KindString, Str: s} }
func Boolean(b bool) Value   { return Value{Kind: KindBool, Bool: b} }
func Null() Value            { return Value{Kind: KindNull} }
func Undefined() Value       { return Value{Kind: KindUndefined} }

// Truthy applies the JavaScript ToBoolean conversion.
func (v Value) Truthy() bool {
	switch v.Kind {
	case KindNumber:
		return v.Num != 0 && !math.IsNaN(v.Num)
	case KindString:
		return v.Str != ""
	case KindBool:
		return v.Bool
	}
	return false
}

// IsNullish reports null or undefined, the left-operand test of the ??
// operator.
func (v Value) IsNullish() bool {
	return v.Kind == KindNull || v.Kind == KindUndefined
}

// ToNumber applies the JavaScript ToNumber conversion.
func (v Value) ToNumber() float64 {
	switch v.Kind {
	case KindNumber:
		return v.Num
	case KindBool:
		if v.Bool {
			return 1
		}
		return 0
	case KindNull:
		return 0
	case KindString:
		return stringToNumber(v.Str)
	}
	return math.NaN()
}

// stringToNumber follows the StringToNumber rules: trimmed empty is
// zero, radix prefixes are honored, anything unparseable is NaN.
func stringToNumber(s string) float64 {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0
	}
	if len(s) > 2 && s[0] == '0' {
		var base int
		switch s[1] {
		case 'x', 'X':
			base = 16
		case 'b', 'B':
			base = 2
		case 'o', 'O':
			base = 8
		}
		if base != 0 {
			u, err := strconv.ParseUint(s[2:], base, 64)
			if err != nil {
				return math.NaN()
			}
			return float64(u)
		}
	}
	switch s {
	case "Infinity", "+Infinity":
		return math.Inf(1)
	case "-Infinity":
		return math.Inf(-1)
	}
	// only the decimal grammar remains; ParseFloat alone would also take
	// Go spellings like "inf", "NaN", or separator underscores
	for i := 0; i < len(s); i++ {
		switch c := s[i]; {
		case c >= '0' && c <= '9':
		case c == '.' || c == '+' || c == '-' || c == 'e' || c == 'E':
		default:
			return math.NaN()
		}
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return math.NaN()
	}
	return f
}

// ToInt32 applies the ToInt32 conversion used by the bitwise operators:
// modulo 2^32 into the two's-complement range.
func (v Value) ToInt32() int32 {
	return int32(v.ToUint32())
}

// ToUint32 applies ToUint32, used for the >>> result and shift counts.
func (v Value) ToUint32() uint32 {
	f := v.ToNumber()
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return 0
	}
	f = math.Mod(math.Trunc(f), 1<<32)
	if f < 0 {
		f += 1 << 32
	}
	return uint32(f)
}

// ToText renders the value with the JavaScript ToString conversion,
// used in string concatenation and change reports.
func (v Value) ToText() string {
	switch v.Kind {
	case KindNumber:
		return formatJSNumber(v.Num)
	case KindString:
		return v.Str
	case KindBool:
		return strconv.FormatBool(v.Bool)
	case KindNull:
		return "null"
	}
	return "undefined"
}

func formatJSNumber(f float64) string {
	switch {
	case math.IsNaN(f):
		return "NaN"
	case math.IsInf(f, 1):
		return "Infinity"
	case math.IsInf(f, -1):
		return "-Infinity"
	}
	return strconv.FormatFloat(f, 'f', -1, 64)
}

// LooseEquals implements the == comparison for the value kinds the
// folder can produce.
func LooseEquals(a, b Value) bool {
	if a.Kind == b.Kind {
		return StrictEquals(a, b)
	}
	// null and undefined equal each other and nothing else
	if a.IsNullish() || b.IsNullish() {
		return a.IsNullish() && b.IsNullish()
	}
	// remaining mixed-type cases compare numerically
	an, bn := a.ToNumber(), b.ToNumber()
	return an == bn
}

// StrictEquals implements the === comparison.
func StrictEquals(a, b Value) bool {
	if a.Kind != b.Kind {
		return false
	}
	switch a.Kind {
	case KindNumber:
		return a.Num == b.Num // NaN !== NaN falls out of IEEE comparison
	case KindString:
		return a.Str == b.Str
	case KindBool:
		return a.Bool == b.Bool
	}
	return true // null === null, undefined === undefined
}

// LessThan implements the abstract relational comparison. The second
// return is false when the result is undefined (a NaN operand), which
// makes every ordering operator evaluate false.
func LessThan(a, b Value) (result, defined bool) {
	if a.Kind == KindString && b.Kind == KindString {
		return a.Str < b.Str, true
	}
	an, bn := a.ToNumber(), b.ToNumber()
	if math.IsNaN(an) || math.IsNaN(bn) {
		return false, false
	}
	return an < bn, true
}
