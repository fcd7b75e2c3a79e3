package fold

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTruthy(t *testing.T) {
	t.Parallel()
	truthy := []Value{Number(1), Number(-1), String("0"), Boolean(true), Number(math.Inf(1))}
	for _, v := range truthy {
		assert.True(t, v.Truthy(), "%v", v)
	}
	falsy := []Value{Number(0), Number(math.NaN()), String(""), Boolean(false), Null(), Undefined()}
	for _, v := range falsy {
		assert.False(t, v.Truthy(), "%v", v)
	}
}

func TestToNumber(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name     string
		value    Value
		expected float64
	}{
		{"number", Number(2.5), 2.5},
		{"true", Boolean(true), 1},
		{"false", Boolean(false), 0},
		{"null", Null(), 0},
		{"empty string", String(""), 0},
		{"whitespace string", String("  "), 0},
		{"decimal string", String("42"), 42},
		{"float string", String(" 2.5 "), 2.5},
		{"hex string", String("0x10"), 16},
		{"binary string", String("0b11"), 3},
		{"infinity string", String("Infinity"), math.Inf(1)},
		{"negative infinity string", String("-Infinity"), math.Inf(-1)},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.expected, tt.value.ToNumber())
		})
	}

	assert.True(t, math.IsNaN(String("abc").ToNumber()))
	assert.True(t, math.IsNaN(Undefined().ToNumber()))
}

func TestToNumberRejectsNonLanguageSpellings(t *testing.T) {
	t.Parallel()
	// strings the Go parsers would take but the language maps to NaN
	rejected := []string{"inf", "Inf", "INFINITY", "infinity", "NaN", "nan", "1_0", "1_000", "0x1_0", "0b1_1", "1e1_0", "0x1p4"}
	for _, s := range rejected {
		assert.True(t, math.IsNaN(String(s).ToNumber()), "%q", s)
	}
	assert.Equal(t, float64(1), String("+1").ToNumber())
	assert.Equal(t, -2.5, String("-2.5").ToNumber())
	assert.Equal(t, float64(1000), String("1e3").ToNumber())
}

func TestToInt32AndUint32(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name   string
		value  float64
		int32v int32
		uint32 uint32
	}{
		{"zero", 0, 0, 0},
		{"small", 42, 42, 42},
		{"negative", -1, -1, 4294967295},
		{"truncates fraction", 3.9, 3, 3},
		{"negative truncates toward zero", -3.9, -3, 4294967293},
		{"wraps past 2^31", 2147483648, -2147483648, 2147483648},
		{"wraps past 2^32", 4294967296, 0, 0},
		{"wraps past 2^32 plus one", 4294967297, 1, 1},
		{"large negative wraps", -4294967295, 1, 1},
		{"nan is zero", math.NaN(), 0, 0},
		{"infinity is zero", math.Inf(1), 0, 0},
		{"huge value wraps", 1e21, -559939584, 3735027712},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			v := Number(tt.value)
			assert.Equal(t, tt.int32v, v.ToInt32())
			assert.Equal(t, tt.uint32, v.ToUint32())
		})
	}
}

func TestToText(t *testing.T) {
	t.Parallel()
	tests := []struct {
		value    Value
		expected string
	}{
		{Number(0), "0"},
		{Number(-9735), "-9735"},
		{Number(2.5), "2.5"},
		{Number(math.NaN()), "NaN"},
		{Number(math.Inf(1)), "Infinity"},
		{String("hi"), "hi"},
		{Boolean(true), "true"},
		{Null(), "null"},
		{Undefined(), "undefined"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.expected, tt.value.ToText())
	}
}

func TestLooseEquals(t *testing.T) {
	t.Parallel()
	assert.True(t, LooseEquals(Number(1), Boolean(true)))
	assert.True(t, LooseEquals(String("1"), Number(1)))
	assert.True(t, LooseEquals(Null(), Undefined()))
	assert.False(t, LooseEquals(Null(), Number(0)))
	assert.False(t, LooseEquals(Undefined(), Number(0)))
	assert.False(t, LooseEquals(Number(math.NaN()), Number(math.NaN())))
	assert.True(t, LooseEquals(String("a"), String("a")))
}
