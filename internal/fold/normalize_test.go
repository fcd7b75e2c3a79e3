package fold

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/defogjs/defog/internal/js/ast"
)

func TestNormalizeNumber(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name     string
		raw      string
		value    float64
		outcome  Outcome
		expected string
	}{
		{"hex", "0xFF", 255, Replaced, "255"},
		{"hex upper prefix", "0XFF", 255, Replaced, "255"},
		{"binary", "0b11111111", 255, Replaced, "255"},
		{"octal", "0o377", 255, Replaced, "255"},
		{"legacy octal", "0755", 493, Replaced, "493"},
		{"underscored hex", "0xF_F", 255, Replaced, "255"},
		{"decimal untouched", "255", 255, Unchanged, "255"},
		{"decimal float untouched", "2.5", 2.5, Unchanged, "2.5"},
		{"scientific untouched", "1e3", 1000, Unchanged, "1e3"},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			lit := &ast.NumberLit{Raw: tt.raw, Value: tt.value}
			assert.Equal(t, tt.outcome, NormalizeNumber(lit))
			assert.Equal(t, tt.expected, lit.Raw)
		})
	}
}

func TestNormalizeNumberIdempotent(t *testing.T) {
	t.Parallel()
	lit := &ast.NumberLit{Raw: "0xFF", Value: 255}
	assert.Equal(t, Replaced, NormalizeNumber(lit))
	assert.Equal(t, Unchanged, NormalizeNumber(lit))
	assert.Equal(t, "255", lit.Raw)
}

func TestNormalizeString(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name    string
		raw     string
		value   string
		outcome Outcome
	}{
		{"hex escapes", `'\x48\x69'`, "Hi", Replaced},
		{"unicode escape", `'\u0041'`, "A", Replaced},
		{"braced unicode escape", `'\u{48}'`, "H", Replaced},
		{"double quoted escapes", `"\x21"`, "!", Replaced},
		{"plain", `'plain'`, "plain", Unchanged},
		{"escaped backslash is not an encoding", `'a\\x'`, `a\x`, Unchanged},
		{"newline escape alone is kept", `'a\nb'`, "a\nb", Unchanged},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			lit := &ast.StringLit{Raw: tt.raw, Value: tt.value}
			assert.Equal(t, tt.outcome, NormalizeString(lit))
			if tt.outcome == Replaced {
				assert.Empty(t, lit.Raw)
			} else {
				assert.Equal(t, tt.raw, lit.Raw)
			}
		})
	}
}
