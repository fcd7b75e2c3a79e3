package fold

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/defogjs/defog/internal/js/ast"
	"github.com/defogjs/defog/internal/js/parser"
	"github.com/defogjs/defog/internal/js/printer"
)

func parseProgram(t *testing.T, source string) *ast.Program {
	t.Helper()
	prog, err := parser.Parse(source)
	require.NoError(t, err)
	return prog
}

func TestPassCountsEveryReplacement(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name     string
		source   string
		replaced int
		output   string
	}{
		{"nothing to do", "var x = 255;", 0, "var x = 255;\n"},
		{"single literal", "var x = 0xFF;", 1, "var x = 255;\n"},
		{"two literals then the fold", "var v = 0xFFFFFFFF & 0x1;", 3, "var v = 1;\n"},
		{"string literal", `var s = '\x48\x69';`, 1, "var s = 'Hi';\n"},
		{"member index", "a[0x10];", 1, "a[16];\n"},
		{"call arguments", "f(0x10, 0b1);", 2, "f(16, 1);\n"},
		{"unary fold", "var n = -(0x5);", 2, "var n = -5;\n"},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			prog := parseProgram(t, tt.source)
			r := NewRewriter(nil)
			assert.Equal(t, tt.replaced, r.Pass(prog))
			assert.Equal(t, tt.output, printer.Print(prog))
			assert.Equal(t, 0, r.Pass(prog), "second pass must find nothing")
		})
	}
}

func TestPassFoldsWithinOnePass(t *testing.T) {
	t.Parallel()
	// children rewrite before parents, so a whole constant subtree
	// collapses in a single pass
	prog := parseProgram(t, "var r = 0x1 * -0x2607 + 0x4 * 0x6c3 + -0x1 * -0xafb;")
	r := NewRewriter(nil)
	require.Greater(t, r.Pass(prog), 0)
	assert.Equal(t, "var r = 0;\n", printer.Print(prog))
	assert.Equal(t, 0, r.Pass(prog))
}

func TestDisabledRules(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name     string
		disabled []string
		source   string
		output   string
	}{
		{
			"numeric literal off",
			[]string{RuleNumericLiteral},
			"var x = 0xFF;",
			"var x = 0xFF;\n",
		},
		{
			"binary off leaves arithmetic",
			[]string{RuleBinary},
			"var x = 1 + 2;",
			"var x = 1 + 2;\n",
		},
		{
			"binary off still normalizes operands",
			[]string{RuleBinary},
			"var x = 0x2 + 0x3;",
			"var x = 2 + 3;\n",
		},
		{
			"conditional off",
			[]string{RuleConditional},
			"var y = true ? 1 : 2;",
			"var y = true ? 1 : 2;\n",
		},
		{
			"sequence off",
			[]string{RuleSequence},
			"var p = (1, 2, 3);",
			"var p = (1, 2, 3);\n",
		},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			prog := parseProgram(t, tt.source)
			r := NewRewriter(tt.disabled)
			r.Pass(prog)
			assert.Equal(t, tt.output, printer.Print(prog))
		})
	}
}

func TestFoldBinaryOutcomes(t *testing.T) {
	t.Parallel()
	r := NewRewriter(nil)

	e := parseExpr(t, "1 + 2").(*ast.BinaryExpr)
	folded, outcome := r.foldBinary(e)
	assert.Equal(t, Replaced, outcome)
	lit, ok := folded.(*ast.NumberLit)
	require.True(t, ok)
	assert.Equal(t, float64(3), lit.Value)

	e = parseExpr(t, "1 < 2").(*ast.BinaryExpr)
	folded, outcome = r.foldBinary(e)
	assert.Equal(t, Replaced, outcome)
	boolLit, ok := folded.(*ast.BoolLit)
	require.True(t, ok)
	assert.True(t, boolLit.Value)

	e = parseExpr(t, "1 / 0").(*ast.BinaryExpr)
	_, outcome = r.foldBinary(e)
	assert.Equal(t, Unchanged, outcome)

	e = parseExpr(t, "1 + x").(*ast.BinaryExpr)
	_, outcome = r.foldBinary(e)
	assert.Equal(t, Unchanged, outcome)
}

func TestFoldUnaryOutcomes(t *testing.T) {
	t.Parallel()
	r := NewRewriter(nil)

	e := parseExpr(t, "-(5)").(*ast.UnaryExpr)
	folded, outcome := r.foldUnary(e)
	assert.Equal(t, Replaced, outcome)
	lit, ok := folded.(*ast.NumberLit)
	require.True(t, ok)
	assert.Equal(t, float64(-5), lit.Value)

	e = parseExpr(t, "!0").(*ast.UnaryExpr)
	folded, outcome = r.foldUnary(e)
	assert.Equal(t, Replaced, outcome)
	boolLit, ok := folded.(*ast.BoolLit)
	require.True(t, ok)
	assert.True(t, boolLit.Value)

	e = parseExpr(t, "typeof 1").(*ast.UnaryExpr)
	_, outcome = r.foldUnary(e)
	assert.Equal(t, Skipped, outcome)

	e = parseExpr(t, "-x").(*ast.UnaryExpr)
	_, outcome = r.foldUnary(e)
	assert.Equal(t, Unchanged, outcome)
}

func TestFoldLogicalOutcomes(t *testing.T) {
	t.Parallel()
	r := NewRewriter(nil)

	e := parseExpr(t, "1 && 2").(*ast.LogicalExpr)
	folded, outcome := r.foldLogical(e)
	assert.Equal(t, Replaced, outcome)
	lit, ok := folded.(*ast.NumberLit)
	require.True(t, ok)
	assert.Equal(t, float64(2), lit.Value)

	// string results are outside the replacement set
	e = parseExpr(t, "'a' || 'b'").(*ast.LogicalExpr)
	_, outcome = r.foldLogical(e)
	assert.Equal(t, Skipped, outcome)

	e = parseExpr(t, "x && 1").(*ast.LogicalExpr)
	_, outcome = r.foldLogical(e)
	assert.Equal(t, Unchanged, outcome)
}

func TestFoldConditionalDiscardsBranch(t *testing.T) {
	t.Parallel()
	r := NewRewriter(nil)
	e := parseExpr(t, "true ? 1 : sideEffect()").(*ast.CondExpr)
	folded, outcome := r.foldConditional(e)
	assert.Equal(t, Replaced, outcome)
	assert.Equal(t, "1", printer.PrintExpr(folded))

	e = parseExpr(t, "x ? 1 : 2").(*ast.CondExpr)
	_, outcome = r.foldConditional(e)
	assert.Equal(t, Unchanged, outcome)
}

func TestFoldSequenceRequiresLiteralTail(t *testing.T) {
	t.Parallel()
	r := NewRewriter(nil)

	e := parseExpr(t, "(1, 2, 3)").(*ast.ParenExpr).Inner.(*ast.SeqExpr)
	folded, outcome := r.foldSequence(e)
	assert.Equal(t, Replaced, outcome)
	assert.Equal(t, "3", printer.PrintExpr(folded))

	e = parseExpr(t, "(1, 'done')").(*ast.ParenExpr).Inner.(*ast.SeqExpr)
	folded, outcome = r.foldSequence(e)
	assert.Equal(t, Replaced, outcome)
	assert.Equal(t, "'done'", printer.PrintExpr(folded))

	// non-literal tail declines before evaluating anything
	e = parseExpr(t, "(1, x)").(*ast.ParenExpr).Inner.(*ast.SeqExpr)
	_, outcome = r.foldSequence(e)
	assert.Equal(t, Unchanged, outcome)

	// impure element blocks the collapse
	e = parseExpr(t, "(f(), 2)").(*ast.ParenExpr).Inner.(*ast.SeqExpr)
	_, outcome = r.foldSequence(e)
	assert.Equal(t, Unchanged, outcome)
}

func TestChangesRecorded(t *testing.T) {
	t.Parallel()
	prog := parseProgram(t, "var x = 0xFF; var y = 1 + 2;")
	r := NewRewriter(nil)
	r.Pass(prog)
	changes := r.Changes()
	require.Len(t, changes, 2)
	assert.Equal(t, RuleNumericLiteral, changes[0].Rule)
	assert.Equal(t, "0xFF", changes[0].Before)
	assert.Equal(t, "255", changes[0].After)
	assert.Equal(t, RuleBinary, changes[1].Rule)
	assert.Equal(t, "1 + 2", changes[1].Before)
	assert.Equal(t, "3", changes[1].After)

	r.Reset()
	assert.Empty(t, r.Changes())
}
