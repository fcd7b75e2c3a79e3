package parser

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/defogjs/defog/internal/js/ast"
	"github.com/defogjs/defog/internal/js/token"
)

func TestParseVarDecl(t *testing.T) {
	t.Parallel()
	prog, err := Parse("var x = 1, y, z = 'a';")
	require.NoError(t, err)
	require.Len(t, prog.Body, 1)

	decl, ok := prog.Body[0].(*ast.VarDecl)
	require.True(t, ok)
	assert.Equal(t, token.VAR, decl.Kind)
	require.Len(t, decl.Decl, 3)
	assert.Equal(t, "x", decl.Decl[0].Name)
	assert.IsType(t, &ast.NumberLit{}, decl.Decl[0].Init)
	assert.Equal(t, "y", decl.Decl[1].Name)
	assert.Nil(t, decl.Decl[1].Init)
	assert.Equal(t, "z", decl.Decl[2].Name)
	assert.IsType(t, &ast.StringLit{}, decl.Decl[2].Init)
}

func TestParseDeclarationKinds(t *testing.T) {
	t.Parallel()
	for _, tt := range []struct {
		source string
		kind   token.Type
	}{
		{"var a = 1;", token.VAR},
		{"let a = 1;", token.LET},
		{"const a = 1;", token.CONST},
	} {
		prog, err := Parse(tt.source)
		require.NoError(t, err)
		decl := prog.Body[0].(*ast.VarDecl)
		assert.Equal(t, tt.kind, decl.Kind)
	}
}

func TestParseNumberLiterals(t *testing.T) {
	t.Parallel()
	tests := []struct {
		raw   string
		value float64
	}{
		{"0xFF", 255},
		{"0b1010", 10},
		{"0o17", 15},
		{"0755", 493},
		{"2.5", 2.5},
		{"1e3", 1000},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.raw, func(t *testing.T) {
			t.Parallel()
			prog, err := Parse(tt.raw + ";")
			require.NoError(t, err)
			lit, ok := prog.Body[0].(*ast.ExprStmt).X.(*ast.NumberLit)
			require.True(t, ok)
			assert.Equal(t, tt.raw, lit.Raw)
			assert.Equal(t, tt.value, lit.Value)
		})
	}
}

func TestParseStringLiteralKeepsRaw(t *testing.T) {
	t.Parallel()
	prog, err := Parse(`'\x48\x69';`)
	require.NoError(t, err)
	lit, ok := prog.Body[0].(*ast.ExprStmt).X.(*ast.StringLit)
	require.True(t, ok)
	assert.Equal(t, `'\x48\x69'`, lit.Raw)
	assert.Equal(t, "Hi", lit.Value)
}

func TestParsePrecedence(t *testing.T) {
	t.Parallel()
	prog, err := Parse("1 + 2 * 3;")
	require.NoError(t, err)
	add, ok := prog.Body[0].(*ast.ExprStmt).X.(*ast.BinaryExpr)
	require.True(t, ok)
	assert.Equal(t, token.PLUS, add.Op)
	assert.IsType(t, &ast.NumberLit{}, add.Left)
	mul, ok := add.Right.(*ast.BinaryExpr)
	require.True(t, ok)
	assert.Equal(t, token.STAR, mul.Op)
}

func TestParseLeftAssociativity(t *testing.T) {
	t.Parallel()
	prog, err := Parse("1 - 2 - 3;")
	require.NoError(t, err)
	outer := prog.Body[0].(*ast.ExprStmt).X.(*ast.BinaryExpr)
	assert.Equal(t, token.MINUS, outer.Op)
	inner, ok := outer.Left.(*ast.BinaryExpr)
	require.True(t, ok)
	assert.Equal(t, token.MINUS, inner.Op)
}

func TestParseExponentRightAssociativity(t *testing.T) {
	t.Parallel()
	prog, err := Parse("2 ** 3 ** 2;")
	require.NoError(t, err)
	outer := prog.Body[0].(*ast.ExprStmt).X.(*ast.BinaryExpr)
	assert.Equal(t, token.POW, outer.Op)
	assert.IsType(t, &ast.NumberLit{}, outer.Left)
	inner, ok := outer.Right.(*ast.BinaryExpr)
	require.True(t, ok)
	assert.Equal(t, token.POW, inner.Op)
}

func TestParseGroupingOverridesPrecedence(t *testing.T) {
	t.Parallel()
	prog, err := Parse("(1 + 2) * 3;")
	require.NoError(t, err)
	mul := prog.Body[0].(*ast.ExprStmt).X.(*ast.BinaryExpr)
	assert.Equal(t, token.STAR, mul.Op)
	paren, ok := mul.Left.(*ast.ParenExpr)
	require.True(t, ok)
	add, ok := paren.Inner.(*ast.BinaryExpr)
	require.True(t, ok)
	assert.Equal(t, token.PLUS, add.Op)
}

func TestParseUnaryChains(t *testing.T) {
	t.Parallel()
	prog, err := Parse("- -0x2607;")
	require.NoError(t, err)
	outer := prog.Body[0].(*ast.ExprStmt).X.(*ast.UnaryExpr)
	assert.Equal(t, token.MINUS, outer.Op)
	inner, ok := outer.Operand.(*ast.UnaryExpr)
	require.True(t, ok)
	assert.Equal(t, token.MINUS, inner.Op)
	assert.IsType(t, &ast.NumberLit{}, inner.Operand)
}

func TestParseConditional(t *testing.T) {
	t.Parallel()
	prog, err := Parse("a ? b : c ? d : e;")
	require.NoError(t, err)
	cond := prog.Body[0].(*ast.ExprStmt).X.(*ast.CondExpr)
	assert.IsType(t, &ast.Ident{}, cond.Test)
	assert.IsType(t, &ast.Ident{}, cond.Consequent)
	assert.IsType(t, &ast.CondExpr{}, cond.Alternate)
}

func TestParseSequenceFlattens(t *testing.T) {
	t.Parallel()
	prog, err := Parse("a, b, c;")
	require.NoError(t, err)
	seq := prog.Body[0].(*ast.ExprStmt).X.(*ast.SeqExpr)
	assert.Len(t, seq.Exprs, 3)
}

func TestParseDeclaratorInitStopsAtComma(t *testing.T) {
	t.Parallel()
	// the comma separates declarators, not a sequence
	prog, err := Parse("var a = 1, b = 2;")
	require.NoError(t, err)
	decl := prog.Body[0].(*ast.VarDecl)
	require.Len(t, decl.Decl, 2)
	assert.IsType(t, &ast.NumberLit{}, decl.Decl[0].Init)
	assert.IsType(t, &ast.NumberLit{}, decl.Decl[1].Init)
}

func TestParseCallAndMember(t *testing.T) {
	t.Parallel()
	prog, err := Parse("obj.fn(1, x)[0x2];")
	require.NoError(t, err)
	member := prog.Body[0].(*ast.ExprStmt).X.(*ast.MemberExpr)
	assert.True(t, member.Computed)
	call, ok := member.Object.(*ast.CallExpr)
	require.True(t, ok)
	assert.Len(t, call.Args, 2)
	callee, ok := call.Callee.(*ast.MemberExpr)
	require.True(t, ok)
	assert.False(t, callee.Computed)
}

func TestParseNewExpression(t *testing.T) {
	t.Parallel()
	prog, err := Parse("new Foo(1);")
	require.NoError(t, err)
	n := prog.Body[0].(*ast.ExprStmt).X.(*ast.NewExpr)
	assert.IsType(t, &ast.Ident{}, n.Callee)
	assert.Len(t, n.Args, 1)
}

func TestParseLogicalOperators(t *testing.T) {
	t.Parallel()
	for _, tt := range []struct {
		source string
		op     token.Type
	}{
		{"a && b;", token.LOGICALAND},
		{"a || b;", token.LOGICALOR},
		{"a ?? b;", token.NULLISH},
	} {
		prog, err := Parse(tt.source)
		require.NoError(t, err)
		logical := prog.Body[0].(*ast.ExprStmt).X.(*ast.LogicalExpr)
		assert.Equal(t, tt.op, logical.Op)
	}
}

func TestParseStatements(t *testing.T) {
	t.Parallel()
	prog, err := Parse(`
		if (a) { b = 1; } else c = 2;
		while (x) { f(); }
		for (var i = 0; i < 10; i = i + 1) { g(i); }
		for (;;) { h(); }
		function add(a, b) { return a + b; }
		return;
		;
	`)
	require.NoError(t, err)
	require.Len(t, prog.Body, 7)
	assert.IsType(t, &ast.IfStmt{}, prog.Body[0])
	assert.IsType(t, &ast.WhileStmt{}, prog.Body[1])
	assert.IsType(t, &ast.ForStmt{}, prog.Body[2])
	assert.IsType(t, &ast.ForStmt{}, prog.Body[3])
	assert.IsType(t, &ast.FuncDecl{}, prog.Body[4])
	assert.IsType(t, &ast.ReturnStmt{}, prog.Body[5])
	assert.IsType(t, &ast.EmptyStmt{}, prog.Body[6])

	forStmt := prog.Body[3].(*ast.ForStmt)
	assert.Nil(t, forStmt.Init)
	assert.Nil(t, forStmt.Test)
	assert.Nil(t, forStmt.Update)
}

func TestParseFunctionExpression(t *testing.T) {
	t.Parallel()
	prog, err := Parse("var f = function (a) { return a; };")
	require.NoError(t, err)
	decl := prog.Body[0].(*ast.VarDecl)
	fn, ok := decl.Decl[0].Init.(*ast.FuncLit)
	require.True(t, ok)
	assert.Empty(t, fn.Name)
	assert.Equal(t, []string{"a"}, fn.Params)
}

func TestParseCommentsIgnored(t *testing.T) {
	t.Parallel()
	prog, err := Parse("// line\nvar x = 1; /* block */ var y = 2;")
	require.NoError(t, err)
	assert.Len(t, prog.Body, 2)
}

func TestParseErrors(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name   string
		source string
	}{
		{"missing declarator name", "var = 1;"},
		{"unclosed paren", "(1 + 2;"},
		{"unclosed block", "{ var x = 1;"},
		{"anonymous function statement", "function () { return 1; }"},
		{"stray operator", "* 2;"},
		{"missing colon", "a ? b;"},
		{"unterminated string", "'abc;"},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			_, err := Parse(tt.source)
			assert.Error(t, err)
		})
	}
}
