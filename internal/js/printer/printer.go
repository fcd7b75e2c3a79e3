// Package printer serializes a syntax tree back to JavaScript source.
// Grouping is re-derived from operator precedence, so folded trees print
// with minimal parenthesization. No formatting guarantees are made
// beyond producing source that parses back to the same tree.
package printer

import (
	"strings"

	"github.com/defogjs/defog/internal/js/ast"
	"github.com/defogjs/defog/internal/js/token"
)

const indentUnit = "  "

// atoms bind tighter than any operator
const atomPrec = token.POSTFIX + 1

// Print renders a whole program.
func Print(prog *ast.Program) string {
	var p printer
	for _, stmt := range prog.Body {
		p.stmt(stmt)
		p.b.WriteByte('\n')
	}
	return p.b.String()
}

// PrintExpr renders a single expression, mainly for diagnostics and
// change reports.
func PrintExpr(e ast.Expr) string {
	var p printer
	p.expr(e, token.LOWEST)
	return p.b.String()
}

type printer struct {
	b      strings.Builder
	indent int
}

func (p *printer) pad() {
	for i := 0; i < p.indent; i++ {
		p.b.WriteString(indentUnit)
	}
}

func (p *printer) stmt(s ast.Stmt) {
	p.pad()
	p.stmtInline(s)
}

// stmtInline writes a statement without leading indentation, used where
// a statement continues an already-started line (else branches, loop
// bodies on the same line).
func (p *printer) stmtInline(s ast.Stmt) {
	switch s := s.(type) {
	case *ast.VarDecl:
		p.b.WriteString(s.Kind.String())
		p.b.WriteByte(' ')
		for i, d := range s.Decl {
			if i > 0 {
				p.b.WriteString(", ")
			}
			p.b.WriteString(d.Name)
			if d.Init != nil {
				p.b.WriteString(" = ")
				p.expr(d.Init, token.SEQUENCE+1)
			}
		}
		p.b.WriteByte(';')

	case *ast.ExprStmt:
		if startsWithFunction(s.X) {
			p.b.WriteByte('(')
			p.expr(s.X, token.LOWEST)
			p.b.WriteByte(')')
		} else {
			p.expr(s.X, token.LOWEST)
		}
		p.b.WriteByte(';')

	case *ast.BlockStmt:
		p.block(s)

	case *ast.IfStmt:
		p.b.WriteString("if (")
		p.expr(s.Test, token.LOWEST)
		p.b.WriteString(") ")
		p.nestedBody(s.Consequent)
		if s.Alternate != nil {
			p.b.WriteString(" else ")
			p.nestedBody(s.Alternate)
		}

	case *ast.WhileStmt:
		p.b.WriteString("while (")
		p.expr(s.Test, token.LOWEST)
		p.b.WriteString(") ")
		p.nestedBody(s.Body)

	case *ast.ForStmt:
		p.b.WriteString("for (")
		switch init := s.Init.(type) {
		case *ast.ExprStmt:
			p.expr(init.X, token.LOWEST)
			p.b.WriteByte(';')
		case *ast.VarDecl:
			p.stmtInline(init) // writes its own semicolon
		default:
			p.b.WriteByte(';')
		}
		if s.Test != nil {
			p.b.WriteByte(' ')
			p.expr(s.Test, token.LOWEST)
		}
		p.b.WriteByte(';')
		if s.Update != nil {
			p.b.WriteByte(' ')
			p.expr(s.Update, token.LOWEST)
		}
		p.b.WriteString(") ")
		p.nestedBody(s.Body)

	case *ast.ReturnStmt:
		p.b.WriteString("return")
		if s.Arg != nil {
			p.b.WriteByte(' ')
			p.expr(s.Arg, token.LOWEST)
		}
		p.b.WriteByte(';')

	case *ast.FuncDecl:
		p.funcLit(s.Fn)

	case *ast.EmptyStmt:
		p.b.WriteByte(';')
	}
}

// nestedBody prints a statement used as a control-flow body: blocks
// share the header line, other statements follow inline.
func (p *printer) nestedBody(s ast.Stmt) {
	if block, ok := s.(*ast.BlockStmt); ok {
		p.block(block)
		return
	}
	p.stmtInline(s)
}

func (p *printer) block(s *ast.BlockStmt) {
	p.b.WriteString("{\n")
	p.indent++
	for _, stmt := range s.Body {
		p.stmt(stmt)
		p.b.WriteByte('\n')
	}
	p.indent--
	p.pad()
	p.b.WriteByte('}')
}

func (p *printer) funcLit(fn *ast.FuncLit) {
	p.b.WriteString("function ")
	if fn.Name != "" {
		p.b.WriteString(fn.Name)
	}
	p.b.WriteByte('(')
	for i, param := range fn.Params {
		if i > 0 {
			p.b.WriteString(", ")
		}
		p.b.WriteString(param)
	}
	p.b.WriteString(") ")
	p.block(fn.Body)
}

// expr writes e, parenthesizing when it binds looser than the context
// requires.
func (p *printer) expr(e ast.Expr, minPrec int) {
	prec := exprPrec(e)
	if prec < minPrec {
		p.b.WriteByte('(')
		p.exprBare(e)
		p.b.WriteByte(')')
		return
	}
	p.exprBare(e)
}

func (p *printer) exprBare(e ast.Expr) {
	switch e := e.(type) {
	case *ast.NumberLit:
		if e.Raw != "" {
			p.b.WriteString(e.Raw)
		} else {
			p.b.WriteString(ast.FormatNumber(e.Value))
		}

	case *ast.StringLit:
		if e.Raw != "" {
			p.b.WriteString(e.Raw)
		} else {
			p.b.WriteString(ast.QuoteString(e.Value))
		}

	case *ast.BoolLit:
		if e.Value {
			p.b.WriteString("true")
		} else {
			p.b.WriteString("false")
		}

	case *ast.NullLit:
		p.b.WriteString("null")

	case *ast.UndefinedLit:
		p.b.WriteString("undefined")

	case *ast.Ident:
		p.b.WriteString(e.Name)

	case *ast.ParenExpr:
		// explicit grouping from the source; precedence re-derives any
		// parens that still matter
		p.exprBare(e.Inner)

	case *ast.BinaryExpr:
		prec := token.Precedence(e.Op)
		if e.Op == token.POW {
			p.expr(e.Left, prec+1)
		} else {
			p.expr(e.Left, prec)
		}
		p.b.WriteByte(' ')
		p.b.WriteString(e.Op.String())
		p.b.WriteByte(' ')
		if e.Op == token.POW {
			p.expr(e.Right, prec)
		} else {
			p.expr(e.Right, prec+1)
		}

	case *ast.LogicalExpr:
		prec := token.Precedence(e.Op)
		p.expr(e.Left, prec)
		p.b.WriteByte(' ')
		p.b.WriteString(e.Op.String())
		p.b.WriteByte(' ')
		p.expr(e.Right, prec+1)

	case *ast.UnaryExpr:
		p.b.WriteString(e.Op.String())
		if wordOperator(e.Op) {
			p.b.WriteByte(' ')
		} else if sameSignPrefix(e.Op, e.Operand) {
			// avoid - -1 collapsing into the decrement operator
			p.b.WriteByte(' ')
		}
		p.expr(e.Operand, token.UNARY)

	case *ast.CondExpr:
		p.expr(e.Test, token.CONDITIONAL+1)
		p.b.WriteString(" ? ")
		p.expr(e.Consequent, token.SEQUENCE+1)
		p.b.WriteString(" : ")
		p.expr(e.Alternate, token.SEQUENCE+1)

	case *ast.SeqExpr:
		for i, x := range e.Exprs {
			if i > 0 {
				p.b.WriteString(", ")
			}
			p.expr(x, token.SEQUENCE+1)
		}

	case *ast.AssignExpr:
		p.expr(e.Target, token.POSTFIX)
		p.b.WriteString(" = ")
		p.expr(e.Value, token.ASSIGNMENT)

	case *ast.MemberExpr:
		if numberObject(e.Object) {
			p.b.WriteByte('(')
			p.exprBare(e.Object)
			p.b.WriteByte(')')
		} else {
			p.expr(e.Object, token.POSTFIX)
		}
		if e.Computed {
			p.b.WriteByte('[')
			p.expr(e.Property, token.LOWEST)
			p.b.WriteByte(']')
		} else {
			p.b.WriteByte('.')
			p.exprBare(e.Property)
		}

	case *ast.CallExpr:
		p.expr(e.Callee, token.POSTFIX)
		p.args(e.Args)

	case *ast.NewExpr:
		p.b.WriteString("new ")
		p.expr(e.Callee, token.POSTFIX)
		p.args(e.Args)

	case *ast.FuncLit:
		p.funcLit(e)
	}
}

func (p *printer) args(args []ast.Expr) {
	p.b.WriteByte('(')
	for i, arg := range args {
		if i > 0 {
			p.b.WriteString(", ")
		}
		p.expr(arg, token.SEQUENCE+1)
	}
	p.b.WriteByte(')')
}

func exprPrec(e ast.Expr) int {
	switch e := e.(type) {
	case *ast.SeqExpr:
		return token.SEQUENCE
	case *ast.AssignExpr:
		return token.ASSIGNMENT
	case *ast.CondExpr:
		return token.CONDITIONAL
	case *ast.LogicalExpr:
		return token.Precedence(e.Op)
	case *ast.BinaryExpr:
		return token.Precedence(e.Op)
	case *ast.UnaryExpr:
		return token.UNARY
	case *ast.CallExpr, *ast.MemberExpr, *ast.NewExpr:
		return token.POSTFIX
	case *ast.ParenExpr:
		return exprPrec(e.Inner)
	case *ast.NumberLit:
		if e.Value < 0 && e.Raw == "" {
			// a folded negative prints with a leading minus sign
			return token.UNARY
		}
		return atomPrec
	default:
		return atomPrec
	}
}

// startsWithFunction reports whether the leftmost emitted token of e
// would be the function keyword, which the statement grammar would read
// as a declaration.
func startsWithFunction(e ast.Expr) bool {
	for {
		switch v := e.(type) {
		case *ast.FuncLit:
			return true
		case *ast.ParenExpr:
			e = v.Inner
		case *ast.CallExpr:
			e = v.Callee
		case *ast.MemberExpr:
			e = v.Object
		case *ast.BinaryExpr:
			e = v.Left
		case *ast.LogicalExpr:
			e = v.Left
		case *ast.CondExpr:
			e = v.Test
		case *ast.AssignExpr:
			e = v.Target
		case *ast.SeqExpr:
			if len(v.Exprs) == 0 {
				return false
			}
			e = v.Exprs[0]
		default:
			return false
		}
	}
}

// numberObject reports a numeric literal, possibly grouped, in object
// position, where an unparenthesized dot would read as a decimal point.
func numberObject(e ast.Expr) bool {
	for {
		switch v := e.(type) {
		case *ast.NumberLit:
			return true
		case *ast.ParenExpr:
			e = v.Inner
		default:
			return false
		}
	}
}

func wordOperator(t token.Type) bool {
	switch t {
	case token.TYPEOF, token.VOID, token.DELETE:
		return true
	}
	return false
}

// sameSignPrefix guards `- -x` and `+ +x` spellings that would otherwise
// merge into -- or ++.
func sameSignPrefix(op token.Type, operand ast.Expr) bool {
	if op != token.MINUS && op != token.PLUS {
		return false
	}
	switch inner := operand.(type) {
	case *ast.UnaryExpr:
		return inner.Op == op
	case *ast.NumberLit:
		return op == token.MINUS && (inner.Value < 0 || strings.HasPrefix(inner.Raw, "-"))
	}
	return false
}
