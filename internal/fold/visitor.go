package fold

import (
	"math"

	"github.com/defogjs/defog/internal/js/ast"
	"github.com/defogjs/defog/internal/js/printer"
	tt "github.com/defogjs/defog/internal/types"
)

// Outcome is the tri-state result of a rewrite handler. Skipped marks a
// node the handler looked at but declined (unsupported operator or
// value type); to the pass it counts the same as Unchanged, but tests
// can tell the two apart.
type Outcome int

const (
	Unchanged Outcome = iota
	Replaced
	Skipped
)

// Rule names, one per rewrite handler. The config's enable map switches
// handlers off by name.
const (
	RuleNumericLiteral = "numeric-literal"
	RuleStringLiteral  = "string-literal"
	RuleBinary         = "binary-expression"
	RuleUnary          = "unary-expression"
	RuleConditional    = "conditional-expression"
	RuleLogical        = "logical-expression"
	RuleMember         = "member-expression"
	RuleCallArgs       = "call-arguments"
	RuleSequence       = "sequence-expression"
)

// AllRules lists every rewrite rule the visitor knows.
var AllRules = []string{
	RuleNumericLiteral,
	RuleStringLiteral,
	RuleBinary,
	RuleUnary,
	RuleConditional,
	RuleLogical,
	RuleMember,
	RuleCallArgs,
	RuleSequence,
}

// Rewriter runs single rewrite passes over a tree. It is not safe for
// concurrent use; each pass owns its tree exclusively.
type Rewriter struct {
	disabled map[string]bool
	replaced int
	changes  []tt.Change
}

// NewRewriter builds a Rewriter with the named rules switched off.
func NewRewriter(disabledRules []string) *Rewriter {
	r := &Rewriter{}
	if len(disabledRules) > 0 {
		r.disabled = make(map[string]bool, len(disabledRules))
		for _, name := range disabledRules {
			r.disabled[name] = true
		}
	}
	return r
}

func (r *Rewriter) on(rule string) bool { return !r.disabled[rule] }

// Changes returns every replacement recorded so far, across passes.
func (r *Rewriter) Changes() []tt.Change { return r.changes }

// Reset clears accumulated changes before a fresh evaluation.
func (r *Rewriter) Reset() { r.changes = nil }

// Pass runs one full rewrite pass over the program and returns the
// number of replacements it performed. Literal normalization happens on
// node entry; compound-expression folding happens on node exit, after
// the children have been rewritten, so arithmetic over freshly
// normalized operands folds within the same pass.
func (r *Rewriter) Pass(prog *ast.Program) int {
	r.replaced = 0
	for _, stmt := range prog.Body {
		r.stmt(stmt)
	}
	return r.replaced
}

func (r *Rewriter) stmt(s ast.Stmt) {
	switch s := s.(type) {
	case *ast.VarDecl:
		for i := range s.Decl {
			if s.Decl[i].Init != nil {
				s.Decl[i].Init = r.expr(s.Decl[i].Init)
			}
		}
	case *ast.ExprStmt:
		s.X = r.expr(s.X)
	case *ast.BlockStmt:
		for _, inner := range s.Body {
			r.stmt(inner)
		}
	case *ast.IfStmt:
		s.Test = r.expr(s.Test)
		r.stmt(s.Consequent)
		if s.Alternate != nil {
			r.stmt(s.Alternate)
		}
	case *ast.WhileStmt:
		s.Test = r.expr(s.Test)
		r.stmt(s.Body)
	case *ast.ForStmt:
		if s.Init != nil {
			r.stmt(s.Init)
		}
		if s.Test != nil {
			s.Test = r.expr(s.Test)
		}
		if s.Update != nil {
			s.Update = r.expr(s.Update)
		}
		r.stmt(s.Body)
	case *ast.ReturnStmt:
		if s.Arg != nil {
			s.Arg = r.expr(s.Arg)
		}
	case *ast.FuncDecl:
		r.stmt(s.Fn.Body)
	}
	// any other statement kind passes through untouched
}

// expr rewrites an expression subtree bottom-up and returns the node
// that should stand in its place.
func (r *Rewriter) expr(e ast.Expr) ast.Expr {
	switch e := e.(type) {
	case *ast.NumberLit:
		if r.on(RuleNumericLiteral) {
			raw := e.Raw
			if NormalizeNumber(e) == Replaced {
				r.note(RuleNumericLiteral, raw, e.Raw)
				r.replaced++
			}
		}
		return e

	case *ast.StringLit:
		if r.on(RuleStringLiteral) {
			raw := e.Raw
			if NormalizeString(e) == Replaced {
				r.note(RuleStringLiteral, raw, ast.QuoteString(e.Value))
				r.replaced++
			}
		}
		return e

	case *ast.ParenExpr:
		e.Inner = r.expr(e.Inner)
		if isLiteral(e.Inner) {
			return e.Inner
		}
		return e

	case *ast.BinaryExpr:
		e.Left = r.expr(e.Left)
		e.Right = r.expr(e.Right)
		if !r.on(RuleBinary) {
			return e
		}
		folded, outcome := r.foldBinary(e)
		if outcome == Replaced {
			return folded
		}
		return e

	case *ast.UnaryExpr:
		e.Operand = r.expr(e.Operand)
		if !r.on(RuleUnary) {
			return e
		}
		folded, outcome := r.foldUnary(e)
		if outcome == Replaced {
			return folded
		}
		return e

	case *ast.LogicalExpr:
		e.Left = r.expr(e.Left)
		e.Right = r.expr(e.Right)
		if !r.on(RuleLogical) {
			return e
		}
		folded, outcome := r.foldLogical(e)
		if outcome == Replaced {
			return folded
		}
		return e

	case *ast.CondExpr:
		e.Test = r.expr(e.Test)
		e.Consequent = r.expr(e.Consequent)
		e.Alternate = r.expr(e.Alternate)
		if !r.on(RuleConditional) {
			return e
		}
		folded, outcome := r.foldConditional(e)
		if outcome == Replaced {
			return folded
		}
		return e

	case *ast.MemberExpr:
		e.Object = r.expr(e.Object)
		if e.Computed {
			e.Property = r.expr(e.Property)
			if r.on(RuleMember) {
				if lit := asNumberLit(e.Property); lit != nil {
					raw := lit.Raw
					if NormalizeNumber(lit) == Replaced {
						r.note(RuleMember, raw, lit.Raw)
						r.replaced++
					}
				}
			}
		}
		return e

	case *ast.CallExpr:
		e.Callee = r.expr(e.Callee)
		for i := range e.Args {
			e.Args[i] = r.expr(e.Args[i])
		}
		if r.on(RuleCallArgs) {
			// only literal arguments are touched; the call itself is
			// never evaluated
			for _, arg := range e.Args {
				if lit := asNumberLit(arg); lit != nil {
					raw := lit.Raw
					if NormalizeNumber(lit) == Replaced {
						r.note(RuleCallArgs, raw, lit.Raw)
						r.replaced++
					}
				}
			}
		}
		return e

	case *ast.NewExpr:
		e.Callee = r.expr(e.Callee)
		for i := range e.Args {
			e.Args[i] = r.expr(e.Args[i])
		}
		return e

	case *ast.SeqExpr:
		for i := range e.Exprs {
			e.Exprs[i] = r.expr(e.Exprs[i])
		}
		if !r.on(RuleSequence) {
			return e
		}
		folded, outcome := r.foldSequence(e)
		if outcome == Replaced {
			return folded
		}
		return e

	case *ast.AssignExpr:
		e.Value = r.expr(e.Value)
		return e

	case *ast.FuncLit:
		r.stmt(e.Body)
		return e
	}
	return e
}

// foldBinary applies the two-tier strategy: first ask the evaluator for
// the whole node, folding only finite numeric results; failing that,
// reduce directly when both operands are already numeric literals, in
// which case comparison results fold to booleans as well.
func (r *Rewriter) foldBinary(e *ast.BinaryExpr) (ast.Expr, Outcome) {
	if res := Eval(e); res.OK && res.Value.Kind == KindNumber && isFinite(res.Value.Num) {
		return r.replaceWithNumber(RuleBinary, e, res.Value.Num), Replaced
	}

	left := asNumberLit(e.Left)
	right := asNumberLit(e.Right)
	if left == nil || right == nil {
		return e, Unchanged
	}
	v, ok := ReduceBinary(e.Op, Number(left.Value), Number(right.Value))
	if !ok {
		return e, Skipped
	}
	switch v.Kind {
	case KindNumber:
		if !isFinite(v.Num) {
			// Infinity and NaN have no literal spelling that round-trips
			return e, Unchanged
		}
		return r.replaceWithNumber(RuleBinary, e, v.Num), Replaced
	case KindBool:
		return r.replaceWithBool(RuleBinary, e, v.Bool), Replaced
	}
	return e, Skipped
}

func (r *Rewriter) foldUnary(e *ast.UnaryExpr) (ast.Expr, Outcome) {
	if res := Eval(e); res.OK && res.Value.Kind == KindNumber && isFinite(res.Value.Num) {
		return r.replaceWithNumber(RuleUnary, e, res.Value.Num), Replaced
	}

	operand := asNumberLit(e.Operand)
	if operand == nil {
		return e, Unchanged
	}
	v, ok := ReduceUnary(e.Op, Number(operand.Value))
	if !ok {
		return e, Skipped
	}
	switch v.Kind {
	case KindNumber:
		if !isFinite(v.Num) {
			return e, Unchanged
		}
		return r.replaceWithNumber(RuleUnary, e, v.Num), Replaced
	case KindBool:
		return r.replaceWithBool(RuleUnary, e, v.Bool), Replaced
	}
	return e, Skipped
}

// foldConditional folds only the test; the selected branch replaces the
// whole node and the other branch is discarded, side effects included.
// That is safe precisely because the test itself resolved confidently.
func (r *Rewriter) foldConditional(e *ast.CondExpr) (ast.Expr, Outcome) {
	test := Eval(e.Test)
	if !test.OK {
		return e, Unchanged
	}
	chosen := e.Alternate
	if test.Value.Truthy() {
		chosen = e.Consequent
	}
	r.note(RuleConditional, printer.PrintExpr(e), printer.PrintExpr(chosen))
	r.replaced++
	return chosen, Replaced
}

// foldLogical replaces a confidently resolved chain with a boolean or
// numeric literal. Numeric results fold here regardless of finiteness,
// unlike the binary handler: a short-circuit chain selects an operand
// value rather than computing a new one.
func (r *Rewriter) foldLogical(e *ast.LogicalExpr) (ast.Expr, Outcome) {
	res := Eval(e)
	if !res.OK {
		return e, Unchanged
	}
	switch res.Value.Kind {
	case KindBool:
		return r.replaceWithBool(RuleLogical, e, res.Value.Bool), Replaced
	case KindNumber:
		return r.replaceWithNumber(RuleLogical, e, res.Value.Num), Replaced
	}
	return e, Skipped
}

// foldSequence folds (a, b, c) only when the last element is already a
// numeric or string literal; every element must then evaluate
// confidently for the whole sequence to collapse to that value.
func (r *Rewriter) foldSequence(e *ast.SeqExpr) (ast.Expr, Outcome) {
	if len(e.Exprs) == 0 {
		return e, Unchanged
	}
	switch e.Exprs[len(e.Exprs)-1].(type) {
	case *ast.NumberLit, *ast.StringLit:
	default:
		return e, Unchanged
	}
	res := Eval(e)
	if !res.OK {
		return e, Unchanged
	}
	switch res.Value.Kind {
	case KindNumber:
		return r.replaceWithNumber(RuleSequence, e, res.Value.Num), Replaced
	case KindString:
		before := printer.PrintExpr(e)
		lit := &ast.StringLit{Idx: e.Pos(), Value: res.Value.Str}
		r.note(RuleSequence, before, ast.QuoteString(res.Value.Str))
		r.replaced++
		return lit, Replaced
	}
	return e, Skipped
}

func (r *Rewriter) replaceWithNumber(rule string, old ast.Expr, v float64) ast.Expr {
	r.note(rule, printer.PrintExpr(old), ast.FormatNumber(v))
	r.replaced++
	return &ast.NumberLit{Idx: old.Pos(), Value: v}
}

func (r *Rewriter) replaceWithBool(rule string, old ast.Expr, v bool) ast.Expr {
	lit := &ast.BoolLit{Idx: old.Pos(), Value: v}
	r.note(rule, printer.PrintExpr(old), printer.PrintExpr(lit))
	r.replaced++
	return lit
}

func (r *Rewriter) note(rule, before, after string) {
	r.changes = append(r.changes, tt.Change{Rule: rule, Before: before, After: after})
}

// asNumberLit unwraps grouping and returns the numeric literal behind
// e, or nil.
func asNumberLit(e ast.Expr) *ast.NumberLit {
	for {
		switch v := e.(type) {
		case *ast.NumberLit:
			return v
		case *ast.ParenExpr:
			e = v.Inner
		default:
			return nil
		}
	}
}

func isLiteral(e ast.Expr) bool {
	switch e.(type) {
	case *ast.NumberLit, *ast.StringLit, *ast.BoolLit, *ast.NullLit, *ast.UndefinedLit:
		return true
	}
	return false
}

func isFinite(f float64) bool {
	return !math.IsNaN(f) && !math.IsInf(f, 0)
}
