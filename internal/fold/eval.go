package fold

import (
	"github.com/defogjs/defog/internal/js/ast"
	"github.com/defogjs/defog/internal/js/token"
)

// EvalResult is the outcome of attempting to resolve a subtree to a
// single constant. Value is meaningful only when OK is true.
type EvalResult struct {
	OK    bool
	Value Value
}

func confident(v Value) EvalResult { return EvalResult{OK: true, Value: v} }

var notConfident = EvalResult{}

// Eval attempts to resolve an expression subtree to one constant value
// without executing anything impure. It is a small interpreter over an
// allow-list of node kinds: literals, grouping, and the supported pure
// operators. Any node outside the allow-list makes the whole subtree
// resolve as not confident; no partial values are ever produced.
func Eval(e ast.Expr) EvalResult {
	switch e := e.(type) {
	case *ast.NumberLit:
		return confident(Number(e.Value))
	case *ast.StringLit:
		return confident(String(e.Value))
	case *ast.BoolLit:
		return confident(Boolean(e.Value))
	case *ast.NullLit:
		return confident(Null())
	case *ast.UndefinedLit:
		return confident(Undefined())

	case *ast.ParenExpr:
		return Eval(e.Inner)

	case *ast.UnaryExpr:
		operand := Eval(e.Operand)
		if !operand.OK {
			return notConfident
		}
		v, ok := ReduceUnary(e.Op, operand.Value)
		if !ok {
			return notConfident
		}
		return confident(v)

	case *ast.BinaryExpr:
		left := Eval(e.Left)
		if !left.OK {
			return notConfident
		}
		right := Eval(e.Right)
		if !right.OK {
			return notConfident
		}
		v, ok := ReduceBinary(e.Op, left.Value, right.Value)
		if !ok {
			return notConfident
		}
		return confident(v)

	case *ast.LogicalExpr:
		return evalLogical(e)

	case *ast.CondExpr:
		test := Eval(e.Test)
		if !test.OK {
			return notConfident
		}
		// only the selected branch is required
		if test.Value.Truthy() {
			return Eval(e.Consequent)
		}
		return Eval(e.Alternate)

	case *ast.SeqExpr:
		// every element runs, so every element must be pure and
		// resolvable; the value is the last one
		var last EvalResult
		for _, x := range e.Exprs {
			last = Eval(x)
			if !last.OK {
				return notConfident
			}
		}
		return last
	}

	// identifiers, calls, member access, assignment, functions: anything
	// that could reference runtime state or have side effects
	return notConfident
}

func evalLogical(e *ast.LogicalExpr) EvalResult {
	left := Eval(e.Left)
	if !left.OK {
		return notConfident
	}
	// short-circuit: when the left operand decides, the right operand
	// never runs and is not required to be resolvable
	switch e.Op {
	case token.LOGICALAND:
		if !left.Value.Truthy() {
			return left
		}
	case token.LOGICALOR:
		if left.Value.Truthy() {
			return left
		}
	case token.NULLISH:
		if !left.Value.IsNullish() {
			return left
		}
	default:
		return notConfident
	}
	return Eval(e.Right)
}
