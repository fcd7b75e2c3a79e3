package fold

import (
	"math"

	"github.com/defogjs/defog/internal/js/token"
)

// ReduceBinary computes op applied to two resolved constants using the
// source language's exact semantics. The second return is false when
// the operator is outside the supported pure set; the caller then
// leaves the node unchanged. The function knows nothing about tree
// structure.
func ReduceBinary(op token.Type, left, right Value) (Value, bool) {
	switch op {
	case token.PLUS:
		if left.Kind == KindString || right.Kind == KindString {
			return String(left.ToText() + right.ToText()), true
		}
		return Number(left.ToNumber() + right.ToNumber()), true
	case token.MINUS:
		return Number(left.ToNumber() - right.ToNumber()), true
	case token.STAR:
		return Number(left.ToNumber() * right.ToNumber()), true
	case token.SLASH:
		return Number(left.ToNumber() / right.ToNumber()), true
	case token.PERCENT:
		return Number(math.Mod(left.ToNumber(), right.ToNumber())), true
	case token.POW:
		return Number(math.Pow(left.ToNumber(), right.ToNumber())), true

	case token.AND:
		return Number(float64(left.ToInt32() & right.ToInt32())), true
	case token.OR:
		return Number(float64(left.ToInt32() | right.ToInt32())), true
	case token.XOR:
		return Number(float64(left.ToInt32() ^ right.ToInt32())), true
	case token.SHL:
		return Number(float64(left.ToInt32() << (right.ToUint32() & 31))), true
	case token.SHR:
		return Number(float64(left.ToInt32() >> (right.ToUint32() & 31))), true
	case token.USHR:
		return Number(float64(left.ToUint32() >> (right.ToUint32() & 31))), true

	case token.LT:
		r, ok := LessThan(left, right)
		return Boolean(r && ok), true
	case token.GT:
		r, ok := LessThan(right, left)
		return Boolean(r && ok), true
	case token.LE:
		r, ok := LessThan(right, left)
		return Boolean(ok && !r), true
	case token.GE:
		r, ok := LessThan(left, right)
		return Boolean(ok && !r), true

	case token.EQ:
		return Boolean(LooseEquals(left, right)), true
	case token.NEQ:
		return Boolean(!LooseEquals(left, right)), true
	case token.STRICTEQ:
		return Boolean(StrictEquals(left, right)), true
	case token.STRICTNEQ:
		return Boolean(!StrictEquals(left, right)), true
	}
	return Value{}, false
}

// ReduceUnary computes a prefix operator applied to a resolved
// constant. Operators with observable semantics beyond their operand
// value (delete, and typeof/void which the folder does not rewrite)
// are declined.
func ReduceUnary(op token.Type, operand Value) (Value, bool) {
	switch op {
	case token.MINUS:
		return Number(-operand.ToNumber()), true
	case token.PLUS:
		return Number(operand.ToNumber()), true
	case token.NOT:
		return Number(float64(^operand.ToInt32())), true
	case token.BANG:
		return Boolean(!operand.Truthy()), true
	}
	return Value{}, false
}
