// Package ast defines the syntax tree the folding engine operates on.
//
// The tree is a closed tagged union: every node kind the engine rewrites
// has its own struct, and anything else flows through visitors untouched
// via the default case of a type switch.
package ast

import "github.com/defogjs/defog/internal/js/token"

// Node is the base interface for all syntax tree nodes.
type Node interface {
	Pos() int
}

// Stmt is implemented by all statement nodes.
type Stmt interface {
	Node
	stmtNode()
}

// Expr is implemented by all expression nodes.
type Expr interface {
	Node
	exprNode()
}

// Program is the root of a parsed script.
type Program struct {
	Body []Stmt
}

func (p *Program) Pos() int {
	if len(p.Body) > 0 {
		return p.Body[0].Pos()
	}
	return 0
}

// ---- expressions ----

type (
	// NumberLit is a numeric literal. Raw preserves the original source
	// spelling (radix prefix and all); an empty Raw means the printer
	// derives the canonical decimal form from Value.
	NumberLit struct {
		Idx   int
		Raw   string
		Value float64
	}

	// StringLit is a string literal. Raw preserves the original quoted
	// source text including escape sequences; an empty Raw means the
	// printer re-quotes Value directly.
	StringLit struct {
		Idx   int
		Raw   string
		Value string
	}

	BoolLit struct {
		Idx   int
		Value bool
	}

	NullLit struct {
		Idx int
	}

	UndefinedLit struct {
		Idx int
	}

	Ident struct {
		Idx  int
		Name string
	}

	// BinaryExpr covers arithmetic, bitwise, and comparison operators.
	BinaryExpr struct {
		Op          token.Type
		Left, Right Expr
	}

	// UnaryExpr covers prefix operators (- + ~ ! typeof void delete).
	UnaryExpr struct {
		Idx     int
		Op      token.Type
		Operand Expr
	}

	// LogicalExpr covers the short-circuiting operators && || ??.
	LogicalExpr struct {
		Op          token.Type
		Left, Right Expr
	}

	// CondExpr is the ternary test ? consequent : alternate.
	CondExpr struct {
		Test, Consequent, Alternate Expr
	}

	// MemberExpr is property access; Computed distinguishes obj[prop]
	// from obj.prop.
	MemberExpr struct {
		Object   Expr
		Property Expr
		Computed bool
	}

	CallExpr struct {
		Callee Expr
		Args   []Expr
	}

	NewExpr struct {
		Idx    int
		Callee Expr
		Args   []Expr
	}

	// SeqExpr is the comma operator; its value is the last element.
	SeqExpr struct {
		Exprs []Expr
	}

	AssignExpr struct {
		Target Expr
		Value  Expr
	}

	// ParenExpr records explicit grouping from the source. The printer
	// re-derives minimal parenthesization, so these only survive parsing
	// as grouping markers.
	ParenExpr struct {
		Idx   int
		Inner Expr
	}

	FuncLit struct {
		Idx    int
		Name   string
		Params []string
		Body   *BlockStmt
	}
)

func (n *NumberLit) Pos() int    { return n.Idx }
func (n *StringLit) Pos() int    { return n.Idx }
func (n *BoolLit) Pos() int      { return n.Idx }
func (n *NullLit) Pos() int      { return n.Idx }
func (n *UndefinedLit) Pos() int { return n.Idx }
func (n *Ident) Pos() int        { return n.Idx }
func (n *BinaryExpr) Pos() int   { return n.Left.Pos() }
func (n *UnaryExpr) Pos() int    { return n.Idx }
func (n *LogicalExpr) Pos() int  { return n.Left.Pos() }
func (n *CondExpr) Pos() int     { return n.Test.Pos() }
func (n *MemberExpr) Pos() int   { return n.Object.Pos() }
func (n *CallExpr) Pos() int     { return n.Callee.Pos() }
func (n *NewExpr) Pos() int      { return n.Idx }
func (n *SeqExpr) Pos() int {
	if len(n.Exprs) > 0 {
		return n.Exprs[0].Pos()
	}
	return 0
}
func (n *AssignExpr) Pos() int { return n.Target.Pos() }
func (n *ParenExpr) Pos() int  { return n.Idx }
func (n *FuncLit) Pos() int    { return n.Idx }

func (*NumberLit) exprNode()    {}
func (*StringLit) exprNode()    {}
func (*BoolLit) exprNode()      {}
func (*NullLit) exprNode()      {}
func (*UndefinedLit) exprNode() {}
func (*Ident) exprNode()        {}
func (*BinaryExpr) exprNode()   {}
func (*UnaryExpr) exprNode()    {}
func (*LogicalExpr) exprNode()  {}
func (*CondExpr) exprNode()     {}
func (*MemberExpr) exprNode()   {}
func (*CallExpr) exprNode()     {}
func (*NewExpr) exprNode()      {}
func (*SeqExpr) exprNode()      {}
func (*AssignExpr) exprNode()   {}
func (*ParenExpr) exprNode()    {}
func (*FuncLit) exprNode()      {}

// ---- statements ----

type (
	// VarDecl declares one or more bindings with var, let, or const.
	VarDecl struct {
		Idx  int
		Kind token.Type // VAR, LET, or CONST
		Decl []Declarator
	}

	Declarator struct {
		Name string
		Init Expr // nil when uninitialized
	}

	ExprStmt struct {
		X Expr
	}

	BlockStmt struct {
		Idx  int
		Body []Stmt
	}

	IfStmt struct {
		Idx        int
		Test       Expr
		Consequent Stmt
		Alternate  Stmt // nil when no else
	}

	WhileStmt struct {
		Idx  int
		Test Expr
		Body Stmt
	}

	ForStmt struct {
		Idx    int
		Init   Stmt // *VarDecl, *ExprStmt, or nil
		Test   Expr // nil when omitted
		Update Expr // nil when omitted
		Body   Stmt
	}

	ReturnStmt struct {
		Idx int
		Arg Expr // nil for bare return
	}

	FuncDecl struct {
		Fn *FuncLit
	}

	EmptyStmt struct {
		Idx int
	}
)

func (s *VarDecl) Pos() int    { return s.Idx }
func (s *ExprStmt) Pos() int   { return s.X.Pos() }
func (s *BlockStmt) Pos() int  { return s.Idx }
func (s *IfStmt) Pos() int     { return s.Idx }
func (s *WhileStmt) Pos() int  { return s.Idx }
func (s *ForStmt) Pos() int    { return s.Idx }
func (s *ReturnStmt) Pos() int { return s.Idx }
func (s *FuncDecl) Pos() int   { return s.Fn.Idx }
func (s *EmptyStmt) Pos() int  { return s.Idx }

func (*VarDecl) stmtNode()    {}
func (*ExprStmt) stmtNode()   {}
func (*BlockStmt) stmtNode()  {}
func (*IfStmt) stmtNode()     {}
func (*WhileStmt) stmtNode()  {}
func (*ForStmt) stmtNode()    {}
func (*ReturnStmt) stmtNode() {}
func (*FuncDecl) stmtNode()   {}
func (*EmptyStmt) stmtNode()  {}
