// Package parser turns JavaScript source text into the syntax tree the
// folding engine rewrites. It handles flat script syntax: declarations,
// expression statements, control flow, and the full expression grammar
// down to the operator set the folder understands.
package parser

import (
	"fmt"

	"github.com/defogjs/defog/internal/js/ast"
	"github.com/defogjs/defog/internal/js/token"
)

type Parser struct {
	tokens []token.Token
	pos    int
}

// Parse lexes and parses a whole script.
func Parse(source string) (*ast.Program, error) {
	p := &Parser{tokens: NewLexer(source).Tokenize()}
	return p.parseProgram()
}

func (p *Parser) cur() token.Token { return p.tokens[p.pos] }

func (p *Parser) next() token.Token {
	t := p.tokens[p.pos]
	if p.pos < len(p.tokens)-1 {
		p.pos++
	}
	return t
}

func (p *Parser) expect(t token.Type) (token.Token, error) {
	if p.cur().Type != t {
		return token.Token{}, p.errorf("expected %s, found %s", t, p.cur().Type)
	}
	return p.next(), nil
}

// consume advances past the current token when it matches t.
func (p *Parser) consume(t token.Type) bool {
	if p.cur().Type == t {
		p.next()
		return true
	}
	return false
}

func (p *Parser) errorf(format string, args ...any) error {
	return fmt.Errorf("parse error at offset %d: %s", p.cur().Pos, fmt.Sprintf(format, args...))
}

func (p *Parser) parseProgram() (*ast.Program, error) {
	prog := &ast.Program{}
	for p.cur().Type != token.EOF {
		stmt, err := p.parseStatement()
		if err != nil {
			return nil, err
		}
		prog.Body = append(prog.Body, stmt)
	}
	return prog, nil
}

func (p *Parser) parseStatement() (ast.Stmt, error) {
	switch p.cur().Type {
	case token.VAR, token.LET, token.CONST:
		return p.parseVarDecl(true)
	case token.LBRACE:
		return p.parseBlock()
	case token.IF:
		return p.parseIf()
	case token.WHILE:
		return p.parseWhile()
	case token.FOR:
		return p.parseFor()
	case token.RETURN:
		return p.parseReturn()
	case token.FUNCTION:
		fn, err := p.parseFunction()
		if err != nil {
			return nil, err
		}
		if fn.Name == "" {
			return nil, p.errorf("function declaration requires a name")
		}
		return &ast.FuncDecl{Fn: fn}, nil
	case token.SEMICOLON:
		return &ast.EmptyStmt{Idx: p.next().Pos}, nil
	default:
		expr, err := p.parseExpression(token.LOWEST)
		if err != nil {
			return nil, err
		}
		p.consume(token.SEMICOLON)
		return &ast.ExprStmt{X: expr}, nil
	}
}

func (p *Parser) parseVarDecl(wantSemi bool) (*ast.VarDecl, error) {
	kw := p.next()
	decl := &ast.VarDecl{Idx: kw.Pos, Kind: kw.Type}
	for {
		name, err := p.expect(token.IDENT)
		if err != nil {
			return nil, err
		}
		d := ast.Declarator{Name: name.Literal}
		if p.consume(token.ASSIGN) {
			init, err := p.parseExpression(token.SEQUENCE)
			if err != nil {
				return nil, err
			}
			d.Init = init
		}
		decl.Decl = append(decl.Decl, d)
		if !p.consume(token.COMMA) {
			break
		}
	}
	if wantSemi {
		p.consume(token.SEMICOLON)
	}
	return decl, nil
}

func (p *Parser) parseBlock() (*ast.BlockStmt, error) {
	lbrace, err := p.expect(token.LBRACE)
	if err != nil {
		return nil, err
	}
	block := &ast.BlockStmt{Idx: lbrace.Pos}
	for p.cur().Type != token.RBRACE && p.cur().Type != token.EOF {
		stmt, err := p.parseStatement()
		if err != nil {
			return nil, err
		}
		block.Body = append(block.Body, stmt)
	}
	if _, err := p.expect(token.RBRACE); err != nil {
		return nil, err
	}
	return block, nil
}

func (p *Parser) parseIf() (ast.Stmt, error) {
	kw := p.next()
	if _, err := p.expect(token.LPAREN); err != nil {
		return nil, err
	}
	test, err := p.parseExpression(token.LOWEST)
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(token.RPAREN); err != nil {
		return nil, err
	}
	cons, err := p.parseStatement()
	if err != nil {
		return nil, err
	}
	stmt := &ast.IfStmt{Idx: kw.Pos, Test: test, Consequent: cons}
	if p.consume(token.ELSE) {
		alt, err := p.parseStatement()
		if err != nil {
			return nil, err
		}
		stmt.Alternate = alt
	}
	return stmt, nil
}

func (p *Parser) parseWhile() (ast.Stmt, error) {
	kw := p.next()
	if _, err := p.expect(token.LPAREN); err != nil {
		return nil, err
	}
	test, err := p.parseExpression(token.LOWEST)
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(token.RPAREN); err != nil {
		return nil, err
	}
	body, err := p.parseStatement()
	if err != nil {
		return nil, err
	}
	return &ast.WhileStmt{Idx: kw.Pos, Test: test, Body: body}, nil
}

func (p *Parser) parseFor() (ast.Stmt, error) {
	kw := p.next()
	if _, err := p.expect(token.LPAREN); err != nil {
		return nil, err
	}
	stmt := &ast.ForStmt{Idx: kw.Pos}

	switch p.cur().Type {
	case token.SEMICOLON:
		p.next()
	case token.VAR, token.LET, token.CONST:
		init, err := p.parseVarDecl(false)
		if err != nil {
			return nil, err
		}
		stmt.Init = init
		if _, err := p.expect(token.SEMICOLON); err != nil {
			return nil, err
		}
	default:
		expr, err := p.parseExpression(token.LOWEST)
		if err != nil {
			return nil, err
		}
		stmt.Init = &ast.ExprStmt{X: expr}
		if _, err := p.expect(token.SEMICOLON); err != nil {
			return nil, err
		}
	}

	if p.cur().Type != token.SEMICOLON {
		test, err := p.parseExpression(token.LOWEST)
		if err != nil {
			return nil, err
		}
		stmt.Test = test
	}
	if _, err := p.expect(token.SEMICOLON); err != nil {
		return nil, err
	}

	if p.cur().Type != token.RPAREN {
		update, err := p.parseExpression(token.LOWEST)
		if err != nil {
			return nil, err
		}
		stmt.Update = update
	}
	if _, err := p.expect(token.RPAREN); err != nil {
		return nil, err
	}

	body, err := p.parseStatement()
	if err != nil {
		return nil, err
	}
	stmt.Body = body
	return stmt, nil
}

func (p *Parser) parseReturn() (ast.Stmt, error) {
	kw := p.next()
	stmt := &ast.ReturnStmt{Idx: kw.Pos}
	switch p.cur().Type {
	case token.SEMICOLON, token.RBRACE, token.EOF:
	default:
		arg, err := p.parseExpression(token.LOWEST)
		if err != nil {
			return nil, err
		}
		stmt.Arg = arg
	}
	p.consume(token.SEMICOLON)
	return stmt, nil
}

func (p *Parser) parseFunction() (*ast.FuncLit, error) {
	kw := p.next()
	fn := &ast.FuncLit{Idx: kw.Pos}
	if p.cur().Type == token.IDENT {
		fn.Name = p.next().Literal
	}
	if _, err := p.expect(token.LPAREN); err != nil {
		return nil, err
	}
	for p.cur().Type != token.RPAREN {
		param, err := p.expect(token.IDENT)
		if err != nil {
			return nil, err
		}
		fn.Params = append(fn.Params, param.Literal)
		if !p.consume(token.COMMA) {
			break
		}
	}
	if _, err := p.expect(token.RPAREN); err != nil {
		return nil, err
	}
	body, err := p.parseBlock()
	if err != nil {
		return nil, err
	}
	fn.Body = body
	return fn, nil
}

// parseExpression is a Pratt parser over the precedence table in the
// token package. minPrec is exclusive: an infix operator is consumed
// only when it binds tighter than minPrec.
func (p *Parser) parseExpression(minPrec int) (ast.Expr, error) {
	left, err := p.parseUnary()
	if err != nil {
		return nil, err
	}
	for {
		op := p.cur().Type
		prec := token.Precedence(op)
		if prec <= minPrec {
			return left, nil
		}
		left, err = p.parseInfix(left, op, prec)
		if err != nil {
			return nil, err
		}
	}
}

func (p *Parser) parseInfix(left ast.Expr, op token.Type, prec int) (ast.Expr, error) {
	switch op {
	case token.COMMA:
		p.next()
		right, err := p.parseExpression(token.SEQUENCE)
		if err != nil {
			return nil, err
		}
		if seq, ok := left.(*ast.SeqExpr); ok {
			seq.Exprs = append(seq.Exprs, right)
			return seq, nil
		}
		return &ast.SeqExpr{Exprs: []ast.Expr{left, right}}, nil

	case token.ASSIGN:
		p.next()
		right, err := p.parseExpression(token.ASSIGNMENT - 1) // right associative
		if err != nil {
			return nil, err
		}
		return &ast.AssignExpr{Target: left, Value: right}, nil

	case token.QUESTION:
		p.next()
		cons, err := p.parseExpression(token.SEQUENCE)
		if err != nil {
			return nil, err
		}
		if _, err := p.expect(token.COLON); err != nil {
			return nil, err
		}
		alt, err := p.parseExpression(token.SEQUENCE)
		if err != nil {
			return nil, err
		}
		return &ast.CondExpr{Test: left, Consequent: cons, Alternate: alt}, nil

	case token.LOGICALAND, token.LOGICALOR, token.NULLISH:
		p.next()
		right, err := p.parseExpression(prec)
		if err != nil {
			return nil, err
		}
		return &ast.LogicalExpr{Op: op, Left: left, Right: right}, nil

	case token.LPAREN:
		p.next()
		args, err := p.parseArguments()
		if err != nil {
			return nil, err
		}
		return &ast.CallExpr{Callee: left, Args: args}, nil

	case token.LBRACKET:
		p.next()
		prop, err := p.parseExpression(token.LOWEST)
		if err != nil {
			return nil, err
		}
		if _, err := p.expect(token.RBRACKET); err != nil {
			return nil, err
		}
		return &ast.MemberExpr{Object: left, Property: prop, Computed: true}, nil

	case token.DOT:
		p.next()
		name, err := p.expect(token.IDENT)
		if err != nil {
			return nil, err
		}
		prop := &ast.Ident{Idx: name.Pos, Name: name.Literal}
		return &ast.MemberExpr{Object: left, Property: prop, Computed: false}, nil

	case token.POW:
		p.next()
		right, err := p.parseExpression(prec - 1) // right associative
		if err != nil {
			return nil, err
		}
		return &ast.BinaryExpr{Op: op, Left: left, Right: right}, nil

	default:
		p.next()
		right, err := p.parseExpression(prec)
		if err != nil {
			return nil, err
		}
		return &ast.BinaryExpr{Op: op, Left: left, Right: right}, nil
	}
}

func (p *Parser) parseArguments() ([]ast.Expr, error) {
	var args []ast.Expr
	for p.cur().Type != token.RPAREN {
		arg, err := p.parseExpression(token.SEQUENCE)
		if err != nil {
			return nil, err
		}
		args = append(args, arg)
		if !p.consume(token.COMMA) {
			break
		}
	}
	if _, err := p.expect(token.RPAREN); err != nil {
		return nil, err
	}
	return args, nil
}

func (p *Parser) parseUnary() (ast.Expr, error) {
	switch p.cur().Type {
	case token.MINUS, token.PLUS, token.NOT, token.BANG, token.TYPEOF, token.VOID, token.DELETE:
		op := p.next()
		operand, err := p.parseUnary()
		if err != nil {
			return nil, err
		}
		return &ast.UnaryExpr{Idx: op.Pos, Op: op.Type, Operand: operand}, nil
	}
	return p.parsePrimary()
}

func (p *Parser) parsePrimary() (ast.Expr, error) {
	tok := p.cur()
	switch tok.Type {
	case token.NUMBER:
		p.next()
		v, ok := ast.ParseNumberLiteral(tok.Literal)
		if !ok {
			return nil, p.errorf("malformed number literal %q", tok.Literal)
		}
		return &ast.NumberLit{Idx: tok.Pos, Raw: tok.Literal, Value: v}, nil

	case token.STRING:
		p.next()
		v, ok := ast.UnquoteString(tok.Literal)
		if !ok {
			return nil, p.errorf("malformed string literal %q", tok.Literal)
		}
		return &ast.StringLit{Idx: tok.Pos, Raw: tok.Literal, Value: v}, nil

	case token.TRUE, token.FALSE:
		p.next()
		return &ast.BoolLit{Idx: tok.Pos, Value: tok.Type == token.TRUE}, nil

	case token.NULL:
		p.next()
		return &ast.NullLit{Idx: tok.Pos}, nil

	case token.UNDEFINED:
		p.next()
		return &ast.UndefinedLit{Idx: tok.Pos}, nil

	case token.IDENT:
		p.next()
		return &ast.Ident{Idx: tok.Pos, Name: tok.Literal}, nil

	case token.LPAREN:
		p.next()
		inner, err := p.parseExpression(token.LOWEST)
		if err != nil {
			return nil, err
		}
		if _, err := p.expect(token.RPAREN); err != nil {
			return nil, err
		}
		return &ast.ParenExpr{Idx: tok.Pos, Inner: inner}, nil

	case token.FUNCTION:
		return p.parseFunction()

	case token.NEW:
		p.next()
		callee, err := p.parsePrimary()
		if err != nil {
			return nil, err
		}
		expr := &ast.NewExpr{Idx: tok.Pos, Callee: callee}
		if p.consume(token.LPAREN) {
			args, err := p.parseArguments()
			if err != nil {
				return nil, err
			}
			expr.Args = args
		}
		return expr, nil
	}
	return nil, p.errorf("unexpected token %s", tok.Type)
}
