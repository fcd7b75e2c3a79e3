package parser

import (
	"github.com/defogjs/defog/internal/js/token"
)

// Lexer scans JavaScript source text and produces tokens.
type Lexer struct {
	input    string
	position int
	tokens   []token.Token
}

// NewLexer returns a Lexer over the given input.
func NewLexer(input string) *Lexer {
	return &Lexer{
		input:  input,
		tokens: make([]token.Token, 0),
	}
}

// Tokenize scans the whole input and returns the token list, terminated
// by an EOF token. Unrecognized characters become ILLEGAL tokens; the
// parser turns those into errors.
func (l *Lexer) Tokenize() []token.Token {
	for l.position < len(l.input) {
		start := l.position
		c := l.input[l.position]
		switch {
		case isWhitespace(c):
			l.position++

		case c == '/' && l.peekAt(1) == '/':
			l.skipLineComment()

		case c == '/' && l.peekAt(1) == '*':
			l.skipBlockComment()

		case isDigit(c) || (c == '.' && isDigit(l.peekAt(1))):
			l.lexNumber(start)

		case c == '\'' || c == '"':
			l.lexString(start)

		case isIdentStart(c):
			l.lexIdent(start)

		default:
			l.lexOperator(start)
		}
	}
	l.add(token.EOF, "", l.position)
	return l.tokens
}

func (l *Lexer) peekAt(offset int) byte {
	if l.position+offset < len(l.input) {
		return l.input[l.position+offset]
	}
	return 0
}

func (l *Lexer) add(t token.Type, literal string, pos int) {
	l.tokens = append(l.tokens, token.Token{Type: t, Literal: literal, Pos: pos})
}

func (l *Lexer) skipLineComment() {
	for l.position < len(l.input) && l.input[l.position] != '\n' {
		l.position++
	}
}

func (l *Lexer) skipBlockComment() {
	l.position += 2
	for l.position+1 < len(l.input) {
		if l.input[l.position] == '*' && l.input[l.position+1] == '/' {
			l.position += 2
			return
		}
		l.position++
	}
	// unterminated comment: consume the rest
	l.position = len(l.input)
}

// lexNumber scans decimal, hex (0x), binary (0b), octal (0o), and legacy
// leading-zero octal literals, keeping the raw source spelling intact.
func (l *Lexer) lexNumber(start int) {
	if l.input[l.position] == '0' && l.position+1 < len(l.input) {
		switch l.input[l.position+1] {
		case 'x', 'X':
			l.position += 2
			l.consumeDigits(isHexDigit)
			l.add(token.NUMBER, l.input[start:l.position], start)
			return
		case 'b', 'B':
			l.position += 2
			l.consumeDigits(isBinaryDigit)
			l.add(token.NUMBER, l.input[start:l.position], start)
			return
		case 'o', 'O':
			l.position += 2
			l.consumeDigits(isOctalDigit)
			l.add(token.NUMBER, l.input[start:l.position], start)
			return
		}
	}

	l.consumeDigits(isDigit)
	if l.position < len(l.input) && l.input[l.position] == '.' {
		l.position++
		l.consumeDigits(isDigit)
	}
	if l.position < len(l.input) && (l.input[l.position] == 'e' || l.input[l.position] == 'E') {
		next := l.peekAt(1)
		if isDigit(next) || ((next == '+' || next == '-') && isDigit(l.peekAt(2))) {
			l.position++
			if l.input[l.position] == '+' || l.input[l.position] == '-' {
				l.position++
			}
			l.consumeDigits(isDigit)
		}
	}
	l.add(token.NUMBER, l.input[start:l.position], start)
}

func (l *Lexer) consumeDigits(valid func(byte) bool) {
	for l.position < len(l.input) && (valid(l.input[l.position]) || l.input[l.position] == '_') {
		l.position++
	}
}

// lexString scans a single- or double-quoted string without decoding
// escapes; the raw text, quotes included, becomes the token literal.
func (l *Lexer) lexString(start int) {
	quote := l.input[l.position]
	l.position++
	for l.position < len(l.input) {
		c := l.input[l.position]
		if c == '\\' && l.position+1 < len(l.input) {
			l.position += 2
			continue
		}
		if c == quote {
			l.position++
			l.add(token.STRING, l.input[start:l.position], start)
			return
		}
		if c == '\n' {
			break
		}
		l.position++
	}
	l.add(token.ILLEGAL, l.input[start:l.position], start)
}

func (l *Lexer) lexIdent(start int) {
	for l.position < len(l.input) && isIdentPart(l.input[l.position]) {
		l.position++
	}
	word := l.input[start:l.position]
	if kw, ok := token.Keywords[word]; ok {
		l.add(kw, word, start)
		return
	}
	l.add(token.IDENT, word, start)
}

// operator tokens, longest match first
var operators = []struct {
	text string
	typ  token.Type
}{
	{">>>", token.USHR},
	{"===", token.STRICTEQ},
	{"!==", token.STRICTNEQ},
	{"**", token.POW},
	{"<<", token.SHL},
	{">>", token.SHR},
	{"<=", token.LE},
	{">=", token.GE},
	{"==", token.EQ},
	{"!=", token.NEQ},
	{"&&", token.LOGICALAND},
	{"||", token.LOGICALOR},
	{"??", token.NULLISH},
	{"+", token.PLUS},
	{"-", token.MINUS},
	{"*", token.STAR},
	{"/", token.SLASH},
	{"%", token.PERCENT},
	{"&", token.AND},
	{"|", token.OR},
	{"^", token.XOR},
	{"~", token.NOT},
	{"!", token.BANG},
	{"<", token.LT},
	{">", token.GT},
	{"=", token.ASSIGN},
	{"(", token.LPAREN},
	{")", token.RPAREN},
	{"[", token.LBRACKET},
	{"]", token.RBRACKET},
	{"{", token.LBRACE},
	{"}", token.RBRACE},
	{",", token.COMMA},
	{";", token.SEMICOLON},
	{".", token.DOT},
	{"?", token.QUESTION},
	{":", token.COLON},
}

func (l *Lexer) lexOperator(start int) {
	rest := l.input[l.position:]
	for _, op := range operators {
		if len(rest) >= len(op.text) && rest[:len(op.text)] == op.text {
			l.position += len(op.text)
			l.add(op.typ, op.text, start)
			return
		}
	}
	l.add(token.ILLEGAL, string(l.input[l.position]), start)
	l.position++
}

func isWhitespace(c byte) bool {
	return c == ' ' || c == '\t' || c == '\n' || c == '\r'
}

func isDigit(c byte) bool { return c >= '0' && c <= '9' }

func isHexDigit(c byte) bool {
	return isDigit(c) || (c >= 'a' && c <= 'f') || (c >= 'A' && c <= 'F')
}

func isBinaryDigit(c byte) bool { return c == '0' || c == '1' }

func isOctalDigit(c byte) bool { return c >= '0' && c <= '7' }

func isIdentStart(c byte) bool {
	return c == '_' || c == '$' || (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z') || c >= 0x80
}

func isIdentPart(c byte) bool {
	return isIdentStart(c) || isDigit(c)
}
