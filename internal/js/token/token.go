// Package token defines the lexical tokens of the JavaScript subset
// understood by the folding engine's parser.
package token

import "fmt"

type Type int

const (
	ILLEGAL Type = iota
	EOF

	// literals
	IDENT
	NUMBER
	STRING

	// punctuation
	LPAREN
	RPAREN
	LBRACKET
	RBRACKET
	LBRACE
	RBRACE
	COMMA
	SEMICOLON
	DOT
	QUESTION
	COLON

	// operators
	ASSIGN
	PLUS
	MINUS
	STAR
	SLASH
	PERCENT
	POW

	AND
	OR
	XOR
	NOT // bitwise ~
	SHL
	SHR
	USHR

	LT
	GT
	LE
	GE
	EQ
	NEQ
	STRICTEQ
	STRICTNEQ

	LOGICALAND
	LOGICALOR
	NULLISH
	BANG

	// keywords
	VAR
	LET
	CONST
	TRUE
	FALSE
	NULL
	UNDEFINED
	IF
	ELSE
	WHILE
	FOR
	RETURN
	FUNCTION
	TYPEOF
	VOID
	DELETE
	NEW
)

var names = map[Type]string{
	ILLEGAL:    "ILLEGAL",
	EOF:        "EOF",
	IDENT:      "IDENT",
	NUMBER:     "NUMBER",
	STRING:     "STRING",
	LPAREN:     "(",
	RPAREN:     ")",
	LBRACKET:   "[",
	RBRACKET:   "]",
	LBRACE:     "{",
	RBRACE:     "}",
	COMMA:      ",",
	SEMICOLON:  ";",
	DOT:        ".",
	QUESTION:   "?",
	COLON:      ":",
	ASSIGN:     "=",
	PLUS:       "+",
	MINUS:      "-",
	STAR:       "*",
	SLASH:      "/",
	PERCENT:    "%",
	POW:        "**",
	AND:        "&",
	OR:         "|",
	XOR:        "^",
	NOT:        "~",
	SHL:        "<<",
	SHR:        ">>",
	USHR:       ">>>",
	LT:         "<",
	GT:         ">",
	LE:         "<=",
	GE:         ">=",
	EQ:         "==",
	NEQ:        "!=",
	STRICTEQ:   "===",
	STRICTNEQ:  "!==",
	LOGICALAND: "&&",
	LOGICALOR:  "||",
	NULLISH:    "??",
	BANG:       "!",
	VAR:        "var",
	LET:        "let",
	CONST:      "const",
	TRUE:       "true",
	FALSE:      "false",
	NULL:       "null",
	UNDEFINED:  "undefined",
	IF:         "if",
	ELSE:       "else",
	WHILE:      "while",
	FOR:        "for",
	RETURN:     "return",
	FUNCTION:   "function",
	TYPEOF:     "typeof",
	VOID:       "void",
	DELETE:     "delete",
	NEW:        "new",
}

func (t Type) String() string {
	if s, ok := names[t]; ok {
		return s
	}
	return fmt.Sprintf("token(%d)", int(t))
}

// Keywords maps reserved words to their token types.
var Keywords = map[string]Type{
	"var":       VAR,
	"let":       LET,
	"const":     CONST,
	"true":      TRUE,
	"false":     FALSE,
	"null":      NULL,
	"undefined": UNDEFINED,
	"if":        IF,
	"else":      ELSE,
	"while":     WHILE,
	"for":       FOR,
	"return":    RETURN,
	"function":  FUNCTION,
	"typeof":    TYPEOF,
	"void":      VOID,
	"delete":    DELETE,
	"new":       NEW,
}

// Token is a single lexical unit with its raw source text and offset.
type Token struct {
	Type    Type
	Literal string
	Pos     int
}

// Binding powers for the expression parser, following the ECMAScript
// operator precedence table. Higher binds tighter.
const (
	LOWEST     = iota
	SEQUENCE   // ,
	ASSIGNMENT // =
	CONDITIONAL
	COALESCE   // ??
	LOGICORP   // ||
	LOGICANDP  // &&
	BITOR      // |
	BITXOR     // ^
	BITAND     // &
	EQUALITY   // == != === !==
	RELATIONAL // < > <= >=
	SHIFT      // << >> >>>
	ADDITIVE   // + -
	MULTIPLICATIVE
	EXPONENT // ** (right associative)
	UNARY
	POSTFIX // calls, member access
)

// Precedence returns the infix binding power of t, or LOWEST when t does
// not start an infix construct.
func Precedence(t Type) int {
	switch t {
	case COMMA:
		return SEQUENCE
	case ASSIGN:
		return ASSIGNMENT
	case QUESTION:
		return CONDITIONAL
	case NULLISH:
		return COALESCE
	case LOGICALOR:
		return LOGICORP
	case LOGICALAND:
		return LOGICANDP
	case OR:
		return BITOR
	case XOR:
		return BITXOR
	case AND:
		return BITAND
	case EQ, NEQ, STRICTEQ, STRICTNEQ:
		return EQUALITY
	case LT, GT, LE, GE:
		return RELATIONAL
	case SHL, SHR, USHR:
		return SHIFT
	case PLUS, MINUS:
		return ADDITIVE
	case STAR, SLASH, PERCENT:
		return MULTIPLICATIVE
	case POW:
		return EXPONENT
	case LPAREN, LBRACKET, DOT:
		return POSTFIX
	}
	return LOWEST
}
