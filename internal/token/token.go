package token

type TokenType string

type Token struct {
	Type    TokenType
	Lexeme  string // the raw source text of the token
	Literal string
	Line    int
	Column  int
}

const (
	ILLEGAL = "ILLEGAL"
	EOF     = "EOF"
	NEWLINE = "NEWLINE"

	IDENT  = "IDENT"
	NUMBER = "NUMBER"

	// Delimiters
	LPAREN = "("
	RPAREN = ")"
	COLON  = ":"
	COMMA  = ","
	ARROW  = "->"
	DARROW = "=>"
	DEFINE = ":="
	HOLE   = "_"
	META   = "?"

	// Keywords
	AXIOM = "AXIOM"
	DEF   = "DEF"
	CHECK = "CHECK"
	INFER = "INFER"
	FUN   = "FUN"
	PI    = "PI"
	LET   = "LET"
	IN    = "IN"
	TYPE  = "TYPE"
	SORT  = "SORT"
	MAX   = "MAX"
	IMAX  = "IMAX"
)

var keywords = map[string]TokenType{
	"axiom": AXIOM,
	"def":   DEF,
	"check": CHECK,
	"infer": INFER,
	"fun":   FUN,
	"pi":    PI,
	"let":   LET,
	"in":    IN,
	"Type":  TYPE,
	"Sort":  SORT,
	"max":   MAX,
	"imax":  IMAX,
}

// LookupIdent distinguishes keywords from user identifiers.
func LookupIdent(ident string) TokenType {
	if tok, ok := keywords[ident]; ok {
		return tok
	}
	return IDENT
}
