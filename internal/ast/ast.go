package ast

import "github.com/funvibe/minitt/internal/token"

// Node is the base interface for all AST nodes.
type Node interface {
	TokenLiteral() string
	GetToken() token.Token
}

// Statement is a top-level form of a document: axiom, def, check or infer.
type Statement interface {
	Node
	statementNode()
}

// Expression is a term of the surface language, before name resolution.
type Expression interface {
	Node
	expressionNode()
}

// LevelExpression is a universe-level expression of the surface language.
type LevelExpression interface {
	Node
	levelNode()
}

// Program is the parsed document: an ordered sequence of statements.
type Program struct {
	Statements []Statement
	File       string
}

func (p *Program) TokenLiteral() string {
	if len(p.Statements) > 0 {
		return p.Statements[0].TokenLiteral()
	}
	return ""
}

func (p *Program) GetToken() token.Token {
	if p == nil || len(p.Statements) == 0 {
		return token.Token{}
	}
	return p.Statements[0].GetToken()
}

// Identifier is a name occurrence; the elaborator decides whether it is a
// bound variable or a global constant.
type Identifier struct {
	Token token.Token
	Value string
}

func (i *Identifier) expressionNode()      {}
func (i *Identifier) TokenLiteral() string { return i.Token.Lexeme }
func (i *Identifier) GetToken() token.Token {
	if i == nil {
		return token.Token{}
	}
	return i.Token
}

// SortExpression is `Type`, `Type n` or `Sort LEVEL`.
type SortExpression struct {
	Token token.Token
	Level LevelExpression
}

func (s *SortExpression) expressionNode()      {}
func (s *SortExpression) TokenLiteral() string { return s.Token.Lexeme }
func (s *SortExpression) GetToken() token.Token {
	if s == nil {
		return token.Token{}
	}
	return s.Token
}

// MetaExpression is `?name`, an unsolved metavariable.
type MetaExpression struct {
	Token token.Token
	Name  string
}

func (m *MetaExpression) expressionNode()      {}
func (m *MetaExpression) TokenLiteral() string { return m.Token.Lexeme }
func (m *MetaExpression) GetToken() token.Token {
	if m == nil {
		return token.Token{}
	}
	return m.Token
}

// LambdaExpression is `fun (x : T) => body`.
type LambdaExpression struct {
	Token     token.Token // the 'fun' token
	Param     string
	ParamType Expression
	Body      Expression
}

func (l *LambdaExpression) expressionNode()      {}
func (l *LambdaExpression) TokenLiteral() string { return l.Token.Lexeme }
func (l *LambdaExpression) GetToken() token.Token {
	if l == nil {
		return token.Token{}
	}
	return l.Token
}

// PiExpression is `pi (x : T) -> body`; the arrow sugar `T -> U` parses as a
// pi whose parameter is "_".
type PiExpression struct {
	Token     token.Token // the 'pi' token, or the domain's token for sugar
	Param     string
	ParamType Expression
	Body      Expression
}

func (p *PiExpression) expressionNode()      {}
func (p *PiExpression) TokenLiteral() string { return p.Token.Lexeme }
func (p *PiExpression) GetToken() token.Token {
	if p == nil {
		return token.Token{}
	}
	return p.Token
}

// LetExpression is `let x : T := v in body`.
type LetExpression struct {
	Token token.Token // the 'let' token
	Name  string
	Ty    Expression
	Value Expression
	Body  Expression
}

func (l *LetExpression) expressionNode()      {}
func (l *LetExpression) TokenLiteral() string { return l.Token.Lexeme }
func (l *LetExpression) GetToken() token.Token {
	if l == nil {
		return token.Token{}
	}
	return l.Token
}

// ApplyExpression is juxtaposition, left-associated by the parser.
type ApplyExpression struct {
	Token token.Token
	Fn    Expression
	Arg   Expression
}

func (a *ApplyExpression) expressionNode()      {}
func (a *ApplyExpression) TokenLiteral() string { return a.Token.Lexeme }
func (a *ApplyExpression) GetToken() token.Token {
	if a == nil {
		return token.Token{}
	}
	return a.Token
}

// LevelLiteral is a numeric level: 0, 1, 2, ...
type LevelLiteral struct {
	Token token.Token
	Value int
}

func (l *LevelLiteral) levelNode()           {}
func (l *LevelLiteral) TokenLiteral() string { return l.Token.Lexeme }
func (l *LevelLiteral) GetToken() token.Token {
	if l == nil {
		return token.Token{}
	}
	return l.Token
}

// LevelParam is a named level parameter.
type LevelParam struct {
	Token token.Token
	Name  string
}

func (l *LevelParam) levelNode()           {}
func (l *LevelParam) TokenLiteral() string { return l.Token.Lexeme }
func (l *LevelParam) GetToken() token.Token {
	if l == nil {
		return token.Token{}
	}
	return l.Token
}

// LevelMax is `max(a, b)` or `imax(a, b)`.
type LevelMax struct {
	Token         token.Token
	Left          LevelExpression
	Right         LevelExpression
	Impredicative bool // true for imax
}

func (l *LevelMax) levelNode()           {}
func (l *LevelMax) TokenLiteral() string { return l.Token.Lexeme }
func (l *LevelMax) GetToken() token.Token {
	if l == nil {
		return token.Token{}
	}
	return l.Token
}

// AxiomStatement is `axiom NAME : TERM`.
type AxiomStatement struct {
	Token token.Token
	Name  *Identifier
	Ty    Expression
}

func (s *AxiomStatement) statementNode()       {}
func (s *AxiomStatement) TokenLiteral() string { return s.Token.Lexeme }
func (s *AxiomStatement) GetToken() token.Token {
	if s == nil {
		return token.Token{}
	}
	return s.Token
}

// DefStatement is `def NAME : TERM := TERM`.
type DefStatement struct {
	Token token.Token
	Name  *Identifier
	Ty    Expression
	Value Expression
}

func (s *DefStatement) statementNode()       {}
func (s *DefStatement) TokenLiteral() string { return s.Token.Lexeme }
func (s *DefStatement) GetToken() token.Token {
	if s == nil {
		return token.Token{}
	}
	return s.Token
}

// CheckStatement is `check TERM : TERM`.
type CheckStatement struct {
	Token token.Token
	Term  Expression
	Ty    Expression
}

func (s *CheckStatement) statementNode()       {}
func (s *CheckStatement) TokenLiteral() string { return s.Token.Lexeme }
func (s *CheckStatement) GetToken() token.Token {
	if s == nil {
		return token.Token{}
	}
	return s.Token
}

// InferStatement is `infer TERM`.
type InferStatement struct {
	Token token.Token
	Term  Expression
}

func (s *InferStatement) statementNode()       {}
func (s *InferStatement) TokenLiteral() string { return s.Token.Lexeme }
func (s *InferStatement) GetToken() token.Token {
	if s == nil {
		return token.Token{}
	}
	return s.Token
}
