package parser

import (
	"strconv"

	"github.com/funvibe/minitt/internal/ast"
	"github.com/funvibe/minitt/internal/diagnostics"
	"github.com/funvibe/minitt/internal/pipeline"
	"github.com/funvibe/minitt/internal/token"
)

// maxRecursionDepth caps term nesting so a hostile document cannot blow the
// goroutine stack.
const maxRecursionDepth = 512

type Parser struct {
	tokens   []token.Token
	pos      int
	curToken token.Token
	ctx      *pipeline.PipelineContext
	depth    int
}

func New(tokens []token.Token, ctx *pipeline.PipelineContext) *Parser {
	p := &Parser{tokens: tokens, ctx: ctx}
	if len(tokens) > 0 {
		p.curToken = tokens[0]
	} else {
		p.curToken = token.Token{Type: token.EOF}
	}
	return p
}

func (p *Parser) nextToken() {
	if p.pos+1 < len(p.tokens) {
		p.pos++
		p.curToken = p.tokens[p.pos]
	} else {
		p.curToken = token.Token{Type: token.EOF, Line: p.curToken.Line, Column: p.curToken.Column}
	}
}

func (p *Parser) peekToken() token.Token {
	if p.pos+1 < len(p.tokens) {
		return p.tokens[p.pos+1]
	}
	return token.Token{Type: token.EOF, Line: p.curToken.Line, Column: p.curToken.Column}
}

// expectPeek advances when the next token has the wanted type, and records a
// diagnostic otherwise.
func (p *Parser) expectPeek(t token.TokenType) bool {
	if p.peekToken().Type == t {
		p.nextToken()
		return true
	}
	p.errorf(diagnostics.ErrP001, p.peekToken(), "expected %s, got %s", t, describe(p.peekToken()))
	return false
}

func (p *Parser) errorf(code diagnostics.ErrorCode, tok token.Token, format string, args ...interface{}) {
	p.ctx.Errors = append(p.ctx.Errors, diagnostics.NewError(code, tok, format, args...))
}

func describe(tok token.Token) string {
	if tok.Type == token.EOF {
		return "end of file"
	}
	if tok.Type == token.NEWLINE {
		return "end of line"
	}
	return "'" + tok.Lexeme + "'"
}

// ParseProgram parses the whole token stream into a Program. Statements are
// newline-separated; after an error the parser skips to the next line and
// continues, so one run reports every malformed statement.
func (p *Parser) ParseProgram() *ast.Program {
	program := &ast.Program{}
	for p.curToken.Type != token.EOF {
		if p.curToken.Type == token.NEWLINE {
			p.nextToken()
			continue
		}
		before := len(p.ctx.Errors)
		stmt := p.parseStatement()
		if stmt != nil && len(p.ctx.Errors) == before {
			program.Statements = append(program.Statements, stmt)
		} else {
			p.skipToLineEnd()
		}
		p.nextToken()
	}
	return program
}

func (p *Parser) skipToLineEnd() {
	for p.curToken.Type != token.NEWLINE && p.curToken.Type != token.EOF {
		p.nextToken()
	}
}

func (p *Parser) parseStatement() ast.Statement {
	switch p.curToken.Type {
	case token.AXIOM:
		return p.parseAxiomStatement()
	case token.DEF:
		return p.parseDefStatement()
	case token.CHECK:
		return p.parseCheckStatement()
	case token.INFER:
		return p.parseInferStatement()
	case token.ILLEGAL:
		p.errorf(diagnostics.ErrP004, p.curToken, "illegal character %q", p.curToken.Lexeme)
		return nil
	default:
		p.errorf(diagnostics.ErrP003, p.curToken, "expected a statement (axiom, def, check, infer), got %s", describe(p.curToken))
		return nil
	}
}

// axiom NAME : TERM
func (p *Parser) parseAxiomStatement() ast.Statement {
	stmt := &ast.AxiomStatement{Token: p.curToken}
	if !p.expectPeek(token.IDENT) {
		return nil
	}
	stmt.Name = &ast.Identifier{Token: p.curToken, Value: p.curToken.Lexeme}
	if !p.expectPeek(token.COLON) {
		return nil
	}
	p.nextToken()
	stmt.Ty = p.parseTerm()
	return stmt
}

// def NAME : TERM := TERM
func (p *Parser) parseDefStatement() ast.Statement {
	stmt := &ast.DefStatement{Token: p.curToken}
	if !p.expectPeek(token.IDENT) {
		return nil
	}
	stmt.Name = &ast.Identifier{Token: p.curToken, Value: p.curToken.Lexeme}
	if !p.expectPeek(token.COLON) {
		return nil
	}
	p.nextToken()
	stmt.Ty = p.parseTerm()
	if stmt.Ty == nil {
		return nil
	}
	if !p.expectPeek(token.DEFINE) {
		return nil
	}
	p.nextToken()
	stmt.Value = p.parseTerm()
	return stmt
}

// check TERM : TERM
func (p *Parser) parseCheckStatement() ast.Statement {
	stmt := &ast.CheckStatement{Token: p.curToken}
	p.nextToken()
	stmt.Term = p.parseTerm()
	if stmt.Term == nil {
		return nil
	}
	if !p.expectPeek(token.COLON) {
		return nil
	}
	p.nextToken()
	stmt.Ty = p.parseTerm()
	return stmt
}

// infer TERM
func (p *Parser) parseInferStatement() ast.Statement {
	stmt := &ast.InferStatement{Token: p.curToken}
	p.nextToken()
	stmt.Term = p.parseTerm()
	return stmt
}

func (p *Parser) parseLevelAtom() ast.LevelExpression {
	switch p.curToken.Type {
	case token.NUMBER:
		v, err := strconv.Atoi(p.curToken.Lexeme)
		if err != nil {
			p.errorf(diagnostics.ErrP001, p.curToken, "malformed level literal %q", p.curToken.Lexeme)
			return nil
		}
		return &ast.LevelLiteral{Token: p.curToken, Value: v}
	case token.IDENT:
		return &ast.LevelParam{Token: p.curToken, Name: p.curToken.Lexeme}
	case token.MAX, token.IMAX:
		lvl := &ast.LevelMax{Token: p.curToken, Impredicative: p.curToken.Type == token.IMAX}
		if !p.expectPeek(token.LPAREN) {
			return nil
		}
		p.nextToken()
		lvl.Left = p.parseLevelAtom()
		if lvl.Left == nil {
			return nil
		}
		if !p.expectPeek(token.COMMA) {
			return nil
		}
		p.nextToken()
		lvl.Right = p.parseLevelAtom()
		if lvl.Right == nil {
			return nil
		}
		if !p.expectPeek(token.RPAREN) {
			return nil
		}
		return lvl
	default:
		p.errorf(diagnostics.ErrP001, p.curToken, "expected a universe level, got %s", describe(p.curToken))
		return nil
	}
}
