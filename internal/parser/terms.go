package parser

import (
	"github.com/funvibe/minitt/internal/ast"
	"github.com/funvibe/minitt/internal/diagnostics"
	"github.com/funvibe/minitt/internal/token"
)

// parseTerm parses a full term. Precedence, loosest first: binders (fun, pi,
// let), then the right-associative arrow sugar, then application by
// juxtaposition, then atoms.
func (p *Parser) parseTerm() ast.Expression {
	if p.depth >= maxRecursionDepth {
		p.errorf(diagnostics.ErrP005, p.curToken, "term too deeply nested")
		return nil
	}
	p.depth++
	defer func() { p.depth-- }()

	switch p.curToken.Type {
	case token.FUN:
		return p.parseLambda()
	case token.PI:
		return p.parsePi()
	case token.LET:
		return p.parseLet()
	default:
		return p.parseArrow()
	}
}

// fun (x : T) => body
func (p *Parser) parseLambda() ast.Expression {
	lam := &ast.LambdaExpression{Token: p.curToken}
	name, ty := p.parseBinder()
	if ty == nil {
		return nil
	}
	lam.Param = name
	lam.ParamType = ty
	if !p.expectPeek(token.DARROW) {
		return nil
	}
	p.nextToken()
	lam.Body = p.parseTerm()
	if lam.Body == nil {
		return nil
	}
	return lam
}

// pi (x : T) -> body
func (p *Parser) parsePi() ast.Expression {
	pi := &ast.PiExpression{Token: p.curToken}
	name, ty := p.parseBinder()
	if ty == nil {
		return nil
	}
	pi.Param = name
	pi.ParamType = ty
	if !p.expectPeek(token.ARROW) {
		return nil
	}
	p.nextToken()
	pi.Body = p.parseTerm()
	if pi.Body == nil {
		return nil
	}
	return pi
}

// (x : T) after a fun/pi keyword. The binder name may be "_".
func (p *Parser) parseBinder() (string, ast.Expression) {
	if !p.expectPeek(token.LPAREN) {
		return "", nil
	}
	var name string
	switch p.peekToken().Type {
	case token.IDENT:
		p.nextToken()
		name = p.curToken.Lexeme
	case token.HOLE:
		p.nextToken()
		name = "_"
	default:
		p.errorf(diagnostics.ErrP001, p.peekToken(), "expected a binder name, got %s", describe(p.peekToken()))
		return "", nil
	}
	if !p.expectPeek(token.COLON) {
		return "", nil
	}
	p.nextToken()
	ty := p.parseTerm()
	if ty == nil {
		return "", nil
	}
	if !p.expectPeek(token.RPAREN) {
		return "", nil
	}
	return name, ty
}

// let x : T := v in body
func (p *Parser) parseLet() ast.Expression {
	let := &ast.LetExpression{Token: p.curToken}
	if !p.expectPeek(token.IDENT) {
		return nil
	}
	let.Name = p.curToken.Lexeme
	if !p.expectPeek(token.COLON) {
		return nil
	}
	p.nextToken()
	let.Ty = p.parseTerm()
	if let.Ty == nil {
		return nil
	}
	if !p.expectPeek(token.DEFINE) {
		return nil
	}
	p.nextToken()
	let.Value = p.parseTerm()
	if let.Value == nil {
		return nil
	}
	if !p.expectPeek(token.IN) {
		return nil
	}
	p.nextToken()
	let.Body = p.parseTerm()
	if let.Body == nil {
		return nil
	}
	return let
}

// parseArrow handles the non-dependent sugar: `T -> U` is a pi with an
// anonymous binder. Right-associative.
func (p *Parser) parseArrow() ast.Expression {
	left := p.parseApplication()
	if left == nil {
		return nil
	}
	if p.peekToken().Type != token.ARROW {
		return left
	}
	p.nextToken() // the arrow
	p.nextToken()
	right := p.parseTerm()
	if right == nil {
		return nil
	}
	return &ast.PiExpression{Token: left.GetToken(), Param: "_", ParamType: left, Body: right}
}

func (p *Parser) parseApplication() ast.Expression {
	fn := p.parseAtom()
	if fn == nil {
		return nil
	}
	for startsAtom(p.peekToken().Type) {
		p.nextToken()
		arg := p.parseAtom()
		if arg == nil {
			return nil
		}
		fn = &ast.ApplyExpression{Token: fn.GetToken(), Fn: fn, Arg: arg}
	}
	return fn
}

func startsAtom(t token.TokenType) bool {
	switch t {
	case token.IDENT, token.HOLE, token.TYPE, token.SORT, token.META, token.LPAREN:
		return true
	}
	return false
}

func (p *Parser) parseAtom() ast.Expression {
	switch p.curToken.Type {
	case token.IDENT:
		return &ast.Identifier{Token: p.curToken, Value: p.curToken.Lexeme}
	case token.HOLE:
		// An anonymous hole elaborates to a metavariable.
		return &ast.MetaExpression{Token: p.curToken, Name: "_"}
	case token.META:
		tok := p.curToken
		if !p.expectPeek(token.IDENT) {
			return nil
		}
		return &ast.MetaExpression{Token: tok, Name: p.curToken.Lexeme}
	case token.TYPE:
		// `Type` is Sort 1; `Type n` is Sort (n+1). Sort 0 is reachable
		// through the explicit `Sort 0` form.
		sort := &ast.SortExpression{Token: p.curToken}
		if p.peekToken().Type == token.NUMBER {
			p.nextToken()
			lit := p.parseLevelAtom()
			if lit == nil {
				return nil
			}
			n := lit.(*ast.LevelLiteral)
			sort.Level = &ast.LevelLiteral{Token: n.Token, Value: n.Value + 1}
		} else {
			sort.Level = &ast.LevelLiteral{Token: sort.Token, Value: 1}
		}
		return sort
	case token.SORT:
		sort := &ast.SortExpression{Token: p.curToken}
		p.nextToken()
		sort.Level = p.parseLevelAtom()
		if sort.Level == nil {
			return nil
		}
		return sort
	case token.LPAREN:
		p.nextToken()
		inner := p.parseTerm()
		if inner == nil {
			return nil
		}
		if !p.expectPeek(token.RPAREN) {
			return nil
		}
		return inner
	case token.ILLEGAL:
		p.errorf(diagnostics.ErrP004, p.curToken, "illegal character %q", p.curToken.Lexeme)
		return nil
	default:
		p.errorf(diagnostics.ErrP001, p.curToken, "expected a term, got %s", describe(p.curToken))
		return nil
	}
}
