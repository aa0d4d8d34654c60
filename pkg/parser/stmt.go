package parser

import (
	"strings"

	"github.com/safec-org/safec/pkg/ast"
	"github.com/safec-org/safec/pkg/token"
)

func (p *Parser) parseStmt() ast.Stmt {
	t := p.cur()
	switch t.Kind {
	case token.LBrace:
		return p.parseCompound()
	case token.KwIf:
		return p.parseIf()
	case token.KwWhile:
		return p.parseWhile()
	case token.KwDo:
		return p.parseDoWhile()
	case token.KwFor:
		return p.parseFor()
	case token.KwReturn:
		p.advance()
		var v ast.Expr
		if !p.check(token.Semicolon) {
			v = p.parseExpr()
		}
		p.expect(token.Semicolon)
		return &ast.ReturnStmt{StmtBase: ast.StmtBase{At: t.Loc}, Value: v}
	case token.KwBreak:
		p.advance()
		label := ""
		if p.check(token.Ident) {
			label = p.advance().Text
		}
		p.expect(token.Semicolon)
		return &ast.BreakStmt{StmtBase: ast.StmtBase{At: t.Loc}, Label: label}
	case token.KwContinue:
		p.advance()
		label := ""
		if p.check(token.Ident) {
			label = p.advance().Text
		}
		p.expect(token.Semicolon)
		return &ast.ContinueStmt{StmtBase: ast.StmtBase{At: t.Loc}, Label: label}
	case token.KwGoto:
		p.advance()
		label := p.expect(token.Ident).Text
		p.expect(token.Semicolon)
		return &ast.GotoStmt{StmtBase: ast.StmtBase{At: t.Loc}, Label: label}
	case token.KwUnsafe:
		p.advance()
		body := p.parseCompound()
		return &ast.UnsafeStmt{StmtBase: ast.StmtBase{At: t.Loc}, Body: body}
	case token.KwStaticAssert:
		p.advance()
		p.expect(token.LParen)
		cond := p.parseExpr()
		msg := ""
		if p.match(token.Comma) {
			msg = p.expect(token.StringLit).Text
		}
		p.expect(token.RParen)
		p.expect(token.Semicolon)
		return &ast.StaticAssertStmt{StmtBase: ast.StmtBase{At: t.Loc}, Cond: cond, Message: msg}
	case token.KwDefer, token.KwErrdefer:
		p.advance()
		inner := p.parseStmt()
		return &ast.DeferStmt{StmtBase: ast.StmtBase{At: t.Loc}, Inner: inner, IsErrDefer: t.Kind == token.KwErrdefer}
	case token.KwMatch:
		return p.parseMatch()
	case token.KwAsm:
		return p.parseAsm()
	case token.Ident:
		if p.peekAt(1).Kind == token.Colon {
			name := p.advance().Text
			p.advance() // ':'
			inner := p.parseStmt()
			return &ast.LabelStmt{StmtBase: ast.StmtBase{At: t.Loc}, Name: name, Stmt: inner}
		}
	}

	if p.looksLikeVarDeclAhead() {
		return p.parseVarDecl()
	}

	e := p.parseExpr()
	p.expect(token.Semicolon)
	return &ast.ExprStmt{StmtBase: ast.StmtBase{At: t.Loc}, Expr: e}
}

func (p *Parser) parseCompound() *ast.CompoundStmt {
	loc := p.expect(token.LBrace).Loc
	cs := &ast.CompoundStmt{StmtBase: ast.StmtBase{At: loc}}
	for !p.check(token.RBrace) && !p.check(token.Eof) {
		before := p.pos
		cs.Stmts = append(cs.Stmts, p.parseStmt())
		if p.pos == before {
			p.advance()
		}
	}
	p.expect(token.RBrace)
	return cs
}

func (p *Parser) parseIf() ast.Stmt {
	loc := p.advance().Loc // 'if'
	isConst := p.match(token.KwConst)
	p.expect(token.LParen)
	cond := p.parseExpr()
	p.expect(token.RParen)
	then := p.parseStmt()
	var els ast.Stmt
	if p.match(token.KwElse) {
		els = p.parseStmt()
	}
	if isConst {
		return &ast.IfConstStmt{StmtBase: ast.StmtBase{At: loc}, Cond: cond, Then: then, Else: els}
	}
	return &ast.IfStmt{StmtBase: ast.StmtBase{At: loc}, Cond: cond, Then: then, Else: els}
}

func (p *Parser) parseWhile() ast.Stmt {
	loc := p.advance().Loc
	p.expect(token.LParen)
	cond := p.parseExpr()
	p.expect(token.RParen)
	body := p.parseStmt()
	return &ast.WhileStmt{StmtBase: ast.StmtBase{At: loc}, Cond: cond, Body: body}
}

func (p *Parser) parseDoWhile() ast.Stmt {
	loc := p.advance().Loc
	body := p.parseStmt()
	p.expect(token.KwWhile)
	p.expect(token.LParen)
	cond := p.parseExpr()
	p.expect(token.RParen)
	p.expect(token.Semicolon)
	return &ast.DoWhileStmt{StmtBase: ast.StmtBase{At: loc}, Body: body, Cond: cond}
}

func (p *Parser) parseFor() ast.Stmt {
	loc := p.advance().Loc
	p.expect(token.LParen)
	var init ast.Stmt
	if !p.check(token.Semicolon) {
		if p.looksLikeVarDeclAhead() {
			init = p.parseVarDecl()
		} else {
			e := p.parseExpr()
			p.expect(token.Semicolon)
			init = &ast.ExprStmt{StmtBase: ast.StmtBase{At: loc}, Expr: e}
		}
	} else {
		p.advance()
	}
	var cond ast.Expr
	if !p.check(token.Semicolon) {
		cond = p.parseExpr()
	}
	p.expect(token.Semicolon)
	var post ast.Expr
	if !p.check(token.RParen) {
		post = p.parseExpr()
	}
	p.expect(token.RParen)
	body := p.parseStmt()
	return &ast.ForStmt{StmtBase: ast.StmtBase{At: loc}, Init: init, Cond: cond, Post: post, Body: body}
}

// looksLikeVarDeclAhead speculatively checks whether the statement position
// begins a local variable declaration (a type followed by an identifier),
// as opposed to an expression statement.
func (p *Parser) looksLikeVarDeclAhead() bool {
	switch p.cur().Kind {
	case token.KwConst, token.KwStatic:
		return true
	}
	if !p.startsType() {
		return false
	}
	save := p.pos
	defer func() { p.pos = save }()
	// Skip a plausible type, then require an identifier before '=' / ';' / '['.
	p.parseTypeQuietly()
	return p.check(token.Ident)
}

// parseTypeQuietly advances the cursor past a type without constructing an
// AST node or emitting diagnostics, used only by the var-decl lookahead.
func (p *Parser) parseTypeQuietly() {
	saved := p.d
	p.d = discardEngine()
	defer func() { p.d = saved }()
	p.parseType()
}

func (p *Parser) parseVarDecl() ast.Stmt {
	loc := p.loc()
	isConst := p.match(token.KwConst)
	isStatic := p.match(token.KwStatic)
	if !isConst {
		isConst = p.match(token.KwConst)
	}
	declaredType := p.parseType()
	name := p.expect(token.Ident).Text
	var init ast.Expr
	if p.match(token.Eq) {
		init = p.parseAssignment()
	}
	p.expect(token.Semicolon)
	return &ast.VarDeclStmt{
		StmtBase: ast.StmtBase{At: loc}, Name: name, DeclaredType: declaredType,
		Init: init, IsConst: isConst, IsStatic: isStatic,
	}
}

func (p *Parser) parseMatch() ast.Stmt {
	loc := p.advance().Loc
	p.expect(token.LParen)
	subject := p.parseExpr()
	p.expect(token.RParen)
	p.expect(token.LBrace)
	var arms []ast.MatchArm
	for !p.check(token.RBrace) && !p.check(token.Eof) {
		arms = append(arms, p.parseMatchArm())
	}
	p.expect(token.RBrace)
	return &ast.MatchStmt{StmtBase: ast.StmtBase{At: loc}, Subject: subject, Arms: arms}
}

func (p *Parser) parseMatchArm() ast.MatchArm {
	var patterns []ast.MatchPattern
	if p.match(token.KwDefault) {
		patterns = append(patterns, ast.MatchPattern{Kind: ast.PatternWildcard})
	} else {
		p.expect(token.KwCase)
		for {
			patterns = append(patterns, p.parseMatchPattern())
			if !p.match(token.Comma) {
				break
			}
		}
	}
	p.expect(token.Colon)
	body := p.parseStmt()
	return ast.MatchArm{Patterns: patterns, Body: body}
}

func (p *Parser) parseMatchPattern() ast.MatchPattern {
	t := p.cur()
	switch {
	case t.Kind == token.IntLit:
		p.advance()
		lo := t.IntVal
		if p.isRangeDots() {
			hi := p.expect(token.IntLit).IntVal
			return ast.MatchPattern{Kind: ast.PatternRange, RangeLo: lo, RangeHi: hi}
		}
		return ast.MatchPattern{Kind: ast.PatternInt, IntValue: lo}
	case t.Kind == token.CharLit:
		p.advance()
		return ast.MatchPattern{Kind: ast.PatternChar, IntValue: t.IntVal}
	case t.Kind == token.Dot:
		p.advance()
		name := p.expect(token.Ident).Text
		bind := ""
		if p.match(token.LParen) {
			bind = p.expect(token.Ident).Text
			p.expect(token.RParen)
		}
		return ast.MatchPattern{Kind: ast.PatternTaggedVariant, Name: name, Bind: bind}
	case t.Kind == token.Ident:
		p.advance()
		bind := ""
		if p.match(token.LParen) {
			bind = p.expect(token.Ident).Text
			p.expect(token.RParen)
		}
		return ast.MatchPattern{Kind: ast.PatternEnumIdent, Name: t.Text, Bind: bind}
	default:
		p.d.Error(t.Loc, "expected a match pattern, found %s", t.Kind)
		p.advance()
		return ast.MatchPattern{Kind: ast.PatternWildcard}
	}
}

// isRangeDots consumes the `..` separator of a match-pattern integer range,
// accepting either two adjacent Dot tokens (the common case, since the
// lexer does not fold a '.' that directly follows another '.' into a
// numeric literal) or a single DotDotDot token.
func (p *Parser) isRangeDots() bool {
	if p.check(token.DotDotDot) {
		p.advance()
		return true
	}
	if p.check(token.Dot) && p.peekAt(1).Kind == token.Dot {
		p.advance()
		p.advance()
		return true
	}
	return false
}

// parseAsm parses an inline-asm statement: `asm("text");`. SafeC keeps its
// payload opaque — Sema only checks the enclosing unsafe boundary.
func (p *Parser) parseAsm() ast.Stmt {
	loc := p.advance().Loc
	p.expect(token.LParen)
	var parts []string
	for !p.check(token.RParen) && !p.check(token.Eof) {
		parts = append(parts, p.advance().Text)
	}
	p.expect(token.RParen)
	p.expect(token.Semicolon)
	return &ast.AsmStmt{StmtBase: ast.StmtBase{At: loc}, Text: strings.Join(parts, " ")}
}
