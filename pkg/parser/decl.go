package parser

import (
	"github.com/safec-org/safec/pkg/ast"
	"github.com/safec-org/safec/pkg/diag"
	"github.com/safec-org/safec/pkg/source"
	"github.com/safec-org/safec/pkg/token"
	"github.com/safec-org/safec/pkg/types"
)

// discardEngine returns a diagnostics sink used only during speculative,
// non-committing lookahead, so a failed guess never surfaces a diagnostic.
func discardEngine() *diag.Engine { return diag.NewEngine() }

// modifiers collects the flag-like prefixes that may precede any top-level
// declaration (spec.md §4.5).
type modifiers struct {
	isConst, isConsteval, isInline, isExtern, isStatic, isMustUse, isPacked bool
	generics                                                               []ast.GenericParam
}

func (p *Parser) parseModifiers() modifiers {
	var m modifiers
	for {
		switch p.cur().Kind {
		case token.KwConst:
			m.isConst = true
			p.advance()
		case token.KwConsteval:
			m.isConsteval = true
			p.advance()
		case token.KwInline:
			m.isInline = true
			p.advance()
		case token.KwExtern:
			m.isExtern = true
			p.advance()
		case token.KwStatic:
			m.isStatic = true
			p.advance()
		case token.KwMustUse:
			m.isMustUse = true
			p.advance()
		case token.KwPacked:
			m.isPacked = true
			p.advance()
		case token.KwGeneric:
			p.advance()
			p.expect(token.Lt)
			for !p.check(token.Gt) && !p.check(token.Eof) {
				name := p.expect(token.Ident).Text
				constraint := ""
				if p.match(token.Colon) {
					constraint = p.expect(token.Ident).Text
				}
				m.generics = append(m.generics, ast.GenericParam{Name: name, Constraint: constraint})
				if !p.match(token.Comma) {
					break
				}
			}
			p.expect(token.Gt)
		default:
			return m
		}
	}
}

// parseTopLevelDecl parses one top-level declaration per spec.md §4.5.
func (p *Parser) parseTopLevelDecl() ast.Decl {
	loc := p.loc()
	mods := p.parseModifiers()

	switch p.cur().Kind {
	case token.KwStruct, token.KwUnion:
		return p.parseStructDecl(loc, mods)
	case token.KwEnum:
		return p.parseEnumDecl(loc)
	case token.KwRegion:
		return p.parseRegionDecl(loc)
	case token.KwTypedef:
		return p.parseTypedefDecl(loc)
	case token.KwStaticAssert:
		return p.parseStaticAssertDecl(loc)
	}

	if !p.startsType() && p.cur().Kind != token.Ident {
		t := p.cur()
		p.d.Error(t.Loc, "expected a top-level declaration, found %s", t.Kind)
		return nil
	}

	returnType := p.parseType()

	owner := ""
	name := p.expect(token.Ident).Text
	if p.match(token.ColonColon) {
		owner = name
		if p.check(token.KwOperator) {
			p.advance()
			opText := p.advance().Text
			name = "operator" + opText
		} else {
			name = p.expect(token.Ident).Text
		}
	}

	if p.check(token.LParen) {
		return p.parseFunctionTail(loc, mods, returnType, owner, name)
	}

	var init ast.Expr
	if p.match(token.Eq) {
		init = p.parseAssignment()
	}
	p.expect(token.Semicolon)
	return &ast.GlobalVarDecl{
		DeclBase: ast.DeclBase{At: loc}, Name: name, DeclaredType: returnType,
		Init: init, IsConst: mods.isConst, IsStatic: mods.isStatic,
	}
}

func (p *Parser) parseFunctionTail(loc source.Location, mods modifiers, returnType types.Type, owner, name string) ast.Decl {
	p.expect(token.LParen)
	var params []*ast.Param
	variadic := false
	for !p.check(token.RParen) && !p.check(token.Eof) {
		if p.match(token.DotDotDot) {
			variadic = true
			break
		}
		pt := p.parseType()
		pname := ""
		if p.check(token.Ident) {
			pname = p.advance().Text
		}
		params = append(params, &ast.Param{Name: pname, Type: pt})
		if !p.match(token.Comma) {
			break
		}
	}
	p.expect(token.RParen)
	isConst := p.match(token.KwConst)
	if isConst {
		mods.isConst = true
	}

	fn := &ast.FunctionDecl{
		DeclBase: ast.DeclBase{At: loc}, Name: name, ReturnType: returnType, Params: params,
		GenericParams: mods.generics, MethodOwner: owner,
		IsInline: mods.isInline, IsExtern: mods.isExtern, IsConst: mods.isConst,
		IsConsteval: mods.isConsteval, IsMustUse: mods.isMustUse, IsVariadic: variadic,
		IsStatic: mods.isStatic,
	}
	if p.check(token.LBrace) {
		fn.Body = p.parseCompound()
	} else {
		p.expect(token.Semicolon)
	}
	return fn
}

func (p *Parser) parseStructDecl(loc source.Location, mods modifiers) ast.Decl {
	isUnion := p.cur().Kind == token.KwUnion
	p.advance()
	isTagged := false
	if p.matchContextual("tagged") {
		isTagged = true
	}
	name := p.expect(token.Ident).Text
	p.expect(token.LBrace)
	sd := &ast.StructDecl{
		DeclBase: ast.DeclBase{At: loc}, Name: name, IsUnion: isUnion,
		IsPacked: mods.isPacked, IsTaggedUnion: isTagged,
	}
	for !p.check(token.RBrace) && !p.check(token.Eof) {
		fieldType := p.parseType()
		fieldName := p.expect(token.Ident).Text
		p.expect(token.Semicolon)
		sd.Fields = append(sd.Fields, ast.FieldDecl{Name: fieldName, Type: fieldType})
	}
	p.expect(token.RBrace)
	p.match(token.Semicolon)
	return sd
}

func (p *Parser) parseEnumDecl(loc source.Location) ast.Decl {
	p.advance()
	name := p.expect(token.Ident).Text
	p.expect(token.LBrace)
	ed := &ast.EnumDecl{DeclBase: ast.DeclBase{At: loc}, Name: name}
	for !p.check(token.RBrace) && !p.check(token.Eof) {
		ename := p.expect(token.Ident).Text
		var val ast.Expr
		hasExplicit := false
		if p.match(token.Eq) {
			val = p.parseAssignment()
			hasExplicit = true
		}
		ed.Enumerators = append(ed.Enumerators, ast.EnumeratorDecl{Name: ename, Value: val, HasExplicit: hasExplicit})
		if !p.match(token.Comma) {
			break
		}
	}
	p.expect(token.RBrace)
	p.match(token.Semicolon)
	return ed
}

func (p *Parser) parseRegionDecl(loc source.Location) ast.Decl {
	p.advance()
	name := p.expect(token.Ident).Text
	p.expect(token.LBrace)
	if !p.matchContextual("capacity") {
		p.expect(token.KwCapacity)
	}
	p.expect(token.Colon)
	capacity := p.expect(token.IntLit).IntVal
	p.match(token.Comma)
	p.expect(token.RBrace)
	p.match(token.Semicolon)
	return &ast.RegionDecl{DeclBase: ast.DeclBase{At: loc}, Name: name, Capacity: capacity}
}

func (p *Parser) parseTypedefDecl(loc source.Location) ast.Decl {
	p.advance()
	target := p.parseType()
	name := p.expect(token.Ident).Text
	p.expect(token.Semicolon)
	return &ast.TypedefDecl{DeclBase: ast.DeclBase{At: loc}, Name: name, Target: target}
}

func (p *Parser) parseStaticAssertDecl(loc source.Location) ast.Decl {
	p.advance()
	p.expect(token.LParen)
	cond := p.parseExpr()
	msg := ""
	if p.match(token.Comma) {
		msg = p.expect(token.StringLit).Text
	}
	p.expect(token.RParen)
	p.expect(token.Semicolon)
	return &ast.StaticAssertDecl{DeclBase: ast.DeclBase{At: loc}, Cond: cond, Message: msg}
}
