package parser

import (
	"github.com/safec-org/safec/pkg/token"
	"github.com/safec-org/safec/pkg/types"
)

// parseType parses a full type at a declarator head (spec.md §4.5):
// optional `?`/`?&` prefix, optional `&` + region qualifier + const, base
// type, then declarator suffixes (`*`, `[N]`).
func (p *Parser) parseType() types.Type {
	optional := false
	if p.check(token.Question) && p.peekAt(1).Kind != token.Amp {
		p.advance()
		optional = true
	}

	nullableRef := false
	if p.check(token.QuestionAmp) {
		p.advance()
		nullableRef = true
	}

	var t types.Type
	if nullableRef || p.check(token.Amp) {
		if !nullableRef {
			p.advance() // consume '&'
		}
		region, arenaName := p.parseRegionQualifier()
		isConst := p.match(token.KwConst)
		base := p.parseBaseType()
		t = types.NewReference(base, region, nullableRef, !isConst, arenaName)
	} else {
		t = p.parseBaseType()
	}

	t = p.parseDeclaratorSuffixes(t)

	if optional {
		t = types.NewOptional(t)
	}
	return t
}

// parseRegionQualifier consumes the region keyword following `&`: `stack`,
// `heap`, `static`, or `arena<Name>`. A missing qualifier is a parse error
// (spec.md §4.5).
func (p *Parser) parseRegionQualifier() (types.Region, string) {
	switch {
	case p.matchContextual("stack"):
		return types.RegionStack, ""
	case p.matchContextual("heap"):
		return types.RegionHeap, ""
	case p.match(token.KwStatic):
		return types.RegionStatic, ""
	case p.matchContextual("arena"):
		name := ""
		if p.match(token.Lt) {
			name = p.expect(token.Ident).Text
			p.expect(token.Gt)
		}
		return types.RegionArena, name
	default:
		t := p.cur()
		p.d.Error(t.Loc, "expected region qualifier (stack, heap, static, arena<Name>) after '&'")
		return types.RegionUnknown, ""
	}
}

// matchContextual consumes the current token if it is the contextual
// keyword/identifier spelled name (spec.md §4.4), advancing and reporting
// true, or leaves the cursor untouched and reports false.
func (p *Parser) matchContextual(name string) bool {
	if p.cur().IsContextualKeyword(name) {
		p.advance()
		return true
	}
	return false
}

// parseBaseType parses a primitive keyword, aggregate keyword form, or a
// plain identifier naming a typedef/struct/enum.
func (p *Parser) parseBaseType() types.Type {
	t := p.cur()
	switch t.Kind {
	case token.KwVoid:
		p.advance()
		return types.Void()
	case token.KwBool:
		p.advance()
		return types.Bool()
	case token.KwChar:
		p.advance()
		return types.Char()
	case token.KwInt:
		p.advance()
		return types.Int(32, true)
	case token.KwShort:
		p.advance()
		p.match(token.KwInt)
		return types.Int(16, true)
	case token.KwLong:
		p.advance()
		for p.match(token.KwLong) {
		}
		p.match(token.KwInt)
		return types.Int(64, true)
	case token.KwUnsigned:
		p.advance()
		return p.parseUnsignedVariant()
	case token.KwSigned:
		p.advance()
		return p.parseSignedVariant()
	case token.KwFloat:
		p.advance()
		return types.Float(32)
	case token.KwDouble:
		p.advance()
		return types.Float(64)
	case token.KwStruct, token.KwUnion:
		p.advance()
		name := p.expect(token.Ident).Text
		return types.NewStruct(name, t.Kind == token.KwUnion)
	case token.KwEnum:
		p.advance()
		name := p.expect(token.Ident).Text
		return types.NewEnum(name)
	case token.KwTuple:
		p.advance()
		p.expect(token.LParen)
		var elems []types.Type
		for !p.check(token.RParen) && !p.check(token.Eof) {
			elems = append(elems, p.parseType())
			if !p.match(token.Comma) {
				break
			}
		}
		p.expect(token.RParen)
		return types.NewTuple(elems)
	case token.KwFn:
		p.advance()
		ret := p.parseType()
		p.expect(token.LParen)
		var params []types.Type
		variadic := false
		for !p.check(token.RParen) && !p.check(token.Eof) {
			if p.match(token.DotDotDot) {
				variadic = true
				break
			}
			params = append(params, p.parseType())
			if !p.match(token.Comma) {
				break
			}
		}
		p.expect(token.RParen)
		return types.NewFunction(ret, params, variadic)
	case token.KwTypeof:
		p.advance()
		p.expect(token.LParen)
		e := p.parseExpr()
		p.expect(token.RParen)
		return types.NewTypeof(e)
	case token.LBracket:
		p.advance()
		p.expect(token.RBracket)
		elem := p.parseBaseType()
		return types.NewSlice(elem)
	case token.Ident:
		p.advance()
		// An unresolved named type (typedef or forward-referenced struct);
		// Sema resolves identity and nominal equality by name at use sites.
		return types.NewStruct(t.Text, false)
	default:
		p.d.Error(t.Loc, "expected a type, found %s", t.Kind)
		return types.Error()
	}
}

func (p *Parser) parseUnsignedVariant() types.Type {
	switch {
	case p.match(token.KwChar):
		return types.Int(8, false)
	case p.match(token.KwShort):
		p.match(token.KwInt)
		return types.Int(16, false)
	case p.match(token.KwLong):
		for p.match(token.KwLong) {
		}
		p.match(token.KwInt)
		return types.Int(64, false)
	default:
		p.match(token.KwInt)
		return types.Int(32, false)
	}
}

func (p *Parser) parseSignedVariant() types.Type {
	switch {
	case p.match(token.KwChar):
		return types.Int(8, true)
	case p.match(token.KwShort):
		p.match(token.KwInt)
		return types.Int(16, true)
	case p.match(token.KwLong):
		for p.match(token.KwLong) {
		}
		p.match(token.KwInt)
		return types.Int(64, true)
	default:
		p.match(token.KwInt)
		return types.Int(32, true)
	}
}

// parseDeclaratorSuffixes handles trailing `*[const]` (raw pointer, any
// number of times) and `[N]` array suffixes.
func (p *Parser) parseDeclaratorSuffixes(t types.Type) types.Type {
	for {
		switch {
		case p.match(token.Star):
			isConst := p.match(token.KwConst)
			p.match(token.KwRestrict)
			t = types.NewPointer(t, isConst)
		case p.check(token.LBracket):
			p.advance()
			size := int64(-1)
			if p.check(token.IntLit) {
				size = p.advance().IntVal
			}
			p.expect(token.RBracket)
			t = types.NewArray(t, size)
		default:
			return t
		}
	}
}

// startsType reports whether the current token could begin a type, used by
// the cast-vs-parenthesised-expression disambiguation in expr.go.
func (p *Parser) startsType() bool {
	switch p.cur().Kind {
	case token.KwVoid, token.KwBool, token.KwChar, token.KwInt, token.KwShort, token.KwLong,
		token.KwUnsigned, token.KwSigned, token.KwFloat, token.KwDouble,
		token.KwStruct, token.KwUnion, token.KwEnum, token.KwTuple, token.KwFn, token.KwTypeof,
		token.Question, token.QuestionAmp, token.Amp:
		return true
	default:
		return false
	}
}
