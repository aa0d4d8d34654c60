package parser

import (
	"github.com/safec-org/safec/pkg/ast"
	"github.com/safec-org/safec/pkg/source"
	"github.com/safec-org/safec/pkg/token"
)

// parseExpr parses one assignment-level expression. Comma-separated lists
// (call arguments, for-post, tuple literals) are parsed directly by their
// callers rather than through a comma-operator production.
func (p *Parser) parseExpr() ast.Expr {
	return p.parseAssignment()
}

var assignOps = map[token.Kind]ast.AssignOp{
	token.Eq: ast.AssignPlain, token.PlusEq: ast.AssignAdd, token.MinusEq: ast.AssignSub,
	token.StarEq: ast.AssignMul, token.SlashEq: ast.AssignDiv, token.PercentEq: ast.AssignMod,
	token.AmpEq: ast.AssignAnd, token.PipeEq: ast.AssignOr, token.CaretEq: ast.AssignXor,
	token.LShiftEq: ast.AssignShl, token.RShiftEq: ast.AssignShr,
}

// parseAssignment is right-associative: `a = b = c` parses as `a = (b = c)`.
func (p *Parser) parseAssignment() ast.Expr {
	left := p.parseTernary()
	if op, ok := assignOps[p.cur().Kind]; ok {
		loc := p.cur().Loc
		p.advance()
		right := p.parseAssignment()
		return &ast.AssignExpr{ExprBase: ast.ExprBase{At: loc}, Op: op, Target: left, Value: right}
	}
	return left
}

func (p *Parser) parseTernary() ast.Expr {
	cond := p.parseLogicalOr()
	if p.check(token.Question) {
		loc := p.cur().Loc
		p.advance()
		then := p.parseAssignment()
		p.expect(token.Colon)
		els := p.parseTernary()
		return &ast.TernaryExpr{ExprBase: ast.ExprBase{At: loc}, Cond: cond, Then: then, Else: els}
	}
	return cond
}

type binLevel struct {
	ops  map[token.Kind]ast.BinaryOp
	next func(*Parser) ast.Expr
}

func (p *Parser) parseLogicalOr() ast.Expr {
	return p.parseBinaryLevel(p.parseLogicalAnd, map[token.Kind]ast.BinaryOp{token.PipePipe: ast.BinLogOr})
}
func (p *Parser) parseLogicalAnd() ast.Expr {
	return p.parseBinaryLevel(p.parseBitOr, map[token.Kind]ast.BinaryOp{token.AmpAmp: ast.BinLogAnd})
}
func (p *Parser) parseBitOr() ast.Expr {
	return p.parseBinaryLevel(p.parseBitXor, map[token.Kind]ast.BinaryOp{token.Pipe: ast.BinBitOr})
}
func (p *Parser) parseBitXor() ast.Expr {
	return p.parseBinaryLevel(p.parseBitAnd, map[token.Kind]ast.BinaryOp{token.Caret: ast.BinBitXor})
}
func (p *Parser) parseBitAnd() ast.Expr {
	return p.parseBinaryLevel(p.parseEquality, map[token.Kind]ast.BinaryOp{token.Amp: ast.BinBitAnd})
}
func (p *Parser) parseEquality() ast.Expr {
	return p.parseBinaryLevel(p.parseRelational, map[token.Kind]ast.BinaryOp{
		token.EqEq: ast.BinEq, token.BangEq: ast.BinNe,
	})
}
func (p *Parser) parseRelational() ast.Expr {
	return p.parseBinaryLevel(p.parseShift, map[token.Kind]ast.BinaryOp{
		token.Lt: ast.BinLt, token.Gt: ast.BinGt, token.LtEq: ast.BinLe, token.GtEq: ast.BinGe,
	})
}
func (p *Parser) parseShift() ast.Expr {
	return p.parseBinaryLevel(p.parseAdditive, map[token.Kind]ast.BinaryOp{
		token.LShift: ast.BinShl, token.RShift: ast.BinShr,
	})
}
func (p *Parser) parseAdditive() ast.Expr {
	return p.parseBinaryLevel(p.parseMultiplicative, map[token.Kind]ast.BinaryOp{
		token.Plus: ast.BinAdd, token.Minus: ast.BinSub,
	})
}
func (p *Parser) parseMultiplicative() ast.Expr {
	return p.parseBinaryLevel(p.parseCast, map[token.Kind]ast.BinaryOp{
		token.Star: ast.BinMul, token.Slash: ast.BinDiv, token.Percent: ast.BinMod,
	})
}

func (p *Parser) parseBinaryLevel(next func() ast.Expr, ops map[token.Kind]ast.BinaryOp) ast.Expr {
	left := next()
	for {
		op, ok := ops[p.cur().Kind]
		if !ok {
			return left
		}
		loc := p.cur().Loc
		p.advance()
		right := next()
		left = &ast.BinaryExpr{ExprBase: ast.ExprBase{At: loc}, Op: op, Left: left, Right: right}
	}
}

// parseCast disambiguates `(Type)expr` from a parenthesised expression by
// speculatively scanning forward: if the tokens after `(` start a type and
// the matching `)` is followed by something that can start an expression,
// it is a cast (spec.md §4.5).
func (p *Parser) parseCast() ast.Expr {
	if p.check(token.LParen) && p.looksLikeCastAhead() {
		loc := p.cur().Loc
		p.advance()
		target := p.parseType()
		p.expect(token.RParen)
		operand := p.parseCast()
		return &ast.CastExpr{ExprBase: ast.ExprBase{At: loc}, Target: target, Operand: operand}
	}
	return p.parseUnary()
}

// looksLikeCastAhead performs the speculative backtrack: save position,
// attempt to consume `( Type )`, check whether an expression-starter
// follows, then always rewind (parseCast re-parses for real on success so
// AST construction only happens once).
func (p *Parser) looksLikeCastAhead() bool {
	save := p.pos
	defer func() { p.pos = save }()

	p.advance() // '('
	if !p.startsType() {
		return false
	}
	// Consume a type speculatively; parse errors during the speculative
	// attempt are swallowed by discarding the diagnostics engine's view —
	// instead we only inspect token shape, never call parseType here, to
	// avoid emitting spurious diagnostics on a failed speculative parse.
	depth := 1
	for depth > 0 {
		switch p.cur().Kind {
		case token.Eof:
			return false
		case token.LParen:
			depth++
		case token.RParen:
			depth--
		}
		if depth == 0 {
			break
		}
		p.advance()
	}
	// p.cur() is now the matching ')'.
	p.advance()
	return p.startsExprStarter()
}

func (p *Parser) startsExprStarter() bool {
	switch p.cur().Kind {
	case token.LParen, token.Ident, token.IntLit, token.FloatLit, token.StringLit, token.CharLit,
		token.KwTrue, token.KwFalse, token.KwNull, token.Minus, token.Bang, token.Tilde, token.Star,
		token.Amp, token.PlusPlus, token.MinusMinus, token.KwSizeof, token.KwAlignof, token.KwFieldcount,
		token.KwNew, token.KwArenaReset, token.KwSpawn, token.KwJoin, token.KwSelf, token.KwTry,
		token.LBrace:
		return true
	default:
		return false
	}
}

var unaryPrefixOps = map[token.Kind]ast.UnaryOp{
	token.Bang: ast.UnaryNot, token.Tilde: ast.UnaryBitNot, token.Minus: ast.UnaryNeg,
}

func (p *Parser) parseUnary() ast.Expr {
	t := p.cur()
	switch t.Kind {
	case token.Bang, token.Tilde, token.Minus:
		p.advance()
		operand := p.parseCast()
		return &ast.UnaryExpr{ExprBase: ast.ExprBase{At: t.Loc}, Op: unaryPrefixOps[t.Kind], Operand: operand}
	case token.Plus:
		p.advance()
		return p.parseCast()
	case token.PlusPlus:
		p.advance()
		return &ast.UnaryExpr{ExprBase: ast.ExprBase{At: t.Loc}, Op: ast.UnaryPreInc, Operand: p.parseUnary()}
	case token.MinusMinus:
		p.advance()
		return &ast.UnaryExpr{ExprBase: ast.ExprBase{At: t.Loc}, Op: ast.UnaryPreDec, Operand: p.parseUnary()}
	case token.Amp:
		p.advance()
		return &ast.AddrOfExpr{ExprBase: ast.ExprBase{At: t.Loc}, Operand: p.parseCast()}
	case token.Star:
		p.advance()
		return &ast.DerefExpr{ExprBase: ast.ExprBase{At: t.Loc}, Operand: p.parseCast()}
	case token.KwSizeof:
		p.advance()
		return p.parseSizeofTail(t.Loc)
	case token.KwAlignof:
		p.advance()
		p.expect(token.LParen)
		target := p.parseType()
		p.expect(token.RParen)
		return &ast.AlignofExpr{ExprBase: ast.ExprBase{At: t.Loc}, Target: target}
	case token.KwFieldcount:
		p.advance()
		p.expect(token.LParen)
		target := p.parseType()
		p.expect(token.RParen)
		return &ast.FieldcountExpr{ExprBase: ast.ExprBase{At: t.Loc}, Target: target}
	case token.KwTry:
		p.advance()
		return &ast.TryExpr{ExprBase: ast.ExprBase{At: t.Loc}, Operand: p.parseUnary()}
	default:
		return p.parsePostfix()
	}
}

// parseSizeofTail handles both `sizeof(Type)` and `sizeof expr` /
// `sizeof(expr)` — if the parenthesised content parses as a type, it is
// sizeof-type; otherwise sizeof-expr (spec.md §4.5).
func (p *Parser) parseSizeofTail(loc source.Location) ast.Expr {
	if p.check(token.LParen) && p.looksLikeCastAhead() {
		p.advance()
		target := p.parseType()
		p.expect(token.RParen)
		return &ast.SizeofTypeExpr{ExprBase: ast.ExprBase{At: loc}, Target: target}
	}
	operand := p.parseUnary()
	return &ast.SizeofExprExpr{ExprBase: ast.ExprBase{At: loc}, Operand: operand}
}

func (p *Parser) parsePostfix() ast.Expr {
	e := p.parsePrimary()
	for {
		t := p.cur()
		switch t.Kind {
		case token.LBracket:
			p.advance()
			idx := p.parseExpr()
			p.expect(token.RBracket)
			e = &ast.SubscriptExpr{ExprBase: ast.ExprBase{At: t.Loc}, Base: e, Index: idx}
		case token.LParen:
			p.advance()
			var args []ast.Expr
			for !p.check(token.RParen) && !p.check(token.Eof) {
				args = append(args, p.parseAssignment())
				if !p.match(token.Comma) {
					break
				}
			}
			p.expect(token.RParen)
			e = &ast.CallExpr{ExprBase: ast.ExprBase{At: t.Loc}, Callee: e, Args: args}
		case token.Dot:
			p.advance()
			if p.check(token.IntLit) {
				// Tuple field access t.N.
				idx := p.advance()
				e = &ast.MemberExpr{ExprBase: ast.ExprBase{At: t.Loc}, Base: e, Field: idx.Text, Arrow: false}
				continue
			}
			name := p.expect(token.Ident).Text
			e = &ast.MemberExpr{ExprBase: ast.ExprBase{At: t.Loc}, Base: e, Field: name, Arrow: false}
		case token.Arrow:
			p.advance()
			name := p.expect(token.Ident).Text
			e = &ast.MemberExpr{ExprBase: ast.ExprBase{At: t.Loc}, Base: e, Field: name, Arrow: true}
		case token.PlusPlus:
			p.advance()
			e = &ast.UnaryExpr{ExprBase: ast.ExprBase{At: t.Loc}, Op: ast.UnaryPostInc, Operand: e}
		case token.MinusMinus:
			p.advance()
			e = &ast.UnaryExpr{ExprBase: ast.ExprBase{At: t.Loc}, Op: ast.UnaryPostDec, Operand: e}
		default:
			return e
		}
	}
}

func (p *Parser) parsePrimary() ast.Expr {
	t := p.cur()
	switch t.Kind {
	case token.IntLit:
		p.advance()
		return &ast.IntLitExpr{ExprBase: ast.ExprBase{At: t.Loc}, Value: t.IntVal, IsUnsigned: t.IsUnsigned, IsLongLong: t.IsLongLong}
	case token.FloatLit:
		p.advance()
		return &ast.FloatLitExpr{ExprBase: ast.ExprBase{At: t.Loc}, Value: t.FloatVal}
	case token.StringLit:
		p.advance()
		return &ast.StringLitExpr{ExprBase: ast.ExprBase{At: t.Loc}, Value: t.Text}
	case token.CharLit:
		p.advance()
		return &ast.CharLitExpr{ExprBase: ast.ExprBase{At: t.Loc}, Value: t.IntVal}
	case token.KwTrue:
		p.advance()
		return &ast.BoolLitExpr{ExprBase: ast.ExprBase{At: t.Loc}, Value: true}
	case token.KwFalse:
		p.advance()
		return &ast.BoolLitExpr{ExprBase: ast.ExprBase{At: t.Loc}, Value: false}
	case token.KwNull:
		p.advance()
		return &ast.NullLitExpr{ExprBase: ast.ExprBase{At: t.Loc}}
	case token.KwSelf:
		p.advance()
		return &ast.SelfExpr{ExprBase: ast.ExprBase{At: t.Loc}}
	case token.KwNew:
		p.advance()
		region := ""
		if p.match(token.Lt) {
			region = p.expect(token.Ident).Text
			p.expect(token.Gt)
		}
		target := p.parseType()
		return &ast.NewExpr{ExprBase: ast.ExprBase{At: t.Loc}, RegionName: region, Target: target}
	case token.KwArenaReset:
		p.advance()
		region := ""
		if p.match(token.Lt) {
			region = p.expect(token.Ident).Text
			p.expect(token.Gt)
		}
		p.expect(token.LParen)
		p.expect(token.RParen)
		return &ast.ArenaResetExpr{ExprBase: ast.ExprBase{At: t.Loc}, RegionName: region}
	case token.KwSpawn:
		p.advance()
		p.expect(token.LParen)
		fn := p.parseAssignment()
		p.expect(token.Comma)
		arg := p.parseAssignment()
		p.expect(token.RParen)
		return &ast.SpawnExpr{ExprBase: ast.ExprBase{At: t.Loc}, Fn: fn, Arg: arg}
	case token.KwJoin:
		p.advance()
		p.expect(token.LParen)
		h := p.parseAssignment()
		p.expect(token.RParen)
		return &ast.JoinExpr{ExprBase: ast.ExprBase{At: t.Loc}, Handle: h}
	case token.LBrace:
		p.advance()
		var elems []ast.Expr
		for !p.check(token.RBrace) && !p.check(token.Eof) {
			elems = append(elems, p.parseAssignment())
			if !p.match(token.Comma) {
				break
			}
		}
		p.expect(token.RBrace)
		return &ast.CompoundInitExpr{ExprBase: ast.ExprBase{At: t.Loc}, Elements: elems}
	case token.LParen:
		p.advance()
		first := p.parseAssignment()
		if p.check(token.Comma) {
			elems := []ast.Expr{first}
			for p.match(token.Comma) {
				elems = append(elems, p.parseAssignment())
			}
			p.expect(token.RParen)
			return &ast.TupleLitExpr{ExprBase: ast.ExprBase{At: t.Loc}, Elements: elems}
		}
		p.expect(token.RParen)
		return first
	case token.Ident:
		p.advance()
		return &ast.IdentExpr{ExprBase: ast.ExprBase{At: t.Loc}, Name: t.Text}
	default:
		if token.IsContextual(t.Kind) {
			p.advance()
			return &ast.IdentExpr{ExprBase: ast.ExprBase{At: t.Loc}, Name: t.Text}
		}
		p.d.Error(t.Loc, "expected expression, found %s", t.Kind)
		p.advance()
		return &ast.IntLitExpr{ExprBase: ast.ExprBase{At: t.Loc}, Value: 0}
	}
}
