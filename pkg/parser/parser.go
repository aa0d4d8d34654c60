// Package parser implements SafeC's top-down recursive-descent parser
// (spec.md §4.5): token stream in, *ast.TranslationUnit out. Its shape
// mirrors go-corset's pkg/corset/parser — a cursor over a pre-lexed token
// slice, an `expect` helper that emits a diagnostic and returns a synthetic
// token rather than panicking, and a syncToDecl error-recovery hook that
// lets one run report every independent syntax error it finds.
package parser

import (
	"github.com/safec-org/safec/pkg/ast"
	"github.com/safec-org/safec/pkg/diag"
	"github.com/safec-org/safec/pkg/source"
	"github.com/safec-org/safec/pkg/token"
)

// Parser consumes a token slice (normally the output of pkg/lexer) and
// builds a TranslationUnit.
type Parser struct {
	file string
	toks []token.Token
	pos  int
	d    *diag.Engine
}

// New constructs a Parser over a complete token stream (Eof-terminated).
func New(file string, toks []token.Token, d *diag.Engine) *Parser {
	return &Parser{file: file, toks: toks, d: d}
}

// Parse consumes the entire token stream and returns the resulting
// TranslationUnit. Parsing never aborts early: every top-level error is
// reported and the parser resynchronises to the next declaration start.
func (p *Parser) Parse() *ast.TranslationUnit {
	tu := &ast.TranslationUnit{FileName: p.file}
	for !p.check(token.Eof) {
		before := p.pos
		d := p.parseTopLevelDecl()
		if d != nil {
			tu.Decls = append(tu.Decls, d)
		}
		if p.pos == before {
			// parseTopLevelDecl made no progress; force one token forward to
			// guarantee termination, then resynchronise.
			p.advance()
			p.syncToDecl()
		}
	}
	return tu
}

func (p *Parser) cur() token.Token {
	if p.pos < len(p.toks) {
		return p.toks[p.pos]
	}
	return token.Token{Kind: token.Eof}
}

func (p *Parser) peekAt(off int) token.Token {
	i := p.pos + off
	if i < len(p.toks) {
		return p.toks[i]
	}
	return token.Token{Kind: token.Eof}
}

func (p *Parser) advance() token.Token {
	t := p.cur()
	if p.pos < len(p.toks) {
		p.pos++
	}
	return t
}

func (p *Parser) check(k token.Kind) bool { return p.cur().Kind == k }

func (p *Parser) match(k token.Kind) bool {
	if p.check(k) {
		p.advance()
		return true
	}
	return false
}

// expect consumes a token of kind k, or emits a diagnostic and returns a
// synthetic token of that kind without advancing, so parsing can continue
// and report further independent errors (spec.md §4.5).
func (p *Parser) expect(k token.Kind) token.Token {
	if p.check(k) {
		return p.advance()
	}
	t := p.cur()
	p.d.Error(t.Loc, "expected %s, found %s", k, t.Kind)
	return token.Token{Kind: k, Loc: t.Loc}
}

func (p *Parser) loc() source.Location { return p.cur().Loc }

// declStartKinds is the set of token kinds that begin a top-level
// declaration, used by syncToDecl to resynchronise after a parse error
// (spec.md §4.5).
var declStartKinds = map[token.Kind]bool{
	token.KwExtern: true, token.KwStatic: true, token.KwInline: true,
	token.KwConst: true, token.KwConsteval: true, token.KwTypedef: true,
	token.KwStruct: true, token.KwUnion: true, token.KwEnum: true,
	token.KwRegion: true, token.KwGeneric: true, token.KwStaticAssert: true,
	token.KwPacked: true, token.KwMustUse: true,
	token.KwVoid: true, token.KwBool: true, token.KwChar: true, token.KwInt: true,
	token.KwShort: true, token.KwLong: true, token.KwFloat: true, token.KwDouble: true,
	token.KwSigned: true, token.KwUnsigned: true, token.Ident: true,
}

// syncToDecl discards tokens until one starts a new top-level declaration
// or a semicolon is consumed, so a single malformed declaration does not
// cascade into every subsequent one.
func (p *Parser) syncToDecl() {
	for !p.check(token.Eof) {
		if p.cur().Kind == token.Semicolon {
			p.advance()
			return
		}
		if declStartKinds[p.cur().Kind] {
			return
		}
		p.advance()
	}
}
