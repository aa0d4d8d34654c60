// Package lexer turns preprocessed SafeC source text into a token stream
// (spec.md §4.4). It follows go-corset's pkg/corset/lexer shape: a single
// forward-scanning cursor over a byte slice, producing one token per Next
// call plus a diagnostics sink for malformed literals and unterminated
// comments; Tokenize drains Next into a full token slice.
package lexer

import (
	"strconv"
	"strings"

	"github.com/safec-org/safec/pkg/diag"
	"github.com/safec-org/safec/pkg/source"
	"github.com/safec-org/safec/pkg/token"
)

// Lexer scans one file's worth of preprocessed text into tokens.
type Lexer struct {
	file string
	src  string
	pos  int
	line uint
	col  uint
	d    *diag.Engine
}

// New constructs a Lexer over src, attributing diagnostics and locations to
// file.
func New(file, src string, d *diag.Engine) *Lexer {
	return &Lexer{file: file, src: src, pos: 0, line: 1, col: 1, d: d}
}

// Tokenize scans the entire input and returns its token stream, terminated
// by a single Eof token.
func (l *Lexer) Tokenize() []token.Token {
	var toks []token.Token
	for {
		t := l.Next()
		toks = append(toks, t)
		if t.IsEOF() {
			return toks
		}
	}
}

func (l *Lexer) peek() byte {
	if l.pos >= len(l.src) {
		return 0
	}
	return l.src[l.pos]
}

func (l *Lexer) peekAt(off int) byte {
	if l.pos+off >= len(l.src) {
		return 0
	}
	return l.src[l.pos+off]
}

func (l *Lexer) advance() byte {
	c := l.src[l.pos]
	l.pos++
	if c == '\n' {
		l.line++
		l.col = 1
	} else {
		l.col++
	}
	return c
}

func (l *Lexer) loc() source.Location {
	return source.NewLocation(l.file, l.line, l.col)
}

// Next scans and returns the next token, skipping whitespace and comments.
func (l *Lexer) Next() token.Token {
	l.skipTrivia()
	if l.pos >= len(l.src) {
		return token.Token{Kind: token.Eof, Loc: l.loc()}
	}

	start := l.loc()
	c := l.peek()

	switch {
	case isDigit(c):
		return l.scanNumber(start)
	case c == '.' && isDigit(l.peekAt(1)) && (l.pos == 0 || !(isIdentCont(l.src[l.pos-1]) || strings.IndexByte(".)]", l.src[l.pos-1]) >= 0)):
		return l.scanNumber(start)
	case isIdentStart(c):
		return l.scanIdent(start)
	case c == '"':
		return l.scanString(start)
	case c == '\'':
		return l.scanChar(start)
	default:
		return l.scanOperator(start)
	}
}

func (l *Lexer) skipTrivia() {
	for l.pos < len(l.src) {
		c := l.peek()
		switch {
		case c == ' ' || c == '\t' || c == '\r' || c == '\n':
			l.advance()
		case c == '/' && l.peekAt(1) == '/':
			for l.pos < len(l.src) && l.peek() != '\n' {
				l.advance()
			}
		case c == '/' && l.peekAt(1) == '*':
			start := l.loc()
			l.advance()
			l.advance()
			closed := false
			for l.pos < len(l.src) {
				if l.peek() == '*' && l.peekAt(1) == '/' {
					l.advance()
					l.advance()
					closed = true
					break
				}
				l.advance()
			}
			if !closed {
				l.d.Error(start, "unterminated block comment")
			}
		default:
			return
		}
	}
}

func isDigit(c byte) bool  { return c >= '0' && c <= '9' }
func isHexDig(c byte) bool { return isDigit(c) || (c >= 'a' && c <= 'f') || (c >= 'A' && c <= 'F') }

func isIdentStart(c byte) bool {
	return c == '_' || (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z')
}

func isIdentCont(c byte) bool {
	return isIdentStart(c) || isDigit(c)
}

func (l *Lexer) scanIdent(start source.Location) token.Token {
	begin := l.pos
	for l.pos < len(l.src) && isIdentCont(l.peek()) {
		l.advance()
	}
	text := l.src[begin:l.pos]
	if kind, ok := token.LookupKeyword(text); ok {
		return token.Token{Kind: kind, Text: text, Loc: start}
	}
	return token.Token{Kind: token.Ident, Text: text, Loc: start}
}

// scanNumber handles decimal, hex (0x) and octal (0) integer literals, and
// float literals with optional fractional part, exponent and f/F suffix
// (spec.md §4.4). Integer suffixes u/U, l/L, ll/LL are recorded on the
// token rather than folded into the value.
func (l *Lexer) scanNumber(start source.Location) token.Token {
	begin := l.pos
	isFloat := false

	if l.peek() == '0' && (l.peekAt(1) == 'x' || l.peekAt(1) == 'X') {
		l.advance()
		l.advance()
		for l.pos < len(l.src) && isHexDig(l.peek()) {
			l.advance()
		}
		text := l.src[begin:l.pos]
		val, err := strconv.ParseUint(text[2:], 16, 64)
		if err != nil {
			l.d.Error(start, "malformed hexadecimal literal %q", text)
		}
		isUnsigned, isLongLong := l.scanIntSuffix()
		return token.Token{Kind: token.IntLit, Text: l.src[begin:l.pos], Loc: start,
			IntVal: int64(val), IsUnsigned: isUnsigned, IsLongLong: isLongLong}
	}

	for l.pos < len(l.src) && isDigit(l.peek()) {
		l.advance()
	}
	if l.peek() == '.' && isDigit(l.peekAt(1)) {
		isFloat = true
		l.advance()
		for l.pos < len(l.src) && isDigit(l.peek()) {
			l.advance()
		}
	}
	if l.peek() == 'e' || l.peek() == 'E' {
		save := l.pos
		la, lc := l.line, l.col
		l.advance()
		if l.peek() == '+' || l.peek() == '-' {
			l.advance()
		}
		if isDigit(l.peek()) {
			isFloat = true
			for l.pos < len(l.src) && isDigit(l.peek()) {
				l.advance()
			}
		} else {
			l.pos, l.line, l.col = save, la, lc
		}
	}

	text := l.src[begin:l.pos]

	if isFloat || l.peek() == 'f' || l.peek() == 'F' {
		if l.peek() == 'f' || l.peek() == 'F' {
			l.advance()
		}
		val, err := strconv.ParseFloat(text, 64)
		if err != nil {
			l.d.Error(start, "malformed floating literal %q", text)
		}
		return token.Token{Kind: token.FloatLit, Text: l.src[begin:l.pos], Loc: start, FloatVal: val}
	}

	var val uint64
	var err error
	if len(text) > 1 && text[0] == '0' {
		val, err = strconv.ParseUint(text, 8, 64)
	} else {
		val, err = strconv.ParseUint(text, 10, 64)
	}
	if err != nil {
		l.d.Error(start, "malformed integer literal %q", text)
	}
	isUnsigned, isLongLong := l.scanIntSuffix()
	return token.Token{Kind: token.IntLit, Text: l.src[begin:l.pos], Loc: start,
		IntVal: int64(val), IsUnsigned: isUnsigned, IsLongLong: isLongLong}
}

func (l *Lexer) scanIntSuffix() (isUnsigned, isLongLong bool) {
	for {
		switch l.peek() {
		case 'u', 'U':
			isUnsigned = true
			l.advance()
		case 'l', 'L':
			if (l.peekAt(1) == 'l' || l.peekAt(1) == 'L') {
				isLongLong = true
				l.advance()
				l.advance()
			} else {
				l.advance()
			}
		default:
			return
		}
	}
}

func (l *Lexer) scanString(start source.Location) token.Token {
	l.advance() // opening quote
	var b strings.Builder
	for l.pos < len(l.src) && l.peek() != '"' {
		c := l.advance()
		if c == '\\' && l.pos < len(l.src) {
			b.WriteByte(c)
			b.WriteByte(l.advance())
			continue
		}
		if c == '\n' {
			l.d.Error(start, "unterminated string literal")
			return token.Token{Kind: token.StringLit, Text: b.String(), Loc: start}
		}
		b.WriteByte(c)
	}
	if l.pos >= len(l.src) {
		l.d.Error(start, "unterminated string literal")
		return token.Token{Kind: token.StringLit, Text: b.String(), Loc: start}
	}
	l.advance() // closing quote
	return token.Token{Kind: token.StringLit, Text: unescape(b.String()), Loc: start}
}

func (l *Lexer) scanChar(start source.Location) token.Token {
	l.advance() // opening quote
	if l.pos >= len(l.src) {
		l.d.Error(start, "unterminated character literal")
		return token.Token{Kind: token.CharLit, Loc: start}
	}
	var val int64
	c := l.advance()
	if c == '\\' && l.pos < len(l.src) {
		e := l.advance()
		val = int64(escapeValue(e))
	} else {
		val = int64(c)
	}
	if l.peek() != '\'' {
		l.d.Error(start, "unterminated or multi-character char literal")
	} else {
		l.advance()
	}
	return token.Token{Kind: token.CharLit, Loc: start, IntVal: val}
}

func escapeValue(c byte) byte {
	switch c {
	case 'n':
		return '\n'
	case 't':
		return '\t'
	case 'r':
		return '\r'
	case '0':
		return 0
	case '\\':
		return '\\'
	case '\'':
		return '\''
	case '"':
		return '"'
	default:
		return c
	}
}

func unescape(s string) string {
	var b strings.Builder
	for i := 0; i < len(s); i++ {
		if s[i] == '\\' && i+1 < len(s) {
			b.WriteByte(escapeValue(s[i+1]))
			i++
			continue
		}
		b.WriteByte(s[i])
	}
	return b.String()
}

// threeCharOps and twoCharOps are checked longest-match-first.
var threeCharOps = map[string]token.Kind{
	"...": token.DotDotDot,
	"<<=": token.LShiftEq,
	">>=": token.RShiftEq,
}

var twoCharOps = map[string]token.Kind{
	"++": token.PlusPlus, "--": token.MinusMinus,
	"+=": token.PlusEq, "-=": token.MinusEq, "*=": token.StarEq, "/=": token.SlashEq,
	"%=": token.PercentEq, "&=": token.AmpEq, "|=": token.PipeEq, "^=": token.CaretEq,
	"<<": token.LShift, ">>": token.RShift,
	"&&": token.AmpAmp, "||": token.PipePipe,
	"==": token.EqEq, "!=": token.BangEq, "<=": token.LtEq, ">=": token.GtEq,
	"->": token.Arrow, "?&": token.QuestionAmp, "::": token.ColonColon, "=>": token.FatArrow,
}

var oneCharOps = map[byte]token.Kind{
	'+': token.Plus, '-': token.Minus, '*': token.Star, '/': token.Slash, '%': token.Percent,
	'&': token.Amp, '|': token.Pipe, '^': token.Caret, '~': token.Tilde,
	'!': token.Bang, '<': token.Lt, '>': token.Gt, '=': token.Eq,
	'.': token.Dot, '?': token.Question, ':': token.Colon,
	'(': token.LParen, ')': token.RParen, '{': token.LBrace, '}': token.RBrace,
	'[': token.LBracket, ']': token.RBracket, ';': token.Semicolon, ',': token.Comma,
	'#': token.Hash,
}

func (l *Lexer) scanOperator(start source.Location) token.Token {
	if l.pos+3 <= len(l.src) {
		if k, ok := threeCharOps[l.src[l.pos:l.pos+3]]; ok {
			text := l.src[l.pos : l.pos+3]
			l.advance()
			l.advance()
			l.advance()
			return token.Token{Kind: k, Text: text, Loc: start}
		}
	}
	if l.pos+2 <= len(l.src) {
		if k, ok := twoCharOps[l.src[l.pos:l.pos+2]]; ok {
			text := l.src[l.pos : l.pos+2]
			l.advance()
			l.advance()
			return token.Token{Kind: k, Text: text, Loc: start}
		}
	}
	c := l.peek()
	if k, ok := oneCharOps[c]; ok {
		l.advance()
		return token.Token{Kind: k, Text: string(c), Loc: start}
	}
	l.d.Error(start, "unexpected character %q", c)
	l.advance()
	return token.Token{Kind: token.Invalid, Text: string(c), Loc: start}
}
