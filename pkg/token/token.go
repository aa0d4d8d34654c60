package token

import "github.com/safec-org/safec/pkg/source"

// Token is a single lexical unit: a kind, the literal source text it came
// from, its location, and (for numeric literals) the parsed payload.
type Token struct {
	Kind Kind
	Text string
	Loc  source.Location

	// Numeric payload, meaningful only when Kind is IntLit, FloatLit or
	// CharLit.
	IntVal     int64
	FloatVal   float64
	IsLongLong bool // LL/ll suffix
	IsUnsigned bool // U/u suffix
}

// Is reports whether the token has the given kind.
func (t Token) Is(k Kind) bool { return t.Kind == k }

// IsNot reports whether the token does not have the given kind.
func (t Token) IsNot(k Kind) bool { return t.Kind != k }

// IsEOF reports whether this token is the end-of-stream sentinel.
func (t Token) IsEOF() bool { return t.Kind == Eof }

// IsIdent reports whether this token is the identifier with the given
// spelling.
func (t Token) IsIdent(name string) bool {
	return t.Kind == Ident && t.Text == name
}

// IsContextualKeyword reports whether this token is a contextual keyword
// (stack/heap/arena/capacity) or a plain identifier spelled the same way,
// matching the given name. Used by the parser outside type position, per
// spec.md §4.4.
func (t Token) IsContextualKeyword(name string) bool {
	return (t.Kind == Ident || IsContextual(t.Kind)) && t.Text == name
}
