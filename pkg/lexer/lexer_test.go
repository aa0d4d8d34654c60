package lexer

import (
	"testing"

	"github.com/safec-org/safec/pkg/diag"
	"github.com/safec-org/safec/pkg/token"
	"github.com/stretchr/testify/require"
)

func kinds(toks []token.Token) []token.Kind {
	ks := make([]token.Kind, len(toks))
	for i, t := range toks {
		ks[i] = t.Kind
	}
	return ks
}

func TestKeywordsAndIdents(t *testing.T) {
	d := diag.NewEngine()
	l := New("t.sc", "int x = 3; region<r>", d)
	toks := l.Tokenize()
	require.False(t, d.HasErrors())
	require.Equal(t, []token.Kind{
		token.KwInt, token.Ident, token.Eq, token.IntLit, token.Semicolon,
		token.KwRegion, token.Lt, token.Ident, token.Gt, token.Eof,
	}, kinds(toks))
}

func TestHexAndSuffixedIntLiterals(t *testing.T) {
	d := diag.NewEngine()
	l := New("t.sc", "0xFFu 42LL 010", d)
	toks := l.Tokenize()
	require.False(t, d.HasErrors())
	require.Equal(t, int64(255), toks[0].IntVal)
	require.True(t, toks[0].IsUnsigned)
	require.Equal(t, int64(42), toks[1].IntVal)
	require.True(t, toks[1].IsLongLong)
	require.Equal(t, int64(8), toks[2].IntVal) // octal
}

func TestFloatLiterals(t *testing.T) {
	d := diag.NewEngine()
	l := New("t.sc", "3.14 2e10 1.5f", d)
	toks := l.Tokenize()
	require.False(t, d.HasErrors())
	require.Equal(t, token.FloatLit, toks[0].Kind)
	require.InDelta(t, 3.14, toks[0].FloatVal, 1e-9)
	require.Equal(t, token.FloatLit, toks[1].Kind)
	require.InDelta(t, 2e10, toks[1].FloatVal, 1e-3)
	require.Equal(t, token.FloatLit, toks[2].Kind)
}

func TestStringAndCharLiterals(t *testing.T) {
	d := diag.NewEngine()
	l := New("t.sc", `"hello\n" 'a' '\0'`, d)
	toks := l.Tokenize()
	require.False(t, d.HasErrors())
	require.Equal(t, "hello\n", toks[0].Text)
	require.Equal(t, int64('a'), toks[1].IntVal)
	require.Equal(t, int64(0), toks[2].IntVal)
}

func TestOperatorsLongestMatchFirst(t *testing.T) {
	d := diag.NewEngine()
	l := New("t.sc", "<<= ?& -> :: => ...", d)
	toks := l.Tokenize()
	require.False(t, d.HasErrors())
	require.Equal(t, []token.Kind{
		token.LShiftEq, token.QuestionAmp, token.Arrow, token.ColonColon, token.FatArrow, token.DotDotDot, token.Eof,
	}, kinds(toks))
}

func TestCommentsSkipped(t *testing.T) {
	d := diag.NewEngine()
	l := New("t.sc", "int x; // trailing\n/* block\ncomment */ int y;", d)
	toks := l.Tokenize()
	require.False(t, d.HasErrors())
	require.Equal(t, []token.Kind{
		token.KwInt, token.Ident, token.Semicolon, token.KwInt, token.Ident, token.Semicolon, token.Eof,
	}, kinds(toks))
}

func TestUnterminatedBlockCommentIsError(t *testing.T) {
	d := diag.NewEngine()
	l := New("t.sc", "/* never closes", d)
	l.Tokenize()
	require.True(t, d.HasErrors())
}

func TestContextualKeywordStack(t *testing.T) {
	d := diag.NewEngine()
	l := New("t.sc", "int stack = 3;", d)
	toks := l.Tokenize()
	require.False(t, d.HasErrors())
	require.True(t, token.IsContextual(toks[1].Kind))
}
