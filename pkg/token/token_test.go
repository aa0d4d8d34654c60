package token

import (
	"testing"

	"github.com/safec-org/safec/pkg/source"
	"github.com/stretchr/testify/require"
)

func TestLookupKeyword(t *testing.T) {
	tests := []struct {
		text string
		want Kind
		ok   bool
	}{
		{"region", KwRegion, true},
		{"unsafe", KwUnsafe, true},
		{"stack", KwStack, true},
		{"banana", Invalid, false},
	}
	for _, tt := range tests {
		got, ok := LookupKeyword(tt.text)
		require.Equal(t, tt.ok, ok, tt.text)
		if ok {
			require.Equal(t, tt.want, got, tt.text)
		}
	}
}

func TestContextualKeyword(t *testing.T) {
	tok := Token{Kind: KwStack, Text: "stack", Loc: source.NewLocation("a.sc", 1, 1)}
	require.True(t, tok.IsContextualKeyword("stack"))
	require.False(t, tok.IsContextualKeyword("heap"))

	ident := Token{Kind: Ident, Text: "stack", Loc: source.NewLocation("a.sc", 1, 1)}
	require.True(t, ident.IsContextualKeyword("stack"))
}

func TestKindString(t *testing.T) {
	require.Equal(t, "region", KwRegion.String())
	require.Equal(t, "+", Plus.String())
}
