package clone

import (
	"testing"

	"github.com/safec-org/safec/pkg/ast"
	"github.com/safec-org/safec/pkg/types"
	"github.com/stretchr/testify/require"
)

func TestTypeSubstitutesGenericLeaf(t *testing.T) {
	generic := types.NewGeneric("T", "Numeric")
	subst := Subst{"T": types.Int(32, true)}
	require.True(t, Type(generic, subst).Equals(types.Int(32, true)))
}

func TestTypeSubstitutesThroughPointerAndArray(t *testing.T) {
	generic := types.NewGeneric("T", "Numeric")
	subst := Subst{"T": types.Float(64)}

	ptr := types.NewPointer(generic, false)
	require.True(t, Type(ptr, subst).(*types.Pointer).Elem.Equals(types.Float(64)))

	arr := types.NewArray(generic, 4)
	require.True(t, Type(arr, subst).(*types.Array).Elem.Equals(types.Float(64)))
}

func TestTypeLeavesUnboundGenericUnchanged(t *testing.T) {
	generic := types.NewGeneric("U", "")
	got := Type(generic, Subst{"T": types.Int(32, true)})
	require.Equal(t, generic, got)
}

func TestFunctionDeepCopiesParamsAndBody(t *testing.T) {
	generic := types.NewGeneric("T", "Numeric")
	fn := &ast.FunctionDecl{
		Name:       "add",
		ReturnType: generic,
		Params: []*ast.Param{
			{Name: "a", Type: generic},
			{Name: "b", Type: generic},
		},
		Body: &ast.CompoundStmt{Stmts: []ast.Stmt{
			&ast.ReturnStmt{Value: &ast.BinaryExpr{
				Op:    ast.BinAdd,
				Left:  &ast.IdentExpr{Name: "a"},
				Right: &ast.IdentExpr{Name: "b"},
			}},
		}},
	}

	mono := Function(fn, Subst{"T": types.Int(32, true)})

	require.True(t, mono.ReturnType.Equals(types.Int(32, true)))
	require.True(t, mono.Params[0].Type.Equals(types.Int(32, true)))
	require.NotSame(t, fn.Body, mono.Body)

	// The original template is untouched, so it can be instantiated again
	// with a different type argument.
	require.True(t, fn.ReturnType.Equals(generic))
}
