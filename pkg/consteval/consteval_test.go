package consteval

import (
	"testing"

	"github.com/safec-org/safec/pkg/ast"
	"github.com/safec-org/safec/pkg/diag"
	"github.com/safec-org/safec/pkg/types"
	"github.com/stretchr/testify/require"
)

func lit(v int64) *ast.IntLitExpr { return &ast.IntLitExpr{Value: v} }

func TestEvalIntArithmetic(t *testing.T) {
	d := diag.NewEngine()
	ev := New(d)
	expr := &ast.BinaryExpr{Op: ast.BinAdd, Left: lit(1), Right: &ast.BinaryExpr{Op: ast.BinMul, Left: lit(2), Right: lit(3)}}
	v, ok := ev.EvalInt(expr)
	require.True(t, ok)
	require.Equal(t, int64(7), v)
	require.False(t, d.HasErrors())
}

func TestEvalIntDivisionByZeroIsFatal(t *testing.T) {
	d := diag.NewEngine()
	ev := New(d)
	_, ok := ev.EvalInt(&ast.BinaryExpr{Op: ast.BinDiv, Left: lit(1), Right: lit(0)})
	require.False(t, ok)
	require.True(t, d.HasErrors())
}

func TestEvalIntLogicalShortCircuit(t *testing.T) {
	d := diag.NewEngine()
	ev := New(d)
	// The right side is a non-constant IdentExpr, but BinLogAnd must not
	// evaluate it once the left side is false.
	expr := &ast.BinaryExpr{Op: ast.BinLogAnd, Left: lit(0), Right: &ast.IdentExpr{Name: "x"}}
	v, ok := ev.EvalInt(expr)
	require.True(t, ok)
	require.Equal(t, int64(0), v)
	require.False(t, d.HasErrors())
}

func TestEvalIntNonConstantReportsFatal(t *testing.T) {
	d := diag.NewEngine()
	ev := New(d)
	_, ok := ev.EvalInt(&ast.IdentExpr{Name: "x"})
	require.False(t, ok)
	require.True(t, d.HasErrors())
}

func TestSizeOfPrimitivesAndAggregates(t *testing.T) {
	ev := New(diag.NewEngine())
	require.Equal(t, int64(4), ev.SizeOf(types.Int(32, true)))
	require.Equal(t, int64(8), ev.SizeOf(types.NewPointer(types.Int(32, true), false)))

	st := types.NewStruct("Point", false)
	st.Fields = []types.Field{
		{Name: "x", Type: types.Int(32, true)},
		{Name: "y", Type: types.Int(32, true)},
	}
	require.Equal(t, int64(8), ev.SizeOf(st))

	count, ok := ev.FieldCount(st)
	require.True(t, ok)
	require.Equal(t, int64(2), count)
}

func TestFieldCountRejectsNonStruct(t *testing.T) {
	ev := New(diag.NewEngine())
	_, ok := ev.FieldCount(types.Int(32, true))
	require.False(t, ok)
}
