package parser

import (
	"testing"

	"github.com/safec-org/safec/pkg/ast"
	"github.com/safec-org/safec/pkg/diag"
	"github.com/safec-org/safec/pkg/lexer"
	"github.com/stretchr/testify/require"
)

func parseSource(t *testing.T, src string) (*ast.TranslationUnit, *diag.Engine) {
	t.Helper()
	d := diag.NewEngine()
	toks := lexer.New("t.sc", src, d).Tokenize()
	tu := New("t.sc", toks, d).Parse()
	return tu, d
}

func TestParseSimpleMain(t *testing.T) {
	tu, d := parseSource(t, "int main() { return 0; }")
	require.False(t, d.HasErrors())
	require.Len(t, tu.Decls, 1)
	fn, ok := tu.Decls[0].(*ast.FunctionDecl)
	require.True(t, ok)
	require.Equal(t, "main", fn.Name)
	require.NotNil(t, fn.Body)
	require.Len(t, fn.Body.Stmts, 1)
}

func TestParseStackReferenceDecl(t *testing.T) {
	tu, d := parseSource(t, "int main() { &stack int x = 0; &stack int y = &x; return 0; }")
	require.False(t, d.HasErrors())
	fn := tu.Decls[0].(*ast.FunctionDecl)
	require.Len(t, fn.Body.Stmts, 3)
	decl, ok := fn.Body.Stmts[0].(*ast.VarDeclStmt)
	require.True(t, ok)
	require.Equal(t, "x", decl.Name)
}

func TestParseGenericFunction(t *testing.T) {
	tu, d := parseSource(t, "generic<T: Numeric> T add(T a, T b) { return a + b; }")
	require.False(t, d.HasErrors())
	fn := tu.Decls[0].(*ast.FunctionDecl)
	require.Equal(t, "add", fn.Name)
	require.Len(t, fn.GenericParams, 1)
	require.Equal(t, "T", fn.GenericParams[0].Name)
	require.Equal(t, "Numeric", fn.GenericParams[0].Constraint)
	require.Len(t, fn.Params, 2)
}

func TestParseStructDecl(t *testing.T) {
	tu, d := parseSource(t, "struct Point { int x; int y; }")
	require.False(t, d.HasErrors())
	sd := tu.Decls[0].(*ast.StructDecl)
	require.Equal(t, "Point", sd.Name)
	require.Len(t, sd.Fields, 2)
}

func TestParseMethodDecl(t *testing.T) {
	tu, d := parseSource(t, "int Point::magnitude() { return 0; }")
	require.False(t, d.HasErrors())
	fn := tu.Decls[0].(*ast.FunctionDecl)
	require.Equal(t, "Point", fn.MethodOwner)
	require.Equal(t, "magnitude", fn.Name)
	require.True(t, fn.IsMethod())
}

func TestParseUninitializedUnsafeDeref(t *testing.T) {
	tu, d := parseSource(t, "int main() { int *p; *p = 1; return 0; }")
	require.False(t, d.HasErrors())
	fn := tu.Decls[0].(*ast.FunctionDecl)
	require.Len(t, fn.Body.Stmts, 3)
	_, ok := fn.Body.Stmts[0].(*ast.VarDeclStmt)
	require.True(t, ok)
	exprStmt, ok := fn.Body.Stmts[1].(*ast.ExprStmt)
	require.True(t, ok)
	assign, ok := exprStmt.Expr.(*ast.AssignExpr)
	require.True(t, ok)
	_, ok = assign.Target.(*ast.DerefExpr)
	require.True(t, ok)
}

func TestParseMatchStmt(t *testing.T) {
	tu, d := parseSource(t, `int main() {
		match(1) {
			case 1, 2: return 1;
			case 3..5: return 2;
			default: return 0;
		}
	}`)
	require.False(t, d.HasErrors())
	fn := tu.Decls[0].(*ast.FunctionDecl)
	m, ok := fn.Body.Stmts[0].(*ast.MatchStmt)
	require.True(t, ok)
	require.Len(t, m.Arms, 3)
}

func TestParseNullableDeref(t *testing.T) {
	tu, d := parseSource(t, "int main() { ?&stack int p = null; return *p; }")
	require.False(t, d.HasErrors())
	fn := tu.Decls[0].(*ast.FunctionDecl)
	require.Len(t, fn.Body.Stmts, 2)
}

func TestCastDisambiguation(t *testing.T) {
	tu, d := parseSource(t, "int main() { int x = (int)3.0; return x; }")
	require.False(t, d.HasErrors())
	fn := tu.Decls[0].(*ast.FunctionDecl)
	decl := fn.Body.Stmts[0].(*ast.VarDeclStmt)
	_, ok := decl.Init.(*ast.CastExpr)
	require.True(t, ok)
}

func TestParseRegionDecl(t *testing.T) {
	tu, d := parseSource(t, "region Scratch { capacity: 4096 }")
	require.False(t, d.HasErrors())
	rd := tu.Decls[0].(*ast.RegionDecl)
	require.Equal(t, "Scratch", rd.Name)
	require.Equal(t, int64(4096), rd.Capacity)
}

func TestParseErrorRecoverySynchronizes(t *testing.T) {
	tu, d := parseSource(t, "int )) broken; int main() { return 0; }")
	require.True(t, d.HasErrors())
	require.NotEmpty(t, tu.Decls)
}
