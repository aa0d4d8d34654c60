package sema

import (
	"testing"

	"github.com/safec-org/safec/pkg/ast"
	"github.com/safec-org/safec/pkg/config"
	"github.com/safec-org/safec/pkg/diag"
	"github.com/safec-org/safec/pkg/lexer"
	"github.com/safec-org/safec/pkg/parser"
	"github.com/stretchr/testify/require"
)

func run(t *testing.T, src string, configure func(*config.Options)) (*ast.TranslationUnit, *diag.Engine, bool) {
	t.Helper()
	d := diag.NewEngine()
	toks := lexer.New("t.sc", src, d).Tokenize()
	tu := parser.New("t.sc", toks, d).Parse()
	require.False(t, d.HasErrors(), "parse errors: %v", d.Records())
	opts := config.New()
	if configure != nil {
		configure(opts)
	}
	ok := New(d, opts).Run(tu)
	return tu, d, ok
}

// spec.md §8, boundary scenario 1.
func TestBoundarySimpleMain(t *testing.T) {
	tu, _, ok := run(t, "int main() { return 0; }", nil)
	require.True(t, ok)
	fn := tu.Decls[0].(*ast.FunctionDecl)
	require.Equal(t, "int32", fn.ReturnType.String())
}

// spec.md §8, boundary scenario 2: a stack reference to a sibling stack
// variable in the same scope does not escape.
func TestBoundaryStackReferenceNoEscape(t *testing.T) {
	_, _, ok := run(t, "int main() { &stack int x = 0; &stack int y = &x; return 0; }", nil)
	require.True(t, ok)
}

// spec.md §8, boundary scenario 3: returning the address of a local escapes
// its stack frame.
func TestBoundaryStackEscapeOnReturn(t *testing.T) {
	_, d, ok := run(t, "&stack int leak() { int x = 0; return &x; }", nil)
	require.False(t, ok)
	require.Contains(t, joinMessages(d), "escape")
}

// spec.md §8, boundary scenario 4: dereferencing a nullable reference
// without a preceding null-check is an error.
func TestBoundaryDerefNullableReference(t *testing.T) {
	_, d, ok := run(t, "int main() { ?&stack int p = null; return *p; }", nil)
	require.False(t, ok)
	require.Contains(t, joinMessages(d), "nullable")
}

// spec.md §8, boundary scenario 5: monomorphization produces exactly one
// clone named with the inferred argument type.
func TestBoundaryMonomorphization(t *testing.T) {
	tu, _, ok := run(t, `
		generic<T: Numeric> T add(T a, T b) { return a + b; }
		int main() { return add(1, 2); }
	`, nil)
	require.True(t, ok)
	var clones []string
	for _, d := range tu.Decls {
		if fn, ok := d.(*ast.FunctionDecl); ok && fn.Name == "add_int32" {
			clones = append(clones, fn.Name)
		}
	}
	require.Len(t, clones, 1)
}

// Testable invariant 7: calling monomorphize twice with the same inferred
// arguments adds exactly one clone, not two.
func TestMonomorphizationIdempotent(t *testing.T) {
	tu, _, ok := run(t, `
		generic<T: Numeric> T add(T a, T b) { return a + b; }
		int main() { add(1, 2); add(3, 4); return 0; }
	`, nil)
	require.True(t, ok)
	count := 0
	for _, d := range tu.Decls {
		if fn, ok := d.(*ast.FunctionDecl); ok && fn.Name == "add_int32" {
			count++
		}
	}
	require.Equal(t, 1, count)
}

// spec.md §8, boundary scenario 7: an uninitialized raw pointer dereferenced
// outside unsafe reports both the definite-init and the unsafe-boundary
// error.
func TestBoundaryUninitRawPointerDeref(t *testing.T) {
	_, d, ok := run(t, "int main() { int *p; *p = 1; return 0; }", nil)
	require.False(t, ok)
	msgs := joinMessages(d)
	require.Contains(t, msgs, "uninitialized")
	require.Contains(t, msgs, "unsafe")
}

func TestRawPointerOpsRequireUnsafe(t *testing.T) {
	_, d, ok := run(t, "int main() { int x = 0; unsafe { int *p = (int *)&x; *p = 1; } return 0; }", nil)
	require.True(t, ok)
	require.False(t, d.HasErrors())
}

func TestMutableAliasExclusivity(t *testing.T) {
	_, d, ok := run(t, `
		int main() {
			int x = 0;
			&stack int a = &x;
			&stack int b = &x;
			return 0;
		}
	`, nil)
	require.False(t, ok)
	require.Contains(t, joinMessages(d), "already referenced in same scope")
}

func TestFreestandingWarnsOnHostedCall(t *testing.T) {
	_, d, ok := run(t, "void *malloc(int n);\nint main() { void *p = malloc(4); return 0; }", func(o *config.Options) {
		o.Freestanding = true
	})
	require.True(t, ok) // a warning never fails compilation
	found := false
	for _, r := range d.Records() {
		if r.Level == diag.Warning {
			found = true
		}
	}
	require.True(t, found)
}

func TestNoConstEvalSkipsStaticAssert(t *testing.T) {
	_, _, ok := run(t, "static_assert(1 == 2, \"never\");\nint main() { return 0; }", func(o *config.Options) {
		o.NoConstEval = true
	})
	require.True(t, ok)
}

func joinMessages(d *diag.Engine) string {
	out := ""
	for _, r := range d.Records() {
		out += r.Message + "\n"
	}
	return out
}
