package preprocessor

import (
	"strings"
	"testing"

	"github.com/safec-org/safec/pkg/config"
	"github.com/safec-org/safec/pkg/diag"
	"github.com/stretchr/testify/require"
)

func TestObjectLikeMacroExpansion(t *testing.T) {
	fs := MapFileSystem{"main.sc": "int x = MAX;\n"}
	opts := config.New()
	opts.Defines["MAX"] = "100"
	d := diag.NewEngine()
	p := New(d, opts, fs, nil)
	out := p.Process("main.sc")
	require.False(t, d.HasErrors())
	require.Contains(t, out, "int x = 100;")
}

func TestFunctionLikeMacroRequiresCompatMode(t *testing.T) {
	fs := MapFileSystem{"main.sc": "#define SQ(x) ((x)*(x))\nint y = SQ(3);\n"}
	opts := config.New()
	opts.CompatPreprocessor = true
	d := diag.NewEngine()
	p := New(d, opts, fs, nil)
	out := p.Process("main.sc")
	require.False(t, d.HasErrors())
	require.Contains(t, out, "((3)*(3))")
}

func TestIfdefBranching(t *testing.T) {
	src := "#define FOO\n#ifdef FOO\nint a = 1;\n#else\nint a = 2;\n#endif\n"
	fs := MapFileSystem{"main.sc": src}
	d := diag.NewEngine()
	p := New(d, config.New(), fs, nil)
	out := p.Process("main.sc")
	require.False(t, d.HasErrors())
	require.Contains(t, out, "int a = 1;")
	require.NotContains(t, out, "int a = 2;")
}

func TestIfElifElseChain(t *testing.T) {
	src := "#define V 2\n#if V == 1\nA\n#elif V == 2\nB\n#else\nC\n#endif\n"
	fs := MapFileSystem{"main.sc": src}
	d := diag.NewEngine()
	p := New(d, config.New(), fs, nil)
	out := p.Process("main.sc")
	require.False(t, d.HasErrors())
	lines := strings.Split(strings.TrimSpace(out), "\n")
	found := false
	for _, l := range lines {
		if strings.TrimSpace(l) == "B" {
			found = true
		}
		require.NotEqual(t, "A", strings.TrimSpace(l))
		require.NotEqual(t, "C", strings.TrimSpace(l))
	}
	require.True(t, found)
}

func TestIncludeResolution(t *testing.T) {
	fs := MapFileSystem{
		"main.sc": "#include \"helper.sc\"\nint z = HELPER;\n",
		"helper.sc": "#define HELPER 7\n",
	}
	d := diag.NewEngine()
	p := New(d, config.New(), fs, nil)
	out := p.Process("main.sc")
	require.False(t, d.HasErrors())
	require.Contains(t, out, "int z = 7;")
}

func TestPragmaOncePreventsReinclusion(t *testing.T) {
	fs := MapFileSystem{
		"main.sc":   "#include \"h.sc\"\n#include \"h.sc\"\nint n = COUNT;\n",
		"h.sc":      "#pragma once\n#ifndef COUNT\n#define COUNT 1\n#else\n#define COUNT 2\n#endif\n",
	}
	d := diag.NewEngine()
	p := New(d, config.New(), fs, nil)
	out := p.Process("main.sc")
	require.False(t, d.HasErrors())
	require.Contains(t, out, "int n = 1;")
}

func TestErrorDirectiveRecordsDiagnostic(t *testing.T) {
	fs := MapFileSystem{"main.sc": "#error something is wrong\n"}
	d := diag.NewEngine()
	p := New(d, config.New(), fs, nil)
	p.Process("main.sc")
	require.True(t, d.HasErrors())
}

func TestDefinedOperatorDoesNotExpandOperand(t *testing.T) {
	src := "#define FOO 1\n#if defined(FOO)\nYES\n#endif\n"
	fs := MapFileSystem{"main.sc": src}
	d := diag.NewEngine()
	p := New(d, config.New(), fs, nil)
	out := p.Process("main.sc")
	require.False(t, d.HasErrors())
	require.Contains(t, out, "YES")
}

func TestFileAndLineBuiltins(t *testing.T) {
	fs := MapFileSystem{"main.sc": "const char* f = __FILE__;\nint l = __LINE__;\n"}
	d := diag.NewEngine()
	p := New(d, config.New(), fs, nil)
	out := p.Process("main.sc")
	require.Contains(t, out, `"main.sc"`)
	require.Contains(t, out, "int l = 2;")
}

func TestIncludeDepthLimitIsFatal(t *testing.T) {
	fs := MapFileSystem{"a.sc": "#include \"a.sc\"\n"}
	opts := config.New()
	opts.MaxIncludeDepth = 3
	d := diag.NewEngine()
	p := New(d, opts, fs, nil)
	p.Process("a.sc")
	require.True(t, d.HasErrors())
}
