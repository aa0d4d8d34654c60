// Package config carries the compiler options threaded explicitly through
// the pipeline (preprocessor, sema), the same way go-corset's
// CompilationConfig is passed into CompileSourceFiles rather than read from
// global state (spec.md §9, "global mutable state is absent").
package config

// Options mirrors the CLI flag table of spec.md §6.
type Options struct {
	// Output path; "-" means stdout. Interpreted entirely by the driver.
	Output string
	// EmitLLVM requests lowered IR text output from the (external) code
	// generator collaborator.
	EmitLLVM bool
	// DumpAST stops the pipeline after parsing and renders the AST via
	// pkg/ast.Dump.
	DumpAST bool
	// DumpPP stops the pipeline after preprocessing and emits the
	// preprocessed text.
	DumpPP bool
	// NoSema skips semantic analysis entirely.
	NoSema bool
	// NoConstEval skips the ConstEval pass.
	NoConstEval bool
	// CompatPreprocessor permits function-like macros, `##` and `#` inside
	// macro bodies (spec.md §4.3).
	CompatPreprocessor bool
	// IncludeDirs are additional `-I` search directories, in the order
	// given.
	IncludeDirs []string
	// Defines are `-D NAME[=VAL]` command-line macros; a missing `=VAL`
	// defaults to "1".
	Defines map[string]string
	// Verbose enables progress logging to stderr in the driver.
	Verbose bool

	// Freestanding, when set, makes Sema warn on calls into the
	// hosted/stdlib call surface (SPEC_FULL.md §5, supplemented feature).
	Freestanding bool
	// MaxIncludeDepth bounds #include nesting (spec.md §4.3); zero selects
	// the spec-mandated default of 64.
	MaxIncludeDepth int
}

// DefaultMaxIncludeDepth is the depth spec.md §4.3 specifies.
const DefaultMaxIncludeDepth = 64

// New constructs an Options value with every default applied.
func New() *Options {
	return &Options{
		Defines:         map[string]string{},
		MaxIncludeDepth: DefaultMaxIncludeDepth,
	}
}

// IncludeDepthLimit returns the effective #include depth limit.
func (o *Options) IncludeDepthLimit() int {
	if o.MaxIncludeDepth <= 0 {
		return DefaultMaxIncludeDepth
	}
	return o.MaxIncludeDepth
}
