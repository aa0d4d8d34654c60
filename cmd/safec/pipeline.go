package main

import (
	"fmt"
	"os"
	"strings"

	log "github.com/sirupsen/logrus"
	"golang.org/x/term"

	"github.com/safec-org/safec/pkg/ast"
	"github.com/safec-org/safec/pkg/config"
	"github.com/safec-org/safec/pkg/diag"
	"github.com/safec-org/safec/pkg/lexer"
	"github.com/safec-org/safec/pkg/parser"
	"github.com/safec-org/safec/pkg/preprocessor"
	"github.com/safec-org/safec/pkg/sema"
)

// noopImporter never resolves an angle-bracket header; SafeC's C-header
// importer is an external collaborator named by contract (spec.md §1), not
// implemented by this front-end.
type noopImporter struct{}

func (noopImporter) Import(header string, searchDirs []string) (string, bool) { return "", false }

// runCompile drives the pipeline for one input file: preprocess, lex, parse,
// (optionally) analyze, and render output. It returns the process exit code
// spec.md §6 specifies: 0 on success, 1 if any stage recorded an error.
func runCompile(input string, opts *config.Options) int {
	d := diag.NewEngine()

	log.Debug("stage: preprocess")
	pp := preprocessor.New(d, opts, preprocessor.OSFileSystem{}, noopImporter{})
	text := pp.Process(input)
	if d.HasErrors() {
		return renderAndExit(d, opts)
	}
	if opts.DumpPP {
		writeOutput(opts, text)
		return renderAndExit(d, opts)
	}

	log.Debug("stage: lex")
	lx := lexer.New(input, text, d)
	toks := lx.Tokenize()
	if d.HasErrors() {
		return renderAndExit(d, opts)
	}

	log.Debug("stage: parse")
	ps := parser.New(input, toks, d)
	tu := ps.Parse()
	if opts.DumpAST {
		writeOutput(opts, ast.Dump(tu))
		return renderAndExit(d, opts)
	}
	if d.HasErrors() {
		return renderAndExit(d, opts)
	}

	if !opts.NoSema {
		log.Debug("stage: sema")
		s := sema.New(d, opts)
		s.Run(tu)
	}

	if d.HasErrors() {
		return renderAndExit(d, opts)
	}

	if opts.EmitLLVM {
		log.Debug("stage: codegen (external collaborator, not implemented here)")
		writeOutput(opts, "; codegen is an external collaborator (spec.md §1); no IR emitted\n")
	}

	return renderAndExit(d, opts)
}

func writeOutput(opts *config.Options, text string) {
	if opts.Output == "" || opts.Output == "-" {
		fmt.Print(text)
		return
	}
	if err := os.WriteFile(opts.Output, []byte(text), 0o644); err != nil {
		fmt.Fprintf(os.Stderr, "safec: cannot write %s: %v\n", opts.Output, err)
	}
}

// renderAndExit prints every accumulated diagnostic, colorized when stderr
// is a terminal (golang.org/x/term, matching pkg/util/termio's IsTerminal
// gate), and returns the exit code spec.md §6 mandates. When -o names a
// ".json" path, the structured record dump (pkg/diag's MarshalJSON) is
// written there, in place of the plain-text rendering.
func renderAndExit(d *diag.Engine, opts *config.Options) int {
	if opts.Output != "" && strings.HasSuffix(opts.Output, ".json") {
		writeJSONDump(d, opts.Output)
	} else {
		colorize := term.IsTerminal(int(os.Stderr.Fd()))
		for _, r := range d.Records() {
			if colorize {
				fmt.Fprintln(os.Stderr, colorRecord(r))
			} else {
				fmt.Fprintln(os.Stderr, r.String())
			}
		}
	}
	if opts.Verbose {
		log.Debugf("diagnostics: %d error(s)", d.ErrorCount())
	}
	if d.HasErrors() {
		return 1
	}
	return 0
}

func writeJSONDump(d *diag.Engine, path string) {
	b, err := d.MarshalJSON()
	if err != nil {
		fmt.Fprintf(os.Stderr, "safec: cannot encode diagnostics: %v\n", err)
		return
	}
	if err := os.WriteFile(path, b, 0o644); err != nil {
		fmt.Fprintf(os.Stderr, "safec: cannot write %s: %v\n", path, err)
	}
}

func colorRecord(r diag.Record) string {
	const (
		red    = "\033[31m"
		yellow = "\033[33m"
		reset  = "\033[0m"
	)
	switch r.Level {
	case diag.Error, diag.Fatal:
		return fmt.Sprintf("%s%s%s", red, r.String(), reset)
	case diag.Warning:
		return fmt.Sprintf("%s%s%s", yellow, r.String(), reset)
	default:
		return r.String()
	}
}
