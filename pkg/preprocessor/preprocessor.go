// Package preprocessor implements the text-to-text macro and conditional
// expansion pass that runs before lexing (spec.md §4.3): #include, #define
// /#undef, #if/#ifdef/#ifndef/#elif/#else/#endif, #pragma once, #error and
// #warning. Its shape follows go-corset's pkg/corset/compiler source
// resolution: a FileSystem seam plus a recursive per-file walk, rather than
// a single monolithic string buffer.
package preprocessor

import (
	"strings"

	"github.com/safec-org/safec/pkg/config"
	"github.com/safec-org/safec/pkg/diag"
	"github.com/safec-org/safec/pkg/source"
)

// condFrame tracks one level of an #if/#elif/#else/#endif stack.
type condFrame struct {
	active         bool // true if this branch's text is currently live
	anyTaken       bool // true once any branch at this level has been active
	parentActive   bool // whether the enclosing frame was active when we entered
	sawElse        bool
}

// Preprocessor expands one translation unit's #include graph into a single
// flat text, suitable for feeding straight into pkg/lexer.
type Preprocessor struct {
	diag     *diag.Engine
	opts     *config.Options
	fs       FileSystem
	importer HeaderImporter

	macros map[string]*Macro
	once   map[string]bool // files already consumed by #pragma once

	file  string
	line  int
	stack []string // include stack, for cycle/depth diagnostics
}

// New constructs a Preprocessor seeded with the -D command-line defines.
func New(d *diag.Engine, opts *config.Options, fs FileSystem, importer HeaderImporter) *Preprocessor {
	p := &Preprocessor{
		diag:     d,
		opts:     opts,
		fs:       fs,
		importer: importer,
		macros:   map[string]*Macro{},
		once:     map[string]bool{},
	}
	for name, val := range opts.Defines {
		p.macros[name] = &Macro{Name: name, Body: val}
	}
	return p
}

func (p *Preprocessor) currentFile() string { return p.file }
func (p *Preprocessor) currentLine() int    { return p.line }

// Process expands the named top-level file and returns the fully expanded
// source text. Diagnostics are recorded in the engine passed to New.
func (p *Preprocessor) Process(path string) string {
	data, ok := p.fs.ReadFile(path)
	if !ok {
		p.diag.Fatal(source.NewLocation(path, 0, 0), "cannot open source file %q", path)
		return ""
	}
	return p.processFile(path, string(data))
}

func (p *Preprocessor) processFile(path, text string) string {
	if len(p.stack) >= p.opts.IncludeDepthLimit() {
		p.diag.Fatal(source.NewLocation(path, 0, 0), "#include nesting exceeds depth limit of %d", p.opts.IncludeDepthLimit())
		return ""
	}
	p.stack = append(p.stack, path)
	defer func() { p.stack = p.stack[:len(p.stack)-1] }()

	savedFile, savedLine := p.file, p.line
	p.file = path
	defer func() { p.file, p.line = savedFile, savedLine }()

	lines := strings.Split(text, "\n")
	var out strings.Builder
	var conds []condFrame

	activeNow := func() bool {
		for _, f := range conds {
			if !f.active {
				return false
			}
		}
		return true
	}

	for idx, raw := range lines {
		p.line = idx + 1
		trimmed := strings.TrimSpace(raw)
		if strings.HasPrefix(trimmed, "#") {
			directive := strings.TrimSpace(trimmed[1:])
			p.handleDirective(path, directive, &conds, activeNow, &out)
			out.WriteByte('\n') // preserve line numbering for the lexer
			continue
		}
		if activeNow() {
			out.WriteString(p.expandMacros(raw, map[string]bool{}))
		}
		out.WriteByte('\n')
	}

	if len(conds) != 0 {
		p.diag.Error(source.NewLocation(path, uint(p.line), 1), "unterminated #if: missing #endif")
	}
	return out.String()
}

func (p *Preprocessor) handleDirective(path, directive string, conds *[]condFrame, activeNow func() bool, out *strings.Builder) {
	word, rest := splitDirective(directive)
	loc := source.NewLocation(path, uint(p.line), 1)

	switch word {
	case "ifdef", "ifndef":
		defined := false
		if activeNow() {
			_, defined = p.macros[strings.TrimSpace(rest)]
			if word == "ifndef" {
				defined = !defined
			}
		}
		*conds = append(*conds, condFrame{active: activeNow() && defined, anyTaken: activeNow() && defined, parentActive: activeNow()})
	case "if":
		val := int64(0)
		parentActive := activeNow()
		if parentActive {
			v, err := p.evalCondition(rest, p.line)
			if err != nil {
				p.diag.Error(loc, "invalid #if expression: %s", err)
			} else {
				val = v
			}
		}
		*conds = append(*conds, condFrame{active: parentActive && val != 0, anyTaken: parentActive && val != 0, parentActive: parentActive})
	case "elif":
		if len(*conds) == 0 {
			p.diag.Error(loc, "#elif without matching #if")
			return
		}
		top := &(*conds)[len(*conds)-1]
		if top.sawElse {
			p.diag.Error(loc, "#elif after #else")
			return
		}
		if !top.parentActive || top.anyTaken {
			top.active = false
			return
		}
		v, err := p.evalCondition(rest, p.line)
		if err != nil {
			p.diag.Error(loc, "invalid #elif expression: %s", err)
			top.active = false
			return
		}
		top.active = v != 0
		if top.active {
			top.anyTaken = true
		}
	case "else":
		if len(*conds) == 0 {
			p.diag.Error(loc, "#else without matching #if")
			return
		}
		top := &(*conds)[len(*conds)-1]
		if top.sawElse {
			p.diag.Error(loc, "duplicate #else")
			return
		}
		top.sawElse = true
		top.active = top.parentActive && !top.anyTaken
		if top.active {
			top.anyTaken = true
		}
	case "endif":
		if len(*conds) == 0 {
			p.diag.Error(loc, "#endif without matching #if")
			return
		}
		*conds = (*conds)[:len(*conds)-1]
	case "define":
		if activeNow() {
			p.defineMacro(rest)
		}
	case "undef":
		if activeNow() {
			delete(p.macros, strings.TrimSpace(rest))
		}
	case "include":
		if activeNow() {
			p.handleInclude(path, rest, out)
		}
	case "pragma":
		if activeNow() && strings.TrimSpace(rest) == "once" {
			p.once[path] = true
		}
	case "error":
		if activeNow() {
			p.diag.Error(loc, "#error %s", rest)
		}
	case "warning":
		if activeNow() {
			p.diag.Warn(loc, "#warning %s", rest)
		}
	default:
		if activeNow() {
			p.diag.Error(loc, "unknown preprocessor directive #%s", word)
		}
	}
}

func splitDirective(directive string) (word, rest string) {
	i := 0
	for i < len(directive) && isIdentCont(directive[i]) {
		i++
	}
	word = directive[:i]
	rest = strings.TrimSpace(directive[i:])
	return
}

func (p *Preprocessor) defineMacro(rest string) {
	i := 0
	for i < len(rest) && isIdentCont(rest[i]) {
		i++
	}
	name := rest[:i]
	if name == "" {
		return
	}
	if i < len(rest) && rest[i] == '(' && !p.opts.CompatPreprocessor {
		p.diag.Error(source.NewLocation(p.file, uint(p.line), 1), "function-like macro '%s' requires --compat-preprocessor", name)
		return
	}
	if i < len(rest) && rest[i] == '(' && p.opts.CompatPreprocessor {
		params, variadic, j, ok := parseParamList(rest, i)
		if !ok {
			p.macros[name] = &Macro{Name: name, Body: strings.TrimSpace(rest[i:])}
			return
		}
		body := strings.TrimSpace(rest[j:])
		p.macros[name] = &Macro{Name: name, Params: params, Variadic: variadic, Body: body}
		return
	}
	body := strings.TrimSpace(rest[i:])
	p.macros[name] = &Macro{Name: name, Body: body}
}

func parseParamList(s string, open int) (params []string, variadic bool, end int, ok bool) {
	i := open + 1
	var cur strings.Builder
	for i < len(s) {
		switch s[i] {
		case ')':
			if t := strings.TrimSpace(cur.String()); t != "" {
				if t == "..." {
					variadic = true
				} else {
					params = append(params, t)
				}
			}
			return params, variadic, i + 1, true
		case ',':
			t := strings.TrimSpace(cur.String())
			if t == "..." {
				variadic = true
			} else if t != "" {
				params = append(params, t)
			}
			cur.Reset()
		default:
			cur.WriteByte(s[i])
		}
		i++
	}
	return nil, false, i, false
}

// handleInclude resolves a #include directive, either recursing into a
// project-relative file via fs, or deferring to the HeaderImporter for
// angle-bracket system headers.
func (p *Preprocessor) handleInclude(path, rest string, out *strings.Builder) {
	loc := source.NewLocation(path, uint(p.line), 1)
	rest = strings.TrimSpace(rest)
	if len(rest) < 2 {
		p.diag.Error(loc, "malformed #include directive")
		return
	}

	if rest[0] == '"' {
		name := rest[1 : len(rest)-1]
		dir := p.fs.Dir(path)
		full := p.fs.Join(dir, name)
		if p.once[full] {
			return
		}
		data, ok := p.fs.ReadFile(full)
		if !ok {
			p.searchIncludeDirs(name, loc, out)
			return
		}
		out.WriteString(p.processFile(full, string(data)))
		return
	}

	if rest[0] == '<' && strings.HasSuffix(rest, ">") {
		name := rest[1 : len(rest)-1]
		if p.importer == nil {
			p.diag.Error(loc, "no header importer configured for <%s>", name)
			return
		}
		text, ok := p.importer.Import(name, p.opts.IncludeDirs)
		if !ok {
			p.diag.Error(loc, "cannot resolve system header <%s>", name)
			return
		}
		out.WriteString(p.expandMacros(text, map[string]bool{}))
		out.WriteByte('\n')
		return
	}

	p.diag.Error(loc, "malformed #include directive")
}

func (p *Preprocessor) searchIncludeDirs(name string, loc source.Location, out *strings.Builder) {
	for _, dir := range p.opts.IncludeDirs {
		full := p.fs.Join(dir, name)
		if p.once[full] {
			return
		}
		if data, ok := p.fs.ReadFile(full); ok {
			out.WriteString(p.processFile(full, string(data)))
			return
		}
	}
	p.diag.Error(loc, "cannot find include file %q", name)
}
