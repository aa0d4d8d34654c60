package ast

import (
	"github.com/safec-org/safec/pkg/source"
	"github.com/safec-org/safec/pkg/types"
)

// Stmt is the sum type over every statement variant.
type Stmt interface {
	Loc() source.Location
	stmtNode()
}

// StmtBase is embedded by every concrete Stmt variant.
type StmtBase struct {
	At source.Location
}

func (s *StmtBase) Loc() source.Location { return s.At }
func (*StmtBase) stmtNode()              {}

// CompoundStmt is a `{ ... }` block; it owns its own lexical scope.
type CompoundStmt struct {
	StmtBase
	Stmts []Stmt
}

// ExprStmt is a bare expression used as a statement.
type ExprStmt struct {
	StmtBase
	Expr Expr
}

// IfStmt is `if (cond) then [else else]`.
type IfStmt struct {
	StmtBase
	Cond Expr
	Then Stmt
	Else Stmt // nil if absent
}

// IfConstStmt is `if const (cond) then [else else]`, evaluated at compile
// time by pkg/consteval rather than carried through to the code generator
// (spec.md §4.5, §4.10).
type IfConstStmt struct {
	StmtBase
	Cond Expr
	Then Stmt
	Else Stmt
}

// WhileStmt is `while (cond) body`.
type WhileStmt struct {
	StmtBase
	Cond Expr
	Body Stmt
}

// DoWhileStmt is `do body while (cond);`.
type DoWhileStmt struct {
	StmtBase
	Body Stmt
	Cond Expr
}

// ForStmt is a C-style `for (init; cond; post) body`. Init may be nil,
// a VarDeclStmt, or an ExprStmt.
type ForStmt struct {
	StmtBase
	Init Stmt
	Cond Expr
	Post Expr
	Body Stmt
}

// ReturnStmt is `return [expr];`.
type ReturnStmt struct {
	StmtBase
	Value Expr // nil for a void return
}

// BreakStmt is `break [label];`.
type BreakStmt struct {
	StmtBase
	Label string
}

// ContinueStmt is `continue [label];`.
type ContinueStmt struct {
	StmtBase
	Label string
}

// GotoStmt is `goto label;`.
type GotoStmt struct {
	StmtBase
	Label string
}

// LabelStmt is `label: stmt`.
type LabelStmt struct {
	StmtBase
	Name string
	Stmt Stmt
}

// VarDeclStmt is a local variable declaration, with an optional initializer.
// DeclaredType is what the parser wrote down (may be a Typeof placeholder);
// ResolvedType is filled in by Sema (spec.md §4.8).
type VarDeclStmt struct {
	StmtBase
	Name         string
	DeclaredType types.Type
	ResolvedType types.Type
	Init         Expr // nil if uninitialized
	IsConst      bool
	IsStatic     bool
}

// RefName implements Referent.
func (v *VarDeclStmt) RefName() string { return v.Name }

// RefType implements Referent.
func (v *VarDeclStmt) RefType() types.Type { return v.ResolvedType }

// UnsafeStmt is `unsafe { ... }`.
type UnsafeStmt struct {
	StmtBase
	Body *CompoundStmt
}

// StaticAssertStmt is `static_assert(cond[, "msg"]);` used as a statement.
type StaticAssertStmt struct {
	StmtBase
	Cond    Expr
	Message string
}

// DeferStmt is `defer stmt;` or `errdefer stmt;` (IsErrDefer distinguishes
// the two — an errdefer only runs when the enclosing function returns via
// an error path, spec.md §4.1 data model).
type DeferStmt struct {
	StmtBase
	Inner     Stmt
	IsErrDefer bool
}

// MatchPatternKind tags which shape a MatchPattern holds.
type MatchPatternKind int

const (
	PatternInt MatchPatternKind = iota
	PatternChar
	PatternRange
	PatternEnumIdent
	PatternTaggedVariant
	PatternWildcard
)

// MatchPattern is one pattern in a match arm (spec.md §4.5).
type MatchPattern struct {
	Kind       MatchPatternKind
	IntValue   int64
	RangeLo    int64
	RangeHi    int64
	Name       string // enumerator or tagged-variant name
	Bind       string // optional bound identifier, e.g. Variant(x)
}

// MatchArm is `case p1, p2: stmt;` (or the `default:` wildcard arm).
type MatchArm struct {
	Patterns []MatchPattern
	Body     Stmt
}

// MatchStmt is `match(subject) { arms... }`.
type MatchStmt struct {
	StmtBase
	Subject Expr
	Arms    []MatchArm
}

// AsmStmt is an inline-asm statement; its text is opaque to Sema beyond the
// unsafe-boundary check (SPEC_FULL.md §5).
type AsmStmt struct {
	StmtBase
	Text string
}
