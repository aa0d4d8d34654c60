package ast

import (
	"fmt"
	"strings"
)

// Dump renders a TranslationUnit in the stable textual form spec.md §6
// promises to the lint driver: one line per top-level declaration, using
// the declaration's resolved type names where available. It never panics on
// a pre-Sema tree (a global variable whose type is not yet resolved prints
// it as "<unresolved>").
func Dump(tu *TranslationUnit) string {
	var b strings.Builder
	for _, d := range tu.Decls {
		dumpDecl(&b, d)
	}
	return b.String()
}

func dumpDecl(b *strings.Builder, d Decl) {
	switch n := d.(type) {
	case *FunctionDecl:
		dumpFunction(b, n)
	case *StructDecl:
		dumpStruct(b, n)
	case *EnumDecl:
		fmt.Fprintf(b, "Enum '%s'\n", n.Name)
	case *RegionDecl:
		fmt.Fprintf(b, "Region '%s' { capacity: %d }\n", n.Name, n.Capacity)
	case *GlobalVarDecl:
		fmt.Fprintf(b, "Global '%s': %s\n", n.Name, typeName(n.ResolvedType))
	case *TypedefDecl:
		fmt.Fprintf(b, "Typedef '%s': %s\n", n.Name, typeName(n.Target))
	case *StaticAssertDecl:
		fmt.Fprintf(b, "StaticAssert '%s'\n", n.Message)
	}
}

func dumpFunction(b *strings.Builder, fn *FunctionDecl) {
	name := fn.Name
	if fn.IsMethod() {
		name = fn.MethodOwner + "::" + fn.Name
	}
	fmt.Fprintf(b, "Function '%s' -> %s ", name, typeName(fn.ReturnType))
	if fn.Body == nil {
		b.WriteString("(decl)\n")
		return
	}
	b.WriteString("{ ... }\n")
}

func dumpStruct(b *strings.Builder, sd *StructDecl) {
	fmt.Fprintf(b, "Struct '%s' {", sd.Name)
	for i, f := range sd.Fields {
		if i > 0 {
			b.WriteString(",")
		}
		fmt.Fprintf(b, " %s: %s", f.Name, typeName(f.Type))
	}
	b.WriteString(" }\n")
}

func typeName(t interface{ String() string }) string {
	if t == nil {
		return "<unresolved>"
	}
	return t.String()
}
