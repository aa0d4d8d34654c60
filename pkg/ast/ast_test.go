package ast

import (
	"testing"

	"github.com/safec-org/safec/pkg/source"
	"github.com/safec-org/safec/pkg/types"
	"github.com/stretchr/testify/require"
)

func TestReferentImplementations(t *testing.T) {
	var v Referent = &VarDeclStmt{Name: "x", ResolvedType: types.Int(32, true)}
	require.Equal(t, "x", v.RefName())
	require.True(t, v.RefType().Equals(types.Int(32, true)))

	var p Referent = &Param{Name: "y", Type: types.Bool()}
	require.Equal(t, "y", p.RefName())

	fn := &FunctionDecl{Name: "add", SignatureType: types.NewFunction(types.Int(32, true), nil, false)}
	var f Referent = fn
	require.Equal(t, "add", f.RefName())
}

func TestDumpFunctionDeclOnly(t *testing.T) {
	tu := &TranslationUnit{
		FileName: "a.sc",
		Decls: []Decl{
			&FunctionDecl{
				DeclBase:   DeclBase{At: source.NewLocation("a.sc", 1, 1)},
				Name:       "main",
				ReturnType: types.Int(32, true),
			},
		},
	}
	out := Dump(tu)
	require.Contains(t, out, "Function 'main' -> int32 (decl)")
}

func TestDumpStruct(t *testing.T) {
	tu := &TranslationUnit{Decls: []Decl{
		&StructDecl{
			Name: "Point",
			Fields: []FieldDecl{
				{Name: "x", Type: types.Int(32, true)},
				{Name: "y", Type: types.Int(32, true)},
			},
		},
	}}
	out := Dump(tu)
	require.Contains(t, out, "Struct 'Point' { x: int32, y: int32 }")
}
