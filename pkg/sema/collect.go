package sema

import (
	"github.com/safec-org/safec/pkg/ast"
	"github.com/safec-org/safec/pkg/types"
)

// resolveTypeof type-checks the expression a Typeof placeholder wraps (if
// it has not already been checked) and returns its resolved type, the only
// intentional back-edge in the AST graph (spec.md §9 "Typeof resolution").
func (s *Sema) resolveTypeof(tf *types.Typeof, scope *Scope, nctx nullCtx) types.Type {
	e, ok := tf.Expr.(ast.Expr)
	if !ok || e == nil {
		return types.Error()
	}
	if e.Type() == nil {
		s.checkExpr(e, scope, nctx)
	}
	if e.Type() == nil {
		return types.Error()
	}
	return e.Type()
}

// collect is Sema pass 1 (spec.md §4.7): insert every top-level symbol into
// the root scope without inspecting function bodies. Struct/enum/region
// shells are registered in a first sub-pass so forward references between
// declarations resolve regardless of source order, then fully resolved
// (fields, enumerator values, method registry) in a second sub-pass.
func (s *Sema) collect(tu *ast.TranslationUnit) {
	for _, d := range tu.Decls {
		switch n := d.(type) {
		case *ast.StructDecl:
			st := types.NewStruct(n.Name, n.IsUnion)
			st.IsPacked = n.IsPacked
			st.IsTaggedUnion = n.IsTaggedUnion
			n.ResolvedType = st
			s.structs[n.Name] = st
		case *ast.EnumDecl:
			et := types.NewEnum(n.Name)
			n.ResolvedType = et
			s.enums[n.Name] = et
		case *ast.RegionDecl:
			s.regions[n.Name] = n
			s.root.declare(&Symbol{Name: n.Name, Kind: SymRegion, Type: types.Void()})
		}
	}

	for _, d := range tu.Decls {
		if td, ok := d.(*ast.TypedefDecl); ok {
			s.typedefs[td.Name] = s.resolveType(td.Target, nil)
		}
	}

	for _, d := range tu.Decls {
		switch n := d.(type) {
		case *ast.StructDecl:
			s.collectStruct(n)
		case *ast.EnumDecl:
			s.collectEnum(n)
		case *ast.FunctionDecl:
			s.collectFunction(n)
		case *ast.GlobalVarDecl:
			s.collectGlobal(n)
		}
	}
}

func (s *Sema) collectStruct(n *ast.StructDecl) {
	st := n.ResolvedType
	maxPayload := 0
	for i, f := range n.Fields {
		ft := s.resolveType(f.Type, nil)
		st.Fields = append(st.Fields, types.Field{Name: f.Name, Type: ft, Index: i})
		if n.IsTaggedUnion {
			if sz := s.ce.SizeOf(ft); sz > int64(maxPayload) {
				maxPayload = int(sz)
			}
		}
	}
	st.MaxPayloadSize = maxPayload
	st.Defined = true

	for _, m := range n.Methods {
		s.collectFunction(m)
	}
}

func (s *Sema) collectEnum(n *ast.EnumDecl) {
	et := n.ResolvedType
	next := int64(0)
	for _, e := range n.Enumerators {
		val := next
		if e.HasExplicit {
			if v, ok := s.ce.EvalInt(e.Value); ok {
				val = v
			}
		}
		et.Enumerators = append(et.Enumerators, types.Enumerator{Name: e.Name, Value: val})
		next = val + 1
		s.root.declare(&Symbol{
			Name: e.Name, Kind: SymVariable, Type: et, Initialized: true, IsConst: true,
		})
	}
}

// collectFunction resolves a function's signature and declares its symbol
// (or registers it into the method table when it is a method, spec.md
// §4.7: "registers ... methods (StructName::methodName mangled key)").
func (s *Sema) collectFunction(n *ast.FunctionDecl) {
	generics := genericsMap(n.GenericParams)
	retType := s.resolveType(n.ReturnType, generics)
	n.ReturnType = retType
	paramTypes := make([]types.Type, len(n.Params))
	for i, p := range n.Params {
		p.Type = s.resolveType(p.Type, generics)
		paramTypes[i] = p.Type
	}
	n.SignatureType = types.NewFunction(retType, paramTypes, n.IsVariadic)

	if n.IsMethod() {
		key := n.MangledMethodKey()
		if existing, dup := s.methods[key]; dup && existing.Body != nil && n.Body != nil {
			s.d.Error(n.Loc(), "duplicate declaration of method '%s'", key)
		}
		s.methods[key] = n
		return
	}

	if existing := s.root.lookupLocal(n.Name); existing != nil {
		if fn, ok := existing.Decl.(*ast.FunctionDecl); ok && fn.Body == nil {
			// A prior declaration-only form being completed by a
			// definition; replace in place rather than erroring.
			existing.Decl = n
			existing.Type = n.SignatureType
			return
		}
		if n.Body != nil {
			s.d.Error(n.Loc(), "duplicate declaration of '%s'", n.Name)
		}
		return
	}
	s.root.declare(&Symbol{Name: n.Name, Kind: SymFunction, Type: n.SignatureType, Decl: n, Initialized: true, IsConst: true})
}

func (s *Sema) collectGlobal(n *ast.GlobalVarDecl) {
	n.ResolvedType = s.resolveType(n.DeclaredType, nil)
	if existing := s.root.lookupLocal(n.Name); existing != nil {
		s.d.Error(n.Loc(), "duplicate declaration of '%s'", n.Name)
		return
	}
	s.root.declare(&Symbol{
		Name: n.Name, Kind: SymVariable, Type: n.ResolvedType, Decl: n,
		Initialized: n.Init != nil, IsConst: n.IsConst,
	})
}

// genericsMap turns a function's generic-parameter list into a
// name->constraint lookup used by resolveType to distinguish a generic
// parameter occurrence from a forward-referenced struct/enum/typedef name.
func genericsMap(params []ast.GenericParam) map[string]string {
	if len(params) == 0 {
		return nil
	}
	m := make(map[string]string, len(params))
	for _, p := range params {
		m[p.Name] = p.Constraint
	}
	return m
}

// resolveType rewrites every bare-identifier type shell the parser produced
// (spec.md §4.5: "an unresolved named type...resolved by name at use
// sites") into its canonical registered Struct/Enum, a typedef's target, or
// a Generic placeholder when generics is non-nil and the name matches one
// of the function's own generic parameters. It recurses structurally
// through every composite type, mirroring pkg/clone's substType walk.
func (s *Sema) resolveType(t types.Type, generics map[string]string) types.Type {
	if t == nil {
		return nil
	}
	switch v := t.(type) {
	case *types.Struct:
		if v.Defined {
			return v
		}
		if generics != nil {
			if c, ok := generics[v.Name]; ok {
				return types.NewGeneric(v.Name, c)
			}
		}
		if canonical, ok := s.structs[v.Name]; ok {
			return canonical
		}
		if td, ok := s.typedefs[v.Name]; ok {
			return td
		}
		return v // forward reference not yet defined; left as a shell
	case *types.Enum:
		if len(v.Enumerators) > 0 {
			return v
		}
		if canonical, ok := s.enums[v.Name]; ok {
			return canonical
		}
		return v
	case *types.Pointer:
		return types.NewPointer(s.resolveType(v.Elem, generics), v.IsConst)
	case *types.Reference:
		return types.NewReference(s.resolveType(v.Elem, generics), v.RegionOf, v.Nullable, v.Mutable, v.ArenaName)
	case *types.Array:
		return types.NewArray(s.resolveType(v.Elem, generics), v.Size)
	case *types.Optional:
		return types.NewOptional(s.resolveType(v.Inner, generics))
	case *types.Slice:
		return types.NewSlice(s.resolveType(v.Elem, generics))
	case *types.Tuple:
		elems := make([]types.Type, len(v.Elements))
		for i, e := range v.Elements {
			elems[i] = s.resolveType(e, generics)
		}
		return types.NewTuple(elems)
	case *types.Function:
		params := make([]types.Type, len(v.Params))
		for i, p := range v.Params {
			params[i] = s.resolveType(p, generics)
		}
		return types.NewFunction(s.resolveType(v.Return, generics), params, v.Variadic)
	default:
		return t
	}
}
