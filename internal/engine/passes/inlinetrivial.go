package passes

import (
	"dtsforge/internal/engine/scope"
	"dtsforge/internal/engine/transform"
	"dtsforge/internal/ts"
)

// InlineTrivial follows chains of trivial aliases, interfaces and re-exported
// enums to their ultimate target and repoints references directly at it.
// References carrying type arguments are never inlined, and the chain is only
// followed through declarations whose sole purpose is re-pointing: a marked
// alias to a bare reference, a marked empty interface with one parent, or an
// enum with an ExportedFrom origin.
func InlineTrivial(s *scope.Scope, f *ts.ParsedFile) *ts.ParsedFile {
	return transform.File(inlineTrivial{}, s, f)
}

type inlineTrivial struct{ transform.Identity }

func (inlineTrivial) EnterTypeRef(s *scope.Scope, ref *ts.TypeRef) *ts.TypeRef {
	if len(ref.TArgs) > 0 || ref.Name.IsPrimitive() {
		return ref
	}

	ld := scope.LoopDetector{}
	current := ref.Name
	from := s
	hops := 0

	for {
		var ok bool
		ld, ok = ld.Including(current, from)
		if !ok {
			s.Logger().Debug("trivial-alias cycle", "name", ref.Name.String())
			return ref
		}

		target, targetScope, found := firstTypeDecl(from, current)
		if !found {
			return ref
		}

		next, trivial := trivialTarget(target)
		if !trivial {
			if hops == 0 {
				return ref
			}
			final := declaredName(pathOf(target), current)
			if final.Equals(ref.Name) {
				return ref
			}
			c := *ref
			c.Name = final
			return &c
		}
		current = next
		from = targetScope
		hops++
	}
}

func firstTypeDecl(s *scope.Scope, q ts.QIdent) (ts.Decl, *scope.Scope, bool) {
	for _, r := range s.LookupIncludeScope(q) {
		if ts.IsTypeDecl(r.Decl) {
			return ts.Unwrapped(r.Decl), r.Scope, true
		}
	}
	return nil, nil, false
}

// trivialTarget returns where a trivial declaration points, or ok=false for
// a declaration that stands on its own.
func trivialTarget(d ts.Decl) (ts.QIdent, bool) {
	switch v := d.(type) {
	case *ts.DeclTypeAlias:
		if !v.Comments.Has(ts.MarkerIsTrivial) || len(v.TParams) > 0 {
			return ts.QIdent{}, false
		}
		if ref, ok := v.Alias.(*ts.TypeRef); ok && len(ref.TArgs) == 0 {
			return ref.Name, true
		}
	case *ts.DeclInterface:
		if !v.Comments.Has(ts.MarkerIsTrivial) {
			return ts.QIdent{}, false
		}
		if len(v.Members) == 0 && len(v.TParams) == 0 && len(v.Inheritance) == 1 {
			parent := v.Inheritance[0]
			if len(parent.TArgs) == 0 {
				return parent.Name, true
			}
		}
	case *ts.DeclEnum:
		if v.ExportedFrom != nil && len(v.ExportedFrom.TArgs) == 0 {
			return v.ExportedFrom.Name, true
		}
	}
	return ts.QIdent{}, false
}

func pathOf(d ts.Decl) ts.CodePath {
	if named, ok := d.(ts.NamedDecl); ok {
		return named.Path()
	}
	return ts.NoPath()
}
