package ts

// MembersByName indexes a container's members by unqualified name. Several
// declarations may legitimately share a name (overloads, class/namespace
// merges), so values are slices in source order. Exports wrapping an inline
// declaration are indexed under the wrapped declaration's name.
func MembersByName(members []Decl) map[string][]Decl {
	out := make(map[string][]Decl, len(members))
	for _, m := range members {
		if named, ok := NameOf(m); ok {
			key := named.Value()
			out[key] = append(out[key], m)
		}
	}
	return out
}

// NameOf returns the effective name of a member declaration, unwrapping
// inline exports. Globals, imports and non-inline exports are unnamed.
func NameOf(d Decl) (Ident, bool) {
	switch v := d.(type) {
	case NamedDecl:
		return v.DeclName(), true
	case *Export:
		if tree, ok := v.Exported.(*ExporteeTree); ok {
			return NameOf(tree.Decl)
		}
	}
	return Ident{}, false
}

// Unwrapped strips an inline-export wrapper off a declaration.
func Unwrapped(d Decl) Decl {
	if e, ok := d.(*Export); ok {
		if tree, ok := e.Exported.(*ExporteeTree); ok {
			return tree.Decl
		}
	}
	return d
}

// WithCodePath returns a copy of d carrying the given code path. Unnamed
// declarations (imports, exports, globals) are returned unchanged.
func WithCodePath(d Decl, cp CodePath) Decl {
	switch v := d.(type) {
	case *DeclInterface:
		c := *v
		c.CodePath = cp
		return &c
	case *DeclClass:
		c := *v
		c.CodePath = cp
		return &c
	case *DeclEnum:
		c := *v
		c.CodePath = cp
		return &c
	case *DeclVar:
		c := *v
		c.CodePath = cp
		return &c
	case *DeclFunction:
		c := *v
		c.CodePath = cp
		return &c
	case *DeclTypeAlias:
		c := *v
		c.CodePath = cp
		return &c
	case *DeclNamespace:
		c := *v
		c.CodePath = cp
		return &c
	case *DeclModule:
		c := *v
		c.CodePath = cp
		return &c
	case *AugmentedModule:
		c := *v
		c.CodePath = cp
		return &c
	case *Global:
		c := *v
		c.CodePath = cp
		return &c
	default:
		return d
	}
}

// IsTypeDecl reports whether d declares a type-level name (the set the
// scope engine's type-constrained lookup returns).
func IsTypeDecl(d Decl) bool {
	switch Unwrapped(d).(type) {
	case *DeclInterface, *DeclClass, *DeclTypeAlias, *DeclEnum:
		return true
	default:
		return false
	}
}
