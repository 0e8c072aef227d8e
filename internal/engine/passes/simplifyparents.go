package passes

import (
	"dtsforge/internal/engine/scope"
	"dtsforge/internal/engine/transform"
	"dtsforge/internal/ts"
)

// SimplifyParents normalizes inheritance lists. Classes end up with at most
// one parent in the extends slot (the first), the rest demoted to
// implements; a class with no parent but implements entries has its first
// implements entry promoted. For classes and interfaces alike, inheritance
// entries that are aliases of intersections or typeof-expressions pointing
// at intersections are flattened into their constituent references.
func SimplifyParents(s *scope.Scope, f *ts.ParsedFile) *ts.ParsedFile {
	return transform.File(simplifyParents{}, s, f)
}

type simplifyParents struct{ transform.Identity }

func (simplifyParents) EnterClass(s *scope.Scope, d *ts.DeclClass) ts.Decl {
	var entries []*ts.TypeRef
	if d.Parent != nil {
		entries = append(entries, flattenParent(s, d.Parent)...)
	}
	for _, impl := range d.Implements {
		entries = append(entries, flattenParent(s, impl)...)
	}

	var parent *ts.TypeRef
	var implements []*ts.TypeRef
	if len(entries) > 0 {
		parent = entries[0]
		implements = entries[1:]
	}
	if parent == d.Parent && sameRefs(implements, d.Implements) {
		return d
	}
	c := *d
	c.Parent = parent
	c.Implements = implements
	return &c
}

func (simplifyParents) EnterInterface(s *scope.Scope, d *ts.DeclInterface) ts.Decl {
	var entries []*ts.TypeRef
	for _, inh := range d.Inheritance {
		entries = append(entries, flattenParent(s, inh)...)
	}
	if sameRefs(entries, d.Inheritance) {
		return d
	}
	c := *d
	c.Inheritance = entries
	return &c
}

// flattenParent expands one inheritance entry. An entry naming a type alias
// whose right side is an intersection of references, or a variable whose
// declared type (possibly through typeof) is such an intersection, becomes
// the constituent references; anything else stays as-is.
func flattenParent(s *scope.Scope, entry *ts.TypeRef) []*ts.TypeRef {
	if len(entry.TArgs) > 0 {
		return []*ts.TypeRef{entry}
	}
	for _, r := range s.LookupIncludeScope(entry.Name) {
		switch d := ts.Unwrapped(r.Decl).(type) {
		case *ts.DeclTypeAlias:
			if len(d.TParams) > 0 {
				continue
			}
			if refs, ok := refsOfIntersection(d.Alias); ok {
				return refs
			}
		case *ts.DeclVar:
			tpe := d.Type
			if q, ok := tpe.(*ts.TypeQuery); ok {
				if target, ok := resolveQuery(r.Scope, q.Expr, scope.LoopDetector{}); ok && target.vr != nil {
					tpe = target.vr.Type
				}
			}
			if refs, ok := refsOfIntersection(tpe); ok {
				return refs
			}
		}
	}
	return []*ts.TypeRef{entry}
}

func refsOfIntersection(t ts.Type) ([]*ts.TypeRef, bool) {
	inter, ok := t.(*ts.TypeIntersect)
	if !ok {
		return nil, false
	}
	refs := make([]*ts.TypeRef, 0, len(inter.Types))
	for _, op := range inter.Types {
		ref, ok := op.(*ts.TypeRef)
		if !ok {
			return nil, false
		}
		refs = append(refs, ref)
	}
	return refs, true
}

func sameRefs(a, b []*ts.TypeRef) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
