package passes

import (
	"dtsforge/internal/engine/scope"
	"dtsforge/internal/engine/transform"
	"dtsforge/internal/ts"
)

// ResolveTypeQueries rewrites `typeof X` positions by looking X up in scope:
// a function target turns a consuming property into a method, a variable
// target substitutes its declared type, a class or interface target becomes
// a direct reference. Unresolvable or primitive-named queries degrade to
// `any` with a warning annotation; the pass never fails.
func ResolveTypeQueries(s *scope.Scope, f *ts.ParsedFile) *ts.ParsedFile {
	return transform.File(resolveQueries{}, s, f)
}

type resolveQueries struct{ transform.Identity }

type queryTarget struct {
	fn  *ts.DeclFunction
	vr  *ts.DeclVar
	ref *ts.TypeRef
}

func (resolveQueries) EnterMember(s *scope.Scope, m ts.Member) ts.Member {
	prop, ok := m.(*ts.MemberProperty)
	if !ok || prop.Expr != nil {
		return m
	}
	query, ok := prop.Type.(*ts.TypeQuery)
	if !ok {
		return m
	}

	target, ok := resolveQuery(s, query.Expr, scope.LoopDetector{})
	if !ok {
		return &ts.MemberProperty{
			Comments:   warned(s, prop.Comments, query.Expr),
			Level:      prop.Level,
			Name:       prop.Name,
			Type:       ts.TypeAny(),
			IsStatic:   prop.IsStatic,
			IsReadOnly: prop.IsReadOnly,
		}
	}
	switch {
	case target.fn != nil:
		return &ts.MemberFunction{
			Comments:   prop.Comments.Concat(target.fn.Comments),
			Level:      prop.Level,
			Name:       prop.Name,
			MethodType: ts.Normal,
			Signature:  target.fn.Signature,
			IsStatic:   prop.IsStatic,
			IsReadOnly: prop.IsReadOnly,
		}
	case target.vr != nil:
		c := *prop
		c.Type = varType(target.vr)
		return &c
	default:
		c := *prop
		c.Type = target.ref
		return &c
	}
}

func (resolveQueries) EnterVar(s *scope.Scope, d *ts.DeclVar) ts.Decl {
	if d.Expr != nil {
		return d
	}
	query, ok := d.Type.(*ts.TypeQuery)
	if !ok {
		return d
	}

	target, ok := resolveQuery(s, query.Expr, scope.LoopDetector{})
	if !ok {
		c := *d
		c.Comments = warned(s, d.Comments, query.Expr)
		c.Type = ts.TypeAny()
		return &c
	}
	switch {
	case target.fn != nil:
		return &ts.DeclFunction{
			Comments:  d.Comments.Concat(target.fn.Comments),
			Declared:  d.Declared,
			Name:      d.Name,
			Signature: target.fn.Signature,
			CodePath:  d.CodePath,
		}
	case target.vr != nil:
		c := *d
		c.Type = varType(target.vr)
		return &c
	default:
		c := *d
		c.Type = target.ref
		return &c
	}
}

func (resolveQueries) EnterType(s *scope.Scope, t ts.Type) ts.Type {
	query, ok := t.(*ts.TypeQuery)
	if !ok {
		return t
	}
	target, ok := resolveQuery(s, query.Expr, scope.LoopDetector{})
	if !ok {
		return &ts.TypeRef{
			Comments: ts.CommentsOf(ts.Warning("unable to resolve typeof " + query.Expr.String())),
			Name:     ts.AnyQIdent,
		}
	}
	switch {
	case target.fn != nil:
		return &ts.TypeFunction{Signature: target.fn.Signature}
	case target.vr != nil:
		return varType(target.vr)
	default:
		return target.ref
	}
}

// resolveQuery follows a typeof target through variables that are
// themselves typeof-typed, guarded by the loop detector keyed on the scope
// position each hop was resolved at.
func resolveQuery(s *scope.Scope, q ts.QIdent, ld scope.LoopDetector) (queryTarget, bool) {
	if q.IsEmpty() || q.IsPrimitive() {
		s.Logger().Warn("unresolvable type query", "name", q.String())
		return queryTarget{}, false
	}
	ld, ok := ld.Including(q, s)
	if !ok {
		s.Logger().Warn("circular type query", "name", q.String())
		return queryTarget{}, false
	}

	for _, r := range s.LookupIncludeScope(q) {
		switch d := ts.Unwrapped(r.Decl).(type) {
		case *ts.DeclFunction:
			return queryTarget{fn: d}, true
		case *ts.DeclVar:
			if inner, ok := d.Type.(*ts.TypeQuery); ok {
				return resolveQuery(r.Scope, inner.Expr, ld)
			}
			return queryTarget{vr: d}, true
		case *ts.DeclClass:
			return queryTarget{ref: ts.Ref(declaredName(d.CodePath, q))}, true
		case *ts.DeclInterface:
			return queryTarget{ref: ts.Ref(declaredName(d.CodePath, q))}, true
		}
	}
	s.Logger().Warn("unresolved type query", "name", q.String(), "library", s.Library().String())
	return queryTarget{}, false
}

func declaredName(cp ts.CodePath, fallback ts.QIdent) ts.QIdent {
	if cp.HasPath() {
		return cp.QName
	}
	return fallback
}

func varType(v *ts.DeclVar) ts.Type {
	if v.Type == nil {
		return ts.TypeAny()
	}
	return v.Type
}

func warned(s *scope.Scope, cs ts.Comments, q ts.QIdent) ts.Comments {
	s.Logger().Warn("falling back to any for type query", "name", q.String())
	return cs.Add(ts.Warning("unable to resolve typeof " + q.String()))
}
