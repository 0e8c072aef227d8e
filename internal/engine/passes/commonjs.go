// Package passes contains the concrete rewrite passes the pipeline composes.
// Each pass is a pure function from (scope, tree) to tree: when its
// precondition does not hold it returns its input unchanged, reference-equal.
package passes

import (
	"dtsforge/internal/engine/scope"
	"dtsforge/internal/engine/transform"
	"dtsforge/internal/ts"
)

// HandleCommonJSModules normalizes the canonical CommonJS interop shape:
// `export = Foo` next to `class Foo` and `namespace Foo`. The namespace's
// members are flattened to the module's top level as named re-exports,
// self-references inside them are shortened to point at the new position,
// and redundant `type N = Foo.N` aliases are dropped.
func HandleCommonJSModules(s *scope.Scope, f *ts.ParsedFile) *ts.ParsedFile {
	return transform.File(commonJS{}, s, f)
}

type commonJS struct{ transform.Identity }

func (commonJS) EnterModule(s *scope.Scope, mod *ts.DeclModule) *ts.DeclModule {
	target, ok := commonJSExportTarget(mod.Members)
	if !ok {
		return mod
	}

	nsIndex := -1
	var ns *ts.DeclNamespace
	for i, m := range mod.Members {
		if n, ok := ts.Unwrapped(m).(*ts.DeclNamespace); ok && n.Name.Equals(target) {
			nsIndex = i
			ns = n
			break
		}
	}
	if ns == nil {
		return mod
	}

	prefix := ts.QIdentOf(target)
	var flattened []ts.Decl
	for _, member := range ns.Members {
		inner := ts.Unwrapped(member)
		if isRedundantAlias(inner, prefix) {
			continue
		}
		rewritten := transform.Decl(shortenRefs{prefix: prefix}, s.Descend(mod), inner)
		if named, ok := rewritten.(ts.NamedDecl); ok {
			rewritten = ts.WithCodePath(rewritten, mod.CodePath.Add(named.DeclName()))
		}
		flattened = append(flattened, &ts.Export{
			Kind:     ts.ExportNamed,
			Exported: &ts.ExporteeTree{Decl: rewritten.(ts.Decl)},
		})
	}

	out := make([]ts.Decl, 0, len(mod.Members)-1+len(flattened))
	for i, m := range mod.Members {
		if i == nsIndex {
			out = append(out, flattened...)
			continue
		}
		out = append(out, m)
	}
	return mod.WithMembers(out).(*ts.DeclModule)
}

// commonJSExportTarget finds the single identifier of the module's first
// `export =` statement. Exports with an alias, naming several identifiers,
// a qualified name, or of any other export kind never match.
func commonJSExportTarget(members []ts.Decl) (ts.Ident, bool) {
	for _, m := range members {
		e, ok := m.(*ts.Export)
		if !ok {
			continue
		}
		// Only the first export statement is considered.
		if e.Kind != ts.ExportNamespaced {
			return ts.Ident{}, false
		}
		names, ok := e.Exported.(*ts.ExporteeNames)
		if !ok || names.From != nil || len(names.Names) != 1 {
			return ts.Ident{}, false
		}
		n := names.Names[0]
		if n.Alias != nil || len(n.QName.Parts) != 1 {
			return ts.Ident{}, false
		}
		return n.QName.Head(), true
	}
	return ts.Ident{}, false
}

// isRedundantAlias matches `type N = Foo.N` where Foo is the flattened
// namespace: after flattening the alias would point at itself.
func isRedundantAlias(d ts.Decl, prefix ts.QIdent) bool {
	ta, ok := d.(*ts.DeclTypeAlias)
	if !ok || len(ta.TParams) > 0 {
		return false
	}
	ref, ok := ta.Alias.(*ts.TypeRef)
	if !ok || len(ref.TArgs) > 0 {
		return false
	}
	return ref.Name.Equals(prefix.Add(ta.Name))
}

// shortenRefs strips a leading qualified-name prefix off type references and
// type queries, so flattened members refer to their new top-level siblings.
type shortenRefs struct {
	transform.Identity
	prefix ts.QIdent
}

func (r shortenRefs) EnterTypeRef(_ *scope.Scope, ref *ts.TypeRef) *ts.TypeRef {
	if shortened, ok := stripPrefix(ref.Name, r.prefix); ok {
		c := *ref
		c.Name = shortened
		return &c
	}
	return ref
}

func (r shortenRefs) EnterType(_ *scope.Scope, t ts.Type) ts.Type {
	if q, ok := t.(*ts.TypeQuery); ok {
		if shortened, ok := stripPrefix(q.Expr, r.prefix); ok {
			return &ts.TypeQuery{Expr: shortened}
		}
	}
	return t
}

func stripPrefix(q, prefix ts.QIdent) (ts.QIdent, bool) {
	if len(q.Parts) <= len(prefix.Parts) || !q.HasPrefix(prefix) {
		return q, false
	}
	return ts.QIdent{Parts: q.Parts[len(prefix.Parts):]}, true
}
