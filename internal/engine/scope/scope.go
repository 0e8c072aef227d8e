// Package scope implements the tree scope: a parent-linked, immutable view
// over a declaration tree and its resolved dependencies that answers
// qualified-name lookups from any position in the tree.
package scope

import (
	"log/slog"
	"sort"
	"strings"

	"dtsforge/internal/ts"
)

// Result pairs a resolved declaration with the scope at its position, so
// callers can continue contextual resolution from where the name was found.
type Result struct {
	Decl  ts.Decl
	Scope *Scope
}

type root struct {
	lib    ts.LibIdent
	logger *slog.Logger
	deps   map[string]*ts.ParsedFile
}

// Scope is one position in the tree. Scopes are immutable: Descend returns
// a new value chained to the receiver, never mutating it.
type Scope struct {
	root    *root
	parent  *Scope
	current ts.Tree
}

// NewRoot builds the outermost scope for one library. deps maps dependency
// library identifiers to their already-parsed (and already-transformed)
// files; the scope only consumes the map, it never triggers resolution.
func NewRoot(lib ts.LibIdent, logger *slog.Logger, deps map[ts.LibIdent]*ts.ParsedFile) *Scope {
	if logger == nil {
		logger = slog.Default()
	}
	m := make(map[string]*ts.ParsedFile, len(deps))
	for k, v := range deps {
		m[k.String()] = v
	}
	return &Scope{root: &root{lib: lib, logger: logger, deps: m}}
}

// Descend returns a child scope whose innermost position is node.
func (s *Scope) Descend(node ts.Tree) *Scope {
	return &Scope{root: s.root, parent: s, current: node}
}

func (s *Scope) Logger() *slog.Logger { return s.root.logger }

func (s *Scope) Library() ts.LibIdent { return s.root.lib }

// Current is the innermost tree position, nil at the root.
func (s *Scope) Current() ts.Tree { return s.current }

// Stack returns the ancestor positions, innermost first.
func (s *Scope) Stack() []ts.Tree {
	var out []ts.Tree
	for cur := s; cur != nil; cur = cur.parent {
		if cur.current != nil {
			out = append(out, cur.current)
		}
	}
	return out
}

// File is the enclosing parsed file, or nil when the scope never descended
// into one.
func (s *Scope) File() *ts.ParsedFile {
	for cur := s; cur != nil; cur = cur.parent {
		if f, ok := cur.current.(*ts.ParsedFile); ok {
			return f
		}
	}
	return nil
}

// SurroundingClass is the nearest enclosing class, or nil.
func (s *Scope) SurroundingClass() *ts.DeclClass {
	for cur := s; cur != nil; cur = cur.parent {
		if c, ok := cur.current.(*ts.DeclClass); ok {
			return c
		}
	}
	return nil
}

// SurroundingInterface is the nearest enclosing interface, or nil.
func (s *Scope) SurroundingInterface() *ts.DeclInterface {
	for cur := s; cur != nil; cur = cur.parent {
		if i, ok := cur.current.(*ts.DeclInterface); ok {
			return i
		}
	}
	return nil
}

// WithinCtor reports whether the scope is inside a construct signature.
func (s *Scope) WithinCtor() bool {
	for cur := s; cur != nil; cur = cur.parent {
		if _, ok := cur.current.(*ts.MemberCtor); ok {
			return true
		}
	}
	return false
}

// WithinModule reports whether the scope is inside a declared module.
func (s *Scope) WithinModule() bool {
	for cur := s; cur != nil; cur = cur.parent {
		if _, ok := cur.current.(*ts.DeclModule); ok {
			return true
		}
	}
	return false
}

// IsTypeParam reports whether name is bound as a type parameter anywhere on
// the ancestor stack.
func (s *Scope) IsTypeParam(name ts.Ident) bool {
	check := func(tps []ts.TypeParam) bool {
		for i := range tps {
			if tps[i].Name.Equals(name) {
				return true
			}
		}
		return false
	}
	for cur := s; cur != nil; cur = cur.parent {
		switch v := cur.current.(type) {
		case *ts.DeclInterface:
			if check(v.TParams) {
				return true
			}
		case *ts.DeclClass:
			if check(v.TParams) {
				return true
			}
		case *ts.DeclTypeAlias:
			if check(v.TParams) {
				return true
			}
		case *ts.FunSig:
			if check(v.TParams) {
				return true
			}
		}
	}
	return false
}

// Lookup resolves a qualified name visible from this scope. An unresolved
// name is not an error: the result is simply empty and the caller decides
// what that means.
func (s *Scope) Lookup(q ts.QIdent) []ts.Decl {
	results := s.LookupIncludeScope(q)
	out := make([]ts.Decl, len(results))
	for i, r := range results {
		out[i] = r.Decl
	}
	return out
}

// LookupType is Lookup constrained to type-level declarations (interfaces,
// classes, type aliases, enums).
func (s *Scope) LookupType(q ts.QIdent) []ts.Decl {
	var out []ts.Decl
	for _, r := range s.LookupIncludeScope(q) {
		if ts.IsTypeDecl(r.Decl) {
			out = append(out, ts.Unwrapped(r.Decl))
		}
	}
	return out
}

// LookupIncludeScope resolves a qualified name and reports the scope each
// match was found in. A fresh loop detector is threaded per call.
func (s *Scope) LookupIncludeScope(q ts.QIdent) []Result {
	return s.lookup(q, LoopDetector{})
}

// LookupGuarded is LookupIncludeScope with a caller-supplied loop detector,
// for passes whose own recursion (ctor analysis, trivial-alias chains) must
// share cycle state with name resolution.
func (s *Scope) LookupGuarded(q ts.QIdent, ld LoopDetector) []Result {
	return s.lookup(q, ld)
}

func (s *Scope) lookup(q ts.QIdent, ld LoopDetector) []Result {
	if q.IsEmpty() || q.IsPrimitive() {
		return nil
	}
	ld, ok := ld.Including(q, s)
	if !ok {
		s.root.logger.Debug("name resolution loop", "name", q.String())
		return nil
	}

	if q.Head().Equals(ts.GlobalIdent) {
		return s.lookupGlobal(q.Tail(), ld)
	}

	// Walk the ancestor chain outward; the first container producing a
	// match wins, mirroring lexical shadowing.
	for cur := s; cur != nil; cur = cur.parent {
		c, ok := cur.current.(ts.Container)
		if !ok {
			continue
		}
		if found := searchMembers(cur, c.ContainerMembers(), q, ld); len(found) > 0 {
			return found
		}
	}

	return s.lookupDeps(q, ld)
}

// searchMembers resolves q against one member list. Multiple results occur
// for legitimately merged declarations (namespace + class of one name).
func searchMembers(at *Scope, members []ts.Decl, q ts.QIdent, ld LoopDetector) []Result {
	byName := ts.MembersByName(members)
	cands := byName[q.Head().Value()]

	if len(cands) == 0 {
		// The value side of a class/namespace merge hides behind "^".
		for _, d := range byName[ts.NamespacedIdent.Value()] {
			if c, ok := ts.Unwrapped(d).(ts.Container); ok {
				if found := searchMembers(at.Descend(c), c.ContainerMembers(), q, ld); len(found) > 0 {
					return found
				}
			}
		}
		return nil
	}

	var out []Result
	for _, cand := range cands {
		inner := ts.Unwrapped(cand)
		if q.Tail().IsEmpty() {
			out = append(out, Result{Decl: cand, Scope: at.Descend(inner)})
			continue
		}
		if c, ok := inner.(ts.Container); ok {
			out = append(out, searchMembers(at.Descend(c), c.ContainerMembers(), q.Tail(), ld)...)
		}
	}
	return out
}

// lookupGlobal bypasses nesting: the flat top level of the current file plus
// every dependency file's global sections.
func (s *Scope) lookupGlobal(q ts.QIdent, ld LoopDetector) []Result {
	if q.IsEmpty() {
		return nil
	}
	var out []Result
	if f := s.File(); f != nil {
		out = append(out, searchMembers(s.fileScope(), f.Members, q, ld)...)
	}
	for _, key := range s.depKeys() {
		dep := s.root.deps[key]
		depScope := s.depScope(dep)
		for _, m := range dep.Members {
			if g, ok := m.(*ts.Global); ok {
				out = append(out, searchMembers(depScope.Descend(g), g.Members, q, ld)...)
			}
		}
	}
	return out
}

// lookupDeps resolves names that escaped the current file: a leading
// fragment naming another library, or a bare name provided by a dependency's
// top level (the stdlib case).
func (s *Scope) lookupDeps(q ts.QIdent, ld LoopDetector) []Result {
	head := q.Head().Value()
	if dep, ok := s.depByName(head); ok && !q.Tail().IsEmpty() {
		depScope := s.depScope(dep)
		if found := searchMembers(depScope, dep.Members, q.Tail(), ld); len(found) > 0 {
			return found
		}
	}
	for _, key := range s.depKeys() {
		dep := s.root.deps[key]
		depScope := s.depScope(dep)
		if found := searchMembers(depScope, dep.Members, q, ld); len(found) > 0 {
			return found
		}
	}
	return nil
}

// HasAmbientType reports whether the standard-library or Node dependency
// provides a type-level declaration with the given unqualified name, at its
// top level or inside a global block.
func (s *Scope) HasAmbientType(name ts.Ident) bool {
	q := ts.QIdentOf(name)
	for _, key := range []string{ts.StdLib.String(), ts.NodeLib.String()} {
		dep, ok := s.root.deps[key]
		if !ok {
			continue
		}
		depScope := s.depScope(dep)
		for _, r := range searchMembers(depScope, dep.Members, q, LoopDetector{}) {
			if ts.IsTypeDecl(r.Decl) {
				return true
			}
		}
		for _, m := range dep.Members {
			g, ok := m.(*ts.Global)
			if !ok {
				continue
			}
			for _, r := range searchMembers(depScope.Descend(g), g.Members, q, LoopDetector{}) {
				if ts.IsTypeDecl(r.Decl) {
					return true
				}
			}
		}
	}
	return false
}

func (s *Scope) depByName(name string) (*ts.ParsedFile, bool) {
	if dep, ok := s.root.deps[name]; ok {
		return dep, true
	}
	dep, ok := s.root.deps[strings.ToLower(name)]
	return dep, ok
}

func (s *Scope) depKeys() []string {
	keys := make([]string, 0, len(s.root.deps))
	for k := range s.root.deps {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// fileScope rewinds to the scope positioned at the enclosing file.
func (s *Scope) fileScope() *Scope {
	for cur := s; cur != nil; cur = cur.parent {
		if _, ok := cur.current.(*ts.ParsedFile); ok {
			return cur
		}
	}
	return s
}

// depScope builds a scope rooted at a dependency's file, sharing this
// scope's root so further lookups see the same dependency map.
func (s *Scope) depScope(dep *ts.ParsedFile) *Scope {
	return &Scope{root: s.root, parent: &Scope{root: s.root}, current: dep}
}
