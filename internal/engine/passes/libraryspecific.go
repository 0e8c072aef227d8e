package passes

import (
	"strings"

	"dtsforge/internal/engine/scope"
	"dtsforge/internal/engine/transform"
	"dtsforge/internal/ts"
)

// LibrarySpecific applies the bespoke micro-patch registered for the scope's
// library, if any. Each patch-set only implements the hooks it needs and
// leaves everything else as identity; libraries without an entry pass
// through untouched.
func LibrarySpecific(s *scope.Scope, f *ts.ParsedFile) *ts.ParsedFile {
	patch, ok := PatchFor(s.Library())
	if !ok {
		return f
	}
	return transform.File(patch, s, f)
}

// PatchFor looks up the patch-set for a library; ok=false means "no patch".
func PatchFor(lib ts.LibIdent) (transform.Transformation, bool) {
	patch, ok := libraryPatches[lib.String()]
	return patch, ok
}

var libraryPatches = map[string]transform.Transformation{
	"std":               stdPatch{},
	"react":             reactPatch{},
	"styled-components": styledComponentsPatch{},
	"semantic-ui-react": semanticUI{},
	"amap-js-api":       amapPatch{},
}

// stdPatch drops self-referential inheritance edges, which confuse the
// class hierarchy downstream.
type stdPatch struct{ transform.Identity }

func (stdPatch) EnterInterface(_ *scope.Scope, d *ts.DeclInterface) ts.Decl {
	var kept []*ts.TypeRef
	for _, parent := range d.Inheritance {
		if len(parent.Name.Parts) == 1 && parent.Name.Last().Equals(d.Name) {
			continue
		}
		kept = append(kept, parent)
	}
	if len(kept) == len(d.Inheritance) {
		return d
	}
	c := *d
	c.Inheritance = kept
	return &c
}

// reactPatch filters the *Capture duplicates of every DOM event member;
// they double the event surface for no modelling gain.
type reactPatch struct{ transform.Identity }

func (reactPatch) NewClassMembers(_ *scope.Scope, _ ts.Tree, members []ts.Member) []ts.Member {
	var out []ts.Member
	changed := false
	for _, m := range members {
		if name, ok := ts.MemberName(m); ok && strings.HasSuffix(name.Value(), "Capture") {
			changed = true
			continue
		}
		out = append(out, m)
	}
	if !changed {
		return members
	}
	return out
}

// styledComponentsPatch unwraps the Omit-based helper aliases that the
// converter cannot follow, keeping the underlying type and recording the
// simplification inline.
type styledComponentsPatch struct{ transform.Identity }

func (styledComponentsPatch) EnterTypeAlias(_ *scope.Scope, d *ts.DeclTypeAlias) ts.Decl {
	ref, ok := d.Alias.(*ts.TypeRef)
	if !ok || len(ref.TArgs) != 2 || !ref.Name.Equals(ts.QIdentOfStrings("Omit")) {
		return d
	}
	c := *d
	c.Comments = d.Comments.Add(ts.Warning("Omit<" + ts.Format(ref.TArgs[0]) + ", ...> simplified to its subject"))
	c.Alias = ref.TArgs[0]
	return &c
}

// semanticUI strips the catch-all string index signatures from component
// Props interfaces; they defeat the point of typed props.
type semanticUI struct{ transform.Identity }

func (semanticUI) EnterInterface(_ *scope.Scope, d *ts.DeclInterface) ts.Decl {
	if !strings.HasSuffix(d.Name.Value(), "Props") {
		return d
	}
	var kept []ts.Member
	changed := false
	for _, m := range d.Members {
		if idx, ok := m.(*ts.MemberIndex); ok {
			if _, dict := idx.Indexing.(*ts.IndexingDict); dict && idx.ValueType != nil && ts.IsAny(idx.ValueType) {
				changed = true
				continue
			}
		}
		kept = append(kept, m)
	}
	if !changed {
		return d
	}
	c := *d
	c.Members = kept
	return &c
}

// amapPatch drops the inheritance edge on the library's own Event interface;
// it shadows the DOM Event and produces an unbuildable hierarchy.
type amapPatch struct{ transform.Identity }

func (amapPatch) EnterInterface(_ *scope.Scope, d *ts.DeclInterface) ts.Decl {
	var kept []*ts.TypeRef
	changed := false
	for _, parent := range d.Inheritance {
		if parent.Name.Last().Value() == "Event" {
			changed = true
			continue
		}
		kept = append(kept, parent)
	}
	if !changed {
		return d
	}
	c := *d
	c.Inheritance = kept
	return &c
}
