package passes

import (
	"testing"

	"dtsforge/internal/ts"
)

func TestSimplifyParentsFlattensAliasedIntersections(t *testing.T) {
	mixin := &ts.DeclTypeAlias{
		Name:     ident("Mixin"),
		Alias:    &ts.TypeIntersect{Types: []ts.Type{refTo("A"), refTo("B")}},
		CodePath: pathFor("Mixin"),
	}
	cls := &ts.DeclClass{Name: ident("C"), Parent: refTo("Mixin")}
	f := fileOf(mixin, cls)

	out := SimplifyParents(rootFor(nil), f)
	got := out.Members[1].(*ts.DeclClass)
	if got.Parent == nil || got.Parent.Name.String() != "A" {
		t.Fatalf("parent = %v, want A", got.Parent)
	}
	if len(got.Implements) != 1 || got.Implements[0].Name.String() != "B" {
		t.Errorf("remaining constituents must demote to implements")
	}
}

func TestSimplifyParentsFlattensVarTypedIntersections(t *testing.T) {
	f := fileOf(
		&ts.DeclVar{
			Name: ident("Mixed"),
			Type: &ts.TypeIntersect{Types: []ts.Type{refTo("A"), refTo("B")}},
		},
		&ts.DeclInterface{Name: ident("I"), Inheritance: []*ts.TypeRef{refTo("Mixed"), refTo("C")}},
	)

	out := SimplifyParents(rootFor(nil), f)
	iface := out.Members[1].(*ts.DeclInterface)
	if len(iface.Inheritance) != 3 {
		t.Fatalf("expected A, B, C, got %d parents", len(iface.Inheritance))
	}
	for i, want := range []string{"A", "B", "C"} {
		if got := iface.Inheritance[i].Name.String(); got != want {
			t.Errorf("parent %d = %s, want %s", i, got, want)
		}
	}
}

func TestSimplifyParentsPromotesFirstImplements(t *testing.T) {
	f := fileOf(&ts.DeclClass{
		Name:       ident("C"),
		Implements: []*ts.TypeRef{refTo("A"), refTo("B")},
	})

	out := SimplifyParents(rootFor(nil), f)
	got := out.Members[0].(*ts.DeclClass)
	if got.Parent == nil || got.Parent.Name.String() != "A" {
		t.Fatalf("first implements entry must be promoted to parent")
	}
	if len(got.Implements) != 1 || got.Implements[0].Name.String() != "B" {
		t.Errorf("remaining implements = %v", got.Implements)
	}
}

func TestSimplifyParentsIdentityForPlainHierarchies(t *testing.T) {
	f := fileOf(
		&ts.DeclInterface{Name: ident("Base")},
		&ts.DeclClass{Name: ident("C"), Parent: refTo("Base"), Implements: []*ts.TypeRef{refTo("I")}},
	)
	if out := SimplifyParents(rootFor(nil), f); out != f {
		t.Error("a hierarchy with nothing to flatten must pass through unchanged")
	}
}
