package ts

import "testing"

func TestRefsInTraversalOrder(t *testing.T) {
	f := &ParsedFile{Members: []Decl{
		&DeclTypeAlias{
			Name:  SimpleIdent("Pair"),
			Alias: UnionOf(Ref(QIdentOfStrings("A")), Ref(QIdentOfStrings("B"), Ref(QIdentOfStrings("C")))),
		},
		&DeclVar{Name: SimpleIdent("v"), Type: Ref(QIdentOfStrings("D"))},
	}}

	refs := RefsIn(f)
	var names []string
	for _, r := range refs {
		names = append(names, r.Name.String())
	}
	want := []string{"A", "B", "C", "D"}
	if len(names) != len(want) {
		t.Fatalf("got refs %v, want %v", names, want)
	}
	for i := range want {
		if names[i] != want[i] {
			t.Fatalf("got refs %v, want %v", names, want)
		}
	}
}

func TestCollectVisitsSharedNodesOnce(t *testing.T) {
	shared := Ref(QIdentOfStrings("Shared"))
	f := &ParsedFile{Members: []Decl{
		&DeclVar{Name: SimpleIdent("a"), Type: shared},
		&DeclVar{Name: SimpleIdent("b"), Type: shared},
	}}

	if refs := RefsIn(f); len(refs) != 1 {
		t.Errorf("shared node collected %d times, want 1", len(refs))
	}
}

func TestChildrenOfSignature(t *testing.T) {
	sig := &FunSig{
		TParams:    []TypeParam{{Name: SimpleIdent("T"), UpperBound: Ref(QIdentOfStrings("Base"))}},
		Params:     []*FunParam{{Name: SimpleIdent("x"), Type: Ref(StringQIdent)}},
		ResultType: Ref(NumberQIdent),
	}
	fn := &DeclFunction{Name: SimpleIdent("f"), Signature: sig}

	refs := RefsIn(fn)
	if len(refs) != 3 {
		t.Errorf("expected bound, param and result refs, got %d", len(refs))
	}
}
