package ts

import "testing"

func TestMembersByNameUnwrapsExports(t *testing.T) {
	iface := &DeclInterface{Name: SimpleIdent("Foo")}
	exported := &Export{Kind: ExportNamed, Exported: &ExporteeTree{Decl: iface}}
	ns := &DeclNamespace{Name: SimpleIdent("Foo")}

	byName := MembersByName([]Decl{exported, ns, &Import{}})
	if len(byName["Foo"]) != 2 {
		t.Fatalf("expected the merged pair under one key, got %d", len(byName["Foo"]))
	}
	if len(byName) != 1 {
		t.Errorf("unnamed members must not be indexed, got %d keys", len(byName))
	}
}

func TestUnwrapped(t *testing.T) {
	cls := &DeclClass{Name: SimpleIdent("C")}
	wrapped := &Export{Kind: ExportNamed, Exported: &ExporteeTree{Decl: cls}}
	if Unwrapped(wrapped) != Decl(cls) {
		t.Error("inline export should unwrap to the declaration")
	}
	if Unwrapped(cls) != Decl(cls) {
		t.Error("bare declaration should pass through")
	}

	names := &Export{Kind: ExportNamed, Exported: &ExporteeNames{}}
	if Unwrapped(names) != Decl(names) {
		t.Error("a name-list export has nothing to unwrap")
	}
}

func TestCommentsMarkers(t *testing.T) {
	c := NoComments().Add(MarkerIsTrivial)
	if !c.Has(MarkerIsTrivial) {
		t.Error("marker should be present after Add")
	}
	if c.Has(MarkerExpanded) {
		t.Error("unrelated marker reported present")
	}
	if NoComments().Has(MarkerIsTrivial) {
		t.Error("empty bag has no markers")
	}

	// Add returns a new bag; the original is unchanged.
	base := CommentsOf(Raw{Text: "// a"})
	extended := base.Add(MarkerCouldBeUndefined)
	if len(base.All()) != 1 || len(extended.All()) != 2 {
		t.Errorf("expected 1 and 2 entries, got %d and %d", len(base.All()), len(extended.All()))
	}
}

func TestTypeOfExpr(t *testing.T) {
	if tl, ok := TypeOfExpr(NumExpr(3)).(*TypeLiteral); !ok || tl.Literal.Value != "3" {
		t.Error("literal expression should widen to its literal type")
	}
	bin := &ExprBinaryOp{One: NumExpr(1), Op: "<<", Two: NumExpr(2)}
	if ref, ok := TypeOfExpr(bin).(*TypeRef); !ok || !ref.Name.Equals(NumberQIdent) {
		t.Error("shift expression should widen to number")
	}
	if !IsAny(TypeOfExpr(&ExprCall{})) {
		t.Error("calls widen to any")
	}
}

func TestFoldNum(t *testing.T) {
	if n, ok := FoldNum(NumExpr(7)); !ok || n != 7 {
		t.Errorf("FoldNum(7) = %d, %v", n, ok)
	}
	if _, ok := FoldNum(&ExprLiteral{Literal: StringLit("x")}); ok {
		t.Error("string literal must not fold")
	}
	if _, ok := FoldNum(&ExprRef{Ref: QIdentOfStrings("A")}); ok {
		t.Error("references must not fold")
	}
}
