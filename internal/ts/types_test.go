package ts

import "testing"

func TestUnionOfFlattens(t *testing.T) {
	inner := UnionOf(Ref(StringQIdent), Ref(NumberQIdent))
	out := UnionOf(Ref(BooleanQIdent), inner)

	u, ok := out.(*TypeUnion)
	if !ok {
		t.Fatalf("expected union, got %T", out)
	}
	if len(u.Types) != 3 {
		t.Errorf("expected 3 flattened members, got %d", len(u.Types))
	}
}

func TestUnionOfDegenerate(t *testing.T) {
	if !IsNever(UnionOf()) {
		t.Error("empty union should collapse to never")
	}

	single := Ref(StringQIdent)
	if got := UnionOf(single); got != Type(single) {
		t.Error("one-element union should be the element itself")
	}

	if !IsNever(UnionOf(nil, nil)) {
		t.Error("union of nils should collapse to never")
	}
}

func TestIntersectOfFlattens(t *testing.T) {
	inner := IntersectOf(Ref(QIdentOfStrings("A")), Ref(QIdentOfStrings("B")))
	out := IntersectOf(inner, Ref(QIdentOfStrings("C")))

	i, ok := out.(*TypeIntersect)
	if !ok {
		t.Fatalf("expected intersection, got %T", out)
	}
	if len(i.Types) != 3 {
		t.Errorf("expected 3 flattened members, got %d", len(i.Types))
	}
}

func TestIsAny(t *testing.T) {
	if !IsAny(TypeAny()) {
		t.Error("TypeAny should satisfy IsAny")
	}
	if IsAny(Ref(AnyQIdent, Ref(StringQIdent))) {
		t.Error("any with type arguments is not the keyword type")
	}
	if IsAny(Ref(StringQIdent)) {
		t.Error("string is not any")
	}
}
