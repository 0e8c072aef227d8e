package passes

import (
	"testing"

	"dtsforge/internal/ts"
)

func litValue(t *testing.T, e ts.Expr) string {
	t.Helper()
	l, ok := e.(*ts.ExprLiteral)
	if !ok {
		t.Fatalf("expected a literal expression, got %T", e)
	}
	return l.Literal.Value
}

func TestInferEnumNumbersImplicitMembers(t *testing.T) {
	f := fileOf(&ts.DeclEnum{Name: ident("E"), Members: []*ts.EnumMember{
		{Name: ident("A")},
		{Name: ident("B"), Expr: ts.NumExpr(5)},
		{Name: ident("C")},
	}})

	out := InferEnumTypes(rootFor(nil), f)
	e := out.Members[0].(*ts.DeclEnum)
	// The implicit counter keeps running across explicit members.
	for i, want := range []string{"0", "5", "1"} {
		if got := litValue(t, e.Members[i].Expr); got != want {
			t.Errorf("member %d = %s, want %s", i, got, want)
		}
	}
}

func TestInferEnumSubstitutesSiblingReferences(t *testing.T) {
	f := fileOf(&ts.DeclEnum{Name: ident("E"), Members: []*ts.EnumMember{
		{Name: ident("A")},
		{Name: ident("B"), Expr: &ts.ExprRef{Ref: ts.QIdentOfStrings("A")}},
		{Name: ident("C"), Expr: &ts.ExprRef{Ref: ts.QIdentOfStrings("B")}},
	}})

	out := InferEnumTypes(rootFor(nil), f)
	e := out.Members[0].(*ts.DeclEnum)
	if got := litValue(t, e.Members[1].Expr); got != "0" {
		t.Errorf("B = %s, want A's value 0", got)
	}
	// C sees B after B's own substitution, so the chain collapses forward.
	if got := litValue(t, e.Members[2].Expr); got != "0" {
		t.Errorf("C = %s, want 0", got)
	}
}

func TestInferEnumLeavesForwardReferences(t *testing.T) {
	f := fileOf(&ts.DeclEnum{Name: ident("E"), Members: []*ts.EnumMember{
		{Name: ident("A"), Expr: &ts.ExprRef{Ref: ts.QIdentOfStrings("Z")}},
		{Name: ident("Z"), Expr: ts.NumExpr(9)},
	}})

	out := InferEnumTypes(rootFor(nil), f)
	e := out.Members[0].(*ts.DeclEnum)
	if _, ok := e.Members[0].Expr.(*ts.ExprRef); !ok {
		t.Errorf("a forward reference must survive, got %T", e.Members[0].Expr)
	}
}

func TestInferEnumIdentityWhenExplicit(t *testing.T) {
	f := fileOf(&ts.DeclEnum{Name: ident("E"), Members: []*ts.EnumMember{
		{Name: ident("A"), Expr: ts.NumExpr(1)},
		{Name: ident("B"), Expr: ts.NumExpr(2)},
	}})
	if out := InferEnumTypes(rootFor(nil), f); out != f {
		t.Error("a fully explicit enum must pass through unchanged")
	}
}
