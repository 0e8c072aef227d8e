package passes

import (
	"testing"

	"dtsforge/internal/ts"
)

func TestTypeQueryOnVarSubstitutesType(t *testing.T) {
	f := fileOf(
		&ts.DeclVar{Name: ident("original"), Type: refTo("string")},
		&ts.DeclVar{Name: ident("copy"), Type: &ts.TypeQuery{Expr: ts.QIdentOfStrings("original")}},
	)

	out := ResolveTypeQueries(rootFor(nil), f)
	v := out.Members[1].(*ts.DeclVar)
	if got := ts.Format(v.Type); got != "string" {
		t.Errorf("copy: %s, want string", got)
	}
}

func TestTypeQueryOnFunctionTurnsPropertyIntoMethod(t *testing.T) {
	sig := &ts.FunSig{ResultType: refTo("number")}
	f := fileOf(
		&ts.DeclFunction{Name: ident("mk"), Signature: sig},
		&ts.DeclInterface{Name: ident("Api"), Members: []ts.Member{
			&ts.MemberProperty{Name: ident("create"), Type: &ts.TypeQuery{Expr: ts.QIdentOfStrings("mk")}},
		}},
	)

	out := ResolveTypeQueries(rootFor(nil), f)
	iface := out.Members[1].(*ts.DeclInterface)
	m, ok := iface.Members[0].(*ts.MemberFunction)
	if !ok {
		t.Fatalf("expected a method, got %T", iface.Members[0])
	}
	if m.Name.Value() != "create" || m.Signature != sig {
		t.Error("method must keep the property name and adopt the function signature")
	}
}

func TestTypeQueryOnClassBecomesReference(t *testing.T) {
	f := fileOf(
		&ts.DeclClass{Name: ident("Widget"), CodePath: pathFor("Widget")},
		&ts.DeclVar{Name: ident("w"), Type: &ts.TypeQuery{Expr: ts.QIdentOfStrings("Widget")}},
	)

	out := ResolveTypeQueries(rootFor(nil), f)
	v := out.Members[1].(*ts.DeclVar)
	ref, ok := v.Type.(*ts.TypeRef)
	if !ok || ref.Name.String() != "Widget" {
		t.Errorf("expected a direct reference to Widget, got %s", ts.Format(v.Type))
	}
}

func TestTypeQueryFollowsVarChains(t *testing.T) {
	f := fileOf(
		&ts.DeclVar{Name: ident("a"), Type: refTo("number")},
		&ts.DeclVar{Name: ident("b"), Type: &ts.TypeQuery{Expr: ts.QIdentOfStrings("a")}},
		&ts.DeclVar{Name: ident("c"), Type: &ts.TypeQuery{Expr: ts.QIdentOfStrings("b")}},
	)

	out := ResolveTypeQueries(rootFor(nil), f)
	v := out.Members[2].(*ts.DeclVar)
	if got := ts.Format(v.Type); got != "number" {
		t.Errorf("c: %s, want number", got)
	}
}

func TestTypeQueryUnresolvableDegradesToAny(t *testing.T) {
	f := fileOf(&ts.DeclVar{Name: ident("v"), Type: &ts.TypeQuery{Expr: ts.QIdentOfStrings("missing")}})

	out := ResolveTypeQueries(rootFor(nil), f)
	v := out.Members[0].(*ts.DeclVar)
	if !ts.IsAny(v.Type) {
		t.Errorf("expected any, got %s", ts.Format(v.Type))
	}
	if v.Comments.IsEmpty() {
		t.Error("the degradation must leave a warning annotation")
	}
}

func TestTypeQueryCircularDegradesToAny(t *testing.T) {
	f := fileOf(
		&ts.DeclVar{Name: ident("a"), Type: &ts.TypeQuery{Expr: ts.QIdentOfStrings("b")}},
		&ts.DeclVar{Name: ident("b"), Type: &ts.TypeQuery{Expr: ts.QIdentOfStrings("a")}},
	)

	out := ResolveTypeQueries(rootFor(nil), f)
	for i := 0; i < 2; i++ {
		if !ts.IsAny(out.Members[i].(*ts.DeclVar).Type) {
			t.Errorf("member %d must degrade to any", i)
		}
	}
}

func TestTypeQueryInBareTypePosition(t *testing.T) {
	f := fileOf(
		&ts.DeclFunction{Name: ident("handler"), Signature: &ts.FunSig{ResultType: refTo("void")}},
		&ts.DeclTypeAlias{Name: ident("H"), Alias: &ts.TypeQuery{Expr: ts.QIdentOfStrings("handler")}},
	)

	out := ResolveTypeQueries(rootFor(nil), f)
	alias := out.Members[1].(*ts.DeclTypeAlias)
	if _, ok := alias.Alias.(*ts.TypeFunction); !ok {
		t.Errorf("expected a function type, got %s", ts.Format(alias.Alias))
	}
}
