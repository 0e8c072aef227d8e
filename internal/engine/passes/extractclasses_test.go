package passes

import (
	"testing"

	"dtsforge/internal/ts"
)

func ctorSig(result ts.Type) *ts.FunSig {
	return &ts.FunSig{
		Params:     []*ts.FunParam{{Name: ident("opts"), Type: refTo("string")}},
		ResultType: result,
	}
}

func TestExtractClassesPromotesConstructorVars(t *testing.T) {
	f := fileOf(
		&ts.DeclInterface{Name: ident("Widget"), CodePath: pathFor("Widget")},
		&ts.DeclVar{
			Name: ident("factory"),
			Type: &ts.TypeConstructor{Signature: ctorSig(refTo("Widget"))},
		},
	)

	out := ExtractClasses(rootFor(nil), f)
	cls, ok := out.Members[1].(*ts.DeclClass)
	if !ok {
		t.Fatalf("expected the var replaced by a class, got %T", out.Members[1])
	}
	if cls.Name.Value() != "factory" {
		t.Errorf("class name = %s", cls.Name.Value())
	}
	if len(cls.Implements) != 1 || cls.Implements[0].Name.String() != "Widget" {
		t.Error("the construction result must become an implements entry")
	}
	ctor, ok := cls.Members[0].(*ts.MemberCtor)
	if !ok {
		t.Fatalf("expected a construct signature, got %T", cls.Members[0])
	}
	if ctor.Signature.ResultType != nil || ctor.Signature.TParams != nil {
		t.Error("result type and type parameters must be stripped off the constructor")
	}
	if !cls.CodePath.QName.Equals(ts.QIdentOfStrings("factory")) {
		t.Errorf("class code path = %s", cls.CodePath)
	}
}

func TestExtractClassesThroughConstructorInterface(t *testing.T) {
	f := fileOf(
		&ts.DeclInterface{Name: ident("Widget"), CodePath: pathFor("Widget")},
		&ts.DeclInterface{Name: ident("WidgetConstructor"), Members: []ts.Member{
			&ts.MemberCtor{Signature: ctorSig(refTo("Widget"))},
		}, CodePath: pathFor("WidgetConstructor")},
		&ts.DeclVar{Name: ident("Widget"), Type: refTo("WidgetConstructor")},
	)

	out := ExtractClasses(rootFor(nil), f)
	if len(out.Members) != 4 {
		t.Fatalf("a colliding name must keep the var and append the class, got %d members", len(out.Members))
	}
	cls, ok := out.Members[3].(*ts.DeclClass)
	if !ok {
		t.Fatalf("expected an appended class, got %T", out.Members[3])
	}
	if cls.Name.Value() != "WidgetCls" {
		t.Errorf("colliding class must take the backup name, got %s", cls.Name.Value())
	}
	if len(cls.Implements) != 1 || cls.Implements[0].Name.String() != "Widget" {
		t.Error("the backup class still implements the construction result")
	}
}

func TestExtractClassesRequiresSimpleResults(t *testing.T) {
	cases := []struct {
		name string
		f    *ts.ParsedFile
	}{
		{"generic result", fileOf(
			&ts.DeclInterface{Name: ident("Box"), TParams: []ts.TypeParam{{Name: ident("T")}}},
			&ts.DeclVar{Name: ident("mk"), Type: &ts.TypeConstructor{Signature: ctorSig(refTo("Box"))}},
		)},
		{"unresolvable result", fileOf(
			&ts.DeclVar{Name: ident("mk"), Type: &ts.TypeConstructor{Signature: ctorSig(refTo("Missing"))}},
		)},
		{"initialized var", fileOf(
			&ts.DeclInterface{Name: ident("Widget")},
			&ts.DeclVar{
				Name: ident("mk"),
				Type: &ts.TypeConstructor{Signature: ctorSig(refTo("Widget"))},
				Expr: &ts.ExprRef{Ref: ts.QIdentOfStrings("impl")},
			},
		)},
	}
	for _, tc := range cases {
		if out := ExtractClasses(rootFor(nil), tc.f); out != tc.f {
			t.Errorf("%s: the var must not be promoted", tc.name)
		}
	}
}
