package ts

import "testing"

func TestFormatInterface(t *testing.T) {
	d := &DeclInterface{
		Name:        SimpleIdent("Point"),
		TParams:     []TypeParam{{Name: SimpleIdent("T")}},
		Inheritance: []*TypeRef{Ref(QIdentOfStrings("Base"))},
		Members: []Member{
			&MemberProperty{Name: SimpleIdent("x"), Type: Ref(NumberQIdent)},
			&MemberFunction{Name: SimpleIdent("dist"), Signature: &FunSig{
				Params:     []*FunParam{{Name: SimpleIdent("other"), Type: Ref(QIdentOfStrings("Point"))}},
				ResultType: Ref(NumberQIdent),
			}},
		},
	}
	got := Format(d)
	want := "interface Point<T> extends Base { x: number; dist(other: Point): number }"
	if got != want {
		t.Errorf("Format = %q, want %q", got, want)
	}
}

func TestFormatUnionAndQuery(t *testing.T) {
	u := UnionOf(Ref(StringQIdent), &TypeLiteral{Literal: NumberLit("1")})
	if got := Format(u); got != "string | 1" {
		t.Errorf("Format(union) = %q", got)
	}

	q := &TypeQuery{Expr: QIdentOfStrings("Foo", "bar")}
	if got := Format(q); got != "typeof Foo.bar" {
		t.Errorf("Format(query) = %q", got)
	}
}

func TestFormatExportEquals(t *testing.T) {
	e := &Export{
		Kind:     ExportNamespaced,
		Exported: &ExporteeNames{Names: []ExportedName{{QName: QIdentOfStrings("Foo")}}},
	}
	if got := Format(e); got != "export = Foo" {
		t.Errorf("Format(export=) = %q", got)
	}
}
