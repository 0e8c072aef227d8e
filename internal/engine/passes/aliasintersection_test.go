package passes

import (
	"testing"

	"dtsforge/internal/ts"
)

func TestAliasIntersectionBecomesInterface(t *testing.T) {
	member := &ts.MemberProperty{Name: ident("extra"), Type: refTo("string")}
	alias := &ts.DeclTypeAlias{
		Name:    ident("Combined"),
		TParams: []ts.TypeParam{{Name: ident("T")}},
		Alias: &ts.TypeIntersect{Types: []ts.Type{
			refTo("Base"),
			&ts.TypeObject{Members: []ts.Member{member}},
			refTo("Other"),
		}},
		CodePath: pathFor("Combined"),
	}
	f := fileOf(alias)

	out := TypeAliasIntersection(rootFor(nil), f)
	iface, ok := out.Members[0].(*ts.DeclInterface)
	if !ok {
		t.Fatalf("expected an interface, got %T", out.Members[0])
	}
	if iface.Name.Value() != "Combined" || len(iface.TParams) != 1 {
		t.Error("name and type parameters must carry over")
	}
	if len(iface.Inheritance) != 2 {
		t.Fatalf("expected both references as parents, got %d", len(iface.Inheritance))
	}
	if len(iface.Members) != 1 || iface.Members[0] != ts.Member(member) {
		t.Error("object-type members must become the interface body")
	}
	if !iface.CodePath.QName.Equals(alias.CodePath.QName) {
		t.Error("code path must carry over")
	}
}

func TestAliasIntersectionRejectsOtherOperands(t *testing.T) {
	cases := []struct {
		name    string
		operand ts.Type
	}{
		{"union", &ts.TypeUnion{Types: []ts.Type{refTo("A"), refTo("B")}}},
		{"function", &ts.TypeFunction{Signature: &ts.FunSig{}}},
		{"literal", &ts.TypeLiteral{Literal: ts.StringLit("x")}},
	}
	for _, tc := range cases {
		f := fileOf(&ts.DeclTypeAlias{
			Name:  ident("T"),
			Alias: &ts.TypeIntersect{Types: []ts.Type{refTo("Base"), tc.operand}},
		})
		if out := TypeAliasIntersection(rootFor(nil), f); out != f {
			t.Errorf("%s operand: the alias must stay an alias", tc.name)
		}
	}
}

func TestAliasIntersectionLeavesPlainAliases(t *testing.T) {
	f := fileOf(&ts.DeclTypeAlias{Name: ident("T"), Alias: refTo("Base")})
	if out := TypeAliasIntersection(rootFor(nil), f); out != f {
		t.Error("a non-intersection alias must pass through unchanged")
	}
}
