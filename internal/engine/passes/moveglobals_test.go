package passes

import (
	"testing"

	"dtsforge/internal/ts"
)

func TestMoveGlobalsHoistsValueDeclarations(t *testing.T) {
	cls := &ts.DeclClass{
		Name:   ident("Widget"),
		Parent: refTo("Base"),
		Members: []ts.Member{
			&ts.MemberCtor{Signature: &ts.FunSig{}},
			&ts.MemberFunction{Name: ident("create"), IsStatic: true, Signature: &ts.FunSig{}},
			&ts.MemberFunction{Name: ident("render"), Signature: &ts.FunSig{}},
		},
	}
	enum := &ts.DeclEnum{Name: ident("Mode"), IsValue: true}
	f := fileOf(
		&ts.DeclVar{Name: ident("version"), Type: refTo("string")},
		&ts.DeclFunction{Name: ident("boot"), Signature: &ts.FunSig{}},
		cls,
		enum,
		&ts.DeclInterface{Name: ident("Options")},
	)

	out := MoveGlobals(rootFor(nil), f)
	if out == f {
		t.Fatal("expected hoisting to rewrite the file")
	}
	if len(out.Members) != 4 {
		t.Fatalf("expected 3 kept declarations plus a global block, got %d", len(out.Members))
	}

	iface, ok := out.Members[0].(*ts.DeclInterface)
	if !ok || iface.Name.Value() != "Widget" {
		t.Fatalf("class must leave a type-only interface behind, got %T", out.Members[0])
	}
	if len(iface.Members) != 1 {
		t.Errorf("constructor and statics must not survive in the projection, got %d members", len(iface.Members))
	}
	if len(iface.Inheritance) != 1 || iface.Inheritance[0] != cls.Parent {
		t.Error("class parent must become interface inheritance")
	}

	typeOnly := out.Members[1].(*ts.DeclEnum)
	if typeOnly.IsValue {
		t.Error("enum left behind must be the type-only projection")
	}

	g, ok := out.Members[3].(*ts.Global)
	if !ok {
		t.Fatalf("expected a synthetic global block, got %T", out.Members[3])
	}
	if !g.Declared {
		t.Error("synthetic global block must be marked declared")
	}
	if len(g.Members) != 4 {
		t.Fatalf("expected var, function, class and enum in the global block, got %d", len(g.Members))
	}
	moved := g.Members[0].(*ts.DeclVar)
	want := f.CodePath.Add(ts.GlobalIdent).Add(ident("version"))
	if !moved.CodePath.QName.Equals(want.QName) {
		t.Errorf("hoisted code path = %s", moved.CodePath)
	}
}

func TestMoveGlobalsMergesIntoExistingBlock(t *testing.T) {
	existing := &ts.Global{Members: []ts.Decl{
		&ts.DeclInterface{Name: ident("Window")},
	}}
	f := fileOf(existing, &ts.DeclVar{Name: ident("v"), Type: refTo("number")})

	out := MoveGlobals(rootFor(nil), f)
	if len(out.Members) != 1 {
		t.Fatalf("expected only the merged global block, got %d members", len(out.Members))
	}
	g := out.Members[0].(*ts.Global)
	if len(g.Members) != 2 {
		t.Fatalf("expected the existing member plus the hoisted var, got %d", len(g.Members))
	}
	if _, ok := g.Members[1].(*ts.DeclVar); !ok {
		t.Errorf("hoisted var must append after existing members, got %T", g.Members[1])
	}
}

func TestMoveGlobalsKeepsInlineExportWrappers(t *testing.T) {
	exported := &ts.Export{
		Kind:     ts.ExportNamed,
		Exported: &ts.ExporteeTree{Decl: &ts.DeclClass{Name: ident("C")}},
	}
	out := MoveGlobals(rootFor(nil), fileOf(exported))

	e, ok := out.Members[0].(*ts.Export)
	if !ok {
		t.Fatalf("projection must stay export-wrapped, got %T", out.Members[0])
	}
	if _, ok := e.Exported.(*ts.ExporteeTree).Decl.(*ts.DeclInterface); !ok {
		t.Error("wrapped declaration must be the interface projection")
	}
}

func TestMoveGlobalsIdentityWithoutValues(t *testing.T) {
	f := fileOf(
		&ts.DeclInterface{Name: ident("A")},
		&ts.DeclTypeAlias{Name: ident("B"), Alias: refTo("A")},
		&ts.DeclEnum{Name: ident("E")},
		&ts.DeclModule{Name: ident("m")},
	)
	if out := MoveGlobals(rootFor(nil), f); out != f {
		t.Error("a file without value-level globals must pass through unchanged")
	}
}
