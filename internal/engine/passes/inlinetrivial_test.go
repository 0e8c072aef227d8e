package passes

import (
	"testing"

	"dtsforge/internal/ts"
)

func trivialAlias(name, target string) *ts.DeclTypeAlias {
	return &ts.DeclTypeAlias{
		Comments: ts.Comments{}.Add(ts.MarkerIsTrivial),
		Name:     ident(name),
		Alias:    refTo(target),
		CodePath: pathFor(name),
	}
}

func TestInlineTrivialFollowsAliasChains(t *testing.T) {
	f := fileOf(
		trivialAlias("Shortcut", "Middle"),
		trivialAlias("Middle", "Target"),
		&ts.DeclInterface{Name: ident("Target"), CodePath: pathFor("Target")},
		&ts.DeclVar{Name: ident("v"), Type: refTo("Shortcut")},
	)

	out := InlineTrivial(rootFor(nil), f)
	v := out.Members[3].(*ts.DeclVar)
	if got := v.Type.(*ts.TypeRef).Name.String(); got != "Target" {
		t.Errorf("reference points at %s, want Target", got)
	}
}

func TestInlineTrivialFollowsReexportedEnums(t *testing.T) {
	f := fileOf(
		&ts.DeclEnum{Name: ident("Mode"), ExportedFrom: refTo("Real"), CodePath: pathFor("Mode")},
		&ts.DeclEnum{Name: ident("Real"), CodePath: pathFor("Real")},
		&ts.DeclVar{Name: ident("v"), Type: refTo("Mode")},
	)

	out := InlineTrivial(rootFor(nil), f)
	v := out.Members[2].(*ts.DeclVar)
	if got := v.Type.(*ts.TypeRef).Name.String(); got != "Real" {
		t.Errorf("reference points at %s, want Real", got)
	}
}

func TestInlineTrivialSkipsParameterizedRefs(t *testing.T) {
	f := fileOf(
		trivialAlias("Shortcut", "Target"),
		&ts.DeclInterface{Name: ident("Target"), CodePath: pathFor("Target")},
		&ts.DeclVar{Name: ident("v"), Type: ts.Ref(ts.QIdentOfStrings("Shortcut"), refTo("string"))},
	)
	if out := InlineTrivial(rootFor(nil), f); out != f {
		t.Error("references with type arguments must never be inlined")
	}
}

func TestInlineTrivialSkipsUnmarkedAliases(t *testing.T) {
	f := fileOf(
		&ts.DeclTypeAlias{Name: ident("Alias"), Alias: refTo("Target"), CodePath: pathFor("Alias")},
		&ts.DeclInterface{Name: ident("Target"), CodePath: pathFor("Target")},
		&ts.DeclVar{Name: ident("v"), Type: refTo("Alias")},
	)
	if out := InlineTrivial(rootFor(nil), f); out != f {
		t.Error("only marked aliases participate in inlining")
	}
}

func TestInlineTrivialBreaksCycles(t *testing.T) {
	f := fileOf(
		trivialAlias("A", "B"),
		trivialAlias("B", "A"),
		&ts.DeclVar{Name: ident("v"), Type: refTo("A")},
	)
	if out := InlineTrivial(rootFor(nil), f); out != f {
		t.Error("a trivial-alias cycle must leave the reference untouched")
	}
}
