package pipeline

import (
	"context"
	"testing"

	"dtsforge/internal/core/errors"
	"dtsforge/internal/engine/scope"
	"dtsforge/internal/ts"
)

var testLib = ts.Library("mylib")

func emptyFile() *ts.ParsedFile {
	return &ts.ParsedFile{CodePath: ts.PathOf(testLib, ts.QIdent{})}
}

func TestDefaultPassOrder(t *testing.T) {
	want := []string{
		"HandleCommonJSModules",
		"MoveGlobals",
		"InferEnumTypes",
		"RejiggerIntersections",
		"SplitMethods",
		"RemoveStubs",
		"DropProperties",
		"ResolveTypeQueries",
		"InlineTrivial",
		"SimplifyParents",
		"TypeAliasIntersection",
		"ExtractClasses",
		"LibrarySpecific",
	}
	got := Default()
	if len(got) != len(want) {
		t.Fatalf("expected %d passes, got %d", len(want), len(got))
	}
	for i, p := range got {
		if p.Name != want[i] {
			t.Errorf("pass %d = %s, want %s", i, p.Name, want[i])
		}
		if p.Apply == nil {
			t.Errorf("pass %s has no apply function", p.Name)
		}
	}
}

func TestRunRecordsTimings(t *testing.T) {
	rewritten := emptyFile()
	ps := []Pass{
		{Name: "noop", Apply: func(_ *scope.Scope, f *ts.ParsedFile) *ts.ParsedFile { return f }},
		{Name: "rewrite", Apply: func(_ *scope.Scope, _ *ts.ParsedFile) *ts.ParsedFile { return rewritten }},
	}

	res, err := New(nil, nil, ps).Run(context.Background(), testLib, emptyFile())
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if res.File != rewritten {
		t.Error("the last pass output must be the result file")
	}
	if len(res.Timings) != 2 {
		t.Fatalf("expected a timing per pass, got %d", len(res.Timings))
	}
	if res.Timings[0].Changed {
		t.Error("a same-pointer pass must record Changed=false")
	}
	if !res.Timings[1].Changed {
		t.Error("a rewriting pass must record Changed=true")
	}
}

func TestRunTreatsNilAsUnchanged(t *testing.T) {
	ps := []Pass{
		{Name: "nil", Apply: func(_ *scope.Scope, _ *ts.ParsedFile) *ts.ParsedFile { return nil }},
	}
	f := emptyFile()
	res, err := New(nil, nil, ps).Run(context.Background(), testLib, f)
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if res.File != f {
		t.Error("a nil pass result must keep the current file")
	}
	if res.Timings[0].Changed {
		t.Error("a nil result must count as unchanged")
	}
}

func TestRunRecoversPanickingPass(t *testing.T) {
	ps := []Pass{
		{Name: "boom", Apply: func(_ *scope.Scope, _ *ts.ParsedFile) *ts.ParsedFile {
			panic("bad tree")
		}},
	}
	_, err := New(nil, nil, ps).Run(context.Background(), testLib, emptyFile())
	if err == nil {
		t.Fatal("expected an error from the panicking pass")
	}
	if !errors.IsCode(err, errors.CodeTransformError) {
		t.Errorf("expected a transform error, got %v", err)
	}
}

func TestRunHonorsCancellation(t *testing.T) {
	called := false
	ps := []Pass{
		{Name: "skipped", Apply: func(_ *scope.Scope, f *ts.ParsedFile) *ts.ParsedFile {
			called = true
			return f
		}},
	}
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := New(nil, nil, ps).Run(ctx, testLib, emptyFile())
	if err == nil {
		t.Fatal("expected a cancellation error")
	}
	if called {
		t.Error("no pass may run after cancellation")
	}
}

func TestRunDefaultOnRealFile(t *testing.T) {
	f := &ts.ParsedFile{
		Members: []ts.Decl{
			&ts.DeclEnum{Name: ts.SimpleIdent("Level"), Members: []*ts.EnumMember{
				{Name: ts.SimpleIdent("Low")},
				{Name: ts.SimpleIdent("High")},
			}},
			&ts.DeclVar{Name: ts.SimpleIdent("flag"), Type: ts.Ref(ts.QIdentOfStrings("boolean"))},
		},
		CodePath: ts.PathOf(testLib, ts.QIdent{}),
	}

	res, err := New(nil, nil, Default()).Run(context.Background(), testLib, f)
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	// The enum gains inferred values and the var is hoisted into a global
	// block, so at least two passes must report a change.
	changes := 0
	for _, tm := range res.Timings {
		if tm.Changed {
			changes++
		}
	}
	if changes < 2 {
		t.Errorf("expected MoveGlobals and InferEnumTypes to rewrite, got %d changes", changes)
	}
	if res.File == f {
		t.Error("the result must be a rewritten tree")
	}
}
