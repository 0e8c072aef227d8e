package passes

import (
	"dtsforge/internal/engine/scope"
	"dtsforge/internal/ts"
)

var testLib = ts.Library("mylib")

func rootFor(deps map[ts.LibIdent]*ts.ParsedFile) *scope.Scope {
	return scope.NewRoot(testLib, nil, deps)
}

func fileOf(members ...ts.Decl) *ts.ParsedFile {
	return &ts.ParsedFile{Members: members, CodePath: ts.PathOf(testLib, ts.QIdent{})}
}

func ident(name string) ts.Ident { return ts.SimpleIdent(name) }

func refTo(parts ...string) *ts.TypeRef { return ts.Ref(ts.QIdentOfStrings(parts...)) }

func pathFor(parts ...string) ts.CodePath {
	return ts.PathOf(testLib, ts.QIdentOfStrings(parts...))
}
