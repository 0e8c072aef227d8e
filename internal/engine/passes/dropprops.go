package passes

import (
	"strings"

	"dtsforge/internal/engine/scope"
	"dtsforge/internal/engine/transform"
	"dtsforge/internal/ts"
)

// DropProperties strips members that only add noise downstream: value
// declarations named `__promisify__`, class/interface members named
// `prototype` or carrying a Unicode-escape name, and members typed exactly
// `never`. Everything else passes through in order.
func DropProperties(s *scope.Scope, f *ts.ParsedFile) *ts.ParsedFile {
	return transform.File(dropProps{}, s, f)
}

type dropProps struct{ transform.Identity }

func (dropProps) NewMembers(_ *scope.Scope, _ ts.Container, members []ts.Decl) []ts.Decl {
	var out []ts.Decl
	changed := false
	for _, m := range members {
		if v, ok := ts.Unwrapped(m).(*ts.DeclVar); ok && v.Name.Value() == "__promisify__" {
			changed = true
			continue
		}
		out = append(out, m)
	}
	if !changed {
		return members
	}
	return out
}

func (dropProps) NewClassMembers(_ *scope.Scope, _ ts.Tree, members []ts.Member) []ts.Member {
	var out []ts.Member
	changed := false
	for _, m := range members {
		if dropMember(m) {
			changed = true
			continue
		}
		out = append(out, m)
	}
	if !changed {
		return members
	}
	return out
}

func dropMember(m ts.Member) bool {
	if name, ok := ts.MemberName(m); ok {
		if name.Value() == "prototype" || strings.HasPrefix(name.Value(), `\u`) {
			return true
		}
	}
	if p, ok := m.(*ts.MemberProperty); ok && p.Type != nil && ts.IsNever(p.Type) {
		return true
	}
	return false
}
