package passes

import (
	"dtsforge/internal/engine/scope"
	"dtsforge/internal/engine/transform"
	"dtsforge/internal/ts"
)

// RemoveStubs deletes empty top-level interfaces (no members, no
// inheritance) whose name duplicates a type already provided by the
// standard-library or Node ambient declarations: redundant forward
// declarations. Only the direct top level of a file or global block is
// considered; namespaces are not descended into.
func RemoveStubs(s *scope.Scope, f *ts.ParsedFile) *ts.ParsedFile {
	return transform.File(removeStubs{}, s, f)
}

type removeStubs struct{ transform.Identity }

func (removeStubs) NewMembers(s *scope.Scope, c ts.Container, members []ts.Decl) []ts.Decl {
	switch c.(type) {
	case *ts.ParsedFile, *ts.Global:
	default:
		return members
	}

	var out []ts.Decl
	changed := false
	for _, m := range members {
		iface, ok := ts.Unwrapped(m).(*ts.DeclInterface)
		if ok && len(iface.Members) == 0 && len(iface.Inheritance) == 0 && s.HasAmbientType(iface.Name) {
			s.Logger().Debug("removed stub interface", "name", iface.Name.Value())
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
