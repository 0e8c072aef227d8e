package passes

import (
	"dtsforge/internal/engine/scope"
	"dtsforge/internal/ts"
)

// MoveGlobals hoists a file's top-level value declarations (vars, functions,
// classes, runtime enums) into a synthetic `declare global` block, leaving
// type-only projections behind at the top level. Modules and augmented
// modules are untouched. A file with no value-level globals is returned
// unchanged, reference-equal; the pipeline relies on that identity to
// short-circuit.
func MoveGlobals(_ *scope.Scope, f *ts.ParsedFile) *ts.ParsedFile {
	var kept []ts.Decl
	var moved []ts.Decl
	var existing *ts.Global
	existingIndex := -1

	for _, member := range f.Members {
		inner := ts.Unwrapped(member)
		switch v := inner.(type) {
		case *ts.Global:
			if existing == nil {
				existing = v
				existingIndex = len(kept)
			}
			kept = append(kept, member)
		case *ts.DeclClass:
			kept = append(kept, rewrap(member, classAsInterface(v)))
			moved = append(moved, inner)
		case *ts.DeclEnum:
			if v.IsValue {
				kept = append(kept, rewrap(member, enumAsTypeOnly(v)))
				moved = append(moved, inner)
			} else {
				kept = append(kept, member)
			}
		case *ts.DeclVar, *ts.DeclFunction:
			moved = append(moved, inner)
		default:
			kept = append(kept, member)
		}
	}

	if len(moved) == 0 {
		return f
	}

	globalPath := f.CodePath.Add(ts.GlobalIdent)
	for i, m := range moved {
		if named, ok := m.(ts.NamedDecl); ok {
			moved[i] = ts.WithCodePath(m, globalPath.Add(named.DeclName()))
		}
	}

	if existing != nil {
		merged := existing.WithMembers(append(append([]ts.Decl{}, existing.Members...), moved...))
		kept[existingIndex] = merged
	} else {
		kept = append(kept, &ts.Global{
			Declared: true,
			Members:  moved,
			CodePath: globalPath,
		})
	}
	return f.WithMembers(kept).(*ts.ParsedFile)
}

// classAsInterface is the keep-types-only projection of a class: instance
// shape stays visible at the type level while the constructor value moves
// into the global block.
func classAsInterface(c *ts.DeclClass) ts.Decl {
	var inheritance []*ts.TypeRef
	if c.Parent != nil {
		inheritance = append(inheritance, c.Parent)
	}
	inheritance = append(inheritance, c.Implements...)

	var members []ts.Member
	for _, m := range c.Members {
		switch v := m.(type) {
		case *ts.MemberCtor:
			continue
		case *ts.MemberFunction:
			if !v.IsStatic {
				members = append(members, m)
			}
		case *ts.MemberProperty:
			if !v.IsStatic {
				members = append(members, m)
			}
		default:
			members = append(members, m)
		}
	}

	return &ts.DeclInterface{
		Comments:    c.Comments,
		Declared:    c.Declared,
		Name:        c.Name,
		TParams:     c.TParams,
		Inheritance: inheritance,
		Members:     members,
		CodePath:    c.CodePath,
	}
}

func enumAsTypeOnly(e *ts.DeclEnum) ts.Decl {
	c := *e
	c.IsValue = false
	return &c
}

// rewrap preserves an inline-export wrapper when the wrapped declaration is
// projected to a new one.
func rewrap(original ts.Decl, projected ts.Decl) ts.Decl {
	if e, ok := original.(*ts.Export); ok {
		if _, ok := e.Exported.(*ts.ExporteeTree); ok {
			c := *e
			c.Exported = &ts.ExporteeTree{Decl: projected}
			return &c
		}
	}
	return projected
}
