package passes

import (
	"dtsforge/internal/engine/scope"
	"dtsforge/internal/engine/transform"
	"dtsforge/internal/ts"
)

// InferEnumTypes assigns sequential integer literals to enum members that
// lack an initializer, then substitutes references to sibling members with
// the sibling's expression. The implicit counter is not reset by intervening
// explicit members, and the substitution only follows one hop: chains of
// depth greater than one are only partially collapsed. That limitation is
// deliberate and must not be "fixed" here.
func InferEnumTypes(s *scope.Scope, f *ts.ParsedFile) *ts.ParsedFile {
	return transform.File(inferEnums{}, s, f)
}

type inferEnums struct{ transform.Identity }

func (inferEnums) EnterEnum(_ *scope.Scope, e *ts.DeclEnum) ts.Decl {
	needsWork := false
	for _, m := range e.Members {
		if m.Expr == nil {
			needsWork = true
			break
		}
		if _, ok := m.Expr.(*ts.ExprRef); ok {
			needsWork = true
			break
		}
	}
	if !needsWork {
		return e
	}

	members := make([]*ts.EnumMember, len(e.Members))
	next := 0
	for i, m := range e.Members {
		if m.Expr != nil {
			members[i] = m
			continue
		}
		c := *m
		c.Expr = ts.NumExpr(next)
		next++
		members[i] = &c
	}

	// One-hop sibling substitution: the map holds each member's expression
	// after its own substitution, so earlier rewrites are visible to later
	// members but transitive chains are not chased further.
	resolved := make(map[string]ts.Expr, len(members))
	for i, m := range members {
		expr := m.Expr
		if ref, ok := expr.(*ts.ExprRef); ok && len(ref.Ref.Parts) == 1 {
			if prior, found := resolved[ref.Ref.Head().Value()]; found {
				c := *m
				c.Expr = prior
				members[i] = &c
				expr = prior
			}
		}
		resolved[m.Name.Value()] = expr
	}

	c := *e
	c.Members = members
	return &c
}
