package passes

import (
	"dtsforge/internal/engine/scope"
	"dtsforge/internal/engine/transform"
	"dtsforge/internal/ts"
)

// RejiggerIntersections distributes an intersection over the single union it
// contains: `A & (B|C) & D` becomes `(A&B&D) | (A&C&D)`. Intersections with
// zero or several union operands are left unchanged to bound combinatorial
// blow-up.
func RejiggerIntersections(s *scope.Scope, f *ts.ParsedFile) *ts.ParsedFile {
	return transform.File(rejigger{}, s, f)
}

type rejigger struct{ transform.Identity }

func (rejigger) EnterType(_ *scope.Scope, t ts.Type) ts.Type {
	inter, ok := t.(*ts.TypeIntersect)
	if !ok {
		return t
	}

	unionIndex := -1
	unions := 0
	for i, op := range inter.Types {
		if _, ok := op.(*ts.TypeUnion); ok {
			unions++
			unionIndex = i
		}
	}
	if unions != 1 {
		return t
	}

	union := inter.Types[unionIndex].(*ts.TypeUnion)
	branches := make([]ts.Type, len(union.Types))
	for i, member := range union.Types {
		ops := make([]ts.Type, len(inter.Types))
		copy(ops, inter.Types)
		ops[unionIndex] = member
		branches[i] = ts.IntersectOf(ops...)
	}
	return ts.UnionOf(branches...)
}
