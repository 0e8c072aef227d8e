package passes

import (
	"dtsforge/internal/engine/scope"
	"dtsforge/internal/engine/transform"
	"dtsforge/internal/ts"
)

// TypeAliasIntersection converts `type T = A & {..} & B` into an interface
// when every operand is a legal inheritance operand: type references become
// parents, structural object types contribute their members to the body.
// Any illegal operand (union, function, literal, ...) leaves the alias
// unchanged, reference-equal.
func TypeAliasIntersection(s *scope.Scope, f *ts.ParsedFile) *ts.ParsedFile {
	return transform.File(aliasToInterface{}, s, f)
}

type aliasToInterface struct{ transform.Identity }

func (aliasToInterface) EnterTypeAlias(_ *scope.Scope, d *ts.DeclTypeAlias) ts.Decl {
	inter, ok := d.Alias.(*ts.TypeIntersect)
	if !ok {
		return d
	}

	var inheritance []*ts.TypeRef
	var members []ts.Member
	for _, op := range inter.Types {
		switch v := op.(type) {
		case *ts.TypeRef:
			inheritance = append(inheritance, v)
		case *ts.TypeObject:
			members = append(members, v.Members...)
		default:
			return d
		}
	}

	return &ts.DeclInterface{
		Comments:    d.Comments,
		Declared:    d.Declared,
		Name:        d.Name,
		TParams:     d.TParams,
		Inheritance: inheritance,
		Members:     members,
		CodePath:    d.CodePath,
	}
}
