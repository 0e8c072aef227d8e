package ts

import (
	"fmt"
	"strings"
)

// Format renders a tree in compact TypeScript-ish syntax. This is a debug
// and test aid, not an emitter: comments, modifiers and exact layout are
// approximate.
func Format(n Tree) string {
	var b strings.Builder
	format(&b, n)
	return b.String()
}

func format(b *strings.Builder, n Tree) {
	switch v := n.(type) {
	case *ParsedFile:
		formatMembers(b, v.Members, "")
	case *DeclInterface:
		fmt.Fprintf(b, "interface %s%s", v.Name.Value(), formatTParams(v.TParams))
		if len(v.Inheritance) > 0 {
			b.WriteString(" extends ")
			for i, p := range v.Inheritance {
				if i > 0 {
					b.WriteString(", ")
				}
				format(b, p)
			}
		}
		b.WriteString(" {")
		formatClassMembers(b, v.Members)
		b.WriteString("}")
	case *DeclClass:
		fmt.Fprintf(b, "class %s%s", v.Name.Value(), formatTParams(v.TParams))
		if v.Parent != nil {
			b.WriteString(" extends ")
			format(b, v.Parent)
		}
		if len(v.Implements) > 0 {
			b.WriteString(" implements ")
			for i, p := range v.Implements {
				if i > 0 {
					b.WriteString(", ")
				}
				format(b, p)
			}
		}
		b.WriteString(" {")
		formatClassMembers(b, v.Members)
		b.WriteString("}")
	case *DeclEnum:
		fmt.Fprintf(b, "enum %s {", v.Name.Value())
		for i, m := range v.Members {
			if i > 0 {
				b.WriteString(", ")
			}
			b.WriteString(m.Name.Value())
			if m.Expr != nil {
				b.WriteString(" = ")
				format(b, m.Expr)
			}
		}
		b.WriteString("}")
	case *DeclVar:
		kw := "var"
		if v.ReadOnly {
			kw = "const"
		}
		fmt.Fprintf(b, "%s %s", kw, v.Name.Value())
		if v.Type != nil {
			b.WriteString(": ")
			format(b, v.Type)
		}
	case *DeclFunction:
		fmt.Fprintf(b, "function %s", v.Name.Value())
		format(b, v.Signature)
	case *DeclTypeAlias:
		fmt.Fprintf(b, "type %s%s = ", v.Name.Value(), formatTParams(v.TParams))
		format(b, v.Alias)
	case *DeclNamespace:
		fmt.Fprintf(b, "namespace %s {", v.Name.Value())
		formatMembers(b, v.Members, " ")
		b.WriteString("}")
	case *DeclModule:
		fmt.Fprintf(b, "module %q {", v.Name.Value())
		formatMembers(b, v.Members, " ")
		b.WriteString("}")
	case *AugmentedModule:
		fmt.Fprintf(b, "module %q {", v.Name.Value())
		formatMembers(b, v.Members, " ")
		b.WriteString("}")
	case *Global:
		b.WriteString("global {")
		formatMembers(b, v.Members, " ")
		b.WriteString("}")
	case *Export:
		switch v.Kind {
		case ExportNamespaced:
			b.WriteString("export = ")
		case ExportDefaulted:
			b.WriteString("export default ")
		default:
			b.WriteString("export ")
		}
		format(b, v.Exported)
	case *ExporteeNames:
		names := make([]string, len(v.Names))
		for i, n := range v.Names {
			names[i] = n.QName.String()
			if n.Alias != nil {
				names[i] += " as " + n.Alias.Value()
			}
		}
		b.WriteString(strings.Join(names, ", "))
	case *ExporteeStar:
		b.WriteString("* from ")
		b.WriteString(v.From.Value())
	case *ExporteeTree:
		format(b, v.Decl)
	case *Import:
		b.WriteString("import ...")

	case *TypeRef:
		b.WriteString(v.Name.String())
		if len(v.TArgs) > 0 {
			b.WriteString("<")
			for i, a := range v.TArgs {
				if i > 0 {
					b.WriteString(", ")
				}
				format(b, a)
			}
			b.WriteString(">")
		}
	case *TypeLiteral:
		b.WriteString(v.Literal.String())
	case *TypeObject:
		b.WriteString("{")
		formatClassMembers(b, v.Members)
		b.WriteString("}")
	case *TypeFunction:
		format(b, v.Signature)
	case *TypeConstructor:
		b.WriteString("new ")
		format(b, v.Signature)
	case *TypeUnion:
		for i, t := range v.Types {
			if i > 0 {
				b.WriteString(" | ")
			}
			format(b, t)
		}
	case *TypeIntersect:
		for i, t := range v.Types {
			if i > 0 {
				b.WriteString(" & ")
			}
			format(b, t)
		}
	case *TypeTuple:
		b.WriteString("[")
		for i, e := range v.Elems {
			if i > 0 {
				b.WriteString(", ")
			}
			format(b, e.Type)
		}
		b.WriteString("]")
	case *TypeKeyOf:
		b.WriteString("keyof ")
		format(b, v.Of)
	case *TypeLookup:
		format(b, v.From)
		b.WriteString("[")
		format(b, v.Key)
		b.WriteString("]")
	case *TypeConditional:
		format(b, v.Pred)
		b.WriteString(" ? ")
		format(b, v.IfTrue)
		b.WriteString(" : ")
		format(b, v.IfFalse)
	case *TypeQuery:
		b.WriteString("typeof ")
		b.WriteString(v.Expr.String())
	case *TypeThis:
		b.WriteString("this")
	case *TypeRepeated:
		b.WriteString("...")
		format(b, v.Underlying)

	case *MemberCall:
		format(b, v.Signature)
	case *MemberCtor:
		b.WriteString("new ")
		format(b, v.Signature)
	case *MemberFunction:
		b.WriteString(v.Name.Value())
		format(b, v.Signature)
	case *MemberProperty:
		b.WriteString(v.Name.Value())
		if v.Type != nil {
			b.WriteString(": ")
			format(b, v.Type)
		}
	case *MemberIndex:
		b.WriteString("[")
		format(b, v.Indexing)
		b.WriteString("]")
		if v.ValueType != nil {
			b.WriteString(": ")
			format(b, v.ValueType)
		}
	case *IndexingDict:
		b.WriteString(v.Name.Value())
		b.WriteString(": ")
		format(b, v.Type)
	case *IndexingSingle:
		b.WriteString(v.Name.String())
	case *MemberTypeMapped:
		fmt.Fprintf(b, "[%s in ", v.Key.Value())
		format(b, v.From)
		b.WriteString("]")
		if v.To != nil {
			b.WriteString(": ")
			format(b, v.To)
		}

	case *FunSig:
		b.WriteString(formatTParams(v.TParams))
		b.WriteString("(")
		for i, p := range v.Params {
			if i > 0 {
				b.WriteString(", ")
			}
			b.WriteString(p.Name.Value())
			if p.Type != nil {
				b.WriteString(": ")
				format(b, p.Type)
			}
		}
		b.WriteString(")")
		if v.ResultType != nil {
			b.WriteString(": ")
			format(b, v.ResultType)
		}

	case *ExprRef:
		b.WriteString(v.Ref.String())
	case *ExprLiteral:
		b.WriteString(v.Literal.String())
	case *ExprCall:
		format(b, v.Function)
		b.WriteString("(")
		for i, p := range v.Params {
			if i > 0 {
				b.WriteString(", ")
			}
			format(b, p)
		}
		b.WriteString(")")
	case *ExprUnary:
		b.WriteString(v.Op)
		format(b, v.Expr)
	case *ExprBinaryOp:
		format(b, v.One)
		fmt.Fprintf(b, " %s ", v.Op)
		format(b, v.Two)
	case *ExprCast:
		format(b, v.Expr)
		b.WriteString(" as ")
		format(b, v.To)
	case *ExprArrayOf:
		b.WriteString("[")
		format(b, v.Expr)
		b.WriteString("]")
	case *EnumMember:
		b.WriteString(v.Name.Value())
	default:
		fmt.Fprintf(b, "<%T>", n)
	}
}

func formatMembers(b *strings.Builder, ms []Decl, sep string) {
	for i, m := range ms {
		if i > 0 || sep != "" {
			b.WriteString("\n")
		}
		format(b, m)
	}
	if sep != "" && len(ms) > 0 {
		b.WriteString("\n")
	}
}

func formatClassMembers(b *strings.Builder, ms []Member) {
	for i, m := range ms {
		if i > 0 {
			b.WriteString("; ")
		} else {
			b.WriteString(" ")
		}
		format(b, m)
	}
	if len(ms) > 0 {
		b.WriteString(" ")
	}
}

func formatTParams(tps []TypeParam) string {
	if len(tps) == 0 {
		return ""
	}
	names := make([]string, len(tps))
	for i, tp := range tps {
		names[i] = tp.Name.Value()
	}
	return "<" + strings.Join(names, ", ") + ">"
}
