package types

import "github.com/stella-lang/stellac/internal/ast"

// resolveType converts a parsed type annotation into the Type algebra,
// stripping ParenType wrappers so the algebra itself never has to
// reason about parentheses.
func resolveType(t ast.TypeExpr) Type {
	switch t := t.(type) {
	case *ast.ParenType:
		return resolveType(t.Inner)
	case *ast.NamedType:
		switch t.Name {
		case "Bool":
			return Bool{}
		case "Nat":
			return Nat{}
		case "Unit":
			return Unit{}
		default:
			// Grammar admits no other nullary names; unreachable by a
			// well-formed parse.
			return nil
		}
	case *ast.FunType:
		params := make([]Type, len(t.Params))
		for i, p := range t.Params {
			params[i] = resolveType(p)
		}
		return &Fun{Params: params, Result: resolveType(t.Result)}
	case *ast.ListType:
		return &List{Elem: resolveType(t.Elem)}
	case *ast.TupleType:
		components := make([]Type, len(t.Components))
		for i, c := range t.Components {
			components[i] = resolveType(c)
		}
		return &Tuple{Components: components}
	case *ast.RecordType:
		fields := make([]RecordField, len(t.Fields))
		for i, f := range t.Fields {
			fields[i] = RecordField{Label: f.Label, Type: resolveType(f.Type)}
		}
		return &Record{Fields: fields}
	case *ast.SumType:
		return &Sum{Left: resolveType(t.Left), Right: resolveType(t.Right)}
	case *ast.VariantType:
		cases := make([]VariantCase, len(t.Cases))
		for i, c := range t.Cases {
			cases[i] = VariantCase{Label: c.Label, Type: resolveType(c.Type)}
		}
		return &Variant{Cases: cases}
	default:
		return nil
	}
}
