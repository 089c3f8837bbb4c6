package analyze

import (
	"go/types"

	"autojson-generator/internal/schema"
)

// typeOf maps a field type to its schema description. Types outside the
// scalar set keep a descriptive Kind and Name so validation can report them.
func typeOf(t types.Type, local *types.Package) schema.Type {
	t = types.Unalias(t)

	if ptr, ok := t.(*types.Pointer); ok {
		elem := typeOf(ptr.Elem(), local)
		if elem.Nullable {
			// Pointers to pointers have no token mapping.
			return schema.Type{Kind: schema.KindUnknown, Name: types.TypeString(t, qualifier(local))}
		}

		elem.Nullable = true

		return elem
	}

	out := schema.Type{
		Kind: kindOf(t),
		Name: types.TypeString(t, qualifier(local)),
	}

	if named, ok := t.(*types.Named); ok {
		obj := named.Obj()
		if obj.Pkg() != nil && obj.Pkg() != local {
			out.PkgPath = obj.Pkg().Path()
		}

		if obj.Pkg() != nil && obj.Pkg().Path() == "time" && obj.Name() == "Time" {
			out.Kind = schema.KindTime
		}
	}

	return out
}

func kindOf(t types.Type) schema.Kind {
	switch u := t.Underlying().(type) {
	case *types.Basic:
		return schema.KindOf(u.Name())
	case *types.Struct:
		return schema.KindStruct
	case *types.Slice, *types.Array:
		return schema.KindSlice
	case *types.Map:
		return schema.KindMap
	case *types.Interface:
		return schema.KindInterface
	default:
		return schema.KindUnknown
	}
}

// qualifier writes package names for types outside the local package.
func qualifier(local *types.Package) types.Qualifier {
	return func(p *types.Package) string {
		if p == local {
			return ""
		}

		return p.Name()
	}
}
