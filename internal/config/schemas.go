package config

import (
	"context"
	"fmt"
	"strings"

	"autojson-generator/internal/common"
	"autojson-generator/internal/match"
	"autojson-generator/internal/naming"
	"autojson-generator/internal/schema"
)

// qualifiedTypes maps well-known qualified types to their kind and import.
var qualifiedTypes = map[string]struct {
	kind    schema.Kind
	pkgPath string
}{
	"time.Time":     {schema.KindTime, "time"},
	"time.Duration": {schema.KindInt64, "time"},
	"time.Month":    {schema.KindInt, "time"},
	"time.Weekday":  {schema.KindInt, "time"},
}

// ParseType parses a Go type expression as written in a property
// declaration. underlying names the basic type behind a named type, and
// importPath the package of a qualified name outside the standard table.
func ParseType(expr, underlying, importPath string) (schema.Type, error) {
	t := schema.Type{}

	name := strings.TrimSpace(expr)
	if rest, ok := strings.CutPrefix(name, "*"); ok {
		t.Nullable = true
		name = strings.TrimSpace(rest)
	}

	if name == "" {
		return t, fmt.Errorf("empty type expression %q", expr)
	}

	t.Name = name

	switch {
	case strings.HasPrefix(name, "*"):
		t.Kind = schema.KindUnknown
		return t, nil
	case strings.HasPrefix(name, "[]"), strings.HasPrefix(name, "["):
		t.Kind = schema.KindSlice
		return t, nil
	case strings.HasPrefix(name, "map["):
		t.Kind = schema.KindMap
		return t, nil
	case name == "any", strings.HasPrefix(name, "interface"):
		t.Kind = schema.KindInterface
		return t, nil
	case strings.HasPrefix(name, "struct"):
		t.Kind = schema.KindStruct
		return t, nil
	}

	if known, ok := qualifiedTypes[name]; ok {
		t.Kind = known.kind
		t.PkgPath = known.pkgPath

		return t, nil
	}

	if k := schema.KindOf(name); k != schema.KindUnknown {
		t.Kind = k
		return t, nil
	}

	// A named type.
	if qual, _, ok := strings.Cut(name, "."); ok {
		if importPath == "" {
			return t, fmt.Errorf("type %s: import is required for qualified types", name)
		}

		if common.PkgAlias(importPath) != qual {
			return t, fmt.Errorf("type %s: import %q does not match qualifier %q", name, importPath, qual)
		}

		t.PkgPath = importPath
	}

	if underlying == "" {
		// Named non-scalar type.
		t.Kind = schema.KindStruct
		return t, nil
	}

	if underlying == "time.Time" {
		t.Kind = schema.KindTime
		return t, nil
	}

	t.Kind = schema.KindOf(underlying)
	if t.Kind == schema.KindUnknown {
		return t, fmt.Errorf("type %s: underlying type %q is not a basic type%s",
			name, underlying, match.Hint(underlying, basicTypeNames()...))
	}

	return t, nil
}

// basicTypeNames lists the names accepted as an underlying type.
func basicTypeNames() []string {
	names := make([]string, 0, int(schema.KindString-schema.KindBool)+2)
	for k := schema.KindBool; k <= schema.KindString; k++ {
		names = append(names, k.String())
	}

	return append(names, "time.Time")
}

// ClassSchemas converts the declared schemas.
func (f *File) ClassSchemas() ([]*schema.ClassSchema, error) {
	out := make([]*schema.ClassSchema, 0, len(f.Schemas))

	for i := range f.Schemas {
		s, err := f.Schemas[i].ClassSchema()
		if err != nil {
			return nil, err
		}

		out = append(out, s)
	}

	return out, nil
}

// ClassSchema converts the definition into a schema.
func (d *SchemaDef) ClassSchema() (*schema.ClassSchema, error) {
	s := &schema.ClassSchema{
		PackagePath:    d.Package,
		PackageName:    d.Name,
		Dir:            d.Dir,
		SimpleName:     d.Type,
		EnclosingChain: append([]string(nil), d.Enclosing...),
		TypeParameters: append([]string(nil), d.TypeParameters...),
		Position:       "config:" + naming.QualifiedName(d.Package, d.Type),
	}

	if s.PackageName == "" {
		s.PackageName = common.PkgAlias(d.Package)
	}

	for _, pd := range d.Properties {
		t, err := ParseType(pd.Type, pd.Underlying, pd.Import)
		if err != nil {
			return nil, fmt.Errorf("%s: property %s: %w", s.QualifiedName(), pd.Name, err)
		}

		p := schema.Property{
			Name:        pd.Name,
			FieldName:   pd.Field,
			WireName:    pd.Wire,
			Type:        t,
			Annotations: schema.TagAnnotations(pd.Tags),
		}

		if p.FieldName == "" {
			p.FieldName = p.Name
		}

		if pd.Deprecated != "" {
			p.Annotations = append(p.Annotations, schema.NewDeprecated(pd.Deprecated))
		}

		s.Properties = append(s.Properties, p)
	}

	return s, nil
}

// FromSchema converts a schema back into its declaration, so discovered
// schemas can be printed and pinned in a configuration file.
func FromSchema(s *schema.ClassSchema) SchemaDef {
	d := SchemaDef{
		Package:        s.PackagePath,
		Name:           s.PackageName,
		Dir:            s.Dir,
		Type:           s.SimpleName,
		Enclosing:      StringOrArray(s.EnclosingChain),
		TypeParameters: s.TypeParameters,
	}

	if d.Name == common.PkgAlias(d.Package) {
		d.Name = ""
	}

	for _, p := range s.Properties {
		pd := PropertyDef{
			Name:   p.Name,
			Type:   p.Type.Expr(),
			Import: p.Type.PkgPath,
			Wire:   p.WireName,
		}

		if p.FieldName != p.Name {
			pd.Field = p.FieldName
		}

		if _, known := qualifiedTypes[p.Type.Name]; known {
			pd.Import = ""
		} else if p.Type.Kind.IsScalar() && p.Type.Name != p.Type.Kind.String() {
			pd.Underlying = p.Type.Kind.String()
			if p.Type.Kind == schema.KindTime {
				pd.Underlying = "time.Time"
			}
		}

		var tags []string
		for _, a := range p.Annotations {
			switch {
			case a.Kind == schema.AnnotationDeprecated:
				pd.Deprecated = a.Value()
			case a.IsTag():
				tags = append(tags, a.TagString())
			}
		}

		pd.Tags = strings.Join(tags, " ")
		d.Properties = append(d.Properties, pd)
	}

	return d
}

// Provider serves the schemas declared in a configuration file.
type Provider struct {
	File *File
}

// Discover implements driver.SchemaProvider.
func (p Provider) Discover(context.Context) ([]*schema.ClassSchema, error) {
	if p.File == nil {
		return nil, nil
	}

	return p.File.ClassSchemas()
}

func splitDotted(s string) []string {
	return strings.Split(s, ".")
}
