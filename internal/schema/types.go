package schema

import "sort"

// Type describes the Go type of a property.
type Type struct {
	Kind Kind
	// Nullable marks a pointer type (*int64); JSON null decodes to nil.
	Nullable bool
	// Name is the type expression as written in the target package
	// ("int64", "Status", "time.Duration"), without the pointer prefix.
	Name string
	// PkgPath is the import path Name refers to, empty for builtins and
	// types of the target package itself.
	PkgPath string
}

// Expr returns the full Go type expression, including the pointer prefix.
func (t Type) Expr() string {
	if t.Nullable {
		return "*" + t.Name
	}

	return t.Name
}

// String returns a human-readable representation of the Type.
func (t Type) String() string {
	if t.Name == "" {
		return t.Kind.String()
	}

	return t.Expr()
}

// Property is a single named, typed property of a target type.
type Property struct {
	// Name is the human name: parameter name and default wire name.
	Name string
	// FieldName is the struct field the canonical constructor assigns.
	FieldName string
	// WireName is the explicit external name; empty when absent.
	WireName string
	// Type is the semantic type.
	Type Type
	// Annotations is the metadata attached to the source field, in order.
	Annotations []Annotation
}

// ClassSchema describes one annotated target type.
type ClassSchema struct {
	// PackagePath is the import path of the target package.
	PackagePath string
	// PackageName is the Go package name of the target package.
	PackageName string
	// Dir is the directory holding the package sources, if known.
	Dir string
	// SimpleName is the type's own name.
	SimpleName string
	// EnclosingChain lists enclosing scopes, outermost first.
	EnclosingChain []string
	// Properties are the ordered properties; order fixes constructor order.
	Properties []Property
	// TypeParameters lists declared type parameters; must be empty.
	TypeParameters []string
	// Position is the declaration site ("file.go:12:6"), if known.
	Position string
}

// QualifiedName returns the package-qualified name of the schema type.
func (s *ClassSchema) QualifiedName() string {
	if s.PackagePath == "" {
		return s.SimpleName
	}

	return s.PackagePath + "." + s.SimpleName
}

// Location returns Position when known, otherwise the qualified name.
func (s *ClassSchema) Location() string {
	if s.Position != "" {
		return s.Position
	}

	return s.QualifiedName()
}

// Property returns the property with the given name, or nil.
func (s *ClassSchema) Property(name string) *Property {
	for i := range s.Properties {
		if s.Properties[i].Name == name {
			return &s.Properties[i]
		}
	}

	return nil
}

// Imports returns the sorted, de-duplicated import paths the property types
// need, excluding the schema's own package.
func (s *ClassSchema) Imports() []string {
	seen := make(map[string]bool)

	var out []string
	for _, p := range s.Properties {
		path := p.Type.PkgPath
		if path == "" || path == s.PackagePath || seen[path] {
			continue
		}

		seen[path] = true
		out = append(out, path)
	}

	sort.Strings(out)

	return out
}
