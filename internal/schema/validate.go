package schema

import (
	"fmt"

	"autojson-generator/internal/naming"
)

// Mapper reports whether a type can be read from a token stream.
type Mapper interface {
	Supports(t Type) bool
}

// Generated identifiers a property must not collide with.
var (
	reservedSetters = map[string]bool{"Build": true}
	reservedSlots   = map[string]bool{"parse": true, "reset": true}
)

// Validate checks the schema against the pipeline's contract. It returns the
// first violation found, in this order: type parameters, name conflicts,
// unsupported property types.
func (s *ClassSchema) Validate(m Mapper) error {
	if len(s.TypeParameters) > 0 {
		return &TypeParameterError{
			Schema:     s.QualifiedName(),
			Location:   s.Location(),
			SimpleName: s.SimpleName,
			Params:     append([]string(nil), s.TypeParameters...),
		}
	}

	if err := s.checkNames(); err != nil {
		return err
	}

	for _, p := range s.Properties {
		if !m.Supports(p.Type) {
			return &UnsupportedTypeError{
				Schema:   s.QualifiedName(),
				Location: s.Location(),
				Property: p.Name,
				Type:     p.Type,
			}
		}
	}

	return nil
}

func (s *ClassSchema) checkNames() error {
	names := make(map[string]string)
	setters := make(map[string]string)
	slots := make(map[string]string)

	conflict := func(p, what string) error {
		return &NameConflictError{
			Schema:   s.QualifiedName(),
			Location: s.Location(),
			Property: p,
			Conflict: what,
		}
	}

	for _, p := range s.Properties {
		if p.Name == "" {
			return conflict(p.FieldName, "the empty name")
		}

		if other, ok := names[p.Name]; ok {
			return conflict(p.Name, "property "+other)
		}

		names[p.Name] = p.Name

		if tagName, ok := p.tagWireName(); ok && p.WireName != "" && tagName != p.WireName {
			return conflict(p.Name, fmt.Sprintf("its json tag name %q (wire name %q)", tagName, p.WireName))
		}

		setter := naming.Exported(p.Name)
		if reservedSetters[setter] {
			return conflict(p.Name, "generated method "+setter)
		}

		if other, ok := setters[setter]; ok {
			return conflict(p.Name, "setter of property "+other)
		}

		setters[setter] = p.Name

		slot := naming.Param(p.Name)
		if reservedSlots[slot] {
			return conflict(p.Name, "generated method "+slot)
		}

		if other, ok := slots[slot]; ok {
			return conflict(p.Name, "field of property "+other)
		}

		slots[slot] = p.Name
	}

	return nil
}

// tagWireName returns the name of the first json tag of p.
func (p Property) tagWireName() (string, bool) {
	for _, a := range p.Annotations {
		if a.Kind == AnnotationWireName {
			return a.Value(), true
		}
	}

	return "", false
}
