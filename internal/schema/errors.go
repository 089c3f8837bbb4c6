package schema

import (
	"fmt"
	"strings"
)

// UnsupportedTypeError reports a property whose type has no parser mapping.
type UnsupportedTypeError struct {
	Schema   string
	Location string
	Property string
	Type     Type
}

func (e *UnsupportedTypeError) Error() string {
	return fmt.Sprintf("%s: property %q has unsupported type %s", e.Schema, e.Property, e.Type)
}

// TypeParameterError reports a target type declaring type parameters.
type TypeParameterError struct {
	Schema     string
	Location   string
	SimpleName string
	Params     []string
}

func (e *TypeParameterError) Error() string {
	return fmt.Sprintf("Cannot create Builder on classes with type parameters: %s<%s>",
		e.SimpleName, strings.Join(e.Params, ", "))
}

// NameConflictError reports two properties, or a property and a generated
// identifier, that would share a Go name.
type NameConflictError struct {
	Schema   string
	Location string
	Property string
	Conflict string
}

func (e *NameConflictError) Error() string {
	return fmt.Sprintf("%s: property %q conflicts with %s", e.Schema, e.Property, e.Conflict)
}
