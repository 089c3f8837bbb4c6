package config

import (
	"fmt"

	"gopkg.in/yaml.v3"

	"autojson-generator/internal/common"
)

// CurrentVersion is the only configuration version understood.
const CurrentVersion = "1"

// File represents the root of a YAML configuration file.
type File struct {
	// Version of the configuration schema (for future compatibility).
	Version string `yaml:"version,omitempty"`

	// Packages lists Go package patterns to analyze for marked types.
	Packages StringOrArray `yaml:"packages,omitempty"`

	// Output controls where and how artifacts are written.
	Output Output `yaml:"output,omitempty"`

	// ValuePrefix prefixes canonical constructor names.
	ValuePrefix string `yaml:"value_prefix,omitempty"`

	// RuntimeImport is the import path of the jsonstream package used by
	// generated decoders.
	RuntimeImport string `yaml:"runtime_import,omitempty"`

	// Schemas declares target types directly.
	Schemas []SchemaDef `yaml:"schemas,omitempty"`
}

// Output configures artifact emission.
type Output struct {
	// Dir overrides the package directory when set.
	Dir string `yaml:"dir,omitempty"`
	// BuilderSuffix is appended to the snake_case type name for builders.
	BuilderSuffix string `yaml:"builder_suffix,omitempty"`
	// DecoderSuffix is appended to the snake_case type name for decoders.
	DecoderSuffix string `yaml:"decoder_suffix,omitempty"`
}

// SchemaDef declares one target type.
type SchemaDef struct {
	// Package is the import path of the target package.
	Package string `yaml:"package"`
	// Name is the Go package name; defaults to the last path element.
	Name string `yaml:"name,omitempty"`
	// Dir is the directory artifacts are written to.
	Dir string `yaml:"dir,omitempty"`
	// Type is the target type's simple name.
	Type string `yaml:"type"`
	// Enclosing is the enclosing chain, outermost first. Accepts a list or
	// a dotted string ("Outer.Inner").
	Enclosing StringOrArray `yaml:"enclosing,omitempty"`
	// TypeParameters lists declared type parameters.
	TypeParameters []string `yaml:"type_parameters,omitempty"`
	// Properties are the ordered properties.
	Properties []PropertyDef `yaml:"properties"`
}

// PropertyDef declares one property.
type PropertyDef struct {
	// Name is the property name.
	Name string `yaml:"name"`
	// Field is the struct field name; defaults to Name.
	Field string `yaml:"field,omitempty"`
	// Type is the Go type expression ("int64", "*string", "time.Time").
	Type string `yaml:"type"`
	// Underlying is the basic type behind a named Type ("string" for
	// `type Status string`).
	Underlying string `yaml:"underlying,omitempty"`
	// Import is the import path of a qualified Type outside the standard
	// table.
	Import string `yaml:"import,omitempty"`
	// Wire is an explicit wire name.
	Wire string `yaml:"wire,omitempty"`
	// Tags is the raw struct tag (`json:"id" yaml:"id"`).
	Tags string `yaml:"tags,omitempty"`
	// Deprecated is the deprecation message, when deprecated.
	Deprecated string `yaml:"deprecated,omitempty"`
}

// StringOrArray represents a value that can be either a single string or an
// array of strings.
type StringOrArray []string

// UnmarshalYAML implements custom YAML unmarshaling for StringOrArray.
// Accepts either a single string or an array of strings.
func (s *StringOrArray) UnmarshalYAML(node *yaml.Node) error {
	switch node.Kind {
	case yaml.ScalarNode:
		var str string

		err := node.Decode(&str)
		if err != nil {
			return err
		}

		if str != "" {
			*s = StringOrArray{str}
		} else {
			*s = StringOrArray{}
		}

		return nil

	case yaml.SequenceNode:
		var arr []string

		err := node.Decode(&arr)
		if err != nil {
			return err
		}

		*s = arr

		return nil

	default:
		return fmt.Errorf("line %d: expected string or array", node.Line)
	}
}

// MarshalYAML implements custom YAML marshaling for StringOrArray.
// Outputs a single string if length is 1, otherwise an array.
func (s StringOrArray) MarshalYAML() (any, error) {
	if common.IsSingle(s) {
		v, _ := common.First(s)
		return v, nil
	}

	return []string(s), nil
}
