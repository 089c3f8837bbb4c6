package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"

	"autojson-generator/internal/common"
	"autojson-generator/internal/naming"
)

// DefaultRuntimeImport is the jsonstream import path generated decoders use
// unless configured otherwise.
const DefaultRuntimeImport = "autojson-generator/jsonstream"

// LoadFile loads and parses a YAML configuration file from the given path.
func LoadFile(path string) (*File, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
	}

	return Parse(data)
}

// Parse parses YAML data into a File. Unknown keys are rejected.
func Parse(data []byte) (*File, error) {
	var f File

	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)

	err := dec.Decode(&f)
	if err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("failed to parse config YAML: %w", err)
	}

	// Apply defaults and normalize
	applyDefaults(&f)

	if err := f.Validate(); err != nil {
		return nil, err
	}

	return &f, nil
}

// Default returns the configuration used when no file is given.
func Default() *File {
	var f File
	applyDefaults(&f)

	return &f
}

// applyDefaults fills in default values for optional fields.
func applyDefaults(f *File) {
	if f.Version == "" {
		f.Version = CurrentVersion
	}

	if f.ValuePrefix == "" {
		f.ValuePrefix = naming.DefaultValuePrefix
	}

	if f.RuntimeImport == "" {
		f.RuntimeImport = DefaultRuntimeImport
	}

	if f.Output.BuilderSuffix == "" {
		f.Output.BuilderSuffix = naming.DefaultBuilderSuffix
	}

	if f.Output.DecoderSuffix == "" {
		f.Output.DecoderSuffix = naming.DefaultDecoderSuffix
	}

	for i := range f.Schemas {
		s := &f.Schemas[i]
		if s.Name == "" {
			s.Name = common.PkgAlias(s.Package)
		}

		if len(s.Enclosing) == 1 {
			s.Enclosing = splitDotted(s.Enclosing[0])
		}

		for j := range s.Properties {
			p := &s.Properties[j]
			if p.Field == "" {
				p.Field = p.Name
			}
		}
	}
}

// Validate checks the file for structural errors.
func (f *File) Validate() error {
	var errs []error

	if f.Version != CurrentVersion {
		errs = append(errs, fmt.Errorf("unsupported config version %q", f.Version))
	}

	for i, s := range f.Schemas {
		where := fmt.Sprintf("schemas[%d]", i)
		if s.Type != "" {
			where += " (" + s.Type + ")"
		}

		if s.Package == "" {
			errs = append(errs, fmt.Errorf("%s: package is required", where))
		}

		if s.Type == "" {
			errs = append(errs, fmt.Errorf("%s: type is required", where))
		}

		for j, p := range s.Properties {
			if p.Name == "" {
				errs = append(errs, fmt.Errorf("%s.properties[%d]: name is required", where, j))
			}

			if p.Type == "" {
				errs = append(errs, fmt.Errorf("%s.properties[%d]: type is required", where, j))
			}
		}
	}

	return errors.Join(errs...)
}

// Marshal serializes a File to YAML.
func Marshal(f *File) ([]byte, error) {
	var buf bytes.Buffer

	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)

	if err := enc.Encode(f); err != nil {
		return nil, err
	}

	if err := enc.Close(); err != nil {
		return nil, err
	}

	return buf.Bytes(), nil
}

// WriteFile writes a File to the given path.
func WriteFile(f *File, path string) error {
	data, err := Marshal(f)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write config file %s: %w", path, err)
	}

	return nil
}
