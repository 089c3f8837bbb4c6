package driver

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"autojson-generator/internal/artifact"
	"autojson-generator/internal/builder"
	"autojson-generator/internal/decoder"
	"autojson-generator/internal/diagnostic"
	"autojson-generator/internal/naming"
	"autojson-generator/internal/schema"
	"autojson-generator/internal/sink"
	"autojson-generator/internal/typemap"
)

// SchemaProvider discovers the schemas of one generation pass.
type SchemaProvider interface {
	Discover(ctx context.Context) ([]*schema.ClassSchema, error)
}

// Providers concatenates the schemas of several providers, in order.
type Providers []SchemaProvider

// Discover implements SchemaProvider. It stops at the first failing provider.
func (ps Providers) Discover(ctx context.Context) ([]*schema.ClassSchema, error) {
	var out []*schema.ClassSchema

	for _, p := range ps {
		schemas, err := p.Discover(ctx)
		if err != nil {
			return nil, err
		}

		out = append(out, schemas...)
	}

	return out, nil
}

// Config holds configuration for a generation pass.
type Config struct {
	// ValuePrefix prefixes canonical constructor names.
	ValuePrefix string
	// RuntimeImport is the import path of the jsonstream package.
	RuntimeImport string
	// BuilderSuffix is appended to the snake_case type name for builders.
	BuilderSuffix string
	// DecoderSuffix is appended to the snake_case type name for decoders.
	DecoderSuffix string
}

// DefaultConfig returns the default pass configuration.
func DefaultConfig() Config {
	return Config{
		ValuePrefix:   naming.DefaultValuePrefix,
		RuntimeImport: decoder.DefaultRuntimeImport,
		BuilderSuffix: naming.DefaultBuilderSuffix,
		DecoderSuffix: naming.DefaultDecoderSuffix,
	}
}

func (c Config) withDefaults() Config {
	def := DefaultConfig()
	if c.ValuePrefix == "" {
		c.ValuePrefix = def.ValuePrefix
	}

	if c.RuntimeImport == "" {
		c.RuntimeImport = def.RuntimeImport
	}

	if c.BuilderSuffix == "" {
		c.BuilderSuffix = def.BuilderSuffix
	}

	if c.DecoderSuffix == "" {
		c.DecoderSuffix = def.DecoderSuffix
	}

	return c
}

// EmissionResult is the outcome of one schema in a pass.
type EmissionResult struct {
	// Schema is the qualified name of the schema.
	Schema string
	// Artifacts are the artifacts handed to the sink, in emission order.
	Artifacts []sink.Artifact
	// Err is the failure reported for the schema, nil on success.
	Err error
}

// OK reports whether the schema was generated and emitted.
func (r EmissionResult) OK() bool {
	return r.Err == nil
}

// EmissionError reports a rendering or CodeSink failure.
type EmissionError struct {
	Schema   string
	Filename string
	Err      error
}

func (e *EmissionError) Error() string {
	return fmt.Sprintf("%s: emitting %s: %v", e.Schema, e.Filename, e.Err)
}

func (e *EmissionError) Unwrap() error {
	return e.Err
}

// Driver runs generation passes.
type Driver struct {
	config   Config
	mapper   *typemap.Mapper
	sink     sink.CodeSink
	reporter diagnostic.Reporter
	logger   *zap.Logger
}

// New creates a Driver. A nil reporter discards diagnostics and a nil
// logger is replaced by a no-op logger.
func New(config Config, out sink.CodeSink, reporter diagnostic.Reporter, logger *zap.Logger) *Driver {
	if logger == nil {
		logger = zap.NewNop()
	}

	if reporter == nil {
		reporter = diagnostic.Tee{}
	}

	return &Driver{
		config:   config.withDefaults(),
		mapper:   typemap.New(),
		sink:     out,
		reporter: reporter,
		logger:   logger,
	}
}

// Pass discovers schemas from provider and runs them. A discovery failure
// is reported and returned; nothing is generated then.
func (d *Driver) Pass(ctx context.Context, provider SchemaProvider) ([]EmissionResult, error) {
	schemas, err := provider.Discover(ctx)
	if err != nil {
		d.reporter.Report(diagnostic.Diagnostic{
			Severity: diagnostic.DiagnosticError,
			Code:     diagnostic.CodeDiscovery,
			Message:  err.Error(),
		})

		return nil, fmt.Errorf("discovering schemas: %w", err)
	}

	return d.Run(schemas), nil
}

// Run processes schemas independently and in order. Every schema yields one
// EmissionResult; failures never stop the batch.
func (d *Driver) Run(schemas []*schema.ClassSchema) []EmissionResult {
	results := make([]EmissionResult, 0, len(schemas))

	for _, s := range schemas {
		if s == nil {
			continue
		}

		res := d.runOne(s)
		if res.Err != nil {
			d.report(s, res.Err)
			d.logger.Warn("schema rejected",
				zap.String("schema", res.Schema),
				zap.Error(res.Err))
		} else {
			d.logger.Debug("schema generated",
				zap.String("schema", res.Schema),
				zap.Int("artifacts", len(res.Artifacts)))
		}

		results = append(results, res)
	}

	return results
}

func (d *Driver) runOne(s *schema.ClassSchema) EmissionResult {
	res := EmissionResult{Schema: s.QualifiedName()}

	arts, err := d.Generate(s)
	if err != nil {
		res.Err = err
		return res
	}

	for _, a := range arts {
		if err := d.sink.Emit(a); err != nil {
			res.Err = &EmissionError{Schema: res.Schema, Filename: a.Filename, Err: err}
			return res
		}

		d.logger.Debug("artifact emitted",
			zap.String("schema", res.Schema),
			zap.String("file", a.Filename))
		res.Artifacts = append(res.Artifacts, a)
	}

	return res
}

// Generate validates s and returns its rendered builder and decoder
// artifacts without emitting them. Both artifacts are rendered before
// either is returned, so a failing schema yields none.
func (d *Driver) Generate(s *schema.ClassSchema) ([]sink.Artifact, error) {
	if err := s.Validate(d.mapper); err != nil {
		return nil, err
	}

	builderFile, err := builder.Synthesize(s, builder.Options{ValuePrefix: d.config.ValuePrefix})
	if err != nil {
		return nil, fmt.Errorf("%s: synthesizing builder: %w", s.QualifiedName(), err)
	}

	decoderFile, err := decoder.Synthesize(s, d.mapper, decoder.Options{
		ValuePrefix:   d.config.ValuePrefix,
		RuntimeImport: d.config.RuntimeImport,
	})
	if err != nil {
		return nil, fmt.Errorf("%s: synthesizing decoder: %w", s.QualifiedName(), err)
	}

	files := []struct {
		file   *artifact.File
		suffix string
	}{
		{builderFile, d.config.BuilderSuffix},
		{decoderFile, d.config.DecoderSuffix},
	}

	arts := make([]sink.Artifact, 0, len(files))
	for _, f := range files {
		a := sink.Artifact{
			PackagePath: s.PackagePath,
			PackageName: s.PackageName,
			Dir:         s.Dir,
			Filename:    naming.Filename(s.SimpleName, f.suffix),
		}

		content, err := artifact.Render(f.file)
		if err != nil {
			d.keepUnformatted(a, content)
			return nil, &EmissionError{Schema: s.QualifiedName(), Filename: a.Filename, Err: err}
		}

		a.Content = content
		arts = append(arts, a)
	}

	return arts, nil
}

// keepUnformatted writes the unformatted source of a failed render when the
// sink supports it. Best-effort.
func (d *Driver) keepUnformatted(a sink.Artifact, content []byte) {
	ds, ok := d.sink.(sink.DebugSink)
	if !ok || len(content) == 0 {
		return
	}

	a.Content = content
	if err := ds.EmitUnformatted(a); err != nil {
		d.logger.Debug("writing unformatted output failed", zap.Error(err))
	}
}

// report sends the single diagnostic for a rejected schema.
func (d *Driver) report(s *schema.ClassSchema, err error) {
	d.reporter.Report(diagnostic.Diagnostic{
		Severity: diagnostic.DiagnosticError,
		Code:     Code(err),
		Message:  err.Error(),
		Schema:   s.QualifiedName(),
		Location: s.Location(),
	})
}

// Code returns the diagnostic code for a pass error.
func Code(err error) string {
	var (
		unsupported *schema.UnsupportedTypeError
		typeParams  *schema.TypeParameterError
		conflict    *schema.NameConflictError
		decUnsup    *decoder.UnsupportedError
	)

	switch {
	case errors.As(err, &unsupported), errors.As(err, &decUnsup):
		return diagnostic.CodeUnsupportedType
	case errors.As(err, &typeParams):
		return diagnostic.CodeTypeParameters
	case errors.As(err, &conflict):
		return diagnostic.CodeNameConflict
	default:
		return diagnostic.CodeEmission
	}
}
