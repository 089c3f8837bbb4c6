package driver

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"autojson-generator/internal/diagnostic"
	"autojson-generator/internal/schema"
	"autojson-generator/internal/sink"
)

func responseSchema() *schema.ClassSchema {
	return &schema.ClassSchema{
		PackagePath: "example.com/demo",
		PackageName: "demo",
		SimpleName:  "Response",
		Position:    "response.go:8:6",
		Properties: []schema.Property{
			{
				Name:        "id",
				FieldName:   "ID",
				Type:        schema.Type{Kind: schema.KindInt64, Name: "int64"},
				Annotations: schema.TagAnnotations(`json:"id"`),
			},
			{
				Name:      "name",
				FieldName: "Name",
				Type:      schema.Type{Kind: schema.KindString, Name: "string"},
			},
		},
	}
}

func newTestDriver(t *testing.T, out sink.CodeSink) (*Driver, *diagnostic.Diagnostics) {
	t.Helper()

	diags := &diagnostic.Diagnostics{}
	d := New(Config{}, out, diags, zaptest.NewLogger(t))

	return d, diags
}

type staticProvider struct {
	schemas []*schema.ClassSchema
	err     error
}

func (p staticProvider) Discover(context.Context) ([]*schema.ClassSchema, error) {
	return p.schemas, p.err
}

func TestRun_EmitsBuilderAndDecoder(t *testing.T) {
	t.Parallel()

	mem := sink.NewMemorySink()
	d, diags := newTestDriver(t, mem)

	results := d.Run([]*schema.ClassSchema{responseSchema()})
	require.Len(t, results, 1)
	require.True(t, results[0].OK(), "%v", results[0].Err)
	assert.Equal(t, "example.com/demo.Response", results[0].Schema)
	assert.True(t, diags.IsValid())

	assert.Equal(t, []string{
		"example.com/demo/response_builder.go",
		"example.com/demo/response_decoder.go",
	}, mem.Keys())

	b, ok := mem.Get("example.com/demo", "response_builder.go")
	require.True(t, ok)

	builderSrc := string(b.Content)
	assert.True(t, strings.HasPrefix(builderSrc, "// Code generated by autojson-generator. DO NOT EDIT.\n"))
	assert.Contains(t, builderSrc, "package demo\n")
	assert.Contains(t, builderSrc, "func autoValue_Response(id int64, name string) Response {")
	assert.Contains(t, builderSrc, "func (b *ResponseBuilder) ID(id int64) *ResponseBuilder {")
	assert.Contains(t, builderSrc, "func (b *ResponseBuilder) Name(name string) *ResponseBuilder {")
	assert.Contains(t, builderSrc, "return autoValue_Response(b.id, b.name)")
	assert.Contains(t, builderSrc, `//autojson:tag json:"id"`)
	assert.Contains(t, builderSrc, `//autojson:tag json:"name"`)

	dec, ok := mem.Get("example.com/demo", "response_decoder.go")
	require.True(t, ok)

	decoderSrc := string(dec.Content)
	assert.Contains(t, decoderSrc, `"autojson-generator/jsonstream"`)
	assert.Contains(t, decoderSrc, "type ResponseDecoder struct {")
	assert.Contains(t, decoderSrc, `case "id":`)
	assert.Contains(t, decoderSrc, "d.id = p.ValueAsInt64()")
	assert.Contains(t, decoderSrc, `case "name":`)
	assert.Contains(t, decoderSrc, "d.name = p.ValueAsString()")
	assert.Contains(t, decoderSrc, "func UnmarshalResponse(data []byte) (*Response, error) {")
}

func TestRun_Idempotent(t *testing.T) {
	t.Parallel()

	first := sink.NewMemorySink()
	second := sink.NewMemorySink()

	d1, _ := newTestDriver(t, first)
	d2, _ := newTestDriver(t, second)

	d1.Run([]*schema.ClassSchema{responseSchema()})
	d2.Run([]*schema.ClassSchema{responseSchema()})

	require.Equal(t, first.Keys(), second.Keys())

	for _, name := range []string{"response_builder.go", "response_decoder.go"} {
		a, _ := first.Get("example.com/demo", name)
		b, _ := second.Get("example.com/demo", name)
		assert.Equal(t, string(a.Content), string(b.Content), name)
	}
}

func TestRun_EnclosingChainAndPrefix(t *testing.T) {
	t.Parallel()

	s := responseSchema()
	s.EnclosingChain = []string{"Outer", "Inner"}

	mem := sink.NewMemorySink()
	d := New(Config{ValuePrefix: "make_"}, mem, nil, nil)

	results := d.Run([]*schema.ClassSchema{s})
	require.True(t, results[0].OK())

	b, _ := mem.Get("example.com/demo", "response_builder.go")
	assert.Contains(t, string(b.Content), "func make_Outer_Inner_Response(id int64, name string) Response {")

	dec, _ := mem.Get("example.com/demo", "response_decoder.go")
	assert.Contains(t, string(dec.Content), "v := make_Outer_Inner_Response(d.id, d.name)")
}

func TestRun_TypeParametersRejected(t *testing.T) {
	t.Parallel()

	s := responseSchema()
	s.SimpleName = "Pair"
	s.TypeParameters = []string{"T", "U"}

	mem := sink.NewMemorySink()
	d, diags := newTestDriver(t, mem)

	results := d.Run([]*schema.ClassSchema{s})
	require.Len(t, results, 1)

	var tpe *schema.TypeParameterError
	require.ErrorAs(t, results[0].Err, &tpe)
	assert.Equal(t, "Cannot create Builder on classes with type parameters: Pair<T, U>", tpe.Error())
	assert.Empty(t, mem.Keys())

	require.Len(t, diags.Errors, 1)
	assert.Equal(t, diagnostic.CodeTypeParameters, diags.Errors[0].Code)
	assert.Equal(t, "response.go:8:6", diags.Errors[0].Location)
}

func TestRun_UnsupportedTypeReported(t *testing.T) {
	t.Parallel()

	s := responseSchema()
	s.Properties = append(s.Properties, schema.Property{
		Name:      "tags",
		FieldName: "Tags",
		Type:      schema.Type{Kind: schema.KindSlice, Name: "[]string"},
	})

	mem := sink.NewMemorySink()
	d, diags := newTestDriver(t, mem)

	results := d.Run([]*schema.ClassSchema{s})

	var ute *schema.UnsupportedTypeError
	require.ErrorAs(t, results[0].Err, &ute)
	assert.Equal(t, "tags", ute.Property)
	assert.Empty(t, mem.Keys())

	require.Len(t, diags.Errors, 1)
	assert.Equal(t, diagnostic.CodeUnsupportedType, diags.Errors[0].Code)
}

func TestRun_PartialFailureKeepsGoing(t *testing.T) {
	t.Parallel()

	bad := responseSchema()
	bad.SimpleName = "Broken"
	bad.TypeParameters = []string{"T"}

	good := responseSchema()

	mem := sink.NewMemorySink()
	d, diags := newTestDriver(t, mem)

	results := d.Run([]*schema.ClassSchema{bad, nil, good})
	require.Len(t, results, 2)
	assert.False(t, results[0].OK())
	assert.True(t, results[1].OK())
	assert.Len(t, results[1].Artifacts, 2)
	assert.Len(t, mem.Keys(), 2)
	assert.Len(t, diags.Errors, 1)
}

func TestRun_SinkFailure(t *testing.T) {
	t.Parallel()

	boom := errors.New("disk full")
	mem := sink.NewMemorySink()
	mem.Fail = func(a sink.Artifact) error {
		if strings.HasSuffix(a.Filename, "_decoder.go") {
			return boom
		}

		return nil
	}

	d, diags := newTestDriver(t, mem)
	results := d.Run([]*schema.ClassSchema{responseSchema()})

	var ee *EmissionError
	require.ErrorAs(t, results[0].Err, &ee)
	assert.Equal(t, "response_decoder.go", ee.Filename)
	require.ErrorIs(t, results[0].Err, boom)
	assert.Len(t, results[0].Artifacts, 1)

	require.Len(t, diags.Errors, 1)
	assert.Equal(t, diagnostic.CodeEmission, diags.Errors[0].Code)
}

func TestRun_NameConflict(t *testing.T) {
	t.Parallel()

	s := responseSchema()
	s.Properties = append(s.Properties, schema.Property{
		Name:      "build",
		FieldName: "Build",
		Type:      schema.Type{Kind: schema.KindBool, Name: "bool"},
	})

	d, diags := newTestDriver(t, sink.NewMemorySink())
	results := d.Run([]*schema.ClassSchema{s})

	var nce *schema.NameConflictError
	require.ErrorAs(t, results[0].Err, &nce)
	require.Len(t, diags.Errors, 1)
	assert.Equal(t, diagnostic.CodeNameConflict, diags.Errors[0].Code)
}

func TestPass_DiscoveryFailure(t *testing.T) {
	t.Parallel()

	d, diags := newTestDriver(t, sink.NewMemorySink())

	_, err := d.Pass(context.Background(), staticProvider{err: errors.New("no packages")})
	require.Error(t, err)
	require.Len(t, diags.Errors, 1)
	assert.Equal(t, diagnostic.CodeDiscovery, diags.Errors[0].Code)
}

func TestPass_ConcatenatesProviders(t *testing.T) {
	t.Parallel()

	other := responseSchema()
	other.SimpleName = "Request"

	mem := sink.NewMemorySink()
	d, _ := newTestDriver(t, mem)

	results, err := d.Pass(context.Background(), Providers{
		staticProvider{schemas: []*schema.ClassSchema{responseSchema()}},
		staticProvider{schemas: []*schema.ClassSchema{other}},
	})
	require.NoError(t, err)
	require.Len(t, results, 2)
	assert.Equal(t, "example.com/demo.Request", results[1].Schema)
	assert.Len(t, mem.Keys(), 4)
}

func TestCode(t *testing.T) {
	t.Parallel()

	assert.Equal(t, diagnostic.CodeEmission, Code(errors.New("x")))
	assert.Equal(t, diagnostic.CodeUnsupportedType, Code(&schema.UnsupportedTypeError{}))
}
