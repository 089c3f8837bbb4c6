package schema

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestKindOf(t *testing.T) {
	t.Parallel()

	tests := map[string]Kind{
		"bool":       KindBool,
		"int":        KindInt,
		"int64":      KindInt64,
		"uint8":      KindUint8,
		"byte":       KindUint8,
		"rune":       KindInt32,
		"float32":    KindFloat32,
		"string":     KindString,
		"complex128": KindUnknown,
		"time":       KindUnknown,
		"slice":      KindUnknown,
	}

	for basic, want := range tests {
		assert.Equal(t, want, KindOf(basic), basic)
	}
}

func TestKind_Predicates(t *testing.T) {
	t.Parallel()

	assert.True(t, KindTime.IsScalar())
	assert.False(t, KindSlice.IsScalar())
	assert.False(t, KindUnknown.IsScalar())
	assert.True(t, KindUint16.IsInteger())
	assert.True(t, KindUint16.IsUnsigned())
	assert.False(t, KindInt16.IsUnsigned())
	assert.False(t, KindFloat64.IsInteger())
	assert.Equal(t, "unknown", KindUnknown.String())
	assert.Equal(t, "map", KindMap.String())
}

func TestType_Expr(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "*int64", Type{Kind: KindInt64, Name: "int64", Nullable: true}.Expr())
	assert.Equal(t, "Status", Type{Kind: KindString, Name: "Status"}.String())
	assert.Equal(t, "slice", Type{Kind: KindSlice}.String())
}

func TestClassSchema_Names(t *testing.T) {
	t.Parallel()

	s := &ClassSchema{PackagePath: "example.com/demo", SimpleName: "Response"}
	assert.Equal(t, "example.com/demo.Response", s.QualifiedName())
	assert.Equal(t, "example.com/demo.Response", s.Location())

	s.Position = "response.go:9:6"
	assert.Equal(t, "response.go:9:6", s.Location())

	assert.Equal(t, "Response", (&ClassSchema{SimpleName: "Response"}).QualifiedName())
}

func TestClassSchema_Imports(t *testing.T) {
	t.Parallel()

	s := &ClassSchema{
		PackagePath: "example.com/demo",
		Properties: []Property{
			{Name: "at", Type: Type{Kind: KindTime, Name: "time.Time", PkgPath: "time"}},
			{Name: "code", Type: Type{Kind: KindString, Name: "ids.Code", PkgPath: "example.com/ids"}},
			{Name: "own", Type: Type{Kind: KindString, Name: "Status", PkgPath: "example.com/demo"}},
			{Name: "ttl", Type: Type{Kind: KindInt64, Name: "time.Duration", PkgPath: "time"}},
			{Name: "id", Type: Type{Kind: KindInt64, Name: "int64"}},
		},
	}

	assert.Equal(t, []string{"example.com/ids", "time"}, s.Imports())
	assert.Equal(t, "code", s.Property("code").Name)
	assert.Nil(t, s.Property("missing"))
}

func TestTagAnnotations(t *testing.T) {
	t.Parallel()

	got := TagAnnotations(`gorm:"primaryKey" json:"id,omitempty" validate:"required,min=1"`)
	require.Len(t, got, 3)

	assert.Equal(t, AnnotationOpaque, got[0].Kind)
	assert.Equal(t, "gorm", got[0].Key)
	assert.Equal(t, "primaryKey", got[0].Value())

	assert.Equal(t, AnnotationWireName, got[1].Kind)
	assert.Equal(t, "id", got[1].Value())
	opts, ok := got[1].Member(MemberOptions)
	assert.True(t, ok)
	assert.Equal(t, "omitempty", opts)
	assert.Equal(t, `json:"id,omitempty"`, got[1].TagString())

	assert.Equal(t, `validate:"required,min=1"`, got[2].TagString())
}

func TestTagAnnotations_EdgeCases(t *testing.T) {
	t.Parallel()

	assert.Empty(t, TagAnnotations(""))
	assert.Empty(t, TagAnnotations("   "))

	// Malformed trailing content is dropped.
	got := TagAnnotations(`json:"id" broken`)
	require.Len(t, got, 1)
	assert.Equal(t, "id", got[0].Value())

	// Escapes survive.
	got = TagAnnotations(`doc:"say \"hi\""`)
	require.Len(t, got, 1)
	assert.Equal(t, `say "hi"`, got[0].Value())
	assert.Equal(t, `doc:"say \"hi\""`, got[0].TagString())

	// "-," names the field "-" and keeps the empty options.
	got = TagAnnotations(`json:"-,"`)
	require.Len(t, got, 1)
	assert.Equal(t, `json:"-,"`, got[0].TagString())
}

func TestAnnotation_Clone(t *testing.T) {
	t.Parallel()

	orig := NewWireName("id", "omitempty")
	clone := orig.Clone()
	clone.Members[0].Value = "changed"

	assert.Equal(t, "id", orig.Value())
	assert.Equal(t, "changed", clone.Value())
}

func TestNewDeprecated(t *testing.T) {
	t.Parallel()

	a := NewDeprecated("use other")
	assert.Equal(t, AnnotationDeprecated, a.Kind)
	assert.False(t, a.IsTag())
	assert.Equal(t, "use other", a.Value())
}

type allScalars struct{}

func (allScalars) Supports(t Type) bool { return t.Kind.IsScalar() }

func prop(name string, kind Kind) Property {
	return Property{Name: name, FieldName: name, Type: Type{Kind: kind, Name: kind.String()}}
}

func TestValidate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		schema ClassSchema
		check  func(t *testing.T, err error)
	}{
		{
			name:   "valid",
			schema: ClassSchema{SimpleName: "A", Properties: []Property{prop("id", KindInt64), prop("name", KindString)}},
			check: func(t *testing.T, err error) {
				require.NoError(t, err)
			},
		},
		{
			name:   "no properties",
			schema: ClassSchema{SimpleName: "Empty"},
			check: func(t *testing.T, err error) {
				require.NoError(t, err)
			},
		},
		{
			name: "type parameters come first",
			schema: ClassSchema{
				SimpleName:     "Pair",
				TypeParameters: []string{"T"},
				Properties:     []Property{prop("x", KindSlice)},
			},
			check: func(t *testing.T, err error) {
				var tpe *TypeParameterError
				require.ErrorAs(t, err, &tpe)
				assert.Equal(t, "Cannot create Builder on classes with type parameters: Pair<T>", err.Error())
			},
		},
		{
			name:   "unsupported type",
			schema: ClassSchema{SimpleName: "A", Properties: []Property{prop("id", KindInt64), prop("tags", KindSlice)}},
			check: func(t *testing.T, err error) {
				var ute *UnsupportedTypeError
				require.ErrorAs(t, err, &ute)
				assert.Equal(t, "tags", ute.Property)
			},
		},
		{
			name:   "duplicate names",
			schema: ClassSchema{SimpleName: "A", Properties: []Property{prop("id", KindInt64), prop("id", KindString)}},
			check: func(t *testing.T, err error) {
				var nce *NameConflictError
				require.ErrorAs(t, err, &nce)
			},
		},
		{
			name:   "setters collide",
			schema: ClassSchema{SimpleName: "A", Properties: []Property{prop("user_id", KindInt64), prop("userID", KindInt64)}},
			check: func(t *testing.T, err error) {
				var nce *NameConflictError
				require.ErrorAs(t, err, &nce)
				assert.Equal(t, "userID", nce.Property)
			},
		},
		{
			name:   "reserved setter",
			schema: ClassSchema{SimpleName: "A", Properties: []Property{prop("build", KindBool)}},
			check: func(t *testing.T, err error) {
				var nce *NameConflictError
				require.ErrorAs(t, err, &nce)
			},
		},
		{
			name:   "reserved slot",
			schema: ClassSchema{SimpleName: "A", Properties: []Property{prop("Reset", KindBool)}},
			check: func(t *testing.T, err error) {
				var nce *NameConflictError
				require.ErrorAs(t, err, &nce)
			},
		},
		{
			name: "wire name disagrees with json tag",
			schema: ClassSchema{SimpleName: "A", Properties: []Property{{
				Name: "id", FieldName: "id", WireName: "ident",
				Type:        Type{Kind: KindInt64, Name: "int64"},
				Annotations: TagAnnotations(`json:"id"`),
			}}},
			check: func(t *testing.T, err error) {
				var nce *NameConflictError
				require.ErrorAs(t, err, &nce)
				assert.Equal(t, "id", nce.Property)
				assert.Contains(t, nce.Error(), `json tag name "id" (wire name "ident")`)
			},
		},
		{
			name: "wire name agrees with json tag",
			schema: ClassSchema{SimpleName: "A", Properties: []Property{{
				Name: "id", FieldName: "id", WireName: "ident",
				Type:        Type{Kind: KindInt64, Name: "int64"},
				Annotations: TagAnnotations(`json:"ident,omitempty" yaml:"x"`),
			}}},
			check: func(t *testing.T, err error) {
				require.NoError(t, err)
			},
		},
		{
			name:   "empty name",
			schema: ClassSchema{SimpleName: "A", Properties: []Property{prop("", KindBool)}},
			check: func(t *testing.T, err error) {
				var nce *NameConflictError
				require.ErrorAs(t, err, &nce)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			tt.check(t, tt.schema.Validate(allScalars{}))
		})
	}
}
