package schema

import (
	"strconv"
	"strings"
)

// AnnotationKind is the closed set of metadata kinds the generator
// understands. Everything else is carried as AnnotationOpaque.
type AnnotationKind int

const (
	// AnnotationOpaque is any struct tag other than json; passed through.
	AnnotationOpaque AnnotationKind = iota
	// AnnotationWireName is the json struct tag naming the wire field.
	AnnotationWireName
	// AnnotationDeprecated is a "Deprecated:" doc paragraph.
	AnnotationDeprecated
)

// String returns a human-readable representation of the AnnotationKind.
func (k AnnotationKind) String() string {
	switch k {
	case AnnotationOpaque:
		return "opaque"
	case AnnotationWireName:
		return "wire-name"
	case AnnotationDeprecated:
		return "deprecated"
	default:
		return "unknown"
	}
}

// Member names used by annotations.
const (
	MemberValue   = "value"
	MemberOptions = "options"
)

// WireNameKey is the struct tag key carrying the wire name.
const WireNameKey = "json"

// DeprecatedKey is the Key of deprecation annotations.
const DeprecatedKey = "Deprecated"

// Member is one named literal of an annotation.
type Member struct {
	Name  string
	Value string
}

// Annotation is a piece of metadata attached to a property.
type Annotation struct {
	Kind AnnotationKind
	// Key is the struct tag key ("json", "yaml") or DeprecatedKey.
	Key string
	// Members are kept in source order.
	Members []Member
}

// Member returns the value of the named member and whether it is present.
func (a Annotation) Member(name string) (string, bool) {
	for _, m := range a.Members {
		if m.Name == name {
			return m.Value, true
		}
	}

	return "", false
}

// Value returns the "value" member, or "".
func (a Annotation) Value() string {
	v, _ := a.Member(MemberValue)
	return v
}

// IsTag reports whether the annotation renders as a struct tag entry.
func (a Annotation) IsTag() bool {
	return a.Kind == AnnotationWireName || a.Kind == AnnotationOpaque
}

// TagValue returns the raw struct tag value: for json the name and options
// joined by a comma, otherwise the value member.
func (a Annotation) TagValue() string {
	if a.Kind != AnnotationWireName {
		return a.Value()
	}

	opts, ok := a.Member(MemberOptions)
	if !ok {
		return a.Value()
	}

	return a.Value() + "," + opts
}

// TagString renders a tag annotation as `key:"value"`.
func (a Annotation) TagString() string {
	return a.Key + ":" + strconv.Quote(a.TagValue())
}

// Clone returns a deep copy of the annotation.
func (a Annotation) Clone() Annotation {
	out := a
	out.Members = append([]Member(nil), a.Members...)

	return out
}

// NewWireName returns a wire-name annotation for the given name and options.
func NewWireName(name, options string) Annotation {
	a := Annotation{
		Kind:    AnnotationWireName,
		Key:     WireNameKey,
		Members: []Member{{Name: MemberValue, Value: name}},
	}
	if options != "" {
		a.Members = append(a.Members, Member{Name: MemberOptions, Value: options})
	}

	return a
}

// NewDeprecated returns a deprecation annotation carrying the message.
func NewDeprecated(message string) Annotation {
	return Annotation{
		Kind:    AnnotationDeprecated,
		Key:     DeprecatedKey,
		Members: []Member{{Name: MemberValue, Value: message}},
	}
}

// TagAnnotations parses a raw struct tag (`json:"id,omitempty" yaml:"id"`)
// into annotations, keeping key order. Malformed trailing content is dropped,
// matching reflect.StructTag.Lookup.
func TagAnnotations(tag string) []Annotation {
	var out []Annotation

	for tag != "" {
		// Skip leading space.
		i := 0
		for i < len(tag) && tag[i] == ' ' {
			i++
		}

		tag = tag[i:]
		if tag == "" {
			break
		}

		i = 0
		for i < len(tag) && tag[i] > ' ' && tag[i] != ':' && tag[i] != '"' && tag[i] != 0x7f {
			i++
		}

		if i == 0 || i+1 >= len(tag) || tag[i] != ':' || tag[i+1] != '"' {
			break
		}

		key := tag[:i]
		tag = tag[i+1:]

		// Scan quoted string to find value.
		i = 1
		for i < len(tag) && tag[i] != '"' {
			if tag[i] == '\\' {
				i++
			}
			i++
		}

		if i >= len(tag) {
			break
		}

		quoted := tag[:i+1]
		tag = tag[i+1:]

		value, err := strconv.Unquote(quoted)
		if err != nil {
			break
		}

		out = append(out, tagAnnotation(key, value))
	}

	return out
}

func tagAnnotation(key, value string) Annotation {
	if key != WireNameKey {
		return Annotation{
			Kind:    AnnotationOpaque,
			Key:     key,
			Members: []Member{{Name: MemberValue, Value: value}},
		}
	}

	name, opts, hasOpts := strings.Cut(value, ",")

	a := NewWireName(name, "")
	if hasOpts {
		a.Members = append(a.Members, Member{Name: MemberOptions, Value: opts})
	}

	return a
}
