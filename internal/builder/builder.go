// Package builder synthesizes fluent builders for value types.
//
// For a schema T the builder artifact holds the canonical constructor
// autoValue_<ValueClass>, the TBuilder type with one field and one setter per
// property, NewTBuilder, and Build, which calls the canonical constructor
// with every field in schema order.
package builder

import (
	"fmt"
	"strings"

	"autojson-generator/internal/annotate"
	"autojson-generator/internal/artifact"
	"autojson-generator/internal/naming"
	"autojson-generator/internal/schema"
)

// Options configures builder synthesis.
type Options struct {
	// ValuePrefix prefixes the canonical constructor name.
	ValuePrefix string
}

// Synthesize returns the builder artifact for s. The schema is expected to
// have passed validation.
func Synthesize(s *schema.ClassSchema, opts Options) (*artifact.File, error) {
	if s == nil {
		return nil, fmt.Errorf("nil schema")
	}

	ctor := CanonicalConstructor(s, opts.ValuePrefix)
	builderName := naming.BuilderName(s.SimpleName)
	recv := &artifact.Param{Name: "b", Type: "*" + builderName}

	file := &artifact.File{
		Header:  artifact.Header,
		Package: s.PackageName,
		Imports: s.Imports(),
	}

	file.Decls = append(file.Decls, constructorFunc(s, ctor))

	fields := make([]artifact.Field, 0, len(s.Properties))
	for _, p := range s.Properties {
		fields = append(fields, artifact.Field{Name: naming.Param(p.Name), Type: p.Type.Expr()})
	}

	file.Decls = append(file.Decls,
		&artifact.Struct{
			Doc:    []string{fmt.Sprintf("%s assembles %s values one property at a time.", builderName, s.SimpleName)},
			Name:   builderName,
			Fields: fields,
		},
		&artifact.Func{
			Doc:     []string{fmt.Sprintf("New%s returns an empty %s.", builderName, builderName)},
			Name:    "New" + builderName,
			Results: []string{"*" + builderName},
			Body:    []string{"return &" + builderName + "{}"},
		},
	)

	for _, p := range s.Properties {
		file.Decls = append(file.Decls, setter(p, recv))
	}

	args := make([]string, 0, len(s.Properties))
	for _, p := range s.Properties {
		args = append(args, "b."+naming.Param(p.Name))
	}

	file.Decls = append(file.Decls, &artifact.Func{
		Doc:     []string{fmt.Sprintf("Build returns a %s holding the values set so far.", s.SimpleName)},
		Recv:    recv,
		Name:    "Build",
		Results: []string{s.SimpleName},
		Body:    []string{"return " + artifact.Call(ctor, args...)},
	})

	return file, nil
}

// CanonicalConstructor returns the name of the canonical constructor of s.
func CanonicalConstructor(s *schema.ClassSchema, prefix string) string {
	return naming.ConstructorName(prefix, naming.ValueClassName(s.SimpleName, s.EnclosingChain))
}

func constructorFunc(s *schema.ClassSchema, ctor string) *artifact.Func {
	params := make([]artifact.Param, 0, len(s.Properties))
	body := []string{"return " + s.SimpleName + "{}"}

	if len(s.Properties) > 0 {
		body = []string{"return " + s.SimpleName + "{"}
		for _, p := range s.Properties {
			param := naming.Param(p.Name)
			params = append(params, artifact.Param{Name: param, Type: p.Type.Expr()})
			body = append(body, p.FieldName+": "+param+",")
		}

		body = append(body, "}")
	}

	return &artifact.Func{
		Doc:     []string{fmt.Sprintf("%s is the canonical constructor of %s.", ctor, s.SimpleName)},
		Name:    ctor,
		Params:  params,
		Results: []string{s.SimpleName},
		Body:    body,
	}
}

func setter(p schema.Property, recv *artifact.Param) *artifact.Func {
	field := naming.Param(p.Name)
	name := naming.Exported(p.Name)

	// The argument must not shadow the receiver.
	arg := field
	if arg == recv.Name {
		arg += "_"
	}

	return &artifact.Func{
		Doc:     setterDoc(name, p),
		Recv:    recv,
		Name:    name,
		Params:  []artifact.Param{{Name: arg, Type: p.Type.Expr()}},
		Results: []string{recv.Type},
		Body: []string{
			recv.Name + "." + field + " = " + arg,
			"return " + recv.Name,
		},
	}
}

// setterDoc renders the propagated annotations: deprecation as a Deprecated
// paragraph, tags as a trailing //autojson:tag directive.
func setterDoc(name string, p schema.Property) []string {
	doc := []string{fmt.Sprintf("%s sets %s.", name, p.Name)}

	var tags []string
	for _, a := range annotate.Propagate(p) {
		switch {
		case a.Kind == schema.AnnotationDeprecated:
			msg := a.Value()
			if msg == "" {
				msg = "do not use."
			}

			lines := strings.Split(msg, "\n")
			lines[0] = "Deprecated: " + lines[0]
			doc = append(doc, "")
			doc = append(doc, lines...)
		case a.IsTag():
			tags = append(tags, a.TagString())
		}
	}

	if len(tags) > 0 {
		doc = append(doc, "", "autojson:tag "+strings.Join(tags, " "))
	}

	return doc
}
