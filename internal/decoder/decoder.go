// Package decoder synthesizes streaming JSON decoders for value types.
//
// The generated TDecoder walks a jsonstream.Parser through three states:
// awaiting the object start, inside the object, done. A value that is not
// an object decodes to nil; fields are dispatched by wire name in schema
// order and unknown names are skipped together with any nested children.
package decoder

import (
	"fmt"
	"strconv"

	"autojson-generator/internal/annotate"
	"autojson-generator/internal/artifact"
	"autojson-generator/internal/builder"
	"autojson-generator/internal/common"
	"autojson-generator/internal/naming"
	"autojson-generator/internal/schema"
	"autojson-generator/internal/typemap"
)

// DefaultRuntimeImport is the import path of the token-stream package.
const DefaultRuntimeImport = "autojson-generator/jsonstream"

// Options configures decoder synthesis.
type Options struct {
	// ValuePrefix prefixes the canonical constructor name.
	ValuePrefix string
	// RuntimeImport is the import path of the jsonstream package.
	RuntimeImport string
}

func (o Options) runtimeImport() string {
	if o.RuntimeImport == "" {
		return DefaultRuntimeImport
	}

	return o.RuntimeImport
}

// UnsupportedError is returned when a property type has no parser mapping.
// Validation rejects such schemas first; this guards direct callers.
type UnsupportedError struct {
	Property string
	Type     schema.Type
}

func (e *UnsupportedError) Error() string {
	return fmt.Sprintf("no parser operation for property %q of type %s", e.Property, e.Type)
}

// slot is one decoder field with its resolved parser operation.
type slot struct {
	prop schema.Property
	name string
	op   typemap.ParserOp
}

// Synthesize returns the decoder artifact for s.
func Synthesize(s *schema.ClassSchema, m *typemap.Mapper, opts Options) (*artifact.File, error) {
	if s == nil {
		return nil, fmt.Errorf("nil schema")
	}

	slots := make([]slot, 0, len(s.Properties))
	for _, p := range s.Properties {
		op, ok := m.Resolve(p.Type)
		if !ok {
			return nil, &UnsupportedError{Property: p.Name, Type: p.Type}
		}

		slots = append(slots, slot{prop: p, name: naming.Param(p.Name), op: op})
	}

	rt := common.PkgAlias(opts.runtimeImport())
	decoderName := naming.DecoderName(s.SimpleName)
	recv := &artifact.Param{Name: "d", Type: "*" + decoderName}
	parserType := "*" + rt + ".Parser"

	fields := make([]artifact.Field, 0, len(slots))
	for _, sl := range slots {
		fields = append(fields, artifact.Field{Name: sl.name, Type: sl.prop.Type.Expr()})
	}

	file := &artifact.File{
		Header:  artifact.Header,
		Package: s.PackageName,
		Imports: append(s.Imports(), "io", opts.runtimeImport()),
	}

	file.Decls = append(file.Decls,
		&artifact.Struct{
			Doc:    []string{fmt.Sprintf("%s reads %s values from a JSON token stream.", decoderName, s.SimpleName)},
			Name:   decoderName,
			Fields: fields,
		},
		decodeFunc(s, slots, recv, parserType, rt, builder.CanonicalConstructor(s, opts.ValuePrefix)),
		parseFunc(slots, recv, parserType),
		resetFunc(slots, recv),
		&artifact.Func{
			Doc:     []string{fmt.Sprintf("Unmarshal%s decodes a %s from JSON data.", s.SimpleName, s.SimpleName)},
			Name:    "Unmarshal" + s.SimpleName,
			Params:  []artifact.Param{{Name: "data", Type: "[]byte"}},
			Results: []string{"*" + s.SimpleName, "error"},
			Body: []string{
				"var d " + decoderName,
				"return d.Decode(" + rt + ".NewBytesParser(data))",
			},
		},
	)

	return file, nil
}

func decodeFunc(s *schema.ClassSchema, slots []slot, recv *artifact.Param, parserType, rt, ctor string) *artifact.Func {
	args := make([]string, 0, len(slots))
	for _, sl := range slots {
		args = append(args, "d."+sl.name)
	}

	body := []string{
		"d.reset()",
		"",
		"if p.CurrentToken() == " + rt + ".TokenNone {",
		"if _, err := p.NextToken(); err != nil {",
		"return nil, err",
		"}",
		"}",
		"",
		"if p.CurrentToken() != " + rt + ".TokenStartObject {",
		"if err := p.SkipChildren(); err != nil {",
		"return nil, err",
		"}",
		"",
		"return nil, nil",
		"}",
		"",
		"for {",
		"tok, err := p.NextToken()",
		"if err != nil {",
		"return nil, err",
		"}",
		"",
		"if tok == " + rt + ".TokenEndObject {",
		"break",
		"}",
		"",
		"if tok == " + rt + ".TokenNone {",
		"return nil, io.ErrUnexpectedEOF",
		"}",
		"",
		"fieldName := p.CurrentName()",
		"if _, err = p.NextToken(); err != nil {",
		"return nil, err",
		"}",
		"",
		"d.parse(fieldName, p)",
		"",
		"if err = p.SkipChildren(); err != nil {",
		"return nil, err",
		"}",
		"}",
		"",
		"v := " + artifact.Call(ctor, args...),
		"",
		"return &v, nil",
	}

	return &artifact.Func{
		Doc: []string{
			fmt.Sprintf("Decode reads one %s from p. A value that is not a JSON object", s.SimpleName),
			"is skipped and decodes to nil. Unknown fields are ignored.",
		},
		Recv:    recv,
		Name:    "Decode",
		Params:  []artifact.Param{{Name: "p", Type: parserType}},
		Results: []string{"*" + s.SimpleName, "error"},
		Body:    body,
	}
}

func parseFunc(slots []slot, recv *artifact.Param, parserType string) *artifact.Func {
	var body []string

	seen := make(map[string]bool)
	for _, sl := range slots {
		wire, ok := annotate.WireName(sl.prop)
		if !ok || seen[wire] {
			// Excluded from the wire, or shadowed by an earlier property.
			continue
		}

		seen[wire] = true
		body = append(body,
			"case "+strconv.Quote(wire)+":",
			"d."+sl.name+" = "+readExpr(sl),
		)
	}

	if len(body) > 0 {
		body = append([]string{"switch fieldName {"}, body...)
		body = append(body, "}")
	}

	return &artifact.Func{
		Doc: []string{
			"parse stores the value under the cursor in the slot whose wire name",
			"is fieldName. Unknown names are ignored.",
		},
		Recv:   recv,
		Name:   "parse",
		Params: []artifact.Param{{Name: "fieldName", Type: "string"}, {Name: "p", Type: parserType}},
		Body:   body,
	}
}

// readExpr returns the accessor call for a slot, converted to the declared
// type when it differs from the accessor result.
func readExpr(sl slot) string {
	call := "p." + sl.op.Method + "()"
	if !typemap.NeedsConversion(sl.prop.Type, sl.op) {
		return call
	}

	if sl.prop.Type.Nullable {
		return "(" + sl.prop.Type.Expr() + ")(" + call + ")"
	}

	return sl.prop.Type.Name + "(" + call + ")"
}

func resetFunc(slots []slot, recv *artifact.Param) *artifact.Func {
	body := make([]string, 0, len(slots))
	for _, sl := range slots {
		body = append(body, "d."+sl.name+" = "+typemap.ZeroLiteral(sl.prop.Type, sl.op))
	}

	return &artifact.Func{
		Doc:  []string{"reset sets every slot to its zero value."},
		Recv: recv,
		Name: "reset",
		Body: body,
	}
}
