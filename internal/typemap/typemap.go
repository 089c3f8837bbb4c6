package typemap

import (
	"autojson-generator/internal/schema"
)

// ParserOp identifies the token-stream accessor for a scalar type.
type ParserOp struct {
	// Method is the *jsonstream.Parser method, e.g. "ValueAsInt64".
	Method string
	// Result is the Go type Method returns, e.g. "int64" or "*string".
	Result string
	// Zero is the zero literal of Result.
	Zero string
}

type opKey struct {
	kind     schema.Kind
	nullable bool
}

// Mapper resolves property types to parser operations.
type Mapper struct {
	ops map[opKey]ParserOp
}

// New returns a Mapper holding the default scalar table.
func New() *Mapper {
	m := &Mapper{ops: make(map[opKey]ParserOp)}

	for kind, base := range scalarResults {
		method := "ValueAs" + accessorSuffix[kind]
		m.ops[opKey{kind, false}] = ParserOp{Method: method, Result: base, Zero: zeroLiterals[kind]}
		m.ops[opKey{kind, true}] = ParserOp{
			Method: "ValueAsNullable" + accessorSuffix[kind],
			Result: "*" + base,
			Zero:   "nil",
		}
	}

	return m
}

// Resolve returns the parser operation for t, or false when t is outside the
// supported scalar set.
func (m *Mapper) Resolve(t schema.Type) (ParserOp, bool) {
	op, ok := m.ops[opKey{t.Kind, t.Nullable}]
	return op, ok
}

// Supports reports whether Resolve succeeds for t.
func (m *Mapper) Supports(t schema.Type) bool {
	_, ok := m.Resolve(t)
	return ok
}

// NeedsConversion reports whether the accessor result must be converted to
// the property's declared type (named types such as `type Status string`).
func NeedsConversion(t schema.Type, op ParserOp) bool {
	return t.Expr() != op.Result
}

// ZeroLiteral returns the zero literal assignable to the property's declared
// type. Untyped constants cover named numeric, string and bool types; named
// time types need a composite literal.
func ZeroLiteral(t schema.Type, op ParserOp) string {
	if t.Nullable {
		return "nil"
	}

	if t.Kind == schema.KindTime && NeedsConversion(t, op) {
		return t.Name + "{}"
	}

	return op.Zero
}

var scalarResults = map[schema.Kind]string{
	schema.KindBool:    "bool",
	schema.KindInt:     "int",
	schema.KindInt8:    "int8",
	schema.KindInt16:   "int16",
	schema.KindInt32:   "int32",
	schema.KindInt64:   "int64",
	schema.KindUint:    "uint",
	schema.KindUint8:   "uint8",
	schema.KindUint16:  "uint16",
	schema.KindUint32:  "uint32",
	schema.KindUint64:  "uint64",
	schema.KindFloat32: "float32",
	schema.KindFloat64: "float64",
	schema.KindString:  "string",
	schema.KindTime:    "time.Time",
}

var accessorSuffix = map[schema.Kind]string{
	schema.KindBool:    "Bool",
	schema.KindInt:     "Int",
	schema.KindInt8:    "Int8",
	schema.KindInt16:   "Int16",
	schema.KindInt32:   "Int32",
	schema.KindInt64:   "Int64",
	schema.KindUint:    "Uint",
	schema.KindUint8:   "Uint8",
	schema.KindUint16:  "Uint16",
	schema.KindUint32:  "Uint32",
	schema.KindUint64:  "Uint64",
	schema.KindFloat32: "Float32",
	schema.KindFloat64: "Float64",
	schema.KindString:  "String",
	schema.KindTime:    "Time",
}

var zeroLiterals = map[schema.Kind]string{
	schema.KindBool:    "false",
	schema.KindInt:     "0",
	schema.KindInt8:    "0",
	schema.KindInt16:   "0",
	schema.KindInt32:   "0",
	schema.KindInt64:   "0",
	schema.KindUint:    "0",
	schema.KindUint8:   "0",
	schema.KindUint16:  "0",
	schema.KindUint32:  "0",
	schema.KindUint64:  "0",
	schema.KindFloat32: "0",
	schema.KindFloat64: "0",
	schema.KindString:  `""`,
	schema.KindTime:    "time.Time{}",
}
