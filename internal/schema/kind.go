package schema

import "autojson-generator/internal/common"

// Kind is the semantic kind of a property type.
type Kind int

const (
	KindUnknown Kind = iota // zero value, never mappable

	KindBool
	KindInt
	KindInt8
	KindInt16
	KindInt32
	KindInt64
	KindUint
	KindUint8
	KindUint16
	KindUint32
	KindUint64
	KindFloat32
	KindFloat64
	KindString
	KindTime

	KindStruct
	KindSlice
	KindMap
	KindInterface
)

var kindNames = map[Kind]string{
	KindBool:      "bool",
	KindInt:       "int",
	KindInt8:      "int8",
	KindInt16:     "int16",
	KindInt32:     "int32",
	KindInt64:     "int64",
	KindUint:      "uint",
	KindUint8:     "uint8",
	KindUint16:    "uint16",
	KindUint32:    "uint32",
	KindUint64:    "uint64",
	KindFloat32:   "float32",
	KindFloat64:   "float64",
	KindString:    "string",
	KindTime:      "time",
	KindStruct:    "struct",
	KindSlice:     "slice",
	KindMap:       "map",
	KindInterface: "interface",
}

// String returns a human-readable representation of the Kind.
func (k Kind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}

	return common.UnknownStr
}

// IsScalar reports whether values of this kind are single JSON scalars.
func (k Kind) IsScalar() bool {
	return k >= KindBool && k <= KindTime
}

// IsInteger reports whether the kind is a signed or unsigned integer.
func (k Kind) IsInteger() bool {
	return k >= KindInt && k <= KindUint64
}

// IsUnsigned reports whether the kind is an unsigned integer.
func (k Kind) IsUnsigned() bool {
	return k >= KindUint && k <= KindUint64
}

// KindOf returns the scalar kind named by a Go basic type name
// ("int64", "string", "byte", ...), or KindUnknown.
func KindOf(basic string) Kind {
	switch basic {
	case "byte":
		return KindUint8
	case "rune":
		return KindInt32
	case "time", "struct", "slice", "map", "interface":
		// Not Go basic type names.
		return KindUnknown
	}

	for k, name := range kindNames {
		if name == basic {
			return k
		}
	}

	return KindUnknown
}
