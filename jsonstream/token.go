package jsonstream

// Token is the kind of the token under the cursor.
type Token int

const (
	// TokenNone means no token has been read yet, or the input is exhausted.
	TokenNone Token = iota
	TokenStartObject
	TokenEndObject
	TokenStartArray
	TokenEndArray
	TokenFieldName
	TokenString
	TokenNumber
	TokenTrue
	TokenFalse
	TokenNull
)

var tokenNames = [...]string{
	TokenNone:        "NONE",
	TokenStartObject: "START_OBJECT",
	TokenEndObject:   "END_OBJECT",
	TokenStartArray:  "START_ARRAY",
	TokenEndArray:    "END_ARRAY",
	TokenFieldName:   "FIELD_NAME",
	TokenString:      "VALUE_STRING",
	TokenNumber:      "VALUE_NUMBER",
	TokenTrue:        "VALUE_TRUE",
	TokenFalse:       "VALUE_FALSE",
	TokenNull:        "VALUE_NULL",
}

// String returns the token name.
func (t Token) String() string {
	if t < 0 || int(t) >= len(tokenNames) {
		return "UNKNOWN"
	}

	return tokenNames[t]
}

// IsStructStart reports whether t opens an object or an array.
func (t Token) IsStructStart() bool {
	return t == TokenStartObject || t == TokenStartArray
}

// IsStructEnd reports whether t closes an object or an array.
func (t Token) IsStructEnd() bool {
	return t == TokenEndObject || t == TokenEndArray
}

// IsScalarValue reports whether t is a string, number, boolean or null.
func (t Token) IsScalarValue() bool {
	return t >= TokenString && t <= TokenNull
}
