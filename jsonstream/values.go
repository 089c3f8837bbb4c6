package jsonstream

import (
	"math"
	"strconv"
	"strings"
	"time"
)

// Scalar accessors coerce the current token the way a lenient reader would:
// numbers parse from numeric strings, booleans read as 0 or 1, anything that
// cannot be converted yields the zero value. They never advance the cursor.

func (p *Parser) numericText() (string, bool) {
	switch p.cur {
	case TokenNumber:
		return p.text, true
	case TokenString:
		return strings.TrimSpace(p.text), true
	default:
		return "", false
	}
}

func (p *Parser) signed(bits int) int64 {
	switch p.cur {
	case TokenTrue:
		return 1
	case TokenFalse, TokenNull:
		return 0
	}

	text, ok := p.numericText()
	if !ok {
		return 0
	}

	if v, err := strconv.ParseInt(text, 10, bits); err == nil {
		return v
	}

	f, err := strconv.ParseFloat(text, 64)
	if err != nil {
		return 0
	}

	f = math.Trunc(f)

	lo, hi := -math.Exp2(float64(bits-1)), math.Exp2(float64(bits-1))
	if f < lo || f >= hi {
		return 0
	}

	return int64(f)
}

func (p *Parser) unsigned(bits int) uint64 {
	switch p.cur {
	case TokenTrue:
		return 1
	case TokenFalse, TokenNull:
		return 0
	}

	text, ok := p.numericText()
	if !ok {
		return 0
	}

	if v, err := strconv.ParseUint(text, 10, bits); err == nil {
		return v
	}

	f, err := strconv.ParseFloat(text, 64)
	if err != nil {
		return 0
	}

	f = math.Trunc(f)
	if f < 0 || f >= math.Exp2(float64(bits)) {
		return 0
	}

	return uint64(f)
}

func (p *Parser) float(bits int) float64 {
	switch p.cur {
	case TokenTrue:
		return 1
	case TokenFalse, TokenNull:
		return 0
	}

	text, ok := p.numericText()
	if !ok {
		return 0
	}

	f, err := strconv.ParseFloat(text, bits)
	if err != nil {
		return 0
	}

	return f
}

// ValueAsBool reads true, false, non-zero numbers and "true"/"false" strings.
func (p *Parser) ValueAsBool() bool {
	switch p.cur {
	case TokenTrue:
		return true
	case TokenNumber:
		f, err := strconv.ParseFloat(p.text, 64)
		return err == nil && f != 0
	case TokenString:
		b, err := strconv.ParseBool(strings.TrimSpace(p.text))
		return err == nil && b
	default:
		return false
	}
}

// ValueAsInt reads the current value as an int.
func (p *Parser) ValueAsInt() int { return int(p.signed(strconv.IntSize)) }

// ValueAsInt8 reads the current value as an int8.
func (p *Parser) ValueAsInt8() int8 { return int8(p.signed(8)) }

// ValueAsInt16 reads the current value as an int16.
func (p *Parser) ValueAsInt16() int16 { return int16(p.signed(16)) }

// ValueAsInt32 reads the current value as an int32.
func (p *Parser) ValueAsInt32() int32 { return int32(p.signed(32)) }

// ValueAsInt64 reads the current value as an int64.
func (p *Parser) ValueAsInt64() int64 { return p.signed(64) }

// ValueAsUint reads the current value as a uint.
func (p *Parser) ValueAsUint() uint { return uint(p.unsigned(strconv.IntSize)) }

// ValueAsUint8 reads the current value as a uint8.
func (p *Parser) ValueAsUint8() uint8 { return uint8(p.unsigned(8)) }

// ValueAsUint16 reads the current value as a uint16.
func (p *Parser) ValueAsUint16() uint16 { return uint16(p.unsigned(16)) }

// ValueAsUint32 reads the current value as a uint32.
func (p *Parser) ValueAsUint32() uint32 { return uint32(p.unsigned(32)) }

// ValueAsUint64 reads the current value as a uint64.
func (p *Parser) ValueAsUint64() uint64 { return p.unsigned(64) }

// ValueAsFloat32 reads the current value as a float32.
func (p *Parser) ValueAsFloat32() float32 { return float32(p.float(32)) }

// ValueAsFloat64 reads the current value as a float64.
func (p *Parser) ValueAsFloat64() float64 { return p.float(64) }

// ValueAsString returns strings and numbers as their text and booleans as
// "true" or "false". Null, objects and arrays read as "".
func (p *Parser) ValueAsString() string {
	switch p.cur {
	case TokenString, TokenNumber, TokenFieldName:
		return p.text
	case TokenTrue:
		return "true"
	case TokenFalse:
		return "false"
	default:
		return ""
	}
}

// ValueAsTime reads an RFC 3339 string, or a number of Unix milliseconds.
func (p *Parser) ValueAsTime() time.Time {
	switch p.cur {
	case TokenString:
		t, err := time.Parse(time.RFC3339Nano, strings.TrimSpace(p.text))
		if err != nil {
			return time.Time{}
		}

		return t
	case TokenNumber:
		return time.UnixMilli(p.signed(64)).UTC()
	default:
		return time.Time{}
	}
}

func nullable[T any](p *Parser, get func() T) *T {
	if p.cur == TokenNull {
		return nil
	}

	v := get()

	return &v
}

// ValueAsNullableBool is ValueAsBool returning nil on null.
func (p *Parser) ValueAsNullableBool() *bool { return nullable(p, p.ValueAsBool) }

// ValueAsNullableInt is ValueAsInt returning nil on null.
func (p *Parser) ValueAsNullableInt() *int { return nullable(p, p.ValueAsInt) }

// ValueAsNullableInt8 is ValueAsInt8 returning nil on null.
func (p *Parser) ValueAsNullableInt8() *int8 { return nullable(p, p.ValueAsInt8) }

// ValueAsNullableInt16 is ValueAsInt16 returning nil on null.
func (p *Parser) ValueAsNullableInt16() *int16 { return nullable(p, p.ValueAsInt16) }

// ValueAsNullableInt32 is ValueAsInt32 returning nil on null.
func (p *Parser) ValueAsNullableInt32() *int32 { return nullable(p, p.ValueAsInt32) }

// ValueAsNullableInt64 is ValueAsInt64 returning nil on null.
func (p *Parser) ValueAsNullableInt64() *int64 { return nullable(p, p.ValueAsInt64) }

// ValueAsNullableUint is ValueAsUint returning nil on null.
func (p *Parser) ValueAsNullableUint() *uint { return nullable(p, p.ValueAsUint) }

// ValueAsNullableUint8 is ValueAsUint8 returning nil on null.
func (p *Parser) ValueAsNullableUint8() *uint8 { return nullable(p, p.ValueAsUint8) }

// ValueAsNullableUint16 is ValueAsUint16 returning nil on null.
func (p *Parser) ValueAsNullableUint16() *uint16 { return nullable(p, p.ValueAsUint16) }

// ValueAsNullableUint32 is ValueAsUint32 returning nil on null.
func (p *Parser) ValueAsNullableUint32() *uint32 { return nullable(p, p.ValueAsUint32) }

// ValueAsNullableUint64 is ValueAsUint64 returning nil on null.
func (p *Parser) ValueAsNullableUint64() *uint64 { return nullable(p, p.ValueAsUint64) }

// ValueAsNullableFloat32 is ValueAsFloat32 returning nil on null.
func (p *Parser) ValueAsNullableFloat32() *float32 { return nullable(p, p.ValueAsFloat32) }

// ValueAsNullableFloat64 is ValueAsFloat64 returning nil on null.
func (p *Parser) ValueAsNullableFloat64() *float64 { return nullable(p, p.ValueAsFloat64) }

// ValueAsNullableString is ValueAsString returning nil on null.
func (p *Parser) ValueAsNullableString() *string { return nullable(p, p.ValueAsString) }

// ValueAsNullableTime is ValueAsTime returning nil on null.
func (p *Parser) ValueAsNullableTime() *time.Time { return nullable(p, p.ValueAsTime) }
