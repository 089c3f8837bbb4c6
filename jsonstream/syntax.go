package jsonstream

import (
	"fmt"
	"io"

	gojson "github.com/goccy/go-json"
)

// SyntaxError reports input that is not well-formed JSON.
type SyntaxError struct {
	// Offset is the byte offset of the offending token.
	Offset int64
	Msg    string
}

func (e *SyntaxError) Error() string {
	return fmt.Sprintf("jsonstream: syntax error at offset %d: %s", e.Offset, e.Msg)
}

// recorder keeps the bytes the decoder has read but the parser has not yet
// checked. The go-json token reader skips ',' and ':' without looking at
// them, so separators are verified against this copy.
type recorder struct {
	r    io.Reader
	buf  []byte
	base int64
}

func (r *recorder) Read(b []byte) (int, error) {
	n, err := r.r.Read(b)
	r.buf = append(r.buf, b[:n]...)

	return n, err
}

// gap returns the separators between offset from and the next token, and
// the offset that token starts at.
func (r *recorder) gap(from int64) (string, int64) {
	var seps []byte

	i := from - r.base
	for ; i >= 0 && i < int64(len(r.buf)); i++ {
		switch c := r.buf[i]; c {
		case ' ', '\t', '\r', '\n':
		case ',', ':':
			seps = append(seps, c)
		default:
			return string(seps), r.base + i
		}
	}

	return string(seps), r.base + i
}

// discard drops recorded bytes before offset upTo.
func (r *recorder) discard(upTo int64) {
	k := upTo - r.base
	if k <= 0 || k > int64(len(r.buf)) {
		return
	}

	r.buf = append(r.buf[:0], r.buf[k:]...)
	r.base = upTo
}

// check verifies that raw may follow the current position given the
// separators read before it.
func (p *Parser) check(raw gojson.Token, seps string) string {
	delim, isDelim := raw.(gojson.Delim)
	closes := isDelim && (delim == '}' || delim == ']')
	_, isString := raw.(string)

	top := p.top()
	if top == nil {
		switch {
		case closes:
			return fmt.Sprintf("unexpected %q outside any object or array", rune(delim))
		case seps != "":
			return fmt.Sprintf("unexpected %q between top-level values", seps)
		}

		return ""
	}

	want := ""

	switch {
	case top.object && top.expectKey:
		switch {
		case closes && delim == ']':
			return `"]" closes an object`
		case closes:
			// want ""
		case !isString:
			return "expected field name"
		case top.count > 0:
			want = ","
		}
	case top.object:
		if closes {
			return fmt.Sprintf("expected value after field %q", top.name)
		}

		want = ":"
	default:
		switch {
		case closes && delim == '}':
			return `"}" closes an array`
		case closes:
			// want ""
		case top.count > 0:
			want = ","
		}
	}

	if seps != want {
		if want == "" {
			return fmt.Sprintf("unexpected %q", seps)
		}

		return fmt.Sprintf("expected %q, found %q", want, seps)
	}

	return ""
}
