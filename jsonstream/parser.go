package jsonstream

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"strconv"

	gojson "github.com/goccy/go-json"
)

type frame struct {
	object    bool
	expectKey bool
	name      string
	// count is the number of completed members or elements.
	count int
}

// Parser is a forward-only cursor over a JSON token stream.
type Parser struct {
	dec    *gojson.Decoder
	rec    *recorder
	offset int64
	stack  []frame
	cur    Token
	text   string
	done   bool
	err    error
}

// NewParser returns a Parser reading JSON from r.
func NewParser(r io.Reader) *Parser {
	rec := &recorder{r: r}

	dec := gojson.NewDecoder(rec)
	dec.UseNumber()

	return &Parser{dec: dec, rec: rec}
}

// NewBytesParser returns a Parser reading JSON from b.
func NewBytesParser(b []byte) *Parser {
	return NewParser(bytes.NewReader(b))
}

// CurrentToken returns the token under the cursor, TokenNone before the
// first NextToken call and after the end of input.
func (p *Parser) CurrentToken() Token {
	return p.cur
}

// Depth returns the number of open objects and arrays.
func (p *Parser) Depth() int {
	return len(p.stack)
}

// NextToken advances the cursor and returns the new current token. At the
// clean end of input it returns TokenNone and a nil error; input ending
// inside an object or array yields io.ErrUnexpectedEOF, and malformed input
// a *SyntaxError. Once an error is returned every later call returns it too.
func (p *Parser) NextToken() (Token, error) {
	if p.err != nil {
		return TokenNone, p.err
	}

	if p.done {
		p.cur, p.text = TokenNone, ""
		return TokenNone, nil
	}

	raw, err := p.dec.Token()
	if err != nil {
		if !errors.Is(err, io.EOF) {
			return p.fail(fmt.Errorf("jsonstream: %w", err))
		}

		if len(p.stack) > 0 {
			return p.fail(io.ErrUnexpectedEOF)
		}

		if seps, at := p.rec.gap(p.offset); seps != "" {
			return p.fail(&SyntaxError{Offset: at, Msg: fmt.Sprintf("trailing %q", seps)})
		}

		p.done = true
		p.cur, p.text = TokenNone, ""

		return TokenNone, nil
	}

	seps, at := p.rec.gap(p.offset)
	if msg := p.check(raw, seps); msg != "" {
		return p.fail(&SyntaxError{Offset: at, Msg: msg})
	}

	p.offset = p.dec.InputOffset()
	p.rec.discard(p.offset)
	p.cur = p.classify(raw)

	return p.cur, nil
}

func (p *Parser) fail(err error) (Token, error) {
	p.err = err
	p.cur, p.text = TokenNone, ""

	return TokenNone, err
}

func (p *Parser) classify(raw gojson.Token) Token {
	p.text = ""

	switch v := raw.(type) {
	case gojson.Delim:
		switch v {
		case '{':
			p.stack = append(p.stack, frame{object: true, expectKey: true})
			return TokenStartObject
		case '[':
			p.stack = append(p.stack, frame{})
			return TokenStartArray
		case '}':
			p.pop()
			return TokenEndObject
		default:
			p.pop()
			return TokenEndArray
		}

	case string:
		if top := p.top(); top != nil && top.object && top.expectKey {
			top.expectKey = false
			top.name = v
			p.text = v

			return TokenFieldName
		}

		p.text = v
		p.valueDone()

		return TokenString

	case gojson.Number:
		p.text = string(v)
		p.valueDone()

		return TokenNumber

	case float64:
		p.text = strconv.FormatFloat(v, 'g', -1, 64)
		p.valueDone()

		return TokenNumber

	case bool:
		p.valueDone()
		if v {
			return TokenTrue
		}

		return TokenFalse

	default:
		p.valueDone()
		return TokenNull
	}
}

func (p *Parser) top() *frame {
	if n := len(p.stack); n > 0 {
		return &p.stack[n-1]
	}

	return nil
}

func (p *Parser) pop() {
	if n := len(p.stack); n > 0 {
		p.stack = p.stack[:n-1]
	}

	p.valueDone()
}

// valueDone records a completed value in the enclosing container; an
// object then waits for its next key.
func (p *Parser) valueDone() {
	top := p.top()
	if top == nil {
		return
	}

	if top.object {
		if top.expectKey {
			return
		}

		top.expectKey = true
	}

	top.count++
}

// CurrentName returns the name of the field the cursor is on or inside:
// the key itself on TokenFieldName, the key of the value otherwise. It is
// empty outside objects.
func (p *Parser) CurrentName() string {
	n := len(p.stack)
	if p.cur.IsStructStart() {
		// The container's own frame is already on the stack.
		n--
	}

	if n <= 0 || !p.stack[n-1].object {
		return ""
	}

	return p.stack[n-1].name
}

// Text returns the raw text of the current field name, string or number.
func (p *Parser) Text() string {
	return p.text
}

// SkipChildren advances past the matching end token when the cursor is on
// an object or array start. On any other token it does nothing.
func (p *Parser) SkipChildren() error {
	if !p.cur.IsStructStart() {
		return nil
	}

	depth := 1
	for depth > 0 {
		tok, err := p.NextToken()
		if err != nil {
			return err
		}

		switch {
		case tok.IsStructStart():
			depth++
		case tok.IsStructEnd():
			depth--
		case tok == TokenNone:
			return io.ErrUnexpectedEOF
		}
	}

	return nil
}
