package jsonstream

import (
	"bytes"
	"io"
	"strings"
	"testing"
	"testing/iotest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func collect(t *testing.T, p *Parser) []Token {
	t.Helper()

	var out []Token
	for {
		tok, err := p.NextToken()
		require.NoError(t, err)

		if tok == TokenNone {
			return out
		}

		out = append(out, tok)
	}
}

func TestParser_TokenSequence(t *testing.T) {
	t.Parallel()

	p := NewBytesParser([]byte(`{"id":2,"name":"brandon","tags":["a",null],"ok":true,"no":false}`))

	assert.Equal(t, TokenNone, p.CurrentToken())
	assert.Equal(t, []Token{
		TokenStartObject,
		TokenFieldName, TokenNumber,
		TokenFieldName, TokenString,
		TokenFieldName, TokenStartArray, TokenString, TokenNull, TokenEndArray,
		TokenFieldName, TokenTrue,
		TokenFieldName, TokenFalse,
		TokenEndObject,
	}, collect(t, p))
	assert.Equal(t, TokenNone, p.CurrentToken())
}

func TestParser_StringValueIsNotFieldName(t *testing.T) {
	t.Parallel()

	p := NewBytesParser([]byte(`{"a":"b","c":"d"}`))

	toks := collect(t, p)
	assert.Equal(t, []Token{
		TokenStartObject, TokenFieldName, TokenString, TokenFieldName, TokenString, TokenEndObject,
	}, toks)
}

func TestParser_CurrentName(t *testing.T) {
	t.Parallel()

	p := NewBytesParser([]byte(`{"id":2,"nested":{"x":1}}`))

	steps := []struct {
		tok  Token
		name string
	}{
		{TokenStartObject, ""},
		{TokenFieldName, "id"},
		{TokenNumber, "id"},
		{TokenFieldName, "nested"},
		{TokenStartObject, "nested"},
		{TokenFieldName, "x"},
		{TokenNumber, "x"},
		{TokenEndObject, "nested"},
		{TokenEndObject, ""},
	}

	for i, step := range steps {
		tok, err := p.NextToken()
		require.NoError(t, err)
		assert.Equal(t, step.tok, tok, "step %d", i)
		assert.Equal(t, step.name, p.CurrentName(), "step %d", i)
	}
}

func TestParser_SkipChildren(t *testing.T) {
	t.Parallel()

	p := NewBytesParser([]byte(`{"skip":{"a":[1,{"b":2}],"c":3},"id":7}`))

	_, err := p.NextToken() // {
	require.NoError(t, err)
	_, err = p.NextToken() // "skip"
	require.NoError(t, err)
	tok, err := p.NextToken() // {
	require.NoError(t, err)
	require.Equal(t, TokenStartObject, tok)

	require.NoError(t, p.SkipChildren())
	assert.Equal(t, TokenEndObject, p.CurrentToken())
	assert.Equal(t, 1, p.Depth())

	tok, err = p.NextToken()
	require.NoError(t, err)
	assert.Equal(t, TokenFieldName, tok)
	assert.Equal(t, "id", p.CurrentName())
}

func TestParser_SkipChildrenOnScalarIsNoop(t *testing.T) {
	t.Parallel()

	p := NewBytesParser([]byte(`{"id":7}`))

	for range 3 {
		_, err := p.NextToken()
		require.NoError(t, err)
	}

	require.Equal(t, TokenNumber, p.CurrentToken())
	require.NoError(t, p.SkipChildren())
	assert.Equal(t, TokenNumber, p.CurrentToken())
	assert.Equal(t, int64(7), p.ValueAsInt64())
}

func TestParser_EndOfInput(t *testing.T) {
	t.Parallel()

	t.Run("empty", func(t *testing.T) {
		t.Parallel()

		p := NewBytesParser(nil)
		tok, err := p.NextToken()
		require.NoError(t, err)
		assert.Equal(t, TokenNone, tok)
	})

	t.Run("truncated object", func(t *testing.T) {
		t.Parallel()

		p := NewBytesParser([]byte(`{"id":2`))

		var err error
		for range 5 {
			if _, err = p.NextToken(); err != nil {
				break
			}
		}

		require.Error(t, err)
	})

	t.Run("truncated while skipping", func(t *testing.T) {
		t.Parallel()

		p := NewBytesParser([]byte(`[1,2`))
		_, err := p.NextToken()
		require.NoError(t, err)

		err = p.SkipChildren()
		require.Error(t, err)
		assert.NotErrorIs(t, err, io.EOF)
	})
}

func drain(p *Parser) error {
	for {
		tok, err := p.NextToken()
		if err != nil {
			return err
		}

		if tok == TokenNone {
			return nil
		}
	}
}

func TestParser_SyntaxErrors(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		input string
	}{
		{name: "array close on object", input: `{"id":1]`},
		{name: "array close after members", input: `{"id":1,"name":"x"]`},
		{name: "object close on array", input: `[1,2}`},
		{name: "missing colon", input: `{"id" 2}`},
		{name: "leading colon", input: `{:"id":2}`},
		{name: "double comma", input: `{"id":2,,"x":1}`},
		{name: "trailing comma in object", input: `{"id":2,}`},
		{name: "trailing comma in array", input: `[1,]`},
		{name: "missing comma in object", input: `{"id":2 "x":1}`},
		{name: "missing comma in array", input: `[1 2]`},
		{name: "colon in array", input: `[1:2]`},
		{name: "stray value", input: `{"id":2 3}`},
		{name: "non-string key", input: `{1:2}`},
		{name: "missing value", input: `{"id":}`},
		{name: "close at top level", input: `}`},
		{name: "comma between top-level values", input: `{},{}`},
		{name: "trailing comma at top level", input: `{"id":1},`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			p := NewBytesParser([]byte(tt.input))

			err := drain(p)

			var se *SyntaxError
			require.ErrorAs(t, err, &se)

			// The error sticks: the cursor never reports a clean end.
			tok, again := p.NextToken()
			assert.Equal(t, TokenNone, tok)
			assert.Equal(t, err, again)
		})
	}
}

func TestParser_WellFormedInputs(t *testing.T) {
	t.Parallel()

	tests := []string{
		`{}`,
		`[]`,
		` { "a" : 1 , "b" : [ 1 , { } , [ ] ] } `,
		`[{"a":[]},{"b":{}}]`,
		"{\n\t\"a\":\"x,y:z\"\n}",
		`{"a":1} {"b":2}`,
		`"scalar"`,
	}

	for _, in := range tests {
		t.Run(in, func(t *testing.T) {
			t.Parallel()

			require.NoError(t, drain(NewBytesParser([]byte(in))))
		})
	}
}

func TestParser_SeparatorsAcrossReads(t *testing.T) {
	t.Parallel()

	var sb strings.Builder
	sb.WriteString(`{"items":[`)
	for i := range 400 {
		if i > 0 {
			sb.WriteString(", ")
		}
		sb.WriteString(`{"n":1}`)
	}
	sb.WriteString(`]}`)

	p := NewParser(iotest.OneByteReader(bytes.NewReader([]byte(sb.String()))))
	require.NoError(t, drain(p))

	bad := strings.Replace(sb.String(), `, {"n":1}]`, ` {"n":1}]`, 1)
	p = NewParser(iotest.OneByteReader(bytes.NewReader([]byte(bad))))

	var se *SyntaxError
	require.ErrorAs(t, drain(p), &se)
	assert.Greater(t, se.Offset, int64(2000))
}
