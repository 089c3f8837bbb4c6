// Package jsonstream provides the token cursor that generated decoders read
// from.
//
// A Parser walks a JSON document one token at a time on top of
// github.com/goccy/go-json's streaming Decoder. It keeps a current token, the
// name of the field the cursor is in, and offers lenient scalar accessors
// that coerce between numbers, numeric strings and booleans instead of
// failing. Syntax errors and truncated input are reported by NextToken.
//
// Typical use from generated code:
//
//	p := jsonstream.NewBytesParser(data)
//	var d ResponseDecoder
//	v, err := d.Decode(p)
package jsonstream
