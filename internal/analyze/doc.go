// Package analyze discovers target schemas in Go source.
//
// It uses golang.org/x/tools/go/packages with AST and go/types to find
// struct types marked with the //autojson:deserialize directive and turns
// each into a schema.ClassSchema: fields in declaration order, their Go
// types, struct tags and Deprecated: docs.
//
// Directive syntax:
//
//	//autojson:deserialize
//	//autojson:deserialize enclosing=Outer.Inner
package analyze
