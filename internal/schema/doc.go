// Package schema provides the in-memory model of a target value type.
//
// A ClassSchema is produced by a schema provider (Go source analysis or the
// YAML config), validated once, and then read by every synthesizer of a
// generation pass.
//
// Key types:
//   - ClassSchema: package, simple name, enclosing chain, ordered properties
//   - Property: human name, struct field, optional wire name, semantic type
//   - Type: semantic kind plus the Go expression used in generated code
//   - Annotation: closed set of metadata kinds copied onto builder setters
package schema
