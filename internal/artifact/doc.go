// Package artifact provides the structured model of a generated Go file and
// its rendering.
//
// Synthesizers build a File as ordered declarations (structs and funcs with
// parameter lists and body lines); Render turns it into source in a single
// text/template pass followed by go/format. Separators between parameters
// and arguments are produced by joining slices, never by trimming.
package artifact
