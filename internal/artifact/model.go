package artifact

import "strings"

// Header is the first line of every generated file.
const Header = "Code generated by autojson-generator. DO NOT EDIT."

// File is one generated Go source file.
type File struct {
	// Header is written as the first comment line; empty means none.
	Header string
	// Package is the Go package name.
	Package string
	// Imports are import paths; Render sorts and de-duplicates them.
	Imports []string
	// Decls are rendered in order.
	Decls []Decl
}

// Decl is a top-level declaration: *Struct or *Func.
type Decl interface {
	DeclName() string
}

// Struct is a struct type declaration.
type Struct struct {
	Doc    []string
	Name   string
	Fields []Field
}

// DeclName implements Decl.
func (s *Struct) DeclName() string { return s.Name }

// Field is a struct field.
type Field struct {
	Name string
	Type string
	Tag  string
}

// Param is a named, typed parameter or receiver.
type Param struct {
	Name string
	Type string
}

// Func is a function or, with Recv set, a method.
type Func struct {
	Doc     []string
	Recv    *Param
	Name    string
	Params  []Param
	Results []string
	Body    []string
}

// DeclName implements Decl. Methods are named "Recv.Name".
func (f *Func) DeclName() string {
	if f.Recv == nil {
		return f.Name
	}

	return strings.TrimPrefix(f.Recv.Type, "*") + "." + f.Name
}

// Lookup returns the declaration with the given DeclName, or nil.
func (f *File) Lookup(name string) Decl {
	for _, d := range f.Decls {
		if d.DeclName() == name {
			return d
		}
	}

	return nil
}

// Func returns the function or method with the given DeclName, or nil.
func (f *File) Func(name string) *Func {
	fn, _ := f.Lookup(name).(*Func)
	return fn
}

// Struct returns the struct with the given name, or nil.
func (f *File) Struct(name string) *Struct {
	s, _ := f.Lookup(name).(*Struct)
	return s
}

// Call renders a call expression: Call("f", "a", "b") == "f(a, b)".
func Call(fn string, args ...string) string {
	return fn + "(" + strings.Join(args, ", ") + ")"
}
