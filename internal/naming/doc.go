// Package naming derives every identifier the generator writes.
//
// All functions are pure and total: the same input always yields the same
// name, which keeps generation passes byte-identical.
package naming
