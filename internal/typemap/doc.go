// Package typemap maps semantic property types to the jsonstream.Parser
// accessor that reads them, and to the zero literal used to reset decoder
// slots.
package typemap
