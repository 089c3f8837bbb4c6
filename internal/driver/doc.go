// Package driver orchestrates a generation pass.
//
// For every discovered schema the driver validates it, synthesizes the
// builder and decoder artifacts, renders them and hands them to a CodeSink.
// A failure is reported once through the diagnostic channel and recorded in
// that schema's EmissionResult; the remaining schemas are still processed.
package driver
