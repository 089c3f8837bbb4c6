package diagnostic

import (
	"errors"
	"fmt"
	"strings"
	"sync"

	"go.uber.org/zap"

	"autojson-generator/internal/common"
)

// Diagnostic codes.
const (
	CodeUnsupportedType = "unsupported-type"
	CodeTypeParameters  = "type-parameters"
	CodeNameConflict    = "name-conflict"
	CodeEmission        = "emission"
	CodeDiscovery       = "discovery"
)

// Reporter receives diagnostics.
type Reporter interface {
	Report(d Diagnostic)
}

// Diagnostic represents a single diagnostic message.
type Diagnostic struct {
	// Severity of the diagnostic.
	Severity DiagnosticSeverity
	// Code is a unique identifier for this type of diagnostic.
	Code string
	// Message is the human-readable description.
	Message string
	// Schema is the qualified name of the schema concerned (if any).
	Schema string
	// Location is the declaration site ("file.go:12:6"), if known.
	Location string
}

// DiagnosticSeverity represents the severity level of a diagnostic.
type DiagnosticSeverity int

const (
	DiagnosticInfo DiagnosticSeverity = iota
	DiagnosticWarning
	DiagnosticError
)

// String returns a human-readable severity name.
func (s DiagnosticSeverity) String() string {
	switch s {
	case DiagnosticInfo:
		return "info"
	case DiagnosticWarning:
		return "warning"
	case DiagnosticError:
		return "error"
	default:
		return common.UnknownStr
	}
}

// String returns a formatted diagnostic string.
func (d Diagnostic) String() string {
	var prefix []string
	if d.Location != "" {
		prefix = append(prefix, d.Location)
	} else if d.Schema != "" {
		prefix = append(prefix, d.Schema)
	}

	msg := d.Message
	if d.Code != "" {
		msg = fmt.Sprintf("[%s] %s", d.Code, msg)
	}

	if len(prefix) > 0 {
		return strings.Join(prefix, " ") + ": " + msg
	}

	return msg
}

// Diagnostics collects diagnostics. It is safe for concurrent use.
type Diagnostics struct {
	mu       sync.Mutex
	Errors   []Diagnostic
	Warnings []Diagnostic
	Infos    []Diagnostic
}

// Report implements Reporter.
func (d *Diagnostics) Report(diag Diagnostic) {
	d.mu.Lock()
	defer d.mu.Unlock()

	switch diag.Severity {
	case DiagnosticError:
		d.Errors = append(d.Errors, diag)
	case DiagnosticWarning:
		d.Warnings = append(d.Warnings, diag)
	default:
		d.Infos = append(d.Infos, diag)
	}
}

// AddError adds an error diagnostic.
func (d *Diagnostics) AddError(code, message, schema, location string) {
	d.Report(Diagnostic{
		Severity: DiagnosticError,
		Code:     code,
		Message:  message,
		Schema:   schema,
		Location: location,
	})
}

// AddWarning adds a warning diagnostic.
func (d *Diagnostics) AddWarning(code, message, schema, location string) {
	d.Report(Diagnostic{
		Severity: DiagnosticWarning,
		Code:     code,
		Message:  message,
		Schema:   schema,
		Location: location,
	})
}

// AddInfo adds an info diagnostic.
func (d *Diagnostics) AddInfo(code, message, schema, location string) {
	d.Report(Diagnostic{
		Severity: DiagnosticInfo,
		Code:     code,
		Message:  message,
		Schema:   schema,
		Location: location,
	})
}

// HasErrors returns true if there are any error diagnostics.
func (d *Diagnostics) HasErrors() bool {
	d.mu.Lock()
	defer d.mu.Unlock()

	return len(d.Errors) > 0
}

// IsValid returns true if there are no errors.
func (d *Diagnostics) IsValid() bool {
	return !d.HasErrors()
}

// Error returns a combined error from all error diagnostics, or nil if valid.
func (d *Diagnostics) Error() error {
	d.mu.Lock()
	defer d.mu.Unlock()

	if len(d.Errors) == 0 {
		return nil
	}

	parts := make([]string, 0, len(d.Errors))
	for _, e := range d.Errors {
		parts = append(parts, e.String())
	}

	return errors.New(strings.Join(parts, "; "))
}

// LogReporter logs diagnostics through zap, one entry per diagnostic.
type LogReporter struct {
	Logger *zap.Logger
}

// Report implements Reporter.
func (r LogReporter) Report(d Diagnostic) {
	logger := r.Logger
	if logger == nil {
		return
	}

	fields := []zap.Field{
		zap.String("code", d.Code),
		zap.String("schema", d.Schema),
		zap.String("location", d.Location),
	}

	switch d.Severity {
	case DiagnosticError:
		logger.Error(d.Message, fields...)
	case DiagnosticWarning:
		logger.Warn(d.Message, fields...)
	default:
		logger.Info(d.Message, fields...)
	}
}

// Tee fans a diagnostic out to several reporters.
type Tee []Reporter

// Report implements Reporter.
func (t Tee) Report(d Diagnostic) {
	for _, r := range t {
		if r != nil {
			r.Report(d)
		}
	}
}
