package diagnostic

import (
	"errors"
	"fmt"
	"strings"

	"record-loader/internal/common"
)

// Diagnostic codes.
const (
	CodeDuplicateColumn = "duplicate-column"
	CodeNegativeColumn  = "negative-column"
	CodeMalformedTag    = "malformed-tag"
	CodeBadDefault      = "bad-default"
	CodeUnknownField    = "unknown-field"
	CodeUnsupportedType = "unsupported-type"
	CodeDuplicateRecord = "duplicate-record"
	CodeEmptyField      = "empty-field"
	CodeNoColumns       = "no-columns"
	CodeUnknownType     = "unknown-type"
)

// Diagnostics holds all diagnostic information from a binding or validation pass.
type Diagnostics struct {
	Errors   []Diagnostic
	Warnings []Diagnostic
	Infos    []Diagnostic
}

// Diagnostic represents a single diagnostic message.
type Diagnostic struct {
	// Severity of the diagnostic.
	Severity DiagnosticSeverity
	// Code is a unique identifier for this type of diagnostic.
	Code string
	// Message is the human-readable description.
	Message string
	// Type names the record type this relates to (if any).
	Type string
	// Member names the field this relates to (if any).
	Member string
	// Err is the underlying error, kept for errors.Is and errors.As.
	Err error
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

// AddError adds an error diagnostic wrapping err.
func (d *Diagnostics) AddError(code string, err error, typeName, member string) {
	d.Errors = append(d.Errors, Diagnostic{
		Severity: DiagnosticError,
		Code:     code,
		Message:  err.Error(),
		Type:     typeName,
		Member:   member,
		Err:      err,
	})
}

// AddWarning adds a warning diagnostic.
func (d *Diagnostics) AddWarning(code, message, typeName, member string) {
	d.Warnings = append(d.Warnings, Diagnostic{
		Severity: DiagnosticWarning,
		Code:     code,
		Message:  message,
		Type:     typeName,
		Member:   member,
	})
}

// AddInfo adds an info diagnostic.
func (d *Diagnostics) AddInfo(code, message, typeName, member string) {
	d.Infos = append(d.Infos, Diagnostic{
		Severity: DiagnosticInfo,
		Code:     code,
		Message:  message,
		Type:     typeName,
		Member:   member,
	})
}

// HasErrors returns true if there are any error diagnostics.
func (d Diagnostics) HasErrors() bool {
	return len(d.Errors) > 0
}

// Merge merges another Diagnostics instance into this one.
func (d *Diagnostics) Merge(other Diagnostics) {
	d.Errors = append(d.Errors, other.Errors...)
	d.Warnings = append(d.Warnings, other.Warnings...)
	d.Infos = append(d.Infos, other.Infos...)
}

// IsValid returns true if there are no errors.
func (d Diagnostics) IsValid() bool {
	return len(d.Errors) == 0
}

// Error returns every error diagnostic joined into one error, or nil if valid.
func (d Diagnostics) Error() error {
	if d.IsValid() {
		return nil
	}

	errs := make([]error, 0, len(d.Errors))
	for _, e := range d.Errors {
		if e.Err != nil {
			errs = append(errs, e.Err)
			continue
		}

		errs = append(errs, errors.New(e.String()))
	}

	return errors.Join(errs...)
}

// String returns a formatted diagnostic string.
func (d Diagnostic) String() string {
	var prefix []string
	if d.Type != "" {
		prefix = append(prefix, "["+d.Type+"]")
	}

	if d.Member != "" {
		prefix = append(prefix, d.Member)
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
