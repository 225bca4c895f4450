package schema

import (
	"errors"
	"fmt"
)

var (
	ErrDuplicateColumn = errors.New("duplicate column index")
	ErrNegativeColumn  = errors.New("negative column index")
	ErrMalformedTag    = errors.New("malformed csv tag")
	ErrBadDefault      = errors.New("default value does not convert")
	ErrUnknownField    = errors.New("unknown field")
	ErrNotStruct       = errors.New("record type is not a struct")
)

// BindingError reports a problem found while binding one member of a record
// type. Binding errors are fatal: no schema is produced.
type BindingError struct {
	Type   string
	Member string
	Column int
	Err    error
}

// Error formats the binding error with the stored type, member and column.
func (e *BindingError) Error() string {
	if e == nil {
		return ""
	}

	if e.Member == "" {
		return fmt.Sprintf("schema: %s: %v", e.Type, e.Err)
	}

	// tags that failed to parse have no column yet
	if e.Column < 0 && !errors.Is(e.Err, ErrNegativeColumn) {
		return fmt.Sprintf("schema: %s.%s: %v", e.Type, e.Member, e.Err)
	}

	return fmt.Sprintf("schema: %s.%s (column %d): %v", e.Type, e.Member, e.Column, e.Err)
}

// Unwrap returns the underlying Err so BindingError participates in errors.Is.
func (e *BindingError) Unwrap() error {
	if e == nil {
		return nil
	}

	return e.Err
}
