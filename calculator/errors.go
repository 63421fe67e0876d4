// Package calculator implements the carbon-impact estimation engine: a
// locality- and date-indexed constants table, a fallback resolver, the
// per-action evaluation formulas, and the coordinating facade.
package calculator

import (
	"errors"
	"fmt"
)

// Sentinel errors surfaced by the facade lifecycle operations.
var (
	ErrConfirmationRequired = errors.New("confirmation flag is required for this operation")
	ErrSourceNotConfigured  = errors.New("calculator source file is not configured")
)

// ConstantNotFoundError reports a constants lookup that matched no locality
// (including "default") and had no caller-supplied fallback. It always
// signals a configuration gap in the constants table, not bad user input.
type ConstantNotFoundError struct {
	Variable string
}

func (e *ConstantNotFoundError) Error() string {
	return fmt.Sprintf("no constant value found for variable %q", e.Variable)
}

// IsConstantNotFound reports whether err wraps a ConstantNotFoundError.
func IsConstantNotFound(err error) bool {
	var cnf *ConstantNotFoundError
	return errors.As(err, &cnf)
}

// ImportError reports a malformed row in a bulk import source. Row is
// 1-based and counts the header; Column names the offending column. An
// ImportError aborts the entire import operation.
type ImportError struct {
	Source string
	Row    int
	Column string
	Err    error
}

func (e *ImportError) Error() string {
	if e.Column != "" {
		return fmt.Sprintf("%s import failed at row %d, column %s: %v", e.Source, e.Row, e.Column, e.Err)
	}
	return fmt.Sprintf("%s import failed at row %d: %v", e.Source, e.Row, e.Err)
}

func (e *ImportError) Unwrap() error {
	return e.Err
}

// IsImportError reports whether err wraps an ImportError.
func IsImportError(err error) bool {
	var ie *ImportError
	return errors.As(err, &ie)
}
