// Error types used across the docweave engine. Structural directive
// problems are accumulated on the ProcessingResult rather than aborting
// the walk; document-level problems propagate as wrapped errors.
package docweave

import (
	"fmt"
	"strings"
)

// DirectiveError reports a structural problem with a template
// directive: unbalanced delimiters, an unmatched block marker, or a
// block path that resolved to the wrong shape of value.
type DirectiveError struct {
	Directive string
	Offset    int
	Message   string
}

func (e *DirectiveError) Error() string {
	if e.Offset > 0 {
		return fmt.Sprintf("directive error at offset %d near %q: %s", e.Offset, e.Directive, e.Message)
	}
	return fmt.Sprintf("directive error near %q: %s", e.Directive, e.Message)
}

func newDirectiveError(directive string, offset int, message string) error {
	return &DirectiveError{
		Directive: directive,
		Offset:    offset,
		Message:   message,
	}
}

// MissingVariableError is returned by Process when the Fail policy is
// triggered by an unresolvable value placeholder.
type MissingVariableError struct {
	Path string
}

func (e *MissingVariableError) Error() string {
	return fmt.Sprintf("missing variable: %s", e.Path)
}

// DocumentError reports a failure while reading, parsing or writing a
// document package.
type DocumentError struct {
	Operation string
	Path      string
	Cause     error
}

func (e *DocumentError) Error() string {
	switch {
	case e.Path != "" && e.Cause != nil:
		return fmt.Sprintf("document error during %s of '%s': %v", e.Operation, e.Path, e.Cause)
	case e.Path != "":
		return fmt.Sprintf("document error during %s of '%s'", e.Operation, e.Path)
	case e.Cause != nil:
		return fmt.Sprintf("document error during %s: %v", e.Operation, e.Cause)
	default:
		return fmt.Sprintf("document error during %s", e.Operation)
	}
}

func (e *DocumentError) Unwrap() error {
	return e.Cause
}

// NewDocumentError creates a new document error.
func NewDocumentError(operation, path string, cause error) error {
	return &DocumentError{
		Operation: operation,
		Path:      path,
		Cause:     cause,
	}
}

// MultiError collects multiple errors.
type MultiError struct {
	errors []error
}

// NewMultiError creates a new multi-error collector.
func NewMultiError() *MultiError {
	return &MultiError{errors: make([]error, 0)}
}

// Add adds an error to the collection (ignores nil errors).
func (m *MultiError) Add(err error) {
	if err != nil {
		m.errors = append(m.errors, err)
	}
}

// Len returns the number of errors.
func (m *MultiError) Len() int {
	return len(m.errors)
}

// Err returns the multi-error or nil if empty.
func (m *MultiError) Err() error {
	if len(m.errors) == 0 {
		return nil
	}
	if len(m.errors) == 1 {
		return m.errors[0]
	}
	return m
}

func (m *MultiError) Error() string {
	if len(m.errors) == 0 {
		return "no errors"
	}
	if len(m.errors) == 1 {
		return m.errors[0].Error()
	}

	var parts []string
	parts = append(parts, fmt.Sprintf("%d errors occurred:", len(m.errors)))
	for i, err := range m.errors {
		parts = append(parts, fmt.Sprintf("  [%d] %v", i+1, err))
	}
	return strings.Join(parts, "\n")
}

// IsDirectiveError checks if an error is a directive error.
func IsDirectiveError(err error) bool {
	_, ok := err.(*DirectiveError)
	return ok
}

// IsMissingVariableError checks if an error is a missing-variable error.
func IsMissingVariableError(err error) bool {
	_, ok := err.(*MissingVariableError)
	return ok
}

// IsDocumentError checks if an error is a document error.
func IsDocumentError(err error) bool {
	_, ok := err.(*DocumentError)
	return ok
}
