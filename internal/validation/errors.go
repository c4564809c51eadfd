// Package validation checks API inputs and compiled documents against the studio's limits.
package validation

import (
	"fmt"
	"strings"
)

// FieldViolation is one failed field rule
type FieldViolation struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// Error represents a general validation error
type Error struct {
	Message    string
	Violations []FieldViolation
	Cause      error
}

func (e *Error) Error() string {
	msg := e.Message
	if len(e.Violations) > 0 {
		parts := make([]string, len(e.Violations))
		for i, v := range e.Violations {
			parts[i] = v.Field + " " + v.Message
		}
		msg += ": " + strings.Join(parts, "; ")
	}
	if e.Cause != nil {
		return fmt.Sprintf("validation error: %s: %v", msg, e.Cause)
	}
	return fmt.Sprintf("validation error: %s", msg)
}

func (e *Error) Unwrap() error {
	return e.Cause
}

// PageLimitError is returned when a compiled document exceeds the page budget
type PageLimitError struct {
	Pages int
	Limit int
}

func (e *PageLimitError) Error() string {
	return fmt.Sprintf("document has %d pages, limit is %d", e.Pages, e.Limit)
}
