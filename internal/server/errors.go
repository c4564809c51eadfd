// Package server provides the HTTP API of the LaTeX studio.
package server

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/atsresumie/latex-studio/internal/capture"
	"github.com/atsresumie/latex-studio/internal/compiler"
	"github.com/atsresumie/latex-studio/internal/export"
	"github.com/atsresumie/latex-studio/internal/llm"
	"github.com/atsresumie/latex-studio/internal/pdfbin"
	"github.com/atsresumie/latex-studio/internal/schemas"
	"github.com/atsresumie/latex-studio/internal/validation"
)

// ErrNotFound indicates a missing resource
type ErrNotFound struct {
	Resource string
	ID       string
}

func (e *ErrNotFound) Error() string {
	return fmt.Sprintf("%s not found: %s", e.Resource, e.ID)
}

// ErrValidation indicates request validation failure
type ErrValidation struct {
	Field   string
	Message string
}

func (e *ErrValidation) Error() string {
	return fmt.Sprintf("validation error: %s - %s", e.Field, e.Message)
}

// ErrUnavailable indicates a collaborator the route needs is not configured
type ErrUnavailable struct {
	Feature string
}

func (e *ErrUnavailable) Error() string {
	return fmt.Sprintf("%s is not configured", e.Feature)
}

// HTTPStatus returns the appropriate HTTP status code for an error
func HTTPStatus(err error) int {
	var (
		notFound    *ErrNotFound
		invalid     *ErrValidation
		unavailable *ErrUnavailable
		schemaErr   *schemas.ValidationError
		fieldErr    *validation.Error
		pageErr     *validation.PageLimitError
		compileErr  *compiler.CompileError
		captureErr  *capture.CaptureError
		genErr      *llm.GenerationError
	)

	switch {
	case errors.As(err, &notFound):
		return http.StatusNotFound
	case errors.As(err, &invalid), errors.As(err, &schemaErr), errors.As(err, &fieldErr):
		return http.StatusBadRequest
	case errors.As(err, &pageErr), errors.Is(err, pdfbin.ErrNoPages):
		return http.StatusUnprocessableEntity
	case errors.As(err, &unavailable),
		errors.Is(err, export.ErrCaptureUnavailable),
		errors.Is(err, export.ErrCompilerUnavailable):
		return http.StatusServiceUnavailable
	case errors.As(err, &compileErr), errors.As(err, &captureErr), errors.As(err, &genErr):
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}

// errorDetails returns field-level details for validation errors, if any
func errorDetails(err error) any {
	var schemaErr *schemas.ValidationError
	if errors.As(err, &schemaErr) {
		return schemaErr.Errors
	}
	var fieldErr *validation.Error
	if errors.As(err, &fieldErr) && len(fieldErr.Violations) > 0 {
		return fieldErr.Violations
	}
	return nil
}
