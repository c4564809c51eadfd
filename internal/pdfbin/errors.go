// Package pdfbin assembles minimal PDF 1.4 files from captured page images.
package pdfbin

import (
	"errors"
	"fmt"
)

// ErrNoPages is returned when there is nothing to export
//
//nolint:staticcheck // user-facing message
var ErrNoPages = errors.New("No pages available for export")

// ErrSealed is returned when writing to a finished document
var ErrSealed = errors.New("pdf writer is sealed")

// ImageError represents an unusable page image
type ImageError struct {
	Page    int
	Message string
	Cause   error
}

func (e *ImageError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("invalid image for page %d: %s: %v", e.Page, e.Message, e.Cause)
	}
	return fmt.Sprintf("invalid image for page %d: %s", e.Page, e.Message)
}

func (e *ImageError) Unwrap() error {
	return e.Cause
}
