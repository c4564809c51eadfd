// Package rendering turns resume payloads into LaTeX source and paginated HTML previews.
package rendering

import (
	"errors"
	"fmt"
	"io/fs"
)

// Template stages reported by TemplateError
const (
	StageRead    = "read"
	StageParse   = "parse"
	StageExecute = "execute"
)

// TemplateError reports a LaTeX template that could not be read, parsed or
// executed. Path is empty for the built-in template.
type TemplateError struct {
	Path  string
	Stage string
	Cause error
}

func (e *TemplateError) Error() string {
	source := "built-in LaTeX template"
	if e.Path != "" {
		source = "LaTeX template " + e.Path
	}
	return fmt.Sprintf("%s: %s failed: %v", source, e.Stage, e.Cause)
}

func (e *TemplateError) Unwrap() error {
	return e.Cause
}

// NotFound reports whether an override template path does not exist
func (e *TemplateError) NotFound() bool {
	return errors.Is(e.Cause, fs.ErrNotExist)
}

// PreviewError reports a layout whose HTML preview could not be rendered
type PreviewError struct {
	Pages int
	Cause error
}

func (e *PreviewError) Error() string {
	return fmt.Sprintf("html preview of %d page(s) failed: %v", e.Pages, e.Cause)
}

func (e *PreviewError) Unwrap() error {
	return e.Cause
}
