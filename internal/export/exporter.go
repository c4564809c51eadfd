package export

import (
	"context"
	"errors"
	"fmt"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/atsresumie/latex-studio/internal/capture"
	"github.com/atsresumie/latex-studio/internal/docx"
	"github.com/atsresumie/latex-studio/internal/logging"
	"github.com/atsresumie/latex-studio/internal/pagination"
	"github.com/atsresumie/latex-studio/internal/pdfbin"
	"github.com/atsresumie/latex-studio/internal/plaintext"
	"github.com/atsresumie/latex-studio/internal/rendering"
	"github.com/atsresumie/latex-studio/internal/types"
)

// ErrCaptureUnavailable is returned when PDF export is requested without a browser
var ErrCaptureUnavailable = errors.New("page capture is not configured")

// ErrCompilerUnavailable is returned when a bundle needs the compile service but none is configured
var ErrCompilerUnavailable = errors.New("latex compiler is not configured")

// Compiler turns styled LaTeX into PDF bytes
type Compiler interface {
	Compile(ctx context.Context, latex string) ([]byte, error)
}

// Artifact is one downloadable export file
type Artifact struct {
	Filename    string `json:"filename"`
	ContentType string `json:"contentType"`
	Data        []byte `json:"data"`
}

// Exporter produces export artifacts. Either collaborator may be nil; the
// formats that need it then fail with a sentinel error.
type Exporter struct {
	capturer capture.Capturer
	compiler Compiler
}

// NewExporter creates an exporter
func NewExporter(capturer capture.Capturer, compiler Compiler) *Exporter {
	return &Exporter{capturer: capturer, compiler: compiler}
}

// CanCapture reports whether PDF export from the preview is available
func (e *Exporter) CanCapture() bool {
	return e.capturer != nil
}

// PDF paginates the payload, renders the preview pages, captures them as JPEG
// images and assembles a PDF. A failure on any page aborts the export.
func (e *Exporter) PDF(ctx context.Context, payload types.RenderPayload, settings pagination.EditorSettings) ([]byte, error) {
	if e.capturer == nil {
		return nil, ErrCaptureUnavailable
	}

	layout := pagination.Paginate(payload, settings)
	html, err := rendering.RenderHTML(layout, payload)
	if err != nil {
		return nil, err
	}

	images, err := e.capturer.CapturePages(ctx, html)
	if err != nil {
		return nil, err
	}
	if len(images) == 0 {
		return nil, pdfbin.ErrNoPages
	}

	logging.WithComponent("export").WithField("pages", len(images)).Info("assembling pdf")
	return pdfbin.CreatePDFBinary(images, settings.PageSize)
}

// DOCX converts LaTeX into a Word document
func (e *Exporter) DOCX(latex string) ([]byte, error) {
	return docx.Generate(latex)
}

// Text renders the payload as plain text
func (e *Exporter) Text(payload types.RenderPayload) []byte {
	return []byte(PlainText(payload))
}

// Bundle produces the Word, plain-text and compiled PDF exports of a LaTeX
// document concurrently. Any failure aborts the whole bundle.
func (e *Exporter) Bundle(ctx context.Context, latex, label string, date time.Time) ([]Artifact, error) {
	if e.compiler == nil {
		return nil, ErrCompilerUnavailable
	}

	artifacts := make([]Artifact, 3)
	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		data, err := e.DOCX(latex)
		if err != nil {
			return fmt.Errorf("docx export failed: %w", err)
		}
		artifacts[0] = Artifact{Filename: Filename(label, "docx", date), ContentType: ContentTypeDOCX, Data: data}
		return nil
	})

	g.Go(func() error {
		payload := plaintext.DeriveRenderPayloadFromResumeText(latex)
		artifacts[1] = Artifact{Filename: Filename(label, "txt", date), ContentType: ContentTypeText, Data: e.Text(payload)}
		return nil
	})

	g.Go(func() error {
		data, err := e.compiler.Compile(ctx, latex)
		if err != nil {
			return fmt.Errorf("pdf compile failed: %w", err)
		}
		artifacts[2] = Artifact{Filename: Filename(label, "pdf", date), ContentType: ContentTypePDF, Data: data}
		return nil
	})

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return artifacts, nil
}
