package export

import (
	"bytes"
	"context"
	"errors"
	"image"
	"image/color"
	"image/jpeg"
	"io"
	"strings"
	"testing"
	"time"

	"github.com/atsresumie/latex-studio/internal/logging"
	"github.com/atsresumie/latex-studio/internal/pagination"
	"github.com/atsresumie/latex-studio/internal/pdfbin"
	"github.com/atsresumie/latex-studio/internal/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func init() {
	logging.SetOutput(io.Discard)
}

type fakeCapturer struct {
	pages int
	err   error
	html  string
}

func (f *fakeCapturer) CapturePages(_ context.Context, html string) ([]pdfbin.PageImage, error) {
	f.html = html
	if f.err != nil {
		return nil, f.err
	}
	img := image.NewRGBA(image.Rect(0, 0, 8, 10))
	img.Set(1, 1, color.White)
	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, img, nil); err != nil {
		return nil, err
	}
	out := make([]pdfbin.PageImage, f.pages)
	for i := range out {
		out[i] = pdfbin.PageImage{JPEG: buf.Bytes(), Width: 8, Height: 10}
	}
	return out, nil
}

type fakeCompiler struct {
	err error
}

func (f fakeCompiler) Compile(_ context.Context, _ string) ([]byte, error) {
	if f.err != nil {
		return nil, f.err
	}
	return []byte("%PDF-1.5 compiled"), nil
}

func samplePayload() types.RenderPayload {
	return types.RenderPayload{
		Title: types.TitleBlock{Name: "Jane Doe", Subtitle: "Engineer", Contacts: []string{"jane@example.com", "555-123-4567"}},
		Sections: []types.Section{
			{ID: "summary-0", Heading: "Summary", Items: []types.SectionItem{types.NewParagraphItem("Builds systems.")}},
			{ID: "experience-1", Heading: "Experience", Items: []types.SectionItem{
				types.NewBulletsItem("Acme", "Staff Engineer", "2020 -- 2023", []string{"Shipped", "Led"}),
				types.NewBulletsItem("", "", "", []string{"Mentored"}),
			}},
		},
	}
}

func TestFilename(t *testing.T) {
	date := time.Date(2024, 3, 9, 12, 0, 0, 0, time.UTC)
	tests := []struct {
		name  string
		label string
		ext   string
		want  string
	}{
		{name: "simple", label: "Acme Backend", ext: "docx", want: "ATSResumie_Acme_Backend_2024-03-09.docx"},
		{name: "forbidden chars", label: `a/b\c:d*e?f"g<h>i|j`, ext: "txt", want: "ATSResumie_abcdefghij_2024-03-09.txt"},
		{name: "whitespace runs", label: "  Senior \t  SRE \n role ", ext: ".pdf", want: "ATSResumie_Senior_SRE_role_2024-03-09.pdf"},
		{name: "empty fallback", label: ` /:* `, ext: "txt", want: "ATSResumie_Resume_2024-03-09.txt"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Filename(tt.label, tt.ext, date))
		})
	}
}

func TestSanitizeLabel_Truncates(t *testing.T) {
	label := strings.Repeat("é", 75)
	assert.Equal(t, strings.Repeat("é", 60), SanitizeLabel(label))
}

func TestPlainText(t *testing.T) {
	want := "Jane Doe\nEngineer\njane@example.com | 555-123-4567\n\n" +
		"SUMMARY\nBuilds systems.\n\n" +
		"EXPERIENCE\nAcme | Staff Engineer | 2020 -- 2023\n- Shipped\n- Led\n- Mentored\n"
	assert.Equal(t, want, PlainText(samplePayload()))
}

func TestExporter_PDF(t *testing.T) {
	capturer := &fakeCapturer{pages: 2}
	e := NewExporter(capturer, nil)

	out, err := e.PDF(context.Background(), samplePayload(), pagination.DefaultEditorSettings())
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(out, []byte("%PDF-1.4")))
	assert.Contains(t, capturer.html, "resume-page")
}

func TestExporter_PDF_Errors(t *testing.T) {
	_, err := NewExporter(nil, nil).PDF(context.Background(), samplePayload(), pagination.DefaultEditorSettings())
	assert.ErrorIs(t, err, ErrCaptureUnavailable)

	_, err = NewExporter(&fakeCapturer{}, nil).PDF(context.Background(), samplePayload(), pagination.DefaultEditorSettings())
	assert.ErrorIs(t, err, pdfbin.ErrNoPages)

	boom := errors.New("page 2 failed")
	_, err = NewExporter(&fakeCapturer{err: boom}, nil).PDF(context.Background(), samplePayload(), pagination.DefaultEditorSettings())
	assert.ErrorIs(t, err, boom)
}

const bundleLatex = `\documentclass{article}
\begin{document}
\name{Jane Doe}
\section{Skills}
\begin{itemize}
\item Go
\end{itemize}
\end{document}
`

func TestExporter_Bundle(t *testing.T) {
	date := time.Date(2024, 1, 2, 0, 0, 0, 0, time.UTC)
	artifacts, err := NewExporter(nil, fakeCompiler{}).Bundle(context.Background(), bundleLatex, "Acme", date)
	require.NoError(t, err)
	require.Len(t, artifacts, 3)

	assert.Equal(t, "ATSResumie_Acme_2024-01-02.docx", artifacts[0].Filename)
	assert.Equal(t, ContentTypeDOCX, artifacts[0].ContentType)
	assert.True(t, bytes.HasPrefix(artifacts[0].Data, []byte("PK")))

	assert.Equal(t, ContentTypeText, artifacts[1].ContentType)
	assert.Contains(t, string(artifacts[1].Data), "SKILLS\n- Go\n")

	assert.Equal(t, ContentTypePDF, artifacts[2].ContentType)
	assert.Equal(t, "%PDF-1.5 compiled", string(artifacts[2].Data))
}

func TestExporter_Bundle_Errors(t *testing.T) {
	_, err := NewExporter(nil, nil).Bundle(context.Background(), bundleLatex, "x", time.Now())
	assert.ErrorIs(t, err, ErrCompilerUnavailable)

	boom := errors.New("compile service down")
	_, err = NewExporter(nil, fakeCompiler{err: boom}).Bundle(context.Background(), bundleLatex, "x", time.Now())
	assert.ErrorIs(t, err, boom)
}
