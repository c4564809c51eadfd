package rendering

import (
	"bytes"
	"fmt"
	htmltemplate "html/template"
	"strings"

	"github.com/atsresumie/latex-studio/internal/pagination"
	"github.com/atsresumie/latex-studio/internal/types"
)

const (
	previewTemplateName = "preview.html.tmpl"
	// PageSelector matches one rendered page in the preview document
	PageSelector = ".resume-page"
)

type previewBlock struct {
	pagination.Block
	Header types.TitleBlock
}

type previewPage struct {
	Number int
	Blocks []previewBlock
}

type previewData struct {
	Metrics      pagination.PageMetrics
	Header       types.TitleBlock
	NameFontSize float64
	Pages        []previewPage
}

var previewTemplate = htmltemplate.Must(
	htmltemplate.New(previewTemplateName).
		Funcs(htmltemplate.FuncMap{
			"px":   func(v float64) string { return fmt.Sprintf("%.2fpx", v) },
			"join": func(items []string) string { return strings.Join(items, " | ") },
		}).
		ParseFS(templateFS, "templates/"+previewTemplateName),
)

// RenderHTML renders a paginated layout as a standalone HTML document with one
// fixed-size element per page, matched by PageSelector.
func RenderHTML(layout pagination.Layout, payload types.RenderPayload) (string, error) {
	data := previewData{
		Metrics:      layout.Metrics,
		Header:       payload.Title,
		NameFontSize: layout.Metrics.HeadingFontSize * 1.15,
	}
	for i, blocks := range layout.Pages {
		page := previewPage{Number: i + 1}
		for _, block := range blocks {
			page.Blocks = append(page.Blocks, previewBlock{Block: block, Header: payload.Title})
		}
		data.Pages = append(data.Pages, page)
	}

	var buf bytes.Buffer
	if err := previewTemplate.Execute(&buf, data); err != nil {
		return "", &PreviewError{Pages: len(layout.Pages), Cause: err}
	}
	return buf.String(), nil
}
