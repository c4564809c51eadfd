// Package observability provides boxed summaries for verbose CLI mode.
package observability

import (
	"fmt"
	"io"
	"strings"

	"github.com/atsresumie/latex-studio/internal/compiler"
	"github.com/atsresumie/latex-studio/internal/pagination"
	"github.com/atsresumie/latex-studio/internal/types"
)

const (
	// boxWidth is the default width for formatted output boxes
	boxWidth = 60
	// maxItemsToShow caps the blocks listed per page
	maxItemsToShow = 5
)

// Printer handles formatted output for verbose mode
type Printer struct {
	out io.Writer
}

// NewPrinter creates a new Printer that writes to the given writer
func NewPrinter(out io.Writer) *Printer {
	return &Printer{out: out}
}

//nolint:errcheck // verbose output to stderr; errors are not recoverable
func (p *Printer) printBox(title string, content string) {
	border := strings.Repeat("─", boxWidth-2)
	fmt.Fprintf(p.out, "┌%s┐\n", border)
	fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, title)
	fmt.Fprintf(p.out, "├%s┤\n", border)

	for _, line := range strings.Split(content, "\n") {
		if r := []rune(line); len(r) > boxWidth-4 {
			line = string(r[:boxWidth-7]) + "..."
		}
		fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, line)
	}

	fmt.Fprintf(p.out, "└%s┘\n", border)
}

// PrintLayout outputs the page metrics and the blocks placed on each page.
func (p *Printer) PrintLayout(layout pagination.Layout) {
	m := layout.Metrics
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Page:     %.0f x %.0f px\n", m.PageWidthPx, m.PageHeightPx))
	sb.WriteString(fmt.Sprintf("Usable:   %.0f x %.0f px\n", m.UsableWidthPx, m.UsableHeightPx))
	sb.WriteString(fmt.Sprintf("Font:     %.1f px, line %.1f px, %d chars/line\n", m.BaseFontSize, m.LineHeightPx, m.CharsPerLine))
	sb.WriteString(fmt.Sprintf("Pages:    %d", len(layout.Pages)))

	for i, page := range layout.Pages {
		sb.WriteString(fmt.Sprintf("\n\nPage %d (%d blocks)", i+1, len(page)))
		count := min(len(page), maxItemsToShow)
		for _, block := range page[:count] {
			sb.WriteString("\n  " + describeBlock(block))
		}
		if len(page) > maxItemsToShow {
			sb.WriteString(fmt.Sprintf("\n  ... and %d more", len(page)-maxItemsToShow))
		}
	}

	p.printBox("PAGE LAYOUT", sb.String())
}

func describeBlock(b pagination.Block) string {
	label := string(b.Kind)
	switch b.Kind {
	case pagination.BlockSectionHeading:
		label += ": " + b.Heading
	case pagination.BlockBullets:
		name := b.Title
		if name == "" {
			name = b.SectionID
		}
		label += fmt.Sprintf(": %s (%d)", name, len(b.Bullets))
	}
	if b.Continued {
		label += " [cont.]"
	}
	return label
}

// PrintStyle outputs a style configuration.
func (p *Printer) PrintStyle(cfg types.StyleConfig) {
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Page size:  %s\n", cfg.PageSize))
	sb.WriteString(fmt.Sprintf("Margins:    %g / %g / %g / %g mm (t/b/l/r)\n",
		cfg.MarginTopMm, cfg.MarginBottomMm, cfg.MarginLeftMm, cfg.MarginRightMm))
	sb.WriteString(fmt.Sprintf("Font:       %s %gpt\n", cfg.FontFamily, cfg.BaseFontSizePt))
	sb.WriteString(fmt.Sprintf("Line:       %g\n", cfg.LineHeight))
	sb.WriteString(fmt.Sprintf("Sections:   %gpt", cfg.SectionSpacingPt))
	p.printBox("STYLE", sb.String())
}

// PrintCompileResult outputs what the compile service returned.
func (p *Printer) PrintCompileResult(res *compiler.Result) {
	if res == nil {
		return
	}
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Pages:   %d\n", res.Pages))
	sb.WriteString(fmt.Sprintf("Size:    %d bytes\n", len(res.PDF)))
	sb.WriteString(fmt.Sprintf("Cached:  %t\n", res.Cached))
	key := res.Key
	if len(key) > 16 {
		key = key[:16]
	}
	sb.WriteString("Key:     " + key)
	p.printBox("COMPILE RESULT", sb.String())
}
