package pagination

import (
	"math"
	"strings"
	"unicode/utf8"

	"github.com/atsresumie/latex-studio/internal/latex"
	"github.com/atsresumie/latex-studio/internal/types"
)

// Height heuristics. These match the preview renderer's behavior and are not
// derived from font metrics.
const (
	nameWidthFactor     = 0.65
	nameLineFactor      = 1.15
	contactWidthFactor  = 0.95
	titlePadPx          = 14
	headingExtraPx      = 9
	headerWidthFactor   = 0.9
	bulletIndentChars   = 6
	minBulletChars      = 20
	bulletsBlockExtraPx = 6
	contactSeparator    = " | "
)

// EstimatedLines returns the number of wrapped lines text needs at cpl
// characters per line, or 0 for empty text.
func EstimatedLines(text string, cpl float64) int {
	n := utf8.RuneCountInString(latex.CollapseWhitespace(text))
	if n == 0 {
		return 0
	}
	return int(math.Max(1, math.Ceil(float64(n)/math.Max(1, cpl))))
}

// EstimateBlockHeight returns the estimated rendered height of block in pixels.
// Title blocks read the name, subtitle and contacts from payload.
func EstimateBlockHeight(block Block, payload types.RenderPayload, m PageMetrics) float64 {
	cpl := float64(m.CharsPerLine)

	switch block.Kind {
	case BlockTitle:
		title := payload.Title
		name := float64(EstimatedLines(title.Name, cpl*nameWidthFactor)) * nameLineFactor * m.HeadingFontSize
		subtitle := float64(EstimatedLines(title.Subtitle, cpl)) * m.LineHeightPx
		contacts := float64(EstimatedLines(strings.Join(title.Contacts, contactSeparator), cpl*contactWidthFactor)) * m.LineHeightPx
		return name + subtitle + contacts + titlePadPx

	case BlockSectionHeading:
		return m.HeadingFontSize + m.Spacing.HeadingBottomGap + headingExtraPx

	case BlockParagraph:
		return float64(EstimatedLines(block.Text, cpl))*m.LineHeightPx + m.Spacing.ParagraphGap

	case BlockBullets:
		headerLines := 0
		for _, field := range []string{block.Title, block.Subtitle, block.Meta} {
			headerLines += EstimatedLines(field, cpl*headerWidthFactor)
		}
		bulletCPL := math.Max(minBulletChars, cpl-bulletIndentChars)
		bulletLines := 0
		for _, bullet := range block.Bullets {
			bulletLines += EstimatedLines(bullet, bulletCPL)
		}
		gaps := math.Max(0, float64(len(block.Bullets)-1)) * m.Spacing.BulletGap
		return float64(headerLines+bulletLines)*m.LineHeightPx + gaps + m.Spacing.ParagraphGap + bulletsBlockExtraPx
	}

	return 0
}
