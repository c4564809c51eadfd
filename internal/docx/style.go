package docx

import (
	"math"

	"github.com/atsresumie/latex-studio/internal/style"
	"github.com/atsresumie/latex-studio/internal/types"
)

// twipsPerMillimeter converts millimeters to twentieths of a point
const twipsPerMillimeter = 56.693

var fontNames = map[types.FontFamily]string{
	types.FontDefault:   "Calibri",
	types.FontTimes:     "Times New Roman",
	types.FontHelvetica: "Arial",
	types.FontPalatino:  "Palatino Linotype",
	types.FontCharter:   "Charter",
	types.FontBookman:   "Bookman Old Style",
	types.FontLModern:   "Latin Modern Roman",
}

// Style holds Word run and paragraph properties resolved from LaTeX.
// Sizes are half-points, line spacing is in 240ths of a line, and page
// dimensions are twips.
type Style struct {
	Font         string
	BodySize     int
	NameSize     int
	HeadingSize  int
	SmallSize    int
	LineSpacing  int
	MarginTop    int
	MarginBottom int
	MarginLeft   int
	MarginRight  int
	PageWidth    int
	PageHeight   int
}

// ContentWidth is the text width between the side margins, in twips
func (s Style) ContentWidth() int {
	return s.PageWidth - s.MarginLeft - s.MarginRight
}

// ResolveStyle decodes the style parameters of a LaTeX document into Word units
func ResolveStyle(latex string) Style {
	return StyleFromConfig(style.Parse(latex))
}

// StyleFromConfig converts a style configuration into Word units
func StyleFromConfig(cfg types.StyleConfig) Style {
	font, ok := fontNames[cfg.FontFamily]
	if !ok {
		font = fontNames[types.FontDefault]
	}

	base := cfg.BaseFontSizePt
	s := Style{
		Font:         font,
		BodySize:     halfPoints(base),
		NameSize:     halfPoints(base * 1.8),
		HeadingSize:  halfPoints(base + 1),
		SmallSize:    halfPoints(base - 1),
		LineSpacing:  int(math.Round(cfg.LineHeight * 240)),
		MarginTop:    twips(cfg.MarginTopMm),
		MarginBottom: twips(cfg.MarginBottomMm),
		MarginLeft:   twips(cfg.MarginLeftMm),
		MarginRight:  twips(cfg.MarginRightMm),
		PageWidth:    12240,
		PageHeight:   15840,
	}
	if cfg.PageSize == types.PageA4 {
		s.PageWidth, s.PageHeight = 11906, 16838
	}
	return s
}

func halfPoints(pt float64) int {
	return int(math.Round(pt * 2))
}

func twips(mm float64) int {
	return int(math.Round(mm * twipsPerMillimeter))
}
