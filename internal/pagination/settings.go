// Package pagination estimates rendered block heights and packs a resume payload
// into fixed-size preview pages.
package pagination

import (
	"math"

	"github.com/atsresumie/latex-studio/internal/types"
)

// PixelsPerInch is the CSS reference resolution used by the preview
const PixelsPerInch = 96.0

const mmPerInch = 25.4

// Density selects the spacing preset
type Density string

// Density presets
const (
	DensityCompact  Density = "compact"
	DensityBalanced Density = "balanced"
	DensityAiry     Density = "airy"
)

// Spacing holds the per-density gaps in pixels
type Spacing struct {
	ParagraphGap     float64 `json:"paragraphGap"`
	BulletGap        float64 `json:"bulletGap"`
	HeadingBottomGap float64 `json:"headingBottomGap"`
}

var densitySpacing = map[Density]Spacing{
	DensityCompact:  {ParagraphGap: 4, BulletGap: 2, HeadingBottomGap: 4},
	DensityBalanced: {ParagraphGap: 8, BulletGap: 4, HeadingBottomGap: 6},
	DensityAiry:     {ParagraphGap: 12, BulletGap: 6, HeadingBottomGap: 10},
}

// EditorSettings are the layout controls of the preview editor.
// BaseFontSize is in pixels.
type EditorSettings struct {
	PageSize     types.PageSize `json:"pageSize"`
	MarginInches float64        `json:"marginInches"`
	BaseFontSize float64        `json:"baseFontSize"`
	LineHeight   float64        `json:"lineHeight"`
	HeadingScale float64        `json:"headingScale"`
	Density      Density        `json:"density"`
}

// DefaultEditorSettings returns the editor's initial layout
func DefaultEditorSettings() EditorSettings {
	return EditorSettings{
		PageSize:     types.PageLetter,
		MarginInches: 0.75,
		BaseFontSize: 14,
		LineHeight:   1.4,
		HeadingScale: 1.25,
		Density:      DensityBalanced,
	}
}

// PageMetrics are derived from EditorSettings on every render and never persisted
type PageMetrics struct {
	PageWidthPx     float64 `json:"pageWidthPx"`
	PageHeightPx    float64 `json:"pageHeightPx"`
	MarginPx        float64 `json:"marginPx"`
	UsableWidthPx   float64 `json:"usableWidthPx"`
	UsableHeightPx  float64 `json:"usableHeightPx"`
	CharsPerLine    int     `json:"charsPerLine"`
	BaseFontSize    float64 `json:"baseFontSize"`
	LineHeightPx    float64 `json:"lineHeightPx"`
	HeadingFontSize float64 `json:"headingFontSize"`
	Spacing         Spacing `json:"spacing"`
}

// PageSizePx returns the page width and height in pixels
func PageSizePx(size types.PageSize) (float64, float64) {
	if size == types.PageA4 {
		return 210 / mmPerInch * PixelsPerInch, 297 / mmPerInch * PixelsPerInch
	}
	return 8.5 * PixelsPerInch, 11 * PixelsPerInch
}

// NewMetrics derives page metrics from settings. Unknown densities use balanced spacing.
func NewMetrics(settings EditorSettings) PageMetrics {
	width, height := PageSizePx(settings.PageSize)
	margin := settings.MarginInches * PixelsPerInch
	usableWidth := width - 2*margin
	usableHeight := height - 2*margin

	charWidth := settings.BaseFontSize * 0.52
	cpl := 1
	if charWidth > 0 {
		cpl = int(math.Max(1, math.Floor(usableWidth/charWidth)))
	}

	spacing, ok := densitySpacing[settings.Density]
	if !ok {
		spacing = densitySpacing[DensityBalanced]
	}

	return PageMetrics{
		PageWidthPx:     width,
		PageHeightPx:    height,
		MarginPx:        margin,
		UsableWidthPx:   usableWidth,
		UsableHeightPx:  usableHeight,
		CharsPerLine:    cpl,
		BaseFontSize:    settings.BaseFontSize,
		LineHeightPx:    settings.BaseFontSize * settings.LineHeight,
		HeadingFontSize: settings.BaseFontSize * settings.HeadingScale,
		Spacing:         spacing,
	}
}
