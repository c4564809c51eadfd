package types

// PageSize is the paper size of a rendered resume
type PageSize string

// Supported page sizes
const (
	PageLetter PageSize = "letter"
	PageA4     PageSize = "a4"
)

// Valid reports whether the page size is supported
func (p PageSize) Valid() bool {
	return p == PageLetter || p == PageA4
}

// FontFamily is the LaTeX font family selector exposed to the editor
type FontFamily string

// Supported font families
const (
	FontDefault   FontFamily = "default"
	FontTimes     FontFamily = "times"
	FontHelvetica FontFamily = "helvetica"
	FontPalatino  FontFamily = "palatino"
	FontCharter   FontFamily = "charter"
	FontBookman   FontFamily = "bookman"
	FontLModern   FontFamily = "lmodern"
)

// FontFamilies lists every supported family in editor order
var FontFamilies = []FontFamily{
	FontDefault, FontTimes, FontHelvetica, FontPalatino, FontCharter, FontBookman, FontLModern,
}

// Valid reports whether the family is supported
func (f FontFamily) Valid() bool {
	for _, known := range FontFamilies {
		if f == known {
			return true
		}
	}
	return false
}

// StyleConfig holds the style parameters round-tripped through LaTeX source.
// JSON tags are the wire contract with the dashboard and export routes.
type StyleConfig struct {
	PageSize         PageSize   `json:"pageSize" validate:"required,oneof=letter a4"`
	MarginTopMm      float64    `json:"marginTopMm" validate:"gte=5,lte=50"`
	MarginBottomMm   float64    `json:"marginBottomMm" validate:"gte=5,lte=50"`
	MarginLeftMm     float64    `json:"marginLeftMm" validate:"gte=5,lte=50"`
	MarginRightMm    float64    `json:"marginRightMm" validate:"gte=5,lte=50"`
	BaseFontSizePt   float64    `json:"baseFontSizePt" validate:"gte=8,lte=14"`
	LineHeight       float64    `json:"lineHeight" validate:"gte=0.8,lte=2"`
	SectionSpacingPt float64    `json:"sectionSpacingPt" validate:"gte=0,lte=20"`
	FontFamily       FontFamily `json:"fontFamily" validate:"required,oneof=default times helvetica palatino charter bookman lmodern"`
}

// DefaultStyleConfig returns the style used when nothing else is known
func DefaultStyleConfig() StyleConfig {
	return StyleConfig{
		PageSize:         PageLetter,
		MarginTopMm:      15,
		MarginBottomMm:   15,
		MarginLeftMm:     15,
		MarginRightMm:    15,
		BaseFontSizePt:   11,
		LineHeight:       1.15,
		SectionSpacingPt: 8,
		FontFamily:       FontDefault,
	}
}
