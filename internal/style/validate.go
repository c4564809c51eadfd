package style

import (
	"strings"

	"github.com/atsresumie/latex-studio/internal/types"
)

// ValidationResult reports whether styled LaTeX is safe to send to the compiler
type ValidationResult struct {
	Valid bool   `json:"valid"`
	Error string `json:"error,omitempty"`
}

// Validate checks the document skeleton and marker balance. The first
// violation found is reported.
func Validate(latex string) ValidationResult {
	switch {
	case !strings.Contains(latex, `\documentclass`):
		return ValidationResult{Error: `missing \documentclass`}
	case !strings.Contains(latex, `\begin{document}`):
		return ValidationResult{Error: `missing \begin{document}`}
	case !strings.Contains(latex, `\end{document}`):
		return ValidationResult{Error: `missing \end{document}`}
	case strings.Contains(latex, BlockStartMarker) != strings.Contains(latex, BlockEndMarker):
		return ValidationResult{Error: "unbalanced style block markers"}
	}
	return ValidationResult{Valid: true}
}

// Editor ranges applied by Normalize
const (
	editorMarginMin  = 5.0
	editorMarginMax  = 40.0
	editorFontMin    = 8.0
	editorFontMax    = 14.0
	editorLineMin    = 0.8
	editorLineMax    = 2.0
	editorSpacingMin = 0.0
	editorSpacingMax = 20.0
)

// Normalize clamps cfg to the editor ranges and replaces unknown enum values
// with defaults.
func Normalize(cfg types.StyleConfig) types.StyleConfig {
	def := types.DefaultStyleConfig()
	if !cfg.PageSize.Valid() {
		cfg.PageSize = def.PageSize
	}
	if !cfg.FontFamily.Valid() {
		cfg.FontFamily = def.FontFamily
	}
	cfg.MarginTopMm = clamp(cfg.MarginTopMm, editorMarginMin, editorMarginMax)
	cfg.MarginBottomMm = clamp(cfg.MarginBottomMm, editorMarginMin, editorMarginMax)
	cfg.MarginLeftMm = clamp(cfg.MarginLeftMm, editorMarginMin, editorMarginMax)
	cfg.MarginRightMm = clamp(cfg.MarginRightMm, editorMarginMin, editorMarginMax)
	cfg.BaseFontSizePt = clamp(cfg.BaseFontSizePt, editorFontMin, editorFontMax)
	cfg.LineHeight = clamp(cfg.LineHeight, editorLineMin, editorLineMax)
	cfg.SectionSpacingPt = clamp(cfg.SectionSpacingPt, editorSpacingMin, editorSpacingMax)
	return cfg
}
