package style

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/atsresumie/latex-studio/internal/types"
)

// Decode clamps. These are narrower than the editor and API ranges for font
// size and line height, so values above them are truncated on parse-back.
const (
	decodeMarginMin  = 5.0
	decodeMarginMax  = 40.0
	decodeFontMin    = 8.0
	decodeFontMax    = 12.0
	decodeLineMin    = 0.8
	decodeLineMax    = 1.5
	decodeSpacingMin = 0.0
	decodeSpacingMax = 20.0
	classFontSizeMin = 8.0
	classFontSizeMax = 14.0
)

var (
	classOptionsPattern = regexp.MustCompile(`\\documentclass\s*\[([^\]]*)\]`)
	classPointPattern   = regexp.MustCompile(`(\d+(?:\.\d+)?)pt`)
	markedFontPattern   = regexp.MustCompile(`\\fontsize\{(\d+(?:\.\d+)?)pt\}\{[^{}]*\}\\selectfont\s*` + regexp.QuoteMeta(FontSizeMarker))
	geometryPkgPattern  = regexp.MustCompile(`\\usepackage\s*\[([^\]]*)\]\s*\{geometry\}`)
	geometryCallPattern = regexp.MustCompile(`\\geometry\s*\{([^{}]*)\}`)
	lengthPattern       = regexp.MustCompile(`^(\d+(?:\.\d+)?)\s*(mm|cm|in)$`)
	setstretchValue     = regexp.MustCompile(`\\setstretch\s*\{(\d+(?:\.\d+)?)\}`)
	titlespacingValue   = regexp.MustCompile(`\\titlespacing\*?\s*\{\\section\}\s*\{[^{}]*\}\s*\{(\d+(?:\.\d+)?)pt\}`)
)

// fontPriority is checked in order; the first family with a loaded package wins
var fontPriority = []struct {
	family   types.FontFamily
	packages []string
}{
	{types.FontTimes, []string{"times", "mathptmx"}},
	{types.FontHelvetica, []string{"helvet"}},
	{types.FontPalatino, []string{"palatino", "mathpazo"}},
	{types.FontCharter, []string{"charter"}},
	{types.FontBookman, []string{"bookman"}},
	{types.FontLModern, []string{"lmodern"}},
}

// Parse reads style parameters back out of LaTeX source. Each field starts from
// the default and is overridden only by its own signal.
func Parse(latex string) types.StyleConfig {
	cfg := types.DefaultStyleConfig()

	if strings.Contains(latex, "a4paper") {
		cfg.PageSize = types.PageA4
	}

	if m := classOptionsPattern.FindStringSubmatch(latex); m != nil {
		if pt := classPointPattern.FindStringSubmatch(m[1]); pt != nil {
			if v, err := strconv.ParseFloat(pt[1], 64); err == nil {
				cfg.BaseFontSizePt = clamp(v, classFontSizeMin, classFontSizeMax)
			}
		}
	}
	if m := markedFontPattern.FindStringSubmatch(latex); m != nil {
		if v, err := strconv.ParseFloat(m[1], 64); err == nil {
			cfg.BaseFontSizePt = v
		}
	}

	parseGeometry(latex, &cfg)

	if m := setstretchValue.FindStringSubmatch(latex); m != nil {
		if v, err := strconv.ParseFloat(m[1], 64); err == nil {
			cfg.LineHeight = v
		}
	}

	used := usedPackages(latex)
	for _, candidate := range fontPriority {
		if anyLoaded(used, candidate.packages) {
			cfg.FontFamily = candidate.family
			break
		}
	}

	if m := titlespacingValue.FindStringSubmatch(latex); m != nil {
		if v, err := strconv.ParseFloat(m[1], 64); err == nil {
			cfg.SectionSpacingPt = v
		}
	}

	cfg.MarginTopMm = clamp(cfg.MarginTopMm, decodeMarginMin, decodeMarginMax)
	cfg.MarginBottomMm = clamp(cfg.MarginBottomMm, decodeMarginMin, decodeMarginMax)
	cfg.MarginLeftMm = clamp(cfg.MarginLeftMm, decodeMarginMin, decodeMarginMax)
	cfg.MarginRightMm = clamp(cfg.MarginRightMm, decodeMarginMin, decodeMarginMax)
	cfg.BaseFontSizePt = clamp(cfg.BaseFontSizePt, decodeFontMin, decodeFontMax)
	cfg.LineHeight = clamp(cfg.LineHeight, decodeLineMin, decodeLineMax)
	cfg.SectionSpacingPt = clamp(cfg.SectionSpacingPt, decodeSpacingMin, decodeSpacingMax)

	return cfg
}

// parseGeometry reads paper and margins from \usepackage[..]{geometry} or
// \geometry{..}. A uniform margin= fills every side without its own key.
func parseGeometry(latex string, cfg *types.StyleConfig) {
	var options string
	if m := geometryPkgPattern.FindStringSubmatch(latex); m != nil {
		options = m[1]
	} else if m := geometryCallPattern.FindStringSubmatch(latex); m != nil {
		options = m[1]
	} else {
		return
	}

	sides := map[string]*float64{
		"top":    &cfg.MarginTopMm,
		"bottom": &cfg.MarginBottomMm,
		"left":   &cfg.MarginLeftMm,
		"right":  &cfg.MarginRightMm,
	}
	set := make(map[string]bool)
	uniform, hasUniform := 0.0, false

	for _, option := range strings.Split(options, ",") {
		key, value, ok := strings.Cut(option, "=")
		if !ok {
			// explicit paper option overrides a stray a4paper elsewhere
			switch strings.TrimSpace(option) {
			case "a4paper":
				cfg.PageSize = types.PageA4
			case "letterpaper":
				cfg.PageSize = types.PageLetter
			}
			continue
		}
		key = strings.TrimSpace(key)
		mm, ok := toMillimeters(value)
		if !ok {
			continue
		}
		if key == "margin" {
			uniform, hasUniform = mm, true
			continue
		}
		if target, known := sides[key]; known {
			*target = mm
			set[key] = true
		}
	}

	if hasUniform {
		for key, target := range sides {
			if !set[key] {
				*target = uniform
			}
		}
	}
}

// toMillimeters converts a geometry length in mm, cm or in
func toMillimeters(value string) (float64, bool) {
	m := lengthPattern.FindStringSubmatch(strings.TrimSpace(value))
	if m == nil {
		return 0, false
	}
	v, err := strconv.ParseFloat(m[1], 64)
	if err != nil {
		return 0, false
	}
	switch m[2] {
	case "cm":
		v *= 10
	case "in":
		v *= 25.4
	}
	return v, true
}

func anyLoaded(used map[string]bool, packages []string) bool {
	for _, name := range packages {
		if used[name] {
			return true
		}
	}
	return false
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
