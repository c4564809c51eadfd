package style

import (
	"io"
	"regexp"
	"strings"
	"testing"

	"github.com/atsresumie/latex-studio/internal/logging"
	"github.com/atsresumie/latex-studio/internal/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const baseDoc = "\\documentclass[11pt]{article}\n" +
	"\\usepackage[margin=1in]{geometry}\n" +
	"\\usepackage{hyperref,times}\n" +
	"\\usepackage{titlesec}\n" +
	"\\begin{document}\n" +
	"Hello\n" +
	"\\end{document}\n"

func init() {
	logging.SetOutput(io.Discard)
}

func sampleConfig() types.StyleConfig {
	return types.StyleConfig{
		PageSize:         types.PageA4,
		MarginTopMm:      20,
		MarginBottomMm:   18,
		MarginLeftMm:     15,
		MarginRightMm:    15,
		BaseFontSizePt:   10,
		LineHeight:       1.2,
		SectionSpacingPt: 10,
		FontFamily:       types.FontTimes,
	}
}

func TestApply(t *testing.T) {
	want := "\\documentclass[11pt]{article}\n" +
		"% ATSRESUMIE_STYLE_BLOCK_START\n" +
		"\\usepackage{mathptmx}\n" +
		"\\usepackage[a4paper,top=20mm,bottom=18mm,left=15mm,right=15mm]{geometry}\n" +
		"\\usepackage{setspace}\n" +
		"\\setstretch{1.2}\n" +
		"\\usepackage{titlesec}\n" +
		"\\titlespacing*{\\section}{0pt}{10pt}{5pt}\n" +
		"% ATSRESUMIE_STYLE_BLOCK_END\n" +
		"\\usepackage{hyperref}\n" +
		"\\begin{document}\n" +
		"\\fontsize{10pt}{12pt}\\selectfont % ATSRESUMIE_FONTSIZE\n" +
		"Hello\n" +
		"\\end{document}\n"

	assert.Equal(t, want, Apply(baseDoc, sampleConfig()))
}

func TestApply_Idempotent(t *testing.T) {
	oneLine := `\documentclass[11pt]{article}\usepackage[letterpaper,top=20mm,bottom=20mm,left=20mm,right=20mm]{geometry}\begin{document}Body\end{document}`
	xelatex := "\\documentclass{article}\n\\usepackage{fontspec}\n\\setmainfont{Arial}\n\\begin{document}\nX\n\\end{document}"

	for _, base := range []string{baseDoc, oneLine, xelatex, multiLineDoc} {
		for _, family := range types.FontFamilies {
			cfg := sampleConfig()
			cfg.FontFamily = family

			once := Apply(base, cfg)
			twice := Apply(once, cfg)
			assert.Equal(t, once, twice, "family %s", family)
			assert.Equal(t, 1, strings.Count(twice, BlockStartMarker))
			assert.Equal(t, 1, strings.Count(twice, FontSizeMarker))
			assert.Equal(t, 1, strings.Count(twice, "{geometry}"), "family %s", family)
			assert.LessOrEqual(t, strings.Count(twice, "{titlesec}"), 1)
		}
	}
}

const multiLineDoc = "\\documentclass[11pt]{article}\n" +
	"\\usepackage[\n  margin=1in,\n  includefoot\n]{geometry}\n" +
	"\\geometry{\n  top=2cm\n}\n" +
	"\\usepackage[\n  scaled\n]{helvet}\n" +
	"\\usepackage[compact]{titlesec}\n" +
	"\\titlespacing*{\\section}\n  {0pt}{4pt}{2pt}\n" +
	"\\usepackage{hyperref}\n" +
	"\\begin{document}\n" +
	"Hello\n" +
	"\\end{document}\n"

func TestApply_MultiLinePreamble(t *testing.T) {
	out := Apply(multiLineDoc, sampleConfig())

	assert.Equal(t, 1, strings.Count(out, "{geometry}"))
	assert.NotContains(t, out, "margin=1in")
	assert.NotContains(t, out, "includefoot")
	assert.NotContains(t, out, `\geometry{`)
	assert.NotContains(t, out, "helvet")
	assert.NotContains(t, out, "{4pt}")
	assert.Contains(t, out, `\usepackage{hyperref}`)
	assert.NotContains(t, out, "\n\n", "removed commands leave no blank lines")

	assert.Equal(t, 1, strings.Count(out, "{titlesec}"))
	load := strings.Index(out, `\usepackage[compact]{titlesec}`)
	spacing := strings.Index(out, `\titlespacing*{\section}{0pt}{10pt}{5pt}`)
	require.GreaterOrEqual(t, load, 0)
	require.GreaterOrEqual(t, spacing, 0)
	assert.Less(t, load, spacing)
	assert.Less(t, spacing, strings.Index(out, BlockEndMarker))

	assert.Equal(t, out, Apply(out, sampleConfig()))
	assert.Equal(t, sampleConfig().MarginTopMm, Parse(out).MarginTopMm)
}

func TestApply_TitlesecKeptWithoutDocumentclass(t *testing.T) {
	src := "\\usepackage{titlesec}\n\\begin{document}\nHi\n\\end{document}"

	out := Apply(src, sampleConfig())

	assert.Contains(t, out, `\usepackage{titlesec}`)
	assert.NotContains(t, out, BlockStartMarker)
}

func TestApply_ReplacesPreviousConfig(t *testing.T) {
	first := Apply(baseDoc, sampleConfig())

	cfg := sampleConfig()
	cfg.FontFamily = types.FontHelvetica
	cfg.PageSize = types.PageLetter
	second := Apply(first, cfg)

	assert.NotContains(t, second, "mathptmx")
	assert.NotContains(t, second, "a4paper")
	assert.Contains(t, second, `\usepackage[scaled]{helvet}`)
	assert.Contains(t, second, `\renewcommand{\familydefault}{\sfdefault}`)
	assert.Equal(t, Apply(baseDoc, cfg), second)
}

func TestApply_StripsXeLaTeXFonts(t *testing.T) {
	src := "\\documentclass{article}\n\\usepackage{fontspec}\n\\setmainfont{Arial}\n\\begin{document}\nX\n\\end{document}"

	out := Apply(src, types.DefaultStyleConfig())

	assert.NotContains(t, out, "fontspec")
	assert.NotContains(t, out, "setmainfont")
	assert.NotContains(t, out, "titlespacing")
}

func TestApply_MissingAnchors(t *testing.T) {
	assert.Equal(t, "Hello", Apply("Hello", sampleConfig()))

	out := Apply("\\begin{document}\nHi\n\\end{document}", sampleConfig())
	assert.NotContains(t, out, BlockStartMarker)
	assert.Contains(t, out, FontSizeMarker)
}

func TestParse_Scenario(t *testing.T) {
	src := `\documentclass[11pt]{article}\usepackage[letterpaper,top=20mm,bottom=20mm,left=20mm,right=20mm]{geometry}\begin{document}...\end{document}`

	cfg := Parse(src)

	assert.Equal(t, types.PageLetter, cfg.PageSize)
	assert.Equal(t, 11.0, cfg.BaseFontSizePt)
	assert.Equal(t, 20.0, cfg.MarginTopMm)
	assert.Equal(t, 20.0, cfg.MarginBottomMm)
	assert.Equal(t, 20.0, cfg.MarginLeftMm)
	assert.Equal(t, 20.0, cfg.MarginRightMm)
	assert.Equal(t, types.FontDefault, cfg.FontFamily)
}

func TestParse_UniformMarginUnits(t *testing.T) {
	tests := []struct {
		name string
		src  string
		want float64
	}{
		{"inches", `\usepackage[margin=1in]{geometry}`, 25.4},
		{"centimeters", `\geometry{margin=2cm}`, 20},
		{"clamped", `\usepackage[margin=3in]{geometry}`, 40},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Parse(tt.src)
			assert.InDelta(t, tt.want, cfg.MarginTopMm, 1e-9)
			assert.InDelta(t, tt.want, cfg.MarginRightMm, 1e-9)
		})
	}
}

func TestParse_Defaults(t *testing.T) {
	assert.Equal(t, types.DefaultStyleConfig(), Parse(""))
}

func TestParse_DecodeClampsAreNarrower(t *testing.T) {
	cfg := sampleConfig()
	cfg.BaseFontSizePt = 13
	cfg.LineHeight = 1.8

	got := Parse(Apply(baseDoc, cfg))

	assert.Equal(t, 12.0, got.BaseFontSizePt)
	assert.Equal(t, 1.5, got.LineHeight)
}

func TestParse_FontPriority(t *testing.T) {
	assert.Equal(t, types.FontTimes, Parse(`\usepackage{helvet}\usepackage{times}`).FontFamily)
	assert.Equal(t, types.FontPalatino, Parse(`\usepackage{mathpazo}`).FontFamily)
	assert.Equal(t, types.FontLModern, Parse(`\usepackage[T1]{fontenc}\usepackage{lmodern}`).FontFamily)
}

func TestParse_RoundTrip(t *testing.T) {
	for _, family := range types.FontFamilies {
		for _, page := range []types.PageSize{types.PageLetter, types.PageA4} {
			cfg := types.StyleConfig{
				PageSize:         page,
				MarginTopMm:      12.5,
				MarginBottomMm:   40,
				MarginLeftMm:     5,
				MarginRightMm:    22,
				BaseFontSizePt:   9.5,
				LineHeight:       1.35,
				SectionSpacingPt: 14,
				FontFamily:       family,
			}
			assert.Equal(t, cfg, Parse(Apply(baseDoc, cfg)), "family %s page %s", family, page)
		}
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name  string
		src   string
		valid bool
		err   string
	}{
		{"valid", baseDoc, true, ""},
		{"styled", Apply(baseDoc, sampleConfig()), true, ""},
		{"no documentclass", "\\begin{document}\\end{document}", false, `missing \documentclass`},
		{"no begin", "\\documentclass{article}\\end{document}", false, `missing \begin{document}`},
		{"no end", "\\documentclass{article}\\begin{document}", false, `missing \end{document}`},
		{"unbalanced markers", baseDoc + BlockStartMarker + "\n", false, "unbalanced style block markers"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res := Validate(tt.src)
			assert.Equal(t, tt.valid, res.Valid)
			assert.Equal(t, tt.err, res.Error)
		})
	}
}

func TestNormalize(t *testing.T) {
	cfg := types.StyleConfig{
		PageSize:         "tabloid",
		MarginTopMm:      1,
		MarginBottomMm:   60,
		MarginLeftMm:     10,
		MarginRightMm:    10,
		BaseFontSizePt:   13,
		LineHeight:       2.5,
		SectionSpacingPt: -3,
		FontFamily:       "comic",
	}

	got := Normalize(cfg)

	assert.Equal(t, types.PageLetter, got.PageSize)
	assert.Equal(t, types.FontDefault, got.FontFamily)
	assert.Equal(t, 5.0, got.MarginTopMm)
	assert.Equal(t, 40.0, got.MarginBottomMm)
	assert.Equal(t, 13.0, got.BaseFontSizePt)
	assert.Equal(t, 2.0, got.LineHeight)
	assert.Equal(t, 0.0, got.SectionSpacingPt)
}

func TestDocument_RemoveBlockWithoutEnd(t *testing.T) {
	src := "a\n" + BlockStartMarker + "\nb\n"
	assert.Equal(t, src, NewDocument(src).RemoveBlock(BlockStartMarker, BlockEndMarker).String())
}

func TestDocument_InsertAfter(t *testing.T) {
	doc := NewDocument("x\\begin{document}y")
	require.True(t, doc.InsertAfter(beginDocumentAnchor, "% note"))
	assert.Equal(t, "x\\begin{document}\n% note\ny", doc.String())
}

func TestDocument_ReplaceCommandsAcrossLines(t *testing.T) {
	pattern := regexp.MustCompile(`\\cmd\{[^{}]*\}`)

	tests := []struct {
		name string
		src  string
		want string
	}{
		{"whole lines dropped", "a\n\\cmd{x\ny}\nb", "a\nb"},
		{"surrounding text kept", "a \\cmd{x\ny} b\nc", "a  b\nc"},
		{"existing blank lines kept", "a\n\n\\cmd{x}\nb", "a\n\nb"},
		{"no match", "a\nb", "a\nb"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, NewDocument(tt.src).RemoveCommands(pattern).String())
		})
	}
}
