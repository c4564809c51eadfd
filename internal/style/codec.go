// Package style encodes StyleConfig values into LaTeX source and reads them back.
package style

import (
	"fmt"
	"math"
	"regexp"
	"strconv"
	"strings"

	"github.com/atsresumie/latex-studio/internal/logging"
	"github.com/atsresumie/latex-studio/internal/types"
)

// Markers delimiting injected content
const (
	BlockStartMarker = "% ATSRESUMIE_STYLE_BLOCK_START"
	BlockEndMarker   = "% ATSRESUMIE_STYLE_BLOCK_END"
	FontSizeMarker   = "% ATSRESUMIE_FONTSIZE"
)

// blockedPackages are removed before the style block is injected so that the
// injected settings are the only ones in effect.
var blockedPackages = map[string]bool{
	"geometry":       true,
	"setspace":       true,
	"times":          true,
	"mathptmx":       true,
	"helvet":         true,
	"palatino":       true,
	"mathpazo":       true,
	"charter":        true,
	"bookman":        true,
	"lmodern":        true,
	"newtxtext":      true,
	"newtxmath":      true,
	"newpxtext":      true,
	"newpxmath":      true,
	"tgtermes":       true,
	"tgheros":        true,
	"tgpagella":      true,
	"tgbonum":        true,
	"tgschola":       true,
	"kpfonts":        true,
	"fourier":        true,
	"libertine":      true,
	"libertinus":     true,
	"sourcesanspro":  true,
	"sourceserifpro": true,
	"roboto":         true,
	"lato":           true,
	"fontspec":       true,
	"unicode-math":   true,
	"polyglossia":    true,
}

// fontPackages is the LaTeX preamble emitted for each family
var fontPackages = map[types.FontFamily][]string{
	types.FontDefault:   nil,
	types.FontTimes:     {`\usepackage{mathptmx}`},
	types.FontHelvetica: {`\usepackage[scaled]{helvet}`, `\renewcommand{\familydefault}{\sfdefault}`},
	types.FontPalatino:  {`\usepackage{mathpazo}`},
	types.FontCharter:   {`\usepackage{charter}`},
	types.FontBookman:   {`\usepackage{bookman}`},
	types.FontLModern:   {`\usepackage{lmodern}`},
}

var (
	usepackagePattern    = regexp.MustCompile(`\\usepackage\s*(?:\[[^\]]*\])?\s*\{([^{}]*)\}`)
	fontCommandPattern   = regexp.MustCompile(`\\set(?:main|sans|mono)font\s*(?:\[[^\]]*\])?\s*\{[^{}]*\}(?:\[[^\]]*\])?`)
	familyDefaultPattern = regexp.MustCompile(`\\renewcommand\s*\{?\\familydefault\}?\s*\{[^{}]*\}`)
	geometryCmdPattern   = regexp.MustCompile(`\\geometry\s*\{[^{}]*\}`)
	setstretchPattern    = regexp.MustCompile(`\\setstretch\s*\{[^{}]*\}`)
	titlespacingPattern  = regexp.MustCompile(`\\titlespacing\*?\s*\{\\section\}(?:\s*\{[^{}]*\}){3}`)
	documentclassAnchor  = regexp.MustCompile(`\\documentclass\s*(?:\[[^\]]*\])?\s*\{[^{}]*\}`)
	beginDocumentAnchor  = regexp.MustCompile(`\\begin\{document\}`)
)

// Apply injects cfg into latex. Re-applying replaces the previous injection
// instead of adding to it. A missing \documentclass or \begin{document} anchor
// skips that insertion.
func Apply(latex string, cfg types.StyleConfig) string {
	log := logging.WithComponent("style")

	// After a previous Apply the only titlesec load is inside the old block.
	titlesec := titlesecLoad(latex)

	doc := NewDocument(latex).
		RemoveBlock(BlockStartMarker, BlockEndMarker).
		RemoveMarkedLines(FontSizeMarker)

	doc.ReplaceCommands(usepackagePattern, dropPackages(func(name string) bool { return blockedPackages[name] })).
		RemoveCommands(fontCommandPattern).
		RemoveCommands(familyDefaultPattern).
		RemoveCommands(geometryCmdPattern).
		RemoveCommands(setstretchPattern)
	if !documentclassAnchor.MatchString(doc.String()) {
		titlesec = ""
	}
	if titlesec != "" {
		doc.ReplaceCommands(usepackagePattern, dropPackages(func(name string) bool { return name == "titlesec" })).
			RemoveCommands(titlespacingPattern)
	}

	if !doc.InsertAfter(documentclassAnchor, buildBlock(cfg, titlesec)) {
		log.Warn("no \\documentclass anchor, style block not injected")
	}
	if !doc.InsertAfter(beginDocumentAnchor, fontSizeDirective(cfg.BaseFontSizePt)) {
		log.Warn("no \\begin{document} anchor, font size directive not injected")
	}

	return doc.String()
}

// dropPackages returns a rewrite for one \usepackage command that removes the
// names matched by drop. Options are dropped when the command is rewritten.
func dropPackages(drop func(name string) bool) func(cmd string) string {
	return func(cmd string) string {
		m := usepackagePattern.FindStringSubmatch(cmd)
		if m == nil {
			return cmd
		}
		names := splitPackages(m[1])
		var kept []string
		for _, name := range names {
			if !drop(name) {
				kept = append(kept, name)
			}
		}
		switch {
		case len(kept) == len(names):
			return cmd
		case len(kept) == 0:
			return ""
		default:
			return `\usepackage{` + strings.Join(kept, ",") + `}`
		}
	}
}

// titlesecLoad returns the first \usepackage command that loads titlesec, or
// "" when titlesec is not used. A titlesec-only load keeps its options.
func titlesecLoad(latex string) string {
	for _, m := range usepackagePattern.FindAllStringSubmatch(latex, -1) {
		names := splitPackages(m[1])
		for _, name := range names {
			if name != "titlesec" {
				continue
			}
			if len(names) == 1 {
				return m[0]
			}
			return `\usepackage{titlesec}`
		}
	}
	return ""
}

// buildBlock renders the injected preamble. A non-empty titlesec load moves
// into the block so \titlespacing* follows the package that defines it.
func buildBlock(cfg types.StyleConfig, titlesec string) string {
	lines := []string{BlockStartMarker}
	lines = append(lines, fontPackages[cfg.FontFamily]...)

	paper := "letterpaper"
	if cfg.PageSize == types.PageA4 {
		paper = "a4paper"
	}
	lines = append(lines,
		fmt.Sprintf(`\usepackage[%s,top=%smm,bottom=%smm,left=%smm,right=%smm]{geometry}`,
			paper, num(cfg.MarginTopMm), num(cfg.MarginBottomMm), num(cfg.MarginLeftMm), num(cfg.MarginRightMm)),
		`\usepackage{setspace}`,
		fmt.Sprintf(`\setstretch{%s}`, num(cfg.LineHeight)),
	)
	if titlesec != "" {
		after := math.Round(cfg.SectionSpacingPt * 0.5)
		lines = append(lines,
			titlesec,
			fmt.Sprintf(`\titlespacing*{\section}{0pt}{%spt}{%spt}`, num(cfg.SectionSpacingPt), num(after)),
		)
	}
	lines = append(lines, BlockEndMarker)
	return strings.Join(lines, "\n")
}

func fontSizeDirective(size float64) string {
	skip := math.Round(size*1.2*100) / 100
	return fmt.Sprintf(`\fontsize{%spt}{%spt}\selectfont %s`, num(size), num(skip), FontSizeMarker)
}

// num formats a number with the shortest exact representation
func num(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

func splitPackages(list string) []string {
	var names []string
	for _, name := range strings.Split(list, ",") {
		if name = strings.TrimSpace(name); name != "" {
			names = append(names, name)
		}
	}
	return names
}

// usedPackages returns every package name loaded with \usepackage
func usedPackages(latex string) map[string]bool {
	used := make(map[string]bool)
	for _, m := range usepackagePattern.FindAllStringSubmatch(latex, -1) {
		for _, name := range splitPackages(m[1]) {
			used[name] = true
		}
	}
	return used
}
