package plaintext

import (
	"regexp"
	"strings"

	"github.com/atsresumie/latex-studio/internal/latex"
	"github.com/atsresumie/latex-studio/internal/types"
)

// Placeholder content used when there is nothing to derive a payload from
const (
	PlaceholderName      = "ATSResumie Candidate"
	PlaceholderParagraph = "Your tailored resume preview will appear here once content is available."
	OverviewHeading      = "Overview"
)

var latexMarker = regexp.MustCompile(`\\documentclass|\\section\*?\{`)

// InferSectionsFromText is the editor variant: alias and ALL-CAPS headings only.
// It returns no sections when the text has no headings.
func InferSectionsFromText(text string) []types.Section {
	return buildSections(splitLines(text), Options{})
}

// ParseResumePlainText is the strict variant. It also accepts colon headings
// and always returns at least one section.
func ParseResumePlainText(text string) types.RenderPayload {
	trimmed := strings.TrimSpace(text)
	if trimmed == "" {
		return placeholderPayload(preambleHeading)
	}

	opts := Options{ColonHeadings: true}
	lines := splitLines(trimmed)
	title, consumed := InferTitle(lines, opts)
	sections := buildSections(lines[consumed:], opts)
	if len(sections) == 0 {
		sections = fallbackSections(preambleHeading, trimmed)
	}

	return types.RenderPayload{Title: title, Sections: sections}
}

// DeriveRenderPayloadFromResumeText builds a payload from either LaTeX or plain
// resume text. It never returns an empty section list.
func DeriveRenderPayloadFromResumeText(text string) types.RenderPayload {
	trimmed := strings.TrimSpace(text)
	if trimmed == "" {
		return placeholderPayload(OverviewHeading)
	}

	if IsLatex(trimmed) {
		return deriveFromLatex(trimmed)
	}

	lines := splitLines(trimmed)
	title, consumed := InferTitle(lines, Options{})
	if title.Name == "" {
		title.Name = PlaceholderName
	}
	sections := buildSections(lines[consumed:], Options{})
	if len(sections) == 0 {
		sections = fallbackSections(OverviewHeading, trimmed)
	}

	return types.RenderPayload{Title: title, Sections: sections}
}

// IsLatex reports whether text looks like LaTeX source rather than plain text
func IsLatex(text string) bool {
	return latexMarker.MatchString(text)
}

func deriveFromLatex(source string) types.RenderPayload {
	title := types.TitleBlock{Contacts: []string{}}
	if name := latex.ExtractName(source); name != "" {
		title.Name = strings.ToUpper(name)
	} else {
		title.Name = PlaceholderName
	}
	title.Contacts = append(title.Contacts, latex.ExtractContacts(source)...)

	sections := latex.ExtractSections(source)
	if len(sections) == 0 {
		text := latex.StripCommands(source)
		if text == "" {
			text = PlaceholderParagraph
		}
		sections = fallbackSections(OverviewHeading, text)
	}

	return types.RenderPayload{Title: title, Sections: sections}
}

func fallbackSections(heading, text string) []types.Section {
	return []types.Section{{
		ID:      latex.SectionID(heading, 0),
		Heading: heading,
		Items:   []types.SectionItem{types.NewParagraphItem(text)},
	}}
}

func placeholderPayload(heading string) types.RenderPayload {
	return types.RenderPayload{
		Title:    types.TitleBlock{Name: PlaceholderName, Contacts: []string{}},
		Sections: fallbackSections(heading, PlaceholderParagraph),
	}
}
