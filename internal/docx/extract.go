// Package docx converts LaTeX resumes into WordprocessingML documents.
package docx

import (
	"regexp"

	"github.com/atsresumie/latex-studio/internal/latex"
)

// ElementKind identifies one paragraph shape in the Word output
type ElementKind string

const (
	KindEntry     ElementKind = "entry"
	KindSubentry  ElementKind = "subentry"
	KindBullet    ElementKind = "bullet"
	KindParagraph ElementKind = "paragraph"
)

// Element is one paragraph of a section. Entries and subentries carry a
// right-aligned Aside (date or location).
type Element struct {
	Kind  ElementKind `json:"kind"`
	Text  string      `json:"text"`
	Aside string      `json:"aside,omitempty"`
}

// Section is a heading with its elements in source order
type Section struct {
	Heading  string    `json:"heading"`
	Elements []Element `json:"elements"`
}

var (
	blankLines    = regexp.MustCompile(`\n\s*\n`)
	beginDocument = regexp.MustCompile(`\\begin\{document\}`)
	endDocument   = regexp.MustCompile(`\\end\{document\}`)
)

// ExtractDocxSections splits the document into sections of Word elements.
// Sections without elements are dropped.
func ExtractDocxSections(src string) []Section {
	var sections []Section
	for _, raw := range latex.SplitSections(src) {
		elements := ParseSectionBody(raw.Body)
		if len(elements) == 0 {
			continue
		}
		sections = append(sections, Section{Heading: raw.Heading, Elements: elements})
	}
	return sections
}

// ParseSectionBody maps a section body to elements without reordering anything
func ParseSectionBody(body string) []Element {
	var elements []Element
	for _, tok := range latex.ScanBody(body, latex.BodyOptions{HFillEntries: true}) {
		switch tok.Kind {
		case latex.TokenSubheading:
			// title, date, subtitle, location
			if tok.Fields[0] != "" || tok.Fields[1] != "" {
				elements = append(elements, Element{Kind: KindEntry, Text: tok.Fields[0], Aside: tok.Fields[1]})
			}
			if tok.Fields[2] != "" || tok.Fields[3] != "" {
				elements = append(elements, Element{Kind: KindSubentry, Text: tok.Fields[2], Aside: tok.Fields[3]})
			}
		case latex.TokenEntry:
			elements = append(elements, Element{Kind: KindEntry, Text: tok.Fields[0], Aside: tok.Fields[1]})
		case latex.TokenSubentry:
			elements = append(elements, Element{Kind: KindSubentry, Text: tok.Fields[0], Aside: tok.Fields[1]})
		case latex.TokenBullet:
			elements = append(elements, Element{Kind: KindBullet, Text: tok.Text})
		case latex.TokenText:
			elements = append(elements, paragraphs(tok.Text)...)
		}
	}
	return elements
}

// fallbackElements turns the stripped document body into plain paragraphs
func fallbackElements(src string) []Element {
	body := src
	if loc := beginDocument.FindStringIndex(body); loc != nil {
		body = body[loc[1]:]
	}
	if loc := endDocument.FindStringIndex(body); loc != nil {
		body = body[:loc[0]]
	}
	return paragraphs(latex.StripCommands(body))
}

func paragraphs(text string) []Element {
	var out []Element
	for _, block := range blankLines.Split(text, -1) {
		if p := latex.CollapseWhitespace(block); p != "" {
			out = append(out, Element{Kind: KindParagraph, Text: p})
		}
	}
	return out
}
