package latex

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/atsresumie/latex-studio/internal/types"
)

var (
	sectionPattern     = regexp.MustCompile(`\\section\*?\s*\{`)
	endDocumentPattern = regexp.MustCompile(`\\end\{document\}`)
	namePatterns       = []*regexp.Regexp{
		regexp.MustCompile(`\\name\{([^{}]*)\}`),
		regexp.MustCompile(`\\textbf\{\\(?:Huge|huge|LARGE|Large)\s*(?:\\scshape|\\bfseries)?\s*([^{}]+)\}`),
		regexp.MustCompile(`\{\\(?:Huge|huge|LARGE|Large)\s*(?:\\scshape|\\bfseries)?\s*([^{}]+)\}`),
	}
	emailPattern    = regexp.MustCompile(`[A-Za-z0-9._%+-]+@[A-Za-z0-9.-]+\.[A-Za-z]{2,}`)
	phonePattern    = regexp.MustCompile(`(?:\+?\d{1,3}[\s.-]?)?\(?\d{3}\)?[\s.-]?\d{3}[\s.-]?\d{4}`)
	linkedinPattern = regexp.MustCompile(`(?:https?://)?(?:www\.)?linkedin\.com/in/[A-Za-z0-9_-]+/?`)
	slugPattern     = regexp.MustCompile(`[^a-z0-9]+`)
)

// RawSection is a section heading with its unprocessed LaTeX body
type RawSection struct {
	Heading string
	Body    string
}

// ExtractHeaderBlock returns up to two lines: the uppercased candidate name and a
// contact line joining the first email, phone and LinkedIn URL found in the document.
func ExtractHeaderBlock(latex string) []string {
	var lines []string
	if name := ExtractName(latex); name != "" {
		lines = append(lines, strings.ToUpper(name))
	}
	if contacts := ExtractContacts(latex); len(contacts) > 0 {
		lines = append(lines, strings.Join(contacts, " | "))
	}
	return lines
}

// ExtractName finds the candidate name using the template idioms the generator emits
func ExtractName(latex string) string {
	for _, pattern := range namePatterns {
		if m := pattern.FindStringSubmatch(latex); m != nil {
			if name := StripInline(m[1]); name != "" {
				return name
			}
		}
	}
	return ""
}

// ExtractContacts returns the first email, phone and LinkedIn URL, in that order
func ExtractContacts(latex string) []string {
	var contacts []string
	for _, pattern := range []*regexp.Regexp{emailPattern, phonePattern, linkedinPattern} {
		if m := pattern.FindString(latex); m != "" {
			contacts = append(contacts, strings.TrimSpace(m))
		}
	}
	return contacts
}

// SplitSections returns every \section / \section* heading with its body. A body
// runs to the next \section or \end{document}, whichever comes first.
func SplitSections(latex string) []RawSection {
	starts := sectionPattern.FindAllStringIndex(latex, -1)
	if len(starts) == 0 {
		return nil
	}

	docEnd := len(latex)
	if loc := endDocumentPattern.FindStringIndex(latex); loc != nil {
		docEnd = loc[0]
	}

	var sections []RawSection
	for i, loc := range starts {
		if loc[0] >= docEnd {
			break
		}
		// loc[1]-1 is the opening brace of the heading group
		heading, bodyStart, ok := readBraceGroup(latex, loc[1]-1)
		if !ok {
			continue
		}
		bodyEnd := docEnd
		if i+1 < len(starts) && starts[i+1][0] < bodyEnd {
			bodyEnd = starts[i+1][0]
		}
		if bodyStart > bodyEnd {
			bodyStart = bodyEnd
		}
		sections = append(sections, RawSection{
			Heading: StripInline(heading),
			Body:    latex[bodyStart:bodyEnd],
		})
	}
	return sections
}

// ExtractSections converts every LaTeX section into a typed section.
// Sections that produce no items are omitted.
func ExtractSections(latex string) []types.Section {
	var sections []types.Section
	for _, raw := range SplitSections(latex) {
		items := ParseSectionItems(raw.Body)
		if len(items) == 0 {
			continue
		}
		sections = append(sections, types.Section{
			ID:      SectionID(raw.Heading, len(sections)),
			Heading: raw.Heading,
			Items:   items,
		})
	}
	return sections
}

// ParseSectionItems folds a section body into paragraph and bullets items.
// When the body has no structured tokens, the stripped body becomes one paragraph.
func ParseSectionItems(body string) []types.SectionItem {
	tokens := ScanBody(body, BodyOptions{})

	structured := false
	for _, tok := range tokens {
		if tok.Kind == TokenSubheading || tok.Kind == TokenBullet {
			structured = true
			break
		}
	}
	if !structured {
		if text := StripCommands(body); text != "" {
			return []types.SectionItem{types.NewParagraphItem(text)}
		}
		return nil
	}

	var (
		items   []types.SectionItem
		current *types.SectionItem
	)
	flush := func() {
		if current == nil {
			return
		}
		if len(current.Bullets) > 0 {
			items = append(items, *current)
		} else if text := joinHeader(current); text != "" {
			// a header that never received bullets
			items = append(items, types.NewParagraphItem(text))
		}
		current = nil
	}

	for _, tok := range tokens {
		switch tok.Kind {
		case TokenSubheading:
			flush()
			item := types.NewBulletsItem(tok.Fields[0], tok.Fields[2], joinNonEmpty(" | ", tok.Fields[1], tok.Fields[3]), nil)
			current = &item
		case TokenBullet:
			if current == nil {
				item := types.NewBulletsItem("", "", "", nil)
				current = &item
			}
			current.Bullets = append(current.Bullets, tok.Text)
		case TokenListEnd:
			if current != nil && len(current.Bullets) > 0 {
				flush()
			}
		case TokenText:
			flush()
			items = append(items, types.NewParagraphItem(tok.Text))
		}
	}
	flush()

	return items
}

// SectionID builds a stable, payload-unique section id from its heading and position
func SectionID(heading string, index int) string {
	slug := strings.Trim(slugPattern.ReplaceAllString(strings.ToLower(heading), "-"), "-")
	if slug == "" {
		slug = "section"
	}
	return fmt.Sprintf("%s-%d", slug, index)
}

func joinHeader(item *types.SectionItem) string {
	return joinNonEmpty(" | ", item.Title, item.Subtitle, item.Meta)
}

func joinNonEmpty(sep string, parts ...string) string {
	var kept []string
	for _, part := range parts {
		if part = strings.TrimSpace(part); part != "" {
			kept = append(kept, part)
		}
	}
	return strings.Join(kept, sep)
}
