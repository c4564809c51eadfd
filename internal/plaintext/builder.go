package plaintext

import (
	"regexp"
	"strings"

	"github.com/atsresumie/latex-studio/internal/latex"
	"github.com/atsresumie/latex-studio/internal/types"
)

// preambleHeading names the section holding content found before the first heading
const preambleHeading = "Summary"

var headerDashSplit = regexp.MustCompile(`\s+[–—-]\s+`)

type pendingSection struct {
	heading string
	items   []types.SectionItem
}

// builder folds classified lines into sections. Both parser variants share it.
type builder struct {
	opts       Options
	sections   []pendingSection
	current    int
	sawHeading bool
	paragraph  []string
	header     []string
	bullets    []string
	lastBullet bool
}

func newBuilder(opts Options) *builder {
	return &builder{
		opts:     opts,
		sections: []pendingSection{{heading: preambleHeading}},
	}
}

func (b *builder) section() *pendingSection {
	return &b.sections[b.current]
}

// feed consumes one raw line
func (b *builder) feed(raw string) {
	trimmed := strings.TrimSpace(raw)

	switch {
	case trimmed == "":
		b.flushParagraph()
		b.lastBullet = false

	case IsBullet(raw):
		if len(b.bullets) == 0 {
			b.takeHeader()
		}
		if text := BulletText(raw); text != "" {
			b.bullets = append(b.bullets, text)
		}
		b.lastBullet = true

	case b.lastBullet && startsIndented(raw) && len(b.bullets) > 0:
		// continuation of the previous bullet
		last := len(b.bullets) - 1
		b.bullets[last] = collapse(b.bullets[last] + " " + trimmed)

	default:
		if heading, ok := DetectHeading(trimmed, b.opts); ok {
			b.flushAll()
			b.sawHeading = true
			b.sections = append(b.sections, pendingSection{heading: heading})
			b.current = len(b.sections) - 1
			b.lastBullet = false
			return
		}
		b.flushBullets()
		b.paragraph = append(b.paragraph, trimmed)
		b.lastBullet = false
	}
}

// takeHeader moves up to three buffered lines into the header of the next bullets item
func (b *builder) takeHeader() {
	if len(b.paragraph) == 0 {
		return
	}
	if len(b.paragraph) > 3 {
		b.flushParagraph()
		return
	}
	b.header = b.paragraph
	b.paragraph = nil
}

func (b *builder) flushParagraph() {
	if len(b.paragraph) == 0 {
		return
	}
	if text := collapse(strings.Join(b.paragraph, " ")); text != "" {
		b.section().items = append(b.section().items, types.NewParagraphItem(text))
	}
	b.paragraph = nil
}

func (b *builder) flushBullets() {
	if len(b.bullets) == 0 {
		b.header = nil
		return
	}
	title, subtitle, meta := splitHeader(b.header)
	b.section().items = append(b.section().items, types.NewBulletsItem(title, subtitle, meta, b.bullets))
	b.bullets = nil
	b.header = nil
}

func (b *builder) flushAll() {
	b.flushBullets()
	b.flushParagraph()
}

// build returns the non-empty sections. Preamble content is only kept as its
// own section when at least one heading was found.
func (b *builder) build() []types.Section {
	b.flushAll()

	var sections []types.Section
	for i, pending := range b.sections {
		if len(pending.items) == 0 {
			continue
		}
		if i == 0 && !b.sawHeading {
			continue
		}
		sections = append(sections, types.Section{
			ID:      latex.SectionID(pending.heading, len(sections)),
			Heading: pending.heading,
			Items:   pending.items,
		})
	}
	return sections
}

// splitHeader maps header lines to title, subtitle and meta. A single line is
// split on '|' or a spaced dash; multiple lines map one field each.
func splitHeader(lines []string) (string, string, string) {
	var parts []string
	switch len(lines) {
	case 0:
		return "", "", ""
	case 1:
		line := lines[0]
		if strings.Contains(line, "|") {
			parts = strings.Split(line, "|")
		} else {
			parts = headerDashSplit.Split(line, -1)
		}
	default:
		parts = lines
	}

	var fields []string
	for _, part := range parts {
		if part = collapse(part); part != "" {
			fields = append(fields, part)
		}
	}

	switch len(fields) {
	case 0:
		return "", "", ""
	case 1:
		return fields[0], "", ""
	case 2:
		return fields[0], fields[1], ""
	default:
		return fields[0], fields[1], strings.Join(fields[2:], " | ")
	}
}

func startsIndented(raw string) bool {
	return strings.HasPrefix(raw, " ") || strings.HasPrefix(raw, "\t")
}

// buildSections runs the shared builder over lines
func buildSections(lines []string, opts Options) []types.Section {
	b := newBuilder(opts)
	for _, line := range lines {
		b.feed(line)
	}
	return b.build()
}

func splitLines(text string) []string {
	text = strings.ReplaceAll(text, "\r\n", "\n")
	return strings.Split(text, "\n")
}
