package plaintext

import (
	"strings"

	"github.com/atsresumie/latex-studio/internal/types"
)

const maxContacts = 4

// InferTitle reads the name, subtitle and contacts from the top of the text.
// It returns the title block and the number of lines consumed. When the first
// non-empty line does not look like a name, nothing is consumed.
func InferTitle(lines []string, opts Options) (types.TitleBlock, int) {
	title := types.TitleBlock{Contacts: []string{}}

	first := -1
	for i, line := range lines {
		if strings.TrimSpace(line) != "" {
			first = i
			break
		}
	}
	if first < 0 || !LooksLikeName(lines[first]) {
		return title, 0
	}
	title.Name = collapse(lines[first])

	seen := make(map[string]bool)
	consumed := first + 1
	for ; consumed < len(lines); consumed++ {
		line := strings.TrimSpace(lines[consumed])
		if line == "" {
			continue
		}
		if IsBullet(line) {
			break
		}
		if _, ok := DetectHeading(line, opts); ok {
			break
		}
		if isContactLine(line) {
			for _, contact := range contactSplitter.Split(line, -1) {
				contact = strings.TrimSpace(contact)
				if contact == "" || len(contact) > 80 || seen[contact] || len(title.Contacts) >= maxContacts {
					continue
				}
				seen[contact] = true
				title.Contacts = append(title.Contacts, contact)
			}
			continue
		}
		if title.Subtitle == "" && len(line) <= 80 {
			title.Subtitle = collapse(line)
			continue
		}
		break
	}

	return title, consumed
}

// LooksLikeName: 2-5 words, 2-60 chars, no digits or '@', not a known heading
func LooksLikeName(line string) bool {
	trimmed := collapse(line)
	if len(trimmed) < 2 || len(trimmed) > 60 {
		return false
	}
	words := len(strings.Fields(trimmed))
	if words < 2 || words > 5 {
		return false
	}
	if digitPattern.MatchString(trimmed) || strings.Contains(trimmed, "@") {
		return false
	}
	_, alias := AliasHeading(trimmed)
	return !alias
}

func isContactLine(line string) bool {
	return strings.Contains(line, "@") || urlPattern.MatchString(line) || threeDigitRun.MatchString(line)
}
