package export

import (
	"strings"

	"github.com/atsresumie/latex-studio/internal/types"
)

// PlainText renders a payload as plain text: the title block, then each
// section heading in capitals followed by its items in order.
func PlainText(payload types.RenderPayload) string {
	var b strings.Builder

	if name := strings.TrimSpace(payload.Title.Name); name != "" {
		b.WriteString(name + "\n")
	}
	if sub := strings.TrimSpace(payload.Title.Subtitle); sub != "" {
		b.WriteString(sub + "\n")
	}
	if len(payload.Title.Contacts) > 0 {
		b.WriteString(strings.Join(payload.Title.Contacts, " | ") + "\n")
	}

	for _, section := range payload.Sections {
		if b.Len() > 0 {
			b.WriteString("\n")
		}
		b.WriteString(strings.ToUpper(section.Heading) + "\n")
		for _, item := range section.Items {
			if item.IsParagraph() {
				b.WriteString(item.Text + "\n")
				continue
			}
			if header := joinNonEmpty(" | ", item.Title, item.Subtitle, item.Meta); header != "" {
				b.WriteString(header + "\n")
			}
			for _, bullet := range item.Bullets {
				b.WriteString("- " + bullet + "\n")
			}
		}
	}

	return b.String()
}

func joinNonEmpty(sep string, parts ...string) string {
	var kept []string
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			kept = append(kept, p)
		}
	}
	return strings.Join(kept, sep)
}
