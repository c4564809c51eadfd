// Package types provides type definitions for structured data used throughout the latex-studio system.
//
//nolint:revive // types is a standard Go package name pattern
package types

// Item type discriminators for SectionItem
const (
	ItemParagraph = "paragraph"
	ItemBullets   = "bullets"
)

// RenderPayload is the canonical structured resume document
type RenderPayload struct {
	Title    TitleBlock `json:"title"`
	Sections []Section  `json:"sections"`
}

// TitleBlock holds the candidate name line and contact strip
type TitleBlock struct {
	Name     string   `json:"name"`
	Subtitle string   `json:"subtitle,omitempty"`
	Contacts []string `json:"contacts"`
}

// Section is one headed block of resume content. IDs are unique within a payload.
type Section struct {
	ID      string        `json:"id"`
	Heading string        `json:"heading"`
	Items   []SectionItem `json:"items"`
}

// SectionItem is a tagged union of paragraph and bullets items.
// Paragraph items only use Text; bullets items use the header fields and Bullets.
type SectionItem struct {
	Type     string   `json:"type"`
	Text     string   `json:"text,omitempty"`
	Title    string   `json:"title,omitempty"`
	Subtitle string   `json:"subtitle,omitempty"`
	Meta     string   `json:"meta,omitempty"`
	Bullets  []string `json:"bullets,omitempty"`
}

// NewParagraphItem creates a paragraph item
func NewParagraphItem(text string) SectionItem {
	return SectionItem{Type: ItemParagraph, Text: text}
}

// NewBulletsItem creates a bullets item with optional header fields
func NewBulletsItem(title, subtitle, meta string, bullets []string) SectionItem {
	return SectionItem{
		Type:     ItemBullets,
		Title:    title,
		Subtitle: subtitle,
		Meta:     meta,
		Bullets:  bullets,
	}
}

// IsParagraph reports whether the item is a paragraph
func (i SectionItem) IsParagraph() bool {
	return i.Type == ItemParagraph
}

// IsBullets reports whether the item is a bullets entry
func (i SectionItem) IsBullets() bool {
	return i.Type == ItemBullets
}

// HasHeader reports whether a bullets item carries any header field
func (i SectionItem) HasHeader() bool {
	return i.Title != "" || i.Subtitle != "" || i.Meta != ""
}

// BulletCount returns the total number of bullets across all sections
func (p *RenderPayload) BulletCount() int {
	count := 0
	for _, section := range p.Sections {
		for _, item := range section.Items {
			count += len(item.Bullets)
		}
	}
	return count
}
