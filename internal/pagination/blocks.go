package pagination

import (
	"fmt"

	"github.com/atsresumie/latex-studio/internal/types"
)

// BlockKind identifies a flattened render block
type BlockKind string

// Block kinds in render order
const (
	BlockTitle          BlockKind = "title"
	BlockSectionHeading BlockKind = "section-heading"
	BlockParagraph      BlockKind = "paragraph"
	BlockBullets        BlockKind = "bullets"
)

// Block is one flattened unit of layout. Blocks are never mutated after
// construction; splitting produces new blocks.
type Block struct {
	ID        string    `json:"id"`
	Kind      BlockKind `json:"type"`
	SectionID string    `json:"sectionId,omitempty"`
	Heading   string    `json:"heading,omitempty"`
	Text      string    `json:"text,omitempty"`
	Title     string    `json:"title,omitempty"`
	Subtitle  string    `json:"subtitle,omitempty"`
	Meta      string    `json:"meta,omitempty"`
	Bullets   []string  `json:"bullets,omitempty"`
	Continued bool      `json:"continued,omitempty"`
}

// BuildBlocks flattens a payload into render order: the title, then per section
// its heading followed by one block per item.
func BuildBlocks(payload types.RenderPayload) []Block {
	blocks := []Block{{ID: "title", Kind: BlockTitle}}

	for _, section := range payload.Sections {
		blocks = append(blocks, Block{
			ID:        section.ID + "-heading",
			Kind:      BlockSectionHeading,
			SectionID: section.ID,
			Heading:   section.Heading,
		})
		for i, item := range section.Items {
			id := fmt.Sprintf("%s-item-%d", section.ID, i)
			switch item.Type {
			case types.ItemParagraph:
				blocks = append(blocks, Block{
					ID:        id,
					Kind:      BlockParagraph,
					SectionID: section.ID,
					Text:      item.Text,
				})
			case types.ItemBullets:
				blocks = append(blocks, Block{
					ID:        id,
					Kind:      BlockBullets,
					SectionID: section.ID,
					Title:     item.Title,
					Subtitle:  item.Subtitle,
					Meta:      item.Meta,
					Bullets:   append([]string(nil), item.Bullets...),
				})
			}
		}
	}

	return blocks
}
