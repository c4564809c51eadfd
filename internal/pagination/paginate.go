package pagination

import (
	"fmt"

	"github.com/atsresumie/latex-studio/internal/types"
)

// Layout is the paginated form of a payload
type Layout struct {
	Metrics PageMetrics `json:"metrics"`
	Pages   [][]Block   `json:"pages"`
}

// SplitBulletBlock splits a bullets block that does not fit on one page into
// chunks that each fit. Chunks after the first are marked continued and carry
// no header fields. A block that fits, or has at most one bullet, is returned
// unchanged.
func SplitBulletBlock(block Block, payload types.RenderPayload, m PageMetrics) []Block {
	if len(block.Bullets) <= 1 || EstimateBlockHeight(block, payload, m) <= m.UsableHeightPx {
		return []Block{block}
	}

	var chunks []Block
	candidate := block
	candidate.Bullets = nil

	for _, bullet := range block.Bullets {
		trial := candidate
		trial.Bullets = append(append([]string(nil), candidate.Bullets...), bullet)
		if len(candidate.Bullets) > 0 && EstimateBlockHeight(trial, payload, m) > m.UsableHeightPx {
			chunks = append(chunks, candidate)
			candidate = Block{
				ID:        fmt.Sprintf("%s-part-%d", block.ID, len(chunks)+1),
				Kind:      BlockBullets,
				SectionID: block.SectionID,
				Bullets:   []string{bullet},
				Continued: true,
			}
			continue
		}
		candidate = trial
	}
	if len(candidate.Bullets) > 0 {
		chunks = append(chunks, candidate)
	}

	if len(chunks) == 0 {
		return []Block{block}
	}
	return chunks
}

// PaginateBlocks greedily packs blocks into pages. A section heading moves to
// the next page when it would not fit together with the block after it. The
// first block on a page is always placed, even when it overflows. The result
// always has at least one page.
func PaginateBlocks(blocks []Block, payload types.RenderPayload, m PageMetrics) [][]Block {
	pages := [][]Block{{}}
	used := 0.0

	newPage := func() {
		pages = append(pages, []Block{})
		used = 0
	}
	place := func(block Block, height float64) {
		if used > 0 && used+height > m.UsableHeightPx {
			newPage()
		}
		pages[len(pages)-1] = append(pages[len(pages)-1], block)
		used += height
	}

	for i, block := range blocks {
		switch block.Kind {
		case BlockSectionHeading:
			height := EstimateBlockHeight(block, payload, m)
			next := 0.0
			if i+1 < len(blocks) {
				next = EstimateBlockHeight(blocks[i+1], payload, m)
			}
			if used > 0 && used+height+next > m.UsableHeightPx {
				newPage()
			}
			pages[len(pages)-1] = append(pages[len(pages)-1], block)
			used += height

		case BlockBullets:
			for _, chunk := range SplitBulletBlock(block, payload, m) {
				place(chunk, EstimateBlockHeight(chunk, payload, m))
			}

		default:
			place(block, EstimateBlockHeight(block, payload, m))
		}
	}

	return pages
}

// Paginate derives metrics from settings and paginates the payload
func Paginate(payload types.RenderPayload, settings EditorSettings) Layout {
	m := NewMetrics(settings)
	return Layout{
		Metrics: m,
		Pages:   PaginateBlocks(BuildBlocks(payload), payload, m),
	}
}
