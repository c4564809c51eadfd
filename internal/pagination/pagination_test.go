package pagination

import (
	"fmt"
	"math/rand"
	"strings"
	"testing"

	"github.com/atsresumie/latex-studio/internal/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fixedMetrics gives round numbers so expected heights are easy to compute
func fixedMetrics(usable float64) PageMetrics {
	return PageMetrics{
		UsableHeightPx:  usable,
		CharsPerLine:    40,
		BaseFontSize:    16,
		LineHeightPx:    20,
		HeadingFontSize: 20,
		Spacing:         Spacing{ParagraphGap: 8, BulletGap: 4, HeadingBottomGap: 6},
	}
}

func TestNewMetrics(t *testing.T) {
	m := NewMetrics(DefaultEditorSettings())

	assert.Equal(t, 816.0, m.PageWidthPx)
	assert.Equal(t, 1056.0, m.PageHeightPx)
	assert.Equal(t, 72.0, m.MarginPx)
	assert.Equal(t, 672.0, m.UsableWidthPx)
	assert.Equal(t, 912.0, m.UsableHeightPx)
	assert.Equal(t, 92, m.CharsPerLine)
	assert.InDelta(t, 19.6, m.LineHeightPx, 1e-9)
	assert.InDelta(t, 17.5, m.HeadingFontSize, 1e-9)
	assert.Equal(t, densitySpacing[DensityBalanced], m.Spacing)
}

func TestNewMetrics_A4AndDensity(t *testing.T) {
	settings := DefaultEditorSettings()
	settings.PageSize = types.PageA4
	settings.Density = DensityAiry

	m := NewMetrics(settings)

	assert.InDelta(t, 793.7, m.PageWidthPx, 0.01)
	assert.InDelta(t, 1122.52, m.PageHeightPx, 0.01)
	assert.Equal(t, 12.0, m.Spacing.ParagraphGap)
}

func TestEstimatedLines(t *testing.T) {
	assert.Equal(t, 0, EstimatedLines("   ", 40))
	assert.Equal(t, 1, EstimatedLines("short", 40))
	assert.Equal(t, 2, EstimatedLines(strings.Repeat("a", 41), 40))
	assert.Equal(t, 5, EstimatedLines("abcde", 0))
	assert.Equal(t, 1, EstimatedLines("a   \n  b", 3))
}

func TestEstimateBlockHeight(t *testing.T) {
	m := fixedMetrics(1000)
	payload := types.RenderPayload{Title: types.TitleBlock{
		Name:     "Jo Doe",
		Subtitle: "Engineer",
		Contacts: []string{"jo@x.com", "555-0100"},
	}}

	// name 1 line * 1.15 * 20, subtitle 1 line, contacts 1 line, pad 14
	assert.InDelta(t, 23+20+20+14, EstimateBlockHeight(Block{Kind: BlockTitle}, payload, m), 1e-9)
	assert.Equal(t, 35.0, EstimateBlockHeight(Block{Kind: BlockSectionHeading}, payload, m))
	assert.Equal(t, 2*20+8.0, EstimateBlockHeight(Block{Kind: BlockParagraph, Text: strings.Repeat("x", 50)}, payload, m))

	bullets := Block{Kind: BlockBullets, Title: "Acme", Meta: "2020", Bullets: []string{"one", strings.Repeat("y", 40)}}
	// header 2 lines, bullets 1 + 2 lines at 34 cpl, one gap, paragraph gap + 6
	assert.Equal(t, 5*20+4+8+6.0, EstimateBlockHeight(bullets, payload, m))
}

func TestSplitBulletBlock(t *testing.T) {
	m := fixedMetrics(150)
	m.Spacing = Spacing{}
	long := strings.Repeat("b", 50) // two lines at 34 cpl, 40px each
	block := Block{ID: "exp-0-item-0", Kind: BlockBullets, SectionID: "exp-0", Title: "Acme"}
	for i := 0; i < 6; i++ {
		block.Bullets = append(block.Bullets, fmt.Sprintf("%s%d", long[:49], i))
	}

	chunks := SplitBulletBlock(block, types.RenderPayload{}, m)

	require.Len(t, chunks, 2)
	var all []string
	for i, chunk := range chunks {
		assert.LessOrEqual(t, EstimateBlockHeight(chunk, types.RenderPayload{}, m), 150.0)
		all = append(all, chunk.Bullets...)
		if i > 0 {
			assert.True(t, chunk.Continued)
			assert.Empty(t, chunk.Title)
			assert.Equal(t, fmt.Sprintf("exp-0-item-0-part-%d", i+1), chunk.ID)
		}
	}
	assert.Equal(t, "Acme", chunks[0].Title)
	assert.False(t, chunks[0].Continued)
	assert.Equal(t, block.Bullets, all)
}

func TestSplitBulletBlock_NoSplitNeeded(t *testing.T) {
	m := fixedMetrics(1000)
	block := Block{ID: "b", Kind: BlockBullets, Bullets: []string{"a", "b"}}
	assert.Equal(t, []Block{block}, SplitBulletBlock(block, types.RenderPayload{}, m))

	single := Block{ID: "c", Kind: BlockBullets, Bullets: []string{strings.Repeat("z", 5000)}}
	assert.Equal(t, []Block{single}, SplitBulletBlock(single, types.RenderPayload{}, fixedMetrics(10)))
}

func TestPaginateBlocks_Empty(t *testing.T) {
	pages := PaginateBlocks(nil, types.RenderPayload{}, fixedMetrics(100))
	require.Len(t, pages, 1)
	assert.Empty(t, pages[0])
}

func TestPaginateBlocks_HeadingNotOrphaned(t *testing.T) {
	m := fixedMetrics(300)
	m.CharsPerLine = 50
	para := strings.Repeat("p", 150) // three lines: 68px
	payload := types.RenderPayload{
		Title: types.TitleBlock{Name: "Jo Doe"},
		Sections: []types.Section{
			{ID: "a-0", Heading: "A", Items: []types.SectionItem{types.NewParagraphItem(para), types.NewParagraphItem(para)}},
			{ID: "b-1", Heading: "B", Items: []types.SectionItem{types.NewParagraphItem(para)}},
		},
	}

	pages := PaginateBlocks(BuildBlocks(payload), payload, m)

	require.Len(t, pages, 2)
	require.Len(t, pages[0], 4)
	assert.Equal(t, "a-0-item-1", pages[0][3].ID)
	assert.Equal(t, BlockSectionHeading, pages[1][0].Kind)
	assert.Equal(t, "B", pages[1][0].Heading)
	assert.Equal(t, "b-1-item-0", pages[1][1].ID)
}

func TestPaginateBlocks_OversizedBlockStillPlaced(t *testing.T) {
	m := fixedMetrics(50)
	payload := types.RenderPayload{Sections: []types.Section{
		{ID: "s-0", Heading: "S", Items: []types.SectionItem{types.NewParagraphItem(strings.Repeat("w", 400))}},
	}}

	pages := PaginateBlocks(BuildBlocks(payload), payload, m)

	for _, page := range pages {
		assert.NotEmpty(t, page)
	}
}

func randomPayload(r *rand.Rand) types.RenderPayload {
	payload := types.RenderPayload{Title: types.TitleBlock{Name: "Random Person", Contacts: []string{"r@x.com"}}}
	for s := 0; s < 1+r.Intn(5); s++ {
		section := types.Section{ID: fmt.Sprintf("s-%d", s), Heading: fmt.Sprintf("Section %d", s)}
		for i := 0; i < 1+r.Intn(4); i++ {
			if r.Intn(3) == 0 {
				section.Items = append(section.Items, types.NewParagraphItem(strings.Repeat("word ", 1+r.Intn(80))))
				continue
			}
			var bullets []string
			for b := 0; b < 1+r.Intn(25); b++ {
				bullets = append(bullets, fmt.Sprintf("s%d-i%d-b%d %s", s, i, b, strings.Repeat("x", r.Intn(200))))
			}
			section.Items = append(section.Items, types.NewBulletsItem("Title", "", "", bullets))
		}
		payload.Sections = append(payload.Sections, section)
	}
	return payload
}

func TestPaginate_PreservesOrderAndBullets(t *testing.T) {
	r := rand.New(rand.NewSource(42))
	densities := []Density{DensityCompact, DensityBalanced, DensityAiry}

	for run := 0; run < 50; run++ {
		payload := randomPayload(r)
		settings := DefaultEditorSettings()
		settings.Density = densities[run%len(densities)]
		settings.BaseFontSize = 10 + float64(r.Intn(10))

		layout := Paginate(payload, settings)
		require.NotEmpty(t, layout.Pages)

		var wantBullets, gotBullets []string
		for _, section := range payload.Sections {
			for _, item := range section.Items {
				wantBullets = append(wantBullets, item.Bullets...)
			}
		}

		var order []string
		seen := map[string]bool{}
		for _, page := range layout.Pages {
			for _, block := range page {
				gotBullets = append(gotBullets, block.Bullets...)
				assert.False(t, seen[block.ID], "duplicate block id %s", block.ID)
				seen[block.ID] = true
				if block.Kind != BlockBullets || !block.Continued {
					order = append(order, block.ID)
				}
			}
		}

		var wantOrder []string
		for _, block := range BuildBlocks(payload) {
			wantOrder = append(wantOrder, block.ID)
		}

		assert.Equal(t, wantBullets, gotBullets)
		assert.Equal(t, wantOrder, order)
	}
}
