package plaintext

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDetectHeading(t *testing.T) {
	tests := []struct {
		name   string
		line   string
		opts   Options
		want   string
		wantOK bool
	}{
		{"alias lowercase", "experience", Options{}, "Experience", true},
		{"alias with spacing and punctuation", "Work  Experience:", Options{}, "Experience", true},
		{"alias profile maps to summary", "PROFILE", Options{}, "Summary", true},
		{"caps heading title cased", "OPEN SOURCE", Options{}, "Open Source", true},
		{"caps too many words", "THIS IS A LONG CAPS LINE", Options{}, "", false},
		{"mixed case sentence", "Built a thing for customers", Options{}, "", false},
		{"colon heading only when strict", "Tools I use:", Options{}, "", false},
		{"colon heading strict", "Tools I use:", Options{ColonHeadings: true}, "Tools I use", true},
		{"bullet is never a heading", "- AWS", Options{}, "", false},
		{"empty", "   ", Options{}, "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := DetectHeading(tt.line, tt.opts)
			assert.Equal(t, tt.wantOK, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestBulletText(t *testing.T) {
	assert.True(t, IsBullet("  • Led migration"))
	assert.True(t, IsBullet("2) Second"))
	assert.False(t, IsBullet("-not a bullet"))
	assert.Equal(t, "Led migration", BulletText("  • Led   migration"))
	assert.Equal(t, "Second", BulletText("2) Second"))
}

func TestDeriveRenderPayloadFromResumeText_PlainText(t *testing.T) {
	payload := DeriveRenderPayloadFromResumeText("JOHN SMITH\njohn@x.com\nEXPERIENCE\n- Did a thing\n- Did another thing")

	assert.Equal(t, "JOHN SMITH", payload.Title.Name)
	assert.Equal(t, []string{"john@x.com"}, payload.Title.Contacts)
	require.Len(t, payload.Sections, 1)
	assert.Equal(t, "Experience", payload.Sections[0].Heading)
	require.Len(t, payload.Sections[0].Items, 1)
	item := payload.Sections[0].Items[0]
	assert.True(t, item.IsBullets())
	assert.Equal(t, []string{"Did a thing", "Did another thing"}, item.Bullets)
}

func TestDeriveRenderPayloadFromResumeText_Empty(t *testing.T) {
	payload := DeriveRenderPayloadFromResumeText("")

	assert.Equal(t, PlaceholderName, payload.Title.Name)
	require.Len(t, payload.Sections, 1)
	assert.Equal(t, OverviewHeading, payload.Sections[0].Heading)
	require.Len(t, payload.Sections[0].Items, 1)
	assert.Equal(t, PlaceholderParagraph, payload.Sections[0].Items[0].Text)
}

func TestDeriveRenderPayloadFromResumeText_NoHeadings(t *testing.T) {
	payload := DeriveRenderPayloadFromResumeText("just some words\nand more words")

	require.Len(t, payload.Sections, 1)
	assert.Equal(t, OverviewHeading, payload.Sections[0].Heading)
	assert.Equal(t, "just some words\nand more words", payload.Sections[0].Items[0].Text)
}

func TestDeriveRenderPayloadFromResumeText_Latex(t *testing.T) {
	src := `\documentclass{article}
\begin{document}
\name{Grace Hopper}
grace@navy.mil
\section{Skills}
\begin{itemize}
\item COBOL
\end{itemize}
\end{document}`

	payload := DeriveRenderPayloadFromResumeText(src)

	assert.Equal(t, "GRACE HOPPER", payload.Title.Name)
	assert.Equal(t, []string{"grace@navy.mil"}, payload.Title.Contacts)
	require.Len(t, payload.Sections, 1)
	assert.Equal(t, []string{"COBOL"}, payload.Sections[0].Items[0].Bullets)
}

func TestInferSectionsFromText_EntriesAndParagraphs(t *testing.T) {
	text := `Seasoned engineer with a focus on reliability.

EXPERIENCE
Acme Corp | Staff Engineer | 2020 - 2024
- Cut latency by 40%
  across all regions
- Mentored five engineers
Globex – Engineer
* Built billing

SKILLS
Go, PostgreSQL, Kubernetes`

	sections := InferSectionsFromText(text)

	require.Len(t, sections, 3)
	assert.Equal(t, "Summary", sections[0].Heading)
	assert.Equal(t, "Seasoned engineer with a focus on reliability.", sections[0].Items[0].Text)

	exp := sections[1]
	assert.Equal(t, "Experience", exp.Heading)
	require.Len(t, exp.Items, 2)
	assert.Equal(t, "Acme Corp", exp.Items[0].Title)
	assert.Equal(t, "Staff Engineer", exp.Items[0].Subtitle)
	assert.Equal(t, "2020 - 2024", exp.Items[0].Meta)
	assert.Equal(t, []string{"Cut latency by 40% across all regions", "Mentored five engineers"}, exp.Items[0].Bullets)
	assert.Equal(t, "Globex", exp.Items[1].Title)
	assert.Equal(t, "Engineer", exp.Items[1].Subtitle)
	assert.Equal(t, []string{"Built billing"}, exp.Items[1].Bullets)

	skills := sections[2]
	assert.Equal(t, "Skills", skills.Heading)
	assert.True(t, skills.Items[0].IsParagraph())

	ids := map[string]bool{}
	for _, s := range sections {
		assert.False(t, ids[s.ID], "duplicate id %s", s.ID)
		ids[s.ID] = true
	}
}

func TestParseResumePlainText(t *testing.T) {
	text := `Jane Q Public
Senior Platform Engineer
jane@example.com | (555) 010-2000 | github.com/jane | jane@example.com
Highlights:
- Scaled the platform`

	payload := ParseResumePlainText(text)

	assert.Equal(t, "Jane Q Public", payload.Title.Name)
	assert.Equal(t, "Senior Platform Engineer", payload.Title.Subtitle)
	assert.Equal(t, []string{"jane@example.com", "(555) 010-2000", "github.com/jane"}, payload.Title.Contacts)
	require.Len(t, payload.Sections, 1)
	assert.Equal(t, "Highlights", payload.Sections[0].Heading)
	assert.Equal(t, []string{"Scaled the platform"}, payload.Sections[0].Items[0].Bullets)
}

func TestParseResumePlainText_FallbackSummary(t *testing.T) {
	payload := ParseResumePlainText("a short note")

	require.Len(t, payload.Sections, 1)
	assert.Equal(t, "Summary", payload.Sections[0].Heading)
	assert.Equal(t, "a short note", payload.Sections[0].Items[0].Text)
}

func TestLooksLikeName(t *testing.T) {
	assert.True(t, LooksLikeName("Ada Lovelace"))
	assert.False(t, LooksLikeName("Ada"))
	assert.False(t, LooksLikeName("R2 D2"))
	assert.False(t, LooksLikeName("Work Experience"))
}
