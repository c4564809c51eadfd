package prompts

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGet_ValidPrompt(t *testing.T) {
	ClearCache()

	prompt, err := Get("generation.json", "tailor-latex")
	require.NoError(t, err)
	assert.Contains(t, prompt, `\documentclass`)
}

func TestGet_InvalidFile(t *testing.T) {
	ClearCache()

	_, err := Get("nonexistent.json", "some-key")
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "failed to read prompt file")
}

func TestGet_InvalidKey(t *testing.T) {
	ClearCache()

	_, err := Get("generation.json", "nonexistent-key")
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "not found")
}

func TestMustGet_Panics(t *testing.T) {
	ClearCache()

	assert.Panics(t, func() {
		MustGet("nonexistent.json", "some-key")
	})
}

func TestRender(t *testing.T) {
	out, err := Render("generation.json", "tailor-latex", map[string]string{
		"ResumeText":     "Jane Doe\nEngineer",
		"JobDescription": "Senior Go developer",
		"Instructions":   "Keep it to one page",
	})
	require.NoError(t, err)
	assert.Contains(t, out, "Senior Go developer")
	assert.Contains(t, out, "Jane Doe\nEngineer")
	assert.Contains(t, out, "Keep it to one page")
	assert.NotContains(t, out, "{{")
}

func TestRender_OmitsEmptyInstructions(t *testing.T) {
	out, err := Render("generation.json", "tailor-latex", map[string]string{
		"ResumeText":     "r",
		"JobDescription": "j",
		"Instructions":   "",
	})
	require.NoError(t, err)
	assert.NotContains(t, out, "Additional instructions")
}

func TestRender_MissingKey(t *testing.T) {
	_, err := Render("generation.json", "repair-latex", map[string]string{"Latex": "x"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to render prompt")
}

func TestList(t *testing.T) {
	keys, err := List("generation.json")
	require.NoError(t, err)
	assert.Equal(t, []string{"repair-latex", "tailor-latex"}, keys)
}
