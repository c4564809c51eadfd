package main

import (
	"bytes"
	"encoding/json"
	"image"
	"image/jpeg"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/atsresumie/latex-studio/internal/config"
	"github.com/atsresumie/latex-studio/internal/logging"
	"github.com/atsresumie/latex-studio/internal/pdfbin"
	"github.com/atsresumie/latex-studio/internal/style"
	"github.com/atsresumie/latex-studio/internal/types"
)

// TestMain runs before all tests and loads .env if available
func TestMain(m *testing.M) {
	_ = godotenv.Load()
	logging.SetOutput(io.Discard)
	os.Exit(m.Run())
}

const resumeTex = `\documentclass[11pt]{article}
\begin{document}
\begin{center}
\textbf{\Huge Jane Doe} \\
jane@example.com $|$ 555-123-4567
\end{center}
\section{Summary}
Builder of \textbf{reliable} systems.
\section{Experience}
\resumeSubheading{Acme Corp}{2020 -- 2023}{Senior Engineer}{Remote}
\resumeItemListStart
\resumeItem{Shipped things}
\resumeItemListEnd
\end{document}
`

// resetFlags restores every flag to its default so commands can run repeatedly in one process
func resetFlags(cmd *cobra.Command) {
	reset := func(f *pflag.Flag) {
		_ = f.Value.Set(f.DefValue)
		f.Changed = false
	}
	cmd.Flags().VisitAll(reset)
	cmd.PersistentFlags().VisitAll(reset)
	for _, c := range cmd.Commands() {
		resetFlags(c)
	}
}

func executeCommand(t *testing.T, stdin string, args ...string) (string, string, error) {
	t.Helper()
	t.Setenv("GEMINI_API_KEY", "")
	t.Setenv("DATABASE_URL", "")
	t.Setenv("REDIS_URL", "")
	resetFlags(rootCmd)

	var stdout, stderr bytes.Buffer
	rootCmd.SetIn(strings.NewReader(stdin))
	rootCmd.SetOut(&stdout)
	rootCmd.SetErr(&stderr)
	rootCmd.SetArgs(args)
	err := rootCmd.Execute()
	return stdout.String(), stderr.String(), err
}

func writeFile(t *testing.T, dir, name string, v any) string {
	t.Helper()
	path := filepath.Join(dir, name)
	var data []byte
	switch val := v.(type) {
	case string:
		data = []byte(val)
	default:
		var err error
		data, err = json.Marshal(val)
		require.NoError(t, err)
	}
	require.NoError(t, os.WriteFile(path, data, 0644))
	return path
}

func TestStripCommand(t *testing.T) {
	out, _, err := executeCommand(t, `\textbf{Hi} \textit{there}`, "strip")
	require.NoError(t, err)
	assert.Equal(t, "Hi there\n", out)
}

func TestExtractCommand(t *testing.T) {
	out, _, err := executeCommand(t, resumeTex, "extract")
	require.NoError(t, err)

	var resp struct {
		Sections []types.Section `json:"sections"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &resp))
	require.Len(t, resp.Sections, 2)
	assert.Equal(t, "Summary", resp.Sections[0].Heading)
}

func TestDeriveAndPaginate(t *testing.T) {
	dir := t.TempDir()
	payloadPath := filepath.Join(dir, "payload.json")

	_, stderr, err := executeCommand(t, resumeTex, "derive", "--out", payloadPath)
	require.NoError(t, err)
	assert.Contains(t, stderr, payloadPath)

	settings := writeFile(t, dir, "settings.json", map[string]any{"pageSize": "a4", "density": "compact"})
	out, _, err := executeCommand(t, "", "paginate", "--payload", payloadPath, "--settings", settings)
	require.NoError(t, err)

	var layout struct {
		Metrics map[string]any      `json:"metrics"`
		Pages   [][]json.RawMessage `json:"pages"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &layout))
	assert.NotEmpty(t, layout.Pages)

	_, stderr, err = executeCommand(t, "", "paginate", "--payload", payloadPath, "--verbose")
	require.NoError(t, err)
	assert.Contains(t, stderr, "PAGE LAYOUT")

	bad := writeFile(t, dir, "bad.json", map[string]any{"pageSize": "legal"})
	_, _, err = executeCommand(t, "", "paginate", "--payload", payloadPath, "--settings", bad)
	assert.Error(t, err)
}

func TestParseTextCommand(t *testing.T) {
	out, _, err := executeCommand(t, "JOHN SMITH\njohn@x.com\nEXPERIENCE\n- Did a thing", "parse-text")
	require.NoError(t, err)

	var payload types.RenderPayload
	require.NoError(t, json.Unmarshal([]byte(out), &payload))
	assert.Equal(t, "JOHN SMITH", payload.Title.Name)
}

func TestStyleCommands(t *testing.T) {
	dir := t.TempDir()
	cfg := types.DefaultStyleConfig()
	cfg.PageSize = types.PageA4
	cfg.FontFamily = types.FontCharter
	stylePath := writeFile(t, dir, "style.json", cfg)
	input := writeFile(t, dir, "resume.tex", resumeTex)

	styled, _, err := executeCommand(t, "", "style", "apply", "--in", input, "--style", stylePath)
	require.NoError(t, err)
	assert.Equal(t, style.Apply(resumeTex, cfg), styled)

	out, _, err := executeCommand(t, styled, "style", "parse")
	require.NoError(t, err)
	var parsed types.StyleConfig
	require.NoError(t, json.Unmarshal([]byte(out), &parsed))
	assert.Equal(t, types.PageA4, parsed.PageSize)
	assert.Equal(t, types.FontCharter, parsed.FontFamily)

	_, stderr, err := executeCommand(t, styled, "style", "parse", "-v")
	require.NoError(t, err)
	assert.Contains(t, stderr, "charter")

	out, _, err = executeCommand(t, styled, "style", "validate")
	require.NoError(t, err)
	assert.Equal(t, "valid\n", out)

	_, _, err = executeCommand(t, "plain words", "style", "validate")
	assert.ErrorContains(t, err, `missing \documentclass`)

	_, _, err = executeCommand(t, resumeTex, "style", "apply")
	assert.Error(t, err, "--style is required")

	cfg.LineHeight = 9
	badStyle := writeFile(t, dir, "bad-style.json", cfg)
	_, _, err = executeCommand(t, resumeTex, "style", "apply", "--style", badStyle)
	assert.Error(t, err)
}

func TestRenderLaTeXCommand(t *testing.T) {
	dir := t.TempDir()
	payload := types.RenderPayload{
		Title:    types.TitleBlock{Name: "Jane Doe", Contacts: []string{"jane@example.com"}},
		Sections: []types.Section{{ID: "summary-0", Heading: "Summary", Items: []types.SectionItem{types.NewParagraphItem("Builds 100% reliable things")}}},
	}
	payloadPath := writeFile(t, dir, "payload.json", payload)

	out, _, err := executeCommand(t, "", "render-latex", "--payload", payloadPath)
	require.NoError(t, err)
	assert.True(t, style.Validate(out).Valid)
	assert.Contains(t, out, `100\%`)
}

func TestExportCommands(t *testing.T) {
	dir := t.TempDir()
	input := writeFile(t, dir, "resume.tex", resumeTex)

	docxPath := filepath.Join(dir, "out", "resume.docx")
	_, _, err := executeCommand(t, "", "export-docx", "--in", input, "--out", docxPath)
	require.NoError(t, err)
	data, err := os.ReadFile(docxPath)
	require.NoError(t, err)
	assert.Equal(t, "PK", string(data[:2]))

	txtPath := filepath.Join(dir, "resume.txt")
	_, _, err = executeCommand(t, "", "export-txt", "--in", input, "--out", txtPath)
	require.NoError(t, err)
	text, err := os.ReadFile(txtPath)
	require.NoError(t, err)
	assert.Contains(t, string(text), "- Shipped things")

	out, _, err := executeCommand(t, resumeTex, "export-txt", "--out", "-")
	require.NoError(t, err)
	assert.Contains(t, out, "EXPERIENCE")
}

func twoPagePDF(t *testing.T) []byte {
	t.Helper()
	var buf bytes.Buffer
	require.NoError(t, jpeg.Encode(&buf, image.NewRGBA(image.Rect(0, 0, 4, 4)), nil))
	img := pdfbin.PageImage{JPEG: buf.Bytes(), Width: 4, Height: 4}
	out, err := pdfbin.CreatePDFBinary([]pdfbin.PageImage{img, img}, types.PageLetter)
	require.NoError(t, err)
	return out
}

func TestCompileCommand(t *testing.T) {
	pdf := twoPagePDF(t)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/pdf")
		_, _ = w.Write(pdf)
	}))
	defer srv.Close()

	dir := t.TempDir()
	out := filepath.Join(dir, "resume.pdf")

	t.Setenv("COMPILER_URL", srv.URL)
	_, stderr, err := executeCommand(t, resumeTex, "compile", "--out", out)
	require.NoError(t, err)
	assert.Contains(t, stderr, "Pages: 2")
	written, err := os.ReadFile(out)
	require.NoError(t, err)
	assert.Equal(t, pdf, written)

	_, _, err = executeCommand(t, resumeTex, "compile", "--out", out, "--page-limit", "1")
	assert.ErrorContains(t, err, "limit is 1")

	t.Setenv("COMPILER_URL", "")
	_, _, err = executeCommand(t, resumeTex, "compile", "--out", out)
	assert.ErrorContains(t, err, "COMPILER_URL is required")
}

func TestExportBundleCommand(t *testing.T) {
	pdf := twoPagePDF(t)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write(pdf)
	}))
	defer srv.Close()
	t.Setenv("COMPILER_URL", srv.URL)

	dir := t.TempDir()
	_, _, err := executeCommand(t, resumeTex, "export-bundle", "--dir", dir, "--label", "Acme")
	require.NoError(t, err)

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	require.Len(t, entries, 3)
	for _, e := range entries {
		assert.True(t, strings.HasPrefix(e.Name(), "ATSResumie_Acme_"), e.Name())
	}
}

func TestGenerateCommand_RequiresAPIKey(t *testing.T) {
	dir := t.TempDir()
	resume := writeFile(t, dir, "resume.txt", "Jane Doe")
	job := writeFile(t, dir, "job.txt", "Go engineer")

	_, _, err := executeCommand(t, "", "generate", "--resume", resume, "--job", job)
	assert.ErrorContains(t, err, "GEMINI_API_KEY is required")

	_, _, err = executeCommand(t, "", "generate", "--resume", resume)
	assert.Error(t, err)
}

func TestHashKeyCommand(t *testing.T) {
	t.Setenv("BCRYPT_COST", "10")

	out, _, err := executeCommand(t, "service-secret\n", "hash-key")
	require.NoError(t, err)

	keys := &config.APIKeyConfig{Hashes: []string{strings.TrimSpace(out)}, BcryptCost: 10}
	assert.True(t, keys.Verify("service-secret"))
	assert.False(t, keys.Verify("other"))
}

func TestConfigFlag(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "studio.yaml", "log_level: debug\ncompiler_timeout_sec: 5\n")

	_, _, err := executeCommand(t, "x", "strip", "--config", path)
	require.NoError(t, err)
	assert.Equal(t, "debug", appConfig.LogLevel)
	assert.Equal(t, 5, appConfig.CompilerTimeoutSec)

	_, _, err = executeCommand(t, "x", "strip", "--log-format", "xml")
	assert.Error(t, err)
}

func TestNewAuth(t *testing.T) {
	t.Setenv("JWT_SECRET", "")
	t.Setenv("API_KEY_HASHES", "")
	auth, err := newAuth()
	require.NoError(t, err)
	assert.Nil(t, auth)

	t.Setenv("JWT_SECRET", "test-secret-key-for-jwt-signing-minimum-32-bytes")
	auth, err = newAuth()
	require.NoError(t, err)
	assert.NotNil(t, auth)

	t.Setenv("JWT_SECRET", "short")
	_, err = newAuth()
	assert.Error(t, err)
}
