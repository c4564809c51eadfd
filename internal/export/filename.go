// Package export produces downloadable PDF, Word and plain-text artifacts.
package export

import (
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/atsresumie/latex-studio/internal/docx"
)

// Content types of the export formats
const (
	ContentTypePDF  = "application/pdf"
	ContentTypeDOCX = docx.ContentType
	ContentTypeText = "text/plain; charset=utf-8"
)

const maxLabelRunes = 60

var (
	forbiddenFilenameChars = regexp.MustCompile(`[/\\:*?"<>|]`)
	whitespaceRun          = regexp.MustCompile(`\s+`)
)

// SanitizeLabel makes a user label safe for filenames. Empty results fall back to "Resume".
func SanitizeLabel(label string) string {
	s := forbiddenFilenameChars.ReplaceAllString(label, "")
	s = whitespaceRun.ReplaceAllString(strings.TrimSpace(s), "_")
	if runes := []rune(s); len(runes) > maxLabelRunes {
		s = string(runes[:maxLabelRunes])
	}
	if s == "" {
		return "Resume"
	}
	return s
}

// Filename builds ATSResumie_<label>_<YYYY-MM-DD>.<ext>
func Filename(label, ext string, date time.Time) string {
	return fmt.Sprintf("ATSResumie_%s_%s.%s", SanitizeLabel(label), date.Format("2006-01-02"), strings.TrimPrefix(ext, "."))
}
