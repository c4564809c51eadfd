// Package plaintext infers a structured resume payload from unformatted resume text.
package plaintext

import (
	"regexp"
	"strings"
	"unicode"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Options selects the heading rules of a parser variant
type Options struct {
	// ColonHeadings also treats short lines ending in ':' as headings
	ColonHeadings bool
}

var headingAliases = map[string]string{
	"summary":                   "Summary",
	"profile":                   "Summary",
	"objective":                 "Summary",
	"professionalsummary":       "Summary",
	"careersummary":             "Summary",
	"careerobjective":           "Summary",
	"aboutme":                   "Summary",
	"experience":                "Experience",
	"workexperience":            "Experience",
	"professionalexperience":    "Experience",
	"relevantexperience":        "Experience",
	"employment":                "Experience",
	"employmenthistory":         "Experience",
	"workhistory":               "Experience",
	"education":                 "Education",
	"academicbackground":        "Education",
	"educationalbackground":     "Education",
	"skills":                    "Skills",
	"technicalskills":           "Skills",
	"coreskills":                "Skills",
	"corecompetencies":          "Skills",
	"competencies":              "Skills",
	"projects":                  "Projects",
	"personalprojects":          "Projects",
	"selectedprojects":          "Projects",
	"keyprojects":               "Projects",
	"certifications":            "Certifications",
	"certificates":              "Certifications",
	"licensesandcertifications": "Certifications",
	"awards":                    "Awards",
	"honors":                    "Awards",
	"honorsandawards":           "Awards",
	"achievements":              "Awards",
	"publications":              "Publications",
	"volunteer":                 "Volunteer",
	"volunteering":              "Volunteer",
	"volunteerexperience":       "Volunteer",
	"languages":                 "Languages",
	"interests":                 "Interests",
	"hobbies":                   "Interests",
	"leadership":                "Leadership",
	"activities":                "Leadership",
	"references":                "References",
}

var (
	bulletPattern   = regexp.MustCompile(`^\s*(?:[-*•●◦▪]|\d+[.)])\s+`)
	nonLetterRun    = regexp.MustCompile(`[^a-z]+`)
	whitespaceRun   = regexp.MustCompile(`\s+`)
	digitPattern    = regexp.MustCompile(`\d`)
	threeDigitRun   = regexp.MustCompile(`\d{3}`)
	urlPattern      = regexp.MustCompile(`(?i)https?://|www\.|linkedin\.com|github\.com|\.[a-z]{2,4}/`)
	contactSplitter = regexp.MustCompile(`\s*(?:\||•|·|,|\s{2,})\s*`)
	titleCaser      = cases.Title(language.English)
)

// aliasKey normalizes a line for alias lookup: lowercase letters only
func aliasKey(line string) string {
	return nonLetterRun.ReplaceAllString(strings.ToLower(line), "")
}

// AliasHeading returns the canonical heading for a known alias
func AliasHeading(line string) (string, bool) {
	trimmed := strings.TrimSpace(line)
	if trimmed == "" || len(trimmed) > 40 {
		return "", false
	}
	canonical, ok := headingAliases[aliasKey(trimmed)]
	return canonical, ok
}

// DetectHeading reports whether line is a section heading and returns its display text
func DetectHeading(line string, opts Options) (string, bool) {
	trimmed := strings.TrimSpace(line)
	if trimmed == "" || IsBullet(trimmed) {
		return "", false
	}
	if canonical, ok := AliasHeading(trimmed); ok {
		return canonical, true
	}
	if isCapsHeading(trimmed) {
		return titleCaser.String(strings.TrimSuffix(trimmed, ":")), true
	}
	if opts.ColonHeadings && strings.HasSuffix(trimmed, ":") && len(trimmed) < 50 {
		if heading := strings.TrimSpace(strings.TrimSuffix(trimmed, ":")); heading != "" {
			return heading, true
		}
	}
	return "", false
}

// isCapsHeading: short, few words, and mostly uppercase letters
func isCapsHeading(line string) bool {
	if len(line) > 30 || len(strings.Fields(line)) > 4 {
		return false
	}
	letters, upper := 0, 0
	for _, r := range line {
		if unicode.IsLetter(r) {
			letters++
			if unicode.IsUpper(r) {
				upper++
			}
		}
	}
	return letters > 0 && float64(upper)/float64(letters) > 0.85
}

// IsBullet reports whether the line starts with a bullet or list-number prefix
func IsBullet(line string) bool {
	return bulletPattern.MatchString(line)
}

// BulletText strips the bullet prefix from a line
func BulletText(line string) string {
	return collapse(bulletPattern.ReplaceAllString(line, ""))
}

func collapse(text string) string {
	return strings.TrimSpace(whitespaceRun.ReplaceAllString(text, " "))
}
