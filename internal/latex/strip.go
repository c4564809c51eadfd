// Package latex converts the constrained LaTeX dialect emitted by the resume
// generator into plain text and structured sections.
package latex

import (
	"regexp"
	"strings"
)

// The stripping pipeline runs in this order; later rules assume earlier ones fired.
var (
	commentPattern    = regexp.MustCompile(`(?m)%.*$`)
	formattingPattern = regexp.MustCompile(`\\(?:textbf|textit|underline|emph|textsc)\{([^{}]*)\}`)
	hrefPattern       = regexp.MustCompile(`\\href\{[^{}]*\}\{([^{}]*)\}`)
	hspacePattern     = regexp.MustCompile(`\\hspace\*?\{[^{}]*\}`)
	vspacePattern     = regexp.MustCompile(`\\vspace\*?\{[^{}]*\}`)
	lineBreakPattern  = regexp.MustCompile(`\\\\(?:\[[^\]]*\])?|\\newline\b`)
	// Consumes a single brace group only: `\cmd{a}{b}` leaves `{b}` behind.
	commandPattern = regexp.MustCompile(`\\[a-zA-Z]*\*?(?:\[[^\]]*\])?(?:\{[^{}]*\})?`)
	bracePattern   = regexp.MustCompile(`[{}]`)
	hspaceRun      = regexp.MustCompile(`[ \t]+`)
	lineEdgeSpaces = regexp.MustCompile(`[ \t]*\n[ \t]*`)
	blankLineRun   = regexp.MustCompile(`\n{3,}`)
	whitespaceRun  = regexp.MustCompile(`\s+`)
)

// StripCommands removes LaTeX syntax from text and returns the remaining prose.
//
// Comment stripping does not exempt `\%`, so everything after an escaped percent
// sign on the same line is dropped as well.
func StripCommands(text string) string {
	if text == "" {
		return ""
	}

	out := commentPattern.ReplaceAllString(text, "")
	out = unwrapInline(out)
	out = hspacePattern.ReplaceAllString(out, " ")
	out = vspacePattern.ReplaceAllString(out, "\n")
	out = lineBreakPattern.ReplaceAllString(out, "\n")
	out = commandPattern.ReplaceAllString(out, "")
	out = bracePattern.ReplaceAllString(out, "")

	out = hspaceRun.ReplaceAllString(out, " ")
	out = lineEdgeSpaces.ReplaceAllString(out, "\n")
	out = blankLineRun.ReplaceAllString(out, "\n\n")
	return strings.TrimSpace(out)
}

// unwrapInline repeats the formatting and \href rules together until nested
// commands such as \textbf{\textit{x}} or \textbf{\href{u}{x}} are fully unwrapped.
func unwrapInline(text string) string {
	for i := 0; i < 8; i++ {
		next := formattingPattern.ReplaceAllString(text, "$1")
		next = hrefPattern.ReplaceAllString(next, "$1")
		if next == text {
			return next
		}
		text = next
	}
	return text
}

// StripInline strips commands and collapses every whitespace run (including
// newlines) into a single space. Used for one-line fields such as headings.
func StripInline(text string) string {
	return CollapseWhitespace(StripCommands(text))
}

// CollapseWhitespace collapses whitespace runs to one space and trims the result
func CollapseWhitespace(text string) string {
	return strings.TrimSpace(whitespaceRun.ReplaceAllString(text, " "))
}
