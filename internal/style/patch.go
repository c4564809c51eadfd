package style

import (
	"regexp"
	"strings"
)

// Document applies patches to LaTeX source. Injected regions are
// identified by marker comments so they can be replaced rather than duplicated.
type Document struct {
	src string
}

// NewDocument wraps source text for patching
func NewDocument(src string) *Document {
	return &Document{src: src}
}

// String returns the patched source
func (d *Document) String() string {
	return d.src
}

// RemoveBlock deletes every line from the one containing start through the one
// containing end, inclusive. A start marker without a matching end is left alone.
func (d *Document) RemoveBlock(start, end string) *Document {
	for {
		s := strings.Index(d.src, start)
		if s < 0 {
			return d
		}
		e := strings.Index(d.src[s:], end)
		if e < 0 {
			return d
		}
		from := lineStart(d.src, s)
		to := lineEnd(d.src, s+e+len(end))
		d.src = d.src[:from] + d.src[to:]
	}
}

// RemoveMarkedLines deletes every line containing marker
func (d *Document) RemoveMarkedLines(marker string) *Document {
	return d.RewriteLines(func(line string) (string, bool) {
		if strings.Contains(line, marker) {
			return "", false
		}
		return line, true
	})
}

// RemoveCommands deletes every match of pattern. Lines left blank by a removal
// are dropped entirely.
func (d *Document) RemoveCommands(pattern *regexp.Regexp) *Document {
	return d.ReplaceCommands(pattern, func(string) string { return "" })
}

// removedMark stands in for a deleted match until blank lines are swept
const removedMark = "\x00"

// ReplaceCommands substitutes every match of pattern using repl. Matches may
// span lines. Lines left blank by a removal are dropped entirely.
func (d *Document) ReplaceCommands(pattern *regexp.Regexp, repl func(match string) string) *Document {
	if !pattern.MatchString(d.src) {
		return d
	}
	d.src = pattern.ReplaceAllStringFunc(d.src, func(match string) string {
		out := repl(match)
		if strings.TrimSpace(out) == "" {
			return removedMark
		}
		return out
	})
	return d.RewriteLines(func(line string) (string, bool) {
		if !strings.Contains(line, removedMark) {
			return line, true
		}
		out := strings.ReplaceAll(line, removedMark, "")
		return out, strings.TrimSpace(out) != ""
	})
}

// RewriteLines maps every line through fn; lines for which fn reports false are dropped
func (d *Document) RewriteLines(fn func(line string) (string, bool)) *Document {
	lines := strings.SplitAfter(d.src, "\n")
	var b strings.Builder
	b.Grow(len(d.src))
	for _, line := range lines {
		body := strings.TrimSuffix(line, "\n")
		out, keep := fn(body)
		if !keep {
			continue
		}
		b.WriteString(out)
		if len(body) != len(line) {
			b.WriteByte('\n')
		}
	}
	d.src = b.String()
	return d
}

// InsertAfter inserts text on its own line(s) directly after the first match of
// anchor. It reports false, leaving the document unchanged, when anchor is absent.
func (d *Document) InsertAfter(anchor *regexp.Regexp, text string) bool {
	loc := anchor.FindStringIndex(d.src)
	if loc == nil {
		return false
	}
	at := loc[1]
	insert := "\n" + text
	if at >= len(d.src) || d.src[at] != '\n' {
		insert += "\n"
	}
	d.src = d.src[:at] + insert + d.src[at:]
	return true
}

// Contains reports whether the document contains s
func (d *Document) Contains(s string) bool {
	return strings.Contains(d.src, s)
}

func lineStart(s string, i int) int {
	return strings.LastIndexByte(s[:i], '\n') + 1
}

func lineEnd(s string, i int) int {
	if j := strings.IndexByte(s[i:], '\n'); j >= 0 {
		return i + j + 1
	}
	return len(s)
}
