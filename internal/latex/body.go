package latex

import (
	"regexp"
	"strings"
)

// TokenKind identifies a structural element found in a section body
type TokenKind int

const (
	// TokenText is free text outside any list, already stripped of commands
	TokenText TokenKind = iota
	// TokenSubheading is a \resumeSubheading or \resumeProjectHeading header
	TokenSubheading
	// TokenEntry is a `\textbf{Title} \hfill Date` line (HFillEntries only)
	TokenEntry
	// TokenSubentry is a `\textit{Subtitle} \hfill Location` line (HFillEntries only)
	TokenSubentry
	// TokenBullet is one \item or \resumeItem
	TokenBullet
	// TokenListEnd marks the close of the outermost list
	TokenListEnd
)

// Token is one element of a scanned section body.
// Fields holds header arguments for subheadings and entries; Text holds
// bullet or paragraph text.
type Token struct {
	Kind   TokenKind
	Text   string
	Fields []string
}

// BodyOptions selects the optional idioms recognized by ScanBody
type BodyOptions struct {
	// HFillEntries recognizes \textbf{..} \hfill .. and \textit{..} \hfill .. lines outside lists
	HFillEntries bool
}

var (
	bodyTokenPattern = regexp.MustCompile(
		`\\resumeSubheading|\\resumeProjectHeading|\\resumeItem\b|` +
			`\\begin\{(?:itemize|enumerate)\}|\\end\{(?:itemize|enumerate)\}|` +
			`\\resumeItemListStart|\\resumeItemListEnd|\\item\b`)
	hfillTokenPattern = regexp.MustCompile(
		`\\resumeSubheading|\\resumeProjectHeading|\\resumeItem\b|` +
			`\\begin\{(?:itemize|enumerate)\}|\\end\{(?:itemize|enumerate)\}|` +
			`\\resumeItemListStart|\\resumeItemListEnd|\\item\b|` +
			`\\textbf\{[^{}]*\}[ \t]*\\hfill[^\n]*|\\textit\{[^{}]*\}[ \t]*\\hfill[^\n]*`)
	hfillLinePattern = regexp.MustCompile(`^\\(textbf|textit)\{([^{}]*)\}[ \t]*\\hfill[ \t]*(.*)$`)
	itemBoundary     = regexp.MustCompile(
		`\\item\b|\\begin\{|\\end\{|\\resumeItem\b|\\resumeItemList|\\resumeSubheading|\\resumeProjectHeading`)
	itemLabelPattern = regexp.MustCompile(`^\s*\[[^\]]*\]`)
)

// ScanBody tokenizes a section body in source order. It never fails: text it
// does not recognize is stripped and emitted as TokenText when outside a list.
func ScanBody(body string, opts BodyOptions) []Token {
	pattern := bodyTokenPattern
	if opts.HFillEntries {
		pattern = hfillTokenPattern
	}

	var tokens []Token
	depth := 0
	pos := 0

	emitText := func(raw string) {
		if depth > 0 {
			return
		}
		if text := StripCommands(raw); text != "" {
			tokens = append(tokens, Token{Kind: TokenText, Text: text})
		}
	}

	for pos < len(body) {
		loc := pattern.FindStringIndex(body[pos:])
		if loc == nil {
			emitText(body[pos:])
			break
		}
		start, end := pos+loc[0], pos+loc[1]
		emitText(body[pos:start])
		match := body[start:end]

		switch {
		case match == `\resumeSubheading`:
			args, next := readBraceArgs(body, end, 4)
			tokens = append(tokens, Token{Kind: TokenSubheading, Fields: stripFields(args)})
			pos = next

		case match == `\resumeProjectHeading`:
			args, next := readBraceArgs(body, end, 2)
			// title, meta: normalized to the four-field subheading layout
			fields := stripFields(args)
			tokens = append(tokens, Token{Kind: TokenSubheading, Fields: []string{fields[0], fields[1], "", ""}})
			pos = next

		case match == `\resumeItem`:
			content, next, ok := readBraceGroup(body, end)
			if !ok {
				pos = end
				continue
			}
			if text := StripInline(content); text != "" {
				tokens = append(tokens, Token{Kind: TokenBullet, Text: text})
			}
			pos = next

		case match == `\item`:
			rest := body[end:]
			stop := len(rest)
			if b := itemBoundary.FindStringIndex(rest); b != nil {
				stop = b[0]
			}
			raw := itemLabelPattern.ReplaceAllString(rest[:stop], "")
			if text := StripInline(raw); text != "" {
				tokens = append(tokens, Token{Kind: TokenBullet, Text: text})
			}
			pos = end + stop

		case strings.HasPrefix(match, `\begin{`) || match == `\resumeItemListStart`:
			depth++
			pos = skipOptional(body, end)

		case strings.HasPrefix(match, `\end{`) || match == `\resumeItemListEnd`:
			if depth > 0 {
				depth--
				if depth == 0 {
					tokens = append(tokens, Token{Kind: TokenListEnd})
				}
			}
			pos = end

		default:
			// \hfill entry line; only structural outside lists
			pos = end
			if depth > 0 {
				continue
			}
			parts := hfillLinePattern.FindStringSubmatch(match)
			if parts == nil {
				emitText(match)
				continue
			}
			kind := TokenEntry
			if parts[1] == "textit" {
				kind = TokenSubentry
			}
			tokens = append(tokens, Token{
				Kind:   kind,
				Fields: []string{StripInline(parts[2]), StripInline(parts[3])},
			})
		}
	}

	return tokens
}

func stripFields(args []string) []string {
	out := make([]string, len(args))
	for i, arg := range args {
		out[i] = StripInline(arg)
	}
	return out
}
