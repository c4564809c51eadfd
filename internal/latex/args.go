package latex

// readBraceGroup reads one balanced {...} group starting at pos, skipping leading
// whitespace. Escaped braces (\{ and \}) do not change the depth. It returns the
// group content and the index just past the closing brace.
func readBraceGroup(s string, pos int) (string, int, bool) {
	i := skipSpace(s, pos)
	if i >= len(s) || s[i] != '{' {
		return "", pos, false
	}

	depth := 0
	for j := i; j < len(s); j++ {
		switch s[j] {
		case '\\':
			j++ // skip escaped character
		case '{':
			depth++
		case '}':
			depth--
			if depth == 0 {
				return s[i+1 : j], j + 1, true
			}
		}
	}
	return "", pos, false
}

// readBraceArgs reads up to n consecutive brace groups. Missing groups are
// returned as empty strings; end points past the last group that was read.
func readBraceArgs(s string, pos, n int) ([]string, int) {
	args := make([]string, n)
	end := pos
	for k := 0; k < n; k++ {
		content, next, ok := readBraceGroup(s, end)
		if !ok {
			break
		}
		args[k] = content
		end = next
	}
	return args, end
}

// skipOptional skips one optional [...] argument after whitespace
func skipOptional(s string, pos int) int {
	i := skipSpace(s, pos)
	if i >= len(s) || s[i] != '[' {
		return pos
	}
	for j := i + 1; j < len(s); j++ {
		if s[j] == ']' {
			return j + 1
		}
	}
	return pos
}

func skipSpace(s string, pos int) int {
	for pos < len(s) {
		switch s[pos] {
		case ' ', '\t', '\n', '\r':
			pos++
		default:
			return pos
		}
	}
	return pos
}
