package merge

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

// tokenRe matches one placeholder token, non-greedy, across line breaks.
var tokenRe = regexp.MustCompile(`(?s)\{\{.*?\}\}`)

// IndexPattern compiles the regex matching an index-bearing key format
// such as "Marketing USE CASE Title %d". Literal text is matched
// case-insensitively, runs of spaces tolerate any whitespace, and the %d
// captures the 1-based record index.
func IndexPattern(format string) (*regexp.Regexp, error) {
	if strings.Count(format, "%d") != 1 {
		return nil, fmt.Errorf("key format %q must contain exactly one %%d", format)
	}
	var b strings.Builder
	b.WriteString(`(?i)\{\{\s*`)
	rest := format
	for rest != "" {
		switch {
		case strings.HasPrefix(rest, "%d"):
			b.WriteString(`(\d+)`)
			rest = rest[2:]
		case rest[0] == ' ':
			b.WriteString(`\s+`)
			rest = strings.TrimLeft(rest, " ")
		default:
			i := strings.IndexAny(rest, " %")
			if i < 0 {
				i = len(rest)
			}
			if i == 0 { // a lone '%' that is not part of %d
				return nil, fmt.Errorf("key format %q: unexpected verb", rest)
			}
			b.WriteString(regexp.QuoteMeta(rest[:i]))
			rest = rest[i:]
		}
	}
	b.WriteString(`\s*\}\}`)
	return regexp.Compile(b.String())
}

// FindIndex scans text with an index pattern and returns the captured
// 1-based index, or 0 when no token matches.
func FindIndex(re *regexp.Regexp, text string) int {
	if re == nil {
		return 0
	}
	m := re.FindStringSubmatch(text)
	if m == nil {
		return 0
	}
	n, err := strconv.Atoi(m[1])
	if err != nil {
		return 0
	}
	return n
}

// splitTokens splits text into alternating static and token fragments,
// token delimiters preserved, in document order. Fragments may be empty
// at the boundaries.
func splitTokens(text string) []string {
	idxs := tokenRe.FindAllStringIndex(text, -1)
	if idxs == nil {
		return []string{text}
	}
	var parts []string
	last := 0
	for _, span := range idxs {
		parts = append(parts, text[last:span[0]], text[span[0]:span[1]])
		last = span[1]
	}
	parts = append(parts, text[last:])
	return parts
}
