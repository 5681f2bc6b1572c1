package extract

import (
	"regexp"
	"strings"
)

// The model is an untrusted, semi-structured producer: it frequently emits
// near-valid JSON. Recovery is a chain of small, independent string→string
// passes so each rule can be exercised on its own.

var (
	trailingCommaRe = regexp.MustCompile(`,\s*([}\]])`)
	missingCommaRe  = regexp.MustCompile(`"(\s*\n\s*)"`)
	closerCommaRe   = regexp.MustCompile(`([}\]])(\s*\n\s*)"`)
)

// sliceJSONObject cuts the substring between the first '{' and the last '}'.
// Models routinely wrap their JSON in prose or markdown fences.
func sliceJSONObject(s string) (string, bool) {
	start := strings.Index(s, "{")
	end := strings.LastIndex(s, "}")
	if start == -1 || end == -1 || end < start {
		return "", false
	}
	return s[start : end+1], true
}

// stripTrailingCommas removes commas directly preceding a closing brace or
// bracket.
func stripTrailingCommas(s string) string {
	return trailingCommaRe.ReplaceAllString(s, "$1")
}

// restoreMissingCommas inserts commas between a quoted value or a closer and
// a following quoted token on the next line. Valid JSON never places two
// quoted tokens or a closer and a quote across a newline without one.
func restoreMissingCommas(s string) string {
	s = missingCommaRe.ReplaceAllString(s, `",$1"`)
	return closerCommaRe.ReplaceAllString(s, `$1,$2"`)
}

// balanceBrackets closes a truncated response. When more braces/brackets
// were opened than closed, the buffer is cut back to the last complete
// object boundary and the missing closers appended in nesting order.
func balanceBrackets(s string) string {
	if len(openClosers(s)) == 0 {
		return s
	}

	// Truncated mid-entry: drop the trailing incomplete object.
	if idx := strings.LastIndex(s, "},"); idx != -1 {
		s = s[:idx+1]
	}

	closers := openClosers(s)
	for i := len(closers) - 1; i >= 0; i-- {
		s += string(closers[i])
	}
	return s
}

// openClosers scans s outside string literals and returns the closing
// runes still owed, in the order their openers appeared.
func openClosers(s string) []rune {
	var stack []rune
	inString := false
	escaped := false

	for _, r := range s {
		if escaped {
			escaped = false
			continue
		}
		switch r {
		case '\\':
			if inString {
				escaped = true
			}
		case '"':
			inString = !inString
		case '{':
			if !inString {
				stack = append(stack, '}')
			}
		case '[':
			if !inString {
				stack = append(stack, ']')
			}
		case '}', ']':
			if !inString && len(stack) > 0 {
				stack = stack[:len(stack)-1]
			}
		}
	}
	return stack
}

// repairJSON applies every pass in order.
func repairJSON(s string) string {
	s = stripTrailingCommas(s)
	s = restoreMissingCommas(s)
	return balanceBrackets(s)
}
