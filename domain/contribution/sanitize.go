package contribution

import (
	"regexp"
	"strings"
)

// Script blocks are removed first, contents included, so that payload text
// inside them never survives the generic tag pass. This is a best-effort
// denylist against stored XSS being echoed back to other clients, not a
// parser-backed HTML sanitizer, and must not be treated as a security
// boundary.
var (
	scriptBlockRe = regexp.MustCompile(`(?is)<script\b[^>]*>.*?</script>`)
	htmlTagRe     = regexp.MustCompile(`<[^>]*>`)
)

// Sanitize strips script blocks and HTML-tag-like substrings from s,
// truncates the result to maxLen characters, and trims surrounding
// whitespace.
func Sanitize(s string, maxLen int) string {
	s = scriptBlockRe.ReplaceAllString(s, "")
	s = htmlTagRe.ReplaceAllString(s, "")
	if maxLen > 0 {
		if r := []rune(s); len(r) > maxLen {
			s = string(r[:maxLen])
		}
	}
	return strings.TrimSpace(s)
}
