package detect

import (
	"regexp"
	"strings"

	"github.com/forPelevin/gomoji"
)

// markdownPunctRe matches Markdown formatting marks stripped before
// comparison.
var markdownPunctRe = regexp.MustCompile("[*_`~#\\[\\]()]")

// nonWordRe matches remaining punctuation (anything that is neither a word
// character nor whitespace).
var nonWordRe = regexp.MustCompile(`[^\w\s]`)

// NormalizeForComparison reduces a context string to a canonical form for
// duplicate detection: emojis and Markdown punctuation stripped, lowercased,
// remaining punctuation removed, whitespace runs collapsed to single spaces.
// Deterministic, order-preserving, and idempotent.
func NormalizeForComparison(text string) string {
	s := gomoji.RemoveEmojis(text)
	s = markdownPunctRe.ReplaceAllString(s, "")
	s = strings.ToLower(s)
	s = nonWordRe.ReplaceAllString(s, "")
	// Collapse whitespace last so punctuation removal cannot reintroduce
	// double spaces (keeps the function idempotent).
	return strings.Join(strings.Fields(s), " ")
}
