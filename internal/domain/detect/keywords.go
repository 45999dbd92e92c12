package detect

import (
	"regexp"
	"strings"

	"github.com/forPelevin/gomoji"
)

// headingMarkerRe strips the leading ATX marker from a heading line.
var headingMarkerRe = regexp.MustCompile(`^#{1,6}\s+`)

// wordRe extracts word-boundary tokens.
var wordRe = regexp.MustCompile(`\w+`)

// stopWords are dropped from extracted keyword sets: articles, conjunctions,
// common prepositions and copulas carry no matching signal.
var stopWords = map[string]struct{}{
	"the": {}, "a": {}, "an": {}, "and": {}, "or": {}, "but": {},
	"in": {}, "on": {}, "at": {}, "to": {}, "for": {}, "of": {},
	"with": {}, "by": {}, "from": {}, "as": {}, "is": {}, "was": {},
	"are": {}, "be": {}, "this": {}, "that": {},
}

// ExtractKeywords derives a normalized keyword set from an occurrence's
// context. Heading occurrences use the full heading text (marker and emojis
// stripped); others use the concatenated before/after context. Tokens are
// lowercased, stop words removed, and short tokens discarded.
func ExtractKeywords(occ Occurrence) []string {
	var source string
	if occ.InHeading {
		source = headingMarkerRe.ReplaceAllString(occ.FullLine, "")
	} else {
		source = occ.ContextBefore + " " + occ.ContextAfter
	}
	source = gomoji.RemoveEmojis(source)

	var keywords []string
	for _, tok := range wordRe.FindAllString(strings.ToLower(source), -1) {
		if _, stop := stopWords[tok]; stop {
			continue
		}
		if len(tok) <= minKeywordLen {
			continue
		}
		keywords = append(keywords, tok)
	}
	return keywords
}
