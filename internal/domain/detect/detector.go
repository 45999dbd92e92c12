// Package detect scans Markdown text for emoji occurrences and derives
// comparable keyword sets from the surrounding context. Detection operates on
// grapheme clusters, not code points: flag sequences, skin-tone modifiers and
// ZWJ compositions count as single emojis.
package detect

import (
	"regexp"
	"strings"
	"unicode"

	"github.com/forPelevin/gomoji"
	"github.com/rivo/uniseg"
)

const (
	// contextMaxChars bounds the context captured on each side of an emoji.
	contextMaxChars = 50

	// previewChars bounds each side of a context summary.
	previewChars = 30

	// minKeywordLen is the length a token must exceed to become a keyword.
	minKeywordLen = 2
)

// headingRe matches an ATX heading: 1-6 '#' then whitespace then text.
var headingRe = regexp.MustCompile(`^(#{1,6})\s+(.*)$`)

// Occurrence is one detected emoji instance in a document.
// Offset counts bytes, not characters: multi-byte runes before the emoji
// shift it relative to a character count, and callers slicing Line text with
// it must index bytes. Offset plus the emoji's byte length never exceeds the
// line length. Occurrences are immutable once created and are never
// persisted.
type Occurrence struct {
	Emoji         string // the full grapheme cluster
	Line          int    // 1-based
	Offset        int    // 0-based byte offset within the line
	ContextBefore string
	ContextAfter  string
	FullLine      string
	InHeading     bool
	HeadingLevel  int // 0 when not a heading
}

// Detect scans text for emoji occurrences. Lines are newline-delimited;
// occurrences are produced in line order, then left-to-right within a line.
// Empty text and emoji-free lines contribute nothing. Detect never fails:
// absence of matches is a valid outcome.
func Detect(text string) []Occurrence {
	if text == "" {
		return nil
	}

	var occs []Occurrence
	for i, line := range strings.Split(text, "\n") {
		level := 0
		if m := headingRe.FindStringSubmatch(line); m != nil {
			level = len(m[1])
		}

		g := uniseg.NewGraphemes(line)
		for g.Next() {
			cluster := g.Str()
			if !isEmojiCluster(cluster) {
				continue
			}
			start, end := g.Positions()
			occs = append(occs, Occurrence{
				Emoji:         cluster,
				Line:          i + 1,
				Offset:        start,
				ContextBefore: contextBefore(line, start),
				ContextAfter:  contextAfter(line, end),
				FullLine:      line,
				InHeading:     level > 0,
				HeadingLevel:  level,
			})
		}
	}
	return occs
}

// isEmojiCluster reports whether a grapheme cluster is an emoji.
// Bare ASCII runes are never emojis, even though digits and '#' carry the
// Unicode Emoji property (they only render as emoji with a VS16 selector,
// in which case the cluster is multi-byte).
func isEmojiCluster(cluster string) bool {
	if len(cluster) == 0 {
		return false
	}
	if len(cluster) == 1 && cluster[0] <= unicode.MaxASCII {
		return false
	}
	return gomoji.ContainsEmoji(cluster)
}

// contextBefore returns up to contextMaxChars characters preceding pos on the
// same line, trimmed. Context never crosses a line boundary.
func contextBefore(line string, pos int) string {
	r := []rune(line[:pos])
	if len(r) > contextMaxChars {
		r = r[len(r)-contextMaxChars:]
	}
	return strings.TrimSpace(string(r))
}

// contextAfter returns up to contextMaxChars characters following pos,
// trimmed.
func contextAfter(line string, pos int) string {
	r := []rune(line[pos:])
	if len(r) > contextMaxChars {
		r = r[:contextMaxChars]
	}
	return strings.TrimSpace(string(r))
}

// UniqueEmojis returns the distinct emojis from occurrences in first-seen
// order.
func UniqueEmojis(occs []Occurrence) []string {
	seen := make(map[string]bool, len(occs))
	var unique []string
	for _, occ := range occs {
		if !seen[occ.Emoji] {
			seen[occ.Emoji] = true
			unique = append(unique, occ.Emoji)
		}
	}
	return unique
}

// GroupByEmoji groups occurrences by emoji, preserving detection order
// within each group.
func GroupByEmoji(occs []Occurrence) map[string][]Occurrence {
	grouped := make(map[string][]Occurrence)
	for _, occ := range occs {
		grouped[occ.Emoji] = append(grouped[occ.Emoji], occ)
	}
	return grouped
}

// ContextSummary renders a human-readable context line for an occurrence:
// the stripped heading text for headings, otherwise a bounded window of
// surrounding text with the emoji in the middle.
func ContextSummary(occ Occurrence) string {
	if occ.InHeading {
		heading := headingMarkerRe.ReplaceAllString(occ.FullLine, "")
		return "Heading: " + strings.TrimSpace(heading)
	}

	before := []rune(occ.ContextBefore)
	if len(before) > previewChars {
		before = before[len(before)-previewChars:]
	}
	after := []rune(occ.ContextAfter)
	if len(after) > previewChars {
		after = after[:previewChars]
	}
	return strings.TrimSpace(string(before) + " " + occ.Emoji + " " + string(after))
}
