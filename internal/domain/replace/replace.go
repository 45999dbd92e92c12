// Package replace rewrites Markdown text, substituting emoji spans with
// Markdown image references. It works on raw text only; file I/O lives in
// the app layer.
package replace

import "strings"

// ImageRef builds the Markdown image syntax emitted in place of an emoji.
func ImageRef(altText, iconPath string) string {
	return "![" + altText + "](" + iconPath + ")"
}

// All replaces every occurrence of emoji in text with ref and returns the
// rewritten text plus the number of replacements made.
func All(text, emoji, ref string) (string, int) {
	if emoji == "" {
		return text, 0
	}
	count := strings.Count(text, emoji)
	if count == 0 {
		return text, 0
	}
	return strings.ReplaceAll(text, emoji, ref), count
}

// At replaces the emoji at an exact (line, byte offset) span with ref.
// Line is 1-based, offset 0-based within the line. Returns the text
// unchanged and false when the position is out of range or the emoji is not
// at that span.
func At(text string, line, offset int, emoji, ref string) (string, bool) {
	if emoji == "" {
		return text, false
	}
	lines := strings.Split(text, "\n")
	if line < 1 || line > len(lines) {
		return text, false
	}
	l := lines[line-1]
	if offset < 0 || offset+len(emoji) > len(l) {
		return text, false
	}
	if l[offset:offset+len(emoji)] != emoji {
		return text, false
	}
	lines[line-1] = l[:offset] + ref + l[offset+len(emoji):]
	return strings.Join(lines, "\n"), true
}
