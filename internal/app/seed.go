package app

import (
	"fmt"
	"strings"

	"github.com/forPelevin/gomoji"

	"github.com/corey/mdicon/internal/ports"
)

// seedEntry is one curated knowledge-base row.
type seedEntry struct {
	emoji    string
	name     string
	keywords []string
}

// seedEntries covers the emojis most common in READMEs and docs. Common
// names fall back to gomoji's CLDR names when left empty.
var seedEntries = []seedEntry{
	{"🚀", "rocket", []string{"rocket", "launch", "space", "deploy", "release", "fast"}},
	{"⚡", "bolt", []string{"lightning", "fast", "performance", "speed", "power"}},
	{"🔥", "flame", []string{"fire", "hot", "trending", "popular", "burn"}},
	{"✨", "sparkles", []string{"sparkles", "new", "feature", "shiny", "magic"}},
	{"🎉", "party-popper", []string{"party", "celebration", "release", "tada", "confetti"}},
	{"🐛", "bug", []string{"bug", "fix", "issue", "defect", "insect"}},
	{"🔧", "wrench", []string{"wrench", "tool", "fix", "configuration", "settings"}},
	{"📝", "memo", []string{"memo", "note", "documentation", "writing", "edit"}},
	{"📚", "books", []string{"books", "documentation", "library", "reference", "reading"}},
	{"💡", "light-bulb", []string{"idea", "tip", "hint", "light", "bulb"}},
	{"⚠️", "warning", []string{"warning", "caution", "alert", "attention", "danger"}},
	{"❌", "cross-mark", []string{"cross", "error", "failure", "wrong", "delete"}},
	{"✅", "check-mark", []string{"check", "done", "success", "complete", "passed"}},
	{"🔒", "lock", []string{"lock", "security", "private", "encrypted", "closed"}},
	{"🔑", "key", []string{"key", "access", "password", "credential", "unlock"}},
	{"🌟", "glowing-star", []string{"star", "highlight", "featured", "favorite"}},
	{"📦", "package", []string{"package", "box", "dependency", "module", "shipping"}},
	{"🏠", "house", []string{"home", "house", "main", "start", "building"}},
	{"🌍", "globe", []string{"globe", "world", "earth", "international", "global"}},
	{"📊", "bar-chart", []string{"chart", "graph", "statistics", "data", "metrics"}},
	{"📈", "chart-increasing", []string{"chart", "growth", "increase", "trend", "metrics"}},
	{"🔍", "magnifying-glass", []string{"search", "find", "magnifier", "inspect", "zoom"}},
	{"⭐", "", []string{"star", "favorite", "rating", "bookmark"}},
	{"💻", "laptop", []string{"laptop", "computer", "code", "development", "machine"}},
	{"📁", "folder", []string{"folder", "directory", "files", "organization"}},
	{"🎯", "bullseye", []string{"target", "goal", "aim", "objective", "focus"}},
	{"🛠️", "hammer-and-wrench", []string{"tools", "build", "maintenance", "development"}},
	{"❓", "question-mark", []string{"question", "help", "faq", "unknown"}},
	{"🙏", "folded-hands", []string{"thanks", "please", "gratitude", "pray"}},
	{"👍", "thumbs-up", []string{"thumbs", "approve", "good", "like", "yes"}},
	{"🧪", "test-tube", []string{"test", "experiment", "lab", "chemistry", "testing"}},
	{"📄", "", []string{"page", "document", "file", "paper", "license"}},
	{"🔗", "link", []string{"link", "chain", "url", "reference", "connection"}},
	{"💾", "floppy-disk", []string{"save", "disk", "storage", "persist", "backup"}},
}

// Seed populates the knowledge base with the curated entries, skipping any
// emoji already present so user edits survive reseeding. Returns the number
// of entries added.
func Seed(store ports.KnowledgeStore) (int, error) {
	existing, err := store.AllEmojis()
	if err != nil {
		return 0, fmt.Errorf("list emojis: %w", err)
	}
	present := make(map[string]bool, len(existing))
	for _, e := range existing {
		present[e.Emoji] = true
	}

	added := 0
	for _, seed := range seedEntries {
		if present[seed.emoji] {
			continue
		}
		name := seed.name
		if name == "" {
			if info, err := gomoji.GetInfo(seed.emoji); err == nil {
				name = strings.ToLower(info.Slug)
			}
		}
		if err := store.AddOrReplaceEmoji(seed.emoji, name, seed.keywords, nil); err != nil {
			return added, fmt.Errorf("seed %q: %w", seed.emoji, err)
		}
		added++
	}
	return added, nil
}
