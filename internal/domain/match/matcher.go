// Package match ranks candidate icons for emoji occurrences and detects
// inconsistent icon reuse within a document session. It blends keyword
// overlap against the knowledge store, an emoji-identity bonus, a popularity
// bonus, and learned-preference pinning.
package match

import (
	"fmt"
	"sort"
	"strings"

	"github.com/corey/mdicon/internal/domain/detect"
	"github.com/corey/mdicon/internal/ports"
)

// Suggestion provenance tags.
const (
	SourceDatabase = "database"
	SourceLearned  = "learned"
	SourcePopular  = "popular"
)

// Config holds the tunable scoring constants. The bonuses are load-bearing
// for suggestion ordering, so they are configuration rather than literals.
type Config struct {
	EmojiMatchBonus     int // added when an entry's emoji equals the occurrence's
	UsageBonusDivisor   int // usage count per bonus point
	UsageBonusCap       int // ceiling on the popularity bonus
	SimilarityThreshold int // duplicate warning below this similarity [0,100]
	CriticalBelow       int // warnings below this similarity are critical
}

// DefaultConfig returns the standard scoring configuration.
func DefaultConfig() Config {
	return Config{
		EmojiMatchBonus:     10,
		UsageBonusDivisor:   10,
		UsageBonusCap:       5,
		SimilarityThreshold: 50,
		CriticalBelow:       30,
	}
}

// Suggestion is one ranked candidate icon for an occurrence.
type Suggestion struct {
	IconName        string
	Emoji           string
	Score           int
	Source          string // SourceDatabase, SourceLearned or SourcePopular
	KeywordsMatched []string
}

// Warning reports an icon being reused in a dissimilar context within one
// session.
type Warning struct {
	IconName        string
	CurrentContext  string
	CurrentLine     int
	ExistingContext string
	ExistingLine    int
	Similarity      int // [0,100]
	Critical        bool
}

// Matcher ranks icon suggestions for emoji occurrences. The store handle is
// passed in at construction; Matcher holds no other state beyond config.
type Matcher struct {
	store ports.KnowledgeStore
	cfg   Config
}

// New creates a Matcher with the default scoring configuration.
func New(store ports.KnowledgeStore) *Matcher {
	return NewWithConfig(store, DefaultConfig())
}

// NewWithConfig creates a Matcher with explicit scoring configuration.
func NewWithConfig(store ports.KnowledgeStore, cfg Config) *Matcher {
	if cfg.UsageBonusDivisor <= 0 {
		cfg.UsageBonusDivisor = 1
	}
	return &Matcher{store: store, cfg: cfg}
}

// SetSimilarityThreshold updates the duplicate-detection threshold,
// clamped to [0,100].
func (m *Matcher) SetSimilarityThreshold(threshold int) {
	m.cfg.SimilarityThreshold = max(0, min(100, threshold))
}

// SimilarityThreshold returns the active duplicate-detection threshold.
func (m *Matcher) SimilarityThreshold() int {
	return m.cfg.SimilarityThreshold
}

// FindSuggestions returns a ranked, deduplicated list of icon suggestions
// for one occurrence, at most limit long. When library is non-empty and a
// learned preference exists for (emoji, library), that suggestion is always
// first; the pin is enforced by the sort order, not a sentinel score.
func (m *Matcher) FindSuggestions(occ detect.Occurrence, library string, limit int) ([]Suggestion, error) {
	if limit <= 0 {
		return nil, nil
	}

	contextKeywords := detect.ExtractKeywords(occ)
	terms := append(append([]string{}, contextKeywords...), occ.Emoji)

	entries, err := m.store.SearchEmojis(terms, limit*2)
	if err != nil {
		return nil, fmt.Errorf("search emojis: %w", err)
	}

	var suggestions []Suggestion
	for _, entry := range entries {
		var matched []string
		score := 0
		for _, kw := range entry.Keywords {
			for _, ckw := range contextKeywords {
				if containsFold(kw, ckw) || containsFold(ckw, kw) {
					matched = append(matched, kw)
					score++
				}
			}
		}
		if entry.Emoji == occ.Emoji {
			score += m.cfg.EmojiMatchBonus
		}
		score += min(entry.UsageCount/m.cfg.UsageBonusDivisor, m.cfg.UsageBonusCap)
		if score <= 0 {
			continue
		}
		suggestions = append(suggestions, Suggestion{
			IconName:        entry.CommonName,
			Emoji:           entry.Emoji,
			Score:           score,
			Source:          SourceDatabase,
			KeywordsMatched: matched,
		})
	}

	if library != "" {
		icon, ok, err := m.store.PopularIcon(occ.Emoji, library)
		if err != nil {
			return nil, fmt.Errorf("popular icon: %w", err)
		}
		if ok {
			learned := Suggestion{
				IconName:        icon,
				Emoji:           occ.Emoji,
				Score:           maxScore(suggestions) + 1,
				Source:          SourceLearned,
				KeywordsMatched: []string{"user_preference"},
			}
			suggestions = append([]Suggestion{learned}, suggestions...)
		}
	}

	// Learned entries rank first; everything else by score. Stable sort
	// preserves original order among ties.
	sort.SliceStable(suggestions, func(i, j int) bool {
		li, lj := suggestions[i].Source == SourceLearned, suggestions[j].Source == SourceLearned
		if li != lj {
			return li
		}
		return suggestions[i].Score > suggestions[j].Score
	})

	seen := make(map[string]bool, len(suggestions))
	unique := suggestions[:0]
	for _, s := range suggestions {
		if seen[s.IconName] {
			continue
		}
		seen[s.IconName] = true
		unique = append(unique, s)
	}

	if len(unique) > limit {
		unique = unique[:limit]
	}
	return unique, nil
}

// Explain returns a human-readable provenance line for a suggestion.
func (m *Matcher) Explain(s Suggestion) string {
	switch {
	case s.Source == SourceLearned:
		return "Your previous choice for this emoji"
	case s.Source == SourcePopular:
		return fmt.Sprintf("Popular choice (used %d times)", s.Score)
	case len(s.KeywordsMatched) > 0:
		kws := s.KeywordsMatched
		if len(kws) > 3 {
			kws = kws[:3]
		}
		return "Matches: " + strings.Join(kws, ", ")
	default:
		return "Suggested by emoji match"
	}
}

func maxScore(suggestions []Suggestion) int {
	top := 0
	for _, s := range suggestions {
		if s.Score > top {
			top = s.Score
		}
	}
	return top
}

func containsFold(haystack, needle string) bool {
	return strings.Contains(strings.ToLower(haystack), strings.ToLower(needle))
}
