// Package ports defines the interfaces (contracts) that adapters must implement.
// These are the boundaries of the architecture. Domain logic depends only on
// these interfaces, never on concrete implementations.
package ports

import (
	"errors"
	"time"
)

// Sentinel errors shared across the store boundary. Adapters wrap these with
// fmt.Errorf("...: %w", ...) so callers can test with errors.Is.
var (
	// ErrNotFound signals a delete/update referencing an absent emoji.
	// An expected outcome, not a failure of the store itself.
	ErrNotFound = errors.New("emoji not found")

	// ErrNoActiveSession signals a session-scoped operation invoked with no
	// active session. A contract violation by the caller.
	ErrNoActiveSession = errors.New("no active session")

	// ErrValidation signals malformed input rejected before any mutation.
	ErrValidation = errors.New("invalid input")
)

// EmojiEntry is one row of the emoji knowledge base.
// The emoji string is the unique key. Keywords and context words are ordered;
// order is preserved through store round-trips.
type EmojiEntry struct {
	Emoji        string     `json:"emoji"`
	CommonName   string     `json:"common_name"`
	Keywords     []string   `json:"keywords"`
	ContextWords []string   `json:"context_words"`
	UsageCount   int        `json:"usage_count"`
	LastUsed     *time.Time `json:"last_used,omitempty"`
}

// ScoredEntry is an EmojiEntry annotated with a keyword-match score,
// as returned by SearchEmojis.
type ScoredEntry struct {
	EmojiEntry
	Score int `json:"score"`
}

// IconMapping is a learned association between an emoji, an icon library,
// and a chosen icon. SelectionCount increments on repeat choice.
type IconMapping struct {
	Emoji          string    `json:"emoji"`
	Library        string    `json:"library"`
	IconName       string    `json:"icon_name"`
	SelectionCount int       `json:"selection_count"`
	LastSelected   time.Time `json:"last_selected"`
}

// Session is one document-editing session. EndedAt is nil while open.
type Session struct {
	ID           string     `json:"id"`
	DocumentPath string     `json:"document_path"`
	StartedAt    time.Time  `json:"started_at"`
	EndedAt      *time.Time `json:"ended_at,omitempty"`
}

// IconUsage is one icon assignment recorded within a session.
// Rows are append-only: never mutated after creation.
type IconUsage struct {
	SessionID   string `json:"session_id"`
	Emoji       string `json:"emoji"`
	IconName    string `json:"icon_name"`
	ContextText string `json:"context_text"`
	LineNumber  int    `json:"line_number"`
	Replaced    bool   `json:"replaced"`
}

// KnowledgeStore persists emoji metadata, learned icon preferences, and
// per-document session logs. One store instance is owned by one running
// process; no concurrent-writer contract beyond single-statement atomicity.
//
// Crash safety: every mutation must be transactional. A crash mid-write
// must not leave partial state visible.
type KnowledgeStore interface {
	// AddOrReplaceEmoji upserts an entry by emoji key. Usage statistics are
	// reset to zero on every call, including replacement of an existing key.
	// Rejects empty emoji or empty keyword list with ErrValidation.
	AddOrReplaceEmoji(emoji, commonName string, keywords, contextWords []string) error

	// SearchEmojis scores each entry by counting (term, word) pairs where one
	// is a case-insensitive substring of the other, over keywords and context
	// words. Entries scoring zero are excluded. Results are ordered by score
	// descending, then usage count descending, truncated to limit.
	SearchEmojis(terms []string, limit int) ([]ScoredEntry, error)

	// AllEmojis returns every entry, ordered by usage count descending.
	AllEmojis() ([]EmojiEntry, error)

	// UpdateKeywords replaces the keyword list for an existing emoji.
	// Returns ErrNotFound if the emoji is absent.
	UpdateKeywords(emoji string, keywords []string) error

	// DeleteEmoji removes an entry. Returns ErrNotFound if absent.
	DeleteEmoji(emoji string) error

	// IncrementUsage bumps the usage count and stamps last-used.
	// A no-op (not an error) if the emoji is absent.
	IncrementUsage(emoji string) error

	// StartSession opens a session for a document and returns its fresh id.
	StartSession(documentPath string) (string, error)

	// EndSession stamps the session's end time. Idempotent.
	EndSession(sessionID string) error

	// RecordIconUsage appends one usage row to a session's log.
	// Rows are always marked as completed replacements.
	RecordIconUsage(sessionID, emoji, iconName, contextText string, lineNumber int) error

	// SessionUsages returns a session's usage rows in append order.
	// iconName filters to one icon when non-empty.
	SessionUsages(sessionID, iconName string) ([]IconUsage, error)

	// RecordIconSelection upserts an (emoji, library, icon) mapping,
	// incrementing its selection count and stamping last-selected.
	RecordIconSelection(emoji, library, iconName string) error

	// PopularIcon returns the icon with the highest selection count for
	// (emoji, library), tie-broken by most recent selection. The bool is
	// false when no mapping exists.
	PopularIcon(emoji, library string) (string, bool, error)

	// Sessions returns all sessions, newest first.
	Sessions() ([]Session, error)

	// ClearSessionsOlderThan deletes sessions (and their usage rows) started
	// more than the given number of days ago. days=0 clears everything.
	// Returns the number of sessions removed.
	ClearSessionsOlderThan(days int) (int, error)

	// Close releases the underlying store.
	Close() error
}
