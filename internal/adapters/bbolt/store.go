// Package bbolt implements ports.KnowledgeStore using bbolt (embedded B+
// tree). Top-level buckets hold emoji entries, learned icon mappings,
// sessions, and per-session usage logs. Writes are transactional: a crash
// mid-write cannot corrupt previously committed data.
package bbolt

import (
	"bytes"
	"encoding/json"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/corey/mdicon/internal/ports"
	"github.com/google/uuid"
	bolt "go.etcd.io/bbolt"
)

// Bucket keys
var (
	bucketEmojis   = []byte("emojis")   // emoji -> EmojiEntry JSON
	bucketMappings = []byte("mappings") // emoji\x00library\x00icon -> IconMapping JSON
	bucketSessions = []byte("sessions") // session id -> Session JSON
	bucketUsages   = []byte("usages")   // nested bucket per session id, seq -> IconUsage JSON
)

// mappingSep separates the parts of a mapping key. NUL cannot appear in
// emoji, library or icon names.
const mappingSep = "\x00"

// Store implements ports.KnowledgeStore backed by bbolt.
type Store struct {
	db *bolt.DB

	// now is swapped in tests to control timestamps.
	now func() time.Time
}

// NewStore opens (or creates) a bbolt database at the given path and
// ensures all buckets exist.
func NewStore(path string) (*Store, error) {
	db, err := bolt.Open(path, 0600, &bolt.Options{Timeout: 1 * time.Second})
	if err != nil {
		return nil, fmt.Errorf("bbolt open: %w", err)
	}
	err = db.Update(func(tx *bolt.Tx) error {
		for _, name := range [][]byte{bucketEmojis, bucketMappings, bucketSessions, bucketUsages} {
			if _, err := tx.CreateBucketIfNotExists(name); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("bbolt init buckets: %w", err)
	}
	return &Store{db: db, now: time.Now}, nil
}

// Close closes the underlying bbolt database.
func (s *Store) Close() error {
	return s.db.Close()
}

// AddOrReplaceEmoji upserts an entry by emoji key. Usage statistics reset to
// zero on every call: replacing an entry is treated as redefining it.
func (s *Store) AddOrReplaceEmoji(emoji, commonName string, keywords, contextWords []string) error {
	if emoji == "" {
		return fmt.Errorf("add emoji: empty emoji: %w", ports.ErrValidation)
	}
	if len(keywords) == 0 {
		return fmt.Errorf("add emoji %q: empty keyword list: %w", emoji, ports.ErrValidation)
	}

	entry := ports.EmojiEntry{
		Emoji:        emoji,
		CommonName:   commonName,
		Keywords:     keywords,
		ContextWords: contextWords,
	}
	data, err := json.Marshal(entry)
	if err != nil {
		return fmt.Errorf("marshal emoji entry: %w", err)
	}

	return s.db.Update(func(tx *bolt.Tx) error {
		return tx.Bucket(bucketEmojis).Put([]byte(emoji), data)
	})
}

// SearchEmojis scores every entry against the search terms. One point per
// (term, word) pair with a case-insensitive substring relationship in either
// direction, across keywords and context words. Zero-score entries are
// excluded; results are ordered by score then usage count, both descending.
func (s *Store) SearchEmojis(terms []string, limit int) ([]ports.ScoredEntry, error) {
	if len(terms) == 0 || limit <= 0 {
		return nil, nil
	}

	var results []ports.ScoredEntry
	err := s.db.View(func(tx *bolt.Tx) error {
		return tx.Bucket(bucketEmojis).ForEach(func(_, v []byte) error {
			var entry ports.EmojiEntry
			if err := json.Unmarshal(v, &entry); err != nil {
				return fmt.Errorf("unmarshal emoji entry: %w", err)
			}
			score := matchScore(terms, entry)
			if score > 0 {
				results = append(results, ports.ScoredEntry{EmojiEntry: entry, Score: score})
			}
			return nil
		})
	})
	if err != nil {
		return nil, err
	}

	sort.SliceStable(results, func(i, j int) bool {
		if results[i].Score != results[j].Score {
			return results[i].Score > results[j].Score
		}
		return results[i].UsageCount > results[j].UsageCount
	})
	if len(results) > limit {
		results = results[:limit]
	}
	return results, nil
}

// matchScore counts substring-overlapping (term, word) pairs over the
// entry's keywords and context words.
func matchScore(terms []string, entry ports.EmojiEntry) int {
	words := make([]string, 0, len(entry.Keywords)+len(entry.ContextWords))
	words = append(words, entry.Keywords...)
	words = append(words, entry.ContextWords...)

	score := 0
	for _, term := range terms {
		lt := strings.ToLower(term)
		for _, word := range words {
			lw := strings.ToLower(word)
			if strings.Contains(lw, lt) || strings.Contains(lt, lw) {
				score++
			}
		}
	}
	return score
}

// AllEmojis returns every entry ordered by usage count descending.
func (s *Store) AllEmojis() ([]ports.EmojiEntry, error) {
	var entries []ports.EmojiEntry
	err := s.db.View(func(tx *bolt.Tx) error {
		return tx.Bucket(bucketEmojis).ForEach(func(_, v []byte) error {
			var entry ports.EmojiEntry
			if err := json.Unmarshal(v, &entry); err != nil {
				return fmt.Errorf("unmarshal emoji entry: %w", err)
			}
			entries = append(entries, entry)
			return nil
		})
	})
	if err != nil {
		return nil, err
	}
	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].UsageCount > entries[j].UsageCount
	})
	return entries, nil
}

// UpdateKeywords replaces the keyword list for an existing emoji.
func (s *Store) UpdateKeywords(emoji string, keywords []string) error {
	return s.db.Update(func(tx *bolt.Tx) error {
		b := tx.Bucket(bucketEmojis)
		v := b.Get([]byte(emoji))
		if v == nil {
			return fmt.Errorf("update keywords %q: %w", emoji, ports.ErrNotFound)
		}
		var entry ports.EmojiEntry
		if err := json.Unmarshal(v, &entry); err != nil {
			return fmt.Errorf("unmarshal emoji entry: %w", err)
		}
		entry.Keywords = keywords
		data, err := json.Marshal(entry)
		if err != nil {
			return fmt.Errorf("marshal emoji entry: %w", err)
		}
		return b.Put([]byte(emoji), data)
	})
}

// DeleteEmoji removes an entry.
func (s *Store) DeleteEmoji(emoji string) error {
	return s.db.Update(func(tx *bolt.Tx) error {
		b := tx.Bucket(bucketEmojis)
		if b.Get([]byte(emoji)) == nil {
			return fmt.Errorf("delete emoji %q: %w", emoji, ports.ErrNotFound)
		}
		return b.Delete([]byte(emoji))
	})
}

// IncrementUsage bumps usage count and stamps last-used. No-op when the
// emoji is absent.
func (s *Store) IncrementUsage(emoji string) error {
	return s.db.Update(func(tx *bolt.Tx) error {
		b := tx.Bucket(bucketEmojis)
		v := b.Get([]byte(emoji))
		if v == nil {
			return nil
		}
		var entry ports.EmojiEntry
		if err := json.Unmarshal(v, &entry); err != nil {
			return fmt.Errorf("unmarshal emoji entry: %w", err)
		}
		entry.UsageCount++
		now := s.now()
		entry.LastUsed = &now
		data, err := json.Marshal(entry)
		if err != nil {
			return fmt.Errorf("marshal emoji entry: %w", err)
		}
		return b.Put([]byte(emoji), data)
	})
}

// StartSession creates a session row with a fresh uuid.
func (s *Store) StartSession(documentPath string) (string, error) {
	sess := ports.Session{
		ID:           uuid.NewString(),
		DocumentPath: documentPath,
		StartedAt:    s.now(),
	}
	data, err := json.Marshal(sess)
	if err != nil {
		return "", fmt.Errorf("marshal session: %w", err)
	}
	err = s.db.Update(func(tx *bolt.Tx) error {
		return tx.Bucket(bucketSessions).Put([]byte(sess.ID), data)
	})
	if err != nil {
		return "", err
	}
	return sess.ID, nil
}

// EndSession stamps the end time. Idempotent: already-ended and unknown
// sessions are left alone.
func (s *Store) EndSession(sessionID string) error {
	return s.db.Update(func(tx *bolt.Tx) error {
		b := tx.Bucket(bucketSessions)
		v := b.Get([]byte(sessionID))
		if v == nil {
			return nil
		}
		var sess ports.Session
		if err := json.Unmarshal(v, &sess); err != nil {
			return fmt.Errorf("unmarshal session: %w", err)
		}
		if sess.EndedAt != nil {
			return nil
		}
		now := s.now()
		sess.EndedAt = &now
		data, err := json.Marshal(sess)
		if err != nil {
			return fmt.Errorf("marshal session: %w", err)
		}
		return b.Put([]byte(sessionID), data)
	})
}

// RecordIconUsage appends one usage row to the session's log. Sequence keys
// preserve append order on read-back.
func (s *Store) RecordIconUsage(sessionID, emoji, iconName, contextText string, lineNumber int) error {
	if sessionID == "" {
		return fmt.Errorf("record icon usage: %w", ports.ErrNoActiveSession)
	}
	usage := ports.IconUsage{
		SessionID:   sessionID,
		Emoji:       emoji,
		IconName:    iconName,
		ContextText: contextText,
		LineNumber:  lineNumber,
		Replaced:    true,
	}
	data, err := json.Marshal(usage)
	if err != nil {
		return fmt.Errorf("marshal icon usage: %w", err)
	}
	return s.db.Update(func(tx *bolt.Tx) error {
		sb, err := tx.Bucket(bucketUsages).CreateBucketIfNotExists([]byte(sessionID))
		if err != nil {
			return err
		}
		seq, err := sb.NextSequence()
		if err != nil {
			return err
		}
		return sb.Put(seqKey(seq), data)
	})
}

// seqKey encodes a bucket sequence number as a big-endian key so bbolt's
// byte ordering matches append order.
func seqKey(seq uint64) []byte {
	key := make([]byte, 8)
	for i := 7; i >= 0; i-- {
		key[i] = byte(seq)
		seq >>= 8
	}
	return key
}

// SessionUsages returns a session's usage rows in append order, optionally
// filtered to one icon name. An unknown session yields an empty list.
func (s *Store) SessionUsages(sessionID, iconName string) ([]ports.IconUsage, error) {
	var usages []ports.IconUsage
	err := s.db.View(func(tx *bolt.Tx) error {
		sb := tx.Bucket(bucketUsages).Bucket([]byte(sessionID))
		if sb == nil {
			return nil
		}
		return sb.ForEach(func(_, v []byte) error {
			var usage ports.IconUsage
			if err := json.Unmarshal(v, &usage); err != nil {
				return fmt.Errorf("unmarshal icon usage: %w", err)
			}
			if iconName == "" || usage.IconName == iconName {
				usages = append(usages, usage)
			}
			return nil
		})
	})
	if err != nil {
		return nil, err
	}
	return usages, nil
}

// RecordIconSelection upserts the (emoji, library, icon) mapping:
// increments its selection count if present, otherwise inserts with count 1.
func (s *Store) RecordIconSelection(emoji, library, iconName string) error {
	if emoji == "" || library == "" || iconName == "" {
		return fmt.Errorf("record icon selection: empty field: %w", ports.ErrValidation)
	}
	key := []byte(emoji + mappingSep + library + mappingSep + iconName)
	return s.db.Update(func(tx *bolt.Tx) error {
		b := tx.Bucket(bucketMappings)
		mapping := ports.IconMapping{
			Emoji:    emoji,
			Library:  library,
			IconName: iconName,
		}
		if v := b.Get(key); v != nil {
			if err := json.Unmarshal(v, &mapping); err != nil {
				return fmt.Errorf("unmarshal icon mapping: %w", err)
			}
		}
		mapping.SelectionCount++
		mapping.LastSelected = s.now()
		data, err := json.Marshal(mapping)
		if err != nil {
			return fmt.Errorf("marshal icon mapping: %w", err)
		}
		return b.Put(key, data)
	})
}

// PopularIcon returns the most-selected icon for (emoji, library),
// tie-broken by most recent selection.
func (s *Store) PopularIcon(emoji, library string) (string, bool, error) {
	prefix := []byte(emoji + mappingSep + library + mappingSep)

	var best ports.IconMapping
	found := false
	err := s.db.View(func(tx *bolt.Tx) error {
		c := tx.Bucket(bucketMappings).Cursor()
		for k, v := c.Seek(prefix); k != nil && bytes.HasPrefix(k, prefix); k, v = c.Next() {
			var mapping ports.IconMapping
			if err := json.Unmarshal(v, &mapping); err != nil {
				return fmt.Errorf("unmarshal icon mapping: %w", err)
			}
			if !found ||
				mapping.SelectionCount > best.SelectionCount ||
				(mapping.SelectionCount == best.SelectionCount && mapping.LastSelected.After(best.LastSelected)) {
				best = mapping
				found = true
			}
		}
		return nil
	})
	if err != nil {
		return "", false, err
	}
	if !found {
		return "", false, nil
	}
	return best.IconName, true, nil
}

// Sessions returns all sessions, newest first.
func (s *Store) Sessions() ([]ports.Session, error) {
	var sessions []ports.Session
	err := s.db.View(func(tx *bolt.Tx) error {
		return tx.Bucket(bucketSessions).ForEach(func(_, v []byte) error {
			var sess ports.Session
			if err := json.Unmarshal(v, &sess); err != nil {
				return fmt.Errorf("unmarshal session: %w", err)
			}
			sessions = append(sessions, sess)
			return nil
		})
	})
	if err != nil {
		return nil, err
	}
	sort.SliceStable(sessions, func(i, j int) bool {
		return sessions[i].StartedAt.After(sessions[j].StartedAt)
	})
	return sessions, nil
}

// ClearSessionsOlderThan deletes sessions started before now minus days,
// together with their usage logs. days=0 clears everything.
func (s *Store) ClearSessionsOlderThan(days int) (int, error) {
	cutoff := s.now().AddDate(0, 0, -days)

	removed := 0
	err := s.db.Update(func(tx *bolt.Tx) error {
		sessions := tx.Bucket(bucketSessions)
		usages := tx.Bucket(bucketUsages)

		var doomed [][]byte
		err := sessions.ForEach(func(k, v []byte) error {
			var sess ports.Session
			if err := json.Unmarshal(v, &sess); err != nil {
				return fmt.Errorf("unmarshal session: %w", err)
			}
			if days == 0 || sess.StartedAt.Before(cutoff) {
				key := make([]byte, len(k))
				copy(key, k)
				doomed = append(doomed, key)
			}
			return nil
		})
		if err != nil {
			return err
		}

		for _, key := range doomed {
			if err := sessions.Delete(key); err != nil {
				return err
			}
			if err := usages.DeleteBucket(key); err != nil && err != bolt.ErrBucketNotFound {
				return err
			}
			removed++
		}
		return nil
	})
	if err != nil {
		return 0, err
	}
	return removed, nil
}
