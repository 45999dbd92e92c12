// Package session owns the document-session lifecycle and sequences the
// matcher's duplicate check against the store's append-only usage log.
//
// The manager tracks one current session: the tool edits one document at a
// time, so multi-document concurrency is deliberately unsupported.
package session

import (
	"fmt"

	"github.com/corey/mdicon/internal/domain/detect"
	"github.com/corey/mdicon/internal/domain/match"
	"github.com/corey/mdicon/internal/ports"
)

// Manager tracks the current document session. Zero value is unusable;
// construct with New.
type Manager struct {
	store   ports.KnowledgeStore
	matcher *match.Matcher

	// sessionID is empty between sessions.
	sessionID string
}

// New creates a session manager over the given store and matcher.
func New(store ports.KnowledgeStore, matcher *match.Matcher) *Manager {
	return &Manager{store: store, matcher: matcher}
}

// StartSession opens a session for a document and makes it current.
// Any previously active session is ended first, preserving the at-most-one
// active session invariant.
func (m *Manager) StartSession(documentPath string) (string, error) {
	if m.sessionID != "" {
		if err := m.store.EndSession(m.sessionID); err != nil {
			return "", fmt.Errorf("end previous session: %w", err)
		}
	}
	id, err := m.store.StartSession(documentPath)
	if err != nil {
		return "", fmt.Errorf("start session: %w", err)
	}
	m.sessionID = id
	return id, nil
}

// Resume makes the document's most recent open session current. ok is false
// when the document has no open session. Any other session held by this
// manager is ended first.
func (m *Manager) Resume(documentPath string) (id string, ok bool, err error) {
	sessions, err := m.store.Sessions()
	if err != nil {
		return "", false, fmt.Errorf("list sessions: %w", err)
	}
	for _, sess := range sessions {
		if sess.DocumentPath != documentPath || sess.EndedAt != nil {
			continue
		}
		if m.sessionID != "" && m.sessionID != sess.ID {
			if err := m.store.EndSession(m.sessionID); err != nil {
				return "", false, fmt.Errorf("end previous session: %w", err)
			}
		}
		m.sessionID = sess.ID
		return sess.ID, true, nil
	}
	return "", false, nil
}

// ResumeOrStart resumes the document's open session, starting a fresh one
// when none is open. Sessions span process invocations: a replacement
// recorded by an earlier run on the same document still bounds duplicate
// detection in this one.
func (m *Manager) ResumeOrStart(documentPath string) (string, error) {
	id, ok, err := m.Resume(documentPath)
	if err != nil {
		return "", err
	}
	if ok {
		return id, nil
	}
	return m.StartSession(documentPath)
}

// EndSession ends the current session and clears local state. A no-op when
// no session is active.
func (m *Manager) EndSession() error {
	if m.sessionID == "" {
		return nil
	}
	if err := m.store.EndSession(m.sessionID); err != nil {
		return fmt.Errorf("end session: %w", err)
	}
	m.sessionID = ""
	return nil
}

// Active reports whether a session is in progress.
func (m *Manager) Active() bool {
	return m.sessionID != ""
}

// SessionID returns the current session id, empty when none is active.
func (m *Manager) SessionID() string {
	return m.sessionID
}

// RecordReplacement logs an icon assignment in the current session.
// Calling it with no active session is a contract violation and returns
// ports.ErrNoActiveSession.
func (m *Manager) RecordReplacement(emoji, iconName string, occ detect.Occurrence) error {
	if m.sessionID == "" {
		return fmt.Errorf("record replacement: %w", ports.ErrNoActiveSession)
	}
	context := detect.ContextSummary(occ)
	if err := m.store.RecordIconUsage(m.sessionID, emoji, iconName, context, occ.Line); err != nil {
		return fmt.Errorf("record icon usage: %w", err)
	}
	return nil
}

// CheckForDuplicates runs the matcher's duplicate check against the current
// session. Returns nil with no error when no session is active, so callers
// may query before a session exists.
func (m *Manager) CheckForDuplicates(iconName string, occ detect.Occurrence) (*match.Warning, error) {
	if m.sessionID == "" {
		return nil, nil
	}
	return m.matcher.CheckDuplicateUsage(m.sessionID, iconName, occ)
}

// AllReplacements returns every assignment recorded in the current session,
// in append order. Empty when no session is active.
func (m *Manager) AllReplacements() ([]ports.IconUsage, error) {
	if m.sessionID == "" {
		return nil, nil
	}
	return m.store.SessionUsages(m.sessionID, "")
}
