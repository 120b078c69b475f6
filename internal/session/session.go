// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package session keeps per-session minutes in memory for the lifetime of
// the process. Nothing is written to disk.
package session

import (
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/pdiddy/minutes-engine/pkg/types"
)

// ErrNotFound is returned for an unknown session ID.
var ErrNotFound = errors.New("session not found")

// Session is a snapshot of one caller's state.
type Session struct {
	ID        string    `json:"id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	// Record is the latest successfully generated minutes, or nil.
	Record *types.MinutesRecord `json:"record,omitempty"`

	// Source names where the transcript came from (file name or "text").
	Source string `json:"source,omitempty"`

	// LastError is the cause of the most recent failed generation. It is
	// cleared by the next success.
	LastError string `json:"last_error,omitempty"`
}

// Store is a concurrency-safe in-memory session map.
type Store struct {
	mu       sync.RWMutex
	sessions map[string]*Session
	now      func() time.Time
}

// NewStore returns an empty Store.
func NewStore() *Store {
	return &Store{
		sessions: make(map[string]*Session),
		now:      time.Now,
	}
}

// Create starts a session with a fresh random ID.
func (s *Store) Create() Session {
	now := s.now().UTC()
	sess := &Session{
		ID:        uuid.NewString(),
		CreatedAt: now,
		UpdatedAt: now,
	}

	s.mu.Lock()
	s.sessions[sess.ID] = sess
	s.mu.Unlock()

	return sess.snapshot()
}

// Get returns a copy of the session with id.
func (s *Store) Get(id string) (Session, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	sess, ok := s.sessions[id]
	if !ok {
		return Session{}, ErrNotFound
	}
	return sess.snapshot(), nil
}

// SetRecord replaces the session's minutes entirely and clears LastError.
func (s *Store) SetRecord(id, source string, r types.MinutesRecord) (Session, error) {
	return s.update(id, func(sess *Session) {
		rec := cloneRecord(r)
		sess.Record = &rec
		sess.Source = source
		sess.LastError = ""
	})
}

// Fail records a failed generation. The previous record is left in place.
func (s *Store) Fail(id, msg string) (Session, error) {
	return s.update(id, func(sess *Session) {
		sess.LastError = msg
	})
}

// Delete removes a session. It reports whether the session existed.
func (s *Store) Delete(id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	_, ok := s.sessions[id]
	delete(s.sessions, id)
	return ok
}

// Len returns the number of live sessions.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.sessions)
}

func (s *Store) update(id string, fn func(*Session)) (Session, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, ok := s.sessions[id]
	if !ok {
		return Session{}, ErrNotFound
	}
	fn(sess)
	sess.UpdatedAt = s.now().UTC()
	return sess.snapshot(), nil
}

func (sess *Session) snapshot() Session {
	c := *sess
	if sess.Record != nil {
		rec := cloneRecord(*sess.Record)
		c.Record = &rec
	}
	return c
}

func cloneRecord(r types.MinutesRecord) types.MinutesRecord {
	return types.MinutesRecord{
		Summary:             r.Summary,
		Participants:        append([]string{}, r.Participants...),
		DiscussionPoints:    append([]string{}, r.DiscussionPoints...),
		OutcomesOrDecisions: append([]string{}, r.OutcomesOrDecisions...),
		NextSteps:           append([]string{}, r.NextSteps...),
	}
}
