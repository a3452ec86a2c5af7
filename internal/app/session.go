package app

import (
	"errors"
	"math/rand"
	"sync"
	"time"

	"github.com/google/uuid"

	"cardhunter/internal/bot"
	"cardhunter/internal/bot/brain"
)

// ErrSessionNotFound is returned for unknown or expired session IDs.
var ErrSessionNotFound = errors.New("session not found")

// Session is the per-client engine context: one guess ledger and the agent
// that reasons over it. Callers hold the session lock while using either.
type Session struct {
	ID       string
	UserID   string
	History  *brain.GuessHistory
	Agent    *bot.Agent
	LastSeen time.Time

	mu sync.Mutex
}

// Lock serializes use of the session's ledger and agent.
func (s *Session) Lock() { s.mu.Lock() }

// Unlock releases the session.
func (s *Session) Unlock() { s.mu.Unlock() }

// SessionRegistry keeps live sessions in memory and expires idle ones.
type SessionRegistry struct {
	mu       sync.Mutex
	sessions map[string]*Session
	ttl      time.Duration
	tuning   bot.Tuning
	now      func() time.Time
}

// NewSessionRegistry creates a registry whose sessions expire after ttl of inactivity.
func NewSessionRegistry(ttl time.Duration, tuning bot.Tuning) *SessionRegistry {
	return &SessionRegistry{
		sessions: make(map[string]*Session),
		ttl:      ttl,
		tuning:   tuning,
		now:      time.Now,
	}
}

// Create opens a new session for userID with an empty ledger.
func (r *SessionRegistry) Create(userID string) *Session {
	now := r.now()
	s := &Session{
		ID:       uuid.NewString(),
		UserID:   userID,
		History:  brain.NewGuessHistory(),
		Agent:    bot.NewAgent(rand.New(rand.NewSource(now.UnixNano())), r.tuning),
		LastSeen: now,
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	r.sweepLocked(now)
	r.sessions[s.ID] = s
	return s
}

// Get returns a live session and refreshes its idle timer.
func (r *SessionRegistry) Get(id string) (*Session, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	now := r.now()
	s, ok := r.sessions[id]
	if !ok || r.expired(s, now) {
		delete(r.sessions, id)
		return nil, ErrSessionNotFound
	}
	s.LastSeen = now
	return s, nil
}

// Delete drops a session. Deleting an unknown session is not an error.
func (r *SessionRegistry) Delete(id string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.sessions, id)
}

// Len returns the number of tracked sessions.
func (r *SessionRegistry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.sessions)
}

func (r *SessionRegistry) expired(s *Session, now time.Time) bool {
	return r.ttl > 0 && now.Sub(s.LastSeen) > r.ttl
}

func (r *SessionRegistry) sweepLocked(now time.Time) {
	for id, s := range r.sessions {
		if r.expired(s, now) {
			delete(r.sessions, id)
		}
	}
}
