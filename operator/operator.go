// Package operator authenticates the single local operator account and
// tracks its session cookie, the same way the session map and cookie
// scheme this codebase's admin login handler already used.
package operator

import (
	"crypto/rand"
	"encoding/hex"
	"sync"
	"time"
)

// Session is one logged-in operator session.
type Session struct {
	Username  string
	ExpiresAt time.Time
}

// Store holds active sessions in memory; a restart invalidates every
// session, which is acceptable for a single-operator desktop tool.
type Store struct {
	mu              sync.Mutex
	sessions        map[string]Session
	sessionDuration time.Duration
}

// NewStore returns an empty session store with a 24 hour session
// lifetime, matching this codebase's previous admin session duration.
func NewStore() *Store {
	return &Store{
		sessions:        make(map[string]Session),
		sessionDuration: 24 * time.Hour,
	}
}

// Issue creates a new session for username and returns its token.
func (s *Store) Issue(username string) string {
	token := generateSessionToken()

	s.mu.Lock()
	s.sessions[token] = Session{Username: username, ExpiresAt: time.Now().Add(s.sessionDuration)}
	s.mu.Unlock()

	return token
}

// Validate reports whether token names a live, unexpired session, and
// its username. An expired session is evicted as a side effect.
func (s *Store) Validate(token string) (username string, ok bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	session, exists := s.sessions[token]
	if !exists {
		return "", false
	}
	if time.Now().After(session.ExpiresAt) {
		delete(s.sessions, token)
		return "", false
	}
	return session.Username, true
}

// Revoke ends a session early, e.g. on explicit logout.
func (s *Store) Revoke(token string) {
	s.mu.Lock()
	delete(s.sessions, token)
	s.mu.Unlock()
}

// SessionDuration exposes the configured session lifetime so callers can
// set matching cookie expirations.
func (s *Store) SessionDuration() time.Duration { return s.sessionDuration }

// generateSessionToken produces a cryptographically random session
// token; unlike the UnixNano-based scheme this replaced, guessing one is
// infeasible.
func generateSessionToken() string {
	var buf [32]byte
	if _, err := rand.Read(buf[:]); err != nil {
		// crypto/rand failing means the OS entropy source is broken;
		// fall back to a timestamp rather than issue an empty token.
		return "session_" + time.Now().Format(time.RFC3339Nano)
	}
	return "session_" + hex.EncodeToString(buf[:])
}
