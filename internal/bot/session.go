package bot

import (
	"sync"
	"time"
)

// State is one node of the per-user conversation machine.
type State int

const (
	// StateChoosing waits for one of the two menu intents.
	StateChoosing State = iota
	// StateBackground waits for the applicant's academic background.
	StateBackground
	// StateInterests waits for the applicant's interests and goals.
	StateInterests
	// StateAsk waits for one free-form question.
	StateAsk
	// StateCancelled is terminal until the next start signal.
	StateCancelled
)

// FlowContext holds the answers collected by the active flow. It is
// cleared whenever a new flow starts, so nothing leaks between flows.
type FlowContext struct {
	Background string
	Interests  string
}

// Session is one user's conversation state. Access goes through the
// store's lock; the engine never holds a session across a turn.
type Session struct {
	State      State
	Context    FlowContext
	LastActive time.Time
}

// SessionStore keeps per-chat sessions in memory. Sessions are small
// and the user base is bounded, so a map with idle eviction is enough.
type SessionStore struct {
	mu       sync.Mutex
	sessions map[int64]*Session
}

// NewSessionStore creates an empty session store.
func NewSessionStore() *SessionStore {
	return &SessionStore{sessions: make(map[int64]*Session)}
}

// Update runs fn against the chat's session under the store lock,
// creating the session on first contact. fn owns any state mutation.
func (s *SessionStore) Update(chatID int64, fn func(*Session)) {
	s.mu.Lock()
	defer s.mu.Unlock()

	session, ok := s.sessions[chatID]
	if !ok {
		session = &Session{State: StateChoosing}
		s.sessions[chatID] = session
	}
	session.LastActive = time.Now()
	fn(session)
}

// Snapshot returns a copy of the chat's session state, or a fresh
// choosing-state view when the chat is unknown.
func (s *SessionStore) Snapshot(chatID int64) Session {
	s.mu.Lock()
	defer s.mu.Unlock()

	if session, ok := s.sessions[chatID]; ok {
		return *session
	}
	return Session{State: StateChoosing}
}

// EvictIdle drops sessions inactive for longer than maxIdle and
// returns how many were removed.
func (s *SessionStore) EvictIdle(maxIdle time.Duration) int {
	s.mu.Lock()
	defer s.mu.Unlock()

	cutoff := time.Now().Add(-maxIdle)
	evicted := 0
	for chatID, session := range s.sessions {
		if session.LastActive.Before(cutoff) {
			delete(s.sessions, chatID)
			evicted++
		}
	}
	return evicted
}

// Len returns the number of live sessions.
func (s *SessionStore) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.sessions)
}
