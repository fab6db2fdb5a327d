// Package lobby hands out play sessions. Every game is one human against
// bots, so sessions are keyed by user rather than shared.
package lobby

import (
	"fmt"
	"log"
	"sync"

	"seventeen-lite/internal/session"
)

type Lobby struct {
	mu       sync.RWMutex
	sessions map[uint64]*session.Session
	nextID   uint64
	closed   bool
}

func New() *Lobby {
	return &Lobby{
		sessions: make(map[uint64]*session.Session),
	}
}

// QuickStart returns the user's existing session or creates one. The
// broadcast function and hooks only apply to newly created sessions.
func (l *Lobby) QuickStart(userID uint64, broadcastFn session.BroadcastFunc, hooks ...session.GameEndHook) (*session.Session, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.closed {
		return nil, fmt.Errorf("lobby is shut down")
	}

	if s, ok := l.sessions[userID]; ok {
		log.Printf("[Lobby] QuickStart: user %d resuming session %s", userID, s.ID)
		return s, nil
	}

	l.nextID++
	sessionID := fmt.Sprintf("session_%d", l.nextID)
	s := session.New(sessionID, 0, broadcastFn, hooks...)
	l.sessions[userID] = s

	log.Printf("[Lobby] QuickStart: user %d created session %s", userID, sessionID)
	return s, nil
}

// Get returns the user's session, if any.
func (l *Lobby) Get(userID uint64) *session.Session {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.sessions[userID]
}

// Release closes and removes the user's session.
func (l *Lobby) Release(userID uint64) {
	l.mu.Lock()
	s, ok := l.sessions[userID]
	if ok {
		delete(l.sessions, userID)
	}
	l.mu.Unlock()

	if ok {
		s.Close()
		log.Printf("[Lobby] Released session %s for user %d", s.ID, userID)
	}
}

// SessionCount reports the number of live sessions.
func (l *Lobby) SessionCount() int {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return len(l.sessions)
}

// Shutdown closes every session. The lobby accepts no new sessions after.
func (l *Lobby) Shutdown() {
	l.mu.Lock()
	l.closed = true
	sessions := make([]*session.Session, 0, len(l.sessions))
	for _, s := range l.sessions {
		sessions = append(sessions, s)
	}
	l.sessions = make(map[uint64]*session.Session)
	l.mu.Unlock()

	for _, s := range sessions {
		s.Close()
	}
	log.Printf("[Lobby] Shutdown: closed %d sessions", len(sessions))
}
