// Package locks provides per-room mutual exclusion for turn-mutating
// actions. A room's lock serializes logically related actions that may
// arrive duplicated or reordered before a prior mutation's
// acknowledgement round-trips; the loser of an acquire race is dropped,
// not queued.
package locks

import (
	"sync"
	"time"
)

type entry struct {
	holder     string
	acquiredAt time.Time
}

// Manager is an explicitly owned turn-lock table keyed by room code.
// At most one holder exists per room at any time.
type Manager struct {
	mu    sync.Mutex
	locks map[string]entry
}

func NewManager() *Manager {
	return &Manager{
		locks: make(map[string]entry),
	}
}

// Acquire records holderID as the lock holder for the room and returns
// true iff the room was unheld.
func (m *Manager) Acquire(roomCode, holderID string) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, held := m.locks[roomCode]; held {
		return false
	}
	m.locks[roomCode] = entry{holder: holderID, acquiredAt: time.Now()}
	return true
}

// Release drops the room's lock if holderID holds it. Releasing an
// unheld lock, or one held by someone else, is a no-op.
func (m *Manager) Release(roomCode, holderID string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if e, held := m.locks[roomCode]; held && e.holder == holderID {
		delete(m.locks, roomCode)
	}
}

// ReleaseAll drops every lock held by holderID. Used when a player's
// identity migrates or a connection goes away mid-action.
func (m *Manager) ReleaseAll(holderID string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for code, e := range m.locks {
		if e.holder == holderID {
			delete(m.locks, code)
		}
	}
}

// Holder returns the current holder of a room's lock, if any.
func (m *Manager) Holder(roomCode string) (string, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	e, held := m.locks[roomCode]
	return e.holder, held
}
