// Package adapters implements adapter interfaces from the application layer.
package adapters

import (
	"sync"
	"time"

	"github.com/technest/admin-dashboard/internal/domain/entity"
)

// SessionAuthSignal holds the identity signed in to the dashboard and
// notifies watchers on every change. The identity is cleared automatically
// when its ExpiresAt passes.
type SessionAuthSignal struct {
	mu       sync.Mutex
	identity entity.Identity
	watchers map[uint64]chan entity.Identity
	nextID   uint64
	expiry   *time.Timer
}

// NewSessionAuthSignal creates a signal with nobody signed in.
func NewSessionAuthSignal() *SessionAuthSignal {
	return &SessionAuthSignal{
		watchers: make(map[uint64]chan entity.Identity),
	}
}

// Current returns the identity at the time of the call.
func (s *SessionAuthSignal) Current() entity.Identity {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.identity
}

// Watch returns a channel receiving every identity change. Only the latest
// undelivered identity is kept for a slow watcher.
func (s *SessionAuthSignal) Watch() (<-chan entity.Identity, func()) {
	ch := make(chan entity.Identity, 1)

	s.mu.Lock()
	id := s.nextID
	s.nextID++
	s.watchers[id] = ch
	s.mu.Unlock()

	var once sync.Once
	return ch, func() {
		once.Do(func() {
			s.mu.Lock()
			delete(s.watchers, id)
			s.mu.Unlock()
			close(ch)
		})
	}
}

// SignIn replaces the current identity.
func (s *SessionAuthSignal) SignIn(identity entity.Identity) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.expiry != nil {
		s.expiry.Stop()
		s.expiry = nil
	}
	if !identity.ExpiresAt.IsZero() {
		userID := identity.UserID
		s.expiry = time.AfterFunc(time.Until(identity.ExpiresAt), func() {
			s.expire(userID)
		})
	}
	s.setLocked(identity)
}

// SignOut clears the current identity. Signing out while nobody is signed in
// still notifies watchers.
func (s *SessionAuthSignal) SignOut() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.expiry != nil {
		s.expiry.Stop()
		s.expiry = nil
	}
	s.setLocked(entity.Identity{})
}

func (s *SessionAuthSignal) expire(userID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.identity.UserID != userID {
		return
	}
	s.expiry = nil
	s.setLocked(entity.Identity{})
}

func (s *SessionAuthSignal) setLocked(identity entity.Identity) {
	s.identity = identity
	for _, ch := range s.watchers {
		// Drop a stale undelivered identity so the newest one always fits.
		select {
		case <-ch:
		default:
		}
		select {
		case ch <- identity:
		default:
		}
	}
}
