package session

import (
	"sync"

	"github.com/upb/talent-portal/internal/auth"
)

// State is the per-browser-session slot holding at most one logged-in user.
// Writes replace the whole record; readers get a copy.
type State struct {
	// notifyMu orders whole updates, so subscribers see changes in the
	// order they were applied.
	notifyMu sync.Mutex

	mu     sync.RWMutex
	user   *auth.User
	subs   map[int]func(*auth.User)
	nextID int
}

// NewState returns an empty (logged out) state.
func NewState() *State {
	return &State{subs: make(map[int]func(*auth.User))}
}

// User returns the current user record, if any.
func (s *State) User() (*auth.User, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.user == nil {
		return nil, false
	}
	return s.user.Clone(), true
}

// LoggedIn reports whether a user is present.
func (s *State) LoggedIn() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.user != nil
}

// SetUser replaces the session record. A nil user is the same as Clear.
func (s *State) SetUser(u *auth.User) {
	s.set(u.Clone())
}

// Clear drops the session record.
func (s *State) Clear() {
	s.set(nil)
}

// Subscribe registers fn to be called with the new record after every change
// (nil when the session becomes empty). The returned func unregisters it.
// fn may read the state but must not write to it.
func (s *State) Subscribe(fn func(*auth.User)) func() {
	s.mu.Lock()
	id := s.nextID
	s.nextID++
	s.subs[id] = fn
	s.mu.Unlock()

	return func() {
		s.mu.Lock()
		delete(s.subs, id)
		s.mu.Unlock()
	}
}

func (s *State) set(u *auth.User) {
	s.notifyMu.Lock()
	defer s.notifyMu.Unlock()

	s.mu.Lock()
	if s.user == nil && u == nil {
		s.mu.Unlock()
		return
	}
	s.user = u
	subs := make([]func(*auth.User), 0, len(s.subs))
	for id := 0; id < s.nextID; id++ {
		if fn, ok := s.subs[id]; ok {
			subs = append(subs, fn)
		}
	}
	s.mu.Unlock()

	// Subscribers run outside the lock so they may read the state.
	for _, fn := range subs {
		fn(u.Clone())
	}
}
