// Package session holds the client's in-memory authentication state: the
// single record the rest of the application observes to decide who, if
// anyone, is signed in.
package session

import (
	"sync"

	"github.com/aleksmv/userdesk/internal/client/models"
)

// Snapshot is a point-in-time view of the session. User is nil when no
// identity is established. Loading is true only between startup (or a
// login submission) and the first resolution of identity.
type Snapshot struct {
	User    *models.User
	Loading bool
}

// Session is the single source of truth for the current identity.
//
// Access is serialized with a mutex: the gateway invalidates on credential
// rejection while resolver goroutines install the authoritative profile,
// and both race on this record. Every asynchronous write carries the epoch
// it was issued under; Clear advances the epoch, so a late result from
// before a logout is discarded instead of resurrecting the user.
type Session struct {
	mu      sync.Mutex
	user    *models.User
	loading bool
	epoch   uint64
}

func New() *Session {
	return &Session{}
}

// Snapshot returns a copy of the current state. The returned user is a
// copy; mutating it does not touch the session.
func (s *Session) Snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return Snapshot{User: cloneUser(s.user), Loading: s.loading}
}

// BeginLoading opens an identity-resolution window and returns the epoch
// the eventual result must present to SetUser or EndLoading.
func (s *Session) BeginLoading() uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.loading = true
	return s.epoch
}

// SetUser installs u and closes the loading window, provided epoch is
// still current. It reports whether the write was applied; a stale epoch
// leaves the session untouched.
func (s *Session) SetUser(u *models.User, epoch uint64) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if epoch != s.epoch {
		return false
	}
	s.user = cloneUser(u)
	s.loading = false
	return true
}

// EndLoading closes the loading window without changing the user. Stale
// epochs are ignored.
func (s *Session) EndLoading(epoch uint64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if epoch != s.epoch {
		return
	}
	s.loading = false
}

// Clear drops the current user and advances the epoch, invalidating every
// in-flight result issued before the call.
func (s *Session) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.user = nil
	s.loading = false
	s.epoch++
}

// Epoch returns the current epoch.
func (s *Session) Epoch() uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.epoch
}

// IsAdmin reports whether the current user holds the ADMIN role. The role
// is read live on every call and never cached, so a server-side role
// change takes effect on the next profile resolution.
func (s *Session) IsAdmin() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.user.IsAdmin()
}

func cloneUser(u *models.User) *models.User {
	if u == nil {
		return nil
	}
	c := *u
	return &c
}
