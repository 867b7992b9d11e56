package session

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
)

// CookieName is the cookie carrying the session id.
const CookieName = "photosuite_sid"

type entry struct {
	session  *Session
	lastSeen time.Time
}

// Store keeps one Session per browser, keyed by an opaque id. Sessions live
// in memory only and are dropped by Sweep once idle.
type Store struct {
	mu       sync.Mutex
	sessions map[string]*entry
	deps     Deps
	now      func() time.Time
}

// NewStore returns an empty store whose sessions share deps. A shared Refs
// registry is created when deps.Refs is nil.
func NewStore(deps Deps) *Store {
	if deps.Refs == nil {
		deps.Refs = NewRefs()
	}
	return &Store{sessions: make(map[string]*entry), deps: deps, now: time.Now}
}

// Refs returns the registry backing every session in the store.
func (st *Store) Refs() *Refs {
	return st.deps.Refs
}

// Get returns the session for id, creating a fresh one when id is unknown
// or empty. The returned id is the one the caller should persist.
func (st *Store) Get(id string) (string, *Session) {
	st.mu.Lock()
	defer st.mu.Unlock()
	now := st.now()
	if e, ok := st.sessions[id]; ok && id != "" {
		e.lastSeen = now
		return id, e.session
	}
	id = uuid.NewString()
	s := New(st.deps)
	st.sessions[id] = &entry{session: s, lastSeen: now}
	return id, s
}

// Lookup returns an existing session without creating one.
func (st *Store) Lookup(id string) (*Session, bool) {
	st.mu.Lock()
	defer st.mu.Unlock()
	e, ok := st.sessions[id]
	if !ok {
		return nil, false
	}
	e.lastSeen = st.now()
	return e.session, true
}

// Blank returns an untracked Idle session, for rendering callers that have
// none yet.
func (st *Store) Blank() *Session {
	return New(st.deps)
}

// Drop resets and forgets the session for id.
func (st *Store) Drop(id string) {
	st.mu.Lock()
	e, ok := st.sessions[id]
	delete(st.sessions, id)
	st.mu.Unlock()
	if ok {
		e.session.Reset()
	}
}

// Sweep drops every session not seen for longer than idle and returns how
// many were dropped. Sessions with an attempt in flight are kept.
func (st *Store) Sweep(idle time.Duration) int {
	st.mu.Lock()
	cutoff := st.now().Add(-idle)
	var expired []*Session
	for id, e := range st.sessions {
		if e.lastSeen.After(cutoff) || e.session.busy() {
			continue
		}
		delete(st.sessions, id)
		expired = append(expired, e.session)
	}
	st.mu.Unlock()
	for _, s := range expired {
		s.Reset()
	}
	return len(expired)
}

// RunSweeper calls Sweep every interval until ctx is done.
func (st *Store) RunSweeper(ctx context.Context, interval, idle time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if n := st.Sweep(idle); n > 0 {
				st.deps.logger().Debug().Int("dropped", n).Int("remaining", st.Len()).Msg("session: swept idle sessions")
			}
		}
	}
}

// Len returns the number of tracked sessions.
func (st *Store) Len() int {
	st.mu.Lock()
	defer st.mu.Unlock()
	return len(st.sessions)
}
