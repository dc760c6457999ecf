package editor

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"

	"thirdcoast.systems/darkroom/internal/objecturl"
)

// DefaultIdleTimeout is how long an untouched session survives.
const DefaultIdleTimeout = 30 * time.Minute

type sessionKey struct {
	id   string
	view View
}

// Store holds the live editing sessions, one per browser and view.
type Store struct {
	mu       sync.Mutex
	sessions map[sessionKey]*Session
	profiles Profiles
	urls     *objecturl.Table
	idle     time.Duration
}

// NewStore creates a store. A non-positive idle timeout uses DefaultIdleTimeout.
func NewStore(urls *objecturl.Table, profiles Profiles, idle time.Duration) *Store {
	if idle <= 0 {
		idle = DefaultIdleTimeout
	}
	return &Store{
		sessions: make(map[sessionKey]*Session),
		profiles: profiles,
		urls:     urls,
		idle:     idle,
	}
}

// NewID returns a fresh browser session id.
func NewID() string {
	return uuid.NewString()
}

// Profiles returns the view profiles the store was built with.
func (st *Store) Profiles() Profiles {
	return st.profiles
}

// Get returns the session for id and view, creating it on first use.
func (st *Store) Get(id string, view View) (*Session, error) {
	profile, ok := st.profiles[view]
	if !ok {
		return nil, ErrUnknownView
	}

	st.mu.Lock()
	defer st.mu.Unlock()

	key := sessionKey{id: id, view: view}
	if s, ok := st.sessions[key]; ok {
		return s, nil
	}
	s := newSession(id, profile, st.urls, time.Now())
	st.sessions[key] = s
	slog.Debug("editor session created", "session", id, "view", view)
	return s, nil
}

// Lookup returns an existing session without creating one.
func (st *Store) Lookup(id string, view View) (*Session, bool) {
	st.mu.Lock()
	defer st.mu.Unlock()
	s, ok := st.sessions[sessionKey{id: id, view: view}]
	return s, ok
}

// Len returns the number of live sessions.
func (st *Store) Len() int {
	st.mu.Lock()
	defer st.mu.Unlock()
	return len(st.sessions)
}

// Sweep tears down sessions idle for longer than the timeout and returns
// how many were removed. Sessions with an export in flight are kept.
func (st *Store) Sweep() int {
	return st.sweep(time.Now())
}

func (st *Store) sweep(now time.Time) int {
	cutoff := now.Add(-st.idle)

	st.mu.Lock()
	var expired []*Session
	for key, s := range st.sessions {
		if s.idleSince(cutoff) {
			expired = append(expired, s)
			delete(st.sessions, key)
		}
	}
	st.mu.Unlock()

	for _, s := range expired {
		s.Close()
	}
	if len(expired) > 0 {
		slog.Info("expired idle editor sessions", "count", len(expired), "live_urls", st.urls.Len())
	}
	return len(expired)
}

// Run sweeps periodically until ctx is cancelled.
func (st *Store) Run(ctx context.Context) {
	interval := st.idle / 4
	if interval < time.Second {
		interval = time.Second
	}
	if interval > time.Minute {
		interval = time.Minute
	}

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			st.Sweep()
		}
	}
}

// Close tears down every session.
func (st *Store) Close() {
	st.mu.Lock()
	all := make([]*Session, 0, len(st.sessions))
	for key, s := range st.sessions {
		all = append(all, s)
		delete(st.sessions, key)
	}
	st.mu.Unlock()

	for _, s := range all {
		s.Close()
	}
	slog.Info("editor sessions closed", "count", len(all))
}
