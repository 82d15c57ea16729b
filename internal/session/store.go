package session

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"

	"shopping-assistant/pkg/log"
)

// ErrNotFound is returned when a session id is unknown to the store.
var ErrNotFound = errors.New("session not found")

// entry pairs a session with its lock. The lock is a 1-slot channel
// rather than a sync.Mutex so acquisition can be bounded by a context.
type entry struct {
	lock    chan struct{}
	session *Session
}

func (e *entry) acquire(ctx context.Context) error {
	select {
	case e.lock <- struct{}{}:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (e *entry) tryAcquire() bool {
	select {
	case e.lock <- struct{}{}:
		return true
	default:
		return false
	}
}

func (e *entry) release() {
	<-e.lock
}

// Store is the process-wide, concurrency-safe session registry.
// Access to each session's mutable state is serialized through its
// per-entry lock; distinct sessions never contend with each other.
// The store is empty on startup and holds nothing across restarts.
type Store struct {
	mu       sync.RWMutex
	sessions map[string]*entry

	idleTTL  time.Duration
	maxTurns int
	l        log.Logger
	now      func() time.Time
}

// NewStore creates an empty session store.
func NewStore(idleTTL time.Duration, maxTurns int, l log.Logger) *Store {
	return &Store{
		sessions: make(map[string]*entry),
		idleTTL:  idleTTL,
		maxTurns: maxTurns,
		l:        l,
		now:      time.Now,
	}
}

// GetOrCreate resolves a session id. A known id is returned as-is; an
// empty or unknown id yields a fresh session under a newly generated
// id. It never fails.
func (s *Store) GetOrCreate(sessionID string) string {
	s.mu.Lock()
	defer s.mu.Unlock()

	if sessionID != "" {
		if _, ok := s.sessions[sessionID]; ok {
			return sessionID
		}
	}

	id := uuid.NewString()
	s.sessions[id] = &entry{
		lock:    make(chan struct{}, 1),
		session: newSession(id, s.now(), s.maxTurns),
	}
	s.l.Infof(context.Background(), "created session %s", id)
	return id
}

// WithSession runs fn with exclusive access to the session's state.
// The lock is released on every exit path, including fn failure, and
// acquisition is bounded by ctx so an expired request never leaves the
// session locked. Last-activity is bumped after fn returns.
func (s *Store) WithSession(ctx context.Context, sessionID string, fn func(*Session) error) error {
	e, ok := s.entry(sessionID)
	if !ok {
		return ErrNotFound
	}

	if err := e.acquire(ctx); err != nil {
		return err
	}
	defer e.release()

	err := fn(e.session)
	e.session.LastActivity = s.now()
	return err
}

// WithSessionCreate resolves the id per GetOrCreate and runs fn under
// the session's lock. If the sweeper removes the session between
// resolution and acquisition, the id is re-resolved once more, so the
// chat path never observes ErrNotFound.
func (s *Store) WithSessionCreate(ctx context.Context, sessionID string, fn func(*Session) error) (string, error) {
	var (
		id  string
		err error
	)
	for attempt := 0; attempt < 2; attempt++ {
		id = s.GetOrCreate(sessionID)
		err = s.WithSession(ctx, id, fn)
		if !errors.Is(err, ErrNotFound) {
			return id, err
		}
		sessionID = ""
	}
	return id, err
}

// GetHistory returns the most recent maxTurns turns of a session.
func (s *Store) GetHistory(ctx context.Context, sessionID string, maxTurns int) ([]Turn, error) {
	var turns []Turn
	err := s.WithSession(ctx, sessionID, func(sess *Session) error {
		turns = sess.History(maxTurns)
		return nil
	})
	return turns, err
}

// GetInfo returns a consistent snapshot of a session's metadata and
// transcript.
func (s *Store) GetInfo(ctx context.Context, sessionID string) (*Info, error) {
	var info *Info
	err := s.WithSession(ctx, sessionID, func(sess *Session) error {
		prefs := make(map[string]any, len(sess.Preferences))
		for k, v := range sess.Preferences {
			prefs[k] = v
		}
		info = &Info{
			SessionID:    sess.ID,
			CreatedAt:    sess.CreatedAt,
			LastActivity: sess.LastActivity,
			TurnCount:    len(sess.Turns),
			Preferences:  prefs,
			Turns:        sess.History(0),
		}
		return nil
	})
	return info, err
}

// Delete removes a session and reports whether it existed. Deleting an
// absent session is not an error. The per-session lock is taken first
// so an in-flight request is never yanked out from under its feet;
// acquisition is bounded by ctx so a long chat cannot wedge the call.
func (s *Store) Delete(ctx context.Context, sessionID string) (bool, error) {
	e, ok := s.entry(sessionID)
	if !ok {
		return false, nil
	}

	if err := e.acquire(ctx); err != nil {
		return false, err
	}
	defer e.release()

	s.mu.Lock()
	_, existed := s.sessions[sessionID]
	delete(s.sessions, sessionID)
	s.mu.Unlock()

	return existed, nil
}

// Sweep removes every session idle for longer than idleTTL and returns
// the number removed. Sessions whose lock is held are skipped: a held
// lock means an in-flight request, which by definition is not idle.
func (s *Store) Sweep(now time.Time, idleTTL time.Duration) int {
	s.mu.RLock()
	candidates := make(map[string]*entry, len(s.sessions))
	for id, e := range s.sessions {
		candidates[id] = e
	}
	s.mu.RUnlock()

	removed := 0
	for id, e := range candidates {
		if !e.tryAcquire() {
			continue
		}
		if now.Sub(e.session.LastActivity) > idleTTL {
			s.mu.Lock()
			if _, still := s.sessions[id]; still {
				delete(s.sessions, id)
				removed++
			}
			s.mu.Unlock()
		}
		e.release()
	}

	if removed > 0 {
		s.l.Infof(context.Background(), "swept %d expired sessions", removed)
	}
	return removed
}

// StartSweeper runs the periodic expiration sweep until ctx is
// cancelled. It runs on its own timer, never on the request path.
func (s *Store) StartSweeper(ctx context.Context, interval time.Duration) {
	go func() {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()
		for {
			select {
			case <-ticker.C:
				s.Sweep(s.now(), s.idleTTL)
			case <-ctx.Done():
				s.l.Info(ctx, "session sweeper stopped")
				return
			}
		}
	}()
}

// SweepNow triggers an immediate sweep with the store's configured TTL.
func (s *Store) SweepNow() int {
	return s.Sweep(s.now(), s.idleTTL)
}

// Count reports active (within the idle TTL) and total sessions.
func (s *Store) Count() (active, total int) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	now := s.now()
	total = len(s.sessions)
	for _, e := range s.sessions {
		if now.Sub(e.session.LastActivity) <= s.idleTTL {
			active++
		}
	}
	return active, total
}

// Stats reports store-wide counters. Reads are best-effort snapshots;
// the store lock protects the map, not the per-session contents.
func (s *Store) Stats() Stats {
	s.mu.RLock()
	defer s.mu.RUnlock()

	now := s.now()
	stats := Stats{TotalSessions: len(s.sessions)}

	for _, e := range s.sessions {
		sess := e.session
		stats.TotalTurns += len(sess.Turns)
		if now.Sub(sess.LastActivity) <= s.idleTTL {
			stats.ActiveSessions++
		}
		created := sess.CreatedAt
		if stats.OldestSession == nil || created.Before(*stats.OldestSession) {
			t := created
			stats.OldestSession = &t
		}
		if stats.NewestSession == nil || created.After(*stats.NewestSession) {
			t := created
			stats.NewestSession = &t
		}
	}
	stats.ExpiredSessions = stats.TotalSessions - stats.ActiveSessions
	return stats
}

func (s *Store) entry(sessionID string) (*entry, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	e, ok := s.sessions[sessionID]
	return e, ok
}
