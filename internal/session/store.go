// Package session holds the per-chat search state: the active result list,
// the pagination cursor, and the pagination math used to render one page.
//
// Sessions are ephemeral, in-memory state. A chat has at most one session; a
// new search replaces any existing one wholesale. The [Store] additionally
// exposes a per-chat lock so callback handling can make its check-then-act
// sequences (lookup, then mutate or delete) atomic per chat — a stale "page"
// arriving after a "stop" must observe the deletion, not resurrect state.
package session

import (
	"sync"

	"github.com/ultraxas/musicbot/pkg/provider/media"
)

// Session is one chat's active search. Results are fixed at creation in
// provider rank order; only Page mutates afterwards.
type Session struct {
	Results []media.Candidate
	Page    int
}

// Store maps chat IDs to their active Session. All methods are safe for
// concurrent use. Individual operations are atomic; multi-step sequences
// take the per-chat lock via [Store.Lock].
type Store struct {
	mu       sync.Mutex
	sessions map[int64]Session
	locks    map[int64]*sync.Mutex
}

// NewStore creates an empty Store.
func NewStore() *Store {
	return &Store{
		sessions: make(map[int64]Session),
		locks:    make(map[int64]*sync.Mutex),
	}
}

// Create unconditionally installs a new session for chatID at page 0,
// discarding any existing one.
func (s *Store) Create(chatID int64, results []media.Candidate) {
	s.mu.Lock()
	s.sessions[chatID] = Session{Results: results}
	s.mu.Unlock()
}

// Get returns the session for chatID. The boolean reports presence.
func (s *Store) Get(chatID int64) (Session, bool) {
	s.mu.Lock()
	sess, ok := s.sessions[chatID]
	s.mu.Unlock()
	return sess, ok
}

// Delete removes the session for chatID. Deleting an absent session is a
// no-op.
func (s *Store) Delete(chatID int64) {
	s.mu.Lock()
	delete(s.sessions, chatID)
	s.mu.Unlock()
}

// SetPage updates the pagination cursor. A no-op when chatID has no session;
// callers check existence via Get first.
func (s *Store) SetPage(chatID int64, page int) {
	s.mu.Lock()
	if sess, ok := s.sessions[chatID]; ok {
		sess.Page = page
		s.sessions[chatID] = sess
	}
	s.mu.Unlock()
}

// Len returns the number of active sessions.
func (s *Store) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.sessions)
}

// Lock acquires the per-chat mutex for chatID and returns its unlock
// function. Events for the same chat serialise on this lock so a lookup and
// the mutation it decides on execute without interleaving.
func (s *Store) Lock(chatID int64) (unlock func()) {
	s.mu.Lock()
	l, ok := s.locks[chatID]
	if !ok {
		l = &sync.Mutex{}
		s.locks[chatID] = l
	}
	s.mu.Unlock()

	l.Lock()
	return l.Unlock
}
