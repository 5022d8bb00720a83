package locale

import "sync"

// PrefStore holds each user's selected display language for the lifetime of
// the process. Entries are never deleted; absence resolves to the default
// language passed at construction. Safe for concurrent use.
type PrefStore struct {
	mu          sync.RWMutex
	prefs       map[int64]Code
	defaultLang Code
}

// NewPrefStore creates a PrefStore with the given default language.
func NewPrefStore(defaultLang Code) *PrefStore {
	if !defaultLang.IsValid() {
		defaultLang = English
	}
	return &PrefStore{
		prefs:       make(map[int64]Code),
		defaultLang: defaultLang,
	}
}

// Set stores or overwrites the user's language. Invalid codes are ignored.
func (s *PrefStore) Set(userID int64, lang Code) {
	if !lang.IsValid() {
		return
	}
	s.mu.Lock()
	s.prefs[userID] = lang
	s.mu.Unlock()
}

// Get returns the user's language, or the default when none is stored.
func (s *PrefStore) Get(userID int64) Code {
	s.mu.RLock()
	lang, ok := s.prefs[userID]
	s.mu.RUnlock()
	if !ok {
		return s.defaultLang
	}
	return lang
}
