package envmap

import (
	"os"
	"sync"
	"unicode/utf8"
)

// Store is the environment variable store a Loader resolves against.
//
// Lookup returns the value for name, ErrNotPresent if the store has no entry
// for it, or ErrNotValidText if the stored value is not valid UTF-8. An entry
// set to the empty string is present.
//
// Set writes or overwrites an entry. For the process store the write persists
// for the remainder of the process lifetime and is inherited by child
// processes spawned afterwards.
//
// Note that a Lookup followed by a Set is not atomic as a pair: another
// goroutine or an external actor mutating the same variable in between is
// unguarded. Callers that need isolation across a whole request must
// serialize calls to Load and to any other environment mutator themselves.
type Store interface {
	Lookup(name string) (string, error)
	Set(name, value string) error
}

type osStore struct{}

// OS returns the Store backed by the process environment.
func OS() Store {
	return osStore{}
}

func (osStore) Lookup(name string) (string, error) {
	value, ok := os.LookupEnv(name)
	if !ok {
		return "", ErrNotPresent
	}
	if !utf8.ValidString(value) {
		return "", ErrNotValidText
	}
	return value, nil
}

func (osStore) Set(name, value string) error {
	return os.Setenv(name, value)
}

// MapStore is an in-memory Store. It is primarily useful for testing code
// that loads configuration without mutating the real process environment.
//
// Thread-safe: all methods can be called concurrently.
type MapStore struct {
	mu   sync.RWMutex
	vars map[string]string
}

// NewMapStore creates a MapStore seeded with a copy of the given entries.
// A nil seed yields an empty store.
func NewMapStore(seed map[string]string) *MapStore {
	vars := make(map[string]string, len(seed))
	for name, value := range seed {
		vars[name] = value
	}
	return &MapStore{vars: vars}
}

// Lookup retrieves an entry from the store.
func (s *MapStore) Lookup(name string) (string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	value, ok := s.vars[name]
	if !ok {
		return "", ErrNotPresent
	}
	if !utf8.ValidString(value) {
		return "", ErrNotValidText
	}
	return value, nil
}

// Set writes or overwrites an entry.
func (s *MapStore) Set(name, value string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.vars[name] = value
	return nil
}

// Unset removes an entry. Useful for tests exercising absence.
func (s *MapStore) Unset(name string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.vars, name)
}
