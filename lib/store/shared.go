package store

import "sync"

// Shared is a handle to a single store that is shared between goroutines.
// Every access goes through Do, which holds one exclusive lock for the
// duration of the callback. There is no concurrent reader path.
type Shared struct {
	mu    sync.Mutex
	store IStore
}

// NewShared wraps a store in a Shared handle
func NewShared(s IStore) *Shared {
	return &Shared{store: s}
}

// Do runs fn with exclusive access to the store.
// The lock is released when fn returns, including when it panics.
func (s *Shared) Do(fn func(IStore) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return fn(s.store)
}
