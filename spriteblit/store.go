package spriteblit

import "sync"

// Handle identifies a bitmap inside a Store. Handles are issued by Insert
// and stay valid for the lifetime of the Store.
type Handle int

// Store is an append-only bitmap arena. Entries are never removed or
// reordered, so a handle taken once may be used from any goroutine without
// revalidation. Reads share a lock; Insert takes it exclusively, which is
// what makes concurrent load-time baking safe alongside render-time reads.
type Store struct {
	mu      sync.RWMutex
	bitmaps []*Bitmap
}

// NewStore creates an empty store.
func NewStore() *Store {
	return &Store{}
}

// Insert appends a bitmap and returns its handle.
func (s *Store) Insert(b *Bitmap) Handle {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.bitmaps = append(s.bitmaps, b)
	return Handle(len(s.bitmaps) - 1)
}

// Get returns the bitmap behind a handle. Handles only ever come from
// Insert, so an out-of-range value means corrupted program state and Get
// panics rather than returning an error.
func (s *Store) Get(h Handle) *Bitmap {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.bitmaps[h]
}

// Len reports how many bitmaps the store holds.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.bitmaps)
}
