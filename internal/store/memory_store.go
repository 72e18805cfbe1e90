package store

import "sync"

// Keyed is any record with a stable identifier.
type Keyed interface {
	Key() string
}

// MemoryStore keeps a thread-safe snapshot of one collection in memory,
// preserving the order the upstream delivered it in.
type MemoryStore[T Keyed] struct {
	mu    sync.RWMutex
	items []T
	index map[string]int
}

// NewMemoryStore constructs an empty MemoryStore.
func NewMemoryStore[T Keyed]() *MemoryStore[T] {
	return &MemoryStore[T]{
		items: []T{},
		index: make(map[string]int),
	}
}

// List returns a copy of the current snapshot in upstream order.
func (s *MemoryStore[T]) List() []T {
	s.mu.RLock()
	defer s.mu.RUnlock()

	result := make([]T, len(s.items))
	copy(result, s.items)
	return result
}

// Get retrieves a record by key. When the upstream repeats a key the last occurrence wins.
func (s *MemoryStore[T]) Get(key string) (T, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	i, ok := s.index[key]
	if !ok {
		var zero T
		return zero, false
	}
	return s.items[i], true
}

// Len returns the number of records in the snapshot.
func (s *MemoryStore[T]) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.items)
}

// Replace swaps the existing snapshot for a new one.
func (s *MemoryStore[T]) Replace(items []T) {
	next := make([]T, len(items))
	copy(next, items)
	index := make(map[string]int, len(next))
	for i, item := range next {
		index[item.Key()] = i
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.items = next
	s.index = index
}
