package storage

import "sync"

// MemoryStore is a Storer that never touches disk.
type MemoryStore[T ValidatingSpec] struct {
	mu      sync.RWMutex
	records map[string]T
}

// NewMemoryStore creates a store holding the given records.
func NewMemoryStore[T ValidatingSpec](records map[string]T) *MemoryStore[T] {
	s := &MemoryStore[T]{records: make(map[string]T, len(records))}
	for id, v := range records {
		s.records[id] = v
	}
	return s
}

func (s *MemoryStore[T]) Save(id string, o T) error {
	if err := o.Validate(); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.records[id] = o
	return nil
}

func (s *MemoryStore[T]) Get(id string) T {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.records[id]
}

func (s *MemoryStore[T]) GetAll() map[string]T {
	s.mu.RLock()
	defer s.mu.RUnlock()

	vals := make(map[string]T, len(s.records))
	for id, v := range s.records {
		vals[id] = v
	}
	return vals
}
