package generator

import "sync"

// SequenceStore holds the counters behind serial fields, keyed by
// "<type>.<field>". Generators of the same type share a counter, so a child
// schema continues its parent's sequence. It is safe for concurrent use.
type SequenceStore struct {
	mu        sync.RWMutex
	sequences map[string]int64
}

// NewSequenceStore creates an empty store.
func NewSequenceStore() *SequenceStore {
	return &SequenceStore{sequences: make(map[string]int64)}
}

// Next returns the current value of a sequence and then increments it. A new
// sequence begins at start.
func (s *SequenceStore) Next(name string, start int64) int64 {
	s.mu.Lock()
	defer s.mu.Unlock()

	val, ok := s.sequences[name]
	if !ok {
		val = start
	}
	s.sequences[name] = val + 1
	return val
}

// Current returns the value Next would return, or 0 for an unknown sequence.
func (s *SequenceStore) Current(name string) int64 {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.sequences[name]
}

// Reset forgets a sequence so it restarts at its start value.
func (s *SequenceStore) Reset(name string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.sequences, name)
}
