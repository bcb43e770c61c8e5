package history

import (
	"sync"

	"sass-calc/internal/calculator/models"
)

// MemoryStore: хранилище по умолчанию, срез в памяти процесса.
type MemoryStore struct {
	mu      sync.Mutex
	entries []models.HistoryEntry
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{}
}

func (s *MemoryStore) Prepend(entry models.HistoryEntry, limit int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	keep := len(s.entries)
	if limit > 0 && keep > limit-1 {
		keep = limit - 1
	}

	next := make([]models.HistoryEntry, 0, keep+1)
	next = append(next, entry)
	next = append(next, s.entries[:keep]...)
	s.entries = next
	return nil
}

func (s *MemoryStore) List() ([]models.HistoryEntry, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]models.HistoryEntry, len(s.entries))
	copy(out, s.entries)
	return out, nil
}

func (s *MemoryStore) Clear() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.entries = nil
	return nil
}

func (s *MemoryStore) Count() (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	return len(s.entries), nil
}
