package journal

import (
	"context"
	"fmt"
	"sort"
	"sync"
)

// MemoryStore is an in-process Store, newest entries first in listings.
type MemoryStore struct {
	mu      sync.RWMutex
	entries map[string]Entry
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{entries: make(map[string]Entry)}
}

func (m *MemoryStore) Add(_ context.Context, e Entry) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, exists := m.entries[e.ID]; exists {
		return fmt.Errorf("add entry %s: duplicate id", e.ID)
	}
	m.entries[e.ID] = e
	return nil
}

func (m *MemoryStore) Get(_ context.Context, id string) (Entry, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	e, ok := m.entries[id]
	if !ok {
		return Entry{}, fmt.Errorf("get entry %s: %w", id, ErrNotFound)
	}
	return e, nil
}

func (m *MemoryStore) Update(_ context.Context, e Entry) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	prev, ok := m.entries[e.ID]
	if !ok {
		return fmt.Errorf("update entry %s: %w", e.ID, ErrNotFound)
	}
	e.EntryDate = prev.EntryDate
	e.CreatedAt = prev.CreatedAt
	m.entries[e.ID] = e
	return nil
}

func (m *MemoryStore) Delete(_ context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.entries[id]; !ok {
		return fmt.Errorf("delete entry %s: %w", id, ErrNotFound)
	}
	delete(m.entries, id)
	return nil
}

func (m *MemoryStore) List(_ context.Context, f Filter) ([]Entry, error) {
	if err := f.Validate(); err != nil {
		return nil, err
	}
	m.mu.RLock()
	out := make([]Entry, 0, len(m.entries))
	for _, e := range m.entries {
		if f.Matches(e) {
			out = append(out, e)
		}
	}
	m.mu.RUnlock()

	sort.Slice(out, func(i, j int) bool {
		if !out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].CreatedAt.After(out[j].CreatedAt)
		}
		return out[i].ID < out[j].ID
	})

	if f.Offset > 0 {
		if f.Offset >= len(out) {
			return []Entry{}, nil
		}
		out = out[f.Offset:]
	}
	if f.Limit > 0 && len(out) > f.Limit {
		out = out[:f.Limit]
	}
	return out, nil
}

func (m *MemoryStore) Count(ctx context.Context, f Filter) (int, error) {
	all, err := m.List(ctx, Filter{From: f.From, To: f.To})
	if err != nil {
		return 0, err
	}
	return len(all), nil
}
