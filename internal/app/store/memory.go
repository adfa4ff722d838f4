package store

import (
	"context"
	"slices"
	"sync"

	"github.com/TAPAN-2835/Business-Website/internal/domain/models"
)

// Memory keeps messages in process. Used in tests and when no database
// path is configured.
type Memory struct {
	mu    sync.RWMutex
	byID  map[string]int
	items []models.ContactMessage
}

// NewMemory returns an empty Memory store.
func NewMemory() *Memory {
	return &Memory{byID: make(map[string]int)}
}

func (m *Memory) Save(ctx context.Context, msg models.ContactMessage) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.byID[msg.ID]; ok {
		return ErrDuplicateID
	}
	m.byID[msg.ID] = len(m.items)
	m.items = append(m.items, msg)
	return nil
}

func (m *Memory) Get(ctx context.Context, id string) (models.ContactMessage, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	i, ok := m.byID[id]
	if !ok {
		return models.ContactMessage{}, ErrNotFound
	}
	return m.items[i], nil
}

func (m *Memory) Recent(ctx context.Context, limit int) ([]models.ContactMessage, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := slices.Clone(m.items)
	slices.SortStableFunc(out, func(a, b models.ContactMessage) int {
		return b.CreatedAt.Compare(a.CreatedAt)
	})
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (m *Memory) MarkNotified(ctx context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	i, ok := m.byID[id]
	if !ok {
		return ErrNotFound
	}
	m.items[i].Notified = true
	return nil
}

func (m *Memory) Ping(ctx context.Context) error { return ctx.Err() }

func (m *Memory) Close() error { return nil }
