package repository

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/linkmark/linkmark-api/internal/bookmarks"
)

// MemoryRepo is a simple in-memory repository used for unit tests and for
// running the service without a database.
type MemoryRepo struct {
	mu    sync.RWMutex
	store map[string]*bookmarks.Bookmark
}

func NewMemoryRepo() *MemoryRepo {
	return &MemoryRepo{store: make(map[string]*bookmarks.Bookmark)}
}

func (m *MemoryRepo) Create(ctx context.Context, b *bookmarks.Bookmark) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if b.ID == "" {
		b.ID = uuid.NewString()
	}
	if b.CreatedAt.IsZero() {
		b.CreatedAt = time.Now().UTC()
	}
	cp := *b
	m.store[b.ID] = &cp
	return nil
}

func (m *MemoryRepo) Get(ctx context.Context, id string) (*bookmarks.Bookmark, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if b, ok := m.store[id]; ok {
		cp := *b
		return &cp, nil
	}
	return nil, ErrNotFound
}

func (m *MemoryRepo) ListByOwner(ctx context.Context, userID string) ([]*bookmarks.Bookmark, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := []*bookmarks.Bookmark{}
	for _, b := range m.store {
		if b.UserID == userID {
			cp := *b
			out = append(out, &cp)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].ID > out[j].ID
		}
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	return out, nil
}

func (m *MemoryRepo) Delete(ctx context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.store[id]; !ok {
		return ErrNotFound
	}
	delete(m.store, id)
	return nil
}
