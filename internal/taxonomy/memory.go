package taxonomy

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/crossingbook/crossingbook/internal/models"
)

// MemoryRepository is an in-memory Repository used by unit tests and when the
// service runs without a MongoDB connection.
type MemoryRepository struct {
	mu    sync.RWMutex
	store map[string]*models.RecipeType
	seq   int
}

func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{store: make(map[string]*models.RecipeType)}
}

func (m *MemoryRepository) Insert(ctx context.Context, t *models.RecipeType) (*models.RecipeType, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.seq++
	cp := *t
	cp.ID = fmt.Sprintf("type_%d_%d", m.seq, time.Now().UnixNano())
	m.store[cp.ID] = &cp
	ret := cp
	return &ret, nil
}

func (m *MemoryRepository) GetByID(ctx context.Context, id string) (*models.RecipeType, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	t, ok := m.store[id]
	if !ok {
		return nil, ErrNotFound
	}
	cp := *t
	return &cp, nil
}

func (m *MemoryRepository) List(ctx context.Context) ([]*models.RecipeType, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]*models.RecipeType, 0, len(m.store))
	for _, t := range m.store {
		cp := *t
		out = append(out, &cp)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func (m *MemoryRepository) Replace(ctx context.Context, id string, t *models.RecipeType) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.store[id]; !ok {
		return nil
	}
	cp := *t
	cp.ID = id
	m.store[id] = &cp
	return nil
}

func (m *MemoryRepository) Delete(ctx context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.store, id)
	return nil
}
