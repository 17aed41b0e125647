package recipes

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/crossingbook/crossingbook/internal/models"
)

// MemoryRepository is an in-memory Repository used by unit tests and when the
// service runs without a MongoDB connection. Search degrades to a
// case-insensitive substring match over the same fields the Mongo text index
// covers.
type MemoryRepository struct {
	mu    sync.RWMutex
	store map[string]*models.Recipe
	seq   int
}

func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{store: make(map[string]*models.Recipe)}
}

func (m *MemoryRepository) Insert(ctx context.Context, rec *models.Recipe) (*models.Recipe, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, r := range m.store {
		if r.RecipeName == rec.RecipeName {
			return nil, ErrDuplicateName
		}
	}
	m.seq++
	cp := *rec
	cp.ID = fmt.Sprintf("recipe_%d_%d", m.seq, time.Now().UnixNano())
	m.store[cp.ID] = &cp
	ret := cp
	return &ret, nil
}

func (m *MemoryRepository) GetByID(ctx context.Context, id string) (*models.Recipe, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	r, ok := m.store[id]
	if !ok {
		return nil, ErrNotFound
	}
	cp := *r
	return &cp, nil
}

func (m *MemoryRepository) GetByName(ctx context.Context, name string) (*models.Recipe, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	for _, r := range m.store {
		if r.RecipeName == name {
			cp := *r
			return &cp, nil
		}
	}
	return nil, nil
}

func (m *MemoryRepository) List(ctx context.Context) ([]*models.Recipe, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]*models.Recipe, 0, len(m.store))
	for _, r := range m.store {
		cp := *r
		out = append(out, &cp)
	}
	return out, nil
}

func (m *MemoryRepository) Search(ctx context.Context, query string) ([]*models.Recipe, error) {
	if query == "" {
		return m.List(ctx)
	}
	q := strings.ToLower(query)
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := []*models.Recipe{}
	for _, r := range m.store {
		hay := strings.ToLower(r.RecipeName + " " + r.Usage + " " + r.MaterialsNeeded)
		if strings.Contains(hay, q) {
			cp := *r
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (m *MemoryRepository) Replace(ctx context.Context, id string, rec *models.Recipe) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.store[id]; !ok {
		// matches Mongo's ReplaceOne on a missing id: nothing happens
		return nil
	}
	for rid, r := range m.store {
		if rid != id && r.RecipeName == rec.RecipeName {
			return ErrDuplicateName
		}
	}
	cp := *rec
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
