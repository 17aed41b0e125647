package users

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/crossingbook/crossingbook/internal/models"
)

// MemoryRepository is an in-memory Repository used by unit tests and when the
// service runs without a MongoDB connection.
type MemoryRepository struct {
	mu     sync.RWMutex
	byName map[string]*models.User // keyed by username
	seq    int
}

func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{byName: make(map[string]*models.User)}
}

func (m *MemoryRepository) Create(ctx context.Context, u *models.User) (*models.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.byName[u.Username]; ok {
		return nil, ErrDuplicateUsername
	}
	m.seq++
	cp := *u
	cp.ID = fmt.Sprintf("user_%d_%d", m.seq, time.Now().UnixNano())
	m.byName[cp.Username] = &cp
	ret := cp
	return &ret, nil
}

func (m *MemoryRepository) GetByUsername(ctx context.Context, username string) (*models.User, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	u, ok := m.byName[username]
	if !ok {
		return nil, nil
	}
	cp := *u
	return &cp, nil
}
