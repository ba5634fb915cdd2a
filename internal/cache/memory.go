package cache

import (
	"context"
	"sync"

	"heron-feed/internal/models"
	"heron-feed/internal/utils"
)

// Memory is the in-process cache backend, the default when no external
// store is configured.
type Memory struct {
	mu      sync.RWMutex
	authors map[string]models.Author
}

// NewMemory returns an empty in-memory cache.
func NewMemory() *Memory {
	return &Memory{authors: make(map[string]models.Author)}
}

func (m *Memory) Put(_ context.Context, author *models.Author) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.authors[author.ID] = *author
	return nil
}

func (m *Memory) Get(_ context.Context, id string) (*models.Author, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	author, ok := m.authors[id]
	if !ok {
		return nil, utils.NewAppError(utils.ErrNotFound, "author not cached: "+id, nil)
	}
	return &author, nil
}
