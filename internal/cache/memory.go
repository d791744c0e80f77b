package cache

import (
	"context"
	"sync"

	"github.com/google/uuid"
)

// Memory is an in-process Metadata store, used when no Redis address is
// configured. Contents do not survive a restart; the resolver falls back to
// the relational rows in that case.
type Memory struct {
	mu       sync.RWMutex
	weddings map[uuid.UUID]uuid.UUID
}

func NewMemory() *Memory {
	return &Memory{weddings: make(map[uuid.UUID]uuid.UUID)}
}

func (m *Memory) WeddingID(_ context.Context, userID uuid.UUID) (uuid.UUID, bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	id, ok := m.weddings[userID]
	return id, ok, nil
}

func (m *Memory) SetWeddingID(_ context.Context, userID, weddingID uuid.UUID) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.weddings[userID] = weddingID
	return nil
}

func (m *Memory) ClearWeddingID(_ context.Context, userID uuid.UUID) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.weddings, userID)
	return nil
}
