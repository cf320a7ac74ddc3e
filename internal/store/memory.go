package store

import (
	"context"
	"sync"

	"github.com/fundora/ledger/internal/domain"
)

// MemoryStore implements Store with in-memory state. Used for tests and
// ephemeral runs without a database; nothing survives a restart.
type MemoryStore struct {
	mu         sync.RWMutex
	strategies []domain.Strategy // creation order
	currentID  string
}

// NewMemoryStore creates an empty in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{}
}

func (m *MemoryStore) ListStrategies(_ context.Context) ([]domain.Strategy, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	out := make([]domain.Strategy, len(m.strategies))
	for i, s := range m.strategies {
		out[i] = s.Clone()
	}
	return out, nil
}

func (m *MemoryStore) GetStrategy(_ context.Context, id string) (domain.Strategy, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	for _, s := range m.strategies {
		if s.ID == id {
			return s.Clone(), nil
		}
	}
	return domain.Strategy{}, ErrNotFound
}

func (m *MemoryStore) SaveStrategy(_ context.Context, s domain.Strategy) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	// Store a copy so later caller mutations cannot reach in.
	for i, existing := range m.strategies {
		if existing.ID == s.ID {
			m.strategies[i] = s.Clone()
			return nil
		}
	}
	m.strategies = append(m.strategies, s.Clone())
	return nil
}

func (m *MemoryStore) CurrentStrategyID(_ context.Context) (string, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.currentID, nil
}

func (m *MemoryStore) SetCurrentStrategyID(_ context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	for _, s := range m.strategies {
		if s.ID == id {
			m.currentID = id
			return nil
		}
	}
	return ErrNotFound
}
