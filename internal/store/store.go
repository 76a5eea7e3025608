package store

import (
	"context"
	"errors"
	"sync"

	"portfolio-simulator/internal/models"
)

// ErrNotFound reports an id with no stored portfolio.
var ErrNotFound = errors.New("portfolio not found")

// PortfolioStore keeps portfolios by id. The engine only needs get and
// put, which lets a real backing store replace the in-memory default
// without touching engine logic.
type PortfolioStore interface {
	Get(ctx context.Context, id string) (*models.Portfolio, error)
	Put(ctx context.Context, portfolio *models.Portfolio) error
}

// MemoryStore is the default in-process store.
type MemoryStore struct {
	mu         sync.RWMutex
	portfolios map[string]*models.Portfolio
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{portfolios: make(map[string]*models.Portfolio)}
}

func (s *MemoryStore) Get(_ context.Context, id string) (*models.Portfolio, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	p, ok := s.portfolios[id]
	if !ok {
		return nil, ErrNotFound
	}
	return p, nil
}

func (s *MemoryStore) Put(_ context.Context, portfolio *models.Portfolio) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.portfolios[portfolio.ID] = portfolio
	return nil
}
