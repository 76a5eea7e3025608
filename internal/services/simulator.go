package services

import (
	"math/rand"
	"sync"

	"portfolio-simulator/internal/models"
)

// Simulator perturbs catalog prices with a volatility-weighted random
// walk. The walk is not mean-reverting, repeated steps can drift a price
// arbitrarily over a session.
type Simulator struct {
	catalog *Catalog
	mu      sync.Mutex // rand.Rand is not safe for concurrent use
	rng     *rand.Rand
}

// NewSimulator wires a simulator to the shared catalog. Tests pass a
// seeded rng to get reproducible walks.
func NewSimulator(catalog *Catalog, rng *rand.Rand) *Simulator {
	return &Simulator{catalog: catalog, rng: rng}
}

// Step moves every catalog price once and returns the updated quotes.
// Each price moves by at most ±4% scaled by the instrument's volatility.
func (s *Simulator) Step() []models.Instrument {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.catalog.mutate(func(inst *models.Instrument) {
		delta := (s.rng.Float64() - 0.5) * 0.04 * inst.Volatility * 2
		inst.Price = round2(inst.Price * (1 + delta))
		inst.Change = round2(delta * 100)
	})

	return s.catalog.All()
}
