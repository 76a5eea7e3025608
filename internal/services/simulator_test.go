package services

import (
	"math"
	"math/rand"
	"testing"

	"portfolio-simulator/internal/models"
)

func TestSimulatorStepMatchesWalkFormula(t *testing.T) {
	catalog := NewCatalog()
	before := catalog.All()

	sim := NewSimulator(catalog, rand.New(rand.NewSource(7)))
	after := sim.Step()

	replay := rand.New(rand.NewSource(7))
	for i, inst := range before {
		delta := (replay.Float64() - 0.5) * 0.04 * inst.Volatility * 2
		wantPrice := round2(inst.Price * (1 + delta))
		wantChange := round2(delta * 100)
		if after[i].Price != wantPrice {
			t.Errorf("%s price=%v want %v", inst.Symbol, after[i].Price, wantPrice)
		}
		if after[i].Change != wantChange {
			t.Errorf("%s change=%v want %v", inst.Symbol, after[i].Change, wantChange)
		}
	}
}

func TestSimulatorStepBounds(t *testing.T) {
	catalog := NewCatalog()
	sim := NewSimulator(catalog, rand.New(rand.NewSource(42)))

	for step := 0; step < 200; step++ {
		for _, inst := range sim.Step() {
			if inst.Price <= 0 {
				t.Fatalf("step %d: %s price=%v, must stay positive", step, inst.Symbol, inst.Price)
			}
			if limit := 4 * inst.Volatility; math.Abs(inst.Change) > limit+0.005 {
				t.Errorf("step %d: %s change=%v exceeds ±%v", step, inst.Symbol, inst.Change, limit)
			}
			if cents := inst.Price * 100; math.Abs(cents-math.Round(cents)) > 1e-6 {
				t.Errorf("step %d: %s price=%v not rounded to cents", step, inst.Symbol, inst.Price)
			}
		}
	}
}

func TestSimulatorZeroVolatilityHoldsStill(t *testing.T) {
	catalog := newCatalogWith([]models.Instrument{
		{Symbol: "FIX", Name: "Fixed Corp.", Price: 50, Sector: models.SectorIndustrial, Volatility: 0},
		{Symbol: "WILD", Name: "Wild Inc.", Price: 50, Sector: models.SectorTechnology, Volatility: 1},
	})
	sim := NewSimulator(catalog, rand.New(rand.NewSource(3)))

	for i := 0; i < 20; i++ {
		sim.Step()
	}

	fix, _ := catalog.Lookup("FIX")
	if fix.Price != 50 || fix.Change != 0 {
		t.Errorf("zero-volatility instrument moved: price=%v change=%v", fix.Price, fix.Change)
	}
	wild, _ := catalog.Lookup("WILD")
	if wild.Price == 50 {
		t.Error("full-volatility instrument never moved in 20 steps")
	}
}
