package services

import (
	"fmt"
	"math"
	"sync"

	"portfolio-simulator/internal/models"
)

// seedInstruments is the mock market: 18 instruments across 6 sectors.
// Slice order is significant, focus selection picks first matches.
func seedInstruments() []models.Instrument {
	return []models.Instrument{
		// Technology
		{Symbol: "AAPL", Name: "Apple Inc.", Price: 178.50, Change: 1.2, Sector: models.SectorTechnology, Volatility: 0.3, DividendYield: 0.5},
		{Symbol: "MSFT", Name: "Microsoft Corp.", Price: 378.25, Change: 0.8, Sector: models.SectorTechnology, Volatility: 0.25, DividendYield: 0.8},
		{Symbol: "GOOGL", Name: "Alphabet Inc.", Price: 141.80, Change: -0.5, Sector: models.SectorTechnology, Volatility: 0.35, DividendYield: 0},
		{Symbol: "NVDA", Name: "NVIDIA Corp.", Price: 495.20, Change: 2.5, Sector: models.SectorTechnology, Volatility: 0.5, DividendYield: 0.04},
		{Symbol: "META", Name: "Meta Platforms", Price: 505.30, Change: 1.8, Sector: models.SectorTechnology, Volatility: 0.45, DividendYield: 0.4},

		// Healthcare
		{Symbol: "JNJ", Name: "Johnson & Johnson", Price: 156.40, Change: 0.3, Sector: models.SectorHealthcare, Volatility: 0.15, DividendYield: 3.0},
		{Symbol: "UNH", Name: "UnitedHealth Group", Price: 528.90, Change: -0.2, Sector: models.SectorHealthcare, Volatility: 0.2, DividendYield: 1.4},
		{Symbol: "PFE", Name: "Pfizer Inc.", Price: 27.15, Change: -1.5, Sector: models.SectorHealthcare, Volatility: 0.3, DividendYield: 5.8},

		// Finance
		{Symbol: "JPM", Name: "JPMorgan Chase", Price: 195.60, Change: 0.9, Sector: models.SectorFinance, Volatility: 0.25, DividendYield: 2.4},
		{Symbol: "BAC", Name: "Bank of America", Price: 33.80, Change: 1.1, Sector: models.SectorFinance, Volatility: 0.3, DividendYield: 2.8},
		{Symbol: "V", Name: "Visa Inc.", Price: 279.45, Change: 0.6, Sector: models.SectorFinance, Volatility: 0.2, DividendYield: 0.8},

		// Energy
		{Symbol: "XOM", Name: "Exxon Mobil", Price: 104.25, Change: -0.8, Sector: models.SectorEnergy, Volatility: 0.35, DividendYield: 3.5},
		{Symbol: "CVX", Name: "Chevron Corp.", Price: 151.70, Change: -0.4, Sector: models.SectorEnergy, Volatility: 0.3, DividendYield: 4.0},

		// Consumer
		{Symbol: "AMZN", Name: "Amazon.com", Price: 178.90, Change: 1.5, Sector: models.SectorConsumer, Volatility: 0.35, DividendYield: 0},
		{Symbol: "WMT", Name: "Walmart Inc.", Price: 163.20, Change: 0.4, Sector: models.SectorConsumer, Volatility: 0.15, DividendYield: 1.4},
		{Symbol: "KO", Name: "Coca-Cola Co.", Price: 60.85, Change: 0.2, Sector: models.SectorConsumer, Volatility: 0.1, DividendYield: 3.1},

		// Industrial
		{Symbol: "CAT", Name: "Caterpillar Inc.", Price: 345.60, Change: 0.7, Sector: models.SectorIndustrial, Volatility: 0.25, DividendYield: 1.6},
		{Symbol: "BA", Name: "Boeing Co.", Price: 198.30, Change: -1.2, Sector: models.SectorIndustrial, Volatility: 0.4, DividendYield: 0},
	}
}

// Catalog is the process-wide instrument table. Prices are shared by all
// portfolios; only the simulator writes them. All reads hand out copies.
type Catalog struct {
	mu          sync.RWMutex
	instruments []models.Instrument
	index       map[string]int
}

// NewCatalog builds a catalog seeded with the mock market data.
func NewCatalog() *Catalog {
	instruments := seedInstruments()
	index := make(map[string]int, len(instruments))
	for i, inst := range instruments {
		index[inst.Symbol] = i
	}
	return &Catalog{instruments: instruments, index: index}
}

// Lookup returns a copy of the instrument for symbol.
func (c *Catalog) Lookup(symbol string) (models.Instrument, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	i, ok := c.index[symbol]
	if !ok {
		return models.Instrument{}, false
	}
	return c.instruments[i], true
}

// All returns a copy of every instrument in catalog order.
func (c *Catalog) All() []models.Instrument {
	c.mu.RLock()
	defer c.mu.RUnlock()
	out := make([]models.Instrument, len(c.instruments))
	copy(out, c.instruments)
	return out
}

// ValidateSectors fails when any required sector has no instrument. The
// diversified focus divides by the selection count, so an empty sector
// must be caught at startup rather than mid-allocation.
func (c *Catalog) ValidateSectors(required []models.Sector) error {
	c.mu.RLock()
	defer c.mu.RUnlock()
	seen := make(map[models.Sector]bool)
	for _, inst := range c.instruments {
		seen[inst.Sector] = true
	}
	for _, sector := range required {
		if !seen[sector] {
			return fmt.Errorf("catalog has no %s instrument", sector)
		}
	}
	return nil
}

// mutate applies fn to every instrument under the write lock.
func (c *Catalog) mutate(fn func(*models.Instrument)) {
	c.mu.Lock()
	defer c.mu.Unlock()
	for i := range c.instruments {
		fn(&c.instruments[i])
	}
}

// round2 rounds a monetary value to two decimal places, the accuracy bar
// for every stored and reported figure in this engine.
func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
