package services

import (
	"fmt"
	"math"
	"math/rand"
	"sync"
	"time"

	"github.com/google/uuid"

	"portfolio-simulator/internal/models"
)

// stockAllocation maps risk tolerance to the fraction of the initial
// balance invested in stock; the remainder stays in cash.
var stockAllocation = map[models.RiskTolerance]float64{
	models.RiskConservative: 0.4,
	models.RiskModerate:     0.6,
	models.RiskAggressive:   0.8,
}

// DiversifiedSectors are the sectors the diversified focus draws from,
// one representative each.
var DiversifiedSectors = []models.Sector{
	models.SectorTechnology,
	models.SectorHealthcare,
	models.SectorFinance,
	models.SectorEnergy,
	models.SectorConsumer,
}

// Planner builds a new portfolio from an initial balance, a risk
// tolerance and a focus, reading prices from the shared catalog.
type Planner struct {
	catalog *Catalog
	mu      sync.Mutex
	rng     *rand.Rand
}

// NewPlanner wires a planner to the catalog. Tests pass a seeded rng so
// the synthetic cost bases and history are reproducible.
func NewPlanner(catalog *Catalog, rng *rand.Rand) *Planner {
	return &Planner{catalog: catalog, rng: rng}
}

// BuildPortfolio allocates initialBalance across instruments selected by
// focus and returns the resulting portfolio.
//
// The investment amount is split equally across the selection and
// floored to whole shares; the fractional remainder of each slot is not
// folded back into cash, so cash stays exactly at the risk-driven split.
func (p *Planner) BuildPortfolio(initialBalance float64, risk models.RiskTolerance, focus models.Focus) (*models.Portfolio, error) {
	if initialBalance <= 0 {
		return nil, fmt.Errorf("%w: initial balance must be positive, got %.2f", ErrInvalidInput, initialBalance)
	}
	fraction, ok := stockAllocation[risk]
	if !ok {
		return nil, fmt.Errorf("%w: unknown risk tolerance %q", ErrInvalidInput, risk)
	}

	selected, err := p.selectInstruments(focus)
	if err != nil {
		return nil, err
	}

	investmentAmount := initialBalance * fraction
	cash := round2(initialBalance - investmentAmount)
	perInstrument := investmentAmount / float64(len(selected))

	p.mu.Lock()
	defer p.mu.Unlock()

	holdings := make([]models.Holding, 0, len(selected))
	for _, inst := range selected {
		shares := int(math.Floor(perInstrument / inst.Price))
		if shares == 0 {
			continue
		}
		// Cost basis is perturbed ±5% around the current price to
		// simulate a position opened at an earlier date.
		costVariance := (p.rng.Float64() - 0.5) * 0.1
		avgCost := round2(inst.Price * (1 + costVariance))
		value := round2(float64(shares) * inst.Price)
		holdings = append(holdings, models.Holding{
			Symbol:       inst.Symbol,
			Name:         inst.Name,
			Shares:       shares,
			AvgCost:      avgCost,
			CurrentPrice: inst.Price,
			Change:       inst.Change,
			Value:        value,
			ProfitLoss:   round2(value - float64(shares)*avgCost),
		})
	}

	portfolio := &models.Portfolio{
		ID:       "pf-" + uuid.NewString(),
		Cash:     cash,
		Holdings: holdings,
	}
	recalculate(portfolio)
	portfolio.Performance = p.performanceHistory(portfolio.TotalValue)

	return portfolio, nil
}

// selectInstruments applies the focus rules against the current catalog
// in catalog order.
func (p *Planner) selectInstruments(focus models.Focus) ([]models.Instrument, error) {
	all := p.catalog.All()

	var selected []models.Instrument
	switch focus {
	case models.FocusTech:
		selected = filterInstruments(all, 4, func(i models.Instrument) bool {
			return i.Sector == models.SectorTechnology
		})
	case models.FocusHealthcare:
		selected = filterInstruments(all, 0, func(i models.Instrument) bool {
			return i.Sector == models.SectorHealthcare
		})
	case models.FocusDividend:
		selected = filterInstruments(all, 5, func(i models.Instrument) bool {
			return i.DividendYield >= 2.0
		})
	case models.FocusGrowth:
		selected = filterInstruments(all, 4, func(i models.Instrument) bool {
			return i.Volatility >= 0.3 && i.DividendYield < 1
		})
	case models.FocusDiversified:
		for _, sector := range DiversifiedSectors {
			picks := filterInstruments(all, 1, func(i models.Instrument) bool {
				return i.Sector == sector
			})
			selected = append(selected, picks...)
		}
	default:
		return nil, fmt.Errorf("%w: unknown focus %q", ErrInvalidInput, focus)
	}

	if len(selected) == 0 {
		return nil, fmt.Errorf("%w: focus %q selected no instruments", ErrInvalidInput, focus)
	}
	return selected, nil
}

// filterInstruments keeps instruments matching keep, in order, up to
// limit (0 means unlimited).
func filterInstruments(all []models.Instrument, limit int, keep func(models.Instrument) bool) []models.Instrument {
	var out []models.Instrument
	for _, inst := range all {
		if !keep(inst) {
			continue
		}
		out = append(out, inst)
		if limit > 0 && len(out) == limit {
			break
		}
	}
	return out
}

// performanceHistory fabricates a 7-day trailing chart ending exactly at
// currentValue, with ±3% variance on the frozen prior days.
// Callers must hold p.mu.
func (p *Planner) performanceHistory(currentValue float64) []models.PerformancePoint {
	points := make([]models.PerformancePoint, 0, 7)
	today := time.Now()

	for i := 6; i >= 0; i-- {
		variance := 0.0
		if i != 0 {
			variance = (p.rng.Float64() - 0.5) * 0.06
		}
		points = append(points, models.PerformancePoint{
			Date:  today.AddDate(0, 0, -i).Format("2006-01-02"),
			Value: round2(currentValue * (1 - variance)),
		})
	}
	return points
}
