package services

import (
	"context"
	"errors"
	"fmt"
	"math"

	"go.uber.org/zap"

	"portfolio-simulator/internal/models"
	"portfolio-simulator/internal/store"
)

// PortfolioService exposes the four engine operations: create, get,
// trade and refresh. Trades and refreshes mutate one portfolio in place
// and persist it through the store; a rejected validation leaves the
// portfolio untouched.
type PortfolioService struct {
	catalog   *Catalog
	planner   *Planner
	simulator *Simulator
	store     store.PortfolioStore
	hub       *QuoteHub // optional, may be nil
	log       *zap.Logger
}

func NewPortfolioService(catalog *Catalog, planner *Planner, simulator *Simulator, st store.PortfolioStore, hub *QuoteHub, log *zap.Logger) *PortfolioService {
	return &PortfolioService{
		catalog:   catalog,
		planner:   planner,
		simulator: simulator,
		store:     st,
		hub:       hub,
		log:       log,
	}
}

// CreatePortfolio allocates initialBalance per the risk tolerance and
// focus, persists the new portfolio and returns it together with the
// instruments left available to trade.
func (s *PortfolioService) CreatePortfolio(ctx context.Context, initialBalance float64, risk models.RiskTolerance, focus models.Focus) (*models.Portfolio, []models.Instrument, error) {
	portfolio, err := s.planner.BuildPortfolio(initialBalance, risk, focus)
	if err != nil {
		return nil, nil, err
	}
	if err := s.store.Put(ctx, portfolio); err != nil {
		return nil, nil, err
	}

	s.log.Info("portfolio created",
		zap.String("id", portfolio.ID),
		zap.String("risk", string(risk)),
		zap.String("focus", string(focus)),
		zap.Float64("totalValue", portfolio.TotalValue),
		zap.Int("holdings", len(portfolio.Holdings)))

	return portfolio, s.availableInstruments(portfolio), nil
}

// GetPortfolio returns the stored portfolio as-is. It never revalues, so
// two calls without an intervening trade or refresh return identical
// totals.
func (s *PortfolioService) GetPortfolio(ctx context.Context, id string) (*models.Portfolio, error) {
	return s.getPortfolio(ctx, id)
}

// ExecuteTrade runs validate → apply → revalue for one buy or sell at
// the current catalog price. Trades read the price, they never move it.
func (s *PortfolioService) ExecuteTrade(ctx context.Context, id, symbol string, action models.TradeAction, quantity int) (*models.TradeResult, error) {
	portfolio, err := s.getPortfolio(ctx, id)
	if err != nil {
		return nil, err
	}
	instrument, ok := s.catalog.Lookup(symbol)
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrInstrumentNotFound, symbol)
	}
	if quantity <= 0 {
		return nil, fmt.Errorf("%w: quantity must be a positive integer, got %d", ErrInvalidInput, quantity)
	}

	total := round2(instrument.Price * float64(quantity))

	switch action {
	case models.ActionBuy:
		if total > portfolio.Cash {
			return nil, fmt.Errorf("%w: need $%.2f, have $%.2f", ErrInsufficientFunds, total, portfolio.Cash)
		}
		applyBuy(portfolio, instrument, quantity, total)
	case models.ActionSell:
		holding := findHolding(portfolio, symbol)
		if holding == nil {
			return nil, fmt.Errorf("%w: you don't own any %s", ErrNoPosition, symbol)
		}
		if quantity > holding.Shares {
			return nil, fmt.Errorf("%w: can't sell %d shares, you only own %d", ErrInsufficientShares, quantity, holding.Shares)
		}
		applySell(portfolio, instrument, holding, quantity, total)
	default:
		return nil, fmt.Errorf("%w: unknown action %q", ErrInvalidInput, action)
	}

	recalculate(portfolio)
	if err := s.store.Put(ctx, portfolio); err != nil {
		return nil, err
	}

	verb := "Bought"
	if action == models.ActionSell {
		verb = "Sold"
	}
	s.log.Info("trade executed",
		zap.String("portfolio", id),
		zap.String("action", string(action)),
		zap.String("symbol", symbol),
		zap.Int("shares", quantity),
		zap.Float64("price", instrument.Price))

	return &models.TradeResult{
		Success:   true,
		Message:   fmt.Sprintf("%s %d shares of %s at $%.2f", verb, quantity, symbol, instrument.Price),
		Portfolio: portfolio,
		Trade: &models.Trade{
			Action: action,
			Symbol: symbol,
			Shares: quantity,
			Price:  instrument.Price,
			Total:  total,
		},
	}, nil
}

// RefreshPrices walks every catalog price, then revalues the requested
// portfolio against the new prices. Other portfolios keep their cached
// figures until their own next trade or refresh; the prices they
// reference have already moved.
func (s *PortfolioService) RefreshPrices(ctx context.Context, id string) (*models.Portfolio, []models.Instrument, error) {
	portfolio, err := s.getPortfolio(ctx, id)
	if err != nil {
		return nil, nil, err
	}

	quotes := s.simulator.Step()
	if s.hub != nil {
		s.hub.BroadcastQuotes(quotes)
	}

	// Revalue against the snapshot the walk returned, one consistent
	// price per instrument.
	bySymbol := make(map[string]models.Instrument, len(quotes))
	for _, quote := range quotes {
		bySymbol[quote.Symbol] = quote
	}
	for i := range portfolio.Holdings {
		holding := &portfolio.Holdings[i]
		if instrument, ok := bySymbol[holding.Symbol]; ok {
			revalueHolding(holding, instrument)
		}
	}
	recalculate(portfolio)

	if err := s.store.Put(ctx, portfolio); err != nil {
		return nil, nil, err
	}

	s.log.Info("prices refreshed",
		zap.String("portfolio", id),
		zap.Float64("totalValue", portfolio.TotalValue))

	return portfolio, s.availableInstruments(portfolio), nil
}

func (s *PortfolioService) getPortfolio(ctx context.Context, id string) (*models.Portfolio, error) {
	portfolio, err := s.store.Get(ctx, id)
	if errors.Is(err, store.ErrNotFound) {
		return nil, fmt.Errorf("%w: %s", ErrPortfolioNotFound, id)
	}
	if err != nil {
		return nil, err
	}
	return portfolio, nil
}

// availableInstruments lists the catalog minus the portfolio's holdings,
// the choices still open to trade into.
func (s *PortfolioService) availableInstruments(portfolio *models.Portfolio) []models.Instrument {
	held := make(map[string]bool, len(portfolio.Holdings))
	for _, h := range portfolio.Holdings {
		held[h.Symbol] = true
	}

	all := s.catalog.All()
	available := make([]models.Instrument, 0, len(all))
	for _, inst := range all {
		if !held[inst.Symbol] {
			available = append(available, inst)
		}
	}
	return available
}

func findHolding(portfolio *models.Portfolio, symbol string) *models.Holding {
	for i := range portfolio.Holdings {
		if portfolio.Holdings[i].Symbol == symbol {
			return &portfolio.Holdings[i]
		}
	}
	return nil
}

// applyBuy folds quantity shares at the instrument's price into the
// portfolio, averaging the cost basis by share count on an existing
// holding.
func applyBuy(portfolio *models.Portfolio, instrument models.Instrument, quantity int, total float64) {
	if holding := findHolding(portfolio, instrument.Symbol); holding != nil {
		totalShares := holding.Shares + quantity
		costBasis := float64(holding.Shares)*holding.AvgCost + total
		holding.AvgCost = round2(costBasis / float64(totalShares))
		holding.Shares = totalShares
		revalueHolding(holding, instrument)
	} else {
		portfolio.Holdings = append(portfolio.Holdings, models.Holding{
			Symbol:       instrument.Symbol,
			Name:         instrument.Name,
			Shares:       quantity,
			AvgCost:      instrument.Price,
			CurrentPrice: instrument.Price,
			Change:       instrument.Change,
			Value:        total,
			ProfitLoss:   0,
		})
	}
	portfolio.Cash = round2(portfolio.Cash - total)
}

// applySell reduces the holding, removing it entirely when no shares
// remain. The average cost never changes on a sell.
func applySell(portfolio *models.Portfolio, instrument models.Instrument, holding *models.Holding, quantity int, total float64) {
	holding.Shares -= quantity
	if holding.Shares == 0 {
		kept := portfolio.Holdings[:0]
		for _, h := range portfolio.Holdings {
			if h.Symbol != instrument.Symbol {
				kept = append(kept, h)
			}
		}
		portfolio.Holdings = kept
	} else {
		revalueHolding(holding, instrument)
	}
	portfolio.Cash = round2(portfolio.Cash + total)
}

// revalueHolding refreshes the derived fields from the instrument's
// current price, leaving shares and avg cost alone.
func revalueHolding(holding *models.Holding, instrument models.Instrument) {
	holding.CurrentPrice = instrument.Price
	holding.Change = instrument.Change
	holding.Value = round2(float64(holding.Shares) * instrument.Price)
	holding.ProfitLoss = round2(holding.Value - float64(holding.Shares)*holding.AvgCost)
}

// recalculate rebuilds the portfolio aggregates from scratch and keeps
// today's performance point live. Totals are never adjusted
// incrementally, that drifts.
func recalculate(portfolio *models.Portfolio) {
	stockValue := 0.0
	profitLoss := 0.0
	for _, h := range portfolio.Holdings {
		stockValue += h.Value
		profitLoss += h.ProfitLoss
	}

	portfolio.TotalValue = round2(stockValue + portfolio.Cash)
	portfolio.TotalProfitLoss = round2(profitLoss)

	if portfolio.TotalValue > 0 {
		portfolio.Allocation = models.Allocation{
			Stocks: int(math.Round(stockValue / portfolio.TotalValue * 100)),
			Cash:   int(math.Round(portfolio.Cash / portfolio.TotalValue * 100)),
		}
	} else {
		portfolio.Allocation = models.Allocation{}
	}

	if n := len(portfolio.Performance); n > 0 {
		portfolio.Performance[n-1].Value = portfolio.TotalValue
	}
}
