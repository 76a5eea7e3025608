package models

// Sector classifies an instrument.
type Sector string

const (
	SectorTechnology Sector = "technology"
	SectorHealthcare Sector = "healthcare"
	SectorFinance    Sector = "finance"
	SectorEnergy     Sector = "energy"
	SectorConsumer   Sector = "consumer"
	SectorIndustrial Sector = "industrial"
)

// RiskTolerance drives the cash/stock split when a portfolio is created.
type RiskTolerance string

const (
	RiskConservative RiskTolerance = "conservative"
	RiskModerate     RiskTolerance = "moderate"
	RiskAggressive   RiskTolerance = "aggressive"
)

// Focus selects which instruments seed a new portfolio.
type Focus string

const (
	FocusTech        Focus = "tech"
	FocusHealthcare  Focus = "healthcare"
	FocusDiversified Focus = "diversified"
	FocusGrowth      Focus = "growth"
	FocusDividend    Focus = "dividend"
)

// TradeAction is "buy" or "sell".
type TradeAction string

const (
	ActionBuy  TradeAction = "buy"
	ActionSell TradeAction = "sell"
)

// Instrument is one tradable symbol. Price and Change move with the
// simulator; everything else is static for the process lifetime.
type Instrument struct {
	Symbol        string  `bson:"symbol" json:"symbol"`
	Name          string  `bson:"name" json:"name"`
	Price         float64 `bson:"price" json:"price"`
	Change        float64 `bson:"change" json:"change"` // % change today
	Sector        Sector  `bson:"sector" json:"sector"`
	Volatility    float64 `bson:"volatility" json:"volatility"`        // 0-1, higher = more volatile
	DividendYield float64 `bson:"dividend_yield" json:"dividendYield"` // annual %
}

// Holding is a position in one instrument. Shares and AvgCost are the
// source of truth; the remaining fields are recomputed on every trade
// or price refresh.
type Holding struct {
	Symbol       string  `bson:"symbol" json:"symbol"`
	Name         string  `bson:"name" json:"name"`
	Shares       int     `bson:"shares" json:"shares"`
	AvgCost      float64 `bson:"avg_cost" json:"avgCost"`
	CurrentPrice float64 `bson:"current_price" json:"currentPrice"`
	Change       float64 `bson:"change" json:"change"`
	Value        float64 `bson:"value" json:"value"`
	ProfitLoss   float64 `bson:"profit_loss" json:"profitLoss"`
}

// PerformancePoint is one date on the performance chart.
type PerformancePoint struct {
	Date  string  `bson:"date" json:"date"`
	Value float64 `bson:"value" json:"value"`
}

// Allocation is the percentage split between stock holdings and cash.
type Allocation struct {
	Stocks int `bson:"stocks" json:"stocks"`
	Cash   int `bson:"cash" json:"cash"`
}

// Portfolio is one simulated account: cash, holdings and the aggregates
// derived from them.
type Portfolio struct {
	ID              string             `bson:"_id" json:"id"`
	Cash            float64            `bson:"cash" json:"cash"`
	Holdings        []Holding          `bson:"holdings" json:"holdings"`
	TotalValue      float64            `bson:"total_value" json:"totalValue"`
	TotalProfitLoss float64            `bson:"total_profit_loss" json:"totalProfitLoss"`
	Allocation      Allocation         `bson:"allocation" json:"allocation"`
	Performance     []PerformancePoint `bson:"performance" json:"performance"`
}

// Trade summarizes one executed order. It is reported back to the caller
// and not persisted.
type Trade struct {
	Action TradeAction `json:"action"`
	Symbol string      `json:"symbol"`
	Shares int         `json:"shares"`
	Price  float64     `json:"price"`
	Total  float64     `json:"total"`
}

// TradeResult is the caller-visible outcome of a trade request. Callers
// should branch on Success, not on Message.
type TradeResult struct {
	Success   bool       `json:"success"`
	Message   string     `json:"message"`
	Portfolio *Portfolio `json:"portfolio,omitempty"`
	Trade     *Trade     `json:"trade,omitempty"`
}
