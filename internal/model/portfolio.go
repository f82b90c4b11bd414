package model

// StockPosition is one held ticker inside a portfolio.
// MarketValue is Qty times the last closing price the engine saw for the
// ticker; CostBasis is the weighted-average price paid per share.
type StockPosition struct {
	MarketValue float64 `json:"market_value"`
	Qty         float64 `json:"qty"`
	CostBasis   float64 `json:"cost_basis"`
}

// OptionContract is an open option position. Ticker may be empty for naked
// premium that references no underlying. Qty is signed: negative means short.
type OptionContract struct {
	Ticker     string  `json:"ticker,omitempty"`
	ExpiryDate Date    `json:"expiry_date"`
	Strike     float64 `json:"strike"`
	Qty        float64 `json:"qty"`
	Price      float64 `json:"price"`
	Type       string  `json:"type"` // EntityOptionPut or EntityOptionCall
}

// PortfolioState is the mutable state a single replay run owns. It must not
// be shared across concurrent runs; each portfolio gets its own instance.
type PortfolioState struct {
	SnapshotDate      Date                     `json:"snapshot_date"`
	Cash              float64                  `json:"cash"`
	StockPositions    map[string]StockPosition `json:"stock_positions"`
	OpenOptions       []OptionContract         `json:"open_options"`
	UnassignedPremium map[string]float64       `json:"unassigned_premium,omitempty"`
	PortfolioValue    float64                  `json:"portfolio_value"`
}

// NewPortfolioState returns an empty state with its maps initialized.
func NewPortfolioState() *PortfolioState {
	return &PortfolioState{
		StockPositions:    make(map[string]StockPosition),
		UnassignedPremium: make(map[string]float64),
	}
}

// Clone returns a deep copy. Maps and the option slice are copied so later
// mutation of the live state cannot reach a captured snapshot.
func (s *PortfolioState) Clone() PortfolioState {
	out := *s
	out.StockPositions = make(map[string]StockPosition, len(s.StockPositions))
	for ticker, pos := range s.StockPositions {
		out.StockPositions[ticker] = pos
	}
	out.UnassignedPremium = make(map[string]float64, len(s.UnassignedPremium))
	for ticker, premium := range s.UnassignedPremium {
		out.UnassignedPremium[ticker] = premium
	}
	out.OpenOptions = make([]OptionContract, len(s.OpenOptions))
	copy(out.OpenOptions, s.OpenOptions)
	return out
}

// DailySnapshot is a frozen end-of-day copy of a PortfolioState, emitted once
// per trading day in date order.
type DailySnapshot struct {
	PortfolioState
}
