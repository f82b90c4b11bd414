package replay

import (
	"portfolio-snapshots/internal/model"
)

// DataSource bundles the four collaborator capabilities a replay run needs.
// Transport belongs to the implementation; the engine only sees these calls.
type DataSource interface {
	LatestSnapshot(portfolioID string) (*model.PortfolioState, error)
	TransactionsBetween(portfolioID string, start, end model.Date) ([]model.Transaction, error)
	MarketCalendar
	PriceSource
}

// Generator drives one full snapshot run for a portfolio: fetch the last
// stored snapshot, replay the transaction ledger forward over the trading
// days since, and return the per-day snapshots.
type Generator struct {
	src DataSource
}

func NewGenerator(src DataSource) *Generator {
	return &Generator{src: src}
}

// GenerateDailySnapshots replays from the day after the portfolio's last
// snapshot through today.
func (g *Generator) GenerateDailySnapshots(portfolioID string) ([]model.DailySnapshot, error) {
	return g.GenerateThrough(portfolioID, model.Today())
}

// GenerateThrough replays through an explicit end day. An end day before the
// window start means the portfolio is already up to date and yields no
// snapshots.
func (g *Generator) GenerateThrough(portfolioID string, through model.Date) ([]model.DailySnapshot, error) {
	state, err := g.src.LatestSnapshot(portfolioID)
	if err != nil {
		return nil, err
	}

	start := state.SnapshotDate.Next()
	if start.After(through) {
		return nil, nil
	}

	txns, err := g.src.TransactionsBetween(portfolioID, start, through)
	if err != nil {
		return nil, err
	}

	days, err := TradingDays(start, through, g.src)
	if err != nil {
		return nil, err
	}

	return NewEngine(g.src).Run(state, GroupByDate(txns), days)
}
