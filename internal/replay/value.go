package replay

import "portfolio-snapshots/internal/model"

// CalculateValue returns cash plus the market value of every stock position.
// Open options contribute nothing; their cash effect was settled when the
// premium moved.
func CalculateValue(state *model.PortfolioState) float64 {
	total := state.Cash
	for _, pos := range state.StockPositions {
		total += pos.MarketValue
	}
	return total
}
