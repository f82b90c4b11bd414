package replay

import (
	"testing"

	"portfolio-snapshots/internal/model"

	"github.com/stretchr/testify/assert"
)

func TestGroupByDateBucketsAndPreservesOrder(t *testing.T) {
	txns := []model.Transaction{
		{Date: "2024-01-02", Ticker: "A", Qty: 1},
		{Date: "2024-01-03", Ticker: "B", Qty: 2},
		{Date: "2024-01-02", Ticker: "C", Qty: 3},
		{Date: "2024-01-02", Ticker: "A", Qty: -1},
	}

	grouped := GroupByDate(txns)
	assert.Len(t, grouped, 2)
	assert.Len(t, grouped["2024-01-02"], 3)
	assert.Len(t, grouped["2024-01-03"], 1)

	// Ledger order within a day is application order.
	day := grouped["2024-01-02"]
	assert.Equal(t, "A", day[0].Ticker)
	assert.Equal(t, "C", day[1].Ticker)
	assert.Equal(t, "A", day[2].Ticker)
	assert.Equal(t, -1.0, day[2].Qty)
}

func TestGroupByDateEmptyInput(t *testing.T) {
	grouped := GroupByDate(nil)
	assert.NotNil(t, grouped)
	assert.Empty(t, grouped)
}
