package data

import (
	"testing"

	"portfolio-snapshots/internal/model"

	"github.com/stretchr/testify/assert"
)

func snapshotRow(t *testing.T, assets any) map[string]any {
	t.Helper()
	return map[string]any{
		"snapshot_date":   "2024-03-03",
		"portfolio_value": 1550.0,
		"assets":          assets,
	}
}

func TestDecodeSnapshotFullAssetMix(t *testing.T) {
	assets := `[
		{"entity_type": "cash", "value": 250.5},
		{"entity_type": "stock", "ticker": "ACME", "value": 510, "qty": 10, "cost_basis": 50},
		{"entity_type": "option-call", "ticker": "ACME", "expiry_date": "2024-04-19",
		 "strike": 60, "qty": -1, "price": 2},
		{"entity_type": "premium", "ticker": "ZETA", "value": -150}
	]`

	state, err := DecodeSnapshot(snapshotRow(t, assets))
	assert.NoError(t, err)

	assert.Equal(t, model.Date("2024-03-03"), state.SnapshotDate)
	assert.InDelta(t, 1550, state.PortfolioValue, 1e-9)
	assert.InDelta(t, 250.5, state.Cash, 1e-9)
	assert.Equal(t, model.StockPosition{MarketValue: 510, Qty: 10, CostBasis: 50}, state.StockPositions["ACME"])
	assert.Len(t, state.OpenOptions, 1)
	assert.Equal(t, model.Date("2024-04-19"), state.OpenOptions[0].ExpiryDate)
	assert.Equal(t, model.EntityOptionCall, state.OpenOptions[0].Type)
	assert.InDelta(t, -150, state.UnassignedPremium["ZETA"], 1e-9)
}

func TestDecodeSnapshotNullAssetsIsEmptyState(t *testing.T) {
	state, err := DecodeSnapshot(snapshotRow(t, nil))
	assert.NoError(t, err)
	assert.Empty(t, state.StockPositions)
	assert.Empty(t, state.OpenOptions)
	assert.Zero(t, state.Cash)
	assert.Equal(t, model.Date("2024-03-03"), state.SnapshotDate)
}

func TestDecodeSnapshotEmptyAssetsStringIsEmptyState(t *testing.T) {
	state, err := DecodeSnapshot(snapshotRow(t, ""))
	assert.NoError(t, err)
	assert.Empty(t, state.StockPositions)
}

func TestDecodeSnapshotDuplicateStockLastWins(t *testing.T) {
	assets := `[
		{"entity_type": "stock", "ticker": "ACME", "value": 100, "qty": 2, "cost_basis": 50},
		{"entity_type": "stock", "ticker": "ACME", "value": 300, "qty": 6, "cost_basis": 48}
	]`

	state, err := DecodeSnapshot(snapshotRow(t, assets))
	assert.NoError(t, err)
	assert.Len(t, state.StockPositions, 1)
	assert.Equal(t, model.StockPosition{MarketValue: 300, Qty: 6, CostBasis: 48}, state.StockPositions["ACME"])
}

func TestDecodeSnapshotMissingTopLevelField(t *testing.T) {
	row := snapshotRow(t, nil)
	delete(row, "assets")

	_, err := DecodeSnapshot(row)
	var dErr *DecodeError
	assert.ErrorAs(t, err, &dErr)
	var vErr *ValidationError
	assert.ErrorAs(t, err, &vErr)
	assert.ErrorContains(t, err, `Missing "assets" in the input data`)
}

func TestDecodeSnapshotStockEntryMissingField(t *testing.T) {
	assets := `[{"entity_type": "stock", "ticker": "ACME", "value": 100, "qty": 2}]`

	_, err := DecodeSnapshot(snapshotRow(t, assets))
	var dErr *DecodeError
	assert.ErrorAs(t, err, &dErr)
	assert.ErrorContains(t, err, `Missing "cost_basis" in the input data`)
}

func TestDecodeSnapshotUnknownEntityType(t *testing.T) {
	assets := `[{"entity_type": "crypto", "ticker": "BTC", "value": 9000}]`

	_, err := DecodeSnapshot(snapshotRow(t, assets))
	var dErr *DecodeError
	assert.ErrorAs(t, err, &dErr)
	assert.ErrorContains(t, err, `unknown entity_type "crypto"`)
}

func TestDecodeSnapshotMalformedAssetsJSON(t *testing.T) {
	_, err := DecodeSnapshot(snapshotRow(t, "{not json"))
	var dErr *DecodeError
	assert.ErrorAs(t, err, &dErr)
}

func TestDecodeSnapshotBadDate(t *testing.T) {
	row := snapshotRow(t, nil)
	row["snapshot_date"] = "03/03/2024"

	_, err := DecodeSnapshot(row)
	var dErr *DecodeError
	assert.ErrorAs(t, err, &dErr)
}

func TestDecodeTransactionsStockAndOptionRows(t *testing.T) {
	rows := []map[string]any{
		{
			"date": "2024-03-04", "entity_type": "stock", "ticker": "ACME",
			"qty": 10.0, "price": 50.0, "strike": nil, "expiry_date": nil, "txn_type": "buy",
		},
		{
			"date": "2024-03-05", "entity_type": "option-put", "ticker": "ACME",
			"qty": -1.0, "price": 1.5, "strike": 45.0, "expiry_date": "2024-04-19", "txn_type": "sell",
		},
	}

	txns, err := DecodeTransactions(rows)
	assert.NoError(t, err)
	assert.Len(t, txns, 2)

	assert.Equal(t, model.Transaction{
		Date: "2024-03-04", EntityType: model.EntityStock, Ticker: "ACME",
		Qty: 10, Price: 50, TxnType: model.TxnBuy,
	}, txns[0])
	assert.Equal(t, model.Date("2024-04-19"), txns[1].ExpiryDate)
	assert.InDelta(t, 45, txns[1].Strike, 1e-9)
	assert.True(t, txns[1].IsOption())
}

func TestDecodeTransactionsBadDateFails(t *testing.T) {
	rows := []map[string]any{
		{"date": "yesterday", "entity_type": "cash", "ticker": nil, "qty": 100.0,
			"price": nil, "strike": nil, "expiry_date": nil, "txn_type": "buy"},
	}

	_, err := DecodeTransactions(rows)
	var dErr *DecodeError
	assert.ErrorAs(t, err, &dErr)
}
