package data

import (
	"encoding/json"
	"fmt"

	"portfolio-snapshots/internal/model"
)

// DecodeError reports a structurally malformed snapshot or transaction
// payload. It is fatal and raised before any replay mutation.
type DecodeError struct {
	Message string
	Err     error
}

func (e *DecodeError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *DecodeError) Unwrap() error { return e.Err }

func decodeErrorf(err error, format string, args ...any) *DecodeError {
	return &DecodeError{Message: fmt.Sprintf(format, args...), Err: err}
}

// DecodeSnapshot converts a raw snapshot row into the engine's portfolio
// state. The row carries portfolio_value, snapshot_date and a JSON-encoded
// list of asset entries tagged with entity_type. A nil assets value is a
// freshly started portfolio and decodes to an empty state.
//
// Duplicate stock entries for the same ticker overwrite each other, last one
// wins; upstream is not expected to emit duplicates but the behavior is kept
// deliberate here rather than merged.
func DecodeSnapshot(row map[string]any) (*model.PortfolioState, error) {
	if err := ValidateFields(row, SnapshotRequiredFields); err != nil {
		return nil, &DecodeError{Message: "snapshot row invalid", Err: err}
	}

	state := model.NewPortfolioState()

	rawDate, ok := row["snapshot_date"].(string)
	if !ok {
		return nil, decodeErrorf(nil, "snapshot_date is not a string: %v", row["snapshot_date"])
	}
	date, err := model.ParseDate(rawDate)
	if err != nil {
		return nil, decodeErrorf(err, "snapshot_date unparseable")
	}
	state.SnapshotDate = date

	value, ok := asFloat(row["portfolio_value"])
	if !ok {
		return nil, decodeErrorf(nil, "portfolio_value is not a number: %v", row["portfolio_value"])
	}
	state.PortfolioValue = value

	switch assets := row["assets"].(type) {
	case nil:
		return state, nil
	case string:
		if assets == "" {
			return state, nil
		}
		var entries []map[string]any
		if err := json.Unmarshal([]byte(assets), &entries); err != nil {
			return nil, decodeErrorf(err, "assets payload unparseable")
		}
		for i, entry := range entries {
			if err := decodeAssetEntry(state, entry); err != nil {
				return nil, decodeErrorf(err, "asset entry %d invalid", i)
			}
		}
		return state, nil
	default:
		return nil, decodeErrorf(nil, "assets is neither null nor a JSON string: %T", row["assets"])
	}
}

func decodeAssetEntry(state *model.PortfolioState, entry map[string]any) error {
	entityType, _ := entry["entity_type"].(string)
	switch entityType {
	case model.EntityCash:
		value, ok := asFloat(entry["value"])
		if !ok {
			return fmt.Errorf("cash entry value is not a number: %v", entry["value"])
		}
		state.Cash = value
		return nil

	case model.EntityStock:
		if err := ValidateFields(entry, StockAssetRequiredFields); err != nil {
			return err
		}
		ticker, _ := entry["ticker"].(string)
		if ticker == "" {
			return fmt.Errorf("stock entry has an empty ticker")
		}
		value, okV := asFloat(entry["value"])
		qty, okQ := asFloat(entry["qty"])
		costBasis, okC := asFloat(entry["cost_basis"])
		if !okV || !okQ || !okC {
			return fmt.Errorf("stock entry for %q has non-numeric fields", ticker)
		}
		state.StockPositions[ticker] = model.StockPosition{
			MarketValue: value,
			Qty:         qty,
			CostBasis:   costBasis,
		}
		return nil

	case model.EntityOptionPut, model.EntityOptionCall:
		ticker, _ := entry["ticker"].(string)
		expiry, _ := entry["expiry_date"].(string)
		strike, _ := asFloat(entry["strike"])
		qty, _ := asFloat(entry["qty"])
		price, _ := asFloat(entry["price"])
		state.OpenOptions = append(state.OpenOptions, model.OptionContract{
			Ticker:     ticker,
			ExpiryDate: model.Date(expiry),
			Strike:     strike,
			Qty:        qty,
			Price:      price,
			Type:       entityType,
		})
		return nil

	case model.EntityPremium:
		ticker, _ := entry["ticker"].(string)
		if ticker == "" {
			return fmt.Errorf("premium entry has an empty ticker")
		}
		value, ok := asFloat(entry["value"])
		if !ok {
			return fmt.Errorf("premium entry for %q is not a number: %v", ticker, entry["value"])
		}
		state.UnassignedPremium[ticker] = value
		return nil

	default:
		return fmt.Errorf("unknown entity_type %q", entityType)
	}
}

// DecodeTransactions converts validated transaction rows into typed
// transactions, preserving order. Null option fields on cash and stock rows
// decode to zero values.
func DecodeTransactions(rows []map[string]any) ([]model.Transaction, error) {
	txns := make([]model.Transaction, 0, len(rows))
	for i, row := range rows {
		rawDate, _ := row["date"].(string)
		date, err := model.ParseDate(rawDate)
		if err != nil {
			return nil, decodeErrorf(err, "transaction row %d date unparseable", i)
		}
		entityType, _ := row["entity_type"].(string)
		ticker, _ := row["ticker"].(string)
		qty, _ := asFloat(row["qty"])
		price, _ := asFloat(row["price"])
		strike, _ := asFloat(row["strike"])
		expiry, _ := row["expiry_date"].(string)
		txnType, _ := row["txn_type"].(string)

		txns = append(txns, model.Transaction{
			Date:       date,
			EntityType: entityType,
			Ticker:     ticker,
			Qty:        qty,
			Price:      price,
			Strike:     strike,
			ExpiryDate: model.Date(expiry),
			TxnType:    txnType,
		})
	}
	return txns, nil
}

// asFloat narrows the types encoding/json produces for numbers.
func asFloat(v any) (float64, bool) {
	switch x := v.(type) {
	case float64:
		return x, true
	case int:
		return float64(x), true
	case json.Number:
		f, err := x.Float64()
		return f, err == nil
	default:
		return 0, false
	}
}
