package replay

import (
	"portfolio-snapshots/internal/model"
)

// PriceSource supplies the closing price for a ticker on a given date. It is
// a blocking external collaborator; the engine calls it sequentially and
// treats any failure as fatal to the run.
type PriceSource interface {
	ClosePrice(ticker string, on model.Date) (float64, error)
}

// Engine advances a portfolio one trading day at a time, applying that day's
// transactions, pruning expired options and recomputing total value. It holds
// no state of its own; the PortfolioState passed to Run is owned exclusively
// by that run.
type Engine struct {
	prices PriceSource
}

func NewEngine(prices PriceSource) *Engine {
	return &Engine{prices: prices}
}

// Run replays txnsByDate over the ordered trading days, mutating state in
// place and capturing a deep copy at the end of each day. Any error aborts
// the run with no output; partial results are never returned.
//
// Ordering is a correctness requirement: cost-basis math depends on
// transactions being applied in date order and, within a day, in the order
// they were received.
func (e *Engine) Run(state *model.PortfolioState, txnsByDate map[model.Date][]model.Transaction, days []model.Date) ([]model.DailySnapshot, error) {
	snapshots := make([]model.DailySnapshot, 0, len(days))
	for _, day := range days {
		state.SnapshotDate = day
		for _, txn := range txnsByDate[day] {
			if err := e.apply(state, txn); err != nil {
				return nil, err
			}
		}
		pruneExpiredOptions(state, day)
		state.PortfolioValue = CalculateValue(state)
		snapshots = append(snapshots, model.DailySnapshot{PortfolioState: state.Clone()})
	}
	return snapshots, nil
}

func (e *Engine) apply(state *model.PortfolioState, txn model.Transaction) error {
	switch txn.EntityType {
	case model.EntityCash:
		// Qty is already signed: positive deposit, negative withdrawal.
		state.Cash += txn.Qty
		return nil
	case model.EntityStock:
		return e.applyStock(state, txn)
	case model.EntityOptionPut, model.EntityOptionCall:
		return applyOption(state, txn)
	default:
		return stateErrorf("transaction on %s has unknown entity_type %q", txn.Date, txn.EntityType)
	}
}

func (e *Engine) applyStock(state *model.PortfolioState, txn model.Transaction) error {
	if _, held := state.StockPositions[txn.Ticker]; held {
		return e.applyExistingStock(state, txn)
	}
	return e.applyNewStock(state, txn)
}

// applyExistingStock folds a buy or sell into an already-held position.
// Buys move the weighted-average cost basis; sells leave it unchanged
// (realized gains are not tracked here). A position that lands on exactly
// zero quantity is removed, and no price lookup happens for it.
func (e *Engine) applyExistingStock(state *model.PortfolioState, txn model.Transaction) error {
	pos := state.StockPositions[txn.Ticker]
	txnValue := txn.Price * txn.Qty

	newQty := pos.Qty + txn.Qty
	if newQty < 0 {
		return stateErrorf("sell of %g %s on %s exceeds held quantity %g",
			-txn.Qty, txn.Ticker, txn.Date, pos.Qty)
	}

	costBasis := pos.CostBasis
	if txn.TxnType == model.TxnBuy {
		costBasis = (pos.CostBasis*pos.Qty + txnValue) / newQty
	}

	state.Cash -= txnValue

	if newQty == 0 {
		delete(state.StockPositions, txn.Ticker)
		return nil
	}

	closePrice, err := e.prices.ClosePrice(txn.Ticker, txn.Date)
	if err != nil {
		return &PriceLookupError{Ticker: txn.Ticker, Date: txn.Date, Err: err}
	}
	state.StockPositions[txn.Ticker] = model.StockPosition{
		MarketValue: newQty * closePrice,
		Qty:         newQty,
		CostBasis:   costBasis,
	}
	return nil
}

// applyNewStock opens a position in a ticker not currently held. Premium
// accumulated from earlier naked option writes on the same ticker folds into
// the effective per-share cost basis and is cleared.
func (e *Engine) applyNewStock(state *model.PortfolioState, txn model.Transaction) error {
	if txn.Qty <= 0 {
		return stateErrorf("%s of %s on %s has no open position to draw from",
			txn.TxnType, txn.Ticker, txn.Date)
	}

	txnValue := txn.Qty * txn.Price
	state.Cash -= txnValue

	closePrice, err := e.prices.ClosePrice(txn.Ticker, txn.Date)
	if err != nil {
		return &PriceLookupError{Ticker: txn.Ticker, Date: txn.Date, Err: err}
	}

	costBasis := txn.Price
	if premium, ok := state.UnassignedPremium[txn.Ticker]; ok {
		// premium is negative for sold options, lowering the basis.
		costBasis = txn.Price + premium/txn.Qty
		delete(state.UnassignedPremium, txn.Ticker)
	}

	state.StockPositions[txn.Ticker] = model.StockPosition{
		MarketValue: txn.Qty * closePrice,
		Qty:         txn.Qty,
		CostBasis:   costBasis,
	}
	return nil
}

// applyOption records the contract and settles its premium against cash.
// Sold options against a held underlying adjust that position's cost basis;
// naked writes accumulate under UnassignedPremium until a position opens.
// Buys are recorded but never touch basis or unassigned premium.
func applyOption(state *model.PortfolioState, txn model.Transaction) error {
	state.OpenOptions = append(state.OpenOptions, model.OptionContract{
		Ticker:     txn.Ticker,
		ExpiryDate: txn.ExpiryDate,
		Strike:     txn.Strike,
		Qty:        txn.Qty,
		Price:      txn.Price,
		Type:       txn.EntityType,
	})

	// Sells carry negative qty, so their premium is negative and cash grows.
	premium := txn.Qty * txn.Price * model.ContractMultiplier
	state.Cash -= premium

	if txn.TxnType != model.TxnSell || txn.Ticker == "" {
		return nil
	}

	if pos, held := state.StockPositions[txn.Ticker]; held {
		pos.CostBasis += premium / pos.Qty
		state.StockPositions[txn.Ticker] = pos
	} else {
		state.UnassignedPremium[txn.Ticker] += premium
	}
	return nil
}

// pruneExpiredOptions drops every option whose expiry is on or before day.
// An option expiring today is already closed for snapshot purposes.
func pruneExpiredOptions(state *model.PortfolioState, day model.Date) {
	active := make([]model.OptionContract, 0, len(state.OpenOptions))
	for _, opt := range state.OpenOptions {
		if opt.ExpiryDate.After(day) {
			active = append(active, opt)
		}
	}
	state.OpenOptions = active
}
