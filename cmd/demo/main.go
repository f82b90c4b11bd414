package main

import (
	"encoding/json"
	"flag"
	"fmt"

	"portfolio-snapshots/internal/model"
	"portfolio-snapshots/internal/replay"
)

// Demo:
// - Build an in-memory data source with a seed snapshot, a week of
//   transactions and canned closing prices
// - Replay it through the engine to show how the pieces fit together
func main() {
	pretty := flag.Bool("pretty", true, "Indent the JSON output")
	flag.Parse()

	src := &memorySource{
		state: seedState(),
		txns: []model.Transaction{
			{Date: "2024-03-04", EntityType: model.EntityCash, Qty: 2000, TxnType: model.TxnBuy},
			{Date: "2024-03-05", EntityType: model.EntityStock, Ticker: "ACME", Qty: 10, Price: 50, TxnType: model.TxnBuy},
			{Date: "2024-03-06", EntityType: model.EntityOptionCall, Ticker: "ACME", Qty: -1, Price: 2,
				Strike: 60, ExpiryDate: "2024-03-08", TxnType: model.TxnSell},
			{Date: "2024-03-07", EntityType: model.EntityStock, Ticker: "ACME", Qty: 5, Price: 52, TxnType: model.TxnBuy},
		},
		prices: map[string]float64{
			"ACME|2024-03-05": 51,
			"ACME|2024-03-07": 53,
		},
		closedDays: map[model.Date]bool{
			"2024-03-09": true, // Saturday
			"2024-03-10": true,
		},
	}

	gen := replay.NewGenerator(src)
	snapshots, err := gen.GenerateThrough("demo-portfolio", "2024-03-08")
	if err != nil {
		panic(err)
	}

	for _, s := range snapshots {
		var out []byte
		if *pretty {
			out, err = json.MarshalIndent(s, "", "  ")
		} else {
			out, err = json.Marshal(s)
		}
		if err != nil {
			panic(err)
		}
		fmt.Printf("%s\n%s\n\n", s.SnapshotDate, out)
	}
}

func seedState() *model.PortfolioState {
	state := model.NewPortfolioState()
	state.SnapshotDate = "2024-03-03"
	state.Cash = 1000
	state.PortfolioValue = 1000
	return state
}

// memorySource is an in-memory replay.DataSource.
type memorySource struct {
	state      *model.PortfolioState
	txns       []model.Transaction
	prices     map[string]float64
	closedDays map[model.Date]bool
}

func (m *memorySource) LatestSnapshot(string) (*model.PortfolioState, error) {
	return m.state, nil
}

func (m *memorySource) TransactionsBetween(_ string, start, end model.Date) ([]model.Transaction, error) {
	var out []model.Transaction
	for _, t := range m.txns {
		if !t.Date.Before(start) && !t.Date.After(end) {
			out = append(out, t)
		}
	}
	return out, nil
}

func (m *memorySource) MarketOpen(date model.Date) (bool, error) {
	return !m.closedDays[date], nil
}

func (m *memorySource) ClosePrice(ticker string, on model.Date) (float64, error) {
	price, ok := m.prices[ticker+"|"+string(on)]
	if !ok {
		return 0, fmt.Errorf("no close price for %s on %s", ticker, on)
	}
	return price, nil
}
