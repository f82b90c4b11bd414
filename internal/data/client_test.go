package data

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"portfolio-snapshots/internal/model"

	"github.com/stretchr/testify/assert"
)

// fakeDataService answers each route with a canned payload and records the
// request bodies it saw.
func fakeDataService(t *testing.T, responses map[string]any) (*httptest.Server, map[string][]map[string]any) {
	t.Helper()
	seen := make(map[string][]map[string]any)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var body map[string]any
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		seen[r.URL.Path] = append(seen[r.URL.Path], body)

		payload, ok := responses[r.URL.Path]
		if !ok {
			w.WriteHeader(http.StatusNotFound)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		assert.NoError(t, json.NewEncoder(w).Encode(payload))
	}))
	t.Cleanup(srv.Close)
	return srv, seen
}

func TestLatestSnapshotDecodesRow(t *testing.T) {
	srv, seen := fakeDataService(t, map[string]any{
		snapshotPath: map[string]any{
			"rows": []any{map[string]any{
				"snapshot_date":   "2024-03-03",
				"portfolio_value": 1000.0,
				"assets":          `[{"entity_type": "cash", "value": 1000}]`,
			}},
		},
	})

	client := NewClient(srv.URL, time.Second)
	state, err := client.LatestSnapshot("p1")
	assert.NoError(t, err)
	assert.Equal(t, model.Date("2024-03-03"), state.SnapshotDate)
	assert.InDelta(t, 1000, state.Cash, 1e-9)

	assert.Len(t, seen[snapshotPath], 1)
	assert.Equal(t, "p1", seen[snapshotPath][0]["portfolio_id"])
}

func TestLatestSnapshotWrongRowCount(t *testing.T) {
	srv, _ := fakeDataService(t, map[string]any{
		snapshotPath: map[string]any{"rows": []any{}},
	})

	client := NewClient(srv.URL, time.Second)
	_, err := client.LatestSnapshot("p1")

	var vErr *ValidationError
	assert.ErrorAs(t, err, &vErr)
	assert.EqualError(t, err, "Snapshot has incorrect number of rows, expected 1, got 0.")
}

func TestLatestSnapshotMissingRowsKey(t *testing.T) {
	srv, _ := fakeDataService(t, map[string]any{
		snapshotPath: map[string]any{"data": []any{}},
	})

	client := NewClient(srv.URL, time.Second)
	_, err := client.LatestSnapshot("p1")
	assert.EqualError(t, err, `Missing "rows" in the input data`)
}

func TestTransactionsBetweenSendsWindowAndDecodes(t *testing.T) {
	srv, seen := fakeDataService(t, map[string]any{
		transactionsPath: map[string]any{
			"rows": []any{map[string]any{
				"date": "2024-03-04", "entity_type": "stock", "ticker": "ACME",
				"qty": 10.0, "price": 50.0, "strike": nil, "expiry_date": nil, "txn_type": "buy",
			}},
		},
	})

	client := NewClient(srv.URL, time.Second)
	txns, err := client.TransactionsBetween("p1", "2024-03-04", "2024-03-08")
	assert.NoError(t, err)
	assert.Len(t, txns, 1)
	assert.Equal(t, "ACME", txns[0].Ticker)

	req := seen[transactionsPath][0]
	assert.Equal(t, "2024-03-04", req["start_date"])
	assert.Equal(t, "2024-03-08", req["end_date"])
}

func TestTransactionsBetweenRowMissingField(t *testing.T) {
	srv, _ := fakeDataService(t, map[string]any{
		transactionsPath: map[string]any{
			"rows": []any{map[string]any{
				"date": "2024-03-04", "entity_type": "stock", "ticker": "ACME",
				"qty": 10.0, "price": 50.0, "strike": nil, "expiry_date": nil,
			}},
		},
	})

	client := NewClient(srv.URL, time.Second)
	_, err := client.TransactionsBetween("p1", "2024-03-04", "2024-03-08")
	assert.EqualError(t, err, `Missing "txn_type" in the input data`)
}

func TestMarketOpen(t *testing.T) {
	srv, seen := fakeDataService(t, map[string]any{
		marketStatusPath: map[string]any{"market_status": true},
	})

	client := NewClient(srv.URL, time.Second)
	open, err := client.MarketOpen("2024-03-04")
	assert.NoError(t, err)
	assert.True(t, open)
	assert.Equal(t, "2024-03-04", seen[marketStatusPath][0]["date"])
}

func TestMarketOpenMissingStatus(t *testing.T) {
	srv, _ := fakeDataService(t, map[string]any{
		marketStatusPath: map[string]any{},
	})

	client := NewClient(srv.URL, time.Second)
	_, err := client.MarketOpen("2024-03-04")
	assert.ErrorContains(t, err, "market_status not found")
}

func TestClosePriceSingleValue(t *testing.T) {
	srv, seen := fakeDataService(t, map[string]any{
		closePricePath: map[string]any{"close_price": []any{51.25}},
	})

	client := NewClient(srv.URL, time.Second)
	price, err := client.ClosePrice("ACME", "2024-03-04")
	assert.NoError(t, err)
	assert.InDelta(t, 51.25, price, 1e-9)

	req := seen[closePricePath][0]
	assert.Equal(t, "ACME", req["ticker"])
	assert.Equal(t, "2024-03-04", req["start_date"])
	assert.Equal(t, "2024-03-04", req["end_date"])
}

func TestClosePriceEmptyList(t *testing.T) {
	srv, _ := fakeDataService(t, map[string]any{
		closePricePath: map[string]any{"close_price": []any{}},
	})

	client := NewClient(srv.URL, time.Second)
	_, err := client.ClosePrice("ACME", "2024-03-04")
	assert.ErrorContains(t, err, "close_price not found")
}

func TestNon200StatusIsAPIError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	t.Cleanup(srv.Close)

	client := NewClient(srv.URL, time.Second)
	_, err := client.LatestSnapshot("p1")

	var apiErr *APIError
	assert.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusInternalServerError, apiErr.StatusCode)
	assert.Equal(t, snapshotPath, apiErr.Path)
}

func TestNewClientDefaultsTimeout(t *testing.T) {
	client := NewClient("http://example.test", 0)
	assert.Equal(t, 10*time.Second, client.Client.Timeout)
}
