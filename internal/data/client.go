package data

import (
	"bytes"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"time"

	"portfolio-snapshots/internal/model"
)

// Data-service routes. The upstream service takes JSON request bodies and
// answers row-oriented payloads.
const (
	snapshotPath     = "/getSnapshotByPortfolio"
	transactionsPath = "/getTransactionsByPortfolioDate"
	marketStatusPath = "/getMarketStatusByDate"
	closePricePath   = "/getClosePriceByTicker"
)

// APIError is a non-2xx answer from the data service.
type APIError struct {
	StatusCode int
	Path       string
	Message    string
}

func (e *APIError) Error() string { return e.Message }

// Client talks to the upstream data service that owns snapshots,
// transactions, the market calendar and closing prices. It implements
// replay.DataSource. No retries happen here; a caller that wants them wraps
// the client.
type Client struct {
	BaseURL string
	Client  *http.Client
}

// NewClient creates a data-service client. A zero timeout defaults to 10s.
func NewClient(baseURL string, timeout time.Duration) *Client {
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &Client{
		BaseURL: baseURL,
		Client:  &http.Client{Timeout: timeout},
	}
}

// LatestSnapshot fetches the most recent stored snapshot for a portfolio and
// decodes it into replay state. The response must hold exactly one row.
func (c *Client) LatestSnapshot(portfolioID string) (*model.PortfolioState, error) {
	payload, err := c.postJSON(snapshotPath, map[string]any{"portfolio_id": portfolioID})
	if err != nil {
		return nil, err
	}
	rows, err := extractRows(payload)
	if err != nil {
		return nil, err
	}
	if len(rows) != 1 {
		return nil, &ValidationError{Message: fmt.Sprintf(
			"Snapshot has incorrect number of rows, expected 1, got %d.", len(rows))}
	}
	if err := ValidateFields(rows[0], SnapshotRequiredFields); err != nil {
		return nil, err
	}
	return DecodeSnapshot(rows[0])
}

// TransactionsBetween fetches all ledger rows for the portfolio in the
// inclusive date window and converts them to typed transactions in the order
// received.
func (c *Client) TransactionsBetween(portfolioID string, start, end model.Date) ([]model.Transaction, error) {
	payload, err := c.postJSON(transactionsPath, map[string]any{
		"portfolio_id": portfolioID,
		"start_date":   start,
		"end_date":     end,
	})
	if err != nil {
		return nil, err
	}
	rows, err := extractRows(payload)
	if err != nil {
		return nil, err
	}
	for _, row := range rows {
		if err := ValidateFields(row, TransactionRequiredFields); err != nil {
			return nil, err
		}
	}
	return DecodeTransactions(rows)
}

// MarketOpen reports whether the market was open on the given date.
func (c *Client) MarketOpen(date model.Date) (bool, error) {
	payload, err := c.postJSON(marketStatusPath, map[string]any{"date": date})
	if err != nil {
		return false, err
	}
	status, ok := payload["market_status"].(bool)
	if !ok {
		return false, fmt.Errorf("market_status not found in response")
	}
	return status, nil
}

// ClosePrice fetches the closing price for a ticker on a single date. The
// response must hold exactly one price; absence is an error, never a default.
func (c *Client) ClosePrice(ticker string, on model.Date) (float64, error) {
	payload, err := c.postJSON(closePricePath, map[string]any{
		"ticker":     ticker,
		"start_date": on,
		"end_date":   on,
	})
	if err != nil {
		return 0, err
	}
	raw, ok := payload["close_price"].([]any)
	if !ok || len(raw) != 1 {
		return 0, fmt.Errorf("close_price not found in response")
	}
	price, ok := asFloat(raw[0])
	if !ok {
		return 0, fmt.Errorf("close_price is not a number: %v", raw[0])
	}
	return price, nil
}

func (c *Client) postJSON(path string, body any) (map[string]any, error) {
	raw, err := json.Marshal(body)
	if err != nil {
		return nil, fmt.Errorf("encode request for %s: %w", path, err)
	}

	req, err := http.NewRequest(http.MethodPost, c.BaseURL+path, bytes.NewReader(raw))
	if err != nil {
		return nil, fmt.Errorf("create request for %s: %w", path, err)
	}
	req.Header.Set("Content-Type", "application/json")

	start := time.Now()
	resp, err := c.Client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("data service %s: %w", path, err)
	}
	defer resp.Body.Close()
	log.Printf("[DataService] %s -> %d (%v)", path, resp.StatusCode, time.Since(start).Round(time.Millisecond))

	if resp.StatusCode != http.StatusOK {
		return nil, &APIError{
			StatusCode: resp.StatusCode,
			Path:       path,
			Message:    fmt.Sprintf("data service %s returned status %d", path, resp.StatusCode),
		}
	}

	var payload map[string]any
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, fmt.Errorf("decode response from %s: %w", path, err)
	}
	return payload, nil
}

// extractRows pulls the "rows" list out of a row-oriented payload.
func extractRows(payload map[string]any) ([]map[string]any, error) {
	raw, ok := payload["rows"]
	if !ok {
		return nil, missingFieldError("rows")
	}
	list, ok := raw.([]any)
	if !ok {
		return nil, &ValidationError{Message: fmt.Sprintf("rows is not a list: %T", raw)}
	}
	rows := make([]map[string]any, 0, len(list))
	for i, item := range list {
		row, ok := item.(map[string]any)
		if !ok {
			return nil, &ValidationError{Message: fmt.Sprintf("row %d is not an object: %T", i, item)}
		}
		rows = append(rows, row)
	}
	return rows, nil
}
