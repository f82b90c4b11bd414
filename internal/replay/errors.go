package replay

import (
	"fmt"

	"portfolio-snapshots/internal/model"
)

// MarketStatusError is a market-calendar lookup failing mid-enumeration. It
// aborts the whole run; no partial day list is returned.
type MarketStatusError struct {
	Date model.Date
	Err  error
}

func (e *MarketStatusError) Error() string {
	return fmt.Sprintf("market status lookup for %s: %v", e.Date, e.Err)
}

func (e *MarketStatusError) Unwrap() error { return e.Err }

// PriceLookupError is a closing-price lookup failing mid-replay. Fatal; the
// engine never substitutes a stale or default price.
type PriceLookupError struct {
	Ticker string
	Date   model.Date
	Err    error
}

func (e *PriceLookupError) Error() string {
	return fmt.Sprintf("close price lookup for %s on %s: %v", e.Ticker, e.Date, e.Err)
}

func (e *PriceLookupError) Unwrap() error { return e.Err }

// StateError is an internal invariant violation, such as a sell exceeding the
// held quantity. Fatal.
type StateError struct {
	Message string
}

func (e *StateError) Error() string { return e.Message }

func stateErrorf(format string, args ...any) *StateError {
	return &StateError{Message: fmt.Sprintf(format, args...)}
}
