package replay

import (
	"fmt"

	"portfolio-snapshots/internal/model"
)

// MarketCalendar answers whether the market was open on a date. It is a
// blocking external collaborator.
type MarketCalendar interface {
	MarketOpen(date model.Date) (bool, error)
}

// TradingDays expands the inclusive [start, end] range into the ascending
// list of days the market was open. A calendar failure on any day aborts the
// whole enumeration; no partial list is returned.
func TradingDays(start, end model.Date, cal MarketCalendar) ([]model.Date, error) {
	startT, err := start.Time()
	if err != nil {
		return nil, fmt.Errorf("invalid start date: %w", err)
	}
	endT, err := end.Time()
	if err != nil {
		return nil, fmt.Errorf("invalid end date: %w", err)
	}

	var days []model.Date
	for t := startT; !t.After(endT); t = t.AddDate(0, 0, 1) {
		day := model.DateOf(t)
		open, err := cal.MarketOpen(day)
		if err != nil {
			return nil, &MarketStatusError{Date: day, Err: err}
		}
		if open {
			days = append(days, day)
		}
	}
	return days, nil
}
