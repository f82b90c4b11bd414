package models

import "portfolio-snapshots/internal/model"

// GenerateSnapshotsResponse is the result of a completed replay run.
type GenerateSnapshotsResponse struct {
	Status      string                `json:"status"`
	PortfolioID string                `json:"portfolio_id"`
	Window      *DateWindow           `json:"window,omitempty"`
	Count       int                   `json:"count"`
	Snapshots   []model.DailySnapshot `json:"snapshots"`
}

// DateWindow is the inclusive range of trading days a run covered.
type DateWindow struct {
	Start model.Date `json:"start"`
	End   model.Date `json:"end"`
}

// ErrorResponse represents an error response
type ErrorResponse struct {
	Error ErrorDetail `json:"error"`
}

// ErrorDetail contains error information
type ErrorDetail struct {
	Code    string         `json:"code"`
	Message string         `json:"message"`
	Details map[string]any `json:"details,omitempty"`
}
