package models

// GenerateSnapshotsRequest triggers a replay run for one portfolio.
type GenerateSnapshotsRequest struct {
	PortfolioID string `json:"portfolio_id" binding:"required"`
}
