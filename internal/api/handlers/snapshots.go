package handlers

import (
	"errors"
	"log"
	"net/http"

	"portfolio-snapshots/internal/api/models"
	"portfolio-snapshots/internal/data"
	"portfolio-snapshots/internal/replay"

	"github.com/gin-gonic/gin"
)

// SnapshotHandler exposes the replay trigger route.
type SnapshotHandler struct {
	gen *replay.Generator
}

func NewSnapshotHandler(gen *replay.Generator) *SnapshotHandler {
	return &SnapshotHandler{gen: gen}
}

// GenerateSnapshots handles POST /api/v1/snapshots/generate. It runs one full
// replay for the requested portfolio and returns every generated daily
// snapshot. Failures from the run surface as distinct error codes; this is
// the single place run errors get logged.
func (h *SnapshotHandler) GenerateSnapshots(c *gin.Context) {
	var req models.GenerateSnapshotsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Error: models.ErrorDetail{
				Code:    "INVALID_REQUEST",
				Message: err.Error(),
			},
		})
		return
	}

	snapshots, err := h.gen.GenerateDailySnapshots(req.PortfolioID)
	if err != nil {
		status, code, details := classifyError(err)
		log.Printf("[API] snapshot run failed for portfolio %s: %s: %v", req.PortfolioID, code, err)
		c.JSON(status, models.ErrorResponse{
			Error: models.ErrorDetail{
				Code:    code,
				Message: err.Error(),
				Details: details,
			},
		})
		return
	}

	resp := models.GenerateSnapshotsResponse{
		Status:      "completed",
		PortfolioID: req.PortfolioID,
		Count:       len(snapshots),
		Snapshots:   snapshots,
	}
	if len(snapshots) > 0 {
		resp.Window = &models.DateWindow{
			Start: snapshots[0].SnapshotDate,
			End:   snapshots[len(snapshots)-1].SnapshotDate,
		}
	}
	c.JSON(http.StatusOK, resp)
}

// classifyError maps the replay error taxonomy onto HTTP status and stable
// error codes. Upstream data faults are gateway problems; invariant
// violations are ours.
func classifyError(err error) (int, string, map[string]any) {
	var (
		validationErr   *data.ValidationError
		decodeErr       *data.DecodeError
		apiErr          *data.APIError
		marketStatusErr *replay.MarketStatusError
		priceLookupErr  *replay.PriceLookupError
		stateErr        *replay.StateError
	)
	switch {
	case errors.As(err, &validationErr):
		return http.StatusBadGateway, "VALIDATION_ERROR", nil
	case errors.As(err, &decodeErr):
		return http.StatusBadGateway, "DECODE_ERROR", nil
	case errors.As(err, &marketStatusErr):
		return http.StatusBadGateway, "MARKET_STATUS_ERROR", map[string]any{
			"date": marketStatusErr.Date,
		}
	case errors.As(err, &priceLookupErr):
		return http.StatusBadGateway, "PRICE_LOOKUP_ERROR", map[string]any{
			"ticker": priceLookupErr.Ticker,
			"date":   priceLookupErr.Date,
		}
	case errors.As(err, &stateErr):
		return http.StatusInternalServerError, "STATE_ERROR", nil
	case errors.As(err, &apiErr):
		return http.StatusBadGateway, "DATA_FETCH_ERROR", map[string]any{
			"status_code": apiErr.StatusCode,
			"path":        apiErr.Path,
		}
	default:
		return http.StatusInternalServerError, "INTERNAL_ERROR", nil
	}
}
