package handler

import (
	"net/http"

	"autoparts-service/pkg/logger"
	"autoparts-service/prometheus"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

// StatsHandler serves the catalog statistics endpoint.
type StatsHandler struct {
	Products ProductStore
}

// NewStatsHandler wires a stats handler with the product store.
func NewStatsHandler(products ProductStore) *StatsHandler {
	return &StatsHandler{Products: products}
}

// Get handles GET /api/stats. The counts are recomputed fully on every
// call; there is no caching and no consistency snapshot across the
// underlying queries.
func (h *StatsHandler) Get(c echo.Context) error {
	log := logger.FromContext(c)

	stats, err := h.Products.Stats(c.Request().Context())
	if err != nil {
		log.Error("Failed to compute catalog stats", zap.Error(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{
			"error": "Failed to retrieve statistics",
		})
	}

	prometheus.RecordProductOperation("stats")
	log.Info("Catalog stats computed",
		zap.Int64("total", stats.TotalProducts),
		zap.Int64("in_stock", stats.InStock))
	return c.JSON(http.StatusOK, stats)
}
