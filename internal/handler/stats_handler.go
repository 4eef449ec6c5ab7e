package handler

import (
	"github.com/gin-gonic/gin"

	"portops/internal/service"
)

// StatsHandler handles stats endpoints.
type StatsHandler struct {
	statsService service.StatsService
}

// NewStatsHandler creates a new StatsHandler.
func NewStatsHandler(statsService service.StatsService) *StatsHandler {
	return &StatsHandler{statsService: statsService}
}

// GetStats handles GET /api/v1/stats
// @Summary Get operations statistics
// @Description Get container counts per status bucket across all vessels, plus mismatched declarations and containers close to their detention deadline.
// @Tags stats
// @Produce json
// @Success 200 {object} APIResponse{data=domain.OperationsStats} "Aggregate statistics"
// @Router /stats [get]
func (h *StatsHandler) GetStats(c *gin.Context) {
	stats, err := h.statsService.GetStats(c.Request.Context())
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, stats)
}
