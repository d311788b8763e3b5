package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/gasops/cylinder-backend/internal/services"
)

// StatsHandler handles system overview HTTP requests
type StatsHandler struct {
	statsService services.StatsService
}

// NewStatsHandler creates a new StatsHandler
func NewStatsHandler(statsService services.StatsService) *StatsHandler {
	return &StatsHandler{statsService: statsService}
}

// Overview handles GET /stats
func (h *StatsHandler) Overview(c *gin.Context) {
	stats, err := h.statsService.Overview(c)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, stats)
}
