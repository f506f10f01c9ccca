package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/maarriet/costa-rica-tourism-system/internal/clock"
	"github.com/maarriet/costa-rica-tourism-system/internal/database"
)

// highOccupancyThreshold is the occupancy ratio above which a place is
// flagged on the dashboard.
const highOccupancyThreshold = 0.9

// DashboardHandler handles dashboard HTTP requests
type DashboardHandler struct {
	dashboardRepo *database.DashboardRepository
	clock         clock.Clock
}

// NewDashboardHandler creates a new dashboard handler
func NewDashboardHandler(dashboardRepo *database.DashboardRepository, clk clock.Clock) *DashboardHandler {
	return &DashboardHandler{
		dashboardRepo: dashboardRepo,
		clock:         clk,
	}
}

// Stats handles GET /api/v1/dashboard/stats
func (h *DashboardHandler) Stats(c *gin.Context) {
	stats, err := h.dashboardRepo.GetStats(h.clock.Now())
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"stats": stats})
}

// HighOccupancy handles GET /api/v1/dashboard/high-occupancy
func (h *DashboardHandler) HighOccupancy(c *gin.Context) {
	threshold := highOccupancyThreshold
	if raw := c.Query("threshold"); raw != "" {
		parsed, err := strconv.ParseFloat(raw, 64)
		if err != nil || parsed <= 0 || parsed > 1 {
			c.JSON(http.StatusBadRequest, ErrorResponse{
				Error:   "validation_error",
				Message: "threshold must be a number between 0 and 1",
				Code:    "VALIDATION_ERROR",
			})
			return
		}
		threshold = parsed
	}

	places, err := h.dashboardRepo.GetHighOccupancyPlaces(threshold)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"places":    places,
		"count":     len(places),
		"threshold": threshold,
	})
}
