package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/maarriet/costa-rica-tourism-system/internal/database"
)

// HealthHandler handles health check HTTP requests
type HealthHandler struct {
	db      database.DB
	started time.Time
}

// NewHealthHandler creates a new health handler
func NewHealthHandler(db database.DB) *HealthHandler {
	return &HealthHandler{
		db:      db,
		started: time.Now(),
	}
}

// Health handles GET /health
func (h *HealthHandler) Health(c *gin.Context) {
	status := "healthy"
	dbStatus := "up"
	code := http.StatusOK

	if err := h.db.Ping(); err != nil {
		status = "degraded"
		dbStatus = "down"
		code = http.StatusServiceUnavailable
	}

	c.JSON(code, gin.H{
		"status":   status,
		"database": dbStatus,
		"uptime":   time.Since(h.started).String(),
	})
}
