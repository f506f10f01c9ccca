package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/maarriet/costa-rica-tourism-system/internal/models"
	"github.com/maarriet/costa-rica-tourism-system/internal/services"
)

// AlertHandler handles alert HTTP requests
type AlertHandler struct {
	alertSvc *services.AlertService
	cronSvc  *services.CronService
}

// NewAlertHandler creates a new alert handler
func NewAlertHandler(alertSvc *services.AlertService, cronSvc *services.CronService) *AlertHandler {
	return &AlertHandler{
		alertSvc: alertSvc,
		cronSvc:  cronSvc,
	}
}

// Create handles POST /api/v1/alerts
func (h *AlertHandler) Create(c *gin.Context) {
	var req models.CreateAlertRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondValidation(c, err)
		return
	}

	alert, err := h.alertSvc.Create(&req)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"alert": alert})
}

// ListActive handles GET /api/v1/alerts/active. An optional ?type=
// narrows the list to one alert type.
func (h *AlertHandler) ListActive(c *gin.Context) {
	var (
		alerts []models.Alert
		err    error
	)

	if typeParam := c.Query("type"); typeParam != "" {
		alertType := models.AlertType(typeParam)
		if !models.ValidAlertType(alertType) {
			c.JSON(http.StatusBadRequest, ErrorResponse{
				Error:   "validation_error",
				Message: "unknown alert type: " + typeParam,
				Code:    "VALIDATION_ERROR",
			})
			return
		}
		alerts, err = h.alertSvc.GetByType(alertType)
	} else {
		alerts, err = h.alertSvc.GetActive()
	}
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"alerts": alerts,
		"count":  len(alerts),
	})
}

// Get handles GET /api/v1/alerts/:id
func (h *AlertHandler) Get(c *gin.Context) {
	alert, err := h.alertSvc.GetByID(c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"alert": alert})
}

// ListByReservation handles GET /api/v1/reservations/:id/alerts
func (h *AlertHandler) ListByReservation(c *gin.Context) {
	alerts, err := h.alertSvc.GetByReservation(c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"alerts": alerts,
		"count":  len(alerts),
	})
}

// MarkSent handles POST /api/v1/alerts/:id/mark-sent
func (h *AlertHandler) MarkSent(c *gin.Context) {
	if err := h.alertSvc.MarkSent(c.Param("id")); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Alert marked as sent"})
}

// MarkUnsent handles POST /api/v1/alerts/:id/mark-unsent. Requeues an
// alert so it shows up as active again.
func (h *AlertHandler) MarkUnsent(c *gin.Context) {
	if err := h.alertSvc.MarkUnsent(c.Param("id")); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Alert marked as unsent"})
}

// RunReminders handles POST /api/v1/alerts/run-reminders. Lets an
// administrator trigger the reminder sweep without waiting for the
// scheduled run.
func (h *AlertHandler) RunReminders(c *gin.Context) {
	sent, err := h.cronSvc.RunRemindersNow()
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Reminder sweep finished",
		"sent":    sent,
	})
}
