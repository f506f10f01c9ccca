package handlers

import (
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/maarriet/costa-rica-tourism-system/internal/clock"
	"github.com/maarriet/costa-rica-tourism-system/internal/database"
	"github.com/maarriet/costa-rica-tourism-system/internal/models"
	"github.com/maarriet/costa-rica-tourism-system/internal/services"
)

// ReportHandler handles report export HTTP requests
type ReportHandler struct {
	reportSvc *services.ReportService
	clock     clock.Clock
}

// NewReportHandler creates a new report handler
func NewReportHandler(reportSvc *services.ReportService, clk clock.Clock) *ReportHandler {
	return &ReportHandler{
		reportSvc: reportSvc,
		clock:     clk,
	}
}

// ReservationsCSV handles GET /api/v1/reports/reservations.csv
func (h *ReportHandler) ReservationsCSV(c *gin.Context) {
	filter, ok := h.parseFilter(c)
	if !ok {
		return
	}

	data, err := h.reportSvc.ReservationsCSV(filter)
	if err != nil {
		respondError(c, err)
		return
	}

	filename := fmt.Sprintf("reservations-%s.csv", h.clock.Now().Format("20060102"))
	c.Header("Content-Disposition", `attachment; filename="`+filename+`"`)
	c.Data(http.StatusOK, "text/csv", data)
}

// ReservationsPDF handles GET /api/v1/reports/reservations.pdf
func (h *ReportHandler) ReservationsPDF(c *gin.Context) {
	filter, ok := h.parseFilter(c)
	if !ok {
		return
	}

	data, err := h.reportSvc.ReservationsPDF(filter)
	if err != nil {
		respondError(c, err)
		return
	}

	filename := fmt.Sprintf("reservations-%s.pdf", h.clock.Now().Format("20060102"))
	c.Header("Content-Disposition", `attachment; filename="`+filename+`"`)
	c.Data(http.StatusOK, "application/pdf", data)
}

func (h *ReportHandler) parseFilter(c *gin.Context) (database.ReservationFilter, bool) {
	filter := database.ReservationFilter{
		PlaceID: c.Query("place_id"),
		Status:  models.ReservationStatus(c.Query("status")),
	}
	if raw := c.Query("from_date"); raw != "" {
		parsed, err := time.Parse("2006-01-02", raw)
		if err != nil {
			respondValidation(c, errDateFormat)
			return filter, false
		}
		filter.FromDate = &parsed
	}
	if raw := c.Query("to_date"); raw != "" {
		parsed, err := time.Parse("2006-01-02", raw)
		if err != nil {
			respondValidation(c, errDateFormat)
			return filter, false
		}
		filter.ToDate = &parsed
	}
	return filter, true
}
