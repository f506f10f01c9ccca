package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/maarriet/costa-rica-tourism-system/internal/database"
	"github.com/maarriet/costa-rica-tourism-system/internal/middleware"
	"github.com/maarriet/costa-rica-tourism-system/internal/models"
	"github.com/maarriet/costa-rica-tourism-system/internal/services"
)

// ReservationHandler handles reservation HTTP requests
type ReservationHandler struct {
	reservationSvc *services.ReservationService
}

// NewReservationHandler creates a new reservation handler
func NewReservationHandler(reservationSvc *services.ReservationService) *ReservationHandler {
	return &ReservationHandler{reservationSvc: reservationSvc}
}

// Create handles POST /api/v1/reservations
func (h *ReservationHandler) Create(c *gin.Context) {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		unauthorizedContext(c)
		return
	}

	var req models.CreateReservationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondValidation(c, err)
		return
	}
	if err := req.Validate(); err != nil {
		respondValidation(c, err)
		return
	}

	// Clients book for themselves, whatever email the payload carries,
	// and never skip the pending state.
	if !user.IsAdministrator() {
		req.ClientEmail = user.Email
		req.Confirm = false
	}

	reservation, err := h.reservationSvc.Create(&req)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"reservation": reservation})
}

// List handles GET /api/v1/reservations
func (h *ReservationHandler) List(c *gin.Context) {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		unauthorizedContext(c)
		return
	}

	filter := database.ReservationFilter{
		PlaceID:     c.Query("place_id"),
		Status:      models.ReservationStatus(c.Query("status")),
		ClientEmail: c.Query("client_email"),
	}
	if raw := c.Query("from_date"); raw != "" {
		parsed, err := time.Parse("2006-01-02", raw)
		if err != nil {
			respondValidation(c, errDateFormat)
			return
		}
		filter.FromDate = &parsed
	}
	if raw := c.Query("to_date"); raw != "" {
		parsed, err := time.Parse("2006-01-02", raw)
		if err != nil {
			respondValidation(c, errDateFormat)
			return
		}
		filter.ToDate = &parsed
	}

	reservations, err := h.reservationSvc.List(user, filter)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"reservations": reservations,
		"count":        len(reservations),
	})
}

// Get handles GET /api/v1/reservations/:id
func (h *ReservationHandler) Get(c *gin.Context) {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		unauthorizedContext(c)
		return
	}

	reservation, err := h.reservationSvc.GetByID(user, c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"reservation": reservation})
}

// GetByCode handles GET /api/v1/reservations/code/:code
func (h *ReservationHandler) GetByCode(c *gin.Context) {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		unauthorizedContext(c)
		return
	}

	reservation, err := h.reservationSvc.GetByCode(user, c.Param("code"))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"reservation": reservation})
}

// Confirm handles POST /api/v1/reservations/:id/confirm
func (h *ReservationHandler) Confirm(c *gin.Context) {
	h.transition(c, h.reservationSvc.Confirm)
}

// CheckIn handles POST /api/v1/reservations/:id/check-in
func (h *ReservationHandler) CheckIn(c *gin.Context) {
	h.transition(c, h.reservationSvc.CheckIn)
}

// CheckOut handles POST /api/v1/reservations/:id/check-out
func (h *ReservationHandler) CheckOut(c *gin.Context) {
	h.transition(c, h.reservationSvc.CheckOut)
}

// Complete handles POST /api/v1/reservations/:id/complete
func (h *ReservationHandler) Complete(c *gin.Context) {
	h.transition(c, h.reservationSvc.Complete)
}

// Cancel handles POST /api/v1/reservations/:id/cancel
func (h *ReservationHandler) Cancel(c *gin.Context) {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		unauthorizedContext(c)
		return
	}

	// Body is optional; an empty cancel is a cancel without a reason.
	var req models.CancelReservationRequest
	_ = c.ShouldBindJSON(&req)

	reservation, err := h.reservationSvc.Cancel(user, c.Param("id"), req.Reason)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"reservation": reservation})
}

func (h *ReservationHandler) transition(c *gin.Context, fn func(*models.User, string) (*models.Reservation, error)) {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		unauthorizedContext(c)
		return
	}

	reservation, err := fn(user, c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"reservation": reservation})
}
