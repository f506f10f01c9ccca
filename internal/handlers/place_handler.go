package handlers

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/maarriet/costa-rica-tourism-system/internal/clock"
	"github.com/maarriet/costa-rica-tourism-system/internal/database"
	"github.com/maarriet/costa-rica-tourism-system/internal/models"
	"github.com/maarriet/costa-rica-tourism-system/internal/services"
)

// PlaceHandler handles place HTTP requests
type PlaceHandler struct {
	placeSvc    *services.PlaceService
	capacitySvc *services.CapacityService
	clock       clock.Clock
}

// NewPlaceHandler creates a new place handler
func NewPlaceHandler(placeSvc *services.PlaceService, capacitySvc *services.CapacityService, clk clock.Clock) *PlaceHandler {
	return &PlaceHandler{
		placeSvc:    placeSvc,
		capacitySvc: capacitySvc,
		clock:       clk,
	}
}

// Create handles POST /api/v1/places
func (h *PlaceHandler) Create(c *gin.Context) {
	var req models.CreatePlaceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondValidation(c, err)
		return
	}

	place, err := h.placeSvc.Create(&req)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"place": place})
}

// List handles GET /api/v1/places
func (h *PlaceHandler) List(c *gin.Context) {
	filter := database.PlaceFilter{
		CategoryID: c.Query("category_id"),
		Status:     models.PlaceStatus(c.Query("status")),
	}

	places, err := h.placeSvc.List(filter)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"places": places,
		"count":  len(places),
	})
}

// Get handles GET /api/v1/places/:id. The response carries today's
// derived occupancy snapshot alongside the place itself.
func (h *PlaceHandler) Get(c *gin.Context) {
	place, err := h.placeSvc.GetByID(c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}

	today := h.clock.Now().Truncate(24 * time.Hour)
	availability, err := h.capacitySvc.GetAvailability(place.ID, today)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"place":        place,
		"availability": availability,
	})
}

// GetByCode handles GET /api/v1/places/code/:code
func (h *PlaceHandler) GetByCode(c *gin.Context) {
	place, err := h.placeSvc.GetByCode(c.Param("code"))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"place": place})
}

// Availability handles GET /api/v1/places/:id/availability?date=2006-01-02.
// With ?party_size= the response also says whether that party would fit.
func (h *PlaceHandler) Availability(c *gin.Context) {
	onDate := h.clock.Now().Truncate(24 * time.Hour)
	if raw := c.Query("date"); raw != "" {
		parsed, err := time.Parse("2006-01-02", raw)
		if err != nil {
			c.JSON(http.StatusBadRequest, ErrorResponse{
				Error:   "validation_error",
				Message: "date must be in YYYY-MM-DD format",
				Code:    "VALIDATION_ERROR",
			})
			return
		}
		onDate = parsed
	}

	availability, err := h.capacitySvc.GetAvailability(c.Param("id"), onDate)
	if err != nil {
		respondError(c, err)
		return
	}

	response := gin.H{"availability": availability}
	if raw := c.Query("party_size"); raw != "" {
		partySize, err := strconv.Atoi(raw)
		if err != nil || partySize <= 0 {
			c.JSON(http.StatusBadRequest, ErrorResponse{
				Error:   "validation_error",
				Message: "party_size must be a positive integer",
				Code:    "VALIDATION_ERROR",
			})
			return
		}
		response["can_admit"] = availability.CanAdmit(partySize)
	}

	c.JSON(http.StatusOK, response)
}

// Update handles PUT /api/v1/places/:id
func (h *PlaceHandler) Update(c *gin.Context) {
	var req models.UpdatePlaceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondValidation(c, err)
		return
	}

	place, err := h.placeSvc.Update(c.Param("id"), &req)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"place": place})
}

// Delete handles DELETE /api/v1/places/:id
func (h *PlaceHandler) Delete(c *gin.Context) {
	if err := h.placeSvc.Delete(c.Param("id")); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Place deleted"})
}
