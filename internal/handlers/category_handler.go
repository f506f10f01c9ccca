package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/maarriet/costa-rica-tourism-system/internal/models"
	"github.com/maarriet/costa-rica-tourism-system/internal/services"
)

// CategoryHandler handles category HTTP requests
type CategoryHandler struct {
	categorySvc *services.CategoryService
}

// NewCategoryHandler creates a new category handler
func NewCategoryHandler(categorySvc *services.CategoryService) *CategoryHandler {
	return &CategoryHandler{categorySvc: categorySvc}
}

// Create handles POST /api/v1/categories
func (h *CategoryHandler) Create(c *gin.Context) {
	var req models.CreateCategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondValidation(c, err)
		return
	}

	category, err := h.categorySvc.Create(&req)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"category": category})
}

// List handles GET /api/v1/categories
func (h *CategoryHandler) List(c *gin.Context) {
	includeInactive := c.Query("include_inactive") == "true"

	categories, err := h.categorySvc.List(includeInactive)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"categories": categories,
		"count":      len(categories),
	})
}

// Get handles GET /api/v1/categories/:id
func (h *CategoryHandler) Get(c *gin.Context) {
	category, err := h.categorySvc.GetByID(c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"category": category})
}

// Update handles PUT /api/v1/categories/:id
func (h *CategoryHandler) Update(c *gin.Context) {
	var req models.UpdateCategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondValidation(c, err)
		return
	}

	category, err := h.categorySvc.Update(c.Param("id"), &req)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"category": category})
}

// Delete handles DELETE /api/v1/categories/:id
func (h *CategoryHandler) Delete(c *gin.Context) {
	if err := h.categorySvc.Delete(c.Param("id")); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Category deleted"})
}
