package services

import (
	"github.com/maarriet/costa-rica-tourism-system/internal/database"
	"github.com/maarriet/costa-rica-tourism-system/internal/models"
)

// CategoryService manages the place category catalog.
type CategoryService struct {
	categoryRepo *database.CategoryRepository
}

// NewCategoryService creates a new CategoryService
func NewCategoryService(categoryRepo *database.CategoryRepository) *CategoryService {
	return &CategoryService{categoryRepo: categoryRepo}
}

// Create registers a new category.
func (s *CategoryService) Create(req *models.CreateCategoryRequest) (*models.Category, error) {
	category := &models.Category{
		Name:        req.Name,
		Description: req.Description,
		Icon:        req.Icon,
		Color:       req.Color,
		IsActive:    true,
	}
	if err := s.categoryRepo.Create(category); err != nil {
		return nil, err
	}
	return category, nil
}

// GetByID returns a category by its identifier.
func (s *CategoryService) GetByID(categoryID string) (*models.Category, error) {
	return s.categoryRepo.GetByID(categoryID)
}

// List returns categories, optionally including deactivated ones.
func (s *CategoryService) List(includeInactive bool) ([]models.Category, error) {
	return s.categoryRepo.GetAll(includeInactive)
}

// Update applies a partial update to a category.
func (s *CategoryService) Update(categoryID string, req *models.UpdateCategoryRequest) (*models.Category, error) {
	category, err := s.categoryRepo.GetByID(categoryID)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		category.Name = *req.Name
	}
	if req.Description != nil {
		category.Description = req.Description
	}
	if req.Icon != nil {
		category.Icon = req.Icon
	}
	if req.Color != nil {
		category.Color = req.Color
	}
	if req.IsActive != nil {
		category.IsActive = *req.IsActive
	}

	if err := s.categoryRepo.Update(category); err != nil {
		return nil, err
	}
	return category, nil
}

// Delete removes a category that has no places attached.
func (s *CategoryService) Delete(categoryID string) error {
	return s.categoryRepo.Delete(categoryID)
}
