package services

import (
	"github.com/sirupsen/logrus"

	"github.com/maarriet/costa-rica-tourism-system/internal/database"
	"github.com/maarriet/costa-rica-tourism-system/internal/models"
)

// PlaceService manages the tourism place catalog.
type PlaceService struct {
	placeRepo    *database.PlaceRepository
	categoryRepo *database.CategoryRepository
	codeGen      *CodeGeneratorService
}

// NewPlaceService creates a new PlaceService
func NewPlaceService(placeRepo *database.PlaceRepository, categoryRepo *database.CategoryRepository, codeGen *CodeGeneratorService) *PlaceService {
	return &PlaceService{
		placeRepo:    placeRepo,
		categoryRepo: categoryRepo,
		codeGen:      codeGen,
	}
}

// Create registers a new place with a generated PLC code.
func (s *PlaceService) Create(req *models.CreatePlaceRequest) (*models.Place, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	if _, err := s.categoryRepo.GetByID(req.CategoryID); err != nil {
		return nil, err
	}

	code, err := s.codeGen.GenerateUnique(PlaceCodePrefix, s.placeRepo.CodeExists)
	if err != nil {
		return nil, err
	}

	place := &models.Place{
		Code:        code,
		Name:        req.Name,
		Description: req.Description,
		CategoryID:  req.CategoryID,
		Price:       req.Price,
		Capacity:    req.Capacity,
		Location:    req.Location,
		Status:      models.PlaceStatusAvailable,
	}
	if err := s.placeRepo.Create(place); err != nil {
		return nil, err
	}

	logrus.WithFields(logrus.Fields{"place_code": place.Code, "name": place.Name}).Info("Place created")
	return place, nil
}

// GetByID returns a place by its identifier.
func (s *PlaceService) GetByID(placeID string) (*models.Place, error) {
	return s.placeRepo.GetByID(placeID)
}

// GetByCode returns a place by its business code.
func (s *PlaceService) GetByCode(code string) (*models.Place, error) {
	return s.placeRepo.GetByCode(code)
}

// List returns places matching the filter.
func (s *PlaceService) List(filter database.PlaceFilter) ([]models.Place, error) {
	return s.placeRepo.GetAll(filter)
}

// Update applies a partial update to a place.
func (s *PlaceService) Update(placeID string, req *models.UpdatePlaceRequest) (*models.Place, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	place, err := s.placeRepo.GetByID(placeID)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		place.Name = *req.Name
	}
	if req.Description != nil {
		place.Description = req.Description
	}
	if req.CategoryID != nil {
		if _, err := s.categoryRepo.GetByID(*req.CategoryID); err != nil {
			return nil, err
		}
		place.CategoryID = *req.CategoryID
	}
	if req.Price != nil {
		place.Price = *req.Price
	}
	if req.Capacity != nil {
		place.Capacity = req.Capacity
	}
	if req.Location != nil {
		place.Location = req.Location
	}
	if req.Status != nil {
		place.Status = *req.Status
	}

	if err := s.placeRepo.Update(place); err != nil {
		return nil, err
	}
	return place, nil
}

// Delete removes a place that has no active reservations.
func (s *PlaceService) Delete(placeID string) error {
	return s.placeRepo.Delete(placeID)
}
