package database

import (
	"database/sql"
	"fmt"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"github.com/maarriet/costa-rica-tourism-system/internal/models"
)

// PlaceRepository handles database operations for the places table
type PlaceRepository struct {
	db DB
}

// NewPlaceRepository creates a new PlaceRepository
func NewPlaceRepository(db DB) *PlaceRepository {
	return &PlaceRepository{db: db}
}

// PlaceFilter narrows GetAll results
type PlaceFilter struct {
	CategoryID string
	Status     models.PlaceStatus
}

// Create creates a new place
func (r *PlaceRepository) Create(place *models.Place) error {
	query := `
		INSERT INTO places (id, code, name, description, category_id, price, capacity, location, status)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING created_at, updated_at
	`

	if place.ID == "" {
		place.ID = uuid.New().String()
	}

	err := r.db.QueryRow(
		query,
		place.ID, place.Code, place.Name, place.Description,
		place.CategoryID, place.Price, place.Capacity, place.Location, place.Status,
	).Scan(&place.CreatedAt, &place.UpdatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("place code %q: %w", place.Code, models.ErrDuplicateCode)
		}
		return fmt.Errorf("failed to create place: %w", err)
	}

	return nil
}

// GetByID retrieves a place by ID
func (r *PlaceRepository) GetByID(placeID string) (*models.Place, error) {
	query := `
		SELECT id, code, name, description, category_id, price, capacity,
		       location, status, created_at, updated_at
		FROM places
		WHERE id = $1
	`

	place := &models.Place{}
	if err := r.db.Get(place, query, placeID); err != nil {
		if err == sql.ErrNoRows {
			return nil, models.ErrPlaceNotFound
		}
		return nil, fmt.Errorf("failed to get place: %w", err)
	}

	return place, nil
}

// GetByCode retrieves a place by its unique code
func (r *PlaceRepository) GetByCode(code string) (*models.Place, error) {
	query := `
		SELECT id, code, name, description, category_id, price, capacity,
		       location, status, created_at, updated_at
		FROM places
		WHERE code = $1
	`

	place := &models.Place{}
	if err := r.db.Get(place, query, code); err != nil {
		if err == sql.ErrNoRows {
			return nil, models.ErrPlaceNotFound
		}
		return nil, fmt.Errorf("failed to get place by code: %w", err)
	}

	return place, nil
}

// GetForUpdate retrieves a place inside tx with its row locked, so that
// concurrent admission checks against the same place serialize.
func (r *PlaceRepository) GetForUpdate(tx Queryer, placeID string) (*models.Place, error) {
	query := `
		SELECT id, code, name, description, category_id, price, capacity,
		       location, status, created_at, updated_at
		FROM places
		WHERE id = $1
		FOR UPDATE
	`

	place := &models.Place{}
	var description, location sql.NullString
	var capacity sql.NullInt64

	err := tx.QueryRow(query, placeID).Scan(
		&place.ID, &place.Code, &place.Name, &description,
		&place.CategoryID, &place.Price, &capacity,
		&location, &place.Status, &place.CreatedAt, &place.UpdatedAt,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, models.ErrPlaceNotFound
		}
		return nil, fmt.Errorf("failed to lock place: %w", err)
	}

	if description.Valid {
		place.Description = &description.String
	}
	if location.Valid {
		place.Location = &location.String
	}
	if capacity.Valid {
		c := int(capacity.Int64)
		place.Capacity = &c
	}

	return place, nil
}

// GetAll retrieves places matching the filter
func (r *PlaceRepository) GetAll(filter PlaceFilter) ([]models.Place, error) {
	query := `
		SELECT id, code, name, description, category_id, price, capacity,
		       location, status, created_at, updated_at
		FROM places
		WHERE ($1 = '' OR category_id::text = $1)
		  AND ($2 = '' OR status = $2)
		ORDER BY name
	`

	places := []models.Place{}
	if err := r.db.Select(&places, query, filter.CategoryID, string(filter.Status)); err != nil {
		return nil, fmt.Errorf("failed to list places: %w", err)
	}

	return places, nil
}

// Update updates a place's mutable fields
func (r *PlaceRepository) Update(place *models.Place) error {
	query := `
		UPDATE places
		SET name = $2, description = $3, category_id = $4, price = $5,
		    capacity = $6, location = $7, status = $8, updated_at = NOW()
		WHERE id = $1
		RETURNING updated_at
	`

	err := r.db.QueryRow(
		query,
		place.ID, place.Name, place.Description, place.CategoryID,
		place.Price, place.Capacity, place.Location, place.Status,
	).Scan(&place.UpdatedAt)
	if err != nil {
		if err == sql.ErrNoRows {
			return models.ErrPlaceNotFound
		}
		return fmt.Errorf("failed to update place: %w", err)
	}

	return nil
}

// CountActiveReservations returns the number of reservations in an active
// state (pending, confirmed or checked in) referencing the place.
func (r *PlaceRepository) CountActiveReservations(placeID string) (int, error) {
	query := `
		SELECT COUNT(*)
		FROM reservations
		WHERE place_id = $1
		  AND status = ANY($2)
	`

	var count int
	err := r.db.QueryRow(query, placeID, pq.Array(statusStrings(models.ActiveStatuses))).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count active reservations: %w", err)
	}

	return count, nil
}

// Delete deletes a place. The delete is blocked while active reservations
// still reference it.
func (r *PlaceRepository) Delete(placeID string) error {
	count, err := r.CountActiveReservations(placeID)
	if err != nil {
		return err
	}
	if count > 0 {
		return models.ErrPlaceInUse
	}

	result, err := r.db.Exec(`DELETE FROM places WHERE id = $1`, placeID)
	if err != nil {
		return fmt.Errorf("failed to delete place: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return models.ErrPlaceNotFound
	}

	return nil
}

// CodeExists reports whether a place code is already taken
func (r *PlaceRepository) CodeExists(code string) (bool, error) {
	var exists bool
	err := r.db.QueryRow(`SELECT EXISTS(SELECT 1 FROM places WHERE code = $1)`, code).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("failed to check place code: %w", err)
	}
	return exists, nil
}
