package database

import (
	"database/sql"
	"fmt"

	"github.com/google/uuid"
	"github.com/maarriet/costa-rica-tourism-system/internal/models"
)

// CategoryRepository handles database operations for the categories table
type CategoryRepository struct {
	db DB
}

// NewCategoryRepository creates a new CategoryRepository
func NewCategoryRepository(db DB) *CategoryRepository {
	return &CategoryRepository{db: db}
}

// Create creates a new category
func (r *CategoryRepository) Create(category *models.Category) error {
	query := `
		INSERT INTO categories (id, name, description, icon, color, is_active)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING created_at
	`

	if category.ID == "" {
		category.ID = uuid.New().String()
	}

	err := r.db.QueryRow(
		query,
		category.ID, category.Name, category.Description,
		category.Icon, category.Color, category.IsActive,
	).Scan(&category.CreatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("category %q: %w", category.Name, models.ErrDuplicateCode)
		}
		return fmt.Errorf("failed to create category: %w", err)
	}

	return nil
}

// GetByID retrieves a category by ID
func (r *CategoryRepository) GetByID(categoryID string) (*models.Category, error) {
	query := `
		SELECT id, name, description, icon, color, is_active, created_at
		FROM categories
		WHERE id = $1
	`

	category := &models.Category{}
	err := r.db.Get(category, query, categoryID)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, models.ErrCategoryNotFound
		}
		return nil, fmt.Errorf("failed to get category: %w", err)
	}

	return category, nil
}

// GetAll retrieves all categories, optionally including inactive ones
func (r *CategoryRepository) GetAll(includeInactive bool) ([]models.Category, error) {
	query := `
		SELECT id, name, description, icon, color, is_active, created_at
		FROM categories
		WHERE is_active = true OR $1
		ORDER BY name
	`

	categories := []models.Category{}
	if err := r.db.Select(&categories, query, includeInactive); err != nil {
		return nil, fmt.Errorf("failed to list categories: %w", err)
	}

	return categories, nil
}

// Update updates a category's mutable fields
func (r *CategoryRepository) Update(category *models.Category) error {
	query := `
		UPDATE categories
		SET name = $2, description = $3, icon = $4, color = $5, is_active = $6
		WHERE id = $1
	`

	result, err := r.db.Exec(
		query,
		category.ID, category.Name, category.Description,
		category.Icon, category.Color, category.IsActive,
	)
	if err != nil {
		return fmt.Errorf("failed to update category: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return models.ErrCategoryNotFound
	}

	return nil
}

// CountPlaces returns the number of places referencing the category
func (r *CategoryRepository) CountPlaces(categoryID string) (int, error) {
	query := `SELECT COUNT(*) FROM places WHERE category_id = $1`

	var count int
	if err := r.db.QueryRow(query, categoryID).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count places for category: %w", err)
	}

	return count, nil
}

// Delete deletes a category. The delete is blocked while any place still
// references the category.
func (r *CategoryRepository) Delete(categoryID string) error {
	count, err := r.CountPlaces(categoryID)
	if err != nil {
		return err
	}
	if count > 0 {
		return models.ErrCategoryInUse
	}

	result, err := r.db.Exec(`DELETE FROM categories WHERE id = $1`, categoryID)
	if err != nil {
		return fmt.Errorf("failed to delete category: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return models.ErrCategoryNotFound
	}

	return nil
}
