package database

import (
	"fmt"
	"time"
)

// DashboardRepository runs the aggregate queries behind the admin dashboard
type DashboardRepository struct {
	db DB
}

// NewDashboardRepository creates a new DashboardRepository
func NewDashboardRepository(db DB) *DashboardRepository {
	return &DashboardRepository{db: db}
}

// DashboardStats is the aggregate snapshot shown on the admin dashboard.
// CurrentOccupancy is always derived from checked-in reservations, never
// read from a stored counter.
type DashboardStats struct {
	TotalPlaces         int     `json:"total_places" db:"total_places"`
	AvailablePlaces     int     `json:"available_places" db:"available_places"`
	TotalCategories     int     `json:"total_categories" db:"total_categories"`
	TotalReservations   int     `json:"total_reservations" db:"total_reservations"`
	PendingReservations int     `json:"pending_reservations" db:"pending_reservations"`
	CurrentOccupancy    int     `json:"current_occupancy" db:"current_occupancy"`
	TotalCapacity       int     `json:"total_capacity" db:"total_capacity"`
	OccupancyRate       float64 `json:"occupancy_rate"`
	TodayCheckIns       int     `json:"today_check_ins" db:"today_check_ins"`
	TodayCheckOuts      int     `json:"today_check_outs" db:"today_check_outs"`
}

// HighOccupancyPlace flags a place running at or above the warning threshold
type HighOccupancyPlace struct {
	PlaceID       string  `json:"place_id" db:"place_id"`
	PlaceName     string  `json:"place_name" db:"place_name"`
	Capacity      int     `json:"capacity" db:"capacity"`
	Occupancy     int     `json:"occupancy" db:"occupancy"`
	OccupancyRate float64 `json:"occupancy_rate" db:"occupancy_rate"`
}

// GetStats computes the dashboard aggregate snapshot
func (r *DashboardRepository) GetStats(now time.Time) (*DashboardStats, error) {
	query := `
		SELECT
			(SELECT COUNT(*) FROM places) AS total_places,
			(SELECT COUNT(*) FROM places WHERE status = 'available') AS available_places,
			(SELECT COUNT(*) FROM categories WHERE is_active = true) AS total_categories,
			(SELECT COUNT(*) FROM reservations) AS total_reservations,
			(SELECT COUNT(*) FROM reservations WHERE status = 'pending') AS pending_reservations,
			(SELECT COALESCE(SUM(party_size), 0) FROM reservations WHERE status = 'checked_in') AS current_occupancy,
			(SELECT COALESCE(SUM(capacity), 0) FROM places WHERE capacity IS NOT NULL) AS total_capacity,
			(SELECT COUNT(*) FROM reservations WHERE check_in_at::date = $1::date) AS today_check_ins,
			(SELECT COUNT(*) FROM reservations WHERE check_out_at::date = $1::date) AS today_check_outs
	`

	stats := &DashboardStats{}
	if err := r.db.Get(stats, query, now); err != nil {
		return nil, fmt.Errorf("failed to compute dashboard stats: %w", err)
	}

	if stats.TotalCapacity > 0 {
		stats.OccupancyRate = float64(stats.CurrentOccupancy) / float64(stats.TotalCapacity) * 100
	}

	return stats, nil
}

// GetHighOccupancyPlaces returns places whose checked-in occupancy is at or
// above the given rate (0..1) of their capacity.
func (r *DashboardRepository) GetHighOccupancyPlaces(threshold float64) ([]HighOccupancyPlace, error) {
	query := `
		SELECT p.id AS place_id,
		       p.name AS place_name,
		       p.capacity AS capacity,
		       COALESCE(SUM(res.party_size), 0) AS occupancy,
		       COALESCE(SUM(res.party_size), 0)::float / p.capacity AS occupancy_rate
		FROM places p
		LEFT JOIN reservations res
		       ON res.place_id = p.id AND res.status = 'checked_in'
		WHERE p.capacity IS NOT NULL AND p.capacity > 0
		GROUP BY p.id, p.name, p.capacity
		HAVING COALESCE(SUM(res.party_size), 0)::float / p.capacity >= $1
		ORDER BY occupancy_rate DESC
	`

	places := []HighOccupancyPlace{}
	if err := r.db.Select(&places, query, threshold); err != nil {
		return nil, fmt.Errorf("failed to list high occupancy places: %w", err)
	}

	return places, nil
}
