package repositories

import (
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"food_delivery_backend/internal/models"
)

// RestaurantRepository defines the interface for restaurant-related database operations.
type RestaurantRepository interface {
	CreateRestaurant(restaurant *models.Restaurant) (int64, error)
	GetRestaurantByID(restaurantID int64) (*models.Restaurant, error)
	GetRestaurants(filters models.RestaurantFilters) ([]models.Restaurant, int, error)
	UpdateRestaurant(restaurant *models.Restaurant) error
	UpdateRestaurantStatus(restaurantID int64, isOpen, isActive bool, updatedAt time.Time) error
	DeleteRestaurant(restaurantID int64) (int64, error)
}

type restaurantRepository struct {
	db *sql.DB
}

// NewRestaurantRepository creates a new instance of RestaurantRepository.
func NewRestaurantRepository(db *sql.DB) RestaurantRepository {
	return &restaurantRepository{db: db}
}

const restaurantColumns = `id, name, description, image_url, cuisine_types,
	full_address, city, area, latitude, longitude, delivery_radius_km,
	is_open, is_active, created_at, updated_at`

func scanRestaurant(s scanner, r *models.Restaurant) error {
	return s.Scan(
		&r.ID, &r.Name, &r.Description, &r.ImageURL, &r.CuisineTypes,
		&r.FullAddress, &r.City, &r.Area, &r.Latitude, &r.Longitude, &r.DeliveryRadiusKm,
		&r.IsOpen, &r.IsActive, &r.CreatedAt, &r.UpdatedAt,
	)
}

func (r *restaurantRepository) CreateRestaurant(restaurant *models.Restaurant) (int64, error) {
	query := `INSERT INTO restaurants
	            (name, description, image_url, cuisine_types, full_address, city, area,
	             latitude, longitude, delivery_radius_km, is_open, is_active, created_at, updated_at)
	          VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)
	          RETURNING id`

	now := time.Now()
	if restaurant.CreatedAt.IsZero() {
		restaurant.CreatedAt = now
	}
	restaurant.UpdatedAt = now

	err := r.db.QueryRow(query,
		restaurant.Name, restaurant.Description, restaurant.ImageURL, restaurant.CuisineTypes,
		restaurant.FullAddress, restaurant.City, restaurant.Area,
		restaurant.Latitude, restaurant.Longitude, restaurant.DeliveryRadiusKm,
		restaurant.IsOpen, restaurant.IsActive, restaurant.CreatedAt, restaurant.UpdatedAt,
	).Scan(&restaurant.ID)
	if err != nil {
		return 0, fmt.Errorf("%w: creating restaurant: %v", ErrDatabaseError, err)
	}
	return restaurant.ID, nil
}

func (r *restaurantRepository) GetRestaurantByID(restaurantID int64) (*models.Restaurant, error) {
	restaurant := &models.Restaurant{}
	query := `SELECT ` + restaurantColumns + ` FROM restaurants WHERE id = $1`
	err := scanRestaurant(r.db.QueryRow(query, restaurantID), restaurant)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("%w: getting restaurant by ID %d: %v", ErrDatabaseError, restaurantID, err)
	}
	return restaurant, nil
}

func (r *restaurantRepository) GetRestaurants(filters models.RestaurantFilters) ([]models.Restaurant, int, error) {
	restaurants := []models.Restaurant{}
	totalCount := 0

	var queryBuilder strings.Builder
	queryBuilder.WriteString(`SELECT ` + restaurantColumns + `, COUNT(*) OVER() as total_count FROM restaurants`)

	var conditions []string
	var args []interface{}
	argCounter := 1

	if filters.ActiveOnly {
		conditions = append(conditions, "is_active = TRUE")
	}
	if filters.City != nil && *filters.City != "" {
		conditions = append(conditions, fmt.Sprintf("city = $%d", argCounter))
		args = append(args, *filters.City)
		argCounter++
	}

	if len(conditions) > 0 {
		queryBuilder.WriteString(" WHERE " + strings.Join(conditions, " AND "))
	}
	queryBuilder.WriteString(" ORDER BY name ASC")

	if filters.PageSize > 0 {
		queryBuilder.WriteString(fmt.Sprintf(" LIMIT $%d", argCounter))
		args = append(args, filters.PageSize)
		argCounter++
		if filters.Page > 0 {
			offset := (filters.Page - 1) * filters.PageSize
			queryBuilder.WriteString(fmt.Sprintf(" OFFSET $%d", argCounter))
			args = append(args, offset)
		}
	}

	rows, err := r.db.Query(queryBuilder.String(), args...)
	if err != nil {
		return nil, 0, fmt.Errorf("%w: querying restaurants: %v", ErrDatabaseError, err)
	}
	defer rows.Close()

	for rows.Next() {
		var restaurant models.Restaurant
		err := rows.Scan(
			&restaurant.ID, &restaurant.Name, &restaurant.Description, &restaurant.ImageURL, &restaurant.CuisineTypes,
			&restaurant.FullAddress, &restaurant.City, &restaurant.Area,
			&restaurant.Latitude, &restaurant.Longitude, &restaurant.DeliveryRadiusKm,
			&restaurant.IsOpen, &restaurant.IsActive, &restaurant.CreatedAt, &restaurant.UpdatedAt,
			&totalCount,
		)
		if err != nil {
			return nil, 0, fmt.Errorf("%w: scanning restaurant: %v", ErrDatabaseError, err)
		}
		restaurants = append(restaurants, restaurant)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("%w: iterating restaurants: %v", ErrDatabaseError, err)
	}
	return restaurants, totalCount, nil
}

func (r *restaurantRepository) UpdateRestaurant(restaurant *models.Restaurant) error {
	query := `UPDATE restaurants SET
	            name = $1, description = $2, image_url = $3, cuisine_types = $4,
	            full_address = $5, city = $6, area = $7, latitude = $8, longitude = $9,
	            delivery_radius_km = $10, is_open = $11, is_active = $12, updated_at = $13
	          WHERE id = $14`

	restaurant.UpdatedAt = time.Now()
	result, err := r.db.Exec(query,
		restaurant.Name, restaurant.Description, restaurant.ImageURL, restaurant.CuisineTypes,
		restaurant.FullAddress, restaurant.City, restaurant.Area,
		restaurant.Latitude, restaurant.Longitude, restaurant.DeliveryRadiusKm,
		restaurant.IsOpen, restaurant.IsActive, restaurant.UpdatedAt,
		restaurant.ID,
	)
	if err != nil {
		return fmt.Errorf("%w: updating restaurant %d: %v", ErrDatabaseError, restaurant.ID, err)
	}
	rowsAffected, _ := result.RowsAffected()
	if rowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *restaurantRepository) UpdateRestaurantStatus(restaurantID int64, isOpen, isActive bool, updatedAt time.Time) error {
	query := `UPDATE restaurants SET is_open = $1, is_active = $2, updated_at = $3 WHERE id = $4`
	result, err := r.db.Exec(query, isOpen, isActive, updatedAt, restaurantID)
	if err != nil {
		return fmt.Errorf("%w: updating restaurant %d status: %v", ErrDatabaseError, restaurantID, err)
	}
	rowsAffected, _ := result.RowsAffected()
	if rowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *restaurantRepository) DeleteRestaurant(restaurantID int64) (int64, error) {
	// Dishes go with the restaurant via ON DELETE CASCADE.
	result, err := r.db.Exec(`DELETE FROM restaurants WHERE id = $1`, restaurantID)
	if err != nil {
		return 0, fmt.Errorf("%w: deleting restaurant %d: %v", ErrDatabaseError, restaurantID, err)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("%w: reading rows affected: %v", ErrDatabaseError, err)
	}
	if rowsAffected == 0 {
		return 0, ErrNotFound
	}
	return rowsAffected, nil
}
