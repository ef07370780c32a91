package repositories

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	"food_delivery_backend/internal/models"
)

// DishRepository defines the interface for dish-related database operations.
type DishRepository interface {
	CreateDish(dish *models.Dish) (int64, error)
	GetDishByID(dishID int64) (*models.Dish, error)
	GetDishesByRestaurant(restaurantID int64, availableOnly bool) ([]models.Dish, error)
	UpdateDish(dish *models.Dish) error
	UpdateDishAvailability(dishID int64, isAvailable bool, updatedAt time.Time) error
	DeleteDish(dishID int64) (int64, error)
}

type dishRepository struct {
	db *sql.DB
}

// NewDishRepository creates a new instance of DishRepository.
func NewDishRepository(db *sql.DB) DishRepository {
	return &dishRepository{db: db}
}

const dishColumns = `id, restaurant_id, name, description, image_url, price, type, is_available, created_at, updated_at`

func scanDish(s scanner, d *models.Dish) error {
	return s.Scan(
		&d.ID, &d.RestaurantID, &d.Name, &d.Description, &d.ImageURL,
		&d.Price, &d.Type, &d.IsAvailable, &d.CreatedAt, &d.UpdatedAt,
	)
}

func (r *dishRepository) CreateDish(dish *models.Dish) (int64, error) {
	query := `INSERT INTO dishes
	            (restaurant_id, name, description, image_url, price, type, is_available, created_at, updated_at)
	          VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	          RETURNING id`

	now := time.Now()
	if dish.CreatedAt.IsZero() {
		dish.CreatedAt = now
	}
	dish.UpdatedAt = now

	err := r.db.QueryRow(query,
		dish.RestaurantID, dish.Name, dish.Description, dish.ImageURL,
		dish.Price, dish.Type, dish.IsAvailable, dish.CreatedAt, dish.UpdatedAt,
	).Scan(&dish.ID)
	if err != nil {
		return 0, fmt.Errorf("%w: creating dish: %v", ErrDatabaseError, err)
	}
	return dish.ID, nil
}

func (r *dishRepository) GetDishByID(dishID int64) (*models.Dish, error) {
	dish := &models.Dish{}
	query := `SELECT ` + dishColumns + ` FROM dishes WHERE id = $1`
	err := scanDish(r.db.QueryRow(query, dishID), dish)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("%w: getting dish by ID %d: %v", ErrDatabaseError, dishID, err)
	}
	return dish, nil
}

func (r *dishRepository) GetDishesByRestaurant(restaurantID int64, availableOnly bool) ([]models.Dish, error) {
	dishes := []models.Dish{}
	query := `SELECT ` + dishColumns + ` FROM dishes WHERE restaurant_id = $1`
	if availableOnly {
		query += ` AND is_available = TRUE`
	}
	query += ` ORDER BY name ASC`

	rows, err := r.db.Query(query, restaurantID)
	if err != nil {
		return nil, fmt.Errorf("%w: querying dishes for restaurant %d: %v", ErrDatabaseError, restaurantID, err)
	}
	defer rows.Close()

	for rows.Next() {
		var dish models.Dish
		if err := scanDish(rows, &dish); err != nil {
			return nil, fmt.Errorf("%w: scanning dish: %v", ErrDatabaseError, err)
		}
		dishes = append(dishes, dish)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: iterating dishes: %v", ErrDatabaseError, err)
	}
	return dishes, nil
}

func (r *dishRepository) UpdateDish(dish *models.Dish) error {
	query := `UPDATE dishes SET
	            name = $1, description = $2, image_url = $3, price = $4, type = $5,
	            is_available = $6, updated_at = $7
	          WHERE id = $8 AND restaurant_id = $9`

	dish.UpdatedAt = time.Now()
	result, err := r.db.Exec(query,
		dish.Name, dish.Description, dish.ImageURL, dish.Price, dish.Type,
		dish.IsAvailable, dish.UpdatedAt,
		dish.ID, dish.RestaurantID,
	)
	if err != nil {
		return fmt.Errorf("%w: updating dish %d: %v", ErrDatabaseError, dish.ID, err)
	}
	rowsAffected, _ := result.RowsAffected()
	if rowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *dishRepository) UpdateDishAvailability(dishID int64, isAvailable bool, updatedAt time.Time) error {
	query := `UPDATE dishes SET is_available = $1, updated_at = $2 WHERE id = $3`
	result, err := r.db.Exec(query, isAvailable, updatedAt, dishID)
	if err != nil {
		return fmt.Errorf("%w: updating dish %d availability: %v", ErrDatabaseError, dishID, err)
	}
	rowsAffected, _ := result.RowsAffected()
	if rowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *dishRepository) DeleteDish(dishID int64) (int64, error) {
	result, err := r.db.Exec(`DELETE FROM dishes WHERE id = $1`, dishID)
	if err != nil {
		return 0, fmt.Errorf("%w: deleting dish %d: %v", ErrDatabaseError, dishID, err)
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
