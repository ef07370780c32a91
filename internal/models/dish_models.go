package models

import "time"

// Dish type constants.
const (
	DishTypeVeg    = "VEG"
	DishTypeNonVeg = "NON_VEG"
)

// Dish represents a menu item. A dish belongs to exactly one restaurant and
// is removed together with it.
type Dish struct {
	ID           int64     `json:"id" db:"id"`
	RestaurantID int64     `json:"restaurant_id" db:"restaurant_id" binding:"required"`
	Name         string    `json:"name" db:"name" binding:"required"`
	Description  *string   `json:"description,omitempty" db:"description"`
	ImageURL     *string   `json:"image_url,omitempty" db:"image_url"`
	Price        float64   `json:"price" db:"price" binding:"required,gt=0"`
	Type         string    `json:"type" db:"type" binding:"required,oneof=VEG NON_VEG"`
	IsAvailable  bool      `json:"is_available" db:"is_available"`
	CreatedAt    time.Time `json:"created_at" db:"created_at"`
	UpdatedAt    time.Time `json:"updated_at" db:"updated_at"`
}
