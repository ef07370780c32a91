package models

import (
	"time"

	"github.com/lib/pq"
)

// Restaurant represents a partner restaurant on the platform.
// Orders may only be placed against a restaurant that is both open and active.
type Restaurant struct {
	ID               int64          `json:"id" db:"id"`
	Name             string         `json:"name" db:"name" binding:"required"`
	Description      *string        `json:"description,omitempty" db:"description"`
	ImageURL         *string        `json:"image_url,omitempty" db:"image_url"`
	CuisineTypes     pq.StringArray `json:"cuisine_types" db:"cuisine_types"`
	FullAddress      string         `json:"full_address" db:"full_address" binding:"required"`
	City             string         `json:"city" db:"city" binding:"required"`
	Area             *string        `json:"area,omitempty" db:"area"`
	Latitude         float64        `json:"latitude" db:"latitude"`
	Longitude        float64        `json:"longitude" db:"longitude"`
	DeliveryRadiusKm float64        `json:"delivery_radius_km" db:"delivery_radius_km"`
	IsOpen           bool           `json:"is_open" db:"is_open"`
	IsActive         bool           `json:"is_active" db:"is_active"`
	CreatedAt        time.Time      `json:"created_at" db:"created_at"`
	UpdatedAt        time.Time      `json:"updated_at" db:"updated_at"`
}

// AcceptsOrders reports whether the restaurant can take a new order right now.
func (r *Restaurant) AcceptsOrders() bool {
	return r.IsOpen && r.IsActive
}

// RestaurantFilters defines the available filters for querying restaurants.
type RestaurantFilters struct {
	City       *string `form:"city"`
	ActiveOnly bool    `form:"active_only"`
	Page       int     `form:"page"`
	PageSize   int     `form:"page_size"`
}
