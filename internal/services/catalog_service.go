package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"food_delivery_backend/internal/models"
	"food_delivery_backend/internal/repositories"

	"food_delivery_backend/pkg/utils"
)

var (
	ErrValidation = errors.New("validation error") // Generic validation error
)

// --- DTOs ---

// UpdateRestaurantStatusRequest toggles the ordering gates of a restaurant.
type UpdateRestaurantStatusRequest struct {
	IsOpen   *bool `json:"is_open" binding:"required"`
	IsActive *bool `json:"is_active" binding:"required"`
}

// UpdateDishAvailabilityRequest toggles whether a dish can be ordered.
type UpdateDishAvailabilityRequest struct {
	IsAvailable *bool `json:"is_available" binding:"required"`
}

// --- CatalogService Interface ---

// CatalogService manages the reference data consulted during order placement:
// restaurants and their dishes.
type CatalogService interface {
	CreateRestaurant(restaurant *models.Restaurant) (*models.Restaurant, error)
	GetRestaurantByID(restaurantID int64) (*models.Restaurant, error)
	GetRestaurants(filters models.RestaurantFilters) ([]models.Restaurant, int, error)
	UpdateRestaurant(restaurant *models.Restaurant) (*models.Restaurant, error)
	UpdateRestaurantStatus(restaurantID int64, req UpdateRestaurantStatusRequest) (*models.Restaurant, error)
	DeleteRestaurant(restaurantID int64) error

	CreateDish(dish *models.Dish) (*models.Dish, error)
	GetMenu(ctx context.Context, restaurantID int64, availableOnly bool) ([]models.Dish, error)
	UpdateDish(dish *models.Dish) (*models.Dish, error)
	UpdateDishAvailability(dishID int64, req UpdateDishAvailabilityRequest) (*models.Dish, error)
	DeleteDish(dishID int64) error
}

type catalogService struct {
	restaurantRepo repositories.RestaurantRepository
	dishRepo       repositories.DishRepository
	menuCache      repositories.MenuCache
}

// NewCatalogService creates a new instance of CatalogService. menuCache may
// be nil when Redis is not configured; menu reads then go straight to the
// database.
func NewCatalogService(
	rr repositories.RestaurantRepository,
	dr repositories.DishRepository,
	mc repositories.MenuCache,
) CatalogService {
	return &catalogService{
		restaurantRepo: rr,
		dishRepo:       dr,
		menuCache:      mc,
	}
}

// --- Restaurant methods ---

func validateRestaurant(restaurant *models.Restaurant) error {
	if utils.IsEmpty(restaurant.Name) {
		return fmt.Errorf("%w: restaurant name cannot be empty", ErrValidation)
	}
	if utils.IsEmpty(restaurant.FullAddress) || utils.IsEmpty(restaurant.City) {
		return fmt.Errorf("%w: restaurant address and city are required", ErrValidation)
	}
	if restaurant.DeliveryRadiusKm < 0 {
		return fmt.Errorf("%w: delivery radius cannot be negative", ErrValidation)
	}
	return nil
}

func (s *catalogService) CreateRestaurant(restaurant *models.Restaurant) (*models.Restaurant, error) {
	if err := validateRestaurant(restaurant); err != nil {
		return nil, err
	}
	if _, err := s.restaurantRepo.CreateRestaurant(restaurant); err != nil {
		return nil, fmt.Errorf("failed to create restaurant: %w", err)
	}
	return restaurant, nil
}

func (s *catalogService) GetRestaurantByID(restaurantID int64) (*models.Restaurant, error) {
	restaurant, err := s.restaurantRepo.GetRestaurantByID(restaurantID)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrRestaurantNotFound
		}
		return nil, fmt.Errorf("failed to get restaurant %d: %w", restaurantID, err)
	}
	return restaurant, nil
}

func (s *catalogService) GetRestaurants(filters models.RestaurantFilters) ([]models.Restaurant, int, error) {
	restaurants, totalCount, err := s.restaurantRepo.GetRestaurants(filters)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to get restaurants: %w", err)
	}
	return restaurants, totalCount, nil
}

func (s *catalogService) UpdateRestaurant(restaurant *models.Restaurant) (*models.Restaurant, error) {
	if err := validateRestaurant(restaurant); err != nil {
		return nil, err
	}
	err := s.restaurantRepo.UpdateRestaurant(restaurant)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrRestaurantNotFound
		}
		return nil, fmt.Errorf("failed to update restaurant %d: %w", restaurant.ID, err)
	}
	s.invalidateMenu(restaurant.ID)
	return s.GetRestaurantByID(restaurant.ID)
}

func (s *catalogService) UpdateRestaurantStatus(restaurantID int64, req UpdateRestaurantStatusRequest) (*models.Restaurant, error) {
	err := s.restaurantRepo.UpdateRestaurantStatus(restaurantID, *req.IsOpen, *req.IsActive, time.Now())
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrRestaurantNotFound
		}
		return nil, fmt.Errorf("failed to update restaurant %d status: %w", restaurantID, err)
	}
	return s.GetRestaurantByID(restaurantID)
}

func (s *catalogService) DeleteRestaurant(restaurantID int64) error {
	_, err := s.restaurantRepo.DeleteRestaurant(restaurantID)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return ErrRestaurantNotFound
		}
		return fmt.Errorf("failed to delete restaurant %d: %w", restaurantID, err)
	}
	s.invalidateMenu(restaurantID)
	return nil
}

// --- Dish methods ---

func validateDish(dish *models.Dish) error {
	if utils.IsEmpty(dish.Name) {
		return fmt.Errorf("%w: dish name cannot be empty", ErrValidation)
	}
	if dish.Price <= 0 {
		return fmt.Errorf("%w: dish price must be positive", ErrValidation)
	}
	if !strings.EqualFold(dish.Type, models.DishTypeVeg) && !strings.EqualFold(dish.Type, models.DishTypeNonVeg) {
		return fmt.Errorf("%w: dish type must be %s or %s", ErrValidation, models.DishTypeVeg, models.DishTypeNonVeg)
	}
	return nil
}

func (s *catalogService) CreateDish(dish *models.Dish) (*models.Dish, error) {
	if err := validateDish(dish); err != nil {
		return nil, err
	}
	// The dish must hang off an existing restaurant.
	if _, err := s.GetRestaurantByID(dish.RestaurantID); err != nil {
		return nil, err
	}
	dish.Type = strings.ToUpper(dish.Type)
	if _, err := s.dishRepo.CreateDish(dish); err != nil {
		return nil, fmt.Errorf("failed to create dish: %w", err)
	}
	s.invalidateMenu(dish.RestaurantID)
	return dish, nil
}

// GetMenu returns the dishes of a restaurant, read through the Redis cache
// when one is configured. Cache failures degrade to a database read.
func (s *catalogService) GetMenu(ctx context.Context, restaurantID int64, availableOnly bool) ([]models.Dish, error) {
	if _, err := s.GetRestaurantByID(restaurantID); err != nil {
		return nil, err
	}

	// Only the full available menu is cached; admin views bypass the cache.
	if s.menuCache != nil && availableOnly {
		cached, err := s.menuCache.GetMenu(ctx, restaurantID)
		if err != nil {
			utils.LogError(err, "GetMenu: cache read failed, falling back to database")
		} else if cached != nil {
			return cached, nil
		}
	}

	dishes, err := s.dishRepo.GetDishesByRestaurant(restaurantID, availableOnly)
	if err != nil {
		return nil, fmt.Errorf("failed to get menu for restaurant %d: %w", restaurantID, err)
	}

	if s.menuCache != nil && availableOnly {
		if err := s.menuCache.SetMenu(ctx, restaurantID, dishes); err != nil {
			utils.LogError(err, "GetMenu: cache write failed")
		}
	}
	return dishes, nil
}

func (s *catalogService) UpdateDish(dish *models.Dish) (*models.Dish, error) {
	if err := validateDish(dish); err != nil {
		return nil, err
	}
	dish.Type = strings.ToUpper(dish.Type)
	err := s.dishRepo.UpdateDish(dish)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrDishNotFound
		}
		return nil, fmt.Errorf("failed to update dish %d: %w", dish.ID, err)
	}
	s.invalidateMenu(dish.RestaurantID)
	return s.dishRepo.GetDishByID(dish.ID)
}

func (s *catalogService) UpdateDishAvailability(dishID int64, req UpdateDishAvailabilityRequest) (*models.Dish, error) {
	dish, err := s.dishRepo.GetDishByID(dishID)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrDishNotFound
		}
		return nil, fmt.Errorf("failed to fetch dish %d: %w", dishID, err)
	}

	err = s.dishRepo.UpdateDishAvailability(dishID, *req.IsAvailable, time.Now())
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrDishNotFound
		}
		return nil, fmt.Errorf("failed to update dish %d availability: %w", dishID, err)
	}
	s.invalidateMenu(dish.RestaurantID)
	return s.dishRepo.GetDishByID(dishID)
}

func (s *catalogService) DeleteDish(dishID int64) error {
	dish, err := s.dishRepo.GetDishByID(dishID)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return ErrDishNotFound
		}
		return fmt.Errorf("failed to fetch dish %d: %w", dishID, err)
	}

	if _, err := s.dishRepo.DeleteDish(dishID); err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return ErrDishNotFound
		}
		return fmt.Errorf("failed to delete dish %d: %w", dishID, err)
	}
	s.invalidateMenu(dish.RestaurantID)
	return nil
}

func (s *catalogService) invalidateMenu(restaurantID int64) {
	if s.menuCache == nil {
		return
	}
	if err := s.menuCache.InvalidateMenu(context.Background(), restaurantID); err != nil {
		utils.LogError(err, "failed to invalidate menu cache")
	}
}
