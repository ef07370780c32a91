package repositories

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"food_delivery_backend/internal/models"

	"github.com/redis/go-redis/v9"
)

// MenuCache is a read-through cache for restaurant menus. A miss returns
// (nil, nil); callers fall back to the database and repopulate.
type MenuCache interface {
	GetMenu(ctx context.Context, restaurantID int64) ([]models.Dish, error)
	SetMenu(ctx context.Context, restaurantID int64, dishes []models.Dish) error
	InvalidateMenu(ctx context.Context, restaurantID int64) error
}

type menuCache struct {
	client *redis.Client
	ttl    time.Duration
}

// NewMenuCache creates a Redis-backed MenuCache.
func NewMenuCache(client *redis.Client, ttl time.Duration) MenuCache {
	return &menuCache{client: client, ttl: ttl}
}

func menuKey(restaurantID int64) string {
	return fmt.Sprintf("menu:%d", restaurantID)
}

func (c *menuCache) GetMenu(ctx context.Context, restaurantID int64) ([]models.Dish, error) {
	payload, err := c.client.Get(ctx, menuKey(restaurantID)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, nil
		}
		return nil, fmt.Errorf("reading menu cache for restaurant %d: %w", restaurantID, err)
	}

	var dishes []models.Dish
	if err := json.Unmarshal(payload, &dishes); err != nil {
		return nil, fmt.Errorf("decoding cached menu for restaurant %d: %w", restaurantID, err)
	}
	return dishes, nil
}

func (c *menuCache) SetMenu(ctx context.Context, restaurantID int64, dishes []models.Dish) error {
	payload, err := json.Marshal(dishes)
	if err != nil {
		return fmt.Errorf("encoding menu for restaurant %d: %w", restaurantID, err)
	}
	return c.client.Set(ctx, menuKey(restaurantID), payload, c.ttl).Err()
}

func (c *menuCache) InvalidateMenu(ctx context.Context, restaurantID int64) error {
	return c.client.Del(ctx, menuKey(restaurantID)).Err()
}
