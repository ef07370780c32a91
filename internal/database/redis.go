package database

import (
	"context"
	"time"

	"food_delivery_backend/pkg/utils"

	"github.com/redis/go-redis/v9"
)

// InitRedis connects to Redis for the menu cache. Redis is optional: an
// empty addr or a failed ping returns nil and the application serves menus
// straight from Postgres.
func InitRedis(addr, password string) *redis.Client {
	if addr == "" {
		return nil
	}

	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		utils.LogError(err, "Redis unreachable, menu cache disabled")
		return nil
	}
	return client
}
