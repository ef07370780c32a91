package router

import (
	"database/sql"
	"time"

	"food_delivery_backend/internal/handlers"
	"food_delivery_backend/internal/middleware"
	"food_delivery_backend/internal/repositories"
	"food_delivery_backend/internal/services"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
)

// menuCacheTTL bounds how stale a cached menu may get between invalidations.
const menuCacheTTL = 5 * time.Minute

// Setup initializes the routing for the application. redisClient may be nil;
// menu reads then skip the cache.
func Setup(engine *gin.Engine, db *sql.DB, redisClient *redis.Client) {
	// Initialize Repositories
	authRepo := repositories.NewAuthRepository(db)
	restaurantRepo := repositories.NewRestaurantRepository(db)
	dishRepo := repositories.NewDishRepository(db)
	orderRepo := repositories.NewOrderRepository(db)
	invoiceRepo := repositories.NewInvoiceRepository(db)
	settingsRepo := repositories.NewSettingsRepository(db)

	var menuCache repositories.MenuCache
	if redisClient != nil {
		menuCache = repositories.NewMenuCache(redisClient, menuCacheTTL)
	}

	// Initialize Services
	authService := services.NewAuthService(authRepo)
	catalogService := services.NewCatalogService(restaurantRepo, dishRepo, menuCache)
	settingsService := services.NewSettingsService(settingsRepo)
	invoiceService := services.NewInvoiceService(invoiceRepo)
	orderService := services.NewOrderService(orderRepo, invoiceRepo, restaurantRepo, dishRepo, settingsRepo)

	// Initialize Handlers
	authHandler := handlers.NewAuthHandler(authService)
	restaurantHandler := handlers.NewRestaurantHandler(catalogService)
	dishHandler := handlers.NewDishHandler(catalogService)
	orderHandler := handlers.NewOrderHandler(orderService, invoiceService)
	settingsHandler := handlers.NewSettingsHandler(settingsService)

	apiV1 := engine.Group("/api/v1")

	SetupPublicRoutes(apiV1, restaurantHandler, orderHandler, settingsHandler, authHandler)

	admin := apiV1.Group("/admin")
	admin.Use(middleware.AuthMiddleware(), middleware.RoleAuthMiddleware("Admin"))
	{
		SetupAdminRestaurantRoutes(admin, restaurantHandler)
		SetupAdminDishRoutes(admin, dishHandler)
		SetupAdminOrderRoutes(admin, orderHandler)
		SetupAdminSettingsRoutes(admin, settingsHandler)
	}
}
