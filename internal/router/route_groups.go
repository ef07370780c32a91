package router

import (
	"food_delivery_backend/internal/handlers"

	"github.com/gin-gonic/gin"
)

// SetupPublicRoutes sets up the customer-facing routes.
func SetupPublicRoutes(
	apiGroup *gin.RouterGroup,
	restaurantHandler *handlers.RestaurantHandler,
	orderHandler *handlers.OrderHandler,
	settingsHandler *handlers.SettingsHandler,
	authHandler *handlers.AuthHandler,
) {
	apiGroup.POST("/auth/login", authHandler.Login)

	apiGroup.GET("/restaurants", restaurantHandler.GetRestaurants)
	apiGroup.GET("/restaurants/:id", restaurantHandler.GetRestaurantByID)
	apiGroup.GET("/restaurants/:id/menu", restaurantHandler.GetMenu)

	apiGroup.GET("/settings", settingsHandler.GetPublicSettings)

	apiGroup.POST("/orders", orderHandler.CreateOrder)
	apiGroup.GET("/orders/:id", orderHandler.GetOrderByID)
	apiGroup.GET("/orders/:id/invoice", orderHandler.GetOrderInvoice)
}

// SetupAdminRestaurantRoutes sets up restaurant management routes.
func SetupAdminRestaurantRoutes(adminGroup *gin.RouterGroup, restaurantHandler *handlers.RestaurantHandler) {
	restaurantRoutes := adminGroup.Group("/restaurants")
	{
		restaurantRoutes.POST("", restaurantHandler.CreateRestaurant)
		restaurantRoutes.PUT("/:id", restaurantHandler.UpdateRestaurant)
		restaurantRoutes.PATCH("/:id/status", restaurantHandler.UpdateRestaurantStatus)
		restaurantRoutes.DELETE("/:id", restaurantHandler.DeleteRestaurant)
	}
}

// SetupAdminDishRoutes sets up dish management routes.
func SetupAdminDishRoutes(adminGroup *gin.RouterGroup, dishHandler *handlers.DishHandler) {
	dishRoutes := adminGroup.Group("/dishes")
	{
		dishRoutes.POST("", dishHandler.CreateDish)
		dishRoutes.PUT("/:id", dishHandler.UpdateDish)
		dishRoutes.PATCH("/:id/availability", dishHandler.UpdateDishAvailability)
		dishRoutes.DELETE("/:id", dishHandler.DeleteDish)
	}
}

// SetupAdminOrderRoutes sets up order administration routes.
func SetupAdminOrderRoutes(adminGroup *gin.RouterGroup, orderHandler *handlers.OrderHandler) {
	orderRoutes := adminGroup.Group("/orders")
	{
		orderRoutes.GET("", orderHandler.GetOrders)
		orderRoutes.GET("/:id", orderHandler.GetOrderByID)
		orderRoutes.PATCH("/:id/status", orderHandler.UpdateOrderStatus)
		orderRoutes.POST("/:id/confirm-payment", orderHandler.ConfirmPayment)
	}
}

// SetupAdminSettingsRoutes sets up billing settings routes.
func SetupAdminSettingsRoutes(adminGroup *gin.RouterGroup, settingsHandler *handlers.SettingsHandler) {
	settingsRoutes := adminGroup.Group("/settings")
	{
		settingsRoutes.GET("", settingsHandler.GetActiveSettings)
		settingsRoutes.GET("/history", settingsHandler.GetSettingsHistory)
		settingsRoutes.POST("", settingsHandler.SetActiveSettings)
	}
}
