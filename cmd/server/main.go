package main

import (
	"log"
	"net/http"
	"os"
	"strings"

	"food_delivery_backend/internal/database"
	"food_delivery_backend/internal/repositories"
	router_pkg "food_delivery_backend/internal/router"
	"food_delivery_backend/internal/services"
	"food_delivery_backend/pkg/utils"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

func main() {
	// Initialize Logger
	utils.InitLogger() // Initialize zerolog
	utils.LoadEnvFile()

	// JWT signing key for admin sessions
	utils.SetJWTSecret(os.Getenv("JWT_SECRET"))

	// Load database configuration from environment variables
	dbHost := utils.Getenv("DB_HOST", "localhost")
	dbPort := utils.Getenv("DB_PORT", "5432")
	dbUser := utils.Getenv("DB_USER", "food_delivery_user")
	dbPassword := utils.Getenv("DB_PASSWORD", "food_delivery_password")
	dbName := utils.Getenv("DB_NAME", "food_delivery_db")
	dbSSLMode := utils.Getenv("DB_SSLMODE", "disable")
	dbSchemaPath := utils.Getenv("DB_SCHEMA_PATH", "")

	// Initialize Database
	database.InitDB(dbHost, dbPort, dbUser, dbPassword, dbName, dbSSLMode, dbSchemaPath)
	utils.LogInfo("Database initialized", map[string]interface{}{"configured_from_env": true})

	// Bootstrap the initial admin account when one is configured. An already
	// existing username is not an error; the bootstrap is simply skipped.
	if adminUsername := os.Getenv("ADMIN_USERNAME"); adminUsername != "" {
		authService := services.NewAuthService(repositories.NewAuthRepository(database.GetDB()))
		if _, err := authService.RegisterAdmin(adminUsername, os.Getenv("ADMIN_PASSWORD")); err != nil {
			utils.LogInfo("Admin bootstrap skipped", map[string]interface{}{"reason": err.Error()})
		} else {
			utils.LogInfo("Admin account created", map[string]interface{}{"username": adminUsername})
		}
	}

	// Initialize Redis menu cache (optional)
	redisClient := database.InitRedis(os.Getenv("REDIS_ADDR"), os.Getenv("REDIS_PASSWORD"))
	if redisClient != nil {
		utils.LogInfo("Redis menu cache enabled")
	}

	engine := gin.Default()

	// Add GinLogger middleware for request logging
	engine.Use(utils.GinLogger())

	// CORS configuration
	corsAllowedOriginsEnv := os.Getenv("CORS_ALLOWED_ORIGINS")
	var allowedOrigins []string
	if corsAllowedOriginsEnv != "" {
		allowedOrigins = strings.Split(corsAllowedOriginsEnv, ",")
	} else {
		allowedOrigins = []string{"http://localhost:3000", "http://localhost:3001"} // Default origins
	}

	config := cors.DefaultConfig()
	config.AllowOrigins = allowedOrigins
	config.AllowMethods = []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"}
	config.AllowHeaders = []string{"Origin", "Content-Length", "Content-Type", "Authorization"}
	config.AllowCredentials = true
	engine.Use(cors.New(config))

	engine.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": "pong"})
	})

	// Setup all application routes
	router_pkg.Setup(engine, database.GetDB(), redisClient)

	// Server port configuration
	port := utils.Getenv("PORT", "8080")
	utils.LogInfo("Server starting", map[string]interface{}{"port": port, "configured_from_env": true})

	if err := engine.Run(":" + port); err != nil {
		utils.LogError(err, "Failed to start server")
		log.Fatalf("Failed to start server: %v", err)
	}
}
