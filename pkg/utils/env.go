package utils

import (
	"os"

	"github.com/joho/godotenv"
)

// LoadEnvFile loads a .env file if one exists. A missing file is not an
// error; real environments configure the process directly.
func LoadEnvFile() {
	if err := godotenv.Load(); err == nil {
		LogInfo("Loaded environment from .env file")
	}
}

// Getenv retrieves the value of the environment variable named by the key.
// If the variable is not present or its value is empty, Getenv returns the fallback string.
func Getenv(key, fallback string) string {
	value := os.Getenv(key)
	if len(value) == 0 {
		return fallback
	}
	return value
}
