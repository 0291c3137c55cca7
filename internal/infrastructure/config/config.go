// internal/infrastructure/config/config.go
package config

import (
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

// Config holds all configuration for the application
type Config struct {
	// App
	AppVersion string

	// PostgreSQL
	PostgresDSN string

	// CSV sources consumed by the first-run import
	RoutesPath        string
	FlightsPath       string
	SubscriptionsPath string

	// Import
	BatchSize int

	// Report
	OutputPath string
}

// LoadConfig loads configuration from environment variables
func LoadConfig() (*Config, error) {
	// Load .env file if it exists
	godotenv.Load()

	// Set defaults and override with env vars
	config := &Config{
		AppVersion: getEnv("APP_VERSION", "1.0.0"),

		PostgresDSN: getEnv("POSTGRES_DSN", "host=localhost user=postgres dbname=flightchange port=5432 sslmode=disable"),

		RoutesPath:        getEnv("ROUTES_CSV_PATH", "data/routes.csv"),
		FlightsPath:       getEnv("FLIGHTS_CSV_PATH", "data/flights.csv"),
		SubscriptionsPath: getEnv("SUBSCRIPTIONS_CSV_PATH", "data/subscriptions.csv"),

		BatchSize: getEnvAsInt("IMPORT_BATCH_SIZE", 20000),

		OutputPath: getEnv("OUTPUT_PATH", "results.csv"),
	}

	return config, nil
}

// Helper functions to get environment variables
func getEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}

func getEnvAsInt(key string, defaultValue int) int {
	valueStr := getEnv(key, "")
	if value, err := strconv.Atoi(valueStr); err == nil {
		return value
	}
	return defaultValue
}
