package config

import (
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

type Config struct {
	// Environment
	Environment string

	// Server
	Port        string
	FrontendURL string

	// Match settings
	MatchExpiryMinutes   int
	SweepIntervalSeconds int

	// Prize settings
	PrizeWinThreshold int
}

func Load() *Config {
	// Load .env file if it exists
	godotenv.Load()

	return &Config{
		// Environment
		Environment: getEnv("APP_ENV", "development"),

		// Server
		Port:        getEnv("APP_PORT", "8080"),
		FrontendURL: getEnv("FRONTEND_URL", "http://localhost:5173"),

		// Match settings
		MatchExpiryMinutes:   getEnvInt("MATCH_EXPIRY_MINUTES", 10),
		SweepIntervalSeconds: getEnvInt("SWEEP_INTERVAL_SECONDS", 30),

		// Prize settings
		PrizeWinThreshold: getEnvInt("PRIZE_WIN_THRESHOLD", 3),
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
	}
	return defaultValue
}
