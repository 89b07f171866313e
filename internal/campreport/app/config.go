package app

import (
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	BaseURL      string // Public origin invite links are built on (default: http://localhost:8080)
	Issuer       string // Issuer claim for session tokens (default: campreport)
	DatabaseFile string // Path to SQLite database file (default: ./campreport.db)
	PepperFile   string // Path to file containing pepper for password hashing (default: ./pepper)

	InviteValidity time.Duration // How long invite links stay usable (default: 168h)

	Env                 string        // Environment (dev, staging, prod) (default: dev)
	LogLevel            string        // Log level (debug, info, warn, error) (default: info)
	LogFormat           string        // Log format (json, text) (default: json)
	Port                int           // HTTP server port (default: 8080)
	ShutdownGracePeriod time.Duration // Graceful shutdown timeout (default: 10s)
}

func LoadConfig() Config {
	// A local .env is a convenience for development; absence is fine
	_ = godotenv.Load()

	return Config{
		BaseURL:             getEnvOrDefault("CAMPREPORT_BASE_URL", "http://localhost:8080"),
		Issuer:              getEnvOrDefault("CAMPREPORT_ISSUER", "campreport"),
		DatabaseFile:        getEnvOrDefault("CAMPREPORT_DATABASE_FILE", "campreport.db"),
		PepperFile:          getEnvOrDefault("CAMPREPORT_PEPPER_FILE", "pepper"),
		InviteValidity:      getEnvDurationOrDefault("CAMPREPORT_INVITE_TTL", 7*24*time.Hour),
		Env:                 getEnvOrDefault("ENV", "dev"),
		LogLevel:            getEnvOrDefault("LOG_LEVEL", "info"),
		LogFormat:           getEnvOrDefault("LOG_FORMAT", "json"),
		Port:                getEnvIntOrDefault("PORT", 8080),
		ShutdownGracePeriod: getEnvDurationOrDefault("SHUTDOWN_GRACE_PERIOD", 10*time.Second),
	}
}

func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvIntOrDefault(key string, defaultValue int) int {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}

	if intValue, err := strconv.Atoi(value); err == nil {
		return intValue
	}

	return defaultValue
}

func getEnvDurationOrDefault(key string, defaultValue time.Duration) time.Duration {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}

	// Try parsing as duration (e.g., "1h", "30m", "90s")
	if duration, err := time.ParseDuration(value); err == nil {
		return duration
	}

	// Try parsing as integer hours, for short-hand like CAMPREPORT_INVITE_TTL=168
	if hours, err := strconv.Atoi(value); err == nil {
		return time.Duration(hours) * time.Hour
	}

	return defaultValue
}
