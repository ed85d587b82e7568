package config

import (
	"os"
	"path/filepath"
	"strconv"
	"time"
)

// Config holds application configuration
type Config struct {
	Env            string
	LogLevel       string
	APIBaseURL     string
	RequestTimeout time.Duration

	// Client-local persistence. StateBackend selects "file" or "redis";
	// kiosk terminals that share a counter point at Redis, everything
	// else keeps per-user state on disk.
	StateBackend  string
	StateDir      string
	RedisAddr     string
	RedisPassword string
	RedisDB       int

	// ConfirmationDelay is how long the confirmation screen lingers
	// before navigating to the appointments list.
	ConfirmationDelay time.Duration

	MetricsEnabled bool
}

// Load reads configuration from environment variables
func Load() *Config {
	return &Config{
		Env:               getEnv("ENV", "development"),
		LogLevel:          getEnv("LOG_LEVEL", "info"),
		APIBaseURL:        getEnv("BARBERPRO_API_URL", "https://localhost:8443/api"),
		RequestTimeout:    getEnvAsDuration("BARBERPRO_REQUEST_TIMEOUT", 15*time.Second),
		StateBackend:      getEnv("BARBERPRO_STATE_BACKEND", "file"),
		StateDir:          getEnv("BARBERPRO_STATE_DIR", defaultStateDir()),
		RedisAddr:         getEnv("REDIS_ADDR", "localhost:6379"),
		RedisPassword:     getEnv("REDIS_PASSWORD", ""),
		RedisDB:           getEnvAsInt("REDIS_DB", 0),
		ConfirmationDelay: getEnvAsDuration("BARBERPRO_CONFIRMATION_DELAY", 3*time.Second),
		MetricsEnabled:    getEnvAsBool("BARBERPRO_METRICS_ENABLED", false),
	}
}

func defaultStateDir() string {
	if dir, err := os.UserConfigDir(); err == nil {
		return filepath.Join(dir, "barberpro")
	}
	return ".barberpro"
}

// getEnv retrieves an environment variable or returns a default value
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getEnvAsInt retrieves an environment variable as an integer or returns a default value
func getEnvAsInt(key string, defaultValue int) int {
	valueStr := getEnv(key, "")
	if value, err := strconv.Atoi(valueStr); err == nil {
		return value
	}
	return defaultValue
}

// getEnvAsBool retrieves an environment variable as a boolean or returns a default value
func getEnvAsBool(key string, defaultValue bool) bool {
	valueStr := getEnv(key, "")
	if value, err := strconv.ParseBool(valueStr); err == nil {
		return value
	}
	return defaultValue
}

func getEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	valueStr := getEnv(key, "")
	if valueStr == "" {
		return defaultValue
	}
	if value, err := time.ParseDuration(valueStr); err == nil {
		return value
	}
	return defaultValue
}
