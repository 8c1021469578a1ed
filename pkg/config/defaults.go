// Package config provides centralized default values for revuloop
package config

import (
	"log"
	"os"
	"strconv"
	"time"
)

func getEnvInt(key string, defaultValue int) int {
	if valStr := os.Getenv(key); valStr != "" {
		if val, err := strconv.Atoi(valStr); err == nil {
			if val != defaultValue {
				log.Printf("Config override: %s=%d (default: %d)", key, val, defaultValue)
			}
			return val
		}
	}
	return defaultValue
}

func getEnvString(key string, defaultValue string) string {
	if val := os.Getenv(key); val != "" {
		if val != defaultValue {
			log.Printf("Config override: %s=%s (default: %s)", key, val, defaultValue)
		}
		return val
	}
	return defaultValue
}

func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	if valStr := os.Getenv(key); valStr != "" {
		if val, err := time.ParseDuration(valStr); err == nil {
			if val != defaultValue {
				log.Printf("Config override: %s=%s (default: %s)", key, val, defaultValue)
			}
			return val
		}
	}
	return defaultValue
}

var (
	// Server Configuration
	Port               string
	ServerReadTimeout  time.Duration
	ServerWriteTimeout time.Duration
	ServerIdleTimeout  time.Duration

	// Database Configuration
	DatabaseURL              string
	DBMaxOpenConns           int
	DBMaxIdleConns           int
	DBConnMaxLifetimeMinutes int
	DBConnMaxIdleMinutes     int
	SlowQueryThreshold       time.Duration

	// Session Configuration
	SessionTTL             time.Duration
	SessionCleanupInterval time.Duration
	SessionCleanupVerbose  bool

	// CORS Configuration
	CORSExtraOrigin string

	// Review Notification Configuration
	ReviewNotifyTo       string
	ReviewNotifyFrom     string
	ReviewNotifyFromName string
)

// Initialize reads configuration from the environment. Startup calls this
// after godotenv has loaded any .env file, so .env values win over defaults
// but never over real environment variables.
func Initialize() {
	// Server Configuration
	Port = getEnvString("PORT", "8080")
	ServerReadTimeout = getEnvDuration("SERVER_READ_TIMEOUT", 15*time.Second)
	ServerWriteTimeout = getEnvDuration("SERVER_WRITE_TIMEOUT", 15*time.Second)
	ServerIdleTimeout = getEnvDuration("SERVER_IDLE_TIMEOUT", 60*time.Second)

	// Database Configuration
	DatabaseURL = getEnvString("DATABASE_URL", "./revuloop.db")
	DBMaxOpenConns = getEnvInt("DB_MAX_OPEN_CONNS", 10)
	DBMaxIdleConns = getEnvInt("DB_MAX_IDLE_CONNS", 3)
	DBConnMaxLifetimeMinutes = getEnvInt("DB_CONN_MAX_LIFETIME_MINUTES", 30)
	DBConnMaxIdleMinutes = getEnvInt("DB_CONN_MAX_IDLE_MINUTES", 3)
	SlowQueryThreshold = getEnvDuration("SLOW_QUERY_THRESHOLD", 50*time.Millisecond)

	// Session Configuration
	SessionTTL = time.Duration(getEnvInt("SESSION_TTL_MINUTES", 120)) * time.Minute
	SessionCleanupInterval = time.Duration(getEnvInt("SESSION_CLEANUP_INTERVAL_MINUTES", 15)) * time.Minute
	SessionCleanupVerbose = getEnvString("SESSION_CLEANUP_VERBOSE", "false") == "true"

	// CORS Configuration
	CORSExtraOrigin = getEnvString("CORS_EXTRA_ORIGIN", "")

	// Review Notification Configuration
	ReviewNotifyTo = getEnvString("REVIEW_NOTIFY_TO", "")
	ReviewNotifyFrom = getEnvString("REVIEW_NOTIFY_FROM", "noreply@revuloop.app")
	ReviewNotifyFromName = getEnvString("REVIEW_NOTIFY_FROM_NAME", "Revuloop")
}
