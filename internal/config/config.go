package config

import (
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

var AppEnv Config

type Config struct {
	MongoURI          string
	DBName            string
	JWTSecret         string
	AdminUsername     string
	AdminPassword     string
	AdminTokenTTL     time.Duration
	UserTokenTTL      time.Duration
	RateLimitWindow   time.Duration
	RateLimitRequests int
	Environment       string
}

// Load reads the environment into AppEnv. Secrets have no development
// fallbacks: startup fails when they are missing.
func Load() {
	if err := godotenv.Load(); err != nil {
		log.Println(".env not loaded:", err)
	}
	AppEnv = Config{
		MongoURI:          requireEnv("MONGO_URI"),
		DBName:            getEnvOrDefault("DB_NAME", "twentytwo"),
		JWTSecret:         requireEnv("JWT_SECRET"),
		AdminUsername:     requireEnv("ADMIN_USERNAME"),
		AdminPassword:     requireEnv("ADMIN_PASSWORD"),
		AdminTokenTTL:     getDurationEnv("ADMIN_TOKEN_TTL_HOURS", 24, time.Hour),
		UserTokenTTL:      getDurationEnv("USER_TOKEN_TTL_DAYS", 7, 24*time.Hour),
		RateLimitWindow:   getDurationEnv("RATE_LIMIT_WINDOW_MINUTES", 15, time.Minute),
		RateLimitRequests: getIntEnv("RATE_LIMIT_MAX_REQUESTS", 100),
		Environment:       getEnvOrDefault("APP_ENV", "development"),
	}
}

func requireEnv(key string) string {
	value := strings.TrimSpace(os.Getenv(key))
	if value == "" {
		log.Fatalf("ENV %s is required", key)
	}
	return value
}

func getEnvOrDefault(key, defaultValue string) string {
	if value := strings.TrimSpace(os.Getenv(key)); value != "" {
		return value
	}
	return defaultValue
}

func getIntEnv(key string, defaultValue int) int {
	if value := strings.TrimSpace(os.Getenv(key)); value != "" {
		if parsed, err := strconv.Atoi(value); err == nil && parsed > 0 {
			return parsed
		}
	}
	return defaultValue
}

func getDurationEnv(key string, defaultValue int, unit time.Duration) time.Duration {
	if value := strings.TrimSpace(os.Getenv(key)); value != "" {
		if parsed, err := strconv.Atoi(value); err == nil && parsed > 0 {
			return time.Duration(parsed) * unit
		}
	}
	return time.Duration(defaultValue) * unit
}
