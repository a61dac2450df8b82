package config

import (
	"log"
	"os"
	"strconv"
)

type Config struct {
	Env                 string
	Port                string
	DBURL               string
	RedisAddr           string
	RedisPassword       string
	JWTSecret           string
	JWTIssuer           string
	AccessExpiryMin     int
	RefreshExpiryMin    int
	LoginMaxAttempts    int
	LoginLockMinutes    int
	TokenPurgeIntervalM int
}

func Load() *Config {
	return &Config{
		Env:                 getEnv("ENV", "development"),
		Port:                getEnv("PORT", "8080"),
		DBURL:               mustGetEnv("DB_URL"),
		RedisAddr:           getEnv("REDIS_ADDR", "localhost:6379"),
		RedisPassword:       getEnv("REDIS_PASSWORD", ""),
		JWTSecret:           mustGetEnv("JWT_SECRET"),
		JWTIssuer:           getEnv("JWT_ISSUER", "auth-service"),
		AccessExpiryMin:     getEnvAsInt("ACCESS_TOKEN_EXPIRY", 15),
		RefreshExpiryMin:    getEnvAsInt("REFRESH_TOKEN_EXPIRY", 10080),
		LoginMaxAttempts:    getEnvAsInt("LOGIN_MAX_ATTEMPTS", 5),
		LoginLockMinutes:    getEnvAsInt("LOGIN_LOCK_MINUTES", 15),
		TokenPurgeIntervalM: getEnvAsInt("TOKEN_PURGE_INTERVAL", 60),
	}
}

func getEnv(key string, defaultVal string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultVal
}

func mustGetEnv(key string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	log.Fatalf("Missing required environment variable: %s", key)
	return ""
}

func getEnvAsInt(key string, defaultVal int) int {
	valStr := os.Getenv(key)
	if valStr == "" {
		return defaultVal
	}
	val, err := strconv.Atoi(valStr)
	if err != nil {
		log.Printf("Invalid value for %s, using default %d", key, defaultVal)
		return defaultVal
	}
	return val
}
