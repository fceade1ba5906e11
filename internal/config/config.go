package config

import (
	"os"
	"strings"

	"github.com/joho/godotenv"
)

type Config struct {
	Addr    string
	GinMode string

	// StorageDriver selects the backend: "local" (JSON slot on disk),
	// "sqlite", "mysql" or "postgres".
	StorageDriver string
	LocalDBPath   string

	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string

	// RedisHost switches sessions from the cookie store to Redis when set.
	RedisHost     string
	RedisPort     string
	SessionSecret string

	SeedAdminEmail    string
	SeedAdminPassword string

	LogLevel    string
	CORSOrigins []string
}

func Load() *Config {
	// Missing .env is fine; real env vars win either way.
	_ = godotenv.Load()

	return &Config{
		Addr:              getEnv("ADDR", ":8080"),
		GinMode:           getEnv("GIN_MODE", "debug"),
		StorageDriver:     getEnv("STORAGE_DRIVER", "local"),
		LocalDBPath:       getEnv("LOCAL_DB_PATH", "taskboard.json"),
		DBHost:            getEnv("DB_HOST", "localhost"),
		DBPort:            getEnv("DB_PORT", "5432"),
		DBUser:            getEnv("DB_USER", "taskboard"),
		DBPassword:        getEnv("DB_PASSWORD", "taskboard"),
		DBName:            getEnv("DB_NAME", "taskboard"),
		RedisHost:         getEnv("REDIS_HOST", ""),
		RedisPort:         getEnv("REDIS_PORT", "6379"),
		SessionSecret:     getEnv("SESSION_SECRET", "default-secret-key-change-me"),
		SeedAdminEmail:    getEnv("SEED_ADMIN_EMAIL", "admin@studentlife.local"),
		SeedAdminPassword: getEnv("SEED_ADMIN_PASSWORD", "admin123123"),
		LogLevel:          getEnv("LOG_LEVEL", "info"),
		CORSOrigins:       splitList(getEnv("CORS_ORIGINS", "")),
	}
}

func getEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}

func splitList(value string) []string {
	if value == "" {
		return nil
	}
	parts := strings.Split(value, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
