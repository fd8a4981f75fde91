package config

import (
	"log"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

// Config holds application configuration
type Config struct {
	Port        string
	CorsOrigins string

	DBDriver   string // postgres, mysql or sqlite
	DBHost     string
	DBUser     string
	DBPassword string
	DBName     string
	DBPort     string
	DBPath     string // sqlite file path

	ContentApiURL            string // Base URL the content tree client talks to
	ContentApiTimeoutSeconds int

	PurgeSchedule      string // cron spec for the soft-delete purge job
	PurgeRetentionDays int
}

// AppConfig is a global variable to access configuration
var AppConfig *Config

// LoadConfig initializes configuration from environment variables or defaults
func LoadConfig() {
	// Load .env file if it exists
	if err := godotenv.Load(); err != nil {
		log.Println("Warning: .env file not found. Using system environment variables.")
	}

	AppConfig = &Config{
		Port:        getEnv("PORT", "3000"),
		CorsOrigins: getEnv("CORS_ORIGINS", "*"),

		DBDriver:   getEnv("DB_DRIVER", "postgres"),
		DBHost:     getEnv("DB_HOST", "localhost"),
		DBUser:     getEnv("DB_USER", "postgres"),
		DBPassword: getEnv("DB_PASSWORD", ""),
		DBName:     getEnv("DB_NAME", "coursedesk"),
		DBPort:     getEnv("DB_PORT", "5432"),
		DBPath:     getEnv("DB_PATH", "coursedesk.db"),

		ContentApiURL:            getEnv("CONTENT_API_URL", "http://localhost:3000/admin"),
		ContentApiTimeoutSeconds: getEnvInt("CONTENT_API_TIMEOUT_SECONDS", 15),

		PurgeSchedule:      getEnv("PURGE_SCHEDULE", "@daily"),
		PurgeRetentionDays: getEnvInt("PURGE_RETENTION_DAYS", 30),
	}

	switch AppConfig.DBDriver {
	case "postgres", "mysql", "sqlite":
	default:
		log.Printf("Warning: unknown DB_DRIVER %q, falling back to postgres.", AppConfig.DBDriver)
		AppConfig.DBDriver = "postgres"
	}
	if AppConfig.DBDriver != "sqlite" && AppConfig.DBPassword == "" {
		log.Println("Warning: DB_PASSWORD is empty. Update it in your environment.")
	}
}

// getEnv retrieves an environment variable or returns a default value
func getEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}

// getEnvInt retrieves an environment variable as an integer or returns the default integer value
func getEnvInt(key string, defaultValue int) int {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	intValue, err := strconv.Atoi(value)
	if err != nil {
		log.Printf("Error converting environment variable %s to int: %v", key, err)
		return defaultValue
	}
	return intValue
}
