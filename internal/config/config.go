package config

import (
	"os"
)

// Config holds all configuration for the itemlab services
type Config struct {
	ServiceName string
	HTTPPort    string
	DBDriver    string // "sqlite" or "postgres"
	DBDSN       string // file path for sqlite, DSN for postgres
	RabbitMQURL string // empty disables event publishing
	LogLevel    string
}

// Load loads configuration from environment variables
func Load() *Config {
	return &Config{
		ServiceName: getEnv("SERVICE_NAME", "itemlab"),
		HTTPPort:    getEnv("HTTP_PORT", "8001"),
		DBDriver:    getEnv("DB_DRIVER", "sqlite"),
		DBDSN:       getEnv("DB_DSN", "db.db"),
		RabbitMQURL: getEnv("RABBITMQ_URL", ""),
		LogLevel:    getEnv("LOG_LEVEL", "info"),
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
