package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/joho/godotenv"
)

type Config struct {
	ServerPort int
	StaticDir  string
	LogLevel   string
	LogDir     string
	Database   DatabaseConfig
	RabbitMQ   RabbitMQConfig
}

type DatabaseConfig struct {
	Host     string
	Port     int
	User     string
	Password string
	DBName   string
	UseSSL   bool
}

// RabbitMQConfig configures the optional event broker. An empty URL
// disables publishing entirely.
type RabbitMQConfig struct {
	URL             string
	Queue           string
	QueueDurable    bool
	QueueAutoDelete bool
	PrefetchCount   int
}

func LoadConfig() Config {
	if os.Getenv("ENV") == "dev" {
		godotenv.Load()
	}

	dbConfig := DatabaseConfig{
		Host:     getEnv("DB_HOST", "localhost"),
		Port:     getEnvInt("DB_PORT", 5432),
		User:     getEnv("DB_USER", "exertrack"),
		Password: getEnv("DB_PASSWORD", "password"),
		DBName:   getEnv("DB_NAME", "exertrack_db"),
		UseSSL:   getEnvBool("DB_USE_SSL", false),
	}

	mqConfig := RabbitMQConfig{
		URL:           getEnv("RABBITMQ_URL", ""),
		Queue:         getEnv("RABBITMQ_QUEUE", "exercise.logged"),
		QueueDurable:  getEnvBool("RABBITMQ_QUEUE_DURABLE", true),
		PrefetchCount: getEnvInt("RABBITMQ_PREFETCH", 0),
	}

	return Config{
		ServerPort: getEnvInt("SERVER_PORT", 8080),
		StaticDir:  getEnv("STATIC_DIR", "public"),
		LogLevel:   getEnv("LOG_LEVEL", "info"),
		LogDir:     getEnv("LOG_DIR", ""),
		Database:   dbConfig,
		RabbitMQ:   mqConfig,
	}
}

func getEnv(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if valueStr, exists := os.LookupEnv(key); exists {
		var value int
		fmt.Sscanf(valueStr, "%d", &value)
		return value
	}
	return defaultValue
}

func getEnvBool(key string, defaultValue bool) bool {
	if valueStr, exists := os.LookupEnv(key); exists {
		switch strings.ToLower(strings.TrimSpace(valueStr)) {
		case "1", "true", "yes":
			return true
		case "0", "false", "no":
			return false
		}
	}
	return defaultValue
}
