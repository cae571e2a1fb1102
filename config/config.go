package config

import (
	"log"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

// Config holds application configuration
type Config struct {
	Port string

	DBHost     string
	DBUser     string
	DBPassword string
	DBName     string
	DBPort     string

	JWTKey    string
	SaltRound int

	WebhookURL        string // welcome-notification endpoint
	WebhookTimeoutSec int
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
		Port: getEnv("PORT", "5000"),

		DBHost:     getEnv("DB_HOST", "localhost"),
		DBUser:     getEnv("DB_USER", "postgres"),
		DBPassword: getEnv("DB_PASSWORD", "postgres"),
		DBName:     getEnv("DB_NAME", "skillhub"),
		DBPort:     getEnv("DB_PORT", "5432"),

		JWTKey:    getEnv("JWT_SECRET", "skillhub_secret_key"),
		SaltRound: getEnvInt("SALT_ROUND", 10),

		WebhookURL:        getEnv("WELCOME_WEBHOOK_URL", "https://hooks.zapier.com/hooks/catch/24944272/u59sq1a/"),
		WebhookTimeoutSec: getEnvInt("WELCOME_WEBHOOK_TIMEOUT", 10),
	}

	// The fallback secret exists so a dev checkout boots; production must
	// override it.
	if AppConfig.JWTKey == "skillhub_secret_key" {
		log.Println("Warning: Using default JWT_SECRET. Update it in your environment.")
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
