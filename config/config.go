package config

import (
	"log"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

// Config holds application configuration
type Config struct {
	Port   string
	JWTKey string

	DBHost     string
	DBUser     string
	DBPassword string
	DBName     string
	DBPort     string

	// Identity provider (sessions + user lifecycle webhooks)
	WebhookSecret  string
	IdentityApiURL string
	IdentityApiKey string

	// External media store (video/image hosting)
	MediaStoreURL    string
	MediaStoreKey    string
	MediaStoreBucket string

	EmailSender string
	Password    string // SMTP Password

	OrphanSweepEnabled bool
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
		Port:   getEnv("PORT", "3000"),
		JWTKey: getEnv("JWT_SECRET_KEY", "defaultSecret"),

		DBHost:     getEnv("DB_HOST", "localhost"),
		DBUser:     getEnv("DB_USER", "postgres"),
		DBPassword: getEnv("DB_PASSWORD", ""),
		DBName:     getEnv("DB_NAME", "lms"),
		DBPort:     getEnv("DB_PORT", "5432"),

		WebhookSecret:  getEnv("IDENTITY_WEBHOOK_SECRET", ""),
		IdentityApiURL: getEnv("IDENTITY_API_URL", "https://api.identity.example.com/v1"),
		IdentityApiKey: getEnv("IDENTITY_API_KEY", ""),

		MediaStoreURL:    getEnv("MEDIA_STORE_URL", "https://api.mediastore.example.com/v1"),
		MediaStoreKey:    getEnv("MEDIA_STORE_KEY", ""),
		MediaStoreBucket: getEnv("MEDIA_STORE_BUCKET", "lms-uploads"),

		EmailSender: getEnv("EMAIL_SENDER", "defaultSecret"),
		Password:    getEnv("PASSWORD", "defaultSecret"),

		OrphanSweepEnabled: getEnvInt("ORPHAN_SWEEP_ENABLED", 1) == 1,
	}

	// Validate critical configuration
	if AppConfig.JWTKey == "defaultSecret" {
		log.Println("Warning: Using default JWT_SECRET_KEY. Update it in your environment.")
	}
	if AppConfig.WebhookSecret == "" {
		log.Println("Warning: IDENTITY_WEBHOOK_SECRET is not set. Webhook requests will be rejected.")
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
