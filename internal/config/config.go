package config

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
)

// Config holds all application configuration
type Config struct {
	Env       string
	Port      string
	JWTSecret string
	Database  DatabaseConfig
	Upload    UploadConfig
	Payment   PaymentConfig
}

// DatabaseConfig holds database configuration
type DatabaseConfig struct {
	Host     string
	Port     string
	Username string
	Password string
	Database string
}

// UploadConfig holds file upload configuration
type UploadConfig struct {
	Dir string
}

// PaymentConfig holds the PIX details printed on order receipts
type PaymentConfig struct {
	PixKey       string
	MerchantName string
}

// Load loads configuration from environment variables
func Load() (*Config, error) {
	// Load .env file if it exists
	_ = godotenv.Load()

	jwtSecret := os.Getenv("JWT_SECRET")
	if jwtSecret == "" {
		return nil, fmt.Errorf("JWT_SECRET is required")
	}

	return &Config{
		Env:       getEnv("APP_ENV", "development"),
		Port:      getEnv("PORT", "3001"),
		JWTSecret: jwtSecret,
		Database: DatabaseConfig{
			Host:     getEnv("PG_HOST", "localhost"),
			Port:     getEnv("PG_PORT", "5432"),
			Username: getEnv("PG_USERNAME", "postgres"),
			Password: os.Getenv("PG_PASSWORD"),
			Database: getEnv("PG_DATABASE", "everwell"),
		},
		Upload: UploadConfig{
			Dir: getEnv("UPLOAD_DIR", "./uploads"),
		},
		Payment: PaymentConfig{
			PixKey:       os.Getenv("PIX_KEY"),
			MerchantName: getEnv("PIX_MERCHANT_NAME", "Everwell"),
		},
	}, nil
}

// getEnv gets environment variable with default value
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
