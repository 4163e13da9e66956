package config

import (
	"log"
	"os"

	"github.com/joho/godotenv"
)

var (
	PORT       string
	DB_URL     string
	JWT_SECRET string

	REDIS_ADDR string

	STRIPE_SECRET_KEY     string
	STRIPE_WEBHOOK_SECRET string

	FRONTEND_URL string

	GOOGLE_CLIENT_ID         string
	GOOGLE_CLIENT_SECRET     string
	GOOGLE_REDIRECT_URL      string
	GOOGLE_FRONTEND_REDIRECT string
)

func LoadEnv() {
	err := godotenv.Load()
	if err != nil {
		log.Println("No .env file found. Using system environment variables.")
	}

	PORT = getEnv("PORT", "8080")
	DB_URL = mustEnv("DB_URL")
	JWT_SECRET = mustEnv("JWT_SECRET")

	REDIS_ADDR = getEnv("REDIS_ADDR", "localhost:6379")

	STRIPE_SECRET_KEY = mustEnv("STRIPE_SECRET_KEY")
	STRIPE_WEBHOOK_SECRET = getEnv("STRIPE_WEBHOOK_SECRET", "")

	FRONTEND_URL = getEnv("FRONTEND_URL", "http://localhost:8000")

	// Google sign-in is optional; the callback fails closed when unset.
	GOOGLE_CLIENT_ID = getEnv("GOOGLE_CLIENT_ID", "")
	GOOGLE_CLIENT_SECRET = getEnv("GOOGLE_CLIENT_SECRET", "")
	GOOGLE_REDIRECT_URL = getEnv("GOOGLE_REDIRECT_URL", "")
	GOOGLE_FRONTEND_REDIRECT = getEnv("GOOGLE_FRONTEND_REDIRECT", "")
}

func mustEnv(key string) string {
	v, ok := os.LookupEnv(key)
	if !ok || v == "" {
		log.Fatalf("Missing required environment variable: %s", key)
	}
	return v
}

func getEnv(key string, fallback string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return fallback
}
