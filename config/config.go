package config

import (
	"log"
	"os"

	"github.com/joho/godotenv"
)

var (
	PORT   string
	DB_URL string

	// Hosted identity provider (OIDC-style)
	IDP_ISSUER        string
	IDP_CLIENT_ID     string
	IDP_CLIENT_SECRET string

	// Where the page guard sends denied visitors
	SIGNIN_PATH  string
	UPGRADE_PATH string

	CORS_ORIGIN string
)

func LoadEnv() {
	err := godotenv.Load()
	if err != nil {
		log.Println("No .env file found. Using system environment variables.")
	}

	PORT = getEnv("PORT", "8080")
	DB_URL = mustEnv("DB_URL")

	IDP_ISSUER = mustEnv("IDP_ISSUER")
	IDP_CLIENT_ID = mustEnv("IDP_CLIENT_ID")
	IDP_CLIENT_SECRET = getEnv("IDP_CLIENT_SECRET", "")

	SIGNIN_PATH = getEnv("SIGNIN_PATH", "/signin")
	UPGRADE_PATH = getEnv("UPGRADE_PATH", "/upgrade")

	CORS_ORIGIN = getEnv("CORS_ORIGIN", "")
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
