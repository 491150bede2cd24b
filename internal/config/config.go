// Package config loads server configuration from environment variables.
// Every value has a development default so the server starts with nothing
// but a .env file (or nothing at all).
package config

import (
	"os"
	"time"
)

type Config struct {
	HTTPAddr           string
	MongoURL           string
	MongoDatabase      string
	IdentityURL        string
	GoogleClientID     string
	GoogleClientSecret string
	GoogleRedirectURL  string
	ShutdownTimeout    time.Duration
}

func Load() Config {
	return Config{
		HTTPAddr:           getenv("HTTP_ADDR", ":8001"),
		MongoURL:           getenv("MONGO_URL", "mongodb://localhost:27017"),
		MongoDatabase:      getenv("MONGO_DATABASE", "lessonhub"),
		IdentityURL:        getenv("IDENTITY_URL", "https://demobackend.emergentagent.com/auth/v1/env/oauth/session-data"),
		GoogleClientID:     getenv("GOOGLE_CLIENT_ID", ""),
		GoogleClientSecret: getenv("GOOGLE_CLIENT_SECRET", ""),
		GoogleRedirectURL:  getenv("GOOGLE_REDIRECT_URL", "http://localhost:3000/google/callback"),
		ShutdownTimeout:    getenvDuration("SHUTDOWN_TIMEOUT", 30*time.Second),
	}
}

func getenv(key, fallback string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return fallback
}

func getenvDuration(key string, fallback time.Duration) time.Duration {
	if val := os.Getenv(key); val != "" {
		if parsed, err := time.ParseDuration(val); err == nil {
			return parsed
		}
	}
	return fallback
}
