package main

import (
	"os"
	"strings"
)

// config is read once at startup and passed to the pieces that need it.
// The datastore URL lives here rather than in package state so a deployment
// can point the service at a different backend by changing the environment.
type config struct {
	DBURL              string
	Addr               string
	LogLevel           string
	LogFormat          string
	GinMode            string
	CORSAllowedOrigins []string
}

// defaultCORSOrigin is the front end's dev server. rs/cors treats an empty
// origin list as "allow all", so there is always at least one entry.
const defaultCORSOrigin = "http://localhost:5173"

// loadConfig reads the process environment (after godotenv has merged .env).
func loadConfig() config {
	return config{
		DBURL:              os.Getenv("DB_URL"),
		Addr:               envOr("ADDR", "localhost:3000"),
		LogLevel:           envOr("LOG_LEVEL", "info"),
		LogFormat:          envOr("LOG_FORMAT", "json"),
		GinMode:            envOr("GIN_MODE", "release"),
		CORSAllowedOrigins: splitList(envOr("CORS_ALLOWED_ORIGINS", defaultCORSOrigin)),
	}
}

func envOr(key, fallback string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return fallback
}

// splitList parses a comma-separated env value, dropping blanks.
func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}
