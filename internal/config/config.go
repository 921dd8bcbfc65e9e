// Package config loads and validates application configuration from environment variables.
package config

import (
	"os"
	"strings"
)

// Config holds all configuration values for the API server.
// Values are populated by Load from environment variables.
type Config struct {
	// Port is the TCP port the HTTP server listens on. Defaults to "8080".
	Port string

	// DatabaseURL is the Postgres connection string. Optional: when empty
	// the server runs on the in-memory store (state is lost on restart).
	DatabaseURL string

	// LogLevel controls the minimum log level. Defaults to "info".
	// Valid values: debug, info, warn, error.
	LogLevel string

	// CORSOrigins is the list of allowed cross-origin request origins.
	// Defaults to ["http://localhost:5173"] (Vite dev server).
	// Set CORS_ORIGINS to a comma-separated list to override.
	CORSOrigins []string

	// OpenAIKey authenticates against the generative provider. An empty key
	// does not prevent startup; AI-backed operations fail at call time.
	OpenAIKey string

	// OpenAIModel is the model used for all AI operations. Defaults to
	// "gpt-4o-mini".
	OpenAIModel string

	// OpenAIBaseURL overrides the provider endpoint (useful for proxies and
	// tests). Empty means the provider default.
	OpenAIBaseURL string
}

// Load reads configuration from environment variables and returns a Config.
// No variable is strictly required: the store falls back to memory and the
// AI key is checked at call time, so Load currently cannot fail. The error
// return is kept so callers do not change when a required variable appears.
func Load() (Config, error) {
	cfg := Config{
		Port:          getEnv("PORT", "8080"),
		LogLevel:      getEnv("LOG_LEVEL", "info"),
		CORSOrigins:   splitCSV(getEnv("CORS_ORIGINS", "http://localhost:5173")),
		DatabaseURL:   os.Getenv("DATABASE_URL"),
		OpenAIKey:     os.Getenv("OPENAI_API_KEY"),
		OpenAIModel:   getEnv("OPENAI_MODEL", "gpt-4o-mini"),
		OpenAIBaseURL: os.Getenv("OPENAI_BASE_URL"),
	}
	return cfg, nil
}

// getEnv returns the value of the environment variable named by key,
// or fallback if the variable is not set or is empty.
func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

// splitCSV splits a comma-separated string into a trimmed slice, ignoring empty entries.
func splitCSV(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if t := strings.TrimSpace(part); t != "" {
			out = append(out, t)
		}
	}
	return out
}
