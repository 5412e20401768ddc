// Package config loads and validates application configuration from environment variables.
package config

import (
	"fmt"
	"os"
	"strings"
)

// Config holds all configuration values for the API server.
// Values are populated by Load from environment variables.
type Config struct {
	// Port is the TCP port the HTTP server listens on. Defaults to "8080".
	Port string

	// DBPath is the SQLite database file path. Defaults to "tripflow.db".
	// The file is created on first launch.
	DBPath string

	// ExportDir is the directory full-backup export files are written to —
	// the device's downloads-equivalent location. Defaults to the working
	// directory and must already exist.
	ExportDir string

	// LogLevel controls the minimum log level. Defaults to "info".
	// Valid values: debug, info, warn, error.
	LogLevel string

	// CORSOrigins is the list of allowed cross-origin request origins.
	// Defaults to ["http://localhost:5173"] (Vite dev server).
	// Set CORS_ORIGINS to a comma-separated list to override.
	CORSOrigins []string
}

// Load reads configuration from environment variables and returns a Config.
// Every value has a default; Load only fails when a provided value is
// unusable (e.g. EXPORT_DIR pointing at a non-directory).
func Load() (Config, error) {
	cfg := Config{
		Port:        getEnv("PORT", "8080"),
		DBPath:      getEnv("DB_PATH", "tripflow.db"),
		ExportDir:   getEnv("EXPORT_DIR", "."),
		LogLevel:    getEnv("LOG_LEVEL", "info"),
		CORSOrigins: splitCSV(getEnv("CORS_ORIGINS", "http://localhost:5173")),
	}

	info, err := os.Stat(cfg.ExportDir)
	if err != nil {
		return Config{}, fmt.Errorf("EXPORT_DIR %q: %w", cfg.ExportDir, err)
	}
	if !info.IsDir() {
		return Config{}, fmt.Errorf("EXPORT_DIR %q is not a directory", cfg.ExportDir)
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
