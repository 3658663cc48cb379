// Package config contains everything related to configuration
package config

import (
	"os"
	"path/filepath"
	"strconv"

	"github.com/joho/godotenv"
)

// Config holds the application configuration.
//
// AssistantID and APIToken are optional login-form prefills only; the
// running session keeps credentials in memory and never writes them
// back to the environment or disk.
type Config struct {
	BaseURL        string
	AssistantID    string
	APIToken       string
	CallFetchLimit int
	ExportDir      string
}

// Default values
const (
	defaultBaseURL        = "https://api.vapi.ai"
	defaultCallFetchLimit = 50
)

// Load reads configuration from .env files and environment variables.
func Load() (*Config, error) {
	// Try loading .env from multiple locations
	for _, path := range getEnvPaths() {
		if _, err := os.Stat(path); err == nil {
			_ = godotenv.Load(path)
			break
		}
	}

	cfg := &Config{
		BaseURL:        getEnvString("VAPI_BASE_URL", defaultBaseURL),
		AssistantID:    getEnvString("VAPI_ASSISTANT_ID", ""),
		APIToken:       getEnvString("VAPI_API_TOKEN", ""),
		CallFetchLimit: getEnvInt("CALL_FETCH_LIMIT", defaultCallFetchLimit),
		ExportDir:      getEnvString("EXPORT_DIR", "."),
	}

	if cfg.CallFetchLimit <= 0 {
		cfg.CallFetchLimit = defaultCallFetchLimit
	}

	return cfg, nil
}

// getEnvPaths returns a list of paths to check for .env files.
func getEnvPaths() []string {
	var paths []string

	// Current directory
	if cwd, err := os.Getwd(); err == nil {
		paths = append(paths, filepath.Join(cwd, ".env"))
	}

	// Home directory locations
	if home, err := os.UserHomeDir(); err == nil {
		paths = append(paths,
			filepath.Join(home, ".config", "vapi-dashboard", ".env"),
			filepath.Join(home, ".vapi-dashboard", ".env"),
		)
	}

	return paths
}

// getEnvString retrieves a string environment variable or returns the default.
func getEnvString(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getEnvInt retrieves an integer environment variable or returns the default.
func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if n, err := strconv.Atoi(value); err == nil {
			return n
		}
	}
	return defaultValue
}
