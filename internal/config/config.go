// internal/config/config.go
package config

import (
	"os"
	"path/filepath"
	"time"
)

// Config holds the runtime settings for the storefront binaries.
type Config struct {
	APIBaseURL  string
	SessionFile string
	HTTPTimeout time.Duration

	// fakestore settings
	Port      string
	JWTSecret string
	JWTExpiry time.Duration
}

// Load reads configuration from the environment with development
// defaults. The session file defaults to a dotfile in the user home so
// sessions survive process restarts.
func Load() Config {
	return Config{
		APIBaseURL:  getEnv("API_BASE_URL", "https://fakestoreapi.com"),
		SessionFile: getEnv("SESSION_FILE", defaultSessionFile()),
		HTTPTimeout: getDuration("HTTP_TIMEOUT", 15*time.Second),
		Port:        getEnv("PORT", "8080"),
		JWTSecret:   getEnv("JWT_SECRET", "dev-secret-change-in-production"),
		JWTExpiry:   getDuration("JWT_EXPIRY", 24*time.Hour),
	}
}

func defaultSessionFile() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".shopfront-session.json"
	}
	return filepath.Join(home, ".shopfront", "session.json")
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getDuration(key string, fallback time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return fallback
}
