package config

import (
	"fmt"
	"os"
	"strings"
)

// Config contains runtime configuration values.
type Config struct {
	Environment string
	HTTPPort    string
	DatabaseURL string
	ServiceName string
	// TokenOnSignup controls whether signup pre-assigns a session token or
	// leaves the new user signed out until an explicit signin.
	TokenOnSignup     bool
	CORSAllowedOrigin string
}

// Load reads configuration from environment variables. The runtime mode
// flag and the store connection string have no defaults; startup aborts
// without them.
func Load() (Config, error) {
	cfg := Config{
		Environment:       strings.TrimSpace(os.Getenv("APP_ENV")),
		HTTPPort:          getEnv("HTTP_PORT", "8080"),
		DatabaseURL:       os.Getenv("DATABASE_URL"),
		ServiceName:       getEnv("SERVICE_NAME", "simple-login-api"),
		TokenOnSignup:     getBool("TOKEN_ON_SIGNUP", false),
		CORSAllowedOrigin: getEnv("CORS_ALLOWED_ORIGIN", "*"),
	}

	if cfg.Environment == "" {
		return Config{}, fmt.Errorf("APP_ENV is required")
	}
	if cfg.DatabaseURL == "" {
		return Config{}, fmt.Errorf("DATABASE_URL is required")
	}

	return cfg, nil
}

func getEnv(key, def string) string {
	if v, ok := os.LookupEnv(key); ok {
		return v
	}
	return def
}

func getBool(key string, def bool) bool {
	if v, ok := os.LookupEnv(key); ok {
		switch strings.ToLower(v) {
		case "1", "true", "t", "yes", "y", "on":
			return true
		case "0", "false", "f", "no", "n", "off":
			return false
		}
	}
	return def
}
