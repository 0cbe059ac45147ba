package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	Port        string
	Environment string
	LogLevel    string
	Shop        ShopConfig
	Session     SessionConfig
}

// ShopConfig locates the shop API and its image CDN
type ShopConfig struct {
	Origin      string        // API_ORIGIN, e.g. https://larek-api.nomoreparties.co
	APIURL      string        // API_URL; defaults to Origin + /api/weblarek
	CDNURL      string        // CDN_URL; defaults to Origin + /content/weblarek
	HTTPTimeout time.Duration // HTTP_TIMEOUT
}

// SessionConfig tunes the per-client storefronts
type SessionConfig struct {
	TTL                     time.Duration // SESSION_TTL: idle sessions are dropped after this
	ClearSelectionOnSuccess bool          // CLEAR_SELECTION_ON_SUCCESS: reset catalog selection after a purchase
}

func Load() (*Config, error) {
	viper.SetConfigType("env")
	viper.SetConfigName(".env")
	viper.AddConfigPath(".")
	viper.AddConfigPath("..")
	viper.AddConfigPath("../..")

	// Set defaults
	viper.SetDefault("PORT", "8080")
	viper.SetDefault("ENVIRONMENT", "development")
	viper.SetDefault("LOG_LEVEL", "info")
	viper.SetDefault("HTTP_TIMEOUT", "30s")
	viper.SetDefault("SESSION_TTL", "30m")

	// Read from environment variables
	viper.AutomaticEnv()

	// Try to read .env file (optional)
	if err := viper.ReadInConfig(); err != nil {
		// It's okay if .env doesn't exist, we'll use env vars
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	origin := strings.TrimSuffix(strings.TrimSpace(getEnvOrViper("API_ORIGIN", "")), "/")
	if origin == "" {
		return nil, fmt.Errorf("API_ORIGIN is required")
	}

	timeout, err := getDuration("HTTP_TIMEOUT", 30*time.Second)
	if err != nil {
		return nil, err
	}
	ttl, err := getDuration("SESSION_TTL", 30*time.Minute)
	if err != nil {
		return nil, err
	}
	clearSelection, err := getBool("CLEAR_SELECTION_ON_SUCCESS", false)
	if err != nil {
		return nil, err
	}

	cfg := &Config{
		Port:        getEnvOrViper("PORT", "8080"),
		Environment: getEnvOrViper("ENVIRONMENT", "development"),
		LogLevel:    getEnvOrViper("LOG_LEVEL", "info"),
		Shop: ShopConfig{
			Origin:      origin,
			APIURL:      strings.TrimSpace(getEnvOrViper("API_URL", origin+"/api/weblarek")),
			CDNURL:      strings.TrimSpace(getEnvOrViper("CDN_URL", origin+"/content/weblarek")),
			HTTPTimeout: timeout,
		},
		Session: SessionConfig{
			TTL:                     ttl,
			ClearSelectionOnSuccess: clearSelection,
		},
	}

	return cfg, nil
}

func getEnvOrViper(key, defaultValue string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	if viper.IsSet(key) {
		return viper.GetString(key)
	}
	return defaultValue
}

func getDuration(key string, defaultValue time.Duration) (time.Duration, error) {
	raw := getEnvOrViper(key, "")
	if raw == "" {
		return defaultValue, nil
	}
	d, err := time.ParseDuration(raw)
	if err != nil || d <= 0 {
		return 0, fmt.Errorf("%s must be a positive duration, got %q", key, raw)
	}
	return d, nil
}

func getBool(key string, defaultValue bool) (bool, error) {
	raw := getEnvOrViper(key, "")
	if raw == "" {
		return defaultValue, nil
	}
	b, err := strconv.ParseBool(raw)
	if err != nil {
		return false, fmt.Errorf("%s must be a boolean, got %q", key, raw)
	}
	return b, nil
}
