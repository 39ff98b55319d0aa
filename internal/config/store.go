package config

import (
	"fmt"
	"time"
)

// StoreConfig holds the target storefront settings for a verification run
type StoreConfig struct {
	BaseURL     string
	Headless    bool
	PollTimeout time.Duration
}

// LoadStoreConfig loads storefront configuration from environment variables
func LoadStoreConfig(getenv func(string) string) (StoreConfig, error) {
	config := StoreConfig{
		BaseURL:     getenv("STORE_BASE_URL"),
		Headless:    getenv("HEADLESS") != "false",
		PollTimeout: 10 * time.Second,
	}

	if config.BaseURL == "" {
		return StoreConfig{}, fmt.Errorf("STORE_BASE_URL is required")
	}

	if raw := getenv("POLL_TIMEOUT"); raw != "" {
		timeout, err := time.ParseDuration(raw)
		if err != nil {
			return StoreConfig{}, fmt.Errorf("invalid POLL_TIMEOUT %q: %w", raw, err)
		}
		config.PollTimeout = timeout
	}

	return config, nil
}
