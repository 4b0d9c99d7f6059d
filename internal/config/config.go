package config

import (
	"fmt"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

// Config holds the service configuration.
type Config struct {
	Port      int
	LogLevel  string
	LogFormat string
	PresetDir string
	// MaxTrials caps the per-request trial count.
	MaxTrials int
	// MaxBudgetMS caps the per-request wall-clock simulation budget.
	MaxBudgetMS int
	// WatchIntervalMS is the preset hot-reload polling interval; 0 disables.
	WatchIntervalMS int
}

// Load reads the configuration from environment variables. A .env file is
// honored when present but never required.
func Load() (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{
		LogLevel:  getEnv("LOG_LEVEL", "info"),
		LogFormat: getEnv("LOG_FORMAT", "text"),
		PresetDir: getEnv("PRESET_DIR", "config/banners"),
	}

	var err error
	if cfg.Port, err = getEnvInt("PORT", 8080); err != nil {
		return nil, err
	}
	if cfg.MaxTrials, err = getEnvInt("SIM_MAX_TRIALS", 200000); err != nil {
		return nil, err
	}
	if cfg.MaxBudgetMS, err = getEnvInt("SIM_MAX_BUDGET_MS", 2000); err != nil {
		return nil, err
	}
	if cfg.WatchIntervalMS, err = getEnvInt("PRESET_WATCH_MS", 5000); err != nil {
		return nil, err
	}

	if cfg.MaxTrials < 1 {
		return nil, fmt.Errorf("SIM_MAX_TRIALS must be >= 1")
	}
	if cfg.MaxBudgetMS < 1 {
		return nil, fmt.Errorf("SIM_MAX_BUDGET_MS must be >= 1")
	}
	return cfg, nil
}

// getEnv retrieves an environment variable or returns a default value.
func getEnv(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) (int, error) {
	s, exists := os.LookupEnv(key)
	if !exists {
		return defaultValue, nil
	}
	v, err := strconv.Atoi(s)
	if err != nil {
		return 0, fmt.Errorf("invalid %s value: %w", key, err)
	}
	return v, nil
}
