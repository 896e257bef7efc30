// Package config provides configuration loading and validation for the
// skill genome backend.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

// Config represents the analysis configuration that can be loaded from
// a JSON file. All fields are optional; missing values use defaults or
// must be provided via CLI flags.
type Config struct {
	// Data sources
	DataPath string `json:"data_path,omitempty"` // Path to the CSV dataset ingested at startup
	DataURL  string `json:"data_url,omitempty"`  // URL to fetch the dataset from instead

	// Bot detection
	BotPostsPerDayThreshold   float64 `json:"bot_posts_per_day_threshold,omitempty"`
	BotDuplicateTextThreshold float64 `json:"bot_duplicate_text_threshold,omitempty"`

	// Skills
	MinSkillSupport int `json:"min_skill_support,omitempty"` // Regional support needed for risk scoring

	// Clustering
	ClusterCount int `json:"cluster_count,omitempty"` // KMeans cluster count for regions

	// Forecasting
	ForecastHorizonWeeks int `json:"forecast_horizon_weeks,omitempty"`
	TopSkillForecasts    int `json:"top_skill_forecasts,omitempty"` // Skills forecast in a pipeline run

	// Persistence
	DatabaseURL string `json:"database_url,omitempty"` // PostgreSQL connection URL

	// Behavior
	Verbose bool `json:"verbose,omitempty"`
}

// Defaults returns the built-in analysis parameters, matching the
// documented MVP configuration.
func Defaults() Config {
	return Config{
		BotPostsPerDayThreshold:   40,
		BotDuplicateTextThreshold: 0.75,
		MinSkillSupport:           10,
		ClusterCount:              3,
		ForecastHorizonWeeks:      12,
		TopSkillForecasts:         10,
	}
}

// LoadConfig loads configuration from a JSON file.
// Returns an error if the file cannot be read or parsed.
func LoadConfig(path string) (*Config, error) {
	if path == "" {
		return nil, fmt.Errorf("config path is empty")
	}

	if !filepath.IsAbs(path) {
		cwd, err := os.Getwd()
		if err != nil {
			return nil, fmt.Errorf("failed to get current directory: %w", err)
		}
		path = filepath.Join(cwd, path)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
	}

	var cfg Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config JSON: %w", err)
	}

	return &cfg, nil
}

// Validate checks that the configuration has valid values.
func (c *Config) Validate() error {
	if c.DataPath != "" && c.DataURL != "" {
		return fmt.Errorf("config error: 'data_path' and 'data_url' are mutually exclusive")
	}
	if c.BotPostsPerDayThreshold < 0 {
		return fmt.Errorf("config error: 'bot_posts_per_day_threshold' must be non-negative")
	}
	if c.BotDuplicateTextThreshold < 0 || c.BotDuplicateTextThreshold > 1 {
		return fmt.Errorf("config error: 'bot_duplicate_text_threshold' must be in [0, 1]")
	}
	if c.MinSkillSupport < 0 {
		return fmt.Errorf("config error: 'min_skill_support' must be non-negative")
	}
	if c.ClusterCount < 0 {
		return fmt.Errorf("config error: 'cluster_count' must be non-negative")
	}
	if c.ForecastHorizonWeeks < 0 {
		return fmt.Errorf("config error: 'forecast_horizon_weeks' must be non-negative")
	}

	if c.DataPath != "" {
		if _, err := os.Stat(c.DataPath); os.IsNotExist(err) {
			return fmt.Errorf("config error: dataset file not found: %s", c.DataPath)
		}
	}

	return nil
}

// MergeWithDefaults returns a new Config with zero-valued fields filled
// from defaults. This is used to apply config file values as defaults
// for CLI flags. Zero means unset: an explicit zero in config.json is
// indistinguishable from a missing key and is replaced by the default.
// To disable a threshold, set a value that cannot trigger (e.g. a
// duplicate-text threshold of 1).
func (c *Config) MergeWithDefaults(defaults Config) Config {
	result := *c

	if result.DataPath == "" {
		result.DataPath = defaults.DataPath
	}
	if result.DataURL == "" {
		result.DataURL = defaults.DataURL
	}
	if result.DatabaseURL == "" {
		result.DatabaseURL = defaults.DatabaseURL
	}

	if result.BotPostsPerDayThreshold == 0 {
		result.BotPostsPerDayThreshold = defaults.BotPostsPerDayThreshold
	}
	if result.BotDuplicateTextThreshold == 0 {
		result.BotDuplicateTextThreshold = defaults.BotDuplicateTextThreshold
	}
	if result.MinSkillSupport == 0 {
		result.MinSkillSupport = defaults.MinSkillSupport
	}
	if result.ClusterCount == 0 {
		result.ClusterCount = defaults.ClusterCount
	}
	if result.ForecastHorizonWeeks == 0 {
		result.ForecastHorizonWeeks = defaults.ForecastHorizonWeeks
	}
	if result.TopSkillForecasts == 0 {
		result.TopSkillForecasts = defaults.TopSkillForecasts
	}

	// Bool fields: cannot distinguish unset from false, so we don't merge
	// (CLI flags should always win for bools)

	return result
}
