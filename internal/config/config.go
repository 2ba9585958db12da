// Package config provides configuration loading and validation for the
// service. Values come from an optional JSON file merged with environment
// variables; flags win over both.
package config

import (
	"encoding/json"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strconv"
)

// Config is the service configuration. All fields are optional; missing
// values use defaults or must be provided via CLI flags.
type Config struct {
	Port        int    `json:"port,omitempty"`          // HTTP listen port
	DatabaseURL string `json:"database_url,omitempty"`  // PostgreSQL connection URL
	JobBoardURL string `json:"job_board_url,omitempty"` // Base URL of the job-board internal API

	// Collaborator fetch behavior
	FetchTimeoutSeconds int `json:"fetch_timeout_seconds,omitempty"` // Per-attempt timeout
	RetryAttempts       int `json:"retry_attempts,omitempty"`        // Max fetch attempts

	// Logging
	LogJSON bool `json:"log_json,omitempty"` // Emit JSON logs instead of console
	Verbose bool `json:"verbose,omitempty"`  // Debug-level logging
}

// Defaults returns the built-in default configuration.
func Defaults() Config {
	return Config{
		Port:                8080,
		FetchTimeoutSeconds: 10,
		RetryAttempts:       3,
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

// FromEnv fills unset fields from environment variables. godotenv loads
// .env into the environment before this runs.
func (c *Config) FromEnv() {
	if c.DatabaseURL == "" {
		c.DatabaseURL = os.Getenv("DATABASE_URL")
	}
	if c.JobBoardURL == "" {
		c.JobBoardURL = os.Getenv("JOB_BOARD_URL")
	}
	if c.Port == 0 {
		if port, err := strconv.Atoi(os.Getenv("PORT")); err == nil {
			c.Port = port
		}
	}
}

// Validate checks that the configuration has valid values.
func (c *Config) Validate() error {
	if c.Port < 0 || c.Port > 65535 {
		return fmt.Errorf("config error: 'port' must be between 0 and 65535")
	}
	if c.FetchTimeoutSeconds < 0 {
		return fmt.Errorf("config error: 'fetch_timeout_seconds' must be non-negative")
	}
	if c.RetryAttempts < 0 {
		return fmt.Errorf("config error: 'retry_attempts' must be non-negative")
	}
	if c.JobBoardURL != "" {
		parsed, err := url.Parse(c.JobBoardURL)
		if err != nil || parsed.Scheme == "" || parsed.Host == "" {
			return fmt.Errorf("config error: 'job_board_url' is not a valid URL: %s", c.JobBoardURL)
		}
	}
	return nil
}

// MergeWithDefaults returns a new Config with zero-value fields filled from
// defaults.
func (c *Config) MergeWithDefaults(defaults Config) Config {
	result := *c

	if result.Port == 0 {
		result.Port = defaults.Port
	}
	if result.DatabaseURL == "" {
		result.DatabaseURL = defaults.DatabaseURL
	}
	if result.JobBoardURL == "" {
		result.JobBoardURL = defaults.JobBoardURL
	}
	if result.FetchTimeoutSeconds == 0 {
		result.FetchTimeoutSeconds = defaults.FetchTimeoutSeconds
	}
	if result.RetryAttempts == 0 {
		result.RetryAttempts = defaults.RetryAttempts
	}

	// Bool fields: cannot distinguish unset from false, so flags always win.

	return result
}
