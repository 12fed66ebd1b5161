// Package config provides configuration loading and validation for the
// server and CLI.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
)

// Config holds runtime configuration. Values come from a JSON file, the
// environment, or CLI flags; later sources win.
type Config struct {
	// Addr is the HTTP listen address for the API server.
	Addr string `json:"addr,omitempty"`
	// DatabaseURL is the PostgreSQL connection URL.
	DatabaseURL string `json:"database_url,omitempty"`
	// APIKey is the Gemini API key used for extraction and tailoring.
	APIKey string `json:"api_key,omitempty"`
	// UseBrowser enables headless-browser fallback for posting pages that
	// render client-side.
	UseBrowser bool `json:"use_browser,omitempty"`
	// Verbose prints detailed progress information.
	Verbose bool `json:"verbose,omitempty"`
}

// Default returns the built-in defaults.
func Default() Config {
	return Config{Addr: ":8080"}
}

// LoadFile loads configuration from a JSON file.
func LoadFile(path string) (*Config, error) {
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

// FromEnv fills unset fields from the environment.
func (c *Config) FromEnv() {
	if c.Addr == "" {
		c.Addr = os.Getenv("SERVER_ADDR")
	}
	if c.DatabaseURL == "" {
		c.DatabaseURL = os.Getenv("DATABASE_URL")
	}
	if c.APIKey == "" {
		c.APIKey = os.Getenv("GEMINI_API_KEY")
	}
	if !c.UseBrowser {
		if v, err := strconv.ParseBool(os.Getenv("USE_BROWSER")); err == nil {
			c.UseBrowser = v
		}
	}
}

// Merge returns a new Config with empty fields filled from defaults.
func (c *Config) Merge(defaults Config) Config {
	result := *c
	if result.Addr == "" {
		result.Addr = defaults.Addr
	}
	if result.DatabaseURL == "" {
		result.DatabaseURL = defaults.DatabaseURL
	}
	if result.APIKey == "" {
		result.APIKey = defaults.APIKey
	}
	if defaults.UseBrowser {
		result.UseBrowser = true
	}
	if defaults.Verbose {
		result.Verbose = true
	}
	return result
}

// Validate checks that required values are present and well-formed.
func (c *Config) Validate() error {
	if c.APIKey == "" {
		return fmt.Errorf("config error: API key is required (set GEMINI_API_KEY)")
	}
	return nil
}
