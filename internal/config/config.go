// Package config provides configuration loading and validation for the CLI
// and server.
package config

import (
	"encoding/json"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strconv"
)

// Config holds runtime settings. All fields are optional; missing values use
// defaults or environment variables.
type Config struct {
	// Server
	Port        int    `json:"port,omitempty"`         // HTTP listen port
	DatabaseURL string `json:"database_url,omitempty"` // PostgreSQL connection URL

	// Lexicon file overrides. Empty paths fall back to the embedded data.
	TechDictionary   string `json:"tech_dictionary,omitempty"`
	NormalizationMap string `json:"normalization_map,omitempty"`
	Locations        string `json:"locations,omitempty"`

	// Search behavior
	MaxCandidates int  `json:"max_candidates,omitempty"` // Cap on candidates fetched per search
	Verbose       bool `json:"verbose,omitempty"`        // Print detailed parse breakdowns
}

// Defaults returns the configuration used when nothing is specified.
func Defaults() Config {
	return Config{
		Port:          8080,
		MaxCandidates: 50,
	}
}

// Load reads configuration from a JSON file.
func Load(path string) (*Config, error) {
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

// FromEnv overlays environment variables onto the config. Environment wins
// over file values.
func (c *Config) FromEnv() {
	if v := os.Getenv("DATABASE_URL"); v != "" {
		c.DatabaseURL = v
	}
	if v := os.Getenv("PORT"); v != "" {
		if port, err := strconv.Atoi(v); err == nil {
			c.Port = port
		}
	}
	if v := os.Getenv("TECH_DICTIONARY_PATH"); v != "" {
		c.TechDictionary = v
	}
	if v := os.Getenv("NORMALIZATION_MAP_PATH"); v != "" {
		c.NormalizationMap = v
	}
	if v := os.Getenv("LOCATIONS_PATH"); v != "" {
		c.Locations = v
	}
}

// Validate checks that the configuration has valid values.
func (c *Config) Validate() error {
	if c.Port < 0 || c.Port > 65535 {
		return fmt.Errorf("config error: 'port' out of range: %d", c.Port)
	}
	if c.MaxCandidates < 0 {
		return fmt.Errorf("config error: 'max_candidates' must be non-negative")
	}

	// A missing lexicon override is not fatal; the lexicon degrades that
	// section to its embedded default (or empty) and keeps going.
	for _, p := range []struct{ name, path string }{
		{"tech_dictionary", c.TechDictionary},
		{"normalization_map", c.NormalizationMap},
		{"locations", c.Locations},
	} {
		if p.path == "" {
			continue
		}
		if _, err := os.Stat(p.path); os.IsNotExist(err) {
			log.Printf("[config] Warning: '%s' file not found, continuing without it: %s", p.name, p.path)
		}
	}

	return nil
}

// MergeWithDefaults fills zero-valued fields from defaults.
func (c *Config) MergeWithDefaults(defaults Config) Config {
	result := *c
	if result.Port == 0 {
		result.Port = defaults.Port
	}
	if result.MaxCandidates == 0 {
		result.MaxCandidates = defaults.MaxCandidates
	}
	if result.DatabaseURL == "" {
		result.DatabaseURL = defaults.DatabaseURL
	}
	return result
}
