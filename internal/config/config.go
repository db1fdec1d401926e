// Package config provides configuration loading and validation for the CLI
// and server.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

// Config represents configuration that can be loaded from a JSON file.
// All fields are optional; missing values use defaults or must be provided
// via CLI flags or environment variables.
type Config struct {
	// Server
	Port        int    `json:"port,omitempty"`         // HTTP listen port
	DatabaseURL string `json:"database_url,omitempty"` // PostgreSQL connection URL (empty: in-memory sessions)

	// Interview behavior
	QuestionCap   int    `json:"question_cap,omitempty"`   // Maximum questions per session
	QuestionBatch int    `json:"question_batch,omitempty"` // Questions surfaced per batch
	Language      string `json:"language,omitempty"`       // Default output language (BCP 47 tag)

	// Sessions
	SessionTTLMinutes int `json:"session_ttl_minutes,omitempty"` // Idle minutes before a session expires

	// Behavior
	APIKey  string `json:"api_key,omitempty"` // Gemini API key
	Verbose bool   `json:"verbose,omitempty"` // Print detailed debug information
}

// LoadConfig loads configuration from a JSON file.
// Returns an error if the file cannot be read or parsed.
func LoadConfig(path string) (*Config, error) {
	if path == "" {
		return nil, fmt.Errorf("config path is empty")
	}

	// Resolve path relative to current directory if not absolute
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
// Note: This doesn't check for required fields since those are handled
// by CLI flag validation after merging.
func (c *Config) Validate() error {
	if c.Port < 0 || c.Port > 65535 {
		return fmt.Errorf("config error: 'port' must be between 0 and 65535")
	}
	if c.QuestionCap < 0 {
		return fmt.Errorf("config error: 'question_cap' must be non-negative")
	}
	if c.QuestionBatch < 0 {
		return fmt.Errorf("config error: 'question_batch' must be non-negative")
	}
	if c.SessionTTLMinutes < 0 {
		return fmt.Errorf("config error: 'session_ttl_minutes' must be non-negative")
	}
	return nil
}

// MergeWithDefaults returns a new Config with empty fields filled from
// defaults. This is used to apply config file values as defaults for CLI
// flags.
func (c *Config) MergeWithDefaults(defaults Config) Config {
	result := *c

	// String fields: use default if empty
	if result.DatabaseURL == "" {
		result.DatabaseURL = defaults.DatabaseURL
	}
	if result.Language == "" {
		result.Language = defaults.Language
	}
	if result.APIKey == "" {
		result.APIKey = defaults.APIKey
	}

	// Int fields: use default if zero
	if result.Port == 0 {
		result.Port = defaults.Port
	}
	if result.QuestionCap == 0 {
		result.QuestionCap = defaults.QuestionCap
	}
	if result.QuestionBatch == 0 {
		result.QuestionBatch = defaults.QuestionBatch
	}
	if result.SessionTTLMinutes == 0 {
		result.SessionTTLMinutes = defaults.SessionTTLMinutes
	}

	// Bool fields: cannot distinguish unset from false, so we don't merge
	// (CLI flags should always win for bools)

	return result
}
