// Package config provides configuration loading and validation for the CLI.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

// Config represents the CLI configuration that can be loaded from a JSON file.
// All fields are optional; missing values use defaults or must be provided via CLI flags.
type Config struct {
	// Paths
	CustomerDoc string `json:"customer_doc,omitempty"` // Path to the customer document JSON
	CompanyDoc  string `json:"company_doc,omitempty"`  // Optional path to the company services document
	Output      string `json:"output,omitempty"`       // Path for the final run artifact

	// Conversation parameters
	Goal        string `json:"goal,omitempty"`         // Conversation goal
	Tone        string `json:"tone,omitempty"`         // Conversation tone
	Channel     string `json:"channel,omitempty"`      // Conversation channel
	Exchanges   int    `json:"exchanges,omitempty"`    // Target number of exchanges (one message each way)
	CompanyRep  string `json:"company_rep,omitempty"`  // Display name for the company participant
	CustomerRep string `json:"customer_rep,omitempty"` // Display name for the customer participant

	// Behavior
	APIKey           string `json:"api_key,omitempty"`           // Gemini API key
	ThreadID         string `json:"thread_id,omitempty"`         // Stable id for checkpointing and resume
	MaxIterations    int    `json:"max_iterations,omitempty"`    // Conversation loop safety bound
	ParallelAnalysis bool   `json:"parallel_analysis,omitempty"` // Run the two analyses concurrently
	Verbose          bool   `json:"verbose,omitempty"`           // Print detailed debug information
	DatabaseURL      string `json:"database_url,omitempty"`      // PostgreSQL connection URL
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
	if c.Exchanges < 0 || c.Exchanges > 15 {
		return fmt.Errorf("config error: 'exchanges' must be between 0 and 15")
	}
	if c.MaxIterations < 0 {
		return fmt.Errorf("config error: 'max_iterations' must be non-negative")
	}

	// Validate file paths exist (if specified)
	if c.CustomerDoc != "" {
		if _, err := os.Stat(c.CustomerDoc); os.IsNotExist(err) {
			return fmt.Errorf("config error: customer document not found: %s", c.CustomerDoc)
		}
	}
	if c.CompanyDoc != "" {
		if _, err := os.Stat(c.CompanyDoc); os.IsNotExist(err) {
			return fmt.Errorf("config error: company document not found: %s", c.CompanyDoc)
		}
	}

	return nil
}

// MergeWithDefaults returns a new Config with empty fields filled from defaults.
// This is used to apply config file values as defaults for CLI flags.
func (c *Config) MergeWithDefaults(defaults Config) Config {
	result := *c

	// String fields: use default if empty
	if result.CustomerDoc == "" {
		result.CustomerDoc = defaults.CustomerDoc
	}
	if result.CompanyDoc == "" {
		result.CompanyDoc = defaults.CompanyDoc
	}
	if result.Output == "" {
		result.Output = defaults.Output
	}
	if result.Goal == "" {
		result.Goal = defaults.Goal
	}
	if result.Tone == "" {
		result.Tone = defaults.Tone
	}
	if result.Channel == "" {
		result.Channel = defaults.Channel
	}
	if result.CompanyRep == "" {
		result.CompanyRep = defaults.CompanyRep
	}
	if result.CustomerRep == "" {
		result.CustomerRep = defaults.CustomerRep
	}
	if result.APIKey == "" {
		result.APIKey = defaults.APIKey
	}
	if result.ThreadID == "" {
		result.ThreadID = defaults.ThreadID
	}
	if result.DatabaseURL == "" {
		result.DatabaseURL = defaults.DatabaseURL
	}

	// Int fields: use default if zero
	if result.Exchanges == 0 {
		result.Exchanges = defaults.Exchanges
	}
	if result.MaxIterations == 0 {
		result.MaxIterations = defaults.MaxIterations
	}

	// Bool fields: cannot distinguish unset from false, so we don't merge
	// (CLI flags should always win for bools)

	return result
}
