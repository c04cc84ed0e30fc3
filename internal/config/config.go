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
	CV                string `json:"cv,omitempty"`                  // Path to CV text file
	Instructions      string `json:"instructions,omitempty"`        // Path to instruction table (.xlsx or .csv)
	Template          string `json:"template,omitempty"`            // Path to template descriptor JSON
	JobDescription    string `json:"job_description,omitempty"`     // Optional path to job description text file
	JobDescriptionURL string `json:"job_description_url,omitempty"` // Optional URL to fetch the job description from
	OutputDir         string `json:"output_dir,omitempty"`          // Directory for generated files

	// Behavior
	Verbose     bool   `json:"verbose,omitempty"`      // Print detailed debug information
	DatabaseURL string `json:"database_url,omitempty"` // PostgreSQL connection URL for run persistence
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
// Required fields are checked by CLI flag validation after merging.
func (c *Config) Validate() error {
	if c.JobDescription != "" && c.JobDescriptionURL != "" {
		return fmt.Errorf("config error: 'job_description' and 'job_description_url' are mutually exclusive")
	}

	for name, path := range map[string]string{
		"cv":              c.CV,
		"instructions":    c.Instructions,
		"template":        c.Template,
		"job_description": c.JobDescription,
	} {
		if path == "" {
			continue
		}
		if _, err := os.Stat(path); os.IsNotExist(err) {
			return fmt.Errorf("config error: %s file not found: %s", name, path)
		}
	}

	return nil
}

// MergeWithDefaults returns a new Config with empty fields filled from defaults.
// This is used to apply config file values as defaults for CLI flags.
func (c *Config) MergeWithDefaults(defaults Config) Config {
	result := *c

	if result.CV == "" {
		result.CV = defaults.CV
	}
	if result.Instructions == "" {
		result.Instructions = defaults.Instructions
	}
	if result.Template == "" {
		result.Template = defaults.Template
	}
	if result.JobDescription == "" {
		result.JobDescription = defaults.JobDescription
	}
	if result.JobDescriptionURL == "" {
		result.JobDescriptionURL = defaults.JobDescriptionURL
	}
	if result.OutputDir == "" {
		result.OutputDir = defaults.OutputDir
	}
	if result.DatabaseURL == "" {
		result.DatabaseURL = defaults.DatabaseURL
	}
	if !result.Verbose {
		result.Verbose = defaults.Verbose
	}

	return result
}
