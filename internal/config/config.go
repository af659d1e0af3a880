// Package config loads and validates pygraph configuration.
package config

import (
	"encoding/json"
	"os"
	"path/filepath"
	"regexp"

	"github.com/spf13/viper"
)

// Config represents the complete pygraph configuration
type Config struct {
	Version int `json:"version" mapstructure:"version"`

	Loader  LoaderConfig  `json:"loader" mapstructure:"loader"`
	Filter  FilterConfig  `json:"filter" mapstructure:"filter"`
	Output  OutputConfig  `json:"output" mapstructure:"output"`
	Logging LoggingConfig `json:"logging" mapstructure:"logging"`
}

// LoaderConfig controls module discovery and loading
type LoaderConfig struct {
	// SearchPaths lists directories consulted when resolving dotted module names.
	// The current directory is always consulted first.
	SearchPaths []string `json:"searchPaths" mapstructure:"searchPaths"`

	// IgnoreDirs lists directory names skipped during directory expansion
	IgnoreDirs []string `json:"ignoreDirs" mapstructure:"ignoreDirs"`

	// MaxFileSizeBytes caps the size of a source file the loader will read
	MaxFileSizeBytes int `json:"maxFileSizeBytes" mapstructure:"maxFileSizeBytes"`
}

// FilterConfig controls edge retention
type FilterConfig struct {
	// FilenameRegex, when set, keeps an edge only if both endpoints'
	// backing files fully match the pattern
	FilenameRegex string `json:"filenameRegex" mapstructure:"filenameRegex"`
}

// OutputConfig controls graph rendering
type OutputConfig struct {
	// Format is the render format: dot, json, or yaml
	Format string `json:"format" mapstructure:"format"`
}

// LoggingConfig contains logging configuration
type LoggingConfig struct {
	Format string `json:"format" mapstructure:"format"`
	Level  string `json:"level" mapstructure:"level"`
}

const currentVersion = 1

// DefaultConfig returns the default configuration
func DefaultConfig() *Config {
	return &Config{
		Version: currentVersion,
		Loader: LoaderConfig{
			SearchPaths:      []string{},
			IgnoreDirs:       []string{"__pycache__", ".git", ".tox", ".venv", "node_modules"},
			MaxFileSizeBytes: 1000000,
		},
		Filter: FilterConfig{
			FilenameRegex: "",
		},
		Output: OutputConfig{
			Format: "dot",
		},
		Logging: LoggingConfig{
			Format: "human",
			Level:  "info",
		},
	}
}

// LoadConfig loads configuration from .pygraph/config.json under root
func LoadConfig(root string) (*Config, error) {
	v := viper.New()

	// Set defaults
	v.SetDefault("version", currentVersion)

	// Configure viper
	v.SetConfigName("config")
	v.SetConfigType("json")
	v.AddConfigPath(filepath.Join(root, ".pygraph"))

	// Read config file
	if err := v.ReadInConfig(); err != nil {
		// If config doesn't exist, return default config
		if _, ok := err.(viper.ConfigFileNotFoundError); ok {
			return DefaultConfig(), nil
		}
		return nil, err
	}

	// Unmarshal on top of the defaults so partial files stay usable
	cfg := DefaultConfig()
	if err := v.Unmarshal(cfg); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Save writes the configuration to .pygraph/config.json under root
func (c *Config) Save(root string) error {
	dir := filepath.Join(root, ".pygraph")
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}

	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return err
	}

	return os.WriteFile(filepath.Join(dir, "config.json"), data, 0644)
}

// Validate checks if the configuration is valid
func (c *Config) Validate() error {
	if c.Version != currentVersion {
		return &ConfigError{Field: "version", Message: "unsupported config version"}
	}

	switch c.Output.Format {
	case "dot", "json", "yaml":
	default:
		return &ConfigError{Field: "output.format", Message: "must be one of dot, json, yaml"}
	}

	if c.Filter.FilenameRegex != "" {
		if _, err := regexp.Compile(c.Filter.FilenameRegex); err != nil {
			return &ConfigError{Field: "filter.filenameRegex", Message: err.Error()}
		}
	}

	if c.Loader.MaxFileSizeBytes <= 0 {
		return &ConfigError{Field: "loader.maxFileSizeBytes", Message: "must be positive"}
	}

	return nil
}

// ConfigError represents a configuration error
type ConfigError struct {
	Field   string
	Message string
}

func (e *ConfigError) Error() string {
	return "config error in field '" + e.Field + "': " + e.Message
}
