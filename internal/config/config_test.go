package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadConfigDefaults(t *testing.T) {
	// No config file: defaults come back.
	cfg, err := LoadConfig(t.TempDir())
	if err != nil {
		t.Fatalf("LoadConfig failed: %v", err)
	}

	if cfg.Output.Format != "dot" {
		t.Errorf("Output.Format = %q, want dot", cfg.Output.Format)
	}
	if cfg.Loader.MaxFileSizeBytes != 1000000 {
		t.Errorf("Loader.MaxFileSizeBytes = %d, want 1000000", cfg.Loader.MaxFileSizeBytes)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("Default config failed validation: %v", err)
	}
}

func TestLoadConfigFromFile(t *testing.T) {
	root := t.TempDir()
	dir := filepath.Join(root, ".pygraph")
	if err := os.MkdirAll(dir, 0755); err != nil {
		t.Fatalf("Failed to create config dir: %v", err)
	}

	content := `{
  "version": 1,
  "output": {"format": "json"},
  "filter": {"filenameRegex": ".*/src/.*"}
}`
	if err := os.WriteFile(filepath.Join(dir, "config.json"), []byte(content), 0644); err != nil {
		t.Fatalf("Failed to write config: %v", err)
	}

	cfg, err := LoadConfig(root)
	if err != nil {
		t.Fatalf("LoadConfig failed: %v", err)
	}

	if cfg.Output.Format != "json" {
		t.Errorf("Output.Format = %q, want json", cfg.Output.Format)
	}
	if cfg.Filter.FilenameRegex != ".*/src/.*" {
		t.Errorf("Filter.FilenameRegex = %q, want pattern from file", cfg.Filter.FilenameRegex)
	}
	// Unspecified sections keep their defaults.
	if cfg.Logging.Level != "info" {
		t.Errorf("Logging.Level = %q, want default info", cfg.Logging.Level)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr bool
	}{
		{"valid defaults", func(c *Config) {}, false},
		{"bad version", func(c *Config) { c.Version = 99 }, true},
		{"bad format", func(c *Config) { c.Output.Format = "svg" }, true},
		{"bad regex", func(c *Config) { c.Filter.FilenameRegex = "(" }, true},
		{"bad file size", func(c *Config) { c.Loader.MaxFileSizeBytes = 0 }, true},
		{"yaml format ok", func(c *Config) { c.Output.Format = "yaml" }, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(cfg)
			err := cfg.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestSaveRoundTrip(t *testing.T) {
	root := t.TempDir()

	cfg := DefaultConfig()
	cfg.Output.Format = "yaml"
	if err := cfg.Save(root); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	loaded, err := LoadConfig(root)
	if err != nil {
		t.Fatalf("LoadConfig failed: %v", err)
	}
	if loaded.Output.Format != "yaml" {
		t.Errorf("Output.Format = %q, want yaml after round trip", loaded.Output.Format)
	}
}
