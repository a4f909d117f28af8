package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestApplyDefaults(t *testing.T) {
	cfg := &Config{}
	ApplyDefaults(cfg)

	t.Run("Site defaults", func(t *testing.T) {
		if cfg.Site.Name != "Inkwell" {
			t.Errorf("Expected site name Inkwell, got %q", cfg.Site.Name)
		}
	})

	t.Run("Server defaults", func(t *testing.T) {
		if cfg.Server.Host != "0.0.0.0" {
			t.Errorf("Expected host 0.0.0.0, got %q", cfg.Server.Host)
		}
		if cfg.Server.Port != "8080" {
			t.Errorf("Expected port 8080, got %q", cfg.Server.Port)
		}
	})

	t.Run("API defaults", func(t *testing.T) {
		if cfg.API.BaseURL != "http://localhost:5000/api" {
			t.Errorf("Unexpected API base URL %q", cfg.API.BaseURL)
		}
		if cfg.API.TimeoutSeconds != 15 {
			t.Errorf("Expected timeout 15, got %d", cfg.API.TimeoutSeconds)
		}
	})

	t.Run("Autosave defaults", func(t *testing.T) {
		if !cfg.Autosave.Enabled {
			t.Error("Expected autosave enabled by default")
		}
		if cfg.Autosave.Backend != "sqlite" {
			t.Errorf("Expected sqlite backend, got %q", cfg.Autosave.Backend)
		}
		if cfg.Autosave.Compression != "zstd" {
			t.Errorf("Expected zstd compression, got %q", cfg.Autosave.Compression)
		}
	})

	t.Run("Existing values survive", func(t *testing.T) {
		custom := &Config{}
		custom.Site.Name = "My Blog"
		ApplyDefaults(custom)
		if custom.Site.Name != "My Blog" {
			t.Errorf("Expected My Blog, got %q", custom.Site.Name)
		}
	})
}

func TestLoadConfig(t *testing.T) {
	t.Run("Missing file falls back to defaults", func(t *testing.T) {
		if err := LoadConfig(filepath.Join(t.TempDir(), "nope.yaml")); err != nil {
			t.Fatalf("Expected no error, got %v", err)
		}
		if AppConfig.Site.Name != "Inkwell" {
			t.Errorf("Expected default site name, got %q", AppConfig.Site.Name)
		}
	})

	t.Run("YAML values override defaults", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "config.yaml")
		content := `site:
  name: Custom Blog
api:
  base_url: https://api.example.com
content:
  format: markdown
`
		if err := os.WriteFile(path, []byte(content), 0644); err != nil {
			t.Fatalf("Failed to write config: %v", err)
		}

		if err := LoadConfig(path); err != nil {
			t.Fatalf("Expected no error, got %v", err)
		}
		if AppConfig.Site.Name != "Custom Blog" {
			t.Errorf("Expected Custom Blog, got %q", AppConfig.Site.Name)
		}
		if AppConfig.API.BaseURL != "https://api.example.com" {
			t.Errorf("Unexpected base URL %q", AppConfig.API.BaseURL)
		}
		if AppConfig.Content.Format != "markdown" {
			t.Errorf("Expected markdown format, got %q", AppConfig.Content.Format)
		}
		if AppConfig.Server.Port != "8080" {
			t.Errorf("Expected default port to survive, got %q", AppConfig.Server.Port)
		}
	})

	t.Run("Malformed YAML errors", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "bad.yaml")
		if err := os.WriteFile(path, []byte("site: [unclosed"), 0644); err != nil {
			t.Fatalf("Failed to write config: %v", err)
		}
		if err := LoadConfig(path); err == nil {
			t.Error("Expected error for malformed YAML")
		}
	})
}
