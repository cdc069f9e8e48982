package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadMissingFileUsesDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.BaseURL != DefaultBaseURL {
		t.Errorf("BaseURL = %q", cfg.BaseURL)
	}
	if cfg.TimeoutSecs != DefaultTimeoutSecs {
		t.Errorf("TimeoutSecs = %d", cfg.TimeoutSecs)
	}
	if cfg.MetadataPath != DefaultMetadataPath {
		t.Errorf("MetadataPath = %q", cfg.MetadataPath)
	}
	if cfg.RefreshEnabled() {
		t.Error("refresh should default to off")
	}
	if cfg.Refresh.Cron != DefaultRefreshCron {
		t.Errorf("Cron = %q", cfg.Refresh.Cron)
	}
}

func TestLoadFromYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	content := `
base_url: https://crm.example.com/
api_key: file-key
timeout_seconds: 10
metadata_path: /srv/twenty/metadata.json
log_level: debug
refresh:
  enabled: true
  cron: "@every 1m"
`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.BaseURL != "https://crm.example.com" {
		t.Errorf("trailing slash not trimmed: %q", cfg.BaseURL)
	}
	if cfg.APIKey != "file-key" {
		t.Errorf("APIKey = %q", cfg.APIKey)
	}
	if cfg.TimeoutSecs != 10 {
		t.Errorf("TimeoutSecs = %d", cfg.TimeoutSecs)
	}
	if !cfg.RefreshEnabled() {
		t.Error("refresh should be enabled")
	}
	if cfg.Refresh.Cron != "@every 1m" {
		t.Errorf("Cron = %q", cfg.Refresh.Cron)
	}
}

func TestEnvOverridesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte("api_key: file-key\nbase_url: http://file\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	t.Setenv("TWENTY_API_KEY", "env-key")
	t.Setenv("TWENTY_BASE_URL", "http://env")

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.APIKey != "env-key" {
		t.Errorf("APIKey = %q, env must win", cfg.APIKey)
	}
	if cfg.BaseURL != "http://env" {
		t.Errorf("BaseURL = %q, env must win", cfg.BaseURL)
	}
}

func TestLoadRejectsMalformedYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte("base_url: [unclosed"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := Load(path); err == nil {
		t.Fatal("expected parse error")
	}
}

func TestValidateRequiresAPIKey(t *testing.T) {
	cfg := (&Config{}).WithDefaults()
	if err := cfg.Validate(); err == nil {
		t.Fatal("expected error for missing api key")
	}
	cfg.APIKey = "k"
	if err := cfg.Validate(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}
