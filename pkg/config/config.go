// Package config loads and defaults the server configuration from a YAML
// file, with environment overrides for credentials and endpoints.
package config

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

const (
	DefaultBaseURL      = "http://localhost:3000"
	DefaultTimeoutSecs  = 30
	DefaultMetadataPath = "schema/metadata.json"
	DefaultLogLevel     = "info"
	DefaultRefreshCron  = "@every 5m"
)

// Config controls the CRM connection, schema sources, and server behavior.
type Config struct {
	BaseURL     string `yaml:"base_url"`
	APIKey      string `yaml:"api_key"`
	TimeoutSecs int    `yaml:"timeout_seconds"`

	MetadataPath   string `yaml:"metadata_path"`
	OperationsPath string `yaml:"operations_path"`

	LogLevel string `yaml:"log_level"`

	Refresh RefreshConfig `yaml:"refresh"`
}

// RefreshConfig controls the optional scheduled registry rebuild. The
// on-demand staleness check runs regardless; the cron schedule only adds a
// proactive rebuild for long-idle servers.
type RefreshConfig struct {
	Enabled *bool  `yaml:"enabled"`
	Cron    string `yaml:"cron"`
}

// Load reads the config file at path, applies environment overrides and
// defaults. A missing file is not an error: the zero config plus overrides
// and defaults is a valid setup.
func Load(path string) (*Config, error) {
	var cfg Config
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			if !os.IsNotExist(err) {
				return nil, fmt.Errorf("read config %s: %w", path, err)
			}
		} else if err := yaml.Unmarshal(data, &cfg); err != nil {
			return nil, fmt.Errorf("parse config %s: %w", path, err)
		}
	}
	cfg.applyEnv()
	return cfg.WithDefaults(), nil
}

func (c *Config) applyEnv() {
	if v := os.Getenv("TWENTY_BASE_URL"); v != "" {
		c.BaseURL = v
	}
	if v := os.Getenv("TWENTY_API_KEY"); v != "" {
		c.APIKey = v
	}
	if v := os.Getenv("TWENTY_METADATA_PATH"); v != "" {
		c.MetadataPath = v
	}
	if v := os.Getenv("TWENTY_OPERATIONS_PATH"); v != "" {
		c.OperationsPath = v
	}
	if v := os.Getenv("TWENTY_LOG_LEVEL"); v != "" {
		c.LogLevel = v
	}
}

func (c *Config) WithDefaults() *Config {
	if c == nil {
		c = &Config{}
	}
	if strings.TrimSpace(c.BaseURL) == "" {
		c.BaseURL = DefaultBaseURL
	}
	c.BaseURL = strings.TrimRight(c.BaseURL, "/")
	if c.TimeoutSecs <= 0 {
		c.TimeoutSecs = DefaultTimeoutSecs
	}
	if c.MetadataPath == "" {
		c.MetadataPath = DefaultMetadataPath
	}
	if c.LogLevel == "" {
		c.LogLevel = DefaultLogLevel
	}
	c.Refresh = c.Refresh.withDefaults()
	return c
}

func (c RefreshConfig) withDefaults() RefreshConfig {
	if c.Cron == "" {
		c.Cron = DefaultRefreshCron
	}
	return c
}

// RefreshEnabled reports whether the scheduled rebuild should run. It is
// off unless explicitly enabled.
func (c *Config) RefreshEnabled() bool {
	return c.Refresh.Enabled != nil && *c.Refresh.Enabled
}

// Validate rejects configurations the server cannot start with.
func (c *Config) Validate() error {
	if c.APIKey == "" {
		return fmt.Errorf("api_key is required (or set TWENTY_API_KEY)")
	}
	return nil
}
