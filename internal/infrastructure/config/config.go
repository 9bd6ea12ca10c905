// Package config loads the client configuration from YAML.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"
)

const (
	configDir  = ".recheck"
	configFile = "config.yaml"

	envServerURL = "RECHECK_SERVER_URL"
)

// Config holds everything the client reads at startup.
type Config struct {
	ServerURL          string `yaml:"server_url"`
	SourceFilter       string `yaml:"source_filter,omitempty"`
	Operator           string `yaml:"operator,omitempty"`
	RequestTimeoutSecs int    `yaml:"request_timeout_seconds,omitempty"`
	RetryAttempts      int    `yaml:"retry_attempts,omitempty"`
	AuditLogPath       string `yaml:"audit_log,omitempty"`
	LogFile            string `yaml:"log_file,omitempty"`
}

// RequestTimeout returns the per-request deadline.
func (c Config) RequestTimeout() time.Duration {
	return time.Duration(c.RequestTimeoutSecs) * time.Second
}

// Default returns the configuration used when no file exists.
func Default() Config {
	return Config{
		ServerURL:          "http://localhost:8080",
		RequestTimeoutSecs: 15,
		RetryAttempts:      3,
	}
}

// DefaultPath returns ~/.recheck/config.yaml.
func DefaultPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("resolve home directory: %w", err)
	}
	return filepath.Join(home, configDir, configFile), nil
}

// Load reads the configuration file at path. A missing file yields the
// defaults, not an error; the environment overrides the server URL
// either way.
func Load(path string) (Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	switch {
	case os.IsNotExist(err):
		// Fall through to env overrides.
	case err != nil:
		return cfg, fmt.Errorf("read config %s: %w", path, err)
	default:
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return cfg, fmt.Errorf("parse config %s: %w", path, err)
		}
	}

	if url := os.Getenv(envServerURL); url != "" {
		cfg.ServerURL = url
	}
	if cfg.RequestTimeoutSecs <= 0 {
		cfg.RequestTimeoutSecs = Default().RequestTimeoutSecs
	}
	if cfg.RetryAttempts <= 0 {
		cfg.RetryAttempts = Default().RetryAttempts
	}
	return cfg, nil
}

// Save writes the configuration to path, creating the directory.
func Save(path string, cfg Config) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create config directory: %w", err)
	}
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("encode config: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write config %s: %w", path, err)
	}
	return nil
}
