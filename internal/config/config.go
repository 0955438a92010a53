// Package config loads the daemon configuration file.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/ppiankov/airwatch/internal/alert"
)

// DefaultNetwork names the fallback network joined during remediation.
type DefaultNetwork struct {
	Name       string `yaml:"name"`
	Credential string `yaml:"credential"`
}

// Config holds the full daemon configuration.
type Config struct {
	AllowlistPath string         `yaml:"allowlist"`
	Default       DefaultNetwork `yaml:"default_network"`
	ObservePeriod time.Duration  `yaml:"observe_period"`
	SendWait      time.Duration  `yaml:"send_wait"`
	ReceiveWait   time.Duration  `yaml:"receive_wait"`
	JoinTimeout   time.Duration  `yaml:"join_timeout"`
	ReportPeriod  time.Duration  `yaml:"report_period"`
	Capacity      int            `yaml:"channel_capacity"`
	LEDPath       string         `yaml:"led"`
	MetricsAddr   string         `yaml:"metrics_addr"`
	Alerts        []alert.Config `yaml:"alerts"`
}

// DefaultConfig returns the built-in configuration.
func DefaultConfig() *Config {
	return &Config{
		ObservePeriod: 2 * time.Second,
		SendWait:      100 * time.Millisecond,
		ReceiveWait:   time.Second,
		JoinTimeout:   10 * time.Second,
		ReportPeriod:  5 * time.Second,
		Capacity:      10,
	}
}

// DefaultPath returns ~/.airwatch/config.yaml, or an empty string if the
// home directory cannot be resolved.
func DefaultPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".airwatch", "config.yaml")
}

// Load reads configuration from a YAML file. Empty path falls back to
// DefaultPath. Missing file returns defaults. Invalid YAML returns an error.
func Load(path string) (*Config, error) {
	if path == "" {
		path = DefaultPath()
		if path == "" {
			return DefaultConfig(), nil
		}
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return DefaultConfig(), nil
		}
		return nil, err
	}

	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse config %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config %s: %w", path, err)
	}
	return cfg, nil
}

// Validate rejects configurations that would break the concurrency
// substrate at startup.
func (c *Config) Validate() error {
	if c.Capacity <= 0 {
		return fmt.Errorf("channel_capacity must be positive, got %d", c.Capacity)
	}
	if c.ObservePeriod <= 0 || c.ReportPeriod <= 0 {
		return fmt.Errorf("periods must be positive")
	}
	if c.SendWait <= 0 || c.ReceiveWait <= 0 || c.JoinTimeout <= 0 {
		return fmt.Errorf("waits must be positive")
	}
	return nil
}

// Write serializes the config to path, creating parent directories.
func (c *Config) Write(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0700); err != nil {
		return fmt.Errorf("create config directory: %w", err)
	}
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshal config: %w", err)
	}
	return os.WriteFile(path, data, 0600)
}
