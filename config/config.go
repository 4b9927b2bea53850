// Package config holds the app configuration consumed by the guardrail
// engine. The engine reads Safety at enforcement time; the live toggle
// command is the only writer (LiveMode / LiveUnlockTTLSeconds), and it
// persists by calling SaveToFile.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// DefaultLiveUnlockTTL is the lifetime of a live-unlock token in seconds
// when the config does not set one.
const DefaultLiveUnlockTTL = 900

// Config is the complete application configuration.
type Config struct {
	Profile   string       `json:"profile" yaml:"profile"`
	LogLevel  string       `json:"log_level" yaml:"log_level"`
	StatePath string       `json:"state_path" yaml:"state_path"`
	Safety    SafetyConfig `json:"safety" yaml:"safety"`
}

// SafetyConfig contains every knob the guardrail engine enforces.
// Nil caps mean "no limit"; empty symbol lists mean "no restriction";
// an empty TradingWindow means "always".
type SafetyConfig struct {
	LiveMode             bool     `json:"live_mode" yaml:"live_mode"`
	LiveUnlockTTLSeconds int      `json:"live_unlock_ttl_seconds" yaml:"live_unlock_ttl_seconds"`
	MaxOrderNotional     *float64 `json:"max_order_notional,omitempty" yaml:"max_order_notional,omitempty"`
	MaxDailyNotional     *float64 `json:"max_daily_notional,omitempty" yaml:"max_daily_notional,omitempty"`
	AllowSymbols         []string `json:"allow_symbols,omitempty" yaml:"allow_symbols,omitempty"`
	BlockSymbols         []string `json:"block_symbols,omitempty" yaml:"block_symbols,omitempty"`
	TradingWindow        string   `json:"trading_window,omitempty" yaml:"trading_window,omitempty"`
}

// LoadFromFile loads configuration from a file (YAML or JSON based on
// content; YAML is tried first). A missing file yields Default().
func LoadFromFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return Default(), nil
		}
		return nil, fmt.Errorf("read config file: %w", err)
	}

	cfg := Default()

	// Try YAML first, fall back to JSON
	err = yaml.Unmarshal(data, cfg)
	if err != nil {
		err = json.Unmarshal(data, cfg)
		if err != nil {
			return nil, fmt.Errorf("parse config (tried YAML and JSON): %w", err)
		}
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return cfg, nil
}

// SaveToFile saves configuration to a file (JSON or YAML based on
// extension), creating parent directories as needed.
func (c *Config) SaveToFile(path string) error {
	var data []byte
	var err error

	if strings.HasSuffix(path, ".yaml") || strings.HasSuffix(path, ".yml") {
		data, err = yaml.Marshal(c)
	} else {
		data, err = json.MarshalIndent(c, "", "  ")
	}
	if err != nil {
		return fmt.Errorf("marshal config: %w", err)
	}

	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create config dir: %w", err)
		}
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write config file: %w", err)
	}

	return nil
}

// Validate checks if the configuration is valid.
func (c *Config) Validate() error {
	if c.StatePath == "" {
		return fmt.Errorf("state_path is required")
	}
	if c.Safety.LiveUnlockTTLSeconds < 1 {
		return fmt.Errorf("safety.live_unlock_ttl_seconds must be at least 1")
	}
	if c.Safety.MaxOrderNotional != nil && *c.Safety.MaxOrderNotional < 0 {
		return fmt.Errorf("safety.max_order_notional must not be negative")
	}
	if c.Safety.MaxDailyNotional != nil && *c.Safety.MaxDailyNotional < 0 {
		return fmt.Errorf("safety.max_daily_notional must not be negative")
	}
	return nil
}

// Default returns a configuration with sensible defaults: live mode off,
// no caps, no symbol restrictions, no trading window.
func Default() *Config {
	return &Config{
		Profile:   "default",
		LogLevel:  "info",
		StatePath: "./ordergate.db",
		Safety: SafetyConfig{
			LiveMode:             false,
			LiveUnlockTTLSeconds: DefaultLiveUnlockTTL,
		},
	}
}
