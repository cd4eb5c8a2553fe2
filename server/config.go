package main

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"fishy-flock/logging"
	"fishy-flock/sim"

	"gopkg.in/yaml.v3"
)

const (
	// Network configuration
	DefaultAddr          = ":8080"
	DefaultBroadcastRate = 30 // frames per second sent to viewers
	MaxBroadcastRate     = 240
	WriteChannelSize     = 64
	PingInterval         = 2000 // milliseconds
	ReadTimeout          = 60 * time.Second
	WriteTimeout         = 10 * time.Second
	MaxMessageSize       = 512
)

// AppConfig contains every setting of the fishy-flock binary
type AppConfig struct {
	Sim     sim.Config    `json:"sim" yaml:"sim"`
	Server  ServerConfig  `json:"server" yaml:"server"`
	Logging LoggingConfig `json:"logging" yaml:"logging"`
}

// ServerConfig configures the render-sync websocket server
type ServerConfig struct {
	Addr          string `json:"addr" yaml:"addr"`
	BroadcastRate int    `json:"broadcast_rate" yaml:"broadcast_rate"`
}

// LoggingConfig configures operational logging
type LoggingConfig struct {
	// Level is one of debug, info, warn, error.
	Level string `json:"level" yaml:"level"`
	// Format is "text" (default) or "json".
	Format string `json:"format" yaml:"format"`
}

// DefaultConfig returns an AppConfig with the stock settings
func DefaultConfig() *AppConfig {
	return &AppConfig{
		Sim: sim.Default(),
		Server: ServerConfig{
			Addr:          DefaultAddr,
			BroadcastRate: DefaultBroadcastRate,
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "text",
		},
	}
}

// LoadConfig builds the effective configuration.
// Order: defaults -> YAML file at path (if non-empty) -> environment variables.
func LoadConfig(path string) (*AppConfig, error) {
	config := DefaultConfig()
	if path != "" {
		fileConfig, err := LoadConfigFile(path)
		if err != nil {
			return nil, fmt.Errorf("loading config file: %w", err)
		}
		config = fileConfig
	}

	if err := applyEnvOverrides(config); err != nil {
		return nil, err
	}
	return config, nil
}

// LoadConfigFile loads configuration from a specific YAML file on top of
// the defaults
func LoadConfigFile(path string) (*AppConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config file: %w", err)
	}

	config := DefaultConfig()
	if err := yaml.Unmarshal(data, config); err != nil {
		return nil, fmt.Errorf("parsing config file: %w", err)
	}
	return config, nil
}

// Validate checks the simulation parameters and the server settings
func (c *AppConfig) Validate() error {
	if err := c.Sim.Validate(); err != nil {
		return err
	}
	if c.Server.BroadcastRate <= 0 || c.Server.BroadcastRate > MaxBroadcastRate {
		return fmt.Errorf("broadcast_rate must be in [1, %d], got %d", MaxBroadcastRate, c.Server.BroadcastRate)
	}
	if !logging.ValidLevel(c.Logging.Level) {
		return fmt.Errorf("invalid log level: %s (valid: debug, info, warn, error)", c.Logging.Level)
	}
	switch c.Logging.Format {
	case "", "text", "json":
	default:
		return fmt.Errorf("invalid log format: %s (valid: text, json)", c.Logging.Format)
	}
	return nil
}

// applyEnvOverrides applies FLOCK_* environment variables to the config
func applyEnvOverrides(config *AppConfig) error {
	if v := os.Getenv("FLOCK_ADDR"); v != "" {
		config.Server.Addr = v
	}

	if v := os.Getenv("FLOCK_HABITAT"); v != "" {
		config.Sim.Habitat = sim.Habitat(v)
	}

	if v := os.Getenv("FLOCK_SPATIAL_INDEX"); v != "" {
		config.Sim.SpatialIndex = v == "true" || v == "1"
	}

	if v := os.Getenv("FLOCK_SEED"); v != "" {
		seed, err := strconv.ParseUint(v, 0, 64)
		if err != nil {
			return fmt.Errorf("parsing FLOCK_SEED: %w", err)
		}
		config.Sim.Seed = seed
	}

	if v := os.Getenv("FLOCK_FISH"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("parsing FLOCK_FISH: %w", err)
		}
		config.Sim.Fish.Count = n
	}

	if v := os.Getenv("FLOCK_SHARKS"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("parsing FLOCK_SHARKS: %w", err)
		}
		config.Sim.Sharks.Count = n
	}

	if v := os.Getenv("FLOCK_LOG_LEVEL"); v != "" {
		config.Logging.Level = v
	}

	if v := os.Getenv("FLOCK_LOG_FORMAT"); v != "" {
		config.Logging.Format = v
	}
	return nil
}
