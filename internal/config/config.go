// Package config provides unified configuration loading for cellwalk.
// It supports loading from YAML files and environment variables.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/nvandessel/cellwalk/internal/constants"
	"github.com/nvandessel/cellwalk/internal/logging"
	"gopkg.in/yaml.v3"
)

// CellwalkConfig contains all cellwalk configuration settings.
type CellwalkConfig struct {
	// Simulation contains the run settings that are not positional arguments.
	Simulation SimulationConfig `json:"simulation" yaml:"simulation"`

	// Logging contains settings for operational logging.
	Logging LoggingConfig `json:"logging" yaml:"logging"`
}

// SimulationConfig configures how a run is executed.
type SimulationConfig struct {
	// Policy selects grid synchronization: "mutex" (default) or "unguarded".
	Policy constants.PolicyKind `json:"policy" yaml:"policy"`

	// TickPeriod is how long each particle sleeps between moves.
	TickPeriod time.Duration `json:"tick_period" yaml:"tick_period"`

	// SnapshotInterval is the pause between two snapshots.
	SnapshotInterval time.Duration `json:"snapshot_interval" yaml:"snapshot_interval"`

	// Snapshots is how many snapshots are taken before the run stops.
	Snapshots int `json:"snapshots" yaml:"snapshots"`
}

// LoggingConfig configures cellwalk's logging behavior.
type LoggingConfig struct {
	// Level sets the log verbosity: "info" (default), "debug", or "trace".
	// "trace" logs every particle move.
	Level string `json:"level" yaml:"level"`
}

// Default returns a CellwalkConfig with sensible defaults.
func Default() *CellwalkConfig {
	return &CellwalkConfig{
		Simulation: SimulationConfig{
			Policy:           constants.PolicyMutex,
			TickPeriod:       constants.DefaultTickPeriod,
			SnapshotInterval: constants.DefaultSnapshotInterval,
			Snapshots:        constants.DefaultSnapshotCount,
		},
		Logging: LoggingConfig{
			Level: "info",
		},
	}
}

// DefaultPath returns the location of the user config file.
func DefaultPath() (string, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("locating home directory: %w", err)
	}
	return filepath.Join(homeDir, ".cellwalk", "config.yaml"), nil
}

// Load loads configuration from the default locations and environment variables.
// Order: defaults -> ~/.cellwalk/config.yaml -> environment variables
func Load() (*CellwalkConfig, error) {
	config := Default()

	// Try to load from default config file
	if configPath, err := DefaultPath(); err == nil {
		if _, statErr := os.Stat(configPath); statErr == nil {
			fileConfig, loadErr := LoadFromFile(configPath)
			if loadErr != nil {
				return nil, fmt.Errorf("loading config file: %w", loadErr)
			}
			config = fileConfig
		}
	}

	// Apply environment variable overrides
	applyEnvOverrides(config)

	return config, nil
}

// LoadFromFile loads configuration from a specific YAML file.
func LoadFromFile(path string) (*CellwalkConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config file: %w", err)
	}

	config := Default()
	if err := yaml.Unmarshal(data, config); err != nil {
		return nil, fmt.Errorf("parsing config file: %w", err)
	}

	return config, nil
}

// Validate checks that the configuration is valid.
func (c *CellwalkConfig) Validate() error {
	s := c.Simulation
	if !s.Policy.Valid() {
		return &ConfigurationError{Field: "policy", Value: s.Policy.String(), Reason: "valid: mutex, unguarded"}
	}
	if s.TickPeriod <= 0 {
		return &ConfigurationError{Field: "tick_period", Value: s.TickPeriod.String(), Reason: "must be positive"}
	}
	if s.SnapshotInterval <= 0 {
		return &ConfigurationError{Field: "snapshot_interval", Value: s.SnapshotInterval.String(), Reason: "must be positive"}
	}
	if s.Snapshots <= 0 {
		return &ConfigurationError{Field: "snapshots", Value: strconv.Itoa(s.Snapshots), Reason: "must be positive"}
	}

	if !logging.ValidLevel(c.Logging.Level) {
		return &ConfigurationError{Field: "log level", Value: c.Logging.Level, Reason: "valid: info, debug, trace, or empty for default"}
	}

	return nil
}

// applyEnvOverrides applies environment variable overrides to the config.
// Unparsable values are ignored.
func applyEnvOverrides(config *CellwalkConfig) {
	if v := os.Getenv("CELLWALK_POLICY"); v != "" {
		config.Simulation.Policy = constants.ParsePolicyKind(v)
	}

	if v := os.Getenv("CELLWALK_TICK"); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			config.Simulation.TickPeriod = d
		}
	}

	if v := os.Getenv("CELLWALK_INTERVAL"); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			config.Simulation.SnapshotInterval = d
		}
	}

	if v := os.Getenv("CELLWALK_SNAPSHOTS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			config.Simulation.Snapshots = n
		}
	}

	if v := os.Getenv("CELLWALK_LOG_LEVEL"); v != "" {
		config.Logging.Level = v
	}
}
