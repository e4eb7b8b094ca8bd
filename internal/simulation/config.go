package simulation

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/nvandessel/cellwalk/internal/constants"
	"github.com/nvandessel/cellwalk/internal/particle"
)

// Config defines a single simulation run.
type Config struct {
	Cells     int     // N, number of cells
	Particles int     // K, number of particles, all starting in cell 0
	P         float64 // draws at or below P move left, above P move right

	Policy           constants.PolicyKind // "" = mutex
	TickPeriod       time.Duration        // 0 = constants.DefaultTickPeriod
	SnapshotInterval time.Duration        // 0 = constants.DefaultSnapshotInterval
	Snapshots        int                  // 0 = constants.DefaultSnapshotCount

	// Logger receives operational logs. Nil discards them.
	Logger *slog.Logger

	// NewSource, when non-nil, supplies the random source of each particle.
	// It must return a distinct Source per call.
	NewSource func(particle int) particle.Source
}

// withDefaults fills zero-valued optional fields.
func (c Config) withDefaults() Config {
	if c.Policy == "" {
		c.Policy = constants.PolicyMutex
	}
	if c.TickPeriod == 0 {
		c.TickPeriod = constants.DefaultTickPeriod
	}
	if c.SnapshotInterval == 0 {
		c.SnapshotInterval = constants.DefaultSnapshotInterval
	}
	if c.Snapshots == 0 {
		c.Snapshots = constants.DefaultSnapshotCount
	}
	if c.NewSource == nil {
		c.NewSource = func(int) particle.Source { return particle.NewSource() }
	}
	return c
}

// Validate checks that the configuration describes a runnable simulation.
// Zero-valued optional fields are accepted and replaced by defaults.
func (c Config) Validate() error {
	if c.Cells <= 0 {
		return fmt.Errorf("cell count must be positive, got %d", c.Cells)
	}
	if c.Particles <= 0 {
		return fmt.Errorf("particle count must be positive, got %d", c.Particles)
	}
	if !(c.P >= 0 && c.P <= 1) {
		return fmt.Errorf("p must be between 0 and 1, got %v", c.P)
	}
	if c.Policy != "" && !c.Policy.Valid() {
		return fmt.Errorf("invalid policy: %s (valid: mutex, unguarded)", c.Policy)
	}
	if c.TickPeriod < 0 {
		return fmt.Errorf("tick period must be non-negative, got %v", c.TickPeriod)
	}
	if c.SnapshotInterval < 0 {
		return fmt.Errorf("snapshot interval must be non-negative, got %v", c.SnapshotInterval)
	}
	if c.Snapshots < 0 {
		return fmt.Errorf("snapshot count must be non-negative, got %d", c.Snapshots)
	}
	return nil
}

// RunInfo describes a run as it starts.
type RunInfo struct {
	Cells            int                  `json:"cells"`
	Particles        int                  `json:"particles"`
	P                float64              `json:"p"`
	Policy           constants.PolicyKind `json:"policy"`
	TickPeriod       time.Duration        `json:"tick_period"`
	SnapshotInterval time.Duration        `json:"snapshot_interval"`
	Snapshots        int                  `json:"snapshots"`
}

// Duration is the planned length of the run.
func (i RunInfo) Duration() time.Duration {
	return i.SnapshotInterval * time.Duration(i.Snapshots)
}

// Result is the outcome of a finished run.
type Result struct {
	Policy         constants.PolicyKind `json:"policy"`
	Initial        int                  `json:"initial"`
	Final          int                  `json:"final"`
	Conserved      bool                 `json:"conserved"`
	Cells          []int                `json:"cells"`
	Steps          int                  `json:"steps"`
	WorkerFailures int                  `json:"worker_failures"`
	Interrupted    bool                 `json:"interrupted"`
}
