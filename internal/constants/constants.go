// Package constants provides named constants used throughout the cellwalk codebase.
// This centralizes magic numbers for better maintainability and documentation.
package constants

import "time"

// Simulation timing constants
const (
	// DefaultTickPeriod is how long each particle sleeps between moves.
	DefaultTickPeriod = 100 * time.Millisecond

	// DefaultSnapshotInterval is the pause between two snapshots of the grid.
	DefaultSnapshotInterval = time.Second

	// DefaultSnapshotCount is the number of snapshots taken before the run
	// stops. With the default interval this is one minute of simulated time.
	DefaultSnapshotCount = 60
)

// MaxParticles caps K on the command line. Each particle is a goroutine.
const MaxParticles = 100000

// MCP tool limits keep a single tool call from tying up the server.
const (
	// MaxMCPParticles caps the number of particle goroutines per tool call.
	MaxMCPParticles = 10000

	// MaxMCPCells caps the grid length per tool call.
	MaxMCPCells = 1000

	// MaxMCPSnapshots caps the number of snapshots returned per tool call.
	MaxMCPSnapshots = 600

	// MaxMCPRunDuration caps SnapshotInterval * Snapshots per tool call.
	MaxMCPRunDuration = 2 * time.Minute

	// MinMCPTickPeriod is the smallest tick accepted from a tool call.
	MinMCPTickPeriod = time.Millisecond
)
