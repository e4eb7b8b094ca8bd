package simulation_test

import (
	"context"
	"testing"
	"time"

	"github.com/nvandessel/cellwalk/internal/simulation"
)

// fastConfig shrinks the timing of a run so a full set of snapshots takes
// milliseconds instead of a minute.
func fastConfig(cells, particles int, p float64) simulation.Config {
	return simulation.Config{
		Cells:            cells,
		Particles:        particles,
		P:                p,
		TickPeriod:       200 * time.Microsecond,
		SnapshotInterval: 2 * time.Millisecond,
		Snapshots:        30,
	}
}

// runRecorded runs cfg to completion and returns the recorded events.
func runRecorded(t *testing.T, cfg simulation.Config) (*simulation.Recorder, simulation.Result) {
	t.Helper()
	c, err := simulation.NewController(cfg)
	if err != nil {
		t.Fatalf("NewController failed: %v", err)
	}
	rec := &simulation.Recorder{}
	res, err := c.Run(context.Background(), rec)
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}
	return rec, res
}

// assertConserved checks the final verdict of a run.
func assertConserved(t *testing.T, res simulation.Result, k int) {
	t.Helper()
	if res.Initial != k {
		t.Errorf("Initial = %d, want %d", res.Initial, k)
	}
	if res.Final != k || !res.Conserved {
		t.Errorf("Final = %d (conserved=%v), want %d conserved", res.Final, res.Conserved, k)
	}
}

// assertSnapshotsBounded checks that every snapshot sums to k and that no
// cell is negative or above k.
func assertSnapshotsBounded(t *testing.T, snapshots [][]int, n, k int) {
	t.Helper()
	for i, snap := range snapshots {
		if len(snap) != n {
			t.Errorf("snapshot %d has %d cells, want %d", i+1, len(snap), n)
			continue
		}
		sum := 0
		for j, c := range snap {
			if c < 0 || c > k {
				t.Errorf("snapshot %d: cell %d = %d, want within [0, %d]", i+1, j, c, k)
			}
			sum += c
		}
		if sum != k {
			t.Errorf("snapshot %d sums to %d, want %d: %v", i+1, sum, k, snap)
		}
	}
}
