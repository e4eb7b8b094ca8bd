// Package grid holds the shared occupancy counters of a one-dimensional
// line of cells. All access goes through Grid's methods, which run under
// the grid's Policy.
package grid

import (
	"errors"
	"fmt"
)

// ErrCellOutOfRange is returned when a cell index falls outside [0, n).
var ErrCellOutOfRange = errors.New("cell index out of range")

// Grid is a line of n cells, each counting the particles it holds.
type Grid struct {
	cells  []int
	policy Policy

	// afterCheck, when non-nil, runs inside Move between the occupancy
	// check and the update. Tests use it to force interleavings.
	afterCheck func(from, to int)
}

// New creates a grid of n cells with all k particles in cell 0.
func New(n, k int, policy Policy) (*Grid, error) {
	if n <= 0 {
		return nil, fmt.Errorf("cell count must be positive, got %d", n)
	}
	if k < 0 {
		return nil, fmt.Errorf("particle count must be non-negative, got %d", k)
	}
	if policy == nil {
		return nil, errors.New("policy is required")
	}

	cells := make([]int, n)
	cells[0] = k
	return &Grid{cells: cells, policy: policy}, nil
}

// Len returns the number of cells.
func (g *Grid) Len() int {
	return len(g.cells)
}

// Policy returns the policy guarding the grid.
func (g *Grid) Policy() Policy {
	return g.policy
}

// Get returns the occupancy of cell i.
func (g *Grid) Get(i int) (int, error) {
	if i < 0 || i >= len(g.cells) {
		return 0, fmt.Errorf("%w: %d not in [0, %d)", ErrCellOutOfRange, i, len(g.cells))
	}

	var v int
	g.policy.Do(func() {
		v = g.cells[i]
	})
	return v, nil
}

// Move shifts one particle from cell from to cell to. Moving out of an
// empty cell does nothing. Both indices must already be in range.
func (g *Grid) Move(from, to int) {
	g.policy.Do(func() {
		if g.cells[from] <= 0 {
			return
		}
		if g.afterCheck != nil {
			g.afterCheck(from, to)
		}
		g.cells[from]--
		g.cells[to]++
	})
}

// Snapshot returns a copy of every counter.
func (g *Grid) Snapshot() []int {
	out := make([]int, len(g.cells))
	g.policy.Do(func() {
		copy(out, g.cells)
	})
	return out
}

// Total returns the sum of all counters.
func (g *Grid) Total() int {
	total := 0
	g.policy.Do(func() {
		for _, c := range g.cells {
			total += c
		}
	})
	return total
}
