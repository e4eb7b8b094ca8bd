// Package particle implements the per-particle worker loop of the random
// walk. Each worker owns its position and random source; the only shared
// state it touches is the grid, through Mover.
package particle

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math/rand/v2"
	"time"

	"github.com/nvandessel/cellwalk/internal/logging"
)

// ErrWorkerPanic marks an error produced by a worker that panicked.
var ErrWorkerPanic = errors.New("particle worker panicked")

// Mover is the part of the grid a worker is allowed to use.
type Mover interface {
	Move(from, to int)
}

// Source produces uniform draws in [0, 1).
type Source interface {
	Float64() float64
}

// NewSource returns an independent generator seeded from process entropy.
// Workers must not share a Source.
func NewSource() Source {
	return rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
}

// NextCell returns the cell a particle at cur moves to for draw m.
// A draw above p moves right, otherwise left, so a larger p biases the walk
// leftward. A candidate outside [0, n) leaves the particle where it is.
func NextCell(cur, n int, m, p float64) int {
	next := cur - 1
	if m > p {
		next = cur + 1
	}
	if next < 0 || next >= n {
		return cur
	}
	return next
}

// Config holds the settings shared by every worker of a run.
type Config struct {
	Cells      int
	P          float64
	TickPeriod time.Duration
}

// Worker moves one particle along the grid once per tick.
type Worker struct {
	id     int
	cfg    Config
	grid   Mover
	src    Source
	cell   int
	logger *slog.Logger
}

// NewWorker creates a worker for particle id starting in cell 0.
// A nil logger discards output.
func NewWorker(id int, cfg Config, grid Mover, src Source, logger *slog.Logger) *Worker {
	if logger == nil {
		logger = logging.Discard()
	}
	return &Worker{
		id:     id,
		cfg:    cfg,
		grid:   grid,
		src:    src,
		logger: logger,
	}
}

// Cell returns the worker's own view of its position. It is not
// synchronized; call it only when Run is not executing.
func (w *Worker) Cell() int {
	return w.cell
}

// Run moves the particle every tick until ctx is done. A panic during a
// step is recovered and returned wrapped in ErrWorkerPanic.
func (w *Worker) Run(ctx context.Context) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("%w: particle %d: %v", ErrWorkerPanic, w.id, r)
		}
	}()

	timer := time.NewTimer(w.cfg.TickPeriod)
	defer timer.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil
		case <-timer.C:
		}

		w.Step()

		if ctx.Err() != nil {
			return nil
		}
		timer.Reset(w.cfg.TickPeriod)
	}
}

// Step performs a single move decision. The private position follows the
// candidate even when the grid ignored the move.
func (w *Worker) Step() {
	m := w.src.Float64()
	next := NextCell(w.cell, w.cfg.Cells, m, w.cfg.P)
	w.grid.Move(w.cell, next)

	if w.logger.Enabled(context.Background(), logging.LevelTrace) {
		w.logger.Log(context.Background(), logging.LevelTrace, "particle moved",
			"particle", w.id, "from", w.cell, "to", next, "draw", m)
	}
	w.cell = next
}
