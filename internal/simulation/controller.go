package simulation

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"sync/atomic"
	"time"

	"github.com/nvandessel/cellwalk/internal/grid"
	"github.com/nvandessel/cellwalk/internal/logging"
	"github.com/nvandessel/cellwalk/internal/particle"
)

// Controller owns the grid and the particle workers of one run.
type Controller struct {
	cfg     Config
	grid    *grid.Grid
	logger  *slog.Logger
	started atomic.Bool
}

// NewController validates cfg and builds the grid with every particle in
// cell 0. No worker is started until Run.
func NewController(cfg Config) (*Controller, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid simulation config: %w", err)
	}
	cfg = cfg.withDefaults()

	policy, err := grid.NewPolicy(cfg.Policy)
	if err != nil {
		return nil, err
	}
	g, err := grid.New(cfg.Cells, cfg.Particles, policy)
	if err != nil {
		return nil, fmt.Errorf("failed to create grid: %w", err)
	}

	logger := cfg.Logger
	if logger == nil {
		logger = logging.Discard()
	}

	return &Controller{cfg: cfg, grid: g, logger: logger}, nil
}

// Info returns the effective settings of the run.
func (c *Controller) Info() RunInfo {
	return RunInfo{
		Cells:            c.cfg.Cells,
		Particles:        c.cfg.Particles,
		P:                c.cfg.P,
		Policy:           c.cfg.Policy,
		TickPeriod:       c.cfg.TickPeriod,
		SnapshotInterval: c.cfg.SnapshotInterval,
		Snapshots:        c.cfg.Snapshots,
	}
}

// Run spawns the workers, emits one snapshot per SnapshotInterval until
// Snapshots have been taken, stops and joins the workers, and verifies the
// particle total. Cancelling ctx ends the snapshot loop early; the workers
// are still joined and the result is still reported.
//
// A worker that fails is logged and counted in Result.WorkerFailures; it
// does not stop the run. A Controller can be run only once.
func (c *Controller) Run(ctx context.Context, obs Observer) (Result, error) {
	if !c.started.CompareAndSwap(false, true) {
		return Result{}, errors.New("simulation already started")
	}
	if obs == nil {
		obs = NopObserver{}
	}

	info := c.Info()
	obs.Started(info)
	c.logger.Debug("simulation starting",
		"cells", info.Cells, "particles", info.Particles, "p", info.P,
		"policy", info.Policy, "tick", info.TickPeriod, "duration", info.Duration())

	// Cancelling workCtx is the stop signal observed by every worker.
	workCtx, stop := context.WithCancel(ctx)
	defer stop()

	wcfg := particle.Config{
		Cells:      c.cfg.Cells,
		P:          c.cfg.P,
		TickPeriod: c.cfg.TickPeriod,
	}
	errs := make([]error, c.cfg.Particles)
	var wg sync.WaitGroup
	for i := 0; i < c.cfg.Particles; i++ {
		w := particle.NewWorker(i, wcfg, c.grid, c.cfg.NewSource(i), c.logger)
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			errs[i] = w.Run(workCtx)
		}(i)
	}

	steps, interrupted := c.snapshotLoop(ctx, obs)

	stop()
	wg.Wait()

	failures := 0
	for _, err := range errs {
		if err != nil {
			failures++
			c.logger.Warn("particle worker failed", "error", err)
		}
	}

	cells := c.grid.Snapshot()
	final := c.grid.Total()
	res := Result{
		Policy:         c.cfg.Policy,
		Initial:        c.cfg.Particles,
		Final:          final,
		Conserved:      final == c.cfg.Particles,
		Cells:          cells,
		Steps:          steps,
		WorkerFailures: failures,
		Interrupted:    interrupted,
	}
	c.logger.Debug("simulation finished",
		"steps", steps, "final", final, "conserved", res.Conserved,
		"worker_failures", failures, "interrupted", interrupted)

	obs.Completed(res)
	return res, nil
}

// snapshotLoop emits up to cfg.Snapshots snapshots and returns how many were
// taken and whether ctx ended the loop early.
func (c *Controller) snapshotLoop(ctx context.Context, obs Observer) (int, bool) {
	ticker := time.NewTicker(c.cfg.SnapshotInterval)
	defer ticker.Stop()

	steps := 0
	for step := 1; step <= c.cfg.Snapshots; step++ {
		if ctx.Err() != nil {
			return steps, true
		}
		select {
		case <-ctx.Done():
			return steps, true
		case <-ticker.C:
		}
		obs.Snapshot(step, c.grid.Snapshot())
		steps = step
	}
	return steps, false
}
