package mcp

import (
	"context"
	"errors"
	"fmt"
	"time"

	sdk "github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/nvandessel/cellwalk/internal/constants"
	"github.com/nvandessel/cellwalk/internal/ratelimit"
	"github.com/nvandessel/cellwalk/internal/report"
	"github.com/nvandessel/cellwalk/internal/simulation"
)

// registerTools registers all cellwalk tools with the MCP server.
func (s *Server) registerTools() error {
	sdk.AddTool(s.server, &sdk.Tool{
		Name:        ratelimit.ToolSimulate,
		Description: "Run a concurrent particle random walk over a line of cells and report snapshots and whether the particle total was conserved",
	}, s.handleSimulate)

	sdk.AddTool(s.server, &sdk.Tool{
		Name:        ratelimit.ToolValidate,
		Description: "Check simulation parameters without running anything",
	}, s.handleValidate)

	return nil
}

// handleSimulate implements the cellwalk_simulate tool.
func (s *Server) handleSimulate(ctx context.Context, req *sdk.CallToolRequest, args SimulateInput) (_ *sdk.CallToolResult, _ SimulateOutput, retErr error) {
	start := time.Now()
	defer func() { s.auditTool(ratelimit.ToolSimulate, start, retErr) }()

	if err := ratelimit.CheckLimit(s.limiters, ratelimit.ToolSimulate); err != nil {
		return nil, SimulateOutput{}, err
	}

	cfg, err := s.simulationConfig(args)
	if err != nil {
		return nil, SimulateOutput{}, err
	}
	cfg.Logger = s.logger

	controller, err := simulation.NewController(cfg)
	if err != nil {
		return nil, SimulateOutput{}, err
	}

	rec := &simulation.Recorder{}
	res, err := controller.Run(ctx, rec)
	if err != nil {
		return nil, SimulateOutput{}, fmt.Errorf("simulation failed: %w", err)
	}

	snapshots := rec.Snapshots
	if snapshots == nil {
		snapshots = [][]int{}
	}
	return nil, SimulateOutput{
		Policy:         res.Policy.String(),
		Initial:        res.Initial,
		Final:          res.Final,
		Conserved:      res.Conserved,
		Verdict:        report.Verdict(res),
		Steps:          res.Steps,
		WorkerFailures: res.WorkerFailures,
		Interrupted:    res.Interrupted,
		Snapshots:      snapshots,
		FinalCells:     res.Cells,
	}, nil
}

// handleValidate implements the cellwalk_validate tool.
func (s *Server) handleValidate(ctx context.Context, req *sdk.CallToolRequest, args ValidateInput) (_ *sdk.CallToolResult, _ ValidateOutput, retErr error) {
	start := time.Now()
	defer func() { s.auditTool(ratelimit.ToolValidate, start, retErr) }()

	if err := ratelimit.CheckLimit(s.limiters, ratelimit.ToolValidate); err != nil {
		return nil, ValidateOutput{}, err
	}

	_, err := s.simulationConfig(SimulateInput{
		Cells:     args.Cells,
		Particles: args.Particles,
		P:         args.P,
		Policy:    args.Policy,
	})
	if err != nil {
		return nil, ValidateOutput{Valid: false, Error: err.Error()}, nil
	}
	return nil, ValidateOutput{Valid: true}, nil
}

// simulationConfig turns tool arguments into a run configuration, filling
// omitted fields from the server defaults and enforcing per-call limits.
func (s *Server) simulationConfig(args SimulateInput) (simulation.Config, error) {
	if args.Snapshots < 0 || args.SnapshotIntervalMs < 0 || args.TickMs < 0 {
		return simulation.Config{}, errors.New("snapshots, snapshot_interval_ms and tick_ms must not be negative")
	}
	maxMs := int(constants.MaxMCPRunDuration / time.Millisecond)
	if args.SnapshotIntervalMs > maxMs {
		return simulation.Config{}, fmt.Errorf("snapshot_interval_ms must be at most %d, got %d", maxMs, args.SnapshotIntervalMs)
	}
	if args.TickMs > maxMs {
		return simulation.Config{}, fmt.Errorf("tick_ms must be at most %d, got %d", maxMs, args.TickMs)
	}

	cfg := simulation.Config{
		Cells:            args.Cells,
		Particles:        args.Particles,
		P:                args.P,
		Policy:           constants.ParsePolicyKind(args.Policy),
		TickPeriod:       time.Duration(args.TickMs) * time.Millisecond,
		SnapshotInterval: time.Duration(args.SnapshotIntervalMs) * time.Millisecond,
		Snapshots:        args.Snapshots,
	}
	if cfg.Policy == "" {
		cfg.Policy = s.defaults.Policy
	}
	if cfg.TickPeriod == 0 {
		cfg.TickPeriod = s.defaults.TickPeriod
	}
	if cfg.SnapshotInterval == 0 {
		cfg.SnapshotInterval = s.defaults.SnapshotInterval
	}
	if cfg.Snapshots == 0 {
		cfg.Snapshots = s.defaults.Snapshots
	}

	if err := cfg.Validate(); err != nil {
		return simulation.Config{}, err
	}

	if cfg.Cells > constants.MaxMCPCells {
		return simulation.Config{}, fmt.Errorf("cells must be at most %d, got %d", constants.MaxMCPCells, cfg.Cells)
	}
	if cfg.Particles > constants.MaxMCPParticles {
		return simulation.Config{}, fmt.Errorf("particles must be at most %d, got %d", constants.MaxMCPParticles, cfg.Particles)
	}
	if cfg.Snapshots > constants.MaxMCPSnapshots {
		return simulation.Config{}, fmt.Errorf("snapshots must be at most %d, got %d", constants.MaxMCPSnapshots, cfg.Snapshots)
	}
	if cfg.TickPeriod != 0 && cfg.TickPeriod < constants.MinMCPTickPeriod {
		return simulation.Config{}, fmt.Errorf("tick must be at least %v, got %v", constants.MinMCPTickPeriod, cfg.TickPeriod)
	}
	// Divide rather than multiply so a huge interval cannot wrap around.
	if cfg.Snapshots > 0 && cfg.SnapshotInterval > constants.MaxMCPRunDuration/time.Duration(cfg.Snapshots) {
		return simulation.Config{}, fmt.Errorf("run of %d snapshots every %v exceeds the %v limit",
			cfg.Snapshots, cfg.SnapshotInterval, constants.MaxMCPRunDuration)
	}

	return cfg, nil
}

// auditTool logs one tool invocation without its arguments.
func (s *Server) auditTool(tool string, start time.Time, err error) {
	status := "success"
	if err != nil {
		status = "error"
	}
	s.logger.Debug("mcp tool call",
		"tool", tool,
		"duration_ms", time.Since(start).Milliseconds(),
		"status", status,
		"error", err)
}
