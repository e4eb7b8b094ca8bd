package mcp

import (
	"context"
	"strings"
	"testing"
	"time"

	sdk "github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/nvandessel/cellwalk/internal/config"
	"github.com/nvandessel/cellwalk/internal/ratelimit"
)

func setupTestServer(t *testing.T) *Server {
	t.Helper()
	defaults := config.Default().Simulation
	defaults.TickPeriod = time.Millisecond
	defaults.SnapshotInterval = 2 * time.Millisecond
	defaults.Snapshots = 10

	server, err := NewServer(&Config{
		Name:       "test-server",
		Version:    "v1.0.0",
		Simulation: defaults,
	})
	if err != nil {
		t.Fatalf("NewServer failed: %v", err)
	}
	return server
}

func TestHandleSimulate_Mutex(t *testing.T) {
	server := setupTestServer(t)
	ctx := context.Background()

	req := &sdk.CallToolRequest{}
	_, out, err := server.handleSimulate(ctx, req, SimulateInput{
		Cells:     3,
		Particles: 10,
		P:         0.5,
	})
	if err != nil {
		t.Fatalf("handleSimulate failed: %v", err)
	}

	if out.Policy != "mutex" {
		t.Errorf("Policy = %q, want mutex", out.Policy)
	}
	if !out.Conserved || out.Final != 10 || out.Initial != 10 {
		t.Errorf("got initial=%d final=%d conserved=%v, want 10/10/true", out.Initial, out.Final, out.Conserved)
	}
	if out.Steps != 10 || len(out.Snapshots) != 10 {
		t.Errorf("got steps=%d snapshots=%d, want 10", out.Steps, len(out.Snapshots))
	}
	for i, snap := range out.Snapshots {
		sum := 0
		for _, c := range snap {
			sum += c
		}
		if len(snap) != 3 || sum != 10 {
			t.Errorf("snapshot %d = %v, want 3 cells summing to 10", i+1, snap)
		}
	}
	if !strings.Contains(out.Verdict, "unchanged") {
		t.Errorf("Verdict = %q, want unchanged verdict", out.Verdict)
	}
}

func TestHandleSimulate_ExplicitTiming(t *testing.T) {
	server := setupTestServer(t)

	req := &sdk.CallToolRequest{}
	_, out, err := server.handleSimulate(context.Background(), req, SimulateInput{
		Cells:              2,
		Particles:          4,
		P:                  0.3,
		Policy:             "mutex",
		Snapshots:          3,
		SnapshotIntervalMs: 1,
		TickMs:             1,
	})
	if err != nil {
		t.Fatalf("handleSimulate failed: %v", err)
	}
	if out.Steps != 3 {
		t.Errorf("Steps = %d, want 3", out.Steps)
	}
	if len(out.FinalCells) != 2 {
		t.Errorf("FinalCells = %v, want 2 cells", out.FinalCells)
	}
}

func TestHandleSimulate_InvalidInput(t *testing.T) {
	tests := []struct {
		name string
		in   SimulateInput
	}{
		{"zero cells", SimulateInput{Cells: 0, Particles: 1, P: 0.5}},
		{"zero particles", SimulateInput{Cells: 3, Particles: 0, P: 0.5}},
		{"p out of range", SimulateInput{Cells: 3, Particles: 1, P: 2}},
		{"unknown policy", SimulateInput{Cells: 3, Particles: 1, P: 0.5, Policy: "rwlock"}},
		{"too many particles", SimulateInput{Cells: 3, Particles: 1_000_000, P: 0.5}},
		{"too many cells", SimulateInput{Cells: 1_000_000, Particles: 1, P: 0.5}},
		{"too many snapshots", SimulateInput{Cells: 3, Particles: 1, P: 0.5, Snapshots: 100000}},
		{"run too long", SimulateInput{Cells: 3, Particles: 1, P: 0.5, Snapshots: 300, SnapshotIntervalMs: 1000}},
		{"negative tick", SimulateInput{Cells: 3, Particles: 1, P: 0.5, TickMs: -1}},
		{"interval overflows run length", SimulateInput{Cells: 3, Particles: 10, P: 0.5, Snapshots: 4, SnapshotIntervalMs: 4611686018427}},
		{"interval above run limit", SimulateInput{Cells: 3, Particles: 1, P: 0.5, Snapshots: 1, SnapshotIntervalMs: 120001}},
		{"tick above run limit", SimulateInput{Cells: 3, Particles: 1, P: 0.5, TickMs: 120001}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server := setupTestServer(t)
			req := &sdk.CallToolRequest{}
			if _, _, err := server.handleSimulate(context.Background(), req, tt.in); err == nil {
				t.Errorf("handleSimulate(%+v) expected error", tt.in)
			}
		})
	}
}

func TestHandleSimulate_RateLimited(t *testing.T) {
	server := setupTestServer(t)
	in := SimulateInput{Cells: 2, Particles: 2, P: 0.5, Snapshots: 1, SnapshotIntervalMs: 1}

	var lastErr error
	for i := 0; i < 5; i++ {
		req := &sdk.CallToolRequest{}
		if _, _, err := server.handleSimulate(context.Background(), req, in); err != nil {
			lastErr = err
			break
		}
	}
	if lastErr == nil || !strings.Contains(lastErr.Error(), "rate limit") {
		t.Errorf("expected rate limit error, got %v", lastErr)
	}
}

func TestHandleValidate(t *testing.T) {
	server := setupTestServer(t)

	req := &sdk.CallToolRequest{}
	_, out, err := server.handleValidate(context.Background(), req, ValidateInput{Cells: 3, Particles: 10, P: 0.5, Policy: "unguarded"})
	if err != nil {
		t.Fatalf("handleValidate failed: %v", err)
	}
	if !out.Valid {
		t.Errorf("expected valid, got error %q", out.Error)
	}

	_, out, err = server.handleValidate(context.Background(), req, ValidateInput{Cells: 3, Particles: 10, P: -1})
	if err != nil {
		t.Fatalf("handleValidate failed: %v", err)
	}
	if out.Valid || out.Error == "" {
		t.Errorf("expected invalid with error, got %+v", out)
	}
}

func TestToolNamesRegistered(t *testing.T) {
	limiters := ratelimit.NewToolLimiters()
	for _, tool := range []string{ratelimit.ToolSimulate, ratelimit.ToolValidate} {
		if _, ok := limiters[tool]; !ok {
			t.Errorf("tool %s has no rate limiter", tool)
		}
	}
}

func TestSimulationConfig_RunLengthLimit(t *testing.T) {
	server := setupTestServer(t)

	cfg, err := server.simulationConfig(SimulateInput{Cells: 3, Particles: 1, P: 0.5, Snapshots: 120, SnapshotIntervalMs: 1000})
	if err != nil {
		t.Fatalf("run at the limit rejected: %v", err)
	}
	if got := cfg.SnapshotInterval * time.Duration(cfg.Snapshots); got != 2*time.Minute {
		t.Errorf("planned run = %v, want 2m", got)
	}

	if _, err := server.simulationConfig(SimulateInput{Cells: 3, Particles: 1, P: 0.5, Snapshots: 4, SnapshotIntervalMs: 4611686018427}); err == nil {
		t.Error("expected error for an interval whose run length overflows")
	}
}
