package ratelimit

import (
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"golang.org/x/time/rate"
)

func TestNewToolLimiters(t *testing.T) {
	limiters := NewToolLimiters()

	for _, tool := range []string{ToolSimulate, ToolValidate} {
		if _, ok := limiters[tool]; !ok {
			t.Errorf("missing limiter for %s", tool)
		}
	}
}

func TestToolRateLimits(t *testing.T) {
	tests := []struct {
		name  string
		tool  string
		burst int
	}{
		{"simulate burst", ToolSimulate, 2},
		{"validate burst", ToolValidate, 10},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			limiters := NewToolLimiters()
			now := time.Now()
			for i := 0; i < tt.burst; i++ {
				if err := checkLimitAt(limiters, tt.tool, now); err != nil {
					t.Fatalf("call %d within burst rejected: %v", i+1, err)
				}
			}
			if err := checkLimitAt(limiters, tt.tool, now); err == nil {
				t.Errorf("call %d beyond burst %d was allowed", tt.burst+1, tt.burst)
			}
		})
	}
}

func TestCheckLimit_RefillAfterWait(t *testing.T) {
	limiters := ToolLimiters{"tool": rate.NewLimiter(rate.Every(time.Second), 1)}
	now := time.Now()

	if err := checkLimitAt(limiters, "tool", now); err != nil {
		t.Fatalf("first call rejected: %v", err)
	}
	if err := checkLimitAt(limiters, "tool", now.Add(100*time.Millisecond)); err == nil {
		t.Error("call before refill was allowed")
	}
	if err := checkLimitAt(limiters, "tool", now.Add(1100*time.Millisecond)); err != nil {
		t.Errorf("call after refill rejected: %v", err)
	}
}

func TestCheckLimit_IndependentTools(t *testing.T) {
	limiters := NewToolLimiters()
	now := time.Now()

	for i := 0; i < 3; i++ {
		checkLimitAt(limiters, ToolSimulate, now)
	}
	if err := checkLimitAt(limiters, ToolValidate, now); err != nil {
		t.Errorf("validate limited by simulate usage: %v", err)
	}
}

func TestCheckLimit_UnknownToolAllowed(t *testing.T) {
	limiters := NewToolLimiters()
	for i := 0; i < 100; i++ {
		if err := CheckLimit(limiters, "unknown_tool"); err != nil {
			t.Fatalf("unknown tool limited: %v", err)
		}
	}
}

func TestCheckLimit_ConcurrentAccess(t *testing.T) {
	limiters := ToolLimiters{"tool": rate.NewLimiter(rate.Limit(0), 50)}

	var allowed atomic.Int32
	var wg sync.WaitGroup
	for i := 0; i < 100; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if CheckLimit(limiters, "tool") == nil {
				allowed.Add(1)
			}
		}()
	}
	wg.Wait()

	if got := allowed.Load(); got != 50 {
		t.Errorf("allowed %d calls, want exactly the burst of 50", got)
	}
}
