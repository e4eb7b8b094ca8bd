// Package ratelimit provides per-tool token bucket rate limiting for MCP tools.
package ratelimit

import (
	"fmt"
	"time"

	"golang.org/x/time/rate"
)

// Tool names served by the MCP server.
const (
	ToolSimulate = "cellwalk_simulate"
	ToolValidate = "cellwalk_validate"
)

// ToolLimiters maps tool names to their rate limiters.
// The map is not modified after construction, and rate.Limiter is safe for
// concurrent use.
type ToolLimiters map[string]*rate.Limiter

// NewToolLimiters creates the default set of per-tool rate limiters.
// A simulate call can hold thousands of goroutines for minutes, so it is
// throttled much harder than validate.
func NewToolLimiters() ToolLimiters {
	return ToolLimiters{
		ToolSimulate: rate.NewLimiter(rate.Every(10*time.Second), 2), // 6/minute, burst 2
		ToolValidate: rate.NewLimiter(rate.Limit(1), 10),             // 60/minute, burst 10
	}
}

// CheckLimit checks the rate limit for a given tool name.
// Returns nil if allowed, or an error if rate limited.
// Tools without a configured limiter are always allowed.
func CheckLimit(limiters ToolLimiters, toolName string) error {
	return checkLimitAt(limiters, toolName, time.Now())
}

func checkLimitAt(limiters ToolLimiters, toolName string, now time.Time) error {
	limiter, ok := limiters[toolName]
	if !ok {
		return nil
	}

	if !limiter.AllowN(now, 1) {
		return fmt.Errorf("rate limit exceeded for %s, please try again shortly", toolName)
	}

	return nil
}
