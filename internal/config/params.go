package config

import (
	"fmt"
	"strconv"

	"github.com/nvandessel/cellwalk/internal/constants"
)

// ConfigurationError reports an invalid command-line argument or setting.
// No simulation state exists when one is returned.
type ConfigurationError struct {
	Field  string
	Value  string
	Reason string
}

func (e *ConfigurationError) Error() string {
	if e.Value == "" {
		return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
	}
	return fmt.Sprintf("invalid %s %q: %s", e.Field, e.Value, e.Reason)
}

// Params are the three positional arguments of a run.
type Params struct {
	Cells     int     // N
	Particles int     // K
	P         float64 // p
}

// ParseParams parses and validates "N K p". A parse failure is reported the
// same way as an out-of-range value.
func ParseParams(args []string) (Params, error) {
	if len(args) != 3 {
		return Params{}, &ConfigurationError{
			Field:  "arguments",
			Reason: fmt.Sprintf("expected 3 (N K p), got %d", len(args)),
		}
	}

	n, err := strconv.Atoi(args[0])
	if err != nil || n <= 0 {
		return Params{}, &ConfigurationError{Field: "N", Value: args[0], Reason: "must be an integer > 0"}
	}

	k, err := strconv.Atoi(args[1])
	if err != nil || k <= 0 {
		return Params{}, &ConfigurationError{Field: "K", Value: args[1], Reason: "must be an integer > 0"}
	}
	if k > constants.MaxParticles {
		return Params{}, &ConfigurationError{Field: "K", Value: args[1], Reason: fmt.Sprintf("must be at most %d", constants.MaxParticles)}
	}

	p, err := strconv.ParseFloat(args[2], 64)
	if err != nil || !(p >= 0 && p <= 1) {
		return Params{}, &ConfigurationError{Field: "p", Value: args[2], Reason: "must be a number with 0 <= p <= 1"}
	}

	return Params{Cells: n, Particles: k, P: p}, nil
}
