package grid

import (
	"fmt"
	"sync"

	"github.com/nvandessel/cellwalk/internal/constants"
)

// Policy decides how a grid operation is coordinated with every other
// grid operation. Do runs fn exactly once.
type Policy interface {
	Do(fn func())
	Kind() constants.PolicyKind
}

// NewPolicy returns a fresh policy of the given kind. Each grid needs its
// own instance: a MutualExclusion policy owns its lock.
func NewPolicy(kind constants.PolicyKind) (Policy, error) {
	switch kind {
	case constants.PolicyMutex:
		return &MutualExclusion{}, nil
	case constants.PolicyUnguarded:
		return Unguarded{}, nil
	default:
		return nil, fmt.Errorf("unknown policy %q (valid: mutex, unguarded)", kind)
	}
}

// Unguarded runs operations with no coordination. Concurrent moves on the
// same cell race, so the particle total is not preserved.
type Unguarded struct{}

// Do runs fn directly.
func (Unguarded) Do(fn func()) { fn() }

// Kind returns constants.PolicyUnguarded.
func (Unguarded) Kind() constants.PolicyKind { return constants.PolicyUnguarded }

// MutualExclusion runs every operation inside one lock covering the whole
// grid. Moves, snapshots and totals are serialized, which keeps the
// particle total constant and gives snapshots an atomic view.
type MutualExclusion struct {
	mu sync.Mutex
}

// Do runs fn while holding the lock. The lock is released even if fn panics.
func (m *MutualExclusion) Do(fn func()) {
	m.mu.Lock()
	defer m.mu.Unlock()
	fn()
}

// Kind returns constants.PolicyMutex.
func (m *MutualExclusion) Kind() constants.PolicyKind { return constants.PolicyMutex }
