package constants

import "strings"

// PolicyKind names how access to the shared grid counters is coordinated.
type PolicyKind string

const (
	// PolicyMutex serializes every grid access behind one lock.
	PolicyMutex PolicyKind = "mutex"

	// PolicyUnguarded performs no coordination at all. Concurrent moves
	// race and the particle total may drift.
	PolicyUnguarded PolicyKind = "unguarded"
)

// Valid returns true if the policy kind is a recognized value.
func (k PolicyKind) Valid() bool {
	switch k {
	case PolicyMutex, PolicyUnguarded:
		return true
	}
	return false
}

// String returns the string representation of the policy kind.
func (k PolicyKind) String() string {
	return string(k)
}

// ParsePolicyKind normalizes case and surrounding space. The result may still
// be invalid; check it with Valid.
func ParsePolicyKind(s string) PolicyKind {
	return PolicyKind(strings.ToLower(strings.TrimSpace(s)))
}
