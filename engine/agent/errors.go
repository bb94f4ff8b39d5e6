package agent

import (
	"errors"

	"github.com/meenmo/molibsim/engine/line"
)

// Error taxonomy shared by every engine/* package (SPEC_FULL.md §3.2),
// mirroring molib's sentinel + fmt.Errorf("Func: %w", err) wrapping idiom
// (see swap.ErrNilCurve).
var (
	// ErrNotConfigured is returned when a lifecycle method is entered with
	// a required dependency or parameter unset.
	ErrNotConfigured = errors.New("not configured")
	// ErrInvalidSchedule is returned for a non-increasing fix schedule, a
	// malformed cashflow row, or a non-positive period.
	ErrInvalidSchedule = errors.New("invalid schedule")
	// ErrInvalidState is returned when a cached agent is read before its
	// first reset, or a cached line agent's interpolation table is empty.
	// Aliased to line.ErrInvalidState (declared there to avoid an import
	// cycle with engine/line, which engine/agent already depends on) so
	// both trigger sites surface the same sentinel.
	ErrInvalidState = line.ErrInvalidState
	// ErrInvalidArgument is returned for an unrecognised option type, a
	// degenerate histogram interval, or mismatched group delimiters.
	ErrInvalidArgument = errors.New("invalid argument")
	// ErrUnsupported is returned for a combination of features the engine
	// deliberately does not support (e.g. an additive shift queried for a
	// discount factor directly).
	ErrUnsupported = errors.New("unsupported")
	// ErrCachedRandomStream is returned by Cached.Init when the wrapped
	// subtree contains an agent that consumes the random driver — see
	// DESIGN.md's Open Question decision on cached-agent correctness
	// (spec §9).
	ErrCachedRandomStream = errors.New("cached agent wraps a random-consuming subtree")
	// ErrCycleDetected is returned when the simulator's coloured-DFS check
	// finds a cycle in the dependency graph (spec §9 "Shared-ownership
	// graph"); this also covers the cash-account back-edge case (§9),
	// which FlowConnector now prevents structurally by depending directly
	// on its CashAccount rather than needing a separate ordering check.
	ErrCycleDetected = errors.New("cycle detected in agent graph")
)
