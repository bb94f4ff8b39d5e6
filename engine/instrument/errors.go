package instrument

import "github.com/meenmo/molibsim/engine/agent"

// Error taxonomy re-exported from engine/agent (spec.md §7): instrument
// constructors return these directly rather than re-declaring equivalent
// sentinels, keeping one taxonomy across engine/*.
var (
	ErrNotConfigured   = agent.ErrNotConfigured
	ErrInvalidSchedule = agent.ErrInvalidSchedule
	ErrInvalidState    = agent.ErrInvalidState
	ErrInvalidArgument = agent.ErrInvalidArgument
	ErrUnsupported     = agent.ErrUnsupported
	ErrCycleDetected   = agent.ErrCycleDetected
)
