package scenario

import (
	"fmt"

	"github.com/meenmo/molibsim/engine/observer"
	"github.com/meenmo/molibsim/engine/simulator"
)

// Report renders one line per fix describing the bound observer's
// accumulated result, dispatching on its concrete type since Observer
// itself exposes no generic "result" accessor (spec §4.10 keeps each
// observer's reducer-specific fields off the shared interface).
func Report(fixes []int64, observers []simulator.Observer) []string {
	lines := make([]string, len(observers))
	for i, obs := range observers {
		lines[i] = fmt.Sprintf("fix=%-6d %s", fixes[i], describe(obs))
	}
	return lines
}

func describe(obs simulator.Observer) string {
	switch o := obs.(type) {
	case *observer.Expectation:
		return fmt.Sprintf("expectation=%.6f", o.Mean())
	case *observer.Statistics:
		return fmt.Sprintf("mean=%.6f stddev=%.6f stderr=%.6f min=%.6f max=%.6f n=%d",
			o.Mean(), o.StdDev(), o.StdError(), o.Min(), o.Max(), o.N())
	case *observer.Bounds:
		return fmt.Sprintf("min=%.6f max=%.6f", o.Min(), o.Max())
	case *observer.Scenarios:
		return fmt.Sprintf("samples=%d", len(o.Outcomes))
	case *observer.Histogram:
		return fmt.Sprintf("counts=%v", o.Counts())
	default:
		return "(unrecognised observer)"
	}
}
