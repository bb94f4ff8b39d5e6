package scenario

import (
	"fmt"

	"github.com/meenmo/molibsim/engine/observer"
	"github.com/meenmo/molibsim/engine/simulator"
)

// NewObserver constructs one fresh Observer per fix matching cfg's
// Observer.Type ("expectation", "statistics", "bounds", "scenarios", or
// "histogram"), each reading lens off the root agent's state.
func NewObserver(cfg ObserverConfig, lens observer.Lens) (simulator.Observer, error) {
	switch cfg.Type {
	case "", "expectation":
		return observer.NewExpectation(lens), nil
	case "statistics":
		return observer.NewStatistics(lens), nil
	case "bounds":
		return observer.NewBounds(lens), nil
	case "scenarios":
		return observer.NewScenarios(lens), nil
	case "histogram":
		return observer.NewHistogram(lens, cfg.Bins, cfg.Order, cfg.PDF), nil
	default:
		return nil, fmt.Errorf("scenario.NewObserver: unknown observer type %q", cfg.Type)
	}
}

// NewObservers builds len(n) independent observers, one per fix, so the
// CLI can report each fix's accumulated statistic separately.
func NewObservers(cfg ObserverConfig, lens observer.Lens, n int) ([]simulator.Observer, error) {
	observers := make([]simulator.Observer, n)
	for i := range observers {
		obs, err := NewObserver(cfg, lens)
		if err != nil {
			return nil, err
		}
		observers[i] = obs
	}
	return observers, nil
}
