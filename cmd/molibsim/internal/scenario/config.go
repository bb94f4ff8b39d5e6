// Package scenario loads a Config YAML document (fix schedule,
// agent-graph kind and parameters, sample count, seed, year-fraction
// ratio, observer choice) and builds the engine/* graph it describes,
// mirroring inference-sim-inference-sim/cmd/coefficients_config.go's
// unmarshal-into-struct idiom via gopkg.in/yaml.v3.
package scenario

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// ObserverConfig selects which engine/observer type the CLI attaches to
// every fix, and its parameters.
type ObserverConfig struct {
	Type  string `yaml:"type"`
	Bins  int    `yaml:"bins,omitempty"`
	Order int    `yaml:"order,omitempty"`
	PDF   bool   `yaml:"pdf,omitempty"`
}

// Config is the top-level YAML document the CLI's run command loads.
type Config struct {
	Kind              string             `yaml:"kind"`
	Start             int64              `yaml:"start"`
	Fixes             []int64            `yaml:"fixes"`
	Step              int64              `yaml:"step"`
	Samples           int                `yaml:"samples"`
	Seed              uint64             `yaml:"seed"`
	YearFractionRatio float64            `yaml:"year_fraction_ratio"`
	Params            map[string]float64 `yaml:"params"`
	Observer          ObserverConfig     `yaml:"observer"`
}

// Load reads and parses the scenario document at path.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("scenario.Load: %w", err)
	}
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("scenario.Load: %w", err)
	}
	if len(cfg.Fixes) == 0 {
		return nil, fmt.Errorf("scenario.Load: %s: no fixes in schedule", path)
	}
	if cfg.Samples <= 0 {
		cfg.Samples = 1
	}
	if cfg.YearFractionRatio == 0 {
		cfg.YearFractionRatio = 365
	}
	return &cfg, nil
}
