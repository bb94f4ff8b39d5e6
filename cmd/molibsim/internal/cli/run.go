package cli

import (
	"fmt"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/meenmo/molibsim/cmd/molibsim/internal/scenario"
	"github.com/meenmo/molibsim/engine/clock"
	"github.com/meenmo/molibsim/engine/rng"
	"github.com/meenmo/molibsim/engine/simulator"
)

var (
	runScenarioPath string
	runLogLevel     string
)

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run a scenario and print its observer output",
	Run: func(cmd *cobra.Command, args []string) {
		level, err := logrus.ParseLevel(runLogLevel)
		if err != nil {
			logrus.Fatalf("invalid log level: %s", runLogLevel)
		}
		logrus.SetLevel(level)

		if runScenarioPath == "" {
			logrus.Fatalf("--scenario is required")
		}

		cfg, err := scenario.Load(runScenarioPath)
		if err != nil {
			logrus.Fatalf("failed to load scenario: %v", err)
		}
		logrus.Infof("loaded scenario %q kind=%s fixes=%d samples=%d", runScenarioPath, cfg.Kind, len(cfg.Fixes), cfg.Samples)

		root, lens, err := scenario.Build(cfg)
		if err != nil {
			logrus.Fatalf("failed to build scenario graph: %v", err)
		}

		sim := simulator.New(clock.Time(cfg.Start), clock.Duration(cfg.Step), cfg.Samples, cfg.Seed,
			clock.Config{YearFractionRatio: cfg.YearFractionRatio})
		for _, f := range cfg.Fixes {
			if err := sim.AddFix(clock.Time(f)); err != nil {
				logrus.Fatalf("invalid fixing schedule: %v", err)
			}
		}

		observers, err := scenario.NewObservers(cfg.Observer, lens, len(cfg.Fixes))
		if err != nil {
			logrus.Fatalf("failed to build observers: %v", err)
		}

		source := rng.NewDefaultSource(cfg.Seed)
		if err := sim.Simulate(root, source, observers, true, true); err != nil {
			logrus.Fatalf("simulation failed: %v", err)
		}

		for _, line := range scenario.Report(cfg.Fixes, observers) {
			fmt.Println(line)
		}
	},
}

func init() {
	runCmd.Flags().StringVar(&runScenarioPath, "scenario", "", "path to a scenario YAML document")
	runCmd.Flags().StringVar(&runLogLevel, "log", "info", "log level (trace, debug, info, warn, error, fatal, panic)")
	rootCmd.AddCommand(runCmd)
}
