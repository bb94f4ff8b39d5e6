// Package cli implements the molibsim cobra command tree, grounded on
// inference-sim-inference-sim/cmd/root.go's rootCmd-plus-subcommand-files
// layout: package-level flag variables, one cobra.Command var per
// subcommand, an init() wiring flags and AddCommand, and a package-level
// Execute the binary's main.go delegates to.
package cli

import (
	"os"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "molibsim",
	Short: "Monte Carlo simulation engine for stochastic financial models",
}

// Execute runs the CLI root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
