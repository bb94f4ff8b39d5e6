// Minimal entry point that delegates CLI handling to the cobra root
// command in internal/cli/root.go, matching
// inference-sim-inference-sim/main.go's main-delegates-to-cmd.Execute
// layout.
package main

import "github.com/meenmo/molibsim/cmd/molibsim/internal/cli"

func main() {
	cli.Execute()
}
