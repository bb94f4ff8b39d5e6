package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

// Version is the CLI's reported version, overridable at build time via
// -ldflags "-X .../cli.Version=...".
var Version = "dev"

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the molibsim version",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Println("molibsim", Version)
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
