// Package cli implements the commitgate command line interface.
package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

// configPath is the persistent --config flag shared by all commands.
var configPath string

var rootCmd = &cobra.Command{
	Use:   "commitgate",
	Short: "Quality gate for staged changes",
	Long: `commitgate evaluates a pending commit before it happens: commit
message hygiene, change shape, security risk, and test coverage, combined
into one weighted score and a pass/fail verdict.

Run it by hand, wire it into git hooks (commitgate hook install), or put it
in CI (commitgate check -f json).`,
	SilenceUsage: true,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "config file (default .commitgate.yaml at the repo root)")
	rootCmd.AddCommand(checkCmd, reviewCmd, serveCmd, hookCmd, versionCmd)
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

// fail prints one diagnostic line and exits with the environment error
// code. No partial report is ever produced on this path.
func fail(err error) {
	fmt.Fprintf(os.Stderr, "commitgate: %v\n", err)
	os.Exit(3)
}
