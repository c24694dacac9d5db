package cli

import (
	"github.com/spf13/cobra"

	"github.com/commitgate/commitgate/internal/analysis"
	"github.com/commitgate/commitgate/internal/tui"
)

var reviewCmd = &cobra.Command{
	Use:   "review [-]",
	Short: "Evaluate and browse the result interactively",
	Long: `Evaluate the staged changes and open an interactive browser over
the report and the changed files.

Examples:
  commitgate review                            # staged changes
  commitgate review --commit HEAD              # an existing commit
  git diff main...HEAD | commitgate review -   # any diff`,
	Args: cobra.MaximumNArgs(1),
	RunE: runReview,
}

func init() {
	addInputFlags(reviewCmd)
}

func runReview(cmd *cobra.Command, args []string) error {
	in, err := loadInputs(cmd, args)
	if err != nil {
		fail(err)
	}

	rep := analysis.Evaluate(in.Message, in.DiffSet, in.Config)
	return tui.Run(in.DiffSet, rep)
}
