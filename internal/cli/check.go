package cli

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
	"strings"

	"github.com/spf13/cobra"

	"github.com/commitgate/commitgate/internal/analysis"
	"github.com/commitgate/commitgate/internal/config"
	"github.com/commitgate/commitgate/internal/diff"
)

// contextLines around changes in generated diffs. Scoring only reads added
// lines, so this mostly affects the review pane.
const contextLines = 3

var checkCmd = &cobra.Command{
	Use:   "check [-]",
	Short: "Evaluate the staged changes and print a report",
	Long: `Evaluate the staged changes and the proposed commit message, print
a scored report, and exit with the verdict. Pass "-" to read a unified diff
from stdin instead of the repository.

Exit codes:
  0 — excellent or good
  1 — warning or poor
  2 — critical
  3 — environment error (not a repository, nothing staged, bad config)`,
	Args: cobra.MaximumNArgs(1),
	RunE: runCheck,
}

func init() {
	addInputFlags(checkCmd)
	checkCmd.Flags().StringP("format", "f", "text", "output format: text, json, markdown")
}

// addInputFlags registers the flags shared by every command that loads a
// change set and message.
func addInputFlags(cmd *cobra.Command) {
	cmd.Flags().StringP("message", "m", "", "commit message to evaluate")
	cmd.Flags().StringP("message-file", "F", "", "read the commit message from a file, stripping # comment lines")
	cmd.Flags().String("commit", "", "evaluate an existing commit instead of the staged changes")
}

func runCheck(cmd *cobra.Command, args []string) error {
	in, err := loadInputs(cmd, args)
	if err != nil {
		fail(err)
	}

	rep := analysis.Evaluate(in.Message, in.DiffSet, in.Config)

	format, _ := cmd.Flags().GetString("format")
	switch format {
	case "json":
		if err := printJSON(rep); err != nil {
			fail(err)
		}
	case "markdown":
		printMarkdown(in.DiffSet, rep)
	case "text":
		printText(in.DiffSet, rep)
	default:
		fail(fmt.Errorf("unknown format %q", format))
	}

	if rep.ExitCode != 0 {
		os.Exit(rep.ExitCode)
	}
	return nil
}

// inputs is everything an evaluation needs, resolved from flags, the
// repository, or stdin.
type inputs struct {
	Message string
	DiffSet *diff.DiffSet
	Config  *config.Config
}

// loadInputs resolves the diff, message, and config. Every error it returns
// is an environment error.
func loadInputs(cmd *cobra.Command, args []string) (*inputs, error) {
	fromStdin := len(args) == 1 && args[0] == "-"
	commit, _ := cmd.Flags().GetString("commit")

	var repoDir string
	var err error
	if !fromStdin {
		repoDir, err = gitRepoRoot()
		if err != nil {
			return nil, fmt.Errorf("not in a git repository (or git not installed): %w", err)
		}
	}

	cfg, err := loadConfig(repoDir)
	if err != nil {
		return nil, err
	}

	var raw string
	switch {
	case fromStdin:
		data, err := io.ReadAll(os.Stdin)
		if err != nil {
			return nil, fmt.Errorf("reading stdin: %w", err)
		}
		raw = string(data)
	case commit != "":
		raw, err = diff.GitCommit(repoDir, commit, contextLines)
		if err != nil {
			return nil, fmt.Errorf("reading commit %s: %w", commit, err)
		}
	default:
		raw, err = diff.GitStaged(repoDir, contextLines)
		if err != nil {
			return nil, fmt.Errorf("reading staged changes: %w", err)
		}
		if strings.TrimSpace(raw) == "" {
			return nil, errors.New("no staged changes to evaluate (git add first)")
		}
	}

	ds, err := diff.Parse(raw)
	if err != nil {
		return nil, err
	}
	if repoDir != "" {
		diff.AttachSizes(ds, repoDir)
	}

	msg, err := loadMessage(cmd, repoDir, commit)
	if err != nil {
		return nil, err
	}

	return &inputs{Message: msg, DiffSet: ds, Config: cfg}, nil
}

// loadMessage resolves the commit message: explicit file, explicit text,
// the evaluated commit's own message, or empty.
func loadMessage(cmd *cobra.Command, repoDir, commit string) (string, error) {
	if msgFile, _ := cmd.Flags().GetString("message-file"); msgFile != "" {
		data, err := os.ReadFile(msgFile)
		if err != nil {
			return "", fmt.Errorf("reading message file: %w", err)
		}
		return stripComments(string(data)), nil
	}

	if msg, _ := cmd.Flags().GetString("message"); msg != "" {
		return msg, nil
	}

	if commit != "" && repoDir != "" {
		msg, err := diff.GitCommitMessage(repoDir, commit)
		if err != nil {
			return "", fmt.Errorf("reading message of %s: %w", commit, err)
		}
		return msg, nil
	}

	return "", nil
}

// loadConfig resolves thresholds from --config, the repository's
// .commitgate.yaml, or the defaults.
func loadConfig(repoDir string) (*config.Config, error) {
	if configPath != "" {
		return config.Load(configPath)
	}
	if repoDir == "" {
		return config.Default(), nil
	}
	return config.LoadRepo(repoDir)
}

// stripComments drops the lines git treats as comments in a commit message
// file, so hook invocations score the message the way git will record it.
func stripComments(s string) string {
	lines := strings.Split(s, "\n")
	kept := lines[:0]
	for _, line := range lines {
		if strings.HasPrefix(line, "#") {
			continue
		}
		kept = append(kept, line)
	}
	return strings.TrimRight(strings.Join(kept, "\n"), "\n")
}

func gitRepoRoot() (string, error) {
	out, err := exec.Command("git", "rev-parse", "--show-toplevel").Output()
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(string(out)), nil
}

func printJSON(rep *analysis.Report) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(rep)
}

func printText(ds *diff.DiffSet, rep *analysis.Report) {
	st := newStyles()

	files, additions, deletions := ds.Stats()
	fmt.Printf("%s  %s\n", st.scoreLine(rep), st.dim(fmt.Sprintf("%d file(s), +%d -%d", files, additions, deletions)))
	fmt.Println()

	for _, name := range analysis.AnalyzerOrder() {
		res := rep.Details[name]
		fmt.Printf("  %-8s %s %3d\n", name, st.bar(res.Score, res.MaxScore), res.Score)
	}
	fmt.Println()

	printFindings(st, "Issues", rep.Summary.Issues, st.issue)
	printFindings(st, "Warnings", rep.Summary.Warnings, st.warning)
	printFindings(st, "Suggestions", rep.Summary.Suggestions, st.suggestion)

	issues, warnings, suggestions := rep.Counts()
	if issues+warnings+suggestions == 0 {
		fmt.Println(st.ok("No findings."))
	}
}

func printFindings(st styles, header string, findings []string, paint func(string) string) {
	if len(findings) == 0 {
		return
	}
	fmt.Println(st.bold(header))
	for _, f := range findings {
		fmt.Printf("  %s\n", paint(f))
	}
	fmt.Println()
}

func printMarkdown(ds *diff.DiffSet, rep *analysis.Report) {
	files, additions, deletions := ds.Stats()

	fmt.Printf("## Commit Evaluation\n\n")
	fmt.Printf("**Score:** %.1f/%d — **%s**\n\n", rep.OverallScore, rep.MaxScore, rep.Status)
	fmt.Printf("**%d file(s)** changed, **+%d** insertions, **-%d** deletions\n\n", files, additions, deletions)

	fmt.Println("| Analyzer | Score | Issues | Warnings | Suggestions |")
	fmt.Println("|----------|------:|-------:|---------:|------------:|")
	for _, name := range analysis.AnalyzerOrder() {
		res := rep.Details[name]
		fmt.Printf("| %s | %d/%d | %d | %d | %d |\n",
			name, res.Score, res.MaxScore, len(res.Issues), len(res.Warnings), len(res.Suggestions))
	}
	fmt.Println()

	issues, warnings, suggestions := rep.Counts()
	if issues+warnings+suggestions == 0 {
		fmt.Println("No findings.")
		return
	}

	fmt.Printf("### Findings\n\n")
	for _, f := range rep.Summary.Issues {
		fmt.Printf("- **%s**\n", f)
	}
	for _, f := range rep.Summary.Warnings {
		fmt.Printf("- %s\n", f)
	}
	for _, f := range rep.Summary.Suggestions {
		fmt.Printf("- *%s*\n", f)
	}
}
