package cli

import (
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
)

// hookMarker identifies hooks written by us. A hook file without it is
// foreign and never touched without --force.
const hookMarker = "# installed by commitgate"

// hookScripts maps hook names to their script bodies. The commit-msg hook
// re-checks with the final message text git hands it.
var hookScripts = map[string]string{
	"pre-commit": `#!/bin/sh
` + hookMarker + `, reinstall with: commitgate hook install
exec commitgate check
`,
	"commit-msg": `#!/bin/sh
` + hookMarker + `, reinstall with: commitgate hook install
exec commitgate check -F "$1"
`,
}

// hookOrder fixes the listing order.
var hookOrder = []string{"pre-commit", "commit-msg"}

var hookCmd = &cobra.Command{
	Use:   "hook",
	Short: "Manage the repository's git hooks",
	Long: `Install or remove the pre-commit and commit-msg hooks that gate
every commit through commitgate.

The pre-commit hook evaluates the staged changes; the commit-msg hook
re-evaluates them with the final message. Installed hooks carry a marker
line; hooks written by anything else are never overwritten without --force.`,
}

var hookInstallCmd = &cobra.Command{
	Use:   "install",
	Short: "Install the pre-commit and commit-msg hooks",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		dir, err := gitHooksDir()
		if err != nil {
			fail(fmt.Errorf("not in a git repository (or git not installed): %w", err))
		}
		force, _ := cmd.Flags().GetBool("force")
		return installHooks(dir, force)
	},
}

var hookUninstallCmd = &cobra.Command{
	Use:   "uninstall",
	Short: "Remove the hooks installed by commitgate",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		dir, err := gitHooksDir()
		if err != nil {
			fail(fmt.Errorf("not in a git repository (or git not installed): %w", err))
		}
		return uninstallHooks(dir)
	},
}

var hookStatusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show which hooks are installed",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		dir, err := gitHooksDir()
		if err != nil {
			fail(fmt.Errorf("not in a git repository (or git not installed): %w", err))
		}
		for _, name := range hookOrder {
			fmt.Printf("%-12s %s\n", name, hookState(dir, name))
		}
		return nil
	},
}

func init() {
	hookInstallCmd.Flags().Bool("force", false, "replace hooks not written by commitgate")
	hookCmd.AddCommand(hookInstallCmd, hookUninstallCmd, hookStatusCmd)
}

func installHooks(dir string, force bool) error {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("creating hooks directory: %w", err)
	}

	for _, name := range hookOrder {
		path := filepath.Join(dir, name)
		if state := hookState(dir, name); state == "foreign" && !force {
			return fmt.Errorf("%s exists and was not written by commitgate; use --force to replace it", path)
		}
		if err := os.WriteFile(path, []byte(hookScripts[name]), 0o755); err != nil {
			return fmt.Errorf("writing %s: %w", path, err)
		}
		fmt.Printf("Installed %s\n", path)
	}
	return nil
}

func uninstallHooks(dir string) error {
	for _, name := range hookOrder {
		path := filepath.Join(dir, name)
		switch hookState(dir, name) {
		case "installed":
			if err := os.Remove(path); err != nil {
				return fmt.Errorf("removing %s: %w", path, err)
			}
			fmt.Printf("Removed %s\n", path)
		case "foreign":
			fmt.Printf("Skipped %s (not written by commitgate)\n", path)
		}
	}
	return nil
}

// hookState classifies a hook file: "installed", "foreign", or "missing".
func hookState(dir, name string) string {
	data, err := os.ReadFile(filepath.Join(dir, name))
	if err != nil {
		return "missing"
	}
	if strings.Contains(string(data), hookMarker) {
		return "installed"
	}
	return "foreign"
}

// gitHooksDir resolves the active hooks directory, following worktrees.
func gitHooksDir() (string, error) {
	out, err := exec.Command("git", "rev-parse", "--git-path", "hooks").Output()
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(string(out)), nil
}
