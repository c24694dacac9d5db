package cli

import (
	"testing"
)

func TestRootCommandHasSubcommands(t *testing.T) {
	names := make(map[string]bool)
	for _, c := range rootCmd.Commands() {
		names[c.Name()] = true
	}

	for _, want := range []string{"check", "review", "serve", "hook", "version"} {
		if !names[want] {
			t.Errorf("root command missing subcommand %q", want)
		}
	}
}

func TestHookSubcommands(t *testing.T) {
	names := make(map[string]bool)
	for _, c := range hookCmd.Commands() {
		names[c.Name()] = true
	}

	for _, want := range []string{"install", "uninstall", "status"} {
		if !names[want] {
			t.Errorf("hook command missing subcommand %q", want)
		}
	}
}

func TestVersionOutput(t *testing.T) {
	// version vars are set via ldflags; in tests they have their defaults
	if version != "dev" {
		t.Errorf("expected default version %q, got %q", "dev", version)
	}
}
