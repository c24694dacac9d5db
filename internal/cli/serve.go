package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/commitgate/commitgate/internal/api"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP API server",
	Long: `Start an HTTP server exposing the evaluation engine.

Endpoints:
  GET  /health        — Health check
  POST /api/evaluate  — Evaluate a diff and message
  POST /api/parse     — Parse a diff into structured files
  GET  /api/ws        — WebSocket for live evaluation sessions`,
	RunE: runServe,
}

func init() {
	serveCmd.Flags().StringP("addr", "a", "127.0.0.1", "address to listen on")
	serveCmd.Flags().IntP("port", "p", 7316, "port to listen on")
}

func runServe(cmd *cobra.Command, args []string) error {
	addr, _ := cmd.Flags().GetString("addr")
	port, _ := cmd.Flags().GetInt("port")

	// The server runs fine outside a repository; thresholds fall back to
	// the defaults there.
	repoDir, _ := gitRepoRoot()
	cfg, err := loadConfig(repoDir)
	if err != nil {
		fail(err)
	}

	srv := api.New(fmt.Sprintf("%s:%d", addr, port), cfg)
	return srv.ListenAndServe()
}
