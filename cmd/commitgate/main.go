package main

import (
	"os"

	"github.com/commitgate/commitgate/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
