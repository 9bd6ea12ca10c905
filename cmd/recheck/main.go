package main

import (
	"os"

	"github.com/recheck-dev/recheck/internal/infrastructure/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
