// Package main provides the acro command, which looks up acronyms in CSV files.
package main

import (
	"os"

	"github.com/leapstack-labs/acro/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
