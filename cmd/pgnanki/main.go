// Package main provides the pgnanki command.
package main

import (
	"os"

	"github.com/leapstack-labs/pgnanki/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
