// Package main is the raptrainer command-line tool.
package main

import (
	"fmt"
	"os"

	"github.com/phrazzld/raptrainer/internal/cli"
)

func main() {
	if err := cli.NewRootCommand().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(cli.GetExitCode(err))
	}
}
