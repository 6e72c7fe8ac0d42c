// Package main provides the sandsh entry point.
// sandsh is a sandboxed single-user shell emulator.
package main

import (
	"fmt"
	"os"

	"github.com/sandsh/sandsh/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
