// Package main is the entry point for the quill CLI tool.
package main

import (
	"os"

	"github.com/quilldocs/quill/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
