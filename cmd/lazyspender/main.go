// Package main is the entry point for the lazyspender CLI.
package main

import (
	"os"

	"github.com/lazyspender/lazyspender-go/cmd/lazyspender/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
