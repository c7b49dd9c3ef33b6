// Package main is the entry point for the settle CLI.
package main

import (
	"os"

	"github.com/mmynk/settleup/cmd/settle/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
