// Package main is the entry point for the invoicesort CLI.
package main

import (
	"os"

	"github.com/jmylchreest/invoicesort/cmd/invoicesort/commands"
)

func main() {
	if err := commands.Execute(); err != nil {
		os.Exit(1)
	}
}
