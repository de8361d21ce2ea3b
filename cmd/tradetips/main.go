package main

import (
	"os"

	"github.com/wonny/tradetips/cmd/tradetips/commands"
)

// main is the entry point for the TradeTips CLI
func main() {
	if err := commands.Execute(); err != nil {
		os.Exit(1)
	}
}
