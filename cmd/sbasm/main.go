// Copyright 2025, Jason S. McMullan <jason.mcmullan@gmail.com>

// Command sbasm assembles, lists and emulates scoreboard machine programs.
package main

import (
	"github.com/tebeka/atexit"
)

func main() {
	err := rootCmd.Execute()
	if err != nil {
		atexit.Exit(1)
	}
	atexit.Exit(0)
}
