// Package main provides the entry point for the Trampoline Coach AI server
// and its companion CLI commands.
package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "coach_agent",
	Short: "Trampoline Coach AI server",
	Long:  "Trampoline Coach AI streams grounded Gemini answers about trampoline skills, routine construction, and the FIG Code of Points over a chat HTTP API.",
}

func main() {
	// Load .env file if it exists
	_ = godotenv.Load()

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
