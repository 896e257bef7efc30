// Package main provides the entry point for the Skill Genome HTTP API
// server and analysis CLI.
package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "genome_server",
	Short: "Skill Genome backend",
	Long:  "Skill Genome ingests skill-tagged activity data, filters bot accounts, and serves emerging-skill analytics (co-occurrence graph, region clusters, trend forecasts, risk zones) via REST API.",
}

func main() {
	// Load .env file if it exists
	_ = godotenv.Load()

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
