// Package main provides the entry point for the talent search CLI and API server.
package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "talent_search",
	Short: "Talent search query interpreter and candidate matcher",
	Long:  "Talent search interprets free-form hiring queries into structured filters and scores candidate profiles against them, as a CLI or via a REST API.",
}

func main() {
	// Load .env file if it exists
	_ = godotenv.Load()

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
