// Package main provides the entry point for the internship application
// agent: an HTTP API and CLI that turn a CV and internship offer books into
// tailored, ready-to-send applications.
package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "apply_agent",
	Short: "Internship application agent",
	Long:  "apply_agent extracts structured profiles and internship topics from PDFs, tailors applications to a chosen topic, and sends them by email.",
}

func main() {
	// Load .env file if it exists
	_ = godotenv.Load()

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
