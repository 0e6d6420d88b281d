// Package main provides the entry point for the sales_agent CLI.
package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "sales_agent",
	Short: "Synthetic B2B sales conversation generator",
	Long:  "sales_agent generates realistic synthetic B2B sales conversations from customer documents and analyzes them for strategy effectiveness and customer personality.",
}

func main() {
	// Load .env file if it exists
	_ = godotenv.Load()

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
