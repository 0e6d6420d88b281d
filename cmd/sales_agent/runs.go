package main

import (
	"context"
	"fmt"
	"os"

	"github.com/jonathan/sales-simulator/internal/checkpoint"
	"github.com/spf13/cobra"
)

var runsCommand = &cobra.Command{
	Use:   "runs",
	Short: "List checkpointed runs",
	Long:  "Lists recent runs recorded in the checkpoint database, newest first.",
	RunE:  runRunsCmd,
}

var (
	runsLimit       int
	runsDatabaseURL string
)

func init() {
	runsCommand.Flags().IntVarP(&runsLimit, "limit", "n", 20, "Maximum number of runs to list")
	runsCommand.Flags().StringVar(&runsDatabaseURL, "db-url", "", "PostgreSQL connection URL (optional, defaults to DATABASE_URL env var)")

	rootCmd.AddCommand(runsCommand)
}

func runRunsCmd(_ *cobra.Command, _ []string) error {
	ctx := context.Background()

	databaseURL := runsDatabaseURL
	if databaseURL == "" {
		databaseURL = os.Getenv("DATABASE_URL")
	}
	if databaseURL == "" {
		return fmt.Errorf("DATABASE_URL environment variable or --db-url flag is required")
	}

	store, err := checkpoint.ConnectPostgres(ctx, databaseURL)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	defer store.Close()

	summaries, err := store.List(ctx, runsLimit)
	if err != nil {
		return fmt.Errorf("failed to list runs: %w", err)
	}
	if len(summaries) == 0 {
		fmt.Println("No runs found")
		return nil
	}

	fmt.Printf("%-38s %-10s %-22s %s\n", "THREAD ID", "STATUS", "CURRENT STAGE", "UPDATED")
	for _, s := range summaries {
		stage := s.CurrentStage
		if stage == "" {
			stage = "-"
		}
		fmt.Printf("%-38s %-10s %-22s %s\n", s.ThreadID, s.Status, stage, s.UpdatedAt.Format("2006-01-02 15:04:05"))
	}
	return nil
}
