package main

import (
	"context"
	"fmt"
	"os"

	"github.com/jonathan/sales-simulator/internal/observability"
	"github.com/jonathan/sales-simulator/internal/pipeline"
	"github.com/spf13/cobra"
)

var resumeCommand = &cobra.Command{
	Use:   "resume",
	Short: "Resume an interrupted run from its last checkpoint",
	Long:  "Loads the checkpointed state for a thread id and re-runs the pipeline. Completed stages are skipped; execution continues from the first pending stage.",
	RunE:  runResumeCmd,
}

var (
	resumeThreadID    string
	resumeOutput      string
	resumeParallel    bool
	resumeAPIKey      string
	resumeVerbose     bool
	resumeDatabaseURL string
)

func init() {
	resumeCommand.Flags().StringVarP(&resumeThreadID, "thread-id", "t", "", "Thread id of the run to resume (required)")
	resumeCommand.Flags().StringVarP(&resumeOutput, "out", "o", "", "Path for the run artifact JSON file")
	resumeCommand.Flags().BoolVar(&resumeParallel, "parallel", false, "Run strategy and personality analyses concurrently")
	resumeCommand.Flags().BoolVarP(&resumeVerbose, "verbose", "v", false, "Print detailed debug information")
	resumeCommand.Flags().StringVar(&resumeAPIKey, "api-key", "", "Gemini API Key (optional, defaults to GEMINI_API_KEY env var)")
	resumeCommand.Flags().StringVar(&resumeDatabaseURL, "db-url", "", "PostgreSQL connection URL (optional, defaults to DATABASE_URL env var)")

	if err := resumeCommand.MarkFlagRequired("thread-id"); err != nil {
		panic(fmt.Sprintf("failed to mark thread-id flag as required: %v", err))
	}

	rootCmd.AddCommand(resumeCommand)
}

func runResumeCmd(_ *cobra.Command, _ []string) error {
	ctx := context.Background()

	apiKey := resumeAPIKey
	if apiKey == "" {
		apiKey = os.Getenv("GEMINI_API_KEY")
	}
	if apiKey == "" {
		return fmt.Errorf("GEMINI_API_KEY environment variable or --api-key flag is required")
	}

	databaseURL := resumeDatabaseURL
	if databaseURL == "" {
		databaseURL = os.Getenv("DATABASE_URL")
	}
	// Resuming only makes sense against a persistent store; a fresh in-memory
	// store has no checkpoints to load.
	if databaseURL == "" {
		return fmt.Errorf("DATABASE_URL environment variable or --db-url flag is required to resume")
	}

	client, err := newLLMClient(ctx, apiKey)
	if err != nil {
		return err
	}
	defer func() { _ = client.Close() }()

	store, cleanup, err := newCheckpointStore(ctx, databaseURL, resumeVerbose)
	if err != nil {
		return err
	}
	defer cleanup()

	runner := pipeline.NewRunner(pipeline.Options{
		Client:           client,
		Store:            store,
		Printer:          observability.NewPrinter(os.Stdout),
		Verbose:          resumeVerbose,
		OutputPath:       resumeOutput,
		ParallelAnalysis: resumeParallel,
	})

	st, err := runner.Resume(ctx, resumeThreadID)
	if err != nil {
		return err
	}

	fmt.Printf("Run complete. Thread ID: %s\n", st.ThreadID)
	return nil
}
