package main

import (
	"context"
	"fmt"
	"os"

	"github.com/jonathan/sales-simulator/internal/checkpoint"
	"github.com/jonathan/sales-simulator/internal/config"
	"github.com/jonathan/sales-simulator/internal/llm"
	"github.com/jonathan/sales-simulator/internal/observability"
	"github.com/jonathan/sales-simulator/internal/pipeline"
	"github.com/jonathan/sales-simulator/internal/state"
	"github.com/jonathan/sales-simulator/internal/types"
	"github.com/spf13/cobra"
)

var runCommand = &cobra.Command{
	Use:   "run",
	Short: "Run the full simulation pipeline end-to-end",
	Long: `Orchestrates the entire simulation: document analysis -> message composition -> strategy analysis -> personality analysis -> integration -> save outputs.

Configuration can be loaded from a JSON file using --config. Command-line arguments override config file values.`,
	RunE: runPipelineCmd,
}

var (
	runConfigPath  string
	runCustomerDoc string
	runCompanyDoc  string
	runOutput      string
	runGoal        string
	runTone        string
	runChannel     string
	runExchanges   int
	runCompanyRep  string
	runCustomerRep string
	runThreadID    string
	runMaxIter     int
	runParallel    bool
	runAPIKey      string
	runVerbose     bool
	runDatabaseURL string
)

func init() {
	// Config file flag (processed first)
	runCommand.Flags().StringVar(&runConfigPath, "config", "", "Path to config.json file (values can be overridden by other flags)")

	runCommand.Flags().StringVarP(&runCustomerDoc, "customer-doc", "d", "", "Path to customer document JSON file")
	runCommand.Flags().StringVar(&runCompanyDoc, "company-doc", "", "Path to company services document (optional)")
	runCommand.Flags().StringVarP(&runOutput, "out", "o", "", "Path for the run artifact JSON file")
	runCommand.Flags().StringVarP(&runGoal, "goal", "g", "", "Conversation goal")
	runCommand.Flags().StringVar(&runTone, "tone", "", "Conversation tone (professional, friendly, formal, consultative)")
	runCommand.Flags().StringVar(&runChannel, "channel", "", "Conversation channel (email, phone, video_call, in_person, linkedin, meeting)")
	runCommand.Flags().IntVar(&runExchanges, "exchanges", 0, "Target number of exchanges (one message each way)")
	runCommand.Flags().StringVar(&runCompanyRep, "company-rep", "", "Display name for the company participant")
	runCommand.Flags().StringVar(&runCustomerRep, "customer-rep", "", "Display name for the customer participant")
	runCommand.Flags().StringVar(&runThreadID, "thread-id", "", "Stable thread id for checkpointing (generated if omitted)")
	runCommand.Flags().IntVar(&runMaxIter, "max-iterations", 0, "Conversation loop safety bound")
	runCommand.Flags().BoolVar(&runParallel, "parallel", false, "Run strategy and personality analyses concurrently")
	runCommand.Flags().BoolVarP(&runVerbose, "verbose", "v", false, "Print detailed debug information")

	// API key can be passed as a flag, or read from env var GEMINI_API_KEY
	runCommand.Flags().StringVar(&runAPIKey, "api-key", "", "Gemini API Key (optional, defaults to GEMINI_API_KEY env var)")

	// Database URL for checkpoint persistence; in-memory checkpoints are used without it
	runCommand.Flags().StringVar(&runDatabaseURL, "db-url", "", "PostgreSQL connection URL (optional, defaults to DATABASE_URL env var)")

	rootCmd.AddCommand(runCommand)
}

func runPipelineCmd(cmd *cobra.Command, _ []string) error {
	ctx := context.Background()

	// Step 1: Load config file if provided
	var cfg config.Config
	if runConfigPath != "" {
		loadedCfg, err := config.LoadConfig(runConfigPath)
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}

		// Validate loaded config
		if err := loadedCfg.Validate(); err != nil {
			return err
		}

		cfg = *loadedCfg
		if runVerbose {
			_, _ = fmt.Fprintf(os.Stdout, "Loaded config from: %s\n", runConfigPath)
		}
	}

	// Step 2: Apply CLI overrides (command-line args take priority)
	// Only override if the flag was explicitly set
	if cmd.Flags().Changed("customer-doc") {
		cfg.CustomerDoc = runCustomerDoc
	}
	if cmd.Flags().Changed("company-doc") {
		cfg.CompanyDoc = runCompanyDoc
	}
	if cmd.Flags().Changed("out") {
		cfg.Output = runOutput
	}
	if cmd.Flags().Changed("goal") {
		cfg.Goal = runGoal
	}
	if cmd.Flags().Changed("tone") {
		cfg.Tone = runTone
	}
	if cmd.Flags().Changed("channel") {
		cfg.Channel = runChannel
	}
	if cmd.Flags().Changed("exchanges") {
		cfg.Exchanges = runExchanges
	}
	if cmd.Flags().Changed("company-rep") {
		cfg.CompanyRep = runCompanyRep
	}
	if cmd.Flags().Changed("customer-rep") {
		cfg.CustomerRep = runCustomerRep
	}
	if cmd.Flags().Changed("thread-id") {
		cfg.ThreadID = runThreadID
	}
	if cmd.Flags().Changed("max-iterations") {
		cfg.MaxIterations = runMaxIter
	}
	if cmd.Flags().Changed("parallel") {
		cfg.ParallelAnalysis = runParallel
	}
	if cmd.Flags().Changed("api-key") {
		cfg.APIKey = runAPIKey
	}
	if cmd.Flags().Changed("verbose") {
		cfg.Verbose = runVerbose
	}
	if cmd.Flags().Changed("db-url") {
		cfg.DatabaseURL = runDatabaseURL
	}

	// Step 3: Apply defaults for unset values
	defaultParams := types.DefaultConversationParams()
	defaults := config.Config{
		Output:        "output/run_output.json",
		Goal:          defaultParams.Goal,
		Tone:          defaultParams.Tone,
		Channel:       string(defaultParams.Channel),
		Exchanges:     defaultParams.Exchanges,
		CompanyRep:    defaultParams.CompanyRep,
		CustomerRep:   defaultParams.CustomerRep,
		MaxIterations: state.DefaultMaxIterations,
	}
	cfg = cfg.MergeWithDefaults(defaults)

	// Step 4: Validate required fields
	if cfg.CustomerDoc == "" {
		return fmt.Errorf("--customer-doc must be provided (via flag or config)")
	}

	// Step 5: API Key handling
	if cfg.APIKey == "" {
		cfg.APIKey = os.Getenv("GEMINI_API_KEY")
	}
	if cfg.APIKey == "" {
		return fmt.Errorf("GEMINI_API_KEY environment variable or --api-key flag is required")
	}

	// Step 6: Database URL handling (optional; falls back to in-memory checkpoints)
	if cfg.DatabaseURL == "" {
		cfg.DatabaseURL = os.Getenv("DATABASE_URL")
	}

	params := types.ConversationParams{
		Goal:        cfg.Goal,
		Tone:        cfg.Tone,
		Channel:     types.Channel(cfg.Channel),
		Exchanges:   cfg.Exchanges,
		CompanyRep:  cfg.CompanyRep,
		CustomerRep: cfg.CustomerRep,
	}
	if err := params.Validate(); err != nil {
		return err
	}

	client, err := newLLMClient(ctx, cfg.APIKey)
	if err != nil {
		return err
	}
	defer func() { _ = client.Close() }()

	store, cleanup, err := newCheckpointStore(ctx, cfg.DatabaseURL, cfg.Verbose)
	if err != nil {
		return err
	}
	defer cleanup()

	st := state.New(cfg.ThreadID)
	st.CustomerDocPath = cfg.CustomerDoc
	st.CompanyDocPath = cfg.CompanyDoc
	st.Params = params
	if cfg.MaxIterations > 0 {
		st.MaxIterations = cfg.MaxIterations
	}

	runner := pipeline.NewRunner(pipeline.Options{
		Client:           client,
		Store:            store,
		Printer:          observability.NewPrinter(os.Stdout),
		Verbose:          cfg.Verbose,
		OutputPath:       cfg.Output,
		ParallelAnalysis: cfg.ParallelAnalysis,
	})

	if err := runner.Run(ctx, st); err != nil {
		return err
	}

	fmt.Printf("Run complete. Thread ID: %s\n", st.ThreadID)
	if cfg.Output != "" {
		fmt.Printf("Output written to: %s\n", cfg.Output)
	}
	return nil
}

// newLLMClient builds the Gemini client wrapped with the standard timeout
// and retry policy.
func newLLMClient(ctx context.Context, apiKey string) (llm.Client, error) {
	inner, err := llm.NewClient(ctx, llm.DefaultConfig(), apiKey)
	if err != nil {
		return nil, fmt.Errorf("failed to create LLM client: %w", err)
	}
	return llm.WithOptions(inner, llm.DefaultInvokeOptions()), nil
}

// newCheckpointStore picks Postgres when a database URL is configured,
// otherwise an in-memory store. A Postgres connection failure degrades to
// in-memory with a warning instead of aborting the run.
func newCheckpointStore(ctx context.Context, databaseURL string, verbose bool) (checkpoint.Store, func(), error) {
	if databaseURL == "" {
		if verbose {
			fmt.Println("No database URL configured; using in-memory checkpoints")
		}
		return checkpoint.NewMemoryStore(), func() {}, nil
	}

	pg, err := checkpoint.ConnectPostgres(ctx, databaseURL)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: failed to connect to database, using in-memory checkpoints: %v\n", err)
		return checkpoint.NewMemoryStore(), func() {}, nil
	}
	return pg, pg.Close, nil
}
