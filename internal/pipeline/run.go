package pipeline

import (
	"context"
	"fmt"
	"time"

	"github.com/jonathan/sales-simulator/internal/checkpoint"
	"github.com/jonathan/sales-simulator/internal/llm"
	"github.com/jonathan/sales-simulator/internal/observability"
	"github.com/jonathan/sales-simulator/internal/state"
)

// ProgressEvent represents a progress update during pipeline execution
type ProgressEvent struct {
	Stage    string  `json:"stage"`
	Message  string  `json:"message"`
	Progress float64 `json:"progress"`
	ThreadID string  `json:"thread_id,omitempty"`
}

// ProgressCallback is called when pipeline progress occurs
type ProgressCallback func(event ProgressEvent)

// Options holds configuration for running the pipeline
type Options struct {
	Client           llm.Client
	Store            checkpoint.Store
	Printer          *observability.Printer
	Verbose          bool
	OutputPath       string
	ParallelAnalysis bool
	OnProgress       ProgressCallback
}

// Runner executes the pipeline stages against a run state.
type Runner struct {
	client     llm.Client
	store      checkpoint.Store
	printer    *observability.Printer
	verbose    bool
	outputPath string
	parallel   bool
	onProgress ProgressCallback
	stages     []Stage
}

// NewRunner creates a runner with the standard stage list.
func NewRunner(opts Options) *Runner {
	r := &Runner{
		client:     opts.Client,
		store:      opts.Store,
		printer:    opts.Printer,
		verbose:    opts.Verbose,
		outputPath: opts.OutputPath,
		parallel:   opts.ParallelAnalysis,
		onProgress: opts.OnProgress,
	}
	r.stages = r.buildStages()
	if r.parallel {
		// In parallel mode the strategy stage drives both analyses; the
		// personality stage is then skipped as already completed.
		for i := range r.stages {
			if r.stages[i].Name == StageStrategyAnalysis {
				r.stages[i].Run = r.runAnalysesParallel
			}
		}
	}
	return r
}

// Run executes all pending stages in order. Already-completed stages are
// skipped, so a resumed state picks up where it stopped. On stage failure the
// run halts with everything produced so far intact and checkpointed.
func (r *Runner) Run(ctx context.Context, st *state.RunState) error {
	total := len(r.stages)
	st.Status = state.StatusRunning

	for i, stage := range r.stages {
		if st.IsStageCompleted(stage.Name) {
			fmt.Printf("Stage %d/%d: %s (already completed, skipping)\n", i+1, total, stage.Name)
			continue
		}

		fmt.Printf("Stage %d/%d: %s...\n", i+1, total, stage.Name)
		st.CurrentStage = stage.Name
		r.emitProgress(st, stage.Name, "started")

		start := time.Now()
		err := stage.Run(ctx, st)
		elapsed := time.Since(start)

		if err != nil {
			// Duration is recorded even for failed stages, but the stage is
			// not marked completed so a resume will retry it.
			st.StageDurations[stage.Name] = elapsed.Seconds()
			st.AddError(fmt.Sprintf("stage %s: %v", stage.Name, err))
			st.Status = state.StatusFailed
			st.TotalDuration = time.Since(st.StartedAt).Seconds()
			r.checkpointState(ctx, st)
			return fmt.Errorf("stage %s: %w", stage.Name, err)
		}

		st.MarkStageCompleted(stage.Name, elapsed)
		st.TotalDuration = time.Since(st.StartedAt).Seconds()
		r.emitProgress(st, stage.Name, "completed")
		r.checkpointState(ctx, st)
	}

	st.Status = state.StatusCompleted
	st.CurrentStage = ""
	st.TotalDuration = time.Since(st.StartedAt).Seconds()
	r.checkpointState(ctx, st)

	if r.verbose && r.printer != nil {
		r.printer.PrintRunSummary(st)
	}
	return nil
}

// Resume loads the checkpointed state for a thread and continues the run.
func (r *Runner) Resume(ctx context.Context, threadID string) (*state.RunState, error) {
	if r.store == nil {
		return nil, fmt.Errorf("resume requires a checkpoint store")
	}
	st, err := r.store.Load(ctx, threadID)
	if err != nil {
		return nil, fmt.Errorf("failed to load checkpoint for thread %s: %w", threadID, err)
	}

	fmt.Printf("Resuming thread %s from stage %d of %d\n", threadID, len(st.CompletedStages)+1, len(r.stages))
	if err := r.Run(ctx, st); err != nil {
		return st, err
	}
	return st, nil
}

// checkpointState snapshots the state; persistence failures are recorded as
// warnings rather than halting the run.
func (r *Runner) checkpointState(ctx context.Context, st *state.RunState) {
	if r.store == nil {
		return
	}
	if err := r.store.Save(ctx, st); err != nil {
		st.AddWarning(fmt.Sprintf("checkpoint save failed: %v", err))
	}
}

func (r *Runner) emitProgress(st *state.RunState, stage, message string) {
	if r.onProgress == nil {
		return
	}
	r.onProgress(ProgressEvent{
		Stage:    stage,
		Message:  message,
		Progress: st.Progress(len(r.stages)),
		ThreadID: st.ThreadID,
	})
}
