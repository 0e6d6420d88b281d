package pipeline

import (
	"context"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/jonathan/sales-simulator/internal/state"
)

// runAnalysesParallel runs the strategy and personality analyses concurrently
// against independent clones of the state, then merges each branch's output
// back by field ownership. A plain errgroup is used so one branch failing
// does not cancel the other.
func (r *Runner) runAnalysesParallel(ctx context.Context, st *state.RunState) error {
	strategyState, err := st.Clone()
	if err != nil {
		return err
	}
	personalityState, err := st.Clone()
	if err != nil {
		return err
	}

	baseWarnings := len(st.Warnings)
	baseErrors := len(st.Errors)

	var g errgroup.Group
	var personalityElapsed time.Duration

	g.Go(func() error {
		return r.runStrategyAnalysis(ctx, strategyState)
	})
	g.Go(func() error {
		start := time.Now()
		err := r.runPersonalityAnalysis(ctx, personalityState)
		personalityElapsed = time.Since(start)
		return err
	})

	runErr := g.Wait()

	// Merge regardless of failure so partial results survive on the state.
	st.StrategyAnalysis = strategyState.StrategyAnalysis
	st.PersonalityAnalysis = personalityState.PersonalityAnalysis
	mergeEntries(st, strategyState, personalityState, baseWarnings, baseErrors)

	if personalityState.PersonalityAnalysis != nil {
		st.MarkStageCompleted(StagePersonalityAnalysis, personalityElapsed)
	}
	return runErr
}

// mergeEntries appends the warning and error entries each branch added on its
// clone back onto the shared state.
func mergeEntries(st, strategyState, personalityState *state.RunState, baseWarnings, baseErrors int) {
	for _, branch := range []*state.RunState{strategyState, personalityState} {
		if len(branch.Warnings) > baseWarnings {
			st.Warnings = append(st.Warnings, branch.Warnings[baseWarnings:]...)
		}
		if len(branch.Errors) > baseErrors {
			st.Errors = append(st.Errors, branch.Errors[baseErrors:]...)
		}
	}
}
