// Package pipeline provides the high-level orchestration for the sales
// simulation process: profile analysis, conversation generation, the two
// post-hoc analyses and output persistence.
package pipeline

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/jonathan/sales-simulator/internal/analysis"
	"github.com/jonathan/sales-simulator/internal/conversation"
	"github.com/jonathan/sales-simulator/internal/profile"
	"github.com/jonathan/sales-simulator/internal/schemas"
	"github.com/jonathan/sales-simulator/internal/state"
)

// Stage names, in execution order
const (
	StageDocumentAnalysis    = "document_analysis"
	StageMessageComposition  = "message_composition"
	StageStrategyAnalysis    = "strategy_analysis"
	StagePersonalityAnalysis = "personality_analysis"
	StageIntegrateResults    = "integrate_results"
	StageSaveOutputs         = "save_outputs"
)

// Stage is one named unit of pipeline work. Run mutates only the fields the
// stage owns; a returned error halts the pipeline.
type Stage struct {
	Name string
	Run  func(ctx context.Context, st *state.RunState) error
}

// buildStages assembles the standard stage list for a runner.
func (r *Runner) buildStages() []Stage {
	return []Stage{
		{Name: StageDocumentAnalysis, Run: r.runDocumentAnalysis},
		{Name: StageMessageComposition, Run: r.runMessageComposition},
		{Name: StageStrategyAnalysis, Run: r.runStrategyAnalysis},
		{Name: StagePersonalityAnalysis, Run: r.runPersonalityAnalysis},
		{Name: StageIntegrateResults, Run: r.runIntegrateResults},
		{Name: StageSaveOutputs, Run: r.runSaveOutputs},
	}
}

// runDocumentAnalysis loads the customer document and extracts the canonical
// profile. Unreadable input is recorded as an error but the run continues on
// the fallback profile.
func (r *Runner) runDocumentAnalysis(ctx context.Context, st *state.RunState) error {
	raw, err := profile.LoadCustomerDocument(st.CustomerDocPath)
	if err != nil {
		var inputErr *profile.InputError
		if !errors.As(err, &inputErr) {
			return err
		}
		st.AddError(fmt.Sprintf("customer document unusable: %v", inputErr))
		raw = map[string]any{}
	}

	result := profile.Analyze(ctx, r.client, raw)
	if result.UsedFallback {
		st.AddWarning(fmt.Sprintf("profile analysis degraded to fallback: %s", result.Reason))
	}
	st.CustomerProfile = result.Profile

	if missing := profile.ValidateCompleteness(result.Profile); len(missing) > 0 {
		st.AddWarning(fmt.Sprintf("profile incomplete, defaulted fields: %s", strings.Join(missing, ", ")))
	}

	if r.verbose && r.printer != nil {
		r.printer.PrintCustomerProfile(st.CustomerProfile)
	}
	return nil
}

// runMessageComposition generates the conversation from the analyzed profile.
func (r *Runner) runMessageComposition(ctx context.Context, st *state.RunState) error {
	if st.CustomerProfile == nil {
		st.CustomerProfile = profile.MinimalProfile()
	}

	composer := conversation.NewComposer(r.client)
	if st.CompanyDocPath != "" {
		content, err := os.ReadFile(st.CompanyDocPath)
		if err != nil {
			st.AddWarning(fmt.Sprintf("company document unreadable, composing without it: %v", err))
		} else {
			composer.SetCompanyContext(string(content))
		}
	}
	conv, degraded := composer.Compose(ctx, st.CustomerProfile, st.Params, st.MaxIterations)
	st.Conversation = conv

	if len(degraded) > 0 {
		st.AddWarning(fmt.Sprintf("message composition degraded for %d of %d messages: %s",
			len(degraded), len(conv.Messages), degraded[0]))
	}

	if r.verbose && r.printer != nil {
		r.printer.PrintConversation(st.Conversation)
	}
	return nil
}

// runStrategyAnalysis assesses the generated conversation.
func (r *Runner) runStrategyAnalysis(ctx context.Context, st *state.RunState) error {
	result := analysis.NewStrategyAnalyzer(r.client).Analyze(ctx, st.Conversation, st.CustomerProfile)
	st.StrategyAnalysis = result.Analysis

	if len(result.Degraded) > 0 {
		st.AddWarning(fmt.Sprintf("strategy analysis used fallback data for: %s",
			strings.Join(result.Degraded, ", ")))
	}

	if r.verbose && r.printer != nil {
		r.printer.PrintStrategyAnalysis(st.StrategyAnalysis)
	}
	return nil
}

// runPersonalityAnalysis classifies the customer personality.
func (r *Runner) runPersonalityAnalysis(ctx context.Context, st *state.RunState) error {
	result := analysis.NewPersonalityAnalyzer(r.client).Analyze(ctx, st.Conversation, st.CustomerProfile)
	st.PersonalityAnalysis = result.Analysis

	if len(result.Degraded) > 0 {
		st.AddWarning(fmt.Sprintf("personality analysis used fallback data for: %s",
			strings.Join(result.Degraded, ", ")))
	}

	if r.verbose && r.printer != nil {
		r.printer.PrintPersonalityAnalysis(st.PersonalityAnalysis)
	}
	return nil
}

// runIntegrateResults cross-links the records, validates each against its
// schema and builds the workflow summary embedded in the final artifact.
// Validation mismatches are warnings, not failures: the records are still
// persisted for inspection.
func (r *Runner) runIntegrateResults(_ context.Context, st *state.RunState) error {
	conversationID := ""
	if st.Conversation != nil {
		conversationID = st.Conversation.ConversationID
	}
	if st.StrategyAnalysis != nil && st.StrategyAnalysis.ConversationID == "" {
		st.StrategyAnalysis.ConversationID = conversationID
	}
	if st.PersonalityAnalysis != nil && st.PersonalityAnalysis.ConversationID == "" {
		st.PersonalityAnalysis.ConversationID = conversationID
	}

	records := []struct {
		kind   string
		record any
		skip   bool
	}{
		{schemas.KindCustomerProfile, st.CustomerProfile, st.CustomerProfile == nil},
		{schemas.KindConversation, st.Conversation, st.Conversation == nil},
		{schemas.KindStrategyAnalysis, st.StrategyAnalysis, st.StrategyAnalysis == nil},
		{schemas.KindPersonalityAnalysis, st.PersonalityAnalysis, st.PersonalityAnalysis == nil},
	}
	present := make(map[string]bool, len(records))
	for _, rec := range records {
		present[rec.kind] = !rec.skip
		if rec.skip {
			continue
		}
		if err := schemas.ValidateRecord(rec.kind, rec.record); err != nil {
			st.AddWarning(fmt.Sprintf("%s failed schema validation: %v", rec.kind, err))
		}
	}

	messageCount := 0
	if st.Conversation != nil {
		messageCount = len(st.Conversation.Messages)
	}
	st.WorkflowSummary = map[string]any{
		"components_present": present,
		"message_count":      messageCount,
		"error_count":        len(st.Errors),
		"warning_count":      len(st.Warnings),
	}
	return nil
}

// runSaveOutputs writes the output artifact and takes the final checkpoint.
// It is the last stage, so the state is finalized before writing.
func (r *Runner) runSaveOutputs(ctx context.Context, st *state.RunState) error {
	st.Status = state.StatusCompleted
	st.CurrentStage = ""

	if r.outputPath != "" {
		if err := WriteOutput(st, r.outputPath); err != nil {
			return err
		}
	}
	if r.store != nil {
		if err := r.store.Save(ctx, st); err != nil {
			return err
		}
	}
	return nil
}
