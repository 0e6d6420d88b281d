package pipeline

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/sales-simulator/internal/checkpoint"
	"github.com/jonathan/sales-simulator/internal/llm"
	"github.com/jonathan/sales-simulator/internal/schemas"
	"github.com/jonathan/sales-simulator/internal/state"
	"github.com/jonathan/sales-simulator/internal/types"
)

const stubProfileJSON = `{
	"customer_name": "Acme Robotics",
	"industry": "Manufacturing",
	"company_size": "200-500 employees",
	"pain_points": [{"issue": "manual QA", "impact": "High", "business_impact": "slow releases"}],
	"needs": [{"requirement": "automated inspection", "priority": "High", "budget": "mid", "timeline": "Q2"}],
	"decision_criteria": ["accuracy"],
	"budget_range": "$100k-$250k",
	"timeline": "6 months",
	"communication_style": "technical",
	"decision_makers": [{"name": "Ida Lang", "role": "VP Operations", "influence_level": "high"}]
}`

// pipelineClient answers every LLM call the stages make. Analysis prompts are
// routed by their task description; everything else gets a generic scored
// response that satisfies each strategy component.
type pipelineClient struct {
	mu           sync.Mutex
	failProfile  bool
	failAnalysis bool
	failText     bool
	profileCalls int
	textCalls    int
}

func (c *pipelineClient) Invoke(_ context.Context, _, _ string, _ llm.ModelTier) (string, error) {
	c.mu.Lock()
	c.textCalls++
	c.mu.Unlock()
	if c.failText {
		return "", errors.New("simulated transport failure")
	}
	return "Thanks for the detailed walkthrough, this looks promising.", nil
}

func (c *pipelineClient) InvokeJSON(_ context.Context, _, prompt string, _ llm.ModelTier) (string, error) {
	if strings.Contains(prompt, "Analyze the following customer document") {
		c.mu.Lock()
		c.profileCalls++
		c.mu.Unlock()
		if c.failProfile {
			return "", errors.New("simulated transport failure")
		}
		return stubProfileJSON, nil
	}
	if c.failAnalysis {
		return "", errors.New("simulated transport failure")
	}
	switch {
	case strings.Contains(prompt, "Classify the customer"):
		return `{"personality_profile": "Tech-Savvy Innovator", "profile_confidence": 85, "disc_profile": {"D": 30, "I": 25, "S": 20, "C": 25}}`, nil
	case strings.Contains(prompt, "decision-making patterns"):
		return `{"decision_making_style": "analytical", "risk_tolerance": "moderate"}`, nil
	case strings.Contains(prompt, "should engage this customer"):
		return `{"recommendations": ["share a technical deep dive"], "motivational_drivers": ["innovation"]}`, nil
	default:
		return `{"score": 8, "recommendations": ["do more discovery"], "strengths": ["good rapport"], "next_steps": ["send summary"]}`, nil
	}
}

func (c *pipelineClient) GetModel(tier llm.ModelTier) string { return "stub-" + string(tier) }
func (c *pipelineClient) Close() error                       { return nil }

// failingStore rejects every save so the final persistence stage errors.
type failingStore struct{}

func (failingStore) Save(context.Context, *state.RunState) error { return errors.New("disk full") }
func (failingStore) Load(context.Context, string) (*state.RunState, error) {
	return nil, checkpoint.ErrNotFound
}
func (failingStore) List(context.Context, int) ([]checkpoint.RunSummary, error) { return nil, nil }
func (failingStore) Delete(context.Context, string) error                       { return nil }

func writeCustomerDoc(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "customer.json")
	doc := `{"company": "Acme Robotics", "industry": "Manufacturing"}`
	require.NoError(t, os.WriteFile(path, []byte(doc), 0o644))
	return path
}

func TestRunner_CompletesAllStages(t *testing.T) {
	client := &pipelineClient{}
	store := checkpoint.NewMemoryStore()
	outputPath := filepath.Join(t.TempDir(), "out", "run.json")

	var events []ProgressEvent
	runner := NewRunner(Options{
		Client:     client,
		Store:      store,
		OutputPath: outputPath,
		OnProgress: func(e ProgressEvent) { events = append(events, e) },
	})

	st := state.New("thread-1")
	st.CustomerDocPath = writeCustomerDoc(t)

	require.NoError(t, runner.Run(context.Background(), st))

	assert.Equal(t, state.StatusCompleted, st.Status)
	assert.Empty(t, st.Errors)
	assert.Empty(t, st.Warnings)
	assert.Equal(t, []string{
		StageDocumentAnalysis,
		StageMessageComposition,
		StageStrategyAnalysis,
		StagePersonalityAnalysis,
		StageIntegrateResults,
		StageSaveOutputs,
	}, st.CompletedStages)

	require.NotNil(t, st.CustomerProfile)
	assert.Equal(t, "Acme Robotics", st.CustomerProfile.CustomerName)
	require.NotNil(t, st.Conversation)
	assert.Len(t, st.Conversation.Messages, st.Params.Exchanges*2)
	require.NotNil(t, st.StrategyAnalysis)
	assert.InDelta(t, 8.0, st.StrategyAnalysis.MethodologyScore, 0.001)
	require.NotNil(t, st.PersonalityAnalysis)
	assert.Equal(t, types.ProfileTechSavvy, st.PersonalityAnalysis.PersonalityProfile)

	// Integration builds the workflow summary carried into the artifact.
	require.NotNil(t, st.WorkflowSummary)
	assert.Equal(t, map[string]bool{
		schemas.KindCustomerProfile:     true,
		schemas.KindConversation:        true,
		schemas.KindStrategyAnalysis:    true,
		schemas.KindPersonalityAnalysis: true,
	}, st.WorkflowSummary["components_present"])
	assert.Equal(t, st.Params.Exchanges*2, st.WorkflowSummary["message_count"])
	assert.Equal(t, 0, st.WorkflowSummary["warning_count"])

	// The final artifact exists and conforms to the output schema.
	data, err := os.ReadFile(outputPath)
	require.NoError(t, err)
	require.NoError(t, schemas.ValidateJSONString(mustSchema(t, schemas.KindRunOutput), string(data)))

	// The checkpoint reflects the completed run.
	saved, err := store.Load(context.Background(), "thread-1")
	require.NoError(t, err)
	assert.Equal(t, state.StatusCompleted, saved.Status)

	// Progress monotonically increases and finishes at 100.
	require.NotEmpty(t, events)
	last := 0.0
	for _, e := range events {
		assert.GreaterOrEqual(t, e.Progress, last)
		last = e.Progress
	}
	assert.InDelta(t, 100.0, events[len(events)-1].Progress, 0.001)
}

func mustSchema(t *testing.T, kind string) string {
	t.Helper()
	schema, err := schemas.SchemaFor(kind)
	require.NoError(t, err)
	return schema
}

func TestRunner_MissingDocumentContinuesOnFallback(t *testing.T) {
	client := &pipelineClient{failProfile: true}
	runner := NewRunner(Options{Client: client, Store: checkpoint.NewMemoryStore()})

	st := state.New("")
	st.CustomerDocPath = "/nonexistent/customer.json"

	require.NoError(t, runner.Run(context.Background(), st))

	// The unreadable input is an error, the degraded analysis a warning, and
	// the run still completes on the fallback profile.
	assert.Equal(t, state.StatusCompleted, st.Status)
	require.Len(t, st.Errors, 1)
	assert.Contains(t, st.Errors[0], "customer document unusable")
	require.NotNil(t, st.CustomerProfile)
	assert.Equal(t, "Prospective Customer", st.CustomerProfile.CustomerName)
	require.NotNil(t, st.Conversation)
	assert.NotEmpty(t, st.Conversation.Messages)
}

func TestRunner_AnalysisFailureAddsOneWarningPerStage(t *testing.T) {
	client := &pipelineClient{failAnalysis: true}
	runner := NewRunner(Options{Client: client})

	st := state.New("")
	st.CustomerDocPath = writeCustomerDoc(t)

	require.NoError(t, runner.Run(context.Background(), st))

	assert.Equal(t, state.StatusCompleted, st.Status)
	assert.Empty(t, st.Errors)

	var strategyWarnings, personalityWarnings int
	for _, w := range st.Warnings {
		if strings.Contains(w, "strategy analysis used fallback") {
			strategyWarnings++
		}
		if strings.Contains(w, "personality analysis used fallback") {
			personalityWarnings++
		}
	}
	assert.Equal(t, 1, strategyWarnings)
	assert.Equal(t, 1, personalityWarnings)

	// Fallback-built records are still schema-valid.
	assert.NoError(t, schemas.ValidateRecord(schemas.KindStrategyAnalysis, st.StrategyAnalysis))
	assert.NoError(t, schemas.ValidateRecord(schemas.KindPersonalityAnalysis, st.PersonalityAnalysis))
}

func TestRunner_StageFailureHaltsWithPartialState(t *testing.T) {
	client := &pipelineClient{}
	runner := NewRunner(Options{Client: client, Store: failingStore{}})

	st := state.New("thread-fail")
	st.CustomerDocPath = writeCustomerDoc(t)

	err := runner.Run(context.Background(), st)

	require.Error(t, err)
	assert.Contains(t, err.Error(), fmt.Sprintf("stage %s:", StageSaveOutputs))
	assert.Equal(t, state.StatusFailed, st.Status)

	// Everything produced before the failing stage is intact.
	assert.NotNil(t, st.CustomerProfile)
	assert.NotNil(t, st.Conversation)
	assert.NotNil(t, st.StrategyAnalysis)
	assert.NotNil(t, st.PersonalityAnalysis)
	assert.False(t, st.IsStageCompleted(StageSaveOutputs))
	// The failed stage's duration is still recorded.
	_, ok := st.StageDurations[StageSaveOutputs]
	assert.True(t, ok)

	// The failure is recorded in the state itself, so the checkpointed
	// snapshot of a halted run carries it.
	require.Len(t, st.Errors, 1)
	assert.Contains(t, st.Errors[0], fmt.Sprintf("stage %s:", StageSaveOutputs))
}

func TestRunner_ResumeSkipsCompletedStages(t *testing.T) {
	client := &pipelineClient{}
	store := checkpoint.NewMemoryStore()
	ctx := context.Background()

	// Checkpoint a run that already finished its first two stages.
	st := state.New("thread-resume")
	st.CustomerDocPath = writeCustomerDoc(t)
	st.CustomerProfile = types.NewCustomerProfile()
	st.CustomerProfile.CustomerName = "Acme Robotics"
	st.Conversation = &types.Conversation{
		ConversationID: "conv-9",
		Goal:           "demo",
		Channel:        types.ChannelEmail,
		Messages:       []types.Message{{Sender: types.SenderCompany, Content: "Hi"}},
		Status:         "completed",
	}
	st.MarkStageCompleted(StageDocumentAnalysis, 0)
	st.MarkStageCompleted(StageMessageComposition, 0)
	require.NoError(t, store.Save(ctx, st))

	runner := NewRunner(Options{Client: client, Store: store})
	resumed, err := runner.Resume(ctx, "thread-resume")

	require.NoError(t, err)
	assert.Equal(t, state.StatusCompleted, resumed.Status)
	assert.Len(t, resumed.CompletedStages, 6)

	// Neither the profile extraction nor any conversation message was redone.
	assert.Equal(t, 0, client.profileCalls)
	assert.Equal(t, 0, client.textCalls)
	assert.Equal(t, "conv-9", resumed.Conversation.ConversationID)
}

func TestRunner_ResumeUnknownThread(t *testing.T) {
	runner := NewRunner(Options{Client: &pipelineClient{}, Store: checkpoint.NewMemoryStore()})

	_, err := runner.Resume(context.Background(), "no-such-thread")

	assert.ErrorIs(t, err, checkpoint.ErrNotFound)
}

func TestRunner_ParallelAnalysis(t *testing.T) {
	client := &pipelineClient{}
	runner := NewRunner(Options{Client: client, ParallelAnalysis: true})

	st := state.New("")
	st.CustomerDocPath = writeCustomerDoc(t)

	require.NoError(t, runner.Run(context.Background(), st))

	assert.Equal(t, state.StatusCompleted, st.Status)
	assert.True(t, st.IsStageCompleted(StageStrategyAnalysis))
	assert.True(t, st.IsStageCompleted(StagePersonalityAnalysis))
	require.NotNil(t, st.StrategyAnalysis)
	require.NotNil(t, st.PersonalityAnalysis)
	assert.Equal(t, types.ProfileTechSavvy, st.PersonalityAnalysis.PersonalityProfile)
}

func TestRunner_ParallelAnalysisMergesBranchWarnings(t *testing.T) {
	client := &pipelineClient{failAnalysis: true}
	runner := NewRunner(Options{Client: client, ParallelAnalysis: true})

	st := state.New("")
	st.CustomerDocPath = writeCustomerDoc(t)

	require.NoError(t, runner.Run(context.Background(), st))

	var strategyWarnings, personalityWarnings int
	for _, w := range st.Warnings {
		if strings.Contains(w, "strategy analysis used fallback") {
			strategyWarnings++
		}
		if strings.Contains(w, "personality analysis used fallback") {
			personalityWarnings++
		}
	}
	assert.Equal(t, 1, strategyWarnings)
	assert.Equal(t, 1, personalityWarnings)
}

func TestWriteOutput_CreatesDirectories(t *testing.T) {
	st := state.New("thread-out")
	path := filepath.Join(t.TempDir(), "nested", "deeper", "run.json")

	require.NoError(t, WriteOutput(st, path))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "thread-out")
}
