// Package state defines the shared run state threaded through every pipeline stage.
package state

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/jonathan/sales-simulator/internal/types"
)

// DefaultMaxIterations bounds the conversation generation loop
const DefaultMaxIterations = 30

// Run status values
const (
	StatusRunning   = "running"
	StatusCompleted = "completed"
	StatusFailed    = "failed"
)

// RunState is the single mutable record threaded through the pipeline.
// Each stage writes only its own output field; errors and warnings are
// append-only and never erase prior stage outputs.
type RunState struct {
	ExecutionID   string    `json:"execution_id"`
	ThreadID      string    `json:"thread_id"`
	StartedAt     time.Time `json:"started_at"`
	UpdatedAt     time.Time `json:"updated_at"`
	MaxIterations int       `json:"max_iterations"`

	CustomerDocPath string `json:"customer_doc_path"`
	CompanyDocPath  string `json:"company_doc_path,omitempty"`

	Params types.ConversationParams `json:"params"`

	CustomerProfile     *types.CustomerProfile     `json:"customer_profile,omitempty"`
	Conversation        *types.Conversation        `json:"conversation,omitempty"`
	StrategyAnalysis    *types.StrategyAnalysis    `json:"strategy_analysis,omitempty"`
	PersonalityAnalysis *types.PersonalityAnalysis `json:"personality_analysis,omitempty"`

	CompletedStages []string           `json:"completed_stages"`
	Errors          []string           `json:"errors"`
	Warnings        []string           `json:"warnings"`
	StageDurations  map[string]float64 `json:"stage_durations"`
	WorkflowSummary map[string]any     `json:"workflow_summary,omitempty"`

	Status        string  `json:"status"`
	CurrentStage  string  `json:"current_stage,omitempty"`
	TotalDuration float64 `json:"total_duration"`
}

// New creates a fresh run state with a generated execution id
func New(threadID string) *RunState {
	now := time.Now()
	if threadID == "" {
		threadID = uuid.NewString()
	}
	return &RunState{
		ExecutionID:     uuid.NewString(),
		ThreadID:        threadID,
		StartedAt:       now,
		UpdatedAt:       now,
		MaxIterations:   DefaultMaxIterations,
		Params:          types.DefaultConversationParams(),
		CompletedStages: []string{},
		Errors:          []string{},
		Warnings:        []string{},
		StageDurations:  map[string]float64{},
		Status:          StatusRunning,
	}
}

// MarkStageCompleted appends the stage to the completed set (once) and
// records its duration. Re-running a stage overwrites its prior duration.
func (s *RunState) MarkStageCompleted(name string, duration time.Duration) {
	if !s.IsStageCompleted(name) {
		s.CompletedStages = append(s.CompletedStages, name)
	}
	s.StageDurations[name] = duration.Seconds()
	s.UpdatedAt = time.Now()
}

// IsStageCompleted reports whether the named stage has already run
func (s *RunState) IsStageCompleted(name string) bool {
	for _, completed := range s.CompletedStages {
		if completed == name {
			return true
		}
	}
	return false
}

// AddError appends a timestamped error entry
func (s *RunState) AddError(msg string) {
	s.Errors = append(s.Errors, timestamped(msg))
	s.UpdatedAt = time.Now()
}

// AddWarning appends a timestamped warning entry
func (s *RunState) AddWarning(msg string) {
	s.Warnings = append(s.Warnings, timestamped(msg))
	s.UpdatedAt = time.Now()
}

// Progress returns completion as a percentage of the given stage count
func (s *RunState) Progress(totalStages int) float64 {
	if totalStages <= 0 {
		return 0
	}
	pct := float64(len(s.CompletedStages)) / float64(totalStages) * 100
	if pct > 100 {
		pct = 100
	}
	return pct
}

// Clone returns a deep copy of the state via a JSON round-trip. Used to hand
// independent working copies to concurrent analysis stages.
func (s *RunState) Clone() (*RunState, error) {
	data, err := json.Marshal(s)
	if err != nil {
		return nil, fmt.Errorf("failed to clone state: %w", err)
	}
	var clone RunState
	if err := json.Unmarshal(data, &clone); err != nil {
		return nil, fmt.Errorf("failed to clone state: %w", err)
	}
	return &clone, nil
}

func timestamped(msg string) string {
	return fmt.Sprintf("[%s] %s", time.Now().Format(time.RFC3339), msg)
}
