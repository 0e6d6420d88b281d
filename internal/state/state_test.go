package state

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/sales-simulator/internal/types"
)

func TestNew(t *testing.T) {
	st := New("")

	assert.NotEmpty(t, st.ExecutionID)
	assert.NotEmpty(t, st.ThreadID)
	assert.Equal(t, DefaultMaxIterations, st.MaxIterations)
	assert.Equal(t, StatusRunning, st.Status)
	assert.NotNil(t, st.CompletedStages)
	assert.NotNil(t, st.Errors)
	assert.NotNil(t, st.Warnings)
	assert.NotNil(t, st.StageDurations)
}

func TestNew_ExplicitThreadID(t *testing.T) {
	st := New("thread-42")
	assert.Equal(t, "thread-42", st.ThreadID)

	other := New("thread-42")
	assert.NotEqual(t, st.ExecutionID, other.ExecutionID, "execution ids are unique per run")
}

func TestMarkStageCompleted(t *testing.T) {
	st := New("")

	st.MarkStageCompleted("document_analysis", 2*time.Second)
	st.MarkStageCompleted("message_composition", 500*time.Millisecond)

	assert.Equal(t, []string{"document_analysis", "message_composition"}, st.CompletedStages)
	assert.Equal(t, 2.0, st.StageDurations["document_analysis"])
	assert.Equal(t, 0.5, st.StageDurations["message_composition"])
	assert.True(t, st.IsStageCompleted("document_analysis"))
	assert.False(t, st.IsStageCompleted("strategy_analysis"))
}

func TestMarkStageCompleted_RerunOverwritesDuration(t *testing.T) {
	st := New("")

	st.MarkStageCompleted("document_analysis", time.Second)
	st.MarkStageCompleted("document_analysis", 3*time.Second)

	assert.Equal(t, []string{"document_analysis"}, st.CompletedStages, "stage appears at most once")
	assert.Equal(t, 3.0, st.StageDurations["document_analysis"])
}

func TestAddErrorAndWarning(t *testing.T) {
	st := New("")

	st.AddError("input file missing")
	st.AddWarning("falling back to minimal profile")
	st.AddWarning("second warning")

	require.Len(t, st.Errors, 1)
	require.Len(t, st.Warnings, 2)
	assert.Contains(t, st.Errors[0], "input file missing")
	assert.Regexp(t, `^\[\d{4}-\d{2}-\d{2}T`, st.Errors[0], "entries are timestamped")
}

func TestProgress(t *testing.T) {
	st := New("")
	assert.Equal(t, 0.0, st.Progress(6))

	st.MarkStageCompleted("a", time.Second)
	st.MarkStageCompleted("b", time.Second)
	st.MarkStageCompleted("c", time.Second)
	assert.Equal(t, 50.0, st.Progress(6))

	assert.Equal(t, 0.0, st.Progress(0), "zero stage count does not divide by zero")
}

func TestClone(t *testing.T) {
	st := New("")
	st.CustomerProfile = types.NewCustomerProfile()
	st.CustomerProfile.CustomerName = "Acme"
	st.MarkStageCompleted("document_analysis", time.Second)
	st.AddWarning("original warning")

	clone, err := st.Clone()
	require.NoError(t, err)

	// Mutating the clone must not touch the original
	clone.CustomerProfile.CustomerName = "Globex"
	clone.AddWarning("clone warning")
	clone.StageDurations["document_analysis"] = 99

	assert.Equal(t, "Acme", st.CustomerProfile.CustomerName)
	assert.Len(t, st.Warnings, 1)
	assert.Equal(t, 1.0, st.StageDurations["document_analysis"])
	assert.Equal(t, st.ExecutionID, clone.ExecutionID)
}
