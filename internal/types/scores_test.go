package types

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestClampScore(t *testing.T) {
	tests := []struct {
		name     string
		input    any
		expected float64
	}{
		{"In range float", 8.5, 8.5},
		{"Zero", 0.0, 0.0},
		{"Upper bound", 10.0, 10.0},
		{"Above range clamps", 42.0, 10.0},
		{"Below range clamps", -3.0, 0.0},
		{"Integer input", 6, 6.0},
		{"Numeric string", "7.5", 7.5},
		{"Non-numeric string", "high", MidpointScore},
		{"Nil", nil, MidpointScore},
		{"Map input", map[string]any{"score": 8}, MidpointScore},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, ClampScore(tt.input))
		})
	}
}

func TestClampConfidence(t *testing.T) {
	tests := []struct {
		name     string
		input    any
		expected int
	}{
		{"In range", 85.0, 85},
		{"Above range clamps", 150.0, 100},
		{"Below range clamps", -10.0, 0},
		{"Rounds to nearest", 72.6, 73},
		{"Non-numeric", "very confident", MidpointConfidence},
		{"Nil", nil, MidpointConfidence},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, ClampConfidence(tt.input))
		})
	}
}

func TestNormalizeDISCProfile(t *testing.T) {
	t.Run("already normalized passes through", func(t *testing.T) {
		profile := NormalizeDISCProfile(map[string]any{
			"D": 40.0, "I": 30.0, "S": 20.0, "C": 10.0,
		})
		assert.Equal(t, 40.0, profile["D"])
		assert.Equal(t, 10.0, profile["C"])
	})

	t.Run("rescales when sum drifts", func(t *testing.T) {
		profile := NormalizeDISCProfile(map[string]any{
			"D": 80.0, "I": 80.0, "S": 80.0, "C": 80.0,
		})
		sum := profile["D"] + profile["I"] + profile["S"] + profile["C"]
		assert.InDelta(t, 100.0, sum, 1.0)
	})

	t.Run("missing dimensions default to balanced", func(t *testing.T) {
		profile := NormalizeDISCProfile(map[string]any{"D": 25.0})
		assert.Equal(t, DISCBalanced, profile["I"])
		assert.Equal(t, DISCBalanced, profile["S"])
		assert.Equal(t, DISCBalanced, profile["C"])
	})

	t.Run("lowercase keys accepted", func(t *testing.T) {
		profile := NormalizeDISCProfile(map[string]any{
			"d": 40.0, "i": 30.0, "s": 20.0, "c": 10.0,
		})
		assert.Equal(t, 40.0, profile["D"])
	})

	t.Run("out of range values clamp before rescale", func(t *testing.T) {
		profile := NormalizeDISCProfile(map[string]any{
			"D": 500.0, "I": -20.0, "S": 0.0, "C": 0.0,
		})
		assert.LessOrEqual(t, profile["D"], 100.0)
		assert.GreaterOrEqual(t, profile["I"], 0.0)
	})
}
