package types

import (
	"math"
	"strconv"
	"strings"
)

// Midpoint defaults substituted for out-of-range or non-numeric source values
const (
	// MidpointScore is the default for 0-10 effectiveness scores
	MidpointScore = 7.0
	// MidpointConfidence is the default for 0-100 confidence values
	MidpointConfidence = 50
	// DISCBalanced is the per-dimension default for an even DISC split
	DISCBalanced = 25.0
)

// ClampScore coerces an arbitrary value to a 0-10 score. Non-numeric or NaN
// input becomes the midpoint default; out-of-range input is clamped.
func ClampScore(v any) float64 {
	f, ok := toFloat(v)
	if !ok || math.IsNaN(f) || math.IsInf(f, 0) {
		return MidpointScore
	}
	if f < 0 {
		return 0
	}
	if f > 10 {
		return 10
	}
	return f
}

// ClampConfidence coerces an arbitrary value to a 0-100 integer confidence.
// Non-numeric input becomes the midpoint default.
func ClampConfidence(v any) int {
	f, ok := toFloat(v)
	if !ok || math.IsNaN(f) || math.IsInf(f, 0) {
		return MidpointConfidence
	}
	if f < 0 {
		return 0
	}
	if f > 100 {
		return 100
	}
	return int(math.Round(f))
}

// DefaultDISCProfile returns an evenly balanced DISC distribution
func DefaultDISCProfile() map[string]float64 {
	return map[string]float64{
		"D": DISCBalanced,
		"I": DISCBalanced,
		"S": DISCBalanced,
		"C": DISCBalanced,
	}
}

// NormalizeDISCProfile clamps each DISC dimension to 0-100, substitutes the
// balanced default for missing or non-numeric dimensions, and rescales the
// four values to sum to 100 when the total drifts by more than 5.
func NormalizeDISCProfile(raw map[string]any) map[string]float64 {
	profile := DefaultDISCProfile()
	for dim := range profile {
		v, ok := raw[dim]
		if !ok {
			// accept lowercase dimension keys too
			v, ok = raw[strings.ToLower(dim)]
		}
		if !ok {
			continue
		}
		f, numeric := toFloat(v)
		if !numeric || math.IsNaN(f) || math.IsInf(f, 0) {
			continue
		}
		if f < 0 {
			f = 0
		}
		if f > 100 {
			f = 100
		}
		profile[dim] = f
	}

	total := profile["D"] + profile["I"] + profile["S"] + profile["C"]
	if total > 0 && math.Abs(total-100) > 5 {
		for dim, v := range profile {
			profile[dim] = math.Round(v/total*100*10) / 10
		}
	}
	return profile
}

// toFloat attempts to interpret a decoded JSON value as a number
func toFloat(v any) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case float32:
		return float64(n), true
	case int:
		return float64(n), true
	case int64:
		return float64(n), true
	case string:
		f, err := strconv.ParseFloat(strings.TrimSpace(n), 64)
		if err != nil {
			return 0, false
		}
		return f, true
	default:
		return 0, false
	}
}
