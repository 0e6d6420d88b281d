package pipeline

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/jonathan/sales-simulator/internal/state"
)

// WriteOutput writes the full run state as the final JSON artifact. The
// artifact is self-contained: profile, conversation, both analyses, stage
// timings and every recorded error and warning.
func WriteOutput(st *state.RunState, path string) error {
	data, err := json.MarshalIndent(st, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal run output: %w", err)
	}

	if dir := filepath.Dir(path); dir != "." && dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("failed to create output directory: %w", err)
		}
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write run output: %w", err)
	}
	return nil
}
