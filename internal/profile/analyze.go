package profile

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/jonathan/sales-simulator/internal/extraction"
	"github.com/jonathan/sales-simulator/internal/llm"
	"github.com/jonathan/sales-simulator/internal/prompts"
	"github.com/jonathan/sales-simulator/internal/types"
)

// AnalysisResult is the outcome of the document analysis step. Expected
// failures (transport, unparseable output) degrade to a fallback profile
// rather than surfacing as errors.
type AnalysisResult struct {
	Profile      *types.CustomerProfile
	UsedFallback bool
	Reason       string
}

// Analyze derives a canonical customer profile from the raw input document
// via the LLM. Any failure along the invoke/extract/normalize path yields a
// fallback profile built from the raw document itself.
func Analyze(ctx context.Context, client llm.Client, raw map[string]any) AnalysisResult {
	document, err := json.MarshalIndent(raw, "", "  ")
	if err != nil {
		return AnalysisResult{
			Profile:      FallbackProfile(raw),
			UsedFallback: true,
			Reason:       fmt.Sprintf("could not serialize input document: %v", err),
		}
	}

	prompt := prompts.MustGet("profile.json", "analyze-customer-document")
	userPrompt := prompt.FormatUser(map[string]string{"Document": string(document)})

	responseText, err := client.InvokeJSON(ctx, prompt.System, userPrompt, llm.TierAdvanced)
	if err != nil {
		apiErr := &APICallError{Message: "customer document analysis", Cause: err}
		return AnalysisResult{
			Profile:      FallbackProfile(raw),
			UsedFallback: true,
			Reason:       apiErr.Error(),
		}
	}

	extracted := extraction.ExtractResult(responseText, "customer_name", nil)
	if extracted.UsedFallback {
		return AnalysisResult{
			Profile:      FallbackProfile(raw),
			UsedFallback: true,
			Reason:       "model response contained no parseable JSON",
		}
	}

	return AnalysisResult{Profile: NormalizeCustomerProfile(extracted.Value)}
}
