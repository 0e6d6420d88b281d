package analysis

import (
	"context"

	"github.com/jonathan/sales-simulator/internal/extraction"
	"github.com/jonathan/sales-simulator/internal/llm"
	"github.com/jonathan/sales-simulator/internal/types"
)

const strategySystemPrompt = "You are an expert B2B sales strategy analyst. " +
	"You assess sales conversations objectively and return structured JSON."

// strategyComponent pairs a component name with its extraction schema and
// the key expected in the model output, used to anchor JSON recovery.
type strategyComponent struct {
	name        string
	expectedKey string
	schema      llm.ExtractionSchema
}

var strategyComponents = []strategyComponent{
	{
		name:        "methodology",
		expectedKey: "score",
		schema: llm.ExtractionSchema{
			Name:        "MethodologyAssessment",
			Description: "Assess the sales methodology used by the company representative in this conversation.",
			Fields: []llm.SchemaField{
				{Name: "score", Type: "number", Description: "methodology quality from 0 to 10", Required: true},
				{Name: "approach", Type: "string", Description: "the selling approach observed"},
				{Name: "strengths", Type: "[]string", Description: "what the representative did well"},
				{Name: "improvement_areas", Type: "[]string", Description: "where the methodology fell short"},
			},
		},
	},
	{
		name:        "positioning",
		expectedKey: "score",
		schema: llm.ExtractionSchema{
			Name:        "CompetitivePositioning",
			Description: "Assess how well the offering was positioned against the customer's priorities and likely alternatives.",
			Fields: []llm.SchemaField{
				{Name: "score", Type: "number", Description: "positioning quality from 0 to 10", Required: true},
				{Name: "differentiation", Type: "string", Description: "how the offering was differentiated"},
				{Name: "strengths", Type: "[]string", Description: "effective positioning moves"},
				{Name: "improvement_areas", Type: "[]string", Description: "missed positioning opportunities"},
			},
		},
	},
	{
		name:        "objection_handling",
		expectedKey: "score",
		schema: llm.ExtractionSchema{
			Name:        "ObjectionHandling",
			Description: "Assess how customer objections and concerns were surfaced and handled.",
			Fields: []llm.SchemaField{
				{Name: "score", Type: "number", Description: "objection handling quality from 0 to 10", Required: true},
				{Name: "objections_identified", Type: "[]string", Description: "objections the customer raised"},
				{Name: "response_quality", Type: "string", Description: "overall quality of responses"},
			},
		},
	},
	{
		name:        "value_delivery",
		expectedKey: "score",
		schema: llm.ExtractionSchema{
			Name:        "ValueDelivery",
			Description: "Assess how clearly business value was articulated and tied to the customer's stated pain points.",
			Fields: []llm.SchemaField{
				{Name: "score", Type: "number", Description: "value articulation quality from 0 to 10", Required: true},
				{Name: "value_articulation", Type: "string", Description: "how value was expressed"},
				{Name: "next_steps", Type: "[]string", Description: "concrete next steps proposed"},
			},
		},
	},
	{
		name:        "recommendations",
		expectedKey: "recommendations",
		schema: llm.ExtractionSchema{
			Name:        "StrategyRecommendations",
			Description: "Based on the conversation, recommend how the sales approach should be improved.",
			Fields: []llm.SchemaField{
				{Name: "recommendations", Type: "[]string", Description: "specific actionable recommendations", Required: true},
				{Name: "next_steps", Type: "[]string", Description: "what the representative should do next"},
				{Name: "focus_areas", Type: "[]string", Description: "themes to concentrate on"},
			},
		},
	},
}

// StrategyAnalyzer scores a conversation across methodology, positioning,
// objection handling and value delivery, and produces recommendations.
type StrategyAnalyzer struct {
	client llm.Client
}

// NewStrategyAnalyzer creates a strategy analyzer backed by the given client.
func NewStrategyAnalyzer(client llm.Client) *StrategyAnalyzer {
	return &StrategyAnalyzer{client: client}
}

// StrategyResult carries the assembled analysis and the names of any
// components that degraded to their fallback data.
type StrategyResult struct {
	Analysis *types.StrategyAnalysis
	Degraded []string
}

// Analyze runs all strategy components and assembles one canonical record.
// It never returns an error: failed components use their fallback maps and
// are reported in Degraded.
func (a *StrategyAnalyzer) Analyze(ctx context.Context, conv *types.Conversation, p *types.CustomerProfile) StrategyResult {
	input := analysisInput(conv, p)

	components := make(map[string]map[string]any, len(strategyComponents))
	var degraded []string
	for _, c := range strategyComponents {
		data, ok := a.runComponent(ctx, c, input)
		if !ok {
			degraded = append(degraded, c.name)
		}
		components[c.name] = data
	}

	conversationID := ""
	if conv != nil {
		conversationID = conv.ConversationID
	}
	return StrategyResult{
		Analysis: assembleStrategy(conversationID, components),
		Degraded: degraded,
	}
}

func (a *StrategyAnalyzer) runComponent(ctx context.Context, c strategyComponent, input string) (map[string]any, bool) {
	fallback := cloneMap(strategyFallbacks[c.name])

	prompt := llm.BuildExtractionPrompt(c.schema, input)
	resp, err := a.client.InvokeJSON(ctx, strategySystemPrompt, prompt, llm.TierStandard)
	if err != nil {
		return fallback, false
	}

	res := extraction.ExtractResult(resp, c.expectedKey, fallback)
	if res.Value == nil {
		return fallback, false
	}
	return res.Value, !res.UsedFallback
}

func assembleStrategy(conversationID string, components map[string]map[string]any) *types.StrategyAnalysis {
	sa := types.NewStrategyAnalysis(conversationID)

	sa.MethodologyScore = componentScore(components["methodology"])
	sa.PositioningScore = componentScore(components["positioning"])
	sa.ValuePropScore = componentScore(components["value_delivery"])
	sa.OverallEffectiveness = overallEffectiveness(components)

	sa.MethodologyAssessment = components["methodology"]
	sa.CompetitivePositioning = components["positioning"]
	sa.ObjectionHandling = components["objection_handling"]
	sa.ValueDelivery = components["value_delivery"]

	recs, _ := extraction.PickValue(components["recommendations"], "recommendations")
	sa.Recommendations = extraction.CoerceStringList(recs)
	sa.NextSteps = gatherLists(components, "next_steps")
	sa.Strengths = gatherLists(components, "strengths")
	sa.ImprovementAreas = gatherLists(components, "improvement_areas", "weaknesses", "focus_areas")

	sa.RawDetails = make(map[string]any, len(components))
	for name, data := range components {
		sa.RawDetails[name] = data
	}
	return sa
}

func componentScore(data map[string]any) float64 {
	v, _ := extraction.PickValue(data, "score", "overall_score", "rating")
	return types.ClampScore(v)
}

// overallEffectiveness prefers an explicit overall score from any component
// and otherwise averages the three scored dimensions.
func overallEffectiveness(components map[string]map[string]any) float64 {
	for _, c := range strategyComponents {
		if v, ok := extraction.FindNested(components[c.name], "overall_effectiveness", "effectiveness_score"); ok {
			return types.ClampScore(v)
		}
	}
	sum := componentScore(components["methodology"]) +
		componentScore(components["positioning"]) +
		componentScore(components["value_delivery"])
	return types.ClampScore(sum / 3)
}

// gatherLists collects list values for the given keys across all components,
// in the declared component order, de-duplicated.
func gatherLists(components map[string]map[string]any, keys ...string) []string {
	seen := make(map[string]bool)
	out := []string{}
	for _, c := range strategyComponents {
		data := components[c.name]
		for _, key := range keys {
			for _, s := range extraction.CoerceStringList(data[key]) {
				if !seen[s] {
					seen[s] = true
					out = append(out, s)
				}
			}
		}
	}
	return out
}

func cloneMap(src map[string]any) map[string]any {
	out := make(map[string]any, len(src))
	for k, v := range src {
		out[k] = v
	}
	return out
}
