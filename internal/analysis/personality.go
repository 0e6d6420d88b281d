package analysis

import (
	"context"
	"strings"

	"github.com/jonathan/sales-simulator/internal/extraction"
	"github.com/jonathan/sales-simulator/internal/llm"
	"github.com/jonathan/sales-simulator/internal/types"
)

const personalitySystemPrompt = "You are an expert in buyer psychology and communication styles. " +
	"You classify B2B buyer behavior and return structured JSON."

// canonicalProfiles lists the recognized personality profile labels.
var canonicalProfiles = []string{
	types.ProfileTechSavvy,
	types.ProfileBusinessOriented,
	types.ProfileCostConscious,
	types.ProfileEarlyAdopter,
	types.ProfileRelationshipDriven,
}

type personalityComponent struct {
	name        string
	expectedKey string
	tier        llm.ModelTier
	schema      llm.ExtractionSchema
}

var personalityComponents = []personalityComponent{
	{
		name:        "decision_patterns",
		expectedKey: "decision_making_style",
		tier:        llm.TierStandard,
		schema: llm.ExtractionSchema{
			Name:        "DecisionPatterns",
			Description: "Identify the customer's decision-making patterns from this conversation.",
			Fields: []llm.SchemaField{
				{Name: "decision_making_style", Type: "string", Description: "e.g. analytical, intuitive, consensus-driven", Required: true},
				{Name: "risk_tolerance", Type: "string", Description: "low, moderate or high"},
				{Name: "information_processing", Type: "string", Description: "detailed or big-picture"},
				{Name: "relationship_orientation", Type: "string", Description: "task-oriented or relationship-oriented"},
			},
		},
	},
	{
		name:        "profile_classification",
		expectedKey: "personality_profile",
		tier:        llm.TierStandard,
		schema: llm.ExtractionSchema{
			Name:        "ProfileClassification",
			Description: "Classify the customer into exactly one of these profiles: " +
				"Tech-Savvy Innovator, Business-Oriented Decision Maker, Cost-Conscious Pragmatist, " +
				"Early Adopter Innovator, Relationship-Driven Connector.",
			Fields: []llm.SchemaField{
				{Name: "personality_profile", Type: "string", Description: "one of the five profile labels", Required: true},
				{Name: "profile_confidence", Type: "number", Description: "confidence from 0 to 100", Required: true},
				{Name: "communication_style", Type: "string", Description: "preferred communication style"},
				{Name: "disc_profile", Type: "object", Description: "DISC dimensions D, I, S, C summing to 100"},
				{Name: "key_characteristics", Type: "[]string", Description: "observed traits supporting the classification"},
				{Name: "secondary_traits", Type: "[]string", Description: "traits from other profiles also present"},
				{Name: "profile_rationale", Type: "string", Description: "why this profile was chosen"},
			},
		},
	},
	{
		name:        "recommendations",
		expectedKey: "recommendations",
		tier:        llm.TierLite,
		schema: llm.ExtractionSchema{
			Name:        "EngagementRecommendations",
			Description: "Recommend how a sales representative should engage this customer given their personality.",
			Fields: []llm.SchemaField{
				{Name: "recommendations", Type: "[]string", Description: "specific engagement recommendations", Required: true},
				{Name: "optimal_communication_approach", Type: "object", Description: "pace, detail level and format preferences"},
				{Name: "objection_handling_style", Type: "string", Description: "how to respond when this customer objects"},
				{Name: "motivational_drivers", Type: "[]string", Description: "what motivates this customer"},
			},
		},
	},
}

// PersonalityAnalyzer classifies the customer's buying personality from a
// conversation and produces engagement recommendations.
type PersonalityAnalyzer struct {
	client llm.Client
}

// NewPersonalityAnalyzer creates a personality analyzer backed by the given client.
func NewPersonalityAnalyzer(client llm.Client) *PersonalityAnalyzer {
	return &PersonalityAnalyzer{client: client}
}

// PersonalityResult carries the assembled analysis and the names of any
// components that degraded to their fallback data.
type PersonalityResult struct {
	Analysis *types.PersonalityAnalysis
	Degraded []string
}

// Analyze runs all personality components and assembles one canonical
// record. It never returns an error: failed components use their fallback
// maps and are reported in Degraded.
func (a *PersonalityAnalyzer) Analyze(ctx context.Context, conv *types.Conversation, p *types.CustomerProfile) PersonalityResult {
	input := analysisInput(conv, p)

	components := make(map[string]map[string]any, len(personalityComponents))
	var degraded []string
	for _, c := range personalityComponents {
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
	return PersonalityResult{
		Analysis: assemblePersonality(conversationID, components),
		Degraded: degraded,
	}
}

func (a *PersonalityAnalyzer) runComponent(ctx context.Context, c personalityComponent, input string) (map[string]any, bool) {
	fallback := cloneMap(personalityFallbacks[c.name])

	prompt := llm.BuildExtractionPrompt(c.schema, input)
	resp, err := a.client.InvokeJSON(ctx, personalitySystemPrompt, prompt, c.tier)
	if err != nil {
		return fallback, false
	}

	res := extraction.ExtractResult(resp, c.expectedKey, fallback)
	if res.Value == nil {
		return fallback, false
	}
	return res.Value, !res.UsedFallback
}

func assemblePersonality(conversationID string, components map[string]map[string]any) *types.PersonalityAnalysis {
	pa := types.NewPersonalityAnalysis(conversationID)

	patterns := components["decision_patterns"]
	classification := components["profile_classification"]
	rec := components["recommendations"]

	label, _ := extraction.FindNested(classification, "personality_profile", "profile", "personality_type", "classification")
	pa.PersonalityProfile = canonicalProfile(extraction.CoerceString(label, pa.PersonalityProfile))
	confidence, _ := extraction.FindNested(classification, "profile_confidence", "confidence", "confidence_score")
	pa.ProfileConfidence = types.ClampConfidence(confidence)
	commStyle, _ := extraction.FindNested(classification, "communication_style", "communicationStyle", "comm_style")
	pa.CommunicationStyle = extraction.CoerceString(commStyle, pa.CommunicationStyle)

	if disc, ok := extraction.FindNested(classification, "disc_profile", "discProfile", "disc"); ok {
		if m, isMap := disc.(map[string]any); isMap {
			pa.DISCProfile = types.NormalizeDISCProfile(m)
		}
	}

	pa.DecisionMakingStyle = nestedString(patterns, pa.DecisionMakingStyle,
		"decision_making_style", "decisionMakingStyle", "decision_style", "decision_making")
	pa.RiskTolerance = nestedString(patterns, pa.RiskTolerance,
		"risk_tolerance", "riskTolerance", "risk_appetite")
	pa.InformationProcessing = nestedString(patterns, pa.InformationProcessing,
		"information_processing", "informationProcessing")
	pa.RelationshipOrientation = nestedString(patterns, pa.RelationshipOrientation,
		"relationship_orientation", "relationshipOrientation")

	recs, _ := extraction.PickValue(rec, "recommendations")
	pa.Recommendations = extraction.CoerceStringList(recs)
	drivers, _ := extraction.FindNested(rec, "motivational_drivers", "motivators", "drivers")
	pa.MotivationalDrivers = extraction.CoerceStringList(drivers)
	pa.ObjectionHandlingStyle = nestedString(rec, pa.ObjectionHandlingStyle,
		"objection_handling_style", "objection_style")
	approach, _ := extraction.FindNested(rec, "optimal_communication_approach", "communication_approach")
	pa.OptimalCommunicationApproach = coerceStringMap(approach)

	characteristics, _ := extraction.PickValue(classification, "key_characteristics", "characteristics", "traits")
	pa.KeyCharacteristics = extraction.CoerceStringList(characteristics)
	secondary, _ := extraction.PickValue(classification, "secondary_traits")
	pa.SecondaryTraits = extraction.CoerceStringList(secondary)
	rationale, _ := extraction.PickValue(classification, "profile_rationale", "rationale", "reasoning")
	pa.ProfileRationale = extraction.CoerceString(rationale, pa.ProfileRationale)

	return pa
}

// canonicalProfile maps a free-form label onto one of the five recognized
// profiles, falling back to the default when nothing matches.
func canonicalProfile(label string) string {
	normalized := strings.ToLower(strings.TrimSpace(label))
	if normalized == "" {
		return types.ProfileBusinessOriented
	}
	for _, p := range canonicalProfiles {
		lp := strings.ToLower(p)
		if normalized == lp || strings.Contains(lp, normalized) || strings.Contains(normalized, lp) {
			return p
		}
	}
	// Partial matches on the distinctive first word of each label.
	for _, p := range canonicalProfiles {
		first := strings.ToLower(strings.SplitN(p, " ", 2)[0])
		if strings.Contains(normalized, first) {
			return p
		}
	}
	return types.ProfileBusinessOriented
}

// nestedString resolves the first matching key anywhere in the component
// data and coerces it to a string, keeping the default when absent.
func nestedString(data map[string]any, def string, keys ...string) string {
	v, ok := extraction.FindNested(data, keys...)
	if !ok {
		return def
	}
	return extraction.CoerceString(v, def)
}

func coerceStringMap(v any) map[string]string {
	m, ok := v.(map[string]any)
	if !ok {
		return map[string]string{}
	}
	out := make(map[string]string, len(m))
	for k, val := range m {
		out[k] = extraction.CoerceString(val, "")
	}
	return out
}
