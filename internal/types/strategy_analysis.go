package types

// StrategyAnalysis is the canonical record of a post-hoc sales strategy
// assessment for one conversation.
type StrategyAnalysis struct {
	ConversationID         string         `json:"conversation_id"`
	OverallEffectiveness   float64        `json:"overall_effectiveness"`
	MethodologyScore       float64        `json:"methodology_score"`
	PositioningScore       float64        `json:"positioning_score"`
	ValuePropScore         float64        `json:"value_prop_score"`
	MethodologyAssessment  map[string]any `json:"methodology_assessment"`
	CompetitivePositioning map[string]any `json:"competitive_positioning"`
	ObjectionHandling      map[string]any `json:"objection_handling"`
	ValueDelivery          map[string]any `json:"value_delivery"`
	Recommendations        []string       `json:"recommendations"`
	ImprovementAreas       []string       `json:"improvement_areas"`
	Strengths              []string       `json:"strengths"`
	NextSteps              []string       `json:"next_steps"`
	RawDetails             map[string]any `json:"raw_details,omitempty"`
}

// NewStrategyAnalysis returns a strategy record with empty collections and
// midpoint effectiveness.
func NewStrategyAnalysis(conversationID string) *StrategyAnalysis {
	return &StrategyAnalysis{
		ConversationID:         conversationID,
		OverallEffectiveness:   MidpointScore,
		MethodologyAssessment:  map[string]any{},
		CompetitivePositioning: map[string]any{},
		ObjectionHandling:      map[string]any{},
		ValueDelivery:          map[string]any{},
		Recommendations:        []string{},
		ImprovementAreas:       []string{},
		Strengths:              []string{},
		NextSteps:              []string{},
	}
}
