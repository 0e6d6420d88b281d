package types

// Personality profile labels produced by the classifier
const (
	ProfileTechSavvy          = "Tech-Savvy Innovator"
	ProfileBusinessOriented   = "Business-Oriented Decision Maker"
	ProfileCostConscious      = "Cost-Conscious Pragmatist"
	ProfileEarlyAdopter       = "Early Adopter Innovator"
	ProfileRelationshipDriven = "Relationship-Driven Connector"
)

// PersonalityAnalysis is the canonical record of a buyer personality
// classification for one conversation or customer profile.
type PersonalityAnalysis struct {
	ConversationID               string             `json:"conversation_id"`
	PersonalityProfile           string             `json:"personality_profile"`
	ProfileConfidence            int                `json:"profile_confidence"`
	CommunicationStyle           string             `json:"communication_style"`
	DISCProfile                  map[string]float64 `json:"disc_profile"`
	DecisionMakingStyle          string             `json:"decision_making_style"`
	RelationshipOrientation      string             `json:"relationship_orientation"`
	RiskTolerance                string             `json:"risk_tolerance"`
	InformationProcessing        string             `json:"information_processing"`
	MotivationalDrivers          []string           `json:"motivational_drivers"`
	Recommendations              []string           `json:"recommendations"`
	OptimalCommunicationApproach map[string]string  `json:"optimal_communication_approach"`
	ObjectionHandlingStyle       string             `json:"objection_handling_style"`
	SecondaryTraits              []string           `json:"secondary_traits"`
	KeyCharacteristics           []string           `json:"key_characteristics"`
	ProfileRationale             string             `json:"profile_rationale"`
}

// NewPersonalityAnalysis returns a personality record with sentinel defaults
// and a balanced DISC profile.
func NewPersonalityAnalysis(conversationID string) *PersonalityAnalysis {
	return &PersonalityAnalysis{
		ConversationID:               conversationID,
		PersonalityProfile:           ProfileBusinessOriented,
		ProfileConfidence:            MidpointConfidence,
		CommunicationStyle:           DefaultCommunicationStyle,
		DISCProfile:                  DefaultDISCProfile(),
		DecisionMakingStyle:          "analytical",
		RelationshipOrientation:      "task-oriented",
		RiskTolerance:                "moderate",
		InformationProcessing:        "detailed",
		MotivationalDrivers:          []string{},
		Recommendations:              []string{},
		OptimalCommunicationApproach: map[string]string{},
		ObjectionHandlingStyle:       "evidence-based",
		SecondaryTraits:              []string{},
		KeyCharacteristics:           []string{},
		ProfileRationale:             Unknown,
	}
}
