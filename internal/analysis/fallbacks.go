// Package analysis implements the post-hoc analysis stages: sales strategy
// assessment and buyer personality classification. Each analyzer runs a set
// of component extractions against the LLM and assembles one canonical
// record; any component that fails uses its documented fallback map so the
// assembled record is always schema-valid.
package analysis

// strategyFallbacks holds the per-component defaults used when a strategy
// component extraction fails
var strategyFallbacks = map[string]map[string]any{
	"methodology": {
		"score":             7.0,
		"approach":          "consultative selling",
		"strengths":         []any{"structured discovery", "customer-centric framing"},
		"improvement_areas": []any{"deeper qualification before presenting"},
	},
	"positioning": {
		"score":             7.0,
		"differentiation":   "solution framed against customer priorities",
		"strengths":         []any{"clear relevance to stated needs"},
		"improvement_areas": []any{"sharper competitive contrast"},
	},
	"objection_handling": {
		"score":                 7.0,
		"objections_identified": []any{"budget sensitivity", "implementation effort"},
		"response_quality":      "adequate",
	},
	"value_delivery": {
		"score":              7.0,
		"value_articulation": "benefits tied to stated pain points",
		"next_steps":         []any{"schedule a follow-up with stakeholders"},
	},
	"recommendations": {
		"recommendations": []any{
			"quantify business impact earlier in the conversation",
			"involve additional decision makers sooner",
		},
		"next_steps":  []any{"send a tailored summary to the customer"},
		"focus_areas": []any{"qualification depth", "value quantification"},
	},
}

// personalityFallbacks holds the per-component defaults used when a
// personality component extraction fails
var personalityFallbacks = map[string]map[string]any{
	"decision_patterns": {
		"decision_making_style":    "analytical",
		"risk_tolerance":           "moderate",
		"information_processing":   "detailed",
		"relationship_orientation": "task-oriented",
	},
	"profile_classification": {
		"personality_profile": "Business-Oriented Decision Maker",
		"profile_confidence":  50,
		"communication_style": "professional",
		"disc_profile":        map[string]any{"D": 25.0, "I": 25.0, "S": 25.0, "C": 25.0},
		"key_characteristics": []any{"results-focused", "process-aware"},
		"profile_rationale":   "Insufficient signal; balanced default profile applied",
	},
	"recommendations": {
		"recommendations": []any{
			"lead with business outcomes and concrete metrics",
			"provide structured material for internal sharing",
		},
		"optimal_communication_approach": map[string]any{
			"pace":   "measured",
			"detail": "high",
			"format": "structured summaries",
		},
		"objection_handling_style": "evidence-based",
		"motivational_drivers":     []any{"operational efficiency", "risk reduction"},
	},
}
