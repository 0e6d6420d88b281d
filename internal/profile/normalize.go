package profile

import (
	"github.com/jonathan/sales-simulator/internal/extraction"
	"github.com/jonathan/sales-simulator/internal/types"
)

// Synonym candidates per canonical field, most specific first. The upstream
// model's key names and nesting vary run to run; these lists make the
// normalization deterministic across all observed shapes.
var (
	customerNameKeys  = []string{"customer_name", "customerName", "company_name", "companyName", "customer", "company", "name"}
	industryKeys      = []string{"industry", "sector", "business_type", "businessType", "vertical"}
	companySizeKeys   = []string{"company_size", "companySize", "size", "employees", "employee_count", "headcount"}
	painPointKeys     = []string{"pain_points", "painPoints", "challenges", "problems", "issues"}
	needKeys          = []string{"needs", "business_needs", "businessNeeds", "objectives", "requirements"}
	criteriaKeys      = []string{"decision_criteria", "decisionCriteria", "evaluation_criteria", "criteria"}
	budgetRangeKeys   = []string{"budget_range", "budgetRange", "budget"}
	timelineKeys      = []string{"timeline", "timeframe", "time_frame", "implementation_timeline"}
	commStyleKeys     = []string{"communication_style", "communicationStyle", "preferred_communication", "style"}
	decisionMakerKeys = []string{"decision_makers", "decisionMakers", "stakeholders", "key_contacts", "contacts"}

	// Wrapper containers unwrapped transparently before top-level lookup fails
	wrapperKeys = []string{"customer_profile", "customerProfile", "profile", "customer_analysis", "analysis", "customer", "company", "pains_and_needs"}
)

// NormalizeCustomerProfile maps a raw parsed LLM object onto the canonical
// customer profile. Unrecognized keys are discarded, every unresolvable
// field gets its sentinel default, and already-canonical input passes
// through unchanged.
func NormalizeCustomerProfile(raw map[string]any) *types.CustomerProfile {
	p := types.NewCustomerProfile()
	if raw == nil {
		return p
	}

	if v, ok := lookup(raw, customerNameKeys); ok {
		p.CustomerName = extraction.CoerceString(v, types.Unknown)
	}
	if v, ok := lookup(raw, industryKeys); ok {
		p.Industry = extraction.CoerceString(v, types.Unknown)
	}
	if v, ok := lookup(raw, companySizeKeys); ok {
		p.CompanySize = extraction.CoerceString(v, types.Unknown)
	}
	if v, ok := lookup(raw, painPointKeys); ok {
		p.PainPoints = normalizePainPoints(v)
	}
	if v, ok := lookup(raw, needKeys); ok {
		p.Needs = normalizeNeeds(v)
	}
	if v, ok := lookup(raw, criteriaKeys); ok {
		p.DecisionCriteria = extraction.CoerceStringList(v)
	}
	if v, ok := lookup(raw, budgetRangeKeys); ok {
		p.BudgetRange = extraction.CoerceString(v, types.Unknown)
	}
	if v, ok := lookup(raw, timelineKeys); ok {
		p.Timeline = extraction.CoerceString(v, types.Unknown)
	}
	if v, ok := lookup(raw, commStyleKeys); ok {
		p.CommunicationStyle = extraction.CoerceString(v, types.DefaultCommunicationStyle)
	}
	if v, ok := lookup(raw, decisionMakerKeys); ok {
		p.DecisionMakers = normalizeDecisionMakers(v)
	}

	return p
}

// lookup probes the top level for any candidate key, then looks inside each
// known wrapper container.
func lookup(raw map[string]any, keys []string) (any, bool) {
	if v, ok := extraction.PickValue(raw, keys...); ok {
		return v, true
	}
	for _, wrapper := range wrapperKeys {
		inner, ok := raw[wrapper].(map[string]any)
		if !ok {
			continue
		}
		if v, ok := extraction.PickValue(inner, keys...); ok {
			return v, true
		}
	}
	return nil, false
}

func normalizePainPoints(v any) []types.PainPoint {
	items := extraction.CoerceToList(v, func(label string, raw map[string]any) map[string]any {
		out := map[string]any{
			"issue":           label,
			"impact":          "Medium",
			"business_impact": types.Unknown,
		}
		if raw == nil {
			return out
		}
		if issue, ok := extraction.PickValue(raw, "issue", "description", "problem", "pain", "challenge", "name", "title"); ok {
			out["issue"] = extraction.CoerceString(issue, label)
		}
		if impact, ok := extraction.PickValue(raw, "impact", "severity", "urgency"); ok {
			out["impact"] = extraction.CoerceString(impact, "Medium")
		}
		if biz, ok := extraction.PickValue(raw, "business_impact", "businessImpact", "consequence", "cost"); ok {
			out["business_impact"] = extraction.CoerceString(biz, types.Unknown)
		}
		return out
	})

	points := make([]types.PainPoint, 0, len(items))
	for _, item := range items {
		points = append(points, types.PainPoint{
			Issue:          extraction.CoerceString(item["issue"], types.Unknown),
			Impact:         extraction.CoerceString(item["impact"], "Medium"),
			BusinessImpact: extraction.CoerceString(item["business_impact"], types.Unknown),
		})
	}
	return points
}

func normalizeNeeds(v any) []types.Need {
	items := extraction.CoerceToList(v, func(label string, raw map[string]any) map[string]any {
		out := map[string]any{
			"requirement": label,
			"priority":    "Medium",
			"budget":      types.Unknown,
			"timeline":    types.Unknown,
		}
		if raw == nil {
			return out
		}
		if req, ok := extraction.PickValue(raw, "requirement", "need", "objective", "description", "name", "title"); ok {
			out["requirement"] = extraction.CoerceString(req, label)
		}
		if pri, ok := extraction.PickValue(raw, "priority", "importance"); ok {
			out["priority"] = extraction.CoerceString(pri, "Medium")
		}
		if budget, ok := extraction.PickValue(raw, "budget", "budget_range", "budgetRange"); ok {
			out["budget"] = extraction.CoerceString(budget, types.Unknown)
		}
		if timeline, ok := extraction.PickValue(raw, "timeline", "timeframe", "deadline"); ok {
			out["timeline"] = extraction.CoerceString(timeline, types.Unknown)
		}
		return out
	})

	needs := make([]types.Need, 0, len(items))
	for _, item := range items {
		needs = append(needs, types.Need{
			Requirement: extraction.CoerceString(item["requirement"], types.Unknown),
			Priority:    extraction.CoerceString(item["priority"], "Medium"),
			Budget:      extraction.CoerceString(item["budget"], types.Unknown),
			Timeline:    extraction.CoerceString(item["timeline"], types.Unknown),
		})
	}
	return needs
}

func normalizeDecisionMakers(v any) []types.DecisionMaker {
	items := extraction.CoerceToList(v, func(label string, raw map[string]any) map[string]any {
		out := map[string]any{
			"name":                label,
			"role":                types.Unknown,
			"influence_level":     "medium",
			"communication_style": types.DefaultCommunicationStyle,
			"priorities":          []any{},
			"concerns":            []any{},
		}
		if raw == nil {
			return out
		}
		if name, ok := extraction.PickValue(raw, "name", "full_name", "contact"); ok {
			out["name"] = extraction.CoerceString(name, label)
		}
		if role, ok := extraction.PickValue(raw, "role", "title", "position"); ok {
			out["role"] = extraction.CoerceString(role, types.Unknown)
		}
		if infl, ok := extraction.PickValue(raw, "influence_level", "influenceLevel", "influence"); ok {
			out["influence_level"] = extraction.CoerceString(infl, "medium")
		}
		if style, ok := extraction.PickValue(raw, "communication_style", "communicationStyle", "style"); ok {
			out["communication_style"] = extraction.CoerceString(style, types.DefaultCommunicationStyle)
		}
		if priorities, ok := extraction.PickValue(raw, "priorities", "interests", "focus_areas"); ok {
			out["priorities"] = priorities
		}
		if concerns, ok := extraction.PickValue(raw, "concerns", "objections", "worries"); ok {
			out["concerns"] = concerns
		}
		return out
	})

	makers := make([]types.DecisionMaker, 0, len(items))
	for _, item := range items {
		name := extraction.CoerceString(item["name"], types.Unknown)
		if name == "" {
			name = types.Unknown
		}
		makers = append(makers, types.DecisionMaker{
			Name:               name,
			Role:               extraction.CoerceString(item["role"], types.Unknown),
			InfluenceLevel:     extraction.CoerceString(item["influence_level"], "medium"),
			CommunicationStyle: extraction.CoerceString(item["communication_style"], types.DefaultCommunicationStyle),
			Priorities:         extraction.CoerceStringList(item["priorities"]),
			Concerns:           extraction.CoerceStringList(item["concerns"]),
		})
	}
	return makers
}
