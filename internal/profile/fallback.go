package profile

import (
	"github.com/jonathan/sales-simulator/internal/extraction"
	"github.com/jonathan/sales-simulator/internal/types"
)

// MinimalProfile returns the fixed placeholder profile used when nothing can
// be salvaged from the input. It is always schema-valid so every downstream
// stage has a well-formed record to read.
func MinimalProfile() *types.CustomerProfile {
	p := types.NewCustomerProfile()
	p.CustomerName = "Prospective Customer"
	p.Industry = "Technology"
	p.CompanySize = "50-200 employees"
	p.CommunicationStyle = types.DefaultCommunicationStyle
	p.DecisionMakers = []types.DecisionMaker{
		{
			Name:               "Sarah Chen",
			Role:               "CTO",
			InfluenceLevel:     "high",
			CommunicationStyle: "technical",
			Priorities:         []string{"scalability", "security", "integration"},
			Concerns:           []string{"implementation complexity", "vendor lock-in"},
		},
		{
			Name:               "Marcus Rodriguez",
			Role:               "VP of Engineering",
			InfluenceLevel:     "high",
			CommunicationStyle: "direct",
			Priorities:         []string{"team productivity", "reliability"},
			Concerns:           []string{"migration effort", "learning curve"},
		},
		{
			Name:               "Jennifer Park",
			Role:               "Head of Product",
			InfluenceLevel:     "medium",
			CommunicationStyle: "collaborative",
			Priorities:         []string{"time to market", "user experience"},
			Concerns:           []string{"roadmap disruption", "cost"},
		},
	}
	return p
}

// FallbackProfile salvages whatever it can from the raw input document and
// fills the rest with sentinel defaults. Used when the model path fails but
// the input itself was readable.
func FallbackProfile(raw map[string]any) *types.CustomerProfile {
	if len(raw) == 0 {
		return MinimalProfile()
	}

	p := NormalizeCustomerProfile(raw)

	// Top-level lookup missed: search nested containers before giving up
	if p.CustomerName == types.Unknown {
		if v, ok := extraction.FindNested(raw, customerNameKeys...); ok {
			p.CustomerName = extraction.CoerceString(v, types.Unknown)
		}
	}
	if p.Industry == types.Unknown {
		if v, ok := extraction.FindNested(raw, industryKeys...); ok {
			p.Industry = extraction.CoerceString(v, types.Unknown)
		}
	}
	if p.CompanySize == types.Unknown {
		if v, ok := extraction.FindNested(raw, companySizeKeys...); ok {
			p.CompanySize = extraction.CoerceString(v, types.Unknown)
		}
	}

	return p
}

// ValidateCompleteness reports which canonical fields still hold sentinel or
// empty values. An incomplete profile is a warning, never an error.
func ValidateCompleteness(p *types.CustomerProfile) []string {
	var incomplete []string

	if p.CustomerName == types.Unknown || p.CustomerName == "" {
		incomplete = append(incomplete, "customer_name")
	}
	if p.Industry == types.Unknown || p.Industry == "" {
		incomplete = append(incomplete, "industry")
	}
	if p.CompanySize == types.Unknown || p.CompanySize == "" {
		incomplete = append(incomplete, "company_size")
	}
	if len(p.PainPoints) == 0 {
		incomplete = append(incomplete, "pain_points")
	}
	if len(p.Needs) == 0 {
		incomplete = append(incomplete, "needs")
	}
	if len(p.DecisionMakers) == 0 {
		incomplete = append(incomplete, "decision_makers")
	}
	if p.BudgetRange == types.Unknown {
		incomplete = append(incomplete, "budget_range")
	}
	if p.Timeline == types.Unknown {
		incomplete = append(incomplete, "timeline")
	}

	return incomplete
}
