// Package types provides type definitions for structured data used throughout the sales-simulator system.
//
//nolint:revive // types is a standard Go package name pattern
package types

// Sentinel values used in place of missing fields so downstream code
// branches on values, never on absence.
const (
	Unknown = "Unknown"
	// DefaultCommunicationStyle is used when no style can be resolved
	DefaultCommunicationStyle = "professional"
)

// CustomerProfile is the canonical customer record produced by document analysis
type CustomerProfile struct {
	CustomerName       string          `json:"customer_name"`
	Industry           string          `json:"industry"`
	CompanySize        string          `json:"company_size"`
	PainPoints         []PainPoint     `json:"pain_points"`
	Needs              []Need          `json:"needs"`
	DecisionCriteria   []string        `json:"decision_criteria"`
	BudgetRange        string          `json:"budget_range"`
	Timeline           string          `json:"timeline"`
	CommunicationStyle string          `json:"communication_style"`
	DecisionMakers     []DecisionMaker `json:"decision_makers"`
}

// PainPoint represents one business problem the customer is experiencing
type PainPoint struct {
	Issue          string `json:"issue"`
	Impact         string `json:"impact"`
	BusinessImpact string `json:"business_impact"`
}

// Need represents one stated requirement with purchasing context
type Need struct {
	Requirement string `json:"requirement"`
	Priority    string `json:"priority"`
	Budget      string `json:"budget"`
	Timeline    string `json:"timeline"`
}

// DecisionMaker represents one stakeholder in the customer's buying process
type DecisionMaker struct {
	Name               string   `json:"name"`
	Role               string   `json:"role"`
	InfluenceLevel     string   `json:"influence_level"`
	CommunicationStyle string   `json:"communication_style"`
	Priorities         []string `json:"priorities"`
	Concerns           []string `json:"concerns"`
}

// NewCustomerProfile returns a profile with every field set to its
// sentinel default and every list field set to an empty slice.
func NewCustomerProfile() *CustomerProfile {
	return &CustomerProfile{
		CustomerName:       Unknown,
		Industry:           Unknown,
		CompanySize:        Unknown,
		PainPoints:         []PainPoint{},
		Needs:              []Need{},
		DecisionCriteria:   []string{},
		BudgetRange:        Unknown,
		Timeline:           Unknown,
		CommunicationStyle: DefaultCommunicationStyle,
		DecisionMakers:     []DecisionMaker{},
	}
}
