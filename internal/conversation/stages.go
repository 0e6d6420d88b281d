// Package conversation implements the message composition stage: a
// deterministic state machine that alternates company and customer messages
// generated by the LLM until the target exchange count or the iteration
// guard is reached.
package conversation

import (
	"strings"

	"github.com/jonathan/sales-simulator/internal/types"
)

// Company message types selected purely by how many company messages exist
const (
	MessageTypeOpening       = "opening"
	MessageTypeFollowUp      = "follow_up"
	MessageTypeQualification = "qualification"
	MessageTypePresentation  = "presentation"
)

// MessageTypeFor returns the message type for the next company message given
// how many company messages precede it.
func MessageTypeFor(companyMessageCount int) string {
	switch companyMessageCount {
	case 0:
		return MessageTypeOpening
	case 1:
		return MessageTypeFollowUp
	case 2:
		return MessageTypeQualification
	default:
		return MessageTypePresentation
	}
}

// messageObjectives describe what each company message type should accomplish
var messageObjectives = map[string]string{
	MessageTypeOpening:       "introduce yourself, reference the customer's situation, and ask for a short conversation",
	MessageTypeFollowUp:      "build on the customer's response and surface one of their stated pain points",
	MessageTypeQualification: "probe budget, timeline, and decision process without being pushy",
	MessageTypePresentation:  "present a concrete solution mapped to the customer's needs and propose a next step",
}

// ObjectiveFor returns the objective text for a company message type
func ObjectiveFor(messageType string) string {
	if obj, ok := messageObjectives[messageType]; ok {
		return obj
	}
	return messageObjectives[MessageTypePresentation]
}

// EngagementStage describes customer behavior at one depth of the
// conversation, keyed by how many customer messages precede the reply.
type EngagementStage struct {
	Name     string
	Behavior string
}

var engagementStages = []EngagementStage{
	{"initial_interest", "you are curious but guarded; acknowledge the outreach and ask what makes this relevant to you"},
	{"problem_exploration", "you open up about one of your actual problems and ask how the vendor has handled it elsewhere"},
	{"solution_evaluation", "you compare the proposal against alternatives and push on specifics: integration, effort, proof"},
	{"decision_process", "you bring up budget, stakeholders, and approval steps; you want material you can share internally"},
	{"final_engagement", "you signal a decision direction and negotiate the concrete next step"},
}

// EngagementStageFor returns the engagement stage for the next customer
// reply given how many customer messages precede it.
func EngagementStageFor(customerMessageCount int) EngagementStage {
	if customerMessageCount >= len(engagementStages) {
		return engagementStages[len(engagementStages)-1]
	}
	return engagementStages[customerMessageCount]
}

// serviceKeywords routes pain-point and need wording to solution areas used
// in prompt construction
var serviceKeywords = []struct {
	keyword string
	service string
}{
	{"data", "data & analytics"},
	{"report", "data & analytics"},
	{"cloud", "cloud migration"},
	{"infrastructure", "cloud migration"},
	{"security", "cybersecurity"},
	{"compliance", "cybersecurity"},
	{"automation", "process automation"},
	{"manual", "process automation"},
	{"ai", "AI & machine learning"},
	{"machine learning", "AI & machine learning"},
	{"integration", "systems integration"},
	{"legacy", "systems integration"},
	{"scale", "platform engineering"},
	{"scalability", "platform engineering"},
}

// RelevantServices maps the customer's stated pains and needs to solution
// areas. Always returns at least one area.
func RelevantServices(p *types.CustomerProfile) []string {
	var corpus strings.Builder
	for _, pp := range p.PainPoints {
		corpus.WriteString(strings.ToLower(pp.Issue))
		corpus.WriteString(" ")
	}
	for _, n := range p.Needs {
		corpus.WriteString(strings.ToLower(n.Requirement))
		corpus.WriteString(" ")
	}
	text := corpus.String()

	seen := map[string]bool{}
	var services []string
	for _, entry := range serviceKeywords {
		if strings.Contains(text, entry.keyword) && !seen[entry.service] {
			services = append(services, entry.service)
			seen[entry.service] = true
		}
	}

	if len(services) == 0 {
		services = []string{"digital transformation consulting"}
	}
	return services
}
