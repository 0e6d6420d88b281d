package analysis

import (
	"fmt"
	"strings"

	"github.com/jonathan/sales-simulator/internal/types"
)

// analysisInput renders the text the component extractions run against.
// A conversation transcript is preferred; when no conversation is available
// the analyzers fall back to the customer profile alone.
func analysisInput(conv *types.Conversation, p *types.CustomerProfile) string {
	var sb strings.Builder

	if p != nil {
		sb.WriteString("Customer profile:\n")
		sb.WriteString(fmt.Sprintf("- Name: %s\n", p.CustomerName))
		sb.WriteString(fmt.Sprintf("- Industry: %s\n", p.Industry))
		sb.WriteString(fmt.Sprintf("- Company size: %s\n", p.CompanySize))
		for _, pp := range p.PainPoints {
			sb.WriteString(fmt.Sprintf("- Pain point: %s (impact: %s)\n", pp.Issue, pp.Impact))
		}
		for _, n := range p.Needs {
			sb.WriteString(fmt.Sprintf("- Need: %s (priority: %s)\n", n.Requirement, n.Priority))
		}
		sb.WriteString(fmt.Sprintf("- Budget range: %s\n", p.BudgetRange))
		sb.WriteString(fmt.Sprintf("- Timeline: %s\n", p.Timeline))
		sb.WriteString(fmt.Sprintf("- Communication style: %s\n", p.CommunicationStyle))
		for _, dm := range p.DecisionMakers {
			sb.WriteString(fmt.Sprintf("- Decision maker: %s, %s\n", dm.Name, dm.Role))
		}
	}

	if conv != nil && len(conv.Messages) > 0 {
		sb.WriteString("\nConversation transcript:\n")
		for _, m := range conv.Messages {
			sb.WriteString(fmt.Sprintf("[%s] (%s) %s\n", m.Sender, m.MessageType, m.Content))
		}
	}

	if sb.Len() == 0 {
		return "(no conversation or profile available)"
	}
	return sb.String()
}
