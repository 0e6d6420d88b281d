package conversation

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/jonathan/sales-simulator/internal/llm"
	"github.com/jonathan/sales-simulator/internal/prompts"
	"github.com/jonathan/sales-simulator/internal/types"
)

// Composer generates one full conversation from a customer profile
type Composer struct {
	client         llm.Client
	companyContext string
}

// NewComposer creates a composer backed by the given client
func NewComposer(client llm.Client) *Composer {
	return &Composer{client: client}
}

// SetCompanyContext attaches free-text notes about the selling company's
// offerings. They are appended to the services section of company-side
// prompts so generated messages can reference concrete offerings.
func (c *Composer) SetCompanyContext(text string) {
	c.companyContext = strings.TrimSpace(text)
}

// Compose runs the message generation loop until the target message count
// (exchanges * 2) or the iteration guard is reached. Generation failures
// degrade individual messages to canned fallback lines and are reported as
// warnings; the loop always terminates and always returns a conversation.
func (c *Composer) Compose(ctx context.Context, p *types.CustomerProfile, params types.ConversationParams, maxIterations int) (*types.Conversation, []string) {
	params.ApplyDefaults()
	if maxIterations <= 0 {
		maxIterations = 30
	}

	conv := &types.Conversation{
		ConversationID: uuid.NewString(),
		Goal:           params.Goal,
		Channel:        params.Channel,
		Participants: map[string]string{
			types.SenderCompany:  params.CompanyRep,
			types.SenderCustomer: params.CustomerRep,
		},
		Messages: []types.Message{},
		Metadata: map[string]any{
			"tone":             params.Tone,
			"target_exchanges": params.Exchanges,
		},
		CreatedAt: time.Now(),
		Status:    "in_progress",
	}

	var warnings []string
	targetMessages := params.Exchanges * 2
	services := strings.Join(RelevantServices(p), ", ")
	if c.companyContext != "" {
		services += "\n\nCompany offering notes:\n" + c.companyContext
	}
	profileText := summarizeProfile(p)

	for iterations := 0; len(conv.Messages) < targetMessages && iterations < maxIterations; iterations++ {
		// Company side
		if warn := c.companyMessage(ctx, conv, p, params, profileText, services); warn != "" {
			warnings = append(warnings, warn)
		}
		if len(conv.Messages) >= targetMessages {
			break
		}

		// Customer side
		if warn := c.customerReply(ctx, conv, p, params, profileText); warn != "" {
			warnings = append(warnings, warn)
		}
	}

	conv.Status = "completed"
	conv.Metadata["message_count"] = len(conv.Messages)
	return conv, warnings
}

func (c *Composer) companyMessage(ctx context.Context, conv *types.Conversation, p *types.CustomerProfile, params types.ConversationParams, profileText, services string) string {
	messageType := MessageTypeFor(conv.CountMessagesFrom(types.SenderCompany))

	prompt := prompts.MustGet("conversation.json", "company-message")
	system := prompts.Format(prompt.System, map[string]string{
		"CompanyRep": params.CompanyRep,
		"Channel":    string(params.Channel),
		"Tone":       params.Tone,
	})
	user := prompt.FormatUser(map[string]string{
		"Goal":        params.Goal,
		"Profile":     profileText,
		"Services":    services,
		"History":     serializeHistory(conv.Messages),
		"MessageType": messageType,
		"Objective":   ObjectiveFor(messageType),
	})

	content, err := c.client.Invoke(ctx, system, user, llm.TierStandard)
	warning := ""
	if err != nil || strings.TrimSpace(content) == "" {
		content = fallbackCompanyLine(messageType, p)
		warning = fmt.Sprintf("company %s message degraded to fallback: %s", messageType, failureReason(err))
	}

	conv.Messages = append(conv.Messages, types.Message{
		Sender:      types.SenderCompany,
		Content:     strings.TrimSpace(content),
		Timestamp:   time.Now(),
		MessageType: messageType,
	})
	return warning
}

func (c *Composer) customerReply(ctx context.Context, conv *types.Conversation, p *types.CustomerProfile, params types.ConversationParams, profileText string) string {
	stage := EngagementStageFor(conv.CountMessagesFrom(types.SenderCustomer))

	prompt := prompts.MustGet("conversation.json", "customer-reply")
	system := prompts.Format(prompt.System, map[string]string{
		"CustomerRep":  params.CustomerRep,
		"CustomerName": p.CustomerName,
		"Channel":      string(params.Channel),
	})
	user := prompt.FormatUser(map[string]string{
		"Profile":            profileText,
		"History":            serializeHistory(conv.Messages),
		"EngagementStage":    stage.Name,
		"EngagementBehavior": stage.Behavior,
	})

	content, err := c.client.Invoke(ctx, system, user, llm.TierStandard)
	warning := ""
	if err != nil || strings.TrimSpace(content) == "" {
		content = fallbackCustomerLine(stage)
		warning = fmt.Sprintf("customer %s reply degraded to fallback: %s", stage.Name, failureReason(err))
	}

	conv.Messages = append(conv.Messages, types.Message{
		Sender:      types.SenderCustomer,
		Content:     strings.TrimSpace(content),
		Timestamp:   time.Now(),
		MessageType: "response",
	})
	return warning
}

func failureReason(err error) string {
	if err != nil {
		return err.Error()
	}
	return "empty response"
}

// serializeHistory renders prior messages in order for prompt construction
func serializeHistory(messages []types.Message) string {
	if len(messages) == 0 {
		return "(no messages yet)"
	}
	var sb strings.Builder
	for _, msg := range messages {
		sb.WriteString(fmt.Sprintf("[%s] %s\n", msg.Sender, msg.Content))
	}
	return sb.String()
}

// summarizeProfile renders the canonical profile as prompt text
func summarizeProfile(p *types.CustomerProfile) string {
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Company: %s (%s, %s)\n", p.CustomerName, p.Industry, p.CompanySize))

	if len(p.PainPoints) > 0 {
		sb.WriteString("Pain points:\n")
		for _, pp := range p.PainPoints {
			sb.WriteString(fmt.Sprintf("- %s (impact: %s)\n", pp.Issue, pp.Impact))
		}
	}
	if len(p.Needs) > 0 {
		sb.WriteString("Needs:\n")
		for _, n := range p.Needs {
			sb.WriteString(fmt.Sprintf("- %s (priority: %s, timeline: %s)\n", n.Requirement, n.Priority, n.Timeline))
		}
	}
	if len(p.DecisionMakers) > 0 {
		sb.WriteString("Decision makers:\n")
		for _, dm := range p.DecisionMakers {
			sb.WriteString(fmt.Sprintf("- %s, %s (influence: %s)\n", dm.Name, dm.Role, dm.InfluenceLevel))
		}
	}
	sb.WriteString(fmt.Sprintf("Budget: %s, Timeline: %s, Communication style: %s\n", p.BudgetRange, p.Timeline, p.CommunicationStyle))
	return sb.String()
}

func fallbackCompanyLine(messageType string, p *types.CustomerProfile) string {
	switch messageType {
	case MessageTypeOpening:
		return fmt.Sprintf("Hello, I'm reaching out because we work with %s companies on challenges like yours. Would you be open to a short conversation?", p.Industry)
	case MessageTypeFollowUp:
		return "Thanks for your reply. Could you tell me more about the challenges you mentioned so I can point you at what's most relevant?"
	case MessageTypeQualification:
		return "That makes sense. To suggest the right approach, could you share your rough timeline and who else would be involved in a decision?"
	default:
		return "Based on what you've described, I'd suggest a short working session where we walk through a concrete solution for your situation. Would next week work?"
	}
}

func fallbackCustomerLine(stage EngagementStage) string {
	switch stage.Name {
	case "initial_interest":
		return "Thanks for reaching out. Can you tell me what exactly you do and why it's relevant to us?"
	case "problem_exploration":
		return "We do have some challenges in that area. How have you handled similar situations with other customers?"
	case "solution_evaluation":
		return "Interesting. How does this compare to other options we might consider, and what would implementation look like?"
	case "decision_process":
		return "I'd need to involve a few colleagues before going further. Can you send something I can share internally?"
	default:
		return "Let me discuss this with the team and get back to you on next steps."
	}
}
