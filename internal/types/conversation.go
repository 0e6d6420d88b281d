package types

import (
	"fmt"
	"time"

	"github.com/go-playground/validator/v10"
)

// Channel identifies the medium a conversation takes place over
type Channel string

// Supported conversation channels
const (
	ChannelEmail     Channel = "email"
	ChannelPhone     Channel = "phone"
	ChannelVideoCall Channel = "video_call"
	ChannelInPerson  Channel = "in_person"
	ChannelLinkedIn  Channel = "linkedin"
	ChannelMeeting   Channel = "meeting"
)

// Message senders
const (
	SenderCompany  = "company"
	SenderCustomer = "customer"
)

// Message represents one exchanged message in a conversation
type Message struct {
	Sender      string    `json:"sender"`
	Content     string    `json:"content"`
	Timestamp   time.Time `json:"timestamp"`
	MessageType string    `json:"message_type"`
}

// Conversation is the canonical record of one generated sales conversation.
// Messages are strictly ordered by generation time; sender alternation is
// conventional, not enforced.
type Conversation struct {
	ConversationID string            `json:"conversation_id"`
	Goal           string            `json:"goal"`
	Channel        Channel           `json:"channel"`
	Participants   map[string]string `json:"participants,omitempty"`
	Messages       []Message         `json:"messages"`
	Metadata       map[string]any    `json:"metadata,omitempty"`
	CreatedAt      time.Time         `json:"created_at"`
	Status         string            `json:"status"`
}

// CountMessagesFrom returns how many messages in the conversation came from
// the given sender.
func (c *Conversation) CountMessagesFrom(sender string) int {
	count := 0
	for _, m := range c.Messages {
		if m.Sender == sender {
			count++
		}
	}
	return count
}

// ConversationParams holds the caller-supplied parameters for generating a
// conversation
type ConversationParams struct {
	Goal        string  `json:"goal" validate:"required"`
	Tone        string  `json:"tone" validate:"oneof=professional friendly formal consultative"`
	Channel     Channel `json:"channel" validate:"oneof=email phone video_call in_person linkedin meeting"`
	Exchanges   int     `json:"exchanges" validate:"min=1,max=15"`
	CompanyRep  string  `json:"company_rep"`
	CustomerRep string  `json:"customer_rep"`
}

// DefaultConversationParams returns the params used when the caller supplies none
func DefaultConversationParams() ConversationParams {
	return ConversationParams{
		Goal:        "Initial discovery call to understand customer needs",
		Tone:        "professional",
		Channel:     ChannelEmail,
		Exchanges:   6,
		CompanyRep:  "Sales Representative",
		CustomerRep: "Customer Contact",
	}
}

// ApplyDefaults fills any zero-valued field from the default params
func (p *ConversationParams) ApplyDefaults() {
	defaults := DefaultConversationParams()
	if p.Goal == "" {
		p.Goal = defaults.Goal
	}
	if p.Tone == "" {
		p.Tone = defaults.Tone
	}
	if p.Channel == "" {
		p.Channel = defaults.Channel
	}
	if p.Exchanges == 0 {
		p.Exchanges = defaults.Exchanges
	}
	if p.CompanyRep == "" {
		p.CompanyRep = defaults.CompanyRep
	}
	if p.CustomerRep == "" {
		p.CustomerRep = defaults.CustomerRep
	}
}

// Validate checks the params against their declared constraints
func (p *ConversationParams) Validate() error {
	validate := validator.New()
	if err := validate.Struct(p); err != nil {
		return fmt.Errorf("invalid conversation params: %w", err)
	}
	return nil
}
