package types

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConversationParams_Validate(t *testing.T) {
	tests := []struct {
		name    string
		params  ConversationParams
		wantErr bool
	}{
		{
			name:    "Defaults are valid",
			params:  DefaultConversationParams(),
			wantErr: false,
		},
		{
			name: "Exchanges too high",
			params: ConversationParams{
				Goal: "demo", Tone: "professional", Channel: ChannelEmail, Exchanges: 20,
			},
			wantErr: true,
		},
		{
			name: "Exchanges too low",
			params: ConversationParams{
				Goal: "demo", Tone: "professional", Channel: ChannelEmail, Exchanges: 0,
			},
			wantErr: true,
		},
		{
			name: "Unknown tone",
			params: ConversationParams{
				Goal: "demo", Tone: "aggressive", Channel: ChannelEmail, Exchanges: 4,
			},
			wantErr: true,
		},
		{
			name: "Unknown channel",
			params: ConversationParams{
				Goal: "demo", Tone: "formal", Channel: "fax", Exchanges: 4,
			},
			wantErr: true,
		},
		{
			name: "Missing goal",
			params: ConversationParams{
				Tone: "formal", Channel: ChannelPhone, Exchanges: 4,
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.params.Validate()
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestConversationParams_ApplyDefaults(t *testing.T) {
	params := ConversationParams{Goal: "Book a demo"}
	params.ApplyDefaults()

	require.NoError(t, params.Validate())
	assert.Equal(t, "Book a demo", params.Goal, "explicit values survive defaulting")
	assert.Equal(t, 6, params.Exchanges)
	assert.Equal(t, ChannelEmail, params.Channel)
	assert.Equal(t, "professional", params.Tone)
}

func TestConversation_CountMessagesFrom(t *testing.T) {
	conv := &Conversation{
		Messages: []Message{
			{Sender: SenderCompany, Content: "hi", Timestamp: time.Now()},
			{Sender: SenderCustomer, Content: "hello", Timestamp: time.Now()},
			{Sender: SenderCompany, Content: "following up", Timestamp: time.Now()},
		},
	}

	assert.Equal(t, 2, conv.CountMessagesFrom(SenderCompany))
	assert.Equal(t, 1, conv.CountMessagesFrom(SenderCustomer))
	assert.Equal(t, 0, conv.CountMessagesFrom("observer"))
}

func TestNewCustomerProfile_Defaults(t *testing.T) {
	p := NewCustomerProfile()

	assert.Equal(t, Unknown, p.CustomerName)
	assert.Equal(t, Unknown, p.Industry)
	assert.Equal(t, DefaultCommunicationStyle, p.CommunicationStyle)
	assert.NotNil(t, p.PainPoints)
	assert.NotNil(t, p.Needs)
	assert.NotNil(t, p.DecisionCriteria)
	assert.NotNil(t, p.DecisionMakers)
	assert.Empty(t, p.PainPoints)
}
