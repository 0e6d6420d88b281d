package conversation

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/sales-simulator/internal/llm"
	"github.com/jonathan/sales-simulator/internal/profile"
	"github.com/jonathan/sales-simulator/internal/types"
)

// scriptedClient replies with numbered messages, optionally failing always
type scriptedClient struct {
	fail  bool
	calls int
}

func (c *scriptedClient) Invoke(_ context.Context, _, _ string, _ llm.ModelTier) (string, error) {
	c.calls++
	if c.fail {
		return "", errors.New("model unavailable")
	}
	return fmt.Sprintf("generated message %d", c.calls), nil
}

func (c *scriptedClient) InvokeJSON(ctx context.Context, system, user string, tier llm.ModelTier) (string, error) {
	return c.Invoke(ctx, system, user, tier)
}

func (c *scriptedClient) GetModel(llm.ModelTier) string { return "stub" }
func (c *scriptedClient) Close() error                  { return nil }

func testParams(exchanges int) types.ConversationParams {
	p := types.DefaultConversationParams()
	p.Exchanges = exchanges
	return p
}

func TestCompose_GeneratesTargetMessageCount(t *testing.T) {
	client := &scriptedClient{}
	composer := NewComposer(client)

	conv, warnings := composer.Compose(context.Background(), profile.MinimalProfile(), testParams(3), 30)

	assert.Empty(t, warnings)
	assert.Len(t, conv.Messages, 6, "exchanges * 2 messages")
	assert.NotEmpty(t, conv.ConversationID)
	assert.Equal(t, "completed", conv.Status)
	assert.Equal(t, 3, conv.CountMessagesFrom(types.SenderCompany))
	assert.Equal(t, 3, conv.CountMessagesFrom(types.SenderCustomer))
}

func TestCompose_MessageTypeProgression(t *testing.T) {
	client := &scriptedClient{}
	composer := NewComposer(client)

	conv, _ := composer.Compose(context.Background(), profile.MinimalProfile(), testParams(5), 30)

	var companyTypes []string
	for _, msg := range conv.Messages {
		if msg.Sender == types.SenderCompany {
			companyTypes = append(companyTypes, msg.MessageType)
		}
	}
	assert.Equal(t, []string{
		MessageTypeOpening,
		MessageTypeFollowUp,
		MessageTypeQualification,
		MessageTypePresentation,
		MessageTypePresentation,
	}, companyTypes)
}

func TestCompose_TerminatesOnIterationGuard(t *testing.T) {
	client := &scriptedClient{}
	composer := NewComposer(client)

	// Target of 30 messages is unreachable with a guard of 4 iterations
	conv, _ := composer.Compose(context.Background(), profile.MinimalProfile(), testParams(15), 4)

	assert.Len(t, conv.Messages, 8, "two messages per iteration, four iterations")
	assert.Equal(t, "completed", conv.Status)
}

func TestCompose_TerminatesForAnyGuard(t *testing.T) {
	for _, guard := range []int{1, 2, 7, 30} {
		client := &scriptedClient{}
		conv, _ := NewComposer(client).Compose(context.Background(), profile.MinimalProfile(), testParams(15), guard)
		assert.LessOrEqual(t, len(conv.Messages), guard*2)
	}
}

func TestCompose_TransportFailureDegradesToFallbackLines(t *testing.T) {
	client := &scriptedClient{fail: true}
	composer := NewComposer(client)

	conv, warnings := composer.Compose(context.Background(), profile.MinimalProfile(), testParams(2), 30)

	require.Len(t, conv.Messages, 4, "loop continues despite failures")
	for _, msg := range conv.Messages {
		assert.NotEmpty(t, msg.Content, "fallback lines are never empty")
	}
	assert.Len(t, warnings, 4, "one warning per degraded message")
	assert.Contains(t, warnings[0], "degraded to fallback")
}

func TestCompose_MessagesStrictlyOrdered(t *testing.T) {
	client := &scriptedClient{}
	conv, _ := NewComposer(client).Compose(context.Background(), profile.MinimalProfile(), testParams(3), 30)

	for i := 1; i < len(conv.Messages); i++ {
		assert.False(t, conv.Messages[i].Timestamp.Before(conv.Messages[i-1].Timestamp))
	}
}

func TestCompose_DefaultsAppliedToEmptyParams(t *testing.T) {
	client := &scriptedClient{}
	conv, _ := NewComposer(client).Compose(context.Background(), profile.MinimalProfile(), types.ConversationParams{}, 30)

	assert.Equal(t, types.ChannelEmail, conv.Channel)
	assert.NotEmpty(t, conv.Goal)
	assert.Len(t, conv.Messages, 12, "default exchange count is 6")
}

func TestMessageTypeFor(t *testing.T) {
	assert.Equal(t, MessageTypeOpening, MessageTypeFor(0))
	assert.Equal(t, MessageTypeFollowUp, MessageTypeFor(1))
	assert.Equal(t, MessageTypeQualification, MessageTypeFor(2))
	assert.Equal(t, MessageTypePresentation, MessageTypeFor(3))
	assert.Equal(t, MessageTypePresentation, MessageTypeFor(9))
}

func TestEngagementStageFor(t *testing.T) {
	assert.Equal(t, "initial_interest", EngagementStageFor(0).Name)
	assert.Equal(t, "problem_exploration", EngagementStageFor(1).Name)
	assert.Equal(t, "solution_evaluation", EngagementStageFor(2).Name)
	assert.Equal(t, "decision_process", EngagementStageFor(3).Name)
	assert.Equal(t, "final_engagement", EngagementStageFor(4).Name)
	assert.Equal(t, "final_engagement", EngagementStageFor(12).Name, "table saturates at the last stage")
}

func TestRelevantServices(t *testing.T) {
	p := types.NewCustomerProfile()
	p.PainPoints = []types.PainPoint{{Issue: "Legacy systems slow down reporting"}}
	p.Needs = []types.Need{{Requirement: "Cloud infrastructure overhaul"}}

	services := RelevantServices(p)
	assert.Contains(t, services, "systems integration")
	assert.Contains(t, services, "data & analytics")
	assert.Contains(t, services, "cloud migration")
}

func TestRelevantServices_DefaultWhenNoMatch(t *testing.T) {
	services := RelevantServices(types.NewCustomerProfile())
	assert.Equal(t, []string{"digital transformation consulting"}, services)
}

// promptCapturingClient records every user prompt it receives
type promptCapturingClient struct {
	scriptedClient
	userPrompts []string
}

func (c *promptCapturingClient) Invoke(ctx context.Context, system, user string, tier llm.ModelTier) (string, error) {
	c.userPrompts = append(c.userPrompts, user)
	return c.scriptedClient.Invoke(ctx, system, user, tier)
}

func TestCompose_CompanyContextReachesPrompts(t *testing.T) {
	client := &promptCapturingClient{}
	composer := NewComposer(client)
	composer.SetCompanyContext("We provide automated visual QA for manufacturing lines.\n")

	_, warnings := composer.Compose(context.Background(), profile.MinimalProfile(), testParams(1), 30)
	require.Empty(t, warnings)
	require.NotEmpty(t, client.userPrompts)

	// First prompt is the company-side opening
	assert.Contains(t, client.userPrompts[0], "Company offering notes:")
	assert.Contains(t, client.userPrompts[0], "automated visual QA")
}
