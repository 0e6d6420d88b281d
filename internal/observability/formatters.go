// Package observability provides formatted output utilities for verbose CLI mode.
package observability

import (
	"fmt"
	"io"
	"strings"

	"github.com/jonathan/sales-simulator/internal/state"
	"github.com/jonathan/sales-simulator/internal/types"
)

const (
	// boxWidth is the default width for formatted output boxes
	boxWidth = 60
	// maxItemsToShow is the default number of items to display in lists
	maxItemsToShow = 5
)

// Printer handles formatted output for verbose mode
type Printer struct {
	out io.Writer
}

// NewPrinter creates a new Printer that writes to the given writer
func NewPrinter(out io.Writer) *Printer {
	return &Printer{out: out}
}

// printBox prints a formatted box with a title and content
//
//nolint:errcheck // writing to stdout; errors are not recoverable
func (p *Printer) printBox(title string, content string) {
	border := strings.Repeat("─", boxWidth-2)
	fmt.Fprintf(p.out, "┌%s┐\n", border)
	fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, title)
	fmt.Fprintf(p.out, "├%s┤\n", border)

	lines := strings.Split(content, "\n")
	for _, line := range lines {
		// Truncate long lines
		if len(line) > boxWidth-4 {
			line = line[:boxWidth-7] + "..."
		}
		fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, line)
	}

	fmt.Fprintf(p.out, "└%s┘\n", border)
}

// PrintCustomerProfile outputs a human-readable summary of the analyzed customer.
func (p *Printer) PrintCustomerProfile(profile *types.CustomerProfile) {
	if profile == nil {
		return
	}

	var sb strings.Builder

	sb.WriteString(fmt.Sprintf("Customer: %s\n", profile.CustomerName))
	sb.WriteString(fmt.Sprintf("Industry: %s\n", profile.Industry))
	sb.WriteString(fmt.Sprintf("Size:     %s\n", profile.CompanySize))
	sb.WriteString("\n")

	sb.WriteString(fmt.Sprintf("Pain Points (%d):\n", len(profile.PainPoints)))
	for i, pp := range profile.PainPoints {
		if i >= maxItemsToShow {
			sb.WriteString(fmt.Sprintf("  ... and %d more\n", len(profile.PainPoints)-maxItemsToShow))
			break
		}
		sb.WriteString(fmt.Sprintf("  • %s (%s)\n", pp.Issue, pp.Impact))
	}

	sb.WriteString(fmt.Sprintf("Needs (%d):\n", len(profile.Needs)))
	for i, n := range profile.Needs {
		if i >= maxItemsToShow {
			sb.WriteString(fmt.Sprintf("  ... and %d more\n", len(profile.Needs)-maxItemsToShow))
			break
		}
		sb.WriteString(fmt.Sprintf("  • %s (%s)\n", n.Requirement, n.Priority))
	}

	sb.WriteString(fmt.Sprintf("Decision Makers (%d):\n", len(profile.DecisionMakers)))
	for _, dm := range profile.DecisionMakers {
		sb.WriteString(fmt.Sprintf("  • %s, %s\n", dm.Name, dm.Role))
	}

	sb.WriteString(fmt.Sprintf("Budget:   %s\n", profile.BudgetRange))
	sb.WriteString(fmt.Sprintf("Timeline: %s\n", profile.Timeline))

	p.printBox("CUSTOMER PROFILE", sb.String())
}

// PrintConversation outputs the generated conversation transcript.
func (p *Printer) PrintConversation(conv *types.Conversation) {
	if conv == nil {
		return
	}

	var sb strings.Builder

	sb.WriteString(fmt.Sprintf("Goal:     %s\n", conv.Goal))
	sb.WriteString(fmt.Sprintf("Channel:  %s\n", conv.Channel))
	sb.WriteString(fmt.Sprintf("Messages: %d\n", len(conv.Messages)))
	sb.WriteString("\n")

	for _, m := range conv.Messages {
		content := m.Content
		if len(content) > 120 {
			content = content[:117] + "..."
		}
		sb.WriteString(fmt.Sprintf("[%s] %s\n", m.Sender, content))
	}

	p.printBox("CONVERSATION", sb.String())
}

// PrintStrategyAnalysis outputs the strategy assessment scores and findings.
func (p *Printer) PrintStrategyAnalysis(sa *types.StrategyAnalysis) {
	if sa == nil {
		return
	}

	var sb strings.Builder

	sb.WriteString(fmt.Sprintf("Overall Effectiveness: %.1f / 10\n", sa.OverallEffectiveness))
	sb.WriteString(fmt.Sprintf("Methodology:           %.1f / 10\n", sa.MethodologyScore))
	sb.WriteString(fmt.Sprintf("Positioning:           %.1f / 10\n", sa.PositioningScore))
	sb.WriteString(fmt.Sprintf("Value Proposition:     %.1f / 10\n", sa.ValuePropScore))
	sb.WriteString("\n")

	sb.WriteString(fmt.Sprintf("Recommendations (%d):\n", len(sa.Recommendations)))
	for i, r := range sa.Recommendations {
		if i >= maxItemsToShow {
			sb.WriteString(fmt.Sprintf("  ... and %d more\n", len(sa.Recommendations)-maxItemsToShow))
			break
		}
		sb.WriteString(fmt.Sprintf("  • %s\n", r))
	}

	if len(sa.Strengths) > 0 {
		sb.WriteString("Strengths:\n")
		for _, s := range sa.Strengths {
			sb.WriteString(fmt.Sprintf("  • %s\n", s))
		}
	}

	p.printBox("STRATEGY ANALYSIS", sb.String())
}

// PrintPersonalityAnalysis outputs the buyer personality classification.
func (p *Printer) PrintPersonalityAnalysis(pa *types.PersonalityAnalysis) {
	if pa == nil {
		return
	}

	var sb strings.Builder

	sb.WriteString(fmt.Sprintf("Profile:    %s (%d%% confidence)\n", pa.PersonalityProfile, pa.ProfileConfidence))
	sb.WriteString(fmt.Sprintf("Decisions:  %s\n", pa.DecisionMakingStyle))
	sb.WriteString(fmt.Sprintf("Risk:       %s\n", pa.RiskTolerance))
	sb.WriteString(fmt.Sprintf("Comms:      %s\n", pa.CommunicationStyle))
	sb.WriteString(fmt.Sprintf("DISC:       D=%.1f I=%.1f S=%.1f C=%.1f\n",
		pa.DISCProfile["D"], pa.DISCProfile["I"], pa.DISCProfile["S"], pa.DISCProfile["C"]))
	sb.WriteString("\n")

	sb.WriteString(fmt.Sprintf("Recommendations (%d):\n", len(pa.Recommendations)))
	for i, r := range pa.Recommendations {
		if i >= maxItemsToShow {
			sb.WriteString(fmt.Sprintf("  ... and %d more\n", len(pa.Recommendations)-maxItemsToShow))
			break
		}
		sb.WriteString(fmt.Sprintf("  • %s\n", r))
	}

	p.printBox("PERSONALITY ANALYSIS", sb.String())
}

// PrintRunSummary outputs stage timings and any recorded issues for a run.
func (p *Printer) PrintRunSummary(st *state.RunState) {
	if st == nil {
		return
	}

	var sb strings.Builder

	sb.WriteString(fmt.Sprintf("Thread:   %s\n", st.ThreadID))
	sb.WriteString(fmt.Sprintf("Status:   %s\n", st.Status))
	sb.WriteString("\n")

	sb.WriteString("Stages:\n")
	for _, name := range st.CompletedStages {
		sb.WriteString(fmt.Sprintf("  ✓ %-22s %.2fs\n", name, st.StageDurations[name]))
	}
	sb.WriteString(fmt.Sprintf("Total:    %.2fs\n", st.TotalDuration))

	if len(st.Warnings) > 0 {
		sb.WriteString(fmt.Sprintf("Warnings: %d\n", len(st.Warnings)))
	}
	if len(st.Errors) > 0 {
		sb.WriteString(fmt.Sprintf("Errors:   %d\n", len(st.Errors)))
	}

	p.printBox("RUN SUMMARY", sb.String())
}
