package render

import (
	"fmt"
	"io"
	"math/big"
	"strings"

	"github.com/fatih/color"
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"
	"github.com/trebuchet-org/treb-gov/internal/domain/amount"
	"github.com/trebuchet-org/treb-gov/internal/domain/models"
	"github.com/trebuchet-org/treb-gov/internal/usecase"
)

// ProposalRenderer renders a proposal with its history, voting details and actions
type ProposalRenderer struct {
	out      io.Writer
	decimals uint8
	symbol   string
}

// NewProposalRenderer creates a new proposal renderer. Voting power is
// shown in units of the governance token.
func NewProposalRenderer(out io.Writer, token models.Token) *ProposalRenderer {
	return &ProposalRenderer{out: out, decimals: token.Decimals, symbol: token.Symbol}
}

// Render renders the full proposal page
func (r *ProposalRenderer) Render(result *usecase.ShowProposalResult) error {
	p := result.Proposal

	// Header
	title := p.Metadata.Title
	if title == "" {
		title = p.ID
	}
	color.New(color.FgCyan, color.Bold).Fprintf(r.out, "Proposal: %s\n", title)
	fmt.Fprintln(r.out, strings.Repeat("=", 80))

	fmt.Fprintf(r.out, "  ID: %s\n", p.ID)
	fmt.Fprintf(r.out, "  Status: %s\n", statusColor(p.Status).Sprint(FormatLabel(string(p.Status))))
	fmt.Fprintf(r.out, "  Creator: %s\n", p.Creator.Hex())
	if p.Metadata.Summary != "" {
		fmt.Fprintf(r.out, "  Summary: %s\n", p.Metadata.Summary)
	}
	for _, res := range p.Metadata.Resources {
		fmt.Fprintf(r.out, "  Resource: %s (%s)\n", res.Name, color.New(color.FgBlue).Sprint(res.URL))
	}

	r.renderHistory(result.Milestones)
	r.renderVoting(result)
	r.renderActions(result.Actions)
	return nil
}

func (r *ProposalRenderer) renderHistory(milestones []models.Milestone) {
	fmt.Fprintln(r.out, "\nHistory:")
	for _, m := range milestones {
		icon, c := milestoneStyle(m.Variant)
		line := fmt.Sprintf("  %s %-20s", c.Sprint(icon), m.Label)
		if m.Date != nil {
			line += "  " + FormatDate(*m.Date)
		}
		if m.BlockNumber != nil {
			line += "  block " + FormatBlock(*m.BlockNumber)
		}
		fmt.Fprintln(r.out, line)
	}
}

func (r *ProposalRenderer) renderVoting(result *usecase.ShowProposalResult) {
	summary := result.Summary
	tally := result.Proposal.Tally()
	total := tally.Total()

	fmt.Fprintln(r.out, "\nVoting:")

	t := table.NewWriter()
	t.SetStyle(table.StyleLight)
	t.Style().Options.DrawBorder = false
	t.Style().Options.SeparateColumns = false
	t.SetColumnConfigs([]table.ColumnConfig{
		{Number: 2, Align: text.AlignRight},
		{Number: 3, Align: text.AlignRight},
	})
	t.AppendHeader(table.Row{"  Option", "Votes", "Share"})
	for _, row := range []struct {
		label string
		value *big.Int
	}{
		{"Yes", tally.Yes},
		{"No", tally.No},
		{"Abstain", tally.Abstain},
	} {
		t.AppendRow(table.Row{
			"  " + row.label,
			FormatValue(orZero(row.value), r.decimals, r.symbol),
			fmt.Sprintf("%d%%", amount.Percentage(row.value, total)),
		})
	}
	fmt.Fprintln(r.out, t.Render())

	fmt.Fprintf(r.out, "\n  Participation: %d%% of %s (minimum %d%%) %s\n",
		summary.CurrentParticipation,
		FormatValue(orZero(summary.TotalVotingWeight), r.decimals, r.symbol),
		summary.MinParticipation,
		check(summary.QuorumReached),
	)
	fmt.Fprintf(r.out, "  Support: %d%% (threshold %s%%) %s\n",
		summary.SupportPercent,
		summary.ApprovalThreshold.String(),
		check(summary.SupportReached),
	)
	fmt.Fprintf(r.out, "  Unique voters: %d\n", summary.UniqueVoters)
	fmt.Fprintf(r.out, "  Voting period: %s → %s\n", FormatDate(summary.VotingStart), FormatDate(summary.VotingEnd))
}

func (r *ProposalRenderer) renderActions(actions []models.Action) {
	if len(actions) == 0 {
		return
	}
	fmt.Fprintln(r.out, "\nActions:")
	for i, action := range actions {
		label := color.New(color.FgYellow).Sprint(FormatLabel(string(action.Kind())))
		fmt.Fprintf(r.out, "  %d. %s: %s\n", i+1, label, describeAction(action))
	}
}

func describeAction(action models.Action) string {
	switch a := action.(type) {
	case models.WithdrawAction:
		return fmt.Sprintf("%s of %s to %s", orZero(a.Amount).String(), a.TokenAddress.Hex(), a.To.Hex())
	case models.MintAction:
		return fmt.Sprintf("%s to %d wallet(s)", a.Total().String(), len(a.Mints))
	case models.MergeAction:
		return fmt.Sprintf("%s at %s", color.New(color.FgBlue).Sprint(a.PullRequestURL()), a.Sha)
	case models.UnknownAction:
		return fmt.Sprintf("%s.%s", a.Interface, a.Method)
	default:
		return string(action.Kind())
	}
}

func milestoneStyle(v models.MilestoneVariant) (string, *color.Color) {
	switch v {
	case models.MilestoneDone:
		return "✓", color.New(color.FgGreen)
	case models.MilestoneExecuted:
		return "★", color.New(color.FgMagenta, color.Bold)
	case models.MilestoneFailed:
		return "✗", color.New(color.FgRed)
	default:
		return "●", color.New(color.FgYellow)
	}
}

func statusColor(status models.ProposalStatus) *color.Color {
	switch status {
	case models.ProposalStatusActive:
		return color.New(color.FgYellow, color.Bold)
	case models.ProposalStatusSucceeded:
		return color.New(color.FgGreen, color.Bold)
	case models.ProposalStatusExecuted:
		return color.New(color.FgMagenta, color.Bold)
	case models.ProposalStatusDefeated:
		return color.New(color.FgRed, color.Bold)
	default:
		return color.New(color.Faint)
	}
}

func check(ok bool) string {
	if ok {
		return color.New(color.FgGreen).Sprint("✓")
	}
	return color.New(color.FgRed).Sprint("✗")
}

func orZero(v *big.Int) *big.Int {
	if v == nil {
		return new(big.Int)
	}
	return v
}
