package cli

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"github.com/spf13/cobra"
	"github.com/trebuchet-org/treb-gov/internal/app"
	"github.com/trebuchet-org/treb-gov/internal/cli/render"
	"github.com/trebuchet-org/treb-gov/internal/domain/models"
	"github.com/trebuchet-org/treb-gov/internal/usecase"
)

// NewProposalCmd creates the proposal command group
func NewProposalCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "proposal",
		Short: "Inspect governance proposals",
	}
	cmd.AddCommand(newProposalShowCmd())
	return cmd
}

func newProposalShowCmd() *cobra.Command {
	var watch bool
	var interval time.Duration

	cmd := &cobra.Command{
		Use:   "show <id>",
		Short: "Show a proposal's history, voting details and actions",
		Long: `Show a proposal's history, voting details and actions.

With --watch the proposal is refetched every interval until interrupted.

Examples:
  treb-gov proposal show 0xdao..._0x1
  treb-gov proposal show 0xdao..._0x1 --watch --interval 30s`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if watch && interval <= 0 {
				return fmt.Errorf("--interval must be positive, got %s", interval)
			}
			app, err := getApp(cmd)
			if err != nil {
				return err
			}
			ctx := cmd.Context()
			token := governanceToken(ctx, app)

			show := func(result *usecase.ShowProposalResult) error {
				if app.Config.JSON {
					return render.JSON(cmd.OutOrStdout(), proposalJSON(result))
				}
				return render.NewProposalRenderer(cmd.OutOrStdout(), token).Render(result)
			}

			if !watch {
				result, err := app.ShowProposal.Run(ctx, args[0])
				if err != nil {
					return err
				}
				return show(result)
			}

			err = app.ProposalWatcher.Watch(ctx, args[0], interval, func(result *usecase.ShowProposalResult, err error) {
				if err != nil {
					fmt.Fprintln(cmd.ErrOrStderr(), render.FormatError(err.Error()))
					return
				}
				if !app.Config.JSON {
					// clear screen between refreshes
					fmt.Fprint(cmd.OutOrStdout(), "\033[H\033[2J")
				}
				if err := show(result); err != nil {
					app.Log.Warn("failed to render proposal", "error", err)
				}
			})
			if errors.Is(err, context.Canceled) {
				return nil
			}
			return err
		},
	}

	cmd.Flags().BoolVarP(&watch, "watch", "w", false, "Refetch the proposal until interrupted")
	cmd.Flags().DurationVar(&interval, "interval", 15*time.Second, "Refetch interval for --watch")

	return cmd
}

type proposalOutput struct {
	ID                string                  `json:"id"`
	Dao               common.Address          `json:"dao"`
	Creator           common.Address          `json:"creator"`
	Status            models.ProposalStatus   `json:"status"`
	Metadata          models.ProposalMetadata `json:"metadata"`
	Milestones        []models.Milestone      `json:"milestones"`
	Summary           models.VotingSummary    `json:"summary"`
	Tally             models.Tally            `json:"tally"`
	Actions           []actionOutput          `json:"actions"`
	TotalVotingWeight string                  `json:"totalVotingWeight"`
}

type actionOutput struct {
	Kind   models.ActionKind `json:"kind"`
	Action models.Action     `json:"action"`
}

func proposalJSON(result *usecase.ShowProposalResult) proposalOutput {
	p := result.Proposal
	out := proposalOutput{
		ID:         p.ID,
		Dao:        p.DaoAddress,
		Creator:    p.Creator,
		Status:     p.Status,
		Metadata:   p.Metadata,
		Milestones: result.Milestones,
		Summary:    result.Summary,
		Tally:      p.Tally(),
	}
	if result.TotalVotingWeight != nil {
		out.TotalVotingWeight = result.TotalVotingWeight.String()
	}
	for _, a := range result.Actions {
		out.Actions = append(out.Actions, actionOutput{Kind: a.Kind(), Action: a})
	}
	return out
}

// governanceToken returns the registry entry of the governance token, or
// an 18-decimal placeholder when it is not known.
func governanceToken(ctx context.Context, app *app.App) models.Token {
	fallback := models.Token{Address: app.Config.TokenAddress, Decimals: 18}
	if app.Config.TokenAddress == (common.Address{}) {
		return fallback
	}
	token, err := app.Tokens.FindToken(ctx, app.Config.TokenAddress.Hex())
	if err != nil {
		app.Log.Debug("governance token not resolved", "error", err)
		return fallback
	}
	return *token
}
