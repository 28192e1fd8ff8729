package cli

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/trebuchet-org/treb-gov/internal/cli/render"
)

// NewClaimRewardCmd creates the claim-reward command
func NewClaimRewardCmd() *cobra.Command {
	var checkOnly bool

	cmd := &cobra.Command{
		Use:   "claim-reward",
		Short: "Claim the signer's verification reward",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := getApp(cmd)
			if err != nil {
				return err
			}
			ctx := cmd.Context()
			token := governanceToken(ctx, app)

			if checkOnly {
				reward, err := app.ClaimReward.Claimable(ctx)
				if err != nil {
					return err
				}
				if app.Config.JSON {
					return render.JSON(cmd.OutOrStdout(), map[string]string{"claimable": reward.String()})
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Claimable reward: %s\n", render.FormatValue(reward, token.Decimals, token.Symbol))
				return nil
			}

			receipt, err := app.ClaimReward.Run(ctx)
			if err != nil {
				return err
			}
			return renderReceipt(cmd.OutOrStdout(), app, "Reward claimed", receipt)
		},
	}

	cmd.Flags().BoolVar(&checkOnly, "check", false, "Only show the claimable reward")

	return cmd
}
