package cli

import (
	"fmt"

	"github.com/ethereum/go-ethereum/common"
	"github.com/spf13/cobra"
	"github.com/trebuchet-org/treb-gov/internal/cli/render"
	"github.com/trebuchet-org/treb-gov/internal/domain"
	"github.com/trebuchet-org/treb-gov/internal/usecase"
)

// NewMembersCmd creates the members command
func NewMembersCmd() *cobra.Command {
	var withBalances bool
	var limit int
	var check string

	cmd := &cobra.Command{
		Use:   "members",
		Short: "List the organization's members",
		Long: `List the organization's members, optionally with their governance
token balance (largest first).

Examples:
  treb-gov members
  treb-gov members --balances --limit 10
  treb-gov members --check 0x1234...`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := getApp(cmd)
			if err != nil {
				return err
			}
			ctx := cmd.Context()

			if check != "" {
				if !common.IsHexAddress(check) {
					return fmt.Errorf("%w: %q", domain.ErrInvalidAddress, check)
				}
				isMember, err := app.ListMembers.IsMember(ctx, common.HexToAddress(check))
				if err != nil {
					return err
				}
				if app.Config.JSON {
					return render.JSON(cmd.OutOrStdout(), map[string]bool{"member": isMember})
				}
				if isMember {
					fmt.Fprintln(cmd.OutOrStdout(), render.FormatSuccess(check+" is a member"))
				} else {
					fmt.Fprintln(cmd.OutOrStdout(), render.FormatWarning(check+" is not a member"))
				}
				return nil
			}

			result, err := app.ListMembers.Run(ctx, usecase.ListMembersParams{
				WithBalances: withBalances,
				Limit:        limit,
			})
			if err != nil {
				return err
			}
			if app.Config.JSON {
				return render.JSON(cmd.OutOrStdout(), result)
			}
			return render.NewMembersRenderer(cmd.OutOrStdout(), governanceToken(ctx, app)).Render(result)
		},
	}

	cmd.Flags().BoolVarP(&withBalances, "balances", "b", false, "Read each member's governance token balance")
	cmd.Flags().IntVarP(&limit, "limit", "l", 0, "Show at most this many members (0 for all)")
	cmd.Flags().StringVar(&check, "check", "", "Only report whether this address is a member")

	return cmd
}
