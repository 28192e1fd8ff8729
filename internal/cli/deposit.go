package cli

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/ethereum/go-ethereum/core/types"
	"github.com/spf13/cobra"
	"github.com/trebuchet-org/treb-gov/internal/app"
	"github.com/trebuchet-org/treb-gov/internal/cli/render"
	"github.com/trebuchet-org/treb-gov/internal/domain/amount"
	"github.com/trebuchet-org/treb-gov/internal/domain/models"
	"github.com/trebuchet-org/treb-gov/internal/usecase"
)

// NewDepositCmd creates the deposit command
func NewDepositCmd() *cobra.Command {
	var tokenRef, poolRef, amountStr string
	var approve bool

	cmd := &cobra.Command{
		Use:   "deposit",
		Short: "Deposit assets into one of the organization's pools",
		Long: `Deposit assets into one of the organization's pools.

The General pool receives a direct transfer of any registered token. The
Mining reward and Verification reward pools take governance tokens through
a donation, which needs an allowance for the governance plugin first
(grant it with --approve or the approve command).

Examples:
  treb-gov deposit --pool general --token ETH --amount 0.5
  treb-gov deposit --pool mining --amount 100 --approve`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := getApp(cmd)
			if err != nil {
				return err
			}
			ctx := cmd.Context()
			out := cmd.OutOrStdout()

			pool, err := resolvePool(ctx, app, poolRef)
			if err != nil {
				return err
			}
			token, err := resolveDepositToken(ctx, app, pool, tokenRef)
			if err != nil {
				return err
			}
			if amountStr == "" {
				return fmt.Errorf("--amount is required")
			}
			value, err := amount.Parse(amountStr, int(token.Decimals))
			if err != nil {
				return err
			}

			req := models.DepositRequest{Token: token, Pool: &pool, Amount: value}
			state, err := app.DepositAssets.Refresh(ctx, req)
			if !app.Config.JSON {
				_ = render.NewDepositRenderer(out).Render(state)
			}
			if err != nil {
				return err
			}
			if state.Error != nil {
				return state.Error
			}
			if state.Balance != nil && state.Balance.Cmp(value) < 0 {
				return fmt.Errorf("insufficient %s balance", token.Symbol)
			}

			if !state.IsApproved {
				if !approve {
					return fmt.Errorf("allowance too low: run with --approve or use the approve command")
				}
				receipt, err := app.DepositAssets.Approve(ctx)
				if err != nil {
					return err
				}
				if err := renderReceipt(out, app, "Allowance approved", receipt); err != nil {
					return err
				}
				if state, err = app.DepositAssets.Refresh(ctx, req); err != nil {
					return err
				}
				if !state.IsApproved {
					return fmt.Errorf("allowance still too low after approval")
				}
			}

			receipt, err := app.DepositAssets.Deposit(ctx)
			if err != nil {
				return err
			}
			return renderReceipt(out, app, fmt.Sprintf("Deposited into %s pool", pool), receipt)
		},
	}

	cmd.Flags().StringVarP(&tokenRef, "token", "t", "", "Token symbol or address")
	cmd.Flags().StringVarP(&poolRef, "pool", "p", "", "Destination pool (general, mining, verification)")
	cmd.Flags().StringVarP(&amountStr, "amount", "a", "", "Amount in token units (e.g., 1.5)")
	cmd.Flags().BoolVar(&approve, "approve", false, "Approve the required allowance before depositing")

	return cmd
}

// NewApproveCmd creates the approve command
func NewApproveCmd() *cobra.Command {
	var amountStr string

	cmd := &cobra.Command{
		Use:   "approve",
		Short: "Allow the governance plugin to take governance tokens for pool donations",
		Long: `Allow the governance plugin to take governance tokens for pool donations.

Without --amount the allowance is unlimited.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := getApp(cmd)
			if err != nil {
				return err
			}
			ctx := cmd.Context()

			token := governanceToken(ctx, app)
			pool := models.PoolMiningReward
			req := models.DepositRequest{Token: &token, Pool: &pool}
			if amountStr != "" {
				if req.Amount, err = amount.Parse(amountStr, int(token.Decimals)); err != nil {
					return err
				}
			}

			if _, err := app.DepositAssets.Refresh(ctx, req); err != nil && !errors.Is(err, usecase.ErrSuperseded) {
				app.Log.Debug("allowance read failed before approval", "error", err)
			}
			receipt, err := app.DepositAssets.Approve(ctx)
			if err != nil {
				return err
			}
			return renderReceipt(cmd.OutOrStdout(), app, "Allowance approved", receipt)
		},
	}

	cmd.Flags().StringVarP(&amountStr, "amount", "a", "", "Allowance in token units (unlimited when omitted)")

	return cmd
}

func resolvePool(ctx context.Context, app *app.App, ref string) (models.Pool, error) {
	if ref != "" {
		return models.ParsePool(ref)
	}
	return app.Selector.SelectPool(ctx, models.Pools, "Select a pool")
}

// resolveDepositToken picks the token for pool. Reward pools only accept
// the governance token.
func resolveDepositToken(ctx context.Context, app *app.App, pool models.Pool, ref string) (*models.Token, error) {
	if pool != models.PoolGeneral {
		token := governanceToken(ctx, app)
		if ref != "" {
			chosen, err := app.Tokens.FindToken(ctx, ref)
			if err != nil {
				return nil, err
			}
			if chosen.Address != token.Address || chosen.IsNativeToken {
				return nil, fmt.Errorf("only the governance token can be donated to the %s pool", pool)
			}
		}
		return &token, nil
	}

	if ref != "" {
		return app.Tokens.FindToken(ctx, ref)
	}
	tokens, err := app.Tokens.ListTokens(ctx)
	if err != nil {
		return nil, err
	}
	return app.Selector.SelectToken(ctx, tokens, "Select a token")
}

func renderReceipt(out io.Writer, app *app.App, title string, receipt *types.Receipt) error {
	if app.Config.JSON {
		return render.JSON(out, map[string]any{
			"transaction": receipt.TxHash,
			"status":      receipt.Status,
			"blockNumber": receipt.BlockNumber,
		})
	}
	return render.NewReceiptRenderer(out, app.Config.Network).Render(title, receipt)
}
