package cli

import (
	"fmt"
	"math/big"

	"github.com/spf13/cobra"
	"github.com/trebuchet-org/treb-gov/internal/domain"
	"github.com/trebuchet-org/treb-gov/internal/domain/amount"
)

// NewFormatCmd creates the format command
func NewFormatCmd() *cobra.Command {
	var decimals, display int
	var symbol string

	cmd := &cobra.Command{
		Use:   "format <raw>",
		Short: "Render an on-chain integer amount as a decimal",
		Long: `Render an on-chain integer amount as a decimal.

Examples:
  treb-gov format 1234567800000000000000      # 1234.57
  treb-gov format 12000000000000000000000000000000000000 --symbol SECOIN`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			raw, ok := new(big.Int).SetString(args[0], 10)
			if !ok {
				return fmt.Errorf("%w: %q is not an integer", domain.ErrInvalidAmount, args[0])
			}
			s, err := amount.Format(raw, decimals, display, symbol)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), s)
			return nil
		},
	}

	cmd.Flags().IntVarP(&decimals, "decimals", "d", 18, "Token decimals")
	cmd.Flags().IntVar(&display, "display", amount.DefaultDisplayDecimals, "Fractional digits to show (0-20)")
	cmd.Flags().StringVarP(&symbol, "symbol", "s", "", "Symbol appended to the value")

	return cmd
}

// NewParseCmd creates the parse command
func NewParseCmd() *cobra.Command {
	var decimals int

	cmd := &cobra.Command{
		Use:   "parse <amount>",
		Short: "Convert a decimal amount into on-chain integer units",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			raw, err := amount.Parse(args[0], decimals)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), raw.String())
			return nil
		},
	}

	cmd.Flags().IntVarP(&decimals, "decimals", "d", 18, "Token decimals")

	return cmd
}
