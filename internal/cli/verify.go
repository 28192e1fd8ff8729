package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/fatih/color"
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"
	"github.com/trebuchet-org/treb-gov/internal/cli/render"
	"github.com/trebuchet-org/treb-gov/internal/domain"
	"github.com/trebuchet-org/treb-gov/internal/domain/models"
)

// verificationFile is the proof a verification provider hands out
type verificationFile struct {
	AddressToVerify common.Address `json:"addressToVerify"`
	Hash            string         `json:"hash"`
	Timestamp       int64          `json:"timestamp"`
	ProviderID      string         `json:"providerId"`
	Sig             hexutil.Bytes  `json:"sig"`
}

func (f verificationFile) model() models.PendingVerification {
	return models.PendingVerification{
		AddressToVerify: f.AddressToVerify,
		Hash:            f.Hash,
		Timestamp:       f.Timestamp,
		ProviderID:      f.ProviderID,
		Sig:             f.Sig,
	}
}

// NewVerifyCmd creates the verify command group
func NewVerifyCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "verify",
		Short: "Verify an address with a provider-signed proof",
		Long: `Verify an address with a provider-signed proof.

Proofs can be submitted for one hour after the provider signed them. Use
"verify add" to keep a proof until the signer is ready, then "verify submit".`,
	}

	cmd.AddCommand(newVerifyRunCmd(), newVerifyAddCmd(), newVerifyListCmd(), newVerifySubmitCmd())
	return cmd
}

func newVerifyRunCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "run <proof.json|->",
		Short: "Submit a proof immediately",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := getApp(cmd)
			if err != nil {
				return err
			}
			v, err := readVerification(cmd.InOrStdin(), args[0])
			if err != nil {
				return err
			}
			receipt, err := app.VerifyAddress.Run(cmd.Context(), v)
			if err != nil {
				return err
			}
			return renderReceipt(cmd.OutOrStdout(), app, "Address verified", receipt)
		},
	}
}

func newVerifyAddCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "add <proof.json|->",
		Short: "Store a proof for later submission",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := getApp(cmd)
			if err != nil {
				return err
			}
			v, err := readVerification(cmd.InOrStdin(), args[0])
			if err != nil {
				return err
			}
			if err := app.VerifyAddress.Add(cmd.Context(), v); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), render.FormatSuccess(fmt.Sprintf(
				"Stored verification of %s, submit within %s",
				v.AddressToVerify.Hex(),
				v.TimeLeft(time.Now()).Round(time.Minute),
			)))
			return nil
		},
	}
}

func newVerifyListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List stored proofs that can still be submitted",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := getApp(cmd)
			if err != nil {
				return err
			}
			pending, err := app.VerifyAddress.Pending(cmd.Context())
			if err != nil {
				return err
			}
			if app.Config.JSON {
				return render.JSON(cmd.OutOrStdout(), pending)
			}
			if len(pending) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "No pending verifications")
				return nil
			}

			now := time.Now()
			t := table.NewWriter()
			t.SetStyle(table.StyleLight)
			t.Style().Options.DrawBorder = false
			t.AppendHeader(table.Row{"Address", "Provider", "Signed", "Time left"})
			for _, v := range pending {
				t.AppendRow(table.Row{
					v.AddressToVerify.Hex(),
					render.FormatLabel(v.ProviderID),
					render.FormatDate(time.Unix(v.Timestamp, 0)),
					color.New(color.FgYellow).Sprint(v.TimeLeft(now).Round(time.Second)),
				})
			}
			fmt.Fprintln(cmd.OutOrStdout(), t.Render())
			return nil
		},
	}
}

func newVerifySubmitCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "submit <address>",
		Short: "Submit a stored proof",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := getApp(cmd)
			if err != nil {
				return err
			}
			if !common.IsHexAddress(args[0]) {
				return fmt.Errorf("%w: %q", domain.ErrInvalidAddress, args[0])
			}
			receipt, err := app.VerifyAddress.Submit(cmd.Context(), common.HexToAddress(args[0]))
			if err != nil {
				return err
			}
			return renderReceipt(cmd.OutOrStdout(), app, "Address verified", receipt)
		},
	}
}

func readVerification(stdin io.Reader, path string) (models.PendingVerification, error) {
	var data []byte
	var err error
	if path == "-" {
		data, err = io.ReadAll(stdin)
	} else {
		data, err = os.ReadFile(path)
	}
	if err != nil {
		return models.PendingVerification{}, fmt.Errorf("failed to read proof: %w", err)
	}

	var f verificationFile
	if err := json.Unmarshal(data, &f); err != nil {
		return models.PendingVerification{}, fmt.Errorf("failed to parse proof: %w", err)
	}
	return f.model(), nil
}
