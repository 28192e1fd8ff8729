package cli

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"github.com/trebuchet-org/treb-gov/internal/cli/render"
)

// NewSettingsCmd creates the settings command
func NewSettingsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "settings",
		Short: "Show the organization's voting settings",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := getApp(cmd)
			if err != nil {
				return err
			}

			settings, err := app.ShowVotingSettings.Run(cmd.Context())
			if err != nil {
				return err
			}
			if app.Config.JSON {
				return render.JSON(cmd.OutOrStdout(), map[string]any{
					"minDurationSeconds": int64(settings.MinDuration.Seconds()),
				})
			}

			out := cmd.OutOrStdout()
			color.New(color.FgCyan, color.Bold).Fprintln(out, "Voting settings")
			fmt.Fprintf(out, "  Minimum duration: %s\n", settings.MinDuration)
			if app.Config.Network != nil {
				fmt.Fprintf(out, "  Network: %s (chain %d)\n", app.Config.Network.Name, app.Config.Network.ChainID)
			}
			fmt.Fprintf(out, "  Governance plugin: %s\n", app.Config.DiamondAddress.Hex())
			return nil
		},
	}
}
