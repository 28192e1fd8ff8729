package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
	"github.com/trebuchet-org/treb-gov/internal/app"
	"github.com/trebuchet-org/treb-gov/internal/config"
)

// contextKey is the type for context keys
type contextKey string

const (
	// appKey is the context key for the app instance
	appKey contextKey = "app"
)

// commands that run without configuration
var standalone = map[string]bool{
	"version":    true,
	"help":       true,
	"completion": true,
	"format":     true,
	"parse":      true,
}

// NewRootCmd creates the root command
func NewRootCmd() *cobra.Command {
	var cancel context.CancelFunc
	var appInstance *app.App

	rootCmd := &cobra.Command{
		Use:   "treb-gov",
		Short: "Governance dashboard for on-chain organizations",
		Long: `treb-gov shows proposals and members of an on-chain organization,
deposits assets into its pools and submits address verifications.`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if standalone[cmd.Name()] {
				return nil
			}

			v := config.SetupViper(config.FindProjectRoot(), cmd)

			var err error
			appInstance, err = app.InitApp(v)
			if err != nil {
				return fmt.Errorf("failed to initialize app: %w", err)
			}

			ctx := context.WithValue(cmd.Context(), appKey, appInstance)
			if appInstance.Config.Timeout > 0 && !watching(cmd) {
				ctx, cancel = context.WithTimeout(ctx, appInstance.Config.Timeout)
			}
			cmd.SetContext(ctx)
			return nil
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			if cancel != nil {
				cancel()
			}
			if appInstance != nil {
				appInstance.Close()
			}
		},
	}

	// Global flags
	rootCmd.PersistentFlags().Bool("debug", false, "Enable debug output")
	rootCmd.PersistentFlags().Bool("non-interactive", false, "Disable interactive prompts")
	rootCmd.PersistentFlags().Bool("json", false, "Output in JSON format")
	rootCmd.PersistentFlags().StringP("network", "n", "", "Network from config.json (e.g., sepolia)")
	rootCmd.PersistentFlags().String("rpc-url", "", "RPC URL, overrides the network's")

	rootCmd.AddGroup(&cobra.Group{ID: "main", Title: "Main Commands"})
	rootCmd.AddGroup(&cobra.Group{ID: "treasury", Title: "Treasury Commands"})
	rootCmd.AddGroup(&cobra.Group{ID: "identity", Title: "Identity Commands"})

	for _, c := range []*cobra.Command{NewProposalCmd(), NewMembersCmd(), NewSettingsCmd()} {
		c.GroupID = "main"
		rootCmd.AddCommand(c)
	}
	for _, c := range []*cobra.Command{NewDepositCmd(), NewApproveCmd(), NewBalanceCmd()} {
		c.GroupID = "treasury"
		rootCmd.AddCommand(c)
	}
	for _, c := range []*cobra.Command{NewVerifyCmd(), NewClaimRewardCmd()} {
		c.GroupID = "identity"
		rootCmd.AddCommand(c)
	}

	rootCmd.AddCommand(NewFormatCmd())
	rootCmd.AddCommand(NewParseCmd())
	rootCmd.AddCommand(NewVersionCmd())

	return rootCmd
}

func watching(cmd *cobra.Command) bool {
	f := cmd.Flags().Lookup("watch")
	return f != nil && f.Value.String() == "true"
}

// getApp retrieves the app instance from the command context
func getApp(cmd *cobra.Command) (*app.App, error) {
	appInstance := cmd.Context().Value(appKey)
	if appInstance == nil {
		return nil, fmt.Errorf("app not initialized")
	}

	app, ok := appInstance.(*app.App)
	if !ok {
		return nil, fmt.Errorf("invalid app instance")
	}

	return app, nil
}
