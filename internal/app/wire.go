//go:build wireinject
// +build wireinject

package app

import (
	"github.com/google/wire"
	"github.com/spf13/viper"
	"github.com/trebuchet-org/treb-gov/internal/adapters"
	"github.com/trebuchet-org/treb-gov/internal/config"
	"github.com/trebuchet-org/treb-gov/internal/logging"
	"github.com/trebuchet-org/treb-gov/internal/usecase"
)

// InitApp creates a fully wired App instance
func InitApp(v *viper.Viper) (*App, error) {
	wire.Build(
		// Configuration
		config.Provider,
		logging.LoggingSet,

		// Adapters
		adapters.AllAdapters,

		// Use cases
		usecase.NewShowProposal,
		usecase.NewProposalWatcher,
		usecase.NewListMembers,
		usecase.NewDepositAssets,
		usecase.NewShowBalances,
		usecase.NewClaimReward,
		usecase.NewShowVotingSettings,
		usecase.NewVerifyAddress,

		// App
		NewApp,
	)
	return nil, nil
}
