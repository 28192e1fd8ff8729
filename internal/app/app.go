package app

import (
	"log/slog"

	"github.com/trebuchet-org/treb-gov/internal/adapters/blockchain"
	"github.com/trebuchet-org/treb-gov/internal/domain/config"
	"github.com/trebuchet-org/treb-gov/internal/usecase"
)

// App is the main application container that holds all use cases
type App struct {
	// Configuration
	Config *config.RuntimeConfig
	Log    *slog.Logger

	// Shared dependencies
	Selector usecase.TokenSelector
	Tokens   usecase.TokenRegistry
	Writer   usecase.ChainWriter
	Sink     usecase.ProgressSink

	// Use cases
	ShowProposal       *usecase.ShowProposal
	ProposalWatcher    *usecase.ProposalWatcher
	ListMembers        *usecase.ListMembers
	DepositAssets      *usecase.DepositAssets
	ShowBalances       *usecase.ShowBalances
	ClaimReward        *usecase.ClaimReward
	ShowVotingSettings *usecase.ShowVotingSettings
	VerifyAddress      *usecase.VerifyAddress

	client *blockchain.Client
}

// NewApp creates a new application instance with all use cases
func NewApp(
	cfg *config.RuntimeConfig,
	log *slog.Logger,
	selector usecase.TokenSelector,
	tokens usecase.TokenRegistry,
	writer usecase.ChainWriter,
	sink usecase.ProgressSink,
	showProposal *usecase.ShowProposal,
	proposalWatcher *usecase.ProposalWatcher,
	listMembers *usecase.ListMembers,
	depositAssets *usecase.DepositAssets,
	showBalances *usecase.ShowBalances,
	claimReward *usecase.ClaimReward,
	showVotingSettings *usecase.ShowVotingSettings,
	verifyAddress *usecase.VerifyAddress,
	client *blockchain.Client,
) (*App, error) {
	return &App{
		Config:             cfg,
		Log:                log,
		Selector:           selector,
		Tokens:             tokens,
		Writer:             writer,
		Sink:               sink,
		ShowProposal:       showProposal,
		ProposalWatcher:    proposalWatcher,
		ListMembers:        listMembers,
		DepositAssets:      depositAssets,
		ShowBalances:       showBalances,
		ClaimReward:        claimReward,
		ShowVotingSettings: showVotingSettings,
		VerifyAddress:      verifyAddress,
		client:             client,
	}, nil
}

// Close stops background work and releases the RPC connection.
func (a *App) Close() {
	a.DepositAssets.Close()
	a.client.Close()
}
