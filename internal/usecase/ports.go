package usecase

import (
	"context"
	"math/big"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/trebuchet-org/treb-gov/internal/domain/models"
)

// ChainReader reads balances and allowances at the latest block.
// Errors are returned as the node reported them.
type ChainReader interface {
	NativeBalance(ctx context.Context, account common.Address) (*big.Int, error)
	TokenBalance(ctx context.Context, token, account common.Address) (*big.Int, error)
	Allowance(ctx context.Context, token, owner, spender common.Address) (*big.Int, error)
	BlockNumber(ctx context.Context) (uint64, error)
}

// TxRequest is an unsigned transaction: a value transfer, a contract call, or both
type TxRequest struct {
	To    common.Address
	Value *big.Int
	Data  []byte
}

// ChainWriter prepares transactions for the configured signer
type ChainWriter interface {
	// From is the signer address, or the zero address when no signer is configured.
	From() common.Address
	// Prepare checks that req can be sent (gas estimation, nonce) and returns
	// a write that sends it. Without a signer it fails with domain.ErrNotReady.
	Prepare(ctx context.Context, req TxRequest) (PreparedWrite, error)
}

// PreparedWrite sends a prepared transaction
type PreparedWrite interface {
	Write(ctx context.Context) (TransactionHandle, error)
}

// TransactionHandle tracks a sent transaction
type TransactionHandle interface {
	Hash() common.Hash
	Wait(ctx context.Context) (*types.Receipt, error)
}

// GovernanceClient reads organization state and sends governance writes
type GovernanceClient interface {
	// GetProposal returns nil without error when the proposal does not exist.
	GetProposal(ctx context.Context, id string) (*models.ProposalSnapshot, error)
	GetMembers(ctx context.Context) ([]common.Address, error)
	TotalVotingWeight(ctx context.Context, block uint64) (*big.Int, error)
	MinDuration(ctx context.Context) (time.Duration, error)
	// PluginAddress is the governance diamond, spender of pool donations.
	PluginAddress() common.Address

	DonateToMiningRewardPool(ctx context.Context, amount *big.Int) (TransactionHandle, error)
	DonateToVerificationRewardPool(ctx context.Context, amount *big.Int) (TransactionHandle, error)
	VerificationReward(ctx context.Context, account common.Address) (*big.Int, error)
	ClaimVerificationReward(ctx context.Context) (TransactionHandle, error)
	VerifyAddress(ctx context.Context, v models.PendingVerification) (TransactionHandle, error)
}

// TokenRegistry lists the tokens that can be deposited
type TokenRegistry interface {
	ListTokens(ctx context.Context) ([]models.Token, error)
	// FindToken matches a symbol (case-insensitive) or an address.
	FindToken(ctx context.Context, ref string) (*models.Token, error)
}

// VerificationStore keeps signed verifications until they are submitted
type VerificationStore interface {
	List(ctx context.Context) ([]models.PendingVerification, error)
	Get(ctx context.Context, addr common.Address) (*models.PendingVerification, error)
	Save(ctx context.Context, v models.PendingVerification) error
	Remove(ctx context.Context, addr common.Address) error
}

// TokenSelector handles interactive selection of tokens and pools
type TokenSelector interface {
	SelectToken(ctx context.Context, tokens []models.Token, prompt string) (*models.Token, error)
	SelectPool(ctx context.Context, pools []models.Pool, prompt string) (models.Pool, error)
}

// Progress tracking interfaces

// ProgressEvent represents a progress update
type ProgressEvent struct {
	Stage   string
	Current int
	Total   int
	Message string
	Spinner bool
}

// ProgressSink receives progress events
type ProgressSink interface {
	OnProgress(ctx context.Context, event ProgressEvent)
	Info(message string)
	Error(message string)
}

// NopProgress is a no-op implementation of ProgressSink
type NopProgress struct{}

func (NopProgress) OnProgress(context.Context, ProgressEvent) {}
func (NopProgress) Info(string)                               {}
func (NopProgress) Error(string)                              {}
