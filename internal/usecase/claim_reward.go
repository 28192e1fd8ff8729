package usecase

import (
	"context"
	"fmt"
	"log/slog"
	"math/big"
	"sync/atomic"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/trebuchet-org/treb-gov/internal/domain"
)

// ClaimReward claims the one-time verification reward of the signer
type ClaimReward struct {
	gov    GovernanceClient
	writer ChainWriter
	sink   ProgressSink
	log    *slog.Logger

	busy atomic.Bool
}

// NewClaimReward creates a new ClaimReward use case
func NewClaimReward(gov GovernanceClient, writer ChainWriter, sink ProgressSink, log *slog.Logger) *ClaimReward {
	return &ClaimReward{
		gov:    gov,
		writer: writer,
		sink:   sink,
		log:    log.With("component", "ClaimReward"),
	}
}

// Claimable returns the reward the signer can claim.
func (uc *ClaimReward) Claimable(ctx context.Context) (*big.Int, error) {
	account := uc.writer.From()
	if account == (common.Address{}) {
		return nil, fmt.Errorf("%w: no signer configured", domain.ErrNotReady)
	}
	reward, err := uc.gov.VerificationReward(ctx, account)
	if err != nil {
		return nil, domain.ReadFailure("verification reward", err)
	}
	return reward, nil
}

// Run claims the reward. It fails with domain.ErrNotReady when there is
// nothing to claim.
func (uc *ClaimReward) Run(ctx context.Context) (*types.Receipt, error) {
	if !uc.busy.CompareAndSwap(false, true) {
		return nil, domain.ErrWriteInFlight
	}
	defer uc.busy.Store(false)

	reward, err := uc.Claimable(ctx)
	if err != nil {
		return nil, err
	}
	if reward == nil || reward.Sign() <= 0 {
		return nil, fmt.Errorf("%w: no reward to claim", domain.ErrNotReady)
	}

	uc.log.Info("claiming verification reward", "amount", reward.String())
	return awaitWrite(ctx, uc.sink, "claim reward", uc.gov.ClaimVerificationReward)
}
