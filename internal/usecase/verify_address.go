package usecase

import (
	"cmp"
	"context"
	"fmt"
	"log/slog"
	"slices"
	"sync/atomic"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/trebuchet-org/treb-gov/internal/domain"
	"github.com/trebuchet-org/treb-gov/internal/domain/models"
)

// VerifyAddress submits a provider-signed address verification on chain
type VerifyAddress struct {
	gov   GovernanceClient
	store VerificationStore
	sink  ProgressSink
	log   *slog.Logger
	now   func() time.Time

	busy atomic.Bool
}

// NewVerifyAddress creates a new VerifyAddress use case
func NewVerifyAddress(gov GovernanceClient, store VerificationStore, sink ProgressSink, log *slog.Logger) *VerifyAddress {
	return &VerifyAddress{
		gov:   gov,
		store: store,
		sink:  sink,
		log:   log.With("component", "VerifyAddress"),
		now:   time.Now,
	}
}

// WithClock replaces the clock used to check the submission window.
func (uc *VerifyAddress) WithClock(now func() time.Time) *VerifyAddress {
	uc.now = now
	return uc
}

// Run submits v. Verifications older than models.VerificationWindow are
// rejected without a transaction.
func (uc *VerifyAddress) Run(ctx context.Context, v models.PendingVerification) (*types.Receipt, error) {
	if !uc.busy.CompareAndSwap(false, true) {
		return nil, domain.ErrWriteInFlight
	}
	defer uc.busy.Store(false)

	if err := uc.check(v); err != nil {
		return nil, err
	}

	uc.log.Info("verifying address", "address", v.AddressToVerify.Hex(), "provider", v.ProviderID)
	return awaitWrite(ctx, uc.sink, "verify address", func(ctx context.Context) (TransactionHandle, error) {
		return uc.gov.VerifyAddress(ctx, v)
	})
}

// Add stores v for a later Submit. Expired or incomplete verifications are
// rejected.
func (uc *VerifyAddress) Add(ctx context.Context, v models.PendingVerification) error {
	if err := uc.check(v); err != nil {
		return err
	}
	return uc.store.Save(ctx, v)
}

// Pending lists the stored verifications, oldest first. Expired entries
// are dropped from the store.
func (uc *VerifyAddress) Pending(ctx context.Context) ([]models.PendingVerification, error) {
	all, err := uc.store.List(ctx)
	if err != nil {
		return nil, err
	}

	now := uc.now()
	pending := make([]models.PendingVerification, 0, len(all))
	for _, v := range all {
		if !now.Before(v.ExpiresAt()) {
			uc.log.Debug("dropping expired verification", "address", v.AddressToVerify.Hex())
			if err := uc.store.Remove(ctx, v.AddressToVerify); err != nil {
				return nil, err
			}
			continue
		}
		pending = append(pending, v)
	}
	slices.SortFunc(pending, func(a, b models.PendingVerification) int {
		return cmp.Compare(a.Timestamp, b.Timestamp)
	})
	return pending, nil
}

// Submit sends the stored verification of addr and removes it once the
// transaction succeeded.
func (uc *VerifyAddress) Submit(ctx context.Context, addr common.Address) (*types.Receipt, error) {
	v, err := uc.store.Get(ctx, addr)
	if err != nil {
		return nil, err
	}
	receipt, err := uc.Run(ctx, *v)
	if err != nil {
		return receipt, err
	}
	if err := uc.store.Remove(ctx, addr); err != nil {
		uc.log.Warn("could not remove submitted verification", "address", addr.Hex(), "error", err)
	}
	return receipt, nil
}

func (uc *VerifyAddress) check(v models.PendingVerification) error {
	if !uc.now().Before(v.ExpiresAt()) {
		return fmt.Errorf("%w: signed at %s, window closed at %s",
			domain.ErrVerificationExpired,
			time.Unix(v.Timestamp, 0).UTC().Format(time.RFC3339),
			v.ExpiresAt().UTC().Format(time.RFC3339),
		)
	}
	if v.Hash == "" || v.ProviderID == "" || len(v.Sig) == 0 {
		return fmt.Errorf("%w: verification is missing hash, provider or signature", domain.ErrNotReady)
	}
	return nil
}
