package usecase_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"github.com/trebuchet-org/treb-gov/internal/domain"
	"github.com/trebuchet-org/treb-gov/internal/domain/models"
	"github.com/trebuchet-org/treb-gov/internal/usecase"
)

func pendingVerification(signedAt time.Time) models.PendingVerification {
	return models.PendingVerification{
		AddressToVerify: common.HexToAddress("0x00000000000000000000000000000000000000ab"),
		Hash:            "proof-hash",
		Timestamp:       signedAt.Unix(),
		ProviderID:      "github",
		Sig:             []byte{0x01, 0x02},
	}
}

func TestVerifyAddress(t *testing.T) {
	ctx := context.Background()
	signedAt := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)

	t.Run("submits within the window", func(t *testing.T) {
		gov := new(MockGovernanceClient)
		v := pendingVerification(signedAt)
		gov.On("VerifyAddress", mock.Anything, v).Return(successfulTx("0x10"), nil)

		uc := usecase.NewVerifyAddress(gov, new(MockVerificationStore), usecase.NopProgress{}, discardLogger()).
			WithClock(func() time.Time { return signedAt.Add(59 * time.Minute) })

		_, err := uc.Run(ctx, v)
		require.NoError(t, err)
		gov.AssertNumberOfCalls(t, "VerifyAddress", 1)
	})

	t.Run("rejects an expired verification", func(t *testing.T) {
		gov := new(MockGovernanceClient)
		uc := usecase.NewVerifyAddress(gov, new(MockVerificationStore), usecase.NopProgress{}, discardLogger()).
			WithClock(func() time.Time { return signedAt.Add(time.Hour) })

		_, err := uc.Run(ctx, pendingVerification(signedAt))
		assert.ErrorIs(t, err, domain.ErrVerificationExpired)
		gov.AssertNotCalled(t, "VerifyAddress", mock.Anything, mock.Anything)
	})

	t.Run("rejects an incomplete verification", func(t *testing.T) {
		gov := new(MockGovernanceClient)
		v := pendingVerification(signedAt)
		v.Sig = nil
		uc := usecase.NewVerifyAddress(gov, new(MockVerificationStore), usecase.NopProgress{}, discardLogger()).
			WithClock(func() time.Time { return signedAt })

		_, err := uc.Run(ctx, v)
		assert.ErrorIs(t, err, domain.ErrNotReady)
	})
}

func TestVerifyAddressStoredVerifications(t *testing.T) {
	ctx := context.Background()
	signedAt := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	now := func() time.Time { return signedAt.Add(30 * time.Minute) }

	fresh := pendingVerification(signedAt)
	older := pendingVerification(signedAt.Add(-10 * time.Minute))
	older.AddressToVerify = common.HexToAddress("0x00000000000000000000000000000000000000ac")
	expired := pendingVerification(signedAt.Add(-2 * time.Hour))
	expired.AddressToVerify = common.HexToAddress("0x00000000000000000000000000000000000000ad")

	t.Run("add rejects expired", func(t *testing.T) {
		store := new(MockVerificationStore)
		uc := usecase.NewVerifyAddress(new(MockGovernanceClient), store, usecase.NopProgress{}, discardLogger()).WithClock(now)

		assert.ErrorIs(t, uc.Add(ctx, expired), domain.ErrVerificationExpired)
		store.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)

		store.On("Save", mock.Anything, fresh).Return(nil)
		assert.NoError(t, uc.Add(ctx, fresh))
	})

	t.Run("pending drops expired and sorts oldest first", func(t *testing.T) {
		store := new(MockVerificationStore)
		store.On("List", mock.Anything).Return([]models.PendingVerification{fresh, expired, older}, nil)
		store.On("Remove", mock.Anything, expired.AddressToVerify).Return(nil)
		uc := usecase.NewVerifyAddress(new(MockGovernanceClient), store, usecase.NopProgress{}, discardLogger()).WithClock(now)

		pending, err := uc.Pending(ctx)
		require.NoError(t, err)
		assert.Equal(t, []models.PendingVerification{older, fresh}, pending)
		store.AssertNumberOfCalls(t, "Remove", 1)
	})

	t.Run("submit removes on success", func(t *testing.T) {
		store := new(MockVerificationStore)
		gov := new(MockGovernanceClient)
		store.On("Get", mock.Anything, fresh.AddressToVerify).Return(&fresh, nil)
		store.On("Remove", mock.Anything, fresh.AddressToVerify).Return(nil)
		gov.On("VerifyAddress", mock.Anything, fresh).Return(successfulTx("0x11"), nil)
		uc := usecase.NewVerifyAddress(gov, store, usecase.NopProgress{}, discardLogger()).WithClock(now)

		_, err := uc.Submit(ctx, fresh.AddressToVerify)
		require.NoError(t, err)
		store.AssertCalled(t, "Remove", mock.Anything, fresh.AddressToVerify)
	})

	t.Run("submit keeps the entry on failure", func(t *testing.T) {
		store := new(MockVerificationStore)
		gov := new(MockGovernanceClient)
		store.On("Get", mock.Anything, fresh.AddressToVerify).Return(&fresh, nil)
		gov.On("VerifyAddress", mock.Anything, fresh).Return(nil, errors.New("user rejected"))
		uc := usecase.NewVerifyAddress(gov, store, usecase.NopProgress{}, discardLogger()).WithClock(now)

		_, err := uc.Submit(ctx, fresh.AddressToVerify)
		var writeErr *domain.ExternalWriteError
		assert.ErrorAs(t, err, &writeErr)
		store.AssertNotCalled(t, "Remove", mock.Anything, mock.Anything)
	})
}

func TestPendingVerificationTimeLeft(t *testing.T) {
	signedAt := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	v := pendingVerification(signedAt)

	assert.Equal(t, 45*time.Minute, v.TimeLeft(signedAt.Add(15*time.Minute)))
	assert.Equal(t, time.Duration(0), v.TimeLeft(signedAt.Add(2*time.Hour)))
}
