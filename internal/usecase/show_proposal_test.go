package usecase_test

import (
	"context"
	"errors"
	"math/big"
	"sync/atomic"
	"testing"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"github.com/trebuchet-org/treb-gov/internal/domain"
	"github.com/trebuchet-org/treb-gov/internal/domain/config"
	"github.com/trebuchet-org/treb-gov/internal/domain/models"
	"github.com/trebuchet-org/treb-gov/internal/usecase"
)

func activeProposal(id string, daoAddr common.Address) *models.ProposalSnapshot {
	created := time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC)
	return models.NewProposalSnapshot(models.ProposalSnapshotData{
		ID:           id,
		DaoAddress:   daoAddr,
		Status:       models.ProposalStatusActive,
		CreationDate: created,
		StartDate:    created.Add(time.Hour),
		EndDate:      created.Add(time.Hour + 7*24*time.Hour),
		Actions: []models.Action{
			models.WithdrawAction{To: common.HexToAddress("0x3"), Amount: big.NewInt(5)},
		},
		Tally: models.Tally{Yes: big.NewInt(60), No: big.NewInt(30), Abstain: big.NewInt(10)},
		VoterList: []common.Address{
			common.HexToAddress("0x1"),
			common.HexToAddress("0x2"),
		},
		Parameters: models.ProposalParameters{
			MinParticipationThresholdPower: big.NewInt(50),
			SupportThreshold:               500000,
			SnapshotBlock:                  1234,
		},
	})
}

func TestShowProposal(t *testing.T) {
	ctx := context.Background()
	gov := new(MockGovernanceClient)
	gov.On("GetProposal", mock.Anything, "0xdao_0x1").Return(activeProposal("0xdao_0x1", dao), nil)
	gov.On("TotalVotingWeight", mock.Anything, uint64(1234)).Return(big.NewInt(400), nil)

	uc := usecase.NewShowProposal(&config.RuntimeConfig{DaoAddress: dao}, gov, usecase.NopProgress{}, discardLogger())
	result, err := uc.Run(ctx, " 0xdao_0x1 ")
	require.NoError(t, err)

	assert.Equal(t, "0xdao_0x1", result.Proposal.ID)
	require.Len(t, result.Milestones, 3)
	assert.Equal(t, models.LabelPublished, result.Milestones[0].Label)
	assert.Equal(t, models.LabelRunning, result.Milestones[2].Label)
	assert.Equal(t, models.MilestoneLoading, result.Milestones[2].Variant)
	assert.Equal(t, 25, result.Summary.CurrentParticipation)
	assert.Equal(t, 67, result.Summary.SupportPercent)
	assert.Len(t, result.Actions, 1)
	assert.Equal(t, "400", result.TotalVotingWeight.String())
}

func TestShowProposalErrors(t *testing.T) {
	ctx := context.Background()
	other := common.HexToAddress("0x0000000000000000000000000000000000000bad")

	tests := []struct {
		name  string
		id    string
		setup func(*MockGovernanceClient)
		check func(*testing.T, error)
	}{
		{
			name:  "empty id",
			id:    "   ",
			setup: func(*MockGovernanceClient) {},
			check: func(t *testing.T, err error) {
				assert.ErrorIs(t, err, domain.ErrProposalNotFound)
			},
		},
		{
			name: "unknown proposal",
			id:   "missing",
			setup: func(gov *MockGovernanceClient) {
				gov.On("GetProposal", mock.Anything, "missing").Return(nil, nil)
			},
			check: func(t *testing.T, err error) {
				assert.ErrorIs(t, err, domain.ErrProposalNotFound)
			},
		},
		{
			name: "proposal of another organization",
			id:   "foreign",
			setup: func(gov *MockGovernanceClient) {
				gov.On("GetProposal", mock.Anything, "foreign").Return(activeProposal("foreign", other), nil)
			},
			check: func(t *testing.T, err error) {
				assert.ErrorIs(t, err, domain.ErrWrongDao)
			},
		},
		{
			name: "client failure",
			id:   "p1",
			setup: func(gov *MockGovernanceClient) {
				gov.On("GetProposal", mock.Anything, "p1").Return(nil, errors.New("502 bad gateway"))
			},
			check: func(t *testing.T, err error) {
				var readErr *domain.ExternalReadError
				require.ErrorAs(t, err, &readErr)
				assert.Equal(t, "get proposal", readErr.Op)
			},
		},
		{
			name: "voting weight failure",
			id:   "p2",
			setup: func(gov *MockGovernanceClient) {
				gov.On("GetProposal", mock.Anything, "p2").Return(activeProposal("p2", dao), nil)
				gov.On("TotalVotingWeight", mock.Anything, uint64(1234)).Return(nil, errors.New("timeout"))
			},
			check: func(t *testing.T, err error) {
				var readErr *domain.ExternalReadError
				require.ErrorAs(t, err, &readErr)
				assert.Equal(t, "total voting weight", readErr.Op)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			gov := new(MockGovernanceClient)
			tt.setup(gov)
			uc := usecase.NewShowProposal(&config.RuntimeConfig{DaoAddress: dao}, gov, usecase.NopProgress{}, discardLogger())

			result, err := uc.Run(ctx, tt.id)
			assert.Nil(t, result)
			tt.check(t, err)
		})
	}
}

func TestShowProposalWithoutConfiguredDao(t *testing.T) {
	gov := new(MockGovernanceClient)
	gov.On("GetProposal", mock.Anything, "any").Return(activeProposal("any", common.HexToAddress("0x42")), nil)
	gov.On("TotalVotingWeight", mock.Anything, uint64(1234)).Return(big.NewInt(100), nil)

	uc := usecase.NewShowProposal(&config.RuntimeConfig{}, gov, usecase.NopProgress{}, discardLogger())
	_, err := uc.Run(context.Background(), "any")
	assert.NoError(t, err)
}

func TestProposalWatcherDiscardsStaleResult(t *testing.T) {
	ctx := context.Background()
	gov := new(MockGovernanceClient)

	started := make(chan struct{})
	release := make(chan struct{})
	gov.On("GetProposal", mock.Anything, "slow").Run(func(mock.Arguments) {
		close(started)
		<-release
	}).Return(activeProposal("slow", dao), nil).Once()
	gov.On("GetProposal", mock.Anything, "fast").Return(activeProposal("fast", dao), nil)
	gov.On("TotalVotingWeight", mock.Anything, uint64(1234)).Return(big.NewInt(400), nil)

	w := usecase.NewProposalWatcher(usecase.NewShowProposal(&config.RuntimeConfig{DaoAddress: dao}, gov, usecase.NopProgress{}, discardLogger()))

	stale := make(chan error, 1)
	go func() {
		_, err := w.Refresh(ctx, "slow")
		stale <- err
	}()
	<-started

	result, err := w.Refresh(ctx, "fast")
	require.NoError(t, err)
	assert.Equal(t, "fast", result.Proposal.ID)

	close(release)
	assert.ErrorIs(t, <-stale, usecase.ErrSuperseded)

	latest, err := w.Latest()
	require.NoError(t, err)
	assert.Equal(t, "fast", latest.Proposal.ID)
}

func TestProposalWatcherWatch(t *testing.T) {
	t.Run("refreshes until cancelled", func(t *testing.T) {
		gov := new(MockGovernanceClient)
		gov.On("GetProposal", mock.Anything, "p").Return(activeProposal("p", dao), nil)
		gov.On("TotalVotingWeight", mock.Anything, uint64(1234)).Return(big.NewInt(400), nil)
		w := usecase.NewProposalWatcher(usecase.NewShowProposal(&config.RuntimeConfig{DaoAddress: dao}, gov, usecase.NopProgress{}, discardLogger()))

		ctx, cancel := context.WithCancel(context.Background())
		defer cancel()

		var calls atomic.Int32
		err := w.Watch(ctx, "p", time.Millisecond, func(result *usecase.ShowProposalResult, err error) {
			assert.NoError(t, err)
			assert.Equal(t, "p", result.Proposal.ID)
			if calls.Add(1) == 3 {
				cancel()
			}
		})
		assert.ErrorIs(t, err, context.Canceled)
		assert.GreaterOrEqual(t, calls.Load(), int32(3))
	})

	t.Run("stops when the proposal is gone", func(t *testing.T) {
		gov := new(MockGovernanceClient)
		gov.On("GetProposal", mock.Anything, "gone").Return(nil, nil)
		w := usecase.NewProposalWatcher(usecase.NewShowProposal(&config.RuntimeConfig{}, gov, usecase.NopProgress{}, discardLogger()))

		var calls int
		err := w.Watch(context.Background(), "gone", time.Millisecond, func(_ *usecase.ShowProposalResult, err error) {
			calls++
			assert.ErrorIs(t, err, domain.ErrProposalNotFound)
		})
		assert.ErrorIs(t, err, domain.ErrProposalNotFound)
		assert.Equal(t, 1, calls)
	})
	t.Run("rejects a non-positive interval", func(t *testing.T) {
		gov := new(MockGovernanceClient)
		w := usecase.NewProposalWatcher(usecase.NewShowProposal(&config.RuntimeConfig{}, gov, usecase.NopProgress{}, discardLogger()))

		for _, interval := range []time.Duration{0, -time.Second} {
			var err error
			assert.NotPanics(t, func() {
				err = w.Watch(context.Background(), "p", interval, func(*usecase.ShowProposalResult, error) {
					t.Fatal("callback must not run")
				})
			})
			assert.ErrorContains(t, err, "watch interval must be positive")
		}
		gov.AssertNotCalled(t, "GetProposal", mock.Anything, mock.Anything)
	})
}
