package usecase_test

import (
	"context"
	"io"
	"log/slog"
	"math/big"
	"sync"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/stretchr/testify/mock"
	"github.com/trebuchet-org/treb-gov/internal/domain/models"
	"github.com/trebuchet-org/treb-gov/internal/usecase"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func bigOrNil(v interface{}) *big.Int {
	if v == nil {
		return nil
	}
	return v.(*big.Int)
}

// MockChainReader is a mock implementation of ChainReader
type MockChainReader struct {
	mock.Mock
}

func (m *MockChainReader) NativeBalance(ctx context.Context, account common.Address) (*big.Int, error) {
	args := m.Called(ctx, account)
	return bigOrNil(args.Get(0)), args.Error(1)
}

func (m *MockChainReader) TokenBalance(ctx context.Context, token, account common.Address) (*big.Int, error) {
	args := m.Called(ctx, token, account)
	return bigOrNil(args.Get(0)), args.Error(1)
}

func (m *MockChainReader) Allowance(ctx context.Context, token, owner, spender common.Address) (*big.Int, error) {
	args := m.Called(ctx, token, owner, spender)
	return bigOrNil(args.Get(0)), args.Error(1)
}

func (m *MockChainReader) BlockNumber(ctx context.Context) (uint64, error) {
	args := m.Called(ctx)
	return args.Get(0).(uint64), args.Error(1)
}

// MockChainWriter is a mock implementation of ChainWriter
type MockChainWriter struct {
	mock.Mock
}

func (m *MockChainWriter) From() common.Address {
	args := m.Called()
	return args.Get(0).(common.Address)
}

func (m *MockChainWriter) Prepare(ctx context.Context, req usecase.TxRequest) (usecase.PreparedWrite, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(usecase.PreparedWrite), args.Error(1)
}

// MockPreparedWrite is a mock implementation of PreparedWrite
type MockPreparedWrite struct {
	mock.Mock
}

func (m *MockPreparedWrite) Write(ctx context.Context) (usecase.TransactionHandle, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(usecase.TransactionHandle), args.Error(1)
}

// MockTransactionHandle is a mock implementation of TransactionHandle
type MockTransactionHandle struct {
	mock.Mock
}

func (m *MockTransactionHandle) Hash() common.Hash {
	args := m.Called()
	return args.Get(0).(common.Hash)
}

func (m *MockTransactionHandle) Wait(ctx context.Context) (*types.Receipt, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*types.Receipt), args.Error(1)
}

// MockGovernanceClient is a mock implementation of GovernanceClient
type MockGovernanceClient struct {
	mock.Mock
}

func (m *MockGovernanceClient) GetProposal(ctx context.Context, id string) (*models.ProposalSnapshot, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.ProposalSnapshot), args.Error(1)
}

func (m *MockGovernanceClient) GetMembers(ctx context.Context) ([]common.Address, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]common.Address), args.Error(1)
}

func (m *MockGovernanceClient) TotalVotingWeight(ctx context.Context, block uint64) (*big.Int, error) {
	args := m.Called(ctx, block)
	return bigOrNil(args.Get(0)), args.Error(1)
}

func (m *MockGovernanceClient) MinDuration(ctx context.Context) (time.Duration, error) {
	args := m.Called(ctx)
	return args.Get(0).(time.Duration), args.Error(1)
}

func (m *MockGovernanceClient) PluginAddress() common.Address {
	args := m.Called()
	return args.Get(0).(common.Address)
}

func (m *MockGovernanceClient) DonateToMiningRewardPool(ctx context.Context, amount *big.Int) (usecase.TransactionHandle, error) {
	args := m.Called(ctx, amount)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(usecase.TransactionHandle), args.Error(1)
}

func (m *MockGovernanceClient) DonateToVerificationRewardPool(ctx context.Context, amount *big.Int) (usecase.TransactionHandle, error) {
	args := m.Called(ctx, amount)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(usecase.TransactionHandle), args.Error(1)
}

func (m *MockGovernanceClient) VerificationReward(ctx context.Context, account common.Address) (*big.Int, error) {
	args := m.Called(ctx, account)
	return bigOrNil(args.Get(0)), args.Error(1)
}

func (m *MockGovernanceClient) ClaimVerificationReward(ctx context.Context) (usecase.TransactionHandle, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(usecase.TransactionHandle), args.Error(1)
}

func (m *MockGovernanceClient) VerifyAddress(ctx context.Context, v models.PendingVerification) (usecase.TransactionHandle, error) {
	args := m.Called(ctx, v)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(usecase.TransactionHandle), args.Error(1)
}

// MockTokenRegistry is a mock implementation of TokenRegistry
type MockTokenRegistry struct {
	mock.Mock
}

func (m *MockTokenRegistry) ListTokens(ctx context.Context) ([]models.Token, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Token), args.Error(1)
}

func (m *MockTokenRegistry) FindToken(ctx context.Context, ref string) (*models.Token, error) {
	args := m.Called(ctx, ref)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Token), args.Error(1)
}

// MockVerificationStore is a mock implementation of VerificationStore
type MockVerificationStore struct {
	mock.Mock
}

func (m *MockVerificationStore) List(ctx context.Context) ([]models.PendingVerification, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.PendingVerification), args.Error(1)
}

func (m *MockVerificationStore) Get(ctx context.Context, addr common.Address) (*models.PendingVerification, error) {
	args := m.Called(ctx, addr)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.PendingVerification), args.Error(1)
}

func (m *MockVerificationStore) Save(ctx context.Context, v models.PendingVerification) error {
	args := m.Called(ctx, v)
	return args.Error(0)
}

func (m *MockVerificationStore) Remove(ctx context.Context, addr common.Address) error {
	args := m.Called(ctx, addr)
	return args.Error(0)
}

// successfulTx returns a handle whose receipt reports success.
func successfulTx(hash string) *MockTransactionHandle {
	h := new(MockTransactionHandle)
	h.On("Hash").Return(common.HexToHash(hash))
	h.On("Wait", mock.Anything).Return(&types.Receipt{
		Status:      types.ReceiptStatusSuccessful,
		TxHash:      common.HexToHash(hash),
		BlockNumber: big.NewInt(7),
	}, nil)
	return h
}

// recordingProgress keeps every event and message it receives.
type recordingProgress struct {
	mu     sync.Mutex
	events []usecase.ProgressEvent
	infos  []string
	errors []string
}

func (r *recordingProgress) OnProgress(_ context.Context, event usecase.ProgressEvent) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, event)
}

func (r *recordingProgress) Info(message string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.infos = append(r.infos, message)
}

func (r *recordingProgress) Error(message string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.errors = append(r.errors, message)
}

func (r *recordingProgress) stage(name string) []usecase.ProgressEvent {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []usecase.ProgressEvent
	for _, e := range r.events {
		if e.Stage == name {
			out = append(out, e)
		}
	}
	return out
}
