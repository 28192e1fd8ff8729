package usecase_test

import (
	"context"
	"errors"
	"math/big"
	"testing"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/math"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"github.com/trebuchet-org/treb-gov/internal/domain"
	"github.com/trebuchet-org/treb-gov/internal/domain/bindings"
	"github.com/trebuchet-org/treb-gov/internal/domain/config"
	"github.com/trebuchet-org/treb-gov/internal/domain/models"
	"github.com/trebuchet-org/treb-gov/internal/usecase"
)

var (
	signer  = common.HexToAddress("0x000000000000000000000000000000000000a11c")
	dao     = common.HexToAddress("0x000000000000000000000000000000000000da00")
	diamond = common.HexToAddress("0x000000000000000000000000000000000000d1a0")
	secoin  = common.HexToAddress("0x0000000000000000000000000000000000005ec0")

	nativeToken = models.Token{Symbol: "ETH", Decimals: 18, IsNativeToken: true}
	secoinToken = models.Token{Address: secoin, Symbol: "SECOIN", Decimals: 18}
)

type depositFixture struct {
	reader *MockChainReader
	writer *MockChainWriter
	gov    *MockGovernanceClient
	sink   *recordingProgress
	uc     *usecase.DepositAssets
}

func newDepositFixture(t *testing.T, debounce time.Duration) *depositFixture {
	t.Helper()
	f := &depositFixture{
		reader: new(MockChainReader),
		writer: new(MockChainWriter),
		gov:    new(MockGovernanceClient),
		sink:   &recordingProgress{},
	}
	f.writer.On("From").Return(signer)
	f.gov.On("PluginAddress").Return(diamond)

	cfg := &config.RuntimeConfig{
		DaoAddress:     dao,
		DiamondAddress: diamond,
		TokenAddress:   secoin,
		Debounce:       debounce,
	}
	f.uc = usecase.NewDepositAssets(cfg, f.reader, f.writer, f.gov, f.sink, discardLogger())
	t.Cleanup(f.uc.Close)
	return f
}

func request(token models.Token, pool models.Pool, amount int64) models.DepositRequest {
	return models.DepositRequest{Token: &token, Pool: &pool, Amount: big.NewInt(amount)}
}

func TestDepositAssetsNativeTransfer(t *testing.T) {
	ctx := context.Background()
	f := newDepositFixture(t, 0)

	prepared := new(MockPreparedWrite)
	tx := successfulTx("0x01")
	f.reader.On("NativeBalance", mock.Anything, signer).Return(big.NewInt(1000), nil)
	f.writer.On("Prepare", mock.Anything, mock.MatchedBy(func(req usecase.TxRequest) bool {
		return req.To == dao && req.Value.Cmp(big.NewInt(250)) == 0 && len(req.Data) == 0
	})).Return(prepared, nil)
	prepared.On("Write", mock.Anything).Return(tx, nil)

	state, err := f.uc.Refresh(ctx, request(nativeToken, models.PoolGeneral, 250))
	require.NoError(t, err)

	assert.Equal(t, models.PathNativeTransfer, state.Path)
	assert.True(t, state.IsApproved)
	assert.False(t, state.IsLoading)
	assert.False(t, state.Allowance.Required)
	assert.Equal(t, "1000", state.Balance.String())
	assert.NoError(t, state.Error)

	receipt, err := f.uc.Deposit(ctx)
	require.NoError(t, err)
	assert.Equal(t, types.ReceiptStatusSuccessful, receipt.Status)

	prepared.AssertNumberOfCalls(t, "Write", 1)
	f.reader.AssertNotCalled(t, "Allowance", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	f.reader.AssertNotCalled(t, "TokenBalance", mock.Anything, mock.Anything, mock.Anything)

	// the signed transfer was spent, a second deposit needs a new Refresh
	_, err = f.uc.Deposit(ctx)
	assert.ErrorIs(t, err, domain.ErrNotReady)
	prepared.AssertNumberOfCalls(t, "Write", 1)

	_, err = f.uc.Refresh(ctx, request(nativeToken, models.PoolGeneral, 250))
	require.NoError(t, err)
	_, err = f.uc.Deposit(ctx)
	require.NoError(t, err)
	prepared.AssertNumberOfCalls(t, "Write", 2)
	f.gov.AssertNotCalled(t, "DonateToMiningRewardPool", mock.Anything, mock.Anything)
	f.gov.AssertNotCalled(t, "DonateToVerificationRewardPool", mock.Anything, mock.Anything)
}

func TestDepositAssetsTokenTransfer(t *testing.T) {
	ctx := context.Background()
	f := newDepositFixture(t, 0)

	wantData := bindings.NewIERC20().PackTransfer(dao, big.NewInt(42))
	prepared := new(MockPreparedWrite)
	f.reader.On("TokenBalance", mock.Anything, secoin, signer).Return(big.NewInt(100), nil)
	f.writer.On("Prepare", mock.Anything, mock.MatchedBy(func(req usecase.TxRequest) bool {
		return req.To == secoin && req.Value == nil && assert.ObjectsAreEqual(wantData, req.Data)
	})).Return(prepared, nil)
	prepared.On("Write", mock.Anything).Return(successfulTx("0x02"), nil)

	state, err := f.uc.Refresh(ctx, request(secoinToken, models.PoolGeneral, 42))
	require.NoError(t, err)
	assert.Equal(t, models.PathTokenTransfer, state.Path)
	assert.True(t, state.IsApproved)

	_, err = f.uc.Deposit(ctx)
	require.NoError(t, err)
	f.reader.AssertNotCalled(t, "Allowance", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestDepositAssetsPoolDonation(t *testing.T) {
	ctx := context.Background()

	t.Run("mining reward", func(t *testing.T) {
		f := newDepositFixture(t, 0)
		f.reader.On("TokenBalance", mock.Anything, secoin, signer).Return(big.NewInt(500), nil)
		f.reader.On("Allowance", mock.Anything, secoin, signer, diamond).Return(big.NewInt(500), nil)
		f.gov.On("DonateToMiningRewardPool", mock.Anything, big.NewInt(300)).Return(successfulTx("0x03"), nil)

		state, err := f.uc.Refresh(ctx, request(secoinToken, models.PoolMiningReward, 300))
		require.NoError(t, err)
		assert.Equal(t, models.PathPoolDonation, state.Path)
		assert.True(t, state.Allowance.Required)

		_, err = f.uc.Deposit(ctx)
		require.NoError(t, err)
		f.gov.AssertNumberOfCalls(t, "DonateToMiningRewardPool", 1)
		f.writer.AssertNotCalled(t, "Prepare", mock.Anything, mock.Anything)
	})

	t.Run("verification reward", func(t *testing.T) {
		f := newDepositFixture(t, 0)
		f.reader.On("TokenBalance", mock.Anything, secoin, signer).Return(big.NewInt(500), nil)
		f.reader.On("Allowance", mock.Anything, secoin, signer, diamond).Return(big.NewInt(500), nil)
		f.gov.On("DonateToVerificationRewardPool", mock.Anything, big.NewInt(7)).Return(successfulTx("0x04"), nil)

		_, err := f.uc.Refresh(ctx, request(secoinToken, models.PoolVerificationReward, 7))
		require.NoError(t, err)
		_, err = f.uc.Deposit(ctx)
		require.NoError(t, err)
		f.gov.AssertNotCalled(t, "DonateToMiningRewardPool", mock.Anything, mock.Anything)
	})
}

func TestDepositAssetsAllowanceSufficiency(t *testing.T) {
	ctx := context.Background()
	f := newDepositFixture(t, 0)
	f.reader.On("TokenBalance", mock.Anything, secoin, signer).Return(big.NewInt(1000), nil)
	f.reader.On("Allowance", mock.Anything, secoin, signer, diamond).Return(big.NewInt(100), nil)

	state, err := f.uc.Refresh(ctx, request(secoinToken, models.PoolMiningReward, 100))
	require.NoError(t, err)
	assert.True(t, state.IsApproved)
	assert.Equal(t, "100", state.Allowance.ApprovedAmount.String())

	state, err = f.uc.Refresh(ctx, request(secoinToken, models.PoolMiningReward, 101))
	require.NoError(t, err)
	assert.False(t, state.IsApproved)
}

func TestDepositAssetsBusyGuard(t *testing.T) {
	ctx := context.Background()
	f := newDepositFixture(t, 0)

	started := make(chan struct{})
	release := make(chan struct{})
	prepared := new(MockPreparedWrite)
	f.reader.On("NativeBalance", mock.Anything, signer).Return(big.NewInt(1000), nil)
	f.writer.On("Prepare", mock.Anything, mock.Anything).Return(prepared, nil)
	prepared.On("Write", mock.Anything).Run(func(mock.Arguments) {
		close(started)
		<-release
	}).Return(successfulTx("0x05"), nil).Once()

	_, err := f.uc.Refresh(ctx, request(nativeToken, models.PoolGeneral, 1))
	require.NoError(t, err)

	done := make(chan error, 1)
	go func() {
		_, err := f.uc.Deposit(ctx)
		done <- err
	}()
	<-started

	_, err = f.uc.Deposit(ctx)
	assert.ErrorIs(t, err, domain.ErrWriteInFlight)
	_, err = f.uc.Approve(ctx)
	assert.ErrorIs(t, err, domain.ErrWriteInFlight)

	close(release)
	require.NoError(t, <-done)
	prepared.AssertNumberOfCalls(t, "Write", 1)
}

func TestDepositAssetsNotReady(t *testing.T) {
	ctx := context.Background()

	t.Run("incomplete request", func(t *testing.T) {
		f := newDepositFixture(t, 0)
		pool := models.PoolGeneral
		state, err := f.uc.Refresh(ctx, models.DepositRequest{Pool: &pool})
		require.NoError(t, err)
		assert.Nil(t, state.Balance)
		assert.Equal(t, models.PathNone, state.Path)

		_, err = f.uc.Deposit(ctx)
		assert.ErrorIs(t, err, domain.ErrNotReady)
		f.reader.AssertNotCalled(t, "NativeBalance", mock.Anything, mock.Anything)
	})

	t.Run("no signer", func(t *testing.T) {
		reader := new(MockChainReader)
		writer := new(MockChainWriter)
		gov := new(MockGovernanceClient)
		writer.On("From").Return(common.Address{})
		uc := usecase.NewDepositAssets(&config.RuntimeConfig{DaoAddress: dao}, reader, writer, gov, usecase.NopProgress{}, discardLogger())
		defer uc.Close()

		state, err := uc.Refresh(ctx, request(nativeToken, models.PoolGeneral, 1))
		require.NoError(t, err)
		assert.False(t, state.IsLoading)

		_, err = uc.Deposit(ctx)
		assert.ErrorIs(t, err, domain.ErrNotReady)
		_, err = uc.Approve(ctx)
		assert.ErrorIs(t, err, domain.ErrNotReady)
		writer.AssertNotCalled(t, "Prepare", mock.Anything, mock.Anything)
	})

	t.Run("transfer could not be prepared", func(t *testing.T) {
		f := newDepositFixture(t, 0)
		f.reader.On("TokenBalance", mock.Anything, secoin, signer).Return(big.NewInt(1), nil)
		f.writer.On("Prepare", mock.Anything, mock.Anything).Return(nil, errors.New("execution reverted: insufficient balance"))

		state, err := f.uc.Refresh(ctx, request(secoinToken, models.PoolGeneral, 5))
		require.NoError(t, err)
		assert.ErrorIs(t, state.Error, usecase.ErrCannotPerformTransaction)

		_, err = f.uc.Deposit(ctx)
		assert.ErrorIs(t, err, domain.ErrNotReady)
	})
}

func TestDepositAssetsReadFailure(t *testing.T) {
	ctx := context.Background()
	f := newDepositFixture(t, 0)
	f.reader.On("TokenBalance", mock.Anything, secoin, signer).Return(nil, errors.New("connection refused"))
	f.reader.On("Allowance", mock.Anything, secoin, signer, diamond).Return(big.NewInt(10), nil)

	state, err := f.uc.Refresh(ctx, request(secoinToken, models.PoolMiningReward, 5))

	var readErr *domain.ExternalReadError
	require.ErrorAs(t, err, &readErr)
	assert.Equal(t, "balance", readErr.Op)
	assert.ErrorContains(t, state.Error, "connection refused")
	assert.Nil(t, state.Balance)
	assert.True(t, state.IsApproved)
}

func TestDepositAssetsWriteFailure(t *testing.T) {
	ctx := context.Background()
	f := newDepositFixture(t, 0)
	f.reader.On("TokenBalance", mock.Anything, secoin, signer).Return(big.NewInt(5), nil)
	f.reader.On("Allowance", mock.Anything, secoin, signer, diamond).Return(big.NewInt(5), nil)
	f.gov.On("DonateToMiningRewardPool", mock.Anything, mock.Anything).Return(nil, errors.New("user rejected"))

	_, err := f.uc.Refresh(ctx, request(secoinToken, models.PoolMiningReward, 5))
	require.NoError(t, err)

	_, err = f.uc.Deposit(ctx)
	var writeErr *domain.ExternalWriteError
	require.ErrorAs(t, err, &writeErr)
	assert.Equal(t, "deposit", writeErr.Op)

	// the guard is released after a failure
	_, err = f.uc.Deposit(ctx)
	assert.ErrorAs(t, err, &writeErr)
}

func TestDepositAssetsRevertedReceipt(t *testing.T) {
	ctx := context.Background()
	f := newDepositFixture(t, 0)

	tx := new(MockTransactionHandle)
	tx.On("Hash").Return(common.HexToHash("0x06"))
	tx.On("Wait", mock.Anything).Return(&types.Receipt{Status: types.ReceiptStatusFailed}, nil)
	f.reader.On("TokenBalance", mock.Anything, secoin, signer).Return(big.NewInt(5), nil)
	f.reader.On("Allowance", mock.Anything, secoin, signer, diamond).Return(big.NewInt(5), nil)
	f.gov.On("DonateToMiningRewardPool", mock.Anything, mock.Anything).Return(tx, nil)

	_, err := f.uc.Refresh(ctx, request(secoinToken, models.PoolMiningReward, 5))
	require.NoError(t, err)

	receipt, err := f.uc.Deposit(ctx)
	assert.ErrorContains(t, err, "reverted")
	require.NotNil(t, receipt)
	assert.Equal(t, []string{"Transaction " + common.HexToHash("0x06").Hex() + " reverted"}, f.sink.errors)
	assert.Empty(t, f.sink.infos)
}

func TestDepositAssetsApprove(t *testing.T) {
	ctx := context.Background()
	erc20 := bindings.NewIERC20()

	t.Run("exact amount", func(t *testing.T) {
		f := newDepositFixture(t, 0)
		prepared := new(MockPreparedWrite)
		f.reader.On("TokenBalance", mock.Anything, secoin, signer).Return(big.NewInt(500), nil)
		f.reader.On("Allowance", mock.Anything, secoin, signer, diamond).Return(big.NewInt(0), nil).Once()
		f.reader.On("Allowance", mock.Anything, secoin, signer, diamond).Return(big.NewInt(300), nil)
		f.writer.On("Prepare", mock.Anything, usecase.TxRequest{To: secoin, Data: erc20.PackApprove(diamond, big.NewInt(300))}).Return(prepared, nil)
		prepared.On("Write", mock.Anything).Return(successfulTx("0x07"), nil)

		state, err := f.uc.Refresh(ctx, request(secoinToken, models.PoolMiningReward, 300))
		require.NoError(t, err)
		assert.False(t, state.IsApproved)

		_, err = f.uc.Approve(ctx)
		require.NoError(t, err)

		state = f.uc.State()
		assert.True(t, state.IsApproved)
		assert.Equal(t, "300", state.Allowance.ApprovedAmount.String())
	})

	t.Run("unspecified amount approves the maximum", func(t *testing.T) {
		f := newDepositFixture(t, 0)
		prepared := new(MockPreparedWrite)
		token, pool := secoinToken, models.PoolMiningReward
		f.reader.On("TokenBalance", mock.Anything, secoin, signer).Return(big.NewInt(500), nil)
		f.reader.On("Allowance", mock.Anything, secoin, signer, diamond).Return(big.NewInt(0), nil)
		f.writer.On("Prepare", mock.Anything, usecase.TxRequest{To: secoin, Data: erc20.PackApprove(diamond, math.MaxBig256)}).Return(prepared, nil)
		prepared.On("Write", mock.Anything).Return(successfulTx("0x08"), nil)

		_, err := f.uc.Refresh(ctx, models.DepositRequest{Token: &token, Pool: &pool})
		require.NoError(t, err)

		_, err = f.uc.Approve(ctx)
		require.NoError(t, err)
		f.writer.AssertNumberOfCalls(t, "Prepare", 1)
	})
}

func TestDepositAssetsDiscardsStaleReads(t *testing.T) {
	ctx := context.Background()
	f := newDepositFixture(t, 0)

	started := make(chan struct{})
	release := make(chan struct{})
	f.reader.On("Allowance", mock.Anything, secoin, signer, diamond).Return(big.NewInt(10), nil)
	f.reader.On("TokenBalance", mock.Anything, secoin, signer).Run(func(mock.Arguments) {
		close(started)
		<-release
	}).Return(big.NewInt(1), nil).Once()
	f.reader.On("TokenBalance", mock.Anything, secoin, signer).Return(big.NewInt(2), nil)

	type result struct {
		state usecase.DepositState
		err   error
	}
	first := make(chan result, 1)
	go func() {
		state, err := f.uc.Refresh(ctx, request(secoinToken, models.PoolMiningReward, 1))
		first <- result{state, err}
	}()
	<-started

	state, err := f.uc.Refresh(ctx, request(secoinToken, models.PoolMiningReward, 2))
	require.NoError(t, err)
	assert.Equal(t, "2", state.Balance.String())

	close(release)
	stale := <-first
	assert.ErrorIs(t, stale.err, usecase.ErrSuperseded)

	current := f.uc.State()
	assert.Equal(t, "2", current.Request.Amount.String())
	assert.Equal(t, "2", current.Balance.String())
}

func TestDepositAssetsDebouncedUpdate(t *testing.T) {
	ctx := context.Background()
	f := newDepositFixture(t, 20*time.Millisecond)
	f.reader.On("TokenBalance", mock.Anything, secoin, signer).Return(big.NewInt(9), nil)
	f.reader.On("Allowance", mock.Anything, secoin, signer, diamond).Return(big.NewInt(9), nil)

	f.uc.Update(ctx, request(secoinToken, models.PoolMiningReward, 1))
	f.uc.Update(ctx, request(secoinToken, models.PoolMiningReward, 12))
	f.uc.Update(ctx, request(secoinToken, models.PoolMiningReward, 123))

	assert.True(t, f.uc.State().IsLoading)
	assert.Eventually(t, func() bool {
		return !f.uc.State().IsLoading
	}, time.Second, 5*time.Millisecond)

	state := f.uc.State()
	assert.Equal(t, "123", state.Request.Amount.String())
	assert.False(t, state.IsApproved)
	f.reader.AssertNumberOfCalls(t, "TokenBalance", 1)
}

func TestDepositAssetsClose(t *testing.T) {
	ctx := context.Background()
	f := newDepositFixture(t, 0)
	f.reader.On("NativeBalance", mock.Anything, signer).Return(big.NewInt(3), nil)
	f.writer.On("Prepare", mock.Anything, mock.Anything).Return(new(MockPreparedWrite), nil)

	_, err := f.uc.Refresh(ctx, request(nativeToken, models.PoolGeneral, 1))
	require.NoError(t, err)
	f.uc.Close()

	_, err = f.uc.Refresh(ctx, request(nativeToken, models.PoolGeneral, 2))
	assert.ErrorIs(t, err, usecase.ErrSuperseded)
	assert.Equal(t, "1", f.uc.State().Request.Amount.String())
}
