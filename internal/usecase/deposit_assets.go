package usecase

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math/big"
	"sync"
	"sync/atomic"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/math"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/trebuchet-org/treb-gov/internal/domain"
	"github.com/trebuchet-org/treb-gov/internal/domain/bindings"
	"github.com/trebuchet-org/treb-gov/internal/domain/config"
	"github.com/trebuchet-org/treb-gov/internal/domain/models"
)

// ErrCannotPerformTransaction is reported in DepositState.Error when the
// General pool transfer could not be prepared.
var ErrCannotPerformTransaction = errors.New("can not perform transaction")

// DepositState is what the deposit form shows for the current request
type DepositState struct {
	Request   models.DepositRequest
	Path      models.DepositPath
	IsLoading bool
	// Error is a read failure or ErrCannotPerformTransaction
	Error      error
	Balance    *big.Int
	Allowance  models.AllowanceState
	IsApproved bool
}

func (s DepositState) clone() DepositState {
	s.Request = s.Request.Clone()
	s.Balance = models.CopyInt(s.Balance)
	s.Allowance.ApprovedAmount = models.CopyInt(s.Allowance.ApprovedAmount)
	return s
}

// DepositAssets moves assets into one of the organization's pools. One
// instance serves one deposit form: it re-reads balance, allowance and the
// prepared transfer whenever the request changes, and allows a single
// write (deposit or approve) at a time.
type DepositAssets struct {
	cfg    *config.RuntimeConfig
	reader ChainReader
	writer ChainWriter
	gov    GovernanceClient
	sink   ProgressSink
	log    *slog.Logger
	erc20  *bindings.IERC20

	debounce *debouncer
	seq      atomic.Uint64
	busy     atomic.Bool
	closed   atomic.Bool

	mu       sync.Mutex
	state    DepositState
	prepared PreparedWrite
}

// NewDepositAssets creates a new DepositAssets use case
func NewDepositAssets(
	cfg *config.RuntimeConfig,
	reader ChainReader,
	writer ChainWriter,
	gov GovernanceClient,
	sink ProgressSink,
	log *slog.Logger,
) *DepositAssets {
	return &DepositAssets{
		cfg:      cfg,
		reader:   reader,
		writer:   writer,
		gov:      gov,
		sink:     sink,
		log:      log.With("component", "DepositAssets"),
		erc20:    bindings.NewIERC20(),
		debounce: newDebouncer(cfg.Debounce),
	}
}

// Update records a changed request and re-reads its dependencies once the
// input has been quiet for the configured debounce period.
func (uc *DepositAssets) Update(ctx context.Context, req models.DepositRequest) {
	req = req.Clone()
	seq := uc.begin(req)
	uc.debounce.Trigger(func() {
		_, _ = uc.refresh(ctx, seq, req)
	})
}

// Refresh re-reads the dependencies of req immediately. If a newer request
// arrives while the reads are in flight, their results are dropped and
// ErrSuperseded is returned with the current state.
func (uc *DepositAssets) Refresh(ctx context.Context, req models.DepositRequest) (DepositState, error) {
	req = req.Clone()
	seq := uc.begin(req)
	return uc.refresh(ctx, seq, req)
}

// State returns a copy of the current state.
func (uc *DepositAssets) State() DepositState {
	uc.mu.Lock()
	defer uc.mu.Unlock()
	return uc.state.clone()
}

// Close stops all state updates. Pending transactions are left alone.
func (uc *DepositAssets) Close() {
	uc.closed.Store(true)
	uc.debounce.Stop()
}

func (uc *DepositAssets) account() common.Address {
	if uc.writer == nil {
		return common.Address{}
	}
	return uc.writer.From()
}

// begin starts a new request generation and resets the state to loading.
func (uc *DepositAssets) begin(req models.DepositRequest) uint64 {
	seq := uc.seq.Add(1)
	if uc.closed.Load() {
		return seq
	}

	path := models.SelectDepositPath(req)
	required := models.AllowanceRequired(req.Pool)

	uc.mu.Lock()
	defer uc.mu.Unlock()
	uc.state = DepositState{
		Request:    req,
		Path:       path,
		IsLoading:  uc.account() != (common.Address{}) && path != models.PathNone,
		Allowance:  models.AllowanceState{Required: required},
		IsApproved: !required,
	}
	uc.prepared = nil
	return seq
}

func (uc *DepositAssets) refresh(ctx context.Context, seq uint64, req models.DepositRequest) (DepositState, error) {
	path := models.SelectDepositPath(req)
	account := uc.account()
	hasAccount := account != (common.Address{})

	var (
		wg                       sync.WaitGroup
		balance, allowance       *big.Int
		balanceErr, allowanceErr error
		prepared                 PreparedWrite
		prepareErr               error
	)

	if hasAccount && path != models.PathNone {
		wg.Add(1)
		go func() {
			defer wg.Done()
			balance, balanceErr = uc.readBalance(ctx, *req.Token, account)
		}()
	}
	if hasAccount && models.AllowanceRequired(req.Pool) {
		wg.Add(1)
		go func() {
			defer wg.Done()
			allowance, allowanceErr = uc.reader.Allowance(ctx, uc.cfg.TokenAddress, account, uc.gov.PluginAddress())
		}()
	}
	if hasAccount && req.Amount != nil && (path == models.PathNativeTransfer || path == models.PathTokenTransfer) {
		wg.Add(1)
		go func() {
			defer wg.Done()
			txReq, err := uc.transferRequest(path, *req.Token, req.Amount)
			if err != nil {
				prepareErr = err
				return
			}
			prepared, prepareErr = uc.writer.Prepare(ctx, txReq)
		}()
	}
	wg.Wait()

	readErr := errors.Join(
		domain.ReadFailure("balance", balanceErr),
		domain.ReadFailure("allowance", allowanceErr),
	)

	next := DepositState{
		Request:   req,
		Path:      path,
		Balance:   balance,
		Allowance: models.AllowanceState{ApprovedAmount: allowance, Required: models.AllowanceRequired(req.Pool)},
		Error:     readErr,
	}
	next.IsApproved = models.IsApproved(req.Pool, req.Amount, allowance)
	if prepareErr != nil {
		uc.log.Debug("could not prepare transfer", "path", path, "error", prepareErr)
		next.Error = errors.Join(readErr, ErrCannotPerformTransaction)
	}

	uc.mu.Lock()
	defer uc.mu.Unlock()
	if uc.closed.Load() || seq != uc.seq.Load() {
		uc.log.Debug("discarding stale deposit reads", "seq", seq)
		return uc.state.clone(), ErrSuperseded
	}
	uc.state = next
	uc.prepared = prepared
	return next.clone(), readErr
}

func (uc *DepositAssets) readBalance(ctx context.Context, token models.Token, account common.Address) (*big.Int, error) {
	if token.IsNativeToken {
		return uc.reader.NativeBalance(ctx, account)
	}
	return uc.reader.TokenBalance(ctx, token.Address, account)
}

// transferRequest builds the General pool transfer to the treasury.
func (uc *DepositAssets) transferRequest(path models.DepositPath, token models.Token, amount *big.Int) (TxRequest, error) {
	if path == models.PathNativeTransfer {
		return TxRequest{To: uc.cfg.DaoAddress, Value: new(big.Int).Set(amount)}, nil
	}
	data, err := uc.erc20.TryPackTransfer(uc.cfg.DaoAddress, amount)
	if err != nil {
		return TxRequest{}, fmt.Errorf("%w: %v", domain.ErrInvalidAmount, err)
	}
	return TxRequest{To: token.Address, Data: data}, nil
}

// Deposit sends the current request through its selected path and waits
// for the receipt.
func (uc *DepositAssets) Deposit(ctx context.Context) (*types.Receipt, error) {
	if !uc.busy.CompareAndSwap(false, true) {
		return nil, domain.ErrWriteInFlight
	}
	defer uc.busy.Store(false)

	uc.mu.Lock()
	req, path, prepared := uc.state.Request.Clone(), uc.state.Path, uc.prepared
	uc.mu.Unlock()

	if uc.account() == (common.Address{}) {
		return nil, fmt.Errorf("%w: no signer configured", domain.ErrNotReady)
	}
	if !req.Complete() {
		return nil, fmt.Errorf("%w: token, pool and amount are required", domain.ErrNotReady)
	}

	var send sendFunc
	switch path {
	case models.PathPoolDonation:
		amount := req.Amount
		switch *req.Pool {
		case models.PoolMiningReward:
			send = func(ctx context.Context) (TransactionHandle, error) {
				return uc.gov.DonateToMiningRewardPool(ctx, amount)
			}
		case models.PoolVerificationReward:
			send = func(ctx context.Context) (TransactionHandle, error) {
				return uc.gov.DonateToVerificationRewardPool(ctx, amount)
			}
		default:
			return nil, fmt.Errorf("%w: unknown pool %q", domain.ErrNotReady, *req.Pool)
		}
	case models.PathNativeTransfer, models.PathTokenTransfer:
		if prepared == nil {
			return nil, fmt.Errorf("%w: transfer has not been prepared", domain.ErrNotReady)
		}
		// a sent transfer is spent; the next one needs a fresh Refresh
		send = func(ctx context.Context) (TransactionHandle, error) {
			tx, err := prepared.Write(ctx)
			if err == nil {
				uc.mu.Lock()
				if uc.prepared == prepared {
					uc.prepared = nil
				}
				uc.mu.Unlock()
			}
			return tx, err
		}
	default:
		return nil, fmt.Errorf("%w: no deposit path", domain.ErrNotReady)
	}

	uc.log.Info("depositing assets",
		"pool", *req.Pool,
		"token", req.Token.Symbol,
		"amount", req.Amount.String(),
		"path", path,
	)
	return awaitWrite(ctx, uc.sink, "deposit", send)
}

// Approve grants the governance plugin an allowance of the request amount
// on the governance token. Without an amount the allowance is unlimited.
func (uc *DepositAssets) Approve(ctx context.Context) (*types.Receipt, error) {
	if !uc.busy.CompareAndSwap(false, true) {
		return nil, domain.ErrWriteInFlight
	}
	defer uc.busy.Store(false)

	if uc.account() == (common.Address{}) {
		return nil, fmt.Errorf("%w: no signer configured", domain.ErrNotReady)
	}

	uc.mu.Lock()
	amount := models.CopyInt(uc.state.Request.Amount)
	uc.mu.Unlock()
	if amount == nil {
		amount = new(big.Int).Set(math.MaxBig256)
	}

	spender := uc.gov.PluginAddress()
	data, err := uc.erc20.TryPackApprove(spender, amount)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrInvalidAmount, err)
	}
	prepared, err := uc.writer.Prepare(ctx, TxRequest{To: uc.cfg.TokenAddress, Data: data})
	if err != nil {
		if errors.Is(err, domain.ErrNotReady) {
			return nil, err
		}
		return nil, domain.WriteFailure("approve", err)
	}

	uc.log.Info("approving allowance", "spender", spender.Hex(), "amount", amount.String())
	receipt, err := awaitWrite(ctx, uc.sink, "approve", prepared.Write)
	if err != nil {
		return receipt, err
	}

	uc.refreshAllowance(ctx)
	return receipt, nil
}

// refreshAllowance re-reads the allowance after an approval, unless the
// request changed in the meantime.
func (uc *DepositAssets) refreshAllowance(ctx context.Context) {
	seq := uc.seq.Load()
	allowance, err := uc.reader.Allowance(ctx, uc.cfg.TokenAddress, uc.account(), uc.gov.PluginAddress())
	if err != nil {
		uc.log.Warn("could not re-read allowance", "error", err)
		return
	}

	uc.mu.Lock()
	defer uc.mu.Unlock()
	if uc.closed.Load() || seq != uc.seq.Load() {
		return
	}
	uc.state.Allowance.ApprovedAmount = allowance
	uc.state.IsApproved = models.IsApproved(uc.state.Request.Pool, uc.state.Request.Amount, allowance)
}
