package blockchain

import (
	"context"
	"crypto/ecdsa"
	"fmt"
	"log/slog"
	"math/big"
	"strings"

	"github.com/ethereum/go-ethereum"
	"github.com/ethereum/go-ethereum/accounts/abi/bind/v2"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/trebuchet-org/treb-gov/internal/domain"
	"github.com/trebuchet-org/treb-gov/internal/domain/bindings"
	"github.com/trebuchet-org/treb-gov/internal/domain/config"
	"github.com/trebuchet-org/treb-gov/internal/usecase"
)

// WriterAdapter implements usecase.ChainWriter with a local private key
type WriterAdapter struct {
	client *Client
	key    *ecdsa.PrivateKey
	from   common.Address
	log    *slog.Logger
}

// NewWriterAdapter creates a writer. Without a configured key the writer
// has no address and every Prepare fails with domain.ErrNotReady.
func NewWriterAdapter(cfg *config.RuntimeConfig, client *Client, log *slog.Logger) (*WriterAdapter, error) {
	w := &WriterAdapter{client: client, log: log.With("component", "ChainWriter")}
	if !cfg.CanWrite() {
		return w, nil
	}

	key, err := crypto.HexToECDSA(strings.TrimPrefix(strings.TrimSpace(cfg.PrivateKey), "0x"))
	if err != nil {
		return nil, fmt.Errorf("invalid private key: %w", err)
	}
	w.key = key
	w.from = crypto.PubkeyToAddress(key.PublicKey)
	return w, nil
}

// From returns the signer address.
func (w *WriterAdapter) From() common.Address {
	return w.from
}

// Prepare estimates gas, fills nonce and fees and signs the transaction.
// Estimation failures (reverts, insufficient funds) surface here, before
// anything is sent.
func (w *WriterAdapter) Prepare(ctx context.Context, req usecase.TxRequest) (usecase.PreparedWrite, error) {
	if w.key == nil {
		return nil, fmt.Errorf("%w: no signer configured", domain.ErrNotReady)
	}
	eth, err := w.client.Conn(ctx)
	if err != nil {
		return nil, err
	}

	value := req.Value
	if value == nil {
		value = new(big.Int)
	}
	to := req.To

	gas, err := eth.EstimateGas(ctx, ethereum.CallMsg{From: w.from, To: &to, Value: value, Data: req.Data})
	if err != nil {
		return nil, fmt.Errorf("failed to estimate gas: %w", err)
	}
	nonce, err := eth.PendingNonceAt(ctx, w.from)
	if err != nil {
		return nil, fmt.Errorf("failed to get nonce: %w", err)
	}
	tip, err := eth.SuggestGasTipCap(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to suggest gas tip: %w", err)
	}
	head, err := eth.HeaderByNumber(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to get latest header: %w", err)
	}
	feeCap := new(big.Int).Set(tip)
	if head.BaseFee != nil {
		feeCap.Add(feeCap, new(big.Int).Mul(head.BaseFee, big.NewInt(2)))
	}

	chainID := new(big.Int).SetUint64(w.client.ChainID())
	tx, err := types.SignNewTx(w.key, types.LatestSignerForChainID(chainID), &types.DynamicFeeTx{
		ChainID:   chainID,
		Nonce:     nonce,
		GasTipCap: tip,
		GasFeeCap: feeCap,
		Gas:       gas,
		To:        &to,
		Value:     value,
		Data:      req.Data,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to sign transaction: %w", err)
	}

	w.log.Debug("prepared transaction",
		"to", to.Hex(),
		"method", bindings.MethodName(req.Data),
		"gas", gas,
		"nonce", nonce,
	)
	return &preparedTx{client: w.client, tx: tx, log: w.log}, nil
}

type preparedTx struct {
	client *Client
	tx     *types.Transaction
	log    *slog.Logger
}

func (p *preparedTx) Write(ctx context.Context) (usecase.TransactionHandle, error) {
	eth, err := p.client.Conn(ctx)
	if err != nil {
		return nil, err
	}
	if err := eth.SendTransaction(ctx, p.tx); err != nil {
		return nil, err
	}
	p.log.Info("sent transaction", "hash", p.tx.Hash().Hex())
	return &txHandle{client: p.client, hash: p.tx.Hash()}, nil
}

type txHandle struct {
	client *Client
	hash   common.Hash
}

func (h *txHandle) Hash() common.Hash { return h.hash }

func (h *txHandle) Wait(ctx context.Context) (*types.Receipt, error) {
	eth, err := h.client.Conn(ctx)
	if err != nil {
		return nil, err
	}
	return bind.WaitMined(ctx, eth, h.hash)
}

// Ensure the adapter implements the interface
var _ usecase.ChainWriter = (*WriterAdapter)(nil)
