package blockchain

import (
	"context"
	"math/big"

	"github.com/ethereum/go-ethereum/common"
	"github.com/trebuchet-org/treb-gov/internal/domain/bindings"
	"github.com/trebuchet-org/treb-gov/internal/usecase"
)

// ReaderAdapter implements usecase.ChainReader over JSON-RPC
type ReaderAdapter struct {
	client *Client
	erc20  *bindings.IERC20
}

// NewReaderAdapter creates a new chain reader
func NewReaderAdapter(client *Client) *ReaderAdapter {
	return &ReaderAdapter{client: client, erc20: bindings.NewIERC20()}
}

// NativeBalance returns the native currency balance of account.
func (r *ReaderAdapter) NativeBalance(ctx context.Context, account common.Address) (*big.Int, error) {
	eth, err := r.client.Conn(ctx)
	if err != nil {
		return nil, err
	}
	return eth.BalanceAt(ctx, account, nil)
}

// TokenBalance returns the ERC20 balance of account.
func (r *ReaderAdapter) TokenBalance(ctx context.Context, token, account common.Address) (*big.Int, error) {
	out, err := r.client.Call(ctx, token, r.erc20.PackBalanceOf(account))
	if err != nil {
		return nil, err
	}
	return r.erc20.UnpackBalanceOf(out)
}

// Allowance returns what spender may move on behalf of owner.
func (r *ReaderAdapter) Allowance(ctx context.Context, token, owner, spender common.Address) (*big.Int, error) {
	out, err := r.client.Call(ctx, token, r.erc20.PackAllowance(owner, spender))
	if err != nil {
		return nil, err
	}
	return r.erc20.UnpackAllowance(out)
}

// BlockNumber returns the latest block number.
func (r *ReaderAdapter) BlockNumber(ctx context.Context) (uint64, error) {
	eth, err := r.client.Conn(ctx)
	if err != nil {
		return 0, err
	}
	return eth.BlockNumber(ctx)
}

// TokenInfo reads symbol and decimals of an ERC20 token.
func (r *ReaderAdapter) TokenInfo(ctx context.Context, token common.Address) (string, uint8, error) {
	out, err := r.client.Call(ctx, token, r.erc20.PackSymbol())
	if err != nil {
		return "", 0, err
	}
	symbol, err := r.erc20.UnpackSymbol(out)
	if err != nil {
		return "", 0, err
	}
	out, err = r.client.Call(ctx, token, r.erc20.PackDecimals())
	if err != nil {
		return "", 0, err
	}
	decimals, err := r.erc20.UnpackDecimals(out)
	if err != nil {
		return "", 0, err
	}
	return symbol, decimals, nil
}

// Ensure the adapter implements the interface
var _ usecase.ChainReader = (*ReaderAdapter)(nil)
