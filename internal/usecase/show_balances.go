package usecase

import (
	"context"
	"fmt"
	"log/slog"
	"math/big"

	"github.com/ethereum/go-ethereum/common"
	"github.com/trebuchet-org/treb-gov/internal/domain"
	"github.com/trebuchet-org/treb-gov/internal/domain/models"
	"golang.org/x/sync/errgroup"
)

// TokenBalance is the balance of one token. Err is set instead of Balance
// when the read failed.
type TokenBalance struct {
	Token   models.Token
	Balance *big.Int
	Err     error
}

// ShowBalancesResult contains the balances of an account
type ShowBalancesResult struct {
	Account  common.Address
	Balances []TokenBalance
}

// ShowBalances reads the balance of every registered token for an account
type ShowBalances struct {
	registry TokenRegistry
	reader   ChainReader
	writer   ChainWriter
	log      *slog.Logger
}

// NewShowBalances creates a new ShowBalances use case
func NewShowBalances(registry TokenRegistry, reader ChainReader, writer ChainWriter, log *slog.Logger) *ShowBalances {
	return &ShowBalances{
		registry: registry,
		reader:   reader,
		writer:   writer,
		log:      log.With("component", "ShowBalances"),
	}
}

// Run reads the balances of account, or of the signer when account is the
// zero address.
func (uc *ShowBalances) Run(ctx context.Context, account common.Address) (*ShowBalancesResult, error) {
	if account == (common.Address{}) {
		account = uc.writer.From()
	}
	if account == (common.Address{}) {
		return nil, fmt.Errorf("%w: no account given and no signer configured", domain.ErrNotReady)
	}

	tokens, err := uc.registry.ListTokens(ctx)
	if err != nil {
		return nil, err
	}

	balances := make([]TokenBalance, len(tokens))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(maxConcurrentReads)
	for i, token := range tokens {
		balances[i].Token = token
		g.Go(func() error {
			var (
				balance *big.Int
				err     error
			)
			if token.IsNativeToken {
				balance, err = uc.reader.NativeBalance(gctx, account)
			} else {
				balance, err = uc.reader.TokenBalance(gctx, token.Address, account)
			}
			if err != nil {
				uc.log.Debug("balance read failed", "token", token.Symbol, "error", err)
				balances[i].Err = domain.ReadFailure(token.Symbol+" balance", err)
				return nil
			}
			balances[i].Balance = balance
			return nil
		})
	}
	_ = g.Wait()

	return &ShowBalancesResult{Account: account, Balances: balances}, nil
}
