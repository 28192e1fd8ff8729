package fs

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/BurntSushi/toml"
	"github.com/ethereum/go-ethereum/common"
	"github.com/samber/lo"
	"github.com/trebuchet-org/treb-gov/internal/domain"
	"github.com/trebuchet-org/treb-gov/internal/domain/config"
	"github.com/trebuchet-org/treb-gov/internal/domain/models"
	"github.com/trebuchet-org/treb-gov/internal/usecase"
	"gopkg.in/yaml.v3"
)

// TokenInfoReader reads ERC20 metadata for tokens missing from the registry
type TokenInfoReader interface {
	TokenInfo(ctx context.Context, token common.Address) (symbol string, decimals uint8, err error)
}

type tokenFile struct {
	Tokens []models.Token `toml:"tokens" yaml:"tokens"`
}

// TokenRegistryAdapter lists the configured tokens plus those in the token
// file (TOML or YAML). The governance token is always listed; when it is
// not configured explicitly its symbol and decimals are read on chain.
type TokenRegistryAdapter struct {
	path     string
	base     []models.Token
	govToken common.Address
	info     TokenInfoReader
	log      *slog.Logger

	once   sync.Once
	tokens []models.Token
	err    error
}

// NewTokenRegistryAdapter creates a new TokenRegistryAdapter
func NewTokenRegistryAdapter(cfg *config.RuntimeConfig, info TokenInfoReader, log *slog.Logger) *TokenRegistryAdapter {
	path := cfg.TokensFile
	if path != "" && !filepath.IsAbs(path) {
		path = filepath.Join(cfg.ProjectRoot, path)
	}
	return &TokenRegistryAdapter{
		path:     path,
		base:     cfg.Tokens,
		govToken: cfg.TokenAddress,
		info:     info,
		log:      log.With("component", "TokenRegistry"),
	}
}

// ListTokens returns every known token, native currency first.
func (r *TokenRegistryAdapter) ListTokens(ctx context.Context) ([]models.Token, error) {
	r.once.Do(func() {
		r.tokens, r.err = r.load(ctx)
	})
	if r.err != nil {
		return nil, r.err
	}
	return append([]models.Token(nil), r.tokens...), nil
}

// FindToken matches ref against symbols (case-insensitive) and addresses.
func (r *TokenRegistryAdapter) FindToken(ctx context.Context, ref string) (*models.Token, error) {
	tokens, err := r.ListTokens(ctx)
	if err != nil {
		return nil, err
	}
	ref = strings.TrimSpace(ref)

	if token, ok := lo.Find(tokens, func(t models.Token) bool { return strings.EqualFold(t.Symbol, ref) }); ok {
		return &token, nil
	}
	if !common.IsHexAddress(ref) {
		return nil, fmt.Errorf("%w: token %q", domain.ErrNotFound, ref)
	}

	addr := common.HexToAddress(ref)
	if token, ok := lo.Find(tokens, func(t models.Token) bool { return !t.IsNativeToken && t.Address == addr }); ok {
		return &token, nil
	}
	return r.resolve(ctx, addr)
}

func (r *TokenRegistryAdapter) load(ctx context.Context) ([]models.Token, error) {
	tokens := append([]models.Token(nil), r.base...)

	if r.path != "" {
		fromFile, err := readTokenFile(r.path)
		if err != nil {
			return nil, err
		}
		r.log.Debug("loaded token file", "path", r.path, "tokens", len(fromFile))
		tokens = append(tokens, fromFile...)
	}

	if !lo.ContainsBy(tokens, func(t models.Token) bool { return t.IsNativeToken }) {
		tokens = append([]models.Token{models.NativeToken}, tokens...)
	}

	if r.govToken != (common.Address{}) && !lo.ContainsBy(tokens, func(t models.Token) bool { return t.Address == r.govToken }) {
		token, err := r.resolve(ctx, r.govToken)
		if err != nil {
			r.log.Warn("could not read governance token metadata", "token", r.govToken.Hex(), "error", err)
		} else {
			tokens = append(tokens, *token)
		}
	}

	return lo.UniqBy(tokens, func(t models.Token) string {
		if t.IsNativeToken {
			return "native"
		}
		return t.Address.Hex()
	}), nil
}

func (r *TokenRegistryAdapter) resolve(ctx context.Context, addr common.Address) (*models.Token, error) {
	if r.info == nil {
		return nil, fmt.Errorf("%w: token %s", domain.ErrNotFound, addr.Hex())
	}
	symbol, decimals, err := r.info.TokenInfo(ctx, addr)
	if err != nil {
		return nil, domain.ReadFailure("token metadata", err)
	}
	return &models.Token{Address: addr, Symbol: symbol, Decimals: decimals}, nil
}

func readTokenFile(path string) ([]models.Token, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read token file: %w", err)
	}

	var file tokenFile
	switch strings.ToLower(filepath.Ext(path)) {
	case ".toml":
		if _, err := toml.Decode(string(data), &file); err != nil {
			return nil, fmt.Errorf("failed to parse token file: %w", err)
		}
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(data, &file); err != nil {
			return nil, fmt.Errorf("failed to parse token file: %w", err)
		}
	default:
		return nil, fmt.Errorf("unsupported token file format %q (use .toml or .yaml)", filepath.Ext(path))
	}

	for i, t := range file.Tokens {
		if t.Symbol == "" {
			return nil, fmt.Errorf("token %d in %s has no symbol", i, path)
		}
	}
	return file.Tokens, nil
}

// Ensure the adapter implements the interface
var _ usecase.TokenRegistry = (*TokenRegistryAdapter)(nil)
