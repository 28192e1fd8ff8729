package blockchain

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"github.com/ethereum/go-ethereum"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/ethclient"
	"github.com/trebuchet-org/treb-gov/internal/domain"
	"github.com/trebuchet-org/treb-gov/internal/domain/config"
)

// Client is a lazily connected ethclient shared by the chain adapters
type Client struct {
	rpcURL  string
	chainID uint64
	log     *slog.Logger

	mu  sync.Mutex
	eth *ethclient.Client
}

// NewClient creates a client for the configured network. Nothing is dialed
// until the first call.
func NewClient(cfg *config.RuntimeConfig, log *slog.Logger) *Client {
	c := &Client{log: log.With("component", "blockchain")}
	if cfg.Network != nil {
		c.rpcURL = cfg.Network.RPCURL
		c.chainID = cfg.Network.ChainID
	}
	return c
}

// Conn returns the connection, dialing and checking the chain ID on first use.
func (c *Client) Conn(ctx context.Context) (*ethclient.Client, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.eth != nil {
		return c.eth, nil
	}
	if c.rpcURL == "" {
		return nil, fmt.Errorf("%w: no RPC URL configured", domain.ErrNotReady)
	}

	eth, err := ethclient.DialContext(ctx, c.rpcURL)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to RPC: %w", err)
	}

	networkChainID, err := eth.ChainID(ctx)
	if err != nil {
		eth.Close()
		return nil, fmt.Errorf("failed to get chain ID: %w", err)
	}

	// If chainID was 0, use the network's chain ID
	if c.chainID == 0 {
		c.chainID = networkChainID.Uint64()
	} else if networkChainID.Uint64() != c.chainID {
		eth.Close()
		return nil, fmt.Errorf("chain ID mismatch: expected %d, got %d", c.chainID, networkChainID.Uint64())
	}

	c.log.Debug("connected", "rpc", c.rpcURL, "chainId", c.chainID)
	c.eth = eth
	return eth, nil
}

// ChainID is the verified chain ID. It is only known after Conn succeeded.
func (c *Client) ChainID() uint64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.chainID
}

// Call runs a read-only contract call at the latest block.
func (c *Client) Call(ctx context.Context, to common.Address, data []byte) ([]byte, error) {
	eth, err := c.Conn(ctx)
	if err != nil {
		return nil, err
	}
	return eth.CallContract(ctx, ethereum.CallMsg{To: &to, Data: data}, nil)
}

// Close drops the connection, if any.
func (c *Client) Close() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.eth != nil {
		c.eth.Close()
		c.eth = nil
	}
}
