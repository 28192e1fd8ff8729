package config

import (
	"time"

	"github.com/ethereum/go-ethereum/common"
	"github.com/trebuchet-org/treb-gov/internal/domain/models"
)

// RuntimeConfig represents the complete runtime configuration
// This is injected into use cases and contains all resolved settings
type RuntimeConfig struct {
	// Core settings
	ProjectRoot string
	DataDir     string

	Network *Network

	// Organization contracts
	DiamondAddress common.Address // governance plugin, spender of deposit allowances
	DaoAddress     common.Address // treasury receiving General pool deposits
	TokenAddress   common.Address // governance token (SECOIN)

	// VerificationAddress is the contract accepting signed address verifications
	VerificationAddress common.Address

	// GovernanceAPI is the base URL of the governance data service
	GovernanceAPI string

	// PrivateKey signs writes. Only read from the environment.
	PrivateKey string

	// Execution settings
	Debug          bool
	NonInteractive bool
	JSON           bool // Output in JSON format
	Timeout        time.Duration
	Debounce       time.Duration

	// Token registry
	TokensFile string
	Tokens     []models.Token
}

// Network represents network configuration
type Network struct {
	ChainID     uint64 `json:"chainId"`
	Name        string `json:"name"`
	RPCURL      string `json:"rpcUrl"`
	ExplorerURL string `json:"explorerUrl,omitempty"`
}

// CanWrite reports whether a signing key is configured.
func (c *RuntimeConfig) CanWrite() bool {
	return c.PrivateKey != ""
}
