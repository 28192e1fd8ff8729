package config

import (
	"fmt"
	"os"
	"regexp"
	"sort"

	"github.com/spf13/viper"
	"github.com/trebuchet-org/treb-gov/internal/domain/config"
)

// envVarPattern matches ${VAR_NAME} values
var envVarPattern = regexp.MustCompile(`^\$\{([A-Za-z_][A-Za-z0-9_]*)\}$`)

// NetworkEntry is a named network in config.json. Contract addresses set
// here apply when the top-level keys are unset.
type NetworkEntry struct {
	RPCURL              string `mapstructure:"rpc_url"`
	ChainID             uint64 `mapstructure:"chain_id"`
	ExplorerURL         string `mapstructure:"explorer_url"`
	GovernanceAPI       string `mapstructure:"governance_api"`
	DaoAddress          string `mapstructure:"dao_address"`
	DiamondAddress      string `mapstructure:"diamond_address"`
	TokenAddress        string `mapstructure:"token_address"`
	VerificationAddress string `mapstructure:"verification_address"`
}

// DetectEnvVar checks if a raw value is a simple ${VAR_NAME} reference.
func DetectEnvVar(rawValue string) (string, bool) {
	matches := envVarPattern.FindStringSubmatch(rawValue)
	if len(matches) == 2 {
		return matches[1], true
	}
	return "", false
}

// ResolveNetwork picks the network to talk to. An explicit rpc_url wins;
// otherwise the network named by "network" is looked up in "networks".
// Without either the returned network is nil and chain reads fail with
// domain.ErrNotReady.
func ResolveNetwork(v *viper.Viper) (*config.Network, NetworkEntry, error) {
	var networks map[string]NetworkEntry
	if err := v.UnmarshalKey("networks", &networks); err != nil {
		return nil, NetworkEntry{}, fmt.Errorf("failed to parse networks: %w", err)
	}

	name := v.GetString("network")
	var entry NetworkEntry
	if name != "" {
		var ok bool
		entry, ok = networks[name]
		if !ok && v.GetString("rpc_url") == "" {
			return nil, NetworkEntry{}, fmt.Errorf("network '%s' not found in config (available: %v)", name, networkNames(networks))
		}
	}

	if rpcURL := v.GetString("rpc_url"); rpcURL != "" {
		entry.RPCURL = rpcURL
	}
	if chainID := v.GetUint64("chain_id"); chainID != 0 {
		entry.ChainID = chainID
	}
	if entry.RPCURL == "" {
		return nil, entry, nil
	}

	rpcURL, err := expandRPCURL(entry.RPCURL)
	if err != nil {
		return nil, entry, fmt.Errorf("failed to resolve network %s: %w", name, err)
	}
	if name == "" {
		name = "custom"
	}

	return &config.Network{
		Name:        name,
		ChainID:     entry.ChainID,
		RPCURL:      rpcURL,
		ExplorerURL: entry.ExplorerURL,
	}, entry, nil
}

func expandRPCURL(raw string) (string, error) {
	if name, ok := DetectEnvVar(raw); ok {
		value := os.Getenv(name)
		if value == "" {
			return "", fmt.Errorf("environment variable %s is not set", name)
		}
		return value, nil
	}
	return os.ExpandEnv(raw), nil
}

func networkNames(networks map[string]NetworkEntry) []string {
	names := make([]string, 0, len(networks))
	for name := range networks {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
