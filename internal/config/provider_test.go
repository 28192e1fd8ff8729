package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testConfigJSON = `{
  "network": "sepolia",
  "governance_api": "https://api.example.org/",
  "debounce": "250ms",
  "networks": {
    "sepolia": {
      "rpc_url": "${GOV_TEST_SEPOLIA_RPC}",
      "chain_id": 11155111,
      "dao_address": "0x00000000000000000000000000000000000000d0",
      "diamond_address": "0x000000000000000000000000000000000000d1a0"
    },
    "local": {"rpc_url": "http://localhost:8545", "chain_id": 31337}
  },
  "token_address": "0x0000000000000000000000000000000000005ec0",
  "tokens": [
    {"symbol": "USDC", "name": "USD Coin", "address": "0x000000000000000000000000000000000000c0c0", "decimals": 6}
  ]
}`

func writeProject(t *testing.T, configJSON string) string {
	t.Helper()
	root := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(root, DataDirName), 0755))
	if configJSON != "" {
		require.NoError(t, os.WriteFile(filepath.Join(root, DataDirName, "config.json"), []byte(configJSON), 0644))
	}
	return root
}

func TestProvider(t *testing.T) {
	root := writeProject(t, testConfigJSON)
	require.NoError(t, os.WriteFile(filepath.Join(root, ".env"), []byte("GOV_TEST_SEPOLIA_RPC=https://rpc.sepolia.example\n"), 0644))
	t.Cleanup(func() { _ = os.Unsetenv("GOV_TEST_SEPOLIA_RPC") })
	t.Setenv(PrivateKeyEnv, " 0xabc ")

	cfg, err := Provider(SetupViper(root, nil))
	require.NoError(t, err)

	assert.Equal(t, root, cfg.ProjectRoot)
	assert.Equal(t, filepath.Join(root, DataDirName), cfg.DataDir)
	require.NotNil(t, cfg.Network)
	assert.Equal(t, "sepolia", cfg.Network.Name)
	assert.Equal(t, "https://rpc.sepolia.example", cfg.Network.RPCURL)
	assert.Equal(t, uint64(11155111), cfg.Network.ChainID)

	assert.Equal(t, common.HexToAddress("0xd0"), cfg.DaoAddress)
	assert.Equal(t, common.HexToAddress("0xd1a0"), cfg.DiamondAddress)
	assert.Equal(t, common.HexToAddress("0x5ec0"), cfg.TokenAddress)
	assert.Equal(t, common.Address{}, cfg.VerificationAddress)
	assert.Equal(t, "https://api.example.org/", cfg.GovernanceAPI)

	assert.Equal(t, "0xabc", cfg.PrivateKey)
	assert.True(t, cfg.CanWrite())
	assert.Equal(t, 250*time.Millisecond, cfg.Debounce)
	assert.Equal(t, 5*time.Minute, cfg.Timeout)

	require.Len(t, cfg.Tokens, 1)
	assert.Equal(t, "USDC", cfg.Tokens[0].Symbol)
	assert.Equal(t, uint8(6), cfg.Tokens[0].Decimals)
	assert.Equal(t, common.HexToAddress("0xc0c0"), cfg.Tokens[0].Address)
}

func TestProviderOverrides(t *testing.T) {
	root := writeProject(t, testConfigJSON)
	t.Setenv("TREB_GOV_DAO_ADDRESS", "0x00000000000000000000000000000000000000d9")

	cmd := &cobra.Command{Use: "test"}
	cmd.Flags().String("network", "", "")
	cmd.Flags().Bool("json", false, "")
	require.NoError(t, cmd.Flags().Set("network", "local"))
	require.NoError(t, cmd.Flags().Set("json", "true"))

	cfg, err := Provider(SetupViper(root, cmd))
	require.NoError(t, err)

	assert.Equal(t, "local", cfg.Network.Name)
	assert.Equal(t, uint64(31337), cfg.Network.ChainID)
	assert.Equal(t, common.HexToAddress("0xd9"), cfg.DaoAddress)
	// local network has no diamond
	assert.Equal(t, common.Address{}, cfg.DiamondAddress)
	assert.True(t, cfg.JSON)
}

func TestProviderErrors(t *testing.T) {
	t.Run("unknown network", func(t *testing.T) {
		root := writeProject(t, `{"network": "mainnet", "networks": {"local": {"rpc_url": "http://localhost:8545"}}}`)
		_, err := Provider(SetupViper(root, nil))
		assert.ErrorContains(t, err, "network 'mainnet' not found")
	})

	t.Run("unset RPC variable", func(t *testing.T) {
		root := writeProject(t, `{"network": "x", "networks": {"x": {"rpc_url": "${GOV_TEST_UNSET_RPC}"}}}`)
		_, err := Provider(SetupViper(root, nil))
		assert.ErrorContains(t, err, "GOV_TEST_UNSET_RPC is not set")
	})

	t.Run("invalid address", func(t *testing.T) {
		root := writeProject(t, `{"dao_address": "0x1234"}`)
		_, err := Provider(SetupViper(root, nil))
		assert.ErrorContains(t, err, "invalid dao_address")
	})

	t.Run("negative debounce", func(t *testing.T) {
		root := writeProject(t, `{"debounce": "-1s"}`)
		_, err := Provider(SetupViper(root, nil))
		assert.ErrorContains(t, err, "debounce")
	})
}

func TestProviderWithoutNetwork(t *testing.T) {
	root := writeProject(t, "")
	t.Setenv(PrivateKeyEnv, "")

	cfg, err := Provider(SetupViper(root, nil))
	require.NoError(t, err)
	assert.Nil(t, cfg.Network)
	assert.False(t, cfg.CanWrite())
	assert.Equal(t, filepath.Join(DataDirName, "tokens.toml"), cfg.TokensFile)
}

func TestDetectEnvVar(t *testing.T) {
	tests := []struct {
		rawValue   string
		wantEnvVar string
		wantIsVar  bool
	}{
		{"${SEPOLIA_RPC_URL}", "SEPOLIA_RPC_URL", true},
		{"${_MY_VAR}", "_MY_VAR", true},
		{"https://sepolia.base.org", "", false},
		{"${MY_VAR}/path", "", false},
		{"", "", false},
	}
	for _, tt := range tests {
		t.Run(tt.rawValue, func(t *testing.T) {
			envVar, isVar := DetectEnvVar(tt.rawValue)
			assert.Equal(t, tt.wantEnvVar, envVar)
			assert.Equal(t, tt.wantIsVar, isVar)
		})
	}
}

func TestFindProjectRoot(t *testing.T) {
	root := writeProject(t, "")
	nested := filepath.Join(root, "a", "b")
	require.NoError(t, os.MkdirAll(nested, 0755))
	t.Chdir(nested)

	found, err := filepath.EvalSymlinks(FindProjectRoot())
	require.NoError(t, err)
	want, err := filepath.EvalSymlinks(root)
	require.NoError(t, err)
	assert.Equal(t, want, found)
}
