package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
	"github.com/trebuchet-org/treb-gov/internal/domain/config"
	"github.com/trebuchet-org/treb-gov/internal/domain/models"
)

const (
	// DataDirName is the per-project directory holding config.json and local state
	DataDirName = ".treb-gov"

	// PrivateKeyEnv names the only place a signing key is read from
	PrivateKeyEnv = "TREB_GOV_PRIVATE_KEY"
)

type tokenEntry struct {
	Address  string `mapstructure:"address"`
	Symbol   string `mapstructure:"symbol"`
	Name     string `mapstructure:"name"`
	Decimals uint8  `mapstructure:"decimals"`
	Native   bool   `mapstructure:"native"`
}

// Provider creates RuntimeConfig for Wire dependency injection
func Provider(v *viper.Viper) (*config.RuntimeConfig, error) {
	projectRoot := v.GetString("project_root")
	if projectRoot == "" {
		projectRoot = FindProjectRoot()
	}

	LoadEnvFiles(projectRoot)

	cfg := &config.RuntimeConfig{
		ProjectRoot:    projectRoot,
		DataDir:        filepath.Join(projectRoot, DataDirName),
		GovernanceAPI:  v.GetString("governance_api"),
		PrivateKey:     strings.TrimSpace(os.Getenv(PrivateKeyEnv)),
		Debug:          v.GetBool("debug"),
		NonInteractive: v.GetBool("non_interactive"),
		JSON:           v.GetBool("json"),
		Timeout:        v.GetDuration("timeout"),
		Debounce:       v.GetDuration("debounce"),
		TokensFile:     v.GetString("tokens_file"),
	}
	if cfg.Debounce < 0 {
		return nil, fmt.Errorf("debounce must not be negative, got %s", cfg.Debounce)
	}

	network, entry, err := ResolveNetwork(v)
	if err != nil {
		return nil, err
	}
	cfg.Network = network

	addresses := []struct {
		key      string
		fallback string
		dst      *common.Address
	}{
		{"dao_address", entry.DaoAddress, &cfg.DaoAddress},
		{"diamond_address", entry.DiamondAddress, &cfg.DiamondAddress},
		{"token_address", entry.TokenAddress, &cfg.TokenAddress},
		{"verification_address", entry.VerificationAddress, &cfg.VerificationAddress},
	}
	for _, a := range addresses {
		raw := v.GetString(a.key)
		if raw == "" {
			raw = a.fallback
		}
		addr, err := parseAddress(a.key, raw)
		if err != nil {
			return nil, err
		}
		*a.dst = addr
	}
	if cfg.GovernanceAPI == "" {
		cfg.GovernanceAPI = entry.GovernanceAPI
	}

	var tokens []tokenEntry
	if err := v.UnmarshalKey("tokens", &tokens); err != nil {
		return nil, fmt.Errorf("failed to parse tokens: %w", err)
	}
	for _, t := range tokens {
		addr, err := parseAddress("token "+t.Symbol, t.Address)
		if err != nil {
			return nil, err
		}
		cfg.Tokens = append(cfg.Tokens, models.Token{
			Address:       addr,
			Symbol:        t.Symbol,
			Name:          t.Name,
			Decimals:      t.Decimals,
			IsNativeToken: t.Native,
		})
	}

	return cfg, nil
}

func parseAddress(key, raw string) (common.Address, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return common.Address{}, nil
	}
	if !common.IsHexAddress(raw) {
		return common.Address{}, fmt.Errorf("invalid %s: %q is not an address", key, raw)
	}
	return common.HexToAddress(raw), nil
}

// FindProjectRoot walks up from the current directory to the nearest
// .treb-gov directory, falling back to the current directory.
func FindProjectRoot() string {
	cwd, err := os.Getwd()
	if err != nil {
		return "."
	}

	dir := cwd
	for {
		if info, err := os.Stat(filepath.Join(dir, DataDirName)); err == nil && info.IsDir() {
			return dir
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return cwd
		}
		dir = parent
	}
}

// SetupViper creates and configures a viper instance
func SetupViper(projectRoot string, cmd *cobra.Command) *viper.Viper {
	v := viper.New()

	// Set up config file
	v.SetConfigName("config")
	v.SetConfigType("json")
	v.AddConfigPath(filepath.Join(projectRoot, DataDirName))

	// Set up environment variables
	v.SetEnvPrefix("TREB_GOV")
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_", ".", "_"))

	// Set defaults
	v.SetDefault("timeout", "5m")
	v.SetDefault("debounce", time.Second)
	v.SetDefault("debug", false)
	v.SetDefault("non_interactive", false)
	v.SetDefault("json", false)
	v.SetDefault("tokens_file", filepath.Join(DataDirName, "tokens.toml"))
	v.SetDefault("project_root", projectRoot)

	// Try to read config file (ignore error if not found)
	_ = v.ReadInConfig()

	if cmd != nil {
		bindFlags(v, cmd.Flags())
	}

	return v
}

// bindFlags binds the flags that have been set, so unset flags never mask
// values from the config file or environment
func bindFlags(v *viper.Viper, flags *pflag.FlagSet) {
	flags.Visit(func(f *pflag.Flag) {
		v.Set(strings.ReplaceAll(f.Name, "-", "_"), f.Value.String())
	})
}
