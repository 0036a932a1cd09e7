package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/viper"
)

const (
	DefaultConfigDir  = "config"
	DefaultDataDir    = "data"
	DefaultConfigName = "config.toml"

	defaultGenesisName = "genesis.json"
	defaultKeyName     = "node_key"
	defaultIndexerName = "indexer.db"
)

type Config struct {
	Home string `mapstructure:"-"`

	// ListenAddr is the address the HTTP API binds to.
	ListenAddr string `mapstructure:"listen_addr"`
	LogLevel   string `mapstructure:"log_level"`

	// ContractAddresses are accounts the wallet refuses to register as
	// owners.
	ContractAddresses []string `mapstructure:"contract_addresses"`
}

func DefaultConfig(home string) *Config {
	if len(home) == 0 {
		home = os.ExpandEnv("$HOME/.vaultd")
	}
	return &Config{
		Home:              home,
		ListenAddr:        "0.0.0.0:26659",
		LogLevel:          "info",
		ContractAddresses: []string{},
	}
}

func (cfg *Config) ConfigFile() string {
	return filepath.Join(cfg.Home, DefaultConfigDir, DefaultConfigName)
}

func (cfg *Config) GenesisFile() string {
	return filepath.Join(cfg.Home, DefaultConfigDir, defaultGenesisName)
}

func (cfg *Config) KeyFile() string {
	return filepath.Join(cfg.Home, DefaultConfigDir, defaultKeyName)
}

func (cfg *Config) DBDir() string {
	return filepath.Join(cfg.Home, DefaultDataDir)
}

func (cfg *Config) IndexerDBFile() string {
	return filepath.Join(cfg.Home, DefaultDataDir, defaultIndexerName)
}

// EnsureRoot creates the home directory layout if it does not exist and
// writes a default config file when none is present.
func EnsureRoot(home string) error {
	if err := os.MkdirAll(filepath.Join(home, DefaultConfigDir), DefaultDirPerm); err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Join(home, DefaultDataDir), DefaultDirPerm); err != nil {
		return err
	}
	cfg := DefaultConfig(home)
	if _, err := os.Stat(cfg.ConfigFile()); os.IsNotExist(err) {
		return WriteConfigFile(cfg.ConfigFile(), cfg)
	}
	return nil
}

// LoadConfig reads config.toml under home, falling back to defaults for
// any unset field.
func LoadConfig(home string) (*Config, error) {
	cfg := DefaultConfig(home)
	v := viper.New()
	v.SetConfigFile(cfg.ConfigFile())
	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("read config %v: %w", cfg.ConfigFile(), err)
	}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("parse config %v: %w", cfg.ConfigFile(), err)
	}
	cfg.Home = home
	return cfg, nil
}
