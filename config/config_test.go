package config

import (
	"os"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestEnsureRootAndLoad(t *testing.T) {
	home := t.TempDir()
	require.NoError(t, EnsureRoot(home))

	_, err := os.Stat(DefaultConfig(home).ConfigFile())
	require.NoError(t, err)

	cfg, err := LoadConfig(home)
	require.NoError(t, err)
	require.Equal(t, home, cfg.Home)
	require.Equal(t, "0.0.0.0:26659", cfg.ListenAddr)
	require.Equal(t, "info", cfg.LogLevel)
	require.Empty(t, cfg.ContractAddresses)
}

func TestWriteConfigFileRoundTrip(t *testing.T) {
	home := t.TempDir()
	require.NoError(t, EnsureRoot(home))

	cfg := DefaultConfig(home)
	cfg.ListenAddr = "127.0.0.1:9000"
	cfg.LogLevel = "debug"
	cfg.ContractAddresses = []string{
		"0x00000000000000000000000000000000000000f6",
	}
	require.NoError(t, WriteConfigFile(cfg.ConfigFile(), cfg))

	loaded, err := LoadConfig(home)
	require.NoError(t, err)
	require.Equal(t, cfg.ListenAddr, loaded.ListenAddr)
	require.Equal(t, cfg.LogLevel, loaded.LogLevel)
	require.Equal(t, cfg.ContractAddresses, loaded.ContractAddresses)
}
