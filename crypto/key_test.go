package crypto

import (
	"path/filepath"
	"testing"

	ethcrypto "github.com/ethereum/go-ethereum/crypto"
	"github.com/stretchr/testify/require"
)

func TestGenAndLoadKeyFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "node_key")

	key, err := GenKeyFile(path)
	require.NoError(t, err)
	require.NotEqual(t, key.Address().Hex(), "0x0000000000000000000000000000000000000000")

	// refuses to clobber an existing key
	_, err = GenKeyFile(path)
	require.Error(t, err)

	loaded, err := LoadKeyFile(path)
	require.NoError(t, err)
	require.Equal(t, key.Address(), loaded.Address())
}

func TestKeySign(t *testing.T) {
	path := filepath.Join(t.TempDir(), "node_key")
	key, err := GenKeyFile(path)
	require.NoError(t, err)

	dat := []byte("payload")
	sig, err := key.Sign(dat)
	require.NoError(t, err)

	pub, err := ethcrypto.SigToPub(ethcrypto.Keccak256(dat), sig)
	require.NoError(t, err)
	require.Equal(t, key.Address(), ethcrypto.PubkeyToAddress(*pub))
}
