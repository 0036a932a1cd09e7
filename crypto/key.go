package crypto

import (
	"crypto/ecdsa"
	"fmt"
	"os"

	"github.com/ethereum/go-ethereum/common"
	ethcrypto "github.com/ethereum/go-ethereum/crypto"
)

// Key wraps a secp256k1 private key loaded from a hex-encoded key file.
type Key struct {
	privateKey *ecdsa.PrivateKey
	address    common.Address
}

func LoadKeyFile(keyFilePath string) (*Key, error) {
	priv, err := ethcrypto.LoadECDSA(keyFilePath)
	if err != nil {
		return nil, fmt.Errorf("read key file %v: %w", keyFilePath, err)
	}
	return &Key{
		privateKey: priv,
		address:    ethcrypto.PubkeyToAddress(priv.PublicKey),
	}, nil
}

// GenKeyFile writes a fresh key to keyFilePath. It refuses to overwrite an
// existing file.
func GenKeyFile(keyFilePath string) (*Key, error) {
	if _, err := os.Stat(keyFilePath); err == nil {
		return nil, fmt.Errorf("key file %v already exists", keyFilePath)
	}
	priv, err := ethcrypto.GenerateKey()
	if err != nil {
		return nil, err
	}
	if err = ethcrypto.SaveECDSA(keyFilePath, priv); err != nil {
		return nil, err
	}
	return &Key{
		privateKey: priv,
		address:    ethcrypto.PubkeyToAddress(priv.PublicKey),
	}, nil
}

func (k *Key) Address() common.Address {
	return k.address
}

func (k *Key) PrivateKey() *ecdsa.PrivateKey {
	return k.privateKey
}

func (k *Key) Sign(data []byte) ([]byte, error) {
	return ethcrypto.Sign(ethcrypto.Keccak256(data), k.privateKey)
}
