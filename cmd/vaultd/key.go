package main

import (
	"encoding/hex"
	"fmt"

	ethcrypto "github.com/ethereum/go-ethereum/crypto"
	"github.com/spf13/cobra"

	"github.com/quorumwallet/vaultd/crypto"
)

type keyArguments struct {
	Skey string
}

var keyArgs keyArguments

var keyCmd = &cobra.Command{
	Use:   "key",
	Short: "Show the address and public key of a key file",
	Long:  ``,
	RunE:  keyRun,
}

func init() {
	keyFlag(keyCmd, &keyArgs.Skey)
}

func keyRun(cmd *cobra.Command, args []string) error {
	key, err := crypto.LoadKeyFile(keyArgs.Skey)
	if err != nil {
		return err
	}
	pub := ethcrypto.FromECDSAPub(&key.PrivateKey().PublicKey)
	fmt.Printf("address:%v\n", key.Address().Hex())
	fmt.Printf("pubkey:%v\n", hex.EncodeToString(pub))
	return nil
}
