package main

import (
	"encoding/json"
	"fmt"
	"math/rand"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"github.com/spf13/cobra"

	app_config "github.com/quorumwallet/vaultd/config"
	"github.com/quorumwallet/vaultd/crypto"
	"github.com/quorumwallet/vaultd/types"
)

type initArguments struct {
	Home     string
	WalletID string
	Ratio    uint64
	MinLimit uint64
	Owners   []string
}

var initArgs initArguments

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Initialize node key, genesis, and application configuration files",
	Long: `Initialize the wallet home directory with a fresh node key, a
genesis document describing the owner set, and a default config file.`,
	Args: cobra.ExactArgs(0),
	RunE: initRun,
}

func init() {
	initCmd.Flags().StringVarP(&initArgs.Home, "homedir", "d", "", "home directory")
	initCmd.Flags().StringVar(&initArgs.WalletID, "wallet-id", "", "wallet id, if left blank will be randomly created")
	initCmd.Flags().Uint64Var(&initArgs.Ratio, "ratio", 67, "percentage of total votes required for consensus")
	initCmd.Flags().Uint64Var(&initArgs.MinLimit, "min-limit", 1, "minimum vote count required for consensus")
	initCmd.Flags().StringSliceVar(&initArgs.Owners, "owner", nil, "initial owner as address:level, repeatable")
}

func parseOwnerSpec(spec string) (owner types.Owner, err error) {
	parts := strings.Split(spec, ":")
	if len(parts) != 2 {
		return owner, fmt.Errorf("owner %q must be address:level", spec)
	}
	if !common.IsHexAddress(parts[0]) {
		return owner, fmt.Errorf("owner %q has invalid address", spec)
	}
	level, err := strconv.ParseUint(parts[1], 10, 8)
	if err != nil {
		return owner, fmt.Errorf("owner %q has invalid level: %w", spec, err)
	}
	owner.Address = common.HexToAddress(parts[0])
	owner.Vote = types.VoteLevel(level)
	if !owner.Vote.Valid() {
		return owner, fmt.Errorf("owner %q has invalid level %d", spec, level)
	}
	return owner, nil
}

func initRun(cmd *cobra.Command, args []string) error {
	home := initArgs.Home
	if home == "" {
		home = os.ExpandEnv("$HOME/.vaultd")
	}
	if err := app_config.EnsureRoot(home); err != nil {
		return err
	}
	cfg := app_config.DefaultConfig(home)

	key, err := crypto.GenKeyFile(cfg.KeyFile())
	if err != nil {
		return err
	}

	walletID := initArgs.WalletID
	if walletID == "" {
		walletID = fmt.Sprintf("wallet-%v", rand.Uint64())
	}

	owners := make([]types.Owner, 0, len(initArgs.Owners)+1)
	for _, spec := range initArgs.Owners {
		owner, err := parseOwnerSpec(spec)
		if err != nil {
			return err
		}
		owners = append(owners, owner)
	}
	if len(owners) == 0 {
		owners = append(owners, types.Owner{Address: key.Address(), Vote: types.VoteLevelTwo})
	}

	genDoc := &types.GenesisDoc{
		GenesisTime:          time.Now().Round(0).UTC(),
		WalletID:             walletID,
		ConsensusRatio:       initArgs.Ratio,
		MinLimitForConsensus: initArgs.MinLimit,
		Owners:               owners,
	}
	if err := types.ExportGenesisFile(genDoc, cfg.GenesisFile()); err != nil {
		return fmt.Errorf("failed to export genesis file %v", err)
	}

	out, err := json.MarshalIndent(struct {
		WalletID string `json:"wallet_id"`
		Address  string `json:"address"`
		Home     string `json:"home"`
	}{walletID, key.Address().Hex(), home}, "", " ")
	if err != nil {
		return err
	}
	_, err = fmt.Fprintf(os.Stderr, "%s\n", out)
	return err
}
