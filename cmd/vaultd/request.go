package main

import (
	"fmt"

	"github.com/ethereum/go-ethereum/common"
	"github.com/spf13/cobra"

	"github.com/quorumwallet/vaultd/tx"
	"github.com/quorumwallet/vaultd/types"
)

type requestArguments struct {
	Url          string
	Skey         string
	Nonce        uint64
	Kind         string
	Current      string
	CurrentLevel uint64
	New          string
	NewLevel     uint64
	Amount       uint64
}

var requestArgs requestArguments

var requestCmd = &cobra.Command{
	Use:   "request",
	Short: "Open a new consensus request",
	Long:  ``,
	RunE:  requestRun,
}

func init() {
	urlFlag(requestCmd, &requestArgs.Url)
	keyFlag(requestCmd, &requestArgs.Skey)
	nonceFlag(requestCmd, &requestArgs.Nonce)
	requestCmd.Flags().StringVarP(&requestArgs.Kind, "kind", "k", "", "withdraw, addowner, removeowner or changeowner")
	requestCmd.Flags().StringVar(&requestArgs.Current, "current", "", "current owner address")
	requestCmd.Flags().Uint64Var(&requestArgs.CurrentLevel, "currentLevel", 0, "current owner vote level")
	requestCmd.Flags().StringVar(&requestArgs.New, "new", "", "new owner address")
	requestCmd.Flags().Uint64Var(&requestArgs.NewLevel, "newLevel", 0, "new owner vote level")
	requestCmd.Flags().Uint64VarP(&requestArgs.Amount, "amount", "a", 0, "withdrawal amount")
}

func parseKind(s string) (types.RequestKind, error) {
	switch s {
	case "withdraw":
		return types.KindWithdraw, nil
	case "addowner":
		return types.KindAddOwner, nil
	case "removeowner":
		return types.KindRemoveOwner, nil
	case "changeowner":
		return types.KindChangeOwner, nil
	default:
		return 0, fmt.Errorf("unknown request kind %q", s)
	}
}

func requestRun(cmd *cobra.Command, args []string) error {
	kind, err := parseKind(requestArgs.Kind)
	if err != nil {
		return err
	}
	stx := &tx.RequestTx{
		Kind:             kind,
		WithdrawalAmount: requestArgs.Amount,
	}
	if requestArgs.Current != "" {
		stx.CurrentOwner = types.Owner{
			Address: common.HexToAddress(requestArgs.Current),
			Vote:    types.VoteLevel(requestArgs.CurrentLevel),
		}
	}
	if requestArgs.New != "" {
		stx.NewOwner = types.Owner{
			Address: common.HexToAddress(requestArgs.New),
			Vote:    types.VoteLevel(requestArgs.NewLevel),
		}
	}
	return signAndSend(requestArgs.Url, requestArgs.Skey, requestArgs.Nonce, tx.WalletTxTypeRequest, stx)
}
