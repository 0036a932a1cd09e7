package main

import (
	"github.com/spf13/cobra"

	"github.com/quorumwallet/vaultd/tx"
)

type voteArguments struct {
	Url       string
	Skey      string
	Nonce     uint64
	RequestId uint64
}

var approveArgs voteArguments

var approveCmd = &cobra.Command{
	Use:   "approve",
	Short: "Add your vote weight to a pending request",
	Long:  ``,
	RunE:  approveRun,
}

var revokeArgs voteArguments

var revokeCmd = &cobra.Command{
	Use:   "revoke",
	Short: "Withdraw your vote from a pending request",
	Long:  ``,
	RunE:  revokeRun,
}

func init() {
	urlFlag(approveCmd, &approveArgs.Url)
	keyFlag(approveCmd, &approveArgs.Skey)
	nonceFlag(approveCmd, &approveArgs.Nonce)
	approveCmd.Flags().Uint64VarP(&approveArgs.RequestId, "request", "r", 0, "request id")

	urlFlag(revokeCmd, &revokeArgs.Url)
	keyFlag(revokeCmd, &revokeArgs.Skey)
	nonceFlag(revokeCmd, &revokeArgs.Nonce)
	revokeCmd.Flags().Uint64VarP(&revokeArgs.RequestId, "request", "r", 0, "request id")
}

func approveRun(cmd *cobra.Command, args []string) error {
	stx := &tx.ApproveTx{RequestId: approveArgs.RequestId}
	return signAndSend(approveArgs.Url, approveArgs.Skey, approveArgs.Nonce, tx.WalletTxTypeApprove, stx)
}

func revokeRun(cmd *cobra.Command, args []string) error {
	stx := &tx.RevokeTx{RequestId: revokeArgs.RequestId}
	return signAndSend(revokeArgs.Url, revokeArgs.Skey, revokeArgs.Nonce, tx.WalletTxTypeRevoke, stx)
}
