package main

import (
	"github.com/spf13/cobra"

	"github.com/quorumwallet/vaultd/tx"
)

var cancelArgs voteArguments

var cancelCmd = &cobra.Command{
	Use:   "cancel",
	Short: "Cancel a pending request you opened",
	Long:  ``,
	RunE:  cancelRun,
}

var executeArgs voteArguments

var executeCmd = &cobra.Command{
	Use:   "execute",
	Short: "Execute a request you opened once it reached quorum",
	Long:  ``,
	RunE:  executeRun,
}

func init() {
	urlFlag(cancelCmd, &cancelArgs.Url)
	keyFlag(cancelCmd, &cancelArgs.Skey)
	nonceFlag(cancelCmd, &cancelArgs.Nonce)
	cancelCmd.Flags().Uint64VarP(&cancelArgs.RequestId, "request", "r", 0, "request id")

	urlFlag(executeCmd, &executeArgs.Url)
	keyFlag(executeCmd, &executeArgs.Skey)
	nonceFlag(executeCmd, &executeArgs.Nonce)
	executeCmd.Flags().Uint64VarP(&executeArgs.RequestId, "request", "r", 0, "request id")
}

func cancelRun(cmd *cobra.Command, args []string) error {
	stx := &tx.CancelTx{RequestId: cancelArgs.RequestId}
	return signAndSend(cancelArgs.Url, cancelArgs.Skey, cancelArgs.Nonce, tx.WalletTxTypeCancel, stx)
}

func executeRun(cmd *cobra.Command, args []string) error {
	stx := &tx.ExecuteTx{RequestId: executeArgs.RequestId}
	return signAndSend(executeArgs.Url, executeArgs.Skey, executeArgs.Nonce, tx.WalletTxTypeExecute, stx)
}
