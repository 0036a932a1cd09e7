package main

import (
	"github.com/spf13/cobra"

	"github.com/quorumwallet/vaultd/tx"
)

type depositArguments struct {
	Url    string
	Skey   string
	Nonce  uint64
	Amount uint64
}

var depositArgs depositArguments

var depositCmd = &cobra.Command{
	Use:   "deposit",
	Short: "Credit funds to the wallet",
	Long:  ``,
	RunE:  depositRun,
}

type paymentArguments struct {
	Url         string
	Skey        string
	Nonce       uint64
	Target      string
	Topic       string
	Description string
	Amount      uint64
}

var paymentArgs paymentArguments

var paymentCmd = &cobra.Command{
	Use:   "payment",
	Short: "Record an inbound payment with its purpose",
	Long:  ``,
	RunE:  paymentRun,
}

func init() {
	urlFlag(depositCmd, &depositArgs.Url)
	keyFlag(depositCmd, &depositArgs.Skey)
	nonceFlag(depositCmd, &depositArgs.Nonce)
	depositCmd.Flags().Uint64VarP(&depositArgs.Amount, "amount", "a", 0, "deposit amount")

	urlFlag(paymentCmd, &paymentArgs.Url)
	keyFlag(paymentCmd, &paymentArgs.Skey)
	nonceFlag(paymentCmd, &paymentArgs.Nonce)
	paymentCmd.Flags().StringVar(&paymentArgs.Target, "target", "", "payment target")
	paymentCmd.Flags().StringVar(&paymentArgs.Topic, "topic", "", "payment topic")
	paymentCmd.Flags().StringVar(&paymentArgs.Description, "description", "", "payment description")
	paymentCmd.Flags().Uint64VarP(&paymentArgs.Amount, "amount", "a", 0, "payment amount")
}

func depositRun(cmd *cobra.Command, args []string) error {
	stx := &tx.DepositTx{Amount: depositArgs.Amount}
	return signAndSend(depositArgs.Url, depositArgs.Skey, depositArgs.Nonce, tx.WalletTxTypeDeposit, stx)
}

func paymentRun(cmd *cobra.Command, args []string) error {
	stx := &tx.PaymentTx{
		Target:      paymentArgs.Target,
		Topic:       paymentArgs.Topic,
		Description: paymentArgs.Description,
		Amount:      paymentArgs.Amount,
	}
	return signAndSend(paymentArgs.Url, paymentArgs.Skey, paymentArgs.Nonce, tx.WalletTxTypePayment, stx)
}
