package handler

import (
	"context"

	"cosmossdk.io/log"

	"github.com/quorumwallet/vaultd/state"
	"github.com/quorumwallet/vaultd/tx"
	"github.com/quorumwallet/vaultd/types"
)

type PaymentTxHandler struct {
	logger log.Logger
}

func NewPaymentTxHandler(logger log.Logger) (h *PaymentTxHandler) {
	logger = logger.With("module", "paymentTx")
	h = &PaymentTxHandler{
		logger: logger,
	}
	return
}

func (h *PaymentTxHandler) Check(ctx context.Context, st *state.State, btx *tx.WalletTx) (err error) {
	wtx := btx.Tx.(*tx.PaymentTx)
	if wtx.Amount == 0 {
		return state.ErrZeroAmount
	}
	return
}

func (h *PaymentTxHandler) Deliver(ctx context.Context, st *state.State, btx *tx.WalletTx) (events []types.Event, err error) {
	wtx := btx.Tx.(*tx.PaymentTx)
	event, err := st.MakePayment(btx.From, wtx.Target, wtx.Topic, wtx.Description, wtx.Amount)
	if err != nil {
		h.logger.Info("deliver PaymentTx fail", "err", err)
		return
	}
	if event != nil {
		events = []types.Event{types.EncodeEventPayment(event)}
	}
	return
}
