package handler

import (
	"context"

	"cosmossdk.io/log"

	"github.com/quorumwallet/vaultd/state"
	"github.com/quorumwallet/vaultd/tx"
	"github.com/quorumwallet/vaultd/types"
)

type DepositTxHandler struct {
	logger log.Logger
}

func NewDepositTxHandler(logger log.Logger) (h *DepositTxHandler) {
	logger = logger.With("module", "depositTx")
	h = &DepositTxHandler{
		logger: logger,
	}
	return
}

func (h *DepositTxHandler) Check(ctx context.Context, st *state.State, btx *tx.WalletTx) (err error) {
	return
}

func (h *DepositTxHandler) Deliver(ctx context.Context, st *state.State, btx *tx.WalletTx) (events []types.Event, err error) {
	wtx := btx.Tx.(*tx.DepositTx)
	event, err := st.Deposit(btx.From, wtx.Amount)
	if err != nil {
		h.logger.Info("deliver DepositTx fail", "err", err)
		return
	}
	if event != nil {
		events = []types.Event{types.EncodeEventDeposit(event)}
	}
	return
}
