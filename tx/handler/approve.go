package handler

import (
	"context"

	"cosmossdk.io/log"

	"github.com/quorumwallet/vaultd/state"
	"github.com/quorumwallet/vaultd/tx"
	"github.com/quorumwallet/vaultd/types"
)

type ApproveTxHandler struct {
	logger log.Logger
}

func NewApproveTxHandler(logger log.Logger) (h *ApproveTxHandler) {
	logger = logger.With("module", "approveTx")
	h = &ApproveTxHandler{
		logger: logger,
	}
	return
}

func (h *ApproveTxHandler) Check(ctx context.Context, st *state.State, btx *tx.WalletTx) (err error) {
	wtx := btx.Tx.(*tx.ApproveTx)
	if _, err = st.GetRequest(wtx.RequestId); err != nil {
		return
	}
	return
}

func (h *ApproveTxHandler) Deliver(ctx context.Context, st *state.State, btx *tx.WalletTx) (events []types.Event, err error) {
	wtx := btx.Tx.(*tx.ApproveTx)
	event, err := st.Approve(btx.From, wtx.RequestId)
	if err != nil {
		h.logger.Info("deliver ApproveTx fail", "err", err)
		return
	}
	if event != nil {
		events = []types.Event{types.EncodeEventApproved(event)}
	}
	return
}
