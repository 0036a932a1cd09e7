package handler

import (
	"context"

	"cosmossdk.io/log"

	"github.com/quorumwallet/vaultd/state"
	"github.com/quorumwallet/vaultd/tx"
	"github.com/quorumwallet/vaultd/types"
)

type RevokeTxHandler struct {
	logger log.Logger
}

func NewRevokeTxHandler(logger log.Logger) (h *RevokeTxHandler) {
	logger = logger.With("module", "revokeTx")
	h = &RevokeTxHandler{
		logger: logger,
	}
	return
}

func (h *RevokeTxHandler) Check(ctx context.Context, st *state.State, btx *tx.WalletTx) (err error) {
	wtx := btx.Tx.(*tx.RevokeTx)
	if _, err = st.GetRequest(wtx.RequestId); err != nil {
		return
	}
	return
}

func (h *RevokeTxHandler) Deliver(ctx context.Context, st *state.State, btx *tx.WalletTx) (events []types.Event, err error) {
	wtx := btx.Tx.(*tx.RevokeTx)
	event, err := st.Revoke(btx.From, wtx.RequestId)
	if err != nil {
		h.logger.Info("deliver RevokeTx fail", "err", err)
		return
	}
	if event != nil {
		events = []types.Event{types.EncodeEventRevoked(event)}
	}
	return
}
