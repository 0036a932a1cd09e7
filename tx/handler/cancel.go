package handler

import (
	"context"

	"cosmossdk.io/log"

	"github.com/quorumwallet/vaultd/state"
	"github.com/quorumwallet/vaultd/tx"
	"github.com/quorumwallet/vaultd/types"
)

type CancelTxHandler struct {
	logger log.Logger
}

func NewCancelTxHandler(logger log.Logger) (h *CancelTxHandler) {
	logger = logger.With("module", "cancelTx")
	h = &CancelTxHandler{
		logger: logger,
	}
	return
}

func (h *CancelTxHandler) Check(ctx context.Context, st *state.State, btx *tx.WalletTx) (err error) {
	wtx := btx.Tx.(*tx.CancelTx)
	r, err := st.GetRequest(wtx.RequestId)
	if err != nil {
		return
	}
	if r.Requester != btx.From {
		return state.ErrNotRequester
	}
	return
}

func (h *CancelTxHandler) Deliver(ctx context.Context, st *state.State, btx *tx.WalletTx) (events []types.Event, err error) {
	wtx := btx.Tx.(*tx.CancelTx)
	event, err := st.Cancel(btx.From, wtx.RequestId)
	if err != nil {
		h.logger.Info("deliver CancelTx fail", "err", err)
		return
	}
	if event != nil {
		events = []types.Event{types.EncodeEventCanceled(event)}
	}
	return
}
