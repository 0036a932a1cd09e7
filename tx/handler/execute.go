package handler

import (
	"context"

	"cosmossdk.io/log"

	"github.com/quorumwallet/vaultd/state"
	"github.com/quorumwallet/vaultd/tx"
	"github.com/quorumwallet/vaultd/types"
)

type ExecuteTxHandler struct {
	logger log.Logger
}

func NewExecuteTxHandler(logger log.Logger) (h *ExecuteTxHandler) {
	logger = logger.With("module", "executeTx")
	h = &ExecuteTxHandler{
		logger: logger,
	}
	return
}

func (h *ExecuteTxHandler) Check(ctx context.Context, st *state.State, btx *tx.WalletTx) (err error) {
	wtx := btx.Tx.(*tx.ExecuteTx)
	r, err := st.GetRequest(wtx.RequestId)
	if err != nil {
		return
	}
	if r.Requester != btx.From {
		return state.ErrNotRequester
	}
	return
}

func (h *ExecuteTxHandler) Deliver(ctx context.Context, st *state.State, btx *tx.WalletTx) (events []types.Event, err error) {
	wtx := btx.Tx.(*tx.ExecuteTx)
	event, err := st.Execute(btx.From, wtx.RequestId)
	if err != nil {
		h.logger.Info("deliver ExecuteTx fail", "err", err)
		return
	}
	if event != nil {
		events = []types.Event{types.EncodeEventExecuted(event)}
	}
	return
}
