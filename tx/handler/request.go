package handler

import (
	"context"

	"cosmossdk.io/log"

	"github.com/quorumwallet/vaultd/state"
	"github.com/quorumwallet/vaultd/tx"
	"github.com/quorumwallet/vaultd/types"
)

type RequestTxHandler struct {
	logger log.Logger
}

func NewRequestTxHandler(logger log.Logger) (h *RequestTxHandler) {
	logger = logger.With("module", "requestTx")
	h = &RequestTxHandler{
		logger: logger,
	}
	return
}

func (h *RequestTxHandler) Check(ctx context.Context, st *state.State, btx *tx.WalletTx) (err error) {
	wtx := btx.Tx.(*tx.RequestTx)
	if !wtx.Kind.Valid() {
		return state.ErrInvalidKind
	}
	if ok, err1 := st.IsOwner(btx.From); err1 != nil {
		return err1
	} else if !ok {
		return state.ErrNotOwner
	}
	return
}

func (h *RequestTxHandler) Deliver(ctx context.Context, st *state.State, btx *tx.WalletTx) (events []types.Event, err error) {
	wtx := btx.Tx.(*tx.RequestTx)
	event, err := st.Request(btx.From, wtx.Kind, wtx.CurrentOwner, wtx.NewOwner, wtx.WithdrawalAmount)
	if err != nil {
		h.logger.Info("deliver RequestTx fail", "err", err)
		return
	}
	if event != nil {
		events = []types.Event{types.EncodeEventRequested(event)}
	}
	return
}
