package handler

import (
	"context"

	"github.com/quorumwallet/vaultd/state"
	"github.com/quorumwallet/vaultd/tx"
	"github.com/quorumwallet/vaultd/types"
)

// TxHandler validates and applies one wallet operation type. Check is a
// cheap stateless precheck; Deliver mutates the state and returns the
// events to publish after commit.
type TxHandler interface {
	Check(ctx context.Context, st *state.State, btx *tx.WalletTx) error
	Deliver(ctx context.Context, st *state.State, btx *tx.WalletTx) (events []types.Event, err error)
}
