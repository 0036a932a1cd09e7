package app

import (
	"context"
	"encoding/binary"
	"encoding/json"
	"strings"

	"cosmossdk.io/log"
	"github.com/ethereum/go-ethereum/common"

	"github.com/quorumwallet/vaultd/state"
	"github.com/quorumwallet/vaultd/types"
)

type Querier interface {
	Query(ctx context.Context, data []byte) (value []byte, err error)
}

func (app *WalletApp) registerQuerier() {
	app.queriers["/owners/"] = NewOwnerQuerier(app.db, app.logger)
	app.queriers["/requests/"] = NewRequestQuerier(app.db, app.logger)
	app.queriers["/nonces/"] = NewNonceQuerier(app.db, app.logger)
	app.queriers["/wallet/"] = NewWalletQuerier(app.db, app.logger)
}

func (app *WalletApp) Query(ctx context.Context, path string, data []byte) (value []byte, err error) {
	if !strings.HasSuffix(path, "/") {
		path += "/"
	}
	q, ok := app.queriers[path]
	if !ok {
		return nil, state.ErrNotFound
	}
	return q.Query(ctx, data)
}

// OwnerQuerier returns one owner for a 20-byte address payload, or the
// whole registry for an empty payload.
type OwnerQuerier struct {
	db     *state.WalletDB
	logger log.Logger
}

func NewOwnerQuerier(db *state.WalletDB, logger log.Logger) (q *OwnerQuerier) {
	q = &OwnerQuerier{
		db:     db,
		logger: logger,
	}
	return
}

func (q *OwnerQuerier) Query(ctx context.Context, data []byte) (value []byte, err error) {
	err = q.db.View(func(st *state.State) error {
		if len(data) == common.AddressLength {
			owner, err1 := st.FindOwner(common.BytesToAddress(data))
			if err1 != nil {
				return err1
			}
			if owner == nil {
				return state.ErrNotFound
			}
			value, err1 = json.Marshal(owner)
			return err1
		}
		owners, err1 := st.Owners()
		if err1 != nil {
			return err1
		}
		value, err1 = json.Marshal(owners)
		return err1
	})
	return
}

// RequestQuerier returns one request for an 8-byte big-endian id payload.
type RequestQuerier struct {
	db     *state.WalletDB
	logger log.Logger
}

func NewRequestQuerier(db *state.WalletDB, logger log.Logger) (q *RequestQuerier) {
	q = &RequestQuerier{
		db:     db,
		logger: logger,
	}
	return
}

func (q *RequestQuerier) Query(ctx context.Context, data []byte) (value []byte, err error) {
	if len(data) != 8 {
		return nil, state.ErrRequestNotFound
	}
	id := binary.BigEndian.Uint64(data)
	err = q.db.View(func(st *state.State) error {
		r, err1 := st.GetRequest(id)
		if err1 != nil {
			return err1
		}
		value, err1 = json.Marshal(r)
		return err1
	})
	return
}

type NonceQuerier struct {
	db     *state.WalletDB
	logger log.Logger
}

func NewNonceQuerier(db *state.WalletDB, logger log.Logger) (q *NonceQuerier) {
	q = &NonceQuerier{
		db:     db,
		logger: logger,
	}
	return
}

func (q *NonceQuerier) Query(ctx context.Context, data []byte) (value []byte, err error) {
	if len(data) != common.AddressLength {
		return nil, state.ErrNotFound
	}
	err = q.db.View(func(st *state.State) error {
		nonce, err1 := st.GetNonce(common.BytesToAddress(data))
		if err1 != nil {
			return err1
		}
		value, err1 = json.Marshal(nonce)
		return err1
	})
	return
}

// WalletSummary is the queryable snapshot of the wallet header.
type WalletSummary struct {
	WalletID             string        `json:"walletId"`
	Revision             uint64        `json:"revision"`
	Balance              uint64        `json:"balance"`
	RequestCount         uint64        `json:"requestCount"`
	TotalVotes           uint64        `json:"totalVotes"`
	RequiredVotes        uint64        `json:"requiredVotes"`
	ConsensusRatio       uint64        `json:"consensusRatio"`
	MinLimitForConsensus uint64        `json:"minLimitForConsensus"`
	Owners               []types.Owner `json:"owners"`
	Hash                 common.Hash   `json:"hash"`
}

type WalletQuerier struct {
	db     *state.WalletDB
	logger log.Logger
}

func NewWalletQuerier(db *state.WalletDB, logger log.Logger) (q *WalletQuerier) {
	q = &WalletQuerier{
		db:     db,
		logger: logger,
	}
	return
}

func (q *WalletQuerier) Query(ctx context.Context, data []byte) (value []byte, err error) {
	err = q.db.View(func(st *state.State) error {
		owners, err1 := st.Owners()
		if err1 != nil {
			return err1
		}
		header := st.Header()
		sum := WalletSummary{
			WalletID:             header.WalletID,
			Revision:             header.Revision,
			Balance:              header.Balance,
			RequestCount:         header.RequestCount,
			TotalVotes:           header.TotalVotes,
			RequiredVotes:        st.RequiredVotesForConsensus(),
			ConsensusRatio:       header.ConsensusRatio,
			MinLimitForConsensus: header.MinLimitForConsensus,
			Owners:               owners,
			Hash:                 common.BytesToHash(header.Hash),
		}
		value, err1 = json.Marshal(sum)
		return err1
	})
	return
}
