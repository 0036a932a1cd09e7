package app

import (
	"context"
	"sync"

	"cosmossdk.io/log"
	"github.com/ethereum/go-ethereum/common"

	"github.com/quorumwallet/vaultd/config"
	"github.com/quorumwallet/vaultd/state"
	"github.com/quorumwallet/vaultd/tx"
	"github.com/quorumwallet/vaultd/tx/handler"
	"github.com/quorumwallet/vaultd/types"
)

// CommitEvents carries the events emitted by one committed transaction,
// tagged with the state revision that produced them.
type CommitEvents struct {
	Revision uint64
	Hash     common.Hash
	Events   []types.Event
}

type WalletApp struct {
	cfg    *config.Config
	logger log.Logger

	db        *state.WalletDB
	inspector *state.StaticInspector
	txHdlrs   map[tx.WalletTxType]handler.TxHandler
	queriers  map[string]Querier

	subMtx sync.Mutex
	subs   []chan CommitEvents
}

func NewWalletApp(cfg *config.Config, logger log.Logger) (app *WalletApp, err error) {
	logger = logger.With("module", "app")

	contracts := make([]common.Address, 0, len(cfg.ContractAddresses))
	for _, a := range cfg.ContractAddresses {
		contracts = append(contracts, common.HexToAddress(a))
	}
	inspector := state.NewStaticInspector(contracts)
	db, err := state.NewWalletDB(cfg.DBDir(), inspector, logger)
	if err != nil {
		return nil, err
	}

	app = &WalletApp{
		cfg:       cfg,
		logger:    logger,
		db:        db,
		inspector: inspector,
		txHdlrs:   make(map[tx.WalletTxType]handler.TxHandler),
		queriers:  make(map[string]Querier),
	}
	app.registerTxHandler()
	app.registerQuerier()
	return
}

// Start initializes the wallet from genDoc on first run. A wallet that is
// already initialized ignores genDoc, except for its contract address list,
// which feeds the owner inspector on every start.
func (app *WalletApp) Start(genDoc *types.GenesisDoc) error {
	app.inspector.Add(genDoc.ContractAddresses...)
	if app.db.Initialized() {
		app.logger.Info("wallet state loaded", "revision", app.db.Header().Revision)
		return nil
	}
	hash, err := app.db.InitGenesis(genDoc)
	if err != nil {
		return err
	}
	app.logger.Info("wallet initialized", "walletId", genDoc.WalletID, "hash", hash)
	return nil
}

func (app *WalletApp) Stop() {
	app.subMtx.Lock()
	for _, ch := range app.subs {
		close(ch)
	}
	app.subs = nil
	app.subMtx.Unlock()

	if err := app.db.Close(); err != nil {
		app.logger.Error("close db fail", "err", err)
	}
	app.logger.Info("wallet app stopped")
}

func (app *WalletApp) DB() *state.WalletDB {
	return app.db
}

func (app *WalletApp) registerTxHandler() {
	app.txHdlrs = map[tx.WalletTxType]handler.TxHandler{
		tx.WalletTxTypeRequest: handler.NewRequestTxHandler(app.logger),
		tx.WalletTxTypeApprove: handler.NewApproveTxHandler(app.logger),
		tx.WalletTxTypeRevoke:  handler.NewRevokeTxHandler(app.logger),
		tx.WalletTxTypeCancel:  handler.NewCancelTxHandler(app.logger),
		tx.WalletTxTypeExecute: handler.NewExecuteTxHandler(app.logger),
		tx.WalletTxTypeDeposit: handler.NewDepositTxHandler(app.logger),
		tx.WalletTxTypePayment: handler.NewPaymentTxHandler(app.logger),
	}
}

// Subscribe registers a feed of committed events. The channel is closed
// when the app stops. Slow consumers drop events.
func (app *WalletApp) Subscribe() <-chan CommitEvents {
	ch := make(chan CommitEvents, 256)
	app.subMtx.Lock()
	app.subs = append(app.subs, ch)
	app.subMtx.Unlock()
	return ch
}

func (app *WalletApp) publish(ce CommitEvents) {
	app.subMtx.Lock()
	defer app.subMtx.Unlock()
	for _, ch := range app.subs {
		select {
		case ch <- ce:
		default:
			app.logger.Error("event subscriber lagging, dropping events", "revision", ce.Revision)
		}
	}
}

// CheckTx runs signature, nonce and handler prechecks against the current
// state without mutating it.
func (app *WalletApp) CheckTx(ctx context.Context, raw []byte) (err error) {
	btx, err := tx.UnmarshalWalletTx(raw)
	if err != nil {
		return
	}
	h, ok := app.txHdlrs[btx.Type]
	if !ok {
		return tx.ErrUnsupportedTxType
	}
	err = app.db.View(func(st *state.State) error {
		if err1 := st.Verify(btx); err1 != nil {
			return err1
		}
		return h.Check(ctx, st, btx)
	})
	return
}

// Submit verifies and applies one signed transaction, committing the state
// on success and publishing the emitted events.
func (app *WalletApp) Submit(ctx context.Context, raw []byte) (events []types.Event, hash common.Hash, err error) {
	btx, err := tx.UnmarshalWalletTx(raw)
	if err != nil {
		app.logger.Info("submit unmarshal fail", "err", err)
		return
	}
	h, ok := app.txHdlrs[btx.Type]
	if !ok {
		return nil, common.Hash{}, tx.ErrUnsupportedTxType
	}
	events, hash, err = app.db.Apply(btx.From, func(st *state.State) ([]types.Event, error) {
		if err1 := st.Verify(btx); err1 != nil {
			return nil, err1
		}
		return h.Deliver(ctx, st, btx)
	})
	if err != nil {
		app.logger.Info("submit tx fail", "type", btx.Type, "from", btx.From, "err", err)
		return
	}
	app.logger.Info("tx committed", "type", btx.Type, "from", btx.From, "hash", hash)
	if len(events) > 0 {
		app.publish(CommitEvents{
			Revision: app.db.Header().Revision,
			Hash:     hash,
			Events:   events,
		})
	}
	return
}
