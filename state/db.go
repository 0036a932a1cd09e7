package state

import (
	"sync"

	"cosmossdk.io/log"
	"github.com/cosmos/iavl"
	dbm "github.com/cosmos/iavl/db"
	"github.com/ethereum/go-ethereum/common"

	"github.com/quorumwallet/vaultd/types"
)

// WalletDB serializes every state-mutating operation behind a single write
// lock: operations run to completion with no interleaving, and either fully
// commit or fully fail. Readers observe the last committed version.
type WalletDB struct {
	mtx sync.RWMutex

	dir    string
	logger log.Logger
	db     *iavl.MutableTree

	state *State
}

func NewWalletDB(dir string, inspector AccountInspector, logger log.Logger) (db *WalletDB, err error) {
	logger = logger.With("module", "walletdb")
	ldb, err := dbm.NewDB("vault", "goleveldb", dir)
	if err != nil {
		return nil, err
	}
	tdb := iavl.NewMutableTree(ldb, 128, true, logger)
	version, err := tdb.Load()
	if err != nil {
		return nil, err
	}
	logger.Info("load db success", "version", version)
	st := newState(tdb, inspector, logger)
	err = st.load()
	if err != nil {
		logger.Error("from walletdb load fail", "err", err)
		return nil, err
	}
	db = &WalletDB{
		dir:    dir,
		logger: logger,
		db:     tdb,
		state:  st,
	}
	return
}

func (db *WalletDB) Close() (err error) {
	err = db.db.Close()
	return
}

func (db *WalletDB) Header() (header *Header) {
	db.mtx.RLock()
	defer db.mtx.RUnlock()
	header = db.state.Header().Clone()
	return
}

func (db *WalletDB) Initialized() bool {
	db.mtx.RLock()
	defer db.mtx.RUnlock()
	return db.state.header.Revision != 0
}

// InitGenesis seeds a fresh wallet and commits the first version.
func (db *WalletDB) InitGenesis(genDoc *types.GenesisDoc) (hash common.Hash, err error) {
	db.mtx.Lock()
	defer db.mtx.Unlock()
	backup := db.state.header
	db.state.header = backup.Clone()
	if err = db.state.initGenesis(genDoc); err != nil {
		db.db.Rollback()
		db.state.header = backup
		return
	}
	hash, err = db.state.commit()
	if err != nil {
		db.state.header = backup
	}
	return
}

// Apply runs one mutating operation under the write lock. On any error the
// working tree is rolled back and the in-memory header restored, so a failed
// operation leaves no trace.
func (db *WalletDB) Apply(from common.Address, fn func(st *State) ([]types.Event, error)) (events []types.Event, hash common.Hash, err error) {
	db.mtx.Lock()
	defer db.mtx.Unlock()
	backup := db.state.header
	db.state.header = backup.Clone()
	events, err = fn(db.state)
	if err == nil {
		err = db.state.bumpNonce(from)
	}
	if err != nil {
		db.db.Rollback()
		db.state.header = backup
		return nil, common.Hash{}, err
	}
	hash, err = db.state.commit()
	if err != nil {
		db.state.header = backup
		return nil, common.Hash{}, err
	}
	return
}

// View runs a read-only function against the committed state.
func (db *WalletDB) View(fn func(st *State) error) error {
	db.mtx.RLock()
	defer db.mtx.RUnlock()
	return fn(db.state)
}
