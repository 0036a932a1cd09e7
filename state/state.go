package state

import (
	"encoding/json"
	"fmt"

	"cosmossdk.io/log"
	"github.com/cosmos/iavl"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/ethereum/go-ethereum/rlp"
	"github.com/syndtr/goleveldb/leveldb"

	"github.com/quorumwallet/vaultd/tx"
	"github.com/quorumwallet/vaultd/types"
)

var (
	KeyState       = "s"
	KeyOwnerBody   = "o%x"
	KeyNonce       = "n%x"
	KeyRequestBody = "r%020d"
)

// Header carries the aggregate wallet state persisted alongside the owner
// and request records. Consensus ratio and min limit are immutable after
// genesis.
type Header struct {
	WalletID             string    `json:"wallet_id"`
	Revision             uint64    `json:"revision"`
	Balance              uint64    `json:"balance"`
	RequestCount         uint64    `json:"request_count"`
	TotalVotes           uint64    `json:"total_votes"`
	OwnerCounter         [3]uint64 `json:"owner_counter"`
	ConsensusRatio       uint64    `json:"consensus_ratio"`
	MinLimitForConsensus uint64    `json:"min_limit_for_consensus"`
	RootHash             []byte    `json:"root_hash"`
	Hash                 []byte    `json:"hash"`
}

func (h *Header) Clone() *Header {
	n := *h
	n.RootHash = append([]byte(nil), h.RootHash...)
	n.Hash = append([]byte(nil), h.Hash...)
	return &n
}

// AccountInspector reports whether an identity is contract-controlled.
// Authorization power must rest with keys, so contract identities are
// rejected as owners. The production implementation is fed by the external
// contract registry; tests use a synthetic one.
type AccountInspector interface {
	IsContract(addr common.Address) bool
}

// StaticInspector classifies the configured set of addresses as contracts
// and everything else as externally owned.
type StaticInspector struct {
	contracts map[common.Address]bool
}

func NewStaticInspector(addrs []common.Address) *StaticInspector {
	set := make(map[common.Address]bool, len(addrs))
	for _, a := range addrs {
		set[a] = true
	}
	return &StaticInspector{contracts: set}
}

// Add records further contract addresses, such as the ones carried by the
// genesis document. Not safe for use after the wallet starts serving.
func (i *StaticInspector) Add(addrs ...common.Address) {
	for _, a := range addrs {
		i.contracts[a] = true
	}
}

func (i *StaticInspector) IsContract(addr common.Address) bool {
	return i.contracts[addr]
}

type State struct {
	logger    log.Logger
	db        *iavl.MutableTree
	dbVer     int64
	header    *Header
	inspector AccountInspector
}

func newState(db *iavl.MutableTree, inspector AccountInspector, logger log.Logger) *State {
	return &State{
		logger:    logger,
		db:        db,
		dbVer:     0,
		header:    new(Header),
		inspector: inspector,
	}
}

func (s *State) load() (err error) {
	val, err := s.db.Get([]byte(KeyState))
	if err != nil {
		if err == leveldb.ErrNotFound {
			return nil
		}
		return err
	}
	if val != nil {
		err = json.Unmarshal(val, s.header)
		if err != nil {
			return
		}
		h := s.db.Hash()
		if h != nil {
			s.calcHash(h, true)
		}
	}
	return
}

func (s *State) calcHash(rootHash []byte, update bool) (h common.Hash) {
	h = crypto.Keccak256Hash(rootHash)
	if update {
		if s.header.RootHash == nil {
			s.header.RootHash = make([]byte, len(rootHash))
		}
		copy(s.header.RootHash, rootHash)
		if s.header.Hash == nil {
			s.header.Hash = make([]byte, len(h))
		}
		copy(s.header.Hash, h[:])
	}
	return
}

// commit persists the header and saves a new tree version. On failure the
// working tree is rolled back so no partial mutation survives.
func (s *State) commit() (h common.Hash, err error) {
	var hash []byte
	defer func() {
		if hash == nil {
			s.db.Rollback()
		}
	}()
	s.header.Revision += 1
	val, err := json.Marshal(s.header)
	if err != nil {
		return
	}
	_, err = s.db.Set([]byte(KeyState), val)
	if err != nil {
		return
	}
	hash, ver, err := s.db.SaveVersion()
	if err != nil {
		hash = nil
		return
	}
	s.dbVer = ver
	h = s.calcHash(hash, true)
	return
}

func (s *State) Header() *Header {
	return s.header
}

func (s *State) Hash() (h common.Hash) {
	if s.header.Hash != nil {
		copy(h[:], s.header.Hash)
	}
	return
}

func (s *State) WalletID() string {
	return s.header.WalletID
}

func (s *State) Balance() uint64 {
	return s.header.Balance
}

// initGenesis seeds a fresh wallet from the genesis document. Construction
// fails outright when the initial owner set can not reach quorum.
func (s *State) initGenesis(genDoc *types.GenesisDoc) (err error) {
	if s.header.Revision != 0 {
		return ErrAlreadyInitialized
	}
	s.header.WalletID = genDoc.WalletID
	s.header.ConsensusRatio = genDoc.ConsensusRatio
	s.header.MinLimitForConsensus = genDoc.MinLimitForConsensus
	for _, o := range genDoc.Owners {
		if err = s.addOwner(o); err != nil {
			return err
		}
	}
	if err = s.checkConsensusFeasible(); err != nil {
		return err
	}
	s.logger.Info("wallet genesis applied",
		"wallet", genDoc.WalletID,
		"owners", len(genDoc.Owners),
		"totalVotes", s.header.TotalVotes,
		"required", s.RequiredVotesForConsensus())
	return nil
}

func (s *State) GetNonce(addr common.Address) (nonce uint64, err error) {
	key := fmt.Sprintf(KeyNonce, addr)
	val, err := s.db.Get([]byte(key))
	if err != nil {
		if err != leveldb.ErrNotFound {
			return 0, err
		}
	}
	if val == nil {
		return 0, nil
	}
	err = rlp.DecodeBytes(val, &nonce)
	return
}

func (s *State) bumpNonce(addr common.Address) (err error) {
	nonce, err := s.GetNonce(addr)
	if err != nil {
		return err
	}
	key := fmt.Sprintf(KeyNonce, addr)
	val, err := rlp.EncodeToBytes(nonce + 1)
	if err != nil {
		return err
	}
	_, err = s.db.Set([]byte(key), val)
	return
}

// Verify checks the envelope nonce against the sender's account and the
// signature against the wallet id. Nonces make every signed operation
// replay-resistant.
func (s *State) Verify(btx *tx.WalletTx) (err error) {
	nonce, err := s.GetNonce(btx.From)
	if err != nil {
		return err
	}
	if btx.Nonce != nonce {
		return fmt.Errorf("%w: got %d want %d", ErrTxNonceInvalid, btx.Nonce, nonce)
	}
	dat, err := btx.SigData([]byte(s.header.WalletID))
	if err != nil {
		return err
	}
	signer, err := tx.RecoverSigner(dat, btx.Sig)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrTxSigInvalid, err)
	}
	if signer != btx.From {
		return fmt.Errorf("%w: signed by %s", ErrTxSigInvalid, signer.Hex())
	}
	return nil
}

func PrefixEndBytes(prefix []byte) []byte {
	if len(prefix) == 0 {
		return nil
	}

	end := make([]byte, len(prefix))
	copy(end, prefix)

	for {
		if end[len(end)-1] != byte(255) {
			end[len(end)-1]++
			break
		}

		end = end[:len(end)-1]

		if len(end) == 0 {
			end = nil
			break
		}
	}

	return end
}
