package state

import (
	"testing"
	"time"

	"cosmossdk.io/log"
	"github.com/ethereum/go-ethereum/common"
	ethcrypto "github.com/ethereum/go-ethereum/crypto"
	"github.com/stretchr/testify/require"

	"github.com/quorumwallet/vaultd/tx"
	"github.com/quorumwallet/vaultd/types"
)

var (
	addrA = common.HexToAddress("0x00000000000000000000000000000000000000a1")
	addrB = common.HexToAddress("0x00000000000000000000000000000000000000b2")
	addrC = common.HexToAddress("0x00000000000000000000000000000000000000c3")
	addrD = common.HexToAddress("0x00000000000000000000000000000000000000d4")
	addrE = common.HexToAddress("0x00000000000000000000000000000000000000e5")
	addrF = common.HexToAddress("0x00000000000000000000000000000000000000f6")
)

// five owners with 7 total votes, ratio 55%, min limit 3: quorum is 4
func defaultGenesis() *types.GenesisDoc {
	return &types.GenesisDoc{
		GenesisTime:          time.Now().UTC(),
		WalletID:             "test-wallet",
		ConsensusRatio:       55,
		MinLimitForConsensus: 3,
		Owners: []types.Owner{
			{Address: addrA, Vote: types.VoteLevelTwo},
			{Address: addrB, Vote: types.VoteLevelTwo},
			{Address: addrC, Vote: types.VoteLevelOne},
			{Address: addrD, Vote: types.VoteLevelOne},
			{Address: addrE, Vote: types.VoteLevelOne},
		},
	}
}

func newTestDB(t *testing.T, genDoc *types.GenesisDoc, inspector AccountInspector) *WalletDB {
	t.Helper()
	db, err := NewWalletDB(t.TempDir(), inspector, log.NewNopLogger())
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	_, err = db.InitGenesis(genDoc)
	require.NoError(t, err)
	return db
}

func apply(t *testing.T, db *WalletDB, from common.Address, fn func(st *State) error) error {
	t.Helper()
	_, _, err := db.Apply(from, func(st *State) ([]types.Event, error) {
		return nil, fn(st)
	})
	return err
}

func mustApply(t *testing.T, db *WalletDB, from common.Address, fn func(st *State) error) {
	t.Helper()
	require.NoError(t, apply(t, db, from, fn))
}

func TestInitGenesis(t *testing.T) {
	db := newTestDB(t, defaultGenesis(), nil)

	header := db.Header()
	require.Equal(t, "test-wallet", header.WalletID)
	require.Equal(t, uint64(7), header.TotalVotes)
	require.Equal(t, [3]uint64{0, 3, 2}, header.OwnerCounter)
	require.Equal(t, uint64(1), header.Revision)
	require.True(t, db.Initialized())

	_, err := db.InitGenesis(defaultGenesis())
	require.ErrorIs(t, err, ErrAlreadyInitialized)
}

func TestInitGenesisInfeasible(t *testing.T) {
	genDoc := defaultGenesis()
	genDoc.MinLimitForConsensus = 8

	db, err := NewWalletDB(t.TempDir(), nil, log.NewNopLogger())
	require.NoError(t, err)
	defer db.Close()

	_, err = db.InitGenesis(genDoc)
	require.ErrorIs(t, err, ErrQuorumInfeasible)
	require.False(t, db.Initialized())
}

func TestNonceBumpsPerOperation(t *testing.T) {
	db := newTestDB(t, defaultGenesis(), nil)

	readNonce := func(addr common.Address) uint64 {
		var nonce uint64
		require.NoError(t, db.View(func(st *State) error {
			var err error
			nonce, err = st.GetNonce(addr)
			return err
		}))
		return nonce
	}

	require.Equal(t, uint64(0), readNonce(addrA))
	mustApply(t, db, addrA, func(st *State) error {
		_, err := st.Deposit(addrA, 10)
		return err
	})
	require.Equal(t, uint64(1), readNonce(addrA))
	require.Equal(t, uint64(0), readNonce(addrB))

	// a failed operation must not burn the nonce
	err := apply(t, db, addrA, func(st *State) error {
		_, err := st.MakePayment(addrA, "", "", "", 0)
		return err
	})
	require.ErrorIs(t, err, ErrZeroAmount)
	require.Equal(t, uint64(1), readNonce(addrA))
}

func TestVerify(t *testing.T) {
	db := newTestDB(t, defaultGenesis(), nil)

	key, err := ethcrypto.GenerateKey()
	require.NoError(t, err)
	from := ethcrypto.PubkeyToAddress(key.PublicKey)

	btx := &tx.WalletTx{
		Version: tx.WalletTxVersion1,
		Type:    tx.WalletTxTypeDeposit,
		Nonce:   0,
		From:    from,
		Tx:      &tx.DepositTx{Amount: 5},
	}
	require.NoError(t, btx.Sign(key, []byte("test-wallet")))

	require.NoError(t, db.View(func(st *State) error {
		return st.Verify(btx)
	}))

	t.Run("wrong nonce", func(t *testing.T) {
		bad := *btx
		bad.Nonce = 7
		require.NoError(t, bad.Sign(key, []byte("test-wallet")))
		err := db.View(func(st *State) error { return st.Verify(&bad) })
		require.ErrorIs(t, err, ErrTxNonceInvalid)
	})

	t.Run("wrong wallet id", func(t *testing.T) {
		bad := *btx
		require.NoError(t, bad.Sign(key, []byte("other-wallet")))
		err := db.View(func(st *State) error { return st.Verify(&bad) })
		require.ErrorIs(t, err, ErrTxSigInvalid)
	})

	t.Run("from mismatch", func(t *testing.T) {
		bad := *btx
		bad.From = addrA
		require.NoError(t, bad.Sign(key, []byte("test-wallet")))
		err := db.View(func(st *State) error { return st.Verify(&bad) })
		require.ErrorIs(t, err, ErrTxSigInvalid)
	})
}

func TestHeaderPersistsAcrossReopen(t *testing.T) {
	dir := t.TempDir()
	db, err := NewWalletDB(dir, nil, log.NewNopLogger())
	require.NoError(t, err)
	_, err = db.InitGenesis(defaultGenesis())
	require.NoError(t, err)
	mustApply(t, db, addrA, func(st *State) error {
		_, err := st.Deposit(addrA, 42)
		return err
	})
	hash := db.Header().Hash
	require.NoError(t, db.Close())

	db2, err := NewWalletDB(dir, nil, log.NewNopLogger())
	require.NoError(t, err)
	defer db2.Close()
	header := db2.Header()
	require.Equal(t, uint64(42), header.Balance)
	require.Equal(t, uint64(7), header.TotalVotes)
	require.Equal(t, hash, header.Hash)
	require.True(t, db2.Initialized())
}
