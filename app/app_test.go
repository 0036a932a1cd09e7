package app

import (
	"context"
	"crypto/ecdsa"
	"testing"
	"time"

	"cosmossdk.io/log"
	"github.com/ethereum/go-ethereum/common"
	ethcrypto "github.com/ethereum/go-ethereum/crypto"
	"github.com/stretchr/testify/require"

	"github.com/quorumwallet/vaultd/config"
	"github.com/quorumwallet/vaultd/state"
	"github.com/quorumwallet/vaultd/tx"
	"github.com/quorumwallet/vaultd/types"
)

const testWalletID = "wallet-e2e"

func newTestApp(t *testing.T, key *ecdsa.PrivateKey) *WalletApp {
	t.Helper()
	cfg := config.DefaultConfig(t.TempDir())
	wapp, err := NewWalletApp(cfg, log.NewNopLogger())
	require.NoError(t, err)
	t.Cleanup(wapp.Stop)

	genDoc := &types.GenesisDoc{
		GenesisTime:          time.Now().UTC(),
		WalletID:             testWalletID,
		ConsensusRatio:       67,
		MinLimitForConsensus: 1,
		Owners: []types.Owner{
			{Address: ethcrypto.PubkeyToAddress(key.PublicKey), Vote: types.VoteLevelTwo},
		},
	}
	require.NoError(t, wapp.Start(genDoc))
	return wapp
}

func signedTx(t *testing.T, key *ecdsa.PrivateKey, nonce uint64, tp tx.WalletTxType, payload any) []byte {
	t.Helper()
	btx := &tx.WalletTx{
		Version: tx.WalletTxVersion1,
		Type:    tp,
		Nonce:   nonce,
		From:    ethcrypto.PubkeyToAddress(key.PublicKey),
		Tx:      payload,
	}
	require.NoError(t, btx.Sign(key, []byte(testWalletID)))
	raw, err := tx.MarshalWalletTx(btx)
	require.NoError(t, err)
	return raw
}

func TestSubmitLifecycle(t *testing.T) {
	key, err := ethcrypto.GenerateKey()
	require.NoError(t, err)
	wapp := newTestApp(t, key)
	ctx := context.Background()
	feed := wapp.Subscribe()

	raw := signedTx(t, key, 0, tx.WalletTxTypeDeposit, &tx.DepositTx{Amount: 100})
	events, _, err := wapp.Submit(ctx, raw)
	require.NoError(t, err)
	require.Len(t, events, 1)
	require.Equal(t, types.EventDepositType, events[0].Type)
	require.Equal(t, uint64(100), wapp.DB().Header().Balance)

	select {
	case ce := <-feed:
		require.Equal(t, events, ce.Events)
	case <-time.After(time.Second):
		t.Fatal("no commit event published")
	}

	// replaying the same envelope must fail on the nonce
	_, _, err = wapp.Submit(ctx, raw)
	require.ErrorIs(t, err, state.ErrTxNonceInvalid)

	raw = signedTx(t, key, 1, tx.WalletTxTypeRequest, &tx.RequestTx{
		Kind:             types.KindWithdraw,
		WithdrawalAmount: 40,
	})
	events, _, err = wapp.Submit(ctx, raw)
	require.NoError(t, err)
	require.Len(t, events, 1)
	require.Equal(t, types.EventRequestedType, events[0].Type)

	raw = signedTx(t, key, 2, tx.WalletTxTypeExecute, &tx.ExecuteTx{RequestId: 1})
	events, _, err = wapp.Submit(ctx, raw)
	require.NoError(t, err)
	require.Equal(t, types.EventExecutedType, events[0].Type)
	require.Equal(t, uint64(60), wapp.DB().Header().Balance)
}

func TestSubmitRejectsBadSignature(t *testing.T) {
	key, err := ethcrypto.GenerateKey()
	require.NoError(t, err)
	wapp := newTestApp(t, key)
	ctx := context.Background()

	otherKey, err := ethcrypto.GenerateKey()
	require.NoError(t, err)
	btx := &tx.WalletTx{
		Version: tx.WalletTxVersion1,
		Type:    tx.WalletTxTypeDeposit,
		Nonce:   0,
		From:    ethcrypto.PubkeyToAddress(key.PublicKey),
		Tx:      &tx.DepositTx{Amount: 5},
	}
	require.NoError(t, btx.Sign(otherKey, []byte(testWalletID)))
	raw, err := tx.MarshalWalletTx(btx)
	require.NoError(t, err)

	_, _, err = wapp.Submit(ctx, raw)
	require.ErrorIs(t, err, state.ErrTxSigInvalid)
	require.Zero(t, wapp.DB().Header().Balance)
}

func TestCheckTx(t *testing.T) {
	key, err := ethcrypto.GenerateKey()
	require.NoError(t, err)
	wapp := newTestApp(t, key)
	ctx := context.Background()

	raw := signedTx(t, key, 0, tx.WalletTxTypeDeposit, &tx.DepositTx{Amount: 10})
	require.NoError(t, wapp.CheckTx(ctx, raw))
	// a check is a dry run, never a commit
	require.Zero(t, wapp.DB().Header().Balance)

	raw = signedTx(t, key, 0, tx.WalletTxTypeApprove, &tx.ApproveTx{RequestId: 9})
	require.ErrorIs(t, wapp.CheckTx(ctx, raw), state.ErrRequestNotFound)
}

func TestGenesisContractAddressRejectedAsOwner(t *testing.T) {
	key, err := ethcrypto.GenerateKey()
	require.NoError(t, err)
	contract := common.HexToAddress("0x00000000000000000000000000000000000000c0")

	cfg := config.DefaultConfig(t.TempDir())
	wapp, err := NewWalletApp(cfg, log.NewNopLogger())
	require.NoError(t, err)
	t.Cleanup(wapp.Stop)

	genDoc := &types.GenesisDoc{
		GenesisTime:          time.Now().UTC(),
		WalletID:             testWalletID,
		ConsensusRatio:       67,
		MinLimitForConsensus: 1,
		Owners: []types.Owner{
			{Address: ethcrypto.PubkeyToAddress(key.PublicKey), Vote: types.VoteLevelTwo},
		},
		ContractAddresses: []common.Address{contract},
	}
	require.NoError(t, wapp.Start(genDoc))
	ctx := context.Background()

	raw := signedTx(t, key, 0, tx.WalletTxTypeRequest, &tx.RequestTx{
		Kind:     types.KindAddOwner,
		NewOwner: types.Owner{Address: contract, Vote: types.VoteLevelOne},
	})
	_, _, err = wapp.Submit(ctx, raw)
	require.NoError(t, err)

	// the genesis contract list feeds the inspector, so execution must
	// refuse to seat the contract as an owner
	raw = signedTx(t, key, 1, tx.WalletTxTypeExecute, &tx.ExecuteTx{RequestId: 1})
	_, _, err = wapp.Submit(ctx, raw)
	require.ErrorIs(t, err, state.ErrInvalidOwner)
	require.Equal(t, uint64(2), wapp.DB().Header().TotalVotes)
}

func TestQuerierRegistry(t *testing.T) {
	key, err := ethcrypto.GenerateKey()
	require.NoError(t, err)
	wapp := newTestApp(t, key)
	ctx := context.Background()

	value, err := wapp.Query(ctx, "/wallet", nil)
	require.NoError(t, err)
	require.Contains(t, string(value), testWalletID)

	_, err = wapp.Query(ctx, "/nope/", nil)
	require.ErrorIs(t, err, state.ErrNotFound)
}
