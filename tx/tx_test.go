package tx

import (
	"testing"

	"github.com/ethereum/go-ethereum/crypto"
	"github.com/stretchr/testify/require"

	"github.com/quorumwallet/vaultd/types"
)

func TestSignRecover(t *testing.T) {
	key, err := crypto.GenerateKey()
	require.NoError(t, err)
	from := crypto.PubkeyToAddress(key.PublicKey)

	btx := &WalletTx{
		Version: WalletTxVersion1,
		Type:    WalletTxTypeRequest,
		Nonce:   3,
		From:    from,
		Tx: &RequestTx{
			Kind:             types.KindWithdraw,
			WithdrawalAmount: 100,
		},
	}
	require.NoError(t, btx.Sign(key, []byte("wallet-1")))
	require.NotEmpty(t, btx.Sig)

	dat, err := btx.SigData([]byte("wallet-1"))
	require.NoError(t, err)
	signer, err := RecoverSigner(dat, btx.Sig)
	require.NoError(t, err)
	require.Equal(t, from, signer)

	// the wallet id is part of the signed payload
	dat, err = btx.SigData([]byte("wallet-2"))
	require.NoError(t, err)
	signer, err = RecoverSigner(dat, btx.Sig)
	if err == nil {
		require.NotEqual(t, from, signer)
	}
}

func TestUnmarshalWalletTx(t *testing.T) {
	key, err := crypto.GenerateKey()
	require.NoError(t, err)
	from := crypto.PubkeyToAddress(key.PublicKey)

	btx := &WalletTx{
		Version: WalletTxVersion1,
		Type:    WalletTxTypeApprove,
		Nonce:   1,
		From:    from,
		Tx:      &ApproveTx{RequestId: 7},
	}
	require.NoError(t, btx.Sign(key, []byte("wallet-1")))

	dat, err := MarshalWalletTx(btx)
	require.NoError(t, err)

	got, err := UnmarshalWalletTx(dat)
	require.NoError(t, err)
	require.Equal(t, WalletTxTypeApprove, got.Type)
	require.Equal(t, btx.Nonce, got.Nonce)
	require.Equal(t, from, got.From)
	payload, ok := got.Tx.(*ApproveTx)
	require.True(t, ok)
	require.Equal(t, uint64(7), payload.RequestId)

	// the decoded envelope verifies against the original signature
	sigData, err := got.SigData([]byte("wallet-1"))
	require.NoError(t, err)
	signer, err := RecoverSigner(sigData, got.Sig)
	require.NoError(t, err)
	require.Equal(t, from, signer)
}

func TestUnmarshalWalletTxDispatch(t *testing.T) {
	cases := []struct {
		tp      WalletTxType
		payload any
	}{
		{WalletTxTypeRequest, &RequestTx{Kind: types.KindAddOwner}},
		{WalletTxTypeRevoke, &RevokeTx{RequestId: 2}},
		{WalletTxTypeCancel, &CancelTx{RequestId: 3}},
		{WalletTxTypeExecute, &ExecuteTx{RequestId: 4}},
		{WalletTxTypeDeposit, &DepositTx{Amount: 5}},
		{WalletTxTypePayment, &PaymentTx{Topic: "rent", Amount: 6}},
	}
	for _, tc := range cases {
		btx := &WalletTx{Version: WalletTxVersion1, Type: tc.tp, Tx: tc.payload}
		dat, err := MarshalWalletTx(btx)
		require.NoError(t, err)
		got, err := UnmarshalWalletTx(dat)
		require.NoError(t, err)
		require.Equal(t, tc.tp, got.Type)
		require.Equal(t, tc.payload, got.Tx)
	}
}

func TestUnmarshalUnknownType(t *testing.T) {
	_, err := UnmarshalWalletTx([]byte(`{"type":99,"tx":{}}`))
	require.ErrorIs(t, err, ErrUnsupportedTxType)

	_, err = UnmarshalWalletTx([]byte(`not json`))
	require.ErrorIs(t, err, ErrUnsupportedTxType)
}
