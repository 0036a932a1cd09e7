package tx

import (
	"crypto/ecdsa"
	"encoding/json"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/ethereum/go-ethereum/crypto"
)

// WalletTx is the signed envelope every mutating wallet operation arrives
// in. From must match the address recovered from Sig over SigData(walletID).
type WalletTx struct {
	Version uint8          `json:"version"`
	Type    WalletTxType   `json:"type"`
	Nonce   uint64         `json:"nonce"`
	From    common.Address `json:"from"`
	Tx      any            `json:"tx"`
	Sig     hexutil.Bytes  `json:"sig"`
}

type walletTxTmpl[Tx any] struct {
	Version uint8          `json:"version"`
	Type    WalletTxType   `json:"type"`
	Nonce   uint64         `json:"nonce"`
	From    common.Address `json:"from"`
	Tx      Tx             `json:"tx"`
	Sig     hexutil.Bytes  `json:"sig"`
}

// SigData returns the canonical byte sequence covered by the signature. The
// wallet id takes the signature's slot so envelopes are bound to exactly one
// wallet.
func (btx *WalletTx) SigData(ext []byte) (dat []byte, err error) {
	ntx := *btx
	ntx.Sig = ext
	dat, err = json.Marshal(ntx)
	return
}

// Sign fills Sig with a secp256k1 signature over SigData(walletID).
func (btx *WalletTx) Sign(key *ecdsa.PrivateKey, walletID []byte) (err error) {
	btx.Sig = nil
	dat, err := btx.SigData(walletID)
	if err != nil {
		return err
	}
	sig, err := crypto.Sign(crypto.Keccak256(dat), key)
	if err != nil {
		return err
	}
	btx.Sig = sig
	return nil
}

// RecoverSigner returns the address whose key produced sig over dat.
func RecoverSigner(dat []byte, sig []byte) (addr common.Address, err error) {
	pub, err := crypto.SigToPub(crypto.Keccak256(dat), sig)
	if err != nil {
		return common.Address{}, err
	}
	return crypto.PubkeyToAddress(*pub), nil
}

func parseWalletTxType(dat []byte) WalletTxType {
	var btx struct {
		Type WalletTxType `json:"type"`
	}
	err := json.Unmarshal(dat, &btx)
	if err != nil {
		return WalletTxTypeUnknown
	}
	return btx.Type
}

func unmarshalWalletTx[Tx any](dat []byte) (btx *WalletTx, err error) {
	var txt walletTxTmpl[Tx]
	err = json.Unmarshal(dat, &txt)
	if err != nil {
		return
	}
	btx = new(WalletTx)
	btx.Version = txt.Version
	btx.Type = txt.Type
	btx.Nonce = txt.Nonce
	btx.From = txt.From
	btx.Tx = &txt.Tx
	btx.Sig = txt.Sig
	return
}

func UnmarshalWalletTx(dat []byte) (btx *WalletTx, err error) {
	tp := parseWalletTxType(dat)
	switch tp {
	case WalletTxTypeRequest:
		return unmarshalWalletTx[RequestTx](dat)
	case WalletTxTypeApprove:
		return unmarshalWalletTx[ApproveTx](dat)
	case WalletTxTypeRevoke:
		return unmarshalWalletTx[RevokeTx](dat)
	case WalletTxTypeCancel:
		return unmarshalWalletTx[CancelTx](dat)
	case WalletTxTypeExecute:
		return unmarshalWalletTx[ExecuteTx](dat)
	case WalletTxTypeDeposit:
		return unmarshalWalletTx[DepositTx](dat)
	case WalletTxTypePayment:
		return unmarshalWalletTx[PaymentTx](dat)
	default:
		err = ErrUnsupportedTxType
	}
	return
}

func MarshalWalletTx(btx *WalletTx) (dat []byte, err error) {
	return json.Marshal(btx)
}
