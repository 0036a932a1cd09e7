package tx

import (
	"errors"

	"github.com/quorumwallet/vaultd/types"
)

type WalletTxType uint8

const (
	WalletTxTypeUnknown WalletTxType = 0
	WalletTxTypeRequest WalletTxType = 1
	WalletTxTypeApprove WalletTxType = 2
	WalletTxTypeRevoke  WalletTxType = 3
	WalletTxTypeCancel  WalletTxType = 4
	WalletTxTypeExecute WalletTxType = 5
	WalletTxTypeDeposit WalletTxType = 6
	WalletTxTypePayment WalletTxType = 7
)

const (
	WalletTxVersion0 uint8 = 0
	WalletTxVersion1 uint8 = 1
)

var (
	ErrInvalidTx         = errors.New("invalid tx")
	ErrUnsupportedTxType = errors.New("unsupported tx type")
	ErrUnmatchedTxType   = errors.New("unmatched tx type")
)

// RequestTx opens a new consensus request. CurrentOwner/NewOwner stay zero
// valued for kinds they do not apply to.
type RequestTx struct {
	Kind             types.RequestKind `json:"kind"`
	CurrentOwner     types.Owner       `json:"currentOwner"`
	NewOwner         types.Owner       `json:"newOwner"`
	WithdrawalAmount uint64            `json:"withdrawalAmount"`
}

type ApproveTx struct {
	RequestId uint64 `json:"requestId"`
}

type RevokeTx struct {
	RequestId uint64 `json:"requestId"`
}

type CancelTx struct {
	RequestId uint64 `json:"requestId"`
}

type ExecuteTx struct {
	RequestId uint64 `json:"requestId"`
}

type DepositTx struct {
	Amount uint64 `json:"amount"`
}

type PaymentTx struct {
	Target      string `json:"target"`
	Topic       string `json:"topic"`
	Description string `json:"description"`
	Amount      uint64 `json:"amount"`
}
