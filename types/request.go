package types

import (
	"github.com/ethereum/go-ethereum/common"
)

type RequestKind uint8

const (
	KindWithdraw    RequestKind = 0
	KindAddOwner    RequestKind = 1
	KindRemoveOwner RequestKind = 2
	KindChangeOwner RequestKind = 3
	KindCancel      RequestKind = 4
)

// Valid reports whether the kind may be used to create a request. Cancel is
// a lifecycle transition, never a creatable request kind.
func (k RequestKind) Valid() bool {
	switch k {
	case KindWithdraw, KindAddOwner, KindRemoveOwner, KindChangeOwner:
		return true
	}
	return false
}

func (k RequestKind) String() string {
	switch k {
	case KindWithdraw:
		return "withdraw"
	case KindAddOwner:
		return "add_owner"
	case KindRemoveOwner:
		return "remove_owner"
	case KindChangeOwner:
		return "change_owner"
	case KindCancel:
		return "cancel"
	}
	return "unknown"
}

type RequestStatus uint8

const (
	StatusPending  RequestStatus = 1
	StatusExecuted RequestStatus = 2
	StatusCanceled RequestStatus = 3
)

func (s RequestStatus) Terminal() bool {
	return s == StatusExecuted || s == StatusCanceled
}

// Request is one lifecycle instance in the append-only ledger. Only votes,
// voter set and status mutate after creation.
type Request struct {
	Id               uint64           `json:"id"`
	Requester        common.Address   `json:"requester"`
	Kind             RequestKind      `json:"kind"`
	CurrentOwner     Owner            `json:"current_owner"`
	NewOwner         Owner            `json:"new_owner"`
	WithdrawalAmount uint64           `json:"withdrawal_amount"`
	Votes            uint64           `json:"votes"`
	Voters           []common.Address `json:"voters"`
	Status           RequestStatus    `json:"status"`
}

func (r *Request) HasVoted(addr common.Address) bool {
	for _, v := range r.Voters {
		if v == addr {
			return true
		}
	}
	return false
}

func (r *Request) AddVoter(addr common.Address) {
	r.Voters = append(r.Voters, addr)
}

func (r *Request) RemoveVoter(addr common.Address) {
	for i, v := range r.Voters {
		if v == addr {
			r.Voters = append(r.Voters[:i], r.Voters[i+1:]...)
			return
		}
	}
}
