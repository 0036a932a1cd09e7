package state

import "errors"

var (
	ErrNotFound = errors.New("not found")
)

// Every failure below is a rejected operation surfaced to the caller; none
// leaves partial state behind.
var (
	ErrNotOwner            = errors.New("caller is not an owner")
	ErrNotRequester        = errors.New("caller is not the requester")
	ErrRequestNotFound     = errors.New("request noexists")
	ErrAlreadyExecuted     = errors.New("request already executed")
	ErrAlreadyCanceled     = errors.New("request already canceled")
	ErrDuplicateVote       = errors.New("owner already voted")
	ErrNoVoteToRevoke      = errors.New("no vote to revoke")
	ErrQuorumUnreached     = errors.New("votes below consensus requirement")
	ErrQuorumInfeasible    = errors.New("owner set can not reach consensus")
	ErrInsufficientBalance = errors.New("insufficient wallet balance")
	ErrInvalidOwner        = errors.New("invalid owner")
	ErrInvalidKind         = errors.New("invalid request kind")
	ErrZeroAmount          = errors.New("zero amount")
	ErrAlreadyInitialized  = errors.New("wallet already initialized")
	ErrTxNonceInvalid      = errors.New("nonce invalid")
	ErrTxSigInvalid        = errors.New("signature invalid")
)
