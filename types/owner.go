package types

import (
	"github.com/ethereum/go-ethereum/common"
)

// VoteLevel is the weight an owner contributes toward consensus.
// Zero means the identity is not an owner.
type VoteLevel uint8

const (
	VoteNone     VoteLevel = 0
	VoteLevelOne VoteLevel = 1
	VoteLevelTwo VoteLevel = 2

	MaxVoteLevel = VoteLevelTwo
)

func (v VoteLevel) Valid() bool {
	return v == VoteLevelOne || v == VoteLevelTwo
}

// Owner is a snapshot of an owner identity and its vote level. Requests
// carry Owner values, not live registry references, so that later owner-set
// changes do not alter a pending request's recorded intent.
type Owner struct {
	Address common.Address `json:"address"`
	Vote    VoteLevel      `json:"vote"`
}

func (o Owner) IsZero() bool {
	return o.Address == (common.Address{}) && o.Vote == VoteNone
}

func (o Owner) Equal(other Owner) bool {
	return o.Address == other.Address && o.Vote == other.Vote
}
