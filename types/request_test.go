package types

import (
	"testing"

	"github.com/ethereum/go-ethereum/common"
	"github.com/stretchr/testify/require"
)

func TestRequestKindValid(t *testing.T) {
	require.True(t, KindWithdraw.Valid())
	require.True(t, KindAddOwner.Valid())
	require.True(t, KindRemoveOwner.Valid())
	require.True(t, KindChangeOwner.Valid())
	require.False(t, KindCancel.Valid())
	require.False(t, RequestKind(9).Valid())
}

func TestRequestStatusTerminal(t *testing.T) {
	require.False(t, StatusPending.Terminal())
	require.True(t, StatusExecuted.Terminal())
	require.True(t, StatusCanceled.Terminal())
}

func TestVoterSet(t *testing.T) {
	a := common.HexToAddress("0x00000000000000000000000000000000000000a1")
	b := common.HexToAddress("0x00000000000000000000000000000000000000b2")

	r := &Request{Voters: []common.Address{a}}
	require.True(t, r.HasVoted(a))
	require.False(t, r.HasVoted(b))

	r.AddVoter(b)
	require.True(t, r.HasVoted(b))

	r.RemoveVoter(a)
	require.False(t, r.HasVoted(a))
	require.Equal(t, []common.Address{b}, r.Voters)

	// removing an absent voter is a no-op
	r.RemoveVoter(a)
	require.Equal(t, []common.Address{b}, r.Voters)
}
