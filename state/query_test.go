package state

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/quorumwallet/vaultd/types"
)

// builds a ledger of four requests: 1 executed withdraw by A, 2 pending
// add-owner by B, 3 canceled withdraw by A, 4 pending withdraw by B
func newQueryFixture(t *testing.T) *WalletDB {
	t.Helper()
	db := newTestDB(t, defaultGenesis(), nil)
	mustApply(t, db, addrF, func(st *State) error {
		_, err := st.Deposit(addrF, 100)
		return err
	})

	id1 := openRequest(t, db, addrA, types.KindWithdraw, types.Owner{}, types.Owner{}, 10)
	approveRequest(t, db, addrB, id1)
	mustApply(t, db, addrA, func(st *State) error {
		_, err := st.Execute(addrA, id1)
		return err
	})

	openRequest(t, db, addrB, types.KindAddOwner, types.Owner{},
		types.Owner{Address: addrF, Vote: types.VoteLevelOne}, 0)

	id3 := openRequest(t, db, addrA, types.KindWithdraw, types.Owner{}, types.Owner{}, 20)
	mustApply(t, db, addrA, func(st *State) error {
		_, err := st.Cancel(addrA, id3)
		return err
	})

	openRequest(t, db, addrB, types.KindWithdraw, types.Owner{}, types.Owner{}, 30)
	return db
}

func TestRequestIdFilters(t *testing.T) {
	db := newQueryFixture(t)

	require.NoError(t, db.View(func(st *State) error {
		require.Equal(t, uint64(4), st.LastRequestId())

		ids, err := st.RequestIdsByExecution(true, 0, 10)
		require.NoError(t, err)
		require.Equal(t, []uint64{1}, ids)

		// pending and canceled both count as not executed
		ids, err = st.RequestIdsByExecution(false, 0, 10)
		require.NoError(t, err)
		require.Equal(t, []uint64{2, 3, 4}, ids)

		ids, err = st.RequestIdsByOwner(addrA, false, 0, 10)
		require.NoError(t, err)
		require.Equal(t, []uint64{3}, ids)

		ids, err = st.RequestIdsByOwner(addrB, true, 0, 10)
		require.NoError(t, err)
		require.Empty(t, ids)

		ids, err = st.RequestIdsByType(types.KindWithdraw, false, 0, 10)
		require.NoError(t, err)
		require.Equal(t, []uint64{3, 4}, ids)

		ids, err = st.RequestIdsByType(types.KindAddOwner, false, 0, 10)
		require.NoError(t, err)
		require.Equal(t, []uint64{2}, ids)
		return nil
	}))
}

func TestRequestIdPagination(t *testing.T) {
	db := newQueryFixture(t)

	require.NoError(t, db.View(func(st *State) error {
		ids, err := st.RequestIdsByExecution(false, 0, 2)
		require.NoError(t, err)
		require.Equal(t, []uint64{2, 3}, ids)

		ids, err = st.RequestIdsByExecution(false, 2, 2)
		require.NoError(t, err)
		require.Equal(t, []uint64{4}, ids)

		ids, err = st.RequestIdsByExecution(false, 10, 2)
		require.NoError(t, err)
		require.Empty(t, ids)

		ids, err = st.RequestIdsByExecution(false, 0, 0)
		require.NoError(t, err)
		require.Empty(t, ids)
		return nil
	}))
}

func TestIsOwnerVoted(t *testing.T) {
	db := newQueryFixture(t)

	require.NoError(t, db.View(func(st *State) error {
		voted, err := st.IsOwnerVoted(addrA, 1)
		require.NoError(t, err)
		require.True(t, voted)

		voted, err = st.IsOwnerVoted(addrC, 1)
		require.NoError(t, err)
		require.False(t, voted)

		_, err = st.IsOwnerVoted(addrA, 99)
		require.ErrorIs(t, err, ErrRequestNotFound)
		return nil
	}))
}

func TestGetRequestBounds(t *testing.T) {
	db := newQueryFixture(t)

	require.NoError(t, db.View(func(st *State) error {
		_, err := st.GetRequest(0)
		require.ErrorIs(t, err, ErrRequestNotFound)
		_, err = st.GetRequest(5)
		require.ErrorIs(t, err, ErrRequestNotFound)
		r, err := st.GetRequest(4)
		require.NoError(t, err)
		require.Equal(t, uint64(30), r.WithdrawalAmount)
		return nil
	}))
}
