package state

import (
	"encoding/json"
	"fmt"

	"github.com/ethereum/go-ethereum/common"

	"github.com/quorumwallet/vaultd/types"
)

// Query layer: pure filters over the request ledger. Results are always in
// ascending id order and stable across calls absent new mutations.

func (s *State) GetRequest(id uint64) (*types.Request, error) {
	return s.getRequest(id)
}

func (s *State) LastRequestId() uint64 {
	return s.header.RequestCount
}

func (s *State) IsOwnerVoted(addr common.Address, id uint64) (bool, error) {
	r, err := s.getRequest(id)
	if err != nil {
		return false, err
	}
	return r.HasVoted(addr), nil
}

func (s *State) filterRequestIds(match func(*types.Request) bool, offset, limit uint64) (ids []uint64, err error) {
	ids = make([]uint64, 0)
	if limit == 0 {
		return ids, nil
	}
	var matched uint64
	for id := uint64(1); id <= s.header.RequestCount; id++ {
		r, err := s.getRequest(id)
		if err != nil {
			return nil, err
		}
		if !match(r) {
			continue
		}
		matched += 1
		if matched <= offset {
			continue
		}
		ids = append(ids, id)
		if uint64(len(ids)) >= limit {
			break
		}
	}
	return ids, nil
}

// RequestIdsByExecution returns executed ids when executed is true,
// otherwise every id that is not executed (pending and canceled both count).
func (s *State) RequestIdsByExecution(executed bool, offset, limit uint64) ([]uint64, error) {
	return s.filterRequestIds(func(r *types.Request) bool {
		return (r.Status == types.StatusExecuted) == executed
	}, offset, limit)
}

func (s *State) RequestIdsByOwner(owner common.Address, executed bool, offset, limit uint64) ([]uint64, error) {
	return s.filterRequestIds(func(r *types.Request) bool {
		return r.Requester == owner && (r.Status == types.StatusExecuted) == executed
	}, offset, limit)
}

func (s *State) RequestIdsByType(kind types.RequestKind, executed bool, offset, limit uint64) ([]uint64, error) {
	return s.filterRequestIds(func(r *types.Request) bool {
		return r.Kind == kind && (r.Status == types.StatusExecuted) == executed
	}, offset, limit)
}

// Owners lists the registered owner set by iterating the owner key space.
func (s *State) Owners() (owners []types.Owner, err error) {
	start := []byte("o")
	end := PrefixEndBytes(start)
	it, err := s.db.Iterator(start, end, true)
	if err != nil {
		return nil, err
	}
	defer it.Close()
	for ; it.Valid(); it.Next() {
		var o types.Owner
		if err = json.Unmarshal(it.Value(), &o); err != nil {
			return nil, fmt.Errorf("corrupt owner record: %w", err)
		}
		owners = append(owners, o)
	}
	return owners, nil
}
