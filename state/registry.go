package state

import (
	"encoding/json"
	"fmt"

	"github.com/ethereum/go-ethereum/common"
	"github.com/syndtr/goleveldb/leveldb"

	"github.com/quorumwallet/vaultd/types"
)

// Owner registry. Mutations happen only through the execute transition of
// the consensus engine; everything else is read-only.

func (s *State) FindOwner(addr common.Address) (owner *types.Owner, err error) {
	key := fmt.Sprintf(KeyOwnerBody, addr)
	val, err := s.db.Get([]byte(key))
	if err != nil {
		if err != leveldb.ErrNotFound {
			return nil, err
		}
	}
	if val == nil {
		return nil, nil
	}
	owner = new(types.Owner)
	err = json.Unmarshal(val, owner)
	if err != nil {
		return nil, err
	}
	return
}

func (s *State) IsOwner(addr common.Address) (bool, error) {
	o, err := s.FindOwner(addr)
	if err != nil {
		return false, err
	}
	return o != nil, nil
}

func (s *State) VoteOf(addr common.Address) (types.VoteLevel, error) {
	o, err := s.FindOwner(addr)
	if err != nil {
		return types.VoteNone, err
	}
	if o == nil {
		return types.VoteNone, nil
	}
	return o.Vote, nil
}

func (s *State) TotalVotes() uint64 {
	return s.header.TotalVotes
}

func (s *State) OwnerCounter(level types.VoteLevel) uint64 {
	if level > types.MaxVoteLevel {
		return 0
	}
	return s.header.OwnerCounter[level]
}

// requiredVotes recomputes the consensus requirement from live totals. The
// value is never cached anywhere.
func requiredVotes(totalVotes, ratio, minLimit uint64) uint64 {
	required := (totalVotes*ratio + 99) / 100
	if required < minLimit {
		required = minLimit
	}
	return required
}

func (s *State) RequiredVotesForConsensus() uint64 {
	return requiredVotes(s.header.TotalVotes, s.header.ConsensusRatio, s.header.MinLimitForConsensus)
}

func (s *State) checkConsensusFeasible() error {
	required := s.RequiredVotesForConsensus()
	if s.header.TotalVotes < required {
		return fmt.Errorf("%w: total votes %d below required %d",
			ErrQuorumInfeasible, s.header.TotalVotes, required)
	}
	return nil
}

func (s *State) setOwner(owner types.Owner) (err error) {
	key := fmt.Sprintf(KeyOwnerBody, owner.Address)
	val, err := json.Marshal(owner)
	if err != nil {
		return err
	}
	_, err = s.db.Set([]byte(key), val)
	return
}

func (s *State) deleteOwner(addr common.Address) (err error) {
	key := fmt.Sprintf(KeyOwnerBody, addr)
	_, _, err = s.db.Remove([]byte(key))
	return
}

func (s *State) addOwner(owner types.Owner) (err error) {
	if owner.Address == (common.Address{}) {
		return fmt.Errorf("%w: zero address", ErrInvalidOwner)
	}
	if !owner.Vote.Valid() {
		return fmt.Errorf("%w: vote level %d", ErrInvalidOwner, owner.Vote)
	}
	if s.inspector != nil && s.inspector.IsContract(owner.Address) {
		return fmt.Errorf("%w: %s is a contract account", ErrInvalidOwner, owner.Address.Hex())
	}
	existing, err := s.FindOwner(owner.Address)
	if err != nil {
		return err
	}
	if existing != nil {
		return fmt.Errorf("%w: %s already registered", ErrInvalidOwner, owner.Address.Hex())
	}
	if err = s.setOwner(owner); err != nil {
		return err
	}
	s.header.OwnerCounter[owner.Vote] += 1
	s.header.TotalVotes += uint64(owner.Vote)
	return nil
}

// removeOwner validates the snapshot against the live registry before
// zeroing the record; a stale snapshot rejects the execution.
func (s *State) removeOwner(owner types.Owner) (err error) {
	existing, err := s.FindOwner(owner.Address)
	if err != nil {
		return err
	}
	if existing == nil {
		return fmt.Errorf("%w: %s is not an owner", ErrInvalidOwner, owner.Address.Hex())
	}
	if existing.Vote != owner.Vote {
		return fmt.Errorf("%w: %s vote level is %d not %d",
			ErrInvalidOwner, owner.Address.Hex(), existing.Vote, owner.Vote)
	}
	if err = s.deleteOwner(owner.Address); err != nil {
		return err
	}
	s.header.OwnerCounter[existing.Vote] -= 1
	s.header.TotalVotes -= uint64(existing.Vote)
	return nil
}

// changeOwner is a combined remove-then-add in one step; address, vote
// level, or both may change.
func (s *State) changeOwner(currentOwner, newOwner types.Owner) (err error) {
	if err = s.removeOwner(currentOwner); err != nil {
		return err
	}
	return s.addOwner(newOwner)
}
