package state

import (
	"encoding/json"
	"fmt"

	"github.com/ethereum/go-ethereum/common"
	"github.com/syndtr/goleveldb/leveldb"

	"github.com/quorumwallet/vaultd/types"
)

func (s *State) getRequest(id uint64) (r *types.Request, err error) {
	if id == 0 || id > s.header.RequestCount {
		return nil, fmt.Errorf("%w: id %d", ErrRequestNotFound, id)
	}
	key := fmt.Sprintf(KeyRequestBody, id)
	val, err := s.db.Get([]byte(key))
	if err != nil {
		if err != leveldb.ErrNotFound {
			return nil, err
		}
	}
	if val == nil {
		return nil, fmt.Errorf("%w: id %d", ErrRequestNotFound, id)
	}
	r = new(types.Request)
	err = json.Unmarshal(val, r)
	if err != nil {
		return nil, err
	}
	return
}

func (s *State) setRequest(r *types.Request) (err error) {
	key := fmt.Sprintf(KeyRequestBody, r.Id)
	val, err := json.Marshal(r)
	if err != nil {
		return err
	}
	_, err = s.db.Set([]byte(key), val)
	return
}

// checkPending distinguishes the two terminal states so callers can tell
// which one blocked them.
func checkPending(r *types.Request) error {
	switch r.Status {
	case types.StatusExecuted:
		return fmt.Errorf("%w: id %d", ErrAlreadyExecuted, r.Id)
	case types.StatusCanceled:
		return fmt.Errorf("%w: id %d", ErrAlreadyCanceled, r.Id)
	}
	return nil
}

// Request appends a new pending request. The requester's own vote weight is
// counted immediately; execution is always a separate call.
func (s *State) Request(caller common.Address, kind types.RequestKind, currentOwner, newOwner types.Owner, withdrawalAmount uint64) (event *types.EventRequested, err error) {
	owner, err := s.FindOwner(caller)
	if err != nil {
		return nil, err
	}
	if owner == nil {
		return nil, ErrNotOwner
	}
	if !kind.Valid() {
		return nil, fmt.Errorf("%w: %d", ErrInvalidKind, kind)
	}
	if kind == types.KindWithdraw {
		if withdrawalAmount == 0 {
			return nil, fmt.Errorf("%w: withdrawal requires a positive amount", ErrZeroAmount)
		}
	} else {
		withdrawalAmount = 0
	}
	s.logger.Debug("apply request", "requester", caller.Hex(), "kind", kind.String())

	s.header.RequestCount += 1
	r := &types.Request{
		Id:               s.header.RequestCount,
		Requester:        caller,
		Kind:             kind,
		CurrentOwner:     currentOwner,
		NewOwner:         newOwner,
		WithdrawalAmount: withdrawalAmount,
		Votes:            uint64(owner.Vote),
		Voters:           []common.Address{caller},
		Status:           types.StatusPending,
	}
	if err = s.setRequest(r); err != nil {
		return nil, err
	}
	event = &types.EventRequested{
		Requester: caller,
		RequestId: r.Id,
		Kind:      kind,
	}
	return
}

// Approve adds the caller's vote weight. Purely additive bookkeeping; the
// quorum check happens at execute time.
func (s *State) Approve(caller common.Address, id uint64) (event *types.EventApproved, err error) {
	r, err := s.getRequest(id)
	if err != nil {
		return nil, err
	}
	if err = checkPending(r); err != nil {
		return nil, err
	}
	owner, err := s.FindOwner(caller)
	if err != nil {
		return nil, err
	}
	if owner == nil {
		return nil, ErrNotOwner
	}
	if r.HasVoted(caller) {
		return nil, fmt.Errorf("%w: %s on request %d", ErrDuplicateVote, caller.Hex(), id)
	}
	s.logger.Debug("apply approve", "owner", caller.Hex(), "request", id)

	r.Votes += uint64(owner.Vote)
	r.AddVoter(caller)
	if err = s.setRequest(r); err != nil {
		return nil, err
	}
	event = &types.EventApproved{
		Owner:     caller,
		RequestId: id,
		Weight:    uint64(owner.Vote),
		Votes:     r.Votes,
	}
	return
}

// Revoke withdraws a previously cast approval. Dropping below quorum does
// not cancel the request; it only blocks execute until re-approved.
func (s *State) Revoke(caller common.Address, id uint64) (event *types.EventApproved, err error) {
	r, err := s.getRequest(id)
	if err != nil {
		return nil, err
	}
	if err = checkPending(r); err != nil {
		return nil, err
	}
	owner, err := s.FindOwner(caller)
	if err != nil {
		return nil, err
	}
	if owner == nil {
		return nil, ErrNotOwner
	}
	if !r.HasVoted(caller) {
		return nil, fmt.Errorf("%w: %s on request %d", ErrNoVoteToRevoke, caller.Hex(), id)
	}
	s.logger.Debug("apply revoke", "owner", caller.Hex(), "request", id)

	r.Votes -= uint64(owner.Vote)
	r.RemoveVoter(caller)
	if err = s.setRequest(r); err != nil {
		return nil, err
	}
	event = &types.EventApproved{
		Owner:     caller,
		RequestId: id,
		Weight:    uint64(owner.Vote),
		Votes:     r.Votes,
	}
	return
}

// Cancel terminates a pending request. Requester-only; no vote side effect.
func (s *State) Cancel(caller common.Address, id uint64) (event *types.EventCanceled, err error) {
	r, err := s.getRequest(id)
	if err != nil {
		return nil, err
	}
	if err = checkPending(r); err != nil {
		return nil, err
	}
	if r.Requester != caller {
		return nil, fmt.Errorf("%w: request %d belongs to %s", ErrNotRequester, id, r.Requester.Hex())
	}
	s.logger.Debug("apply cancel", "requester", caller.Hex(), "request", id)

	r.Status = types.StatusCanceled
	if err = s.setRequest(r); err != nil {
		return nil, err
	}
	event = &types.EventCanceled{
		Requester: caller,
		RequestId: id,
	}
	return
}

// Execute flips a pending request to executed and applies its effect in the
// same commit. Quorum is evaluated against the registry's live totals, and
// an owner-set mutation that would leave total votes below the requirement
// rejects the whole call.
func (s *State) Execute(caller common.Address, id uint64) (event *types.EventExecuted, err error) {
	r, err := s.getRequest(id)
	if err != nil {
		return nil, err
	}
	if err = checkPending(r); err != nil {
		return nil, err
	}
	if r.Requester != caller {
		return nil, fmt.Errorf("%w: request %d belongs to %s", ErrNotRequester, id, r.Requester.Hex())
	}
	required := s.RequiredVotesForConsensus()
	if r.Votes < required {
		return nil, fmt.Errorf("%w: votes %d required %d", ErrQuorumUnreached, r.Votes, required)
	}
	s.logger.Debug("apply execute", "requester", caller.Hex(), "request", id, "kind", r.Kind.String())

	switch r.Kind {
	case types.KindWithdraw:
		if s.header.Balance < r.WithdrawalAmount {
			return nil, fmt.Errorf("%w: balance %d withdrawal %d",
				ErrInsufficientBalance, s.header.Balance, r.WithdrawalAmount)
		}
		s.header.Balance -= r.WithdrawalAmount
	case types.KindAddOwner:
		if err = s.addOwner(r.NewOwner); err != nil {
			return nil, err
		}
		if err = s.checkConsensusFeasible(); err != nil {
			return nil, err
		}
	case types.KindRemoveOwner:
		if err = s.removeOwner(r.CurrentOwner); err != nil {
			return nil, err
		}
		if err = s.checkConsensusFeasible(); err != nil {
			return nil, err
		}
	case types.KindChangeOwner:
		if err = s.changeOwner(r.CurrentOwner, r.NewOwner); err != nil {
			return nil, err
		}
		if err = s.checkConsensusFeasible(); err != nil {
			return nil, err
		}
	default:
		return nil, fmt.Errorf("%w: %d", ErrInvalidKind, r.Kind)
	}

	r.Status = types.StatusExecuted
	if err = s.setRequest(r); err != nil {
		return nil, err
	}
	event = &types.EventExecuted{
		Requester: caller,
		RequestId: id,
		Kind:      r.Kind,
	}
	return
}

// Deposit records an unconditional inbound transfer, independent of the
// request lifecycle.
func (s *State) Deposit(sender common.Address, amount uint64) (event *types.EventDeposit, err error) {
	s.logger.Debug("apply deposit", "sender", sender.Hex(), "amount", amount)
	s.header.Balance += amount
	event = &types.EventDeposit{
		Sender: sender,
		Amount: amount,
	}
	return
}

// MakePayment records an operational payment earmarked with a target, topic
// and description. Not consensus-gated; zero value is rejected.
func (s *State) MakePayment(sender common.Address, target, topic, description string, amount uint64) (event *types.EventPayment, err error) {
	if amount == 0 {
		return nil, fmt.Errorf("%w: payment requires a positive amount", ErrZeroAmount)
	}
	s.logger.Debug("apply payment", "sender", sender.Hex(), "target", target, "amount", amount)
	s.header.Balance += amount
	event = &types.EventPayment{
		Sender:      sender,
		Target:      target,
		Topic:       topic,
		Description: description,
		Amount:      amount,
	}
	return
}
