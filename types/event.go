package types

import (
	"strconv"

	"github.com/ethereum/go-ethereum/common"
)

const (
	EventRequestedType = "requested"
	EventApprovedType  = "approved"
	EventRevokedType   = "revoked"
	EventCanceledType  = "canceled"
	EventExecutedType  = "executed"
	EventDepositType   = "deposit"
	EventPaymentType   = "payment"
)

// Event is the generic wire form published to off-chain observers after a
// successful commit. It is a side channel only; queries never depend on it.
type Event struct {
	Type       string           `json:"type"`
	Attributes []EventAttribute `json:"attributes"`
}

type EventAttribute struct {
	Key   string `json:"key"`
	Value string `json:"value"`
}

type EventRequested struct {
	Requester common.Address `json:"requester"`
	RequestId uint64         `json:"requestId"`
	Kind      RequestKind    `json:"kind"`
}

func EncodeEventRequested(event *EventRequested) Event {
	return Event{
		Type: EventRequestedType,
		Attributes: []EventAttribute{
			{Key: "requester", Value: event.Requester.Hex()},
			{Key: "request", Value: strconv.FormatUint(event.RequestId, 10)},
			{Key: "kind", Value: strconv.FormatUint(uint64(event.Kind), 10)},
		},
	}
}

func DecodeEventRequested(originEvent Event) *EventRequested {
	event := &EventRequested{}
	for _, v := range originEvent.Attributes {
		switch v.Key {
		case "requester":
			event.Requester = common.HexToAddress(v.Value)
		case "request":
			id, err := strconv.ParseUint(v.Value, 10, 64)
			if err != nil {
				return nil
			}
			event.RequestId = id
		case "kind":
			kind, err := strconv.ParseUint(v.Value, 10, 8)
			if err != nil {
				return nil
			}
			event.Kind = RequestKind(kind)
		}
	}
	return event
}

// EventApproved doubles as the revocation event; Weight is the vote weight
// added or removed.
type EventApproved struct {
	Owner     common.Address `json:"owner"`
	RequestId uint64         `json:"requestId"`
	Weight    uint64         `json:"weight"`
	Votes     uint64         `json:"votes"`
}

func encodeVoteEvent(tp string, event *EventApproved) Event {
	return Event{
		Type: tp,
		Attributes: []EventAttribute{
			{Key: "owner", Value: event.Owner.Hex()},
			{Key: "request", Value: strconv.FormatUint(event.RequestId, 10)},
			{Key: "weight", Value: strconv.FormatUint(event.Weight, 10)},
			{Key: "votes", Value: strconv.FormatUint(event.Votes, 10)},
		},
	}
}

func EncodeEventApproved(event *EventApproved) Event {
	return encodeVoteEvent(EventApprovedType, event)
}

func EncodeEventRevoked(event *EventApproved) Event {
	return encodeVoteEvent(EventRevokedType, event)
}

func DecodeVoteEvent(originEvent Event) *EventApproved {
	event := &EventApproved{}
	for _, v := range originEvent.Attributes {
		switch v.Key {
		case "owner":
			event.Owner = common.HexToAddress(v.Value)
		case "request":
			id, err := strconv.ParseUint(v.Value, 10, 64)
			if err != nil {
				return nil
			}
			event.RequestId = id
		case "weight":
			w, err := strconv.ParseUint(v.Value, 10, 64)
			if err != nil {
				return nil
			}
			event.Weight = w
		case "votes":
			votes, err := strconv.ParseUint(v.Value, 10, 64)
			if err != nil {
				return nil
			}
			event.Votes = votes
		}
	}
	return event
}

type EventCanceled struct {
	Requester common.Address `json:"requester"`
	RequestId uint64         `json:"requestId"`
}

func EncodeEventCanceled(event *EventCanceled) Event {
	return Event{
		Type: EventCanceledType,
		Attributes: []EventAttribute{
			{Key: "requester", Value: event.Requester.Hex()},
			{Key: "request", Value: strconv.FormatUint(event.RequestId, 10)},
		},
	}
}

func DecodeEventCanceled(originEvent Event) *EventCanceled {
	event := &EventCanceled{}
	for _, v := range originEvent.Attributes {
		switch v.Key {
		case "requester":
			event.Requester = common.HexToAddress(v.Value)
		case "request":
			id, err := strconv.ParseUint(v.Value, 10, 64)
			if err != nil {
				return nil
			}
			event.RequestId = id
		}
	}
	return event
}

type EventExecuted struct {
	Requester common.Address `json:"requester"`
	RequestId uint64         `json:"requestId"`
	Kind      RequestKind    `json:"kind"`
}

func EncodeEventExecuted(event *EventExecuted) Event {
	return Event{
		Type: EventExecutedType,
		Attributes: []EventAttribute{
			{Key: "requester", Value: event.Requester.Hex()},
			{Key: "request", Value: strconv.FormatUint(event.RequestId, 10)},
			{Key: "kind", Value: strconv.FormatUint(uint64(event.Kind), 10)},
		},
	}
}

func DecodeEventExecuted(originEvent Event) *EventExecuted {
	event := &EventExecuted{}
	for _, v := range originEvent.Attributes {
		switch v.Key {
		case "requester":
			event.Requester = common.HexToAddress(v.Value)
		case "request":
			id, err := strconv.ParseUint(v.Value, 10, 64)
			if err != nil {
				return nil
			}
			event.RequestId = id
		case "kind":
			kind, err := strconv.ParseUint(v.Value, 10, 8)
			if err != nil {
				return nil
			}
			event.Kind = RequestKind(kind)
		}
	}
	return event
}

type EventDeposit struct {
	Sender common.Address `json:"sender"`
	Amount uint64         `json:"amount"`
}

func EncodeEventDeposit(event *EventDeposit) Event {
	return Event{
		Type: EventDepositType,
		Attributes: []EventAttribute{
			{Key: "sender", Value: event.Sender.Hex()},
			{Key: "amount", Value: strconv.FormatUint(event.Amount, 10)},
		},
	}
}

func DecodeEventDeposit(originEvent Event) *EventDeposit {
	event := &EventDeposit{}
	for _, v := range originEvent.Attributes {
		switch v.Key {
		case "sender":
			event.Sender = common.HexToAddress(v.Value)
		case "amount":
			amount, err := strconv.ParseUint(v.Value, 10, 64)
			if err != nil {
				return nil
			}
			event.Amount = amount
		}
	}
	return event
}

type EventPayment struct {
	Sender      common.Address `json:"sender"`
	Target      string         `json:"target"`
	Topic       string         `json:"topic"`
	Description string         `json:"description"`
	Amount      uint64         `json:"amount"`
}

func EncodeEventPayment(event *EventPayment) Event {
	return Event{
		Type: EventPaymentType,
		Attributes: []EventAttribute{
			{Key: "sender", Value: event.Sender.Hex()},
			{Key: "target", Value: event.Target},
			{Key: "topic", Value: event.Topic},
			{Key: "description", Value: event.Description},
			{Key: "amount", Value: strconv.FormatUint(event.Amount, 10)},
		},
	}
}

func DecodeEventPayment(originEvent Event) *EventPayment {
	event := &EventPayment{}
	for _, v := range originEvent.Attributes {
		switch v.Key {
		case "sender":
			event.Sender = common.HexToAddress(v.Value)
		case "target":
			event.Target = v.Value
		case "topic":
			event.Topic = v.Value
		case "description":
			event.Description = v.Value
		case "amount":
			amount, err := strconv.ParseUint(v.Value, 10, 64)
			if err != nil {
				return nil
			}
			event.Amount = amount
		}
	}
	return event
}
