package types

import (
	"testing"

	"github.com/ethereum/go-ethereum/common"
	"github.com/stretchr/testify/require"
)

func TestEventRequestedRoundTrip(t *testing.T) {
	ev := &EventRequested{
		Requester: common.HexToAddress("0x00000000000000000000000000000000000000a1"),
		RequestId: 12,
		Kind:      KindChangeOwner,
	}
	encoded := EncodeEventRequested(ev)
	require.Equal(t, EventRequestedType, encoded.Type)

	got := DecodeEventRequested(encoded)
	require.NotNil(t, got)
	require.Equal(t, ev, got)
}

func TestVoteEventRoundTrip(t *testing.T) {
	ev := &EventApproved{
		Owner:     common.HexToAddress("0x00000000000000000000000000000000000000b2"),
		RequestId: 3,
		Weight:    2,
		Votes:     5,
	}

	approved := EncodeEventApproved(ev)
	require.Equal(t, EventApprovedType, approved.Type)
	require.Equal(t, ev, DecodeVoteEvent(approved))

	revoked := EncodeEventRevoked(ev)
	require.Equal(t, EventRevokedType, revoked.Type)
	require.Equal(t, ev, DecodeVoteEvent(revoked))
}

func TestEventPaymentRoundTrip(t *testing.T) {
	ev := &EventPayment{
		Sender:      common.HexToAddress("0x00000000000000000000000000000000000000c3"),
		Target:      "vendor",
		Topic:       "hosting",
		Description: "march invoice",
		Amount:      150,
	}
	got := DecodeEventPayment(EncodeEventPayment(ev))
	require.Equal(t, ev, got)
}

func TestDecodeEventBadAttribute(t *testing.T) {
	encoded := EncodeEventRequested(&EventRequested{RequestId: 1})
	for i := range encoded.Attributes {
		if encoded.Attributes[i].Key == "request" {
			encoded.Attributes[i].Value = "not-a-number"
		}
	}
	require.Nil(t, DecodeEventRequested(encoded))
}
