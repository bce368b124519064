package services

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/dchirkov/eventum/models"
)

func pendingRequests(n int) []models.ParticipationRequest {
	out := make([]models.ParticipationRequest, 0, n)
	for i := 0; i < n; i++ {
		out = append(out, models.ParticipationRequest{
			ID:     uint(i + 1),
			Status: models.RequestPending,
		})
	}
	return out
}

func TestAllocateAllFit(t *testing.T) {
	toConfirm, toReject := Allocate(pendingRequests(3), 2, 10)

	require.Len(t, toConfirm, 3)
	require.Empty(t, toReject)
	for _, r := range toConfirm {
		require.Equal(t, models.RequestConfirmed, r.Status)
	}
}

func TestAllocateOverflowRejected(t *testing.T) {
	// 5 pending, 7 of 10 slots taken: first 3 confirm, last 2 reject.
	toConfirm, toReject := Allocate(pendingRequests(5), 7, 10)

	require.Len(t, toConfirm, 3)
	require.Len(t, toReject, 2)
	require.Equal(t, []uint{1, 2, 3}, ids(toConfirm))
	require.Equal(t, []uint{4, 5}, ids(toReject))
	for _, r := range toReject {
		require.Equal(t, models.RequestRejected, r.Status)
	}
}

func TestAllocatePreservesInputOrder(t *testing.T) {
	in := []models.ParticipationRequest{
		{ID: 42, Status: models.RequestPending},
		{ID: 7, Status: models.RequestPending},
		{ID: 99, Status: models.RequestPending},
	}

	toConfirm, toReject := Allocate(in, 0, 2)

	require.Equal(t, []uint{42, 7}, ids(toConfirm))
	require.Equal(t, []uint{99}, ids(toReject))
}

func TestAllocateNoCapacityRejectsAll(t *testing.T) {
	toConfirm, toReject := Allocate(pendingRequests(4), 10, 10)

	require.Empty(t, toConfirm)
	require.Len(t, toReject, 4)
}

func TestAllocateNeverExceedsLimit(t *testing.T) {
	for confirmed := int64(0); confirmed <= 10; confirmed++ {
		for n := 0; n <= 15; n++ {
			toConfirm, toReject := Allocate(pendingRequests(n), confirmed, 10)
			require.LessOrEqual(t, confirmed+int64(len(toConfirm)), int64(10))
			require.Len(t, toReject, n-len(toConfirm))
		}
	}
}

func TestRejectAll(t *testing.T) {
	out := RejectAll(pendingRequests(3))

	require.Equal(t, []uint{1, 2, 3}, ids(out))
	for _, r := range out {
		require.Equal(t, models.RequestRejected, r.Status)
	}
}

func TestInitialStatus(t *testing.T) {
	cases := []struct {
		name       string
		moderation bool
		limit      int
		want       models.RequestStatus
	}{
		{"moderated limited", true, 5, models.RequestPending},
		{"moderated unlimited", true, 0, models.RequestConfirmed},
		{"unmoderated limited", false, 5, models.RequestConfirmed},
		{"unmoderated unlimited", false, 0, models.RequestConfirmed},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			event := &models.Event{
				RequestModeration: tc.moderation,
				ParticipantLimit:  tc.limit,
			}
			require.Equal(t, tc.want, InitialStatus(event))
		})
	}
}

func ids(rs []models.ParticipationRequest) []uint {
	out := make([]uint, 0, len(rs))
	for _, r := range rs {
		out = append(out, r.ID)
	}
	return out
}
