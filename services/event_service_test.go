package services

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/dchirkov/eventum/dto"
	"github.com/dchirkov/eventum/models"
)

// statsStub is a hand-rolled StatsProvider double.
type statsStub struct {
	hits    []string
	stats   []dto.ViewStats
	lastURI []string
}

func (s *statsStub) SaveHit(uri, ip string) {
	s.hits = append(s.hits, uri)
}

func (s *statsStub) GetStats(start, end time.Time, uris []string, unique bool) []dto.ViewStats {
	s.lastURI = uris
	return s.stats
}

func TestExtractEventID(t *testing.T) {
	cases := []struct {
		uri  string
		want uint
		ok   bool
	}{
		{"/events/42", 42, true},
		{"/events/1", 1, true},
		{"/events/", 0, false},
		{"/events/abc", 0, false},
		{"events", 0, false},
		{"", 0, false},
	}

	for _, tc := range cases {
		id, ok := ExtractEventID(tc.uri)
		require.Equal(t, tc.ok, ok, tc.uri)
		require.Equal(t, tc.want, id, tc.uri)
	}
}

func TestViewCountsMapsStatsToEvents(t *testing.T) {
	stub := &statsStub{stats: []dto.ViewStats{
		{App: "eventum-main", URI: "/events/7", Hits: 12},
		{App: "eventum-main", URI: "/events/8", Hits: 3},
		{App: "eventum-main", URI: "/events/broken", Hits: 99},
	}}
	svc := &EventService{stats: stub}

	now := time.Now()
	events := []models.Event{
		{ID: 7, CreatedOn: now.Add(-time.Hour), PublishedOn: &now},
		{ID: 8, CreatedOn: now.Add(-2 * time.Hour)},
	}

	views := svc.viewCounts(events)
	require.Equal(t, int64(12), views[7])
	require.Equal(t, int64(3), views[8])
	require.Len(t, views, 2)
	require.ElementsMatch(t, []string{"/events/7", "/events/8"}, stub.lastURI)
}

func TestViewCountsEmptyOnStatsOutage(t *testing.T) {
	svc := &EventService{stats: &statsStub{stats: []dto.ViewStats{}}}

	views := svc.viewCounts([]models.Event{{ID: 7}})
	require.Empty(t, views)
}

func TestApplyPatchRejectsSoonDate(t *testing.T) {
	svc := &EventService{}
	event := &models.Event{EventDate: time.Now().Add(72 * time.Hour)}

	soon := dto.DateTime(time.Now().Add(30 * time.Minute))
	err := svc.applyPatch(event, nil, nil, nil, nil, &soon, nil, nil, nil, nil, 2*time.Hour)
	require.True(t, models.IsValidation(err))
}

func TestApplyPatchRejectsNegativeLimit(t *testing.T) {
	svc := &EventService{}
	event := &models.Event{}

	limit := -1
	err := svc.applyPatch(event, nil, nil, nil, nil, nil, nil, nil, &limit, nil, time.Hour)
	require.True(t, models.IsValidation(err))
}

func TestApplyPatchWritesEachField(t *testing.T) {
	svc := &EventService{}
	event := &models.Event{
		Paid:              false,
		ParticipantLimit:  10,
		RequestModeration: true,
	}

	paid := true
	limit := 25
	moderation := false
	err := svc.applyPatch(event, nil, nil, nil, nil, nil, nil, &paid, &limit, &moderation, time.Hour)
	require.NoError(t, err)
	require.True(t, event.Paid)
	require.Equal(t, 25, event.ParticipantLimit)
	require.False(t, event.RequestModeration)
}

func TestPaginate(t *testing.T) {
	items := []int{1, 2, 3, 4, 5}

	require.Equal(t, []int{1, 2, 3}, paginate(items, 0, 3))
	require.Equal(t, []int{4, 5}, paginate(items, 3, 10))
	require.Empty(t, paginate(items, 5, 3))
	require.Empty(t, paginate(items, 100, 3))
}
