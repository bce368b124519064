package services

import (
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/require"

	"github.com/dchirkov/eventum/dto"
)

func TestRecordHit(t *testing.T) {
	db, mock := newMockDB(t)
	svc := NewStatsService(db)

	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO `hits`")).
		WithArgs("eventum-main", "/events/1", "10.0.0.1", sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectCommit()

	err := svc.RecordHit(dto.EndpointHit{
		App: "eventum-main",
		URI: "/events/1",
		IP:  "10.0.0.1",
	})
	require.NoError(t, err)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestGetStatsCountsRows(t *testing.T) {
	db, mock := newMockDB(t)
	svc := NewStatsService(db)

	start := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(2026, 2, 1, 0, 0, 0, 0, time.UTC)

	mock.ExpectQuery(regexp.QuoteMeta("SELECT app, uri, COUNT(*) AS hits FROM `hits`")).
		WithArgs(start, end).
		WillReturnRows(sqlmock.NewRows([]string{"app", "uri", "hits"}).
			AddRow("eventum-main", "/events/2", 9).
			AddRow("eventum-main", "/events/1", 4))

	stats, err := svc.GetStats(start, end, nil, false)
	require.NoError(t, err)
	require.Equal(t, []dto.ViewStats{
		{App: "eventum-main", URI: "/events/2", Hits: 9},
		{App: "eventum-main", URI: "/events/1", Hits: 4},
	}, stats)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestGetStatsUniqueWithURIFilter(t *testing.T) {
	db, mock := newMockDB(t)
	svc := NewStatsService(db)

	start := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(2026, 2, 1, 0, 0, 0, 0, time.UTC)

	mock.ExpectQuery(regexp.QuoteMeta("SELECT app, uri, COUNT(DISTINCT ip) AS hits FROM `hits`")).
		WithArgs(start, end, "/events/1", "/events/2").
		WillReturnRows(sqlmock.NewRows([]string{"app", "uri", "hits"}).
			AddRow("eventum-main", "/events/1", 2))

	stats, err := svc.GetStats(start, end, []string{"/events/1", "/events/2"}, true)
	require.NoError(t, err)
	require.Len(t, stats, 1)
	require.Equal(t, int64(2), stats[0].Hits)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestGetStatsEmptyRangeReturnsEmptySlice(t *testing.T) {
	db, mock := newMockDB(t)
	svc := NewStatsService(db)

	// Inverted range is not an error, it just matches nothing.
	start := time.Date(2026, 2, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)

	mock.ExpectQuery("SELECT app, uri").
		WithArgs(start, end).
		WillReturnRows(sqlmock.NewRows([]string{"app", "uri", "hits"}))

	stats, err := svc.GetStats(start, end, nil, false)
	require.NoError(t, err)
	require.NotNil(t, stats)
	require.Empty(t, stats)
	require.NoError(t, mock.ExpectationsWereMet())
}
