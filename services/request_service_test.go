package services

import (
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/require"

	"github.com/dchirkov/eventum/dto"
	"github.com/dchirkov/eventum/models"
)

func eventRow(id, initiator uint, state models.EventState, limit int, moderation bool) *sqlmock.Rows {
	return sqlmock.NewRows([]string{
		"id", "title", "annotation", "description", "category_id", "initiator_id",
		"location_id", "created_on", "event_date", "published_on", "paid",
		"participant_limit", "request_moderation", "state",
	}).AddRow(
		id, "title", "annotation", "description", 1, initiator,
		1, time.Now(), time.Now().Add(48*time.Hour), nil, false,
		limit, moderation, string(state),
	)
}

func expectUserExists(mock sqlmock.Sqlmock, userID uint) {
	mock.ExpectQuery(regexp.QuoteMeta("SELECT count(*) FROM `users`")).
		WithArgs(userID).
		WillReturnRows(sqlmock.NewRows([]string{"count(*)"}).AddRow(1))
}

func TestCreateRequestLimitReached(t *testing.T) {
	db, mock := newMockDB(t)
	svc := NewRequestService(db)

	mock.ExpectBegin()
	expectUserExists(mock, 5)
	mock.ExpectQuery(regexp.QuoteMeta("SELECT * FROM `events`")).
		WillReturnRows(eventRow(7, 2, models.EventPublished, 2, true))
	// no duplicate request for the pair
	mock.ExpectQuery(regexp.QuoteMeta("SELECT count(*) FROM `participation_requests`")).
		WithArgs(7, 5, string(models.RequestCanceled)).
		WillReturnRows(sqlmock.NewRows([]string{"count(*)"}).AddRow(0))
	// both slots already confirmed
	mock.ExpectQuery(regexp.QuoteMeta("SELECT count(*) FROM `participation_requests`")).
		WithArgs(7, string(models.RequestConfirmed)).
		WillReturnRows(sqlmock.NewRows([]string{"count(*)"}).AddRow(2))
	mock.ExpectRollback()

	_, err := svc.CreateRequest(5, 7)
	require.True(t, models.IsConflict(err))
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestCreateRequestOwnEvent(t *testing.T) {
	db, mock := newMockDB(t)
	svc := NewRequestService(db)

	mock.ExpectBegin()
	expectUserExists(mock, 2)
	mock.ExpectQuery(regexp.QuoteMeta("SELECT * FROM `events`")).
		WillReturnRows(eventRow(7, 2, models.EventPublished, 0, true))
	mock.ExpectRollback()

	_, err := svc.CreateRequest(2, 7)
	require.True(t, models.IsConflict(err))
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestCreateRequestUnpublishedEvent(t *testing.T) {
	db, mock := newMockDB(t)
	svc := NewRequestService(db)

	mock.ExpectBegin()
	expectUserExists(mock, 5)
	mock.ExpectQuery(regexp.QuoteMeta("SELECT * FROM `events`")).
		WillReturnRows(eventRow(7, 2, models.EventPending, 0, true))
	mock.ExpectRollback()

	_, err := svc.CreateRequest(5, 7)
	require.True(t, models.IsConflict(err))
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestCreateRequestDuplicate(t *testing.T) {
	db, mock := newMockDB(t)
	svc := NewRequestService(db)

	mock.ExpectBegin()
	expectUserExists(mock, 5)
	mock.ExpectQuery(regexp.QuoteMeta("SELECT * FROM `events`")).
		WillReturnRows(eventRow(7, 2, models.EventPublished, 0, true))
	mock.ExpectQuery(regexp.QuoteMeta("SELECT count(*) FROM `participation_requests`")).
		WithArgs(7, 5, string(models.RequestCanceled)).
		WillReturnRows(sqlmock.NewRows([]string{"count(*)"}).AddRow(1))
	mock.ExpectRollback()

	_, err := svc.CreateRequest(5, 7)
	require.True(t, models.IsConflict(err))
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestUpdateRequestStatusForeignRequestMutatesNothing(t *testing.T) {
	db, mock := newMockDB(t)
	svc := NewRequestService(db)

	mock.ExpectBegin()
	expectUserExists(mock, 2)
	mock.ExpectQuery(regexp.QuoteMeta("SELECT * FROM `events`")).
		WillReturnRows(eventRow(7, 2, models.EventPublished, 10, true))
	mock.ExpectQuery(regexp.QuoteMeta("SELECT count(*) FROM `participation_requests`")).
		WithArgs(7, string(models.RequestConfirmed)).
		WillReturnRows(sqlmock.NewRows([]string{"count(*)"}).AddRow(0))
	// the targeted request belongs to another event; nothing is written
	mock.ExpectQuery(regexp.QuoteMeta("SELECT * FROM `participation_requests`")).
		WillReturnRows(sqlmock.NewRows([]string{"id", "event_id", "requester_id", "created", "status"}).
			AddRow(1, 8, 5, time.Now(), string(models.RequestPending)))
	mock.ExpectRollback()

	_, err := svc.UpdateRequestStatus(2, 7, dto.RequestStatusUpdateRequest{
		RequestIDs: []uint{1},
		Status:     models.RequestConfirmed,
	})
	require.True(t, models.IsValidation(err))
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestGetUserRequests(t *testing.T) {
	db, mock := newMockDB(t)
	svc := NewRequestService(db)

	created := time.Date(2026, 3, 1, 12, 0, 0, 0, time.Local)
	expectUserExists(mock, 5)
	mock.ExpectQuery(regexp.QuoteMeta("SELECT * FROM `participation_requests`")).
		WithArgs(5).
		WillReturnRows(sqlmock.NewRows([]string{"id", "event_id", "requester_id", "created", "status"}).
			AddRow(1, 7, 5, created, string(models.RequestConfirmed)).
			AddRow(2, 8, 5, created, string(models.RequestPending)))

	requests, err := svc.GetUserRequests(5)
	require.NoError(t, err)
	require.Equal(t, []dto.ParticipationRequestDto{
		{ID: 1, Created: dto.DateTime(created), Event: 7, Requester: 5, Status: models.RequestConfirmed},
		{ID: 2, Created: dto.DateTime(created), Event: 8, Requester: 5, Status: models.RequestPending},
	}, requests)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestCancelRequestNotOwner(t *testing.T) {
	db, mock := newMockDB(t)
	svc := NewRequestService(db)

	expectUserExists(mock, 5)
	mock.ExpectQuery(regexp.QuoteMeta("SELECT * FROM `participation_requests`")).
		WillReturnRows(sqlmock.NewRows([]string{"id", "event_id", "requester_id", "created", "status"}).
			AddRow(3, 7, 99, time.Now(), string(models.RequestPending)))

	_, err := svc.CancelRequest(5, 3)
	require.True(t, models.IsNotFound(err))
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestUpdateRequestStatusModerationOff(t *testing.T) {
	db, mock := newMockDB(t)
	svc := NewRequestService(db)

	mock.ExpectBegin()
	expectUserExists(mock, 2)
	mock.ExpectQuery(regexp.QuoteMeta("SELECT * FROM `events`")).
		WillReturnRows(eventRow(7, 2, models.EventPublished, 10, false))
	mock.ExpectRollback()

	_, err := svc.UpdateRequestStatus(2, 7, dto.RequestStatusUpdateRequest{
		RequestIDs: []uint{1},
		Status:     models.RequestConfirmed,
	})
	require.True(t, models.IsConflict(err))
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestUpdateRequestStatusNotInitiator(t *testing.T) {
	db, mock := newMockDB(t)
	svc := NewRequestService(db)

	mock.ExpectBegin()
	expectUserExists(mock, 5)
	mock.ExpectQuery(regexp.QuoteMeta("SELECT * FROM `events`")).
		WillReturnRows(eventRow(7, 2, models.EventPublished, 10, true))
	mock.ExpectRollback()

	_, err := svc.UpdateRequestStatus(5, 7, dto.RequestStatusUpdateRequest{
		RequestIDs: []uint{1},
		Status:     models.RequestConfirmed,
	})
	require.True(t, models.IsNotFound(err))
	require.NoError(t, mock.ExpectationsWereMet())
}
