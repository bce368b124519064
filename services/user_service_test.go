package services

import (
	"regexp"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/require"

	"github.com/dchirkov/eventum/dto"
	"github.com/dchirkov/eventum/models"
)

func TestCreateUserDuplicateEmail(t *testing.T) {
	db, mock := newMockDB(t)
	svc := NewUserService(db)

	mock.ExpectQuery(regexp.QuoteMeta("SELECT count(*) FROM `users`")).
		WithArgs("ann@example.com").
		WillReturnRows(sqlmock.NewRows([]string{"count(*)"}).AddRow(1))

	_, err := svc.CreateUser(dto.NewUserRequest{Name: "Ann", Email: "ann@example.com"})
	require.True(t, models.IsConflict(err))
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestCreateUser(t *testing.T) {
	db, mock := newMockDB(t)
	svc := NewUserService(db)

	mock.ExpectQuery(regexp.QuoteMeta("SELECT count(*) FROM `users`")).
		WithArgs("ann@example.com").
		WillReturnRows(sqlmock.NewRows([]string{"count(*)"}).AddRow(0))
	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO `users`")).
		WithArgs("Ann", "ann@example.com").
		WillReturnResult(sqlmock.NewResult(12, 1))
	mock.ExpectCommit()

	user, err := svc.CreateUser(dto.NewUserRequest{Name: "Ann", Email: "ann@example.com"})
	require.NoError(t, err)
	require.Equal(t, dto.UserDto{ID: 12, Name: "Ann", Email: "ann@example.com"}, user)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestDeleteUserMissing(t *testing.T) {
	db, mock := newMockDB(t)
	svc := NewUserService(db)

	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta("DELETE FROM `users`")).
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectCommit()

	err := svc.DeleteUser(77)
	require.True(t, models.IsNotFound(err))
	require.NoError(t, mock.ExpectationsWereMet())
}
