package services

import (
	"context"
	"regexp"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dkoroteev/herocards-backend/pkg/utils"
)

func TestCreateUser(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectQuery(regexp.QuoteMeta(`INSERT INTO users (email, password_hash) VALUES ($1, $2) RETURNING id`)).
		WithArgs("a@x.com", sqlmock.AnyArg()).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(1))

	user, err := CreateUser(context.Background(), db, "a@x.com", "pw1")
	require.NoError(t, err)
	assert.Equal(t, int64(1), user.ID)
	assert.Equal(t, "a@x.com", user.Email)
	assert.NotEqual(t, "pw1", user.PasswordHash)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCreateUserDuplicateEmail(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectQuery(regexp.QuoteMeta(`INSERT INTO users`)).
		WithArgs("a@x.com", sqlmock.AnyArg()).
		WillReturnError(&pq.Error{Code: "23505"})

	user, err := CreateUser(context.Background(), db, "a@x.com", "pw1")
	assert.ErrorIs(t, err, ErrEmailTaken)
	assert.Nil(t, user)
}

func TestGetUserByEmailNotFound(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectQuery(regexp.QuoteMeta(`SELECT id, email, password_hash FROM users WHERE email = $1`)).
		WithArgs("nobody@x.com").
		WillReturnRows(sqlmock.NewRows([]string{"id", "email", "password_hash"}))

	user, err := GetUserByEmail(context.Background(), db, "nobody@x.com")
	assert.ErrorIs(t, err, ErrUserNotFound)
	assert.Nil(t, user)
}

func TestVerifyCredentials(t *testing.T) {
	hash, err := utils.HashPassword("pw1")
	require.NoError(t, err)

	userRows := func() *sqlmock.Rows {
		return sqlmock.NewRows([]string{"id", "email", "password_hash"}).
			AddRow(1, "a@x.com", hash)
	}

	t.Run("correct password", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()

		mock.ExpectQuery(regexp.QuoteMeta(`SELECT id, email, password_hash FROM users WHERE email = $1`)).
			WithArgs("a@x.com").
			WillReturnRows(userRows())

		user, err := VerifyCredentials(context.Background(), db, "a@x.com", "pw1")
		require.NoError(t, err)
		assert.Equal(t, int64(1), user.ID)
	})

	t.Run("wrong password", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()

		mock.ExpectQuery(regexp.QuoteMeta(`SELECT id, email, password_hash FROM users WHERE email = $1`)).
			WithArgs("a@x.com").
			WillReturnRows(userRows())

		_, err = VerifyCredentials(context.Background(), db, "a@x.com", "wrong")
		assert.ErrorIs(t, err, ErrInvalidCredentials)
	})

	t.Run("unknown email yields the same error", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()

		mock.ExpectQuery(regexp.QuoteMeta(`SELECT id, email, password_hash FROM users WHERE email = $1`)).
			WithArgs("nobody@x.com").
			WillReturnRows(sqlmock.NewRows([]string{"id", "email", "password_hash"}))

		_, err = VerifyCredentials(context.Background(), db, "nobody@x.com", "pw1")
		assert.ErrorIs(t, err, ErrInvalidCredentials)
	})
}

func TestListUsersPagination(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectQuery(regexp.QuoteMeta(`SELECT id, email FROM users ORDER BY id OFFSET $1 LIMIT $2`)).
		WithArgs(10, 10).
		WillReturnRows(sqlmock.NewRows([]string{"id", "email"}).
			AddRow(11, "u11@x.com").
			AddRow(12, "u12@x.com"))
	mock.ExpectQuery(regexp.QuoteMeta(`SELECT COUNT(*) FROM users`)).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(25))

	page, err := ListUsers(context.Background(), db, 10, 10)
	require.NoError(t, err)
	assert.Len(t, page.Users, 2)
	assert.Equal(t, 25, page.Total)
	assert.Equal(t, 2, page.Page)
	assert.Equal(t, 3, page.TotalPages)
}

func TestPaginate(t *testing.T) {
	tests := []struct {
		total, skip, limit  int
		wantPage, wantPages int
	}{
		{25, 10, 10, 2, 3},
		{25, 0, 10, 1, 3},
		{0, 0, 10, 1, 0},
		{10, 0, 10, 1, 1},
		{11, 10, 10, 2, 2},
	}
	for _, tt := range tests {
		page, pages := paginate(tt.total, tt.skip, tt.limit)
		assert.Equal(t, tt.wantPage, page, "total=%d skip=%d", tt.total, tt.skip)
		assert.Equal(t, tt.wantPages, pages, "total=%d skip=%d", tt.total, tt.skip)
	}
}

func TestClampPage(t *testing.T) {
	skip, limit := clampPage(-5, 0)
	assert.Equal(t, 0, skip)
	assert.Equal(t, 10, limit)

	_, limit = clampPage(0, 1000)
	assert.Equal(t, 100, limit)
}
