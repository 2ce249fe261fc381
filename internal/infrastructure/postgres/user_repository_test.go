package postgres

import (
	"context"
	"testing"
	"time"

	"github.com/jackc/pgx/v5/pgconn"
	pgxmock "github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/origon-auth/internal/domain"
	"github.com/jhoicas/origon-auth/internal/domain/entity"
)

func newMock(t *testing.T) pgxmock.PgxPoolIface {
	t.Helper()
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	t.Cleanup(mock.Close)
	return mock
}

func TestUserRepo_Create(t *testing.T) {
	mock := newMock(t)
	repo := NewUserRepository(mock)
	fixed := time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC)
	repo.now = func() time.Time { return fixed }

	draft := &entity.User{Account: entity.Account{
		Username: "ana", Email: "ana@example.com", PasswordHash: "$2a$hash", FullName: "Ana Pérez", IsActive: true,
	}}

	mock.ExpectExec(`INSERT INTO users`).
		WithArgs(pgxmock.AnyArg(), "ana", "ana@example.com", "$2a$hash", "Ana Pérez", "",
			true, false, false, fixed).
		WillReturnResult(pgxmock.NewResult("INSERT", 1))

	created, err := repo.Create(context.Background(), draft)
	require.NoError(t, err)
	assert.NotEmpty(t, created.ID)
	assert.Equal(t, fixed, created.DateJoined)
	assert.Empty(t, draft.ID, "el borrador no se muta")
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestUserRepo_Create_DuplicateConstraints(t *testing.T) {
	cases := map[string]error{
		"users_email_key":    domain.ErrDuplicateEmail,
		"users_username_key": domain.ErrDuplicateUsername,
	}
	for constraint, want := range cases {
		t.Run(constraint, func(t *testing.T) {
			mock := newMock(t)
			repo := NewUserRepository(mock)
			mock.ExpectExec(`INSERT INTO users`).
				WillReturnError(&pgconn.PgError{Code: "23505", ConstraintName: constraint})

			_, err := repo.Create(context.Background(), &entity.User{Account: entity.Account{Username: "ana", Email: "ana@example.com"}})
			assert.ErrorIs(t, err, want)
		})
	}
}

func TestUserRepo_FindByEmail(t *testing.T) {
	mock := newMock(t)
	repo := NewUserRepository(mock)
	joined := time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC)

	rows := pgxmock.NewRows(userColumns).AddRow(
		"11111111-1111-1111-1111-111111111111", "ana", "ana@example.com", "$2a$hash", "Ana", "555",
		true, false, false, joined, nil,
	)
	mock.ExpectQuery(`SELECT .* FROM users WHERE email = \$1`).WithArgs("ana@example.com").WillReturnRows(rows)

	u, err := repo.FindByEmail(context.Background(), "ana@example.com")
	require.NoError(t, err)
	assert.Equal(t, "ana", u.Username)
	assert.Equal(t, joined, u.DateJoined)
	assert.Nil(t, u.LastLogin)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestUserRepo_FindByEmail_NotFound(t *testing.T) {
	mock := newMock(t)
	repo := NewUserRepository(mock)
	mock.ExpectQuery(`FROM users`).WithArgs("nadie@example.com").WillReturnRows(pgxmock.NewRows(userColumns))

	_, err := repo.FindByEmail(context.Background(), "nadie@example.com")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestUserRepo_Update_IgnoraCamposNoEditables(t *testing.T) {
	mock := newMock(t)
	repo := NewUserRepository(mock)
	joined := time.Now().UTC()

	rows := pgxmock.NewRows(userColumns).AddRow(
		"id-1", "ana", "ana@example.com", "$2a$hash", "Ana María", "555",
		true, false, false, joined, joined,
	)
	mock.ExpectQuery(`UPDATE users SET full_name = \$1 WHERE id = \$2 RETURNING`).
		WithArgs("Ana María", "id-1").
		WillReturnRows(rows)

	u, err := repo.Update(context.Background(), "id-1", map[string]string{
		"full_name": "Ana María",
		"is_staff":  "true",
		"email":     "otro@example.com",
	})
	require.NoError(t, err)
	assert.Equal(t, "Ana María", u.FullName)
	require.NotNil(t, u.LastLogin)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestUserRepo_SetPasswordHash_NotFound(t *testing.T) {
	mock := newMock(t)
	repo := NewUserRepository(mock)
	mock.ExpectExec(`UPDATE users SET password_hash`).
		WithArgs("$2a$new", "missing").
		WillReturnResult(pgxmock.NewResult("UPDATE", 0))

	err := repo.SetPasswordHash(context.Background(), "missing", "$2a$new")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestUserRepo_IsActive(t *testing.T) {
	mock := newMock(t)
	repo := NewUserRepository(mock)
	mock.ExpectQuery(`SELECT is_active FROM users`).WithArgs("id-1").
		WillReturnRows(pgxmock.NewRows([]string{"is_active"}).AddRow(false))

	active, err := repo.IsActive(context.Background(), "id-1")
	require.NoError(t, err)
	assert.False(t, active)
}
