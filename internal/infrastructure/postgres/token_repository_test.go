package postgres

import (
	"context"
	"testing"

	pgxmock "github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/origon-auth/internal/domain"
)

func TestTokenRepo_GetOrCreate_Nuevo(t *testing.T) {
	mock := newMock(t)
	repo := NewTokenRepository(mock, UserTokensTable)

	mock.ExpectBegin()
	mock.ExpectExec(`INSERT INTO user_tokens .* ON CONFLICT \(principal_id\) DO NOTHING`).
		WithArgs("cand", "user-1", pgxmock.AnyArg()).
		WillReturnResult(pgxmock.NewResult("INSERT", 1))
	mock.ExpectQuery(`SELECT key FROM user_tokens WHERE principal_id = \$1`).
		WithArgs("user-1").
		WillReturnRows(pgxmock.NewRows([]string{"key"}).AddRow("cand"))
	mock.ExpectCommit()

	tok, err := repo.GetOrCreate(context.Background(), "user-1", "cand")
	require.NoError(t, err)
	assert.Equal(t, "cand", tok)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestTokenRepo_GetOrCreate_Existente(t *testing.T) {
	mock := newMock(t)
	repo := NewTokenRepository(mock, HostTokensTable)

	mock.ExpectBegin()
	mock.ExpectExec(`INSERT INTO host_tokens`).
		WithArgs("cand", "host-1", pgxmock.AnyArg()).
		WillReturnResult(pgxmock.NewResult("INSERT", 0))
	mock.ExpectQuery(`SELECT key FROM host_tokens`).
		WithArgs("host-1").
		WillReturnRows(pgxmock.NewRows([]string{"key"}).AddRow("previo"))
	mock.ExpectCommit()

	tok, err := repo.GetOrCreate(context.Background(), "host-1", "cand")
	require.NoError(t, err)
	assert.Equal(t, "previo", tok, "se reutiliza el token vivo")
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestTokenRepo_Delete(t *testing.T) {
	mock := newMock(t)
	repo := NewTokenRepository(mock, UserTokensTable)

	mock.ExpectExec(`DELETE FROM user_tokens WHERE key = \$1`).WithArgs("tok").
		WillReturnResult(pgxmock.NewResult("DELETE", 1))
	mock.ExpectExec(`DELETE FROM user_tokens WHERE key = \$1`).WithArgs("tok").
		WillReturnResult(pgxmock.NewResult("DELETE", 0))

	require.NoError(t, repo.Delete(context.Background(), "tok"))
	assert.ErrorIs(t, repo.Delete(context.Background(), "tok"), domain.ErrNotFound)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestTokenRepo_DeleteAllFor(t *testing.T) {
	mock := newMock(t)
	repo := NewTokenRepository(mock, UserTokensTable)
	mock.ExpectExec(`DELETE FROM user_tokens WHERE principal_id = \$1`).WithArgs("user-1").
		WillReturnResult(pgxmock.NewResult("DELETE", 1))

	n, err := repo.DeleteAllFor(context.Background(), "user-1")
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)
}

func TestTokenRepo_Owner_NotFound(t *testing.T) {
	mock := newMock(t)
	repo := NewTokenRepository(mock, UserTokensTable)
	mock.ExpectQuery(`SELECT principal_id FROM user_tokens`).WithArgs("nope").
		WillReturnRows(pgxmock.NewRows([]string{"principal_id"}))

	_, err := repo.Owner(context.Background(), "nope")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}
