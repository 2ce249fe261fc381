package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/origon-auth/internal/domain"
	"github.com/jhoicas/origon-auth/internal/domain/repository"
)

var _ repository.TokenStore = (*TokenRepo)(nil)

// Tablas de tokens por variante de principal.
const (
	UserTokensTable = "user_tokens"
	HostTokensTable = "host_tokens"
)

// getOrCreateAttempts reintentos si un revoke concurrente borra el token entre el INSERT y el SELECT.
const getOrCreateAttempts = 3

// TokenRepo token store sobre una tabla (key, principal_id UNIQUE, created).
type TokenRepo struct {
	db    DB
	tx    *TxRunner
	table string
	now   func() time.Time
}

// NewTokenRepository construye el store para la tabla indicada.
func NewTokenRepository(conn Conn, table string) *TokenRepo {
	return &TokenRepo{
		db:    conn,
		tx:    NewTxRunner(conn),
		table: table,
		now:   func() time.Time { return time.Now().UTC() },
	}
}

// GetOrCreate inserta candidate salvo que el principal ya tenga token y devuelve el vigente.
// El constraint UNIQUE(principal_id) resuelve las carreras entre logins concurrentes.
func (r *TokenRepo) GetOrCreate(ctx context.Context, principalID, candidate string) (string, error) {
	ins, insArgs, err := psql.Insert(r.table).Columns("key", "principal_id", "created").
		Values(candidate, principalID, r.now()).
		Suffix("ON CONFLICT (principal_id) DO NOTHING").ToSql()
	if err != nil {
		return "", fmt.Errorf("build insert %s: %w", r.table, err)
	}
	sel, selArgs, err := psql.Select("key").From(r.table).Where(squirrel.Eq{"principal_id": principalID}).ToSql()
	if err != nil {
		return "", fmt.Errorf("build select %s: %w", r.table, err)
	}

	var token string
	for attempt := 0; attempt < getOrCreateAttempts; attempt++ {
		err = r.tx.Run(ctx, func(q DB) error {
			if _, err := q.Exec(ctx, ins, insArgs...); err != nil {
				return fmt.Errorf("insert %s: %w", r.table, err)
			}
			return q.QueryRow(ctx, sel, selArgs...).Scan(&token)
		})
		if err == nil {
			return token, nil
		}
		if !errors.Is(err, pgx.ErrNoRows) && !errors.Is(err, sql.ErrNoRows) {
			return "", err
		}
	}
	return "", fmt.Errorf("get-or-create %s: token revocado durante la emisión", r.table)
}

// Delete elimina un token; domain.ErrNotFound si no existía.
func (r *TokenRepo) Delete(ctx context.Context, token string) error {
	query, args, err := psql.Delete(r.table).Where(squirrel.Eq{"key": token}).ToSql()
	if err != nil {
		return fmt.Errorf("build delete %s: %w", r.table, err)
	}
	tag, err := r.db.Exec(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("delete %s: %w", r.table, err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// DeleteAllFor elimina todos los tokens del principal.
func (r *TokenRepo) DeleteAllFor(ctx context.Context, principalID string) (int64, error) {
	query, args, err := psql.Delete(r.table).Where(squirrel.Eq{"principal_id": principalID}).ToSql()
	if err != nil {
		return 0, fmt.Errorf("build delete %s: %w", r.table, err)
	}
	tag, err := r.db.Exec(ctx, query, args...)
	if err != nil {
		return 0, fmt.Errorf("delete %s: %w", r.table, err)
	}
	return tag.RowsAffected(), nil
}

// Owner devuelve el principal dueño del token.
func (r *TokenRepo) Owner(ctx context.Context, token string) (string, error) {
	query, args, err := psql.Select("principal_id").From(r.table).Where(squirrel.Eq{"key": token}).ToSql()
	if err != nil {
		return "", fmt.Errorf("build select %s: %w", r.table, err)
	}
	var id string
	if err := r.db.QueryRow(ctx, query, args...).Scan(&id); err != nil {
		if errors.Is(err, pgx.ErrNoRows) || errors.Is(err, sql.ErrNoRows) {
			return "", domain.ErrNotFound
		}
		return "", fmt.Errorf("select %s: %w", r.table, err)
	}
	return id, nil
}
