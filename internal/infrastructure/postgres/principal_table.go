package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/origon-auth/internal/domain"
)

// principalTable operaciones comunes a users y hosts. El tipo concreto aporta las
// columnas, el scan y la lista de columnas editables.
type principalTable[P any] struct {
	db       DB
	name     string
	columns  []string
	editable map[string]struct{}
	scan     func(row pgx.Row) (P, error)
}

func (t *principalTable[P]) findBy(ctx context.Context, column string, value any) (P, error) {
	var zero P
	query, args, err := psql.Select(t.columns...).From(t.name).Where(squirrel.Eq{column: value}).Limit(1).ToSql()
	if err != nil {
		return zero, fmt.Errorf("build select %s: %w", t.name, err)
	}
	p, err := t.scan(t.db.QueryRow(ctx, query, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) || errors.Is(err, sql.ErrNoRows) {
			return zero, domain.ErrNotFound
		}
		return zero, fmt.Errorf("get %s by %s: %w", t.name, column, err)
	}
	return p, nil
}

// FindByEmail busca por email canónico.
func (t *principalTable[P]) FindByEmail(ctx context.Context, email string) (P, error) {
	return t.findBy(ctx, "email", email)
}

// FindByID busca por ID.
func (t *principalTable[P]) FindByID(ctx context.Context, id string) (P, error) {
	return t.findBy(ctx, "id", id)
}

// Update aplica solo columnas editables y devuelve la fila resultante.
func (t *principalTable[P]) Update(ctx context.Context, id string, fields map[string]string) (P, error) {
	var zero P
	set := make(map[string]any, len(fields))
	for k, v := range fields {
		if _, ok := t.editable[k]; ok {
			set[k] = v
		}
	}
	if len(set) == 0 {
		return t.FindByID(ctx, id)
	}
	query, args, err := psql.Update(t.name).SetMap(set).Where(squirrel.Eq{"id": id}).
		Suffix("RETURNING " + strings.Join(t.columns, ", ")).ToSql()
	if err != nil {
		return zero, fmt.Errorf("build update %s: %w", t.name, err)
	}
	p, err := t.scan(t.db.QueryRow(ctx, query, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) || errors.Is(err, sql.ErrNoRows) {
			return zero, domain.ErrNotFound
		}
		return zero, fmt.Errorf("update %s: %w", t.name, err)
	}
	return p, nil
}

func (t *principalTable[P]) setColumns(ctx context.Context, id string, set map[string]any) error {
	query, args, err := psql.Update(t.name).SetMap(set).Where(squirrel.Eq{"id": id}).ToSql()
	if err != nil {
		return fmt.Errorf("build update %s: %w", t.name, err)
	}
	tag, err := t.db.Exec(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("update %s: %w", t.name, err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// SetPasswordHash reemplaza el hash de contraseña.
func (t *principalTable[P]) SetPasswordHash(ctx context.Context, id, hash string) error {
	return t.setColumns(ctx, id, map[string]any{"password_hash": hash})
}

// TouchLastLogin registra el último login.
func (t *principalTable[P]) TouchLastLogin(ctx context.Context, id string, at time.Time) error {
	return t.setColumns(ctx, id, map[string]any{"last_login": at})
}

// SetActive activa o desactiva la cuenta.
func (t *principalTable[P]) SetActive(ctx context.Context, id string, active bool) error {
	return t.setColumns(ctx, id, map[string]any{"is_active": active})
}

// IsActive lee solo is_active.
func (t *principalTable[P]) IsActive(ctx context.Context, id string) (bool, error) {
	query, args, err := psql.Select("is_active").From(t.name).Where(squirrel.Eq{"id": id}).ToSql()
	if err != nil {
		return false, fmt.Errorf("build select %s: %w", t.name, err)
	}
	var active bool
	if err := t.db.QueryRow(ctx, query, args...).Scan(&active); err != nil {
		if errors.Is(err, pgx.ErrNoRows) || errors.Is(err, sql.ErrNoRows) {
			return false, domain.ErrNotFound
		}
		return false, fmt.Errorf("is_active %s: %w", t.name, err)
	}
	return active, nil
}

func (t *principalTable[P]) insert(ctx context.Context, columns []string, values ...any) error {
	query, args, err := psql.Insert(t.name).Columns(columns...).Values(values...).ToSql()
	if err != nil {
		return fmt.Errorf("build insert %s: %w", t.name, err)
	}
	if _, err := t.db.Exec(ctx, query, args...); err != nil {
		if dup := uniqueViolation(err); dup != nil {
			return dup
		}
		return fmt.Errorf("insert %s: %w", t.name, err)
	}
	return nil
}

func nullTime(t sql.NullTime) *time.Time {
	if !t.Valid {
		return nil
	}
	v := t.Time
	return &v
}

func editableSet(fields []string) map[string]struct{} {
	m := make(map[string]struct{}, len(fields))
	for _, f := range fields {
		m[f] = struct{}{}
	}
	return m
}
