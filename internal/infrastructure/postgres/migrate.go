package postgres

import (
	"context"
	"database/sql"
	"fmt"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/pressly/goose/v3"

	"github.com/jhoicas/origon-auth/internal/infrastructure/postgres/migrations"
	"github.com/jhoicas/origon-auth/pkg/config"
)

// gooseUp y gooseDown permiten sustituir goose en tests.
var (
	gooseUp   = goose.UpContext
	gooseDown = goose.DownContext
)

// OpenSQL abre una conexión database/sql (driver pgx) para goose.
func OpenSQL(cfg config.DBConfig) (*sql.DB, error) {
	db, err := sql.Open("pgx", resolvedDSN(cfg))
	if err != nil {
		return nil, fmt.Errorf("abrir conexión sql: %w", err)
	}
	return db, nil
}

func prepareGoose() error {
	goose.SetBaseFS(migrations.FS)
	if err := goose.SetDialect("pgx"); err != nil {
		return fmt.Errorf("dialecto goose: %w", err)
	}
	return nil
}

// Migrate aplica todas las migraciones embebidas pendientes.
func Migrate(ctx context.Context, db *sql.DB) error {
	if err := prepareGoose(); err != nil {
		return err
	}
	if err := gooseUp(ctx, db, "."); err != nil {
		return fmt.Errorf("migraciones up: %w", err)
	}
	return nil
}

// MigrateDown revierte la última migración aplicada.
func MigrateDown(ctx context.Context, db *sql.DB) error {
	if err := prepareGoose(); err != nil {
		return err
	}
	if err := gooseDown(ctx, db, "."); err != nil {
		return fmt.Errorf("migraciones down: %w", err)
	}
	return nil
}
