package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jhoicas/origon-auth/internal/infrastructure/postgres"
)

func newMigrateCmd(c *cli) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "Migraciones de base de datos",
	}
	cmd.AddCommand(&cobra.Command{
		Use:   "up",
		Short: "Aplicar todas las migraciones pendientes",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return c.runMigration(cmd, true)
		},
	})
	cmd.AddCommand(&cobra.Command{
		Use:   "down",
		Short: "Revertir la última migración",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return c.runMigration(cmd, false)
		},
	})
	return cmd
}

func (c *cli) runMigration(cmd *cobra.Command, up bool) error {
	cfg, err := c.loadConfig()
	if err != nil {
		return err
	}
	db, err := postgres.OpenSQL(cfg.DB)
	if err != nil {
		return err
	}
	defer db.Close()

	cmd.Println("Ejecutando migraciones...")
	if up {
		err = postgres.Migrate(cmd.Context(), db)
	} else {
		err = postgres.MigrateDown(cmd.Context(), db)
	}
	if err != nil {
		return fmt.Errorf("migrar: %w", err)
	}
	cmd.Println("Migraciones completadas")
	return nil
}
