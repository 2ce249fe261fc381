package main

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/jhoicas/origon-auth/internal/bootstrap"
	"github.com/jhoicas/origon-auth/pkg/config"
	"github.com/jhoicas/origon-auth/pkg/logger"
)

// cli dependencias de los comandos; los tests sustituyen build por un contenedor en memoria.
type cli struct {
	loadConfig func() (*config.Config, error)
	build      func(ctx context.Context, cfg *config.Config) (*bootstrap.Container, error)
}

func defaultCLI() *cli {
	return &cli{
		loadConfig: config.Load,
		build: func(ctx context.Context, cfg *config.Config) (*bootstrap.Container, error) {
			log := logger.New(logger.Config{Env: cfg.App.Env, Level: cfg.App.LogLevel, Service: "originctl"})
			return bootstrap.Build(ctx, cfg, log.Zerolog(), bootstrap.Options{})
		},
	}
}

// container carga la configuración y arma las dependencias.
func (c *cli) container(ctx context.Context) (*bootstrap.Container, error) {
	cfg, err := c.loadConfig()
	if err != nil {
		return nil, err
	}
	// la CLI no expone /metrics
	cfg.Metrics.Enabled = false
	return c.build(ctx, cfg)
}

// NewRootCmd comando raíz de originctl.
func NewRootCmd(c *cli) *cobra.Command {
	cmd := &cobra.Command{
		Use:           "originctl",
		Short:         "Administración del servicio de autenticación",
		SilenceUsage:  true,
		SilenceErrors: false,
	}
	cmd.AddCommand(newMigrateCmd(c))
	cmd.AddCommand(newHostCmd(c))
	cmd.AddCommand(newAccountCmd(c))
	return cmd
}
