package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/jhoicas/origon-auth/internal/bootstrap"
	httpRouter "github.com/jhoicas/origon-auth/internal/interfaces/http"
	"github.com/jhoicas/origon-auth/pkg/config"
	"github.com/jhoicas/origon-auth/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:     cfg.App.Env,
		Level:   cfg.App.LogLevel,
		Service: cfg.App.Name,
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Str("store", cfg.Storage.Store).
		Str("tokens", cfg.Storage.Token).
		Bool("kafka", cfg.Kafka.Enabled()).
		Msg("iniciando aplicación")

	ctx := context.Background()
	c, err := bootstrap.Build(ctx, cfg, log.Zerolog(), bootstrap.Options{Registerer: prometheus.DefaultRegisterer})
	if err != nil {
		log.Fatal().Err(err).Msg("inicializar dependencias")
	}
	defer c.Close()

	deps := httpRouter.RouterDeps{
		Users:       c.UserFlow,
		Hosts:       c.HostFlow,
		Logger:      log.Zerolog(),
		Metrics:     c.Metrics,
		SwaggerFile: cfg.App.SwaggerFile,
	}
	if c.Metrics != nil {
		deps.Gatherer = prometheus.DefaultGatherer
	}
	app := httpRouter.NewApp(cfg.App.Name, deps)

	go func() {
		if err := app.Listen(cfg.HTTP.Addr()); err != nil {
			log.Error().Err(err).Msg("servidor HTTP finalizado")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("señal de apagado recibida, cerrando servidor...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("apagado del servidor")
	}

	log.Info().Msg("aplicación detenida")
}
