// Package bootstrap arma las dependencias del servicio (stores, emisores de tokens, flujos,
// eventos y métricas) según la configuración. Lo usan cmd/api y cmd/originctl.
package bootstrap

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/prometheus/client_golang/prometheus"
	red "github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"github.com/jhoicas/origon-auth/internal/application/admin"
	"github.com/jhoicas/origon-auth/internal/application/auth"
	"github.com/jhoicas/origon-auth/internal/application/events"
	"github.com/jhoicas/origon-auth/internal/application/session"
	"github.com/jhoicas/origon-auth/internal/domain/credential"
	"github.com/jhoicas/origon-auth/internal/domain/entity"
	"github.com/jhoicas/origon-auth/internal/domain/repository"
	"github.com/jhoicas/origon-auth/internal/infrastructure/kafka"
	"github.com/jhoicas/origon-auth/internal/infrastructure/memory"
	"github.com/jhoicas/origon-auth/internal/infrastructure/metrics"
	"github.com/jhoicas/origon-auth/internal/infrastructure/postgres"
	infraredis "github.com/jhoicas/origon-auth/internal/infrastructure/redis"
	"github.com/jhoicas/origon-auth/pkg/config"
)

type userBackend interface {
	repository.UserStore
	repository.ActivityChecker
}

type hostBackend interface {
	repository.HostStore
	repository.ActivityChecker
}

type publisher interface {
	events.Publisher
	Close() error
}

// Container dependencias armadas. Close libera conexiones en orden inverso.
type Container struct {
	Users      repository.UserStore
	Hosts      repository.HostStore
	UserTokens *session.Issuer
	HostTokens *session.Issuer
	UserFlow   *auth.Flow[*entity.User]
	HostFlow   *auth.Flow[*entity.Host]
	Events     events.Publisher
	Metrics    *metrics.Metrics // nil si METRICS_ENABLED=false
	Emails     credential.EmailPolicy

	log     zerolog.Logger
	closers []func()
}

// Options ajustes de armado que no vienen de la configuración.
type Options struct {
	// Registerer destino de las métricas; nil usa prometheus.DefaultRegisterer.
	Registerer prometheus.Registerer
}

// Build arma el contenedor. Ante un error cierra lo que alcanzó a abrir.
func Build(ctx context.Context, cfg *config.Config, log zerolog.Logger, opts Options) (*Container, error) {
	c := &Container{
		log:    log,
		Emails: credential.EmailPolicy{MaxDomainLabels: cfg.Email.MaxDomainLabels},
	}
	built := false
	defer func() {
		if !built {
			c.Close()
		}
	}()

	var (
		pool *pgxpool.Pool
		err  error
	)
	if cfg.Storage.Store == config.BackendPostgres || cfg.Storage.Token == config.BackendPostgres {
		if pool, err = openPostgres(ctx, cfg, log); err != nil {
			return nil, err
		}
		c.closers = append(c.closers, pool.Close)
	}

	var (
		users userBackend
		hosts hostBackend
	)
	switch cfg.Storage.Store {
	case config.BackendPostgres:
		users = postgres.NewUserRepository(pool)
		hosts = postgres.NewHostRepository(pool)
	default:
		log.Warn().Msg("STORE_BACKEND=memory: los datos se pierden al reiniciar")
		users = memory.NewUserStore()
		hosts = memory.NewHostStore()
	}
	c.Users, c.Hosts = users, hosts

	userTokens, hostTokens, err := c.tokenStores(ctx, cfg, pool)
	if err != nil {
		return nil, err
	}
	c.UserTokens = session.NewIssuer(userTokens, users)
	c.HostTokens = session.NewIssuer(hostTokens, hosts)

	if c.Events, err = c.publisher(cfg); err != nil {
		return nil, err
	}

	var recorder auth.Recorder
	if cfg.Metrics.Enabled {
		if c.Metrics, err = metrics.New(opts.Registerer); err != nil {
			return nil, fmt.Errorf("registrar métricas: %w", err)
		}
		recorder = c.Metrics
	}

	policy := credential.NewPasswordPolicy(credential.PasswordPolicyConfig{
		MinLength:       cfg.Password.MinLength,
		RejectCommon:    cfg.Password.RejectCommon,
		SimilarityCheck: cfg.Password.SimilarityCheck,
		RejectNumeric:   cfg.Password.RejectNumeric,
		MinScore:        cfg.Password.MinScore,
	})
	hasher := credential.NewBcryptHasher(cfg.Password.BcryptCost)

	if c.UserFlow, err = auth.NewFlow(auth.Deps[*entity.User]{
		Kind:      entity.KindUser,
		Store:     users,
		Issuer:    c.UserTokens,
		Emails:    c.Emails,
		Passwords: policy,
		Hasher:    hasher,
		Events:    c.Events,
		Recorder:  recorder,
		Logger:    log,
	}); err != nil {
		return nil, err
	}
	if c.HostFlow, err = auth.NewFlow(auth.Deps[*entity.Host]{
		Kind:      entity.KindHost,
		Store:     hosts,
		Issuer:    c.HostTokens,
		Emails:    c.Emails,
		Passwords: policy,
		Hasher:    hasher,
		Events:    c.Events,
		Recorder:  recorder,
		Logger:    log,
	}); err != nil {
		return nil, err
	}
	built = true
	return c, nil
}

func openPostgres(ctx context.Context, cfg *config.Config, log zerolog.Logger) (*pgxpool.Pool, error) {
	if cfg.DB.AutoMigrate {
		db, err := postgres.OpenSQL(cfg.DB)
		if err != nil {
			return nil, err
		}
		err = postgres.Migrate(ctx, db)
		_ = db.Close()
		if err != nil {
			return nil, err
		}
		log.Info().Msg("migraciones aplicadas")
	}
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		return nil, fmt.Errorf("conexión a PostgreSQL: %w", err)
	}
	return pool, nil
}

func (c *Container) tokenStores(ctx context.Context, cfg *config.Config, pool *pgxpool.Pool) (repository.TokenStore, repository.TokenStore, error) {
	switch cfg.Storage.Token {
	case config.BackendPostgres:
		return postgres.NewTokenRepository(pool, postgres.UserTokensTable),
			postgres.NewTokenRepository(pool, postgres.HostTokensTable), nil
	case config.BackendRedis:
		client, err := infraredis.NewClient(ctx, cfg.Redis)
		if err != nil {
			return nil, nil, err
		}
		c.closers = append(c.closers, func() { closeRedis(client, c.log) })
		return infraredis.NewTokenStore(client, cfg.Redis.Prefix, entity.KindUser),
			infraredis.NewTokenStore(client, cfg.Redis.Prefix, entity.KindHost), nil
	default:
		return memory.NewTokenStore(), memory.NewTokenStore(), nil
	}
}

func (c *Container) publisher(cfg *config.Config) (events.Publisher, error) {
	var pub publisher
	if cfg.Kafka.Enabled() {
		p, err := kafka.NewPublisher(cfg.Kafka.Brokers, cfg.Kafka.Topic, c.log)
		if err != nil {
			return nil, err
		}
		pub = p
	} else {
		pub = kafka.NewLogPublisher(c.log)
	}
	c.closers = append(c.closers, func() {
		if err := pub.Close(); err != nil {
			c.log.Warn().Err(err).Msg("cerrar publicador de eventos")
		}
	})
	return pub, nil
}

// Admin servicio administrativo sobre los mismos stores y emisores.
func (c *Container) Admin() *admin.Service {
	return admin.NewService(admin.Deps{
		Users:      c.Users,
		Hosts:      c.Hosts,
		UserTokens: c.UserTokens,
		HostTokens: c.HostTokens,
		Emails:     c.Emails,
		Events:     c.Events,
		Logger:     c.log,
	})
}

// Close cierra publicador, Redis y pool en orden inverso de apertura.
func (c *Container) Close() {
	for i := len(c.closers) - 1; i >= 0; i-- {
		c.closers[i]()
	}
	c.closers = nil
}

func closeRedis(client *red.Client, log zerolog.Logger) {
	if err := client.Close(); err != nil {
		log.Warn().Err(err).Msg("cerrar cliente Redis")
	}
}
