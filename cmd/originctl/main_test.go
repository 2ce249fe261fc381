package main

import (
	"bytes"
	"context"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/origon-auth/internal/bootstrap"
	"github.com/jhoicas/origon-auth/internal/domain/entity"
	"github.com/jhoicas/origon-auth/pkg/config"
)

const password = "Sunset-Harbor-42"

// memoryCLI comparte un único contenedor en memoria entre invocaciones.
func memoryCLI(t *testing.T) (*cli, *bootstrap.Container) {
	t.Helper()
	cfg := &config.Config{
		Storage:  config.StorageConfig{Store: config.BackendMemory, Token: config.BackendMemory},
		Password: config.PasswordConfig{MinLength: 8, RejectNumeric: true, BcryptCost: 4},
	}
	ct, err := bootstrap.Build(context.Background(), cfg, zerolog.Nop(), bootstrap.Options{Registerer: prometheus.NewRegistry()})
	require.NoError(t, err)
	return &cli{
		loadConfig: func() (*config.Config, error) { return cfg, nil },
		build: func(context.Context, *config.Config) (*bootstrap.Container, error) {
			return ct, nil
		},
	}, ct
}

func run(t *testing.T, c *cli, args ...string) (string, error) {
	t.Helper()
	cmd := NewRootCmd(c)
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func TestHostVerify(t *testing.T) {
	c, ct := memoryCLI(t)
	ctx := context.Background()
	_, _, err := ct.HostFlow.Register(ctx, &entity.Host{Account: entity.Account{Username: "casa", Email: "casa@example.com"}}, password, password)
	require.NoError(t, err)

	out, err := run(t, c, "host", "verify", "CASA@example.com", "--notes", "RUT revisado")
	require.NoError(t, err)
	assert.Contains(t, out, "is_verified=true can_list_properties=true")

	h, err := ct.Hosts.FindByEmail(ctx, "casa@example.com")
	require.NoError(t, err)
	assert.True(t, h.IsVerified)
	assert.Equal(t, "RUT revisado", h.VerificationDocuments)

	out, err = run(t, c, "host", "unverify", "casa@example.com")
	require.NoError(t, err)
	assert.Contains(t, out, "is_verified=false")
}

func TestHostVerify_NoExiste(t *testing.T) {
	c, _ := memoryCLI(t)
	_, err := run(t, c, "host", "verify", "nadie@example.com")
	assert.Error(t, err)
}

func TestAccountDeactivate(t *testing.T) {
	c, ct := memoryCLI(t)
	ctx := context.Background()
	_, token, err := ct.UserFlow.Register(ctx, &entity.User{Account: entity.Account{Username: "ana", Email: "ana@example.com"}}, password, password)
	require.NoError(t, err)

	out, err := run(t, c, "account", "deactivate", "--kind", "user", "ana@example.com")
	require.NoError(t, err)
	assert.Contains(t, out, "is_active=false tokens_revocados=1")

	_, err = ct.UserFlow.Authenticate(ctx, token)
	assert.Error(t, err)

	out, err = run(t, c, "account", "activate", "ana@example.com")
	require.NoError(t, err)
	assert.Contains(t, out, "is_active=true")
}

func TestAccount_KindInvalido(t *testing.T) {
	c, _ := memoryCLI(t)
	_, err := run(t, c, "account", "deactivate", "--kind", "staff", "ana@example.com")
	assert.ErrorContains(t, err, "--kind")
}

func TestArgumentosObligatorios(t *testing.T) {
	c, _ := memoryCLI(t)
	_, err := run(t, c, "host", "verify")
	assert.Error(t, err)
}
