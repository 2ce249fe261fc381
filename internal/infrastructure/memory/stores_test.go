package memory_test

import (
	"context"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/origon-auth/internal/domain"
	"github.com/jhoicas/origon-auth/internal/domain/entity"
	"github.com/jhoicas/origon-auth/internal/infrastructure/memory"
)

func TestUserStore_CreateConcurrenteMismoEmail(t *testing.T) {
	store := memory.NewUserStore()
	ctx := context.Background()

	var ok, dup atomic.Int32
	var wg sync.WaitGroup
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := store.Create(ctx, &entity.User{Account: entity.Account{Username: "ana", Email: "ana@example.com"}})
			switch {
			case err == nil:
				ok.Add(1)
			case assert.ErrorIs(t, err, domain.ErrDuplicateEmail):
				dup.Add(1)
			}
		}()
	}
	wg.Wait()
	assert.Equal(t, int32(1), ok.Load())
	assert.Equal(t, int32(15), dup.Load())
}

func TestUserStore_UsernameDuplicado(t *testing.T) {
	store := memory.NewUserStore()
	ctx := context.Background()
	_, err := store.Create(ctx, &entity.User{Account: entity.Account{Username: "ana", Email: "a@example.com"}})
	require.NoError(t, err)

	_, err = store.Create(ctx, &entity.User{Account: entity.Account{Username: "ana", Email: "b@example.com"}})
	assert.ErrorIs(t, err, domain.ErrDuplicateUsername)
}

func TestUserStore_DevuelveCopias(t *testing.T) {
	store := memory.NewUserStore()
	ctx := context.Background()
	created, err := store.Create(ctx, &entity.User{Account: entity.Account{Username: "ana", Email: "a@example.com", FullName: "Ana"}})
	require.NoError(t, err)

	created.FullName = "mutado fuera del store"
	again, err := store.FindByID(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, "Ana", again.FullName)
}

func TestHostStore_UpdateNoTocaVerificacion(t *testing.T) {
	store := memory.NewHostStore()
	ctx := context.Background()
	h, err := store.Create(ctx, &entity.Host{Account: entity.Account{Username: "casa", Email: "c@example.com"}, BusinessType: entity.BusinessIndividual})
	require.NoError(t, err)

	updated, err := store.Update(ctx, h.ID, map[string]string{"bio": "hola", "is_verified": "true"})
	require.NoError(t, err)
	assert.Equal(t, "hola", updated.Bio)
	assert.False(t, updated.IsVerified)

	notes := "documentos ok"
	verified, err := store.SetVerified(ctx, h.ID, true, &notes)
	require.NoError(t, err)
	assert.True(t, verified.IsVerified)
	assert.Equal(t, notes, verified.VerificationDocuments)
}

func TestHostStore_UpdateBusinessTypeInvalido(t *testing.T) {
	store := memory.NewHostStore()
	ctx := context.Background()
	h, err := store.Create(ctx, &entity.Host{Account: entity.Account{Username: "casa", Email: "c@example.com"}})
	require.NoError(t, err)

	_, err = store.Update(ctx, h.ID, map[string]string{"business_type": "cooperativa"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestTokenStore_GetOrCreateIdempotente(t *testing.T) {
	store := memory.NewTokenStore()
	ctx := context.Background()

	first, err := store.GetOrCreate(ctx, "p1", "t1")
	require.NoError(t, err)
	second, err := store.GetOrCreate(ctx, "p1", "t2")
	require.NoError(t, err)
	assert.Equal(t, first, second)

	n, err := store.DeleteAllFor(ctx, "p1")
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)

	_, err = store.Owner(ctx, "t1")
	assert.ErrorIs(t, err, domain.ErrNotFound)
	assert.ErrorIs(t, store.Delete(ctx, "t1"), domain.ErrNotFound)
}
