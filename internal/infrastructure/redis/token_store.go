// Package redis implementa el token store sobre Redis.
package redis

import (
	"context"
	"errors"
	"fmt"
	"strings"

	red "github.com/redis/go-redis/v9"

	"github.com/jhoicas/origon-auth/internal/domain"
	"github.com/jhoicas/origon-auth/internal/domain/entity"
	"github.com/jhoicas/origon-auth/internal/domain/repository"
)

var _ repository.TokenStore = (*TokenStore)(nil)

const defaultPrefix = "origon"

// KEYS[1] = principal -> token, KEYS[2] = token candidato -> principal.
var getOrCreateScript = red.NewScript(`
local existing = redis.call('GET', KEYS[1])
if existing then
  return existing
end
redis.call('SET', KEYS[1], ARGV[1])
redis.call('SET', KEYS[2], ARGV[2])
return ARGV[1]
`)

// KEYS[1] = token -> principal. ARGV[1] = prefijo de claves principal, ARGV[2] = token.
var deleteScript = red.NewScript(`
local owner = redis.call('GET', KEYS[1])
if not owner then
  return 0
end
redis.call('DEL', KEYS[1])
local pkey = ARGV[1] .. owner
if redis.call('GET', pkey) == ARGV[2] then
  redis.call('DEL', pkey)
end
return 1
`)

// KEYS[1] = principal -> token. ARGV[1] = prefijo de claves token.
var deleteAllScript = red.NewScript(`
local tok = redis.call('GET', KEYS[1])
if not tok then
  return 0
end
redis.call('DEL', KEYS[1])
redis.call('DEL', ARGV[1] .. tok)
return 1
`)

// TokenStore un token vivo por principal. Claves:
//
//	<prefix>:<kind>:token:<token>       -> principal id
//	<prefix>:<kind>:principal:<id>      -> token
//
// Las operaciones de varias claves se ejecutan en scripts Lua (atómicos en Redis).
// deleteScript y deleteAllScript derivan la segunda clave del valor leído (ARGV + GET),
// así que no la declaran en KEYS: requieren un Redis de un solo nodo (red.NewClient) y
// no son compatibles con Redis Cluster ni con ACL restringidas por patrón de clave.
type TokenStore struct {
	client          red.UniversalClient
	tokenPrefix     string
	principalPrefix string
}

// NewTokenStore construye el store para una variante de principal.
func NewTokenStore(client red.UniversalClient, keyPrefix string, kind entity.Kind) *TokenStore {
	prefix := strings.TrimSpace(keyPrefix)
	if prefix == "" {
		prefix = defaultPrefix
	}
	base := prefix + ":" + string(kind) + ":"
	return &TokenStore{
		client:          client,
		tokenPrefix:     base + "token:",
		principalPrefix: base + "principal:",
	}
}

func (s *TokenStore) GetOrCreate(ctx context.Context, principalID, candidate string) (string, error) {
	if principalID == "" || candidate == "" {
		return "", fmt.Errorf("principal y token requeridos: %w", domain.ErrInvalidInput)
	}
	keys := []string{s.principalPrefix + principalID, s.tokenPrefix + candidate}
	tok, err := getOrCreateScript.Run(ctx, s.client, keys, candidate, principalID).Text()
	if err != nil {
		return "", fmt.Errorf("redis get-or-create token: %w", err)
	}
	return tok, nil
}

func (s *TokenStore) Delete(ctx context.Context, token string) error {
	n, err := deleteScript.Run(ctx, s.client, []string{s.tokenPrefix + token}, s.principalPrefix, token).Int()
	if err != nil {
		return fmt.Errorf("redis delete token: %w", err)
	}
	if n == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (s *TokenStore) DeleteAllFor(ctx context.Context, principalID string) (int64, error) {
	n, err := deleteAllScript.Run(ctx, s.client, []string{s.principalPrefix + principalID}, s.tokenPrefix).Int64()
	if err != nil {
		return 0, fmt.Errorf("redis delete tokens: %w", err)
	}
	return n, nil
}

func (s *TokenStore) Owner(ctx context.Context, token string) (string, error) {
	id, err := s.client.Get(ctx, s.tokenPrefix+token).Result()
	if err != nil {
		if errors.Is(err, red.Nil) {
			return "", domain.ErrNotFound
		}
		return "", fmt.Errorf("redis get token: %w", err)
	}
	return id, nil
}
