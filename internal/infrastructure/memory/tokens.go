package memory

import (
	"context"
	"sync"

	"github.com/jhoicas/origon-auth/internal/domain"
	"github.com/jhoicas/origon-auth/internal/domain/repository"
)

var _ repository.TokenStore = (*TokenStore)(nil)

// TokenStore un token vivo por principal, protegido por un único mutex.
type TokenStore struct {
	mu          sync.Mutex
	owners      map[string]string // token -> principal
	byPrincipal map[string]string // principal -> token
}

func NewTokenStore() *TokenStore {
	return &TokenStore{owners: map[string]string{}, byPrincipal: map[string]string{}}
}

func (s *TokenStore) GetOrCreate(_ context.Context, principalID, candidate string) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if tok, ok := s.byPrincipal[principalID]; ok {
		return tok, nil
	}
	s.owners[candidate] = principalID
	s.byPrincipal[principalID] = candidate
	return candidate, nil
}

func (s *TokenStore) Delete(_ context.Context, token string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	id, ok := s.owners[token]
	if !ok {
		return domain.ErrNotFound
	}
	delete(s.owners, token)
	delete(s.byPrincipal, id)
	return nil
}

func (s *TokenStore) DeleteAllFor(_ context.Context, principalID string) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	tok, ok := s.byPrincipal[principalID]
	if !ok {
		return 0, nil
	}
	delete(s.owners, tok)
	delete(s.byPrincipal, principalID)
	return 1, nil
}

func (s *TokenStore) Owner(_ context.Context, token string) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	id, ok := s.owners[token]
	if !ok {
		return "", domain.ErrNotFound
	}
	return id, nil
}
