// Package memory implementa los puertos de almacenamiento en proceso. Se usa en
// desarrollo (STORE_BACKEND=memory) y en los tests de handlers.
package memory

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/origon-auth/internal/domain"
	"github.com/jhoicas/origon-auth/internal/domain/entity"
)

// principals colección de una variante. Las entidades se clonan al entrar y salir.
type principals[P entity.Authenticatable] struct {
	mu         sync.RWMutex
	byID       map[string]P
	byEmail    map[string]string
	byUsername map[string]string
	clone      func(P) P
	now        func() time.Time
}

func newPrincipals[P entity.Authenticatable](clone func(P) P) *principals[P] {
	return &principals[P]{
		byID:       map[string]P{},
		byEmail:    map[string]string{},
		byUsername: map[string]string{},
		clone:      clone,
		now:        func() time.Time { return time.Now().UTC() },
	}
}

func (s *principals[P]) Create(_ context.Context, p P) (P, error) {
	var zero P
	s.mu.Lock()
	defer s.mu.Unlock()
	acc := p.Base()
	if _, ok := s.byEmail[acc.Email]; ok {
		return zero, domain.ErrDuplicateEmail
	}
	if _, ok := s.byUsername[acc.Username]; ok {
		return zero, domain.ErrDuplicateUsername
	}
	stored := s.clone(p)
	sa := stored.Base()
	sa.ID = uuid.NewString()
	sa.DateJoined = s.now()
	s.byID[sa.ID] = stored
	s.byEmail[sa.Email] = sa.ID
	s.byUsername[sa.Username] = sa.ID
	return s.clone(stored), nil
}

func (s *principals[P]) FindByEmail(_ context.Context, email string) (P, error) {
	var zero P
	s.mu.RLock()
	defer s.mu.RUnlock()
	id, ok := s.byEmail[email]
	if !ok {
		return zero, domain.ErrNotFound
	}
	return s.clone(s.byID[id]), nil
}

func (s *principals[P]) FindByID(_ context.Context, id string) (P, error) {
	var zero P
	s.mu.RLock()
	defer s.mu.RUnlock()
	p, ok := s.byID[id]
	if !ok {
		return zero, domain.ErrNotFound
	}
	return s.clone(p), nil
}

func (s *principals[P]) Update(_ context.Context, id string, fields map[string]string) (P, error) {
	var zero P
	s.mu.Lock()
	defer s.mu.Unlock()
	p, ok := s.byID[id]
	if !ok {
		return zero, domain.ErrNotFound
	}
	next := s.clone(p)
	allowed := make(map[string]string, len(fields))
	for k, v := range fields {
		if entity.IsAllowedField(next, k) {
			allowed[k] = v
		}
	}
	if err := next.ApplyProfile(allowed); err != nil {
		return zero, err
	}
	s.byID[id] = next
	return s.clone(next), nil
}

// mutate aplica fn sobre la entidad almacenada bajo el lock de escritura.
func (s *principals[P]) mutate(id string, fn func(P)) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	p, ok := s.byID[id]
	if !ok {
		return domain.ErrNotFound
	}
	fn(p)
	return nil
}

func (s *principals[P]) SetPasswordHash(_ context.Context, id, hash string) error {
	return s.mutate(id, func(p P) { p.Base().PasswordHash = hash })
}

func (s *principals[P]) TouchLastLogin(_ context.Context, id string, at time.Time) error {
	return s.mutate(id, func(p P) { p.Base().LastLogin = &at })
}

func (s *principals[P]) SetActive(_ context.Context, id string, active bool) error {
	return s.mutate(id, func(p P) { p.Base().IsActive = active })
}

func (s *principals[P]) IsActive(_ context.Context, id string) (bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	p, ok := s.byID[id]
	if !ok {
		return false, domain.ErrNotFound
	}
	return p.Base().IsActive, nil
}
