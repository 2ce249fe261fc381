package memory

import (
	"context"

	"github.com/jhoicas/origon-auth/internal/domain"
	"github.com/jhoicas/origon-auth/internal/domain/entity"
	"github.com/jhoicas/origon-auth/internal/domain/repository"
)

var (
	_ repository.UserStore       = (*UserStore)(nil)
	_ repository.HostStore       = (*HostStore)(nil)
	_ repository.ActivityChecker = (*UserStore)(nil)
	_ repository.ActivityChecker = (*HostStore)(nil)
)

// UserStore usuarios en memoria.
type UserStore struct {
	*principals[*entity.User]
}

func NewUserStore() *UserStore {
	return &UserStore{principals: newPrincipals((*entity.User).Clone)}
}

// HostStore hosts en memoria.
type HostStore struct {
	*principals[*entity.Host]
}

func NewHostStore() *HostStore {
	return &HostStore{principals: newPrincipals((*entity.Host).Clone)}
}

func (s *HostStore) SetVerified(_ context.Context, id string, verified bool, notes *string) (*entity.Host, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	h, ok := s.byID[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	h.IsVerified = verified
	if notes != nil {
		h.VerificationDocuments = *notes
	}
	return h.Clone(), nil
}
