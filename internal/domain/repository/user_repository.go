package repository

import (
	"context"
	"time"

	"github.com/jhoicas/origon-auth/internal/domain/entity"
)

// PrincipalStore define el puerto de persistencia de una variante de principal (DIP).
// Es el único dueño del ciclo de vida del principal. Create debe apoyarse en restricciones
// únicas del almacenamiento: dos altas concurrentes con el mismo email producen exactamente
// un éxito y un domain.ErrDuplicateEmail.
type PrincipalStore[P entity.Authenticatable] interface {
	// Create asigna ID y DateJoined. Falla con ErrDuplicateEmail / ErrDuplicateUsername.
	Create(ctx context.Context, p P) (P, error)
	// FindByEmail devuelve domain.ErrNotFound si no existe.
	FindByEmail(ctx context.Context, email string) (P, error)
	FindByID(ctx context.Context, id string) (P, error)
	// Update aplica solo campos de perfil de la lista blanca. Falla con ErrNotFound.
	Update(ctx context.Context, id string, fields map[string]string) (P, error)
	SetPasswordHash(ctx context.Context, id, hash string) error
	TouchLastLogin(ctx context.Context, id string, at time.Time) error
	// SetActive vía administrativa.
	SetActive(ctx context.Context, id string, active bool) error
}

// UserStore almacén de usuarios finales.
type UserStore interface {
	PrincipalStore[*entity.User]
}

// HostStore almacén de anfitriones. SetVerified solo lo usa la vía administrativa.
type HostStore interface {
	PrincipalStore[*entity.Host]
	SetVerified(ctx context.Context, id string, verified bool, notes *string) (*entity.Host, error)
}

// ActivityChecker consulta is_active sin cargar el principal completo.
type ActivityChecker interface {
	IsActive(ctx context.Context, id string) (bool, error)
}
