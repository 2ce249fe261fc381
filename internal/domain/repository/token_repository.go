package repository

import "context"

// TokenStore persiste la relación token opaco -> principal de una variante.
// Un principal tiene como máximo un token vivo (get-or-create).
type TokenStore interface {
	// GetOrCreate devuelve el token vivo del principal o guarda candidate si no hay ninguno.
	// Debe ser atómico: dos llamadas concurrentes devuelven el mismo token.
	GetOrCreate(ctx context.Context, principalID, candidate string) (string, error)
	// Delete elimina un token; domain.ErrNotFound si no existe.
	Delete(ctx context.Context, token string) error
	// DeleteAllFor elimina todos los tokens del principal y devuelve cuántos borró.
	DeleteAllFor(ctx context.Context, principalID string) (int64, error)
	// Owner devuelve el principal dueño del token; domain.ErrNotFound si no existe.
	Owner(ctx context.Context, token string) (string, error)
}
