package session

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"

	"github.com/jhoicas/origon-auth/internal/domain"
	"github.com/jhoicas/origon-auth/internal/domain/repository"
)

// tokenBytes 20 bytes = 40 caracteres hex.
const tokenBytes = 20

// Issuer emite y revoca tokens opacos de una variante de principal. Es el único dueño
// de la relación principal -> token; del principal solo guarda el ID.
type Issuer struct {
	tokens   repository.TokenStore
	activity repository.ActivityChecker
	generate func() (string, error)
}

// NewIssuer construye el emisor. activity se consulta en Validate (is_active).
func NewIssuer(tokens repository.TokenStore, activity repository.ActivityChecker) *Issuer {
	return &Issuer{tokens: tokens, activity: activity, generate: NewToken}
}

// NewToken genera un token aleatorio criptográficamente seguro.
func NewToken() (string, error) {
	b := make([]byte, tokenBytes)
	if _, err := rand.Read(b); err != nil {
		return "", fmt.Errorf("generar token: %w", err)
	}
	return hex.EncodeToString(b), nil
}

// IssueOrGet idempotente: si el principal ya tiene token vivo lo devuelve.
func (i *Issuer) IssueOrGet(ctx context.Context, principalID string) (string, error) {
	tok, _, err := i.Issue(ctx, principalID)
	return tok, err
}

// Issue como IssueOrGet; created indica si el token lo acaba de emitir esta llamada.
func (i *Issuer) Issue(ctx context.Context, principalID string) (token string, created bool, err error) {
	candidate, err := i.generate()
	if err != nil {
		return "", false, err
	}
	tok, err := i.tokens.GetOrCreate(ctx, principalID, candidate)
	if err != nil {
		return "", false, fmt.Errorf("emitir token: %w", err)
	}
	return tok, tok == candidate, nil
}

// Revoke elimina un token. Devuelve domain.ErrNotFound si ya no existía.
func (i *Issuer) Revoke(ctx context.Context, token string) error {
	if token == "" {
		return domain.ErrNotFound
	}
	if err := i.tokens.Delete(ctx, token); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return domain.ErrNotFound
		}
		return fmt.Errorf("revocar token: %w", err)
	}
	return nil
}

// RevokeAll elimina todos los tokens del principal (cambio de contraseña, desactivación).
func (i *Issuer) RevokeAll(ctx context.Context, principalID string) (int64, error) {
	n, err := i.tokens.DeleteAllFor(ctx, principalID)
	if err != nil {
		return 0, fmt.Errorf("revocar tokens: %w", err)
	}
	return n, nil
}

// Validate devuelve el ID del principal dueño del token. ok=false si el token no existe o
// el principal está inactivo; err solo para fallos de infraestructura.
func (i *Issuer) Validate(ctx context.Context, token string) (principalID string, ok bool, err error) {
	if token == "" {
		return "", false, nil
	}
	id, err := i.tokens.Owner(ctx, token)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return "", false, nil
		}
		return "", false, fmt.Errorf("validar token: %w", err)
	}
	active, err := i.activity.IsActive(ctx, id)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return "", false, nil
		}
		return "", false, fmt.Errorf("validar principal: %w", err)
	}
	if !active {
		return "", false, nil
	}
	return id, true, nil
}
