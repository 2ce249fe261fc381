package events

import (
	"context"
	"time"

	"github.com/jhoicas/origon-auth/internal/domain/entity"
)

// Type tipo de evento de cuenta.
type Type string

const (
	Registered          Type = "account.registered"
	LoggedIn            Type = "account.logged_in"
	LoggedOut           Type = "account.logged_out"
	PasswordChanged     Type = "account.password_changed"
	VerificationChanged Type = "account.verification_changed"
	ActivationChanged   Type = "account.activation_changed"
)

// Event evento de ciclo de vida de una cuenta. Nunca lleva contraseñas ni tokens.
type Event struct {
	Type        Type           `json:"type"`
	Kind        entity.Kind    `json:"kind"`
	PrincipalID string         `json:"principal_id"`
	Email       string         `json:"email,omitempty"`
	At          time.Time      `json:"at"`
	Attributes  map[string]any `json:"attributes,omitempty"`
}

// Publisher publica eventos de cuenta en el bus.
type Publisher interface {
	Publish(ctx context.Context, e Event) error
}

// Nop descarta los eventos.
type Nop struct{}

func (Nop) Publish(context.Context, Event) error { return nil }
