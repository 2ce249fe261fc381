package admin

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/jhoicas/origon-auth/internal/application/events"
	"github.com/jhoicas/origon-auth/internal/application/session"
	"github.com/jhoicas/origon-auth/internal/domain"
	"github.com/jhoicas/origon-auth/internal/domain/credential"
	"github.com/jhoicas/origon-auth/internal/domain/entity"
	"github.com/jhoicas/origon-auth/internal/domain/repository"
)

// Service acciones administrativas fuera de banda: verificación de hosts y
// activación/desactivación de cuentas. No se expone por la API de autoservicio.
type Service struct {
	users      repository.UserStore
	hosts      repository.HostStore
	userTokens *session.Issuer
	hostTokens *session.Issuer
	emails     credential.EmailPolicy
	events     events.Publisher
	log        zerolog.Logger
}

// Deps dependencias del servicio administrativo.
type Deps struct {
	Users      repository.UserStore
	Hosts      repository.HostStore
	UserTokens *session.Issuer
	HostTokens *session.Issuer
	Emails     credential.EmailPolicy
	Events     events.Publisher
	Logger     zerolog.Logger
}

func NewService(d Deps) *Service {
	pub := d.Events
	if pub == nil {
		pub = events.Nop{}
	}
	return &Service{
		users:      d.Users,
		hosts:      d.Hosts,
		userTokens: d.UserTokens,
		hostTokens: d.HostTokens,
		emails:     d.Emails,
		events:     pub,
		log:        d.Logger.With().Str("component", "admin").Logger(),
	}
}

// SetHostVerified marca o desmarca un host como verificado. notes reemplaza las notas de
// documentación si no es nil.
func (s *Service) SetHostVerified(ctx context.Context, email string, verified bool, notes *string) (*entity.Host, error) {
	normalized, err := s.emails.Normalize(email)
	if err != nil {
		return nil, domain.NewValidationError("email", err.Error(), err)
	}
	host, err := s.hosts.FindByEmail(ctx, normalized)
	if err != nil {
		return nil, err
	}
	updated, err := s.hosts.SetVerified(ctx, host.ID, verified, notes)
	if err != nil {
		return nil, fmt.Errorf("verificar host: %w", err)
	}
	s.log.Info().Str("principal_id", host.ID).Bool("verified", verified).Msg("verificación de host actualizada")
	s.publish(ctx, events.VerificationChanged, entity.KindHost, &updated.Account, map[string]any{"is_verified": verified})
	return updated, nil
}

// SetActive activa o desactiva una cuenta. Al desactivar revoca todos sus tokens y
// devuelve cuántos se borraron.
func (s *Service) SetActive(ctx context.Context, kind entity.Kind, email string, active bool) (int64, error) {
	normalized, err := s.emails.Normalize(email)
	if err != nil {
		return 0, domain.NewValidationError("email", err.Error(), err)
	}

	var (
		acc    *entity.Account
		issuer *session.Issuer
		setFn  func(context.Context, string, bool) error
	)
	switch kind {
	case entity.KindUser:
		u, err := s.users.FindByEmail(ctx, normalized)
		if err != nil {
			return 0, err
		}
		acc, issuer, setFn = &u.Account, s.userTokens, s.users.SetActive
	case entity.KindHost:
		h, err := s.hosts.FindByEmail(ctx, normalized)
		if err != nil {
			return 0, err
		}
		acc, issuer, setFn = &h.Account, s.hostTokens, s.hosts.SetActive
	default:
		return 0, fmt.Errorf("tipo de cuenta desconocido %q: %w", kind, domain.ErrInvalidInput)
	}

	if err := setFn(ctx, acc.ID, active); err != nil {
		return 0, fmt.Errorf("actualizar is_active: %w", err)
	}
	acc.IsActive = active

	var revoked int64
	if !active {
		if revoked, err = issuer.RevokeAll(ctx, acc.ID); err != nil {
			return 0, err
		}
	}
	s.log.Info().Str("kind", string(kind)).Str("principal_id", acc.ID).Bool("active", active).
		Int64("revoked_tokens", revoked).Msg("estado de cuenta actualizado")
	s.publish(ctx, events.ActivationChanged, kind, acc, map[string]any{"is_active": active, "sessions_revoked": revoked})
	return revoked, nil
}

func (s *Service) publish(ctx context.Context, t events.Type, kind entity.Kind, acc *entity.Account, attrs map[string]any) {
	e := events.Event{Type: t, Kind: kind, PrincipalID: acc.ID, Email: acc.Email, At: time.Now().UTC(), Attributes: attrs}
	if err := s.events.Publish(ctx, e); err != nil {
		s.log.Warn().Err(err).Str("event", string(t)).Msg("publicar evento de cuenta")
	}
}
