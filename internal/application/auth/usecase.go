package auth

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/jhoicas/origon-auth/internal/application/events"
	"github.com/jhoicas/origon-auth/internal/application/session"
	"github.com/jhoicas/origon-auth/internal/domain"
	"github.com/jhoicas/origon-auth/internal/domain/credential"
	"github.com/jhoicas/origon-auth/internal/domain/entity"
	"github.com/jhoicas/origon-auth/internal/domain/repository"
)

// Operaciones y resultados que se reportan al Recorder.
const (
	OpRegister       = "register"
	OpLogin          = "login"
	OpLogout         = "logout"
	OpChangePassword = "change_password"

	OutcomeSuccess  = "success"
	OutcomeInvalid  = "invalid"
	OutcomeDenied   = "denied"
	OutcomeDisabled = "disabled"
	OutcomeError    = "error"
)

// Recorder recibe el resultado de cada operación (métricas).
type Recorder interface {
	Record(kind entity.Kind, op, outcome string)
}

type nopRecorder struct{}

func (nopRecorder) Record(entity.Kind, string, string) {}

const timingPassword = "origon-timing-equalizer"

// Deps dependencias del flujo de una variante de principal.
type Deps[P entity.Authenticatable] struct {
	Kind      entity.Kind
	Store     repository.PrincipalStore[P]
	Issuer    *session.Issuer
	Emails    credential.EmailPolicy
	Passwords *credential.PasswordPolicy
	Hasher    entity.PasswordHasher
	Events    events.Publisher // opcional
	Recorder  Recorder         // opcional
	Logger    zerolog.Logger
	Now       func() time.Time // opcional
}

// Flow orquesta registro, login, logout, perfil y cambio de contraseña de una variante.
// Nunca muta el almacenamiento directamente: todo pasa por Store e Issuer.
type Flow[P entity.Authenticatable] struct {
	kind      entity.Kind
	store     repository.PrincipalStore[P]
	issuer    *session.Issuer
	emails    credential.EmailPolicy
	passwords *credential.PasswordPolicy
	hasher    entity.PasswordHasher
	events    events.Publisher
	recorder  Recorder
	log       zerolog.Logger
	now       func() time.Time
	dummyHash string
}

// NewFlow construye el flujo. Precalcula un hash ficticio para igualar el coste de los
// logins con email inexistente.
func NewFlow[P entity.Authenticatable](d Deps[P]) (*Flow[P], error) {
	if d.Store == nil || d.Issuer == nil || d.Hasher == nil || d.Passwords == nil {
		return nil, fmt.Errorf("auth: dependencias incompletas para %s", d.Kind)
	}
	dummy, err := d.Hasher.Hash(timingPassword)
	if err != nil {
		return nil, fmt.Errorf("auth: hash de referencia: %w", err)
	}
	f := &Flow[P]{
		kind:      d.Kind,
		store:     d.Store,
		issuer:    d.Issuer,
		emails:    d.Emails,
		passwords: d.Passwords,
		hasher:    d.Hasher,
		events:    d.Events,
		recorder:  d.Recorder,
		log:       d.Logger.With().Str("kind", string(d.Kind)).Logger(),
		now:       d.Now,
		dummyHash: dummy,
	}
	if f.events == nil {
		f.events = events.Nop{}
	}
	if f.recorder == nil {
		f.recorder = nopRecorder{}
	}
	if f.now == nil {
		f.now = func() time.Time { return time.Now().UTC() }
	}
	return f, nil
}

// Kind variante que gestiona el flujo.
func (f *Flow[P]) Kind() entity.Kind { return f.kind }

// Register valida email y contraseña, persiste el principal y emite su token.
// Cualquier error de validación aborta antes de persistir.
func (f *Flow[P]) Register(ctx context.Context, p P, password, passwordConfirm string) (P, string, error) {
	var zero P
	acc := p.Base()
	errs := domain.FieldErrors{}
	var cause error

	email, err := f.emails.Normalize(acc.Email)
	if err != nil {
		errs.Add("email", err.Error())
		cause = err
	} else {
		acc.Email = email
	}
	acc.Username = strings.TrimSpace(acc.Username)
	if acc.Username == "" {
		errs.Add("username", "This field may not be blank.")
	}
	for field, msgs := range p.PrepareRegistration() {
		for _, m := range msgs {
			errs.Add(field, m)
		}
	}
	if err := f.passwords.Validate(password, identityOf(acc)); err != nil {
		var v credential.PasswordViolations
		if !errors.As(err, &v) {
			return zero, "", err
		}
		for _, m := range v.Messages() {
			errs.Add("password", m)
		}
		cause = err
	}
	if !errs.Empty() {
		f.recorder.Record(f.kind, OpRegister, OutcomeInvalid)
		return zero, "", &domain.ValidationError{Fields: errs, Cause: cause}
	}
	if password != passwordConfirm {
		f.recorder.Record(f.kind, OpRegister, OutcomeInvalid)
		return zero, "", domain.NewValidationError(domain.NonFieldErrors, "Passwords don't match.", domain.ErrPasswordMismatch)
	}

	if err := acc.SetPassword(f.hasher, password); err != nil {
		f.recorder.Record(f.kind, OpRegister, OutcomeError)
		return zero, "", fmt.Errorf("hash password: %w", err)
	}
	created, err := f.store.Create(ctx, p)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrDuplicateEmail):
			f.recorder.Record(f.kind, OpRegister, OutcomeInvalid)
			return zero, "", domain.NewValidationError("email", fmt.Sprintf("A %s with this email already exists.", f.kind), domain.ErrDuplicateEmail)
		case errors.Is(err, domain.ErrDuplicateUsername):
			f.recorder.Record(f.kind, OpRegister, OutcomeInvalid)
			return zero, "", domain.NewValidationError("username", fmt.Sprintf("A %s with that username already exists.", f.kind), domain.ErrDuplicateUsername)
		}
		f.recorder.Record(f.kind, OpRegister, OutcomeError)
		return zero, "", fmt.Errorf("crear %s: %w", f.kind, err)
	}
	id := created.Base().ID
	token, err := f.issuer.IssueOrGet(ctx, id)
	if err != nil {
		f.recorder.Record(f.kind, OpRegister, OutcomeError)
		return zero, "", err
	}

	f.recorder.Record(f.kind, OpRegister, OutcomeSuccess)
	f.log.Info().Str("principal_id", id).Msg("registro completado")
	f.publish(ctx, events.Registered, created.Base(), nil)
	return created, token, nil
}

// Login autentica por email y contraseña. Email inexistente y contraseña incorrecta
// producen el mismo domain.ErrInvalidCredentials.
func (f *Flow[P]) Login(ctx context.Context, email, password string) (P, string, error) {
	var zero P
	if strings.TrimSpace(email) == "" || password == "" {
		f.recorder.Record(f.kind, OpLogin, OutcomeInvalid)
		return zero, "", domain.NewValidationError(domain.NonFieldErrors, "Must include email and password.", domain.ErrInvalidInput)
	}
	normalized, err := f.emails.Normalize(email)
	if err != nil {
		f.recorder.Record(f.kind, OpLogin, OutcomeInvalid)
		return zero, "", domain.NewValidationError("email", err.Error(), err)
	}

	p, err := f.store.FindByEmail(ctx, normalized)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			f.hasher.Compare(f.dummyHash, password)
			f.recorder.Record(f.kind, OpLogin, OutcomeDenied)
			f.log.Info().Str("reason", "unknown_email").Msg("login rechazado")
			return zero, "", domain.ErrInvalidCredentials
		}
		f.recorder.Record(f.kind, OpLogin, OutcomeError)
		return zero, "", fmt.Errorf("buscar %s: %w", f.kind, err)
	}
	acc := p.Base()
	if !acc.CheckPassword(f.hasher, password) {
		f.recorder.Record(f.kind, OpLogin, OutcomeDenied)
		f.log.Info().Str("principal_id", acc.ID).Str("reason", "wrong_password").Msg("login rechazado")
		return zero, "", domain.ErrInvalidCredentials
	}
	if !acc.IsActive {
		f.recorder.Record(f.kind, OpLogin, OutcomeDisabled)
		f.log.Info().Str("principal_id", acc.ID).Msg("login de cuenta deshabilitada")
		return zero, "", domain.ErrAccountDisabled
	}

	verifiedHash := acc.PasswordHash
	token, created, err := f.issuer.Issue(ctx, acc.ID)
	if err != nil {
		f.recorder.Record(f.kind, OpLogin, OutcomeError)
		return zero, "", err
	}

	// Un cambio de contraseña (o una desactivación) concurrente pudo revocar los tokens
	// entre la verificación y la emisión; se relee el principal y se anula el token.
	// Un token que ya existía pertenece a otra sesión y no se toca.
	fresh, err := f.store.FindByID(ctx, acc.ID)
	if err != nil {
		f.recorder.Record(f.kind, OpLogin, OutcomeError)
		return zero, "", fmt.Errorf("releer %s: %w", f.kind, err)
	}
	if fa := fresh.Base(); fa.PasswordHash != verifiedHash || !fa.IsActive {
		if created {
			if rerr := f.issuer.Revoke(ctx, token); rerr != nil && !errors.Is(rerr, domain.ErrNotFound) {
				f.log.Error().Err(rerr).Str("principal_id", acc.ID).Msg("revocar token de login obsoleto")
			}
		}
		f.recorder.Record(f.kind, OpLogin, OutcomeDenied)
		if !fa.IsActive {
			return zero, "", domain.ErrAccountDisabled
		}
		return zero, "", domain.ErrInvalidCredentials
	}

	now := f.now()
	if err := f.store.TouchLastLogin(ctx, acc.ID, now); err != nil {
		f.recorder.Record(f.kind, OpLogin, OutcomeError)
		return zero, "", fmt.Errorf("actualizar last_login: %w", err)
	}
	fresh.Base().LastLogin = &now

	f.recorder.Record(f.kind, OpLogin, OutcomeSuccess)
	f.log.Info().Str("principal_id", acc.ID).Msg("login correcto")
	f.publish(ctx, events.LoggedIn, fresh.Base(), nil)
	return fresh, token, nil
}

// Logout revoca el token presentado. Un token ya ausente cuenta como éxito.
func (f *Flow[P]) Logout(ctx context.Context, p P, token string) error {
	err := f.issuer.Revoke(ctx, token)
	if err != nil && !errors.Is(err, domain.ErrNotFound) {
		f.recorder.Record(f.kind, OpLogout, OutcomeError)
		return err
	}
	f.recorder.Record(f.kind, OpLogout, OutcomeSuccess)
	f.publish(ctx, events.LoggedOut, p.Base(), nil)
	return nil
}

// Authenticate resuelve el principal dueño de un token vivo. Usado por el middleware.
func (f *Flow[P]) Authenticate(ctx context.Context, token string) (P, error) {
	var zero P
	id, ok, err := f.issuer.Validate(ctx, token)
	if err != nil {
		return zero, err
	}
	if !ok {
		return zero, domain.ErrUnauthorized
	}
	p, err := f.store.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return zero, domain.ErrUnauthorized
		}
		return zero, fmt.Errorf("cargar %s: %w", f.kind, err)
	}
	if !p.Base().IsActive {
		return zero, domain.ErrUnauthorized
	}
	return p, nil
}

// UpdateProfile aplica solo los campos de la lista blanca de autoservicio; el resto
// (is_verified, is_active, is_staff, email, username, id) se ignora.
func (f *Flow[P]) UpdateProfile(ctx context.Context, p P, fields map[string]string) (P, error) {
	var zero P
	allowed := make(map[string]string, len(fields))
	for k, v := range fields {
		if entity.IsAllowedField(p, k) {
			allowed[k] = strings.TrimSpace(v)
		}
	}
	if len(allowed) == 0 {
		return p, nil
	}
	if err := p.ApplyProfile(allowed); err != nil {
		return zero, err
	}
	updated, err := f.store.Update(ctx, p.Base().ID, allowed)
	if err != nil {
		return zero, fmt.Errorf("actualizar perfil: %w", err)
	}
	return updated, nil
}

// ChangePassword verifica la contraseña actual, aplica la política, guarda el nuevo hash y
// revoca todos los tokens del principal, incluido el de la sesión que hizo el cambio.
func (f *Flow[P]) ChangePassword(ctx context.Context, p P, oldPassword, newPassword, newPasswordConfirm string) (int64, error) {
	acc := p.Base()
	if !acc.CheckPassword(f.hasher, oldPassword) {
		f.recorder.Record(f.kind, OpChangePassword, OutcomeInvalid)
		return 0, domain.NewValidationError("old_password", "Old password is incorrect.", domain.ErrWrongOldPassword)
	}
	if newPassword != newPasswordConfirm {
		f.recorder.Record(f.kind, OpChangePassword, OutcomeInvalid)
		return 0, domain.NewValidationError(domain.NonFieldErrors, "New passwords don't match.", domain.ErrPasswordMismatch)
	}
	if err := f.passwords.Validate(newPassword, identityOf(acc)); err != nil {
		var v credential.PasswordViolations
		if !errors.As(err, &v) {
			return 0, err
		}
		f.recorder.Record(f.kind, OpChangePassword, OutcomeInvalid)
		return 0, &domain.ValidationError{Fields: domain.FieldErrors{"new_password": v.Messages()}, Cause: err}
	}

	hash, err := f.hasher.Hash(newPassword)
	if err != nil {
		f.recorder.Record(f.kind, OpChangePassword, OutcomeError)
		return 0, fmt.Errorf("hash password: %w", err)
	}
	if err := f.store.SetPasswordHash(ctx, acc.ID, hash); err != nil {
		f.recorder.Record(f.kind, OpChangePassword, OutcomeError)
		return 0, fmt.Errorf("guardar password: %w", err)
	}
	acc.PasswordHash = hash

	revoked, err := f.issuer.RevokeAll(ctx, acc.ID)
	if err != nil {
		f.recorder.Record(f.kind, OpChangePassword, OutcomeError)
		f.log.Error().Err(err).Str("principal_id", acc.ID).Msg("password cambiado pero los tokens no se revocaron")
		return 0, err
	}

	f.recorder.Record(f.kind, OpChangePassword, OutcomeSuccess)
	f.log.Info().Str("principal_id", acc.ID).Int64("revoked_tokens", revoked).Msg("password cambiado")
	f.publish(ctx, events.PasswordChanged, acc, map[string]any{"sessions_revoked": revoked})
	return revoked, nil
}

func (f *Flow[P]) publish(ctx context.Context, t events.Type, acc *entity.Account, attrs map[string]any) {
	e := events.Event{
		Type:        t,
		Kind:        f.kind,
		PrincipalID: acc.ID,
		Email:       acc.Email,
		At:          f.now(),
		Attributes:  attrs,
	}
	if err := f.events.Publish(ctx, e); err != nil {
		f.log.Warn().Err(err).Str("event", string(t)).Msg("publicar evento de cuenta")
	}
}

func identityOf(acc *entity.Account) credential.Identity {
	return credential.Identity{Username: acc.Username, Email: acc.Email, FullName: acc.FullName}
}
