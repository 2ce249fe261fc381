package entity

import (
	"strings"
	"time"

	"github.com/jhoicas/origon-auth/internal/domain"
)

// Kind identifica la variante de principal. Cada variante tiene su propia colección
// (emails y usernames son únicos dentro de la variante, no entre variantes).
type Kind string

const (
	KindUser Kind = "user"
	KindHost Kind = "host"
)

// PasswordHasher hashea y compara contraseñas (bcrypt en producción).
type PasswordHasher interface {
	Hash(plain string) (string, error)
	Compare(hash, plain string) bool
}

// Account campos de identidad y estado comunes a User y Host.
type Account struct {
	ID           string
	Username     string
	Email        string // canónico: minúsculas, sin espacios
	PasswordHash string // nunca texto plano
	FullName     string
	PhoneNumber  string
	IsActive     bool
	DateJoined   time.Time
	LastLogin    *time.Time
}

// SetPassword reemplaza el hash con el de plain.
func (a *Account) SetPassword(h PasswordHasher, plain string) error {
	hash, err := h.Hash(plain)
	if err != nil {
		return err
	}
	a.PasswordHash = hash
	return nil
}

// CheckPassword compara plain contra el hash guardado.
func (a *Account) CheckPassword(h PasswordHasher, plain string) bool {
	if a.PasswordHash == "" {
		return false
	}
	return h.Compare(a.PasswordHash, plain)
}

// Authenticatable contrato compartido por las dos variantes de principal.
type Authenticatable interface {
	Base() *Account
	Kind() Kind
	// PrepareRegistration aplica los valores por defecto de alta y descarta campos que
	// el propio principal no puede fijar (verificación, privilegios).
	PrepareRegistration() domain.FieldErrors
	// ProfileFields lista blanca de campos editables por autoservicio.
	ProfileFields() []string
	// ApplyProfile aplica cambios de perfil; ignora campos fuera de la lista blanca.
	ApplyProfile(fields map[string]string) error
}

// Campos de perfil comunes.
const (
	FieldFullName    = "full_name"
	FieldPhoneNumber = "phone_number"
)

var userProfileFields = []string{FieldFullName, FieldPhoneNumber}

// User cuenta de usuario final.
type User struct {
	Account
	IsStaff     bool
	IsSuperuser bool
}

var _ Authenticatable = (*User)(nil)

func (u *User) Base() *Account { return &u.Account }
func (u *User) Kind() Kind     { return KindUser }

// PrepareRegistration: un usuario nunca se registra con privilegios.
func (u *User) PrepareRegistration() domain.FieldErrors {
	u.IsActive = true
	u.IsStaff = false
	u.IsSuperuser = false
	return domain.FieldErrors{}
}

func (u *User) ProfileFields() []string { return userProfileFields }

func (u *User) ApplyProfile(fields map[string]string) error {
	for k, v := range fields {
		switch k {
		case FieldFullName:
			u.FullName = v
		case FieldPhoneNumber:
			u.PhoneNumber = v
		}
	}
	return nil
}

// ShortName primer nombre o, si no hay nombre, el username.
func (u *User) ShortName() string {
	if f := strings.Fields(u.FullName); len(f) > 0 {
		return f[0]
	}
	return u.Username
}

// Clone copia profunda (LastLogin incluido).
func (u *User) Clone() *User {
	c := *u
	c.LastLogin = cloneTime(u.LastLogin)
	return &c
}

func cloneTime(t *time.Time) *time.Time {
	if t == nil {
		return nil
	}
	v := *t
	return &v
}

// IsAllowedField indica si name está en la lista blanca de p.
func IsAllowedField(p Authenticatable, name string) bool {
	for _, f := range p.ProfileFields() {
		if f == name {
			return true
		}
	}
	return false
}
