package domain

import (
	"errors"
	"sort"
	"strings"
)

// Errores de dominio (sin dependencias externas).
var (
	ErrNotFound           = errors.New("recurso no encontrado")
	ErrInvalidInput       = errors.New("entrada inválida")
	ErrDuplicateEmail     = errors.New("el email ya está registrado")
	ErrDuplicateUsername  = errors.New("el username ya está registrado")
	ErrInvalidCredentials = errors.New("credenciales inválidas")
	ErrAccountDisabled    = errors.New("cuenta deshabilitada")
	ErrPasswordMismatch   = errors.New("las contraseñas no coinciden")
	ErrWrongOldPassword   = errors.New("la contraseña actual es incorrecta")
	ErrUnauthorized       = errors.New("no autorizado")
)

// FieldErrors agrupa mensajes por campo (campo -> mensajes). La clave "non_field_errors"
// se usa para errores que no pertenecen a un campo concreto.
type FieldErrors map[string][]string

// NonFieldErrors clave para errores generales del formulario.
const NonFieldErrors = "non_field_errors"

// Add agrega un mensaje al campo.
func (f FieldErrors) Add(field, msg string) {
	f[field] = append(f[field], msg)
}

// Empty indica si no hay errores.
func (f FieldErrors) Empty() bool { return len(f) == 0 }

// Err devuelve *ValidationError si hay errores, nil si no.
func (f FieldErrors) Err() error {
	if f.Empty() {
		return nil
	}
	return &ValidationError{Fields: f}
}

// ValidationError error corregible por el cliente (400). Cause conserva el error
// tipado original cuando hay uno solo (p. ej. ErrPasswordMismatch o un error de email).
type ValidationError struct {
	Fields FieldErrors
	Cause  error
}

// NewValidationError crea un error de validación de un solo campo.
func NewValidationError(field, msg string, cause error) *ValidationError {
	return &ValidationError{Fields: FieldErrors{field: {msg}}, Cause: cause}
}

func (e *ValidationError) Error() string {
	keys := make([]string, 0, len(e.Fields))
	for k := range e.Fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, k+": "+strings.Join(e.Fields[k], "; "))
	}
	return "validación: " + strings.Join(parts, ", ")
}

func (e *ValidationError) Unwrap() error { return e.Cause }

// Is permite errors.Is(err, ErrInvalidInput) para cualquier ValidationError.
func (e *ValidationError) Is(target error) bool { return target == ErrInvalidInput }
