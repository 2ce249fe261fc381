package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/jhoicas/origon-auth/internal/application/dto"
	"github.com/jhoicas/origon-auth/internal/domain"
	"github.com/jhoicas/origon-auth/internal/domain/entity"
)

// Códigos de error de la API.
const (
	CodeInvalidBody        = "INVALID_BODY"
	CodeValidation         = "VALIDATION"
	CodeInvalidCredentials = "INVALID_CREDENTIALS"
	CodeAccountDisabled    = "ACCOUNT_DISABLED"
	CodeMissingToken       = "MISSING_TOKEN"
	CodeInvalidToken       = "INVALID_TOKEN"
	CodeNotFound           = "NOT_FOUND"
	CodeLogoutFailed       = "LOGOUT_FAILED"
	CodeInternal           = "INTERNAL"
)

// errorResponder traduce errores de aplicación a respuestas HTTP para una variante.
// Los errores de infraestructura se registran y se devuelven como 500 genérico.
type errorResponder struct {
	kind entity.Kind
	log  zerolog.Logger
}

func (r errorResponder) respond(c *fiber.Ctx, err error) error {
	var verr *domain.ValidationError
	switch {
	case errors.As(err, &verr):
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Code:    CodeValidation,
			Message: "Invalid input.",
			Fields:  verr.Fields,
		})
	case errors.Is(err, domain.ErrInvalidCredentials):
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: CodeInvalidCredentials, Message: "Invalid email or password."})
	case errors.Is(err, domain.ErrAccountDisabled):
		return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{Code: CodeAccountDisabled, Message: accountLabel(r.kind) + " account is disabled."})
	case errors.Is(err, domain.ErrUnauthorized):
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: CodeInvalidToken, Message: "Invalid token."})
	case errors.Is(err, domain.ErrNotFound):
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: CodeNotFound, Message: "Not found."})
	case errors.Is(err, domain.ErrInvalidInput):
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: CodeValidation, Message: "Invalid input."})
	}
	r.log.Error().Err(err).Str("kind", string(r.kind)).Str("path", c.Path()).Msg("error interno")
	return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: CodeInternal, Message: "Internal server error."})
}

func invalidBody(c *fiber.Ctx) error {
	return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: CodeInvalidBody, Message: "Malformed request body."})
}

func accountLabel(k entity.Kind) string {
	if k == entity.KindHost {
		return "Host"
	}
	return "User"
}

// ErrorHandler handler de errores de Fiber (rutas inexistentes, panics recuperados, etc.).
func ErrorHandler(log zerolog.Logger) fiber.ErrorHandler {
	return func(c *fiber.Ctx, err error) error {
		code := fiber.StatusInternalServerError
		var fe *fiber.Error
		if errors.As(err, &fe) {
			code = fe.Code
		}
		if code >= fiber.StatusInternalServerError {
			log.Error().Err(err).Str("path", c.Path()).Msg("error no controlado")
			return c.Status(code).JSON(dto.ErrorResponse{Code: CodeInternal, Message: "Internal server error."})
		}
		return c.Status(code).JSON(dto.ErrorResponse{Code: httpCode(code), Message: fe.Message})
	}
}

func httpCode(status int) string {
	switch status {
	case fiber.StatusNotFound:
		return CodeNotFound
	case fiber.StatusMethodNotAllowed:
		return "METHOD_NOT_ALLOWED"
	case fiber.StatusUnauthorized:
		return CodeInvalidToken
	default:
		return "HTTP_ERROR"
	}
}
