package http

import (
	"context"
	"errors"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/jhoicas/origon-auth/internal/application/dto"
	"github.com/jhoicas/origon-auth/internal/domain"
	"github.com/jhoicas/origon-auth/internal/domain/entity"
)

// Locals keys del principal autenticado en Fiber.
const (
	LocalPrincipal   = "principal"
	LocalPrincipalID = "principal_id"
	LocalToken       = "auth_token"
)

// authenticator resuelve el principal de un token (auth.Flow).
type authenticator[P entity.Authenticatable] interface {
	Authenticate(ctx context.Context, token string) (P, error)
}

// AuthMiddleware valida el token opaco del header Authorization y deja el principal en c.Locals.
// Acepta los esquemas "Bearer" y "Token".
func AuthMiddleware[P entity.Authenticatable](a authenticator[P], log zerolog.Logger) fiber.Handler {
	return func(c *fiber.Ctx) error {
		authHeader := c.Get(fiber.HeaderAuthorization)
		if authHeader == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: CodeMissingToken, Message: "Authentication credentials were not provided."})
		}
		token, ok := parseAuthorization(authHeader)
		if !ok {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: CodeInvalidToken, Message: "Invalid token header."})
		}
		p, err := a.Authenticate(c.UserContext(), token)
		if err != nil {
			if errors.Is(err, domain.ErrUnauthorized) {
				return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: CodeInvalidToken, Message: "Invalid token."})
			}
			log.Error().Err(err).Str("path", c.Path()).Msg("validar token")
			return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: CodeInternal, Message: "Internal server error."})
		}
		c.Locals(LocalPrincipal, p)
		c.Locals(LocalPrincipalID, p.Base().ID)
		c.Locals(LocalToken, token)
		return c.Next()
	}
}

func parseAuthorization(header string) (string, bool) {
	parts := strings.SplitN(strings.TrimSpace(header), " ", 2)
	if len(parts) != 2 {
		return "", false
	}
	if !strings.EqualFold(parts[0], "Bearer") && !strings.EqualFold(parts[0], "Token") {
		return "", false
	}
	token := strings.TrimSpace(parts[1])
	if token == "" || strings.ContainsAny(token, " \t") {
		return "", false
	}
	return token, true
}

// GetPrincipal devuelve el principal autenticado (después del middleware de auth).
func GetPrincipal[P entity.Authenticatable](c *fiber.Ctx) (P, bool) {
	p, ok := c.Locals(LocalPrincipal).(P)
	return p, ok
}

// GetPrincipalID devuelve el ID del principal autenticado.
func GetPrincipalID(c *fiber.Ctx) string {
	s, _ := c.Locals(LocalPrincipalID).(string)
	return s
}

// GetToken devuelve el token presentado en la petición.
func GetToken(c *fiber.Ctx) string {
	s, _ := c.Locals(LocalToken).(string)
	return s
}
