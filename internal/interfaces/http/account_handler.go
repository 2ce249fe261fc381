package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/origon-auth/internal/application/auth"
	"github.com/jhoicas/origon-auth/internal/application/dto"
	"github.com/jhoicas/origon-auth/internal/domain/entity"
)

// accountMessages textos de respuesta de una variante.
type accountMessages struct {
	registered string
	loggedIn   string
	loggedOut  string
}

// accountHandler endpoints comunes a User y Host: login, logout, detalle y cambio de contraseña.
type accountHandler[P entity.Authenticatable] struct {
	flow     *auth.Flow[P]
	errs     errorResponder
	msgs     accountMessages
	project  func(P) any
	envelope func(message string, p P, token string) any
}

func (h *accountHandler[P]) login(c *fiber.Ctx) error {
	var in dto.LoginRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	p, token, err := h.flow.Login(c.UserContext(), in.Email, in.Password)
	if err != nil {
		return h.errs.respond(c, err)
	}
	return c.JSON(h.envelope(h.msgs.loggedIn, p, token))
}

func (h *accountHandler[P]) logout(c *fiber.Ctx) error {
	p, ok := GetPrincipal[P](c)
	if !ok {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: CodeMissingToken, Message: "Authentication credentials were not provided."})
	}
	if err := h.flow.Logout(c.UserContext(), p, GetToken(c)); err != nil {
		h.errs.log.Error().Err(err).Str("principal_id", p.Base().ID).Msg("logout")
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: CodeLogoutFailed, Message: "Error logging out"})
	}
	return c.JSON(dto.MessageResponse{Message: h.msgs.loggedOut})
}

func (h *accountHandler[P]) detail(c *fiber.Ctx) error {
	p, ok := GetPrincipal[P](c)
	if !ok {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: CodeMissingToken, Message: "Authentication credentials were not provided."})
	}
	return c.JSON(h.project(p))
}

func (h *accountHandler[P]) changePassword(c *fiber.Ctx) error {
	p, ok := GetPrincipal[P](c)
	if !ok {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: CodeMissingToken, Message: "Authentication credentials were not provided."})
	}
	var in dto.ChangePasswordRequest
	parsed, err := bind(c, &in)
	if !parsed {
		return invalidBody(c)
	}
	if err != nil {
		return h.errs.respond(c, err)
	}
	if _, err := h.flow.ChangePassword(c.UserContext(), p, in.OldPassword, in.NewPassword, in.NewPasswordConfirm); err != nil {
		return h.errs.respond(c, err)
	}
	return c.JSON(dto.MessageResponse{Message: "Password changed successfully. Please login again."})
}

func (h *accountHandler[P]) updateProfile(c *fiber.Ctx, fields map[string]string) error {
	p, ok := GetPrincipal[P](c)
	if !ok {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: CodeMissingToken, Message: "Authentication credentials were not provided."})
	}
	updated, err := h.flow.UpdateProfile(c.UserContext(), p, fields)
	if err != nil {
		return h.errs.respond(c, err)
	}
	return c.JSON(h.project(updated))
}
