package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/jhoicas/origon-auth/internal/application/auth"
	"github.com/jhoicas/origon-auth/internal/application/dto"
	"github.com/jhoicas/origon-auth/internal/domain/entity"
)

// HostHandler endpoints de anfitriones (/host).
type HostHandler struct {
	accountHandler[*entity.Host]
}

// NewHostHandler construye el handler de hosts.
func NewHostHandler(flow *auth.Flow[*entity.Host], log zerolog.Logger) *HostHandler {
	return &HostHandler{accountHandler[*entity.Host]{
		flow: flow,
		errs: errorResponder{kind: entity.KindHost, log: log},
		msgs: accountMessages{
			registered: "Host registered successfully",
			loggedIn:   "Host login successful",
			loggedOut:  "Host successfully logged out",
		},
		project: func(h *entity.Host) any { return dto.ToHostResponse(h) },
		envelope: func(msg string, h *entity.Host, token string) any {
			return dto.HostAuthResponse{Message: msg, Host: dto.ToHostResponse(h), Token: token}
		},
	}}
}

// Register godoc
// @Summary      Registrar host
// @Description  business_type por defecto individual; is_verified siempre false al registrarse.
// @Tags         host
// @Accept       json
// @Produce      json
// @Param        body  body  dto.RegisterHostRequest  true  "Datos de registro"
// @Success      201   {object}  dto.HostAuthResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /host/register [post]
func (h *HostHandler) Register(c *fiber.Ctx) error {
	var in dto.RegisterHostRequest
	parsed, err := bind(c, &in)
	if !parsed {
		return invalidBody(c)
	}
	if err != nil {
		return h.errs.respond(c, err)
	}
	host, token, err := h.flow.Register(c.UserContext(), in.ToHost(), in.Password, in.PasswordConfirm)
	if err != nil {
		return h.errs.respond(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(h.envelope(h.msgs.registered, host, token))
}

// Login godoc
// @Summary      Iniciar sesión (host)
// @Tags         host
// @Accept       json
// @Produce      json
// @Param        body  body  dto.LoginRequest  true  "email, password"
// @Success      200   {object}  dto.HostAuthResponse
// @Failure      401   {object}  dto.ErrorResponse
// @Failure      403   {object}  dto.ErrorResponse
// @Router       /host/login [post]
func (h *HostHandler) Login(c *fiber.Ctx) error { return h.login(c) }

// Logout godoc
// @Summary      Cerrar sesión (host)
// @Tags         host
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.MessageResponse
// @Router       /host/logout [post]
func (h *HostHandler) Logout(c *fiber.Ctx) error { return h.logout(c) }

// Profile godoc
// @Summary      Perfil del host autenticado
// @Tags         host
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.HostResponse
// @Router       /host/profile [get]
func (h *HostHandler) Profile(c *fiber.Ctx) error { return h.detail(c) }

// Detail godoc
// @Summary      Datos del host autenticado
// @Tags         host
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.HostResponse
// @Router       /host/details [get]
func (h *HostHandler) Detail(c *fiber.Ctx) error { return h.detail(c) }

// UpdateProfile godoc
// @Summary      Actualizar perfil (host)
// @Description  is_verified no es editable por esta vía.
// @Tags         host
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.UpdateHostProfileRequest  true  "Campos editables"
// @Success      200   {object}  dto.HostResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /host/profile [put]
func (h *HostHandler) UpdateProfile(c *fiber.Ctx) error {
	var in dto.UpdateHostProfileRequest
	parsed, err := bind(c, &in)
	if !parsed {
		return invalidBody(c)
	}
	if err != nil {
		return h.errs.respond(c, err)
	}
	return h.updateProfile(c, in.Fields())
}

// ChangePassword godoc
// @Summary      Cambiar contraseña (host)
// @Tags         host
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.ChangePasswordRequest  true  "old_password, new_password, new_password_confirm"
// @Success      200   {object}  dto.MessageResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /host/change-password [post]
func (h *HostHandler) ChangePassword(c *fiber.Ctx) error { return h.changePassword(c) }

// VerificationStatus godoc
// @Summary      Estado de verificación del host
// @Tags         host
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.VerificationStatusResponse
// @Router       /host/verification-status [get]
func (h *HostHandler) VerificationStatus(c *fiber.Ctx) error {
	host, ok := GetPrincipal[*entity.Host](c)
	if !ok {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: CodeMissingToken, Message: "Authentication credentials were not provided."})
	}
	return c.JSON(dto.ToVerificationStatus(host))
}
