package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/jhoicas/origon-auth/internal/application/auth"
	"github.com/jhoicas/origon-auth/internal/application/dto"
	"github.com/jhoicas/origon-auth/internal/domain/entity"
)

// UserHandler endpoints de usuarios finales (/auth).
type UserHandler struct {
	accountHandler[*entity.User]
}

// NewUserHandler construye el handler de usuarios.
func NewUserHandler(flow *auth.Flow[*entity.User], log zerolog.Logger) *UserHandler {
	return &UserHandler{accountHandler[*entity.User]{
		flow: flow,
		errs: errorResponder{kind: entity.KindUser, log: log},
		msgs: accountMessages{
			registered: "User registered successfully",
			loggedIn:   "Login successful",
			loggedOut:  "Successfully logged out",
		},
		project: func(u *entity.User) any { return dto.ToUserResponse(u) },
		envelope: func(msg string, u *entity.User, token string) any {
			return dto.UserAuthResponse{Message: msg, User: dto.ToUserResponse(u), Token: token}
		},
	}}
}

// Register godoc
// @Summary      Registrar usuario
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body  dto.RegisterUserRequest  true  "Datos de registro"
// @Success      201   {object}  dto.UserAuthResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /auth/register [post]
func (h *UserHandler) Register(c *fiber.Ctx) error {
	var in dto.RegisterUserRequest
	parsed, err := bind(c, &in)
	if !parsed {
		return invalidBody(c)
	}
	if err != nil {
		return h.errs.respond(c, err)
	}
	u, token, err := h.flow.Register(c.UserContext(), in.ToUser(), in.Password, in.PasswordConfirm)
	if err != nil {
		return h.errs.respond(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(h.envelope(h.msgs.registered, u, token))
}

// Login godoc
// @Summary      Iniciar sesión (usuario)
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body  dto.LoginRequest  true  "email, password"
// @Success      200   {object}  dto.UserAuthResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      401   {object}  dto.ErrorResponse
// @Failure      403   {object}  dto.ErrorResponse
// @Router       /auth/login [post]
func (h *UserHandler) Login(c *fiber.Ctx) error { return h.login(c) }

// Logout godoc
// @Summary      Cerrar sesión (usuario)
// @Tags         auth
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.MessageResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      401  {object}  dto.ErrorResponse
// @Router       /auth/logout [post]
func (h *UserHandler) Logout(c *fiber.Ctx) error { return h.logout(c) }

// Profile godoc
// @Summary      Perfil del usuario autenticado
// @Tags         auth
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.UserResponse
// @Failure      401  {object}  dto.ErrorResponse
// @Router       /auth/profile [get]
func (h *UserHandler) Profile(c *fiber.Ctx) error { return h.detail(c) }

// Detail godoc
// @Summary      Datos del usuario autenticado
// @Tags         auth
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.UserResponse
// @Router       /auth/user [get]
func (h *UserHandler) Detail(c *fiber.Ctx) error { return h.detail(c) }

// UpdateProfile godoc
// @Summary      Actualizar perfil (usuario)
// @Description  Solo full_name y phone_number; el resto de campos se ignora.
// @Tags         auth
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.UpdateUserProfileRequest  true  "Campos editables"
// @Success      200   {object}  dto.UserResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /auth/profile [put]
func (h *UserHandler) UpdateProfile(c *fiber.Ctx) error {
	var in dto.UpdateUserProfileRequest
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
// @Summary      Cambiar contraseña (usuario)
// @Description  Revoca todos los tokens del usuario, incluido el usado en la petición.
// @Tags         auth
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.ChangePasswordRequest  true  "old_password, new_password, new_password_confirm"
// @Success      200   {object}  dto.MessageResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /auth/change-password [post]
func (h *UserHandler) ChangePassword(c *fiber.Ctx) error { return h.changePassword(c) }
