package dto

import "time"

// RegisterUserRequest entrada para registro de usuario final.
type RegisterUserRequest struct {
	Username        string `json:"username" validate:"required,max=150"`
	Email           string `json:"email" validate:"required,max=254"`
	FullName        string `json:"full_name" validate:"required,max=255"`
	PhoneNumber     string `json:"phone_number" validate:"omitempty,max=15"`
	Password        string `json:"password" validate:"required,max=128"`
	PasswordConfirm string `json:"password_confirm" validate:"required,max=128"`
}

// LoginRequest entrada para login (User y Host). Los requeridos se validan en el caso de uso
// para devolver el mensaje genérico "Must include email and password.".
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// ChangePasswordRequest entrada para cambio de contraseña (User y Host).
type ChangePasswordRequest struct {
	OldPassword        string `json:"old_password" validate:"required,max=128"`
	NewPassword        string `json:"new_password" validate:"required,max=128"`
	NewPasswordConfirm string `json:"new_password_confirm" validate:"required,max=128"`
}

// UpdateUserProfileRequest campos editables por el usuario (nil = sin cambio).
type UpdateUserProfileRequest struct {
	FullName    *string `json:"full_name" validate:"omitempty,max=255"`
	PhoneNumber *string `json:"phone_number" validate:"omitempty,max=15"`
}

// UserResponse proyección pública de un usuario (sin hash de contraseña).
type UserResponse struct {
	ID          string    `json:"id"`
	Username    string    `json:"username"`
	Email       string    `json:"email"`
	FullName    string    `json:"full_name"`
	PhoneNumber string    `json:"phone_number"`
	DateJoined  time.Time `json:"date_joined"`
	IsActive    bool      `json:"is_active"`
}

// UserAuthResponse salida de registro y login.
type UserAuthResponse struct {
	Message string       `json:"message"`
	User    UserResponse `json:"user"`
	Token   string       `json:"token"`
}
