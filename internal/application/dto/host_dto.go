package dto

import "time"

// RegisterHostRequest entrada para registro de host. business_type vacío = individual.
type RegisterHostRequest struct {
	Username        string `json:"username" validate:"required,max=150"`
	Email           string `json:"email" validate:"required,max=254"`
	FullName        string `json:"full_name" validate:"required,max=255"`
	PhoneNumber     string `json:"phone_number" validate:"required,max=15"`
	BusinessName    string `json:"business_name" validate:"omitempty,max=255"`
	BusinessLicense string `json:"business_license" validate:"omitempty,max=100"`
	BusinessType    string `json:"business_type" validate:"omitempty,oneof=individual company agency"`
	Address         string `json:"address"`
	City            string `json:"city" validate:"omitempty,max=100"`
	State           string `json:"state" validate:"omitempty,max=100"`
	Country         string `json:"country" validate:"omitempty,max=100"`
	PostalCode      string `json:"postal_code" validate:"omitempty,max=20"`
	Bio             string `json:"bio"`
	Password        string `json:"password" validate:"required,max=128"`
	PasswordConfirm string `json:"password_confirm" validate:"required,max=128"`
}

// UpdateHostProfileRequest campos editables por el host (nil = sin cambio).
// is_verified no está: solo lo cambia la vía administrativa.
type UpdateHostProfileRequest struct {
	FullName        *string `json:"full_name" validate:"omitempty,max=255"`
	PhoneNumber     *string `json:"phone_number" validate:"omitempty,max=15"`
	BusinessName    *string `json:"business_name" validate:"omitempty,max=255"`
	BusinessLicense *string `json:"business_license" validate:"omitempty,max=100"`
	BusinessType    *string `json:"business_type" validate:"omitempty,oneof=individual company agency"`
	Address         *string `json:"address"`
	City            *string `json:"city" validate:"omitempty,max=100"`
	State           *string `json:"state" validate:"omitempty,max=100"`
	Country         *string `json:"country" validate:"omitempty,max=100"`
	PostalCode      *string `json:"postal_code" validate:"omitempty,max=20"`
	Bio             *string `json:"bio"`
	ProfileImage    *string `json:"profile_image" validate:"omitempty,url,max=200"`
}

// HostResponse proyección pública de un host.
type HostResponse struct {
	ID              string    `json:"id"`
	Username        string    `json:"username"`
	Email           string    `json:"email"`
	FullName        string    `json:"full_name"`
	PhoneNumber     string    `json:"phone_number"`
	BusinessName    string    `json:"business_name"`
	BusinessLicense string    `json:"business_license"`
	BusinessType    string    `json:"business_type"`
	Address         string    `json:"address"`
	City            string    `json:"city"`
	State           string    `json:"state"`
	Country         string    `json:"country"`
	PostalCode      string    `json:"postal_code"`
	IsVerified      bool      `json:"is_verified"`
	Bio             string    `json:"bio"`
	ProfileImage    string    `json:"profile_image"`
	DateJoined      time.Time `json:"date_joined"`
	IsActive        bool      `json:"is_active"`
}

// HostAuthResponse salida de registro y login de host.
type HostAuthResponse struct {
	Message string       `json:"message"`
	Host    HostResponse `json:"host"`
	Token   string       `json:"token"`
}

// VerificationStatusResponse estado de verificación del host.
type VerificationStatusResponse struct {
	IsVerified        bool   `json:"is_verified"`
	Message           string `json:"message"`
	CanListProperties bool   `json:"can_list_properties"`
}
