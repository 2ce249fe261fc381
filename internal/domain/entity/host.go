package entity

import (
	"fmt"

	"github.com/jhoicas/origon-auth/internal/domain"
)

// Tipos de negocio válidos para Host.
const (
	BusinessIndividual = "individual"
	BusinessCompany    = "company"
	BusinessAgency     = "agency"
)

// Campos de perfil exclusivos de Host.
const (
	FieldBusinessName    = "business_name"
	FieldBusinessLicense = "business_license"
	FieldBusinessType    = "business_type"
	FieldAddress         = "address"
	FieldCity            = "city"
	FieldState           = "state"
	FieldCountry         = "country"
	FieldPostalCode      = "postal_code"
	FieldBio             = "bio"
	FieldProfileImage    = "profile_image"
)

var hostProfileFields = []string{
	FieldFullName, FieldPhoneNumber,
	FieldBusinessName, FieldBusinessLicense, FieldBusinessType,
	FieldAddress, FieldCity, FieldState, FieldCountry, FieldPostalCode,
	FieldBio, FieldProfileImage,
}

// Host cuenta de anfitrión (propietario o administrador de propiedades).
// IsVerified solo cambia por la vía administrativa.
type Host struct {
	Account
	BusinessName          string
	BusinessLicense       string
	BusinessType          string
	Address               string
	City                  string
	State                 string
	Country               string
	PostalCode            string
	Bio                   string
	ProfileImage          string
	IsVerified            bool
	VerificationDocuments string
}

var _ Authenticatable = (*Host)(nil)

func (h *Host) Base() *Account { return &h.Account }
func (h *Host) Kind() Kind     { return KindHost }

func (h *Host) PrepareRegistration() domain.FieldErrors {
	errs := domain.FieldErrors{}
	h.IsActive = true
	h.IsVerified = false
	h.VerificationDocuments = ""
	if h.BusinessType == "" {
		h.BusinessType = BusinessIndividual
	}
	if !ValidBusinessType(h.BusinessType) {
		errs.Add(FieldBusinessType, fmt.Sprintf("\"%s\" is not a valid choice.", h.BusinessType))
	}
	return errs
}

func (h *Host) ProfileFields() []string { return hostProfileFields }

func (h *Host) ApplyProfile(fields map[string]string) error {
	for k, v := range fields {
		switch k {
		case FieldFullName:
			h.FullName = v
		case FieldPhoneNumber:
			h.PhoneNumber = v
		case FieldBusinessName:
			h.BusinessName = v
		case FieldBusinessLicense:
			h.BusinessLicense = v
		case FieldBusinessType:
			if !ValidBusinessType(v) {
				return domain.NewValidationError(FieldBusinessType, fmt.Sprintf("\"%s\" is not a valid choice.", v), nil)
			}
			h.BusinessType = v
		case FieldAddress:
			h.Address = v
		case FieldCity:
			h.City = v
		case FieldState:
			h.State = v
		case FieldCountry:
			h.Country = v
		case FieldPostalCode:
			h.PostalCode = v
		case FieldBio:
			h.Bio = v
		case FieldProfileImage:
			h.ProfileImage = v
		}
	}
	return nil
}

// CanListProperties = verificado y activo.
func (h *Host) CanListProperties() bool { return h.IsVerified && h.IsActive }

// VerificationMessage texto para el estado de verificación.
func (h *Host) VerificationMessage() string {
	if h.IsVerified {
		return "Verified host"
	}
	return "Pending verification"
}

// BusinessDisplayName nombre comercial o, en su defecto, el nombre completo.
func (h *Host) BusinessDisplayName() string {
	if h.BusinessName != "" {
		return h.BusinessName
	}
	return h.FullName
}

func (h *Host) Clone() *Host {
	c := *h
	c.LastLogin = cloneTime(h.LastLogin)
	return &c
}

// ValidBusinessType valida el enum individual | company | agency.
func ValidBusinessType(t string) bool {
	switch t {
	case BusinessIndividual, BusinessCompany, BusinessAgency:
		return true
	}
	return false
}
