package dto

import "github.com/jhoicas/origon-auth/internal/domain/entity"

// ToUserResponse proyección pública de un usuario.
func ToUserResponse(u *entity.User) UserResponse {
	return UserResponse{
		ID:          u.ID,
		Username:    u.Username,
		Email:       u.Email,
		FullName:    u.FullName,
		PhoneNumber: u.PhoneNumber,
		DateJoined:  u.DateJoined,
		IsActive:    u.IsActive,
	}
}

// ToHostResponse proyección pública de un host.
func ToHostResponse(h *entity.Host) HostResponse {
	return HostResponse{
		ID:              h.ID,
		Username:        h.Username,
		Email:           h.Email,
		FullName:        h.FullName,
		PhoneNumber:     h.PhoneNumber,
		BusinessName:    h.BusinessName,
		BusinessLicense: h.BusinessLicense,
		BusinessType:    h.BusinessType,
		Address:         h.Address,
		City:            h.City,
		State:           h.State,
		Country:         h.Country,
		PostalCode:      h.PostalCode,
		IsVerified:      h.IsVerified,
		Bio:             h.Bio,
		ProfileImage:    h.ProfileImage,
		DateJoined:      h.DateJoined,
		IsActive:        h.IsActive,
	}
}

// ToVerificationStatus deriva can_list_properties = is_verified && is_active.
func ToVerificationStatus(h *entity.Host) VerificationStatusResponse {
	return VerificationStatusResponse{
		IsVerified:        h.IsVerified,
		Message:           h.VerificationMessage(),
		CanListProperties: h.CanListProperties(),
	}
}

// Fields mapa columna -> valor con los campos presentes.
func (r UpdateUserProfileRequest) Fields() map[string]string {
	out := map[string]string{}
	put(out, entity.FieldFullName, r.FullName)
	put(out, entity.FieldPhoneNumber, r.PhoneNumber)
	return out
}

// Fields mapa columna -> valor con los campos presentes.
func (r UpdateHostProfileRequest) Fields() map[string]string {
	out := map[string]string{}
	put(out, entity.FieldFullName, r.FullName)
	put(out, entity.FieldPhoneNumber, r.PhoneNumber)
	put(out, entity.FieldBusinessName, r.BusinessName)
	put(out, entity.FieldBusinessLicense, r.BusinessLicense)
	put(out, entity.FieldBusinessType, r.BusinessType)
	put(out, entity.FieldAddress, r.Address)
	put(out, entity.FieldCity, r.City)
	put(out, entity.FieldState, r.State)
	put(out, entity.FieldCountry, r.Country)
	put(out, entity.FieldPostalCode, r.PostalCode)
	put(out, entity.FieldBio, r.Bio)
	put(out, entity.FieldProfileImage, r.ProfileImage)
	return out
}

func put(m map[string]string, k string, v *string) {
	if v != nil {
		m[k] = *v
	}
}

// ToUser construye el borrador de registro.
func (r RegisterUserRequest) ToUser() *entity.User {
	return &entity.User{Account: entity.Account{
		Username:    r.Username,
		Email:       r.Email,
		FullName:    r.FullName,
		PhoneNumber: r.PhoneNumber,
	}}
}

// ToHost construye el borrador de registro.
func (r RegisterHostRequest) ToHost() *entity.Host {
	return &entity.Host{
		Account: entity.Account{
			Username:    r.Username,
			Email:       r.Email,
			FullName:    r.FullName,
			PhoneNumber: r.PhoneNumber,
		},
		BusinessName:    r.BusinessName,
		BusinessLicense: r.BusinessLicense,
		BusinessType:    r.BusinessType,
		Address:         r.Address,
		City:            r.City,
		State:           r.State,
		Country:         r.Country,
		PostalCode:      r.PostalCode,
		Bio:             r.Bio,
	}
}
