package entity

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/origon-auth/internal/domain"
)

type plainHasher struct{}

func (plainHasher) Hash(p string) (string, error) { return "h:" + p, nil }
func (plainHasher) Compare(h, p string) bool     { return h == "h:"+p }

func TestAccount_Password(t *testing.T) {
	var a Account
	assert.False(t, a.CheckPassword(plainHasher{}, ""), "sin hash nunca coincide")

	require.NoError(t, a.SetPassword(plainHasher{}, "secreto"))
	assert.Equal(t, "h:secreto", a.PasswordHash)
	assert.True(t, a.CheckPassword(plainHasher{}, "secreto"))
	assert.False(t, a.CheckPassword(plainHasher{}, "otro"))
}

func TestUser_PrepareRegistration(t *testing.T) {
	u := &User{IsStaff: true, IsSuperuser: true}
	assert.True(t, u.PrepareRegistration().Empty())
	assert.True(t, u.IsActive)
	assert.False(t, u.IsStaff)
	assert.False(t, u.IsSuperuser)
}

func TestUser_ShortNameYClone(t *testing.T) {
	now := time.Now()
	u := &User{Account: Account{Username: "ana", FullName: "Ana María Pérez", LastLogin: &now}}
	assert.Equal(t, "Ana", u.ShortName())
	assert.Equal(t, "ana", (&User{Account: Account{Username: "ana"}}).ShortName())

	c := u.Clone()
	c.FullName = "Otra"
	*c.LastLogin = now.Add(time.Hour)
	assert.Equal(t, "Ana María Pérez", u.FullName)
	assert.Equal(t, now, *u.LastLogin)
}

func TestHost_PrepareRegistration(t *testing.T) {
	h := &Host{IsVerified: true, VerificationDocuments: "x"}
	assert.True(t, h.PrepareRegistration().Empty())
	assert.Equal(t, BusinessIndividual, h.BusinessType)
	assert.False(t, h.IsVerified)
	assert.Empty(t, h.VerificationDocuments)
	assert.True(t, h.IsActive)

	bad := &Host{BusinessType: "ong"}
	errs := bad.PrepareRegistration()
	assert.Equal(t, []string{`"ong" is not a valid choice.`}, errs[FieldBusinessType])
}

func TestHost_ApplyProfile(t *testing.T) {
	h := &Host{BusinessType: BusinessIndividual}
	require.NoError(t, h.ApplyProfile(map[string]string{
		FieldBusinessName: "Casa Azul",
		FieldCity:         "Medellín",
		"is_verified":     "true",
	}))
	assert.Equal(t, "Casa Azul", h.BusinessName)
	assert.Equal(t, "Medellín", h.City)
	assert.False(t, h.IsVerified)

	err := h.ApplyProfile(map[string]string{FieldBusinessType: "ong"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
	assert.Equal(t, BusinessIndividual, h.BusinessType)
}

func TestHost_Derivados(t *testing.T) {
	h := &Host{Account: Account{FullName: "Ana Pérez", IsActive: true}}
	assert.False(t, h.CanListProperties())
	assert.Equal(t, "Pending verification", h.VerificationMessage())
	assert.Equal(t, "Ana Pérez", h.BusinessDisplayName())

	h.IsVerified = true
	h.BusinessName = "Casa Azul"
	assert.True(t, h.CanListProperties())
	assert.Equal(t, "Verified host", h.VerificationMessage())
	assert.Equal(t, "Casa Azul", h.BusinessDisplayName())

	h.IsActive = false
	assert.False(t, h.CanListProperties())
}

func TestIsAllowedField(t *testing.T) {
	assert.True(t, IsAllowedField(&User{}, FieldFullName))
	assert.False(t, IsAllowedField(&User{}, FieldBusinessName))
	assert.True(t, IsAllowedField(&Host{}, FieldBusinessName))
	for _, f := range []string{"is_verified", "is_active", "email", "username", "id", "verification_documents"} {
		assert.False(t, IsAllowedField(&Host{}, f), f)
	}
}
