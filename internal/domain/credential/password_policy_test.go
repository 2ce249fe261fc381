package credential_test

import (
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/origon-auth/internal/domain/credential"
)

var testIdentity = credential.Identity{
	Username: "johnsmith",
	Email:    "john.smith@example.com",
	FullName: "John Smith",
}

func violations(t *testing.T, err error) credential.PasswordViolations {
	t.Helper()
	var v credential.PasswordViolations
	require.True(t, errors.As(err, &v), "se esperaba PasswordViolations, got %v", err)
	return v
}

func TestPasswordPolicy_Valida(t *testing.T) {
	p := credential.NewPasswordPolicy(credential.DefaultPasswordPolicyConfig())
	assert.NoError(t, p.Validate("Sunset-Harbor-42", testIdentity))
	assert.NoError(t, p.Validate("k9#Lq!vZ2@xw", testIdentity))
}

func TestPasswordPolicy_EntirelyNumeric(t *testing.T) {
	cfg := credential.DefaultPasswordPolicyConfig()
	cfg.RejectCommon = false
	p := credential.NewPasswordPolicy(cfg)

	v := violations(t, p.Validate("12345678", credential.Identity{}))
	assert.True(t, v.Has(credential.PasswordEntirelyNumeric))
	assert.Contains(t, v.Messages(), "This password is entirely numeric.")
}

func TestPasswordPolicy_NumericDesactivada(t *testing.T) {
	cfg := credential.DefaultPasswordPolicyConfig()
	cfg.RejectNumeric = false
	cfg.RejectCommon = false
	p := credential.NewPasswordPolicy(cfg)

	assert.NoError(t, p.Validate("90817263", credential.Identity{}))
}

func TestPasswordPolicy_TooShort(t *testing.T) {
	p := credential.NewPasswordPolicy(credential.DefaultPasswordPolicyConfig())
	v := violations(t, p.Validate("aB3$x", credential.Identity{}))
	require.True(t, v.Has(credential.PasswordTooShort))
	assert.Contains(t, v.Error(), "at least 8 characters")
}

func TestPasswordPolicy_MinLengthConfigurable(t *testing.T) {
	cfg := credential.DefaultPasswordPolicyConfig()
	cfg.MinLength = 12
	p := credential.NewPasswordPolicy(cfg)

	v := violations(t, p.Validate("Sunset-Harb", credential.Identity{}))
	assert.True(t, v.Has(credential.PasswordTooShort))
	assert.NoError(t, p.Validate("Sunset-Harbor-42", credential.Identity{}))
}

func TestPasswordPolicy_TooCommon(t *testing.T) {
	p := credential.NewPasswordPolicy(credential.DefaultPasswordPolicyConfig())
	for _, pw := range []string{"password", "Password123", "qwertyuiop", "iloveyou"} {
		v := violations(t, p.Validate(pw, credential.Identity{}))
		assert.True(t, v.Has(credential.PasswordTooCommon), pw)
	}
}

func TestPasswordPolicy_TooCommonDesactivada(t *testing.T) {
	cfg := credential.DefaultPasswordPolicyConfig()
	cfg.RejectCommon = false
	p := credential.NewPasswordPolicy(cfg)

	err := p.Validate("iloveyou", credential.Identity{})
	if err != nil {
		assert.False(t, violations(t, err).Has(credential.PasswordTooCommon))
	}
}

func TestPasswordPolicy_TooSimilar(t *testing.T) {
	p := credential.NewPasswordPolicy(credential.DefaultPasswordPolicyConfig())

	v := violations(t, p.Validate("johnsmith1", testIdentity))
	require.True(t, v.Has(credential.PasswordTooSimilar))
	assert.Contains(t, v.Error(), "too similar to the username")
}

func TestPasswordPolicy_SimilitudDesactivada(t *testing.T) {
	cfg := credential.DefaultPasswordPolicyConfig()
	cfg.SimilarityCheck = false
	p := credential.NewPasswordPolicy(cfg)

	err := p.Validate("johnsmith1", testIdentity)
	if err != nil {
		assert.False(t, violations(t, err).Has(credential.PasswordTooSimilar))
	}
}

func TestPasswordPolicy_AcumulaViolaciones(t *testing.T) {
	p := credential.NewPasswordPolicy(credential.DefaultPasswordPolicyConfig())
	v := violations(t, p.Validate("123456", credential.Identity{}))
	assert.True(t, v.Has(credential.PasswordTooShort))
	assert.True(t, v.Has(credential.PasswordTooCommon))
	assert.True(t, v.Has(credential.PasswordEntirelyNumeric))
	assert.Len(t, v, 3)
}

func TestPasswordPolicy_TooLong(t *testing.T) {
	p := credential.NewPasswordPolicy(credential.DefaultPasswordPolicyConfig())
	v := violations(t, p.Validate(strings.Repeat("Ab3$", 20), credential.Identity{}))
	assert.True(t, v.Has(credential.PasswordTooLong))
	assert.Len(t, v, 1)
}

func TestPasswordPolicy_TooLong_CortaAntesDeReglasCaras(t *testing.T) {
	cfg := credential.DefaultPasswordPolicyConfig()
	cfg.MinScore = 4
	p := credential.NewPasswordPolicy(cfg)
	long := strings.Repeat("aB3$kQ9z", 10*1024/8)

	start := time.Now()
	v := violations(t, p.Validate(long, testIdentity))
	assert.Less(t, time.Since(start), 100*time.Millisecond)
	assert.Equal(t, []string{"This password is too long. It must contain at most 72 bytes."}, v.Messages())
}

func TestPasswordPolicy_ReglasPersonalizadasRespetanLimite(t *testing.T) {
	called := false
	spy := credential.PasswordRuleFunc(func(string, credential.Identity) *credential.PasswordError {
		called = true
		return nil
	})
	p := credential.NewPasswordPolicyFromRules(spy)

	v := violations(t, p.Validate(strings.Repeat("x", 73), credential.Identity{}))
	assert.True(t, v.Has(credential.PasswordTooLong))
	assert.False(t, called)
}

func TestPasswordPolicy_MinScore(t *testing.T) {
	cfg := credential.DefaultPasswordPolicyConfig()
	cfg.MinScore = 4
	cfg.RejectCommon = false
	p := credential.NewPasswordPolicy(cfg)

	v := violations(t, p.Validate("abcdefgh", credential.Identity{}))
	assert.True(t, v.Has(credential.PasswordTooWeak))
}

func TestPasswordPolicy_ReglasPersonalizadas(t *testing.T) {
	noX := credential.PasswordRuleFunc(func(pw string, _ credential.Identity) *credential.PasswordError {
		if strings.Contains(pw, "x") {
			return &credential.PasswordError{Code: "no_x", Message: "no x"}
		}
		return nil
	})
	p := credential.NewPasswordPolicyFromRules(noX)
	assert.NoError(t, p.Validate("abc", credential.Identity{}))
	assert.True(t, violations(t, p.Validate("xyz", credential.Identity{})).Has("no_x"))
}

func TestBcryptHasher_HashYCompare(t *testing.T) {
	h := credential.NewBcryptHasher(4)
	hash, err := h.Hash("Sunset-Harbor-42")
	require.NoError(t, err)
	assert.NotEqual(t, "Sunset-Harbor-42", hash)
	assert.True(t, h.Compare(hash, "Sunset-Harbor-42"))
	assert.False(t, h.Compare(hash, "sunset-harbor-42"))

	other, err := h.Hash("Sunset-Harbor-42")
	require.NoError(t, err)
	assert.NotEqual(t, hash, other, "la sal debe producir hashes distintos")
}
