package credential_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/origon-auth/internal/domain/credential"
)

func emailCode(t *testing.T, err error) string {
	t.Helper()
	var ee *credential.EmailError
	require.True(t, errors.As(err, &ee), "se esperaba *EmailError, got %v", err)
	return ee.Code
}

func TestNormalize_RecortaYMinusculas(t *testing.T) {
	got, err := credential.EmailPolicy{}.Normalize("  Foo.Bar@EXAMPLE.com  ")
	require.NoError(t, err)
	assert.Equal(t, "foo.bar@example.com", got)
}

func TestNormalize_PuntosConsecutivos(t *testing.T) {
	_, err := credential.EmailPolicy{}.Normalize("a..b@example.com")
	require.Error(t, err)
	assert.Equal(t, credential.EmailConsecutiveDots, emailCode(t, err))

	_, err = credential.EmailPolicy{}.Normalize("ab@example..com")
	assert.Equal(t, credential.EmailConsecutiveDots, emailCode(t, err))
}

func TestNormalize_FormatoInvalido(t *testing.T) {
	cases := []string{
		"",
		"   ",
		"plainaddress",
		"@example.com",
		"user@",
		"user@localhost",
		"user@@example.com",
		"a@b@example.com",
		".user@example.com",
		"user.@example.com",
		"us er@example.com",
		"user@-example.com",
		"user@example-.com",
		"user@example.c",
		"user@example.123",
		"user@exa_mple.com",
	}
	for _, raw := range cases {
		t.Run(raw, func(t *testing.T) {
			_, err := credential.EmailPolicy{}.Normalize(raw)
			require.Error(t, err)
			assert.Equal(t, credential.EmailInvalidFormat, emailCode(t, err))
		})
	}
}

func TestNormalize_Validos(t *testing.T) {
	cases := map[string]string{
		"john@example.com":             "john@example.com",
		"John.Doe+tag@Mail.Example.co": "john.doe+tag@mail.example.co",
		"o'brien@example.ie":           "o'brien@example.ie",
		"x@a.b.c.d.example.org":        "x@a.b.c.d.example.org",
		"user_name-1@sub-domain.io":    "user_name-1@sub-domain.io",
	}
	for raw, want := range cases {
		got, err := credential.EmailPolicy{}.Normalize(raw)
		require.NoError(t, err, raw)
		assert.Equal(t, want, got)
	}
}

func TestNormalize_LimiteDeEtiquetas(t *testing.T) {
	p := credential.EmailPolicy{MaxDomainLabels: 3}

	_, err := p.Normalize("user@a.b.c.d")
	require.Error(t, err)
	assert.Equal(t, credential.EmailSuspiciousDomain, emailCode(t, err))

	got, err := p.Normalize("user@mail.example.com")
	require.NoError(t, err)
	assert.Equal(t, "user@mail.example.com", got)
}

func TestEmailError_Mensaje(t *testing.T) {
	_, err := credential.EmailPolicy{}.Normalize("nope")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Please enter a valid email address:")
}
