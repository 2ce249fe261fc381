package credential

import (
	"fmt"
	"regexp"
	"strings"
)

// Códigos de rechazo de email.
const (
	EmailInvalidFormat    = "invalid_format"
	EmailConsecutiveDots  = "consecutive_dots"
	EmailSuspiciousDomain = "suspicious_domain"
)

// EmailError motivo de rechazo de un email.
type EmailError struct {
	Code   string
	Reason string
}

func (e *EmailError) Error() string {
	return "Please enter a valid email address: " + e.Reason
}

var (
	localPartRe = regexp.MustCompile("^[a-z0-9!#$%&'*+/=?^_`{|}~.-]+$")
	labelRe     = regexp.MustCompile(`^[a-z0-9]([a-z0-9-]*[a-z0-9])?$`)
	tldRe       = regexp.MustCompile(`^[a-z]{2,63}$`)
)

const (
	maxLocalPart = 64
	maxDomain    = 253
	maxEmail     = 254
)

// EmailPolicy política única de validación de emails, compartida por todos los endpoints.
// MaxDomainLabels > 0 rechaza dominios con más etiquetas (p. ej. 3 rechaza a.b.c.d).
type EmailPolicy struct {
	MaxDomainLabels int
}

// Normalize recorta, pasa a minúsculas y valida la gramática dot-atom de la dirección.
// Es pura: no consulta unicidad ni DNS.
func (p EmailPolicy) Normalize(raw string) (string, error) {
	email := strings.ToLower(strings.TrimSpace(raw))
	if email == "" {
		return "", &EmailError{Code: EmailInvalidFormat, Reason: "The email address is empty."}
	}
	if len(email) > maxEmail {
		return "", &EmailError{Code: EmailInvalidFormat, Reason: "The email address is too long."}
	}
	if strings.Count(email, "@") != 1 {
		return "", &EmailError{Code: EmailInvalidFormat, Reason: "The email address must have exactly one @-sign."}
	}
	if strings.Contains(email, "..") {
		return "", &EmailError{Code: EmailConsecutiveDots, Reason: "The email address cannot contain consecutive dots."}
	}

	at := strings.IndexByte(email, '@')
	local, domainPart := email[:at], email[at+1:]

	switch {
	case local == "":
		return "", &EmailError{Code: EmailInvalidFormat, Reason: "There must be something before the @-sign."}
	case len(local) > maxLocalPart:
		return "", &EmailError{Code: EmailInvalidFormat, Reason: "The part before the @-sign is too long."}
	case strings.HasPrefix(local, ".") || strings.HasSuffix(local, "."):
		return "", &EmailError{Code: EmailInvalidFormat, Reason: "The part before the @-sign cannot start or end with a dot."}
	case !localPartRe.MatchString(local):
		return "", &EmailError{Code: EmailInvalidFormat, Reason: "The part before the @-sign contains invalid characters."}
	}

	if domainPart == "" {
		return "", &EmailError{Code: EmailInvalidFormat, Reason: "There must be something after the @-sign."}
	}
	if len(domainPart) > maxDomain {
		return "", &EmailError{Code: EmailInvalidFormat, Reason: "The domain name is too long."}
	}
	labels := strings.Split(domainPart, ".")
	if len(labels) < 2 {
		return "", &EmailError{Code: EmailInvalidFormat, Reason: "The domain name must contain a dot."}
	}
	for _, l := range labels {
		if len(l) > 63 || !labelRe.MatchString(l) {
			return "", &EmailError{Code: EmailInvalidFormat, Reason: fmt.Sprintf("The domain label %q is not valid.", l)}
		}
	}
	if !tldRe.MatchString(labels[len(labels)-1]) {
		return "", &EmailError{Code: EmailInvalidFormat, Reason: "The domain name does not end with a valid top-level domain."}
	}
	if p.MaxDomainLabels > 0 && len(labels) > p.MaxDomainLabels {
		return "", &EmailError{Code: EmailSuspiciousDomain, Reason: "The domain name has too many labels."}
	}
	return email, nil
}
