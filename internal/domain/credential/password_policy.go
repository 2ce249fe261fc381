package credential

import (
	_ "embed"
	"fmt"
	"regexp"
	"strings"
	"unicode"

	zxcvbn "github.com/nbutton23/zxcvbn-go"
)

// Códigos de violación de la política de contraseñas.
const (
	PasswordTooShort        = "too_short"
	PasswordTooLong         = "too_long"
	PasswordTooCommon       = "too_common"
	PasswordTooSimilar      = "too_similar"
	PasswordEntirelyNumeric = "entirely_numeric"
	PasswordTooWeak         = "too_weak"
)

// bcrypt ignora (o rechaza) lo que pase de 72 bytes.
const maxPasswordBytes = 72

// PasswordError una violación concreta.
type PasswordError struct {
	Code    string
	Message string
}

func (e *PasswordError) Error() string { return e.Message }

// PasswordViolations todas las violaciones encontradas, en orden de evaluación.
type PasswordViolations []*PasswordError

func (v PasswordViolations) Error() string {
	msgs := make([]string, len(v))
	for i, e := range v {
		msgs[i] = e.Message
	}
	return strings.Join(msgs, " ")
}

// Has indica si alguna violación tiene el código dado.
func (v PasswordViolations) Has(code string) bool {
	for _, e := range v {
		if e.Code == code {
			return true
		}
	}
	return false
}

// Messages mensajes en orden, para respuestas por campo.
func (v PasswordViolations) Messages() []string {
	msgs := make([]string, len(v))
	for i, e := range v {
		msgs[i] = e.Message
	}
	return msgs
}

// Identity atributos del principal contra los que se mide la similitud.
type Identity struct {
	Username string
	Email    string
	FullName string
}

// PasswordRule valida una contraseña; devuelve nil o *PasswordError.
type PasswordRule interface {
	Validate(password string, id Identity) *PasswordError
}

// PasswordRuleFunc adapta una función a PasswordRule.
type PasswordRuleFunc func(password string, id Identity) *PasswordError

func (f PasswordRuleFunc) Validate(password string, id Identity) *PasswordError {
	return f(password, id)
}

// PasswordPolicyConfig superficie configurable de la política.
type PasswordPolicyConfig struct {
	MinLength       int
	RejectCommon    bool
	SimilarityCheck bool
	RejectNumeric   bool
	MinScore        int // puntuación zxcvbn mínima (0-4); 0 desactiva
}

// DefaultPasswordPolicyConfig línea base: 8 caracteres y todas las comprobaciones activas.
func DefaultPasswordPolicyConfig() PasswordPolicyConfig {
	return PasswordPolicyConfig{
		MinLength:       8,
		RejectCommon:    true,
		SimilarityCheck: true,
		RejectNumeric:   true,
	}
}

// PasswordPolicy aplica las reglas en orden y acumula todas las violaciones.
// Una contraseña de más de maxBytes se rechaza sin evaluar el resto de reglas:
// zxcvbn y la razón de similitud no son lineales en la longitud.
type PasswordPolicy struct {
	rules    []PasswordRule
	maxBytes int
}

// NewPasswordPolicy construye la política a partir de la configuración.
func NewPasswordPolicy(cfg PasswordPolicyConfig) *PasswordPolicy {
	var rules []PasswordRule
	if cfg.SimilarityCheck {
		rules = append(rules, SimilarityRule(maxSimilarity))
	}
	if cfg.MinLength > 0 {
		rules = append(rules, MinLengthRule(cfg.MinLength))
	}
	if cfg.RejectCommon {
		rules = append(rules, CommonPasswordRule())
	}
	if cfg.RejectNumeric {
		rules = append(rules, NumericRule())
	}
	if cfg.MinScore > 0 {
		rules = append(rules, StrengthRule(cfg.MinScore))
	}
	return NewPasswordPolicyFromRules(rules...)
}

// NewPasswordPolicyFromRules construye una política con reglas arbitrarias.
func NewPasswordPolicyFromRules(rules ...PasswordRule) *PasswordPolicy {
	copied := make([]PasswordRule, len(rules))
	copy(copied, rules)
	return &PasswordPolicy{rules: copied, maxBytes: maxPasswordBytes}
}

// Validate devuelve nil o PasswordViolations.
func (p *PasswordPolicy) Validate(password string, id Identity) error {
	if p == nil {
		return fmt.Errorf("password policy not configured")
	}
	if p.maxBytes > 0 {
		if err := MaxBytesRule(p.maxBytes).Validate(password, id); err != nil {
			return PasswordViolations{err}
		}
	}
	var out PasswordViolations
	for _, r := range p.rules {
		if err := r.Validate(password, id); err != nil {
			out = append(out, err)
		}
	}
	if len(out) == 0 {
		return nil
	}
	return out
}

// MinLengthRule longitud mínima en caracteres.
func MinLengthRule(min int) PasswordRule {
	return PasswordRuleFunc(func(password string, _ Identity) *PasswordError {
		if len([]rune(password)) < min {
			return &PasswordError{
				Code:    PasswordTooShort,
				Message: fmt.Sprintf("This password is too short. It must contain at least %d characters.", min),
			}
		}
		return nil
	})
}

// MaxBytesRule límite del algoritmo de hash.
func MaxBytesRule(max int) PasswordRule {
	return PasswordRuleFunc(func(password string, _ Identity) *PasswordError {
		if len(password) > max {
			return &PasswordError{
				Code:    PasswordTooLong,
				Message: fmt.Sprintf("This password is too long. It must contain at most %d bytes.", max),
			}
		}
		return nil
	})
}

// NumericRule rechaza contraseñas compuestas solo de dígitos.
func NumericRule() PasswordRule {
	return PasswordRuleFunc(func(password string, _ Identity) *PasswordError {
		if password == "" {
			return nil
		}
		for _, r := range password {
			if !unicode.IsDigit(r) {
				return nil
			}
		}
		return &PasswordError{Code: PasswordEntirelyNumeric, Message: "This password is entirely numeric."}
	})
}

//go:embed common_passwords.txt
var commonPasswordsRaw string

var commonPasswords = func() map[string]struct{} {
	set := make(map[string]struct{})
	for _, line := range strings.Split(commonPasswordsRaw, "\n") {
		if p := strings.TrimSpace(line); p != "" && !strings.HasPrefix(p, "#") {
			set[strings.ToLower(p)] = struct{}{}
		}
	}
	return set
}()

// CommonPasswordRule rechaza contraseñas de la lista embebida o que zxcvbn reconoce
// completas en su diccionario de contraseñas.
func CommonPasswordRule() PasswordRule {
	return PasswordRuleFunc(func(password string, _ Identity) *PasswordError {
		lower := strings.ToLower(strings.TrimSpace(password))
		if lower == "" {
			return nil
		}
		_, listed := commonPasswords[lower]
		if listed || fullDictionaryMatch(password, "passwords") {
			return &PasswordError{Code: PasswordTooCommon, Message: "This password is too common."}
		}
		return nil
	})
}

func fullDictionaryMatch(password, dictionary string) bool {
	res := zxcvbn.PasswordStrength(password, nil)
	n := len(password)
	for _, m := range res.MatchSequence {
		if m.I == 0 && m.J == n-1 && dictName(m.DictionaryName) == dictionary {
			return true
		}
	}
	return false
}

// zxcvbn-go nombra los diccionarios con mayúsculas variables ("Passwords", "UserInputs").
func dictName(name string) string {
	return strings.ToLower(strings.ReplaceAll(name, "_", ""))
}

// StrengthRule exige una puntuación zxcvbn mínima.
func StrengthRule(minScore int) PasswordRule {
	if minScore > 4 {
		minScore = 4
	}
	return PasswordRuleFunc(func(password string, id Identity) *PasswordError {
		res := zxcvbn.PasswordStrength(password, id.inputs())
		if res.Score >= minScore {
			return nil
		}
		return &PasswordError{Code: PasswordTooWeak, Message: "This password is too weak."}
	})
}

const maxSimilarity = 0.7

var nonWord = regexp.MustCompile(`\W+`)

// SimilarityRule rechaza contraseñas demasiado parecidas a username, email o nombre.
// Mide la razón de coincidencia de Ratcliff/Obershelp contra el valor completo y sus
// partes, y además consulta las coincidencias de zxcvbn sobre esos mismos valores.
func SimilarityRule(threshold float64) PasswordRule {
	return PasswordRuleFunc(func(password string, id Identity) *PasswordError {
		if password == "" {
			return nil
		}
		lower := strings.ToLower(password)
		for _, attr := range id.attributes() {
			if attr.value == "" {
				continue
			}
			value := strings.ToLower(attr.value)
			parts := append(nonWord.Split(value, -1), value)
			for _, part := range parts {
				if len(part) < 3 {
					continue
				}
				if similarity(lower, part) >= threshold {
					return tooSimilar(attr.label)
				}
			}
		}
		if label := zxcvbnUserInputCoverage(password, id, threshold); label != "" {
			return tooSimilar(label)
		}
		return nil
	})
}

func tooSimilar(label string) *PasswordError {
	return &PasswordError{
		Code:    PasswordTooSimilar,
		Message: fmt.Sprintf("The password is too similar to the %s.", label),
	}
}

type identityAttr struct {
	label string
	value string
}

func (id Identity) attributes() []identityAttr {
	return []identityAttr{
		{"username", id.Username},
		{"email address", id.Email},
		{"full name", id.FullName},
	}
}

func (id Identity) inputs() []string {
	var in []string
	for _, a := range id.attributes() {
		if a.value != "" {
			in = append(in, strings.ToLower(a.value))
		}
	}
	if at := strings.IndexByte(id.Email, '@'); at > 0 {
		in = append(in, strings.ToLower(id.Email[:at]))
	}
	return in
}

// zxcvbnUserInputCoverage devuelve la etiqueta del atributo si una coincidencia
// "user inputs" cubre al menos threshold de la contraseña.
func zxcvbnUserInputCoverage(password string, id Identity, threshold float64) string {
	inputs := id.inputs()
	if len(inputs) == 0 {
		return ""
	}
	res := zxcvbn.PasswordStrength(password, inputs)
	n := len(password)
	for _, m := range res.MatchSequence {
		if dictName(m.DictionaryName) != "userinputs" {
			continue
		}
		if float64(m.J-m.I+1)/float64(n) < threshold {
			continue
		}
		token := strings.ToLower(m.Token)
		for _, a := range id.attributes() {
			if a.value != "" && strings.Contains(strings.ToLower(a.value), token) {
				return a.label
			}
		}
		return "username"
	}
	return ""
}

// similarity razón 2*M/T (gestalt pattern matching), igual a SequenceMatcher.ratio sin heurística de basura.
func similarity(a, b string) float64 {
	ra, rb := []rune(a), []rune(b)
	total := len(ra) + len(rb)
	if total == 0 {
		return 1
	}
	return 2 * float64(matchingRunes(ra, rb)) / float64(total)
}

func matchingRunes(a, b []rune) int {
	i, j, k := longestMatch(a, b)
	if k == 0 {
		return 0
	}
	return k + matchingRunes(a[:i], b[:j]) + matchingRunes(a[i+k:], b[j+k:])
}

func longestMatch(a, b []rune) (int, int, int) {
	bestI, bestJ, bestK := 0, 0, 0
	prev := make([]int, len(b)+1)
	cur := make([]int, len(b)+1)
	for i := 1; i <= len(a); i++ {
		for j := 1; j <= len(b); j++ {
			if a[i-1] == b[j-1] {
				cur[j] = prev[j-1] + 1
				if cur[j] > bestK {
					bestI, bestJ, bestK = i-cur[j], j-cur[j], cur[j]
				}
			} else {
				cur[j] = 0
			}
		}
		prev, cur = cur, prev
	}
	return bestI, bestJ, bestK
}
