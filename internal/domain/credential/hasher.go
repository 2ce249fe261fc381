package credential

import (
	"fmt"

	"golang.org/x/crypto/bcrypt"

	"github.com/jhoicas/origon-auth/internal/domain/entity"
)

// BcryptHasher hash con sal de un solo sentido (bcrypt incluye la sal en el hash).
type BcryptHasher struct {
	Cost int
}

var _ entity.PasswordHasher = BcryptHasher{}

// NewBcryptHasher cost fuera de rango usa bcrypt.DefaultCost.
func NewBcryptHasher(cost int) BcryptHasher {
	if cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
		cost = bcrypt.DefaultCost
	}
	return BcryptHasher{Cost: cost}
}

func (h BcryptHasher) Hash(plain string) (string, error) {
	cost := h.Cost
	if cost == 0 {
		cost = bcrypt.DefaultCost
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(plain), cost)
	if err != nil {
		return "", fmt.Errorf("bcrypt: %w", err)
	}
	return string(hash), nil
}

func (h BcryptHasher) Compare(hash, plain string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(plain)) == nil
}
