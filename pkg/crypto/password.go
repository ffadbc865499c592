package crypto

import (
	"errors"
	"fmt"

	"golang.org/x/crypto/bcrypt"
)

// DefaultCost is the bcrypt work factor used for ADMIN_PASSWORD_HASH.
const DefaultCost = 12

var (
	// ErrMalformedHash means the configured hash is not a bcrypt hash.
	ErrMalformedHash = errors.New("password hash is not a bcrypt hash")

	bcryptGenerateFromPassword = bcrypt.GenerateFromPassword
)

func HashPassword(password string) (string, error) {
	return HashPasswordWithCost(password, DefaultCost)
}

// HashPasswordWithCost rejects costs outside bcrypt's range instead of
// silently falling back to bcrypt.DefaultCost.
func HashPasswordWithCost(password string, cost int) (string, error) {
	if cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
		return "", fmt.Errorf("bcrypt cost %d outside [%d, %d]", cost, bcrypt.MinCost, bcrypt.MaxCost)
	}
	hashed, err := bcryptGenerateFromPassword([]byte(password), cost)
	if err != nil {
		return "", fmt.Errorf("failed to hash password: %w", err)
	}
	return string(hashed), nil
}

// CheckPassword reports whether password matches hash. A malformed hash never matches.
func CheckPassword(password, hash string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil
}

func IsBcryptHash(hash string) bool {
	_, err := bcrypt.Cost([]byte(hash))
	return err == nil
}

// ValidateHash returns ErrMalformedHash unless hash can be used for login.
func ValidateHash(hash string) error {
	if !IsBcryptHash(hash) {
		return ErrMalformedHash
	}
	return nil
}
