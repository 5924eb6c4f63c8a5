package utils

import (
	"errors"
	"fmt"
	"sync"

	"golang.org/x/crypto/bcrypt"

	"github.com/prperemyshlev/donor-service/internal/domain"
)

// HashPassword hashes a password with bcrypt. Costs outside bcrypt's range fall back to the default.
func HashPassword(password string, cost int) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), normalizeCost(cost))
	switch {
	case errors.Is(err, bcrypt.ErrPasswordTooLong):
		return "", domain.NewValidationError("password", "Password must be at most 72 bytes long.")
	case err != nil:
		return "", fmt.Errorf("failed to hash password: %w", err)
	}
	return string(hash), nil
}

// CheckPasswordHash reports whether password matches the stored bcrypt hash.
// A malformed hash never matches.
func CheckPasswordHash(password, hash string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil
}

func normalizeCost(cost int) int {
	if cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
		return bcrypt.DefaultCost
	}
	return cost
}

// decoy hashes by bcrypt cost
var decoyHashes sync.Map

func decoyHash(cost int) []byte {
	cost = normalizeCost(cost)
	if hash, ok := decoyHashes.Load(cost); ok {
		return hash.([]byte)
	}
	hash, _ := bcrypt.GenerateFromPassword([]byte("decoy-password"), cost)
	stored, _ := decoyHashes.LoadOrStore(cost, hash)
	return stored.([]byte)
}

// ComparePasswordDecoy spends the bcrypt work of checking a password hashed at
// cost without an account, so a missing email takes as long as a wrong password.
func ComparePasswordDecoy(password string, cost int) {
	_ = bcrypt.CompareHashAndPassword(decoyHash(cost), []byte(password))
}
