// Package auth provides concrete implementations for authentication-related domain services.
package auth

import (
	"crypto/sha256"

	"golang.org/x/crypto/bcrypt"

	"shield/config"
	"shield/internal/domain/service"
)

// bcryptHasher implements the PasswordHasher interface with bcrypt over a
// SHA-256 pre-digest. bcrypt only consumes the first 72 bytes of its input;
// hashing the fixed-size digest instead of the raw password keeps arbitrarily
// long passwords fully significant while preserving bcrypt's work factor.
type bcryptHasher struct {
	cost int
}

// NewBcryptHasher is the constructor for bcryptHasher.
// It returns the implementation as a service.PasswordHasher interface.
func NewBcryptHasher(cfg *config.Config) service.PasswordHasher {
	cost := bcrypt.DefaultCost
	if cfg != nil && cfg.Auth != nil && cfg.Auth.BcryptCost >= bcrypt.MinCost && cfg.Auth.BcryptCost <= bcrypt.MaxCost {
		cost = cfg.Auth.BcryptCost
	}

	return &bcryptHasher{cost: cost}
}

// Hash generates a salted hash from a plaintext password.
func (h *bcryptHasher) Hash(password string) (string, error) {
	digest := sha256.Sum256([]byte(password))
	bytes, err := bcrypt.GenerateFromPassword(digest[:], h.cost)

	return string(bytes), err
}

// Check compares a plaintext password with a stored hash. A malformed stored
// hash reads as a mismatch, never a failure.
func (h *bcryptHasher) Check(password, hash string) bool {
	digest := sha256.Sum256([]byte(password))
	err := bcrypt.CompareHashAndPassword([]byte(hash), digest[:])

	return err == nil
}
