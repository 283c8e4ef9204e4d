// Package service defines the domain service contracts implemented by the
// infrastructure layer.
package service

// PasswordHasher abstracts one-way password hashing.
type PasswordHasher interface {
	// Hash generates a salted hash from a plaintext password.
	Hash(password string) (string, error)

	// Check compares a plaintext password with a stored hash. Any internal
	// failure (including a malformed stored hash) is reported as false,
	// never as an error.
	Check(password, hash string) bool
}
