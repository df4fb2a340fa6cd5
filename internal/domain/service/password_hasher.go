// Package service declares the stateless domain services the use cases
// depend on. Implementations live under internal/infra.
package service

// PasswordHasher hides the concrete hashing algorithm from the domain.
// Stored hashes are opaque strings; only the implementation can read them.
type PasswordHasher interface {
	// Hash derives a salted hash from a plaintext password.
	Hash(password string) (string, error)

	// Check reports whether password matches the stored hash.
	Check(password, hash string) bool
}
