// Package service defines interfaces for core, stateless domain logic.
// These services encapsulate business rules that don't naturally fit within a single entity.
package service

// PasswordHasher hashes account passwords and verifies login attempts.
type PasswordHasher interface {
	Hash(password string) (string, error)
	Check(password, hash string) bool

	// NeedsRehash reports whether hash was produced with settings other than
	// the current ones. Login upgrades such hashes after a successful check.
	NeedsRehash(hash string) bool
}
